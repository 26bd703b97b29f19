package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Dosada05/matchday-system/models"
)

var ErrPaymentNotFound = errors.New("payment not found")

type PaymentRepository interface {
	Create(ctx context.Context, exec SQLExecutor, payment *models.Payment) error
	GetByID(ctx context.Context, id string) (*models.Payment, error)
	ListByReservation(ctx context.Context, reservationID string) ([]*models.Payment, error)
	ListByReservationExec(ctx context.Context, exec SQLExecutor, reservationID string) ([]*models.Payment, error)
	GetByPayerAndReservation(ctx context.Context, payerID, reservationID string) (*models.Payment, error)
	UpdateStatus(ctx context.Context, exec SQLExecutor, id string, status models.PaymentStatus) error
	UpdateStatusOwned(ctx context.Context, id, payerID string, from, to models.PaymentStatus) error
}

type postgresPaymentRepository struct {
	db *sql.DB
}

func NewPostgresPaymentRepository(db *sql.DB) PaymentRepository {
	return &postgresPaymentRepository{db: db}
}

func (r *postgresPaymentRepository) Create(ctx context.Context, exec SQLExecutor, payment *models.Payment) error {
	if exec == nil {
		exec = r.db
	}
	query := `
		INSERT INTO payments (id, payer_id, reservation_id, type, amount, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at`

	return exec.QueryRowContext(ctx, query,
		payment.ID,
		payment.PayerID,
		payment.ReservationID,
		payment.Type,
		payment.Amount,
		payment.Status,
	).Scan(&payment.CreatedAt)
}

const paymentColumns = `id, payer_id, reservation_id, type, amount, status, created_at`

func (r *postgresPaymentRepository) GetByID(ctx context.Context, id string) (*models.Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments WHERE id = $1`
	return r.scanOne(r.db.QueryRowContext(ctx, query, id))
}

func (r *postgresPaymentRepository) GetByPayerAndReservation(ctx context.Context, payerID, reservationID string) (*models.Payment, error) {
	query := `SELECT ` + paymentColumns + `
		FROM payments
		WHERE payer_id = $1 AND reservation_id = $2 AND type = $3`
	return r.scanOne(r.db.QueryRowContext(ctx, query, payerID, reservationID, models.PaymentTypeBookingSplit))
}

func (r *postgresPaymentRepository) scanOne(row *sql.Row) (*models.Payment, error) {
	payment := &models.Payment{}
	err := row.Scan(
		&payment.ID,
		&payment.PayerID,
		&payment.ReservationID,
		&payment.Type,
		&payment.Amount,
		&payment.Status,
		&payment.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrPaymentNotFound
		}
		return nil, err
	}
	return payment, nil
}

func (r *postgresPaymentRepository) ListByReservation(ctx context.Context, reservationID string) ([]*models.Payment, error) {
	return r.ListByReservationExec(ctx, r.db, reservationID)
}

func (r *postgresPaymentRepository) ListByReservationExec(ctx context.Context, exec SQLExecutor, reservationID string) ([]*models.Payment, error) {
	query := `SELECT ` + paymentColumns + `
		FROM payments
		WHERE reservation_id = $1
		ORDER BY created_at ASC, id ASC`

	rows, err := exec.QueryContext(ctx, query, reservationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	payments := make([]*models.Payment, 0)
	for rows.Next() {
		payment := &models.Payment{}
		if err := rows.Scan(
			&payment.ID,
			&payment.PayerID,
			&payment.ReservationID,
			&payment.Type,
			&payment.Amount,
			&payment.Status,
			&payment.CreatedAt,
		); err != nil {
			return nil, err
		}
		payments = append(payments, payment)
	}
	return payments, rows.Err()
}

func (r *postgresPaymentRepository) UpdateStatus(ctx context.Context, exec SQLExecutor, id string, status models.PaymentStatus) error {
	if exec == nil {
		exec = r.db
	}
	result, err := exec.ExecContext(ctx,
		`UPDATE payments SET status = $1 WHERE id = $2`, status, id)
	if err != nil {
		return err
	}
	rowsAffected, err := checkRowsAffected(result)
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrPaymentNotFound
	}
	return nil
}

// UpdateStatusOwned is the self-scoped payment mutation: the WHERE clause
// carries the payer id and the expected current status, so a player can only
// ever flip their own pending payment.
func (r *postgresPaymentRepository) UpdateStatusOwned(ctx context.Context, id, payerID string, from, to models.PaymentStatus) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE payments SET status = $1 WHERE id = $2 AND payer_id = $3 AND status = $4`,
		to, id, payerID, from)
	if err != nil {
		return err
	}
	rowsAffected, err := checkRowsAffected(result)
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrPaymentNotFound
	}
	return nil
}

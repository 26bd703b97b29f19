package repositories

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/Dosada05/matchday-system/models"
)

var ErrReservationNotFound = errors.New("reservation not found")

type ReservationRepository interface {
	Create(ctx context.Context, exec SQLExecutor, reservation *models.Reservation) error
	GetByID(ctx context.Context, id string) (*models.Reservation, error)
	GetByIDExec(ctx context.Context, exec SQLExecutor, id string) (*models.Reservation, error)
	ListByPitchAndDate(ctx context.Context, pitchID string, day time.Time) ([]*models.Reservation, error)
	UpdatePaymentStatus(ctx context.Context, exec SQLExecutor, id string, status models.ReservationPaymentStatus) error
	Delete(ctx context.Context, exec SQLExecutor, id string) error
}

type postgresReservationRepository struct {
	db *sql.DB
}

func NewPostgresReservationRepository(db *sql.DB) ReservationRepository {
	return &postgresReservationRepository{db: db}
}

func (r *postgresReservationRepository) Create(ctx context.Context, exec SQLExecutor, reservation *models.Reservation) error {
	if exec == nil {
		exec = r.db
	}
	query := `
		INSERT INTO reservations
			(id, pitch_id, date, hour, actor_id, actor_role, status, total_amount, payment_status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING created_at`

	return exec.QueryRowContext(ctx, query,
		reservation.ID,
		reservation.PitchID,
		reservation.Date,
		reservation.Hour,
		reservation.ActorID,
		reservation.ActorRole,
		reservation.Status,
		reservation.TotalAmount,
		reservation.PaymentStatus,
	).Scan(&reservation.CreatedAt)
}

const reservationColumns = `
	id, pitch_id, date, hour, actor_id, actor_role, status, total_amount, payment_status, created_at`

func (r *postgresReservationRepository) GetByID(ctx context.Context, id string) (*models.Reservation, error) {
	return r.GetByIDExec(ctx, r.db, id)
}

func (r *postgresReservationRepository) GetByIDExec(ctx context.Context, exec SQLExecutor, id string) (*models.Reservation, error) {
	query := `SELECT ` + reservationColumns + ` FROM reservations WHERE id = $1`

	reservation := &models.Reservation{}
	err := exec.QueryRowContext(ctx, query, id).Scan(
		&reservation.ID,
		&reservation.PitchID,
		&reservation.Date,
		&reservation.Hour,
		&reservation.ActorID,
		&reservation.ActorRole,
		&reservation.Status,
		&reservation.TotalAmount,
		&reservation.PaymentStatus,
		&reservation.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrReservationNotFound
		}
		return nil, err
	}
	return reservation, nil
}

func (r *postgresReservationRepository) ListByPitchAndDate(ctx context.Context, pitchID string, day time.Time) ([]*models.Reservation, error) {
	dayStart := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	dayEnd := dayStart.Add(24 * time.Hour)

	query := `SELECT ` + reservationColumns + `
		FROM reservations
		WHERE pitch_id = $1 AND date >= $2 AND date < $3
		ORDER BY hour ASC`

	rows, err := r.db.QueryContext(ctx, query, pitchID, dayStart, dayEnd)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	reservations := make([]*models.Reservation, 0)
	for rows.Next() {
		reservation := &models.Reservation{}
		if err := rows.Scan(
			&reservation.ID,
			&reservation.PitchID,
			&reservation.Date,
			&reservation.Hour,
			&reservation.ActorID,
			&reservation.ActorRole,
			&reservation.Status,
			&reservation.TotalAmount,
			&reservation.PaymentStatus,
			&reservation.CreatedAt,
		); err != nil {
			return nil, err
		}
		reservations = append(reservations, reservation)
	}
	return reservations, rows.Err()
}

func (r *postgresReservationRepository) UpdatePaymentStatus(ctx context.Context, exec SQLExecutor, id string, status models.ReservationPaymentStatus) error {
	if exec == nil {
		exec = r.db
	}
	result, err := exec.ExecContext(ctx,
		`UPDATE reservations SET payment_status = $1 WHERE id = $2`, status, id)
	if err != nil {
		return err
	}
	rowsAffected, err := checkRowsAffected(result)
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrReservationNotFound
	}
	return nil
}

func (r *postgresReservationRepository) Delete(ctx context.Context, exec SQLExecutor, id string) error {
	result, err := exec.ExecContext(ctx, `DELETE FROM reservations WHERE id = $1`, id)
	if err != nil {
		return err
	}
	rowsAffected, err := checkRowsAffected(result)
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrReservationNotFound
	}
	return nil
}

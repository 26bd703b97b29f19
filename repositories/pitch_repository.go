package repositories

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/Dosada05/matchday-system/models"
	"github.com/lib/pq"
)

var (
	ErrPitchNotFound     = errors.New("pitch not found")
	ErrPromotionNotFound = errors.New("promotion not found")
	ErrSportNotFound     = errors.New("sport not found")
)

// Pitch, promotion and sport records are read-side only here: their CRUD
// belongs to an external collaborator, the orchestrator only consumes them.
type PitchRepository interface {
	GetByID(ctx context.Context, id string) (*models.Pitch, error)
	ListPromotions(ctx context.Context, pitchID string, at time.Time) ([]*models.Promotion, error)
	GetSport(ctx context.Context, id string) (*models.Sport, error)
}

type postgresPitchRepository struct {
	db *sql.DB
}

func NewPostgresPitchRepository(db *sql.DB) PitchRepository {
	return &postgresPitchRepository{db: db}
}

func (r *postgresPitchRepository) GetByID(ctx context.Context, id string) (*models.Pitch, error) {
	query := `
		SELECT id, owner_id, name, sport_id, base_price, opening_hour, closing_hour, allow_post_pay, created_at
		FROM pitches
		WHERE id = $1`

	pitch := &models.Pitch{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&pitch.ID,
		&pitch.OwnerID,
		&pitch.Name,
		&pitch.SportID,
		&pitch.BasePrice,
		&pitch.OpeningHour,
		&pitch.ClosingHour,
		&pitch.AllowPostPay,
		&pitch.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrPitchNotFound
		}
		return nil, err
	}
	return pitch, nil
}

func (r *postgresPitchRepository) ListPromotions(ctx context.Context, pitchID string, at time.Time) ([]*models.Promotion, error) {
	query := `
		SELECT id, pitch_id, discount_percent, weekdays, hour_from, hour_to, start_date, end_date
		FROM promotions
		WHERE pitch_id = $1 AND start_date <= $2 AND end_date >= $2`

	rows, err := r.db.QueryContext(ctx, query, pitchID, at)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	promotions := make([]*models.Promotion, 0)
	for rows.Next() {
		promotion := &models.Promotion{}
		var weekdays []int64
		if err := rows.Scan(
			&promotion.ID,
			&promotion.PitchID,
			&promotion.DiscountPercent,
			pq.Array(&weekdays),
			&promotion.HourFrom,
			&promotion.HourTo,
			&promotion.StartDate,
			&promotion.EndDate,
		); err != nil {
			return nil, err
		}
		promotion.Weekdays = make([]time.Weekday, 0, len(weekdays))
		for _, wd := range weekdays {
			promotion.Weekdays = append(promotion.Weekdays, time.Weekday(wd))
		}
		promotions = append(promotions, promotion)
	}
	return promotions, rows.Err()
}

func (r *postgresPitchRepository) GetSport(ctx context.Context, id string) (*models.Sport, error) {
	query := `SELECT id, name, players_per_side FROM sports WHERE id = $1`

	sport := &models.Sport{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(&sport.ID, &sport.Name, &sport.PlayersPerSide)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrSportNotFound
		}
		return nil, err
	}
	return sport, nil
}

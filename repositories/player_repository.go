package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Dosada05/matchday-system/models"
	"github.com/lib/pq"
)

var ErrPlayerNotFound = errors.New("player profile not found")

type PlayerRepository interface {
	Create(ctx context.Context, profile *models.PlayerProfile) error
	GetByID(ctx context.Context, id string) (*models.PlayerProfile, error)
	GetByIDExec(ctx context.Context, exec SQLExecutor, id string) (*models.PlayerProfile, error)
	ListByIDs(ctx context.Context, ids []string) ([]*models.PlayerProfile, error)
	ApplyStats(ctx context.Context, exec SQLExecutor, profile *models.PlayerProfile) error
}

type postgresPlayerRepository struct {
	db *sql.DB
}

func NewPostgresPlayerRepository(db *sql.DB) PlayerRepository {
	return &postgresPlayerRepository{db: db}
}

func (r *postgresPlayerRepository) Create(ctx context.Context, profile *models.PlayerProfile) error {
	query := `
		INSERT INTO player_profiles (id, user_id, name, form)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at`

	err := r.db.QueryRowContext(ctx, query,
		profile.ID, profile.UserID, profile.Name, pq.Array([]string{}),
	).Scan(&profile.CreatedAt)
	if err != nil {
		return err
	}
	profile.Form = []string{}
	return nil
}

const playerColumns = `
	id, user_id, name, goals, assists, yellow_cards, red_cards,
	wins, losses, draws, form, created_at`

func (r *postgresPlayerRepository) GetByID(ctx context.Context, id string) (*models.PlayerProfile, error) {
	return r.GetByIDExec(ctx, r.db, id)
}

func (r *postgresPlayerRepository) GetByIDExec(ctx context.Context, exec SQLExecutor, id string) (*models.PlayerProfile, error) {
	query := `SELECT ` + playerColumns + ` FROM player_profiles WHERE id = $1`

	profile := &models.PlayerProfile{}
	err := exec.QueryRowContext(ctx, query, id).Scan(
		&profile.ID,
		&profile.UserID,
		&profile.Name,
		&profile.Goals,
		&profile.Assists,
		&profile.YellowCards,
		&profile.RedCards,
		&profile.Wins,
		&profile.Losses,
		&profile.Draws,
		pq.Array(&profile.Form),
		&profile.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrPlayerNotFound
		}
		return nil, err
	}
	return profile, nil
}

func (r *postgresPlayerRepository) ListByIDs(ctx context.Context, ids []string) ([]*models.PlayerProfile, error) {
	if len(ids) == 0 {
		return []*models.PlayerProfile{}, nil
	}
	query := `SELECT ` + playerColumns + ` FROM player_profiles WHERE id = ANY($1) ORDER BY id`

	rows, err := r.db.QueryContext(ctx, query, pq.Array(ids))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	profiles := make([]*models.PlayerProfile, 0, len(ids))
	for rows.Next() {
		profile := &models.PlayerProfile{}
		if err := rows.Scan(
			&profile.ID,
			&profile.UserID,
			&profile.Name,
			&profile.Goals,
			&profile.Assists,
			&profile.YellowCards,
			&profile.RedCards,
			&profile.Wins,
			&profile.Losses,
			&profile.Draws,
			pq.Array(&profile.Form),
			&profile.CreatedAt,
		); err != nil {
			return nil, err
		}
		profiles = append(profiles, profile)
	}
	return profiles, rows.Err()
}

// ApplyStats overwrites the cumulative counters and form window; called once
// per player inside the finalize transaction.
func (r *postgresPlayerRepository) ApplyStats(ctx context.Context, exec SQLExecutor, profile *models.PlayerProfile) error {
	result, err := exec.ExecContext(ctx, `
		UPDATE player_profiles
		SET goals = $1, assists = $2, yellow_cards = $3, red_cards = $4,
		    wins = $5, losses = $6, draws = $7, form = $8
		WHERE id = $9`,
		profile.Goals,
		profile.Assists,
		profile.YellowCards,
		profile.RedCards,
		profile.Wins,
		profile.Losses,
		profile.Draws,
		pq.Array(profile.Form),
		profile.ID,
	)
	if err != nil {
		return err
	}
	rowsAffected, err := checkRowsAffected(result)
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrPlayerNotFound
	}
	return nil
}

package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Dosada05/matchday-system/models"
	"github.com/lib/pq"
)

var (
	ErrTeamNotFound     = errors.New("team not found")
	ErrTeamNameConflict = errors.New("team name is already in use")
)

type TeamRepository interface {
	Create(ctx context.Context, team *models.Team) error
	GetByID(ctx context.Context, id string) (*models.Team, error)
	GetByIDExec(ctx context.Context, exec SQLExecutor, id string) (*models.Team, error)
	AddMember(ctx context.Context, teamID, playerID string) error
	ApplyResult(ctx context.Context, exec SQLExecutor, id string, wins, losses, draws int, form []string) error
	UpdateBadgeKey(ctx context.Context, id string, badgeKey *string) error
}

type postgresTeamRepository struct {
	db *sql.DB
}

func NewPostgresTeamRepository(db *sql.DB) TeamRepository {
	return &postgresTeamRepository{db: db}
}

func (r *postgresTeamRepository) Create(ctx context.Context, team *models.Team) error {
	query := `
		INSERT INTO teams (id, name, sport_id, manager_id, form)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at`

	err := r.db.QueryRowContext(ctx, query,
		team.ID, team.Name, team.SportID, team.ManagerID, pq.Array([]string{}),
	).Scan(&team.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrTeamNameConflict
		}
		return err
	}
	team.Form = []string{}
	return nil
}

func (r *postgresTeamRepository) GetByID(ctx context.Context, id string) (*models.Team, error) {
	return r.GetByIDExec(ctx, r.db, id)
}

func (r *postgresTeamRepository) GetByIDExec(ctx context.Context, exec SQLExecutor, id string) (*models.Team, error) {
	query := `
		SELECT id, name, sport_id, manager_id, wins, losses, draws, form, badge_key, created_at
		FROM teams
		WHERE id = $1`

	team := &models.Team{}
	err := exec.QueryRowContext(ctx, query, id).Scan(
		&team.ID,
		&team.Name,
		&team.SportID,
		&team.ManagerID,
		&team.Wins,
		&team.Losses,
		&team.Draws,
		pq.Array(&team.Form),
		&team.BadgeKey,
		&team.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTeamNotFound
		}
		return nil, err
	}

	rows, err := exec.QueryContext(ctx,
		`SELECT player_id FROM team_players WHERE team_id = $1 ORDER BY player_id`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	team.PlayerIDs = []string{}
	for rows.Next() {
		var playerID string
		if err := rows.Scan(&playerID); err != nil {
			return nil, err
		}
		team.PlayerIDs = append(team.PlayerIDs, playerID)
	}
	return team, rows.Err()
}

func (r *postgresTeamRepository) AddMember(ctx context.Context, teamID, playerID string) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO team_players (team_id, player_id)
		VALUES ($1, $2)
		ON CONFLICT (team_id, player_id) DO NOTHING`,
		teamID, playerID)
	return err
}

// ApplyResult writes the post-match counters and form window in one
// statement; it is only ever called inside the finalize transaction.
func (r *postgresTeamRepository) ApplyResult(ctx context.Context, exec SQLExecutor, id string, wins, losses, draws int, form []string) error {
	result, err := exec.ExecContext(ctx, `
		UPDATE teams SET wins = $1, losses = $2, draws = $3, form = $4 WHERE id = $5`,
		wins, losses, draws, pq.Array(form), id)
	if err != nil {
		return err
	}
	rowsAffected, err := checkRowsAffected(result)
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrTeamNotFound
	}
	return nil
}

func (r *postgresTeamRepository) UpdateBadgeKey(ctx context.Context, id string, badgeKey *string) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE teams SET badge_key = $1 WHERE id = $2`, badgeKey, id)
	if err != nil {
		return err
	}
	rowsAffected, err := checkRowsAffected(result)
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrTeamNotFound
	}
	return nil
}

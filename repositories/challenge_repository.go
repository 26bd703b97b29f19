package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Dosada05/matchday-system/models"
)

var ErrChallengeNotFound = errors.New("challenge not found")

type ChallengeRepository interface {
	Create(ctx context.Context, exec SQLExecutor, challenge *models.TeamChallenge) error
	GetByID(ctx context.Context, id string) (*models.TeamChallenge, error)
	ListPendingByMatch(ctx context.Context, matchID string) ([]*models.TeamChallenge, error)
	UpdateStatus(ctx context.Context, exec SQLExecutor, id string, status models.ChallengeStatus) error
	Delete(ctx context.Context, id string) error
}

type postgresChallengeRepository struct {
	db *sql.DB
}

func NewPostgresChallengeRepository(db *sql.DB) ChallengeRepository {
	return &postgresChallengeRepository{db: db}
}

func (r *postgresChallengeRepository) Create(ctx context.Context, exec SQLExecutor, challenge *models.TeamChallenge) error {
	if exec == nil {
		exec = r.db
	}
	query := `
		INSERT INTO team_challenges (id, match_id, team_id, challenger_id, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at`

	return exec.QueryRowContext(ctx, query,
		challenge.ID,
		challenge.MatchID,
		challenge.TeamID,
		challenge.ChallengerID,
		challenge.Status,
	).Scan(&challenge.CreatedAt)
}

const challengeColumns = `id, match_id, team_id, challenger_id, status, created_at`

func (r *postgresChallengeRepository) GetByID(ctx context.Context, id string) (*models.TeamChallenge, error) {
	query := `SELECT ` + challengeColumns + ` FROM team_challenges WHERE id = $1`

	challenge := &models.TeamChallenge{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&challenge.ID,
		&challenge.MatchID,
		&challenge.TeamID,
		&challenge.ChallengerID,
		&challenge.Status,
		&challenge.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrChallengeNotFound
		}
		return nil, err
	}
	return challenge, nil
}

func (r *postgresChallengeRepository) ListPendingByMatch(ctx context.Context, matchID string) ([]*models.TeamChallenge, error) {
	query := `SELECT ` + challengeColumns + `
		FROM team_challenges
		WHERE match_id = $1 AND status = $2
		ORDER BY created_at ASC`

	rows, err := r.db.QueryContext(ctx, query, matchID, models.ChallengePending)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	challenges := make([]*models.TeamChallenge, 0)
	for rows.Next() {
		challenge := &models.TeamChallenge{}
		if err := rows.Scan(
			&challenge.ID,
			&challenge.MatchID,
			&challenge.TeamID,
			&challenge.ChallengerID,
			&challenge.Status,
			&challenge.CreatedAt,
		); err != nil {
			return nil, err
		}
		challenges = append(challenges, challenge)
	}
	return challenges, rows.Err()
}

func (r *postgresChallengeRepository) UpdateStatus(ctx context.Context, exec SQLExecutor, id string, status models.ChallengeStatus) error {
	if exec == nil {
		exec = r.db
	}
	result, err := exec.ExecContext(ctx,
		`UPDATE team_challenges SET status = $1 WHERE id = $2`, status, id)
	if err != nil {
		return err
	}
	rowsAffected, err := checkRowsAffected(result)
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrChallengeNotFound
	}
	return nil
}

// Delete removes a corrupted or legacy challenge row detected at read time.
func (r *postgresChallengeRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM team_challenges WHERE id = $1`, id)
	if err != nil {
		return err
	}
	rowsAffected, err := checkRowsAffected(result)
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrChallengeNotFound
	}
	return nil
}

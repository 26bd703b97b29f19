package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Dosada05/matchday-system/models"
)

var ErrVoteConflict = errors.New("voter has already voted for this match")

type EventRepository interface {
	Append(ctx context.Context, exec SQLExecutor, event *models.MatchEvent) error
	ListByMatch(ctx context.Context, matchID string) ([]*models.MatchEvent, error)
	ListByMatchExec(ctx context.Context, exec SQLExecutor, matchID string) ([]*models.MatchEvent, error)
	UpsertVote(ctx context.Context, vote *models.MVPVote) error
	ListVotes(ctx context.Context, matchID string) ([]*models.MVPVote, error)
}

type postgresEventRepository struct {
	db *sql.DB
}

func NewPostgresEventRepository(db *sql.DB) EventRepository {
	return &postgresEventRepository{db: db}
}

// Append is the only write path for match_events; there is no update or
// delete, the log is append-only.
func (r *postgresEventRepository) Append(ctx context.Context, exec SQLExecutor, event *models.MatchEvent) error {
	if exec == nil {
		exec = r.db
	}
	query := `
		INSERT INTO match_events (id, match_id, type, player_id, player_name, team_id, minute)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at`

	return exec.QueryRowContext(ctx, query,
		event.ID,
		event.MatchID,
		event.Type,
		event.PlayerID,
		event.PlayerName,
		event.TeamID,
		event.Minute,
	).Scan(&event.CreatedAt)
}

func (r *postgresEventRepository) ListByMatch(ctx context.Context, matchID string) ([]*models.MatchEvent, error) {
	return r.ListByMatchExec(ctx, r.db, matchID)
}

func (r *postgresEventRepository) ListByMatchExec(ctx context.Context, exec SQLExecutor, matchID string) ([]*models.MatchEvent, error) {
	query := `
		SELECT id, match_id, type, player_id, player_name, team_id, minute, created_at
		FROM match_events
		WHERE match_id = $1
		ORDER BY created_at ASC, id ASC`

	rows, err := exec.QueryContext(ctx, query, matchID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	events := make([]*models.MatchEvent, 0)
	for rows.Next() {
		event := &models.MatchEvent{}
		if err := rows.Scan(
			&event.ID,
			&event.MatchID,
			&event.Type,
			&event.PlayerID,
			&event.PlayerName,
			&event.TeamID,
			&event.Minute,
			&event.CreatedAt,
		); err != nil {
			return nil, err
		}
		events = append(events, event)
	}
	return events, rows.Err()
}

func (r *postgresEventRepository) UpsertVote(ctx context.Context, vote *models.MVPVote) error {
	query := `
		INSERT INTO mvp_votes (id, match_id, voter_id, player_id)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (match_id, voter_id) DO UPDATE SET player_id = EXCLUDED.player_id
		RETURNING created_at`

	return r.db.QueryRowContext(ctx, query,
		vote.ID, vote.MatchID, vote.VoterID, vote.PlayerID,
	).Scan(&vote.CreatedAt)
}

func (r *postgresEventRepository) ListVotes(ctx context.Context, matchID string) ([]*models.MVPVote, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, match_id, voter_id, player_id, created_at
		FROM mvp_votes
		WHERE match_id = $1
		ORDER BY created_at ASC`, matchID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	votes := make([]*models.MVPVote, 0)
	for rows.Next() {
		vote := &models.MVPVote{}
		if err := rows.Scan(&vote.ID, &vote.MatchID, &vote.VoterID, &vote.PlayerID, &vote.CreatedAt); err != nil {
			return nil, err
		}
		votes = append(votes, vote)
	}
	return votes, rows.Err()
}

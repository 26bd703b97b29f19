package repositories

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/Dosada05/matchday-system/models"
)

var (
	ErrMatchNotFound        = errors.New("match not found")
	ErrMatchPlayerConflict  = errors.New("player already on the match roster")
	ErrApplicationConflict  = errors.New("player already applied to the match")
	ErrApplicationNotFound  = errors.New("application not found")
	ErrMatchPlayerNotFound  = errors.New("player not on the match roster")
)

type MatchRepository interface {
	Create(ctx context.Context, exec SQLExecutor, match *models.Match) error
	GetByID(ctx context.Context, id string) (*models.Match, error)
	GetByIDExec(ctx context.Context, exec SQLExecutor, id string) (*models.Match, error)
	ListByPitchAndDate(ctx context.Context, pitchID string, day time.Time) ([]*models.Match, error)
	UpdateStatus(ctx context.Context, exec SQLExecutor, id string, status models.MatchStatus) error
	SetOpponent(ctx context.Context, exec SQLExecutor, id string, teamBID string) error
	SetFinalized(ctx context.Context, exec SQLExecutor, id string, scoreA, scoreB int, mvpPlayerID *string, at time.Time) error
	SetMVP(ctx context.Context, exec SQLExecutor, id string, mvpPlayerID *string) error
	AddPlayer(ctx context.Context, exec SQLExecutor, matchID string, side models.TeamSide, playerID string) error
	RemovePlayer(ctx context.Context, exec SQLExecutor, matchID, playerID string) error
	ReplaceRoster(ctx context.Context, exec SQLExecutor, matchID string, sideA, sideB []string) error
	AddApplicant(ctx context.Context, exec SQLExecutor, matchID, playerID string) error
	RemoveApplicant(ctx context.Context, exec SQLExecutor, matchID, playerID string) error
	Delete(ctx context.Context, exec SQLExecutor, id string) error
}

type postgresMatchRepository struct {
	db *sql.DB
}

func NewPostgresMatchRepository(db *sql.DB) MatchRepository {
	return &postgresMatchRepository{db: db}
}

func (r *postgresMatchRepository) Create(ctx context.Context, exec SQLExecutor, match *models.Match) error {
	if exec == nil {
		exec = r.db
	}
	query := `
		INSERT INTO matches
			(id, date, hour, pitch_id, sport_id, reservation_id, status, manager_id,
			 team_a_id, team_b_id, allow_external_players, allow_challenges)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING created_at`

	return exec.QueryRowContext(ctx, query,
		match.ID,
		match.Date,
		match.Hour,
		match.PitchID,
		match.SportID,
		match.ReservationID,
		match.Status,
		match.ManagerID,
		match.TeamAID,
		match.TeamBID,
		match.AllowExternalPlayers,
		match.AllowChallenges,
	).Scan(&match.CreatedAt)
}

const matchColumns = `
	id, date, hour, pitch_id, sport_id, reservation_id, status, manager_id,
	team_a_id, team_b_id, score_a, score_b, mvp_player_id,
	allow_external_players, allow_challenges, finalized_at, created_at`

func scanMatch(row *sql.Row) (*models.Match, error) {
	match := &models.Match{}
	err := row.Scan(
		&match.ID,
		&match.Date,
		&match.Hour,
		&match.PitchID,
		&match.SportID,
		&match.ReservationID,
		&match.Status,
		&match.ManagerID,
		&match.TeamAID,
		&match.TeamBID,
		&match.ScoreA,
		&match.ScoreB,
		&match.MVPPlayerID,
		&match.AllowExternalPlayers,
		&match.AllowChallenges,
		&match.FinalizedAt,
		&match.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrMatchNotFound
		}
		return nil, err
	}
	return match, nil
}

func (r *postgresMatchRepository) GetByID(ctx context.Context, id string) (*models.Match, error) {
	return r.GetByIDExec(ctx, r.db, id)
}

// GetByIDExec reads the match with its roster and applicant sets through the
// given executor, so the state machine can take its snapshot inside the same
// transaction that commits the mutation.
func (r *postgresMatchRepository) GetByIDExec(ctx context.Context, exec SQLExecutor, id string) (*models.Match, error) {
	query := `SELECT ` + matchColumns + ` FROM matches WHERE id = $1`
	match, err := scanMatch(exec.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, err
	}
	if err := r.loadSets(ctx, exec, match); err != nil {
		return nil, err
	}
	return match, nil
}

func (r *postgresMatchRepository) loadSets(ctx context.Context, exec SQLExecutor, match *models.Match) error {
	rows, err := exec.QueryContext(ctx,
		`SELECT side, player_id FROM match_players WHERE match_id = $1 ORDER BY player_id`, match.ID)
	if err != nil {
		return err
	}
	defer rows.Close()

	match.TeamAPlayers = []string{}
	match.TeamBPlayers = []string{}
	for rows.Next() {
		var side models.TeamSide
		var playerID string
		if err := rows.Scan(&side, &playerID); err != nil {
			return err
		}
		if side == models.SideB {
			match.TeamBPlayers = append(match.TeamBPlayers, playerID)
		} else {
			match.TeamAPlayers = append(match.TeamAPlayers, playerID)
		}
	}
	if err := rows.Err(); err != nil {
		return err
	}

	appRows, err := exec.QueryContext(ctx,
		`SELECT player_id FROM match_applications WHERE match_id = $1 ORDER BY player_id`, match.ID)
	if err != nil {
		return err
	}
	defer appRows.Close()

	match.Applications = []string{}
	for appRows.Next() {
		var playerID string
		if err := appRows.Scan(&playerID); err != nil {
			return err
		}
		match.Applications = append(match.Applications, playerID)
	}
	return appRows.Err()
}

func (r *postgresMatchRepository) ListByPitchAndDate(ctx context.Context, pitchID string, day time.Time) ([]*models.Match, error) {
	dayStart := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	dayEnd := dayStart.Add(24 * time.Hour)

	query := `SELECT ` + matchColumns + `
		FROM matches
		WHERE pitch_id = $1 AND date >= $2 AND date < $3
		ORDER BY hour ASC`

	rows, err := r.db.QueryContext(ctx, query, pitchID, dayStart, dayEnd)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	matches := make([]*models.Match, 0)
	for rows.Next() {
		match := &models.Match{}
		if err := rows.Scan(
			&match.ID,
			&match.Date,
			&match.Hour,
			&match.PitchID,
			&match.SportID,
			&match.ReservationID,
			&match.Status,
			&match.ManagerID,
			&match.TeamAID,
			&match.TeamBID,
			&match.ScoreA,
			&match.ScoreB,
			&match.MVPPlayerID,
			&match.AllowExternalPlayers,
			&match.AllowChallenges,
			&match.FinalizedAt,
			&match.CreatedAt,
		); err != nil {
			return nil, err
		}
		matches = append(matches, match)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for _, match := range matches {
		if err := r.loadSets(ctx, r.db, match); err != nil {
			return nil, err
		}
	}
	return matches, nil
}

func (r *postgresMatchRepository) UpdateStatus(ctx context.Context, exec SQLExecutor, id string, status models.MatchStatus) error {
	if exec == nil {
		exec = r.db
	}
	result, err := exec.ExecContext(ctx, `UPDATE matches SET status = $1 WHERE id = $2`, status, id)
	if err != nil {
		return err
	}
	rowsAffected, err := checkRowsAffected(result)
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrMatchNotFound
	}
	return nil
}

func (r *postgresMatchRepository) SetOpponent(ctx context.Context, exec SQLExecutor, id string, teamBID string) error {
	result, err := exec.ExecContext(ctx,
		`UPDATE matches SET team_b_id = $1, allow_challenges = FALSE WHERE id = $2 AND team_b_id IS NULL`,
		teamBID, id)
	if err != nil {
		return err
	}
	rowsAffected, err := checkRowsAffected(result)
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrMatchNotFound
	}
	return nil
}

func (r *postgresMatchRepository) SetFinalized(ctx context.Context, exec SQLExecutor, id string, scoreA, scoreB int, mvpPlayerID *string, at time.Time) error {
	result, err := exec.ExecContext(ctx, `
		UPDATE matches
		SET status = $1, score_a = $2, score_b = $3, mvp_player_id = $4, finalized_at = $5
		WHERE id = $6`,
		models.MatchStatusFinished, scoreA, scoreB, mvpPlayerID, at, id)
	if err != nil {
		return err
	}
	rowsAffected, err := checkRowsAffected(result)
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrMatchNotFound
	}
	return nil
}

func (r *postgresMatchRepository) SetMVP(ctx context.Context, exec SQLExecutor, id string, mvpPlayerID *string) error {
	if exec == nil {
		exec = r.db
	}
	result, err := exec.ExecContext(ctx,
		`UPDATE matches SET mvp_player_id = $1 WHERE id = $2`, mvpPlayerID, id)
	if err != nil {
		return err
	}
	rowsAffected, err := checkRowsAffected(result)
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrMatchNotFound
	}
	return nil
}

// AddPlayer and RemovePlayer are set-style updates: commutative under
// concurrent use, unlike ReplaceRoster which is last-write-wins.
func (r *postgresMatchRepository) AddPlayer(ctx context.Context, exec SQLExecutor, matchID string, side models.TeamSide, playerID string) error {
	if exec == nil {
		exec = r.db
	}
	result, err := exec.ExecContext(ctx, `
		INSERT INTO match_players (match_id, side, player_id)
		VALUES ($1, $2, $3)
		ON CONFLICT (match_id, player_id) DO NOTHING`,
		matchID, side, playerID)
	if err != nil {
		return err
	}
	rowsAffected, err := checkRowsAffected(result)
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrMatchPlayerConflict
	}
	return nil
}

func (r *postgresMatchRepository) RemovePlayer(ctx context.Context, exec SQLExecutor, matchID, playerID string) error {
	if exec == nil {
		exec = r.db
	}
	result, err := exec.ExecContext(ctx,
		`DELETE FROM match_players WHERE match_id = $1 AND player_id = $2`, matchID, playerID)
	if err != nil {
		return err
	}
	rowsAffected, err := checkRowsAffected(result)
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrMatchPlayerNotFound
	}
	return nil
}

func (r *postgresMatchRepository) ReplaceRoster(ctx context.Context, exec SQLExecutor, matchID string, sideA, sideB []string) error {
	if _, err := exec.ExecContext(ctx, `DELETE FROM match_players WHERE match_id = $1`, matchID); err != nil {
		return err
	}
	for _, playerID := range sideA {
		if _, err := exec.ExecContext(ctx,
			`INSERT INTO match_players (match_id, side, player_id) VALUES ($1, $2, $3)`,
			matchID, models.SideA, playerID); err != nil {
			return err
		}
	}
	for _, playerID := range sideB {
		if _, err := exec.ExecContext(ctx,
			`INSERT INTO match_players (match_id, side, player_id) VALUES ($1, $2, $3)`,
			matchID, models.SideB, playerID); err != nil {
			return err
		}
	}
	return nil
}

func (r *postgresMatchRepository) AddApplicant(ctx context.Context, exec SQLExecutor, matchID, playerID string) error {
	if exec == nil {
		exec = r.db
	}
	result, err := exec.ExecContext(ctx, `
		INSERT INTO match_applications (match_id, player_id)
		VALUES ($1, $2)
		ON CONFLICT (match_id, player_id) DO NOTHING`,
		matchID, playerID)
	if err != nil {
		return err
	}
	rowsAffected, err := checkRowsAffected(result)
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrApplicationConflict
	}
	return nil
}

func (r *postgresMatchRepository) RemoveApplicant(ctx context.Context, exec SQLExecutor, matchID, playerID string) error {
	if exec == nil {
		exec = r.db
	}
	result, err := exec.ExecContext(ctx,
		`DELETE FROM match_applications WHERE match_id = $1 AND player_id = $2`, matchID, playerID)
	if err != nil {
		return err
	}
	rowsAffected, err := checkRowsAffected(result)
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrApplicationNotFound
	}
	return nil
}

func (r *postgresMatchRepository) Delete(ctx context.Context, exec SQLExecutor, id string) error {
	if _, err := exec.ExecContext(ctx, `DELETE FROM match_players WHERE match_id = $1`, id); err != nil {
		return err
	}
	if _, err := exec.ExecContext(ctx, `DELETE FROM match_applications WHERE match_id = $1`, id); err != nil {
		return err
	}
	if _, err := exec.ExecContext(ctx, `DELETE FROM match_events WHERE match_id = $1`, id); err != nil {
		return err
	}
	if _, err := exec.ExecContext(ctx, `DELETE FROM mvp_votes WHERE match_id = $1`, id); err != nil {
		return err
	}
	result, err := exec.ExecContext(ctx, `DELETE FROM matches WHERE id = $1`, id)
	if err != nil {
		return err
	}
	rowsAffected, err := checkRowsAffected(result)
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrMatchNotFound
	}
	return nil
}

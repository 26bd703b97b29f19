package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/Dosada05/matchday-system/models"
)

var ErrInvitationNotFound = errors.New("invitation not found")

type InvitationRepository interface {
	Create(ctx context.Context, exec SQLExecutor, invitation *models.PlayerInvitation) error
	GetByID(ctx context.Context, id string) (*models.PlayerInvitation, error)
	ListByMatch(ctx context.Context, matchID string) ([]*models.PlayerInvitation, error)
	UpdateStatus(ctx context.Context, exec SQLExecutor, id string, status models.InvitationStatus) error
}

type postgresInvitationRepository struct {
	db *sql.DB
}

func NewPostgresInvitationRepository(db *sql.DB) InvitationRepository {
	return &postgresInvitationRepository{db: db}
}

func (r *postgresInvitationRepository) Create(ctx context.Context, exec SQLExecutor, invitation *models.PlayerInvitation) error {
	if exec == nil {
		exec = r.db
	}
	query := `
		INSERT INTO player_invitations (id, match_id, team_id, player_id, inviter_id, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at`

	return exec.QueryRowContext(ctx, query,
		invitation.ID,
		invitation.MatchID,
		invitation.TeamID,
		invitation.PlayerID,
		invitation.InviterID,
		invitation.Status,
	).Scan(&invitation.CreatedAt)
}

const invitationColumns = `id, match_id, team_id, player_id, inviter_id, status, created_at`

func (r *postgresInvitationRepository) GetByID(ctx context.Context, id string) (*models.PlayerInvitation, error) {
	query := `SELECT ` + invitationColumns + ` FROM player_invitations WHERE id = $1`

	invitation := &models.PlayerInvitation{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&invitation.ID,
		&invitation.MatchID,
		&invitation.TeamID,
		&invitation.PlayerID,
		&invitation.InviterID,
		&invitation.Status,
		&invitation.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrInvitationNotFound
		}
		return nil, err
	}
	return invitation, nil
}

func (r *postgresInvitationRepository) ListByMatch(ctx context.Context, matchID string) ([]*models.PlayerInvitation, error) {
	query := `SELECT ` + invitationColumns + `
		FROM player_invitations
		WHERE match_id = $1
		ORDER BY created_at ASC`

	rows, err := r.db.QueryContext(ctx, query, matchID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	invitations := make([]*models.PlayerInvitation, 0)
	for rows.Next() {
		invitation := &models.PlayerInvitation{}
		if err := rows.Scan(
			&invitation.ID,
			&invitation.MatchID,
			&invitation.TeamID,
			&invitation.PlayerID,
			&invitation.InviterID,
			&invitation.Status,
			&invitation.CreatedAt,
		); err != nil {
			return nil, err
		}
		invitations = append(invitations, invitation)
	}
	return invitations, rows.Err()
}

func (r *postgresInvitationRepository) UpdateStatus(ctx context.Context, exec SQLExecutor, id string, status models.InvitationStatus) error {
	if exec == nil {
		exec = r.db
	}
	result, err := exec.ExecContext(ctx,
		`UPDATE player_invitations SET status = $1 WHERE id = $2`, status, id)
	if err != nil {
		return err
	}
	rowsAffected, err := checkRowsAffected(result)
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrInvitationNotFound
	}
	return nil
}

package models

import "time"

type InvitationStatus string

const (
	InvitationPending  InvitationStatus = "pending"
	InvitationAccepted InvitationStatus = "accepted"
	InvitationDeclined InvitationStatus = "declined"
)

// PlayerInvitation is the source of truth for why a directly-invited player
// ended up on (or off) a match roster.
type PlayerInvitation struct {
	ID        string           `json:"id" db:"id"`
	MatchID   string           `json:"match_id" db:"match_id"`
	TeamID    string           `json:"team_id" db:"team_id"`
	PlayerID  string           `json:"player_id" db:"player_id"`
	InviterID string           `json:"inviter_id" db:"inviter_id"`
	Status    InvitationStatus `json:"status" db:"status"`
	CreatedAt time.Time        `json:"created_at" db:"created_at"`
}

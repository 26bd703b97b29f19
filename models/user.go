package models

import "time"

const (
	RolePlayer  = "player"
	RoleManager = "manager"
	RoleOwner   = "owner"
)

type User struct {
	ID           string    `json:"id" db:"id"`
	FirstName    string    `json:"first_name" db:"first_name"`
	LastName     string    `json:"last_name" db:"last_name"`
	Email        string    `json:"email" db:"email"`
	Role         string    `json:"role" db:"role"`
	TeamID       *string   `json:"team_id,omitempty" db:"team_id"`
	PasswordHash string    `json:"-" db:"password_hash"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}

// Session is the explicitly scoped per-request identity, created by the auth
// middleware on each request from the bearer token and passed by value.
// There is no process-wide current user.
type Session struct {
	UserID string
	Role   string
	TeamID *string
}

func (s Session) IsManager() bool {
	return s.Role == RoleManager
}

func (s Session) ManagesTeam(teamID string) bool {
	return s.Role == RoleManager && s.TeamID != nil && *s.TeamID == teamID
}

package models

import "time"

type ChallengeStatus string

const (
	ChallengePending  ChallengeStatus = "pending"
	ChallengeAccepted ChallengeStatus = "accepted"
	ChallengeDeclined ChallengeStatus = "declined"
)

// TeamChallenge is a manager-to-manager request for their team to become
// the opponent in an open match slot.
type TeamChallenge struct {
	ID           string          `json:"id" db:"id"`
	MatchID      string          `json:"match_id" db:"match_id"`
	TeamID       string          `json:"team_id" db:"team_id"`
	ChallengerID string          `json:"challenger_id" db:"challenger_id"`
	Status       ChallengeStatus `json:"status" db:"status"`
	CreatedAt    time.Time       `json:"created_at" db:"created_at"`
}

package models

import "time"

type EventType string

const (
	EventGoal       EventType = "goal"
	EventAssist     EventType = "assist"
	EventYellowCard EventType = "yellow_card"
	EventRedCard    EventType = "red_card"
)

// MatchEvent rows are append-only: during play they drive the live
// scoreboard, after finalize they are the sole source of player/team
// statistics and the MVP score.
type MatchEvent struct {
	ID         string    `json:"id" db:"id"`
	MatchID    string    `json:"match_id" db:"match_id"`
	Type       EventType `json:"type" db:"type"`
	PlayerID   string    `json:"player_id" db:"player_id"`
	PlayerName string    `json:"player_name" db:"player_name"`
	TeamID     string    `json:"team_id" db:"team_id"`
	Minute     int       `json:"minute" db:"minute"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
}

type MVPVote struct {
	ID        string    `json:"id" db:"id"`
	MatchID   string    `json:"match_id" db:"match_id"`
	VoterID   string    `json:"voter_id" db:"voter_id"`
	PlayerID  string    `json:"player_id" db:"player_id"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

package models

import "time"

type MatchStatus string

const (
	MatchStatusPendingOpponent MatchStatus = "pending_opponent"
	MatchStatusScheduled       MatchStatus = "scheduled"
	MatchStatusInProgress      MatchStatus = "in_progress"
	MatchStatusFinished        MatchStatus = "finished"
	MatchStatusCancelled       MatchStatus = "cancelled"
)

type TeamSide string

const (
	SideA TeamSide = "a"
	SideB TeamSide = "b"
)

// Match is the lifecycle aggregate: created when a reservation is confirmed,
// mutated by the roster engine, the event recorder and the settlement engine,
// retained after finishing and hard-deleted (with its reservation and
// payments) on cancellation.
type Match struct {
	ID            string      `json:"id" db:"id"`
	Date          time.Time   `json:"date" db:"date"`
	Hour          int         `json:"hour" db:"hour"`
	PitchID       string      `json:"pitch_id" db:"pitch_id"`
	SportID       string      `json:"sport_id" db:"sport_id"`
	ReservationID *string     `json:"reservation_id,omitempty" db:"reservation_id"`
	Status        MatchStatus `json:"status" db:"status"`
	ManagerID     string      `json:"manager_id" db:"manager_id"`

	// TeamBID is nil for a practice match until a challenge is accepted.
	TeamAID *string `json:"team_a_id,omitempty" db:"team_a_id"`
	TeamBID *string `json:"team_b_id,omitempty" db:"team_b_id"`

	TeamAPlayers []string `json:"team_a_players" db:"-"`
	TeamBPlayers []string `json:"team_b_players" db:"-"`

	// Applications holds pending open-application player ids, distinct from
	// the confirmed roster above.
	Applications []string `json:"player_applications" db:"-"`

	ScoreA      int     `json:"score_a" db:"score_a"`
	ScoreB      int     `json:"score_b" db:"score_b"`
	MVPPlayerID *string `json:"mvp_player_id,omitempty" db:"mvp_player_id"`

	AllowExternalPlayers bool `json:"allow_external_players" db:"allow_external_players"`
	AllowChallenges      bool `json:"allow_challenges" db:"allow_challenges"`

	FinalizedAt *time.Time `json:"finalized_at,omitempty" db:"finalized_at"`
	CreatedAt   time.Time  `json:"created_at" db:"created_at"`
}

// ConfirmedCount is the total confirmed roster size across both sides.
func (m *Match) ConfirmedCount() int {
	return len(m.TeamAPlayers) + len(m.TeamBPlayers)
}

// HasPlayer reports whether playerID is on either confirmed side.
func (m *Match) HasPlayer(playerID string) bool {
	for _, id := range m.TeamAPlayers {
		if id == playerID {
			return true
		}
	}
	for _, id := range m.TeamBPlayers {
		if id == playerID {
			return true
		}
	}
	return false
}

// IsPractice reports whether the match has a single team and no opponent.
func (m *Match) IsPractice() bool {
	return m.TeamBID == nil
}

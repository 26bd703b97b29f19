package models

import "time"

// PlayerProfile carries the cumulative statistics aggregated from match
// events at finalize time.
type PlayerProfile struct {
	ID          string    `json:"id" db:"id"`
	UserID      string    `json:"user_id" db:"user_id"`
	Name        string    `json:"name" db:"name"`
	Goals       int       `json:"goals" db:"goals"`
	Assists     int       `json:"assists" db:"assists"`
	YellowCards int       `json:"yellow_cards" db:"yellow_cards"`
	RedCards    int       `json:"red_cards" db:"red_cards"`
	Wins        int       `json:"wins" db:"wins"`
	Losses      int       `json:"losses" db:"losses"`
	Draws       int       `json:"draws" db:"draws"`
	Form        []string  `json:"form" db:"form"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}

package models

import "time"

// Pitch is read-side only here: pitch CRUD belongs to an external
// collaborator, the orchestrator consumes base price, opening hours and the
// post-game payment flag. BasePrice is integer cents per slot.
type Pitch struct {
	ID           string    `json:"id" db:"id"`
	OwnerID      string    `json:"owner_id" db:"owner_id"`
	Name         string    `json:"name" db:"name"`
	SportID      string    `json:"sport_id" db:"sport_id"`
	BasePrice    int64     `json:"base_price" db:"base_price"`
	OpeningHour  int       `json:"opening_hour" db:"opening_hour"`
	ClosingHour  int       `json:"closing_hour" db:"closing_hour"`
	AllowPostPay bool      `json:"allow_post_pay" db:"allow_post_pay"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}

package models

import "time"

// FormWindow caps the rolling result history kept on teams and player
// profiles: last five results, oldest evicted first.
const FormWindow = 5

type Team struct {
	ID        string    `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	SportID   string    `json:"sport_id" db:"sport_id"`
	ManagerID string    `json:"manager_id" db:"manager_id"`
	PlayerIDs []string  `json:"player_ids" db:"-"`
	Wins      int       `json:"wins" db:"wins"`
	Losses    int       `json:"losses" db:"losses"`
	Draws     int       `json:"draws" db:"draws"`
	Form      []string  `json:"form" db:"form"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`

	BadgeKey *string `json:"-" db:"badge_key"`
	BadgeURL *string `json:"badge_url,omitempty" db:"-"`
}

// PushForm appends a result ("W", "D" or "L") to a rolling form history,
// evicting the oldest entry once the window exceeds FormWindow.
func PushForm(form []string, result string) []string {
	form = append(form, result)
	if len(form) > FormWindow {
		form = form[len(form)-FormWindow:]
	}
	return form
}

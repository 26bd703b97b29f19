package models

type SlotStatus string

const (
	SlotPast           SlotStatus = "past"
	SlotLive           SlotStatus = "live"
	SlotBooked         SlotStatus = "booked"
	SlotOpenForTeam    SlotStatus = "open_for_team"
	SlotOpenForPlayers SlotStatus = "open_for_players"
	SlotAvailable      SlotStatus = "available"
)

// Slot is the resolved availability view of one (day, hour) cell of a
// pitch's schedule. Price is only meaningful when the slot is available;
// MatchID is set whenever a match occupies the slot.
type Slot struct {
	Hour    int        `json:"hour"`
	Status  SlotStatus `json:"status"`
	Price   int64      `json:"price,omitempty"`
	MatchID *string    `json:"match_id,omitempty"`
}

package models

// RosterEntry is the fully-resolved view handed across the component
// boundary to roster consumers: never a raw record.
type RosterEntry struct {
	Player  PlayerProfile `json:"player"`
	Side    TeamSide      `json:"side"`
	TeamID  *string       `json:"team_id,omitempty"`
	Payment *Payment      `json:"payment,omitempty"`
}

// RosterView is the confirmed two-sided roster of a match plus the pending
// intake still outside it.
type RosterView struct {
	MatchID      string             `json:"match_id"`
	Entries      []RosterEntry      `json:"entries"`
	Applications []PlayerProfile    `json:"applications"`
	Invitations  []PlayerInvitation `json:"invitations"`
}

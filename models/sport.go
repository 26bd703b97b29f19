package models

// Sport defines per-side roster size; Capacity is the two-sided total used
// both as the roster ceiling and as the start-game threshold.
type Sport struct {
	ID             string `json:"id" db:"id"`
	Name           string `json:"name" db:"name"`
	PlayersPerSide int    `json:"players_per_side" db:"players_per_side"`
}

func (s *Sport) Capacity() int {
	return 2 * s.PlayersPerSide
}

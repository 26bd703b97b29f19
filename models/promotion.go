package models

import "time"

// Promotion discounts the base slot price when its weekday, hour and date
// range all match. DiscountPercent is 1..100.
type Promotion struct {
	ID              string         `json:"id" db:"id"`
	PitchID         string         `json:"pitch_id" db:"pitch_id"`
	DiscountPercent int            `json:"discount_percent" db:"discount_percent"`
	Weekdays        []time.Weekday `json:"weekdays" db:"weekdays"`
	HourFrom        int            `json:"hour_from" db:"hour_from"`
	HourTo          int            `json:"hour_to" db:"hour_to"`
	StartDate       time.Time      `json:"start_date" db:"start_date"`
	EndDate         time.Time      `json:"end_date" db:"end_date"`
}

// AppliesTo reports whether the promotion covers the given slot.
func (p *Promotion) AppliesTo(pitchID string, at time.Time, hour int) bool {
	if p.PitchID != pitchID {
		return false
	}
	if hour < p.HourFrom || hour >= p.HourTo {
		return false
	}
	if at.Before(p.StartDate) || at.After(p.EndDate) {
		return false
	}
	if len(p.Weekdays) == 0 {
		return true
	}
	day := at.Weekday()
	for _, wd := range p.Weekdays {
		if wd == day {
			return true
		}
	}
	return false
}

package models

import "time"

type ReservationStatus string

const (
	ReservationPending   ReservationStatus = "pending"
	ReservationConfirmed ReservationStatus = "confirmed"
)

type ReservationPaymentStatus string

const (
	ReservationPaymentPending ReservationPaymentStatus = "pending"
	ReservationPaymentSplit   ReservationPaymentStatus = "split"
	ReservationPaymentPaid    ReservationPaymentStatus = "paid"
)

// Reservation is supplied by the booking gateway; the orchestrator only
// reacts to confirmed ones. TotalAmount is integer cents.
type Reservation struct {
	ID            string                   `json:"id" db:"id"`
	PitchID       string                   `json:"pitch_id" db:"pitch_id"`
	Date          time.Time                `json:"date" db:"date"`
	Hour          int                      `json:"hour" db:"hour"`
	ActorID       string                   `json:"actor_id" db:"actor_id"`
	ActorRole     string                   `json:"actor_role" db:"actor_role"`
	Status        ReservationStatus        `json:"status" db:"status"`
	TotalAmount   int64                    `json:"total_amount" db:"total_amount"`
	PaymentStatus ReservationPaymentStatus `json:"payment_status" db:"payment_status"`
	CreatedAt     time.Time                `json:"created_at" db:"created_at"`
}

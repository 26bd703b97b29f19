package models

import "time"

type PaymentType string

const (
	PaymentTypeBooking      PaymentType = "booking"
	PaymentTypeBookingSplit PaymentType = "booking_split"
)

type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "pending"
	PaymentPaid      PaymentStatus = "paid"
	PaymentCancelled PaymentStatus = "cancelled"
	PaymentRefunded  PaymentStatus = "refunded"
)

// Payment amounts are integer cents.
type Payment struct {
	ID            string        `json:"id" db:"id"`
	PayerID       string        `json:"payer_id" db:"payer_id"`
	ReservationID string        `json:"reservation_id" db:"reservation_id"`
	Type          PaymentType   `json:"type" db:"type"`
	Amount        int64         `json:"amount" db:"amount"`
	Status        PaymentStatus `json:"status" db:"status"`
	CreatedAt     time.Time     `json:"created_at" db:"created_at"`
}

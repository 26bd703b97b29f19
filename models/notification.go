package models

import (
	"encoding/json"
	"time"
)

type NotificationType string

const (
	NotificationInvitation      NotificationType = "invitation"
	NotificationApplication     NotificationType = "application"
	NotificationChallenge       NotificationType = "challenge"
	NotificationPaymentReminder NotificationType = "payment_reminder"
	NotificationCancellation    NotificationType = "cancellation"
	NotificationGeneric         NotificationType = "generic"
)

// Notification is the record handed to the external dispatcher; every
// roster/settlement state change that affects another user emits exactly one.
type Notification struct {
	ID          string           `json:"id" db:"id"`
	RecipientID string           `json:"recipient_id" db:"recipient_id"`
	Message     string           `json:"message" db:"message"`
	Link        string           `json:"link" db:"link"`
	Type        NotificationType `json:"type" db:"type"`
	Payload     json.RawMessage  `json:"payload,omitempty" db:"payload"`
	Read        bool             `json:"read" db:"read"`
	CreatedAt   time.Time        `json:"created_at" db:"created_at"`
}

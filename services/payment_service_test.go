package services

import (
	"context"
	"errors"
	"testing"

	"github.com/Dosada05/matchday-system/models"
)

func TestSplitShares(t *testing.T) {
	cases := []struct {
		total int64
		count int
		want  int64
	}{
		{10000, 4, 2500},
		{10000, 3, 3333}, // remainder stays with the manager's own payment
		{99, 100, 0},
		{10000, 0, 0},
		{10000, -1, 0},
	}

	for _, c := range cases {
		if got := splitShares(c.total, c.count); got != c.want {
			t.Errorf("splitShares(%d, %d) = %d, want %d", c.total, c.count, got, c.want)
		}
	}
}

func TestGetOwnShare(t *testing.T) {
	repo := &fakePaymentRepo{payment: &models.Payment{
		ID:            "pay1",
		PayerID:       "u1",
		ReservationID: "res1",
		Type:          models.PaymentTypeBookingSplit,
		Amount:        2500,
		Status:        models.PaymentPending,
	}}
	svc := &paymentService{paymentRepo: repo}

	payment, err := svc.GetOwnShare(context.Background(), models.Session{UserID: "u1"}, "res1")
	if err != nil {
		t.Fatalf("GetOwnShare: %v", err)
	}
	assertEq(t, payment.ID, "pay1")
	assertEq(t, payment.Amount, int64(2500))

	// Another user's reservation yields nothing, not someone else's share.
	if _, err := svc.GetOwnShare(context.Background(), models.Session{UserID: "u2"}, "res1"); !errors.Is(err, ErrPaymentNotFound) {
		t.Errorf("err = %v, want ErrPaymentNotFound", err)
	}
}

package services

import (
	"testing"
	"time"

	"github.com/Dosada05/matchday-system/models"
)

func strptr(s string) *string { return &s }

func testSlotInput(hour int) slotInput {
	return slotInput{
		Pitch: &models.Pitch{ID: "pitch-1", BasePrice: 10000},
		Sport: &models.Sport{ID: "fut5", PlayersPerSide: 5},
		Day:   time.Date(2026, time.September, 5, 0, 0, 0, 0, time.UTC),
		Hour:  hour,
		Now:   time.Date(2026, time.September, 5, 12, 0, 0, 0, time.UTC),
	}
}

func TestResolveSlot_PastWinsOverEverything(t *testing.T) {
	in := testSlotInput(8)
	in.Matches = []*models.Match{{
		ID:     "m1",
		Hour:   8,
		Status: models.MatchStatusInProgress,
	}}

	slot := resolveSlot(in)
	assertEq(t, slot.Status, models.SlotPast)
}

func TestResolveSlot_LiveBeatsBooked(t *testing.T) {
	in := testSlotInput(14)
	in.Matches = []*models.Match{{
		ID:     "m1",
		Hour:   14,
		Status: models.MatchStatusInProgress,
	}}
	in.Reservations = []*models.Reservation{{
		ID:     "r1",
		Hour:   14,
		Status: models.ReservationConfirmed,
	}}

	slot := resolveSlot(in)
	assertEq(t, slot.Status, models.SlotLive)
	if slot.MatchID == nil || *slot.MatchID != "m1" {
		t.Fatalf("expected match id m1, got %v", slot.MatchID)
	}
}

func TestResolveSlot_CancelledMatchDoesNotOccupy(t *testing.T) {
	in := testSlotInput(14)
	in.Matches = []*models.Match{{
		ID:     "m1",
		Hour:   14,
		Status: models.MatchStatusCancelled,
	}}

	slot := resolveSlot(in)
	assertEq(t, slot.Status, models.SlotAvailable)
	assertEq(t, slot.Price, int64(10000))
}

func TestResolveSlot_OpenForTeamForOutsideManager(t *testing.T) {
	in := testSlotInput(15)
	in.Viewer = models.Session{UserID: "u2", Role: models.RoleManager, TeamID: strptr("team-b")}
	in.Matches = []*models.Match{{
		ID:              "m1",
		Hour:            15,
		Status:          models.MatchStatusPendingOpponent,
		ManagerID:       "u1",
		TeamAID:         strptr("team-a"),
		AllowChallenges: true,
	}}

	slot := resolveSlot(in)
	assertEq(t, slot.Status, models.SlotOpenForTeam)
}

func TestResolveSlot_OwnMatchIsJustBooked(t *testing.T) {
	in := testSlotInput(15)
	in.Viewer = models.Session{UserID: "u1", Role: models.RoleManager, TeamID: strptr("team-a")}
	in.Matches = []*models.Match{{
		ID:              "m1",
		Hour:            15,
		Status:          models.MatchStatusPendingOpponent,
		ManagerID:       "u1",
		TeamAID:         strptr("team-a"),
		AllowChallenges: true,
	}}

	slot := resolveSlot(in)
	assertEq(t, slot.Status, models.SlotBooked)
}

func TestResolveSlot_OpenForPlayersWhenShortHanded(t *testing.T) {
	in := testSlotInput(16)
	in.Matches = []*models.Match{{
		ID:                   "m1",
		Hour:                 16,
		Status:               models.MatchStatusScheduled,
		TeamAPlayers:         []string{"p1", "p2", "p3"},
		AllowExternalPlayers: true,
	}}

	slot := resolveSlot(in)
	assertEq(t, slot.Status, models.SlotOpenForPlayers)
}

func TestResolveSlot_FullRosterClosesApplications(t *testing.T) {
	in := testSlotInput(16)
	in.Matches = []*models.Match{{
		ID:                   "m1",
		Hour:                 16,
		Status:               models.MatchStatusScheduled,
		TeamAPlayers:         []string{"p1", "p2", "p3", "p4", "p5"},
		TeamBPlayers:         []string{"p6", "p7", "p8", "p9", "p10"},
		AllowExternalPlayers: true,
	}}

	slot := resolveSlot(in)
	assertEq(t, slot.Status, models.SlotBooked)
}

func TestResolveSlot_AvailableAppliesBestPromotion(t *testing.T) {
	in := testSlotInput(18)
	in.Promotions = []*models.Promotion{
		{
			ID: "promo-10", PitchID: "pitch-1", DiscountPercent: 10,
			HourFrom: 0, HourTo: 24,
			StartDate: in.Day.AddDate(0, 0, -1), EndDate: in.Day.AddDate(0, 0, 1),
		},
		{
			ID: "promo-25", PitchID: "pitch-1", DiscountPercent: 25,
			HourFrom: 0, HourTo: 24,
			StartDate: in.Day.AddDate(0, 0, -1), EndDate: in.Day.AddDate(0, 0, 1),
		},
	}

	slot := resolveSlot(in)
	assertEq(t, slot.Status, models.SlotAvailable)
	assertEq(t, slot.Price, int64(7500))
}

func TestBestPromotion_SkipsNonApplicable(t *testing.T) {
	at := time.Date(2026, time.September, 5, 0, 0, 0, 0, time.UTC)
	promotions := []*models.Promotion{
		{
			ID: "other-pitch", PitchID: "pitch-2", DiscountPercent: 50,
			HourFrom: 0, HourTo: 24,
			StartDate: at.AddDate(0, 0, -1), EndDate: at.AddDate(0, 0, 1),
		},
		{
			ID: "wrong-hours", PitchID: "pitch-1", DiscountPercent: 40,
			HourFrom: 8, HourTo: 12,
			StartDate: at.AddDate(0, 0, -1), EndDate: at.AddDate(0, 0, 1),
		},
		{
			ID: "applies", PitchID: "pitch-1", DiscountPercent: 15,
			HourFrom: 0, HourTo: 24,
			StartDate: at.AddDate(0, 0, -1), EndDate: at.AddDate(0, 0, 1),
		},
	}

	best := bestPromotion(promotions, "pitch-1", at, 18)
	if best == nil {
		t.Fatal("expected a promotion")
	}
	assertEq(t, best.ID, "applies")
}

func TestDiscountedPrice_NilPromotion(t *testing.T) {
	assertEq(t, discountedPrice(10000, nil), int64(10000))
}

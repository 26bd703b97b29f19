package services

import (
	"math/rand"
	"testing"

	"github.com/Dosada05/matchday-system/models"
)

func TestIsValidStatusTransition(t *testing.T) {
	cases := []struct {
		current models.MatchStatus
		next    models.MatchStatus
		want    bool
	}{
		{models.MatchStatusPendingOpponent, models.MatchStatusScheduled, true},
		{models.MatchStatusPendingOpponent, models.MatchStatusCancelled, true},
		{models.MatchStatusScheduled, models.MatchStatusInProgress, true},
		{models.MatchStatusInProgress, models.MatchStatusFinished, true},
		{models.MatchStatusInProgress, models.MatchStatusCancelled, true},
		{models.MatchStatusScheduled, models.MatchStatusScheduled, true},

		{models.MatchStatusScheduled, models.MatchStatusPendingOpponent, false},
		{models.MatchStatusFinished, models.MatchStatusInProgress, false},
		{models.MatchStatusFinished, models.MatchStatusCancelled, false},
		{models.MatchStatusCancelled, models.MatchStatusScheduled, false},
		{models.MatchStatusPendingOpponent, models.MatchStatusInProgress, false},
	}

	for _, c := range cases {
		if got := isValidStatusTransition(c.current, c.next); got != c.want {
			t.Errorf("%s -> %s: got %v want %v", c.current, c.next, got, c.want)
		}
	}
}

func TestShuffleRoster_OddPoolFavorsSideA(t *testing.T) {
	players := []string{"p1", "p2", "p3", "p4", "p5"}
	rng := rand.New(rand.NewSource(1))

	sideA, sideB := shuffleRoster(players, rng)
	assertEq(t, len(sideA), 3)
	assertEq(t, len(sideB), 2)

	seen := make(map[string]int, len(players))
	for _, id := range sideA {
		seen[id]++
	}
	for _, id := range sideB {
		seen[id]++
	}
	for _, id := range players {
		if seen[id] != 1 {
			t.Fatalf("player %s assigned %d times", id, seen[id])
		}
	}
}

func TestBuildFinalizeResult_ScoreAndResults(t *testing.T) {
	match := &models.Match{
		ID:           "m1",
		TeamAPlayers: []string{"p1", "p2"},
		TeamBPlayers: []string{"p3", "p4"},
	}
	events := []*models.MatchEvent{
		{Type: models.EventGoal, PlayerID: "p1"},
		{Type: models.EventGoal, PlayerID: "p1"},
		{Type: models.EventGoal, PlayerID: "p2"},
		{Type: models.EventAssist, PlayerID: "p2"},
		{Type: models.EventGoal, PlayerID: "p3"},
		{Type: models.EventYellowCard, PlayerID: "p4"},
	}

	result := buildFinalizeResult(match, events)
	assertEq(t, result.ScoreA, 3)
	assertEq(t, result.ScoreB, 1)
	assertEq(t, result.ResultA, "W")
	assertEq(t, result.ResultB, "L")

	assertEq(t, result.Players["p1"].Goals, 2)
	assertEq(t, result.Players["p1"].Result, "W")
	assertEq(t, result.Players["p2"].Assists, 1)
	assertEq(t, result.Players["p3"].Result, "L")
	assertEq(t, result.Players["p4"].YellowCards, 1)

	if result.MVPPlayerID == nil || *result.MVPPlayerID != "p1" {
		t.Fatalf("expected MVP p1, got %v", result.MVPPlayerID)
	}
}

func TestBuildFinalizeResult_NoEventsIsScorelessDraw(t *testing.T) {
	match := &models.Match{
		ID:           "m1",
		TeamAPlayers: []string{"p1"},
		TeamBPlayers: []string{"p2"},
	}

	result := buildFinalizeResult(match, nil)
	assertEq(t, result.ScoreA, 0)
	assertEq(t, result.ScoreB, 0)
	assertEq(t, result.ResultA, "D")
	assertEq(t, result.ResultB, "D")
	assertEq(t, result.Players["p1"].Result, "D")
	if result.MVPPlayerID != nil {
		t.Fatalf("expected no MVP, got %v", *result.MVPPlayerID)
	}
}

func TestBuildFinalizeResult_PracticeMatchCountsByRosterSide(t *testing.T) {
	// A practice match has no team B id, so the event's team reference is
	// useless: the roster side has to decide which score a goal lands in.
	match := &models.Match{
		ID:           "m1",
		TeamAPlayers: []string{"p1"},
		TeamBPlayers: []string{"p2"},
	}
	events := []*models.MatchEvent{
		{Type: models.EventGoal, PlayerID: "p2"},
		{Type: models.EventGoal, PlayerID: "p2"},
	}

	result := buildFinalizeResult(match, events)
	assertEq(t, result.ScoreA, 0)
	assertEq(t, result.ScoreB, 2)
	assertEq(t, result.ResultB, "W")
}

func TestMVPFromDeltas_TieGoesToLowestID(t *testing.T) {
	players := map[string]PlayerDelta{
		"p9": {Goals: 1},
		"p2": {Goals: 1},
		"p5": {},
	}

	mvp := mvpFromDeltas(players)
	if mvp == nil {
		t.Fatal("expected an MVP")
	}
	assertEq(t, *mvp, "p2")
}

func TestMVPFromDeltas_CardsCount(t *testing.T) {
	players := map[string]PlayerDelta{
		"p1": {Goals: 2, RedCards: 1},      // 6 - 3 = 3
		"p2": {Goals: 1, Assists: 1},       // 3 + 2 = 5
		"p3": {Assists: 2, YellowCards: 1}, // 4 - 1 = 3
	}

	mvp := mvpFromDeltas(players)
	if mvp == nil {
		t.Fatal("expected an MVP")
	}
	assertEq(t, *mvp, "p2")
}

func TestCancellationPlan(t *testing.T) {
	payments := []*models.Payment{
		{ID: "pay1", PayerID: "u1", Status: models.PaymentPaid},
		{ID: "pay2", PayerID: "u2", Status: models.PaymentPending},
		{ID: "pay3", PayerID: "u3", Status: models.PaymentCancelled},
		{ID: "pay4", PayerID: "u1", Status: models.PaymentPending},
	}

	changes, recipients := cancellationPlan(payments, "mgr")

	assertEq(t, len(changes), 3)
	assertEq(t, changes[0].PaymentID, "pay1")
	assertEq(t, changes[0].To, models.PaymentRefunded)
	assertEq(t, changes[1].To, models.PaymentCancelled)
	assertEq(t, changes[2].PaymentID, "pay4")
	assertEq(t, changes[2].To, models.PaymentCancelled)

	// Distinct payers plus the manager, nobody twice.
	assertEq(t, len(recipients), 4)
	seen := make(map[string]bool)
	for _, id := range recipients {
		if seen[id] {
			t.Fatalf("recipient %s listed twice", id)
		}
		seen[id] = true
	}
	if !seen["mgr"] {
		t.Fatal("manager missing from recipients")
	}
}

func TestCancellationPlan_ManagerNotDuplicated(t *testing.T) {
	payments := []*models.Payment{
		{ID: "pay1", PayerID: "mgr", Status: models.PaymentPaid},
	}

	_, recipients := cancellationPlan(payments, "mgr")
	assertEq(t, len(recipients), 1)
	assertEq(t, recipients[0], "mgr")
}

package services

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/Dosada05/matchday-system/models"
)

func TestChallengeAcceptancePlan_InvitesWholeTeam(t *testing.T) {
	match := &models.Match{ID: "m1"}
	challenge := &models.TeamChallenge{
		ID:           "c1",
		MatchID:      "m1",
		TeamID:       "team-b",
		ChallengerID: "mgr-b",
	}
	members := []string{"p1", "p2", "p3", "p4", "p5"}

	invitations := challengeAcceptancePlan(match, challenge, members)
	assertEq(t, len(invitations), 5)
	for _, inv := range invitations {
		assertEq(t, inv.MatchID, "m1")
		assertEq(t, inv.TeamID, "team-b")
		assertEq(t, inv.InviterID, "mgr-b")
		assertEq(t, inv.Status, models.InvitationPending)
	}
}

func TestChallengeAcceptancePlan_SkipsRosteredPlayers(t *testing.T) {
	match := &models.Match{
		ID:           "m1",
		TeamAPlayers: []string{"p1"},
		TeamBPlayers: []string{"p3"},
	}
	challenge := &models.TeamChallenge{MatchID: "m1", TeamID: "team-b", ChallengerID: "mgr-b"}

	invitations := challengeAcceptancePlan(match, challenge, []string{"p1", "p2", "p3"})
	assertEq(t, len(invitations), 1)
	assertEq(t, invitations[0].PlayerID, "p2")
}

// --- small helpers ---
func assertEq[T comparable](t *testing.T, got, want T) {
	t.Helper()
	if got != want {
		t.Fatalf("got %v want %v", got, want)
	}
}

func TestChallenge_BatchesRowAndNotification(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()
	mock.ExpectBegin()
	mock.ExpectCommit()

	hostTeam := "team-a"
	challengerTeam := "team-b"
	matchRepo := &fakeMatchRepo{match: &models.Match{
		ID:              "m1",
		Status:          models.MatchStatusPendingOpponent,
		ManagerID:       "host",
		TeamAID:         &hostTeam,
		AllowChallenges: true,
	}}
	challengeRepo := &fakeChallengeRepo{}
	notifier := &fakeNotifier{}
	svc := &rosterService{db: db, matchRepo: matchRepo, challengeRepo: challengeRepo, notifier: notifier}

	session := models.Session{UserID: "rival", Role: models.RoleManager, TeamID: &challengerTeam}
	challenge, err := svc.Challenge(context.Background(), session, "m1")
	if err != nil {
		t.Fatalf("Challenge: %v", err)
	}

	if challengeRepo.createExec == nil || notifier.recordExec == nil {
		t.Fatal("expected both writes to run inside the transaction")
	}
	if challengeRepo.createExec != notifier.recordExec {
		t.Error("challenge row and notification used different executors")
	}
	assertEq(t, challenge.TeamID, "team-b")
	assertEq(t, challenge.Status, models.ChallengePending)
	assertEq(t, len(notifier.recorded), 1)
	assertEq(t, notifier.recorded[0].RecipientID, "host")
	assertEq(t, notifier.published, 1)
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("transaction expectations: %v", err)
	}
}

func TestChallenge_RollsBackWhenNotificationFails(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()
	mock.ExpectBegin()
	mock.ExpectRollback()

	hostTeam := "team-a"
	challengerTeam := "team-b"
	matchRepo := &fakeMatchRepo{match: &models.Match{
		ID:              "m1",
		Status:          models.MatchStatusPendingOpponent,
		ManagerID:       "host",
		TeamAID:         &hostTeam,
		AllowChallenges: true,
	}}
	notifier := &fakeNotifier{recordErr: errors.New("insert failed")}
	svc := &rosterService{db: db, matchRepo: matchRepo, challengeRepo: &fakeChallengeRepo{}, notifier: notifier}

	session := models.Session{UserID: "rival", Role: models.RoleManager, TeamID: &challengerTeam}
	if _, err := svc.Challenge(context.Background(), session, "m1"); err == nil {
		t.Fatal("expected an error")
	}

	assertEq(t, notifier.published, 0)
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("transaction expectations: %v", err)
	}
}

func TestRosterRemovalGuard(t *testing.T) {
	manager := models.Session{UserID: "mgr", Role: models.RoleManager}
	scheduled := &models.Match{
		ID:           "m1",
		Status:       models.MatchStatusScheduled,
		ManagerID:    "mgr",
		TeamAPlayers: []string{"p1"},
	}
	started := &models.Match{
		ID:           "m1",
		Status:       models.MatchStatusInProgress,
		ManagerID:    "mgr",
		TeamAPlayers: []string{"p1"},
	}

	cases := []struct {
		name     string
		match    *models.Match
		session  models.Session
		playerID string
		want     error
	}{
		{"manager removes rostered player", scheduled, manager, "p1", nil},
		{"non-manager forbidden", scheduled, models.Session{UserID: "p1"}, "p1", ErrForbiddenOperation},
		{"roster locked after kickoff", started, manager, "p1", ErrInvalidStatusChange},
		{"unknown player", scheduled, manager, "p9", ErrPlayerNotFound},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := rosterRemovalGuard(c.match, c.session, c.playerID); !errors.Is(got, c.want) {
				t.Errorf("guard = %v, want %v", got, c.want)
			}
		})
	}
}

package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Dosada05/matchday-system/models"
)

func TestValidEventType(t *testing.T) {
	for _, typ := range []models.EventType{
		models.EventGoal, models.EventAssist, models.EventYellowCard, models.EventRedCard,
	} {
		if !validEventType(typ) {
			t.Errorf("%s should be valid", typ)
		}
	}
	if validEventType("own_goal") {
		t.Error("own_goal is not a recognised event type")
	}
}

func TestSentOff(t *testing.T) {
	events := []*models.MatchEvent{
		{Type: models.EventYellowCard, PlayerID: "p1"},
		{Type: models.EventRedCard, PlayerID: "p2"},
	}

	if sentOff(events, "p1") {
		t.Error("a yellow card alone does not send a player off")
	}
	if !sentOff(events, "p2") {
		t.Error("p2 holds a red card")
	}
	if sentOff(nil, "p2") {
		t.Error("no events, nobody sent off")
	}
}

func TestTopVoted(t *testing.T) {
	votes := map[string]int{"p1": 2, "p2": 5, "p3": 1}
	top := topVoted(votes)
	if top == nil {
		t.Fatal("expected a top voted player")
	}
	assertEq(t, *top, "p2")
}

func TestTopVoted_TieGoesToLowestID(t *testing.T) {
	votes := map[string]int{"p7": 3, "p4": 3}
	top := topVoted(votes)
	if top == nil {
		t.Fatal("expected a top voted player")
	}
	assertEq(t, *top, "p4")
}

func TestTopVoted_NoVotes(t *testing.T) {
	if top := topVoted(nil); top != nil {
		t.Fatalf("expected nil, got %v", *top)
	}
}

func TestVoteMVP_RequiresFinishedMatch(t *testing.T) {
	cases := []struct {
		name  string
		match *models.Match
	}{
		{"in progress", &models.Match{ID: "m1", Status: models.MatchStatusInProgress, TeamAPlayers: []string{"p1"}}},
		{"scheduled", &models.Match{ID: "m1", Status: models.MatchStatusScheduled, TeamAPlayers: []string{"p1"}}},
		{"finished but not finalized", &models.Match{ID: "m1", Status: models.MatchStatusFinished, TeamAPlayers: []string{"p1"}}},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			svc := NewEventService(&fakeMatchRepo{match: c.match}, &fakeEventRepo{}, nil, nil)
			err := svc.VoteMVP(context.Background(), models.Session{UserID: "v1"}, "m1", "p1")
			if !errors.Is(err, ErrMatchNotFinished) {
				t.Errorf("err = %v, want ErrMatchNotFinished", err)
			}
		})
	}
}

func TestVoteMVP_VotingWindowCloses(t *testing.T) {
	finalized := time.Now().Add(-25 * time.Hour)
	match := &models.Match{
		ID:           "m1",
		Status:       models.MatchStatusFinished,
		FinalizedAt:  &finalized,
		TeamAPlayers: []string{"p1"},
	}
	svc := NewEventService(&fakeMatchRepo{match: match}, &fakeEventRepo{}, nil, nil)

	err := svc.VoteMVP(context.Background(), models.Session{UserID: "v1"}, "m1", "p1")
	if !errors.Is(err, ErrVotingClosed) {
		t.Errorf("err = %v, want ErrVotingClosed", err)
	}
}

func TestVoteMVP_PersistsVoteLeader(t *testing.T) {
	finalized := time.Now().Add(-time.Hour)
	matchRepo := &fakeMatchRepo{match: &models.Match{
		ID:           "m1",
		Status:       models.MatchStatusFinished,
		FinalizedAt:  &finalized,
		TeamAPlayers: []string{"p1", "p2"},
	}}
	eventRepo := &fakeEventRepo{votes: []*models.MVPVote{
		{MatchID: "m1", VoterID: "v1", PlayerID: "p2"},
		{MatchID: "m1", VoterID: "v2", PlayerID: "p2"},
	}}
	svc := NewEventService(matchRepo, eventRepo, nil, nil)

	if err := svc.VoteMVP(context.Background(), models.Session{UserID: "v3"}, "m1", "p1"); err != nil {
		t.Fatalf("VoteMVP: %v", err)
	}

	if matchRepo.mvpSet == nil {
		t.Fatal("expected the vote leader to be written to the match")
	}
	assertEq(t, matchRepo.mvpMatchID, "m1")
	assertEq(t, *matchRepo.mvpSet, "p2") // 2 votes beat the newcomer's 1
}

package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Dosada05/matchday-system/models"
	"github.com/Dosada05/matchday-system/repositories"
	"github.com/google/uuid"
)

// mvpVotingWindow is evaluated by wall-clock comparison on each read and
// write; nothing closes voting at the boundary.
const mvpVotingWindow = 24 * time.Hour

var ErrEventRecordFailed = errors.New("failed to record match event")

type RecordEventInput struct {
	Type     models.EventType `json:"type"`
	PlayerID string           `json:"player_id"`
	Minute   int              `json:"minute"`
}

type Scoreboard struct {
	MatchID string `json:"match_id"`
	ScoreA  int    `json:"score_a"`
	ScoreB  int    `json:"score_b"`
}

type MVPStanding struct {
	MatchID     string         `json:"match_id"`
	MVPPlayerID *string        `json:"mvp_player_id,omitempty"`
	Votes       map[string]int `json:"votes"`
	VotingOpen  bool           `json:"voting_open"`
}

type EventService interface {
	Record(ctx context.Context, session models.Session, matchID string, input RecordEventInput) (*models.MatchEvent, error)
	List(ctx context.Context, matchID string) ([]*models.MatchEvent, error)
	LiveScoreboard(ctx context.Context, matchID string) (*Scoreboard, error)
	VoteMVP(ctx context.Context, session models.Session, matchID, playerID string) error
	Standing(ctx context.Context, matchID string) (*MVPStanding, error)
}

type eventService struct {
	matchRepo  repositories.MatchRepository
	eventRepo  repositories.EventRepository
	playerRepo repositories.PlayerRepository
	hub        Broadcaster
}

func NewEventService(
	matchRepo repositories.MatchRepository,
	eventRepo repositories.EventRepository,
	playerRepo repositories.PlayerRepository,
	hub Broadcaster,
) EventService {
	return &eventService{
		matchRepo:  matchRepo,
		eventRepo:  eventRepo,
		playerRepo: playerRepo,
		hub:        hub,
	}
}

func validEventType(t models.EventType) bool {
	switch t {
	case models.EventGoal, models.EventAssist, models.EventYellowCard, models.EventRedCard:
		return true
	}
	return false
}

// Record appends one event to the match log. Events are never mutated or
// removed; a player holding a red card is rejected from further events.
func (s *eventService) Record(ctx context.Context, session models.Session, matchID string, input RecordEventInput) (*models.MatchEvent, error) {
	if !validEventType(input.Type) {
		return nil, ErrInvalidEventType
	}
	if input.Minute < 0 {
		return nil, ErrEventMinuteNegative
	}

	match, err := s.matchRepo.GetByID(ctx, matchID)
	if err != nil {
		return nil, mapRepoError(err)
	}
	if match.Status != models.MatchStatusInProgress {
		return nil, ErrMatchNotInProgress
	}
	if match.ManagerID != session.UserID {
		return nil, ErrForbiddenOperation
	}
	if !match.HasPlayer(input.PlayerID) {
		return nil, ErrPlayerNotFound
	}

	events, err := s.eventRepo.ListByMatch(ctx, matchID)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrEventRecordFailed, err)
	}
	if sentOff(events, input.PlayerID) {
		return nil, ErrPlayerSentOff
	}

	profile, err := s.playerRepo.GetByID(ctx, input.PlayerID)
	if err != nil {
		return nil, mapRepoError(err)
	}

	teamID := derefString(match.TeamAID)
	for _, id := range match.TeamBPlayers {
		if id == input.PlayerID {
			teamID = derefString(match.TeamBID)
			break
		}
	}

	event := &models.MatchEvent{
		ID:         uuid.NewString(),
		MatchID:    matchID,
		Type:       input.Type,
		PlayerID:   input.PlayerID,
		PlayerName: profile.Name,
		TeamID:     teamID,
		Minute:     input.Minute,
	}
	if err := s.eventRepo.Append(ctx, nil, event); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrEventRecordFailed, err)
	}

	s.hub.BroadcastToRoom("match:"+matchID, event)
	return event, nil
}

func sentOff(events []*models.MatchEvent, playerID string) bool {
	for _, event := range events {
		if event.Type == models.EventRedCard && event.PlayerID == playerID {
			return true
		}
	}
	return false
}

func (s *eventService) List(ctx context.Context, matchID string) ([]*models.MatchEvent, error) {
	if _, err := s.matchRepo.GetByID(ctx, matchID); err != nil {
		return nil, mapRepoError(err)
	}
	events, err := s.eventRepo.ListByMatch(ctx, matchID)
	if err != nil {
		return nil, err
	}
	return events, nil
}

// LiveScoreboard derives the score from the event log; the log is the sole
// source, there is no separate counter to drift from it.
func (s *eventService) LiveScoreboard(ctx context.Context, matchID string) (*Scoreboard, error) {
	match, err := s.matchRepo.GetByID(ctx, matchID)
	if err != nil {
		return nil, mapRepoError(err)
	}
	events, err := s.eventRepo.ListByMatch(ctx, matchID)
	if err != nil {
		return nil, err
	}

	board := &Scoreboard{MatchID: matchID}
	sideB := make(map[string]bool, len(match.TeamBPlayers))
	for _, id := range match.TeamBPlayers {
		sideB[id] = true
	}
	for _, event := range events {
		if event.Type != models.EventGoal {
			continue
		}
		if sideB[event.PlayerID] {
			board.ScoreB++
		} else {
			board.ScoreA++
		}
	}
	return board, nil
}

func (s *eventService) VoteMVP(ctx context.Context, session models.Session, matchID, playerID string) error {
	match, err := s.matchRepo.GetByID(ctx, matchID)
	if err != nil {
		return mapRepoError(err)
	}
	if match.Status != models.MatchStatusFinished || match.FinalizedAt == nil {
		return ErrMatchNotFinished
	}
	if time.Since(*match.FinalizedAt) > mvpVotingWindow {
		return ErrVotingClosed
	}
	if !match.HasPlayer(playerID) {
		return ErrPlayerNotFound
	}

	vote := &models.MVPVote{
		ID:       uuid.NewString(),
		MatchID:  matchID,
		VoterID:  session.UserID,
		PlayerID: playerID,
	}
	if err := s.eventRepo.UpsertVote(ctx, vote); err != nil {
		return fmt.Errorf("failed to record mvp vote: %w", err)
	}

	// Votes override the event-derived pick; persist the current leader so
	// the match row stays the authoritative MVP record.
	votes, err := s.eventRepo.ListVotes(ctx, matchID)
	if err != nil {
		return fmt.Errorf("failed to tally mvp votes: %w", err)
	}
	tally := make(map[string]int, len(votes))
	for _, v := range votes {
		tally[v.PlayerID]++
	}
	if top := topVoted(tally); top != nil {
		if err := s.matchRepo.SetMVP(ctx, nil, matchID, top); err != nil {
			return mapRepoError(err)
		}
	}
	return nil
}

// Standing tallies the votes; when voters showed up, the top-voted player
// overrides the event-derived MVP, ties going to the lowest player id.
func (s *eventService) Standing(ctx context.Context, matchID string) (*MVPStanding, error) {
	match, err := s.matchRepo.GetByID(ctx, matchID)
	if err != nil {
		return nil, mapRepoError(err)
	}
	votes, err := s.eventRepo.ListVotes(ctx, matchID)
	if err != nil {
		return nil, err
	}

	standing := &MVPStanding{
		MatchID:     matchID,
		MVPPlayerID: match.MVPPlayerID,
		Votes:       make(map[string]int, len(votes)),
	}
	for _, vote := range votes {
		standing.Votes[vote.PlayerID]++
	}
	if top := topVoted(standing.Votes); top != nil {
		standing.MVPPlayerID = top
	}
	if match.FinalizedAt != nil {
		standing.VotingOpen = match.Status == models.MatchStatusFinished &&
			time.Since(*match.FinalizedAt) <= mvpVotingWindow
	}
	return standing, nil
}

func topVoted(votes map[string]int) *string {
	var (
		bestID    string
		bestCount int
	)
	for playerID, count := range votes {
		if count > bestCount || (count == bestCount && bestCount > 0 && playerID < bestID) {
			bestID, bestCount = playerID, count
		}
	}
	if bestCount == 0 {
		return nil
	}
	return &bestID
}

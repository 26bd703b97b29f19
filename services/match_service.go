package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"github.com/Dosada05/matchday-system/models"
	"github.com/Dosada05/matchday-system/repositories"
	"github.com/google/uuid"
)

var ErrMatchFinalizeFailed = errors.New("failed to finalize match")

type BookingInput struct {
	PitchID              string    `json:"pitch_id"`
	Date                 time.Time `json:"date"`
	Hour                 int       `json:"hour"`
	TeamAID              *string   `json:"team_a_id,omitempty"`
	TotalAmount          int64     `json:"total_amount"`
	AllowExternalPlayers bool      `json:"allow_external_players"`
	AllowChallenges      bool      `json:"allow_challenges"`
}

type MatchService interface {
	ConfirmBooking(ctx context.Context, session models.Session, input BookingInput) (*models.Match, error)
	Get(ctx context.Context, id string) (*models.Match, error)
	Start(ctx context.Context, session models.Session, matchID string) (*models.Match, error)
	Finalize(ctx context.Context, session models.Session, matchID string) (*FinalizeResult, error)
	Delete(ctx context.Context, session models.Session, matchID string) error
}

type matchService struct {
	db              *sql.DB
	matchRepo       repositories.MatchRepository
	teamRepo        repositories.TeamRepository
	playerRepo      repositories.PlayerRepository
	eventRepo       repositories.EventRepository
	reservationRepo repositories.ReservationRepository
	paymentRepo     repositories.PaymentRepository
	pitchRepo       repositories.PitchRepository
	notifier        Notifier
	hub             Broadcaster
	logger          *slog.Logger
}

func NewMatchService(
	db *sql.DB,
	matchRepo repositories.MatchRepository,
	teamRepo repositories.TeamRepository,
	playerRepo repositories.PlayerRepository,
	eventRepo repositories.EventRepository,
	reservationRepo repositories.ReservationRepository,
	paymentRepo repositories.PaymentRepository,
	pitchRepo repositories.PitchRepository,
	notifier Notifier,
	hub Broadcaster,
	logger *slog.Logger,
) MatchService {
	return &matchService{
		db:              db,
		matchRepo:       matchRepo,
		teamRepo:        teamRepo,
		playerRepo:      playerRepo,
		eventRepo:       eventRepo,
		reservationRepo: reservationRepo,
		paymentRepo:     paymentRepo,
		pitchRepo:       pitchRepo,
		notifier:        notifier,
		hub:             hub,
		logger:          logger,
	}
}

// ConfirmBooking is the booking-gateway entry point: a confirmed reservation
// and its match are created in one batch. The match starts in
// pending_opponent when it still wants a second team, scheduled otherwise.
func (s *matchService) ConfirmBooking(ctx context.Context, session models.Session, input BookingInput) (*models.Match, error) {
	if input.PitchID == "" || input.Date.IsZero() || input.TotalAmount <= 0 {
		return nil, ErrValidationFailed
	}

	pitch, err := s.pitchRepo.GetByID(ctx, input.PitchID)
	if err != nil {
		return nil, mapRepoError(err)
	}
	if input.Hour < pitch.OpeningHour || input.Hour >= pitch.ClosingHour {
		return nil, ErrValidationFailed
	}
	if input.TeamAID != nil {
		if _, err := s.teamRepo.GetByID(ctx, *input.TeamAID); err != nil {
			return nil, mapRepoError(err)
		}
	}

	status := models.MatchStatusScheduled
	if input.AllowChallenges {
		status = models.MatchStatusPendingOpponent
	}

	reservation := &models.Reservation{
		ID:            uuid.NewString(),
		PitchID:       input.PitchID,
		Date:          input.Date,
		Hour:          input.Hour,
		ActorID:       session.UserID,
		ActorRole:     session.Role,
		Status:        models.ReservationConfirmed,
		TotalAmount:   input.TotalAmount,
		PaymentStatus: models.ReservationPaymentPending,
	}

	match := &models.Match{
		ID:                   uuid.NewString(),
		Date:                 input.Date,
		Hour:                 input.Hour,
		PitchID:              input.PitchID,
		SportID:              pitch.SportID,
		ReservationID:        &reservation.ID,
		Status:               status,
		ManagerID:            session.UserID,
		TeamAID:              input.TeamAID,
		AllowExternalPlayers: input.AllowExternalPlayers,
		AllowChallenges:      input.AllowChallenges,
		TeamAPlayers:         []string{},
		TeamBPlayers:         []string{},
		Applications:         []string{},
	}

	err = repositories.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		if err := s.reservationRepo.Create(ctx, tx, reservation); err != nil {
			return err
		}
		return s.matchRepo.Create(ctx, tx, match)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to confirm booking: %w", err)
	}

	s.broadcastMatch(match)
	return match, nil
}

func (s *matchService) Get(ctx context.Context, id string) (*models.Match, error) {
	match, err := s.matchRepo.GetByID(ctx, id)
	if err != nil {
		return nil, mapRepoError(err)
	}
	return match, nil
}

// Start moves a scheduled match to in_progress. Guards: the confirmed roster
// must have reached the sport's capacity and the reservation must be paid
// (or the pitch allows post-game payment). A practice match with no explicit
// side split is auto-shuffled. Everything commits in one batch.
func (s *matchService) Start(ctx context.Context, session models.Session, matchID string) (*models.Match, error) {
	var started *models.Match

	err := repositories.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		match, err := s.matchRepo.GetByIDExec(ctx, tx, matchID)
		if err != nil {
			return err
		}
		if match.ManagerID != session.UserID {
			return ErrForbiddenOperation
		}
		if !isValidStatusTransition(match.Status, models.MatchStatusInProgress) || match.Status == models.MatchStatusInProgress {
			return ErrMatchNotStartable
		}

		sport, err := s.pitchRepo.GetSport(ctx, match.SportID)
		if err != nil {
			return err
		}
		if match.ConfirmedCount() < sport.Capacity() {
			return ErrRosterTooSmall
		}

		if match.ReservationID != nil {
			reservation, err := s.reservationRepo.GetByIDExec(ctx, tx, *match.ReservationID)
			if err != nil {
				return err
			}
			pitch, err := s.pitchRepo.GetByID(ctx, match.PitchID)
			if err != nil {
				return err
			}
			if reservation.PaymentStatus != models.ReservationPaymentPaid && !pitch.AllowPostPay {
				return ErrReservationNotPaid
			}
		}

		if match.IsPractice() && len(match.TeamBPlayers) == 0 {
			sideA, sideB := shuffleRoster(match.TeamAPlayers, rand.New(rand.NewSource(time.Now().UnixNano())))
			if err := s.matchRepo.ReplaceRoster(ctx, tx, match.ID, sideA, sideB); err != nil {
				return err
			}
			match.TeamAPlayers = sideA
			match.TeamBPlayers = sideB
		}

		if err := s.matchRepo.UpdateStatus(ctx, tx, match.ID, models.MatchStatusInProgress); err != nil {
			return err
		}
		match.Status = models.MatchStatusInProgress
		started = match
		return nil
	})
	if err != nil {
		return nil, mapRepoError(err)
	}

	s.broadcastMatch(started)
	return started, nil
}

// shuffleRoster randomly partitions the confirmed pool into two sides,
// ceil-division favoring side A.
func shuffleRoster(players []string, rng *rand.Rand) (sideA, sideB []string) {
	shuffled := make([]string, len(players))
	copy(shuffled, players)
	rng.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})

	half := (len(shuffled) + 1) / 2
	return shuffled[:half], shuffled[half:]
}

// FinalizeResult is the finalize command object: computed purely from a
// snapshot read immediately before commit, then applied as one batch.
type FinalizeResult struct {
	MatchID     string                 `json:"match_id"`
	ScoreA      int                    `json:"score_a"`
	ScoreB      int                    `json:"score_b"`
	ResultA     string                 `json:"result_a"`
	ResultB     string                 `json:"result_b"`
	MVPPlayerID *string                `json:"mvp_player_id,omitempty"`
	Players     map[string]PlayerDelta `json:"players"`
}

type PlayerDelta struct {
	Goals       int    `json:"goals"`
	Assists     int    `json:"assists"`
	YellowCards int    `json:"yellow_cards"`
	RedCards    int    `json:"red_cards"`
	Result      string `json:"result"`
}

// buildFinalizeResult derives the authoritative score, both team results,
// per-player stat deltas and the MVP from the event log. Goals are counted
// per roster side rather than trusting the event's team reference, which is
// absent for practice matches.
func buildFinalizeResult(match *models.Match, events []*models.MatchEvent) FinalizeResult {
	result := FinalizeResult{
		MatchID: match.ID,
		Players: make(map[string]PlayerDelta, match.ConfirmedCount()),
	}

	sideOf := make(map[string]models.TeamSide, match.ConfirmedCount())
	for _, id := range match.TeamAPlayers {
		sideOf[id] = models.SideA
		result.Players[id] = PlayerDelta{}
	}
	for _, id := range match.TeamBPlayers {
		sideOf[id] = models.SideB
		result.Players[id] = PlayerDelta{}
	}

	for _, event := range events {
		delta := result.Players[event.PlayerID]
		switch event.Type {
		case models.EventGoal:
			delta.Goals++
			if sideOf[event.PlayerID] == models.SideB {
				result.ScoreB++
			} else {
				result.ScoreA++
			}
		case models.EventAssist:
			delta.Assists++
		case models.EventYellowCard:
			delta.YellowCards++
		case models.EventRedCard:
			delta.RedCards++
		}
		result.Players[event.PlayerID] = delta
	}

	switch {
	case result.ScoreA > result.ScoreB:
		result.ResultA, result.ResultB = "W", "L"
	case result.ScoreA < result.ScoreB:
		result.ResultA, result.ResultB = "L", "W"
	default:
		result.ResultA, result.ResultB = "D", "D"
	}

	for playerID, delta := range result.Players {
		if sideOf[playerID] == models.SideB {
			delta.Result = result.ResultB
		} else {
			delta.Result = result.ResultA
		}
		result.Players[playerID] = delta
	}

	result.MVPPlayerID = mvpFromDeltas(result.Players)
	return result
}

// mvpFromDeltas scores Goal +3, Assist +2, YellowCard -1, RedCard -3 and
// returns the highest-scoring player; ties go to the lowest player id so the
// pick is reproducible.
func mvpFromDeltas(players map[string]PlayerDelta) *string {
	var (
		bestID    string
		bestScore int
		found     bool
	)
	for playerID, delta := range players {
		score := delta.Goals*3 + delta.Assists*2 - delta.YellowCards - delta.RedCards*3
		if delta.Goals == 0 && delta.Assists == 0 && delta.YellowCards == 0 && delta.RedCards == 0 {
			continue
		}
		if !found || score > bestScore || (score == bestScore && playerID < bestID) {
			bestID, bestScore, found = playerID, score, true
		}
	}
	if !found {
		return nil
	}
	return &bestID
}

// Finalize freezes the score and propagates statistics. The match status and
// score, every player profile and both team records are written in a single
// transaction: a failed attempt leaves all of them exactly as they were.
func (s *matchService) Finalize(ctx context.Context, session models.Session, matchID string) (*FinalizeResult, error) {
	var result FinalizeResult

	err := repositories.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		match, err := s.matchRepo.GetByIDExec(ctx, tx, matchID)
		if err != nil {
			return err
		}
		if match.ManagerID != session.UserID {
			return ErrForbiddenOperation
		}
		if match.Status == models.MatchStatusFinished {
			return ErrMatchAlreadyFinalized
		}
		if match.Status != models.MatchStatusInProgress {
			return ErrMatchNotInProgress
		}

		events, err := s.eventRepo.ListByMatchExec(ctx, tx, matchID)
		if err != nil {
			return err
		}

		result = buildFinalizeResult(match, events)
		now := time.Now()

		if err := s.matchRepo.SetFinalized(ctx, tx, match.ID, result.ScoreA, result.ScoreB, result.MVPPlayerID, now); err != nil {
			return err
		}

		if err := s.applyTeamResult(ctx, tx, match.TeamAID, result.ResultA); err != nil {
			return err
		}
		if err := s.applyTeamResult(ctx, tx, match.TeamBID, result.ResultB); err != nil {
			return err
		}

		for playerID, delta := range result.Players {
			profile, err := s.playerRepo.GetByIDExec(ctx, tx, playerID)
			if err != nil {
				return err
			}
			profile.Goals += delta.Goals
			profile.Assists += delta.Assists
			profile.YellowCards += delta.YellowCards
			profile.RedCards += delta.RedCards
			switch delta.Result {
			case "W":
				profile.Wins++
			case "L":
				profile.Losses++
			default:
				profile.Draws++
			}
			profile.Form = models.PushForm(profile.Form, delta.Result)
			if err := s.playerRepo.ApplyStats(ctx, tx, profile); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrForbiddenOperation) || errors.Is(err, ErrMatchAlreadyFinalized) || errors.Is(err, ErrMatchNotInProgress) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %w", ErrMatchFinalizeFailed, mapRepoError(err))
	}

	s.hub.BroadcastToRoom("match:"+matchID, result)
	return &result, nil
}

func (s *matchService) applyTeamResult(ctx context.Context, tx *sql.Tx, teamID *string, outcome string) error {
	if teamID == nil {
		return nil
	}
	team, err := s.teamRepo.GetByIDExec(ctx, tx, *teamID)
	if err != nil {
		return err
	}
	switch outcome {
	case "W":
		team.Wins++
	case "L":
		team.Losses++
	default:
		team.Draws++
	}
	team.Form = models.PushForm(team.Form, outcome)
	return s.teamRepo.ApplyResult(ctx, tx, team.ID, team.Wins, team.Losses, team.Draws, team.Form)
}

// paymentChange is one entry of the cancellation cascade.
type paymentChange struct {
	PaymentID string
	To        models.PaymentStatus
}

// cancellationPlan maps every payment of the reservation to its cascade
// status (paid → refunded, pending → cancelled) and collects the distinct
// payers, plus the manager, to notify.
func cancellationPlan(payments []*models.Payment, managerID string) ([]paymentChange, []string) {
	changes := make([]paymentChange, 0, len(payments))
	seen := make(map[string]bool, len(payments)+1)
	recipients := make([]string, 0, len(payments)+1)

	for _, payment := range payments {
		switch payment.Status {
		case models.PaymentPaid:
			changes = append(changes, paymentChange{PaymentID: payment.ID, To: models.PaymentRefunded})
		case models.PaymentPending:
			changes = append(changes, paymentChange{PaymentID: payment.ID, To: models.PaymentCancelled})
		}
		if !seen[payment.PayerID] {
			seen[payment.PayerID] = true
			recipients = append(recipients, payment.PayerID)
		}
	}
	if !seen[managerID] {
		recipients = append(recipients, managerID)
	}
	return changes, recipients
}

// Delete cancels a pre-finished match: the payment cascade, the cancellation
// notifications and the removal of reservation and match rows commit as one
// batch.
func (s *matchService) Delete(ctx context.Context, session models.Session, matchID string) error {
	var published []*models.Notification

	err := repositories.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		match, err := s.matchRepo.GetByIDExec(ctx, tx, matchID)
		if err != nil {
			return err
		}
		if match.ManagerID != session.UserID {
			return ErrForbiddenOperation
		}
		if match.Status == models.MatchStatusFinished {
			return ErrInvalidStatusChange
		}

		if match.ReservationID != nil {
			payments, err := s.paymentRepo.ListByReservationExec(ctx, tx, *match.ReservationID)
			if err != nil {
				return err
			}
			changes, recipients := cancellationPlan(payments, match.ManagerID)
			for _, change := range changes {
				if err := s.paymentRepo.UpdateStatus(ctx, tx, change.PaymentID, change.To); err != nil {
					return err
				}
			}
			for _, recipientID := range recipients {
				notification, err := s.notifier.Record(ctx, tx, NotificationInput{
					RecipientID: recipientID,
					Message:     "Your match was cancelled and its payments were settled.",
					Link:        "/matches",
					Type:        models.NotificationCancellation,
					Payload:     map[string]string{"match_id": match.ID},
				})
				if err != nil {
					return err
				}
				published = append(published, notification)
			}
			if err := s.reservationRepo.Delete(ctx, tx, *match.ReservationID); err != nil {
				return err
			}
		}

		return s.matchRepo.Delete(ctx, tx, match.ID)
	})
	if err != nil {
		return mapRepoError(err)
	}

	s.notifier.Publish(ctx, published...)
	s.hub.BroadcastToRoom("match:"+matchID, map[string]string{"type": "MATCH_CANCELLED", "match_id": matchID})
	return nil
}

func (s *matchService) broadcastMatch(match *models.Match) {
	if match == nil {
		return
	}
	s.hub.BroadcastToRoom("match:"+match.ID, match)
}

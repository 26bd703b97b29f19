package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/Dosada05/matchday-system/models"
	"github.com/Dosada05/matchday-system/repositories"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

var ErrRosterViewFailed = errors.New("failed to assemble roster view")

type RosterService interface {
	InvitePlayer(ctx context.Context, session models.Session, matchID, teamID, playerID string) (*models.PlayerInvitation, error)
	RespondInvitation(ctx context.Context, session models.Session, invitationID string, accept bool) error
	Apply(ctx context.Context, session models.Session, matchID string) error
	RespondApplication(ctx context.Context, session models.Session, matchID, playerID string, accept bool) error
	RemovePlayer(ctx context.Context, session models.Session, matchID, playerID string) error
	Challenge(ctx context.Context, session models.Session, matchID string) (*models.TeamChallenge, error)
	RespondChallenge(ctx context.Context, session models.Session, challengeID string, accept bool) error
	View(ctx context.Context, matchID string) (*models.RosterView, error)
}

type rosterService struct {
	db             *sql.DB
	matchRepo      repositories.MatchRepository
	teamRepo       repositories.TeamRepository
	playerRepo     repositories.PlayerRepository
	invitationRepo repositories.InvitationRepository
	challengeRepo  repositories.ChallengeRepository
	paymentRepo    repositories.PaymentRepository
	pitchRepo      repositories.PitchRepository
	notifier       Notifier
	hub            Broadcaster
	logger         *slog.Logger
}

func NewRosterService(
	db *sql.DB,
	matchRepo repositories.MatchRepository,
	teamRepo repositories.TeamRepository,
	playerRepo repositories.PlayerRepository,
	invitationRepo repositories.InvitationRepository,
	challengeRepo repositories.ChallengeRepository,
	paymentRepo repositories.PaymentRepository,
	pitchRepo repositories.PitchRepository,
	notifier Notifier,
	hub Broadcaster,
	logger *slog.Logger,
) RosterService {
	return &rosterService{
		db:             db,
		matchRepo:      matchRepo,
		teamRepo:       teamRepo,
		playerRepo:     playerRepo,
		invitationRepo: invitationRepo,
		challengeRepo:  challengeRepo,
		paymentRepo:    paymentRepo,
		pitchRepo:      pitchRepo,
		notifier:       notifier,
		hub:            hub,
		logger:         logger,
	}
}

// InvitePlayer starts the direct-invitation channel: a manager invites a
// known player onto their team's side of the match.
func (s *rosterService) InvitePlayer(ctx context.Context, session models.Session, matchID, teamID, playerID string) (*models.PlayerInvitation, error) {
	if matchID == "" || teamID == "" || playerID == "" {
		return nil, ErrValidationFailed
	}
	if !session.ManagesTeam(teamID) {
		return nil, ErrManagerActionRequired
	}

	match, err := s.matchRepo.GetByID(ctx, matchID)
	if err != nil {
		return nil, mapRepoError(err)
	}
	if derefString(match.TeamAID) != teamID && derefString(match.TeamBID) != teamID {
		return nil, ErrForbiddenOperation
	}
	if match.HasPlayer(playerID) {
		return nil, ErrAlreadyOnRoster
	}
	player, err := s.playerRepo.GetByID(ctx, playerID)
	if err != nil {
		return nil, mapRepoError(err)
	}

	invitation := &models.PlayerInvitation{
		ID:        uuid.NewString(),
		MatchID:   matchID,
		TeamID:    teamID,
		PlayerID:  playerID,
		InviterID: session.UserID,
		Status:    models.InvitationPending,
	}

	var published *models.Notification
	err = repositories.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		if err := s.invitationRepo.Create(ctx, tx, invitation); err != nil {
			return err
		}
		published, err = s.notifier.Record(ctx, tx, NotificationInput{
			RecipientID: player.UserID,
			Message:     "You have been invited to join a match.",
			Link:        "/matches/" + matchID,
			Type:        models.NotificationInvitation,
			Payload:     map[string]string{"invitation_id": invitation.ID, "match_id": matchID},
		})
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create invitation: %w", err)
	}

	s.notifier.Publish(ctx, published)
	return invitation, nil
}

// RespondInvitation closes the invitation: acceptance adds exactly one id to
// the inviting team's side of the roster, a decline leaves it untouched.
// Either way the inviter gets one notification.
func (s *rosterService) RespondInvitation(ctx context.Context, session models.Session, invitationID string, accept bool) error {
	invitation, err := s.invitationRepo.GetByID(ctx, invitationID)
	if err != nil {
		return mapRepoError(err)
	}
	if invitation.PlayerID != session.UserID {
		return ErrForbiddenOperation
	}
	if invitation.Status != models.InvitationPending {
		return ErrAlreadyResponded
	}

	var published *models.Notification
	err = repositories.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		// Snapshot read inside the batch: capacity is validated against it
		// right before commit.
		match, err := s.matchRepo.GetByIDExec(ctx, tx, invitation.MatchID)
		if err != nil {
			return err
		}

		status := models.InvitationDeclined
		message := "Your invitation was declined."
		if accept {
			sport, err := s.pitchRepo.GetSport(ctx, match.SportID)
			if err != nil {
				return err
			}
			if match.ConfirmedCount() >= sport.Capacity() {
				return ErrRosterFull
			}
			side := models.SideA
			if derefString(match.TeamBID) == invitation.TeamID {
				side = models.SideB
			}
			if err := s.matchRepo.AddPlayer(ctx, tx, match.ID, side, invitation.PlayerID); err != nil {
				return err
			}
			if err := s.maybePromote(ctx, tx, match, match.ConfirmedCount()+1, sport.Capacity()); err != nil {
				return err
			}
			status = models.InvitationAccepted
			message = "Your invitation was accepted."
		}

		if err := s.invitationRepo.UpdateStatus(ctx, tx, invitation.ID, status); err != nil {
			return err
		}
		published, err = s.notifier.Record(ctx, tx, NotificationInput{
			RecipientID: invitation.InviterID,
			Message:     message,
			Link:        "/matches/" + invitation.MatchID,
			Type:        models.NotificationInvitation,
			Payload:     map[string]string{"invitation_id": invitation.ID, "match_id": invitation.MatchID},
		})
		return err
	})
	if err != nil {
		return mapRepoError(err)
	}

	s.notifier.Publish(ctx, published)
	s.hub.BroadcastToRoom("match:"+invitation.MatchID, map[string]string{"type": "ROSTER_UPDATED", "match_id": invitation.MatchID})
	return nil
}

// Apply is the open-application channel, gated on the external-players flag
// and remaining capacity.
func (s *rosterService) Apply(ctx context.Context, session models.Session, matchID string) error {
	match, err := s.matchRepo.GetByID(ctx, matchID)
	if err != nil {
		return mapRepoError(err)
	}
	if !match.AllowExternalPlayers {
		return ErrExternalsNotAllowed
	}
	if match.HasPlayer(session.UserID) {
		return ErrAlreadyOnRoster
	}
	sport, err := s.pitchRepo.GetSport(ctx, match.SportID)
	if err != nil {
		return mapRepoError(err)
	}
	if match.ConfirmedCount() >= sport.Capacity() {
		return ErrRosterFull
	}

	var published *models.Notification
	err = repositories.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		if err := s.matchRepo.AddApplicant(ctx, tx, matchID, session.UserID); err != nil {
			return err
		}
		published, err = s.notifier.Record(ctx, tx, NotificationInput{
			RecipientID: match.ManagerID,
			Message:     "A player applied to join your match.",
			Link:        "/matches/" + matchID,
			Type:        models.NotificationApplication,
			Payload:     map[string]string{"match_id": matchID, "player_id": session.UserID},
		})
		return err
	})
	if err != nil {
		return mapRepoError(err)
	}

	s.notifier.Publish(ctx, published)
	return nil
}

// RespondApplication is the manager's half of the open-application channel:
// acceptance moves the applicant onto side A and removes them from the
// applicant set; a decline only removes them. One notification either way.
func (s *rosterService) RespondApplication(ctx context.Context, session models.Session, matchID, playerID string, accept bool) error {
	var published *models.Notification
	var promoted bool

	err := repositories.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		match, err := s.matchRepo.GetByIDExec(ctx, tx, matchID)
		if err != nil {
			return err
		}
		if match.ManagerID != session.UserID {
			return ErrForbiddenOperation
		}

		if err := s.matchRepo.RemoveApplicant(ctx, tx, matchID, playerID); err != nil {
			return err
		}

		message := "Your application was declined."
		if accept {
			sport, err := s.pitchRepo.GetSport(ctx, match.SportID)
			if err != nil {
				return err
			}
			if match.ConfirmedCount() >= sport.Capacity() {
				return ErrRosterFull
			}
			if err := s.matchRepo.AddPlayer(ctx, tx, matchID, models.SideA, playerID); err != nil {
				return err
			}
			if err := s.maybePromote(ctx, tx, match, match.ConfirmedCount()+1, sport.Capacity()); err != nil {
				return err
			}
			promoted = true
			message = "Your application was accepted."
		}

		profile, err := s.playerRepo.GetByIDExec(ctx, tx, playerID)
		if err != nil {
			return err
		}
		published, err = s.notifier.Record(ctx, tx, NotificationInput{
			RecipientID: profile.UserID,
			Message:     message,
			Link:        "/matches/" + matchID,
			Type:        models.NotificationApplication,
			Payload:     map[string]string{"match_id": matchID},
		})
		return err
	})
	if err != nil {
		return mapRepoError(err)
	}

	s.notifier.Publish(ctx, published)
	if promoted {
		s.hub.BroadcastToRoom("match:"+matchID, map[string]string{"type": "ROSTER_UPDATED", "match_id": matchID})
	}
	return nil
}

// rosterRemovalGuard validates a manager-initiated removal against a match
// snapshot. The roster is locked once the match starts.
func rosterRemovalGuard(match *models.Match, session models.Session, playerID string) error {
	if match.ManagerID != session.UserID {
		return ErrForbiddenOperation
	}
	switch match.Status {
	case models.MatchStatusPendingOpponent, models.MatchStatusScheduled:
	default:
		return ErrInvalidStatusChange
	}
	if !match.HasPlayer(playerID) {
		return ErrPlayerNotFound
	}
	return nil
}

// RemovePlayer takes one confirmed player off the roster, a set-remove that
// stays safe under concurrent joins. The removed player gets one
// notification, committed with the removal.
func (s *rosterService) RemovePlayer(ctx context.Context, session models.Session, matchID, playerID string) error {
	var published *models.Notification
	err := repositories.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		match, err := s.matchRepo.GetByIDExec(ctx, tx, matchID)
		if err != nil {
			return err
		}
		if err := rosterRemovalGuard(match, session, playerID); err != nil {
			return err
		}
		if err := s.matchRepo.RemovePlayer(ctx, tx, matchID, playerID); err != nil {
			return err
		}
		published, err = s.notifier.Record(ctx, tx, NotificationInput{
			RecipientID: playerID,
			Message:     "You have been removed from a match roster.",
			Link:        "/matches/" + matchID,
			Type:        models.NotificationGeneric,
			Payload:     map[string]string{"match_id": matchID},
		})
		return err
	})
	if err != nil {
		return mapRepoError(err)
	}

	s.notifier.Publish(ctx, published)
	return nil
}

// Challenge starts the inter-team channel: a manager offers their team as
// the opponent of an open match.
func (s *rosterService) Challenge(ctx context.Context, session models.Session, matchID string) (*models.TeamChallenge, error) {
	if !session.IsManager() || session.TeamID == nil {
		return nil, ErrManagerActionRequired
	}

	match, err := s.matchRepo.GetByID(ctx, matchID)
	if err != nil {
		return nil, mapRepoError(err)
	}
	if !match.AllowChallenges {
		return nil, ErrChallengesNotOpen
	}
	if match.TeamBID != nil {
		return nil, ErrOpponentAlreadySet
	}
	if match.ManagerID == session.UserID {
		return nil, ErrForbiddenOperation
	}

	challenge := &models.TeamChallenge{
		ID:           uuid.NewString(),
		MatchID:      matchID,
		TeamID:       *session.TeamID,
		ChallengerID: session.UserID,
		Status:       models.ChallengePending,
	}
	var published *models.Notification
	err = repositories.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		if err := s.challengeRepo.Create(ctx, tx, challenge); err != nil {
			return err
		}
		published, err = s.notifier.Record(ctx, tx, NotificationInput{
			RecipientID: match.ManagerID,
			Message:     "A team has challenged your match.",
			Link:        "/matches/" + matchID,
			Type:        models.NotificationChallenge,
			Payload:     map[string]string{"challenge_id": challenge.ID, "match_id": matchID, "team_id": challenge.TeamID},
		})
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create challenge: %w", err)
	}

	s.notifier.Publish(ctx, published)
	return challenge, nil
}

// challengeAcceptancePlan lists the bulk invitations created when a
// challenge is accepted: one per challenging-team member not already on the
// roster, each paired with one notification.
func challengeAcceptancePlan(match *models.Match, challenge *models.TeamChallenge, members []string) []*models.PlayerInvitation {
	invitations := make([]*models.PlayerInvitation, 0, len(members))
	for _, playerID := range members {
		if match.HasPlayer(playerID) {
			continue
		}
		invitations = append(invitations, &models.PlayerInvitation{
			ID:        uuid.NewString(),
			MatchID:   match.ID,
			TeamID:    challenge.TeamID,
			PlayerID:  playerID,
			InviterID: challenge.ChallengerID,
			Status:    models.InvitationPending,
		})
	}
	return invitations
}

// RespondChallenge resolves a pending challenge. Acceptance fills the empty
// team-B slot, clears the challenge flag, bulk-invites every member of the
// challenging team and auto-declines the remaining pending challenges. A
// decline fires only the responding notification.
func (s *rosterService) RespondChallenge(ctx context.Context, session models.Session, challengeID string, accept bool) error {
	challenge, err := s.challengeRepo.GetByID(ctx, challengeID)
	if err != nil {
		return mapRepoError(err)
	}
	if challenge.TeamID == "" || challenge.MatchID == "" {
		// Corrupted or legacy record: delete rather than repair, best-effort.
		if delErr := s.challengeRepo.Delete(ctx, challengeID); delErr != nil {
			s.logger.Warn("failed to delete corrupted challenge",
				slog.String("challenge_id", challengeID), slog.Any("error", delErr))
		}
		return ErrChallengeMissingFields
	}
	if challenge.Status != models.ChallengePending {
		return ErrAlreadyResponded
	}

	match, err := s.matchRepo.GetByID(ctx, challenge.MatchID)
	if err != nil {
		return mapRepoError(err)
	}
	if match.ManagerID != session.UserID {
		return ErrForbiddenOperation
	}

	var published []*models.Notification

	if !accept {
		err = repositories.WithTx(ctx, s.db, func(tx *sql.Tx) error {
			if err := s.challengeRepo.UpdateStatus(ctx, tx, challenge.ID, models.ChallengeDeclined); err != nil {
				return err
			}
			notification, err := s.notifier.Record(ctx, tx, NotificationInput{
				RecipientID: challenge.ChallengerID,
				Message:     "Your challenge was declined.",
				Link:        "/matches/" + match.ID,
				Type:        models.NotificationChallenge,
				Payload:     map[string]string{"challenge_id": challenge.ID, "match_id": match.ID},
			})
			if err != nil {
				return err
			}
			published = append(published, notification)
			return nil
		})
		if err != nil {
			return mapRepoError(err)
		}
		s.notifier.Publish(ctx, published...)
		return nil
	}

	if match.TeamBID != nil {
		return ErrOpponentAlreadySet
	}

	challengerTeam, err := s.teamRepo.GetByID(ctx, challenge.TeamID)
	if err != nil {
		return mapRepoError(err)
	}
	stale, err := s.challengeRepo.ListPendingByMatch(ctx, match.ID)
	if err != nil {
		return err
	}

	err = repositories.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		if err := s.matchRepo.SetOpponent(ctx, tx, match.ID, challenge.TeamID); err != nil {
			return err
		}
		if err := s.challengeRepo.UpdateStatus(ctx, tx, challenge.ID, models.ChallengeAccepted); err != nil {
			return err
		}
		// One accepted challenge invalidates the rest.
		for _, other := range stale {
			if other.ID == challenge.ID {
				continue
			}
			if err := s.challengeRepo.UpdateStatus(ctx, tx, other.ID, models.ChallengeDeclined); err != nil {
				return err
			}
		}

		for _, invitation := range challengeAcceptancePlan(match, challenge, challengerTeam.PlayerIDs) {
			if err := s.invitationRepo.Create(ctx, tx, invitation); err != nil {
				return err
			}
			profile, err := s.playerRepo.GetByIDExec(ctx, tx, invitation.PlayerID)
			if err != nil {
				return err
			}
			notification, err := s.notifier.Record(ctx, tx, NotificationInput{
				RecipientID: profile.UserID,
				Message:     "Your team accepted a challenge; join the match roster.",
				Link:        "/matches/" + match.ID,
				Type:        models.NotificationInvitation,
				Payload:     map[string]string{"invitation_id": invitation.ID, "match_id": match.ID},
			})
			if err != nil {
				return err
			}
			published = append(published, notification)
		}

		notification, err := s.notifier.Record(ctx, tx, NotificationInput{
			RecipientID: challenge.ChallengerID,
			Message:     "Your challenge was accepted.",
			Link:        "/matches/" + match.ID,
			Type:        models.NotificationChallenge,
			Payload:     map[string]string{"challenge_id": challenge.ID, "match_id": match.ID},
		})
		if err != nil {
			return err
		}
		published = append(published, notification)
		return nil
	})
	if err != nil {
		return mapRepoError(err)
	}

	s.notifier.Publish(ctx, published...)
	s.hub.BroadcastToRoom("match:"+match.ID, map[string]string{"type": "OPPONENT_SET", "match_id": match.ID, "team_b_id": challenge.TeamID})
	return nil
}

// maybePromote signals the state machine once the confirmed roster crosses
// the sport capacity threshold.
func (s *rosterService) maybePromote(ctx context.Context, tx *sql.Tx, match *models.Match, newCount, capacity int) error {
	if match.Status != models.MatchStatusPendingOpponent || newCount < capacity {
		return nil
	}
	if err := s.matchRepo.UpdateStatus(ctx, tx, match.ID, models.MatchStatusScheduled); err != nil {
		return err
	}
	match.Status = models.MatchStatusScheduled
	return nil
}

// View assembles the fully-resolved roster the UI consumes: profile, side
// and payment per confirmed player, plus pending applications and
// invitations. The three lookups run concurrently.
func (s *rosterService) View(ctx context.Context, matchID string) (*models.RosterView, error) {
	match, err := s.matchRepo.GetByID(ctx, matchID)
	if err != nil {
		return nil, mapRepoError(err)
	}

	var (
		roster       []*models.PlayerProfile
		applications []*models.PlayerProfile
		invitations  []*models.PlayerInvitation
		payments     []*models.Payment
	)

	confirmed := append(append([]string{}, match.TeamAPlayers...), match.TeamBPlayers...)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		roster, err = s.playerRepo.ListByIDs(gctx, confirmed)
		return err
	})
	g.Go(func() error {
		var err error
		applications, err = s.playerRepo.ListByIDs(gctx, match.Applications)
		return err
	})
	g.Go(func() error {
		var err error
		invitations, err = s.invitationRepo.ListByMatch(gctx, matchID)
		return err
	})
	g.Go(func() error {
		if match.ReservationID == nil {
			return nil
		}
		var err error
		payments, err = s.paymentRepo.ListByReservation(gctx, *match.ReservationID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRosterViewFailed, err)
	}

	paymentByPayer := make(map[string]*models.Payment, len(payments))
	for _, payment := range payments {
		if payment.Type == models.PaymentTypeBookingSplit {
			paymentByPayer[payment.PayerID] = payment
		}
	}

	sideOf := make(map[string]models.TeamSide, len(confirmed))
	for _, id := range match.TeamAPlayers {
		sideOf[id] = models.SideA
	}
	for _, id := range match.TeamBPlayers {
		sideOf[id] = models.SideB
	}

	view := &models.RosterView{
		MatchID:     matchID,
		Entries:     make([]models.RosterEntry, 0, len(roster)),
		Invitations: make([]models.PlayerInvitation, 0, len(invitations)),
	}
	for _, profile := range roster {
		entry := models.RosterEntry{
			Player: *profile,
			Side:   sideOf[profile.ID],
		}
		if entry.Side == models.SideB {
			entry.TeamID = match.TeamBID
		} else {
			entry.TeamID = match.TeamAID
		}
		entry.Payment = paymentByPayer[profile.ID]
		view.Entries = append(view.Entries, entry)
	}
	view.Applications = make([]models.PlayerProfile, 0, len(applications))
	for _, profile := range applications {
		view.Applications = append(view.Applications, *profile)
	}
	for _, invitation := range invitations {
		view.Invitations = append(view.Invitations, *invitation)
	}
	return view, nil
}

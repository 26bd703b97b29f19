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
)

var ErrSplitInitFailed = errors.New("failed to initiate split payment")

type PaymentService interface {
	InitiateSplit(ctx context.Context, session models.Session, matchID string) ([]*models.Payment, error)
	PayOwn(ctx context.Context, session models.Session, paymentID string) error
	ListByReservation(ctx context.Context, reservationID string) ([]*models.Payment, error)
	GetOwnShare(ctx context.Context, session models.Session, reservationID string) (*models.Payment, error)
}

type paymentService struct {
	db              *sql.DB
	matchRepo       repositories.MatchRepository
	reservationRepo repositories.ReservationRepository
	paymentRepo     repositories.PaymentRepository
	playerRepo      repositories.PlayerRepository
	notifier        Notifier
	logger          *slog.Logger
}

func NewPaymentService(
	db *sql.DB,
	matchRepo repositories.MatchRepository,
	reservationRepo repositories.ReservationRepository,
	paymentRepo repositories.PaymentRepository,
	playerRepo repositories.PlayerRepository,
	notifier Notifier,
	logger *slog.Logger,
) PaymentService {
	return &paymentService{
		db:              db,
		matchRepo:       matchRepo,
		reservationRepo: reservationRepo,
		paymentRepo:     paymentRepo,
		playerRepo:      playerRepo,
		notifier:        notifier,
		logger:          logger,
	}
}

// splitShares divides total cents over count players using integer
// division. The remainder is absorbed by the manager, whose booking payment
// already covers the full amount.
func splitShares(total int64, count int) int64 {
	if count <= 0 {
		return 0
	}
	return total / int64(count)
}

// InitiateSplit records the manager's sunk-cost booking payment in full,
// one pending split payment per confirmed player, a reminder notification
// per player, and flips the reservation to split — all in one batch.
func (s *paymentService) InitiateSplit(ctx context.Context, session models.Session, matchID string) ([]*models.Payment, error) {
	match, err := s.matchRepo.GetByID(ctx, matchID)
	if err != nil {
		return nil, mapRepoError(err)
	}
	if match.ManagerID != session.UserID {
		return nil, ErrForbiddenOperation
	}
	if match.ReservationID == nil {
		return nil, ErrReservationNotFound
	}

	confirmed := append(append([]string{}, match.TeamAPlayers...), match.TeamBPlayers...)
	if len(confirmed) == 0 {
		return nil, ErrRosterEmpty
	}

	reservation, err := s.reservationRepo.GetByID(ctx, *match.ReservationID)
	if err != nil {
		return nil, mapRepoError(err)
	}
	if reservation.Status != models.ReservationConfirmed {
		return nil, ErrReservationNotConfirmed
	}
	if reservation.PaymentStatus != models.ReservationPaymentPending {
		return nil, ErrSplitAlreadyStarted
	}

	share := splitShares(reservation.TotalAmount, len(confirmed))
	payments := make([]*models.Payment, 0, len(confirmed)+1)
	payments = append(payments, &models.Payment{
		ID:            uuid.NewString(),
		PayerID:       match.ManagerID,
		ReservationID: reservation.ID,
		Type:          models.PaymentTypeBooking,
		Amount:        reservation.TotalAmount,
		Status:        models.PaymentPaid,
	})
	for _, playerID := range confirmed {
		payments = append(payments, &models.Payment{
			ID:            uuid.NewString(),
			PayerID:       playerID,
			ReservationID: reservation.ID,
			Type:          models.PaymentTypeBookingSplit,
			Amount:        share,
			Status:        models.PaymentPending,
		})
	}

	var published []*models.Notification
	err = repositories.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		for _, payment := range payments {
			if err := s.paymentRepo.Create(ctx, tx, payment); err != nil {
				return err
			}
		}
		for _, playerID := range confirmed {
			profile, err := s.playerRepo.GetByIDExec(ctx, tx, playerID)
			if err != nil {
				return err
			}
			notification, err := s.notifier.Record(ctx, tx, NotificationInput{
				RecipientID: profile.UserID,
				Message:     "Your share of the pitch booking is due.",
				Link:        "/matches/" + matchID,
				Type:        models.NotificationPaymentReminder,
				Payload:     map[string]string{"match_id": matchID, "reservation_id": reservation.ID},
			})
			if err != nil {
				return err
			}
			published = append(published, notification)
		}
		return s.reservationRepo.UpdatePaymentStatus(ctx, tx, reservation.ID, models.ReservationPaymentSplit)
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSplitInitFailed, mapRepoError(err))
	}

	s.notifier.Publish(ctx, published...)
	return payments, nil
}

// PayOwn flips the caller's own pending split payment to paid. It is a
// single-record, self-scoped mutation: the payer id is part of the WHERE
// clause, so no player can ever settle another's payment or touch the
// aggregate reservation state.
func (s *paymentService) PayOwn(ctx context.Context, session models.Session, paymentID string) error {
	err := s.paymentRepo.UpdateStatusOwned(ctx, paymentID, session.UserID, models.PaymentPending, models.PaymentPaid)
	if err != nil {
		if errors.Is(err, repositories.ErrPaymentNotFound) {
			return ErrNotYourPayment
		}
		return fmt.Errorf("failed to settle payment: %w", err)
	}
	return nil
}

func (s *paymentService) ListByReservation(ctx context.Context, reservationID string) ([]*models.Payment, error) {
	payments, err := s.paymentRepo.ListByReservation(ctx, reservationID)
	if err != nil {
		return nil, fmt.Errorf("failed to list payments: %w", err)
	}
	return payments, nil
}

// GetOwnShare returns the caller's split payment for a reservation, so a
// player can check their share without seeing the whole ledger.
func (s *paymentService) GetOwnShare(ctx context.Context, session models.Session, reservationID string) (*models.Payment, error) {
	payment, err := s.paymentRepo.GetByPayerAndReservation(ctx, session.UserID, reservationID)
	if err != nil {
		if errors.Is(err, repositories.ErrPaymentNotFound) {
			return nil, ErrPaymentNotFound
		}
		return nil, fmt.Errorf("failed to load payment share: %w", err)
	}
	return payment, nil
}

package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Dosada05/matchday-system/models"
	"github.com/Dosada05/matchday-system/repositories"
	"golang.org/x/sync/errgroup"
)

var ErrAvailabilityFailed = errors.New("failed to resolve slot availability")

type AvailabilityService interface {
	ResolveDay(ctx context.Context, pitchID string, day time.Time, viewer models.Session) ([]models.Slot, error)
}

type availabilityService struct {
	pitchRepo       repositories.PitchRepository
	matchRepo       repositories.MatchRepository
	reservationRepo repositories.ReservationRepository
}

func NewAvailabilityService(
	pitchRepo repositories.PitchRepository,
	matchRepo repositories.MatchRepository,
	reservationRepo repositories.ReservationRepository,
) AvailabilityService {
	return &availabilityService{
		pitchRepo:       pitchRepo,
		matchRepo:       matchRepo,
		reservationRepo: reservationRepo,
	}
}

// ResolveDay resolves every opening hour of the pitch for the given day.
// The three datasets are fetched concurrently, then each hour is resolved
// purely against them.
func (s *availabilityService) ResolveDay(ctx context.Context, pitchID string, day time.Time, viewer models.Session) ([]models.Slot, error) {
	pitch, err := s.pitchRepo.GetByID(ctx, pitchID)
	if err != nil {
		return nil, mapRepoError(err)
	}

	sport, err := s.pitchRepo.GetSport(ctx, pitch.SportID)
	if err != nil {
		return nil, mapRepoError(err)
	}

	var (
		reservations []*models.Reservation
		matches      []*models.Match
		promotions   []*models.Promotion
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		reservations, err = s.reservationRepo.ListByPitchAndDate(gctx, pitchID, day)
		return err
	})
	g.Go(func() error {
		var err error
		matches, err = s.matchRepo.ListByPitchAndDate(gctx, pitchID, day)
		return err
	})
	g.Go(func() error {
		var err error
		promotions, err = s.pitchRepo.ListPromotions(gctx, pitchID, day)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrAvailabilityFailed, err)
	}

	now := time.Now()
	slots := make([]models.Slot, 0, pitch.ClosingHour-pitch.OpeningHour)
	for hour := pitch.OpeningHour; hour < pitch.ClosingHour; hour++ {
		slots = append(slots, resolveSlot(slotInput{
			Pitch:        pitch,
			Sport:        sport,
			Day:          day,
			Hour:         hour,
			Now:          now,
			Viewer:       viewer,
			Reservations: reservations,
			Matches:      matches,
			Promotions:   promotions,
		}))
	}
	return slots, nil
}

type slotInput struct {
	Pitch        *models.Pitch
	Sport        *models.Sport
	Day          time.Time
	Hour         int
	Now          time.Time
	Viewer       models.Session
	Reservations []*models.Reservation
	Matches      []*models.Match
	Promotions   []*models.Promotion
}

// resolveSlot applies the availability precedence chain, highest first:
// Past, Live, Booked, OpenForTeam, OpenForPlayers, Available.
func resolveSlot(in slotInput) models.Slot {
	slot := models.Slot{Hour: in.Hour}

	slotTime := time.Date(in.Day.Year(), in.Day.Month(), in.Day.Day(), in.Hour, 0, 0, 0, in.Day.Location())
	if slotTime.Add(time.Hour).Before(in.Now) {
		slot.Status = models.SlotPast
		return slot
	}

	var slotMatch *models.Match
	for _, match := range in.Matches {
		if match.Hour == in.Hour && match.Status != models.MatchStatusCancelled {
			slotMatch = match
			break
		}
	}

	if slotMatch != nil {
		slot.MatchID = &slotMatch.ID
		if slotMatch.Status == models.MatchStatusInProgress {
			slot.Status = models.SlotLive
			return slot
		}
	}

	var slotReservation *models.Reservation
	for _, reservation := range in.Reservations {
		if reservation.Hour == in.Hour && reservation.Status == models.ReservationConfirmed {
			slotReservation = reservation
			break
		}
	}

	if slotReservation != nil || slotMatch != nil {
		if slotMatch != nil {
			if openForTeam(slotMatch, in.Viewer) {
				slot.Status = models.SlotOpenForTeam
				return slot
			}
			if slotMatch.AllowExternalPlayers && slotMatch.ConfirmedCount() < in.Sport.Capacity() {
				slot.Status = models.SlotOpenForPlayers
				return slot
			}
		}
		slot.Status = models.SlotBooked
		return slot
	}

	slot.Status = models.SlotAvailable
	slot.Price = discountedPrice(in.Pitch.BasePrice, bestPromotion(in.Promotions, in.Pitch.ID, slotTime, in.Hour))
	return slot
}

// openForTeam: the match still wants an opponent, accepts challenges, and
// the viewer is a manager who does not own it.
func openForTeam(match *models.Match, viewer models.Session) bool {
	if match.TeamBID != nil || !match.AllowChallenges {
		return false
	}
	if !viewer.IsManager() {
		return false
	}
	if viewer.TeamID != nil && match.TeamAID != nil && *viewer.TeamID == *match.TeamAID {
		return false
	}
	return viewer.UserID != match.ManagerID
}

// bestPromotion picks the applicable promotion with the highest discount.
// Ties are broken arbitrarily: discount is the only ordering key.
func bestPromotion(promotions []*models.Promotion, pitchID string, at time.Time, hour int) *models.Promotion {
	var best *models.Promotion
	for _, promotion := range promotions {
		if !promotion.AppliesTo(pitchID, at, hour) {
			continue
		}
		if best == nil || promotion.DiscountPercent > best.DiscountPercent {
			best = promotion
		}
	}
	return best
}

func discountedPrice(basePrice int64, promotion *models.Promotion) int64 {
	if promotion == nil {
		return basePrice
	}
	return basePrice - basePrice*int64(promotion.DiscountPercent)/100
}

package services

import (
	"errors"

	"github.com/Dosada05/matchday-system/models"
	"github.com/Dosada05/matchday-system/repositories"
)

// Status transitions are forward-only; cancellation is reachable from every
// pre-finished state via deletion.
func isValidStatusTransition(current, next models.MatchStatus) bool {
	if current == next {
		return true
	}
	allowedTransitions := map[models.MatchStatus][]models.MatchStatus{
		models.MatchStatusPendingOpponent: {models.MatchStatusScheduled, models.MatchStatusCancelled},
		models.MatchStatusScheduled:       {models.MatchStatusInProgress, models.MatchStatusCancelled},
		models.MatchStatusInProgress:      {models.MatchStatusFinished, models.MatchStatusCancelled},
		models.MatchStatusFinished:        {},
		models.MatchStatusCancelled:       {},
	}
	for _, allowed := range allowedTransitions[current] {
		if next == allowed {
			return true
		}
	}
	return false
}

func derefString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// mapRepoError converts repository sentinels to their service-level
// counterparts so handlers only ever see the services taxonomy.
func mapRepoError(err error) error {
	switch {
	case errors.Is(err, repositories.ErrMatchNotFound):
		return ErrMatchNotFound
	case errors.Is(err, repositories.ErrTeamNotFound):
		return ErrTeamNotFound
	case errors.Is(err, repositories.ErrPlayerNotFound):
		return ErrPlayerNotFound
	case errors.Is(err, repositories.ErrPitchNotFound):
		return ErrPitchNotFound
	case errors.Is(err, repositories.ErrSportNotFound):
		return ErrSportNotFound
	case errors.Is(err, repositories.ErrUserNotFound):
		return ErrUserNotFound
	case errors.Is(err, repositories.ErrReservationNotFound):
		return ErrReservationNotFound
	case errors.Is(err, repositories.ErrPaymentNotFound):
		return ErrPaymentNotFound
	case errors.Is(err, repositories.ErrInvitationNotFound):
		return ErrInvitationNotFound
	case errors.Is(err, repositories.ErrChallengeNotFound):
		return ErrChallengeNotFound
	case errors.Is(err, repositories.ErrApplicationNotFound):
		return ErrApplicationNotFound
	case errors.Is(err, repositories.ErrMatchPlayerConflict):
		return ErrAlreadyOnRoster
	case errors.Is(err, repositories.ErrApplicationConflict):
		return ErrAlreadyApplied
	case errors.Is(err, repositories.ErrTeamNameConflict):
		return ErrTeamNameConflict
	case errors.Is(err, repositories.ErrUserEmailConflict):
		return ErrUserEmailConflict
	default:
		return err
	}
}

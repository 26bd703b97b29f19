package services

import "errors"

// Общие ошибки, используемые в разных сервисах и маппинге HTTP.
var (
	// Ошибки валидации и бизнес-правил
	ErrValidationFailed        = errors.New("validation failed")
	ErrPasswordTooShort        = errors.New("password is too short")
	ErrEventMinuteNegative     = errors.New("event minute must not be negative")
	ErrInvalidEventType        = errors.New("invalid event type")
	ErrChallengeMissingFields  = errors.New("challenge payload is missing required fields")
	ErrMatchNotInProgress      = errors.New("match is not in progress")
	ErrMatchNotStartable       = errors.New("match cannot be started from its current status")
	ErrMatchAlreadyFinalized   = errors.New("match is already finalized")
	ErrMatchNotFinished        = errors.New("match is not finished")
	ErrInvalidStatusChange     = errors.New("invalid match status transition")
	ErrVotingClosed            = errors.New("mvp voting window has closed")
	ErrReservationNotPaid      = errors.New("reservation is not paid and the pitch does not allow post-game payment")
	ErrReservationNotConfirmed = errors.New("reservation is not confirmed")

	// Ресурс не найден
	ErrMatchNotFound       = errors.New("match not found")
	ErrTeamNotFound        = errors.New("team not found")
	ErrPlayerNotFound      = errors.New("player profile not found")
	ErrPitchNotFound       = errors.New("pitch not found")
	ErrSportNotFound       = errors.New("sport not found")
	ErrUserNotFound        = errors.New("user not found")
	ErrReservationNotFound = errors.New("reservation not found")
	ErrPaymentNotFound     = errors.New("payment not found")
	ErrInvitationNotFound  = errors.New("invitation not found")
	ErrChallengeNotFound   = errors.New("challenge not found")
	ErrApplicationNotFound = errors.New("application not found")

	// Нарушения вместимости и предусловий (CapacityViolation)
	ErrRosterFull          = errors.New("match roster is full")
	ErrRosterTooSmall      = errors.New("confirmed roster is below the sport's minimum capacity")
	ErrRosterEmpty         = errors.New("confirmed roster is empty")
	ErrPlayerSentOff       = errors.New("player was sent off and cannot take part in further events")
	ErrOpponentAlreadySet  = errors.New("match already has an opponent")
	ErrChallengesNotOpen   = errors.New("match does not accept challenges")
	ErrExternalsNotAllowed = errors.New("match does not accept external players")
	ErrAlreadyResponded    = errors.New("invitation or challenge has already been responded to")

	// Ошибки конфликтов
	ErrUserEmailConflict   = errors.New("email address is already in use")
	ErrTeamNameConflict    = errors.New("team name is already in use")
	ErrAlreadyOnRoster     = errors.New("player is already on the match roster")
	ErrAlreadyApplied      = errors.New("player has already applied to this match")
	ErrSplitAlreadyStarted = errors.New("split payment has already been initiated for this reservation")

	// Ошибки аутентификации и авторизации
	ErrAuthInvalidCredentials = errors.New("invalid email or password")
	ErrForbiddenOperation     = errors.New("operation not allowed for the current user")
	ErrManagerActionRequired  = errors.New("only a team manager can perform this action")
	ErrNotYourPayment         = errors.New("players may only settle their own payment")

	// Сбои транспорта / хранилища (TransportFailure)
	ErrStoreUnavailable = errors.New("backing store unavailable")
)

package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/Dosada05/matchday-system/models"
	"github.com/Dosada05/matchday-system/repositories"
	"github.com/Dosada05/matchday-system/storage"
	"github.com/google/uuid"
)

var (
	ErrTeamNameRequired  = errors.New("team name is required")
	ErrBadgeUploadFailed = errors.New("failed to upload team badge")
)

type TeamService interface {
	Create(ctx context.Context, session models.Session, name, sportID string) (*models.Team, error)
	Get(ctx context.Context, id string) (*models.Team, error)
	AddMember(ctx context.Context, session models.Session, teamID, playerID string) error
	UploadBadge(ctx context.Context, session models.Session, teamID, contentType string, reader io.Reader) (*models.Team, error)
}

type teamService struct {
	teamRepo  repositories.TeamRepository
	userRepo  repositories.UserRepository
	pitchRepo repositories.PitchRepository
	uploader  storage.FileUploader
	logger    *slog.Logger
}

func NewTeamService(
	teamRepo repositories.TeamRepository,
	userRepo repositories.UserRepository,
	pitchRepo repositories.PitchRepository,
	uploader storage.FileUploader,
	logger *slog.Logger,
) TeamService {
	return &teamService{
		teamRepo:  teamRepo,
		userRepo:  userRepo,
		pitchRepo: pitchRepo,
		uploader:  uploader,
		logger:    logger,
	}
}

func (s *teamService) Create(ctx context.Context, session models.Session, name, sportID string) (*models.Team, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrTeamNameRequired
	}
	if _, err := s.pitchRepo.GetSport(ctx, sportID); err != nil {
		return nil, mapRepoError(err)
	}

	team := &models.Team{
		ID:        uuid.NewString(),
		Name:      name,
		SportID:   sportID,
		ManagerID: session.UserID,
		PlayerIDs: []string{},
	}
	if err := s.teamRepo.Create(ctx, team); err != nil {
		return nil, mapRepoError(err)
	}
	if err := s.userRepo.UpdateTeam(ctx, session.UserID, &team.ID); err != nil {
		return nil, mapRepoError(err)
	}
	return team, nil
}

func (s *teamService) Get(ctx context.Context, id string) (*models.Team, error) {
	team, err := s.teamRepo.GetByID(ctx, id)
	if err != nil {
		return nil, mapRepoError(err)
	}
	s.populateBadgeURL(team)
	return team, nil
}

func (s *teamService) AddMember(ctx context.Context, session models.Session, teamID, playerID string) error {
	team, err := s.teamRepo.GetByID(ctx, teamID)
	if err != nil {
		return mapRepoError(err)
	}
	if team.ManagerID != session.UserID {
		return ErrManagerActionRequired
	}
	if err := s.teamRepo.AddMember(ctx, teamID, playerID); err != nil {
		return mapRepoError(err)
	}
	return s.userRepo.UpdateTeam(ctx, playerID, &teamID)
}

func (s *teamService) UploadBadge(ctx context.Context, session models.Session, teamID, contentType string, reader io.Reader) (*models.Team, error) {
	team, err := s.teamRepo.GetByID(ctx, teamID)
	if err != nil {
		return nil, mapRepoError(err)
	}
	if team.ManagerID != session.UserID {
		return nil, ErrManagerActionRequired
	}

	key := fmt.Sprintf("teams/%s/badge-%s", teamID, uuid.NewString())
	result, err := s.uploader.Upload(ctx, key, contentType, reader)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBadgeUploadFailed, err)
	}

	oldKey := team.BadgeKey
	if err := s.teamRepo.UpdateBadgeKey(ctx, teamID, &result.Key); err != nil {
		return nil, mapRepoError(err)
	}
	if oldKey != nil && *oldKey != "" {
		if delErr := s.uploader.Delete(ctx, *oldKey); delErr != nil {
			s.logger.Warn("failed to delete previous team badge",
				slog.String("key", *oldKey), slog.Any("error", delErr))
		}
	}

	team.BadgeKey = &result.Key
	s.populateBadgeURL(team)
	return team, nil
}

func (s *teamService) populateBadgeURL(team *models.Team) {
	if team.BadgeKey != nil && *team.BadgeKey != "" && s.uploader != nil {
		url := s.uploader.GetPublicURL(*team.BadgeKey)
		team.BadgeURL = &url
	}
}

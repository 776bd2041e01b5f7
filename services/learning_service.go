package services

import (
	"context"

	"github.com/google/uuid"
	"github.com/rpupo63/portfolio-backend/cache"
	"github.com/rpupo63/portfolio-backend/database"
	"github.com/rpupo63/portfolio-backend/errs"
	"github.com/rpupo63/portfolio-backend/models"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/singleflight"
)

const (
	cacheKeyLearning     = "learning:"
	cacheKeyLearningList = "learning:list"
)

type LearningInput struct {
	Name     *string `json:"name" validate:"omitempty,min=1"`
	Level    *string `json:"level" validate:"omitempty,oneof=beginner intermediate advanced expert"`
	Status   *string `json:"status" validate:"omitempty,oneof='In Progress' Exploring Building Applied"`
	Category *string `json:"category"`
}

type LearningService struct {
	repo   *database.LearningRepo
	cache  cache.Cache
	logger zerolog.Logger
	sf     singleflight.Group
}

func NewLearningService(repo *database.LearningRepo, c cache.Cache) *LearningService {
	return &LearningService{
		repo:   repo,
		cache:  c,
		logger: log.With().Str("serviceName", "learningService").Logger(),
	}
}

// List returns all learning entries, newest first. Results are cached.
func (s *LearningService) List(ctx context.Context) ([]*models.Learning, error) {
	return cache.Through(ctx, s.cache, &s.sf, cacheKeyLearningList, cache.DefaultTTL, func(ctx context.Context) ([]*models.Learning, error) {
		entries, err := s.repo.FindAll(ctx)
		if err != nil {
			return nil, errs.NewDatabaseError("list", "learning entries", err)
		}
		return entries, nil
	})
}

func (s *LearningService) Create(ctx context.Context, input LearningInput) (*models.Learning, error) {
	if err := requireFields(map[string]bool{"name": provided(input.Name)}); err != nil {
		return nil, err
	}
	if err := validateInput(input); err != nil {
		return nil, err
	}

	entry := &models.Learning{
		Name:     *input.Name,
		Level:    models.LevelBeginner,
		Status:   models.LearningInProgress,
		Category: strValue(input.Category),
	}
	if input.Level != nil {
		entry.Level = *input.Level
	}
	if input.Status != nil {
		entry.Status = *input.Status
	}

	if err := s.repo.Add(ctx, entry); err != nil {
		return nil, errs.NewDatabaseError("create", "learning entry", err)
	}

	s.cache.InvalidatePrefix(ctx, cacheKeyLearning)
	return entry, nil
}

func (s *LearningService) Update(ctx context.Context, id uuid.UUID, input LearningInput) (*models.Learning, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}

	entry, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errs.NewDatabaseError("find", "learning entry", err)
	}
	if entry == nil {
		return nil, errs.NewNotFoundError("learning entry")
	}

	if input.Name != nil {
		entry.Name = *input.Name
	}
	if input.Level != nil {
		entry.Level = *input.Level
	}
	if input.Status != nil {
		entry.Status = *input.Status
	}
	if input.Category != nil {
		entry.Category = *input.Category
	}

	if err := s.repo.Update(ctx, entry); err != nil {
		return nil, errs.NewDatabaseError("update", "learning entry", err)
	}

	s.cache.InvalidatePrefix(ctx, cacheKeyLearning)
	return entry, nil
}

func (s *LearningService) Remove(ctx context.Context, id uuid.UUID) error {
	entry, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return errs.NewDatabaseError("find", "learning entry", err)
	}
	if entry == nil {
		return errs.NewNotFoundError("learning entry")
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return errs.NewDatabaseError("delete", "learning entry", err)
	}

	s.cache.InvalidatePrefix(ctx, cacheKeyLearning)
	return nil
}

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
	cacheKeySkills     = "skills:"
	cacheKeySkillsList = "skills:list"
)

type SkillInput struct {
	Name     *string `json:"name" validate:"omitempty,min=1"`
	Level    *string `json:"level" validate:"omitempty,oneof=beginner intermediate advanced expert"`
	Category *string `json:"category"`
}

type SkillService struct {
	repo   *database.SkillRepo
	cache  cache.Cache
	logger zerolog.Logger
	sf     singleflight.Group
}

func NewSkillService(repo *database.SkillRepo, c cache.Cache) *SkillService {
	return &SkillService{
		repo:   repo,
		cache:  c,
		logger: log.With().Str("serviceName", "skillService").Logger(),
	}
}

// List returns all skills sorted by name. Results are cached.
func (s *SkillService) List(ctx context.Context) ([]*models.Skill, error) {
	return cache.Through(ctx, s.cache, &s.sf, cacheKeySkillsList, cache.DefaultTTL, func(ctx context.Context) ([]*models.Skill, error) {
		skills, err := s.repo.FindAll(ctx)
		if err != nil {
			return nil, errs.NewDatabaseError("list", "skills", err)
		}
		return skills, nil
	})
}

func (s *SkillService) Create(ctx context.Context, input SkillInput) (*models.Skill, error) {
	if err := requireFields(map[string]bool{"name": provided(input.Name)}); err != nil {
		return nil, err
	}
	if err := validateInput(input); err != nil {
		return nil, err
	}

	skill := &models.Skill{
		Name:     *input.Name,
		Level:    models.LevelIntermediate,
		Category: strValue(input.Category),
	}
	if input.Level != nil {
		skill.Level = *input.Level
	}

	if err := s.repo.Add(ctx, skill); err != nil {
		return nil, errs.NewDatabaseError("create", "skill", err)
	}

	s.cache.InvalidatePrefix(ctx, cacheKeySkills)
	return skill, nil
}

func (s *SkillService) Update(ctx context.Context, id uuid.UUID, input SkillInput) (*models.Skill, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}

	skill, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errs.NewDatabaseError("find", "skill", err)
	}
	if skill == nil {
		return nil, errs.NewNotFoundError("skill")
	}

	if input.Name != nil {
		skill.Name = *input.Name
	}
	if input.Level != nil {
		skill.Level = *input.Level
	}
	if input.Category != nil {
		skill.Category = *input.Category
	}

	if err := s.repo.Update(ctx, skill); err != nil {
		return nil, errs.NewDatabaseError("update", "skill", err)
	}

	s.cache.InvalidatePrefix(ctx, cacheKeySkills)
	return skill, nil
}

func (s *SkillService) Remove(ctx context.Context, id uuid.UUID) error {
	skill, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return errs.NewDatabaseError("find", "skill", err)
	}
	if skill == nil {
		return errs.NewNotFoundError("skill")
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return errs.NewDatabaseError("delete", "skill", err)
	}

	s.cache.InvalidatePrefix(ctx, cacheKeySkills)
	return nil
}

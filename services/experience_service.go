package services

import (
	"context"
	"time"

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
	cacheKeyExperience     = "experience:"
	cacheKeyExperienceList = "experience:list"
)

type ExperienceInput struct {
	Title       *string    `json:"title" validate:"omitempty,min=1"`
	Company     *string    `json:"company" validate:"omitempty,min=1"`
	Location    *string    `json:"location"`
	StartDate   *time.Time `json:"startDate"`
	EndDate     *time.Time `json:"endDate"`
	Current     *bool      `json:"current"`
	Description *string    `json:"description"`
	Highlights  *[]string  `json:"highlights"`
}

type ExperienceService struct {
	repo   *database.ExperienceRepo
	cache  cache.Cache
	logger zerolog.Logger
	sf     singleflight.Group
}

func NewExperienceService(repo *database.ExperienceRepo, c cache.Cache) *ExperienceService {
	return &ExperienceService{
		repo:   repo,
		cache:  c,
		logger: log.With().Str("serviceName", "experienceService").Logger(),
	}
}

// List returns all experience entries, most recent start date first. Results are cached.
func (s *ExperienceService) List(ctx context.Context) ([]*models.Experience, error) {
	return cache.Through(ctx, s.cache, &s.sf, cacheKeyExperienceList, cache.DefaultTTL, func(ctx context.Context) ([]*models.Experience, error) {
		entries, err := s.repo.FindAll(ctx)
		if err != nil {
			return nil, errs.NewDatabaseError("list", "experience entries", err)
		}
		return entries, nil
	})
}

func (s *ExperienceService) Create(ctx context.Context, input ExperienceInput) (*models.Experience, error) {
	if err := requireFields(map[string]bool{
		"title":     provided(input.Title),
		"company":   provided(input.Company),
		"startDate": input.StartDate != nil,
	}); err != nil {
		return nil, err
	}
	if err := validateInput(input); err != nil {
		return nil, err
	}

	entry := &models.Experience{
		Title:       *input.Title,
		Company:     *input.Company,
		Location:    strValue(input.Location),
		StartDate:   *input.StartDate,
		EndDate:     input.EndDate,
		Description: strValue(input.Description),
	}
	if input.Current != nil {
		entry.Current = *input.Current
	}
	if input.Highlights != nil {
		entry.Highlights = *input.Highlights
	}

	if err := s.repo.Add(ctx, entry); err != nil {
		return nil, errs.NewDatabaseError("create", "experience entry", err)
	}

	s.cache.InvalidatePrefix(ctx, cacheKeyExperience)
	return entry, nil
}

func (s *ExperienceService) Update(ctx context.Context, id uuid.UUID, input ExperienceInput) (*models.Experience, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}

	entry, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errs.NewDatabaseError("find", "experience entry", err)
	}
	if entry == nil {
		return nil, errs.NewNotFoundError("experience entry")
	}

	if input.Title != nil {
		entry.Title = *input.Title
	}
	if input.Company != nil {
		entry.Company = *input.Company
	}
	if input.Location != nil {
		entry.Location = *input.Location
	}
	if input.StartDate != nil {
		entry.StartDate = *input.StartDate
	}
	if input.EndDate != nil {
		entry.EndDate = input.EndDate
	}
	if input.Current != nil {
		entry.Current = *input.Current
	}
	if input.Description != nil {
		entry.Description = *input.Description
	}
	if input.Highlights != nil {
		entry.Highlights = *input.Highlights
	}

	if err := s.repo.Update(ctx, entry); err != nil {
		return nil, errs.NewDatabaseError("update", "experience entry", err)
	}

	s.cache.InvalidatePrefix(ctx, cacheKeyExperience)
	return entry, nil
}

func (s *ExperienceService) Remove(ctx context.Context, id uuid.UUID) error {
	entry, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return errs.NewDatabaseError("find", "experience entry", err)
	}
	if entry == nil {
		return errs.NewNotFoundError("experience entry")
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return errs.NewDatabaseError("delete", "experience entry", err)
	}

	s.cache.InvalidatePrefix(ctx, cacheKeyExperience)
	return nil
}

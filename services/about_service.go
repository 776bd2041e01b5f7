package services

import (
	"context"

	"github.com/rpupo63/portfolio-backend/cache"
	"github.com/rpupo63/portfolio-backend/database"
	"github.com/rpupo63/portfolio-backend/errs"
	"github.com/rpupo63/portfolio-backend/models"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/singleflight"
)

const (
	cacheKeyAbout    = "about:"
	cacheKeyAboutGet = "about:singleton"
)

type AboutSectionInput struct {
	Title      string   `json:"title" validate:"required,min=1"`
	Content    string   `json:"content"`
	Highlights []string `json:"highlights"`
}

type AboutSkillInput struct {
	Name     string `json:"name" validate:"required,min=1"`
	Category string `json:"category" validate:"required,min=1"`
}

type AboutInput struct {
	Introduction *string              `json:"introduction"`
	Background   *string              `json:"background"`
	Passions     *[]string            `json:"passions"`
	Skills       *[]AboutSkillInput   `json:"skills" validate:"omitempty,dive"`
	Goals        *[]string            `json:"goals"`
	Hobbies      *[]string            `json:"hobbies"`
	Mood         *string              `json:"mood"`
	Likes        *[]string            `json:"likes"`
	Image        *string              `json:"image" validate:"omitempty,url"`
	Sections     *[]AboutSectionInput `json:"sections" validate:"omitempty,dive"`
}

type AboutService struct {
	repo   *database.AboutRepo
	cache  cache.Cache
	logger zerolog.Logger
	sf     singleflight.Group
}

func NewAboutService(repo *database.AboutRepo, c cache.Cache) *AboutService {
	return &AboutService{
		repo:   repo,
		cache:  c,
		logger: log.With().Str("serviceName", "aboutService").Logger(),
	}
}

// Get returns the singleton about document, or nil when none exists yet.
// Results are cached.
func (s *AboutService) Get(ctx context.Context) (*models.About, error) {
	return cache.Through(ctx, s.cache, &s.sf, cacheKeyAboutGet, cache.DefaultTTL, func(ctx context.Context) (*models.About, error) {
		about, err := s.repo.First(ctx)
		if err != nil {
			return nil, errs.NewDatabaseError("find", "about", err)
		}
		return about, nil
	})
}

// Update merges the supplied fields into the singleton, creating it with a
// placeholder introduction when it does not exist yet.
func (s *AboutService) Update(ctx context.Context, input AboutInput) (*models.About, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}

	about, err := s.repo.First(ctx)
	if err != nil {
		return nil, errs.NewDatabaseError("find", "about", err)
	}
	if about == nil {
		about = &models.About{Introduction: "Your intro here"}
		if err := s.repo.Add(ctx, about); err != nil {
			return nil, errs.NewDatabaseError("create", "about", err)
		}
	}

	if input.Introduction != nil {
		about.Introduction = *input.Introduction
	}
	if input.Background != nil {
		about.Background = *input.Background
	}
	if input.Passions != nil {
		about.Passions = *input.Passions
	}
	if input.Skills != nil {
		skills := make([]models.AboutSkill, 0, len(*input.Skills))
		for _, skill := range *input.Skills {
			skills = append(skills, models.AboutSkill{Name: skill.Name, Category: skill.Category})
		}
		about.Skills = skills
	}
	if input.Goals != nil {
		about.Goals = *input.Goals
	}
	if input.Hobbies != nil {
		about.Hobbies = *input.Hobbies
	}
	if input.Mood != nil {
		about.Mood = *input.Mood
	}
	if input.Likes != nil {
		about.Likes = *input.Likes
	}
	if input.Image != nil {
		about.Image = *input.Image
	}
	if input.Sections != nil {
		sections := make([]models.AboutSection, 0, len(*input.Sections))
		for _, section := range *input.Sections {
			sections = append(sections, models.AboutSection{
				Title:      section.Title,
				Content:    section.Content,
				Highlights: section.Highlights,
			})
		}
		about.Sections = sections
	}

	if err := s.repo.Update(ctx, about); err != nil {
		return nil, errs.NewDatabaseError("update", "about", err)
	}

	s.cache.InvalidatePrefix(ctx, cacheKeyAbout)
	return about, nil
}

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
	"gorm.io/datatypes"
)

const (
	cacheKeyProfile    = "profile:"
	cacheKeyProfileGet = "profile:singleton"
)

type SocialsInput struct {
	Github    *string `json:"github" validate:"omitempty,url"`
	Linkedin  *string `json:"linkedin" validate:"omitempty,url"`
	Twitter   *string `json:"twitter" validate:"omitempty,url"`
	Instagram *string `json:"instagram" validate:"omitempty,url"`
	Website   *string `json:"website" validate:"omitempty,url"`
}

type ProfileInput struct {
	Name      *string       `json:"name" validate:"omitempty,min=1"`
	Headline  *string       `json:"headline"`
	Bio       *string       `json:"bio"`
	Role      *string       `json:"role"`
	AvatarURL *string       `json:"avatarUrl" validate:"omitempty,url"`
	Location  *string       `json:"location"`
	Email     *string       `json:"email" validate:"omitempty,email"`
	Phone     *string       `json:"phone"`
	Socials   *SocialsInput `json:"socials"`
}

type ProfileService struct {
	repo   *database.ProfileRepo
	cache  cache.Cache
	logger zerolog.Logger
	sf     singleflight.Group
}

func NewProfileService(repo *database.ProfileRepo, c cache.Cache) *ProfileService {
	return &ProfileService{
		repo:   repo,
		cache:  c,
		logger: log.With().Str("serviceName", "profileService").Logger(),
	}
}

// Get returns the singleton profile, or nil when none exists yet. Results are cached.
func (s *ProfileService) Get(ctx context.Context) (*models.Profile, error) {
	return cache.Through(ctx, s.cache, &s.sf, cacheKeyProfileGet, cache.DefaultTTL, func(ctx context.Context) (*models.Profile, error) {
		profile, err := s.repo.First(ctx)
		if err != nil {
			return nil, errs.NewDatabaseError("find", "profile", err)
		}
		return profile, nil
	})
}

// Update merges the supplied fields into the singleton, creating it with a
// placeholder name when it does not exist yet.
func (s *ProfileService) Update(ctx context.Context, input ProfileInput) (*models.Profile, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}

	profile, err := s.repo.First(ctx)
	if err != nil {
		return nil, errs.NewDatabaseError("find", "profile", err)
	}
	if profile == nil {
		profile = &models.Profile{Name: "Your Name"}
		if err := s.repo.Add(ctx, profile); err != nil {
			return nil, errs.NewDatabaseError("create", "profile", err)
		}
	}

	if input.Name != nil {
		profile.Name = *input.Name
	}
	if input.Headline != nil {
		profile.Headline = *input.Headline
	}
	if input.Bio != nil {
		profile.Bio = *input.Bio
	}
	if input.Role != nil {
		profile.Role = *input.Role
	}
	if input.AvatarURL != nil {
		profile.AvatarURL = *input.AvatarURL
	}
	if input.Location != nil {
		profile.Location = *input.Location
	}
	if input.Email != nil {
		profile.Email = *input.Email
	}
	if input.Phone != nil {
		profile.Phone = *input.Phone
	}
	if input.Socials != nil {
		socials := profile.Socials.Data()
		if input.Socials.Github != nil {
			socials.Github = *input.Socials.Github
		}
		if input.Socials.Linkedin != nil {
			socials.Linkedin = *input.Socials.Linkedin
		}
		if input.Socials.Twitter != nil {
			socials.Twitter = *input.Socials.Twitter
		}
		if input.Socials.Instagram != nil {
			socials.Instagram = *input.Socials.Instagram
		}
		if input.Socials.Website != nil {
			socials.Website = *input.Socials.Website
		}
		profile.Socials = datatypes.NewJSONType(socials)
	}

	if err := s.repo.Update(ctx, profile); err != nil {
		return nil, errs.NewDatabaseError("update", "profile", err)
	}

	s.cache.InvalidatePrefix(ctx, cacheKeyProfile)
	return profile, nil
}

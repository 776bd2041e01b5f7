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
	cacheKeyMedia     = "media:"
	cacheKeyMediaList = "media:list"
)

type MediaInput struct {
	Type     *string   `json:"type" validate:"omitempty,oneof=image video link"`
	Title    *string   `json:"title" validate:"omitempty,min=1"`
	URL      *string   `json:"url" validate:"omitempty,url"`
	ImageURL *string   `json:"imageUrl" validate:"omitempty,url"`
	Tags     *[]string `json:"tags"`
}

type MediaService struct {
	repo     *database.MediaRepo
	cache    cache.Cache
	uploader *S3Uploader // nil when no bucket is configured
	logger   zerolog.Logger
	sf       singleflight.Group
}

func NewMediaService(repo *database.MediaRepo, c cache.Cache, uploader *S3Uploader) *MediaService {
	return &MediaService{
		repo:     repo,
		cache:    c,
		uploader: uploader,
		logger:   log.With().Str("serviceName", "mediaService").Logger(),
	}
}

// List returns all media entries, newest first. Results are cached.
func (s *MediaService) List(ctx context.Context) ([]*models.Media, error) {
	return cache.Through(ctx, s.cache, &s.sf, cacheKeyMediaList, cache.DefaultTTL, func(ctx context.Context) ([]*models.Media, error) {
		entries, err := s.repo.FindAll(ctx)
		if err != nil {
			return nil, errs.NewDatabaseError("list", "media", err)
		}
		return entries, nil
	})
}

func (s *MediaService) Create(ctx context.Context, input MediaInput) (*models.Media, error) {
	if err := requireFields(map[string]bool{
		"type":  provided(input.Type),
		"title": provided(input.Title),
		"url":   provided(input.URL),
	}); err != nil {
		return nil, err
	}
	if err := validateInput(input); err != nil {
		return nil, err
	}

	entry := &models.Media{
		Type:     *input.Type,
		Title:    *input.Title,
		URL:      *input.URL,
		ImageURL: strValue(input.ImageURL),
	}
	if input.Tags != nil {
		entry.Tags = *input.Tags
	}

	if err := s.repo.Add(ctx, entry); err != nil {
		return nil, errs.NewDatabaseError("create", "media", err)
	}

	s.cache.InvalidatePrefix(ctx, cacheKeyMedia)
	return entry, nil
}

func (s *MediaService) Update(ctx context.Context, id uuid.UUID, input MediaInput) (*models.Media, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}

	entry, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errs.NewDatabaseError("find", "media", err)
	}
	if entry == nil {
		return nil, errs.NewNotFoundError("media")
	}

	if input.Type != nil {
		entry.Type = *input.Type
	}
	if input.Title != nil {
		entry.Title = *input.Title
	}
	if input.URL != nil {
		entry.URL = *input.URL
	}
	if input.ImageURL != nil {
		entry.ImageURL = *input.ImageURL
	}
	if input.Tags != nil {
		entry.Tags = *input.Tags
	}

	if err := s.repo.Update(ctx, entry); err != nil {
		return nil, errs.NewDatabaseError("update", "media", err)
	}

	s.cache.InvalidatePrefix(ctx, cacheKeyMedia)
	return entry, nil
}

func (s *MediaService) Remove(ctx context.Context, id uuid.UUID) error {
	entry, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return errs.NewDatabaseError("find", "media", err)
	}
	if entry == nil {
		return errs.NewNotFoundError("media")
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return errs.NewDatabaseError("delete", "media", err)
	}

	s.cache.InvalidatePrefix(ctx, cacheKeyMedia)
	return nil
}

// PresignUpload hands out a short-lived S3 upload URL for a new gallery
// asset. Fails with Unavailable when no bucket is configured.
func (s *MediaService) PresignUpload(ctx context.Context, filename, contentType string) (*UploadTarget, error) {
	if s.uploader == nil {
		return nil, errs.NewUnavailableError("media uploads are not configured")
	}
	if filename == "" {
		return nil, errs.NewValidationError(map[string]string{"filename": "required"})
	}

	target, err := s.uploader.PresignUpload(ctx, filename, contentType)
	if err != nil {
		return nil, errs.NewInternalErrorWithCause("failed to presign upload", err)
	}
	return target, nil
}

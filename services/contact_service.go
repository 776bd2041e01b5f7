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
	cacheKeyContact     = "contact:"
	cacheKeyContactList = "contact:list"
)

// ContactInput is the public contact-form payload.
type ContactInput struct {
	Name    string `json:"name" validate:"required,min=1"`
	Email   string `json:"email" validate:"required,email"`
	Message string `json:"message" validate:"required,min=1"`
}

type ContactStatusInput struct {
	Status string `json:"status" validate:"required,oneof=unread read"`
}

type ContactSaveInput struct {
	Saved *bool `json:"saved" validate:"required"`
}

type ContactService struct {
	repo   *database.ContactRepo
	cache  cache.Cache
	logger zerolog.Logger
	sf     singleflight.Group
}

func NewContactService(repo *database.ContactRepo, c cache.Cache) *ContactService {
	return &ContactService{
		repo:   repo,
		cache:  c,
		logger: log.With().Str("serviceName", "contactService").Logger(),
	}
}

// List returns all messages for the admin inbox, newest first. Results are cached.
func (s *ContactService) List(ctx context.Context) ([]*models.Contact, error) {
	return cache.Through(ctx, s.cache, &s.sf, cacheKeyContactList, cache.DefaultTTL, func(ctx context.Context) ([]*models.Contact, error) {
		messages, err := s.repo.FindAll(ctx)
		if err != nil {
			return nil, errs.NewDatabaseError("list", "contact messages", err)
		}
		return messages, nil
	})
}

// Create records an anonymous contact-form submission.
func (s *ContactService) Create(ctx context.Context, input ContactInput) (*models.Contact, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}

	message := &models.Contact{
		Name:    input.Name,
		Email:   input.Email,
		Message: input.Message,
		Status:  models.ContactStatusUnread,
	}

	if err := s.repo.Add(ctx, message); err != nil {
		return nil, errs.NewDatabaseError("create", "contact message", err)
	}

	s.cache.InvalidatePrefix(ctx, cacheKeyContact)
	return message, nil
}

// SetStatus marks a message read or unread.
func (s *ContactService) SetStatus(ctx context.Context, id uuid.UUID, input ContactStatusInput) (*models.Contact, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}

	message, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errs.NewDatabaseError("find", "contact message", err)
	}
	if message == nil {
		return nil, errs.NewNotFoundError("contact message")
	}

	message.Status = input.Status
	if err := s.repo.Update(ctx, message); err != nil {
		return nil, errs.NewDatabaseError("update", "contact message", err)
	}

	s.cache.InvalidatePrefix(ctx, cacheKeyContact)
	return message, nil
}

// ToggleSave flips the saved flag that protects a message from deletion.
func (s *ContactService) ToggleSave(ctx context.Context, id uuid.UUID, input ContactSaveInput) (*models.Contact, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}

	message, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errs.NewDatabaseError("find", "contact message", err)
	}
	if message == nil {
		return nil, errs.NewNotFoundError("contact message")
	}

	message.Saved = *input.Saved
	if err := s.repo.Update(ctx, message); err != nil {
		return nil, errs.NewDatabaseError("update", "contact message", err)
	}

	s.cache.InvalidatePrefix(ctx, cacheKeyContact)
	return message, nil
}

// Remove deletes a message unless it has been saved.
func (s *ContactService) Remove(ctx context.Context, id uuid.UUID) error {
	message, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return errs.NewDatabaseError("find", "contact message", err)
	}
	if message == nil {
		return errs.NewNotFoundError("contact message")
	}
	if message.Saved {
		return errs.NewForbiddenError("cannot delete a saved message")
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return errs.NewDatabaseError("delete", "contact message", err)
	}

	s.cache.InvalidatePrefix(ctx, cacheKeyContact)
	return nil
}

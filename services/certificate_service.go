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
	cacheKeyCertificates     = "certificates:"
	cacheKeyCertificatesList = "certificates:list"
)

type CertificateInput struct {
	Title        *string    `json:"title" validate:"omitempty,min=1"`
	Issuer       *string    `json:"issuer" validate:"omitempty,min=1"`
	IssuedAt     *time.Time `json:"issuedAt"`
	CredentialID *string    `json:"credentialId"`
	URL          *string    `json:"url" validate:"omitempty,url"`
	ImageURL     *string    `json:"imageUrl" validate:"omitempty,url"`
}

type CertificateService struct {
	repo   *database.CertificateRepo
	cache  cache.Cache
	logger zerolog.Logger
	sf     singleflight.Group
}

func NewCertificateService(repo *database.CertificateRepo, c cache.Cache) *CertificateService {
	return &CertificateService{
		repo:   repo,
		cache:  c,
		logger: log.With().Str("serviceName", "certificateService").Logger(),
	}
}

// List returns all certificates, most recently issued first. Results are cached.
func (s *CertificateService) List(ctx context.Context) ([]*models.Certificate, error) {
	return cache.Through(ctx, s.cache, &s.sf, cacheKeyCertificatesList, cache.DefaultTTL, func(ctx context.Context) ([]*models.Certificate, error) {
		certificates, err := s.repo.FindAll(ctx)
		if err != nil {
			return nil, errs.NewDatabaseError("list", "certificates", err)
		}
		return certificates, nil
	})
}

func (s *CertificateService) Create(ctx context.Context, input CertificateInput) (*models.Certificate, error) {
	if err := requireFields(map[string]bool{
		"title":    provided(input.Title),
		"issuer":   provided(input.Issuer),
		"issuedAt": input.IssuedAt != nil,
	}); err != nil {
		return nil, err
	}
	if err := validateInput(input); err != nil {
		return nil, err
	}

	certificate := &models.Certificate{
		Title:        *input.Title,
		Issuer:       *input.Issuer,
		IssuedAt:     *input.IssuedAt,
		CredentialID: strValue(input.CredentialID),
		URL:          strValue(input.URL),
		ImageURL:     strValue(input.ImageURL),
	}

	if err := s.repo.Add(ctx, certificate); err != nil {
		return nil, errs.NewDatabaseError("create", "certificate", err)
	}

	s.cache.InvalidatePrefix(ctx, cacheKeyCertificates)
	return certificate, nil
}

func (s *CertificateService) Update(ctx context.Context, id uuid.UUID, input CertificateInput) (*models.Certificate, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}

	certificate, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errs.NewDatabaseError("find", "certificate", err)
	}
	if certificate == nil {
		return nil, errs.NewNotFoundError("certificate")
	}

	if input.Title != nil {
		certificate.Title = *input.Title
	}
	if input.Issuer != nil {
		certificate.Issuer = *input.Issuer
	}
	if input.IssuedAt != nil {
		certificate.IssuedAt = *input.IssuedAt
	}
	if input.CredentialID != nil {
		certificate.CredentialID = *input.CredentialID
	}
	if input.URL != nil {
		certificate.URL = *input.URL
	}
	if input.ImageURL != nil {
		certificate.ImageURL = *input.ImageURL
	}

	if err := s.repo.Update(ctx, certificate); err != nil {
		return nil, errs.NewDatabaseError("update", "certificate", err)
	}

	s.cache.InvalidatePrefix(ctx, cacheKeyCertificates)
	return certificate, nil
}

func (s *CertificateService) Remove(ctx context.Context, id uuid.UUID) error {
	certificate, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return errs.NewDatabaseError("find", "certificate", err)
	}
	if certificate == nil {
		return errs.NewNotFoundError("certificate")
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return errs.NewDatabaseError("delete", "certificate", err)
	}

	s.cache.InvalidatePrefix(ctx, cacheKeyCertificates)
	return nil
}

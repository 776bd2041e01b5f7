package database

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/rpupo63/portfolio-backend/models"
	"gorm.io/gorm"
)

type CertificateRepo struct {
	db *gorm.DB
}

func NewCertificateRepo(db *gorm.DB) *CertificateRepo {
	return &CertificateRepo{db}
}

// FindAll returns all certificates, most recently issued first
func (r *CertificateRepo) FindAll(ctx context.Context) ([]*models.Certificate, error) {
	var certificates []*models.Certificate
	err := r.db.WithContext(ctx).Order("issued_at DESC").Find(&certificates).Error
	return certificates, err
}

// FindByID returns a certificate by its ID, or nil if it does not exist
func (r *CertificateRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.Certificate, error) {
	var certificate models.Certificate
	err := r.db.WithContext(ctx).First(&certificate, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &certificate, nil
}

// Add inserts a new certificate into the database
func (r *CertificateRepo) Add(ctx context.Context, certificate *models.Certificate) error {
	return r.db.WithContext(ctx).Create(certificate).Error
}

// Update persists all fields of an existing certificate
func (r *CertificateRepo) Update(ctx context.Context, certificate *models.Certificate) error {
	return r.db.WithContext(ctx).Save(certificate).Error
}

// Delete removes a certificate from the database by id
func (r *CertificateRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&models.Certificate{}, "id = ?", id).Error
}

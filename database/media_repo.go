package database

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/rpupo63/portfolio-backend/models"
	"gorm.io/gorm"
)

type MediaRepo struct {
	db *gorm.DB
}

func NewMediaRepo(db *gorm.DB) *MediaRepo {
	return &MediaRepo{db}
}

// FindAll returns all media entries, newest first
func (r *MediaRepo) FindAll(ctx context.Context) ([]*models.Media, error) {
	var entries []*models.Media
	err := r.db.WithContext(ctx).Order("created_at DESC").Find(&entries).Error
	return entries, err
}

// FindByID returns a media entry by its ID, or nil if it does not exist
func (r *MediaRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.Media, error) {
	var entry models.Media
	err := r.db.WithContext(ctx).First(&entry, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

// Add inserts a new media entry into the database
func (r *MediaRepo) Add(ctx context.Context, entry *models.Media) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

// Update persists all fields of an existing media entry
func (r *MediaRepo) Update(ctx context.Context, entry *models.Media) error {
	return r.db.WithContext(ctx).Save(entry).Error
}

// Delete removes a media entry from the database by id
func (r *MediaRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&models.Media{}, "id = ?", id).Error
}

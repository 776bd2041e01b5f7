package database

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/rpupo63/portfolio-backend/models"
	"gorm.io/gorm"
)

type ExperienceRepo struct {
	db *gorm.DB
}

func NewExperienceRepo(db *gorm.DB) *ExperienceRepo {
	return &ExperienceRepo{db}
}

// FindAll returns all experience entries, most recent start date first
func (r *ExperienceRepo) FindAll(ctx context.Context) ([]*models.Experience, error) {
	var entries []*models.Experience
	err := r.db.WithContext(ctx).Order("start_date DESC").Find(&entries).Error
	return entries, err
}

// FindByID returns an experience entry by its ID, or nil if it does not exist
func (r *ExperienceRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.Experience, error) {
	var entry models.Experience
	err := r.db.WithContext(ctx).First(&entry, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

// Add inserts a new experience entry into the database
func (r *ExperienceRepo) Add(ctx context.Context, entry *models.Experience) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

// Update persists all fields of an existing experience entry
func (r *ExperienceRepo) Update(ctx context.Context, entry *models.Experience) error {
	return r.db.WithContext(ctx).Save(entry).Error
}

// Delete removes an experience entry from the database by id
func (r *ExperienceRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&models.Experience{}, "id = ?", id).Error
}

package database

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/rpupo63/portfolio-backend/models"
	"gorm.io/gorm"
)

type LearningRepo struct {
	db *gorm.DB
}

func NewLearningRepo(db *gorm.DB) *LearningRepo {
	return &LearningRepo{db}
}

// FindAll returns all learning entries, newest first
func (r *LearningRepo) FindAll(ctx context.Context) ([]*models.Learning, error) {
	var entries []*models.Learning
	err := r.db.WithContext(ctx).Order("created_at DESC").Find(&entries).Error
	return entries, err
}

// FindByID returns a learning entry by its ID, or nil if it does not exist
func (r *LearningRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.Learning, error) {
	var entry models.Learning
	err := r.db.WithContext(ctx).First(&entry, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

// Add inserts a new learning entry into the database
func (r *LearningRepo) Add(ctx context.Context, entry *models.Learning) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

// Update persists all fields of an existing learning entry
func (r *LearningRepo) Update(ctx context.Context, entry *models.Learning) error {
	return r.db.WithContext(ctx).Save(entry).Error
}

// Delete removes a learning entry from the database by id
func (r *LearningRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&models.Learning{}, "id = ?", id).Error
}

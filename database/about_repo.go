package database

import (
	"context"
	"errors"

	"github.com/rpupo63/portfolio-backend/models"
	"gorm.io/gorm"
)

type AboutRepo struct {
	db *gorm.DB
}

func NewAboutRepo(db *gorm.DB) *AboutRepo {
	return &AboutRepo{db}
}

// First returns the singleton about document, or nil when none has been created yet
func (r *AboutRepo) First(ctx context.Context) (*models.About, error) {
	var about models.About
	err := r.db.WithContext(ctx).First(&about).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &about, nil
}

// Add inserts the singleton about document
func (r *AboutRepo) Add(ctx context.Context, about *models.About) error {
	return r.db.WithContext(ctx).Create(about).Error
}

// Update persists all fields of the singleton about document
func (r *AboutRepo) Update(ctx context.Context, about *models.About) error {
	return r.db.WithContext(ctx).Save(about).Error
}

package database

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/rpupo63/portfolio-backend/models"
	"gorm.io/gorm"
)

type ContactRepo struct {
	db *gorm.DB
}

func NewContactRepo(db *gorm.DB) *ContactRepo {
	return &ContactRepo{db}
}

// FindAll returns all contact messages, newest first
func (r *ContactRepo) FindAll(ctx context.Context) ([]*models.Contact, error) {
	var messages []*models.Contact
	err := r.db.WithContext(ctx).Order("created_at DESC").Find(&messages).Error
	return messages, err
}

// FindByID returns a contact message by its ID, or nil if it does not exist
func (r *ContactRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.Contact, error) {
	var message models.Contact
	err := r.db.WithContext(ctx).First(&message, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &message, nil
}

// Add inserts a new contact message into the database
func (r *ContactRepo) Add(ctx context.Context, message *models.Contact) error {
	return r.db.WithContext(ctx).Create(message).Error
}

// Update persists all fields of an existing contact message
func (r *ContactRepo) Update(ctx context.Context, message *models.Contact) error {
	return r.db.WithContext(ctx).Save(message).Error
}

// Delete removes a contact message from the database by id
func (r *ContactRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&models.Contact{}, "id = ?", id).Error
}

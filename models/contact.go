package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Contact message statuses
const (
	ContactStatusUnread = "unread"
	ContactStatusRead   = "read"
)

// Contact represents a message submitted through the public contact form.
// A saved message cannot be deleted until it is unsaved.
type Contact struct {
	ID      uuid.UUID `json:"id" db:"id" gorm:"type:uuid;primaryKey;not null"`
	Name    string    `json:"name" db:"name" gorm:"type:text;not null"`
	Email   string    `json:"email" db:"email" gorm:"type:text;not null;index"`
	Message string    `json:"message" db:"message" gorm:"type:text;not null"`
	Status  string    `json:"status" db:"status" gorm:"type:text;not null;default:unread"`
	Saved   bool      `json:"saved" db:"saved" gorm:"not null;default:false"`

	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}

func (c *Contact) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

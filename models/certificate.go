package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Certificate represents a professional certificate or award
type Certificate struct {
	ID           uuid.UUID `json:"id" db:"id" gorm:"type:uuid;primaryKey;not null"`
	Title        string    `json:"title" db:"title" gorm:"type:text;not null"`
	Issuer       string    `json:"issuer" db:"issuer" gorm:"type:text;not null"`
	IssuedAt     time.Time `json:"issuedAt" db:"issued_at" gorm:"not null"`
	CredentialID string    `json:"credentialId,omitempty" db:"credential_id" gorm:"type:text"`
	URL          string    `json:"url,omitempty" db:"url" gorm:"type:text"`
	ImageURL     string    `json:"imageUrl,omitempty" db:"image_url" gorm:"type:text"`

	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}

func (c *Certificate) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Socials holds the profile's external links
type Socials struct {
	Github    string `json:"github,omitempty"`
	Linkedin  string `json:"linkedin,omitempty"`
	Twitter   string `json:"twitter,omitempty"`
	Instagram string `json:"instagram,omitempty"`
	Website   string `json:"website,omitempty"`
}

// Profile is a singleton document: at most one row exists
type Profile struct {
	ID        uuid.UUID                     `json:"id" db:"id" gorm:"type:uuid;primaryKey;not null"`
	Name      string                        `json:"name" db:"name" gorm:"type:text;not null"`
	Headline  string                        `json:"headline,omitempty" db:"headline" gorm:"type:text"`
	Bio       string                        `json:"bio,omitempty" db:"bio" gorm:"type:text"`
	Role      string                        `json:"role,omitempty" db:"role" gorm:"type:text"`
	AvatarURL string                        `json:"avatarUrl,omitempty" db:"avatar_url" gorm:"type:text"`
	Location  string                        `json:"location,omitempty" db:"location" gorm:"type:text"`
	Email     string                        `json:"email,omitempty" db:"email" gorm:"type:text"`
	Phone     string                        `json:"phone,omitempty" db:"phone" gorm:"type:text"`
	Socials   datatypes.JSONType[Socials]   `json:"socials" db:"socials"`

	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}

func (p *Profile) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Media kinds
const (
	MediaTypeImage = "image"
	MediaTypeVideo = "video"
	MediaTypeLink  = "link"
)

// Media represents a gallery entry (image, video or external link)
type Media struct {
	ID       uuid.UUID                   `json:"id" db:"id" gorm:"type:uuid;primaryKey;not null"`
	Type     string                      `json:"type" db:"type" gorm:"type:text;not null"`
	Title    string                      `json:"title" db:"title" gorm:"type:text;not null"`
	URL      string                      `json:"url" db:"url" gorm:"type:text;not null"`
	ImageURL string                      `json:"imageUrl,omitempty" db:"image_url" gorm:"type:text"`
	Tags     datatypes.JSONSlice[string] `json:"tags,omitempty" db:"tags"`

	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}

func (m *Media) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Skill proficiency levels, shared with Learning.
const (
	LevelBeginner     = "beginner"
	LevelIntermediate = "intermediate"
	LevelAdvanced     = "advanced"
	LevelExpert       = "expert"
)

// Skill represents a single technology or competency on the public site
type Skill struct {
	ID       uuid.UUID `json:"id" db:"id" gorm:"type:uuid;primaryKey;not null"`
	Name     string    `json:"name" db:"name" gorm:"type:text;not null"`
	Level    string    `json:"level" db:"level" gorm:"type:text;not null;default:intermediate"`
	Category string    `json:"category,omitempty" db:"category" gorm:"type:text"`

	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}

func (s *Skill) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

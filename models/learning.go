package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Learning progress states
const (
	LearningInProgress = "In Progress"
	LearningExploring  = "Exploring"
	LearningBuilding   = "Building"
	LearningApplied    = "Applied"
)

// Learning represents a technology currently being learned
type Learning struct {
	ID       uuid.UUID `json:"id" db:"id" gorm:"type:uuid;primaryKey;not null"`
	Name     string    `json:"name" db:"name" gorm:"type:text;not null"`
	Level    string    `json:"level" db:"level" gorm:"type:text;not null;default:beginner"`
	Status   string    `json:"status" db:"status" gorm:"type:text;not null;default:'In Progress'"`
	Category string    `json:"category,omitempty" db:"category" gorm:"type:text"`

	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}

func (l *Learning) BeforeCreate(tx *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}

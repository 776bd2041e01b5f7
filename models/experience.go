package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Experience represents a work-experience entry
type Experience struct {
	ID          uuid.UUID                   `json:"id" db:"id" gorm:"type:uuid;primaryKey;not null"`
	Title       string                      `json:"title" db:"title" gorm:"type:text;not null"`
	Company     string                      `json:"company" db:"company" gorm:"type:text;not null"`
	Location    string                      `json:"location,omitempty" db:"location" gorm:"type:text"`
	StartDate   time.Time                   `json:"startDate" db:"start_date" gorm:"not null"`
	EndDate     *time.Time                  `json:"endDate,omitempty" db:"end_date"`
	Current     bool                        `json:"current" db:"current" gorm:"not null;default:false"`
	Description string                      `json:"description,omitempty" db:"description" gorm:"type:text"`
	Highlights  datatypes.JSONSlice[string] `json:"highlights,omitempty" db:"highlights"`

	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}

func (e *Experience) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}

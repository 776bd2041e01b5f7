package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// AboutSection is a free-form titled block on the about page
type AboutSection struct {
	Title      string   `json:"title"`
	Content    string   `json:"content,omitempty"`
	Highlights []string `json:"highlights,omitempty"`
}

// AboutSkill is a lightweight skill mention inside the about page,
// independent from the Skill collection
type AboutSkill struct {
	Name     string `json:"name"`
	Category string `json:"category"`
}

// About is a singleton document: at most one row exists
type About struct {
	ID           uuid.UUID                         `json:"id" db:"id" gorm:"type:uuid;primaryKey;not null"`
	Introduction string                            `json:"introduction,omitempty" db:"introduction" gorm:"type:text"`
	Background   string                            `json:"background,omitempty" db:"background" gorm:"type:text"`
	Passions     datatypes.JSONSlice[string]       `json:"passions,omitempty" db:"passions"`
	Skills       datatypes.JSONSlice[AboutSkill]   `json:"skills,omitempty" db:"skills"`
	Goals        datatypes.JSONSlice[string]       `json:"goals,omitempty" db:"goals"`
	Hobbies      datatypes.JSONSlice[string]       `json:"hobbies,omitempty" db:"hobbies"`
	Mood         string                            `json:"mood,omitempty" db:"mood" gorm:"type:text"`
	Likes        datatypes.JSONSlice[string]       `json:"likes,omitempty" db:"likes"`
	Image        string                            `json:"image,omitempty" db:"image" gorm:"type:text"`
	Sections     datatypes.JSONSlice[AboutSection] `json:"sections,omitempty" db:"sections"`

	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}

func (a *About) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}

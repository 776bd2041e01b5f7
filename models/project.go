package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Project statuses
const (
	ProjectStatusPlanned   = "planned"
	ProjectStatusOngoing   = "ongoing"
	ProjectStatusCompleted = "completed"
)

// Project represents one version of a portfolio project. Versions of the
// same logical project share a slug and form a chain through ParentProjectID;
// at most one document per chain carries Latest=true.
type Project struct {
	ID          uuid.UUID                  `json:"id" db:"id" gorm:"type:uuid;primaryKey;not null"`
	Slug        string                     `json:"slug" db:"slug" gorm:"type:text;not null;index;uniqueIndex:idx_project_slug_version"`
	Version     string                     `json:"version,omitempty" db:"version" gorm:"type:text;uniqueIndex:idx_project_slug_version"`
	Title       string                     `json:"title" db:"title" gorm:"type:text;not null"`
	Category    string                     `json:"category" db:"category" gorm:"type:text;not null"`
	Description string                     `json:"description" db:"description" gorm:"type:text;not null"`
	Highlights  datatypes.JSONSlice[string] `json:"highlights,omitempty" db:"highlights"`
	Tech        datatypes.JSONSlice[string] `json:"tech,omitempty" db:"tech"`
	Tags        datatypes.JSONSlice[string] `json:"tags,omitempty" db:"tags"`
	RepoURL     string                     `json:"repoUrl,omitempty" db:"repo_url" gorm:"type:text"`
	DemoURL     string                     `json:"demoUrl,omitempty" db:"demo_url" gorm:"type:text"`
	ImageURL    string                     `json:"imageUrl,omitempty" db:"image_url" gorm:"type:text"`
	Status      string                     `json:"status" db:"status" gorm:"type:text;not null;default:ongoing"`
	Content     string                     `json:"content,omitempty" db:"content" gorm:"type:text"`

	// Version chain
	ParentProjectID *uuid.UUID `json:"parentProjectId,omitempty" db:"parent_project_id" gorm:"type:uuid;index"`
	ParentProject   *Project   `json:"-" gorm:"foreignKey:ParentProjectID;references:ID"`
	Latest          bool       `json:"latest" db:"latest" gorm:"not null;default:true"`

	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}

func (p *Project) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// ProjectRef is the small projection of a parent project embedded in API
// responses instead of the full document.
type ProjectRef struct {
	ID      uuid.UUID `json:"id"`
	Slug    string    `json:"slug"`
	Title   string    `json:"title"`
	Version string    `json:"version,omitempty"`
}

// Ref projects a full document down to its reference form.
func (p *Project) Ref() *ProjectRef {
	if p == nil {
		return nil
	}
	return &ProjectRef{ID: p.ID, Slug: p.Slug, Title: p.Title, Version: p.Version}
}

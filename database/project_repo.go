package database

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/rpupo63/portfolio-backend/models"
	"gorm.io/gorm"
)

type ProjectRepo struct {
	db *gorm.DB
}

func NewProjectRepo(db *gorm.DB) *ProjectRepo {
	return &ProjectRepo{db}
}

// Transaction runs fn against a repo bound to a single database transaction.
// Every chain mutation (flag flips + final write, cascade deletes) goes
// through here so a failure rolls back the whole sequence.
func (r *ProjectRepo) Transaction(ctx context.Context, fn func(tx *ProjectRepo) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&ProjectRepo{tx})
	})
}

// FindAll returns every project version, newest-created first
func (r *ProjectRepo) FindAll(ctx context.Context) ([]*models.Project, error) {
	var projects []*models.Project
	err := r.db.WithContext(ctx).
		Preload("ParentProject").
		Order("created_at DESC").
		Find(&projects).Error
	return projects, err
}

// FindLatest returns only the projects marked latest, newest-created first
func (r *ProjectRepo) FindLatest(ctx context.Context) ([]*models.Project, error) {
	var projects []*models.Project
	err := r.db.WithContext(ctx).
		Preload("ParentProject").
		Where("latest = ?", true).
		Order("created_at DESC").
		Find(&projects).Error
	return projects, err
}

// FindBySlug returns the oldest project with the given slug, or nil if none
// exists. Versions may share a slug, so the lookup pins the chain root:
// deletes resolved by slug then cascade from the root over internal ids.
func (r *ProjectRepo) FindBySlug(ctx context.Context, slug string) (*models.Project, error) {
	var project models.Project
	err := r.db.WithContext(ctx).
		Preload("ParentProject").
		Where("slug = ?", slug).
		Order("created_at ASC").
		First(&project).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &project, nil
}

// ExistsSlugVersion reports whether a project other than excludeID already
// holds the (slug, version) pair.
func (r *ProjectRepo) ExistsSlugVersion(ctx context.Context, slug, version string, excludeID *uuid.UUID) (bool, error) {
	query := r.db.WithContext(ctx).
		Model(&models.Project{}).
		Where("slug = ? AND version = ?", slug, version)
	if excludeID != nil {
		query = query.Where("id <> ?", *excludeID)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// FindChildren returns the direct child versions of a project, newest-created first
func (r *ProjectRepo) FindChildren(ctx context.Context, parentID uuid.UUID) ([]*models.Project, error) {
	var projects []*models.Project
	err := r.db.WithContext(ctx).
		Where("parent_project_id = ?", parentID).
		Order("created_at DESC").
		Find(&projects).Error
	return projects, err
}

// ClearLatestByParent flips latest off for every project pointing at the
// given parent, not just the one previously marked latest, so a chain that
// somehow ended up with several latest siblings is repaired in passing.
func (r *ProjectRepo) ClearLatestByParent(ctx context.Context, parentID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Model(&models.Project{}).
		Where("parent_project_id = ?", parentID).
		Update("latest", false).Error
}

// SetLatest sets the latest flag on a single project
func (r *ProjectRepo) SetLatest(ctx context.Context, id uuid.UUID, latest bool) error {
	return r.db.WithContext(ctx).
		Model(&models.Project{}).
		Where("id = ?", id).
		Update("latest", latest).Error
}

// SubtreeIDs collects the ids of every project reachable from rootID by
// following parent links downwards, rootID included. Iterates a generation
// at a time so grandchildren and deeper descendants are found without
// recursion or a store-side trigger. Already-visited ids are skipped, so
// the walk terminates even if the parent links form a loop.
func (r *ProjectRepo) SubtreeIDs(ctx context.Context, rootID uuid.UUID) ([]uuid.UUID, error) {
	seen := map[uuid.UUID]bool{rootID: true}
	all := []uuid.UUID{rootID}
	frontier := []uuid.UUID{rootID}

	for len(frontier) > 0 {
		var found []uuid.UUID
		err := r.db.WithContext(ctx).
			Model(&models.Project{}).
			Where("parent_project_id IN ?", frontier).
			Pluck("id", &found).Error
		if err != nil {
			return nil, err
		}

		var next []uuid.UUID
		for _, id := range found {
			if !seen[id] {
				seen[id] = true
				all = append(all, id)
				next = append(next, id)
			}
		}
		frontier = next
	}

	return all, nil
}

// Add inserts a new project into the database
func (r *ProjectRepo) Add(ctx context.Context, project *models.Project) error {
	return r.db.WithContext(ctx).Create(project).Error
}

// Update persists all fields of an existing project
func (r *ProjectRepo) Update(ctx context.Context, project *models.Project) error {
	return r.db.WithContext(ctx).Save(project).Error
}

// DeleteByIDs removes every project in ids
func (r *ProjectRepo) DeleteByIDs(ctx context.Context, ids []uuid.UUID) error {
	if len(ids) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Delete(&models.Project{}, "id IN ?", ids).Error
}

package services

import (
	"context"
	"regexp"
	"sort"
	"strings"
	"sync"

	"github.com/rpupo63/portfolio-backend/cache"
	"github.com/rpupo63/portfolio-backend/database"
	"github.com/rpupo63/portfolio-backend/errs"
	"github.com/rpupo63/portfolio-backend/models"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/singleflight"
)

// cacheKeyProjects prefixes every cached project read; mutations drop the
// whole prefix because list, admin and single-project views all go stale
// together when a chain changes.
const (
	cacheKeyProjects     = "projects:"
	cacheKeyProjectsList = "projects:list"
	cacheKeyProjectsAll  = "projects:all"
)

// ProjectInput is the request payload for creating or updating a project.
// Pointer fields distinguish "absent" from "set to zero"; updates only touch
// supplied fields.
type ProjectInput struct {
	Slug          *string   `json:"slug" validate:"omitempty,min=1"`
	Title         *string   `json:"title" validate:"omitempty,min=1"`
	Category      *string   `json:"category" validate:"omitempty,min=1"`
	Description   *string   `json:"description" validate:"omitempty,min=1"`
	Highlights    *[]string `json:"highlights"`
	Tech          *[]string `json:"tech"`
	Tags          *[]string `json:"tags"`
	RepoURL       *string   `json:"repoUrl" validate:"omitempty,url"`
	DemoURL       *string   `json:"demoUrl" validate:"omitempty,url"`
	ImageURL      *string   `json:"imageUrl" validate:"omitempty,url"`
	Status        *string   `json:"status" validate:"omitempty,oneof=planned ongoing completed"`
	Content       *string   `json:"content"`
	ParentProject *string   `json:"parentProject"` // parent's slug, not id
	Version       *string   `json:"version"`
}

// ProjectView is a project with its parent resolved to a small projection.
type ProjectView struct {
	models.Project
	Parent *models.ProjectRef `json:"parentProject,omitempty"`
}

// ProjectDetail is the single-project view: the document plus its direct
// child versions, newest first.
type ProjectDetail struct {
	Item     ProjectView      `json:"item"`
	Versions []models.Project `json:"versions"`
}

// ProjectService keeps the parent/child/latest graph over project documents
// consistent under create, update and delete. Chain mutations are serialized
// per slug and run inside a single transaction.
type ProjectService struct {
	repo   *database.ProjectRepo
	cache  cache.Cache
	logger zerolog.Logger
	sf     singleflight.Group

	mu     sync.Mutex
	chains map[string]*sync.Mutex
}

func NewProjectService(repo *database.ProjectRepo, c cache.Cache) *ProjectService {
	return &ProjectService{
		repo:   repo,
		cache:  c,
		logger: log.With().Str("serviceName", "projectService").Logger(),
		chains: make(map[string]*sync.Mutex),
	}
}

var slugPattern = regexp.MustCompile(`[^a-z0-9]+`)

// slugify derives a slug from a title: lowercase, non-alphanumerics
// collapsed to single hyphens.
func slugify(title string) string {
	slug := slugPattern.ReplaceAllString(strings.ToLower(title), "-")
	return strings.Trim(slug, "-")
}

// lockChains acquires the mutation lock for each named chain in sorted
// order, so two requests touching the same pair of chains cannot deadlock.
func (s *ProjectService) lockChains(slugs ...string) func() {
	unique := map[string]bool{}
	var ordered []string
	for _, slug := range slugs {
		if slug != "" && !unique[slug] {
			unique[slug] = true
			ordered = append(ordered, slug)
		}
	}
	sort.Strings(ordered)

	var held []*sync.Mutex
	for _, slug := range ordered {
		s.mu.Lock()
		lock, ok := s.chains[slug]
		if !ok {
			lock = &sync.Mutex{}
			s.chains[slug] = lock
		}
		s.mu.Unlock()

		lock.Lock()
		held = append(held, lock)
	}

	return func() {
		for i := len(held) - 1; i >= 0; i-- {
			held[i].Unlock()
		}
	}
}

func (s *ProjectService) invalidate(ctx context.Context) {
	s.cache.InvalidatePrefix(ctx, cacheKeyProjects)
}

func viewOf(project *models.Project) ProjectView {
	return ProjectView{Project: *project, Parent: project.ParentProject.Ref()}
}

func viewsOf(projects []*models.Project) []ProjectView {
	views := make([]ProjectView, 0, len(projects))
	for _, project := range projects {
		views = append(views, viewOf(project))
	}
	return views
}

// List returns the latest version of every chain, newest-created first.
// Results are cached.
func (s *ProjectService) List(ctx context.Context) ([]ProjectView, error) {
	return cache.Through(ctx, s.cache, &s.sf, cacheKeyProjectsList, cache.DefaultTTL, func(ctx context.Context) ([]ProjectView, error) {
		projects, err := s.repo.FindLatest(ctx)
		if err != nil {
			return nil, errs.NewDatabaseError("list", "projects", err)
		}
		return viewsOf(projects), nil
	})
}

// ListAll returns every project version for the admin console. Results are cached.
func (s *ProjectService) ListAll(ctx context.Context) ([]ProjectView, error) {
	return cache.Through(ctx, s.cache, &s.sf, cacheKeyProjectsAll, cache.DefaultTTL, func(ctx context.Context) ([]ProjectView, error) {
		projects, err := s.repo.FindAll(ctx)
		if err != nil {
			return nil, errs.NewDatabaseError("list", "projects", err)
		}
		return viewsOf(projects), nil
	})
}

// GetBySlug returns the project plus its direct child versions. Results are cached.
func (s *ProjectService) GetBySlug(ctx context.Context, slug string) (*ProjectDetail, error) {
	return cache.Through(ctx, s.cache, &s.sf, cacheKeyProjects+slug, cache.DefaultTTL, func(ctx context.Context) (*ProjectDetail, error) {
		project, err := s.repo.FindBySlug(ctx, slug)
		if err != nil {
			return nil, errs.NewDatabaseError("find", "project", err)
		}
		if project == nil {
			return nil, errs.NewNotFoundError("project")
		}

		children, err := s.repo.FindChildren(ctx, project.ID)
		if err != nil {
			return nil, errs.NewDatabaseError("find", "project versions", err)
		}

		versions := make([]models.Project, 0, len(children))
		for _, child := range children {
			versions = append(versions, *child)
		}

		return &ProjectDetail{Item: viewOf(project), Versions: versions}, nil
	})
}

// Create persists a new project version. When a parent slug is named, the
// parent is unconditionally demoted; the new document is always the latest
// of its chain.
func (s *ProjectService) Create(ctx context.Context, input ProjectInput) (*ProjectView, error) {
	if err := requireFields(map[string]bool{
		"title":       provided(input.Title),
		"category":    provided(input.Category),
		"description": provided(input.Description),
	}); err != nil {
		return nil, err
	}
	if err := validateInput(input); err != nil {
		return nil, err
	}

	slug := strValue(input.Slug)
	if slug == "" {
		slug = slugify(*input.Title)
	}

	unlock := s.lockChains(slug, strValue(input.ParentProject))
	defer unlock()

	project := &models.Project{
		Slug:        slug,
		Title:       *input.Title,
		Category:    *input.Category,
		Description: *input.Description,
		RepoURL:     strValue(input.RepoURL),
		DemoURL:     strValue(input.DemoURL),
		ImageURL:    strValue(input.ImageURL),
		Content:     strValue(input.Content),
		Version:     strValue(input.Version),
		Status:      models.ProjectStatusOngoing,
		Latest:      true,
	}
	if input.Status != nil {
		project.Status = *input.Status
	}
	if input.Highlights != nil {
		project.Highlights = *input.Highlights
	}
	if input.Tech != nil {
		project.Tech = *input.Tech
	}
	if input.Tags != nil {
		project.Tags = *input.Tags
	}

	err := s.repo.Transaction(ctx, func(tx *database.ProjectRepo) error {
		if provided(input.ParentProject) {
			parent, err := tx.FindBySlug(ctx, *input.ParentProject)
			if err != nil {
				return errs.NewDatabaseError("find", "parent project", err)
			}
			if parent == nil {
				return errs.NewNotFoundError("parent project")
			}

			// The parent is being superseded regardless of its current state.
			if err := tx.SetLatest(ctx, parent.ID, false); err != nil {
				return errs.NewDatabaseError("update", "parent project", err)
			}
			project.ParentProjectID = &parent.ID
			project.ParentProject = parent
		}

		exists, err := tx.ExistsSlugVersion(ctx, slug, project.Version, nil)
		if err != nil {
			return errs.NewDatabaseError("check", "project version", err)
		}
		if exists {
			return errs.NewConflictError("slug + version already exists")
		}

		return tx.Add(ctx, project)
	})
	if err != nil {
		return nil, err
	}

	s.invalidate(ctx)
	s.logger.Info().Str("slug", slug).Str("version", project.Version).Msg("project created")

	view := viewOf(project)
	return &view, nil
}

// Update applies the supplied fields to the project named by slug.
// Re-parenting demotes every sibling under the new parent and promotes the
// updated document to latest.
func (s *ProjectService) Update(ctx context.Context, slug string, input ProjectInput) (*ProjectView, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}

	unlock := s.lockChains(slug, strValue(input.ParentProject))
	defer unlock()

	var project *models.Project
	err := s.repo.Transaction(ctx, func(tx *database.ProjectRepo) error {
		var err error
		project, err = tx.FindBySlug(ctx, slug)
		if err != nil {
			return errs.NewDatabaseError("find", "project", err)
		}
		if project == nil {
			return errs.NewNotFoundError("project")
		}

		if provided(input.ParentProject) {
			parent, err := tx.FindBySlug(ctx, *input.ParentProject)
			if err != nil {
				return errs.NewDatabaseError("find", "parent project", err)
			}
			if parent == nil {
				return errs.NewNotFoundError("parent project")
			}

			// A parent inside the project's own subtree would write a loop
			// into the parent links and make the cascade unbounded.
			subtree, err := tx.SubtreeIDs(ctx, project.ID)
			if err != nil {
				return errs.NewDatabaseError("collect", "project subtree", err)
			}
			for _, id := range subtree {
				if id == parent.ID {
					return errs.NewValidationError(map[string]string{
						"parentProject": "cannot be the project itself or one of its descendants",
					})
				}
			}

			// Demote every sibling under this parent, not just the one
			// currently marked latest, so a previously inconsistent chain
			// is repaired by the same write.
			if err := tx.ClearLatestByParent(ctx, parent.ID); err != nil {
				return errs.NewDatabaseError("update", "sibling projects", err)
			}
			project.ParentProjectID = &parent.ID
			project.ParentProject = parent
			project.Latest = true
		}

		if provided(input.Version) {
			conflict, err := tx.ExistsSlugVersion(ctx, slug, *input.Version, &project.ID)
			if err != nil {
				return errs.NewDatabaseError("check", "project version", err)
			}
			if conflict {
				return errs.NewConflictError("slug + version already exists")
			}
			project.Version = *input.Version
		}

		if input.Title != nil {
			project.Title = *input.Title
		}
		if input.Category != nil {
			project.Category = *input.Category
		}
		if input.Description != nil {
			project.Description = *input.Description
		}
		if input.Highlights != nil {
			project.Highlights = *input.Highlights
		}
		if input.Tech != nil {
			project.Tech = *input.Tech
		}
		if input.Tags != nil {
			project.Tags = *input.Tags
		}
		if input.RepoURL != nil {
			project.RepoURL = *input.RepoURL
		}
		if input.DemoURL != nil {
			project.DemoURL = *input.DemoURL
		}
		if input.ImageURL != nil {
			project.ImageURL = *input.ImageURL
		}
		if input.Status != nil {
			project.Status = *input.Status
		}
		if input.Content != nil {
			project.Content = *input.Content
		}

		return tx.Update(ctx, project)
	})
	if err != nil {
		return nil, err
	}

	s.invalidate(ctx)
	s.logger.Info().Str("slug", slug).Msg("project updated")

	view := viewOf(project)
	return &view, nil
}

// Delete removes the project named by slug and its entire descendant
// subtree: children, grandchildren and deeper, resolved by id rather than
// by the shared slug.
func (s *ProjectService) Delete(ctx context.Context, slug string) error {
	unlock := s.lockChains(slug)
	defer unlock()

	var removed int
	err := s.repo.Transaction(ctx, func(tx *database.ProjectRepo) error {
		project, err := tx.FindBySlug(ctx, slug)
		if err != nil {
			return errs.NewDatabaseError("find", "project", err)
		}
		if project == nil {
			return errs.NewNotFoundError("project")
		}

		ids, err := tx.SubtreeIDs(ctx, project.ID)
		if err != nil {
			return errs.NewDatabaseError("collect", "project subtree", err)
		}
		removed = len(ids)

		return tx.DeleteByIDs(ctx, ids)
	})
	if err != nil {
		return err
	}

	s.invalidate(ctx)
	s.logger.Info().Str("slug", slug).Int("removed", removed).Msg("project subtree deleted")
	return nil
}

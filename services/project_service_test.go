package services

import (
	"context"
	"testing"
	"time"

	"github.com/rpupo63/portfolio-backend/errs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newProjectService(t *testing.T) (*ProjectService, *spyCache) {
	t.Helper()
	db := newTestDatabase(t)
	c := newSpyCache()
	return NewProjectService(db.ProjectRepo(), c), c
}

func createProject(t *testing.T, svc *ProjectService, input ProjectInput) *ProjectView {
	t.Helper()
	if input.Category == nil {
		input.Category = strPtr("web")
	}
	if input.Description == nil {
		input.Description = strPtr("a project")
	}
	view, err := svc.Create(context.Background(), input)
	require.NoError(t, err)
	return view
}

func TestCreateRequiresCoreFields(t *testing.T) {
	svc, _ := newProjectService(t)

	_, err := svc.Create(context.Background(), ProjectInput{Title: strPtr("only a title")})
	require.Error(t, err)

	apiErr, ok := err.(*errs.ApiErr)
	require.True(t, ok)
	assert.Equal(t, 400, apiErr.StatusCode)
	assert.Contains(t, apiErr.Fields, "category")
	assert.Contains(t, apiErr.Fields, "description")
}

func TestCreateDerivesSlugFromTitle(t *testing.T) {
	svc, _ := newProjectService(t)

	view := createProject(t, svc, ProjectInput{Title: strPtr("My First App!")})

	assert.Equal(t, "my-first-app", view.Slug)
	assert.True(t, view.Latest)
	assert.Equal(t, "ongoing", view.Status)
}

func TestCreateWithParentDemotesParent(t *testing.T) {
	svc, _ := newProjectService(t)
	ctx := context.Background()

	parent := createProject(t, svc, ProjectInput{Title: strPtr("Engine"), Version: strPtr("v1")})

	child := createProject(t, svc, ProjectInput{
		Title:         strPtr("Engine"),
		Slug:          strPtr("engine-v2"),
		Version:       strPtr("v2"),
		ParentProject: strPtr(parent.Slug),
	})

	require.NotNil(t, child.Parent)
	assert.Equal(t, parent.ID, child.Parent.ID)
	assert.True(t, child.Latest)

	detail, err := svc.GetBySlug(ctx, parent.Slug)
	require.NoError(t, err)
	assert.False(t, detail.Item.Latest, "parent must be demoted when superseded")
	require.Len(t, detail.Versions, 1)
	assert.Equal(t, child.ID, detail.Versions[0].ID)
}

func TestCreateParentNotFound(t *testing.T) {
	svc, _ := newProjectService(t)

	_, err := svc.Create(context.Background(), ProjectInput{
		Title:         strPtr("Orphan"),
		Category:      strPtr("web"),
		Description:   strPtr("a project"),
		ParentProject: strPtr("no-such-project"),
	})

	require.Error(t, err)
	assert.True(t, errs.IsNotFound(err))
}

func TestCreateDuplicateSlugVersionConflicts(t *testing.T) {
	svc, _ := newProjectService(t)

	createProject(t, svc, ProjectInput{Title: strPtr("Site"), Slug: strPtr("site"), Version: strPtr("v1")})

	_, err := svc.Create(context.Background(), ProjectInput{
		Title:       strPtr("Site again"),
		Category:    strPtr("web"),
		Description: strPtr("a project"),
		Slug:        strPtr("site"),
		Version:     strPtr("v1"),
	})

	require.Error(t, err)
	assert.True(t, errs.IsConflict(err))
}

func TestUpdateAppliesOnlySuppliedFields(t *testing.T) {
	svc, _ := newProjectService(t)
	ctx := context.Background()

	createProject(t, svc, ProjectInput{
		Title:       strPtr("Tracker"),
		Slug:        strPtr("tracker"),
		Description: strPtr("original description"),
	})

	updated, err := svc.Update(ctx, "tracker", ProjectInput{Title: strPtr("Tracker 2")})
	require.NoError(t, err)

	assert.Equal(t, "Tracker 2", updated.Title)
	assert.Equal(t, "original description", updated.Description)
}

func TestUpdateReparentDemotesAllSiblings(t *testing.T) {
	svc, _ := newProjectService(t)
	ctx := context.Background()

	root := createProject(t, svc, ProjectInput{Title: strPtr("Root"), Slug: strPtr("root"), Version: strPtr("v1")})

	// Two children created directly under the root. Creating the second
	// does not demote the first, so both start out latest.
	first := createProject(t, svc, ProjectInput{
		Title: strPtr("Root"), Slug: strPtr("root-a"), Version: strPtr("v2"), ParentProject: strPtr(root.Slug),
	})
	second := createProject(t, svc, ProjectInput{
		Title: strPtr("Root"), Slug: strPtr("root-b"), Version: strPtr("v3"),
	})

	// Re-parenting the second child demotes every existing sibling under
	// the root, leaving exactly one latest in the family.
	updated, err := svc.Update(ctx, second.Slug, ProjectInput{ParentProject: strPtr(root.Slug)})
	require.NoError(t, err)
	assert.True(t, updated.Latest)

	firstAfter, err := svc.GetBySlug(ctx, first.Slug)
	require.NoError(t, err)
	assert.False(t, firstAfter.Item.Latest)

	all, err := svc.ListAll(ctx)
	require.NoError(t, err)

	latestAmongSiblings := 0
	for _, p := range all {
		if p.ParentProjectID != nil && *p.ParentProjectID == root.ID && p.Latest {
			latestAmongSiblings++
		}
	}
	assert.Equal(t, 1, latestAmongSiblings)
}

func TestUpdateVersionConflictExcludesSelf(t *testing.T) {
	svc, _ := newProjectService(t)
	ctx := context.Background()

	createProject(t, svc, ProjectInput{Title: strPtr("App"), Slug: strPtr("app"), Version: strPtr("v1")})

	// Re-submitting the project's own version is not a conflict.
	_, err := svc.Update(ctx, "app", ProjectInput{Version: strPtr("v1")})
	require.NoError(t, err)
}

func TestUpdateNotFound(t *testing.T) {
	svc, _ := newProjectService(t)

	_, err := svc.Update(context.Background(), "missing", ProjectInput{Title: strPtr("x")})
	require.Error(t, err)
	assert.True(t, errs.IsNotFound(err))
}

func TestDeleteRemovesEntireSubtree(t *testing.T) {
	svc, _ := newProjectService(t)
	ctx := context.Background()

	root := createProject(t, svc, ProjectInput{Title: strPtr("Tree"), Slug: strPtr("tree"), Version: strPtr("v1")})
	child := createProject(t, svc, ProjectInput{
		Title: strPtr("Tree"), Slug: strPtr("tree-child"), Version: strPtr("v2"), ParentProject: strPtr(root.Slug),
	})
	createProject(t, svc, ProjectInput{
		Title: strPtr("Tree"), Slug: strPtr("tree-grandchild"), Version: strPtr("v3"), ParentProject: strPtr(child.Slug),
	})
	bystander := createProject(t, svc, ProjectInput{Title: strPtr("Unrelated"), Slug: strPtr("unrelated")})

	require.NoError(t, svc.Delete(ctx, root.Slug))

	for _, slug := range []string{"tree", "tree-child", "tree-grandchild"} {
		_, err := svc.GetBySlug(ctx, slug)
		assert.True(t, errs.IsNotFound(err), "expected %s to be deleted", slug)
	}

	detail, err := svc.GetBySlug(ctx, bystander.Slug)
	require.NoError(t, err)
	assert.Equal(t, bystander.ID, detail.Item.ID)
}

func TestDeleteNotFound(t *testing.T) {
	svc, _ := newProjectService(t)

	err := svc.Delete(context.Background(), "missing")
	require.Error(t, err)
	assert.True(t, errs.IsNotFound(err))
}

func TestListOnlyLatestVersions(t *testing.T) {
	svc, _ := newProjectService(t)
	ctx := context.Background()

	root := createProject(t, svc, ProjectInput{Title: strPtr("Blog"), Slug: strPtr("blog"), Version: strPtr("v1")})
	createProject(t, svc, ProjectInput{
		Title: strPtr("Blog"), Slug: strPtr("blog-v2"), Version: strPtr("v2"), ParentProject: strPtr(root.Slug),
	})

	latest, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, latest, 1)
	assert.Equal(t, "blog-v2", latest[0].Slug)

	all, err := svc.ListAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestMutationsInvalidateProjectCache(t *testing.T) {
	svc, c := newProjectService(t)
	ctx := context.Background()

	createProject(t, svc, ProjectInput{Title: strPtr("One"), Slug: strPtr("one")})

	before, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, before, 1)

	// A stale cache would keep serving the single-project list.
	createProject(t, svc, ProjectInput{Title: strPtr("Two"), Slug: strPtr("two")})

	after, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, after, 2)
	assert.Contains(t, c.Invalidated, "projects:")
}

func TestListServedFromCache(t *testing.T) {
	svc, c := newProjectService(t)
	ctx := context.Background()

	createProject(t, svc, ProjectInput{Title: strPtr("Cached"), Slug: strPtr("cached")})

	_, err := svc.List(ctx)
	require.NoError(t, err)
	setsAfterFill := c.Sets

	_, err = svc.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, setsAfterFill, c.Sets, "second read must not refill the cache")
	assert.Greater(t, c.Hits, 0)
}

func TestSharedSlugChainResolvesToRoot(t *testing.T) {
	svc, _ := newProjectService(t)
	ctx := context.Background()

	v1 := createProject(t, svc, ProjectInput{Title: strPtr("App"), Slug: strPtr("app"), Version: strPtr("v1")})
	v2 := createProject(t, svc, ProjectInput{
		Title: strPtr("App"), Slug: strPtr("app"), Version: strPtr("v2"), ParentProject: strPtr("app"),
	})

	latest, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, latest, 1)
	assert.Equal(t, "v2", latest[0].Version)

	// A slug shared across versions resolves to the chain root.
	detail, err := svc.GetBySlug(ctx, "app")
	require.NoError(t, err)
	assert.Equal(t, v1.ID, detail.Item.ID)
	assert.False(t, detail.Item.Latest)
	require.Len(t, detail.Versions, 1)
	assert.Equal(t, v2.ID, detail.Versions[0].ID)
}

func TestSharedSlugDeleteCascadesFromRoot(t *testing.T) {
	svc, _ := newProjectService(t)
	ctx := context.Background()

	createProject(t, svc, ProjectInput{Title: strPtr("App"), Slug: strPtr("app"), Version: strPtr("v1")})
	createProject(t, svc, ProjectInput{
		Title: strPtr("App"), Slug: strPtr("app"), Version: strPtr("v2"), ParentProject: strPtr("app"),
	})

	require.NoError(t, svc.Delete(ctx, "app"))

	all, err := svc.ListAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, all, "cascade must remove every version sharing the slug")
}

func TestUpdateRejectsSelfAsParent(t *testing.T) {
	svc, _ := newProjectService(t)
	ctx := context.Background()

	createProject(t, svc, ProjectInput{Title: strPtr("App"), Slug: strPtr("app"), Version: strPtr("v1")})

	_, err := svc.Update(ctx, "app", ProjectInput{ParentProject: strPtr("app")})
	require.Error(t, err)

	apiErr, ok := err.(*errs.ApiErr)
	require.True(t, ok)
	assert.Equal(t, 400, apiErr.StatusCode)
	assert.Contains(t, apiErr.Fields, "parentProject")

	// The rejected write must leave the chain intact and deletable.
	require.NoError(t, svc.Delete(ctx, "app"))
}

func TestUpdateRejectsDescendantAsParent(t *testing.T) {
	svc, _ := newProjectService(t)
	ctx := context.Background()

	root := createProject(t, svc, ProjectInput{Title: strPtr("App"), Slug: strPtr("app"), Version: strPtr("v1")})
	child := createProject(t, svc, ProjectInput{
		Title: strPtr("App"), Slug: strPtr("app-v2"), Version: strPtr("v2"), ParentProject: strPtr(root.Slug),
	})
	createProject(t, svc, ProjectInput{
		Title: strPtr("App"), Slug: strPtr("app-v3"), Version: strPtr("v3"), ParentProject: strPtr(child.Slug),
	})

	// Hanging the root under its own grandchild would close a loop.
	_, err := svc.Update(ctx, "app", ProjectInput{ParentProject: strPtr("app-v3")})
	require.Error(t, err)

	apiErr, ok := err.(*errs.ApiErr)
	require.True(t, ok)
	assert.Contains(t, apiErr.Fields, "parentProject")

	require.NoError(t, svc.Delete(ctx, "app"))

	all, err := svc.ListAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestDeleteTerminatesOnCorruptParentLinks(t *testing.T) {
	db := newTestDatabase(t)
	repo := db.ProjectRepo()
	svc := NewProjectService(repo, newSpyCache())
	ctx := context.Background()

	root := createProject(t, svc, ProjectInput{Title: strPtr("Loop"), Slug: strPtr("loop"), Version: strPtr("v1")})
	child := createProject(t, svc, ProjectInput{
		Title: strPtr("Loop"), Slug: strPtr("loop-v2"), Version: strPtr("v2"), ParentProject: strPtr(root.Slug),
	})

	// Corrupt the graph behind the service's back: point the root at its
	// own child so the parent links form a loop.
	stored, err := repo.FindBySlug(ctx, root.Slug)
	require.NoError(t, err)
	stored.ParentProjectID = &child.ID
	require.NoError(t, repo.Update(ctx, stored))

	done := make(chan error, 1)
	go func() { done <- svc.Delete(ctx, root.Slug) }()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("delete did not terminate on a parent-link loop")
	}

	all, err := svc.ListAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, all, "both members of the loop must be removed")
}

func TestSlugify(t *testing.T) {
	cases := map[string]string{
		"My First App":     "my-first-app",
		"  Spaces  ":       "spaces",
		"C++ & Go!":        "c-go",
		"already-a-slug":   "already-a-slug",
		"MiXeD CaSe 123":   "mixed-case-123",
		"trailing symbol?": "trailing-symbol",
	}
	for title, want := range cases {
		assert.Equal(t, want, slugify(title), "slugify(%q)", title)
	}
}

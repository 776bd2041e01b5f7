package services

import (
	"context"
	"testing"

	"github.com/rpupo63/portfolio-backend/errs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLearningService(t *testing.T) (*LearningService, *spyCache) {
	t.Helper()
	db := newTestDatabase(t)
	c := newSpyCache()
	return NewLearningService(db.LearningRepo(), c), c
}

func TestLearningDefaults(t *testing.T) {
	svc, _ := newLearningService(t)

	entry, err := svc.Create(context.Background(), LearningInput{Name: strPtr("Rust")})
	require.NoError(t, err)
	assert.Equal(t, "beginner", entry.Level)
	assert.Equal(t, "In Progress", entry.Status)
}

func TestLearningRejectsUnknownStatus(t *testing.T) {
	svc, _ := newLearningService(t)

	_, err := svc.Create(context.Background(), LearningInput{
		Name:   strPtr("Rust"),
		Status: strPtr("Abandoned"),
	})
	require.Error(t, err)

	apiErr, ok := err.(*errs.ApiErr)
	require.True(t, ok)
	assert.Equal(t, 400, apiErr.StatusCode)
	assert.Contains(t, apiErr.Fields, "status")
}

func TestLearningCRUD(t *testing.T) {
	svc, c := newLearningService(t)
	ctx := context.Background()

	entry, err := svc.Create(ctx, LearningInput{Name: strPtr("Kubernetes"), Category: strPtr("infra")})
	require.NoError(t, err)

	updated, err := svc.Update(ctx, entry.ID, LearningInput{Status: strPtr("Applied")})
	require.NoError(t, err)
	assert.Equal(t, "Applied", updated.Status)
	assert.Equal(t, "Kubernetes", updated.Name)

	entries, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 1)

	require.NoError(t, svc.Remove(ctx, entry.ID))
	err = svc.Remove(ctx, entry.ID)
	assert.True(t, errs.IsNotFound(err))
	assert.Contains(t, c.Invalidated, "learning:")
}

package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAboutService(t *testing.T) (*AboutService, *spyCache) {
	t.Helper()
	db := newTestDatabase(t)
	c := newSpyCache()
	return NewAboutService(db.AboutRepo(), c), c
}

func TestAboutNilBeforeFirstWrite(t *testing.T) {
	svc, _ := newAboutService(t)

	about, err := svc.Get(context.Background())
	require.NoError(t, err)
	assert.Nil(t, about)
}

func TestAboutCreatedWithPlaceholderOnFirstUpdate(t *testing.T) {
	svc, _ := newAboutService(t)

	about, err := svc.Update(context.Background(), AboutInput{Mood: strPtr("curious")})
	require.NoError(t, err)
	assert.Equal(t, "Your intro here", about.Introduction)
	assert.Equal(t, "curious", about.Mood)
}

func TestAboutMergePreservesArrayFields(t *testing.T) {
	svc, _ := newAboutService(t)
	ctx := context.Background()

	_, err := svc.Update(ctx, AboutInput{
		Introduction: strPtr("Hello"),
		Passions:     &[]string{"open source", "teaching"},
		Skills:       &[]AboutSkillInput{{Name: "Go", Category: "backend"}},
		Sections: &[]AboutSectionInput{
			{Title: "Now", Content: "Building things", Highlights: []string{"portfolio"}},
		},
	})
	require.NoError(t, err)

	// A later update touching one scalar must not clear the array fields.
	about, err := svc.Update(ctx, AboutInput{Mood: strPtr("focused")})
	require.NoError(t, err)
	assert.Equal(t, "Hello", about.Introduction)
	require.Len(t, about.Passions, 2)
	assert.Equal(t, "open source", about.Passions[0])
	require.Len(t, about.Skills, 1)
	assert.Equal(t, "Go", about.Skills[0].Name)
	require.Len(t, about.Sections, 1)
	assert.Equal(t, "Now", about.Sections[0].Title)
	require.Len(t, about.Sections[0].Highlights, 1)

	// Supplying an array replaces it wholesale.
	about, err = svc.Update(ctx, AboutInput{Passions: &[]string{"music"}})
	require.NoError(t, err)
	require.Len(t, about.Passions, 1)
	assert.Equal(t, "music", about.Passions[0])
}

func TestAboutSingletonSurvivesRepeatedUpdates(t *testing.T) {
	svc, c := newAboutService(t)
	ctx := context.Background()

	first, err := svc.Update(ctx, AboutInput{Introduction: strPtr("One")})
	require.NoError(t, err)
	second, err := svc.Update(ctx, AboutInput{Introduction: strPtr("Two")})
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	about, err := svc.Get(ctx)
	require.NoError(t, err)
	require.NotNil(t, about)
	assert.Equal(t, "Two", about.Introduction)
	assert.Contains(t, c.Invalidated, "about:")
}

package services

import (
	"context"
	"testing"

	"github.com/rpupo63/portfolio-backend/errs"
	"github.com/rpupo63/portfolio-backend/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newContactService(t *testing.T) *ContactService {
	t.Helper()
	db := newTestDatabase(t)
	return NewContactService(db.ContactRepo(), newSpyCache())
}

func submitMessage(t *testing.T, svc *ContactService) *models.Contact {
	t.Helper()
	message, err := svc.Create(context.Background(), ContactInput{
		Name:    "Visitor",
		Email:   "visitor@example.com",
		Message: "Hello there",
	})
	require.NoError(t, err)
	return message
}

func TestContactCreateStartsUnread(t *testing.T) {
	svc := newContactService(t)

	message := submitMessage(t, svc)

	assert.Equal(t, models.ContactStatusUnread, message.Status)
	assert.False(t, message.Saved)
}

func TestContactCreateValidatesInput(t *testing.T) {
	svc := newContactService(t)

	_, err := svc.Create(context.Background(), ContactInput{Name: "x", Email: "not-an-email", Message: "hi"})
	require.Error(t, err)

	apiErr, ok := err.(*errs.ApiErr)
	require.True(t, ok)
	assert.Contains(t, apiErr.Fields, "email")
}

func TestContactSetStatus(t *testing.T) {
	svc := newContactService(t)
	ctx := context.Background()

	message := submitMessage(t, svc)

	updated, err := svc.SetStatus(ctx, message.ID, ContactStatusInput{Status: models.ContactStatusRead})
	require.NoError(t, err)
	assert.Equal(t, models.ContactStatusRead, updated.Status)

	_, err = svc.SetStatus(ctx, message.ID, ContactStatusInput{Status: "archived"})
	require.Error(t, err, "unknown status must be rejected")
}

func TestSavedMessageCannotBeDeleted(t *testing.T) {
	svc := newContactService(t)
	ctx := context.Background()

	message := submitMessage(t, svc)

	_, err := svc.ToggleSave(ctx, message.ID, ContactSaveInput{Saved: boolPtr(true)})
	require.NoError(t, err)

	err = svc.Remove(ctx, message.ID)
	require.Error(t, err)
	assert.True(t, errs.IsForbidden(err))

	// Unsaving lifts the protection.
	_, err = svc.ToggleSave(ctx, message.ID, ContactSaveInput{Saved: boolPtr(false)})
	require.NoError(t, err)
	require.NoError(t, svc.Remove(ctx, message.ID))

	messages, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, messages)
}

func TestContactRemoveNotFound(t *testing.T) {
	svc := newContactService(t)

	message := submitMessage(t, svc)
	require.NoError(t, svc.Remove(context.Background(), message.ID))

	err := svc.Remove(context.Background(), message.ID)
	assert.True(t, errs.IsNotFound(err))
}

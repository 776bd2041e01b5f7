package services

import (
	"context"
	"testing"
	"time"

	"github.com/rpupo63/portfolio-backend/errs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCertificateService(t *testing.T) (*CertificateService, *spyCache) {
	t.Helper()
	db := newTestDatabase(t)
	c := newSpyCache()
	return NewCertificateService(db.CertificateRepo(), c), c
}

func TestCertificateCRUD(t *testing.T) {
	svc, _ := newCertificateService(t)
	ctx := context.Background()

	issued := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	cert, err := svc.Create(ctx, CertificateInput{
		Title:    strPtr("Cloud Practitioner"),
		Issuer:   strPtr("AWS"),
		IssuedAt: &issued,
	})
	require.NoError(t, err)

	updated, err := svc.Update(ctx, cert.ID, CertificateInput{Issuer: strPtr("Amazon Web Services")})
	require.NoError(t, err)
	assert.Equal(t, "Amazon Web Services", updated.Issuer)
	assert.Equal(t, "Cloud Practitioner", updated.Title)

	require.NoError(t, svc.Remove(ctx, cert.ID))

	err = svc.Remove(ctx, cert.ID)
	assert.True(t, errs.IsNotFound(err))
}

func TestCertificateListSortedByIssuedAtDesc(t *testing.T) {
	svc, _ := newCertificateService(t)
	ctx := context.Background()

	older := time.Date(2022, 1, 1, 0, 0, 0, 0, time.UTC)
	newer := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	_, err := svc.Create(ctx, CertificateInput{Title: strPtr("Old"), Issuer: strPtr("X"), IssuedAt: &older})
	require.NoError(t, err)
	_, err = svc.Create(ctx, CertificateInput{Title: strPtr("New"), Issuer: strPtr("X"), IssuedAt: &newer})
	require.NoError(t, err)

	certificates, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, certificates, 2)
	assert.Equal(t, "New", certificates[0].Title)
	assert.Equal(t, "Old", certificates[1].Title)
}

func TestCertificateMutationsInvalidateCache(t *testing.T) {
	svc, c := newCertificateService(t)
	ctx := context.Background()

	issued := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	cert, err := svc.Create(ctx, CertificateInput{Title: strPtr("First"), Issuer: strPtr("X"), IssuedAt: &issued})
	require.NoError(t, err)

	before, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, before, 1)

	_, err = svc.Update(ctx, cert.ID, CertificateInput{Title: strPtr("Renamed")})
	require.NoError(t, err)

	after, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, after, 1)
	assert.Equal(t, "Renamed", after[0].Title)
	assert.Contains(t, c.Invalidated, "certificates:")
}

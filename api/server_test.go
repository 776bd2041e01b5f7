package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rpupo63/portfolio-backend/cache"
	"github.com/rpupo63/portfolio-backend/database"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestRouter(t *testing.T) *chi.Mux {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	testConfig := map[string]string{
		"JWT_SECRET":              "test-secret",
		"ADMIN_SETUP_TOKEN":       "setup-123",
		"AUTH_EXPOSE_RESET_TOKEN": "true",
		"RATE_LIMIT_RPS":          "1000",
		"RATE_LIMIT_BURST":        "1000",
	}

	return newRouter(database.New(db), cache.NewMemory(), nil,
		withConfig(testConfig), withStartupTime(time.Now()))
}

func doJSON(t *testing.T, router http.Handler, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func adminToken(t *testing.T, router http.Handler) string {
	t.Helper()

	rec := doJSON(t, router, http.MethodPost, "/api/v1/auth/register-admin", "", map[string]string{
		"setupToken": "setup-123",
		"name":       "Admin",
		"email":      "admin@example.com",
		"password":   "correct-horse",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = doJSON(t, router, http.MethodPost, "/api/v1/auth/login", "", map[string]string{
		"email":    "admin@example.com",
		"password": "correct-horse",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Token)
	return resp.Token
}

func TestHealthEndpoint(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"ok"`)
}

func TestContactFormIsPublicButInboxIsNot(t *testing.T) {
	router := newTestRouter(t)

	// Anonymous visitors can submit the form.
	rec := doJSON(t, router, http.MethodPost, "/api/v1/contact", "", map[string]string{
		"name":    "Visitor",
		"email":   "visitor@example.com",
		"message": "Hello",
	})
	assert.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	// Reading the inbox requires an admin token.
	rec = doJSON(t, router, http.MethodGet, "/api/v1/contact", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	token := adminToken(t, router)
	rec = doJSON(t, router, http.MethodGet, "/api/v1/contact", token, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "visitor@example.com")
}

func TestProjectMutationsRequireAuth(t *testing.T) {
	router := newTestRouter(t)

	payload := map[string]string{
		"title":       "New Project",
		"category":    "web",
		"description": "a project",
	}

	rec := doJSON(t, router, http.MethodPost, "/api/v1/projects", "", payload)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = doJSON(t, router, http.MethodPost, "/api/v1/projects", "garbage-token", payload)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	token := adminToken(t, router)
	rec = doJSON(t, router, http.MethodPost, "/api/v1/projects", token, payload)
	assert.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	// The created project is publicly readable.
	rec = doJSON(t, router, http.MethodGet, "/api/v1/projects/new-project", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestUnknownProjectReturns404Envelope(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodGet, "/api/v1/projects/does-not-exist", "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	var resp map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Contains(t, resp, "error")
}

func TestMalformedJSONReturns400(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/contact", bytes.NewBufferString("{not json"))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "malformed request body")
}

func TestValidationErrorsReportFields(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/api/v1/contact", "", map[string]string{
		"name":    "Visitor",
		"email":   "not-an-email",
		"message": "Hello",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var resp struct {
		Error  string            `json:"error"`
		Fields map[string]string `json:"fields"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Contains(t, resp.Fields, "email")
}

func TestMediaUploadURLUnavailableWithoutBucket(t *testing.T) {
	router := newTestRouter(t)
	token := adminToken(t, router)

	rec := doJSON(t, router, http.MethodPost, "/api/v1/media/upload-url", token, map[string]string{
		"filename":    "photo.png",
		"contentType": "image/png",
	})
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestForgotPasswordResetFlow(t *testing.T) {
	router := newTestRouter(t)
	adminToken(t, router)

	// Unknown accounts get the same message and no token.
	rec := doJSON(t, router, http.MethodPost, "/api/v1/auth/forgot-password", "", map[string]string{
		"email": "nobody@example.com",
	})
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotContains(t, rec.Body.String(), "resetToken")

	// The test router runs in dev mode, so real accounts get the token back.
	rec = doJSON(t, router, http.MethodPost, "/api/v1/auth/forgot-password", "", map[string]string{
		"email": "admin@example.com",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp struct {
		ResetToken string `json:"resetToken"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.ResetToken)

	rec = doJSON(t, router, http.MethodPost, "/api/v1/auth/reset-password", "", map[string]string{
		"token":       resp.ResetToken,
		"newPassword": "brand-new-password",
	})
	assert.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = doJSON(t, router, http.MethodPost, "/api/v1/auth/login", "", map[string]string{
		"email":    "admin@example.com",
		"password": "brand-new-password",
	})
	assert.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
}

func TestAuthMe(t *testing.T) {
	router := newTestRouter(t)
	token := adminToken(t, router)

	rec := doJSON(t, router, http.MethodGet, "/api/v1/auth/me", token, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "admin@example.com")

	rec = doJSON(t, router, http.MethodGet, "/api/v1/auth/me", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

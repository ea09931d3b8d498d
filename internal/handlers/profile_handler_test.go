package handlers

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"portfolio-service/internal/models"
	"portfolio-service/internal/service"

	"github.com/gofiber/fiber/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memoryStore struct {
	profile *models.Profile
}

func (m *memoryStore) FindFirst(context.Context) (*models.Profile, error) {
	return m.profile, nil
}

func (m *memoryStore) Replace(_ context.Context, p *models.Profile) (*models.Profile, error) {
	m.profile = p
	return p, nil
}

func (m *memoryStore) CreateIndexes(context.Context) error { return nil }

func newApp(store *memoryStore) *fiber.App {
	app := fiber.New()
	h := NewProfileHandler(service.NewProfileService(store, nil), 0)
	h.RegisterRoutes(app.Group("/api"))
	return app
}

func TestNewProfileHandlerDefaultsTimeout(t *testing.T) {
	h := NewProfileHandler(nil, 0)
	assert.Equal(t, 5*time.Second, h.timeout)

	h = NewProfileHandler(nil, time.Second)
	assert.Equal(t, time.Second, h.timeout)
}

func TestProjectsRouteIsCaseInsensitive(t *testing.T) {
	app := newApp(&memoryStore{profile: &models.Profile{
		Name: "Dev",
		Projects: []models.Project{
			{Title: "api", TechStack: []string{"Go", "MongoDB"}},
			{Title: "site", TechStack: []string{"HTML"}},
		},
	}})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/projects?skill=MONGODB", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `"title":"api"`)
	assert.NotContains(t, string(body), `"title":"site"`)
}

func TestProfileRouteWithEmptyStore(t *testing.T) {
	app := newApp(&memoryStore{})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/profile", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, "null", string(body))
}

package service

import (
	"context"
	"errors"
	"testing"

	"portfolio-service/internal/event"
	"portfolio-service/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"
)

type fakeStore struct {
	profile  *models.Profile
	err      error
	replaced int
}

func (f *fakeStore) FindFirst(context.Context) (*models.Profile, error) {
	return f.profile, f.err
}

func (f *fakeStore) Replace(_ context.Context, p *models.Profile) (*models.Profile, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.replaced++
	if p.ID.IsZero() {
		p.ID = bson.NewObjectID()
	}
	f.profile = p
	return p, nil
}

func (f *fakeStore) CreateIndexes(context.Context) error {
	return nil
}

func seededProfile() *models.Profile {
	return &models.Profile{
		Name: "Ada Lovelace",
		Projects: []models.Project{
			{Title: "Insights", TechStack: []string{"Python", "Node.js"}},
			{Title: "Fin-Flex", TechStack: []string{"JavaScript"}},
		},
	}
}

func TestGetProfileReturnsNilWhenEmpty(t *testing.T) {
	svc := NewProfileService(&fakeStore{}, nil)

	profile, err := svc.GetProfile(context.Background())
	require.NoError(t, err)
	assert.Nil(t, profile)
}

func TestGetProfileWrapsStoreErrors(t *testing.T) {
	storeErr := errors.New("connection refused")
	svc := NewProfileService(&fakeStore{err: storeErr}, nil)

	_, err := svc.GetProfile(context.Background())
	assert.ErrorIs(t, err, storeErr)
}

func TestGetProjectsCaseInsensitiveExactMatch(t *testing.T) {
	svc := NewProfileService(&fakeStore{profile: seededProfile()}, nil)

	projects, err := svc.GetProjects(context.Background(), "python")
	require.NoError(t, err)
	require.Len(t, projects, 1)
	assert.Equal(t, "Insights", projects[0].Title)
}

func TestGetProjectsNoSubstringMatch(t *testing.T) {
	svc := NewProfileService(&fakeStore{profile: seededProfile()}, nil)

	projects, err := svc.GetProjects(context.Background(), "Java")
	require.NoError(t, err)
	assert.NotNil(t, projects)
	assert.Empty(t, projects)
}

func TestGetProjectsUnfilteredKeepsOrder(t *testing.T) {
	svc := NewProfileService(&fakeStore{profile: seededProfile()}, nil)

	projects, err := svc.GetProjects(context.Background(), "")
	require.NoError(t, err)
	require.Len(t, projects, 2)
	assert.Equal(t, "Insights", projects[0].Title)
	assert.Equal(t, "Fin-Flex", projects[1].Title)
}

func TestGetProjectsWithoutProfile(t *testing.T) {
	svc := NewProfileService(&fakeStore{}, nil)

	_, err := svc.GetProjects(context.Background(), "python")
	assert.ErrorIs(t, err, ErrProfileNotFound)
}

func TestGetProjectsStoreErrorIsNotNotFound(t *testing.T) {
	svc := NewProfileService(&fakeStore{err: errors.New("timeout")}, nil)

	_, err := svc.GetProjects(context.Background(), "")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrProfileNotFound)
}

func TestFilterProjectsNeverNil(t *testing.T) {
	assert.NotNil(t, FilterProjects(nil, ""))
	assert.NotNil(t, FilterProjects(nil, "go"))
}

func TestFilterProjectsMatchesMixedCaseEntries(t *testing.T) {
	projects := []models.Project{
		{Title: "a", TechStack: []string{"NODE.JS"}},
		{Title: "b", TechStack: []string{"node"}},
	}

	filtered := FilterProjects(projects, "Node.js")
	require.Len(t, filtered, 1)
	assert.Equal(t, "a", filtered[0].Title)
}

func TestSeedProfilePublishesOneEvent(t *testing.T) {
	store := &fakeStore{}
	publisher := event.NewMockPublisher()
	svc := NewProfileService(store, publisher)

	seeded, err := svc.SeedProfile(context.Background(), seededProfile())
	require.NoError(t, err)

	assert.Equal(t, 1, store.replaced)
	require.Len(t, publisher.Events, 1)
	assert.Equal(t, models.EventTypeProfileSeeded, publisher.Events[0].EventType)
	assert.Equal(t, seeded.ID.Hex(), publisher.Events[0].ProfileID)
	assert.Equal(t, 2, publisher.Events[0].ProjectCount)
}

func TestSeedProfileRejectsInvalidProfile(t *testing.T) {
	store := &fakeStore{}
	publisher := event.NewMockPublisher()
	svc := NewProfileService(store, publisher)

	_, err := svc.SeedProfile(context.Background(), &models.Profile{Title: "No name"})
	require.Error(t, err)

	assert.Zero(t, store.replaced)
	assert.Nil(t, store.profile)
	assert.Empty(t, publisher.Events)
}

func TestSeedProfileSurvivesPublisherFailure(t *testing.T) {
	publisher := event.NewMockPublisher()
	publisher.Err = errors.New("broker down")
	svc := NewProfileService(&fakeStore{}, publisher)

	_, err := svc.SeedProfile(context.Background(), seededProfile())
	assert.NoError(t, err)
}

package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"portfolio-service/internal/event"
	"portfolio-service/internal/models"
)

// ErrProfileNotFound is returned when projects are requested and no profile exists.
var ErrProfileNotFound = errors.New("profile not found")

// ProfileStore is the singleton-record access the service needs. It is satisfied by
// repository.ProfileRepository.
type ProfileStore interface {
	FindFirst(ctx context.Context) (*models.Profile, error)
	Replace(ctx context.Context, profile *models.Profile) (*models.Profile, error)
	CreateIndexes(ctx context.Context) error
}

type ProfileService struct {
	store     ProfileStore
	publisher event.Publisher
}

func NewProfileService(store ProfileStore, publisher event.Publisher) *ProfileService {
	return &ProfileService{
		store:     store,
		publisher: publisher,
	}
}

// GetProfile returns the portfolio profile, or nil when none has been seeded.
func (s *ProfileService) GetProfile(ctx context.Context) (*models.Profile, error) {
	profile, err := s.store.FindFirst(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}
	return profile, nil
}

// GetProjects returns the profile's projects in their stored order. A non-empty skill
// keeps only projects whose tech stack has an entry equal to it ignoring case.
func (s *ProfileService) GetProjects(ctx context.Context, skill string) ([]models.Project, error) {
	profile, err := s.store.FindFirst(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get projects: %w", err)
	}
	if profile == nil {
		return nil, ErrProfileNotFound
	}

	return FilterProjects(profile.Projects, skill), nil
}

// SeedProfile replaces whatever is stored with profile. Nothing is written when the
// profile fails validation.
func (s *ProfileService) SeedProfile(ctx context.Context, profile *models.Profile) (*models.Profile, error) {
	if err := profile.Validate(); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	seeded, err := s.store.Replace(ctx, profile)
	if err != nil {
		return nil, fmt.Errorf("failed to seed profile: %w", err)
	}

	if err := s.store.CreateIndexes(ctx); err != nil {
		log.Printf("Warning: Failed to create profile indexes: %v", err)
	}

	if s.publisher != nil {
		profileEvent := &models.ProfileEvent{
			EventType:    models.EventTypeProfileSeeded,
			ProfileID:    seeded.ID.Hex(),
			Name:         seeded.Name,
			ProjectCount: len(seeded.Projects),
			Timestamp:    time.Now().UTC(),
		}
		if err := s.publisher.PublishProfileEvent(ctx, profileEvent); err != nil {
			log.Printf("Failed to publish profile seeded event: %v", err)
		}
	}

	return seeded, nil
}

// FilterProjects applies the skill filter. The result is never nil.
func FilterProjects(projects []models.Project, skill string) []models.Project {
	if skill == "" {
		if projects == nil {
			return []models.Project{}
		}
		return projects
	}

	want := strings.ToLower(skill)
	filtered := make([]models.Project, 0, len(projects))
	for _, p := range projects {
		if hasSkill(p.TechStack, want) {
			filtered = append(filtered, p)
		}
	}
	return filtered
}

func hasSkill(techStack []string, want string) bool {
	for _, tech := range techStack {
		if strings.ToLower(tech) == want {
			return true
		}
	}
	return false
}

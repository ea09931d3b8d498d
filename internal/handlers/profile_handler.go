package handlers

import (
	"context"
	"errors"
	"log"
	"strconv"
	"time"

	"portfolio-service/internal/service"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/requestid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var projectQueries = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "portfolio_projects_queries_total",
		Help: "Total number of project list queries",
	},
	[]string{"filtered"}, // filtered: true/false
)

type ProfileHandler struct {
	profileService *service.ProfileService
	timeout        time.Duration
}

func NewProfileHandler(profileService *service.ProfileService, timeout time.Duration) *ProfileHandler {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &ProfileHandler{
		profileService: profileService,
		timeout:        timeout,
	}
}

func (h *ProfileHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/health", h.HealthCheck)
	router.Get("/profile", h.GetProfile)
	router.Get("/projects", h.GetProjects)
}

func (h *ProfileHandler) HealthCheck(c fiber.Ctx) error {
	return c.Status(fiber.StatusOK).SendString("API is healthy")
}

func (h *ProfileHandler) GetProfile(c fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(context.Background(), h.timeout)
	defer cancel()

	profile, err := h.profileService.GetProfile(ctx)
	if err != nil {
		log.Printf("[%s] Failed to get profile: %v", requestid.FromContext(c), err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to retrieve profile",
		})
	}

	// A missing profile is served as JSON null.
	return c.Status(fiber.StatusOK).JSON(profile)
}

func (h *ProfileHandler) GetProjects(c fiber.Ctx) error {
	skill := c.Query("skill")

	ctx, cancel := context.WithTimeout(context.Background(), h.timeout)
	defer cancel()

	projects, err := h.profileService.GetProjects(ctx, skill)
	if err != nil {
		if errors.Is(err, service.ErrProfileNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Profile not found",
			})
		}

		log.Printf("[%s] Failed to get projects (skill=%q): %v", requestid.FromContext(c), skill, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to retrieve projects",
		})
	}

	projectQueries.WithLabelValues(strconv.FormatBool(skill != "")).Inc()

	return c.Status(fiber.StatusOK).JSON(projects)
}

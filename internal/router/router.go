package router

import (
	"edumanager/internal/config"
	"edumanager/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
)

// Setup mounts the student pages and the JSON API. redis and archiver may be
// nil: edit sessions then live in memory and originals are not archived.
func Setup(app *fiber.App, db *sqlx.DB, redis *redis.Client, archiver service.Archiver, cfg *config.Config) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "ok",
			"app":    cfg.AppName,
		})
	})

	h := newHandlers(db, redis, archiver, cfg)

	setupWebRoutes(app.Group(""), h)

	api := app.Group("/api/v1")
	setupAPIRoutes(api, h, cfg)
}

func setupWebRoutes(router fiber.Router, h *handlers) {
	router.Get("/", func(c *fiber.Ctx) error {
		return c.Redirect("/results")
	})

	router.Get("/results", h.student.LookupPage)
	router.Post("/results", h.student.LookupSubmit)
	router.Get("/results/:cycleId/:classId/:studentId", h.student.ResultsPage)
}

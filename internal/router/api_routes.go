package router

import (
	"edumanager/internal/config"
	"edumanager/internal/handler"
	"edumanager/internal/middleware"
	"edumanager/internal/repository"
	"edumanager/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
)

type handlers struct {
	auth     *handler.AuthHandler
	class    *handler.ClassHandler
	schema   *handler.SchemaHandler
	imports  *handler.ImportHandler
	grid     *handler.GridHandler
	student  *handler.StudentHandler
	settings *handler.SettingsHandler
}

func newHandlers(db *sqlx.DB, redis *redis.Client, archiver service.Archiver, cfg *config.Config) *handlers {
	// Initialize repositories
	cycleRepo := repository.NewCycleRepository(db)
	fileRepo := repository.NewImportedFileRepository(db)
	settingsRepo := repository.NewSettingsRepository(db)

	var gridStore service.GridStore
	if redis != nil {
		gridStore = repository.NewGridSessionRepository(redis, cfg.GridSessionTTL)
	} else {
		gridStore = repository.NewMemoryGridSessionRepository(cfg.GridSessionTTL)
	}

	// Initialize services
	classService := service.NewClassService(cycleRepo)
	schemaService := service.NewSchemaService(cycleRepo)
	importService := service.NewImportService(cycleRepo, fileRepo, service.NewExcelService(), archiver)
	gridService := service.NewGridService(cycleRepo, fileRepo, gridStore)
	resultsService := service.NewResultsService(cycleRepo, fileRepo)
	settingsService := service.NewSettingsService(settingsRepo)

	return &handlers{
		auth:     handler.NewAuthHandler(),
		class:    handler.NewClassHandler(classService),
		schema:   handler.NewSchemaHandler(schemaService),
		imports:  handler.NewImportHandler(importService, cfg),
		grid:     handler.NewGridHandler(gridService),
		student:  handler.NewStudentHandler(resultsService, classService, settingsService),
		settings: handler.NewSettingsHandler(settingsService),
	}
}

func setupAPIRoutes(router fiber.Router, h *handlers, cfg *config.Config) {
	// Public routes
	router.Get("/periods", h.imports.GetPeriods)
	router.Get("/cycles/public", h.class.GetPublicCycles)
	router.Get("/settings", h.settings.GetSettings)
	router.Post("/students/lookup", h.student.Lookup)
	router.Get("/students/:cycleId/:classId/:studentId/results", h.student.GetResults)

	// Admin routes
	protected := router.Group("", middleware.AuthMiddleware(cfg), middleware.AdminOnly(cfg.AuthAdminRole))

	protected.Get("/auth/me", h.auth.Me)
	protected.Put("/settings", h.settings.UpdateSettings)

	// Cycle and class routes
	cycles := protected.Group("/cycles")
	cycles.Get("/", h.class.GetCycles)
	cycles.Post("/", h.class.CreateCycle)
	cycles.Put("/:cycleId", h.class.UpdateCycle)
	cycles.Delete("/:cycleId", h.class.DeleteCycle)
	cycles.Post("/:cycleId/classes", h.class.CreateClass)
	cycles.Get("/:cycleId/classes/:classId", h.class.GetClass)
	cycles.Put("/:cycleId/classes/:classId", h.class.UpdateClass)
	cycles.Delete("/:cycleId/classes/:classId", h.class.DeleteClass)

	// Schema and import routes
	classes := protected.Group("/classes/:classId")
	classes.Get("/schema", h.schema.GetSchema)
	classes.Put("/schema", h.schema.SaveSchema)
	classes.Post("/schema/reorder", h.schema.ReorderSchema)
	classes.Get("/template", h.imports.DownloadTemplate)
	classes.Get("/files", h.imports.GetFiles)
	classes.Post("/files", h.imports.UploadFile)
	classes.Get("/files/export", h.imports.ExportFileList)
	classes.Post("/files/error-report", h.imports.ErrorReport)

	// Imported file routes
	files := protected.Group("/files/:fileId")
	files.Get("/", h.imports.GetFile)
	files.Delete("/", h.imports.DeleteFile)
	files.Get("/export", h.imports.ExportFile)

	// Edit session routes
	files.Post("/edit", h.grid.OpenSession)
	files.Get("/edit/:sessionId", h.grid.GetSession)
	files.Put("/edit/:sessionId/cells", h.grid.UpdateCell)
	files.Post("/edit/:sessionId/rows", h.grid.AddRow)
	files.Delete("/edit/:sessionId/rows/:index", h.grid.DeleteRow)
	files.Post("/edit/:sessionId/save", h.grid.SaveSession)
	files.Delete("/edit/:sessionId", h.grid.DiscardSession)
}

package app

import (
	"database/sql"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/sirupsen/logrus"

	"workload-import-api/internal/api"
	"workload-import-api/internal/config"
	"workload-import-api/internal/db"
	"workload-import-api/internal/ingest"
	"workload-import-api/internal/store"
)

type App struct {
	*fiber.App
	db *sql.DB
}

func New(cfg *config.Config, log *logrus.Logger) (*App, error) {
	database, err := db.Connect(cfg.DBPath)
	if err != nil {
		return nil, err
	}

	if err := db.Migrate(database, cfg.SchemaPath); err != nil {
		database.Close()
		return nil, err
	}

	st := store.NewSQLite(database)
	importer := ingest.NewImporter(st, log, cfg.IssueLogPath, 0)

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"error": err.Error(),
			})
		},
	})

	app.Use(logger.New())
	app.Use(cors.New())

	api.SetupRoutes(app, st, importer, log)

	return &App{
		App: app,
		db:  database,
	}, nil
}

func (a *App) Close() error {
	return a.db.Close()
}

package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"workload-import-api/internal/ingest"
	"workload-import-api/internal/store"
)

func SetupRoutes(app *fiber.App, st *store.SQLite, importer *ingest.Importer, log *logrus.Logger) {
	handlers := NewHandlers(st, importer, log)

	// Health check endpoint
	app.Get("/healthz", handlers.GetHealthz)

	// Ingest endpoint
	app.Post("/ingest/xlsx", handlers.PostIngestXLSX)

	// Imported collections
	app.Get("/workloads", handlers.GetWorkloads)
	app.Get("/events", handlers.GetEvents)
	app.Get("/users", handlers.GetUsers)

	// Audit trail
	app.Get("/audit", handlers.GetAuditLogs)
}

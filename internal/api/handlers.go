package api

import (
	"io"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"workload-import-api/internal/ingest"
	"workload-import-api/internal/store"
)

const defaultPageSize = 50

type Handlers struct {
	store    *store.SQLite
	importer *ingest.Importer
	log      *logrus.Logger
}

func NewHandlers(st *store.SQLite, importer *ingest.Importer, log *logrus.Logger) *Handlers {
	return &Handlers{
		store:    st,
		importer: importer,
		log:      log,
	}
}

// GetHealthz provides a health check endpoint for deployments
func (h *Handlers) GetHealthz(c *fiber.Ctx) error {
	if _, err := h.store.ListAuditLogs(1); err != nil {
		return c.Status(503).JSON(fiber.Map{
			"status":  "unhealthy",
			"error":   "database query failed",
			"details": err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"status":    "healthy",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// PostIngestXLSX accepts a multipart workbook upload and runs one full
// import over it, returning the run summary.
func (h *Handlers) PostIngestXLSX(c *fiber.Ctx) error {
	file, err := c.FormFile("file")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "file is required"})
	}

	fileReader, err := file.Open()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "failed to open file"})
	}
	defer fileReader.Close()

	fileData, err := io.ReadAll(fileReader)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "failed to read file"})
	}

	summary, err := h.importer.Run(fileData)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": err.Error()})
	}

	h.log.WithFields(logrus.Fields{
		"filename":  file.Filename,
		"workloads": summary.WorkloadCount,
		"events":    summary.CalendarCount,
		"users":     summary.UsersCount,
		"issues":    summary.IssueCount,
	}).Info("workbook imported via API")

	return c.JSON(summary)
}

func (h *Handlers) GetWorkloads(c *fiber.Ctx) error {
	afterID, limit, err := listParams(c)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}

	items, err := h.store.ListWorkloads(afterID, limit)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": err.Error()})
	}

	response := fiber.Map{"items": items}
	if len(items) == limit {
		response["next_cursor"] = EncodeCursor(items[len(items)-1].ID)
	}
	return c.JSON(response)
}

func (h *Handlers) GetEvents(c *fiber.Ctx) error {
	afterID, limit, err := listParams(c)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}

	items, err := h.store.ListEvents(afterID, limit)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": err.Error()})
	}

	response := fiber.Map{"items": items}
	if len(items) == limit {
		response["next_cursor"] = EncodeCursor(items[len(items)-1].ID)
	}
	return c.JSON(response)
}

func (h *Handlers) GetUsers(c *fiber.Ctx) error {
	afterID, limit, err := listParams(c)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}

	items, err := h.store.ListUsers(afterID, limit)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": err.Error()})
	}

	response := fiber.Map{"items": items}
	if len(items) == limit {
		response["next_cursor"] = EncodeCursor(items[len(items)-1].ID)
	}
	return c.JSON(response)
}

func (h *Handlers) GetAuditLogs(c *fiber.Ctx) error {
	limit := defaultPageSize
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			return c.Status(400).JSON(fiber.Map{"error": "invalid limit"})
		}
		limit = parsed
	}

	items, err := h.store.ListAuditLogs(limit)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"items": items})
}

func listParams(c *fiber.Ctx) (int64, int, error) {
	afterID, err := DecodeCursor(c.Query("cursor"))
	if err != nil {
		return 0, 0, err
	}

	limit := defaultPageSize
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 || parsed > 500 {
			return 0, 0, fiber.NewError(fiber.StatusBadRequest, "invalid limit")
		}
		limit = parsed
	}

	return afterID, limit, nil
}

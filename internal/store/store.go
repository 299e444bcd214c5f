package store

import "workload-import-api/internal/models"

// Store is the narrow persistence surface the import pipeline depends on.
// It is constructed once per run and passed in explicitly; the pipeline
// never touches a database handle directly.
type Store interface {
	// FindUserByName looks up a user by exact full name. Returns (nil, nil)
	// when no user matches.
	FindUserByName(fullName string) (*models.User, error)

	// InsertUser creates a user and returns its new id.
	InsertUser(u *models.User) (int64, error)

	// InsertBatch inserts all rows into table in one statement. Rows must
	// share the same column set.
	InsertBatch(table string, rows []map[string]interface{}) error

	// InsertRow inserts a single row into table.
	InsertRow(table string, row map[string]interface{}) error

	// AppendAuditLog appends one audit entry; details is JSON-marshalled.
	AppendAuditLog(action, actor string, details interface{}) error

	// TouchUser bumps a user's updated_at. Best-effort; callers log and
	// ignore failures.
	TouchUser(id int64) error
}

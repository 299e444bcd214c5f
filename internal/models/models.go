package models

import (
	"encoding/json"
	"time"
)

type User struct {
	ID        int64     `json:"id"`
	FullName  string    `json:"full_name"`
	Username  string    `json:"username"`
	NIP       string    `json:"nip"`
	Golongan  *string   `json:"golongan"`
	Jabatan   *string   `json:"jabatan"`
	Email     *string   `json:"email"`
	Role      string    `json:"role"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Workload struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Type         string    `json:"type"`
	Description  *string   `json:"description"`
	Status       string    `json:"status"`
	ReceivedDate *string   `json:"received_date"`
	Fungsi       *string   `json:"fungsi"`
	UserID       *int64    `json:"user_id"`
	CreatedAt    time.Time `json:"created_at"`
}

type CalendarEvent struct {
	ID           int64     `json:"id"`
	Title        string    `json:"title"`
	Description  *string   `json:"description"`
	Location     *string   `json:"location"`
	StartDate    string    `json:"start_date"`
	EndDate      string    `json:"end_date"`
	Color        string    `json:"color"`
	CreatedBy    *int64    `json:"created_by"`
	Participants []string  `json:"participants"`
	DipaCode     *string   `json:"dipa_code"`
	CreatedAt    time.Time `json:"created_at"`
}

type AuditLog struct {
	ID        int64           `json:"id"`
	Action    string          `json:"action"`
	Actor     string          `json:"actor"`
	Details   json.RawMessage `json:"details"`
	CreatedAt time.Time       `json:"created_at"`
}

// ImportIssue is one line of the per-run issue report file.
type ImportIssue struct {
	Row      int               `json:"row"`
	Title    string            `json:"title,omitempty"`
	RawStart string            `json:"rawStart,omitempty"`
	RawEnd   string            `json:"rawEnd,omitempty"`
	Error    string            `json:"error,omitempty"`
	Note     string            `json:"note,omitempty"`
	RowData  map[string]string `json:"rowData,omitempty"`
}

type ImportSummary struct {
	WorkloadCount int            `json:"workload_count"`
	CalendarCount int            `json:"calendar_count"`
	UsersCount    int            `json:"users_count"`
	IssueCount    int            `json:"issue_count"`
	SkippedSheets []string       `json:"skipped_sheets,omitempty"`
	FileHash      string         `json:"file_hash"`
	Duration      string         `json:"duration"`
	RowsInserted  map[string]int `json:"rows_inserted,omitempty"`
}

type PaginatedResponse struct {
	Items      interface{} `json:"items"`
	NextCursor *string     `json:"next_cursor,omitempty"`
}

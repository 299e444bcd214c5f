package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"workload-import-api/internal/models"
)

// SQLite implements Store on a database/sql handle, plus the listing
// queries used by the HTTP API.
type SQLite struct {
	db *sql.DB
}

func NewSQLite(db *sql.DB) *SQLite {
	return &SQLite{db: db}
}

func (s *SQLite) FindUserByName(fullName string) (*models.User, error) {
	var u models.User
	var active int
	err := s.db.QueryRow(`
		SELECT id, full_name, username, nip, golongan, jabatan, email, role, is_active
		FROM users WHERE full_name = ?`, fullName,
	).Scan(&u.ID, &u.FullName, &u.Username, &u.NIP, &u.Golongan, &u.Jabatan, &u.Email, &u.Role, &active)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("error querying user by name: %w", err)
	}
	u.IsActive = active != 0
	return &u, nil
}

func (s *SQLite) InsertUser(u *models.User) (int64, error) {
	result, err := s.db.Exec(`
		INSERT INTO users (full_name, username, nip, golongan, jabatan, email, role, is_active)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		u.FullName, u.Username, u.NIP, u.Golongan, u.Jabatan, u.Email, u.Role, u.IsActive,
	)
	if err != nil {
		return 0, fmt.Errorf("error inserting user: %w", err)
	}
	return result.LastInsertId()
}

func (s *SQLite) InsertBatch(table string, rows []map[string]interface{}) error {
	if len(rows) == 0 {
		return nil
	}

	cols := sortedColumns(rows[0])
	placeholder := "(" + strings.TrimSuffix(strings.Repeat("?, ", len(cols)), ", ") + ")"

	var sb strings.Builder
	sb.WriteString("INSERT INTO " + table + " (" + strings.Join(cols, ", ") + ") VALUES ")

	args := make([]interface{}, 0, len(rows)*len(cols))
	for i, row := range rows {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(placeholder)
		for _, col := range cols {
			args = append(args, row[col])
		}
	}

	if _, err := s.db.Exec(sb.String(), args...); err != nil {
		return fmt.Errorf("error bulk inserting into %s: %w", table, err)
	}
	return nil
}

func (s *SQLite) InsertRow(table string, row map[string]interface{}) error {
	cols := sortedColumns(row)
	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(cols)), ", ")

	args := make([]interface{}, 0, len(cols))
	for _, col := range cols {
		args = append(args, row[col])
	}

	query := "INSERT INTO " + table + " (" + strings.Join(cols, ", ") + ") VALUES (" + placeholders + ")"
	if _, err := s.db.Exec(query, args...); err != nil {
		return fmt.Errorf("error inserting into %s: %w", table, err)
	}
	return nil
}

func (s *SQLite) AppendAuditLog(action, actor string, details interface{}) error {
	payload, err := json.Marshal(details)
	if err != nil {
		return fmt.Errorf("error encoding audit details: %w", err)
	}
	_, err = s.db.Exec(
		"INSERT INTO audit_logs (action, actor, details) VALUES (?, ?, ?)",
		action, actor, string(payload),
	)
	if err != nil {
		return fmt.Errorf("error appending audit log: %w", err)
	}
	return nil
}

func (s *SQLite) TouchUser(id int64) error {
	_, err := s.db.Exec("UPDATE users SET updated_at = datetime('now') WHERE id = ?", id)
	return err
}

// sortedColumns keeps multi-row statements deterministic.
func sortedColumns(row map[string]interface{}) []string {
	cols := make([]string, 0, len(row))
	for col := range row {
		cols = append(cols, col)
	}
	sort.Strings(cols)
	return cols
}

func (s *SQLite) ListWorkloads(afterID int64, limit int) ([]models.Workload, error) {
	rows, err := s.db.Query(`
		SELECT id, name, type, description, status, received_date, fungsi, user_id, created_at
		FROM workloads WHERE id > ? ORDER BY id LIMIT ?`, afterID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []models.Workload
	for rows.Next() {
		var w models.Workload
		if err := rows.Scan(&w.ID, &w.Name, &w.Type, &w.Description, &w.Status,
			&w.ReceivedDate, &w.Fungsi, &w.UserID, &w.CreatedAt); err != nil {
			return nil, err
		}
		items = append(items, w)
	}
	return items, rows.Err()
}

func (s *SQLite) ListEvents(afterID int64, limit int) ([]models.CalendarEvent, error) {
	rows, err := s.db.Query(`
		SELECT id, title, description, location, start_date, end_date, color, created_by, participants, dipa_code, created_at
		FROM calendar_events WHERE id > ? ORDER BY id LIMIT ?`, afterID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []models.CalendarEvent
	for rows.Next() {
		var e models.CalendarEvent
		var participants sql.NullString
		if err := rows.Scan(&e.ID, &e.Title, &e.Description, &e.Location, &e.StartDate,
			&e.EndDate, &e.Color, &e.CreatedBy, &participants, &e.DipaCode, &e.CreatedAt); err != nil {
			return nil, err
		}
		if participants.Valid && participants.String != "" {
			if err := json.Unmarshal([]byte(participants.String), &e.Participants); err != nil {
				e.Participants = nil
			}
		}
		items = append(items, e)
	}
	return items, rows.Err()
}

func (s *SQLite) ListUsers(afterID int64, limit int) ([]models.User, error) {
	rows, err := s.db.Query(`
		SELECT id, full_name, username, nip, golongan, jabatan, email, role, is_active, created_at, updated_at
		FROM users WHERE id > ? ORDER BY id LIMIT ?`, afterID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []models.User
	for rows.Next() {
		var u models.User
		var active int
		if err := rows.Scan(&u.ID, &u.FullName, &u.Username, &u.NIP, &u.Golongan,
			&u.Jabatan, &u.Email, &u.Role, &active, &u.CreatedAt, &u.UpdatedAt); err != nil {
			return nil, err
		}
		u.IsActive = active != 0
		items = append(items, u)
	}
	return items, rows.Err()
}

func (s *SQLite) ListAuditLogs(limit int) ([]models.AuditLog, error) {
	rows, err := s.db.Query(`
		SELECT id, action, actor, details, created_at
		FROM audit_logs ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []models.AuditLog
	for rows.Next() {
		var a models.AuditLog
		var details sql.NullString
		if err := rows.Scan(&a.ID, &a.Action, &a.Actor, &details, &a.CreatedAt); err != nil {
			return nil, err
		}
		if details.Valid {
			a.Details = json.RawMessage(details.String)
		}
		items = append(items, a)
	}
	return items, rows.Err()
}

package ingest

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"workload-import-api/internal/models"
)

// IssueLog is the per-run issue report: one JSON object per line, truncated
// fresh at the start of every run.
type IssueLog struct {
	file  *os.File
	enc   *json.Encoder
	count int
}

func OpenIssueLog(path string) (*IssueLog, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("error creating issue log directory: %w", err)
		}
	}

	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return nil, fmt.Errorf("error opening issue log: %w", err)
	}

	return &IssueLog{file: file, enc: json.NewEncoder(file)}, nil
}

// Append writes one issue line. Write failures are returned so the caller
// can log them, but they never stop a run.
func (l *IssueLog) Append(issue models.ImportIssue) error {
	l.count++
	return l.enc.Encode(issue)
}

func (l *IssueLog) Count() int {
	return l.count
}

func (l *IssueLog) Close() error {
	return l.file.Close()
}

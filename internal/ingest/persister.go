package ingest

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"workload-import-api/internal/models"
)

// defaultChunkSize is how many rows go into one bulk insert.
const defaultChunkSize = 50

// pending is one built record waiting to be persisted, still tied to its
// source sheet row number for issue reporting.
type pending struct {
	row    int
	title  string
	values map[string]interface{}
}

// persistChunked inserts records in bulk chunks. When a chunk fails it
// degrades to inserting each record of that chunk individually, so one bad
// record never blocks its siblings or later chunks. Returns the number of
// rows actually inserted; every failed record gets an issue entry.
func (imp *Importer) persistChunked(table string, records []pending, issues *IssueLog) int {
	chunkSize := imp.chunkSize
	if chunkSize <= 0 {
		chunkSize = defaultChunkSize
	}

	inserted := 0
	for start := 0; start < len(records); start += chunkSize {
		end := start + chunkSize
		if end > len(records) {
			end = len(records)
		}
		chunk := records[start:end]

		rows := make([]map[string]interface{}, len(chunk))
		for i, rec := range chunk {
			rows[i] = rec.values
		}

		err := imp.store.InsertBatch(table, rows)
		if err == nil {
			inserted += len(chunk)
			continue
		}
		imp.log.WithError(err).WithField("table", table).Warn("bulk insert failed, retrying rows individually")

		for _, rec := range chunk {
			if err := imp.store.InsertRow(table, rec.values); err != nil {
				imp.log.WithError(err).WithFields(logrus.Fields{
					"table": table,
					"row":   rec.row,
				}).Warn("row insert failed")
				imp.appendIssue(issues, models.ImportIssue{
					Row:   rec.row,
					Title: rec.title,
					Error: fmt.Sprintf("insert failed: %v", err),
				})
				continue
			}
			inserted++
		}
	}

	return inserted
}

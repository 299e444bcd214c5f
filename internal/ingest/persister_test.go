package ingest

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testIssueLog(t *testing.T) *IssueLog {
	t.Helper()
	issues, err := OpenIssueLog(filepath.Join(t.TempDir(), "issues.log"))
	require.NoError(t, err)
	t.Cleanup(func() { issues.Close() })
	return issues
}

func testRecords(names ...string) []pending {
	records := make([]pending, len(names))
	for i, name := range names {
		records[i] = pending{
			row:    i + 2,
			title:  name,
			values: map[string]interface{}{"name": name, "type": "General", "status": "pending"},
		}
	}
	return records
}

func TestPersistChunkedBulkPath(t *testing.T) {
	st := newFakeStore()
	imp := NewImporter(st, testLogger(), "", 2)
	issues := testIssueLog(t)

	inserted := imp.persistChunked("workloads", testRecords("a", "b", "c", "d", "e"), issues)

	assert.Equal(t, 5, inserted)
	assert.Equal(t, 0, issues.Count())
	assert.Len(t, st.inserted["workloads"], 5)
}

func TestPersistChunkedRowFallback(t *testing.T) {
	st := newFakeStore()
	st.failBatch = true
	st.failRow = func(row map[string]interface{}) bool {
		return row["name"] == "bad"
	}

	imp := NewImporter(st, testLogger(), "", 2)
	issues := testIssueLog(t)

	inserted := imp.persistChunked("workloads", testRecords("a", "bad", "c", "d", "e"), issues)

	// One bad record never blocks its chunk siblings or later chunks.
	assert.Equal(t, 4, inserted)
	assert.Equal(t, 1, issues.Count())
	assert.Len(t, st.inserted["workloads"], 4)
}

func TestPersistChunkedEmpty(t *testing.T) {
	st := newFakeStore()
	imp := NewImporter(st, testLogger(), "", 0)
	issues := testIssueLog(t)

	assert.Equal(t, 0, imp.persistChunked("workloads", nil, issues))
}

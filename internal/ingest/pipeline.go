package ingest

import (
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"workload-import-api/internal/models"
	"workload-import-api/internal/store"
	"workload-import-api/internal/util"
)

// Importer runs one import: workbook bytes in, normalized records out.
// Sheets and rows are processed strictly in source order; entity resolution
// happens inline per row so duplicate names cannot race into duplicate
// users.
type Importer struct {
	store        store.Store
	log          *logrus.Logger
	issueLogPath string
	chunkSize    int
}

func NewImporter(st store.Store, log *logrus.Logger, issueLogPath string, chunkSize int) *Importer {
	return &Importer{
		store:        st,
		log:          log,
		issueLogPath: issueLogPath,
		chunkSize:    chunkSize,
	}
}

// Run processes every sheet of the workbook, routing by sheet name:
// DATA/WORKLOAD/E_KINERJA to workloads, CALENDAR to calendar events,
// USER/PEGAWAI to the user directory. Unmatched sheets are skipped with a
// warning. Exactly one audit entry is written per run.
func (imp *Importer) Run(fileData []byte) (*models.ImportSummary, error) {
	started := time.Now()

	sheets, err := LoadWorkbook(fileData)
	if err != nil {
		return nil, err
	}

	issues, err := OpenIssueLog(imp.issueLogPath)
	if err != nil {
		return nil, err
	}
	defer issues.Close()

	resolver := NewUserResolver(imp.store, imp.log)
	summary := &models.ImportSummary{
		FileHash:     util.SHA256Hex(fileData),
		RowsInserted: make(map[string]int),
	}

	for _, sheet := range sheets {
		name := strings.ToLower(sheet.Name)
		log := imp.log.WithField("sheet", sheet.Name)

		switch {
		case strings.Contains(name, "data") || strings.Contains(name, "workload") || strings.Contains(name, "e_kinerja"):
			count := imp.importWorkloads(sheet, resolver, issues)
			summary.WorkloadCount += count
			summary.RowsInserted["workloads"] += count
			log.WithField("inserted", count).Info("workload sheet imported")
		case strings.Contains(name, "calendar"):
			count := imp.importEvents(sheet, resolver, issues)
			summary.CalendarCount += count
			summary.RowsInserted["calendar_events"] += count
			log.WithField("inserted", count).Info("calendar sheet imported")
		case strings.Contains(name, "user") || strings.Contains(name, "pegawai"):
			count := imp.importUsers(sheet, resolver, issues)
			summary.UsersCount += count
			summary.RowsInserted["users"] += count
			log.WithField("resolved", count).Info("user sheet imported")
		default:
			summary.SkippedSheets = append(summary.SkippedSheets, sheet.Name)
			log.Warn("sheet name matches no importer, skipping")
		}
	}

	summary.IssueCount = issues.Count()
	summary.Duration = time.Since(started).Round(time.Millisecond).String()

	if err := imp.store.AppendAuditLog("import", "system", map[string]interface{}{
		"workload_count": summary.WorkloadCount,
		"calendar_count": summary.CalendarCount,
		"users_count":    summary.UsersCount,
		"file_hash":      summary.FileHash,
	}); err != nil {
		imp.log.WithError(err).Error("audit log write failed")
	}

	return summary, nil
}

func (imp *Importer) importWorkloads(sheet Sheet, resolver *UserResolver, issues *IssueLog) int {
	fm := NewFieldMapper(sheet.Headers)

	var records []pending
	for i, row := range sheet.Rows {
		values, rowIssues := buildWorkload(fm, row, i+1, resolver)
		for _, issue := range rowIssues {
			imp.appendIssue(issues, issue)
		}
		records = append(records, pending{
			row:    row.Num,
			title:  values["name"].(string),
			values: values,
		})
	}

	return imp.persistChunked("workloads", records, issues)
}

func (imp *Importer) importEvents(sheet Sheet, resolver *UserResolver, issues *IssueLog) int {
	fm := NewFieldMapper(sheet.Headers)

	var records []pending
	for i, row := range sheet.Rows {
		values, rowIssues, ok := buildEvent(fm, row, i+1, resolver)
		for _, issue := range rowIssues {
			imp.appendIssue(issues, issue)
		}
		if !ok {
			imp.log.WithFields(logrus.Fields{
				"sheet": sheet.Name,
				"row":   row.Num,
			}).Warn("calendar row skipped: no usable date range")
			continue
		}
		records = append(records, pending{
			row:    row.Num,
			title:  values["title"].(string),
			values: values,
		})
	}

	return imp.persistChunked("calendar_events", records, issues)
}

func (imp *Importer) importUsers(sheet Sheet, resolver *UserResolver, issues *IssueLog) int {
	fm := NewFieldMapper(sheet.Headers)

	resolved := 0
	for _, row := range sheet.Rows {
		if id := buildUserEntry(fm, row, resolver); id != nil {
			resolved++
			continue
		}
		imp.appendIssue(issues, models.ImportIssue{
			Row:     row.Num,
			Error:   "user could not be resolved or created",
			RowData: row.Cells,
		})
	}

	return resolved
}

func (imp *Importer) appendIssue(issues *IssueLog, issue models.ImportIssue) {
	if err := issues.Append(issue); err != nil {
		imp.log.WithError(err).Warn("issue log write failed")
	}
}

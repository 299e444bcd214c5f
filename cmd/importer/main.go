package main

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"

	"workload-import-api/internal/config"
	"workload-import-api/internal/db"
	"workload-import-api/internal/ingest"
	"workload-import-api/internal/store"
)

// importer runs one bulk import from a legacy spreadsheet export. The
// workbook path comes from the first argument, falling back to XLSX_PATH.
// Exit code is 0 whenever the run completes, no matter how many individual
// rows were skipped; only fatal setup errors (missing file, missing store
// configuration) exit 1.
func main() {
	log := logrus.New()

	cfg, err := config.Load()
	if err != nil {
		log.WithError(err).Fatal("invalid configuration")
	}

	workbookPath := cfg.WorkbookPath
	if len(os.Args) > 1 {
		workbookPath = os.Args[1]
	}

	fileData, err := os.ReadFile(workbookPath)
	if err != nil {
		log.WithError(err).WithField("path", workbookPath).Fatal("cannot read workbook")
	}

	database, err := db.Connect(cfg.DBPath)
	if err != nil {
		log.WithError(err).Fatal("cannot open record store")
	}
	defer database.Close()

	if err := db.Migrate(database, cfg.SchemaPath); err != nil {
		log.WithError(err).Fatal("cannot apply schema")
	}

	importer := ingest.NewImporter(store.NewSQLite(database), log, cfg.IssueLogPath, 0)

	summary, err := importer.Run(fileData)
	if err != nil {
		log.WithError(err).Fatal("import failed")
	}

	fmt.Printf("Import finished in %s\n", summary.Duration)
	fmt.Printf("  workloads:       %d\n", summary.WorkloadCount)
	fmt.Printf("  calendar events: %d\n", summary.CalendarCount)
	fmt.Printf("  users:           %d\n", summary.UsersCount)
	fmt.Printf("  issues:          %d (see %s)\n", summary.IssueCount, cfg.IssueLogPath)
	for _, sheet := range summary.SkippedSheets {
		fmt.Printf("  skipped sheet:   %s\n", sheet)
	}
}

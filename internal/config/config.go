package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// Config is built once per process from the environment (with .env
// autoload) and passed explicitly to whatever needs it.
type Config struct {
	DBPath       string
	SchemaPath   string
	WorkbookPath string
	IssueLogPath string
	Port         string
}

// Load reads configuration from the environment. DB_PATH is the one
// required key: without a store there is nothing to import into, so its
// absence aborts the run before any work happens.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		DBPath:       os.Getenv("DB_PATH"),
		SchemaPath:   getenvDefault("SCHEMA_PATH", "schema/schema.sql"),
		WorkbookPath: getenvDefault("XLSX_PATH", "./data/Data_Import.xlsx"),
		IssueLogPath: getenvDefault("ISSUE_LOG_PATH", "./data/import_issues.log"),
		Port:         getenvDefault("PORT", "8080"),
	}

	if cfg.DBPath == "" {
		return nil, fmt.Errorf("DB_PATH is required")
	}

	return cfg, nil
}

func getenvDefault(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

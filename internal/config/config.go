package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"time"
)

const (
	BackendExcel  = "excel"
	BackendSheets = "sheets"
	BackendMemory = "memory"
	BackendSQLite = "sqlite"
)

type Config struct {
	// Workbooks
	FinanceFile  string
	AccountsFile string
	RosterFile   string

	// Backend selection
	LedgerBackend   string
	AccountsBackend string

	// Database
	SQLiteDBPath string

	// Google Sheets
	GoogleSpreadsheetID string
	SheetsCacheTTL      time.Duration

	// AMQP; notifications are disabled when AMQPURL is empty.
	AMQPURL      string
	AMQPExchange string
	AMQPQueue    string

	LogLevel   string
	PolicyFile string
	PDFPath    string
	SeedDir    string
}

func Load() *Config {
	return &Config{
		FinanceFile:  getEnv("CLUBFIN_FINANCE_FILE", "club_finances.xlsx"),
		AccountsFile: getEnv("CLUBFIN_ACCOUNTS_FILE", "accounts.xlsx"),
		RosterFile:   getEnv("CLUBFIN_ROSTER_FILE", "club_data.xlsx"),

		LedgerBackend:   getEnv("LEDGER_BACKEND", BackendExcel),
		AccountsBackend: getEnv("ACCOUNTS_BACKEND", BackendExcel),

		SQLiteDBPath: getEnv("SQLITE_DB_PATH", "./data/clubfin.db"),

		GoogleSpreadsheetID: getEnv("GOOGLE_SPREADSHEET_ID", ""),
		SheetsCacheTTL:      getEnvDuration("SHEETS_CACHE_TTL", 30*time.Second),

		AMQPURL:      getEnv("AMQP_URL", ""),
		AMQPExchange: getEnv("AMQP_EXCHANGE", "clubfin"),
		AMQPQueue:    getEnv("AMQP_QUEUE", "reports_generated"),

		LogLevel:   getEnv("LOG_LEVEL", "info"),
		PolicyFile: getEnv("CLUBFIN_POLICY_FILE", ""),
		PDFPath:    getEnv("CLUBFIN_PDF_PATH", "income_statement.pdf"),
		SeedDir:    getEnv("CLUBFIN_SEED_DIR", "."),
	}
}

// Validate validates the configuration and returns an error if invalid
func (c *Config) Validate() error {
	var errors []string

	ledgerBackends := []string{BackendExcel, BackendSheets, BackendMemory}
	if !slices.Contains(ledgerBackends, c.LedgerBackend) {
		errors = append(errors, fmt.Sprintf("invalid ledger backend '%s': must be one of %v", c.LedgerBackend, ledgerBackends))
	}
	accountBackends := []string{BackendExcel, BackendSQLite, BackendMemory}
	if !slices.Contains(accountBackends, c.AccountsBackend) {
		errors = append(errors, fmt.Sprintf("invalid accounts backend '%s': must be one of %v", c.AccountsBackend, accountBackends))
	}

	if c.LedgerBackend == BackendExcel && strings.TrimSpace(c.FinanceFile) == "" {
		errors = append(errors, "finance workbook path cannot be empty when using excel ledger backend")
	}
	if c.AccountsBackend == BackendExcel && strings.TrimSpace(c.AccountsFile) == "" {
		errors = append(errors, "accounts workbook path cannot be empty when using excel accounts backend")
	}
	if c.LedgerBackend == BackendSheets && c.GoogleSpreadsheetID == "" {
		errors = append(errors, "Google Spreadsheet ID is required when using sheets backend")
	}

	if c.SheetsCacheTTL < 0 || c.SheetsCacheTTL > time.Hour {
		errors = append(errors, fmt.Sprintf("invalid sheets cache ttl %v: must be between 0 and 1 hour", c.SheetsCacheTTL))
	}

	if c.AccountsBackend == BackendSQLite {
		if c.SQLiteDBPath == "" {
			errors = append(errors, "SQLite database path cannot be empty when using sqlite backend")
		} else {
			dir := filepath.Dir(c.SQLiteDBPath)
			if dir != "." && dir != "" {
				if _, err := os.Stat(dir); os.IsNotExist(err) {
					if err := os.MkdirAll(dir, 0755); err != nil {
						errors = append(errors, fmt.Sprintf("cannot create SQLite database directory '%s': %v", dir, err))
					}
				}
			}
		}
	}

	if c.AMQPURL != "" {
		if parsedURL, err := url.Parse(c.AMQPURL); err != nil {
			errors = append(errors, fmt.Sprintf("invalid AMQP URL '%s': %v", c.AMQPURL, err))
		} else if parsedURL.Scheme != "amqp" && parsedURL.Scheme != "amqps" {
			errors = append(errors, fmt.Sprintf("invalid AMQP URL scheme '%s': must be 'amqp' or 'amqps'", parsedURL.Scheme))
		}
		if c.AMQPExchange == "" {
			errors = append(errors, "AMQP exchange name cannot be empty when AMQP URL is provided")
		}
		if c.AMQPQueue == "" {
			errors = append(errors, "AMQP queue name cannot be empty when AMQP URL is provided")
		}
	}

	if c.PolicyFile != "" {
		if _, err := os.Stat(c.PolicyFile); err != nil {
			errors = append(errors, fmt.Sprintf("policy file '%s' is not readable: %v", c.PolicyFile, err))
		}
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errors, "\n- "))
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
		if secs, err := strconv.Atoi(value); err == nil {
			return time.Duration(secs) * time.Second
		}
	}
	return defaultValue
}

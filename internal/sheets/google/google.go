package google

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"clubfin/internal/core"
	applog "clubfin/internal/log"
	ports "clubfin/internal/sheets"

	goption "google.golang.org/api/option"
	gsheet "google.golang.org/api/sheets/v4"
)

// Client reads the ledger from and writes reports to a Google spreadsheet
// laid out like the Excel workbook: one tab per sheet, header on row 1.
type Client struct {
	svc           *gsheet.Service
	spreadsheetID string
	logger        *applog.Logger
}

var (
	_ ports.LedgerReader = (*Client)(nil)
	_ ports.TableWriter  = (*Client)(nil)
)

// New wraps an existing Sheets service.
func New(svc *gsheet.Service, spreadsheetID string, logger *applog.Logger) (*Client, error) {
	if svc == nil {
		return nil, errors.New("sheets service not initialized")
	}
	if strings.TrimSpace(spreadsheetID) == "" {
		return nil, errors.New("missing spreadsheet id")
	}
	if logger == nil {
		logger = applog.Discard()
	}
	return &Client{svc: svc, spreadsheetID: spreadsheetID, logger: logger.WithComponent(applog.ComponentSheets)}, nil
}

// NewFromEnv creates a client for spreadsheetID using Service Account
// credentials from GOOGLE_SERVICE_ACCOUNT_JSON, GOOGLE_SERVICE_ACCOUNT_FILE or
// GOOGLE_APPLICATION_CREDENTIALS.
func NewFromEnv(ctx context.Context, spreadsheetID string, logger *applog.Logger) (*Client, error) {
	svc, err := newSheetsService(ctx)
	if err != nil {
		return nil, fmt.Errorf("sheets service: %w", err)
	}
	return New(svc, spreadsheetID, logger)
}

func newSheetsService(ctx context.Context) (*gsheet.Service, error) {
	serviceAccountJSON := strings.TrimSpace(os.Getenv("GOOGLE_SERVICE_ACCOUNT_JSON"))
	serviceAccountFile := strings.TrimSpace(os.Getenv("GOOGLE_SERVICE_ACCOUNT_FILE"))
	if serviceAccountJSON == "" && serviceAccountFile == "" {
		serviceAccountFile = strings.TrimSpace(os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"))
	}

	var credentialsJSON []byte
	switch {
	case serviceAccountJSON != "":
		credentialsJSON = []byte(serviceAccountJSON)
	case serviceAccountFile != "":
		b, err := os.ReadFile(serviceAccountFile)
		if err != nil {
			return nil, fmt.Errorf("read service account file: %w", err)
		}
		credentialsJSON = b
	default:
		return nil, errors.New("missing service account credentials (set GOOGLE_SERVICE_ACCOUNT_JSON, GOOGLE_SERVICE_ACCOUNT_FILE, or GOOGLE_APPLICATION_CREDENTIALS)")
	}

	service, err := gsheet.NewService(ctx,
		goption.WithCredentialsJSON(credentialsJSON),
		goption.WithScopes(gsheet.SpreadsheetsScope))
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}
	return service, nil
}

func (c *Client) LoadLedger(ctx context.Context) (core.Ledger, error) {
	var ledger core.Ledger
	for _, sheet := range []string{core.SheetRevenues, core.SheetExpenses} {
		rows, err := c.readSheet(ctx, sheet)
		if err != nil {
			return core.Ledger{}, err
		}
		txs, warnings, err := ports.ParseLedgerSheet(sheet, rows)
		if err != nil {
			return core.Ledger{}, c.sourceErr(sheet, err)
		}
		if sheet == core.SheetRevenues {
			ledger.Revenues = txs
		} else {
			ledger.Expenses = txs
		}
		ledger.Warnings = append(ledger.Warnings, warnings...)
	}
	c.logger.DebugContext(ctx, "Ledger loaded",
		"revenues", len(ledger.Revenues),
		"expenses", len(ledger.Expenses),
		"excluded", len(ledger.Warnings))
	return ledger, nil
}

// WriteTables clears and rewrites each named tab, adding tabs that do not
// exist yet.
func (c *Client) WriteTables(ctx context.Context, tables ...core.Table) error {
	if len(tables) == 0 {
		return nil
	}
	if err := c.ensureSheets(ctx, tables); err != nil {
		return err
	}
	for _, t := range tables {
		rng := sheetRange(t.Name)
		if _, err := c.svc.Spreadsheets.Values.Clear(c.spreadsheetID, rng, &gsheet.ClearValuesRequest{}).Context(ctx).Do(); err != nil {
			return c.sourceErr(t.Name, fmt.Errorf("clear: %w", err))
		}
		vr := &gsheet.ValueRange{Values: ports.CellValues(t)}
		if _, err := c.svc.Spreadsheets.Values.Update(c.spreadsheetID, sheetRange(t.Name), vr).
			ValueInputOption("USER_ENTERED").Context(ctx).Do(); err != nil {
			return c.sourceErr(t.Name, fmt.Errorf("update: %w", err))
		}
		c.logger.DebugContext(ctx, "Sheet written", applog.FieldSheet, t.Name, "rows", len(t.Rows))
	}
	return nil
}

func (c *Client) ensureSheets(ctx context.Context, tables []core.Table) error {
	ss, err := c.svc.Spreadsheets.Get(c.spreadsheetID).Fields("sheets.properties.title").Context(ctx).Do()
	if err != nil {
		return c.sourceErr("", fmt.Errorf("read spreadsheet: %w", err))
	}
	existing := make(map[string]struct{}, len(ss.Sheets))
	for _, s := range ss.Sheets {
		if s.Properties != nil {
			existing[s.Properties.Title] = struct{}{}
		}
	}
	var reqs []*gsheet.Request
	for _, t := range tables {
		if _, ok := existing[t.Name]; ok {
			continue
		}
		existing[t.Name] = struct{}{}
		reqs = append(reqs, &gsheet.Request{AddSheet: &gsheet.AddSheetRequest{
			Properties: &gsheet.SheetProperties{Title: t.Name},
		}})
	}
	if len(reqs) == 0 {
		return nil
	}
	_, err = c.svc.Spreadsheets.BatchUpdate(c.spreadsheetID, &gsheet.BatchUpdateSpreadsheetRequest{Requests: reqs}).Context(ctx).Do()
	if err != nil {
		return c.sourceErr("", fmt.Errorf("add sheets: %w", err))
	}
	return nil
}

func (c *Client) readSheet(ctx context.Context, sheet string) ([][]string, error) {
	// Unformatted values keep number formats like "#,##0" out of the amounts.
	resp, err := c.svc.Spreadsheets.Values.Get(c.spreadsheetID, sheetRange(sheet)).
		ValueRenderOption("UNFORMATTED_VALUE").
		Context(ctx).Do()
	if err != nil {
		return nil, c.sourceErr(sheet, err)
	}
	out := make([][]string, 0, len(resp.Values))
	for _, row := range resp.Values {
		out = append(out, toStrings(row))
	}
	return out, nil
}

func (c *Client) sourceErr(sheet string, err error) error {
	return &core.DataSourceError{Source: c.spreadsheetID, Sheet: sheet, Err: err}
}

// sheetRange quotes the tab name so names with spaces are valid A1 ranges.
func sheetRange(sheet string) string {
	return fmt.Sprintf("'%s'", strings.ReplaceAll(sheet, "'", "''"))
}

func toStrings(in []interface{}) []string {
	out := make([]string, len(in))
	for i, v := range in {
		switch n := v.(type) {
		case float64:
			out[i] = strconv.FormatFloat(n, 'f', -1, 64)
		default:
			out[i] = strings.TrimSpace(fmt.Sprint(v))
		}
	}
	return out
}

// Package google implements the row store port on top of the Google Sheets
// API using service account credentials.
package google

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"sync"
	"time"

	goption "google.golang.org/api/option"
	gsheet "google.golang.org/api/sheets/v4"

	"spendbot/internal/cache"
	"spendbot/internal/rowstore"
)

// readCacheTTL bounds how stale a cached range read may get. Writes through
// this client purge the cache immediately; the TTL covers writes made by
// other processes sharing the spreadsheet.
const readCacheTTL = 30 * time.Second

type Client struct {
	svc           *gsheet.Service
	spreadsheetID string
	sheetName     string
	rangeCache    *cache.LRU[[][]string]

	sheetIDMu sync.Mutex
	sheetID   int64
	sheetIDOK bool
}

var _ rowstore.Store = (*Client)(nil)

// NewFromEnv creates a Sheets-backed store from environment variables.
// Required: GOOGLE_SPREADSHEET_ID. Sheet name defaults to "Expenses"
// (GOOGLE_SHEET_NAME). Credentials come from GOOGLE_SERVICE_ACCOUNT_JSON,
// GOOGLE_SERVICE_ACCOUNT_FILE, or GOOGLE_APPLICATION_CREDENTIALS.
func NewFromEnv(ctx context.Context) (*Client, error) {
	spreadsheetID := strings.TrimSpace(os.Getenv("GOOGLE_SPREADSHEET_ID"))
	if spreadsheetID == "" {
		return nil, errors.New("missing GOOGLE_SPREADSHEET_ID")
	}
	sheetName := strings.TrimSpace(os.Getenv("GOOGLE_SHEET_NAME"))
	if sheetName == "" {
		sheetName = "Expenses"
	}

	svc, err := newSheetsService(ctx)
	if err != nil {
		return nil, fmt.Errorf("sheets service: %w", err)
	}

	return New(svc, spreadsheetID, sheetName), nil
}

// New wraps an existing Sheets service; used by tests and cmd/sheet-init.
func New(svc *gsheet.Service, spreadsheetID, sheetName string) *Client {
	return &Client{
		svc:           svc,
		spreadsheetID: spreadsheetID,
		sheetName:     sheetName,
		rangeCache:    cache.NewLRU[[][]string](16, readCacheTTL),
	}
}

// newSheetsService initializes a Sheets Service using Service Account
// credentials, from inline JSON or a credentials file.
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

	slog.InfoContext(ctx, "Creating Google Sheets service",
		"credentials_size", len(credentialsJSON),
		"scope", gsheet.SpreadsheetsScope)

	service, err := gsheet.NewService(ctx,
		goption.WithCredentialsJSON(credentialsJSON),
		goption.WithScopes(gsheet.SpreadsheetsScope))
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}
	return service, nil
}

// getRange fetches a range, serving repeated reads from the cache until a
// write purges it or the TTL lapses.
func (c *Client) getRange(ctx context.Context, rng string) ([][]string, error) {
	if cached, ok := c.rangeCache.Get(rng); ok {
		return cached, nil
	}
	resp, err := c.svc.Spreadsheets.Values.Get(c.spreadsheetID, rng).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %v", rowstore.ErrUnavailable, rng, err)
	}
	out := make([][]string, len(resp.Values))
	for i, row := range resp.Values {
		out[i] = toStrings(row)
	}
	c.rangeCache.Set(rng, out)
	return out, nil
}

// ReadAllRows returns a full snapshot of the expense range A:E.
func (c *Client) ReadAllRows(ctx context.Context) ([][]string, error) {
	return c.getRange(ctx, fmt.Sprintf("%s!A:E", c.sheetName))
}

// AppendRow inserts values one row past the last non-empty cell of column A.
// When that position already holds data (registry-only cells in later
// columns), a row is inserted first so nothing is overwritten.
func (c *Client) AppendRow(ctx context.Context, values []string) error {
	rows, err := c.ReadAllRows(ctx)
	if err != nil {
		return err
	}
	next := 1
	for i, row := range rows {
		if len(row) > 0 && row[0] != "" {
			next = i + 2
		}
	}
	if len(rows) >= next {
		if err := c.insertRowAt(ctx, next); err != nil {
			return err
		}
	}

	cells := make([]any, len(values))
	for i, v := range values {
		cells[i] = v
	}
	rng := fmt.Sprintf("%s!A%d:%s%d", c.sheetName, next, columnLetter(len(values)), next)
	vr := &gsheet.ValueRange{Values: [][]any{cells}}
	_, err = c.svc.Spreadsheets.Values.Update(c.spreadsheetID, rng, vr).
		ValueInputOption("RAW").Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("%w: update %s: %v", rowstore.ErrUnavailable, rng, err)
	}
	c.rangeCache.Purge()
	return nil
}

// insertRowAt shifts rows down so a new row opens at the 1-based position.
func (c *Client) insertRowAt(ctx context.Context, row int) error {
	id, err := c.resolveSheetID(ctx)
	if err != nil {
		return err
	}
	req := &gsheet.BatchUpdateSpreadsheetRequest{
		Requests: []*gsheet.Request{{
			InsertDimension: &gsheet.InsertDimensionRequest{
				Range: &gsheet.DimensionRange{
					SheetId:    id,
					Dimension:  "ROWS",
					StartIndex: int64(row - 1),
					EndIndex:   int64(row),
				},
				InheritFromBefore: row > 1,
			},
		}},
	}
	if _, err := c.svc.Spreadsheets.BatchUpdate(c.spreadsheetID, req).Context(ctx).Do(); err != nil {
		return fmt.Errorf("%w: insert row %d: %v", rowstore.ErrUnavailable, row, err)
	}
	c.rangeCache.Purge()
	return nil
}

// resolveSheetID maps the configured sheet title to its numeric ID. The ID
// is cached on first success; transient lookup failures are retried on the
// next call.
func (c *Client) resolveSheetID(ctx context.Context) (int64, error) {
	c.sheetIDMu.Lock()
	defer c.sheetIDMu.Unlock()
	if c.sheetIDOK {
		return c.sheetID, nil
	}
	meta, err := c.svc.Spreadsheets.Get(c.spreadsheetID).
		Fields("sheets.properties").Context(ctx).Do()
	if err != nil {
		return 0, fmt.Errorf("%w: spreadsheet metadata: %v", rowstore.ErrUnavailable, err)
	}
	for _, sh := range meta.Sheets {
		if sh.Properties != nil && sh.Properties.Title == c.sheetName {
			c.sheetID = sh.Properties.SheetId
			c.sheetIDOK = true
			return c.sheetID, nil
		}
	}
	return 0, fmt.Errorf("%w: sheet %q not found", rowstore.ErrUnavailable, c.sheetName)
}

// WriteCell overwrites a single cell. Row and column are 1-based.
func (c *Client) WriteCell(ctx context.Context, row, col int, value string) error {
	rng := fmt.Sprintf("%s!%s%d", c.sheetName, columnLetter(col), row)
	vr := &gsheet.ValueRange{Values: [][]any{{value}}}
	_, err := c.svc.Spreadsheets.Values.Update(c.spreadsheetID, rng, vr).
		ValueInputOption("RAW").Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("%w: update %s: %v", rowstore.ErrUnavailable, rng, err)
	}
	c.rangeCache.Purge()
	return nil
}

// ReadColumn returns a full column, blank entries preserved in position. The
// Sheets API omits values for empty cells, so short rows pad to "".
func (c *Client) ReadColumn(ctx context.Context, col int) ([]string, error) {
	letter := columnLetter(col)
	rows, err := c.getRange(ctx, fmt.Sprintf("%s!%s:%s", c.sheetName, letter, letter))
	if err != nil {
		return nil, err
	}
	out := make([]string, len(rows))
	for i, row := range rows {
		if len(row) > 0 {
			out[i] = row[0]
		}
	}
	return out, nil
}

func toStrings(in []any) []string {
	out := make([]string, len(in))
	for i, v := range in {
		out[i] = strings.TrimSpace(fmt.Sprint(v))
	}
	return out
}

// columnLetter converts a 1-based column index to its A1 letter. Columns past
// Z are not needed for a five-column sheet but handled anyway.
func columnLetter(col int) string {
	s := ""
	for col > 0 {
		col--
		s = string(rune('A'+col%26)) + s
		col /= 26
	}
	return s
}

// Package google implements the RowStore port on top of a Google
// spreadsheet, one tab per table with a header row naming the columns.
package google

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/Trantoan12022004/chome2/internal/cache"
	"github.com/Trantoan12022004/chome2/internal/sheets"

	goption "google.golang.org/api/option"
	gsheet "google.golang.org/api/sheets/v4"
)

type Client struct {
	svc           *gsheet.Service
	spreadsheetID string
	// tab name per logical table; defaults to the table name itself
	tabs map[string]string
	// header layouts rarely change; caching them saves one read per append
	headers *cache.LRUCache[[]string]
}

var _ sheets.RowStore = (*Client)(nil)

// NewFromEnv creates a Sheets client using environment variables.
// Required: GOOGLE_SPREADSHEET_ID plus service account credentials
// (GOOGLE_SERVICE_ACCOUNT_JSON, GOOGLE_SERVICE_ACCOUNT_FILE, or
// GOOGLE_APPLICATION_CREDENTIALS).
// Optional tab overrides: GOOGLE_USERS_SHEET_NAME, GOOGLE_EXPENSES_SHEET_NAME,
// GOOGLE_CONSUMERS_SHEET_NAME, GOOGLE_AUDIT_SHEET_NAME.
func NewFromEnv(ctx context.Context) (*Client, error) {
	spreadsheetID := strings.TrimSpace(os.Getenv("GOOGLE_SPREADSHEET_ID"))
	if spreadsheetID == "" {
		return nil, errors.New("missing GOOGLE_SPREADSHEET_ID")
	}

	svc, err := newSheetsService(ctx)
	if err != nil {
		return nil, fmt.Errorf("sheets service: %w", err)
	}

	tabs := map[string]string{
		sheets.TableUsers:     tabName("GOOGLE_USERS_SHEET_NAME", sheets.TableUsers),
		sheets.TableExpenses:  tabName("GOOGLE_EXPENSES_SHEET_NAME", sheets.TableExpenses),
		sheets.TableConsumers: tabName("GOOGLE_CONSUMERS_SHEET_NAME", sheets.TableConsumers),
		sheets.TableAudit:     tabName("GOOGLE_AUDIT_SHEET_NAME", sheets.TableAudit),
	}

	return &Client{
		svc:           svc,
		spreadsheetID: spreadsheetID,
		tabs:          tabs,
		headers:       cache.NewLRUCache[[]string](len(tabs), 10*time.Minute),
	}, nil
}

func tabName(envKey, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(envKey)); v != "" {
		return v
	}
	return fallback
}

// newSheetsService initializes a Sheets Service using Service Account credentials.
func newSheetsService(ctx context.Context) (*gsheet.Service, error) {
	serviceAccountJSON := strings.TrimSpace(os.Getenv("GOOGLE_SERVICE_ACCOUNT_JSON"))
	serviceAccountFile := strings.TrimSpace(os.Getenv("GOOGLE_SERVICE_ACCOUNT_FILE"))
	if serviceAccountJSON == "" && serviceAccountFile == "" {
		serviceAccountFile = strings.TrimSpace(os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"))
	}

	var credentialsJSON []byte
	var err error
	switch {
	case serviceAccountJSON != "":
		credentialsJSON = []byte(serviceAccountJSON)
	case serviceAccountFile != "":
		credentialsJSON, err = os.ReadFile(serviceAccountFile)
		if err != nil {
			return nil, fmt.Errorf("read service account file: %w", err)
		}
	default:
		return nil, errors.New("missing service account credentials (set GOOGLE_SERVICE_ACCOUNT_JSON, GOOGLE_SERVICE_ACCOUNT_FILE, or GOOGLE_APPLICATION_CREDENTIALS)")
	}

	service, err := gsheet.NewService(ctx,
		goption.WithCredentialsJSON(credentialsJSON),
		goption.WithScopes(gsheet.SpreadsheetsScope))
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}

	slog.InfoContext(ctx, "Google Sheets service created")
	return service, nil
}

// FetchAll reads the whole tab and maps data rows by the header row.
// Rows come back in sheet order, which is append order for this store.
func (c *Client) FetchAll(ctx context.Context, table string) ([]sheets.Row, error) {
	tab, err := c.tab(table)
	if err != nil {
		return nil, err
	}
	rng := fmt.Sprintf("%s!A:Z", tab)
	resp, err := c.svc.Spreadsheets.Values.Get(c.spreadsheetID, rng).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", rng, err)
	}
	if len(resp.Values) == 0 {
		return nil, nil
	}

	headers := toStrings(resp.Values[0])
	for i := range headers {
		headers[i] = strings.ToLower(headers[i])
	}

	var out []sheets.Row
	for _, raw := range resp.Values[1:] {
		cols := toStrings(raw)
		if allEmpty(cols) {
			continue
		}
		row := make(sheets.Row, len(headers))
		for i, h := range headers {
			if h == "" {
				continue
			}
			if i < len(cols) {
				row[h] = cols[i]
			} else {
				row[h] = ""
			}
		}
		out = append(out, row)
	}
	return out, nil
}

// Append writes one row at the end of the tab, in header-column order.
func (c *Client) Append(ctx context.Context, table string, row sheets.Row) error {
	tab, err := c.tab(table)
	if err != nil {
		return err
	}

	headers, cached := c.headers.Get(tab)
	if !cached {
		var err error
		headers, err = c.readHeader(ctx, tab)
		if err != nil {
			return err
		}
		if len(headers) == 0 {
			// Fresh tab: lay down the canonical header first.
			headers = sheets.Columns[table]
			hdr := make([]any, len(headers))
			for i, h := range headers {
				hdr[i] = h
			}
			vr := &gsheet.ValueRange{Values: [][]any{hdr}}
			if _, err := c.svc.Spreadsheets.Values.Append(c.spreadsheetID, tab+"!A1", vr).
				ValueInputOption("RAW").Context(ctx).Do(); err != nil {
				return fmt.Errorf("write header for %s: %w", tab, err)
			}
		}
		c.headers.Set(tab, headers)
	}

	values := make([]any, len(headers))
	for i, h := range headers {
		values[i] = row[h]
	}
	vr := &gsheet.ValueRange{Values: [][]any{values}}
	if _, err := c.svc.Spreadsheets.Values.Append(c.spreadsheetID, tab+"!A1", vr).
		ValueInputOption("RAW").InsertDataOption("INSERT_ROWS").Context(ctx).Do(); err != nil {
		return fmt.Errorf("append to %s: %w", tab, err)
	}

	slog.DebugContext(ctx, "Row appended to sheet", "table", table, "tab", tab)
	return nil
}

func (c *Client) tab(table string) (string, error) {
	if c.svc == nil {
		return "", errors.New("sheets service not initialized")
	}
	tab, ok := c.tabs[table]
	if !ok {
		return "", fmt.Errorf("unknown table %q", table)
	}
	return tab, nil
}

func (c *Client) readHeader(ctx context.Context, tab string) ([]string, error) {
	rng := fmt.Sprintf("%s!1:1", tab)
	resp, err := c.svc.Spreadsheets.Values.Get(c.spreadsheetID, rng).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("read header %s: %w", rng, err)
	}
	if len(resp.Values) == 0 {
		return nil, nil
	}
	headers := toStrings(resp.Values[0])
	for i := range headers {
		headers[i] = strings.ToLower(headers[i])
	}
	return headers, nil
}

func toStrings(in []any) []string {
	out := make([]string, len(in))
	for i, v := range in {
		out[i] = strings.TrimSpace(fmt.Sprint(v))
	}
	return out
}

func allEmpty(cols []string) bool {
	for _, c := range cols {
		if c != "" {
			return false
		}
	}
	return true
}

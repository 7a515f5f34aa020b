package gsheets

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"google.golang.org/api/option"
	sheets "google.golang.org/api/sheets/v4"
)

// Row is one summary line appended to the shared spreadsheet for an
// accepted submission.
type Row struct {
	EmployeeID     string
	SubstationName string
	Timestamp      time.Time
	Lat            string
	Lng            string
	FolderLink     string
}

// Client wraps the Sheets API append call.
type Client struct {
	svc           *sheets.Service
	spreadsheetID string
	appendRange   string
}

// New creates a Sheets client on top of an authenticated HTTP client.
func New(ctx context.Context, httpClient *http.Client, spreadsheetID, appendRange string, opts ...option.ClientOption) (*Client, error) {
	allOpts := append([]option.ClientOption{option.WithHTTPClient(httpClient)}, opts...)
	svc, err := sheets.NewService(ctx, allOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets service: %w", err)
	}
	return &Client{svc: svc, spreadsheetID: spreadsheetID, appendRange: appendRange}, nil
}

// AppendInspectionRow appends one summary row. The timestamp column
// uses the Thai Buddhist-era display format, matching the spreadsheet
// readers' convention.
func (c *Client) AppendInspectionRow(ctx context.Context, row Row) error {
	values := &sheets.ValueRange{
		Values: [][]interface{}{{
			row.EmployeeID,
			row.SubstationName,
			FormatThaiDateTime(row.Timestamp),
			row.Lat,
			row.Lng,
			row.FolderLink,
			"Completed",
		}},
	}

	_, err := c.svc.Spreadsheets.Values.Append(c.spreadsheetID, c.appendRange, values).
		ValueInputOption("USER_ENTERED").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("spreadsheet append failed: %w", err)
	}
	return nil
}

// FormatThaiDateTime renders a timestamp as DD/MM/YYYY HH:mm with the
// Buddhist-era year (Gregorian + 543).
func FormatThaiDateTime(t time.Time) string {
	return fmt.Sprintf("%02d/%02d/%d %02d:%02d",
		t.Day(), int(t.Month()), t.Year()+543, t.Hour(), t.Minute())
}

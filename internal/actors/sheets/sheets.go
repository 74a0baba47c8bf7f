// Package sheets adapts a Google Sheets spreadsheet as the external roster
// document service. Each event's roster is a separate spreadsheet identified by
// the event's roster_doc_id; row 1 is a header, data rows start at row 2.
package sheets

import (
	"context"
	"fmt"

	"google.golang.org/api/option"
	sheetsv4 "google.golang.org/api/sheets/v4"
)

// dataRange is the A1 range scanned when counting populated data rows.
const dataRange = "A2:A"

// Client implements the RosterDoc port on top of the Sheets API.
type Client struct {
	srv *sheetsv4.Service
}

// NewClient creates a new Client authenticated with a service-account JSON file.
func NewClient(ctx context.Context, serviceAccountJSONPath string) (*Client, error) {
	srv, err := sheetsv4.NewService(ctx,
		option.WithCredentialsFile(serviceAccountJSONPath),
		option.WithScopes(sheetsv4.SpreadsheetsScope),
	)
	if err != nil {
		return nil, fmt.Errorf("error building sheets service: %w", err)
	}
	return &Client{srv: srv}, nil
}

// RowCount returns the number of populated data rows beneath the header.
func (c *Client) RowCount(ctx context.Context, docID string) (int, error) {
	resp, err := c.srv.Spreadsheets.Values.Get(docID, dataRange).Context(ctx).Do()
	if err != nil {
		return 0, fmt.Errorf("error reading roster doc %s: %w", docID, err)
	}
	return len(resp.Values), nil
}

// UpdateRow overwrites the data row at the given zero-based index. The A1
// anchor cell lets the API expand the written range to the row width.
func (c *Client) UpdateRow(ctx context.Context, docID string, index int, row []string) error {
	vr := &sheetsv4.ValueRange{Values: [][]interface{}{rowValues(row)}}
	anchor := fmt.Sprintf("A%d", index+2)
	_, err := c.srv.Spreadsheets.Values.Update(docID, anchor, vr).
		ValueInputOption("RAW").
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("error updating roster row %d in doc %s: %w", index, docID, err)
	}
	return nil
}

// InsertRow appends a new data row after the existing ones.
func (c *Client) InsertRow(ctx context.Context, docID string, row []string) error {
	vr := &sheetsv4.ValueRange{Values: [][]interface{}{rowValues(row)}}
	_, err := c.srv.Spreadsheets.Values.Append(docID, "A:Z", vr).
		ValueInputOption("RAW").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("error appending roster row in doc %s: %w", docID, err)
	}
	return nil
}

func rowValues(row []string) []interface{} {
	values := make([]interface{}, len(row))
	for i, cell := range row {
		values[i] = cell
	}
	return values
}

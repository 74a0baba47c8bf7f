package ports

import "context"

// RosterDoc is the port for the external roster spreadsheet service. Rows are
// addressed by zero-based data-row index; the adapter owns any header offset.
type RosterDoc interface {
	// RowCount returns the number of populated data rows in the document.
	RowCount(ctx context.Context, docID string) (int, error)

	// UpdateRow overwrites the data row at the given index.
	UpdateRow(ctx context.Context, docID string, index int, row []string) error

	// InsertRow appends a new data row after the existing ones.
	InsertRow(ctx context.Context, docID string, row []string) error
}

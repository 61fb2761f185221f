package sheet

import (
	"context"

	"prep-checkin-go/internal/models"
)

// HeaderColumns is the fixed header row of the check-in sheet. Data rows
// start at row 2 and follow the same column order.
var HeaderColumns = []string{
	"Date & Time",
	"Order Number",
	"Item Name",
	"ASIN",
	"Quantity",
	"Correct Order Number",
}

// RowStore is the tabular store the pipeline reads from and appends to.
// The store is append-only; existing rows are never mutated or deleted.
type RowStore interface {
	// ReadRows returns every existing data row (row 2 onward), columns A..F.
	ReadRows(ctx context.Context) ([][]string, error)
	// AppendRow appends one record as a new row at the end of the store.
	AppendRow(ctx context.Context, record models.CheckinRecord) error
}

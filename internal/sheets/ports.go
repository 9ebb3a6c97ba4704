// Package sheets defines the outbound ports for the transaction export
// spreadsheet.
package sheets

import (
	"context"
	"time"
)

// Row is one exported transaction, already joined to display names.
type Row struct {
	TransactionID string
	Date          time.Time
	Kind          string
	AmountUnits   float64
	Wallet        string
	ToWallet      string
	Category      string
	Note          string
}

// Exporter mirrors transaction mutations into the export sheet.
type Exporter interface {
	// UpsertRow appends the row, replacing any existing row with the
	// same transaction id. Returns a cell reference for logging.
	UpsertRow(ctx context.Context, row Row) (ref string, err error)

	// RemoveRow clears the row for the transaction id. Removing an id
	// that was never exported is a no-op.
	RemoveRow(ctx context.Context, transactionID string) error
}

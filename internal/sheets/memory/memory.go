// Package memory is an in-memory sheets.Exporter for tests and local
// runs without Google credentials.
package memory

import (
	"context"
	"fmt"
	"sync"

	ports "paisa/internal/sheets"
)

type Exporter struct {
	mu   sync.Mutex
	rows map[string]ports.Row // keyed by transaction id
}

var _ ports.Exporter = (*Exporter)(nil)

func New() *Exporter {
	return &Exporter{rows: make(map[string]ports.Row)}
}

func (e *Exporter) UpsertRow(_ context.Context, row ports.Row) (string, error) {
	if row.TransactionID == "" {
		return "", fmt.Errorf("row missing transaction id")
	}
	e.mu.Lock()
	e.rows[row.TransactionID] = row
	e.mu.Unlock()
	return "memory!" + row.TransactionID, nil
}

func (e *Exporter) RemoveRow(_ context.Context, transactionID string) error {
	e.mu.Lock()
	delete(e.rows, transactionID)
	e.mu.Unlock()
	return nil
}

// Row returns the exported row for a transaction id, if present.
func (e *Exporter) Row(transactionID string) (ports.Row, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	row, ok := e.rows[transactionID]
	return row, ok
}

// Len returns the number of exported rows.
func (e *Exporter) Len() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.rows)
}

package memory

import (
	"context"
	"testing"
	"time"

	ports "paisa/internal/sheets"
)

func TestUpsertAndRemove(t *testing.T) {
	e := New()
	ctx := context.Background()

	row := ports.Row{
		TransactionID: "tx1",
		Date:          time.Date(2026, time.March, 5, 0, 0, 0, 0, time.UTC),
		Kind:          "EXPENSE",
		AmountUnits:   99.0,
		Wallet:        "My Cash",
	}

	ref, err := e.UpsertRow(ctx, row)
	if err != nil {
		t.Fatalf("UpsertRow() error = %v", err)
	}
	if ref == "" {
		t.Error("UpsertRow() should return a reference")
	}
	if e.Len() != 1 {
		t.Errorf("Len() = %d, want 1", e.Len())
	}

	// Upserting the same id replaces, not duplicates.
	row.AmountUnits = 120.0
	if _, err := e.UpsertRow(ctx, row); err != nil {
		t.Fatalf("UpsertRow() error = %v", err)
	}
	if e.Len() != 1 {
		t.Errorf("Len() after re-upsert = %d, want 1", e.Len())
	}
	got, ok := e.Row("tx1")
	if !ok || got.AmountUnits != 120.0 {
		t.Errorf("Row(tx1) = %+v, %v; want amount 120", got, ok)
	}

	if err := e.RemoveRow(ctx, "tx1"); err != nil {
		t.Fatalf("RemoveRow() error = %v", err)
	}
	if e.Len() != 0 {
		t.Errorf("Len() after remove = %d, want 0", e.Len())
	}

	// Removing an unknown id is a no-op.
	if err := e.RemoveRow(ctx, "missing"); err != nil {
		t.Errorf("RemoveRow(missing) error = %v, want nil", err)
	}
}

func TestUpsertRejectsEmptyID(t *testing.T) {
	e := New()
	if _, err := e.UpsertRow(context.Background(), ports.Row{}); err == nil {
		t.Error("UpsertRow() should reject an empty transaction id")
	}
}

package google

import (
	"context"
	"testing"
	"time"

	ports "paisa/internal/sheets"
)

func rowFixture() ports.Row {
	return ports.Row{
		TransactionID: "tx1",
		Date:          time.Date(2026, time.March, 5, 0, 0, 0, 0, time.UTC),
		Kind:          "EXPENSE",
		AmountUnits:   125.50,
		Wallet:        "My Bank/UPI",
		Category:      "Food & Dining",
		Note:          "groceries",
	}
}

func TestYearPrefixedName(t *testing.T) {
	tests := []struct {
		name     string
		base     string
		year     int
		expected string
	}{
		{"plain base", "Transactions", 2026, "2026 Transactions"},
		{"already prefixed", "2025 Transactions", 2026, "2025 Transactions"},
		{"empty base", "", 2026, ""},
		{"whitespace base", "  Transactions  ", 2026, "2026 Transactions"},
		{"short name", "Tx", 2026, "2026 Tx"},
		{"four digit word", "2abc Transactions", 2026, "2026 2abc Transactions"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := yearPrefixedName(tt.base, tt.year); got != tt.expected {
				t.Errorf("yearPrefixedName(%q, %d) = %q, want %q", tt.base, tt.year, got, tt.expected)
			}
		})
	}
}

func TestNewFromEnvRequiresSpreadsheetID(t *testing.T) {
	t.Setenv("GOOGLE_SPREADSHEET_ID", "")

	if _, err := NewFromEnv(context.Background()); err == nil {
		t.Error("NewFromEnv should fail without GOOGLE_SPREADSHEET_ID")
	}
}

func TestUninitializedClient(t *testing.T) {
	c := &Client{spreadsheetID: "sheet", sheetName: "2026 Transactions"}
	ctx := context.Background()

	if _, err := c.UpsertRow(ctx, rowFixture()); err == nil {
		t.Error("UpsertRow should fail when service is not initialized")
	}
	if err := c.RemoveRow(ctx, "tx1"); err == nil {
		t.Error("RemoveRow should fail when service is not initialized")
	}
}

func TestUpsertRowRequiresID(t *testing.T) {
	c := &Client{spreadsheetID: "sheet", sheetName: "2026 Transactions"}
	row := rowFixture()
	row.TransactionID = ""

	if _, err := c.UpsertRow(context.Background(), row); err == nil {
		t.Error("UpsertRow should reject a row without a transaction id")
	}
}

package worker

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"paisa/internal/amqp"
	"paisa/internal/core"
	sheetsmem "paisa/internal/sheets/memory"
	"paisa/internal/storage"
)

func setupWorker(t *testing.T) (*SyncWorker, *storage.MemoryGateway, *sheetsmem.Exporter) {
	t.Helper()
	gw := storage.NewMemoryGateway()
	exp := sheetsmem.New()
	return NewSyncWorker(gw, exp), gw, exp
}

func TestUpsertExportsJoinedRow(t *testing.T) {
	w, gw, exp := setupWorker(t)
	ctx := context.Background()

	walletID, err := gw.CreateWallet(ctx, "u1", core.Wallet{Name: "My Cash", Kind: core.WalletPersonal})
	require.NoError(t, err)
	catID, err := gw.CreateCategory(ctx, "u1", core.Category{Name: "Food", Kind: core.CategoryExpense})
	require.NoError(t, err)

	date := time.Date(2026, time.March, 5, 0, 0, 0, 0, time.UTC).UnixMilli()
	txID, err := gw.CreateTransaction(ctx, "u1", core.Transaction{
		Amount: core.Money{Cents: 12550}, Kind: core.TxExpense,
		WalletID: walletID, CategoryID: catID, Note: "lunch", Date: date,
	})
	require.NoError(t, err)

	msg := amqp.NewTransactionSyncMessage(txID, "u1", amqp.ActionUpsert, 1)
	require.NoError(t, w.HandleSyncMessage(ctx, msg))

	row, ok := exp.Row(txID)
	require.True(t, ok)
	require.Equal(t, "My Cash", row.Wallet)
	require.Equal(t, "Food", row.Category)
	require.Equal(t, "EXPENSE", row.Kind)
	require.InDelta(t, 125.50, row.AmountUnits, 0.001)
	require.Equal(t, "lunch", row.Note)
	require.Equal(t, 2026, row.Date.Year())
}

func TestUpsertDanglingWalletUsesUnknown(t *testing.T) {
	w, gw, exp := setupWorker(t)
	ctx := context.Background()

	txID, err := gw.CreateTransaction(ctx, "u1", core.Transaction{
		Amount: core.Money{Cents: 100}, Kind: core.TxExpense,
		WalletID: "gone", CategoryID: "also-gone",
	})
	require.NoError(t, err)

	msg := amqp.NewTransactionSyncMessage(txID, "u1", amqp.ActionUpsert, 1)
	require.NoError(t, w.HandleSyncMessage(ctx, msg))

	row, ok := exp.Row(txID)
	require.True(t, ok)
	require.Equal(t, "Unknown", row.Wallet)
	require.Empty(t, row.Category)
}

func TestDeleteRemovesRow(t *testing.T) {
	w, gw, exp := setupWorker(t)
	ctx := context.Background()

	txID, err := gw.CreateTransaction(ctx, "u1", core.Transaction{
		Amount: core.Money{Cents: 100}, Kind: core.TxExpense, WalletID: "w", CategoryID: "c",
	})
	require.NoError(t, err)
	require.NoError(t, w.HandleSyncMessage(ctx, amqp.NewTransactionSyncMessage(txID, "u1", amqp.ActionUpsert, 1)))
	require.Equal(t, 1, exp.Len())

	require.NoError(t, w.HandleSyncMessage(ctx, amqp.NewTransactionSyncMessage(txID, "u1", amqp.ActionDelete, 2)))
	require.Equal(t, 0, exp.Len())
}

func TestUpsertAfterDeletionRemovesRow(t *testing.T) {
	w, gw, exp := setupWorker(t)
	ctx := context.Background()

	txID, err := gw.CreateTransaction(ctx, "u1", core.Transaction{
		Amount: core.Money{Cents: 100}, Kind: core.TxExpense, WalletID: "w", CategoryID: "c",
	})
	require.NoError(t, err)
	require.NoError(t, w.HandleSyncMessage(ctx, amqp.NewTransactionSyncMessage(txID, "u1", amqp.ActionUpsert, 1)))

	// The transaction disappears before a stale upsert lands.
	require.NoError(t, gw.DeleteTransaction(ctx, "u1", txID))
	require.NoError(t, w.HandleSyncMessage(ctx, amqp.NewTransactionSyncMessage(txID, "u1", amqp.ActionUpsert, 2)))
	require.Equal(t, 0, exp.Len())
}

func TestUnknownActionFails(t *testing.T) {
	w, _, _ := setupWorker(t)
	msg := amqp.NewTransactionSyncMessage("tx", "u1", "compact", 1)
	require.Error(t, w.HandleSyncMessage(context.Background(), msg))
}

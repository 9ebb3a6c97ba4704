// Package worker mirrors transaction mutations from the database into
// the export spreadsheet, driven by AMQP sync messages.
package worker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"paisa/internal/amqp"
	"paisa/internal/core"
	"paisa/internal/ledger"
	"paisa/internal/sheets"
	"paisa/internal/storage"
)

// Store is the slice of the gateway the worker reads from.
type Store interface {
	GetTransaction(ctx context.Context, userID, id string) (core.Transaction, error)
	ListWallets(ctx context.Context, userID string) ([]core.Wallet, error)
	ListCategories(ctx context.Context, userID string) ([]core.Category, error)
}

// SyncWorker handles synchronization of transactions to the export sheet.
type SyncWorker struct {
	store    Store
	exporter sheets.Exporter
}

func NewSyncWorker(store Store, exporter sheets.Exporter) *SyncWorker {
	return &SyncWorker{store: store, exporter: exporter}
}

// HandleSyncMessage processes a single sync message. An upsert whose
// transaction has since been deleted degrades to a remove, so the sheet
// converges regardless of message ordering.
func (w *SyncWorker) HandleSyncMessage(ctx context.Context, msg *amqp.TransactionSyncMessage) error {
	slog.InfoContext(ctx, "Processing sync message",
		"transaction_id", msg.ID,
		"action", msg.Action)

	switch msg.Action {
	case amqp.ActionDelete:
		return w.remove(ctx, msg.ID)
	case amqp.ActionUpsert:
		return w.upsert(ctx, msg)
	default:
		return fmt.Errorf("unknown sync action: %s", msg.Action)
	}
}

func (w *SyncWorker) upsert(ctx context.Context, msg *amqp.TransactionSyncMessage) error {
	t, err := w.store.GetTransaction(ctx, msg.UserID, msg.ID)
	if errors.Is(err, storage.ErrNotFound) {
		slog.WarnContext(ctx, "Transaction gone before sync, removing row",
			"transaction_id", msg.ID)
		return w.remove(ctx, msg.ID)
	}
	if err != nil {
		return fmt.Errorf("get transaction %s: %w", msg.ID, err)
	}

	wallets, err := w.store.ListWallets(ctx, msg.UserID)
	if err != nil {
		return fmt.Errorf("list wallets: %w", err)
	}
	categories, err := w.store.ListCategories(ctx, msg.UserID)
	if err != nil {
		return fmt.Errorf("list categories: %w", err)
	}

	detail := ledger.WithDetails([]core.Transaction{t}, wallets, categories)[0]
	ref, err := w.exporter.UpsertRow(ctx, toRow(detail))
	if err != nil {
		return fmt.Errorf("upsert row: %w", err)
	}

	slog.InfoContext(ctx, "Transaction synced",
		"transaction_id", t.ID,
		"sheets_ref", ref,
		"amount_cents", t.Amount.Cents)
	return nil
}

func (w *SyncWorker) remove(ctx context.Context, transactionID string) error {
	if err := w.exporter.RemoveRow(ctx, transactionID); err != nil {
		return fmt.Errorf("remove row: %w", err)
	}
	slog.InfoContext(ctx, "Transaction row removed", "transaction_id", transactionID)
	return nil
}

func toRow(d ledger.TransactionDetail) sheets.Row {
	return sheets.Row{
		TransactionID: d.ID,
		Date:          time.UnixMilli(d.Date).UTC(),
		Kind:          string(d.Kind),
		AmountUnits:   d.Amount.Units(),
		Wallet:        d.WalletName,
		ToWallet:      d.ToWalletName,
		Category:      d.CategoryName,
		Note:          d.Note,
	}
}

package storage

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"paisa/internal/core"
)

// ListTransactions returns the user's transactions ordered by event date
// descending, newest first.
func (g *SQLiteGateway) ListTransactions(ctx context.Context, userID string) ([]core.Transaction, error) {
	rows, err := g.db.QueryContext(ctx, `
		SELECT id, amount_cents, kind, wallet_id, to_wallet_id, category_id,
		       note, transfer_reason, date, created_at
		FROM transactions WHERE user_id = ? ORDER BY date DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	defer rows.Close()

	var txns []core.Transaction
	for rows.Next() {
		var t core.Transaction
		if err := rows.Scan(&t.ID, &t.Amount.Cents, &t.Kind, &t.WalletID, &t.ToWalletID,
			&t.CategoryID, &t.Note, &t.TransferReason, &t.Date, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		txns = append(txns, t)
	}
	return txns, rows.Err()
}

// GetTransaction loads a single transaction by id.
func (g *SQLiteGateway) GetTransaction(ctx context.Context, userID, id string) (core.Transaction, error) {
	var t core.Transaction
	err := g.db.QueryRowContext(ctx, `
		SELECT id, amount_cents, kind, wallet_id, to_wallet_id, category_id,
		       note, transfer_reason, date, created_at
		FROM transactions WHERE id = ? AND user_id = ?`, id, userID).
		Scan(&t.ID, &t.Amount.Cents, &t.Kind, &t.WalletID, &t.ToWalletID,
			&t.CategoryID, &t.Note, &t.TransferReason, &t.Date, &t.CreatedAt)
	if err != nil {
		return core.Transaction{}, fmt.Errorf("get transaction: %w", ErrNotFound)
	}
	return t, nil
}

// CreateTransaction inserts a transaction and returns its assigned id.
// Validation happens at the service boundary; the gateway is pass-through.
func (g *SQLiteGateway) CreateTransaction(ctx context.Context, userID string, t core.Transaction) (string, error) {
	id := newID()
	createdAt := t.CreatedAt
	if createdAt == 0 {
		createdAt = nowMillis()
	}
	date := t.Date
	if date == 0 {
		date = createdAt
	}
	_, err := g.db.ExecContext(ctx, `
		INSERT INTO transactions (id, user_id, amount_cents, kind, wallet_id, to_wallet_id,
		                          category_id, note, transfer_reason, date, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		id, userID, t.Amount.Cents, string(t.Kind), t.WalletID, t.ToWalletID,
		t.CategoryID, t.Note, t.TransferReason, date, createdAt)
	if err != nil {
		return "", fmt.Errorf("create transaction: %w", err)
	}

	slog.InfoContext(ctx, "Transaction created",
		"transaction_id", id,
		"kind", string(t.Kind),
		"amount_cents", t.Amount.Cents,
		"wallet_id", t.WalletID)
	return id, nil
}

// UpdateTransaction applies a partial update. CreatedAt is immutable.
func (g *SQLiteGateway) UpdateTransaction(ctx context.Context, userID, id string, patch core.TransactionPatch) error {
	var sets []string
	var args []any
	if patch.Amount != nil {
		sets = append(sets, "amount_cents = ?")
		args = append(args, patch.Amount.Cents)
	}
	if patch.Kind != nil {
		sets = append(sets, "kind = ?")
		args = append(args, string(*patch.Kind))
	}
	if patch.WalletID != nil {
		sets = append(sets, "wallet_id = ?")
		args = append(args, *patch.WalletID)
	}
	if patch.ToWalletID != nil {
		sets = append(sets, "to_wallet_id = ?")
		args = append(args, *patch.ToWalletID)
	}
	if patch.CategoryID != nil {
		sets = append(sets, "category_id = ?")
		args = append(args, *patch.CategoryID)
	}
	if patch.Note != nil {
		sets = append(sets, "note = ?")
		args = append(args, *patch.Note)
	}
	if patch.TransferReason != nil {
		sets = append(sets, "transfer_reason = ?")
		args = append(args, *patch.TransferReason)
	}
	if patch.Date != nil {
		sets = append(sets, "date = ?")
		args = append(args, *patch.Date)
	}
	if len(sets) == 0 {
		return nil
	}
	args = append(args, id, userID)

	res, err := g.db.ExecContext(ctx,
		"UPDATE transactions SET "+strings.Join(sets, ", ")+" WHERE id = ? AND user_id = ?", args...)
	if err != nil {
		return fmt.Errorf("update transaction: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteTransaction removes a transaction unconditionally.
func (g *SQLiteGateway) DeleteTransaction(ctx context.Context, userID, id string) error {
	if _, err := g.db.ExecContext(ctx,
		"DELETE FROM transactions WHERE id = ? AND user_id = ?", id, userID); err != nil {
		return fmt.Errorf("delete transaction: %w", err)
	}
	slog.InfoContext(ctx, "Transaction deleted", "transaction_id", id)
	return nil
}

package storage

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"paisa/internal/core"
)

// ListWallets returns the user's wallets ordered by creation time.
func (g *SQLiteGateway) ListWallets(ctx context.Context, userID string) ([]core.Wallet, error) {
	rows, err := g.db.QueryContext(ctx, `
		SELECT id, name, kind, icon, is_default, created_at
		FROM wallets WHERE user_id = ? ORDER BY created_at ASC`, userID)
	if err != nil {
		return nil, fmt.Errorf("list wallets: %w", err)
	}
	defer rows.Close()

	var wallets []core.Wallet
	for rows.Next() {
		var w core.Wallet
		var isDefault int64
		if err := rows.Scan(&w.ID, &w.Name, &w.Kind, &w.Icon, &isDefault, &w.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan wallet: %w", err)
		}
		w.IsDefault = isDefault != 0
		wallets = append(wallets, w)
	}
	return wallets, rows.Err()
}

// CreateWallet inserts a wallet and returns its assigned id.
func (g *SQLiteGateway) CreateWallet(ctx context.Context, userID string, w core.Wallet) (string, error) {
	id := newID()
	createdAt := w.CreatedAt
	if createdAt == 0 {
		createdAt = nowMillis()
	}
	_, err := g.db.ExecContext(ctx, `
		INSERT INTO wallets (id, user_id, name, kind, icon, is_default, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		id, userID, w.Name, string(w.Kind), w.Icon, boolToInt(w.IsDefault), createdAt)
	if err != nil {
		return "", fmt.Errorf("create wallet: %w", err)
	}

	slog.InfoContext(ctx, "Wallet created", "wallet_id", id, "name", w.Name, "kind", string(w.Kind))
	return id, nil
}

// UpdateWallet applies a partial update. Nil patch fields are untouched.
func (g *SQLiteGateway) UpdateWallet(ctx context.Context, userID, id string, patch core.WalletPatch) error {
	var sets []string
	var args []any
	if patch.Name != nil {
		sets = append(sets, "name = ?")
		args = append(args, *patch.Name)
	}
	if patch.Kind != nil {
		sets = append(sets, "kind = ?")
		args = append(args, string(*patch.Kind))
	}
	if patch.Icon != nil {
		sets = append(sets, "icon = ?")
		args = append(args, *patch.Icon)
	}
	if patch.IsDefault != nil {
		sets = append(sets, "is_default = ?")
		args = append(args, boolToInt(*patch.IsDefault))
	}
	if len(sets) == 0 {
		return nil
	}
	args = append(args, id, userID)

	res, err := g.db.ExecContext(ctx,
		"UPDATE wallets SET "+strings.Join(sets, ", ")+" WHERE id = ? AND user_id = ?", args...)
	if err != nil {
		return fmt.Errorf("update wallet: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteWallet removes a wallet unconditionally. Transactions referencing
// it keep their wallet id; readers resolve it as "Unknown".
func (g *SQLiteGateway) DeleteWallet(ctx context.Context, userID, id string) error {
	if _, err := g.db.ExecContext(ctx,
		"DELETE FROM wallets WHERE id = ? AND user_id = ?", id, userID); err != nil {
		return fmt.Errorf("delete wallet: %w", err)
	}
	slog.InfoContext(ctx, "Wallet deleted", "wallet_id", id)
	return nil
}

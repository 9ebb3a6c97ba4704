package storage

import (
	"context"
	"fmt"
	"log/slog"
)

// PurgeUserData deletes every wallet, category, transaction and the
// preferences record for the account in one transaction. The identity
// record survives; this backs the account-reset workflow, not deletion.
func (g *SQLiteGateway) PurgeUserData(ctx context.Context, userID string) error {
	tx, err := g.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin purge: %w", err)
	}
	defer tx.Rollback()

	for _, table := range []string{"wallets", "categories", "transactions", "preferences"} {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table+" WHERE user_id = ?", userID); err != nil {
			return fmt.Errorf("purge %s: %w", table, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit purge: %w", err)
	}
	slog.InfoContext(ctx, "User data purged", "user_id", userID)
	return nil
}

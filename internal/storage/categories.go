package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"

	"paisa/internal/core"
)

// ListCategories returns the user's categories ordered by name.
func (g *SQLiteGateway) ListCategories(ctx context.Context, userID string) ([]core.Category, error) {
	rows, err := g.db.QueryContext(ctx, `
		SELECT id, name, kind, icon, color, budget_cents, is_default, created_at
		FROM categories WHERE user_id = ? ORDER BY name ASC`, userID)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	var cats []core.Category
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, err
		}
		cats = append(cats, c)
	}
	return cats, rows.Err()
}

func scanCategory(rows *sql.Rows) (core.Category, error) {
	var c core.Category
	var budget sql.NullInt64
	var isDefault int64
	if err := rows.Scan(&c.ID, &c.Name, &c.Kind, &c.Icon, &c.Color, &budget, &isDefault, &c.CreatedAt); err != nil {
		return core.Category{}, fmt.Errorf("scan category: %w", err)
	}
	if budget.Valid {
		c.Budget = &core.Money{Cents: budget.Int64}
	}
	c.IsDefault = isDefault != 0
	return c, nil
}

// CreateCategory inserts a category and returns its assigned id.
func (g *SQLiteGateway) CreateCategory(ctx context.Context, userID string, c core.Category) (string, error) {
	id := newID()
	createdAt := c.CreatedAt
	if createdAt == 0 {
		createdAt = nowMillis()
	}
	var budget sql.NullInt64
	if c.Budget != nil {
		budget = sql.NullInt64{Int64: c.Budget.Cents, Valid: true}
	}
	_, err := g.db.ExecContext(ctx, `
		INSERT INTO categories (id, user_id, name, kind, icon, color, budget_cents, is_default, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		id, userID, c.Name, string(c.Kind), c.Icon, c.Color, budget, boolToInt(c.IsDefault), createdAt)
	if err != nil {
		return "", fmt.Errorf("create category: %w", err)
	}
	return id, nil
}

// UpdateCategory applies a partial update. Nil patch fields are untouched.
func (g *SQLiteGateway) UpdateCategory(ctx context.Context, userID, id string, patch core.CategoryPatch) error {
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
	if patch.Color != nil {
		sets = append(sets, "color = ?")
		args = append(args, *patch.Color)
	}
	if patch.Budget != nil {
		sets = append(sets, "budget_cents = ?")
		args = append(args, patch.Budget.Cents)
	}
	if len(sets) == 0 {
		return nil
	}
	args = append(args, id, userID)

	res, err := g.db.ExecContext(ctx,
		"UPDATE categories SET "+strings.Join(sets, ", ")+" WHERE id = ? AND user_id = ?", args...)
	if err != nil {
		return fmt.Errorf("update category: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteCategory removes a category unconditionally, even when historical
// transactions still reference it. The breakdown simply drops those rows.
func (g *SQLiteGateway) DeleteCategory(ctx context.Context, userID, id string) error {
	if _, err := g.db.ExecContext(ctx,
		"DELETE FROM categories WHERE id = ? AND user_id = ?", id, userID); err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	slog.InfoContext(ctx, "Category deleted", "category_id", id)
	return nil
}

// SeedDefaultCategories batch-inserts the default seed set. Not
// idempotent: calling twice duplicates the set, so callers run it at most
// once per account, during onboarding.
func (g *SQLiteGateway) SeedDefaultCategories(ctx context.Context, userID string) error {
	tx, err := g.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin seed: %w", err)
	}
	defer tx.Rollback()

	createdAt := nowMillis()
	for _, c := range core.DefaultCategories() {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO categories (id, user_id, name, kind, icon, color, budget_cents, is_default, created_at)
			VALUES (?, ?, ?, ?, ?, ?, NULL, 1, ?)`,
			newID(), userID, c.Name, string(c.Kind), c.Icon, c.Color, createdAt); err != nil {
			return fmt.Errorf("seed category %q: %w", c.Name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit seed: %w", err)
	}
	slog.InfoContext(ctx, "Default categories seeded", "count", len(core.DefaultCategories()))
	return nil
}

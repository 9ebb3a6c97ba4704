package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"paisa/internal/core"
)

// GetPreferences returns the user's preferences record normalized into the
// current shape, or nil when none exists yet.
func (g *SQLiteGateway) GetPreferences(ctx context.Context, userID string) (*core.Preferences, error) {
	var p core.Preferences
	var onboarded, dark int64
	err := g.db.QueryRowContext(ctx, `
		SELECT onboarding_completed, theme, dark_mode, currency
		FROM preferences WHERE user_id = ?`, userID).
		Scan(&onboarded, &p.Theme, &dark, &p.Currency)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get preferences: %w", err)
	}
	p.OnboardingCompleted = onboarded != 0
	p.DarkMode = dark != 0
	p = core.NormalizePreferences(p)
	return &p, nil
}

// SetPreferences writes the full record, creating it when absent.
func (g *SQLiteGateway) SetPreferences(ctx context.Context, userID string, p core.Preferences) error {
	p = core.NormalizePreferences(p)
	_, err := g.db.ExecContext(ctx, `
		INSERT INTO preferences (user_id, onboarding_completed, theme, dark_mode, currency)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (user_id) DO UPDATE SET
			onboarding_completed = excluded.onboarding_completed,
			theme = excluded.theme,
			dark_mode = excluded.dark_mode,
			currency = excluded.currency`,
		userID, boolToInt(p.OnboardingCompleted), string(p.Theme), boolToInt(p.DarkMode), p.Currency)
	if err != nil {
		return fmt.Errorf("set preferences: %w", err)
	}
	return nil
}

// UpdatePreferences merges a partial update into the stored record.
func (g *SQLiteGateway) UpdatePreferences(ctx context.Context, userID string, patch core.PreferencesPatch) error {
	current, err := g.GetPreferences(ctx, userID)
	if err != nil {
		return err
	}
	if current == nil {
		return ErrNotFound
	}
	return g.SetPreferences(ctx, userID, current.ApplyPatch(patch))
}

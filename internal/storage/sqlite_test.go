package storage

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"paisa/internal/core"
)

func newTestGateway(t *testing.T) *SQLiteGateway {
	t.Helper()
	g, err := NewSQLiteGateway(filepath.Join(t.TempDir(), "paisa.db"))
	require.NoError(t, err)
	t.Cleanup(func() { g.Close() })
	return g
}

func TestSQLiteWalletCRUD(t *testing.T) {
	g := newTestGateway(t)
	ctx := context.Background()

	id, err := g.CreateWallet(ctx, "u1", core.Wallet{
		Name: "My Bank/UPI",
		Kind: core.WalletPersonal,
		Icon: "credit-card",
	})
	require.NoError(t, err)
	require.NotEmpty(t, id)

	wallets, err := g.ListWallets(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, wallets, 1)
	require.Equal(t, "My Bank/UPI", wallets[0].Name)
	require.Equal(t, core.WalletPersonal, wallets[0].Kind)
	require.NotZero(t, wallets[0].CreatedAt)

	name := "Salary Account"
	kind := core.WalletCustodial
	err = g.UpdateWallet(ctx, "u1", id, core.WalletPatch{Name: &name, Kind: &kind})
	require.NoError(t, err)

	wallets, err = g.ListWallets(ctx, "u1")
	require.NoError(t, err)
	require.Equal(t, "Salary Account", wallets[0].Name)
	require.Equal(t, core.WalletCustodial, wallets[0].Kind)

	require.NoError(t, g.DeleteWallet(ctx, "u1", id))
	wallets, err = g.ListWallets(ctx, "u1")
	require.NoError(t, err)
	require.Empty(t, wallets)
}

func TestSQLiteWalletUpdateMissing(t *testing.T) {
	g := newTestGateway(t)
	name := "x"
	err := g.UpdateWallet(context.Background(), "u1", "no-such-id", core.WalletPatch{Name: &name})
	require.ErrorIs(t, err, ErrNotFound)
}

func TestSQLiteWalletsScopedByUser(t *testing.T) {
	g := newTestGateway(t)
	ctx := context.Background()

	_, err := g.CreateWallet(ctx, "u1", core.Wallet{Name: "Mine", Kind: core.WalletPersonal})
	require.NoError(t, err)

	wallets, err := g.ListWallets(ctx, "u2")
	require.NoError(t, err)
	require.Empty(t, wallets)
}

func TestSQLiteCategoryBudgetRoundTrip(t *testing.T) {
	g := newTestGateway(t)
	ctx := context.Background()

	id, err := g.CreateCategory(ctx, "u1", core.Category{
		Name:   "Food & Dining",
		Kind:   core.CategoryExpense,
		Icon:   "utensils",
		Color:  "#f97316",
		Budget: &core.Money{Cents: 500000},
	})
	require.NoError(t, err)

	cats, err := g.ListCategories(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, cats, 1)
	require.NotNil(t, cats[0].Budget)
	require.Equal(t, int64(500000), cats[0].Budget.Cents)

	noBudgetID, err := g.CreateCategory(ctx, "u1", core.Category{
		Name: "Salary", Kind: core.CategoryIncome, Icon: "banknote", Color: "#22c55e",
	})
	require.NoError(t, err)

	cats, err = g.ListCategories(ctx, "u1")
	require.NoError(t, err)
	for _, c := range cats {
		if c.ID == noBudgetID {
			require.Nil(t, c.Budget)
		}
	}
	_ = id
}

func TestSQLiteSeedDefaultCategories(t *testing.T) {
	g := newTestGateway(t)
	ctx := context.Background()

	require.NoError(t, g.SeedDefaultCategories(ctx, "u1"))
	cats, err := g.ListCategories(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, cats, len(core.DefaultCategories()))

	// Seeding again duplicates; callers gate on onboarding state.
	require.NoError(t, g.SeedDefaultCategories(ctx, "u1"))
	cats, err = g.ListCategories(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, cats, 2*len(core.DefaultCategories()))
}

func TestSQLiteTransactionLifecycle(t *testing.T) {
	g := newTestGateway(t)
	ctx := context.Background()

	id, err := g.CreateTransaction(ctx, "u1", core.Transaction{
		Amount:   core.Money{Cents: 12550},
		Kind:     core.TxExpense,
		WalletID: "w1",
		CategoryID: "c1",
		Note:     "groceries",
		Date:     1700000000000,
	})
	require.NoError(t, err)

	got, err := g.GetTransaction(ctx, "u1", id)
	require.NoError(t, err)
	require.Equal(t, int64(12550), got.Amount.Cents)
	require.Equal(t, core.TxExpense, got.Kind)
	require.Equal(t, int64(1700000000000), got.Date)
	require.NotZero(t, got.CreatedAt)

	newAmount := core.Money{Cents: 9900}
	note := "groceries, corrected"
	err = g.UpdateTransaction(ctx, "u1", id, core.TransactionPatch{Amount: &newAmount, Note: &note})
	require.NoError(t, err)

	got, err = g.GetTransaction(ctx, "u1", id)
	require.NoError(t, err)
	require.Equal(t, int64(9900), got.Amount.Cents)
	require.Equal(t, "groceries, corrected", got.Note)

	require.NoError(t, g.DeleteTransaction(ctx, "u1", id))
	_, err = g.GetTransaction(ctx, "u1", id)
	require.Error(t, err)
}

func TestSQLiteTransactionsNewestFirst(t *testing.T) {
	g := newTestGateway(t)
	ctx := context.Background()

	older := core.Transaction{Amount: core.Money{Cents: 100}, Kind: core.TxExpense, WalletID: "w", CategoryID: "c", Date: 1000}
	newer := older
	newer.Date = 2000

	_, err := g.CreateTransaction(ctx, "u1", older)
	require.NoError(t, err)
	_, err = g.CreateTransaction(ctx, "u1", newer)
	require.NoError(t, err)

	txns, err := g.ListTransactions(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, txns, 2)
	require.Equal(t, int64(2000), txns[0].Date)
	require.Equal(t, int64(1000), txns[1].Date)
}

func TestSQLitePreferences(t *testing.T) {
	g := newTestGateway(t)
	ctx := context.Background()

	p, err := g.GetPreferences(ctx, "u1")
	require.NoError(t, err)
	require.Nil(t, p)

	require.NoError(t, g.SetPreferences(ctx, "u1", core.DefaultPreferences()))
	p, err = g.GetPreferences(ctx, "u1")
	require.NoError(t, err)
	require.NotNil(t, p)
	require.Equal(t, core.ThemeDark, p.Theme)
	require.Equal(t, "INR", p.Currency)

	theme := core.ThemeLight
	require.NoError(t, g.UpdatePreferences(ctx, "u1", core.PreferencesPatch{Theme: &theme}))
	p, err = g.GetPreferences(ctx, "u1")
	require.NoError(t, err)
	require.Equal(t, core.ThemeLight, p.Theme)
	require.False(t, p.DarkMode)
}

func TestSQLitePreferencesUpdateMissing(t *testing.T) {
	g := newTestGateway(t)
	theme := core.ThemeDark
	err := g.UpdatePreferences(context.Background(), "nobody", core.PreferencesPatch{Theme: &theme})
	require.ErrorIs(t, err, ErrNotFound)
}

func TestSQLiteUsers(t *testing.T) {
	g := newTestGateway(t)
	ctx := context.Background()

	u, err := g.CreateUser(ctx, "a@example.com", "hash")
	require.NoError(t, err)
	require.NotEmpty(t, u.ID)

	_, err = g.CreateUser(ctx, "a@example.com", "other-hash")
	require.ErrorIs(t, err, ErrDuplicate)

	got, err := g.UserByEmail(ctx, "a@example.com")
	require.NoError(t, err)
	require.Equal(t, u.ID, got.ID)
	require.Equal(t, "hash", got.PasswordHash)

	_, err = g.UserByEmail(ctx, "b@example.com")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestSQLitePurgeUserData(t *testing.T) {
	g := newTestGateway(t)
	ctx := context.Background()

	u, err := g.CreateUser(ctx, "a@example.com", "hash")
	require.NoError(t, err)
	_, err = g.CreateWallet(ctx, u.ID, core.Wallet{Name: "W", Kind: core.WalletPersonal})
	require.NoError(t, err)
	require.NoError(t, g.SeedDefaultCategories(ctx, u.ID))
	_, err = g.CreateTransaction(ctx, u.ID, core.Transaction{
		Amount: core.Money{Cents: 100}, Kind: core.TxExpense, WalletID: "w", CategoryID: "c",
	})
	require.NoError(t, err)
	require.NoError(t, g.SetPreferences(ctx, u.ID, core.DefaultPreferences()))

	require.NoError(t, g.PurgeUserData(ctx, u.ID))

	wallets, err := g.ListWallets(ctx, u.ID)
	require.NoError(t, err)
	require.Empty(t, wallets)
	cats, err := g.ListCategories(ctx, u.ID)
	require.NoError(t, err)
	require.Empty(t, cats)
	txns, err := g.ListTransactions(ctx, u.ID)
	require.NoError(t, err)
	require.Empty(t, txns)
	p, err := g.GetPreferences(ctx, u.ID)
	require.NoError(t, err)
	require.Nil(t, p)

	// Identity record survives a purge.
	got, err := g.UserByEmail(ctx, "a@example.com")
	require.NoError(t, err)
	require.Equal(t, u.ID, got.ID)
}

func TestSQLiteMigrationsIdempotent(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "paisa.db")

	g, err := NewSQLiteGateway(path)
	require.NoError(t, err)
	require.NoError(t, g.Close())

	g, err = NewSQLiteGateway(path)
	require.NoError(t, err)
	require.NoError(t, g.Close())
}

func TestErrNotFoundIsDistinct(t *testing.T) {
	require.False(t, errors.Is(ErrNotFound, ErrDuplicate))
}

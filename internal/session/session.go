// Package session holds the in-memory working state for one signed-in
// user: wallets, categories, transactions and preferences loaded from
// the gateway. Mutations write through to the gateway first and patch
// the snapshot only on success, so a gateway failure leaves the state
// exactly as it was.
package session

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"paisa/internal/core"
)

// Gateway is the persistence surface a session writes through. Both
// gateways in internal/storage satisfy it.
type Gateway interface {
	ListWallets(ctx context.Context, userID string) ([]core.Wallet, error)
	CreateWallet(ctx context.Context, userID string, w core.Wallet) (string, error)
	UpdateWallet(ctx context.Context, userID, id string, patch core.WalletPatch) error
	DeleteWallet(ctx context.Context, userID, id string) error

	ListCategories(ctx context.Context, userID string) ([]core.Category, error)
	CreateCategory(ctx context.Context, userID string, c core.Category) (string, error)
	UpdateCategory(ctx context.Context, userID, id string, patch core.CategoryPatch) error
	DeleteCategory(ctx context.Context, userID, id string) error
	SeedDefaultCategories(ctx context.Context, userID string) error

	ListTransactions(ctx context.Context, userID string) ([]core.Transaction, error)
	CreateTransaction(ctx context.Context, userID string, t core.Transaction) (string, error)
	UpdateTransaction(ctx context.Context, userID, id string, patch core.TransactionPatch) error
	DeleteTransaction(ctx context.Context, userID, id string) error

	GetPreferences(ctx context.Context, userID string) (*core.Preferences, error)
	SetPreferences(ctx context.Context, userID string, p core.Preferences) error

	PurgeUserData(ctx context.Context, userID string) error
}

// Session is safe for concurrent use. One instance per signed-in user.
type Session struct {
	userID  string
	gateway Gateway

	mu           sync.RWMutex
	wallets      []core.Wallet
	categories   []core.Category
	transactions []core.Transaction
	preferences  core.Preferences
	loaded       bool

	onMutate []func()
}

func New(gateway Gateway, userID string) *Session {
	return &Session{
		userID:      userID,
		gateway:     gateway,
		preferences: core.DefaultPreferences(),
	}
}

// UserID returns the owning user's id.
func (s *Session) UserID() string { return s.userID }

// Load pulls the full snapshot from the gateway. It replaces any state
// already held.
func (s *Session) Load(ctx context.Context) error {
	wallets, err := s.gateway.ListWallets(ctx, s.userID)
	if err != nil {
		return fmt.Errorf("load wallets: %w", err)
	}
	categories, err := s.gateway.ListCategories(ctx, s.userID)
	if err != nil {
		return fmt.Errorf("load categories: %w", err)
	}
	transactions, err := s.gateway.ListTransactions(ctx, s.userID)
	if err != nil {
		return fmt.Errorf("load transactions: %w", err)
	}
	prefs, err := s.gateway.GetPreferences(ctx, s.userID)
	if err != nil {
		return fmt.Errorf("load preferences: %w", err)
	}

	s.mu.Lock()
	s.wallets = wallets
	s.categories = categories
	s.transactions = transactions
	if prefs != nil {
		s.preferences = *prefs
	} else {
		s.preferences = core.DefaultPreferences()
	}
	s.loaded = true
	s.mu.Unlock()
	return nil
}

// Loaded reports whether Load has completed at least once.
func (s *Session) Loaded() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loaded
}

// OnMutate registers a hook invoked after every successful mutation.
// The report caches use it for invalidation.
func (s *Session) OnMutate(fn func()) {
	s.mu.Lock()
	s.onMutate = append(s.onMutate, fn)
	s.mu.Unlock()
}

func (s *Session) notify() {
	s.mu.RLock()
	hooks := append([]func(){}, s.onMutate...)
	s.mu.RUnlock()
	for _, fn := range hooks {
		fn()
	}
}

// Wallets returns a copy of the wallet snapshot.
func (s *Session) Wallets() []core.Wallet {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]core.Wallet(nil), s.wallets...)
}

// Categories returns a copy of the category snapshot.
func (s *Session) Categories() []core.Category {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]core.Category(nil), s.categories...)
}

// Transactions returns a copy of the transaction snapshot, newest first.
func (s *Session) Transactions() []core.Transaction {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]core.Transaction(nil), s.transactions...)
}

// Preferences returns the current preferences value.
func (s *Session) Preferences() core.Preferences {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.preferences
}

func (s *Session) CreateWallet(ctx context.Context, w core.Wallet) (core.Wallet, error) {
	if err := w.Validate(); err != nil {
		return core.Wallet{}, err
	}
	w.Icon = core.IconOrDefault(w.Icon)

	id, err := s.gateway.CreateWallet(ctx, s.userID, w)
	if err != nil {
		return core.Wallet{}, err
	}
	created, err := s.reloadWallets(ctx)
	if err != nil {
		return core.Wallet{}, err
	}
	s.notify()
	for _, got := range created {
		if got.ID == id {
			return got, nil
		}
	}
	return core.Wallet{}, fmt.Errorf("wallet %s missing after create", id)
}

func (s *Session) UpdateWallet(ctx context.Context, id string, patch core.WalletPatch) error {
	if patch.Name != nil && strings.TrimSpace(*patch.Name) == "" {
		return core.ErrEmptyName
	}
	if patch.Kind != nil && !patch.Kind.IsValid() {
		return core.ErrInvalidKind
	}
	if err := s.gateway.UpdateWallet(ctx, s.userID, id, patch); err != nil {
		return err
	}
	if _, err := s.reloadWallets(ctx); err != nil {
		return err
	}
	s.notify()
	return nil
}

// DeleteWallet removes the wallet only. Transactions that referenced it
// keep their dangling ids; the engine renders them as "Unknown".
func (s *Session) DeleteWallet(ctx context.Context, id string) error {
	if err := s.gateway.DeleteWallet(ctx, s.userID, id); err != nil {
		return err
	}
	if _, err := s.reloadWallets(ctx); err != nil {
		return err
	}
	s.notify()
	return nil
}

func (s *Session) CreateCategory(ctx context.Context, c core.Category) (core.Category, error) {
	if err := c.Validate(); err != nil {
		return core.Category{}, err
	}
	c.Icon = core.IconOrDefault(c.Icon)

	id, err := s.gateway.CreateCategory(ctx, s.userID, c)
	if err != nil {
		return core.Category{}, err
	}
	created, err := s.reloadCategories(ctx)
	if err != nil {
		return core.Category{}, err
	}
	s.notify()
	for _, got := range created {
		if got.ID == id {
			return got, nil
		}
	}
	return core.Category{}, fmt.Errorf("category %s missing after create", id)
}

func (s *Session) UpdateCategory(ctx context.Context, id string, patch core.CategoryPatch) error {
	if patch.Name != nil && strings.TrimSpace(*patch.Name) == "" {
		return core.ErrEmptyName
	}
	if patch.Kind != nil && !patch.Kind.IsValid() {
		return core.ErrInvalidKind
	}
	if err := s.gateway.UpdateCategory(ctx, s.userID, id, patch); err != nil {
		return err
	}
	if _, err := s.reloadCategories(ctx); err != nil {
		return err
	}
	s.notify()
	return nil
}

// DeleteCategory removes the category; transactions keep the dangling
// reference.
func (s *Session) DeleteCategory(ctx context.Context, id string) error {
	if err := s.gateway.DeleteCategory(ctx, s.userID, id); err != nil {
		return err
	}
	if _, err := s.reloadCategories(ctx); err != nil {
		return err
	}
	s.notify()
	return nil
}

func (s *Session) SeedDefaultCategories(ctx context.Context) error {
	if err := s.gateway.SeedDefaultCategories(ctx, s.userID); err != nil {
		return err
	}
	if _, err := s.reloadCategories(ctx); err != nil {
		return err
	}
	s.notify()
	return nil
}

func (s *Session) CreateTransaction(ctx context.Context, t core.Transaction) (core.Transaction, error) {
	if err := t.Validate(); err != nil {
		return core.Transaction{}, err
	}
	id, err := s.gateway.CreateTransaction(ctx, s.userID, t)
	if err != nil {
		return core.Transaction{}, err
	}
	created, err := s.reloadTransactions(ctx)
	if err != nil {
		return core.Transaction{}, err
	}
	s.notify()
	for _, got := range created {
		if got.ID == id {
			return got, nil
		}
	}
	return core.Transaction{}, fmt.Errorf("transaction %s missing after create", id)
}

func (s *Session) UpdateTransaction(ctx context.Context, id string, patch core.TransactionPatch) error {
	if merged, ok := s.mergedForValidation(id, patch); ok {
		if err := merged.Validate(); err != nil {
			return err
		}
	}
	if err := s.gateway.UpdateTransaction(ctx, s.userID, id, patch); err != nil {
		return err
	}
	if _, err := s.reloadTransactions(ctx); err != nil {
		return err
	}
	s.notify()
	return nil
}

func (s *Session) DeleteTransaction(ctx context.Context, id string) error {
	if err := s.gateway.DeleteTransaction(ctx, s.userID, id); err != nil {
		return err
	}
	if _, err := s.reloadTransactions(ctx); err != nil {
		return err
	}
	s.notify()
	return nil
}

func (s *Session) SetPreferences(ctx context.Context, p core.Preferences) error {
	p = core.NormalizePreferences(p)
	if err := s.gateway.SetPreferences(ctx, s.userID, p); err != nil {
		return err
	}
	s.mu.Lock()
	s.preferences = p
	s.mu.Unlock()
	s.notify()
	return nil
}

func (s *Session) UpdatePreferences(ctx context.Context, patch core.PreferencesPatch) error {
	s.mu.RLock()
	next := s.preferences.ApplyPatch(patch)
	s.mu.RUnlock()
	return s.SetPreferences(ctx, next)
}

// Reset purges all user data and clears the snapshot. Preferences fall
// back to defaults, so onboarding runs again.
func (s *Session) Reset(ctx context.Context) error {
	if err := s.gateway.PurgeUserData(ctx, s.userID); err != nil {
		return err
	}
	s.mu.Lock()
	s.wallets = nil
	s.categories = nil
	s.transactions = nil
	s.preferences = core.DefaultPreferences()
	s.mu.Unlock()
	s.notify()
	return nil
}

// mergedForValidation applies a patch onto the snapshot copy of the
// transaction so invariants can be checked before the write. When the
// transaction is not in the snapshot the gateway decides.
func (s *Session) mergedForValidation(id string, patch core.TransactionPatch) (core.Transaction, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, t := range s.transactions {
		if t.ID != id {
			continue
		}
		if patch.Amount != nil {
			t.Amount = *patch.Amount
		}
		if patch.Kind != nil {
			t.Kind = *patch.Kind
		}
		if patch.WalletID != nil {
			t.WalletID = *patch.WalletID
		}
		if patch.ToWalletID != nil {
			t.ToWalletID = *patch.ToWalletID
		}
		if patch.CategoryID != nil {
			t.CategoryID = *patch.CategoryID
		}
		if patch.Note != nil {
			t.Note = *patch.Note
		}
		if patch.TransferReason != nil {
			t.TransferReason = *patch.TransferReason
		}
		if patch.Date != nil {
			t.Date = *patch.Date
		}
		return t, true
	}
	return core.Transaction{}, false
}

func (s *Session) reloadWallets(ctx context.Context) ([]core.Wallet, error) {
	wallets, err := s.gateway.ListWallets(ctx, s.userID)
	if err != nil {
		return nil, fmt.Errorf("reload wallets: %w", err)
	}
	s.mu.Lock()
	s.wallets = wallets
	s.mu.Unlock()
	return wallets, nil
}

func (s *Session) reloadCategories(ctx context.Context) ([]core.Category, error) {
	categories, err := s.gateway.ListCategories(ctx, s.userID)
	if err != nil {
		return nil, fmt.Errorf("reload categories: %w", err)
	}
	s.mu.Lock()
	s.categories = categories
	s.mu.Unlock()
	return categories, nil
}

func (s *Session) reloadTransactions(ctx context.Context) ([]core.Transaction, error) {
	transactions, err := s.gateway.ListTransactions(ctx, s.userID)
	if err != nil {
		return nil, fmt.Errorf("reload transactions: %w", err)
	}
	s.mu.Lock()
	s.transactions = transactions
	s.mu.Unlock()
	return transactions, nil
}

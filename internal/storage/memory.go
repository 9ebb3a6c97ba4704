package storage

import (
	"context"
	"sort"
	"sync"

	"paisa/internal/core"
)

// MemoryGateway is an in-memory gateway with the same contract as the
// SQLite one. It backs local development and the service test suites.
type MemoryGateway struct {
	mu    sync.RWMutex
	users map[string]User // keyed by email

	wallets      map[string][]core.Wallet      // keyed by user id
	categories   map[string][]core.Category
	transactions map[string][]core.Transaction
	preferences  map[string]core.Preferences
}

func NewMemoryGateway() *MemoryGateway {
	return &MemoryGateway{
		users:        make(map[string]User),
		wallets:      make(map[string][]core.Wallet),
		categories:   make(map[string][]core.Category),
		transactions: make(map[string][]core.Transaction),
		preferences:  make(map[string]core.Preferences),
	}
}

func (g *MemoryGateway) ListWallets(_ context.Context, userID string) ([]core.Wallet, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	out := append([]core.Wallet(nil), g.wallets[userID]...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt < out[j].CreatedAt })
	return out, nil
}

func (g *MemoryGateway) CreateWallet(_ context.Context, userID string, w core.Wallet) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	w.ID = newID()
	if w.CreatedAt == 0 {
		w.CreatedAt = nowMillis()
	}
	g.wallets[userID] = append(g.wallets[userID], w)
	return w.ID, nil
}

func (g *MemoryGateway) UpdateWallet(_ context.Context, userID, id string, patch core.WalletPatch) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	for i, w := range g.wallets[userID] {
		if w.ID != id {
			continue
		}
		if patch.Name != nil {
			w.Name = *patch.Name
		}
		if patch.Kind != nil {
			w.Kind = *patch.Kind
		}
		if patch.Icon != nil {
			w.Icon = *patch.Icon
		}
		if patch.IsDefault != nil {
			w.IsDefault = *patch.IsDefault
		}
		g.wallets[userID][i] = w
		return nil
	}
	return ErrNotFound
}

func (g *MemoryGateway) DeleteWallet(_ context.Context, userID, id string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.wallets[userID] = deleteByID(g.wallets[userID], func(w core.Wallet) string { return w.ID }, id)
	return nil
}

func (g *MemoryGateway) ListCategories(_ context.Context, userID string) ([]core.Category, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	out := append([]core.Category(nil), g.categories[userID]...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (g *MemoryGateway) CreateCategory(_ context.Context, userID string, c core.Category) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	c.ID = newID()
	if c.CreatedAt == 0 {
		c.CreatedAt = nowMillis()
	}
	g.categories[userID] = append(g.categories[userID], c)
	return c.ID, nil
}

func (g *MemoryGateway) UpdateCategory(_ context.Context, userID, id string, patch core.CategoryPatch) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	for i, c := range g.categories[userID] {
		if c.ID != id {
			continue
		}
		if patch.Name != nil {
			c.Name = *patch.Name
		}
		if patch.Kind != nil {
			c.Kind = *patch.Kind
		}
		if patch.Icon != nil {
			c.Icon = *patch.Icon
		}
		if patch.Color != nil {
			c.Color = *patch.Color
		}
		if patch.Budget != nil {
			b := *patch.Budget
			c.Budget = &b
		}
		g.categories[userID][i] = c
		return nil
	}
	return ErrNotFound
}

func (g *MemoryGateway) DeleteCategory(_ context.Context, userID, id string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.categories[userID] = deleteByID(g.categories[userID], func(c core.Category) string { return c.ID }, id)
	return nil
}

// SeedDefaultCategories appends the seed set. Like the durable gateway it
// is not idempotent.
func (g *MemoryGateway) SeedDefaultCategories(_ context.Context, userID string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	createdAt := nowMillis()
	for _, c := range core.DefaultCategories() {
		c.ID = newID()
		c.CreatedAt = createdAt
		g.categories[userID] = append(g.categories[userID], c)
	}
	return nil
}

func (g *MemoryGateway) ListTransactions(_ context.Context, userID string) ([]core.Transaction, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	out := append([]core.Transaction(nil), g.transactions[userID]...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date > out[j].Date })
	return out, nil
}

func (g *MemoryGateway) GetTransaction(_ context.Context, userID, id string) (core.Transaction, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	for _, t := range g.transactions[userID] {
		if t.ID == id {
			return t, nil
		}
	}
	return core.Transaction{}, ErrNotFound
}

func (g *MemoryGateway) CreateTransaction(_ context.Context, userID string, t core.Transaction) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	t.ID = newID()
	if t.CreatedAt == 0 {
		t.CreatedAt = nowMillis()
	}
	if t.Date == 0 {
		t.Date = t.CreatedAt
	}
	g.transactions[userID] = append(g.transactions[userID], t)
	return t.ID, nil
}

func (g *MemoryGateway) UpdateTransaction(_ context.Context, userID, id string, patch core.TransactionPatch) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	for i, t := range g.transactions[userID] {
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
		g.transactions[userID][i] = t
		return nil
	}
	return ErrNotFound
}

func (g *MemoryGateway) DeleteTransaction(_ context.Context, userID, id string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.transactions[userID] = deleteByID(g.transactions[userID], func(t core.Transaction) string { return t.ID }, id)
	return nil
}

func (g *MemoryGateway) GetPreferences(_ context.Context, userID string) (*core.Preferences, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	p, ok := g.preferences[userID]
	if !ok {
		return nil, nil
	}
	p = core.NormalizePreferences(p)
	return &p, nil
}

func (g *MemoryGateway) SetPreferences(_ context.Context, userID string, p core.Preferences) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.preferences[userID] = core.NormalizePreferences(p)
	return nil
}

func (g *MemoryGateway) UpdatePreferences(ctx context.Context, userID string, patch core.PreferencesPatch) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	p, ok := g.preferences[userID]
	if !ok {
		return ErrNotFound
	}
	g.preferences[userID] = p.ApplyPatch(patch)
	return nil
}

func (g *MemoryGateway) PurgeUserData(_ context.Context, userID string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	delete(g.wallets, userID)
	delete(g.categories, userID)
	delete(g.transactions, userID)
	delete(g.preferences, userID)
	return nil
}

func (g *MemoryGateway) CreateUser(_ context.Context, email, passwordHash string) (User, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if _, exists := g.users[email]; exists {
		return User{}, ErrDuplicate
	}
	u := User{ID: newID(), Email: email, PasswordHash: passwordHash, CreatedAt: nowMillis()}
	g.users[email] = u
	return u, nil
}

func (g *MemoryGateway) UserByEmail(_ context.Context, email string) (User, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	u, ok := g.users[email]
	if !ok {
		return User{}, ErrNotFound
	}
	return u, nil
}

func deleteByID[T any](items []T, id func(T) string, target string) []T {
	out := items[:0]
	for _, item := range items {
		if id(item) != target {
			out = append(out, item)
		}
	}
	return out
}

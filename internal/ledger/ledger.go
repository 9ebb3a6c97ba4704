// Package ledger derives balances, period totals and category breakdowns
// from an append-only transaction list. Every function is pure: inputs are
// never mutated, dangling wallet/category references degrade to "Unknown"
// or are dropped, and nothing here performs I/O or panics on bad data.
package ledger

import (
	"sort"

	"paisa/internal/core"
	"paisa/internal/period"
)

// UnknownWallet is the display name substituted for a wallet id that no
// longer resolves.
const UnknownWallet = "Unknown"

// CategoryTotal is one row of a period breakdown.
type CategoryTotal struct {
	CategoryID string
	Name       string
	Color      string
	Icon       string
	Total      core.Money
	Budget     *core.Money
}

// TransactionDetail is a transaction joined to its wallet and category
// context for display. Category fields are empty when the reference does
// not resolve or the kind carries no category.
type TransactionDetail struct {
	core.Transaction
	WalletName    string
	ToWalletName  string
	CategoryName  string
	CategoryIcon  string
	CategoryColor string
}

// WalletBalance pairs a wallet with its derived balance.
type WalletBalance struct {
	Wallet  core.Wallet
	Balance core.Money
}

// Balance folds the signed contribution of every transaction touching the
// wallet: Income and OpeningBalance add, Expense subtracts, an outgoing
// Transfer subtracts and an incoming one adds. Unknown wallet ids yield 0.
func Balance(txns []core.Transaction, walletID string) core.Money {
	var cents int64
	for _, t := range txns {
		if t.WalletID == walletID {
			switch t.Kind {
			case core.TxIncome, core.TxOpeningBalance:
				cents += t.Amount.Cents
			case core.TxExpense, core.TxTransfer:
				cents -= t.Amount.Cents
			}
		}
		if t.ToWalletID == walletID && t.Kind == core.TxTransfer {
			cents += t.Amount.Cents
		}
	}
	return core.Money{Cents: cents}
}

// TotalIncome sums Income transactions dated within r whose source wallet
// is Personal. Transfers and OpeningBalance never count toward period
// totals. An invalid range yields zero.
func TotalIncome(txns []core.Transaction, wallets []core.Wallet, r period.Range) core.Money {
	return totalForKind(txns, wallets, r, core.TxIncome)
}

// TotalExpense is TotalIncome's counterpart for Expense transactions.
func TotalExpense(txns []core.Transaction, wallets []core.Wallet, r period.Range) core.Money {
	return totalForKind(txns, wallets, r, core.TxExpense)
}

func totalForKind(txns []core.Transaction, wallets []core.Wallet, r period.Range, kind core.TransactionKind) core.Money {
	if !r.Valid() {
		return core.Money{}
	}
	personal := personalWalletIDs(wallets)
	var cents int64
	for _, t := range txns {
		if t.Kind != kind {
			continue
		}
		if _, ok := personal[t.WalletID]; !ok {
			continue
		}
		if !r.Contains(t.Date) {
			continue
		}
		cents += t.Amount.Cents
	}
	return core.Money{Cents: cents}
}

// ByCategory groups the period's Personal-wallet transactions of the given
// category kind by category and joins each group to its Category record.
// Groups whose category no longer exists are dropped. Rows are sorted by
// total descending, ties broken by category id ascending so output is
// deterministic per input.
func ByCategory(txns []core.Transaction, wallets []core.Wallet, cats []core.Category, r period.Range, kind core.CategoryKind) []CategoryTotal {
	if !r.Valid() {
		return nil
	}

	txKind := core.TxExpense
	if kind == core.CategoryIncome {
		txKind = core.TxIncome
	}

	personal := personalWalletIDs(wallets)
	totals := make(map[string]int64)
	for _, t := range txns {
		if t.Kind != txKind || t.CategoryID == "" {
			continue
		}
		if _, ok := personal[t.WalletID]; !ok {
			continue
		}
		if !r.Contains(t.Date) {
			continue
		}
		totals[t.CategoryID] += t.Amount.Cents
	}

	byID := make(map[string]core.Category, len(cats))
	for _, c := range cats {
		byID[c.ID] = c
	}

	result := make([]CategoryTotal, 0, len(totals))
	for id, cents := range totals {
		cat, ok := byID[id]
		if !ok {
			continue // dangling reference, not an error
		}
		result = append(result, CategoryTotal{
			CategoryID: cat.ID,
			Name:       cat.Name,
			Color:      cat.Color,
			Icon:       cat.Icon,
			Total:      core.Money{Cents: cents},
			Budget:     cat.Budget,
		})
	}

	sort.Slice(result, func(i, j int) bool {
		if result[i].Total.Cents != result[j].Total.Cents {
			return result[i].Total.Cents > result[j].Total.Cents
		}
		return result[i].CategoryID < result[j].CategoryID
	})
	return result
}

// WithDetails joins every transaction to its wallet and category names,
// preserving the input order. Callers group or sort separately.
func WithDetails(txns []core.Transaction, wallets []core.Wallet, cats []core.Category) []TransactionDetail {
	walletsByID := make(map[string]core.Wallet, len(wallets))
	for _, w := range wallets {
		walletsByID[w.ID] = w
	}
	catsByID := make(map[string]core.Category, len(cats))
	for _, c := range cats {
		catsByID[c.ID] = c
	}

	details := make([]TransactionDetail, len(txns))
	for i, t := range txns {
		d := TransactionDetail{Transaction: t, WalletName: UnknownWallet}
		if w, ok := walletsByID[t.WalletID]; ok {
			d.WalletName = w.Name
		}
		if t.ToWalletID != "" {
			if w, ok := walletsByID[t.ToWalletID]; ok {
				d.ToWalletName = w.Name
			}
		}
		if t.CategoryID != "" {
			if c, ok := catsByID[t.CategoryID]; ok {
				d.CategoryName = c.Name
				d.CategoryIcon = c.Icon
				d.CategoryColor = c.Color
			}
		}
		details[i] = d
	}
	return details
}

// Recent returns the first limit entries of the detail join. The gateway
// lists transactions by event date descending, so "recent" means most
// recent by date, not creation time.
func Recent(txns []core.Transaction, wallets []core.Wallet, cats []core.Category, limit int) []TransactionDetail {
	details := WithDetails(txns, wallets, cats)
	if limit < 0 {
		limit = 0
	}
	if limit > len(details) {
		limit = len(details)
	}
	return details[:limit]
}

// Balances derives the balance of each given wallet.
func Balances(txns []core.Transaction, wallets []core.Wallet) []WalletBalance {
	out := make([]WalletBalance, len(wallets))
	for i, w := range wallets {
		out[i] = WalletBalance{Wallet: w, Balance: Balance(txns, w.ID)}
	}
	return out
}

func personalWalletIDs(wallets []core.Wallet) map[string]struct{} {
	ids := make(map[string]struct{}, len(wallets))
	for _, w := range wallets {
		if w.Kind == core.WalletPersonal {
			ids[w.ID] = struct{}{}
		}
	}
	return ids
}

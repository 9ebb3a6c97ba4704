package http

import (
	"time"

	"paisa/internal/core"
	"paisa/internal/currency"
	"paisa/internal/ledger"
	"paisa/internal/period"
	"paisa/internal/services"
)

// Wire shapes. Amounts travel as integer cents plus a display string
// rendered with the user's currency; incoming amounts are decimal
// strings parsed by core.ParseAmount.

type accountJSON struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

type walletJSON struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Kind         string `json:"kind"`
	Icon         string `json:"icon"`
	IsDefault    bool   `json:"isDefault"`
	CreatedAt    int64  `json:"createdAt"`
	BalanceCents int64  `json:"balanceCents"`
	Balance      string `json:"balance"`
}

type categoryJSON struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Kind        string `json:"kind"`
	Icon        string `json:"icon"`
	Color       string `json:"color"`
	BudgetCents *int64 `json:"budgetCents,omitempty"`
	IsDefault   bool   `json:"isDefault"`
	CreatedAt   int64  `json:"createdAt"`
}

type transactionJSON struct {
	ID             string `json:"id"`
	AmountCents    int64  `json:"amountCents"`
	Amount         string `json:"amount"`
	Kind           string `json:"kind"`
	WalletID       string `json:"walletId"`
	ToWalletID     string `json:"toWalletId,omitempty"`
	CategoryID     string `json:"categoryId,omitempty"`
	Note           string `json:"note,omitempty"`
	TransferReason string `json:"transferReason,omitempty"`
	Date           int64  `json:"date"`
	CreatedAt      int64  `json:"createdAt"`

	DateLabel     string `json:"dateLabel,omitempty"`
	WalletName    string `json:"walletName,omitempty"`
	ToWalletName  string `json:"toWalletName,omitempty"`
	CategoryName  string `json:"categoryName,omitempty"`
	CategoryIcon  string `json:"categoryIcon,omitempty"`
	CategoryColor string `json:"categoryColor,omitempty"`
}

type preferencesJSON struct {
	OnboardingCompleted bool   `json:"onboardingCompleted"`
	Theme               string `json:"theme"`
	DarkMode            bool   `json:"darkMode"`
	Currency            string `json:"currency"`
}

type categoryTotalJSON struct {
	CategoryID  string `json:"categoryId"`
	Name        string `json:"name"`
	Color       string `json:"color"`
	Icon        string `json:"icon"`
	TotalCents  int64  `json:"totalCents"`
	Total       string `json:"total"`
	BudgetCents *int64 `json:"budgetCents,omitempty"`
}

type homeJSON struct {
	TotalBalanceCents int64             `json:"totalBalanceCents"`
	TotalBalance      string            `json:"totalBalance"`
	WalletBalances    []walletJSON      `json:"walletBalances"`
	MonthIncomeCents  int64             `json:"monthIncomeCents"`
	MonthExpenseCents int64             `json:"monthExpenseCents"`
	MonthSavingsCents int64             `json:"monthSavingsCents"`
	Recent            []transactionJSON `json:"recent"`
	Currency          string            `json:"currency"`
}

type analyticsJSON struct {
	MonthIncomeCents  int64               `json:"monthIncomeCents"`
	MonthExpenseCents int64               `json:"monthExpenseCents"`
	WeekIncomeCents   int64               `json:"weekIncomeCents"`
	WeekExpenseCents  int64               `json:"weekExpenseCents"`
	SavingsCents      int64               `json:"savingsCents"`
	BurnRate          float64             `json:"burnRate"`
	ProjectedSpend    float64             `json:"projectedSpend"`
	ExpenseBreakdown  []categoryTotalJSON `json:"expenseBreakdown"`
	IncomeBreakdown   []categoryTotalJSON `json:"incomeBreakdown"`
	TopExpenses       []categoryTotalJSON `json:"topExpenses"`
}

func toWalletJSON(w core.Wallet, balance core.Money, code string) walletJSON {
	return walletJSON{
		ID:           w.ID,
		Name:         w.Name,
		Kind:         string(w.Kind),
		Icon:         w.Icon,
		IsDefault:    w.IsDefault,
		CreatedAt:    w.CreatedAt,
		BalanceCents: balance.Cents,
		Balance:      currency.Format(balance, code),
	}
}

func toCategoryJSON(c core.Category) categoryJSON {
	out := categoryJSON{
		ID:        c.ID,
		Name:      c.Name,
		Kind:      string(c.Kind),
		Icon:      c.Icon,
		Color:     c.Color,
		IsDefault: c.IsDefault,
		CreatedAt: c.CreatedAt,
	}
	if c.Budget != nil {
		cents := c.Budget.Cents
		out.BudgetCents = &cents
	}
	return out
}

func toTransactionJSON(t core.Transaction, code string) transactionJSON {
	return transactionJSON{
		ID:             t.ID,
		AmountCents:    t.Amount.Cents,
		Amount:         currency.Format(t.Amount, code),
		Kind:           string(t.Kind),
		WalletID:       t.WalletID,
		ToWalletID:     t.ToWalletID,
		CategoryID:     t.CategoryID,
		Note:           t.Note,
		TransferReason: t.TransferReason,
		Date:           t.Date,
		CreatedAt:      t.CreatedAt,
	}
}

func toDetailJSON(d ledger.TransactionDetail, code string) transactionJSON {
	out := toTransactionJSON(d.Transaction, code)
	out.DateLabel = period.FormatRelative(d.Date, time.Now())
	out.WalletName = d.WalletName
	out.ToWalletName = d.ToWalletName
	out.CategoryName = d.CategoryName
	out.CategoryIcon = d.CategoryIcon
	out.CategoryColor = d.CategoryColor
	return out
}

func toPreferencesJSON(p core.Preferences) preferencesJSON {
	return preferencesJSON{
		OnboardingCompleted: p.OnboardingCompleted,
		Theme:               string(p.Theme),
		DarkMode:            p.DarkMode,
		Currency:            p.Currency,
	}
}

func toCategoryTotalJSON(totals []ledger.CategoryTotal, code string) []categoryTotalJSON {
	out := make([]categoryTotalJSON, 0, len(totals))
	for _, t := range totals {
		row := categoryTotalJSON{
			CategoryID: t.CategoryID,
			Name:       t.Name,
			Color:      t.Color,
			Icon:       t.Icon,
			TotalCents: t.Total.Cents,
			Total:      currency.Format(t.Total, code),
		}
		if t.Budget != nil {
			cents := t.Budget.Cents
			row.BudgetCents = &cents
		}
		out = append(out, row)
	}
	return out
}

func toHomeJSON(o services.HomeOverview) homeJSON {
	code := o.Currency
	balances := make([]walletJSON, 0, len(o.WalletBalances))
	for _, wb := range o.WalletBalances {
		balances = append(balances, toWalletJSON(wb.Wallet, wb.Balance, code))
	}
	recent := make([]transactionJSON, 0, len(o.Recent))
	for _, d := range o.Recent {
		recent = append(recent, toDetailJSON(d, code))
	}
	return homeJSON{
		TotalBalanceCents: o.TotalBalance.Cents,
		TotalBalance:      currency.Format(o.TotalBalance, code),
		WalletBalances:    balances,
		MonthIncomeCents:  o.MonthIncome.Cents,
		MonthExpenseCents: o.MonthExpense.Cents,
		MonthSavingsCents: o.MonthSavings.Cents,
		Recent:            recent,
		Currency:          code,
	}
}

func toAnalyticsJSON(r services.AnalyticsReport, code string) analyticsJSON {
	return analyticsJSON{
		MonthIncomeCents:  r.MonthIncome.Cents,
		MonthExpenseCents: r.MonthExpense.Cents,
		WeekIncomeCents:   r.WeekIncome.Cents,
		WeekExpenseCents:  r.WeekExpense.Cents,
		SavingsCents:      r.Savings.Cents,
		BurnRate:          r.BurnRate,
		ProjectedSpend:    r.ProjectedSpend,
		ExpenseBreakdown:  toCategoryTotalJSON(r.ExpenseBreakdown, code),
		IncomeBreakdown:   toCategoryTotalJSON(r.IncomeBreakdown, code),
		TopExpenses:       toCategoryTotalJSON(r.TopExpenses, code),
	}
}

package services

import (
	"fmt"
	"sync"
	"time"

	"paisa/internal/cache"
	"paisa/internal/core"
	"paisa/internal/ledger"
	"paisa/internal/period"
	"paisa/internal/session"
)

const recentLimit = 5

// HomeOverview is the home screen payload: balances, the running month's
// totals and the latest activity.
type HomeOverview struct {
	TotalBalance   core.Money             `json:"totalBalance"`
	WalletBalances []ledger.WalletBalance `json:"walletBalances"`
	MonthIncome    core.Money             `json:"monthIncome"`
	MonthExpense   core.Money             `json:"monthExpense"`
	MonthSavings   core.Money             `json:"monthSavings"`
	Recent         []ledger.TransactionDetail `json:"recent"`
	Currency       string                 `json:"currency"`
}

// AnalyticsReport is the analytics screen payload for the current month.
type AnalyticsReport struct {
	MonthIncome      core.Money             `json:"monthIncome"`
	MonthExpense     core.Money             `json:"monthExpense"`
	WeekIncome       core.Money             `json:"weekIncome"`
	WeekExpense      core.Money             `json:"weekExpense"`
	Savings          core.Money             `json:"savings"`
	BurnRate         float64                `json:"burnRate"`
	ProjectedSpend   float64                `json:"projectedSpend"`
	ExpenseBreakdown []ledger.CategoryTotal `json:"expenseBreakdown"`
	IncomeBreakdown  []ledger.CategoryTotal `json:"incomeBreakdown"`
	TopExpenses      []ledger.CategoryTotal `json:"topExpenses"`
}

// Reporter assembles report payloads from a session snapshot. Results are
// memoized per user and month in an LRU; Invalidate bumps the user's
// generation so stale entries simply stop being found.
type Reporter struct {
	clock period.Clock

	homeCache      *cache.LRUCache[HomeOverview]
	analyticsCache *cache.LRUCache[AnalyticsReport]

	mu          sync.Mutex
	generations map[string]uint64
}

func NewReporter(clock period.Clock, cacheSize int, ttl time.Duration) *Reporter {
	if clock == nil {
		clock = period.Now
	}
	return &Reporter{
		clock:          clock,
		homeCache:      cache.NewLRUCache[HomeOverview](cacheSize, ttl),
		analyticsCache: cache.NewLRUCache[AnalyticsReport](cacheSize, ttl),
		generations:    make(map[string]uint64),
	}
}

// RegisterCaches attaches the report caches to a cleanup manager so
// expired entries are evicted instead of lingering until LRU pressure.
func (r *Reporter) RegisterCaches(m *cache.Manager) {
	m.Register(r.homeCache)
	m.Register(r.analyticsCache)
}

// Invalidate drops all cached reports for the user. Sessions call this
// from their mutation hook.
func (r *Reporter) Invalidate(userID string) {
	r.mu.Lock()
	r.generations[userID]++
	r.mu.Unlock()
}

// Home builds the home overview for the current month.
func (r *Reporter) Home(sess *session.Session) HomeOverview {
	key := r.cacheKey(sess.UserID(), "home")
	if cached, ok := r.homeCache.Get(key); ok {
		return cached
	}

	now := r.clock()
	txns := sess.Transactions()
	wallets := sess.Wallets()
	cats := sess.Categories()
	month := period.MonthRange(now)

	var total int64
	balances := ledger.Balances(txns, wallets)
	for _, wb := range balances {
		if wb.Wallet.Kind == core.WalletPersonal {
			total += wb.Balance.Cents
		}
	}

	income := ledger.TotalIncome(txns, wallets, month)
	expense := ledger.TotalExpense(txns, wallets, month)

	overview := HomeOverview{
		TotalBalance:   core.Money{Cents: total},
		WalletBalances: balances,
		MonthIncome:    income,
		MonthExpense:   expense,
		MonthSavings:   ledger.MonthlySavings(income, expense),
		Recent:         ledger.Recent(txns, wallets, cats, recentLimit),
		Currency:       sess.Preferences().Currency,
	}
	r.homeCache.Set(key, overview)
	return overview
}

// Analytics builds the analytics report for the current month and week.
func (r *Reporter) Analytics(sess *session.Session) AnalyticsReport {
	key := r.cacheKey(sess.UserID(), "analytics")
	if cached, ok := r.analyticsCache.Get(key); ok {
		return cached
	}

	now := r.clock()
	txns := sess.Transactions()
	wallets := sess.Wallets()
	cats := sess.Categories()
	month := period.MonthRange(now)
	week := period.WeekRange(now)

	income := ledger.TotalIncome(txns, wallets, month)
	expense := ledger.TotalExpense(txns, wallets, month)
	expenseBreakdown := ledger.ByCategory(txns, wallets, cats, month, core.CategoryExpense)
	burn := ledger.BurnRate(expense, period.DayOfMonth(now))

	report := AnalyticsReport{
		MonthIncome:      income,
		MonthExpense:     expense,
		WeekIncome:       ledger.TotalIncome(txns, wallets, week),
		WeekExpense:      ledger.TotalExpense(txns, wallets, week),
		Savings:          ledger.MonthlySavings(income, expense),
		BurnRate:         burn,
		ProjectedSpend:   ledger.ProjectedSpend(burn, period.DaysInMonth(now)),
		ExpenseBreakdown: expenseBreakdown,
		IncomeBreakdown:  ledger.ByCategory(txns, wallets, cats, month, core.CategoryIncome),
		TopExpenses:      ledger.TopExpenseCategories(expenseBreakdown, 3),
	}
	r.analyticsCache.Set(key, report)
	return report
}

func (r *Reporter) cacheKey(userID, report string) string {
	r.mu.Lock()
	gen := r.generations[userID]
	r.mu.Unlock()
	month := r.clock().Format("2006-01")
	return fmt.Sprintf("%s|%s|%s|%d", userID, report, month, gen)
}

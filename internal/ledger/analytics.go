package ledger

import "paisa/internal/core"

// MonthlySavings is income minus expense for the month; negative when the
// user spent more than they earned.
func MonthlySavings(income, expense core.Money) core.Money {
	return income.Sub(expense)
}

// BurnRate is month-to-date expense divided by the elapsed 1-based day of
// the month, in whole currency units per day. Calendars never produce a
// day below 1, but a non-positive day still yields 0 rather than a
// division fault.
func BurnRate(monthExpense core.Money, dayOfMonth int) float64 {
	if dayOfMonth <= 0 {
		return 0
	}
	return monthExpense.Units() / float64(dayOfMonth)
}

// ProjectedSpend extrapolates the burn rate across the full month.
func ProjectedSpend(burnRate float64, daysInMonth int) float64 {
	if daysInMonth <= 0 {
		return 0
	}
	return burnRate * float64(daysInMonth)
}

// TopExpenseCategories returns the first n rows of an already-sorted
// breakdown.
func TopExpenseCategories(breakdown []CategoryTotal, n int) []CategoryTotal {
	if n < 0 {
		n = 0
	}
	if n > len(breakdown) {
		n = len(breakdown)
	}
	return breakdown[:n]
}

package core

// DefaultCategories returns the seed set inserted once per new account:
// ten expense and six income categories. Callers must not reuse the
// returned slice across users since ids are assigned by the store.
func DefaultCategories() []Category {
	return []Category{
		{Name: "Food & Dining", Kind: CategoryExpense, Icon: "utensils", Color: "#E57373", IsDefault: true},
		{Name: "Transport", Kind: CategoryExpense, Icon: "car", Color: "#64B5F6", IsDefault: true},
		{Name: "Shopping", Kind: CategoryExpense, Icon: "shopping-bag", Color: "#BA68C8", IsDefault: true},
		{Name: "Entertainment", Kind: CategoryExpense, Icon: "film", Color: "#FFB74D", IsDefault: true},
		{Name: "Health", Kind: CategoryExpense, Icon: "heart-pulse", Color: "#81C784", IsDefault: true},
		{Name: "Bills & Utilities", Kind: CategoryExpense, Icon: "receipt", Color: "#90A4AE", IsDefault: true},
		{Name: "Education", Kind: CategoryExpense, Icon: "graduation-cap", Color: "#4DB6AC", IsDefault: true},
		{Name: "Groceries", Kind: CategoryExpense, Icon: "shopping-cart", Color: "#E57373", IsDefault: true},
		{Name: "Personal Care", Kind: CategoryExpense, Icon: "sparkles", Color: "#81C784", IsDefault: true},
		{Name: "Other", Kind: CategoryExpense, Icon: "more-horizontal", Color: "#78909C", IsDefault: true},
		{Name: "Salary", Kind: CategoryIncome, Icon: "briefcase", Color: "#4CAF50", IsDefault: true},
		{Name: "Freelance", Kind: CategoryIncome, Icon: "laptop", Color: "#7986CB", IsDefault: true},
		{Name: "Gift", Kind: CategoryIncome, Icon: "gift", Color: "#F06292", IsDefault: true},
		{Name: "Investment", Kind: CategoryIncome, Icon: "trending-up", Color: "#9575CD", IsDefault: true},
		{Name: "Refund", Kind: CategoryIncome, Icon: "rotate-ccw", Color: "#78909C", IsDefault: true},
		{Name: "Other", Kind: CategoryIncome, Icon: "more-horizontal", Color: "#78909C", IsDefault: true},
	}
}

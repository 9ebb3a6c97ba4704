package core

import (
	"errors"
	"strings"
)

const (
	WalletPersonal  WalletKind = "PERSONAL"
	WalletCustodial WalletKind = "CUSTODIAL"
)

const (
	CategoryIncome  CategoryKind = "INCOME"
	CategoryExpense CategoryKind = "EXPENSE"
)

const (
	TxIncome         TransactionKind = "INCOME"
	TxExpense        TransactionKind = "EXPENSE"
	TxTransfer       TransactionKind = "TRANSFER"
	TxOpeningBalance TransactionKind = "OPENING_BALANCE"
)

type (
	WalletKind      string
	CategoryKind    string
	TransactionKind string

	// Wallet is a named money container. Personal wallets participate in
	// totals and analytics; Custodial wallets are tracked but excluded.
	Wallet struct {
		ID        string
		Name      string
		Kind      WalletKind
		Icon      string
		IsDefault bool
		CreatedAt int64 // unix millis
	}

	// Category tags Income/Expense transactions for budgeting and breakdowns.
	Category struct {
		ID        string
		Name      string
		Kind      CategoryKind
		Icon      string
		Color     string // hex, e.g. #E57373
		Budget    *Money // optional monthly budget
		IsDefault bool
		CreatedAt int64
	}

	// Transaction is a single dated monetary event.
	//
	// ToWalletID is set iff Kind is Transfer. CategoryID is set iff Kind is
	// Income or Expense. Date is the economic event time and user-editable;
	// CreatedAt is the immutable record-creation time. Both are unix millis.
	Transaction struct {
		ID             string
		Amount         Money
		Kind           TransactionKind
		WalletID       string
		ToWalletID     string
		CategoryID     string
		Note           string
		TransferReason string
		Date           int64
		CreatedAt      int64
	}
)

// Partial-update patches. Nil fields are left untouched by the gateway.
type (
	WalletPatch struct {
		Name      *string
		Kind      *WalletKind
		Icon      *string
		IsDefault *bool
	}

	CategoryPatch struct {
		Name   *string
		Kind   *CategoryKind
		Icon   *string
		Color  *string
		Budget *Money
	}

	TransactionPatch struct {
		Amount         *Money
		Kind           *TransactionKind
		WalletID       *string
		ToWalletID     *string
		CategoryID     *string
		Note           *string
		TransferReason *string
		Date           *int64
	}
)

var (
	ErrInvalidAmount            = errors.New("invalid amount")
	ErrMissingWallet            = errors.New("missing wallet")
	ErrMissingCategory          = errors.New("missing category")
	ErrCategoryOnTransfer       = errors.New("transfer cannot carry a category")
	ErrCategoryOnOpeningBalance = errors.New("opening balance cannot carry a category")
	ErrToWalletOnNonTransfer    = errors.New("only a transfer can carry a destination wallet")
	ErrSameWallet               = errors.New("transfer source and destination must differ")
	ErrMissingToWallet          = errors.New("missing destination wallet")
	ErrInvalidKind              = errors.New("invalid kind")
	ErrEmptyName                = errors.New("empty name")
)

func (k WalletKind) IsValid() bool {
	return k == WalletPersonal || k == WalletCustodial
}

func (k CategoryKind) IsValid() bool {
	return k == CategoryIncome || k == CategoryExpense
}

func (k TransactionKind) IsValid() bool {
	switch k {
	case TxIncome, TxExpense, TxTransfer, TxOpeningBalance:
		return true
	default:
		return false
	}
}

func (w Wallet) Validate() error {
	if strings.TrimSpace(w.Name) == "" {
		return ErrEmptyName
	}
	if !w.Kind.IsValid() {
		return ErrInvalidKind
	}
	return nil
}

func (c Category) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return ErrEmptyName
	}
	if !c.Kind.IsValid() {
		return ErrInvalidKind
	}
	if c.Budget != nil {
		if err := c.Budget.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// Validate enforces the write-path invariants before a transaction is
// persisted. The ledger engine assumes stored transactions already pass
// these checks but still tolerates legacy data that does not.
func (t Transaction) Validate() error {
	if err := t.Amount.Validate(); err != nil {
		return err
	}
	if !t.Kind.IsValid() {
		return ErrInvalidKind
	}
	if t.WalletID == "" {
		return ErrMissingWallet
	}
	switch t.Kind {
	case TxTransfer:
		if t.CategoryID != "" {
			return ErrCategoryOnTransfer
		}
		if t.ToWalletID == "" {
			return ErrMissingToWallet
		}
		if t.ToWalletID == t.WalletID {
			return ErrSameWallet
		}
	case TxIncome, TxExpense:
		if t.CategoryID == "" {
			return ErrMissingCategory
		}
		if t.ToWalletID != "" {
			return ErrToWalletOnNonTransfer
		}
	case TxOpeningBalance:
		if t.CategoryID != "" {
			return ErrCategoryOnOpeningBalance
		}
		if t.ToWalletID != "" {
			return ErrToWalletOnNonTransfer
		}
	}
	return nil
}

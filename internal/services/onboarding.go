package services

import (
	"context"
	"fmt"

	"paisa/internal/core"
	"paisa/internal/log"
	"paisa/internal/session"
)

// OnboardingRequest carries the first-run choices. Balances are optional;
// zero means no opening balance transaction for that wallet.
type OnboardingRequest struct {
	BankBalance core.Money
	CashBalance core.Money
}

// Onboarding provisions a fresh account: two Personal wallets, the
// default category set and, when requested, opening balances. It runs
// once; a second call on an onboarded session is a no-op so the seed
// never duplicates.
type Onboarding struct {
	logger *log.Logger
}

func NewOnboarding(logger *log.Logger) *Onboarding {
	return &Onboarding{logger: logger.WithComponent(log.ComponentSession)}
}

func (o *Onboarding) Complete(ctx context.Context, sess *session.Session, req OnboardingRequest) error {
	if sess.Preferences().OnboardingCompleted {
		o.logger.InfoContext(ctx, "Onboarding already completed",
			log.FieldUserID, sess.UserID(), log.FieldOperation, log.OpOnboard)
		return nil
	}

	bank, err := sess.CreateWallet(ctx, core.Wallet{
		Name:      "My Bank/UPI",
		Kind:      core.WalletPersonal,
		Icon:      "credit-card",
		IsDefault: true,
	})
	if err != nil {
		return fmt.Errorf("create bank wallet: %w", err)
	}

	cash, err := sess.CreateWallet(ctx, core.Wallet{
		Name:      "My Cash",
		Kind:      core.WalletPersonal,
		Icon:      "banknote",
		IsDefault: true,
	})
	if err != nil {
		return fmt.Errorf("create cash wallet: %w", err)
	}

	if err := sess.SeedDefaultCategories(ctx); err != nil {
		return fmt.Errorf("seed categories: %w", err)
	}

	if req.BankBalance.Cents > 0 {
		if err := o.openingBalance(ctx, sess, bank.ID, req.BankBalance); err != nil {
			return err
		}
	}
	if req.CashBalance.Cents > 0 {
		if err := o.openingBalance(ctx, sess, cash.ID, req.CashBalance); err != nil {
			return err
		}
	}

	done := true
	if err := sess.UpdatePreferences(ctx, core.PreferencesPatch{OnboardingCompleted: &done}); err != nil {
		return fmt.Errorf("mark onboarding complete: %w", err)
	}

	o.logger.InfoContext(ctx, "Onboarding completed",
		log.FieldUserID, sess.UserID(), log.FieldOperation, log.OpOnboard)
	return nil
}

func (o *Onboarding) openingBalance(ctx context.Context, sess *session.Session, walletID string, amount core.Money) error {
	_, err := sess.CreateTransaction(ctx, core.Transaction{
		Amount:   amount,
		Kind:     core.TxOpeningBalance,
		WalletID: walletID,
		Note:     "Opening balance",
	})
	if err != nil {
		return fmt.Errorf("opening balance for wallet %s: %w", walletID, err)
	}
	return nil
}

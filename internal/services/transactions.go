// Package services orchestrates the write paths: transaction recording,
// first-run onboarding and report assembly over a loaded session.
package services

import (
	"context"
	"fmt"

	"paisa/internal/amqp"
	"paisa/internal/core"
	"paisa/internal/log"
	"paisa/internal/session"
)

// TransactionService records, amends and removes transactions through a
// session and mirrors each mutation to the sync exchange. Publishing is
// best-effort: the local write is the source of truth and a broker
// outage never fails the request.
type TransactionService struct {
	publisher  Publisher
	logger     *log.Logger
	structured *log.StructuredLogger
}

func NewTransactionService(publisher Publisher, logger *log.Logger) *TransactionService {
	ledgerLogger := logger.WithComponent(log.ComponentLedger)
	return &TransactionService{
		publisher:  publisher,
		logger:     ledgerLogger,
		structured: log.NewStructuredLogger(ledgerLogger),
	}
}

// Create validates and records a transaction.
func (s *TransactionService) Create(ctx context.Context, sess *session.Session, t core.Transaction) (core.Transaction, error) {
	created, err := sess.CreateTransaction(ctx, t)
	if err != nil {
		return core.Transaction{}, fmt.Errorf("create transaction: %w", err)
	}

	s.structured.LogTransactionCreated(ctx, created.ID, string(created.Kind),
		created.Amount.Cents, created.WalletID)

	s.publish(ctx, sess.UserID(), created.ID, amqp.ActionUpsert)
	return created, nil
}

// Update applies a partial edit.
func (s *TransactionService) Update(ctx context.Context, sess *session.Session, id string, patch core.TransactionPatch) error {
	if err := sess.UpdateTransaction(ctx, id, patch); err != nil {
		return fmt.Errorf("update transaction: %w", err)
	}
	s.publish(ctx, sess.UserID(), id, amqp.ActionUpsert)
	return nil
}

// Delete removes a transaction.
func (s *TransactionService) Delete(ctx context.Context, sess *session.Session, id string) error {
	if err := sess.DeleteTransaction(ctx, id); err != nil {
		return fmt.Errorf("delete transaction: %w", err)
	}
	s.publish(ctx, sess.UserID(), id, amqp.ActionDelete)
	return nil
}

func (s *TransactionService) publish(ctx context.Context, userID, id, action string) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.PublishTransactionSync(ctx, userID, id, action); err != nil {
		s.logger.ErrorContext(ctx, "Failed to publish sync message",
			log.FieldTransactionID, id,
			log.FieldOperation, log.OpSync,
			log.FieldError, err.Error())
	}
}

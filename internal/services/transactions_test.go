package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"paisa/internal/core"
	"paisa/internal/log"
	"paisa/internal/session"
	"paisa/internal/storage"
)

type recordingPublisher struct {
	calls []string
	fail  bool
}

func (p *recordingPublisher) PublishTransactionSync(_ context.Context, _, id, action string) error {
	if p.fail {
		return errors.New("broker down")
	}
	p.calls = append(p.calls, action+":"+id)
	return nil
}

func newLoadedSession(t *testing.T) *session.Session {
	t.Helper()
	s := session.New(storage.NewMemoryGateway(), "u1")
	require.NoError(t, s.Load(context.Background()))
	return s
}

func testLogger() *log.Logger {
	return log.New(log.DefaultConfig())
}

func TestCreatePublishesUpsert(t *testing.T) {
	pub := &recordingPublisher{}
	svc := NewTransactionService(pub, testLogger())
	sess := newLoadedSession(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, sess, core.Transaction{
		Amount: core.Money{Cents: 100}, Kind: core.TxExpense, WalletID: "w", CategoryID: "c",
	})
	require.NoError(t, err)
	require.Len(t, pub.calls, 1)
	require.Equal(t, "upsert:"+created.ID, pub.calls[0])
}

func TestCreateInvalidDoesNotPublish(t *testing.T) {
	pub := &recordingPublisher{}
	svc := NewTransactionService(pub, testLogger())
	sess := newLoadedSession(t)

	_, err := svc.Create(context.Background(), sess, core.Transaction{
		Amount: core.Money{Cents: 100}, Kind: core.TxExpense, WalletID: "w",
	})
	require.ErrorIs(t, err, core.ErrMissingCategory)
	require.Empty(t, pub.calls)
	require.Empty(t, sess.Transactions())
}

func TestBrokerFailureDoesNotFailCreate(t *testing.T) {
	pub := &recordingPublisher{fail: true}
	svc := NewTransactionService(pub, testLogger())
	sess := newLoadedSession(t)

	_, err := svc.Create(context.Background(), sess, core.Transaction{
		Amount: core.Money{Cents: 100}, Kind: core.TxExpense, WalletID: "w", CategoryID: "c",
	})
	require.NoError(t, err)
	require.Len(t, sess.Transactions(), 1)
}

func TestNilPublisherIsAllowed(t *testing.T) {
	svc := NewTransactionService(nil, testLogger())
	sess := newLoadedSession(t)

	_, err := svc.Create(context.Background(), sess, core.Transaction{
		Amount: core.Money{Cents: 100}, Kind: core.TxIncome, WalletID: "w", CategoryID: "c",
	})
	require.NoError(t, err)
}

func TestUpdateAndDeletePublish(t *testing.T) {
	pub := &recordingPublisher{}
	svc := NewTransactionService(pub, testLogger())
	sess := newLoadedSession(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, sess, core.Transaction{
		Amount: core.Money{Cents: 100}, Kind: core.TxExpense, WalletID: "w", CategoryID: "c",
	})
	require.NoError(t, err)

	amount := core.Money{Cents: 200}
	require.NoError(t, svc.Update(ctx, sess, created.ID, core.TransactionPatch{Amount: &amount}))
	require.NoError(t, svc.Delete(ctx, sess, created.ID))

	require.Equal(t, []string{
		"upsert:" + created.ID,
		"upsert:" + created.ID,
		"delete:" + created.ID,
	}, pub.calls)
	require.Empty(t, sess.Transactions())
}

package services

import (
	"context"
)

// Publisher emits sync messages after writes. Implementations must not
// block request handling; failures are logged and swallowed upstream.
type Publisher interface {
	PublishTransactionSync(ctx context.Context, userID, transactionID, action string) error
}

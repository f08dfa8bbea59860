package payment

import (
	"context"

	"cinebook/internal/domain/booking"
)

// Authorizer is the payment-gateway boundary. The local implementation is
// a stand-in: card format has already been validated by NewCardDetails, so
// authorization always succeeds with a fresh transaction id. A real gateway
// integration replaces this implementation; callers must never hold a seat
// transaction open across the call when it does.
type Authorizer interface {
	Authorize(ctx context.Context, card CardDetails, amount booking.Money) (TransactionID, error)
}

type LocalAuthorizer struct{}

func NewLocalAuthorizer() *LocalAuthorizer {
	return &LocalAuthorizer{}
}

func (a *LocalAuthorizer) Authorize(_ context.Context, _ CardDetails, _ booking.Money) (TransactionID, error) {
	return NewTransactionID(), nil
}

package gateway

import (
	"context"
	"errors"
)

// ErrDeclined is returned by Sale when the gateway refuses the charge.
// Everything else coming out of an implementation is an infrastructure error.
var ErrDeclined = errors.New("payment declined")

// PaymentGateway is the boundary to the hosted payment service. Internals of
// the service are opaque to this application: it only exchanges a client
// token for the SPA drop-in and submits sales against nonces.
type PaymentGateway interface {
	ClientToken(ctx context.Context) (string, error)
	// Sale charges amountCents against the payment method nonce and returns
	// the gateway transaction id.
	Sale(ctx context.Context, amountCents int64, nonce string) (string, error)
}

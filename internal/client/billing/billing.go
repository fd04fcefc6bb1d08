// Package billing defines the contract with the external payment provider.
//
// The flow is an opaque one-shot: Checkout either resolves successfully (the
// caller then grants the premium entitlement) or reports failure or user
// cancellation, in which case no state changes. Downgrade and expiry are the
// provider's problem; the entitlement is one-directional here.
package billing

import (
	"context"
	"errors"
)

// ErrCheckoutCancelled reports that the user abandoned the payment flow.
// Not a fault; the caller simply leaves the profile untouched.
var ErrCheckoutCancelled = errors.New("checkout cancelled")

// Checkout runs one payment flow to completion.
type Checkout interface {
	// Run blocks until the flow resolves. nil means payment succeeded.
	Run(ctx context.Context) error
}

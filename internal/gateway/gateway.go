// Package gateway translates provider-specific webhook payloads into the
// canonical notification consumed by the checkout service. Each adapter
// verifies payload authenticity and maps the provider's status vocabulary
// onto succeeded/failed; everything else about the provider stays here.
package gateway

import (
	"context"
	"errors"
	"net/http"
)

type Type string

const (
	TypeStripe   Type = "stripe"
	TypeJazzCash Type = "jazzcash"
)

func ParseType(s string) (Type, bool) {
	switch Type(s) {
	case TypeStripe, TypeJazzCash:
		return Type(s), true
	}
	return "", false
}

type Outcome string

const (
	OutcomeSucceeded Outcome = "succeeded"
	OutcomeFailed    Outcome = "failed"
)

// Notification is the canonical (correlationId, outcome, gatewayType) tuple.
// Amount is the provider-reported amount in minor units, 0 when the
// provider does not echo one back.
type Notification struct {
	Gateway       Type
	CorrelationID string
	Outcome       Outcome
	Amount        int64
}

var (
	// ErrBadSignature: the payload failed authenticity verification.
	ErrBadSignature = errors.New("gateway: bad signature")
	// ErrIgnoredEvent: authentic payload carrying an event type that does
	// not map to a payment outcome. Callers should acknowledge and drop.
	ErrIgnoredEvent = errors.New("gateway: event ignored")
)

// Adapter parses one provider's webhook wire format.
type Adapter interface {
	Type() Type
	Parse(body []byte, header http.Header) (*Notification, error)
}

// StatusChecker polls a provider for the current state of a payment.
// Used by the reconciliation sweep for attempts stuck pending.
type StatusChecker interface {
	Type() Type
	// Check returns the outcome and whether the provider considers the
	// payment final. Non-final payments are left alone.
	Check(ctx context.Context, correlationID string) (Outcome, bool, error)
}

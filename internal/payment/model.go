// Package payment holds payment attempt records and their persistence.
// One Detail row is one attempt to collect an order's total through a
// specific gateway; an order may accumulate several after failures.
package payment

import "time"

type Status string

const (
	StatusPending  Status = "pending"
	StatusPaid     Status = "paid"
	StatusFailed   Status = "failed"
	StatusRefunded Status = "refunded"
)

// IsTerminal reports whether the attempt can no longer transition.
// A failed attempt is terminal for itself; retries create a new Detail.
func (s Status) IsTerminal() bool {
	return s == StatusPaid || s == StatusFailed || s == StatusRefunded
}

type Method string

const (
	MethodCard   Method = "card"
	MethodWallet Method = "wallet"
	MethodCash   Method = "cash"
)

func ParseMethod(s string) (Method, bool) {
	switch Method(s) {
	case MethodCard, MethodWallet, MethodCash:
		return Method(s), true
	}
	return "", false
}

type Detail struct {
	ID      string `json:"id"`
	OrderID string `json:"order_id"`
	Amount  int64  `json:"amount"`
	Method  Method `json:"method"`
	Status  Status `json:"status"`
	// Gateway correlation: at most one of these is populated, matching
	// the gateway the attempt was routed to.
	Gateway         string    `json:"gateway,omitempty"`
	StripeSessionID string    `json:"stripe_session_id,omitempty"`
	JazzCashTxnID   string    `json:"jazzcash_txn_id,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// CorrelationID returns the populated gateway reference, if any.
func (d *Detail) CorrelationID() string {
	if d.StripeSessionID != "" {
		return d.StripeSessionID
	}
	return d.JazzCashTxnID
}

package order

import "github.com/storefront-labs/orderflow/internal/payment"

// DeriveStatus computes the order status implied by the ordered history of
// its payment attempts. It is the single source of truth for automatic
// transitions: nothing else may move an order between pending, paid and
// failed once an attempt exists. Pure, no I/O.
//
// Rules:
//   - cancelled and fulfilled are frozen
//   - the first paid attempt wins; later attempts never change the result
//   - a failed most-recent attempt marks the order failed
//   - an in-flight (pending) retry leaves the current status untouched,
//     so a failed order stays failed until the retry resolves
func DeriveStatus(current Status, attempts []payment.Status) Status {
	if current.IsTerminal() {
		return current
	}

	for _, a := range attempts {
		if a == payment.StatusPaid || a == payment.StatusRefunded {
			return StatusPaid
		}
	}
	if current == StatusPaid {
		return StatusPaid
	}

	if len(attempts) == 0 {
		return current
	}
	switch attempts[len(attempts)-1] {
	case payment.StatusFailed:
		return StatusFailed
	default:
		// Latest attempt still pending: awaiting an outcome.
		return current
	}
}

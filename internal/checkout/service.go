// Package checkout is the order lifecycle manager: it owns every mutation
// of orders and payment details, reconciling order status with gateway
// outcomes. The HTTP layer and the reconciliation sweep only call in here.
package checkout

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/google/uuid"

	"github.com/storefront-labs/orderflow/internal/apperr"
	"github.com/storefront-labs/orderflow/internal/gateway"
	"github.com/storefront-labs/orderflow/internal/order"
	"github.com/storefront-labs/orderflow/internal/payment"
)

// casRetries bounds optimistic-update retries before surfacing
// apperr.ErrConcurrency to the caller.
const casRetries = 3

type CustomerInfo struct {
	Name    string
	Email   string
	Phone   string
	Address string
}

type Service struct {
	orders   order.Repository
	payments payment.Repository
}

func NewService(orders order.Repository, payments payment.Repository) *Service {
	return &Service{orders: orders, payments: payments}
}

// CreateOrder persists a new pending order with a globally unique,
// human-facing order number.
func (s *Service) CreateOrder(ctx context.Context, info CustomerInfo, total int64) (*order.Order, error) {
	fields := map[string]string{}
	if strings.TrimSpace(info.Name) == "" {
		fields["name"] = "required"
	}
	if strings.TrimSpace(info.Email) == "" {
		fields["email"] = "required"
	}
	if strings.TrimSpace(info.Phone) == "" {
		fields["phone"] = "required"
	}
	if strings.TrimSpace(info.Address) == "" {
		fields["address"] = "required"
	}
	if total < 0 {
		fields["total"] = "must be non-negative"
	}
	if len(fields) > 0 {
		return nil, &apperr.ValidationError{Fields: fields}
	}

	o := &order.Order{
		ID:      uuid.NewString(),
		Total:   total,
		Name:    info.Name,
		Email:   info.Email,
		Phone:   info.Phone,
		Address: info.Address,
		Status:  order.StatusPending,
	}
	for attempt := 0; ; attempt++ {
		o.OrderNumber = newOrderNumber()
		err := s.orders.Create(ctx, o)
		if err == nil {
			return o, nil
		}
		if errors.Is(err, order.ErrDuplicateNumber) && attempt < casRetries {
			continue
		}
		return nil, err
	}
}

func (s *Service) GetOrder(ctx context.Context, id string) (*order.Order, error) {
	o, err := s.orders.GetByID(ctx, id)
	if errors.Is(err, order.ErrNotFound) {
		return nil, fmt.Errorf("order %s: %w", id, apperr.ErrNotFound)
	}
	return o, err
}

func (s *Service) ListOrders(ctx context.Context, f order.Filter) ([]order.Order, error) {
	return s.orders.List(ctx, f)
}

// ListAttempts returns the payment history of an order, oldest first.
func (s *Service) ListAttempts(ctx context.Context, orderID string) ([]payment.Detail, error) {
	if _, err := s.GetOrder(ctx, orderID); err != nil {
		return nil, err
	}
	return s.payments.ListByOrder(ctx, orderID)
}

// StartPaymentAttempt records a new pending attempt against an order and
// allocates the gateway correlation reference for the chosen method.
func (s *Service) StartPaymentAttempt(ctx context.Context, orderID string, amount int64, method payment.Method) (*payment.Detail, error) {
	o, err := s.GetOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if o.Status.IsTerminal() || o.Status == order.StatusPaid {
		return nil, fmt.Errorf("order %s is %s: %w", orderID, o.Status, apperr.ErrConflict)
	}
	if amount != o.Total {
		return nil, apperr.Validation("amount",
			fmt.Sprintf("must equal order total %d, got %d", o.Total, amount))
	}

	d := &payment.Detail{
		ID:      uuid.NewString(),
		OrderID: o.ID,
		Amount:  amount,
		Method:  method,
		Status:  payment.StatusPending,
	}
	switch method {
	case payment.MethodCard:
		d.Gateway = string(gateway.TypeStripe)
		d.StripeSessionID = "cs_" + strings.ReplaceAll(uuid.NewString(), "-", "")
	case payment.MethodWallet:
		d.Gateway = string(gateway.TypeJazzCash)
		d.JazzCashTxnID = "T" + randomToken(16)
	case payment.MethodCash:
		// Collected on delivery; no gateway involved.
	default:
		return nil, apperr.Validation("method", fmt.Sprintf("unknown payment method %q", method))
	}

	if err := s.payments.Create(ctx, d); err != nil {
		return nil, err
	}
	return d, nil
}

// RecordNotification is the webhook entry point: it cross-checks the
// provider-reported amount (when echoed back) before applying the outcome.
func (s *Service) RecordNotification(ctx context.Context, n *gateway.Notification) error {
	if n.Amount > 0 {
		d, err := s.payments.GetByCorrelation(ctx, n.Gateway, n.CorrelationID)
		if errors.Is(err, payment.ErrNotFound) {
			return fmt.Errorf("correlation %s/%s: %w", n.Gateway, n.CorrelationID, apperr.ErrNotFound)
		}
		if err != nil {
			return err
		}
		if d.Amount != n.Amount {
			return apperr.Validation("amount",
				fmt.Sprintf("gateway reported %d, attempt expects %d", n.Amount, d.Amount))
		}
	}
	return s.RecordGatewayOutcome(ctx, n.CorrelationID, n.Outcome, n.Gateway)
}

// RecordGatewayOutcome applies a gateway's terminal verdict to the attempt
// matched by (correlationID, gw). Redeliveries of an already-applied
// outcome are absorbed silently; gateways are allowed to resend.
func (s *Service) RecordGatewayOutcome(ctx context.Context, correlationID string, outcome gateway.Outcome, gw gateway.Type) error {
	d, err := s.payments.GetByCorrelation(ctx, gw, correlationID)
	if errors.Is(err, payment.ErrNotFound) {
		return fmt.Errorf("correlation %s/%s: %w", gw, correlationID, apperr.ErrNotFound)
	}
	if err != nil {
		return err
	}

	o, err := s.GetOrder(ctx, d.OrderID)
	if err != nil {
		return err
	}
	if o.Status == order.StatusCancelled {
		return fmt.Errorf("order %s is cancelled: %w", o.ID, apperr.ErrConflict)
	}

	target := payment.StatusFailed
	if outcome == gateway.OutcomeSucceeded {
		target = payment.StatusPaid
	}

	for attempt := 0; ; attempt++ {
		switch d.Status {
		case payment.StatusPaid, payment.StatusRefunded:
			// Money already moved; a redelivery changes nothing.
			return nil
		case payment.StatusFailed:
			if target == payment.StatusFailed {
				return nil
			}
			// A success report for an attempt we recorded as failed:
			// the retry path (a fresh attempt) is the only way forward.
			return fmt.Errorf("attempt %s already failed: %w", d.ID, apperr.ErrConflict)
		}

		err = s.payments.UpdateStatus(ctx, d.ID, payment.StatusPending, target)
		if err == nil {
			break
		}
		if errors.Is(err, payment.ErrStale) && attempt < casRetries {
			// Someone else transitioned the row; re-read and re-evaluate,
			// most likely turning this call into an idempotent no-op.
			if d, err = s.payments.GetByID(ctx, d.ID); err != nil {
				return err
			}
			continue
		}
		if errors.Is(err, payment.ErrStale) {
			return fmt.Errorf("attempt %s: %w", d.ID, apperr.ErrConcurrency)
		}
		return err
	}

	return s.syncOrderStatus(ctx, d.OrderID)
}

// Cancel marks an order cancelled. Only pending/failed orders qualify;
// cancelled is terminal and blocks all later gateway outcomes.
func (s *Service) Cancel(ctx context.Context, orderID string) error {
	return s.adminTransition(ctx, orderID, func(st order.Status) bool { return st.Cancellable() }, order.StatusCancelled)
}

// MarkFulfilled records shipment of a paid order. Driven by fulfillment,
// not by payment reconciliation.
func (s *Service) MarkFulfilled(ctx context.Context, orderID string) error {
	return s.adminTransition(ctx, orderID, func(st order.Status) bool { return st == order.StatusPaid }, order.StatusFulfilled)
}

func (s *Service) adminTransition(ctx context.Context, orderID string, ok func(order.Status) bool, to order.Status) error {
	for attempt := 0; attempt <= casRetries; attempt++ {
		o, err := s.GetOrder(ctx, orderID)
		if err != nil {
			return err
		}
		if o.Status == to {
			return nil
		}
		if !ok(o.Status) {
			return fmt.Errorf("order %s is %s: %w", orderID, o.Status, apperr.ErrConflict)
		}
		err = s.orders.UpdateStatus(ctx, orderID, o.Status, to)
		if err == nil {
			return nil
		}
		if !errors.Is(err, order.ErrStale) {
			return err
		}
	}
	return fmt.Errorf("order %s: %w", orderID, apperr.ErrConcurrency)
}

// syncOrderStatus re-derives the order status from the full attempt
// history and applies it with a bounded compare-and-set loop.
func (s *Service) syncOrderStatus(ctx context.Context, orderID string) error {
	for attempt := 0; attempt <= casRetries; attempt++ {
		o, err := s.orders.GetByID(ctx, orderID)
		if err != nil {
			return err
		}
		attempts, err := s.payments.ListByOrder(ctx, orderID)
		if err != nil {
			return err
		}
		statuses := make([]payment.Status, len(attempts))
		for i, a := range attempts {
			statuses[i] = a.Status
		}

		next := order.DeriveStatus(o.Status, statuses)
		if next == o.Status {
			return nil
		}
		err = s.orders.UpdateStatus(ctx, orderID, o.Status, next)
		if err == nil {
			log.Printf("[checkout] order %s %s -> %s", orderID, o.Status, next)
			return nil
		}
		if !errors.Is(err, order.ErrStale) {
			return err
		}
	}
	return fmt.Errorf("order %s: %w", orderID, apperr.ErrConcurrency)
}

func newOrderNumber() string {
	return "ORD-" + randomToken(10)
}

// randomToken returns n characters from an unambiguous uppercase alphabet.
func randomToken(n int) string {
	const alphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		// crypto/rand never fails on supported platforms
		panic(err)
	}
	for i := range b {
		b[i] = alphabet[int(b[i])%len(alphabet)]
	}
	return string(b)
}

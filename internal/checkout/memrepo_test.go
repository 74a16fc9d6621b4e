package checkout

import (
	"context"
	"sync"
	"time"

	"github.com/storefront-labs/orderflow/internal/gateway"
	"github.com/storefront-labs/orderflow/internal/order"
	"github.com/storefront-labs/orderflow/internal/payment"
)

// In-memory repos implementing the repository interfaces. A single mutex
// per repo gives the same linearized compare-and-set behavior the SQL
// UPDATE ... WHERE status=$from provides.

type memOrders struct {
	mu      sync.Mutex
	byID    map[string]*order.Order
	numbers map[string]bool
	seq     []string
}

func newMemOrders() *memOrders {
	return &memOrders{byID: map[string]*order.Order{}, numbers: map[string]bool{}}
}

func (m *memOrders) Create(_ context.Context, o *order.Order) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.numbers[o.OrderNumber] {
		return order.ErrDuplicateNumber
	}
	now := time.Now()
	o.CreatedAt, o.UpdatedAt = now, now
	cp := *o
	m.byID[o.ID] = &cp
	m.numbers[o.OrderNumber] = true
	m.seq = append(m.seq, o.ID)
	return nil
}

func (m *memOrders) GetByID(_ context.Context, id string) (*order.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	o, ok := m.byID[id]
	if !ok {
		return nil, order.ErrNotFound
	}
	cp := *o
	return &cp, nil
}

func (m *memOrders) List(_ context.Context, f order.Filter) ([]order.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []order.Order
	for _, id := range m.seq {
		o := m.byID[id]
		if f.Status != "" && o.Status != f.Status {
			continue
		}
		out = append(out, *o)
	}
	return out, nil
}

func (m *memOrders) UpdateStatus(_ context.Context, id string, from, to order.Status) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	o, ok := m.byID[id]
	if !ok {
		return order.ErrNotFound
	}
	if o.Status != from {
		return order.ErrStale
	}
	o.Status = to
	o.UpdatedAt = time.Now()
	return nil
}

type memPayments struct {
	mu   sync.Mutex
	byID map[string]*payment.Detail
	seq  []string
}

func newMemPayments() *memPayments {
	return &memPayments{byID: map[string]*payment.Detail{}}
}

func (m *memPayments) Create(_ context.Context, d *payment.Detail) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	now := time.Now()
	d.CreatedAt, d.UpdatedAt = now, now
	cp := *d
	m.byID[d.ID] = &cp
	m.seq = append(m.seq, d.ID)
	return nil
}

func (m *memPayments) GetByID(_ context.Context, id string) (*payment.Detail, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	d, ok := m.byID[id]
	if !ok {
		return nil, payment.ErrNotFound
	}
	cp := *d
	return &cp, nil
}

func (m *memPayments) GetByCorrelation(_ context.Context, gw gateway.Type, correlationID string) (*payment.Detail, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, id := range m.seq {
		d := m.byID[id]
		switch gw {
		case gateway.TypeStripe:
			if d.StripeSessionID == correlationID && correlationID != "" {
				cp := *d
				return &cp, nil
			}
		case gateway.TypeJazzCash:
			if d.JazzCashTxnID == correlationID && correlationID != "" {
				cp := *d
				return &cp, nil
			}
		}
	}
	return nil, payment.ErrNotFound
}

func (m *memPayments) ListByOrder(_ context.Context, orderID string) ([]payment.Detail, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []payment.Detail
	for _, id := range m.seq {
		if d := m.byID[id]; d.OrderID == orderID {
			out = append(out, *d)
		}
	}
	return out, nil
}

func (m *memPayments) UpdateStatus(_ context.Context, id string, from, to payment.Status) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	d, ok := m.byID[id]
	if !ok {
		return payment.ErrNotFound
	}
	if d.Status != from {
		return payment.ErrStale
	}
	d.Status = to
	d.UpdatedAt = time.Now()
	return nil
}

func (m *memPayments) ListPendingBefore(_ context.Context, cutoff time.Time, limit int) ([]payment.Detail, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []payment.Detail
	for _, id := range m.seq {
		d := m.byID[id]
		if d.Status == payment.StatusPending && d.CreatedAt.Before(cutoff) {
			out = append(out, *d)
			if limit > 0 && len(out) == limit {
				break
			}
		}
	}
	return out, nil
}

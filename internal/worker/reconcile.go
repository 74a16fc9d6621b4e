// Package worker runs the optional reconciliation sweep: payment attempts
// that never received a gateway outcome are polled against the provider
// and, when the provider reports a final state, resolved through the
// normal outcome path. Idempotency there makes re-sweeping safe.
package worker

import (
	"context"
	"errors"
	"log"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/storefront-labs/orderflow/internal/apperr"
	"github.com/storefront-labs/orderflow/internal/gateway"
	"github.com/storefront-labs/orderflow/internal/payment"
)

const sweepBatch = 100

// OutcomeRecorder is the slice of the checkout service the sweep needs.
type OutcomeRecorder interface {
	RecordGatewayOutcome(ctx context.Context, correlationID string, outcome gateway.Outcome, gw gateway.Type) error
}

type Sweeper struct {
	svc      OutcomeRecorder
	payments payment.Repository
	checkers map[gateway.Type]gateway.StatusChecker
	interval time.Duration
	// stuckAfter is how long an attempt may sit pending before we ask
	// the provider about it.
	stuckAfter time.Duration
}

func NewSweeper(svc OutcomeRecorder, payments payment.Repository, checkers []gateway.StatusChecker, interval, stuckAfter time.Duration) *Sweeper {
	byType := make(map[gateway.Type]gateway.StatusChecker, len(checkers))
	for _, c := range checkers {
		byType[c.Type()] = c
	}
	return &Sweeper{
		svc:        svc,
		payments:   payments,
		checkers:   byType,
		interval:   interval,
		stuckAfter: stuckAfter,
	}
}

func (s *Sweeper) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	log.Printf("[sweep] started (interval=%s stuck_after=%s)", s.interval, s.stuckAfter)
	for {
		select {
		case <-ctx.Done():
			log.Println("[sweep] stopped")
			return
		case <-ticker.C:
			if err := s.sweep(ctx); err != nil {
				log.Printf("[sweep] pass failed: %v", err)
			}
		}
	}
}

func (s *Sweeper) sweep(ctx context.Context) error {
	cutoff := time.Now().Add(-s.stuckAfter)
	stuck, err := s.payments.ListPendingBefore(ctx, cutoff, sweepBatch)
	if err != nil {
		return err
	}
	if len(stuck) == 0 {
		return nil
	}
	log.Printf("[sweep] %d attempts pending since before %s", len(stuck), cutoff.Format(time.RFC3339))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(4)
	for _, d := range stuck {
		g.Go(func() error {
			s.resolve(ctx, d)
			return nil
		})
	}
	return g.Wait()
}

func (s *Sweeper) resolve(ctx context.Context, d payment.Detail) {
	checker, ok := s.checkers[gateway.Type(d.Gateway)]
	if !ok {
		// Cash attempts and unconfigured gateways have nothing to poll.
		return
	}
	corr := d.CorrelationID()
	if corr == "" {
		return
	}

	outcome, final, err := checker.Check(ctx, corr)
	if err != nil {
		log.Printf("[sweep] check %s/%s: %v", d.Gateway, corr, err)
		return
	}
	if !final {
		return
	}

	err = s.svc.RecordGatewayOutcome(ctx, corr, outcome, gateway.Type(d.Gateway))
	switch {
	case err == nil:
		log.Printf("[sweep] resolved %s/%s -> %s", d.Gateway, corr, outcome)
	case errors.Is(err, apperr.ErrConflict):
		// Order was cancelled underneath us; leave it for support.
		log.Printf("[sweep] skipped %s/%s: %v", d.Gateway, corr, err)
	default:
		log.Printf("[sweep] resolve %s/%s: %v", d.Gateway, corr, err)
	}
}

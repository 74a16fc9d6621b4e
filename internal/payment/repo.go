package payment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/storefront-labs/orderflow/internal/gateway"
)

var (
	ErrNotFound = errors.New("payment detail not found")
	// ErrStale: compare-and-set found a different current status.
	ErrStale = errors.New("payment status changed concurrently")
)

type Repository interface {
	Create(ctx context.Context, d *Detail) error
	GetByID(ctx context.Context, id string) (*Detail, error)
	// GetByCorrelation resolves a gateway's transaction/session reference
	// to the attempt it belongs to.
	GetByCorrelation(ctx context.Context, gw gateway.Type, correlationID string) (*Detail, error)
	// ListByOrder returns attempts in creation order, oldest first.
	ListByOrder(ctx context.Context, orderID string) ([]Detail, error)
	// UpdateStatus transitions id from `from` to `to` atomically.
	UpdateStatus(ctx context.Context, id string, from, to Status) error
	// ListPendingBefore returns attempts still pending that were created
	// before cutoff, for the reconciliation sweep.
	ListPendingBefore(ctx context.Context, cutoff time.Time, limit int) ([]Detail, error)
}

type PGRepo struct{ db *pgxpool.Pool }

func NewPGRepo(db *pgxpool.Pool) *PGRepo { return &PGRepo{db: db} }

const detailCols = `id, order_id, amount, method, status, gateway, stripe_session_id, jazzcash_txn_id, created_at, updated_at`

func scanDetail(row pgx.Row, d *Detail) error {
	return row.Scan(&d.ID, &d.OrderID, &d.Amount, &d.Method, &d.Status,
		&d.Gateway, &d.StripeSessionID, &d.JazzCashTxnID, &d.CreatedAt, &d.UpdatedAt)
}

func (r *PGRepo) Create(ctx context.Context, d *Detail) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	return r.db.QueryRow(ctx, `
		INSERT INTO payment_details (id, order_id, amount, method, status, gateway, stripe_session_id, jazzcash_txn_id, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,NOW(),NOW())
		RETURNING created_at, updated_at
	`, d.ID, d.OrderID, d.Amount, d.Method, d.Status, d.Gateway, d.StripeSessionID, d.JazzCashTxnID).
		Scan(&d.CreatedAt, &d.UpdatedAt)
}

func (r *PGRepo) GetByID(ctx context.Context, id string) (*Detail, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var d Detail
	err := scanDetail(r.db.QueryRow(ctx, `SELECT `+detailCols+` FROM payment_details WHERE id=$1`, id), &d)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *PGRepo) GetByCorrelation(ctx context.Context, gw gateway.Type, correlationID string) (*Detail, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var col string
	switch gw {
	case gateway.TypeStripe:
		col = "stripe_session_id"
	case gateway.TypeJazzCash:
		col = "jazzcash_txn_id"
	default:
		return nil, fmt.Errorf("unknown gateway %q: %w", gw, ErrNotFound)
	}

	var d Detail
	err := scanDetail(r.db.QueryRow(ctx,
		`SELECT `+detailCols+` FROM payment_details WHERE `+col+` = $1`, correlationID), &d)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *PGRepo) ListByOrder(ctx context.Context, orderID string) ([]Detail, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	rows, err := r.db.Query(ctx,
		`SELECT `+detailCols+` FROM payment_details WHERE order_id=$1 ORDER BY created_at ASC`, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collect(rows)
}

func (r *PGRepo) UpdateStatus(ctx context.Context, id string, from, to Status) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	tag, err := r.db.Exec(ctx, `
		UPDATE payment_details SET status = $3, updated_at = NOW()
		WHERE id = $1 AND status = $2
	`, id, from, to)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		if _, gerr := r.GetByID(ctx, id); gerr != nil {
			return gerr
		}
		return ErrStale
	}
	return nil
}

func (r *PGRepo) ListPendingBefore(ctx context.Context, cutoff time.Time, limit int) ([]Detail, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if limit <= 0 || limit > 500 {
		limit = 100
	}
	rows, err := r.db.Query(ctx, `
		SELECT `+detailCols+` FROM payment_details
		WHERE status = $1 AND created_at < $2
		ORDER BY created_at ASC LIMIT $3
	`, StatusPending, cutoff, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collect(rows)
}

func collect(rows pgx.Rows) ([]Detail, error) {
	var out []Detail
	for rows.Next() {
		var d Detail
		if err := scanDetail(rows, &d); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

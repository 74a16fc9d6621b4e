package gateway

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

const testSecret = "whsec_test_secret"

func signStripe(t *testing.T, secret string, ts time.Time, body string) string {
	t.Helper()
	mac := hmac.New(sha256.New, []byte(secret))
	fmt.Fprintf(mac, "%d.%s", ts.Unix(), body)
	return fmt.Sprintf("t=%d,v1=%s", ts.Unix(), hex.EncodeToString(mac.Sum(nil)))
}

func stripeEventBody(eventType, sessionID string, amount int64) string {
	return fmt.Sprintf(`{"type":%q,"data":{"object":{"id":%q,"amount_total":%d}}}`,
		eventType, sessionID, amount)
}

func TestStripeParse(t *testing.T) {
	t.Parallel()

	adapter := NewStripe(testSecret)

	cases := []struct {
		event   string
		outcome Outcome
	}{
		{"checkout.session.completed", OutcomeSucceeded},
		{"checkout.session.async_payment_succeeded", OutcomeSucceeded},
		{"checkout.session.async_payment_failed", OutcomeFailed},
		{"checkout.session.expired", OutcomeFailed},
	}
	for _, tc := range cases {
		body := stripeEventBody(tc.event, "cs_abc123", 49990)
		h := http.Header{}
		h.Set("Stripe-Signature", signStripe(t, testSecret, time.Now(), body))

		n, err := adapter.Parse([]byte(body), h)
		if err != nil {
			t.Fatalf("%s: %v", tc.event, err)
		}
		if n.Outcome != tc.outcome || n.CorrelationID != "cs_abc123" || n.Amount != 49990 || n.Gateway != TypeStripe {
			t.Fatalf("%s: notification = %+v", tc.event, n)
		}
	}
}

func TestStripeParse_IgnoresUnrelatedEvents(t *testing.T) {
	t.Parallel()

	adapter := NewStripe(testSecret)
	body := stripeEventBody("invoice.paid", "cs_abc123", 100)
	h := http.Header{}
	h.Set("Stripe-Signature", signStripe(t, testSecret, time.Now(), body))

	if _, err := adapter.Parse([]byte(body), h); !errors.Is(err, ErrIgnoredEvent) {
		t.Fatalf("error = %v, want ErrIgnoredEvent", err)
	}
}

func TestStripeParse_BadSignature(t *testing.T) {
	t.Parallel()

	adapter := NewStripe(testSecret)
	body := stripeEventBody("checkout.session.completed", "cs_abc123", 100)

	// Missing header.
	if _, err := adapter.Parse([]byte(body), http.Header{}); !errors.Is(err, ErrBadSignature) {
		t.Fatalf("missing header: error = %v, want ErrBadSignature", err)
	}

	// Wrong secret.
	h := http.Header{}
	h.Set("Stripe-Signature", signStripe(t, "whsec_other", time.Now(), body))
	if _, err := adapter.Parse([]byte(body), h); !errors.Is(err, ErrBadSignature) {
		t.Fatalf("wrong secret: error = %v, want ErrBadSignature", err)
	}

	// Tampered body under a valid signature.
	h.Set("Stripe-Signature", signStripe(t, testSecret, time.Now(), body))
	tampered := stripeEventBody("checkout.session.completed", "cs_evil", 100)
	if _, err := adapter.Parse([]byte(tampered), h); !errors.Is(err, ErrBadSignature) {
		t.Fatalf("tampered body: error = %v, want ErrBadSignature", err)
	}
}

func TestStripeParse_StaleTimestamp(t *testing.T) {
	t.Parallel()

	adapter := NewStripe(testSecret)
	body := stripeEventBody("checkout.session.completed", "cs_abc123", 100)
	h := http.Header{}
	h.Set("Stripe-Signature", signStripe(t, testSecret, time.Now().Add(-10*time.Minute), body))

	if _, err := adapter.Parse([]byte(body), h); !errors.Is(err, ErrBadSignature) {
		t.Fatalf("stale timestamp: error = %v, want ErrBadSignature", err)
	}
}

func TestStripeChecker(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer sk_test_key" {
			http.Error(w, `{"error":"unauthorized"}`, http.StatusUnauthorized)
			return
		}
		switch r.URL.Path {
		case "/v1/checkout/sessions/cs_paid":
			fmt.Fprint(w, `{"status":"complete","payment_status":"paid"}`)
		case "/v1/checkout/sessions/cs_expired":
			fmt.Fprint(w, `{"status":"expired","payment_status":"unpaid"}`)
		case "/v1/checkout/sessions/cs_open":
			fmt.Fprint(w, `{"status":"open","payment_status":"unpaid"}`)
		default:
			http.Error(w, `{"error":"no such session"}`, http.StatusNotFound)
		}
	}))
	defer srv.Close()

	checker := NewStripeChecker("sk_test_key")
	checker.baseURL = srv.URL
	ctx := context.Background()

	outcome, final, err := checker.Check(ctx, "cs_paid")
	if err != nil || !final || outcome != OutcomeSucceeded {
		t.Fatalf("cs_paid: outcome=%s final=%v err=%v", outcome, final, err)
	}
	outcome, final, err = checker.Check(ctx, "cs_expired")
	if err != nil || !final || outcome != OutcomeFailed {
		t.Fatalf("cs_expired: outcome=%s final=%v err=%v", outcome, final, err)
	}
	_, final, err = checker.Check(ctx, "cs_open")
	if err != nil || final {
		t.Fatalf("cs_open: final=%v err=%v, want non-final", final, err)
	}
	if _, _, err = checker.Check(ctx, "cs_missing"); err == nil {
		t.Fatal("cs_missing: expected error")
	}
}

package gateway

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"
)

// signatureTolerance rejects replayed webhook payloads.
const signatureTolerance = 5 * time.Minute

// Stripe verifies Stripe-Signature headers and maps Checkout Session
// events onto payment outcomes. The session id is the correlation id.
type Stripe struct {
	secret []byte
	now    func() time.Time
}

func NewStripe(webhookSecret string) *Stripe {
	return &Stripe{secret: []byte(webhookSecret), now: time.Now}
}

func (s *Stripe) Type() Type { return TypeStripe }

type stripeEvent struct {
	Type string `json:"type"`
	Data struct {
		Object struct {
			ID          string `json:"id"`
			AmountTotal int64  `json:"amount_total"`
		} `json:"object"`
	} `json:"data"`
}

func (s *Stripe) Parse(body []byte, header http.Header) (*Notification, error) {
	if err := s.verify(body, header.Get("Stripe-Signature")); err != nil {
		return nil, err
	}

	var ev stripeEvent
	if err := json.Unmarshal(body, &ev); err != nil {
		return nil, fmt.Errorf("stripe: decode event: %w", err)
	}
	if ev.Data.Object.ID == "" {
		return nil, fmt.Errorf("stripe: event %q has no session id", ev.Type)
	}

	n := &Notification{
		Gateway:       TypeStripe,
		CorrelationID: ev.Data.Object.ID,
		Amount:        ev.Data.Object.AmountTotal,
	}
	switch ev.Type {
	case "checkout.session.completed", "checkout.session.async_payment_succeeded":
		n.Outcome = OutcomeSucceeded
	case "checkout.session.async_payment_failed", "checkout.session.expired":
		n.Outcome = OutcomeFailed
	default:
		return nil, ErrIgnoredEvent
	}
	return n, nil
}

// verify checks the v1 scheme: HMAC-SHA256(secret, "<t>.<body>") against
// every v1 entry in the header, with a timestamp freshness window.
func (s *Stripe) verify(body []byte, sigHeader string) error {
	if sigHeader == "" {
		return ErrBadSignature
	}
	var ts int64 = -1
	var sigs [][]byte
	for _, part := range strings.Split(sigHeader, ",") {
		k, v, ok := strings.Cut(strings.TrimSpace(part), "=")
		if !ok {
			continue
		}
		switch k {
		case "t":
			n, err := strconv.ParseInt(v, 10, 64)
			if err != nil {
				return ErrBadSignature
			}
			ts = n
		case "v1":
			raw, err := hex.DecodeString(v)
			if err == nil {
				sigs = append(sigs, raw)
			}
		}
	}
	if ts < 0 || len(sigs) == 0 {
		return ErrBadSignature
	}
	if d := s.now().Sub(time.Unix(ts, 0)); d > signatureTolerance || d < -signatureTolerance {
		return ErrBadSignature
	}

	mac := hmac.New(sha256.New, s.secret)
	fmt.Fprintf(mac, "%d.%s", ts, body)
	want := mac.Sum(nil)
	for _, got := range sigs {
		if hmac.Equal(got, want) {
			return nil
		}
	}
	return ErrBadSignature
}

// StripeChecker polls the Checkout Sessions API for the sweep.
type StripeChecker struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

func NewStripeChecker(apiKey string) *StripeChecker {
	return &StripeChecker{
		apiKey:  apiKey,
		baseURL: "https://api.stripe.com",
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

func (c *StripeChecker) Type() Type { return TypeStripe }

func (c *StripeChecker) Check(ctx context.Context, correlationID string) (Outcome, bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		c.baseURL+"/v1/checkout/sessions/"+correlationID, nil)
	if err != nil {
		return "", false, err
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	res, err := c.client.Do(req)
	if err != nil {
		return "", false, err
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusOK {
		return "", false, fmt.Errorf("stripe: session lookup: %s", res.Status)
	}

	var session struct {
		Status        string `json:"status"`         // open | complete | expired
		PaymentStatus string `json:"payment_status"` // paid | unpaid | no_payment_required
	}
	if err := json.NewDecoder(res.Body).Decode(&session); err != nil {
		return "", false, err
	}
	switch {
	case session.PaymentStatus == "paid":
		return OutcomeSucceeded, true, nil
	case session.Status == "expired":
		return OutcomeFailed, true, nil
	default:
		return "", false, nil
	}
}

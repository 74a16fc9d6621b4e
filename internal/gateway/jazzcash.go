package gateway

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"net/http"
	"net/url"
	"sort"
	"strings"

	"github.com/shopspring/decimal"
)

// JazzCash parses the form-encoded IPN callback. pp_TxnRefNo is the
// correlation id; pp_SecureHash authenticates the payload.
type JazzCash struct {
	integritySalt string
}

func NewJazzCash(integritySalt string) *JazzCash {
	return &JazzCash{integritySalt: integritySalt}
}

func (j *JazzCash) Type() Type { return TypeJazzCash }

func (j *JazzCash) Parse(body []byte, _ http.Header) (*Notification, error) {
	vals, err := url.ParseQuery(string(body))
	if err != nil {
		return nil, ErrBadSignature
	}
	if !j.verify(vals) {
		return nil, ErrBadSignature
	}

	ref := vals.Get("pp_TxnRefNo")
	if ref == "" {
		return nil, ErrIgnoredEvent
	}

	n := &Notification{Gateway: TypeJazzCash, CorrelationID: ref}

	// pp_Amount arrives in paisa, the minor unit, but as free-form text.
	if raw := vals.Get("pp_Amount"); raw != "" {
		amt, err := decimal.NewFromString(raw)
		if err != nil || !amt.IsInteger() || amt.IsNegative() {
			return nil, ErrIgnoredEvent
		}
		n.Amount = amt.IntPart()
	}

	switch vals.Get("pp_ResponseCode") {
	case "000", "121": // immediate and deferred success codes
		n.Outcome = OutcomeSucceeded
	case "124": // still pending at the bank
		return nil, ErrIgnoredEvent
	default:
		n.Outcome = OutcomeFailed
	}
	return n, nil
}

// verify recomputes pp_SecureHash: HMAC-SHA256 keyed with the integrity
// salt over the salt plus every non-empty pp_ value, sorted by field name.
func (j *JazzCash) verify(vals url.Values) bool {
	got := vals.Get("pp_SecureHash")
	if got == "" {
		return false
	}

	keys := make([]string, 0, len(vals))
	for k := range vals {
		if strings.HasPrefix(k, "pp_") && k != "pp_SecureHash" {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)

	parts := []string{j.integritySalt}
	for _, k := range keys {
		if v := vals.Get(k); v != "" {
			parts = append(parts, v)
		}
	}

	mac := hmac.New(sha256.New, []byte(j.integritySalt))
	mac.Write([]byte(strings.Join(parts, "&")))
	want := strings.ToUpper(hex.EncodeToString(mac.Sum(nil)))
	return hmac.Equal([]byte(strings.ToUpper(got)), []byte(want))
}

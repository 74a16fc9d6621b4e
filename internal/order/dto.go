package order

import (
	"github.com/shopspring/decimal"

	"github.com/storefront-labs/orderflow/internal/apperr"
)

// HTTPError represents a standard error in JSON.
// swagger:model
type HTTPError struct {
	// Error message
	// example: not found
	Error string `json:"error"`
}

// CreateOrderRequest payload of checkout.
// swagger:model CreateOrderRequest
type CreateOrderRequest struct {
	Name    string `json:"name"    example:"Ayesha Khan"`
	Email   string `json:"email"   example:"ayesha@example.com"`
	Phone   string `json:"phone"   example:"+92 300 1234567"`
	Address string `json:"address" example:"14-B Model Town, Lahore"`
	// Total as a decimal string in major units (NUMERIC-safe).
	Total string `json:"total" example:"499.90"`
}

// StartPaymentRequest payload of a payment attempt.
// swagger:model StartPaymentRequest
type StartPaymentRequest struct {
	Amount string `json:"amount" example:"499.90"`
	Method string `json:"method" example:"card"`
}

// ListResponse represents the paginated order listing.
// swagger:model
type ListResponse struct {
	// status filter applied
	Status string `json:"status,omitempty"`
	// limit applied
	Limit int `json:"limit"`
	// offset applied
	Offset int `json:"offset"`
	// orders found
	Items []Order `json:"items"`
}

// ParseMoney converts a decimal string in major units into minor units,
// rejecting anything with sub-cent precision.
func ParseMoney(field, s string) (int64, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, apperr.Validation(field, "must be a decimal number")
	}
	cents := d.Mul(decimal.NewFromInt(100))
	if !cents.IsInteger() {
		return 0, apperr.Validation(field, "sub-cent precision not supported")
	}
	return cents.IntPart(), nil
}

// FormatMoney renders minor units as the decimal string the API exposes.
func FormatMoney(minor int64) string {
	return decimal.NewFromInt(minor).Div(decimal.NewFromInt(100)).StringFixed(2)
}

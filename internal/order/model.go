package order

import "time"

type Status string

const (
	StatusPending   Status = "pending"
	StatusPaid      Status = "paid"
	StatusFailed    Status = "failed"
	StatusCancelled Status = "cancelled"
	StatusFulfilled Status = "fulfilled"
)

// IsTerminal reports whether no further automatic transition applies.
func (s Status) IsTerminal() bool {
	return s == StatusCancelled || s == StatusFulfilled
}

// Cancellable statuses: an order that already collected money is not
// administratively cancellable through this path.
func (s Status) Cancellable() bool {
	return s == StatusPending || s == StatusFailed
}

func ParseStatus(s string) (Status, bool) {
	switch Status(s) {
	case StatusPending, StatusPaid, StatusFailed, StatusCancelled, StatusFulfilled:
		return Status(s), true
	}
	return "", false
}

type Order struct {
	ID          string `json:"id"`
	OrderNumber string `json:"order_number"`
	// Minor currency units (cents); the API edge speaks decimal strings.
	Total     int64     `json:"total"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Address   string    `json:"address"`
	Status    Status    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

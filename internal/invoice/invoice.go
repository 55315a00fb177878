package invoice

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrNotFound = errors.New("invoice not found")
	// ErrExists signals a concurrent create hit the unique order constraint;
	// callers re-read the existing invoice instead of failing.
	ErrExists     = errors.New("invoice already exists for order")
	ErrNotPending = errors.New("invoice is not pending")
)

// VATRate is the Irish standard VAT rate applied to all orders.
const VATRate = 0.23

type Status string

const (
	StatusPending   Status = "pending"
	StatusPaid      Status = "paid"
	StatusCancelled Status = "cancelled"
)

// Invoice is an immutable billing snapshot for one order. After creation
// the only permitted change is the status transition pending -> paid or
// pending -> cancelled; the amounts record what was actually charged,
// independent of later order edits.
type Invoice struct {
	ID            uuid.UUID
	OrderID       uuid.UUID
	Number        string
	SubtotalCents int64
	VATCents      int64
	TotalCents    int64
	Status        Status
	PaidAt        *time.Time
	CreatedAt     time.Time
}

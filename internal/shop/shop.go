package shop

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("shop not found")

// Shop is a physical location: a customer-facing franchise or a processing
// center.
type Shop struct {
	ID                   uuid.UUID
	Name                 string
	Address              string
	Phone                string
	Email                string
	SubscriptionTier     string
	SubscriptionFeeCents int64
	Processing           bool
	CreatedAt            time.Time
	UpdatedAt            *time.Time
}

// Subcontract records that an order's origin shop routed processing to a
// separate processing shop.
type Subcontract struct {
	ID               uuid.UUID
	OrderID          uuid.UUID
	OriginShopID     uuid.UUID
	ProcessingShopID uuid.UUID
	CreatedAt        time.Time
}

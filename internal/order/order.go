package order

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrNotFound          = errors.New("order not found")
	ErrInvalidTransition = errors.New("invalid state transition")
	ErrAlreadyAssigned   = errors.New("order already assigned to a driver")
	ErrClosed            = errors.New("order is closed")
	ErrInvalidInput      = errors.New("invalid input")
)

// State represents where an order is in its custody lifecycle.
type State string

const (
	StateCreated          State = "created"
	StateConfirmed        State = "confirmed"
	StatePickedUp         State = "picked_up"
	StateAtOriginShop     State = "at_origin_shop"
	StateSubcontracted    State = "subcontracted"
	StateAtProcessingShop State = "at_processing_shop"
	StateWashing          State = "washing"
	StateDrying           State = "drying"
	StatePressing         State = "pressing"
	StateQC               State = "qc"
	StatePacked           State = "packed"
	StateOutForDelivery   State = "out_for_delivery"
	StateDelivered        State = "delivered"
	StateClosed           State = "closed"
)

// next maps each state to its single forward successor. StateClosed is
// terminal and has no entry. The subcontracted branch is handled in
// CanTransition since at_origin_shop has two legal successors.
var next = map[State]State{
	StateCreated:          StateConfirmed,
	StateConfirmed:        StatePickedUp,
	StatePickedUp:         StateAtOriginShop,
	StateAtOriginShop:     StateAtProcessingShop,
	StateSubcontracted:    StateAtProcessingShop,
	StateAtProcessingShop: StateWashing,
	StateWashing:          StateDrying,
	StateDrying:           StatePressing,
	StatePressing:         StateQC,
	StateQC:               StatePacked,
	StatePacked:           StateOutForDelivery,
	StateOutForDelivery:   StateDelivered,
	StateDelivered:        StateClosed,
}

// Valid reports whether s is a known order state.
func (s State) Valid() bool {
	if s == StateClosed {
		return true
	}

	_, ok := next[s]

	return ok
}

// Terminal reports whether no further transitions are permitted from s.
func (s State) Terminal() bool {
	return s == StateClosed
}

// Next returns the regular forward successor of s, or false if s is
// terminal or unknown.
func Next(s State) (State, bool) {
	n, ok := next[s]
	return n, ok
}

// CanTransition reports whether to is a legal immediate successor of from.
// The only fork in the sequence is at_origin_shop, which may either go
// straight to at_processing_shop (in-house processing) or detour through
// subcontracted.
func CanTransition(from, to State) bool {
	if from == StateAtOriginShop && to == StateSubcontracted {
		return true
	}

	n, ok := next[from]

	return ok && n == to
}

// Order represents one customer laundry job.
type Order struct {
	ID               uuid.UUID
	State            State
	CustomerID       uuid.UUID
	PickupAddress    string
	DeliveryAddress  string
	PickupDate       time.Time
	PickupWindow     string
	DriverID         *uuid.UUID
	OriginShopID     *uuid.UUID
	ProcessingShopID *uuid.UUID
	SubtotalCents    int64
	VATCents         int64
	TotalCents       int64
	Currency         string
	PaymentMethod    string
	Notes            string
	ConfirmedAt      *time.Time
	AssignedAt       *time.Time
	PickedUpAt       *time.Time
	DeliveredAt      *time.Time
	ClosedAt         *time.Time
	CreatedAt        time.Time
	UpdatedAt        *time.Time
}

// Bag is a physical container tied to an order.
type Bag struct {
	ID          uuid.UUID
	OrderID     uuid.UUID
	WeightGrams *int64
	CreatedAt   time.Time
}

// Item is an individual garment tied to an order, optionally within a bag.
type Item struct {
	ID          uuid.UUID
	OrderID     uuid.UUID
	BagID       *uuid.UUID
	Description string
	CreatedAt   time.Time
}

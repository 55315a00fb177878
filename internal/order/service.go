package order

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=order
type Repository interface {
	CreateOrder(ctx context.Context, o *Order) error
	GetOrder(ctx context.Context, id uuid.UUID) (*Order, error)
	ListOrders(ctx context.Context, filter ListFilter) ([]*Order, error)

	// UpdateState sets the state conditionally: the write only lands if the
	// stored state still equals from. A lost race surfaces as
	// ErrInvalidTransition so the caller re-fetches instead of clobbering.
	UpdateState(ctx context.Context, id uuid.UUID, from, to State) error

	// ClaimDriver is the atomic "assign if currently unassigned" update.
	// Exactly one concurrent claim wins; losers get ErrAlreadyAssigned.
	ClaimDriver(ctx context.Context, orderID, driverID uuid.UUID) (*Order, error)

	// CreateSubcontract moves the order to subcontracted and records the
	// routing in one database transaction.
	CreateSubcontract(ctx context.Context, orderID, originShopID, processingShopID uuid.UUID) error

	UpdateTotals(ctx context.Context, id uuid.UUID, subtotalCents, vatCents, totalCents int64) error

	AddBag(ctx context.Context, bag *Bag) error
	AddItem(ctx context.Context, item *Item) error
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

type CreateParams struct {
	CustomerID      uuid.UUID
	PickupAddress   string
	DeliveryAddress string
	PickupDate      time.Time
	PickupWindow    string
	OriginShopID    *uuid.UUID
	SubtotalCents   int64
	VATCents        int64
	TotalCents      int64
	Currency        string
	PaymentMethod   string
	Notes           string
}

type ListFilter struct {
	State      *State
	DriverID   *uuid.UUID
	Unassigned bool
}

func (s *Service) Create(ctx context.Context, params CreateParams) (*Order, error) {
	if params.SubtotalCents < 0 || params.VATCents < 0 || params.TotalCents < 0 {
		return nil, fmt.Errorf("%w: monetary amounts must be non-negative", ErrInvalidInput)
	}

	o := &Order{
		State:           StateCreated,
		CustomerID:      params.CustomerID,
		PickupAddress:   params.PickupAddress,
		DeliveryAddress: params.DeliveryAddress,
		PickupDate:      params.PickupDate,
		PickupWindow:    params.PickupWindow,
		OriginShopID:    params.OriginShopID,
		SubtotalCents:   params.SubtotalCents,
		VATCents:        params.VATCents,
		TotalCents:      params.TotalCents,
		Currency:        params.Currency,
		PaymentMethod:   params.PaymentMethod,
		Notes:           params.Notes,
	}
	if o.Currency == "" {
		o.Currency = "EUR"
	}

	if err := s.repo.CreateOrder(ctx, o); err != nil {
		return nil, err
	}

	return o, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Order, error) {
	return s.repo.GetOrder(ctx, id)
}

func (s *Service) List(ctx context.Context, filter ListFilter) ([]*Order, error) {
	return s.repo.ListOrders(ctx, filter)
}

// Transition advances the order to newState. Only the immediate successor
// in the lifecycle (or the subcontracted branch) is accepted; anything else
// fails with ErrInvalidTransition and nothing is written.
func (s *Service) Transition(ctx context.Context, id uuid.UUID, newState State) (*Order, error) {
	if !newState.Valid() {
		return nil, fmt.Errorf("%w: unknown state %q", ErrInvalidTransition, newState)
	}

	o, err := s.repo.GetOrder(ctx, id)
	if err != nil {
		return nil, err
	}

	if o.State.Terminal() {
		return nil, fmt.Errorf("%w: order %s is %s", ErrInvalidTransition, id, o.State)
	}

	if !CanTransition(o.State, newState) {
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, o.State, newState)
	}

	if err := s.repo.UpdateState(ctx, id, o.State, newState); err != nil {
		return nil, err
	}

	return s.repo.GetOrder(ctx, id)
}

// ClaimDriver assigns the order to the driver if it is still in the
// confirmed, unassigned pool. A lost race returns ErrAlreadyAssigned; the
// caller is expected to move on to another order.
func (s *Service) ClaimDriver(ctx context.Context, orderID, driverID uuid.UUID) (*Order, error) {
	return s.repo.ClaimDriver(ctx, orderID, driverID)
}

// Subcontract routes the order from the origin shop to a separate
// processing shop.
func (s *Service) Subcontract(ctx context.Context, orderID, processingShopID uuid.UUID) (*Order, error) {
	o, err := s.repo.GetOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if o.State != StateAtOriginShop {
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, o.State, StateSubcontracted)
	}

	if o.OriginShopID == nil {
		return nil, fmt.Errorf("%w: order has no origin shop", ErrInvalidTransition)
	}

	if err := s.repo.CreateSubcontract(ctx, orderID, *o.OriginShopID, processingShopID); err != nil {
		return nil, err
	}

	return s.repo.GetOrder(ctx, orderID)
}

// SetTotals replaces the monetary fields, e.g. after intake weighing. Closed
// orders are immutable and reject the update with ErrClosed.
func (s *Service) SetTotals(ctx context.Context, id uuid.UUID, subtotalCents, vatCents, totalCents int64) error {
	if subtotalCents < 0 || vatCents < 0 || totalCents < 0 {
		return fmt.Errorf("%w: monetary amounts must be non-negative", ErrInvalidInput)
	}

	return s.repo.UpdateTotals(ctx, id, subtotalCents, vatCents, totalCents)
}

func (s *Service) AddBag(ctx context.Context, orderID uuid.UUID, weightGrams *int64) (*Bag, error) {
	bag := &Bag{OrderID: orderID, WeightGrams: weightGrams}
	if err := s.repo.AddBag(ctx, bag); err != nil {
		return nil, err
	}

	return bag, nil
}

func (s *Service) AddItem(ctx context.Context, orderID uuid.UUID, bagID *uuid.UUID, description string) (*Item, error) {
	item := &Item{OrderID: orderID, BagID: bagID, Description: description}
	if err := s.repo.AddItem(ctx, item); err != nil {
		return nil, err
	}

	return item, nil
}

package order

import (
	"time"

	"github.com/google/uuid"

	"github.com/mrbl-app/mrbl/internal/order"
	"github.com/mrbl-app/mrbl/internal/qr"
)

type orderResponse struct {
	ID               uuid.UUID   `json:"id"`
	State            order.State `json:"state"`
	CustomerID       uuid.UUID   `json:"customer_id"`
	PickupAddress    string      `json:"pickup_address"`
	DeliveryAddress  string      `json:"delivery_address"`
	PickupDate       time.Time   `json:"pickup_date"`
	PickupWindow     string      `json:"pickup_window,omitempty"`
	DriverID         *uuid.UUID  `json:"driver_id,omitempty"`
	OriginShopID     *uuid.UUID  `json:"origin_shop_id,omitempty"`
	ProcessingShopID *uuid.UUID  `json:"processing_shop_id,omitempty"`
	SubtotalCents    int64       `json:"subtotal_cents"`
	VATCents         int64       `json:"vat_cents"`
	TotalCents       int64       `json:"total_cents"`
	Currency         string      `json:"currency"`
	PaymentMethod    string      `json:"payment_method,omitempty"`
	Notes            string      `json:"notes,omitempty"`
	ConfirmedAt      *time.Time  `json:"confirmed_at,omitempty"`
	AssignedAt       *time.Time  `json:"assigned_at,omitempty"`
	PickedUpAt       *time.Time  `json:"picked_up_at,omitempty"`
	DeliveredAt      *time.Time  `json:"delivered_at,omitempty"`
	ClosedAt         *time.Time  `json:"closed_at,omitempty"`
	CreatedAt        time.Time   `json:"created_at"`
	UpdatedAt        *time.Time  `json:"updated_at,omitempty"`
}

func toResponse(ord *order.Order) orderResponse {
	return orderResponse{
		ID:               ord.ID,
		State:            ord.State,
		CustomerID:       ord.CustomerID,
		PickupAddress:    ord.PickupAddress,
		DeliveryAddress:  ord.DeliveryAddress,
		PickupDate:       ord.PickupDate,
		PickupWindow:     ord.PickupWindow,
		DriverID:         ord.DriverID,
		OriginShopID:     ord.OriginShopID,
		ProcessingShopID: ord.ProcessingShopID,
		SubtotalCents:    ord.SubtotalCents,
		VATCents:         ord.VATCents,
		TotalCents:       ord.TotalCents,
		Currency:         ord.Currency,
		PaymentMethod:    ord.PaymentMethod,
		Notes:            ord.Notes,
		ConfirmedAt:      ord.ConfirmedAt,
		AssignedAt:       ord.AssignedAt,
		PickedUpAt:       ord.PickedUpAt,
		DeliveredAt:      ord.DeliveredAt,
		ClosedAt:         ord.ClosedAt,
		CreatedAt:        ord.CreatedAt,
		UpdatedAt:        ord.UpdatedAt,
	}
}

func toResponseList(orders []*order.Order) []orderResponse {
	resp := make([]orderResponse, len(orders))
	for i, ord := range orders {
		resp[i] = toResponse(ord)
	}

	return resp
}

type bagResponse struct {
	ID          uuid.UUID `json:"id"`
	OrderID     uuid.UUID `json:"order_id"`
	WeightGrams *int64    `json:"weight_grams,omitempty"`
	Ref         string    `json:"ref"`
	CreatedAt   time.Time `json:"created_at"`
}

func toBagResponse(bag *order.Bag) bagResponse {
	return bagResponse{
		ID:          bag.ID,
		OrderID:     bag.OrderID,
		WeightGrams: bag.WeightGrams,
		Ref:         qr.Ref{Kind: qr.RefBag, ID: bag.ID}.String(),
		CreatedAt:   bag.CreatedAt,
	}
}

type itemResponse struct {
	ID          uuid.UUID  `json:"id"`
	OrderID     uuid.UUID  `json:"order_id"`
	BagID       *uuid.UUID `json:"bag_id,omitempty"`
	Description string     `json:"description"`
	Ref         string     `json:"ref"`
	CreatedAt   time.Time  `json:"created_at"`
}

func toItemResponse(item *order.Item) itemResponse {
	return itemResponse{
		ID:          item.ID,
		OrderID:     item.OrderID,
		BagID:       item.BagID,
		Description: item.Description,
		Ref:         qr.Ref{Kind: qr.RefItem, ID: item.ID}.String(),
		CreatedAt:   item.CreatedAt,
	}
}

type labelResponse struct {
	Label qr.Label `json:"label"`
	Ref   string   `json:"ref"`
}

type verifyLabelResponse struct {
	Valid bool `json:"valid"`
}

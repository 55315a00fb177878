package order

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/mrbl-app/mrbl/internal/auth"
	"github.com/mrbl-app/mrbl/internal/order"
	"github.com/mrbl-app/mrbl/internal/qr"
)

type Handler struct {
	svc         *order.Service
	labelSecret []byte
}

func NewHandler(svc *order.Service, labelSecret []byte) *Handler {
	return &Handler{svc: svc, labelSecret: labelSecret}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.create)
	r.Get("/", h.list)
	r.Get("/{id}", h.get)
	r.Post("/{id}/transition", h.transition)
	r.Post("/{id}/claim", h.claim)
	r.Post("/{id}/subcontract", h.subcontract)
	r.Post("/{id}/bags", h.addBag)
	r.Post("/{id}/items", h.addItem)
	r.Patch("/{id}/totals", h.updateTotals)
	r.Get("/{id}/label", h.label)
	r.Post("/labels/verify", h.verifyLabel)
}

type createOrderRequest struct {
	CustomerID      uuid.UUID  `json:"customer_id"`
	PickupAddress   string     `json:"pickup_address"`
	DeliveryAddress string     `json:"delivery_address"`
	PickupDate      time.Time  `json:"pickup_date"`
	PickupWindow    string     `json:"pickup_window"`
	OriginShopID    *uuid.UUID `json:"origin_shop_id,omitempty"`
	SubtotalCents   int64      `json:"subtotal_cents"`
	VATCents        int64      `json:"vat_cents"`
	TotalCents      int64      `json:"total_cents"`
	Currency        string     `json:"currency"`
	PaymentMethod   string     `json:"payment_method"`
	Notes           string     `json:"notes"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req createOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	ord, err := h.svc.Create(r.Context(), order.CreateParams{
		CustomerID:      req.CustomerID,
		PickupAddress:   req.PickupAddress,
		DeliveryAddress: req.DeliveryAddress,
		PickupDate:      req.PickupDate,
		PickupWindow:    req.PickupWindow,
		OriginShopID:    req.OriginShopID,
		SubtotalCents:   req.SubtotalCents,
		VATCents:        req.VATCents,
		TotalCents:      req.TotalCents,
		Currency:        req.Currency,
		PaymentMethod:   req.PaymentMethod,
		Notes:           req.Notes,
	})
	if err != nil {
		if errors.Is(err, order.ErrInvalidInput) {
			http.Error(w, err.Error(), http.StatusUnprocessableEntity)
			return
		}

		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)

	if err := json.NewEncoder(w).Encode(toResponse(ord)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	filter := order.ListFilter{}

	if s := r.URL.Query().Get("state"); s != "" {
		filter.State = new(order.State(s))
	}

	if s := r.URL.Query().Get("driver_id"); s != "" {
		id, err := uuid.Parse(s)
		if err != nil {
			http.Error(w, "invalid driver_id", http.StatusBadRequest)
			return
		}

		filter.DriverID = &id
	}

	if r.URL.Query().Get("unassigned") == "true" {
		filter.Unassigned = true
	}

	orders, err := h.svc.List(r.Context(), filter)
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponseList(orders)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	ord, err := h.svc.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, order.ErrNotFound) {
			http.Error(w, "order not found", http.StatusNotFound)
			return
		}

		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponse(ord)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

type transitionRequest struct {
	To order.State `json:"to"`
}

func (h *Handler) transition(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	var req transitionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	ord, err := h.svc.Transition(r.Context(), id, req.To)
	if err != nil {
		writeOrderError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponse(ord)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

// claim assigns the authenticated driver to the order. First writer wins;
// losers get a conflict.
func (h *Handler) claim(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	principal, err := auth.FromContext(r.Context())
	if err != nil {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	ord, err := h.svc.ClaimDriver(r.Context(), id, principal.UserID)
	if err != nil {
		writeOrderError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponse(ord)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

type subcontractRequest struct {
	ProcessingShopID uuid.UUID `json:"processing_shop_id"`
}

func (h *Handler) subcontract(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	var req subcontractRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	ord, err := h.svc.Subcontract(r.Context(), id, req.ProcessingShopID)
	if err != nil {
		writeOrderError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponse(ord)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

type addBagRequest struct {
	WeightGrams *int64 `json:"weight_grams,omitempty"`
}

func (h *Handler) addBag(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	var req addBagRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	bag, err := h.svc.AddBag(r.Context(), id, req.WeightGrams)
	if err != nil {
		writeOrderError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)

	if err := json.NewEncoder(w).Encode(toBagResponse(bag)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

type addItemRequest struct {
	BagID       *uuid.UUID `json:"bag_id,omitempty"`
	Description string     `json:"description"`
}

func (h *Handler) addItem(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	var req addItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	item, err := h.svc.AddItem(r.Context(), id, req.BagID, req.Description)
	if err != nil {
		writeOrderError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)

	if err := json.NewEncoder(w).Encode(toItemResponse(item)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

type updateTotalsRequest struct {
	SubtotalCents int64 `json:"subtotal_cents"`
	VATCents      int64 `json:"vat_cents"`
	TotalCents    int64 `json:"total_cents"`
}

func (h *Handler) updateTotals(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	var req updateTotalsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.svc.SetTotals(r.Context(), id, req.SubtotalCents, req.VATCents, req.TotalCents); err != nil {
		writeOrderError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// label returns the signed label payload for printing, plus its QR ref.
func (h *Handler) label(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	ord, err := h.svc.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, order.ErrNotFound) {
			http.Error(w, "order not found", http.StatusNotFound)
			return
		}

		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	label := qr.Label{
		OrderID:      ord.ID,
		CustomerID:   ord.CustomerID,
		Property:     ord.DeliveryAddress,
		BalanceCents: ord.TotalCents,
		Date:         ord.PickupDate.Format(time.DateOnly),
	}

	if err := qr.Sign(&label, h.labelSecret); err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	resp := labelResponse{
		Label: label,
		Ref:   qr.Ref{Kind: qr.RefOrder, ID: ord.ID}.String(),
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) verifyLabel(w http.ResponseWriter, r *http.Request) {
	var label qr.Label
	if err := json.NewDecoder(r.Body).Decode(&label); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	valid := qr.Verify(&label, h.labelSecret) == nil

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(verifyLabelResponse{Valid: valid}); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func writeOrderError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, order.ErrNotFound):
		http.Error(w, "order not found", http.StatusNotFound)
	case errors.Is(err, order.ErrInvalidTransition),
		errors.Is(err, order.ErrAlreadyAssigned),
		errors.Is(err, order.ErrClosed):
		http.Error(w, err.Error(), http.StatusConflict)
	case errors.Is(err, order.ErrInvalidInput):
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

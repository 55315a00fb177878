package split

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/mrbl-app/mrbl/internal/split"
)

type Handler struct {
	svc *split.Service
}

func NewHandler(svc *split.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/policies", h.createPolicy)
	r.Get("/policies", h.listPolicies)
	r.Get("/policies/active", h.activePolicy)
	r.Get("/policies/{id}", h.getPolicy)
	r.Post("/policies/{id}/activate", h.activate)
	r.Post("/calculate", h.calculate)
	r.Get("/order/{orderID}", h.listByOrder)
}

type createPolicyRequest struct {
	Name              string  `json:"name"`
	OriginShopPct     float64 `json:"origin_shop_pct"`
	ProcessingShopPct float64 `json:"processing_shop_pct"`
	DriverPct         float64 `json:"driver_pct"`
	PlatformPct       float64 `json:"platform_pct"`
	PlatformMinCents  int64   `json:"platform_min_cents"`
	FloorRebalance    bool    `json:"floor_rebalance"`
}

func (h *Handler) createPolicy(w http.ResponseWriter, r *http.Request) {
	var req createPolicyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	p, err := h.svc.CreatePolicy(r.Context(), split.PolicyParams{
		Name:              req.Name,
		OriginShopPct:     req.OriginShopPct,
		ProcessingShopPct: req.ProcessingShopPct,
		DriverPct:         req.DriverPct,
		PlatformPct:       req.PlatformPct,
		PlatformMinCents:  req.PlatformMinCents,
		FloorRebalance:    req.FloorRebalance,
	})
	if err != nil {
		if errors.Is(err, split.ErrInvalidPolicy) {
			http.Error(w, err.Error(), http.StatusUnprocessableEntity)
			return
		}

		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)

	if err := json.NewEncoder(w).Encode(toPolicyResponse(p)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) listPolicies(w http.ResponseWriter, r *http.Request) {
	policies, err := h.svc.ListPolicies(r.Context())
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toPolicyResponseList(policies)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) getPolicy(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	p, err := h.svc.GetPolicy(r.Context(), id)
	if err != nil {
		writeSplitError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toPolicyResponse(p)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) activePolicy(w http.ResponseWriter, r *http.Request) {
	p, err := h.svc.ActivePolicy(r.Context())
	if err != nil {
		writeSplitError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toPolicyResponse(p)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) activate(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	if err := h.svc.Activate(r.Context(), id); err != nil {
		writeSplitError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

type calculateRequest struct {
	OrderID  uuid.UUID  `json:"order_id"`
	PolicyID *uuid.UUID `json:"policy_id,omitempty"`
}

// calculate runs the split for an order, against the named policy or the
// active one when policy_id is omitted.
func (h *Handler) calculate(w http.ResponseWriter, r *http.Request) {
	var req calculateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	var (
		sp  *split.Split
		err error
	)

	if req.PolicyID != nil {
		sp, err = h.svc.Calculate(r.Context(), req.OrderID, *req.PolicyID)
	} else {
		sp, err = h.svc.CalculateActive(r.Context(), req.OrderID)
	}

	if err != nil {
		writeSplitError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)

	if err := json.NewEncoder(w).Encode(toSplitResponse(sp)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) listByOrder(w http.ResponseWriter, r *http.Request) {
	orderID, err := uuid.Parse(chi.URLParam(r, "orderID"))
	if err != nil {
		http.Error(w, "invalid order id", http.StatusBadRequest)
		return
	}

	splits, err := h.svc.ListByOrder(r.Context(), orderID)
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toSplitResponseList(splits)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func writeSplitError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, split.ErrNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, split.ErrInvalidPolicy):
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

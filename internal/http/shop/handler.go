package shop

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/mrbl-app/mrbl/internal/shop"
)

type Handler struct {
	svc *shop.Service
}

func NewHandler(svc *shop.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.create)
	r.Get("/", h.list)
	r.Get("/{id}", h.get)
	r.Patch("/{id}", h.update)
	r.Get("/{id}/subcontracts", h.subcontracts)
}

type shopRequest struct {
	Name                 string `json:"name"`
	Address              string `json:"address"`
	Phone                string `json:"phone"`
	Email                string `json:"email"`
	SubscriptionTier     string `json:"subscription_tier"`
	SubscriptionFeeCents int64  `json:"subscription_fee_cents"`
	Processing           bool   `json:"processing"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req shopRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	sh := &shop.Shop{
		Name:                 req.Name,
		Address:              req.Address,
		Phone:                req.Phone,
		Email:                req.Email,
		SubscriptionTier:     req.SubscriptionTier,
		SubscriptionFeeCents: req.SubscriptionFeeCents,
		Processing:           req.Processing,
	}

	if err := h.svc.Create(r.Context(), sh); err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)

	if err := json.NewEncoder(w).Encode(toResponse(sh)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	filter := shop.ListFilter{}

	if s := r.URL.Query().Get("processing"); s != "" {
		filter.Processing = new(s == "true")
	}

	shops, err := h.svc.List(r.Context(), filter)
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponseList(shops)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	sh, err := h.svc.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, shop.ErrNotFound) {
			http.Error(w, "shop not found", http.StatusNotFound)
			return
		}

		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponse(sh)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

type updateShopRequest struct {
	Name                 *string `json:"name,omitempty"`
	Address              *string `json:"address,omitempty"`
	Phone                *string `json:"phone,omitempty"`
	Email                *string `json:"email,omitempty"`
	SubscriptionTier     *string `json:"subscription_tier,omitempty"`
	SubscriptionFeeCents *int64  `json:"subscription_fee_cents,omitempty"`
	Processing           *bool   `json:"processing,omitempty"`
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	var req updateShopRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	sh, err := h.svc.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, shop.ErrNotFound) {
			http.Error(w, "shop not found", http.StatusNotFound)
			return
		}

		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	if req.Name != nil {
		sh.Name = *req.Name
	}

	if req.Address != nil {
		sh.Address = *req.Address
	}

	if req.Phone != nil {
		sh.Phone = *req.Phone
	}

	if req.Email != nil {
		sh.Email = *req.Email
	}

	if req.SubscriptionTier != nil {
		sh.SubscriptionTier = *req.SubscriptionTier
	}

	if req.SubscriptionFeeCents != nil {
		sh.SubscriptionFeeCents = *req.SubscriptionFeeCents
	}

	if req.Processing != nil {
		sh.Processing = *req.Processing
	}

	if err := h.svc.Update(r.Context(), sh); err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponse(sh)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) subcontracts(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	subs, err := h.svc.Subcontracts(r.Context(), id)
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toSubcontractResponseList(subs)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

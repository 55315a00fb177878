package scan

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/mrbl-app/mrbl/internal/qr"
	"github.com/mrbl-app/mrbl/internal/scan"
)

type Handler struct {
	svc *scan.Service
}

func NewHandler(svc *scan.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.record)
	r.Get("/order/{orderID}", h.listByOrder)
	r.Get("/order/{orderID}/latest", h.latest)
}

type recordScanRequest struct {
	Type      scan.Type  `json:"type"`
	OrderID   uuid.UUID  `json:"order_id"`
	BagID     *uuid.UUID `json:"bag_id,omitempty"`
	ItemID    *uuid.UUID `json:"item_id,omitempty"`
	Ref       string     `json:"ref,omitempty"`
	Lat       *float64   `json:"lat,omitempty"`
	Lng       *float64   `json:"lng,omitempty"`
	PhotoURL  string     `json:"photo_url,omitempty"`
	Signature string     `json:"signature,omitempty"`
	Notes     string     `json:"notes,omitempty"`
}

// record appends a custody scan. Scanner apps may send the raw mrbl:// QR
// payload instead of explicit ids; it is decoded into the matching field.
func (h *Handler) record(w http.ResponseWriter, r *http.Request) {
	var req recordScanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if req.Ref != "" {
		ref, err := qr.ParseRef(req.Ref)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		switch ref.Kind {
		case qr.RefOrder:
			req.OrderID = ref.ID
		case qr.RefBag:
			req.BagID = &ref.ID
		case qr.RefItem:
			req.ItemID = &ref.ID
		}
	}

	params := scan.RecordParams{
		Type:      req.Type,
		OrderID:   req.OrderID,
		BagID:     req.BagID,
		ItemID:    req.ItemID,
		PhotoURL:  req.PhotoURL,
		Signature: req.Signature,
		Notes:     req.Notes,
	}

	if req.Lat != nil && req.Lng != nil {
		params.Geo = &scan.Geo{Lat: *req.Lat, Lng: *req.Lng}
	}

	sc, err := h.svc.Record(r.Context(), params)
	if err != nil {
		switch {
		case errors.Is(err, scan.ErrInvalidInput):
			http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		case errors.Is(err, scan.ErrNotFound):
			http.Error(w, err.Error(), http.StatusNotFound)
		default:
			http.Error(w, "internal error", http.StatusInternalServerError)
		}

		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)

	if err := json.NewEncoder(w).Encode(toResponse(sc)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) listByOrder(w http.ResponseWriter, r *http.Request) {
	orderID, err := uuid.Parse(chi.URLParam(r, "orderID"))
	if err != nil {
		http.Error(w, "invalid order id", http.StatusBadRequest)
		return
	}

	scans, err := h.svc.ListByOrder(r.Context(), orderID)
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponseList(scans)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) latest(w http.ResponseWriter, r *http.Request) {
	orderID, err := uuid.Parse(chi.URLParam(r, "orderID"))
	if err != nil {
		http.Error(w, "invalid order id", http.StatusBadRequest)
		return
	}

	sc, err := h.svc.Latest(r.Context(), orderID)
	if err != nil {
		if errors.Is(err, scan.ErrNotFound) {
			http.Error(w, "no scans for order", http.StatusNotFound)
			return
		}

		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponse(sc)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

package scan

import (
	"time"

	"github.com/google/uuid"

	"github.com/mrbl-app/mrbl/internal/scan"
)

type scanResponse struct {
	ID        uuid.UUID  `json:"id"`
	Type      scan.Type  `json:"type"`
	OrderID   uuid.UUID  `json:"order_id"`
	BagID     *uuid.UUID `json:"bag_id,omitempty"`
	ItemID    *uuid.UUID `json:"item_id,omitempty"`
	Lat       *float64   `json:"lat,omitempty"`
	Lng       *float64   `json:"lng,omitempty"`
	PhotoURL  string     `json:"photo_url,omitempty"`
	Signature string     `json:"signature,omitempty"`
	Notes     string     `json:"notes,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

func toResponse(sc *scan.Scan) scanResponse {
	resp := scanResponse{
		ID:        sc.ID,
		Type:      sc.Type,
		OrderID:   sc.OrderID,
		BagID:     sc.BagID,
		ItemID:    sc.ItemID,
		PhotoURL:  sc.PhotoURL,
		Signature: sc.Signature,
		Notes:     sc.Notes,
		CreatedAt: sc.CreatedAt,
	}

	if sc.Geo != nil {
		resp.Lat = &sc.Geo.Lat
		resp.Lng = &sc.Geo.Lng
	}

	return resp
}

func toResponseList(scans []*scan.Scan) []scanResponse {
	resp := make([]scanResponse, len(scans))
	for i, sc := range scans {
		resp[i] = toResponse(sc)
	}

	return resp
}

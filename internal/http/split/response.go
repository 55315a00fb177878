package split

import (
	"time"

	"github.com/google/uuid"

	"github.com/mrbl-app/mrbl/internal/split"
)

type policyResponse struct {
	ID                uuid.UUID          `json:"id"`
	Name              string             `json:"name"`
	Version           int                `json:"version"`
	OriginShopPct     float64            `json:"origin_shop_pct"`
	ProcessingShopPct float64            `json:"processing_shop_pct"`
	DriverPct         float64            `json:"driver_pct"`
	PlatformPct       float64            `json:"platform_pct"`
	PlatformMinCents  int64              `json:"platform_min_cents"`
	Rounding          split.RoundingMode `json:"rounding"`
	FloorRebalance    bool               `json:"floor_rebalance"`
	Active            bool               `json:"active"`
	CreatedAt         time.Time          `json:"created_at"`
}

func toPolicyResponse(p *split.Policy) policyResponse {
	return policyResponse{
		ID:                p.ID,
		Name:              p.Name,
		Version:           p.Version,
		OriginShopPct:     p.OriginShopPct,
		ProcessingShopPct: p.ProcessingShopPct,
		DriverPct:         p.DriverPct,
		PlatformPct:       p.PlatformPct,
		PlatformMinCents:  p.PlatformMinCents,
		Rounding:          p.Rounding,
		FloorRebalance:    p.FloorRebalance,
		Active:            p.Active,
		CreatedAt:         p.CreatedAt,
	}
}

func toPolicyResponseList(policies []*split.Policy) []policyResponse {
	resp := make([]policyResponse, len(policies))
	for i, p := range policies {
		resp[i] = toPolicyResponse(p)
	}

	return resp
}

type splitResponse struct {
	ID                  uuid.UUID `json:"id"`
	OrderID             uuid.UUID `json:"order_id"`
	PolicyID            uuid.UUID `json:"policy_id"`
	OriginShopCents     int64     `json:"origin_shop_cents"`
	ProcessingShopCents int64     `json:"processing_shop_cents"`
	DriverCents         int64     `json:"driver_cents"`
	PlatformCents       int64     `json:"platform_cents"`
	OriginShopPct       float64   `json:"origin_shop_pct"`
	ProcessingShopPct   float64   `json:"processing_shop_pct"`
	DriverPct           float64   `json:"driver_pct"`
	PlatformPct         float64   `json:"platform_pct"`
	CreatedAt           time.Time `json:"created_at"`
}

func toSplitResponse(sp *split.Split) splitResponse {
	return splitResponse{
		ID:                  sp.ID,
		OrderID:             sp.OrderID,
		PolicyID:            sp.PolicyID,
		OriginShopCents:     sp.OriginShopCents,
		ProcessingShopCents: sp.ProcessingShopCents,
		DriverCents:         sp.DriverCents,
		PlatformCents:       sp.PlatformCents,
		OriginShopPct:       sp.OriginShopPct,
		ProcessingShopPct:   sp.ProcessingShopPct,
		DriverPct:           sp.DriverPct,
		PlatformPct:         sp.PlatformPct,
		CreatedAt:           sp.CreatedAt,
	}
}

func toSplitResponseList(splits []*split.Split) []splitResponse {
	resp := make([]splitResponse, len(splits))
	for i, sp := range splits {
		resp[i] = toSplitResponse(sp)
	}

	return resp
}

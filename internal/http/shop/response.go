package shop

import (
	"time"

	"github.com/google/uuid"

	"github.com/mrbl-app/mrbl/internal/shop"
)

type shopResponse struct {
	ID                   uuid.UUID  `json:"id"`
	Name                 string     `json:"name"`
	Address              string     `json:"address"`
	Phone                string     `json:"phone,omitempty"`
	Email                string     `json:"email,omitempty"`
	SubscriptionTier     string     `json:"subscription_tier,omitempty"`
	SubscriptionFeeCents int64      `json:"subscription_fee_cents"`
	Processing           bool       `json:"processing"`
	CreatedAt            time.Time  `json:"created_at"`
	UpdatedAt            *time.Time `json:"updated_at,omitempty"`
}

func toResponse(sh *shop.Shop) shopResponse {
	return shopResponse{
		ID:                   sh.ID,
		Name:                 sh.Name,
		Address:              sh.Address,
		Phone:                sh.Phone,
		Email:                sh.Email,
		SubscriptionTier:     sh.SubscriptionTier,
		SubscriptionFeeCents: sh.SubscriptionFeeCents,
		Processing:           sh.Processing,
		CreatedAt:            sh.CreatedAt,
		UpdatedAt:            sh.UpdatedAt,
	}
}

func toResponseList(shops []*shop.Shop) []shopResponse {
	resp := make([]shopResponse, len(shops))
	for i, sh := range shops {
		resp[i] = toResponse(sh)
	}

	return resp
}

type subcontractResponse struct {
	ID               uuid.UUID `json:"id"`
	OrderID          uuid.UUID `json:"order_id"`
	OriginShopID     uuid.UUID `json:"origin_shop_id"`
	ProcessingShopID uuid.UUID `json:"processing_shop_id"`
	CreatedAt        time.Time `json:"created_at"`
}

func toSubcontractResponseList(subs []*shop.Subcontract) []subcontractResponse {
	resp := make([]subcontractResponse, len(subs))
	for i, sub := range subs {
		resp[i] = subcontractResponse{
			ID:               sub.ID,
			OrderID:          sub.OrderID,
			OriginShopID:     sub.OriginShopID,
			ProcessingShopID: sub.ProcessingShopID,
			CreatedAt:        sub.CreatedAt,
		}
	}

	return resp
}

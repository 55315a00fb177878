package invoice

import (
	"time"

	"github.com/google/uuid"

	"github.com/mrbl-app/mrbl/internal/invoice"
)

type invoiceResponse struct {
	ID            uuid.UUID      `json:"id"`
	OrderID       uuid.UUID      `json:"order_id"`
	Number        string         `json:"number"`
	SubtotalCents int64          `json:"subtotal_cents"`
	VATCents      int64          `json:"vat_cents"`
	TotalCents    int64          `json:"total_cents"`
	Status        invoice.Status `json:"status"`
	PaidAt        *time.Time     `json:"paid_at,omitempty"`
	CreatedAt     time.Time      `json:"created_at"`
}

func toResponse(inv *invoice.Invoice) invoiceResponse {
	return invoiceResponse{
		ID:            inv.ID,
		OrderID:       inv.OrderID,
		Number:        inv.Number,
		SubtotalCents: inv.SubtotalCents,
		VATCents:      inv.VATCents,
		TotalCents:    inv.TotalCents,
		Status:        inv.Status,
		PaidAt:        inv.PaidAt,
		CreatedAt:     inv.CreatedAt,
	}
}

package invoice_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/mrbl-app/mrbl/internal/invoice"
)

func TestService_CreateForOrder_VAT(t *testing.T) {
	tests := []struct {
		name          string
		subtotalCents int64
		wantVAT       int64
		wantTotal     int64
	}{
		{name: "Round", subtotalCents: 1000, wantVAT: 230, wantTotal: 1230},
		{name: "HalfUp", subtotalCents: 50, wantVAT: 12, wantTotal: 62},     // 11.5 rounds up
		{name: "RoundsDown", subtotalCents: 10, wantVAT: 2, wantTotal: 12},  // 2.3 rounds down
		{name: "Zero", subtotalCents: 0, wantVAT: 0, wantTotal: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			orderID := uuid.New()

			repo := invoice.NewMockRepository(ctrl)
			repo.EXPECT().GetInvoiceByOrder(gomock.Any(), orderID).Return(nil, invoice.ErrNotFound)
			repo.EXPECT().OrderSubtotal(gomock.Any(), orderID).Return(tt.subtotalCents, nil)
			repo.EXPECT().
				InsertInvoice(gomock.Any(), gomock.Any()).
				DoAndReturn(func(_ context.Context, inv *invoice.Invoice) error {
					inv.ID = uuid.New()
					inv.Number = "INV-000042"
					inv.CreatedAt = time.Now()
					return nil
				})

			svc := invoice.NewService(repo)
			inv, err := svc.CreateForOrder(context.Background(), orderID)
			require.NoError(t, err)

			assert.Equal(t, tt.subtotalCents, inv.SubtotalCents)
			assert.Equal(t, tt.wantVAT, inv.VATCents)
			assert.Equal(t, tt.wantTotal, inv.TotalCents)
			assert.Equal(t, invoice.StatusPending, inv.Status)
			assert.NotEmpty(t, inv.Number)
		})
	}
}

// A second create for the same order returns the existing invoice instead
// of erroring: checkout flows retry.
func TestService_CreateForOrder_Idempotent(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	orderID := uuid.New()
	existing := &invoice.Invoice{
		ID:            uuid.New(),
		OrderID:       orderID,
		Number:        "INV-000007",
		SubtotalCents: 1000,
		VATCents:      230,
		TotalCents:    1230,
		Status:        invoice.StatusPending,
	}

	repo := invoice.NewMockRepository(ctrl)
	repo.EXPECT().GetInvoiceByOrder(gomock.Any(), orderID).Return(existing, nil)

	svc := invoice.NewService(repo)
	inv, err := svc.CreateForOrder(context.Background(), orderID)
	require.NoError(t, err)
	assert.Equal(t, existing, inv)
}

// The insert itself can lose a race against a concurrent retry; the winner's
// row is returned.
func TestService_CreateForOrder_ConcurrentRetry(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	orderID := uuid.New()
	winner := &invoice.Invoice{ID: uuid.New(), OrderID: orderID, Number: "INV-000009"}

	repo := invoice.NewMockRepository(ctrl)
	repo.EXPECT().GetInvoiceByOrder(gomock.Any(), orderID).Return(nil, invoice.ErrNotFound)
	repo.EXPECT().OrderSubtotal(gomock.Any(), orderID).Return(int64(1000), nil)
	repo.EXPECT().InsertInvoice(gomock.Any(), gomock.Any()).Return(invoice.ErrExists)
	repo.EXPECT().GetInvoiceByOrder(gomock.Any(), orderID).Return(winner, nil)

	svc := invoice.NewService(repo)
	inv, err := svc.CreateForOrder(context.Background(), orderID)
	require.NoError(t, err)
	assert.Equal(t, winner, inv)
}

func TestService_CreateForOrder_OrderNotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	orderID := uuid.New()

	repo := invoice.NewMockRepository(ctrl)
	repo.EXPECT().GetInvoiceByOrder(gomock.Any(), orderID).Return(nil, invoice.ErrNotFound)
	repo.EXPECT().OrderSubtotal(gomock.Any(), orderID).Return(int64(0), invoice.ErrNotFound)

	svc := invoice.NewService(repo)
	_, err := svc.CreateForOrder(context.Background(), orderID)
	assert.ErrorIs(t, err, invoice.ErrNotFound)
}

func TestService_MarkPaid_NotPending(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	id := uuid.New()

	repo := invoice.NewMockRepository(ctrl)
	repo.EXPECT().MarkPaid(gomock.Any(), id).Return(invoice.ErrNotPending)

	svc := invoice.NewService(repo)
	assert.ErrorIs(t, svc.MarkPaid(context.Background(), id), invoice.ErrNotPending)
}

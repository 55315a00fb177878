package invoice

import (
	"context"
	"errors"
	"math"

	"github.com/google/uuid"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=invoice
type Repository interface {
	// InsertInvoice persists the invoice and allocates its sequential
	// number. ErrExists if the order already has one.
	InsertInvoice(ctx context.Context, inv *Invoice) error
	GetInvoice(ctx context.Context, id uuid.UUID) (*Invoice, error)
	GetInvoiceByOrder(ctx context.Context, orderID uuid.UUID) (*Invoice, error)

	// OrderSubtotal reads the order's subtotal in cents.
	OrderSubtotal(ctx context.Context, orderID uuid.UUID) (int64, error)

	MarkPaid(ctx context.Context, id uuid.UUID) error
	MarkCancelled(ctx context.Context, id uuid.UUID) error
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// CreateForOrder snapshots the order's amounts into a pending invoice.
// Calling it again for the same order returns the existing invoice, since
// checkout flows retry.
func (s *Service) CreateForOrder(ctx context.Context, orderID uuid.UUID) (*Invoice, error) {
	existing, err := s.repo.GetInvoiceByOrder(ctx, orderID)
	if err == nil {
		return existing, nil
	}

	if !errors.Is(err, ErrNotFound) {
		return nil, err
	}

	subtotal, err := s.repo.OrderSubtotal(ctx, orderID)
	if err != nil {
		return nil, err
	}

	vat := roundHalfUp(float64(subtotal) * VATRate)

	inv := &Invoice{
		OrderID:       orderID,
		SubtotalCents: subtotal,
		VATCents:      vat,
		TotalCents:    subtotal + vat,
		Status:        StatusPending,
	}

	err = s.repo.InsertInvoice(ctx, inv)
	if errors.Is(err, ErrExists) {
		// Lost a race against a concurrent retry; theirs is the record.
		return s.repo.GetInvoiceByOrder(ctx, orderID)
	}

	if err != nil {
		return nil, err
	}

	return inv, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Invoice, error) {
	return s.repo.GetInvoice(ctx, id)
}

func (s *Service) GetByOrder(ctx context.Context, orderID uuid.UUID) (*Invoice, error) {
	return s.repo.GetInvoiceByOrder(ctx, orderID)
}

// MarkPaid transitions pending -> paid and stamps paid_at.
func (s *Service) MarkPaid(ctx context.Context, id uuid.UUID) error {
	return s.repo.MarkPaid(ctx, id)
}

// Cancel transitions pending -> cancelled.
func (s *Service) Cancel(ctx context.Context, id uuid.UUID) error {
	return s.repo.MarkCancelled(ctx, id)
}

func roundHalfUp(v float64) int64 {
	return int64(math.Floor(v + 0.5))
}

package scan

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=scan
type Repository interface {
	// CreateScan appends a row unconditionally; existing rows are never
	// touched.
	CreateScan(ctx context.Context, sc *Scan) error
	ListScansByOrder(ctx context.Context, orderID uuid.UUID) ([]*Scan, error)
	LatestScan(ctx context.Context, orderID uuid.UUID) (*Scan, error)
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

type RecordParams struct {
	Type      Type
	OrderID   uuid.UUID
	BagID     *uuid.UUID
	ItemID    *uuid.UUID
	Geo       *Geo
	PhotoURL  string
	Signature string
	Notes     string
}

// Record validates and appends one scan. The recorder does not gate order
// state transitions; it is a pure evidence log consumed by the state
// machine's callers.
func (s *Service) Record(ctx context.Context, params RecordParams) (*Scan, error) {
	if !params.Type.Valid() {
		return nil, fmt.Errorf("%w: unknown scan type %q", ErrInvalidInput, params.Type)
	}

	if params.Geo != nil && !params.Geo.Valid() {
		return nil, fmt.Errorf("%w: coordinates out of range (%f, %f)",
			ErrInvalidInput, params.Geo.Lat, params.Geo.Lng)
	}

	sc := &Scan{
		Type:      params.Type,
		OrderID:   params.OrderID,
		BagID:     params.BagID,
		ItemID:    params.ItemID,
		Geo:       params.Geo,
		PhotoURL:  params.PhotoURL,
		Signature: params.Signature,
		Notes:     params.Notes,
	}
	if err := s.repo.CreateScan(ctx, sc); err != nil {
		return nil, err
	}

	return sc, nil
}

// ListByOrder returns the order's custody trail, newest first.
func (s *Service) ListByOrder(ctx context.Context, orderID uuid.UUID) ([]*Scan, error) {
	return s.repo.ListScansByOrder(ctx, orderID)
}

// Latest returns the most recent scan for SLA displays.
func (s *Service) Latest(ctx context.Context, orderID uuid.UUID) (*Scan, error) {
	return s.repo.LatestScan(ctx, orderID)
}

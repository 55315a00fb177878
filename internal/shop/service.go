package shop

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	CreateShop(ctx context.Context, sh *Shop) error
	GetShop(ctx context.Context, id uuid.UUID) (*Shop, error)
	ListShops(ctx context.Context, filter ListFilter) ([]*Shop, error)
	UpdateShop(ctx context.Context, sh *Shop) error
	ListSubcontractsByShop(ctx context.Context, shopID uuid.UUID) ([]*Subcontract, error)
}

type ListFilter struct {
	Processing *bool
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Create(ctx context.Context, sh *Shop) error {
	return s.repo.CreateShop(ctx, sh)
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Shop, error) {
	return s.repo.GetShop(ctx, id)
}

func (s *Service) List(ctx context.Context, filter ListFilter) ([]*Shop, error) {
	return s.repo.ListShops(ctx, filter)
}

func (s *Service) Update(ctx context.Context, sh *Shop) error {
	return s.repo.UpdateShop(ctx, sh)
}

// Subcontracts lists the routing records where the shop appears as either
// origin or processing party.
func (s *Service) Subcontracts(ctx context.Context, shopID uuid.UUID) ([]*Subcontract, error) {
	return s.repo.ListSubcontractsByShop(ctx, shopID)
}

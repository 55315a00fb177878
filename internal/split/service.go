package split

import (
	"context"
	"fmt"
	"math"

	"github.com/google/uuid"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=split
type Repository interface {
	CreatePolicy(ctx context.Context, p *Policy) error
	GetPolicy(ctx context.Context, id uuid.UUID) (*Policy, error)
	ListPolicies(ctx context.Context) ([]*Policy, error)

	// ActivatePolicy deactivates the current active policy and activates
	// the given one in a single transaction.
	ActivatePolicy(ctx context.Context, id uuid.UUID) error
	GetActivePolicy(ctx context.Context) (*Policy, error)

	// OrderTotal reads the order's total in cents.
	OrderTotal(ctx context.Context, orderID uuid.UUID) (int64, error)

	// ActiveCalcInputs reads the order total and the active policy in one
	// repeatable-read transaction so the pair cannot go stale between reads.
	ActiveCalcInputs(ctx context.Context, orderID uuid.UUID) (int64, *Policy, error)

	CreateSplit(ctx context.Context, sp *Split) error
	ListSplitsByOrder(ctx context.Context, orderID uuid.UUID) ([]*Split, error)
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

type PolicyParams struct {
	Name              string
	OriginShopPct     float64
	ProcessingShopPct float64
	DriverPct         float64
	PlatformPct       float64
	PlatformMinCents  int64
	FloorRebalance    bool
}

// CreatePolicy validates and persists a new policy version. Malformed
// percentages are rejected here, not at calculation time.
func (s *Service) CreatePolicy(ctx context.Context, params PolicyParams) (*Policy, error) {
	p := &Policy{
		Name:              params.Name,
		OriginShopPct:     params.OriginShopPct,
		ProcessingShopPct: params.ProcessingShopPct,
		DriverPct:         params.DriverPct,
		PlatformPct:       params.PlatformPct,
		PlatformMinCents:  params.PlatformMinCents,
		Rounding:          RoundingHalfUp,
		FloorRebalance:    params.FloorRebalance,
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}

	if err := s.repo.CreatePolicy(ctx, p); err != nil {
		return nil, err
	}

	return p, nil
}

// Activate makes the policy the single active one. The policy is
// re-validated so a malformed row can never become active.
func (s *Service) Activate(ctx context.Context, id uuid.UUID) error {
	p, err := s.repo.GetPolicy(ctx, id)
	if err != nil {
		return err
	}

	if err := p.Validate(); err != nil {
		return err
	}

	return s.repo.ActivatePolicy(ctx, id)
}

func (s *Service) GetPolicy(ctx context.Context, id uuid.UUID) (*Policy, error) {
	return s.repo.GetPolicy(ctx, id)
}

func (s *Service) ListPolicies(ctx context.Context) ([]*Policy, error) {
	return s.repo.ListPolicies(ctx)
}

func (s *Service) ActivePolicy(ctx context.Context) (*Policy, error) {
	return s.repo.GetActivePolicy(ctx)
}

// Calculate divides the order total per the given policy and persists the
// resulting split.
func (s *Service) Calculate(ctx context.Context, orderID, policyID uuid.UUID) (*Split, error) {
	total, err := s.repo.OrderTotal(ctx, orderID)
	if err != nil {
		return nil, err
	}

	p, err := s.repo.GetPolicy(ctx, policyID)
	if err != nil {
		return nil, err
	}

	return s.persist(ctx, compute(orderID, total, p))
}

// CalculateActive is Calculate against whatever policy is active, with the
// order total and the policy read in one logical operation.
func (s *Service) CalculateActive(ctx context.Context, orderID uuid.UUID) (*Split, error) {
	total, p, err := s.repo.ActiveCalcInputs(ctx, orderID)
	if err != nil {
		return nil, err
	}

	return s.persist(ctx, compute(orderID, total, p))
}

func (s *Service) ListByOrder(ctx context.Context, orderID uuid.UUID) ([]*Split, error) {
	return s.repo.ListSplitsByOrder(ctx, orderID)
}

func (s *Service) persist(ctx context.Context, sp *Split) (*Split, error) {
	if err := s.repo.CreateSplit(ctx, sp); err != nil {
		return nil, fmt.Errorf("persisting split: %w", err)
	}

	return sp, nil
}

// compute derives the four shares deterministically:
//
//  1. Each share is round-half-up of totalCents * pct.
//  2. The rounding residual (positive or negative) is assigned to the
//     platform share, so nominal splits conserve the total exactly.
//  3. If the platform share is below the policy floor it is raised to it.
//     With FloorRebalance the raise is deducted from the largest other
//     share (clamped at zero); without it the shares may exceed the total.
func compute(orderID uuid.UUID, totalCents int64, p *Policy) *Split {
	origin := roundShare(totalCents, p.OriginShopPct)
	processing := roundShare(totalCents, p.ProcessingShopPct)
	driver := roundShare(totalCents, p.DriverPct)
	platform := roundShare(totalCents, p.PlatformPct)

	platform += totalCents - (origin + processing + driver + platform)

	if platform < p.PlatformMinCents {
		raise := p.PlatformMinCents - platform
		platform = p.PlatformMinCents

		if p.FloorRebalance {
			largest := &origin
			if processing > *largest {
				largest = &processing
			}

			if driver > *largest {
				largest = &driver
			}

			*largest -= raise
			if *largest < 0 {
				*largest = 0
			}
		}
	}

	return &Split{
		OrderID:             orderID,
		PolicyID:            p.ID,
		OriginShopCents:     origin,
		ProcessingShopCents: processing,
		DriverCents:         driver,
		PlatformCents:       platform,
		OriginShopPct:       p.OriginShopPct,
		ProcessingShopPct:   p.ProcessingShopPct,
		DriverPct:           p.DriverPct,
		PlatformPct:         p.PlatformPct,
	}
}

func roundShare(totalCents int64, pct float64) int64 {
	return int64(math.Floor(float64(totalCents)*pct + 0.5))
}

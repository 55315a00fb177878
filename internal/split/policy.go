package split

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
)

var (
	ErrNotFound      = errors.New("not found")
	ErrInvalidPolicy = errors.New("invalid split policy")
)

// RoundingMode names the tie-breaking rule for fractional cents.
type RoundingMode string

// RoundingHalfUp is the only supported mode: round half away from zero at
// two decimal places, which for integer cents means half-up on the cent.
const RoundingHalfUp RoundingMode = "half_up_2dp"

// pctTolerance is the allowed drift when checking that the four
// percentages sum to 1.0.
const pctTolerance = 1e-6

// Policy is a named, versioned revenue-split configuration. Exactly one
// policy is active at a time; activation atomically deactivates the
// previous one.
type Policy struct {
	ID                uuid.UUID
	Name              string
	Version           int
	OriginShopPct     float64
	ProcessingShopPct float64
	DriverPct         float64
	PlatformPct       float64
	PlatformMinCents  int64
	Rounding          RoundingMode

	// FloorRebalance controls what happens when the platform minimum fee
	// kicks in. False (the default) lets the floor override without
	// rebalancing, so the four shares may exceed the order total by the
	// raise. True funds the raise by deducting it from the largest other
	// share, conserving the total.
	FloorRebalance bool

	Active    bool
	CreatedAt time.Time
}

// Validate checks the policy invariants enforced at creation and
// activation time, never at split-calculation time.
func (p *Policy) Validate() error {
	if p.Name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidPolicy)
	}

	pcts := []float64{p.OriginShopPct, p.ProcessingShopPct, p.DriverPct, p.PlatformPct}
	for _, pct := range pcts {
		if pct < 0 || pct > 1 {
			return fmt.Errorf("%w: percentage %v out of [0,1]", ErrInvalidPolicy, pct)
		}
	}

	sum := p.OriginShopPct + p.ProcessingShopPct + p.DriverPct + p.PlatformPct
	if math.Abs(sum-1.0) > pctTolerance {
		return fmt.Errorf("%w: percentages sum to %v, want 1.0", ErrInvalidPolicy, sum)
	}

	if p.PlatformMinCents < 0 {
		return fmt.Errorf("%w: platform minimum must be non-negative", ErrInvalidPolicy)
	}

	if p.Rounding != RoundingHalfUp {
		return fmt.Errorf("%w: unsupported rounding mode %q", ErrInvalidPolicy, p.Rounding)
	}

	return nil
}

// Split is the immutable computed division of one order's revenue. A
// recalculation appends a new row; existing splits are never mutated, so
// the history survives policy corrections. The percentages actually used
// are copied onto the row for audit even if the policy later changes.
type Split struct {
	ID                  uuid.UUID
	OrderID             uuid.UUID
	PolicyID            uuid.UUID
	OriginShopCents     int64
	ProcessingShopCents int64
	DriverCents         int64
	PlatformCents       int64
	OriginShopPct       float64
	ProcessingShopPct   float64
	DriverPct           float64
	PlatformPct         float64
	CreatedAt           time.Time
}

package split_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/mrbl-app/mrbl/internal/split"
)

func standardPolicy() *split.Policy {
	return &split.Policy{
		ID:                uuid.New(),
		Name:              "standard",
		Version:           1,
		OriginShopPct:     0.2,
		ProcessingShopPct: 0.55,
		DriverPct:         0.1,
		PlatformPct:       0.15,
		Rounding:          split.RoundingHalfUp,
	}
}

func TestService_Calculate_NominalConservation(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	orderID := uuid.New()
	policy := standardPolicy()

	repo := split.NewMockRepository(ctrl)
	repo.EXPECT().OrderTotal(gomock.Any(), orderID).Return(int64(10000), nil)
	repo.EXPECT().GetPolicy(gomock.Any(), policy.ID).Return(policy, nil)
	repo.EXPECT().
		CreateSplit(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, sp *split.Split) error {
			sp.ID = uuid.New()
			return nil
		})

	svc := split.NewService(repo)
	sp, err := svc.Calculate(context.Background(), orderID, policy.ID)
	require.NoError(t, err)

	assert.Equal(t, int64(2000), sp.OriginShopCents)
	assert.Equal(t, int64(5500), sp.ProcessingShopCents)
	assert.Equal(t, int64(1000), sp.DriverCents)
	assert.Equal(t, int64(1500), sp.PlatformCents)

	sum := sp.OriginShopCents + sp.ProcessingShopCents + sp.DriverCents + sp.PlatformCents
	assert.Equal(t, int64(10000), sum)

	// The percentages in force are frozen onto the split for audit.
	assert.Equal(t, policy.ID, sp.PolicyID)
	assert.Equal(t, 0.15, sp.PlatformPct)
}

// Odd totals leave rounding residue; it must land on the platform share so
// the total still conserves exactly.
func TestService_Calculate_RoundingResidualToPlatform(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	orderID := uuid.New()
	policy := &split.Policy{
		ID:                uuid.New(),
		Name:              "quarters",
		OriginShopPct:     0.25,
		ProcessingShopPct: 0.25,
		DriverPct:         0.25,
		PlatformPct:       0.25,
		Rounding:          split.RoundingHalfUp,
	}

	repo := split.NewMockRepository(ctrl)
	repo.EXPECT().OrderTotal(gomock.Any(), orderID).Return(int64(101), nil)
	repo.EXPECT().GetPolicy(gomock.Any(), policy.ID).Return(policy, nil)
	repo.EXPECT().CreateSplit(gomock.Any(), gomock.Any()).Return(nil)

	svc := split.NewService(repo)
	sp, err := svc.Calculate(context.Background(), orderID, policy.ID)
	require.NoError(t, err)

	sum := sp.OriginShopCents + sp.ProcessingShopCents + sp.DriverCents + sp.PlatformCents
	assert.Equal(t, int64(101), sum)
	assert.Equal(t, int64(25), sp.OriginShopCents)
	assert.Equal(t, int64(25), sp.ProcessingShopCents)
	assert.Equal(t, int64(25), sp.DriverCents)
	// Each share rounds to 25; the leftover cent lands on the platform.
	assert.Equal(t, int64(26), sp.PlatformCents)
}

// Without rebalancing, the platform floor overrides and the four shares may
// exceed the order total. This is the documented non-conservation behavior.
func TestService_Calculate_FloorWithoutRebalance(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	orderID := uuid.New()
	policy := standardPolicy()
	policy.PlatformMinCents = 50

	repo := split.NewMockRepository(ctrl)
	repo.EXPECT().OrderTotal(gomock.Any(), orderID).Return(int64(100), nil)
	repo.EXPECT().GetPolicy(gomock.Any(), policy.ID).Return(policy, nil)
	repo.EXPECT().CreateSplit(gomock.Any(), gomock.Any()).Return(nil)

	svc := split.NewService(repo)
	sp, err := svc.Calculate(context.Background(), orderID, policy.ID)
	require.NoError(t, err)

	// Computed 15 cents, raised to the 50 cent floor.
	assert.Equal(t, int64(50), sp.PlatformCents)
	assert.Equal(t, int64(20), sp.OriginShopCents)
	assert.Equal(t, int64(55), sp.ProcessingShopCents)
	assert.Equal(t, int64(10), sp.DriverCents)

	// The sum exceeds the 100 cent total by the 35 cent raise.
	sum := sp.OriginShopCents + sp.ProcessingShopCents + sp.DriverCents + sp.PlatformCents
	assert.Equal(t, int64(135), sum)
}

// With rebalancing, the raise is funded by the largest other share and the
// total conserves.
func TestService_Calculate_FloorWithRebalance(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	orderID := uuid.New()
	policy := standardPolicy()
	policy.PlatformMinCents = 50
	policy.FloorRebalance = true

	repo := split.NewMockRepository(ctrl)
	repo.EXPECT().OrderTotal(gomock.Any(), orderID).Return(int64(100), nil)
	repo.EXPECT().GetPolicy(gomock.Any(), policy.ID).Return(policy, nil)
	repo.EXPECT().CreateSplit(gomock.Any(), gomock.Any()).Return(nil)

	svc := split.NewService(repo)
	sp, err := svc.Calculate(context.Background(), orderID, policy.ID)
	require.NoError(t, err)

	assert.Equal(t, int64(50), sp.PlatformCents)
	// Processing shop held the largest share (55) and funds the 35 cent raise.
	assert.Equal(t, int64(20), sp.ProcessingShopCents)
	assert.Equal(t, int64(20), sp.OriginShopCents)
	assert.Equal(t, int64(10), sp.DriverCents)

	sum := sp.OriginShopCents + sp.ProcessingShopCents + sp.DriverCents + sp.PlatformCents
	assert.Equal(t, int64(100), sum)
}

func TestService_Calculate_NotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	orderID := uuid.New()
	policyID := uuid.New()

	repo := split.NewMockRepository(ctrl)
	repo.EXPECT().OrderTotal(gomock.Any(), orderID).Return(int64(0), split.ErrNotFound)

	svc := split.NewService(repo)
	_, err := svc.Calculate(context.Background(), orderID, policyID)
	assert.ErrorIs(t, err, split.ErrNotFound)
}

func TestService_CalculateActive(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	orderID := uuid.New()
	policy := standardPolicy()
	policy.Active = true

	repo := split.NewMockRepository(ctrl)
	repo.EXPECT().ActiveCalcInputs(gomock.Any(), orderID).Return(int64(10000), policy, nil)
	repo.EXPECT().CreateSplit(gomock.Any(), gomock.Any()).Return(nil)

	svc := split.NewService(repo)
	sp, err := svc.CalculateActive(context.Background(), orderID)
	require.NoError(t, err)
	assert.Equal(t, policy.ID, sp.PolicyID)
	assert.Equal(t, int64(1500), sp.PlatformCents)
}

func TestService_CreatePolicy_Validation(t *testing.T) {
	tests := []struct {
		name    string
		params  split.PolicyParams
		wantErr bool
	}{
		{
			name: "Valid",
			params: split.PolicyParams{
				Name:              "standard",
				OriginShopPct:     0.2,
				ProcessingShopPct: 0.55,
				DriverPct:         0.1,
				PlatformPct:       0.15,
			},
		},
		{
			name: "SumBelowOne",
			params: split.PolicyParams{
				Name:              "short",
				OriginShopPct:     0.2,
				ProcessingShopPct: 0.5,
				DriverPct:         0.1,
				PlatformPct:       0.1,
			},
			wantErr: true,
		},
		{
			name: "NegativePct",
			params: split.PolicyParams{
				Name:              "negative",
				OriginShopPct:     -0.1,
				ProcessingShopPct: 0.85,
				DriverPct:         0.1,
				PlatformPct:       0.15,
			},
			wantErr: true,
		},
		{
			name: "NegativeFloor",
			params: split.PolicyParams{
				Name:              "badfloor",
				OriginShopPct:     0.2,
				ProcessingShopPct: 0.55,
				DriverPct:         0.1,
				PlatformPct:       0.15,
				PlatformMinCents:  -1,
			},
			wantErr: true,
		},
		{
			name:    "MissingName",
			params:  split.PolicyParams{OriginShopPct: 0.25, ProcessingShopPct: 0.25, DriverPct: 0.25, PlatformPct: 0.25},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := split.NewMockRepository(ctrl)
			if !tt.wantErr {
				repo.EXPECT().CreatePolicy(gomock.Any(), gomock.Any()).Return(nil)
			}

			svc := split.NewService(repo)
			p, err := svc.CreatePolicy(context.Background(), tt.params)

			if tt.wantErr {
				assert.ErrorIs(t, err, split.ErrInvalidPolicy)
				assert.Nil(t, p)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, split.RoundingHalfUp, p.Rounding)
			assert.False(t, p.Active)
		})
	}
}

// Activation re-validates so a malformed row can never become the active
// policy.
func TestService_Activate(t *testing.T) {
	t.Run("Valid", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		policy := standardPolicy()
		repo := split.NewMockRepository(ctrl)
		repo.EXPECT().GetPolicy(gomock.Any(), policy.ID).Return(policy, nil)
		repo.EXPECT().ActivatePolicy(gomock.Any(), policy.ID).Return(nil)

		svc := split.NewService(repo)
		require.NoError(t, svc.Activate(context.Background(), policy.ID))
	})

	t.Run("MalformedRejected", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		policy := standardPolicy()
		policy.PlatformPct = 0.5 // sums to 1.35

		repo := split.NewMockRepository(ctrl)
		repo.EXPECT().GetPolicy(gomock.Any(), policy.ID).Return(policy, nil)

		svc := split.NewService(repo)
		err := svc.Activate(context.Background(), policy.ID)
		assert.ErrorIs(t, err, split.ErrInvalidPolicy)
	})

	t.Run("NotFound", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		id := uuid.New()
		repo := split.NewMockRepository(ctrl)
		repo.EXPECT().GetPolicy(gomock.Any(), id).Return(nil, split.ErrNotFound)

		svc := split.NewService(repo)
		assert.ErrorIs(t, svc.Activate(context.Background(), id), split.ErrNotFound)
	})
}

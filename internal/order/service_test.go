package order_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/mrbl-app/mrbl/internal/order"
)

func TestService_Create(t *testing.T) {
	type testCase struct {
		name      string
		params    order.CreateParams
		setupMock func(m *order.MockRepository)
		wantErr   error
	}

	tests := []testCase{
		{
			name: "Success",
			params: order.CreateParams{
				CustomerID:      uuid.New(),
				PickupAddress:   "12 Dame St, Dublin 2",
				DeliveryAddress: "12 Dame St, Dublin 2",
				PickupDate:      time.Date(2024, 5, 10, 0, 0, 0, 0, time.UTC),
				PickupWindow:    "09:00-11:00",
				SubtotalCents:   2500,
				VATCents:        575,
				TotalCents:      3075,
				PaymentMethod:   "card",
			},
			setupMock: func(m *order.MockRepository) {
				m.EXPECT().
					CreateOrder(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, o *order.Order) error {
						o.ID = uuid.New()
						o.CreatedAt = time.Now()
						return nil
					})
			},
		},
		{
			name: "NegativeTotal",
			params: order.CreateParams{
				CustomerID: uuid.New(),
				TotalCents: -1,
			},
			wantErr: order.ErrInvalidInput,
		},
		{
			name:   "RepoError",
			params: order.CreateParams{CustomerID: uuid.New()},
			setupMock: func(m *order.MockRepository) {
				m.EXPECT().
					CreateOrder(gomock.Any(), gomock.Any()).
					Return(errors.New("db error"))
			},
			wantErr: errors.New("db error"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := order.NewMockRepository(ctrl)
			if tt.setupMock != nil {
				tt.setupMock(repo)
			}

			svc := order.NewService(repo)
			got, err := svc.Create(context.Background(), tt.params)

			if tt.wantErr != nil {
				assert.Error(t, err)
				assert.Nil(t, got)

				return
			}

			require.NoError(t, err)
			assert.NotEmpty(t, got.ID)
			assert.Equal(t, order.StateCreated, got.State)
			assert.Equal(t, "EUR", got.Currency)
		})
	}
}

func TestService_Transition(t *testing.T) {
	id := uuid.New()

	type testCase struct {
		name      string
		newState  order.State
		setupMock func(m *order.MockRepository)
		wantErr   error
	}

	tests := []testCase{
		{
			name:     "LegalSuccessor",
			newState: order.StateConfirmed,
			setupMock: func(m *order.MockRepository) {
				m.EXPECT().GetOrder(gomock.Any(), id).
					Return(&order.Order{ID: id, State: order.StateCreated}, nil)
				m.EXPECT().UpdateState(gomock.Any(), id, order.StateCreated, order.StateConfirmed).
					Return(nil)
				m.EXPECT().GetOrder(gomock.Any(), id).
					Return(&order.Order{ID: id, State: order.StateConfirmed}, nil)
			},
		},
		{
			name:     "SkipAhead",
			newState: order.StateDelivered,
			setupMock: func(m *order.MockRepository) {
				m.EXPECT().GetOrder(gomock.Any(), id).
					Return(&order.Order{ID: id, State: order.StateCreated}, nil)
			},
			wantErr: order.ErrInvalidTransition,
		},
		{
			name:     "Backwards",
			newState: order.StateWashing,
			setupMock: func(m *order.MockRepository) {
				m.EXPECT().GetOrder(gomock.Any(), id).
					Return(&order.Order{ID: id, State: order.StateDrying}, nil)
			},
			wantErr: order.ErrInvalidTransition,
		},
		{
			name:     "TerminalState",
			newState: order.StateConfirmed,
			setupMock: func(m *order.MockRepository) {
				m.EXPECT().GetOrder(gomock.Any(), id).
					Return(&order.Order{ID: id, State: order.StateClosed}, nil)
			},
			wantErr: order.ErrInvalidTransition,
		},
		{
			name:     "UnknownState",
			newState: "teleported",
			wantErr:  order.ErrInvalidTransition,
		},
		{
			name:     "NotFound",
			newState: order.StateConfirmed,
			setupMock: func(m *order.MockRepository) {
				m.EXPECT().GetOrder(gomock.Any(), id).
					Return(nil, order.ErrNotFound)
			},
			wantErr: order.ErrNotFound,
		},
		{
			name:     "LostRaceAtStore",
			newState: order.StateConfirmed,
			setupMock: func(m *order.MockRepository) {
				m.EXPECT().GetOrder(gomock.Any(), id).
					Return(&order.Order{ID: id, State: order.StateCreated}, nil)
				m.EXPECT().UpdateState(gomock.Any(), id, order.StateCreated, order.StateConfirmed).
					Return(order.ErrInvalidTransition)
			},
			wantErr: order.ErrInvalidTransition,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := order.NewMockRepository(ctrl)
			if tt.setupMock != nil {
				tt.setupMock(repo)
			}

			svc := order.NewService(repo)
			got, err := svc.Transition(context.Background(), id, tt.newState)

			if tt.wantErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, got)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.newState, got.State)
		})
	}
}

func TestService_Transition_SubcontractedBranch(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	id := uuid.New()
	repo := order.NewMockRepository(ctrl)

	repo.EXPECT().GetOrder(gomock.Any(), id).
		Return(&order.Order{ID: id, State: order.StateAtOriginShop}, nil)
	repo.EXPECT().UpdateState(gomock.Any(), id, order.StateAtOriginShop, order.StateSubcontracted).
		Return(nil)
	repo.EXPECT().GetOrder(gomock.Any(), id).
		Return(&order.Order{ID: id, State: order.StateSubcontracted}, nil)

	svc := order.NewService(repo)
	got, err := svc.Transition(context.Background(), id, order.StateSubcontracted)
	require.NoError(t, err)
	assert.Equal(t, order.StateSubcontracted, got.State)
}

// Two drivers race for the same confirmed order: exactly one claim succeeds
// and the loser sees ErrAlreadyAssigned, mirroring the conditional update at
// the store.
func TestService_ClaimDriver_Race(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	orderID := uuid.New()
	driverA := uuid.New()
	driverB := uuid.New()

	var (
		mu      sync.Mutex
		claimed *uuid.UUID
	)

	repo := order.NewMockRepository(ctrl)
	repo.EXPECT().
		ClaimDriver(gomock.Any(), orderID, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ uuid.UUID, driverID uuid.UUID) (*order.Order, error) {
			mu.Lock()
			defer mu.Unlock()

			if claimed != nil {
				return nil, order.ErrAlreadyAssigned
			}

			d := driverID
			claimed = &d

			return &order.Order{ID: orderID, State: order.StateConfirmed, DriverID: &d}, nil
		}).
		Times(2)

	svc := order.NewService(repo)

	type result struct {
		o   *order.Order
		err error
	}

	results := make(chan result, 2)

	var wg sync.WaitGroup

	for _, d := range []uuid.UUID{driverA, driverB} {
		wg.Add(1)

		go func(driverID uuid.UUID) {
			defer wg.Done()

			o, err := svc.ClaimDriver(context.Background(), orderID, driverID)
			results <- result{o: o, err: err}
		}(d)
	}

	wg.Wait()
	close(results)

	var wins, losses int

	for r := range results {
		if r.err == nil {
			wins++

			require.NotNil(t, r.o.DriverID)
			assert.Equal(t, *claimed, *r.o.DriverID)

			continue
		}

		losses++

		assert.ErrorIs(t, r.err, order.ErrAlreadyAssigned)
	}

	assert.Equal(t, 1, wins)
	assert.Equal(t, 1, losses)
}

func TestService_Subcontract(t *testing.T) {
	orderID := uuid.New()
	originID := uuid.New()
	processingID := uuid.New()

	t.Run("Success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		repo := order.NewMockRepository(ctrl)
		repo.EXPECT().GetOrder(gomock.Any(), orderID).
			Return(&order.Order{ID: orderID, State: order.StateAtOriginShop, OriginShopID: &originID}, nil)
		repo.EXPECT().CreateSubcontract(gomock.Any(), orderID, originID, processingID).
			Return(nil)
		repo.EXPECT().GetOrder(gomock.Any(), orderID).
			Return(&order.Order{
				ID: orderID, State: order.StateSubcontracted,
				OriginShopID: &originID, ProcessingShopID: &processingID,
			}, nil)

		svc := order.NewService(repo)
		got, err := svc.Subcontract(context.Background(), orderID, processingID)
		require.NoError(t, err)
		assert.Equal(t, order.StateSubcontracted, got.State)
		assert.Equal(t, processingID, *got.ProcessingShopID)
	})

	t.Run("WrongState", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		repo := order.NewMockRepository(ctrl)
		repo.EXPECT().GetOrder(gomock.Any(), orderID).
			Return(&order.Order{ID: orderID, State: order.StateWashing, OriginShopID: &originID}, nil)

		svc := order.NewService(repo)
		_, err := svc.Subcontract(context.Background(), orderID, processingID)
		assert.ErrorIs(t, err, order.ErrInvalidTransition)
	})

	t.Run("NoOriginShop", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		repo := order.NewMockRepository(ctrl)
		repo.EXPECT().GetOrder(gomock.Any(), orderID).
			Return(&order.Order{ID: orderID, State: order.StateAtOriginShop}, nil)

		svc := order.NewService(repo)
		_, err := svc.Subcontract(context.Background(), orderID, processingID)
		assert.ErrorIs(t, err, order.ErrInvalidTransition)
	})
}

func TestService_SetTotals(t *testing.T) {
	id := uuid.New()

	t.Run("ClosedOrderRejected", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		repo := order.NewMockRepository(ctrl)
		repo.EXPECT().UpdateTotals(gomock.Any(), id, int64(1000), int64(230), int64(1230)).
			Return(order.ErrClosed)

		svc := order.NewService(repo)
		err := svc.SetTotals(context.Background(), id, 1000, 230, 1230)
		assert.ErrorIs(t, err, order.ErrClosed)
	})

	t.Run("NegativeRejectedBeforePersistence", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		repo := order.NewMockRepository(ctrl)

		svc := order.NewService(repo)
		err := svc.SetTotals(context.Background(), id, -1, 0, 0)
		assert.ErrorIs(t, err, order.ErrInvalidInput)
	})
}

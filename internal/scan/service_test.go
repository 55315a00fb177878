package scan_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/mrbl-app/mrbl/internal/scan"
)

func TestService_Record(t *testing.T) {
	orderID := uuid.New()

	type testCase struct {
		name      string
		params    scan.RecordParams
		setupMock func(m *scan.MockRepository)
		wantErr   error
	}

	tests := []testCase{
		{
			name: "Success",
			params: scan.RecordParams{
				Type:    scan.TypePickup,
				OrderID: orderID,
				Geo:     &scan.Geo{Lat: 53.3498, Lng: -6.2603},
				Notes:   "collected at door",
			},
			setupMock: func(m *scan.MockRepository) {
				m.EXPECT().
					CreateScan(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, sc *scan.Scan) error {
						sc.ID = uuid.New()
						sc.CreatedAt = time.Now()
						return nil
					})
			},
		},
		{
			name: "UnknownType",
			params: scan.RecordParams{
				Type:    "teleport",
				OrderID: orderID,
			},
			wantErr: scan.ErrInvalidInput,
		},
		{
			name: "LatitudeOutOfRange",
			params: scan.RecordParams{
				Type:    scan.TypeDelivery,
				OrderID: orderID,
				Geo:     &scan.Geo{Lat: 91, Lng: 0},
			},
			wantErr: scan.ErrInvalidInput,
		},
		{
			name: "LongitudeOutOfRange",
			params: scan.RecordParams{
				Type:    scan.TypeDelivery,
				OrderID: orderID,
				Geo:     &scan.Geo{Lat: 0, Lng: -181},
			},
			wantErr: scan.ErrInvalidInput,
		},
		{
			name: "UnknownOrder",
			params: scan.RecordParams{
				Type:    scan.TypeIntake,
				OrderID: orderID,
			},
			setupMock: func(m *scan.MockRepository) {
				m.EXPECT().
					CreateScan(gomock.Any(), gomock.Any()).
					Return(scan.ErrNotFound)
			},
			wantErr: scan.ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := scan.NewMockRepository(ctrl)
			if tt.setupMock != nil {
				tt.setupMock(repo)
			}

			svc := scan.NewService(repo)
			got, err := svc.Record(context.Background(), tt.params)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, got)

				return
			}

			require.NoError(t, err)
			assert.NotEmpty(t, got.ID)
			assert.Equal(t, tt.params.Type, got.Type)
		})
	}
}

// Duplicate scans of the same type are permitted: the recorder appends both
// and never deduplicates. Retried network calls rely on this.
func TestService_Record_DuplicatesAppend(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	orderID := uuid.New()

	var appended []*scan.Scan

	repo := scan.NewMockRepository(ctrl)
	repo.EXPECT().
		CreateScan(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, sc *scan.Scan) error {
			sc.ID = uuid.New()
			sc.CreatedAt = time.Now().Add(time.Duration(len(appended)) * time.Millisecond)
			appended = append(appended, sc)
			return nil
		}).
		Times(2)

	svc := scan.NewService(repo)
	params := scan.RecordParams{Type: scan.TypePickup, OrderID: orderID}

	first, err := svc.Record(context.Background(), params)
	require.NoError(t, err)

	second, err := svc.Record(context.Background(), params)
	require.NoError(t, err)

	require.Len(t, appended, 2)
	assert.NotEqual(t, first.ID, second.ID)
	assert.True(t, second.CreatedAt.After(first.CreatedAt))
}

func TestService_ListByOrder(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	orderID := uuid.New()
	repo := scan.NewMockRepository(ctrl)
	repo.EXPECT().
		ListScansByOrder(gomock.Any(), orderID).
		Return([]*scan.Scan{
			{ID: uuid.New(), Type: scan.TypeIntake},
			{ID: uuid.New(), Type: scan.TypePickup},
		}, nil)

	svc := scan.NewService(repo)
	got, err := svc.ListByOrder(context.Background(), orderID)
	require.NoError(t, err)
	assert.Len(t, got, 2)
}

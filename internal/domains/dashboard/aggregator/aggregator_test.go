package aggregator_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"parkspot/config"
	"parkspot/internal/domains/dashboard/aggregator"
	dashboardMocks "parkspot/internal/domains/dashboard/mocks"
	facilityMocks "parkspot/internal/domains/facility/mocks"
	facilityModel "parkspot/internal/domains/facility/model"
)

func newAggregator(t *testing.T) (*aggregator.Aggregator, *dashboardMocks.MockDashboard, *facilityMocks.MockFacility) {
	t.Helper()

	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	mockDashboard := dashboardMocks.NewMockDashboard(ctrl)
	mockFacilityRepo := facilityMocks.NewMockFacility(ctrl)

	cfg := &config.Config{}
	cfg.Dashboard.RefreshIntervalSeconds = 10

	return aggregator.New(mockDashboard, mockFacilityRepo, cfg), mockDashboard, mockFacilityRepo
}

func TestAggregator_RefreshAll(t *testing.T) {
	t.Run("refreshes every active facility", func(t *testing.T) {
		agg, mockDashboard, mockFacilityRepo := newAggregator(t)

		mockFacilityRepo.EXPECT().
			GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
			Return([]facilityModel.Facility{{ID: "facility-1"}, {ID: "facility-2"}}, nil)

		mockDashboard.EXPECT().
			SnapshotFacility(gomock.Any(), "facility-1").
			Return(nil)
		mockDashboard.EXPECT().
			SnapshotFacility(gomock.Any(), "facility-2").
			Return(nil)

		agg.RefreshAll(context.Background())
	})

	t.Run("one failed snapshot does not stop the cycle", func(t *testing.T) {
		agg, mockDashboard, mockFacilityRepo := newAggregator(t)

		mockFacilityRepo.EXPECT().
			GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
			Return([]facilityModel.Facility{{ID: "facility-1"}, {ID: "facility-2"}}, nil)

		mockDashboard.EXPECT().
			SnapshotFacility(gomock.Any(), "facility-1").
			Return(errors.New("cache unavailable"))
		mockDashboard.EXPECT().
			SnapshotFacility(gomock.Any(), "facility-2").
			Return(nil)

		agg.RefreshAll(context.Background())
	})

	t.Run("listing failure skips the cycle", func(t *testing.T) {
		agg, _, mockFacilityRepo := newAggregator(t)

		mockFacilityRepo.EXPECT().
			GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil, errors.New("database down"))

		agg.RefreshAll(context.Background())
	})

	t.Run("cancelled context stops mid cycle", func(t *testing.T) {
		agg, _, mockFacilityRepo := newAggregator(t)

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		mockFacilityRepo.EXPECT().
			GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
			Return([]facilityModel.Facility{{ID: "facility-1"}}, nil)

		// No snapshot expectation: the loop checks the context first.
		agg.RefreshAll(ctx)
	})
}

func TestAggregator_StartStopsOnCancel(t *testing.T) {
	agg, _, _ := newAggregator(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	done := make(chan struct{})

	go func() {
		agg.Start(ctx)
		close(done)
	}()

	select {
	case <-done:
	case <-ctx.Done():
	}

	<-done
	assert.Error(t, ctx.Err())
}

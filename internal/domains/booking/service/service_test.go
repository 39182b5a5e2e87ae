package service_test

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"parkspot/config"
	kafkaMocks "parkspot/infras/kafka/mocks"
	"parkspot/infras/otel/mocks"
	bookingMocks "parkspot/internal/domains/booking/mocks"
	"parkspot/internal/domains/booking/model"
	"parkspot/internal/domains/booking/model/dto"
	"parkspot/internal/domains/booking/service"
	facilityMocks "parkspot/internal/domains/facility/mocks"
	facilityModel "parkspot/internal/domains/facility/model"
	vehicleMocks "parkspot/internal/domains/vehicle/mocks"
	vehicleModel "parkspot/internal/domains/vehicle/model"
	cacheMocks "parkspot/shared/cache/mocks"
	"parkspot/shared/constant"
	"parkspot/shared/failure"
)

const (
	testUserID     = "user-id-123"
	testFacilityID = "facility-id-123"
	testVehicleID  = "vehicle-id-123"
)

func uniqueViolation() error {
	return &pq.Error{Code: pq.ErrorCode(constant.PqErrorCodeUniqueViolation)}
}

func userContext(id string) context.Context {
	return context.WithValue(context.Background(), constant.ContextKeyUserID, id)
}

func validCreateRequest() dto.CreateBookingRequest {
	return dto.CreateBookingRequest{
		FacilityID: testFacilityID,
		VehicleID:  testVehicleID,
		Location: dto.Location{
			Name:    "Central Lot",
			Address: "1 Main St",
		},
		StartTime:     time.Now().Add(time.Hour).Format(constant.DateFormat),
		DurationHours: 2,
		Total:         40,
		Phone:         "555-0100",
	}
}

func ownedVehicle() vehicleModel.Vehicle {
	return vehicleModel.Vehicle{
		ID:       testVehicleID,
		UserID:   testUserID,
		Category: vehicleModel.CategoryFourWheeler,
	}
}

func TestBookingService_Create(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := bookingMocks.NewMockBooking(ctrl)
	mockVehicleRepo := vehicleMocks.NewMockVehicle(ctrl)
	mockFacilityRepo := facilityMocks.NewMockFacility(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockKafka := kafkaMocks.NewMockClient(ctrl)
	mockOtel := mocks.NewOtel()

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600
	cfg.Kafka.Topics.BookingCreated = "booking.created"

	svc := service.New(mockRepo, mockVehicleRepo, mockFacilityRepo, cfg, mockCache, mockKafka, mockOtel)

	// Listing invalidation runs in a goroutine after creation.
	mockCache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	tests := []struct {
		name      string
		req       dto.CreateBookingRequest
		setupMock func()
		wantErr   bool
		wantCode  int
	}{
		{
			name: "successful creation publishes capacity event",
			req:  validCreateRequest(),
			setupMock: func() {
				mockVehicleRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(ownedVehicle(), nil)

				mockFacilityRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(true, nil)

				mockRepo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					Return(nil)

				mockKafka.EXPECT().
					SendMessages(gomock.Any(), "booking.created", gomock.Any()).
					Return(nil)
			},
			wantErr: false,
		},
		{
			name: "publish failure does not fail the booking",
			req:  validCreateRequest(),
			setupMock: func() {
				mockVehicleRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(ownedVehicle(), nil)

				mockFacilityRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(true, nil)

				mockRepo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					Return(nil)

				mockKafka.EXPECT().
					SendMessages(gomock.Any(), "booking.created", gomock.Any()).
					Return(errors.New("broker unavailable"))
			},
			wantErr: false,
		},
		{
			name: "vehicle belonging to another user is not found",
			req:  validCreateRequest(),
			setupMock: func() {
				vehicle := ownedVehicle()
				vehicle.UserID = "someone-else"

				mockVehicleRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(vehicle, nil)
			},
			wantErr:  true,
			wantCode: http.StatusNotFound,
		},
		{
			name: "unknown vehicle is not found",
			req:  validCreateRequest(),
			setupMock: func() {
				mockVehicleRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(vehicleModel.Vehicle{}, nil)
			},
			wantErr:  true,
			wantCode: http.StatusNotFound,
		},
		{
			name: "unknown facility is not found",
			req:  validCreateRequest(),
			setupMock: func() {
				mockVehicleRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(ownedVehicle(), nil)

				mockFacilityRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(false, nil)
			},
			wantErr:  true,
			wantCode: http.StatusNotFound,
		},
		{
			name: "reference collision retries once and succeeds",
			req:  validCreateRequest(),
			setupMock: func() {
				mockVehicleRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(ownedVehicle(), nil)

				mockFacilityRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(true, nil)

				mockRepo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					Return(uniqueViolation())

				mockRepo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					Return(nil)

				mockKafka.EXPECT().
					SendMessages(gomock.Any(), "booking.created", gomock.Any()).
					Return(nil)
			},
			wantErr: false,
		},
		{
			name: "second collision conflicts",
			req:  validCreateRequest(),
			setupMock: func() {
				mockVehicleRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(ownedVehicle(), nil)

				mockFacilityRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(true, nil)

				mockRepo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					Return(uniqueViolation()).
					Times(2)
			},
			wantErr:  true,
			wantCode: http.StatusConflict,
		},
		{
			name: "unparseable start time is a bad request",
			req: func() dto.CreateBookingRequest {
				req := validCreateRequest()
				req.StartTime = "tomorrow-ish"

				return req
			}(),
			setupMock: func() {
				mockVehicleRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(ownedVehicle(), nil)

				mockFacilityRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(true, nil)
			},
			wantErr:  true,
			wantCode: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			res, err := svc.Create(userContext(testUserID), tt.req)

			if tt.wantErr {
				assert.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			assert.NoError(t, err)
			assert.Equal(t, testUserID, res.UserID)
			assert.Equal(t, testFacilityID, res.FacilityID)
			assert.Len(t, res.Reference, 12)
			assert.Equal(t, "BK", res.Reference[:2])
			assert.Equal(t, model.StatusActive, res.Status)
		})
	}
}

func TestBookingService_CreateOffline(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := bookingMocks.NewMockBooking(ctrl)
	mockVehicleRepo := vehicleMocks.NewMockVehicle(ctrl)
	mockFacilityRepo := facilityMocks.NewMockFacility(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockKafka := kafkaMocks.NewMockClient(ctrl)
	mockOtel := mocks.NewOtel()

	cfg := &config.Config{}
	cfg.Kafka.Topics.BookingCreated = "booking.created"

	svc := service.New(mockRepo, mockVehicleRepo, mockFacilityRepo, cfg, mockCache, mockKafka, mockOtel)

	mockCache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	operatedFacility := facilityModel.Facility{
		ID:      testFacilityID,
		OwnerID: testUserID,
		Name:    "Central Lot",
		Address: "1 Main St",
	}

	req := dto.CreateOfflineBookingRequest{
		VehicleDetails: dto.OfflineVehicleDetails{
			Label:    "Walk-in sedan",
			Plate:    "WALKIN01",
			Category: vehicleModel.CategoryFourWheeler,
		},
		StartTime:     time.Now().Format(constant.DateFormat),
		DurationHours: 3,
		Total:         60,
	}

	t.Run("records a walk-in against the operated facility", func(t *testing.T) {
		mockFacilityRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(operatedFacility, nil)

		mockRepo.EXPECT().
			Insert(gomock.Any(), gomock.Any()).
			Return(nil)

		mockKafka.EXPECT().
			SendMessages(gomock.Any(), "booking.created", gomock.Any()).
			Return(nil)

		res, err := svc.CreateOffline(userContext(testUserID), req)

		assert.NoError(t, err)
		assert.True(t, res.IsOffline)
		assert.Equal(t, testFacilityID, res.FacilityID)
		assert.Equal(t, "Central Lot", res.Location.Name)
	})

	t.Run("operator without a facility is not found", func(t *testing.T) {
		mockFacilityRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(facilityModel.Facility{}, nil)

		_, err := svc.CreateOffline(userContext(testUserID), req)

		assert.Error(t, err)
		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})
}

func TestBookingService_Get(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := bookingMocks.NewMockBooking(ctrl)
	mockVehicleRepo := vehicleMocks.NewMockVehicle(ctrl)
	mockFacilityRepo := facilityMocks.NewMockFacility(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockKafka := kafkaMocks.NewMockClient(ctrl)
	mockOtel := mocks.NewOtel()

	cfg := &config.Config{}

	svc := service.New(mockRepo, mockVehicleRepo, mockFacilityRepo, cfg, mockCache, mockKafka, mockOtel)

	vehicleID := testVehicleID
	stored := model.Booking{
		ID:         "booking-id-123",
		Reference:  "BK1234567890",
		UserID:     testUserID,
		FacilityID: testFacilityID,
		VehicleID:  &vehicleID,
		Status:     model.StatusActive,
	}

	t.Run("holder reads own booking", func(t *testing.T) {
		mockRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(stored, nil)

		res, err := svc.Get(userContext(testUserID), stored.ID)

		assert.NoError(t, err)
		assert.Equal(t, stored.Reference, res.Reference)
	})

	t.Run("facility operator reads a guest booking", func(t *testing.T) {
		mockRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(stored, nil)

		mockFacilityRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(facilityModel.Facility{ID: testFacilityID, OwnerID: "operator-id"}, nil)

		res, err := svc.Get(userContext("operator-id"), stored.ID)

		assert.NoError(t, err)
		assert.Equal(t, stored.Reference, res.Reference)
	})

	t.Run("stranger sees not found", func(t *testing.T) {
		mockRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(stored, nil)

		mockFacilityRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(facilityModel.Facility{ID: testFacilityID, OwnerID: "operator-id"}, nil)

		_, err := svc.Get(userContext("stranger-id"), stored.ID)

		assert.Error(t, err)
		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})

	t.Run("missing booking is not found", func(t *testing.T) {
		mockRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(model.Booking{}, nil)

		_, err := svc.Get(userContext(testUserID), "no-such-id")

		assert.Error(t, err)
		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})
}

func TestBookingService_Cancel(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := bookingMocks.NewMockBooking(ctrl)
	mockVehicleRepo := vehicleMocks.NewMockVehicle(ctrl)
	mockFacilityRepo := facilityMocks.NewMockFacility(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockKafka := kafkaMocks.NewMockClient(ctrl)
	mockOtel := mocks.NewOtel()

	cfg := &config.Config{}

	svc := service.New(mockRepo, mockVehicleRepo, mockFacilityRepo, cfg, mockCache, mockKafka, mockOtel)

	mockCache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	mockCache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	stored := model.Booking{
		ID:     "booking-id-123",
		UserID: testUserID,
		Status: model.StatusActive,
	}

	tests := []struct {
		name      string
		user      string
		setupMock func()
		wantErr   bool
		wantCode  int
	}{
		{
			name: "holder cancels an active booking",
			user: testUserID,
			setupMock: func() {
				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(stored, nil)

				mockRepo.EXPECT().
					Update(gomock.Any(), map[string]any{model.FieldStatus: model.StatusCancelled}, gomock.Any()).
					Return(nil)
			},
			wantErr: false,
		},
		{
			name: "non-holder cannot cancel",
			user: "someone-else",
			setupMock: func() {
				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(stored, nil)
			},
			wantErr:  true,
			wantCode: http.StatusNotFound,
		},
		{
			name: "already cancelled is rejected",
			user: testUserID,
			setupMock: func() {
				cancelled := stored
				cancelled.Status = model.StatusCancelled

				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(cancelled, nil)
			},
			wantErr:  true,
			wantCode: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			err := svc.Cancel(userContext(tt.user), stored.ID)

			if tt.wantErr {
				assert.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			assert.NoError(t, err)
		})
	}
}

package service

import (
	"context"
	"fmt"
	"parkspot/config"
	"parkspot/infras/otel"
	bookingModel "parkspot/internal/domains/booking/model"
	bookingRepo "parkspot/internal/domains/booking/repository"
	"parkspot/internal/domains/dashboard/model/dto"
	facilityModel "parkspot/internal/domains/facility/model"
	facilityRepo "parkspot/internal/domains/facility/repository"
	statsModel "parkspot/internal/domains/stats/model"
	statsRepo "parkspot/internal/domains/stats/repository"
	vehicleModel "parkspot/internal/domains/vehicle/model"
	vehicleRepo "parkspot/internal/domains/vehicle/repository"
	"parkspot/shared"
	"parkspot/shared/cache"
	"parkspot/shared/constant"
	gDto "parkspot/shared/dto"
	"parkspot/shared/failure"
	"parkspot/shared/timezone"

	"github.com/rs/zerolog/log"
)

const cacheMetricsSnapshot = "dashboard:metrics"

type Dashboard interface {
	Metrics(ctx context.Context) (dto.DashboardMetrics, error)
	ComputeForFacility(ctx context.Context, facilityID string) (dto.DashboardMetrics, error)
	SnapshotFacility(ctx context.Context, facilityID string) error
}

type serviceImpl struct {
	facilityRepo facilityRepo.Facility
	bookingRepo  bookingRepo.Booking
	vehicleRepo  vehicleRepo.Vehicle
	statsRepo    statsRepo.Stats
	cfg          *config.Config
	cache        cache.RedisCache
	otel         otel.Otel
}

func New(facilityRepo facilityRepo.Facility, bookingRepo bookingRepo.Booking, vehicleRepo vehicleRepo.Vehicle, statsRepo statsRepo.Stats, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) Dashboard {
	return &serviceImpl{
		facilityRepo: facilityRepo,
		bookingRepo:  bookingRepo,
		vehicleRepo:  vehicleRepo,
		statsRepo:    statsRepo,
		cfg:          cfg,
		cache:        cache,
		otel:         otel,
	}
}

// Metrics returns the live view for the requesting operator's facility. The
// aggregator keeps a short-lived snapshot warm; a miss falls back to an
// inline recompute.
func (s *serviceImpl) Metrics(ctx context.Context) (res dto.DashboardMetrics, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Metrics")
	defer scope.End()
	defer scope.TraceIfError(err)

	operator, _ := ctx.Value(constant.ContextKeyUserID).(string)

	facility, err := s.facilityRepo.Get(ctx, shared.FilterByID(operator, facilityModel.FieldOwnerID, facilityModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get operated facility")

		return res, fmt.Errorf("failed to get operated facility: %w", err)
	}

	if facility.ID == constant.Empty {
		return res, failure.NotFound("facility not found") // nolint:wrapcheck
	}

	cacheKey := shared.BuildCacheKey(cacheMetricsSnapshot, facility.ID)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("dashboard snapshot hit")

		return res, nil
	}

	res, err = s.compute(ctx, facility)
	if err != nil {
		return res, err
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Dashboard.SnapshotTTLSeconds); err != nil {
			log.Error().Err(err).Msg("failed to save dashboard snapshot")
		}
	}()

	return res, nil
}

// ComputeForFacility always recomputes from the ledgers, bypassing the
// snapshot.
func (s *serviceImpl) ComputeForFacility(ctx context.Context, facilityID string) (res dto.DashboardMetrics, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ComputeForFacility")
	defer scope.End()
	defer scope.TraceIfError(err)

	facility, err := s.facilityRepo.Get(ctx, shared.FilterByID(facilityID, facilityModel.FieldID, facilityModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get facility")

		return res, fmt.Errorf("failed to get facility: %w", err)
	}

	if facility.ID == constant.Empty {
		return res, failure.NotFound("facility not found") // nolint:wrapcheck
	}

	return s.compute(ctx, facility)
}

// SnapshotFacility recomputes one facility and refreshes its snapshot. The
// aggregator calls this on every tick; last write wins.
func (s *serviceImpl) SnapshotFacility(ctx context.Context, facilityID string) error {
	metrics, err := s.ComputeForFacility(ctx, facilityID)
	if err != nil {
		return err
	}

	cacheKey := shared.BuildCacheKey(cacheMetricsSnapshot, facilityID)

	if err := s.cache.Save(ctx, cacheKey, metrics, s.cfg.Dashboard.SnapshotTTLSeconds); err != nil {
		log.Error().Err(err).Msg("failed to save dashboard snapshot")

		return fmt.Errorf("failed to save dashboard snapshot: %w", err)
	}

	return nil
}

func (s *serviceImpl) compute(ctx context.Context, facility facilityModel.Facility) (dto.DashboardMetrics, error) {
	totals := s.totals(ctx, facility)

	bookings, err := s.facilityBookings(ctx, facility.ID)
	if err != nil {
		return dto.DashboardMetrics{}, err
	}

	categories, err := s.vehicleCategories(ctx, bookings)
	if err != nil {
		return dto.DashboardMetrics{}, err
	}

	metrics := Recompute(bookings, totals, categories, timezone.Now())
	metrics.FacilityID = facility.ID
	metrics.FacilityName = facility.Name

	return metrics, nil
}

// totals prefers the stats record since its totals were captured at
// initialization; a facility without one falls back to its own config.
func (s *serviceImpl) totals(ctx context.Context, facility facilityModel.Facility) dto.ClassCounts {
	stats, err := s.statsRepo.Get(ctx, shared.FilterByID(facility.ID, statsModel.FieldFacilityID, statsModel.TableName))
	if err == nil && stats.FacilityID != constant.Empty {
		return dto.ClassCounts{TwoWheeler: stats.TwoWheelerTotal, FourWheeler: stats.FourWheelerTotal}
	}

	if err != nil {
		log.Error().Err(err).Msg("failed to get facility stats, using facility config totals")
	}

	return dto.ClassCounts{TwoWheeler: facility.TwoWheelerSpaces, FourWheeler: facility.FourWheelerSpaces}
}

func (s *serviceImpl) facilityBookings(ctx context.Context, facilityID string) ([]bookingModel.Booking, error) {
	filter := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Field:    bookingModel.FieldFacilityID,
				Operator: gDto.FilterOperatorEq,
				Value:    facilityID,
				Table:    bookingModel.TableName,
			},
		},
	}

	bookings, err := s.bookingRepo.GetAll(ctx, gDto.QueryParams{}, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get facility bookings")

		return nil, fmt.Errorf("failed to get facility bookings: %w", err)
	}

	return bookings, nil
}

func (s *serviceImpl) vehicleCategories(ctx context.Context, bookings []bookingModel.Booking) (map[string]string, error) {
	ids := []any{}

	for _, booking := range bookings {
		if booking.VehicleID != nil {
			ids = append(ids, *booking.VehicleID)
		}
	}

	categories := map[string]string{}

	if len(ids) == 0 {
		return categories, nil
	}

	filter := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Field:    vehicleModel.FieldID,
				Operator: gDto.FilterOperatorIn,
				Value:    ids,
				Table:    vehicleModel.TableName,
			},
		},
	}

	vehicles, err := s.vehicleRepo.GetAll(ctx, gDto.QueryParams{}, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get vehicles")

		return nil, fmt.Errorf("failed to get vehicles: %w", err)
	}

	for _, vehicle := range vehicles {
		categories[vehicle.ID] = vehicle.Category
	}

	return categories, nil
}

package service

import (
	"context"
	"fmt"
	"parkspot/config"
	"parkspot/infras/kafka"
	"parkspot/infras/otel"
	"parkspot/internal/domains/booking/model"
	"parkspot/internal/domains/booking/model/dto"
	"parkspot/internal/domains/booking/repository"
	facilityModel "parkspot/internal/domains/facility/model"
	facilityRepo "parkspot/internal/domains/facility/repository"
	vehicleModel "parkspot/internal/domains/vehicle/model"
	vehicleRepo "parkspot/internal/domains/vehicle/repository"
	"parkspot/shared"
	"parkspot/shared/cache"
	"parkspot/shared/constant"
	gDto "parkspot/shared/dto"
	"parkspot/shared/failure"

	"github.com/rs/zerolog/log"
)

const (
	cacheGetBooking    = "booking:get"
	cacheGetAllBooking = "booking:gets"
)

type Booking interface {
	Create(ctx context.Context, req dto.CreateBookingRequest) (dto.BookingResponse, error)
	CreateOffline(ctx context.Context, req dto.CreateOfflineBookingRequest) (dto.BookingResponse, error)
	Get(ctx context.Context, id string) (dto.BookingResponse, error)
	GetByReference(ctx context.Context, reference string) (dto.BookingResponse, error)
	GetMine(ctx context.Context, params gDto.QueryParams) (dto.GetBookingsResponse, error)
	GetForFacility(ctx context.Context, params gDto.QueryParams) (dto.GetBookingsResponse, error)
	Cancel(ctx context.Context, id string) error
}

type serviceImpl struct {
	repo         repository.Booking
	vehicleRepo  vehicleRepo.Vehicle
	facilityRepo facilityRepo.Facility
	cfg          *config.Config
	cache        cache.RedisCache
	kafka        kafka.Client
	otel         otel.Otel
}

func New(repo repository.Booking, vehicleRepo vehicleRepo.Vehicle, facilityRepo facilityRepo.Facility, cfg *config.Config, cache cache.RedisCache, kafkaClient kafka.Client, otel otel.Otel) Booking {
	return &serviceImpl{
		repo:         repo,
		vehicleRepo:  vehicleRepo,
		facilityRepo: facilityRepo,
		cfg:          cfg,
		cache:        cache,
		kafka:        kafkaClient,
		otel:         otel,
	}
}

// Create records an online reservation. The ledger insert and the capacity
// notification are separate failure domains: a booking that landed stays
// booked even when the capacity event cannot be published. There is no
// capacity check here either; two concurrent requests for the last space
// both succeed.
func (s *serviceImpl) Create(ctx context.Context, req dto.CreateBookingRequest) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	vehicle, err := s.vehicleRepo.Get(ctx, shared.FilterByID(req.VehicleID, vehicleModel.FieldID, vehicleModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get vehicle")

		return res, fmt.Errorf("failed to get vehicle: %w", err)
	}

	if vehicle.ID == constant.Empty || vehicle.UserID != user {
		return res, failure.NotFound("vehicle not found") // nolint:wrapcheck
	}

	facilityExists, err := s.facilityRepo.Exist(ctx, shared.FilterByID(req.FacilityID, facilityModel.FieldID, facilityModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to check if facility exists")

		return res, fmt.Errorf("failed to check if facility exists: %w", err)
	}

	if !facilityExists {
		return res, failure.NotFound("facility not found") // nolint:wrapcheck
	}

	booking, err := req.ToModel(user, newReference())
	if err != nil {
		log.Error().Err(err).Msg("failed to parse booking request")

		return res, failure.BadRequestFromString(fmt.Sprintf("invalid start time: %v", err)) // nolint:wrapcheck
	}

	booking, err = s.insertWithRetry(ctx, booking)
	if err != nil {
		return res, err
	}

	scope.AddEvent("Booking recorded with reference " + booking.Reference)

	s.publishBookingCreated(ctx, booking, vehicle.Category)
	s.invalidateListings(ctx)

	res.FromModel(booking)

	return res, nil
}

// CreateOffline records a walk-in reservation initiated by the facility
// operator. The request's vehicle is synthesized, not a registry entry.
func (s *serviceImpl) CreateOffline(ctx context.Context, req dto.CreateOfflineBookingRequest) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".CreateOffline")
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

	booking, err := req.ToModel(operator, newReference(), facility.ID, facility.Name, facility.Address)
	if err != nil {
		log.Error().Err(err).Msg("failed to parse offline booking request")

		return res, failure.BadRequestFromString(fmt.Sprintf("invalid start time: %v", err)) // nolint:wrapcheck
	}

	booking, err = s.insertWithRetry(ctx, booking)
	if err != nil {
		return res, err
	}

	scope.AddEvent("Offline booking recorded with reference " + booking.Reference)

	s.publishBookingCreated(ctx, booking, req.VehicleDetails.Category)
	s.invalidateListings(ctx)

	res.FromModel(booking)

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (dto.BookingResponse, error) {
	return s.get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
}

func (s *serviceImpl) GetByReference(ctx context.Context, reference string) (dto.BookingResponse, error) {
	return s.get(ctx, shared.FilterByID(reference, model.FieldReference, model.TableName))
}

func (s *serviceImpl) get(ctx context.Context, filter gDto.FilterGroup) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	booking, err := s.repo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking")

		return res, fmt.Errorf("failed to get booking: %w", err)
	}

	if booking.ID == constant.Empty {
		return res, failure.NotFound("booking not found") // nolint:wrapcheck
	}

	owned, err := s.ownsBooking(ctx, booking, user)
	if err != nil {
		return res, err
	}

	if !owned {
		// Not the holder and not the facility operator: indistinguishable
		// from a booking that does not exist.
		return res, failure.NotFound("booking not found") // nolint:wrapcheck
	}

	res.FromModel(booking)

	return res, nil
}

// GetMine lists the requesting user's bookings, most recent first.
func (s *serviceImpl) GetMine(ctx context.Context, params gDto.QueryParams) (res dto.GetBookingsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetMine")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	filter := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldUserID,
				Operator: gDto.FilterOperatorEq,
				Value:    user,
				Table:    model.TableName,
			},
		},
	}

	return s.list(ctx, params, filter)
}

// GetForFacility lists every booking of the requesting operator's facility,
// most recent first.
func (s *serviceImpl) GetForFacility(ctx context.Context, params gDto.QueryParams) (res dto.GetBookingsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetForFacility")
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

	filter := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldFacilityID,
				Operator: gDto.FilterOperatorEq,
				Value:    facility.ID,
				Table:    model.TableName,
			},
		},
	}

	return s.list(ctx, params, filter)
}

// Cancel marks the stored status Cancelled. The ledger entry itself is never
// deleted.
func (s *serviceImpl) Cancel(ctx context.Context, id string) error {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Cancel")
	defer scope.End()

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	booking, err := s.repo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking")

		return fmt.Errorf("failed to get booking: %w", err)
	}

	if booking.ID == constant.Empty || booking.UserID != user {
		return failure.NotFound("booking not found") // nolint:wrapcheck
	}

	if booking.Status == model.StatusCancelled {
		return failure.BadRequestFromString("booking is already cancelled") // nolint:wrapcheck
	}

	updatedFields := map[string]any{
		model.FieldStatus: model.StatusCancelled,
	}

	if err := s.repo.Update(ctx, updatedFields, filter); err != nil {
		log.Error().Err(err).Msg("failed to cancel booking")

		return fmt.Errorf("failed to cancel booking: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetBooking, id)); err != nil {
			log.Error().Err(err).Msg("failed to delete booking from cache")
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllBooking)
	}()

	return nil
}

// ownsBooking reports whether the user may read the booking: either the
// holder, or the operator of the facility it was made against.
func (s *serviceImpl) ownsBooking(ctx context.Context, booking model.Booking, user string) (bool, error) {
	if booking.UserID == user {
		return true, nil
	}

	facility, err := s.facilityRepo.Get(ctx, shared.FilterByID(booking.FacilityID, facilityModel.FieldID, facilityModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get booked facility")

		return false, fmt.Errorf("failed to get booked facility: %w", err)
	}

	return facility.ID != constant.Empty && facility.OwnerID == user, nil
}

func (s *serviceImpl) list(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetBookingsResponse, err error) {
	if params.SortBy == constant.Empty {
		params.SortBy = constant.DefaultValueSortBy
		params.SortDir = constant.DefaultValueSortDir
	}

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllBooking, params, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for bookings")

		return res, nil
	}

	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count bookings")

		return res, fmt.Errorf("failed to count bookings: %w", err)
	}

	models, err := s.repo.GetAll(ctx, params, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get bookings")

		return res, fmt.Errorf("failed to get bookings: %w", err)
	}

	res.FromModels(models, total, params.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save bookings to cache")
		}
	}()

	return res, nil
}

// insertWithRetry inserts the booking, regenerating the reference exactly
// once on a unique-key collision. A second collision fails the request.
func (s *serviceImpl) insertWithRetry(ctx context.Context, booking model.Booking) (model.Booking, error) {
	err := s.repo.Insert(ctx, booking)
	if err == nil {
		return booking, nil
	}

	if !shared.IsPqErrorCode(err, constant.PqErrorCodeUniqueViolation) {
		log.Error().Err(err).Msg("failed to create booking")

		return model.Booking{}, fmt.Errorf("failed to create booking: %w", err)
	}

	log.Warn().Str("reference", booking.Reference).Msg("booking reference collision, regenerating once")

	booking.Reference = newReference()

	if err := s.repo.Insert(ctx, booking); err != nil {
		if shared.IsPqErrorCode(err, constant.PqErrorCodeUniqueViolation) {
			log.Error().Str("reference", booking.Reference).Msg("booking reference collided twice")

			return model.Booking{}, failure.Conflict("could not allocate a unique booking reference") // nolint:wrapcheck
		}

		log.Error().Err(err).Msg("failed to create booking")

		return model.Booking{}, fmt.Errorf("failed to create booking: %w", err)
	}

	return booking, nil
}

// publishBookingCreated notifies the capacity updater. A publish failure
// is logged and the booking stands; the capacity record stays stale until
// the next reconcile.
func (s *serviceImpl) publishBookingCreated(ctx context.Context, booking model.Booking, category string) {
	event := dto.BookingCreatedEvent{
		BookingID:     booking.ID,
		Reference:     booking.Reference,
		FacilityID:    booking.FacilityID,
		UserID:        booking.UserID,
		VehicleType:   category,
		Amount:        booking.Amount,
		DurationHours: booking.DurationHours,
		IsOffline:     booking.IsOffline,
	}

	if booking.VehicleID != nil {
		event.VehicleID = *booking.VehicleID
	} else {
		event.VehicleID = booking.ID
	}

	if booking.StartTime != nil {
		event.StartTime = *booking.StartTime
	} else {
		event.StartTime = booking.BookingDate
	}

	if end, ok := model.ResolveEndTime(booking); ok {
		event.EndTime = end
	}

	message := kafka.Message{
		Key:   booking.FacilityID,
		Value: event,
	}

	if err := s.kafka.SendMessages(ctx, s.cfg.Kafka.Topics.BookingCreated, message); err != nil {
		log.Error().Err(err).Str("bookingID", booking.ID).Msg("failed to publish booking created event, capacity record will drift until reconcile")
	}
}

func (s *serviceImpl) invalidateListings(ctx context.Context) {
	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, cacheGetAllBooking)
	}()
}

package service

import (
	"context"
	"errors"
	"fmt"
	"parkspot/infras/otel"
	bookingModel "parkspot/internal/domains/booking/model"
	bookingRepo "parkspot/internal/domains/booking/repository"
	facilityModel "parkspot/internal/domains/facility/model"
	facilityRepo "parkspot/internal/domains/facility/repository"
	"parkspot/internal/domains/stats/model"
	"parkspot/internal/domains/stats/model/dto"
	"parkspot/internal/domains/stats/repository"
	vehicleModel "parkspot/internal/domains/vehicle/model"
	vehicleRepo "parkspot/internal/domains/vehicle/repository"
	"parkspot/shared"
	"parkspot/shared/constant"
	gDto "parkspot/shared/dto"
	"parkspot/shared/failure"
	gModel "parkspot/shared/model"
	"parkspot/shared/timezone"

	"github.com/rs/zerolog/log"
)

var errIncompleteSummary = errors.New("booking summary has missing fields")

type Stats interface {
	Initialize(ctx context.Context, facilityID string) (dto.FacilityStatsResponse, error)
	UpdateOnBooking(ctx context.Context, summary dto.BookingSummary) error
	Reconcile(ctx context.Context, facilityID string) (dto.FacilityStatsResponse, error)
	Get(ctx context.Context, facilityID string) (dto.FacilityStatsResponse, error)
}

type serviceImpl struct {
	repo         repository.Stats
	facilityRepo facilityRepo.Facility
	bookingRepo  bookingRepo.Booking
	vehicleRepo  vehicleRepo.Vehicle
	otel         otel.Otel
}

func New(repo repository.Stats, facilityRepo facilityRepo.Facility, bookingRepo bookingRepo.Booking, vehicleRepo vehicleRepo.Vehicle, otel otel.Otel) Stats {
	return &serviceImpl{
		repo:         repo,
		facilityRepo: facilityRepo,
		bookingRepo:  bookingRepo,
		vehicleRepo:  vehicleRepo,
		otel:         otel,
	}
}

// Initialize creates the facility's stats record if it does not exist yet,
// seeding totals and availables from the facility's configured capacity.
// Existing records are returned untouched.
func (s *serviceImpl) Initialize(ctx context.Context, facilityID string) (res dto.FacilityStatsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Initialize")
	defer scope.End()
	defer scope.TraceIfError(err)

	stats, err := s.ensure(ctx, facilityID)
	if err != nil {
		return res, err
	}

	res.FromModel(stats)

	return res, nil
}

// UpdateOnBooking applies the incremental append path: the summary is added
// to activeBookings, its amount added to revenue, and the class's available
// counter decremented without going below zero. A summary with any missing
// field fails the whole call; nothing is partially applied.
func (s *serviceImpl) UpdateOnBooking(ctx context.Context, summary dto.BookingSummary) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".UpdateOnBooking")
	defer scope.End()
	defer scope.TraceIfError(err)

	if err := validateSummary(summary); err != nil {
		log.Error().Err(err).Str("bookingID", summary.BookingID).Msg("refusing capacity update")

		return err
	}

	facility, err := s.resolveFacility(ctx, summary.FacilityID, summary.UserID)
	if err != nil {
		return err
	}

	stats, err := s.ensureForFacility(ctx, facility)
	if err != nil {
		return err
	}

	appendBooking(&stats, summary.ToActiveBooking())

	return s.write(ctx, stats)
}

// Reconcile rebuilds the facility's stats record wholesale from the booking
// ledger. Totals are re-read from the facility, the record is reset to its
// seeded state, and every booking whose stored status is Active is replayed
// through the same append path used by UpdateOnBooking. Running it twice
// with no intervening bookings yields identical content.
func (s *serviceImpl) Reconcile(ctx context.Context, facilityID string) (res dto.FacilityStatsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Reconcile")
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

	bookings, err := s.activeBookings(ctx, facility.ID)
	if err != nil {
		return res, err
	}

	categories, err := s.vehicleCategories(ctx, bookings)
	if err != nil {
		return res, err
	}

	stats := seedStats(facility)

	for _, booking := range bookings {
		appendBooking(&stats, summarize(booking, categories))
	}

	if err := s.write(ctx, stats); err != nil {
		return res, err
	}

	scope.AddEvent(fmt.Sprintf("Reconciled %d active bookings", len(bookings)))

	res.FromModel(stats)

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, facilityID string) (res dto.FacilityStatsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	stats, err := s.ensure(ctx, facilityID)
	if err != nil {
		return res, err
	}

	res.FromModel(stats)

	return res, nil
}

// resolveFacility locates the facility a capacity event belongs to. The
// event's facility reference is tried as the facility id first, then as the
// owner's id, then as the owner's email. Not finding one is fatal for the
// update.
func (s *serviceImpl) resolveFacility(ctx context.Context, facilityRef, userRef string) (facilityModel.Facility, error) {
	lookups := []gDto.FilterGroup{
		shared.FilterByID(facilityRef, facilityModel.FieldID, facilityModel.TableName),
		shared.FilterByID(facilityRef, facilityModel.FieldOwnerID, facilityModel.TableName),
		shared.FilterByID(userRef, facilityModel.FieldOwnerEmail, facilityModel.TableName),
	}

	for _, filter := range lookups {
		facility, err := s.facilityRepo.Get(ctx, filter)
		if err != nil {
			log.Error().Err(err).Msg("failed to get facility")

			return facilityModel.Facility{}, fmt.Errorf("failed to get facility: %w", err)
		}

		if facility.ID != constant.Empty {
			return facility, nil
		}
	}

	return facilityModel.Facility{}, failure.NotFound("facility not found") // nolint:wrapcheck
}

func (s *serviceImpl) ensure(ctx context.Context, facilityID string) (model.FacilityStats, error) {
	stats, err := s.repo.Get(ctx, shared.FilterByID(facilityID, model.FieldFacilityID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get facility stats")

		return model.FacilityStats{}, fmt.Errorf("failed to get facility stats: %w", err)
	}

	if stats.FacilityID != constant.Empty {
		return stats, nil
	}

	facility, err := s.facilityRepo.Get(ctx, shared.FilterByID(facilityID, facilityModel.FieldID, facilityModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get facility")

		return model.FacilityStats{}, fmt.Errorf("failed to get facility: %w", err)
	}

	if facility.ID == constant.Empty {
		return model.FacilityStats{}, failure.NotFound("facility not found") // nolint:wrapcheck
	}

	return s.seed(ctx, facility)
}

func (s *serviceImpl) ensureForFacility(ctx context.Context, facility facilityModel.Facility) (model.FacilityStats, error) {
	stats, err := s.repo.Get(ctx, shared.FilterByID(facility.ID, model.FieldFacilityID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get facility stats")

		return model.FacilityStats{}, fmt.Errorf("failed to get facility stats: %w", err)
	}

	if stats.FacilityID != constant.Empty {
		return stats, nil
	}

	return s.seed(ctx, facility)
}

func (s *serviceImpl) seed(ctx context.Context, facility facilityModel.Facility) (model.FacilityStats, error) {
	stats := seedStats(facility)

	if err := s.repo.Insert(ctx, stats); err != nil {
		if shared.IsPqErrorCode(err, constant.PqErrorCodeUniqueViolation) {
			// Lost a race with a concurrent lazy init; the other writer's
			// seed is equivalent.
			return s.refetch(ctx, facility.ID)
		}

		log.Error().Err(err).Msg("failed to create facility stats")

		return model.FacilityStats{}, fmt.Errorf("failed to create facility stats: %w", err)
	}

	return stats, nil
}

func (s *serviceImpl) refetch(ctx context.Context, facilityID string) (model.FacilityStats, error) {
	stats, err := s.repo.Get(ctx, shared.FilterByID(facilityID, model.FieldFacilityID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get facility stats")

		return model.FacilityStats{}, fmt.Errorf("failed to get facility stats: %w", err)
	}

	return stats, nil
}

// write persists the whole mutable document. Concurrent writers race and
// the last write wins; the explicit Reconcile operation repairs any update
// lost that way.
func (s *serviceImpl) write(ctx context.Context, stats model.FacilityStats) error {
	updatedFields := map[string]any{
		model.FieldFacilityName:         stats.FacilityName,
		model.FieldTwoWheelerTotal:      stats.TwoWheelerTotal,
		model.FieldFourWheelerTotal:     stats.FourWheelerTotal,
		model.FieldTwoWheelerAvailable:  stats.TwoWheelerAvailable,
		model.FieldFourWheelerAvailable: stats.FourWheelerAvailable,
		model.FieldRevenue:              stats.Revenue,
		model.FieldActiveBookings:       stats.ActiveBookings,
	}

	filter := shared.FilterByID(stats.FacilityID, model.FieldFacilityID, model.TableName)

	if err := s.repo.Update(ctx, updatedFields, filter); err != nil {
		log.Error().Err(err).Msg("failed to update facility stats")

		return fmt.Errorf("failed to update facility stats: %w", err)
	}

	return nil
}

func (s *serviceImpl) activeBookings(ctx context.Context, facilityID string) ([]bookingModel.Booking, error) {
	filter := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Field:    bookingModel.FieldFacilityID,
				Operator: gDto.FilterOperatorEq,
				Value:    facilityID,
				Table:    bookingModel.TableName,
			},
			gDto.Filter{
				Field:    bookingModel.FieldStatus,
				Operator: gDto.FilterOperatorEq,
				Value:    bookingModel.StatusActive,
				Table:    bookingModel.TableName,
			},
		},
	}

	bookings, err := s.bookingRepo.GetAll(ctx, gDto.QueryParams{}, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get active bookings")

		return nil, fmt.Errorf("failed to get active bookings: %w", err)
	}

	return bookings, nil
}

// vehicleCategories maps the bookings' registered vehicles to their class.
// Offline bookings carry the class inline and need no registry entry.
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

func seedStats(facility facilityModel.Facility) model.FacilityStats {
	return model.FacilityStats{
		FacilityID:           facility.ID,
		FacilityName:         facility.Name,
		TwoWheelerTotal:      facility.TwoWheelerSpaces,
		FourWheelerTotal:     facility.FourWheelerSpaces,
		TwoWheelerAvailable:  facility.TwoWheelerSpaces,
		FourWheelerAvailable: facility.FourWheelerSpaces,
		Revenue:              0,
		ActiveBookings:       model.ActiveBookings{},
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  facility.OwnerID,
			ModifiedBy: facility.OwnerID,
		},
	}
}

// appendBooking mutates the record in place: append, add revenue, decrement
// the class counter floored at zero. The counter never going negative means
// overbooking past capacity is absorbed silently.
func appendBooking(stats *model.FacilityStats, booking model.ActiveBooking) {
	stats.ActiveBookings = append(stats.ActiveBookings, booking)
	stats.Revenue += booking.Amount

	switch booking.VehicleType {
	case vehicleModel.CategoryTwoWheeler:
		if stats.TwoWheelerAvailable > 0 {
			stats.TwoWheelerAvailable--
		}
	default:
		if stats.FourWheelerAvailable > 0 {
			stats.FourWheelerAvailable--
		}
	}
}

func validateSummary(summary dto.BookingSummary) error {
	missing := []string{}

	if summary.BookingID == constant.Empty {
		missing = append(missing, "booking_id")
	}

	if summary.VehicleID == constant.Empty {
		missing = append(missing, "vehicle_id")
	}

	if summary.UserID == constant.Empty {
		missing = append(missing, "user_id")
	}

	if summary.VehicleType == constant.Empty {
		missing = append(missing, "vehicle_type")
	}

	if summary.Amount == 0 {
		missing = append(missing, "amount")
	}

	if summary.StartTime.IsZero() {
		missing = append(missing, "start_time")
	}

	if summary.EndTime.IsZero() {
		missing = append(missing, "end_time")
	}

	if summary.DurationHours == 0 {
		missing = append(missing, "duration_hours")
	}

	if len(missing) > 0 {
		return fmt.Errorf("%w: %v", errIncompleteSummary, missing)
	}

	return nil
}

func summarize(booking bookingModel.Booking, categories map[string]string) model.ActiveBooking {
	summary := model.ActiveBooking{
		BookingID:     booking.ID,
		UserID:        booking.UserID,
		Amount:        booking.Amount,
		DurationHours: booking.DurationHours,
		IsOffline:     booking.IsOffline,
		VehicleType:   vehicleModel.CategoryFourWheeler,
	}

	resolved := false

	if booking.VehicleID != nil {
		summary.VehicleID = *booking.VehicleID

		if category, ok := categories[*booking.VehicleID]; ok && category != constant.Empty {
			summary.VehicleType = category
			resolved = true
		}
	} else {
		summary.VehicleID = booking.ID
	}

	if !resolved && booking.VehicleDetails != nil && booking.VehicleDetails.Category != constant.Empty {
		summary.VehicleType = booking.VehicleDetails.Category
	}

	if booking.StartTime != nil {
		summary.StartTime = *booking.StartTime
	} else {
		summary.StartTime = booking.BookingDate
	}

	if end, ok := bookingModel.ResolveEndTime(booking); ok {
		summary.EndTime = end
	}

	return summary
}

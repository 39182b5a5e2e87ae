package service_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	bookingModel "parkspot/internal/domains/booking/model"
	"parkspot/internal/domains/dashboard/model/dto"
	"parkspot/internal/domains/dashboard/service"
	vehicleModel "parkspot/internal/domains/vehicle/model"
)

func timePtr(t time.Time) *time.Time {
	return &t
}

func TestRecompute_EmptyLedger(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	totals := dto.ClassCounts{TwoWheeler: 5, FourWheeler: 10}

	metrics := service.Recompute(nil, totals, nil, now)

	// With no bookings, every space is available.
	assert.Equal(t, totals, metrics.AvailableByClass)
	assert.Zero(t, metrics.ActiveCount)
	assert.Zero(t, metrics.CompletedCount)
	assert.Zero(t, metrics.Revenue)
	assert.Equal(t, dto.ClassRates{}, metrics.OccupancyRate)
	assert.Len(t, metrics.Daily, 7)
}

func TestRecompute_ActiveWindowElapses(t *testing.T) {
	start := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	totals := dto.ClassCounts{TwoWheeler: 5, FourWheeler: 10}

	bookings := []bookingModel.Booking{
		{
			ID:            "booking-1",
			BookingDate:   start,
			StartTime:     timePtr(start),
			DurationHours: 3,
			Amount:        60,
			Status:        bookingModel.StatusActive,
		},
	}

	// During the window the four-wheeler default class occupies a space.
	during := service.Recompute(bookings, totals, nil, start.Add(time.Hour))
	assert.Equal(t, 1, during.ActiveCount)
	assert.Equal(t, dto.ClassCounts{TwoWheeler: 5, FourWheeler: 9}, during.AvailableByClass)

	// After the window the derived status completes and the space returns,
	// with no write to the ledger.
	after := service.Recompute(bookings, totals, nil, start.Add(4*time.Hour))
	assert.Zero(t, after.ActiveCount)
	assert.Equal(t, 1, after.CompletedCount)
	assert.Equal(t, totals, after.AvailableByClass)

	// Revenue counts the booking either way.
	assert.Equal(t, float64(60), during.Revenue)
	assert.Equal(t, float64(60), after.Revenue)
}

func TestRecompute_ClassResolution(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	totals := dto.ClassCounts{TwoWheeler: 5, FourWheeler: 10}

	registered := "vehicle-1"
	unregistered := "vehicle-2"
	end := now.Add(time.Hour)

	bookings := []bookingModel.Booking{
		// Registry entry says two-wheeler.
		{ID: "b1", VehicleID: &registered, BookingDate: now, EndTime: timePtr(end), Status: bookingModel.StatusActive},
		// No registry entry, inline walk-in details say two-wheeler.
		{
			ID:             "b2",
			BookingDate:    now,
			EndTime:        timePtr(end),
			Status:         bookingModel.StatusActive,
			IsOffline:      true,
			VehicleDetails: &bookingModel.VehicleDetails{Category: vehicleModel.CategoryTwoWheeler},
		},
		// Nothing known about the vehicle: defaults to four-wheeler.
		{ID: "b3", VehicleID: &unregistered, BookingDate: now, EndTime: timePtr(end), Status: bookingModel.StatusActive},
	}

	categories := map[string]string{registered: vehicleModel.CategoryTwoWheeler}

	metrics := service.Recompute(bookings, totals, categories, now)

	assert.Equal(t, dto.ClassCounts{TwoWheeler: 2, FourWheeler: 1}, metrics.ActiveByClass)
	assert.Equal(t, dto.ClassCounts{TwoWheeler: 3, FourWheeler: 9}, metrics.AvailableByClass)
}

func TestRecompute_AvailabilityFloorsAtZero(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	totals := dto.ClassCounts{TwoWheeler: 1, FourWheeler: 1}
	end := now.Add(time.Hour)

	// Two active four-wheeler bookings against a single space.
	bookings := []bookingModel.Booking{
		{ID: "b1", BookingDate: now, EndTime: timePtr(end), Status: bookingModel.StatusActive},
		{ID: "b2", BookingDate: now, EndTime: timePtr(end), Status: bookingModel.StatusActive},
	}

	metrics := service.Recompute(bookings, totals, nil, now)

	assert.Equal(t, 2, metrics.ActiveByClass.FourWheeler)
	assert.Equal(t, 0, metrics.AvailableByClass.FourWheeler)
}

func TestRecompute_DailyBuckets(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	totals := dto.ClassCounts{TwoWheeler: 5, FourWheeler: 10}

	bookings := []bookingModel.Booking{
		// Today.
		{ID: "b1", BookingDate: now, Amount: 10, Status: bookingModel.StatusCancelled},
		// Six days ago: oldest bucket.
		{ID: "b2", BookingDate: now.AddDate(0, 0, -6), Amount: 20, Status: bookingModel.StatusCancelled},
		// Eight days ago: outside the window, revenue still counts.
		{ID: "b3", BookingDate: now.AddDate(0, 0, -8), Amount: 40, Status: bookingModel.StatusCancelled},
	}

	metrics := service.Recompute(bookings, totals, nil, now)

	assert.Len(t, metrics.Daily, 7)
	assert.Equal(t, "2026-03-04", metrics.Daily[0].Date)
	assert.Equal(t, "2026-03-10", metrics.Daily[6].Date)

	assert.Equal(t, float64(20), metrics.Daily[0].Revenue)
	assert.Equal(t, 1, metrics.Daily[0].FourWheeler)
	assert.Equal(t, float64(10), metrics.Daily[6].Revenue)

	assert.Equal(t, float64(70), metrics.Revenue)

	// Two of the three bookings fall in the window: 2 / (10 * 7) * 100.
	assert.InDelta(t, 2.0/70.0*100, metrics.OccupancyRate.FourWheeler, 1e-9)
	assert.Zero(t, metrics.OccupancyRate.TwoWheeler)
}

func TestRecompute_ZeroCapacityClass(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	totals := dto.ClassCounts{TwoWheeler: 0, FourWheeler: 10}
	end := now.Add(time.Hour)

	bookings := []bookingModel.Booking{
		{
			ID:             "b1",
			BookingDate:    now,
			EndTime:        timePtr(end),
			Status:         bookingModel.StatusActive,
			IsOffline:      true,
			VehicleDetails: &bookingModel.VehicleDetails{Category: vehicleModel.CategoryTwoWheeler},
		},
	}

	metrics := service.Recompute(bookings, totals, nil, now)

	// A class with no capacity reports zero occupancy, not a division blowup.
	assert.Zero(t, metrics.OccupancyRate.TwoWheeler)
	assert.Zero(t, metrics.AvailableByClass.TwoWheeler)
}

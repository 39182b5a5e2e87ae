package service

import (
	bookingModel "parkspot/internal/domains/booking/model"
	"parkspot/internal/domains/dashboard/model/dto"
	vehicleModel "parkspot/internal/domains/vehicle/model"
	"parkspot/shared/constant"
	"time"
)

const dailyWindowDays = 7

// Recompute derives the dashboard view from the booking ledger at the given
// instant. Active/completed split follows the derived status, not the stored
// one; availability is total minus derived-active per class, floored at
// zero. Revenue sums every booking, active or not. Pure; no I/O.
func Recompute(bookings []bookingModel.Booking, totals dto.ClassCounts, categories map[string]string, now time.Time) dto.DashboardMetrics {
	metrics := dto.DashboardMetrics{
		GeneratedAt: now,
		TotalSpaces: totals,
		Daily:       emptyBuckets(now),
	}

	bucketIndex := map[string]int{}
	for i, bucket := range metrics.Daily {
		bucketIndex[bucket.Date] = i
	}

	inWindow := dto.ClassCounts{}

	for _, booking := range bookings {
		class := resolveClass(booking, categories)
		metrics.Revenue += booking.Amount

		if bookingModel.DeriveStatus(booking, now) == bookingModel.StatusActive {
			metrics.ActiveCount++

			if class == vehicleModel.CategoryTwoWheeler {
				metrics.ActiveByClass.TwoWheeler++
			} else {
				metrics.ActiveByClass.FourWheeler++
			}
		}

		i, ok := bucketIndex[booking.BookingDate.Format(time.DateOnly)]
		if !ok {
			continue
		}

		bucket := &metrics.Daily[i]
		bucket.Revenue += booking.Amount

		if class == vehicleModel.CategoryTwoWheeler {
			bucket.TwoWheeler++
			inWindow.TwoWheeler++
		} else {
			bucket.FourWheeler++
			inWindow.FourWheeler++
		}
	}

	metrics.CompletedCount = len(bookings) - metrics.ActiveCount
	metrics.AvailableByClass = dto.ClassCounts{
		TwoWheeler:  floorZero(totals.TwoWheeler - metrics.ActiveByClass.TwoWheeler),
		FourWheeler: floorZero(totals.FourWheeler - metrics.ActiveByClass.FourWheeler),
	}
	metrics.OccupancyRate = dto.ClassRates{
		TwoWheeler:  occupancy(inWindow.TwoWheeler, totals.TwoWheeler),
		FourWheeler: occupancy(inWindow.FourWheeler, totals.FourWheeler),
	}

	return metrics
}

// resolveClass picks the vehicle class: registry category first, then the
// inline details of an offline booking, defaulting to four-wheeler.
func resolveClass(booking bookingModel.Booking, categories map[string]string) string {
	if booking.VehicleID != nil {
		if category, ok := categories[*booking.VehicleID]; ok && category != constant.Empty {
			return category
		}
	}

	if booking.VehicleDetails != nil && booking.VehicleDetails.Category != constant.Empty {
		return booking.VehicleDetails.Category
	}

	return vehicleModel.CategoryFourWheeler
}

func emptyBuckets(now time.Time) []dto.DailyBucket {
	buckets := make([]dto.DailyBucket, dailyWindowDays)
	start := dayStart(now).AddDate(0, 0, -(dailyWindowDays - 1))

	for i := range buckets {
		buckets[i].Date = start.AddDate(0, 0, i).Format(time.DateOnly)
	}

	return buckets
}

func dayStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func floorZero(n int) int {
	if n < 0 {
		return 0
	}

	return n
}

func occupancy(inWindow, total int) float64 {
	if total == 0 {
		return 0
	}

	return float64(inWindow) / float64(total*dailyWindowDays) * 100
}

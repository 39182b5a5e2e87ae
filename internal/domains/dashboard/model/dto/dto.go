package dto

import "time"

type ClassCounts struct {
	TwoWheeler  int `json:"two_wheeler"`
	FourWheeler int `json:"four_wheeler"`
}

type ClassRates struct {
	TwoWheeler  float64 `json:"two_wheeler"`
	FourWheeler float64 `json:"four_wheeler"`
}

// DailyBucket is one calendar day of the trailing week, oldest first in the
// metrics slice.
type DailyBucket struct {
	Date        string  `json:"date"`
	TwoWheeler  int     `json:"two_wheeler"`
	FourWheeler int     `json:"four_wheeler"`
	Revenue     float64 `json:"revenue"`
}

// DashboardMetrics is the live view recomputed from the booking ledger.
// AvailableByClass here supersedes the stored per-facility counters, which
// drift once a booking's window elapses.
type DashboardMetrics struct {
	FacilityID       string        `json:"facility_id"`
	FacilityName     string        `json:"facility_name"`
	GeneratedAt      time.Time     `json:"generated_at"`
	ActiveCount      int           `json:"active_count"`
	CompletedCount   int           `json:"completed_count"`
	ActiveByClass    ClassCounts   `json:"active_by_class"`
	AvailableByClass ClassCounts   `json:"available_by_class"`
	TotalSpaces      ClassCounts   `json:"total_spaces"`
	Revenue          float64       `json:"revenue"`
	Daily            []DailyBucket `json:"daily"`
	OccupancyRate    ClassRates    `json:"occupancy_rate"`
}

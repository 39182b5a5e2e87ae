package model

import "time"

// DeriveStatus computes the displayed lifecycle state of a booking at the
// given instant. A stored Cancelled or Pending status always wins; otherwise
// the state follows from the booking's end time, resolved in order: explicit
// end time, start time plus duration, booking date plus duration. A booking
// whose end time cannot be resolved is reported Active, never silently
// hidden as completed.
func DeriveStatus(booking Booking, now time.Time) string {
	if booking.Status != StatusActive && booking.Status != StatusCompleted && booking.Status != "" {
		return booking.Status
	}

	end, ok := ResolveEndTime(booking)
	if !ok {
		return StatusActive
	}

	if end.After(now) {
		return StatusActive
	}

	return StatusCompleted
}

// ResolveEndTime resolves when a booking's window elapses. The second return
// is false when no end time can be determined from the record.
func ResolveEndTime(booking Booking) (time.Time, bool) {
	duration := time.Duration(booking.DurationHours * float64(time.Hour))

	switch {
	case booking.EndTime != nil:
		return *booking.EndTime, true
	case booking.StartTime != nil:
		return booking.StartTime.Add(duration), true
	case !booking.BookingDate.IsZero():
		return booking.BookingDate.Add(duration), true
	default:
		return time.Time{}, false
	}
}

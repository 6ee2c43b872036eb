// Package pricing holds the availability and pricing rules applied when a
// reservation is created or rescheduled. Everything here is a pure function
// over plain values so the rules are testable without a database.
package pricing

import (
	"hostal/shared/failure"
	"math"
	"time"
)

var (
	ErrInvalidDateRange = failure.BadRequestFromString("check-out date must be after check-in date")
	ErrCapacityExceeded = failure.Conflict("guest count exceeds room capacity")
	ErrTurnoverConflict = failure.Conflict("room has a same-day turnover conflict with another reservation")
)

const hoursPerDay = 24

// Quote computes the number of nights and the total price for a stay.
// Nights are counted as the ceiling of the day difference between check-in and
// check-out; a non-positive night count is an invalid date range.
//
//	total = nights*pricePerNight + nights*extraGuests*extraGuestCharge
func Quote(pricePerNight, extraGuestCharge float64, checkIn, checkOut time.Time, extraGuests int) (nights int, total float64, err error) {
	nights = int(math.Ceil(checkOut.Sub(checkIn).Hours() / hoursPerDay))
	if nights <= 0 {
		return 0, 0, ErrInvalidDateRange //nolint:wrapcheck
	}

	nightly := float64(nights) * pricePerNight
	surcharge := float64(nights) * float64(extraGuests) * extraGuestCharge

	return nights, nightly + surcharge, nil
}

// ValidateCapacity rejects guest counts that overflow the room's combined
// base and extra capacity.
func ValidateCapacity(baseCapacity, extraCapacity, baseGuests, extraGuests int) error {
	if baseGuests+extraGuests > baseCapacity+extraCapacity {
		return ErrCapacityExceeded //nolint:wrapcheck
	}

	return nil
}

// Stay is the date range and turnover flags of a reservation on a room.
type Stay struct {
	CheckIn      time.Time
	CheckOut     time.Time
	EarlyCheckIn bool
	LateCheckOut bool
}

func sameDate(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()

	return ay == by && am == bm && ad == bd
}

// CheckTurnoverConflict detects back-to-back same-day turnover conflicts: an
// early check-in on the day another reservation checks out late, or a late
// check-out on the day another reservation checks in early.
//
// This is deliberately a same-day adjacency check only. It does not detect
// general date-range overlaps between reservations on the same room, so it is
// not a double-booking guard.
func CheckTurnoverConflict(requested Stay, existing []Stay) error {
	for _, other := range existing {
		if requested.EarlyCheckIn && other.LateCheckOut && sameDate(other.CheckOut, requested.CheckIn) {
			return ErrTurnoverConflict //nolint:wrapcheck
		}

		if requested.LateCheckOut && other.EarlyCheckIn && sameDate(other.CheckIn, requested.CheckOut) {
			return ErrTurnoverConflict //nolint:wrapcheck
		}
	}

	return nil
}

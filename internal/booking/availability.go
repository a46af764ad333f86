package booking

import (
	"fmt"
	"time"

	"github.com/gevartrix/dshop-booking-backend/internal/pkg/request"
)

// maxConflictReasons bounds the reported message size: the check is advisory,
// not an exhaustive listing of every colliding reservation.
const maxConflictReasons = 2

// ConflictReasons decides whether the requested [from, to] range is admissible
// for a device, given the device's currently approved bookings. It returns
// human-readable reasons; an empty result means the range is free.
//
// Rules:
//   - from must not be later than to; a violation short-circuits all other
//     checks and yields that single reason.
//   - Both boundary dates are inclusive: a reservation ending on day D
//     collides with a new one starting on day D. Same-day handoffs are
//     deliberately not supported.
//   - Each endpoint of the new range is tested for landing inside an approved
//     booking, so a single candidate can contribute up to two reasons.
//   - excludeID ignores one booking, so that editing a booking does not
//     conflict with itself.
//
// Note that only endpoint containment is tested: a new range strictly
// engulfing an approved one is not reported. See the package tests.
func ConflictReasons(deviceName string, from, to time.Time, approved []*Booking, excludeID string) []string {
	if from.After(to) {
		return []string{"The 'from' date is later than the 'to' date"}
	}

	var reasons []string
	for _, b := range approved {
		if excludeID != "" && b.ID == excludeID {
			continue
		}
		if len(reasons) >= maxConflictReasons {
			break
		}
		// The 'from' date lands inside an existing reservation.
		if withinInclusive(from, b.From, b.To) {
			reasons = append(reasons, fmt.Sprintf(
				"Device '%s' is already reserved for the chosen period. Try changing the booking date (%s)",
				deviceName, request.FormatDate(from),
			))
		}
		// The 'to' date lands inside an existing reservation.
		if withinInclusive(to, b.From, b.To) {
			reasons = append(reasons, fmt.Sprintf(
				"Device '%s' is already reserved for the chosen period. Try changing the return date (%s)",
				deviceName, request.FormatDate(to),
			))
		}
	}

	if len(reasons) > maxConflictReasons {
		reasons = reasons[:maxConflictReasons]
	}
	return reasons
}

// withinInclusive reports whether day d falls inside [start, end], both ends
// inclusive.
func withinInclusive(d, start, end time.Time) bool {
	return !d.Before(start) && !d.After(end)
}

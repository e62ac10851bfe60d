package services

import "backend/entity"

// Capacity policy for the single shared seating pool.
//
// Two distinct ceilings exist on purpose and must not be unified:
//   - admission checks a reservation against the static ceiling;
//   - availability/dashboard projections use the dynamic ceiling, which
//     shrinks by one for every reservation record currently stored (and
//     grows back when cancellations hard-delete rows, on any date).
const (
	// StaticMaxCapacity gates admission of new reservations.
	StaticMaxCapacity = 20

	// NominalCapacity is the base the dynamic ceiling shrinks from.
	NominalCapacity = 20

	// AdmissionWindowMinutes is the half-width of the overlap window: a
	// reservation contends with confirmed reservations from one hour
	// before to one hour after its time, both ends inclusive.
	AdmissionWindowMinutes = 60
)

// DynamicMaxCapacity derives the shrinking ceiling from the all-time
// reservation record count, floored at zero.
func DynamicMaxCapacity(recordCount int64) int {
	c := NominalCapacity - int(recordCount)
	if c < 0 {
		return 0
	}
	return c
}

// WindowBounds returns the ±1h overlap window around t, clamped to the same
// day (windows never roll over midnight).
func WindowBounds(t entity.Clock) (from, to entity.Clock) {
	return t.Add(-AdmissionWindowMinutes), t.Add(AdmissionWindowMinutes)
}

// FitsStaticCeiling reports whether a party of size places is admissible on
// top of the places already reserved inside the window.
func FitsStaticCeiling(reservedInWindow, places int) bool {
	return reservedInWindow+places <= StaticMaxCapacity
}

func sumPlaces(rows []entity.Reservation) int {
	total := 0
	for _, r := range rows {
		total += r.NumberOfPlaces
	}
	return total
}

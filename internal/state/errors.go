package state

import "errors"

// Domain errors for the state package.
//
// These errors can be checked using errors.Is() for error handling:
//
//	if errors.Is(err, state.ErrAreaUnknown) {
//	    // handle unknown area
//	}
var (
	// ErrAreaUnknown is returned when an area ID does not exist in the
	// live model.
	ErrAreaUnknown = errors.New("state: unknown area")

	// ErrSensorNotConfigured is returned when a reading is requested for
	// a sensor kind the area's dashboard configuration never names.
	ErrSensorNotConfigured = errors.New("state: sensor not configured")

	// ErrRegistryInconsistent is returned when a rebuild encounters an
	// entity without a device or a device without an area. The rebuild
	// aborts rather than producing a partially consistent model.
	ErrRegistryInconsistent = errors.New("state: inconsistent registry")
)

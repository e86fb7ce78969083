// README: Pricing error taxonomy.
package pricing

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrInvalidInput covers negative or non-finite durations and distances and
	// billing windows longer than one day.
	ErrInvalidInput = errors.New("invalid input")
	// ErrConfiguration means the rate table has no entry for a requested plan or
	// vehicle class, or fails validation.
	ErrConfiguration = errors.New("rate configuration error")
	ErrNotFound      = errors.New("quote not found")
)

func invalidInput(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}

func configError(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrConfiguration, fmt.Sprintf(format, args...))
}

func checkQuantity(name string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return invalidInput("%s must be finite", name)
	}
	if v < 0 {
		return invalidInput("%s must not be negative, got %v", name, v)
	}
	return nil
}

// Validate checks the trip's numeric invariants.
func (t TripInput) Validate() error {
	if err := checkQuantity("driving minutes", t.DrivingMinutes); err != nil {
		return err
	}
	if err := checkQuantity("staying minutes", t.StayingMinutes); err != nil {
		return err
	}
	if err := checkQuantity("distance", t.DistanceKm); err != nil {
		return err
	}
	if t.Start.IsZero() {
		return invalidInput("start time is required")
	}
	return nil
}

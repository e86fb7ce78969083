// README: Overnight interval calculator for membership billing windows.
package pricing

import (
	"math"
	"time"
)

const (
	overnightStartHour = 18
	overnightEndHour   = 9
	minutesPerDay      = 1440
)

// NightMinutes splits a billing window into minutes inside the nightly window
// [18:00, next day 09:00) of the start's calendar day, and the rest.
// Both intervals are half-open, so a boundary instant is counted once.
// A partially covered minute counts as night.
func NightMinutes(start time.Time, minutes float64) (night, day float64, err error) {
	if err := checkQuantity("window minutes", minutes); err != nil {
		return 0, 0, err
	}
	if minutes > minutesPerDay {
		return 0, 0, invalidInput("window of %v minutes exceeds one billing day", minutes)
	}

	y, m, d := start.Date()
	loc := start.Location()
	nightStart := time.Date(y, m, d, overnightStartHour, 0, 0, 0, loc)
	nightEnd := time.Date(y, m, d+1, overnightEndHour, 0, 0, 0, loc)

	end := start.Add(time.Duration(minutes * float64(time.Minute)))
	overlap := intersect(start, end, nightStart, nightEnd)

	night = math.Min(math.Ceil(overlap.Minutes()), minutes)
	return night, minutes - night, nil
}

// intersect returns the length of [aStart, aEnd) ∩ [bStart, bEnd).
func intersect(aStart, aEnd, bStart, bEnd time.Time) time.Duration {
	lo := aStart
	if bStart.After(lo) {
		lo = bStart
	}
	hi := aEnd
	if bEnd.Before(hi) {
		hi = bEnd
	}
	if !hi.After(lo) {
		return 0
	}
	return hi.Sub(lo)
}

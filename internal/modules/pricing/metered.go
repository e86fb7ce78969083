// README: Metered (per-minute/hour/day) service cost calculator.
package pricing

import (
	"fmt"
	"math"

	"github.com/shopspring/decimal"

	"carshare/internal/types"
)

// BillableMinutes returns how long the metered vehicle is on the clock and
// whether the stay is cheaper split into two rentals.
func BillableMinutes(trip TripInput, m MeteredRates) (minutes float64, twoRentals bool) {
	roundTrip := trip.DrivingMinutes*2 + trip.StayingMinutes
	switch {
	case !trip.DestinationInHomeZone:
		// The car cannot be parked at the destination, so it is held for the whole stay.
		return roundTrip, false
	case !trip.RoundTripRequired:
		return trip.DrivingMinutes, false
	case trip.StayingMinutes > m.UnlockBreakEvenMinutes():
		return trip.DrivingMinutes * 2, true
	default:
		return roundTrip, false
	}
}

// EstimateMetered prices a trip on the metered service.
//
// The per-day rental tax is charged once for every started day of billed time,
// so a booking of 8 to 24 hours pays one day of it rather than none.
func EstimateMetered(trip TripInput, rates RateSchedule) (CostBreakdown, error) {
	if err := trip.Validate(); err != nil {
		return CostBreakdown{}, err
	}
	m := rates.Metered
	tax := rates.Taxes

	used, twoRentals := BillableMinutes(trip, m)
	billed := int(math.Ceil(used))
	fullDays := billed / minutesPerDay
	remaining := billed % minutesPerDay
	hours := remaining / 60
	mins := remaining % 60

	dayCost := float64(fullDays) * m.PerDay
	hourCost := float64(hours) * m.PerHour
	minuteCost := float64(mins) * m.PerMinute
	timeCost := dayCost + hourCost + minuteCost

	var details []string
	if fullDays > 0 {
		details = append(details, fmt.Sprintf("  - %d full days × %s = %s", fullDays, types.CAD(m.PerDay), types.CAD(dayCost)))
	}
	if hours > 0 {
		details = append(details, fmt.Sprintf("  - %d hours × %s = %s", hours, types.CAD(m.PerHour), types.CAD(hourCost)))
	}
	if mins > 0 {
		details = append(details, fmt.Sprintf("  - %d minutes × %s = %s", mins, types.CAD(m.PerMinute), types.CAD(minuteCost)))
	}
	details = append(details, fmt.Sprintf("  - Total time cost: %s", types.CAD(timeCost)))

	fees := m.UnlockFee
	if twoRentals {
		fees *= 2
		details = append(details, fmt.Sprintf("Unlock fee: %s (x2, two separate rentals)", types.CAD(fees)))
	} else {
		details = append(details, fmt.Sprintf("Unlock fee: %s", types.CAD(fees)))
	}

	var discount float64
	if trip.BCAAMember {
		discount = timeCost * m.MemberDiscount
		details = append(details, fmt.Sprintf("BCAA member discount (%s%%): -%s", percent(m.MemberDiscount), types.CAD(discount)))
	}

	base := timeCost - discount + fees
	gst := base * tax.GST
	pst := base * tax.PST
	details = append(details,
		fmt.Sprintf("GST (%s%%): %s", percent(tax.GST), types.CAD(gst)),
		fmt.Sprintf("PST (%s%%): %s", percent(tax.PST), types.CAD(pst)),
	)
	taxes := gst + pst

	if perDayTaxApplies(float64(billed), fullDays, tax) {
		days := int(math.Ceil(float64(billed) / minutesPerDay))
		flat, flatGST, lines := perDayTax(days, tax)
		taxes += flat + flatGST
		details = append(details, lines...)
	}

	return CostBreakdown{
		TimeCost:  timeCost,
		Fees:      fees,
		Taxes:     taxes,
		Discounts: discount,
		Total:     base + taxes,
		Details:   details,
	}, nil
}

// perDayTaxApplies reports whether the flat per-day rental tax is owed: the
// booking must reach the minimum duration and stay under the long-term exemption.
func perDayTaxApplies(minutes float64, days int, tax TaxRates) bool {
	if tax.PerDay == 0 {
		return false
	}
	return minutes >= tax.PerDayMinMinutes && days < tax.PerDayExemptDays
}

// perDayTax returns the flat tax for days billing days and the GST it accrues.
func perDayTax(days int, tax TaxRates) (flat, gst float64, details []string) {
	flat = tax.PerDay * float64(days)
	gst = flat * tax.GST
	details = []string{
		fmt.Sprintf("PVRT: %s × %d days = %s", types.CAD(tax.PerDay), days, types.CAD(flat)),
		fmt.Sprintf("GST on PVRT: %s", types.CAD(gst)),
	}
	return flat, gst, details
}

func percent(rate float64) string {
	return decimal.NewFromFloat(rate).Shift(2).Round(2).String()
}

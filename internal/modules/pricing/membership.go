// README: Membership (per-hour, Day Tripper) service: day decomposition and per-window pricing.
package pricing

import (
	"fmt"
	"math"
	"strconv"

	"carshare/internal/types"
)

const (
	bookingIncrementMinutes = 15
	// Overnight hours are billed up to this many minutes per window.
	overnightCapMinutes = 180
	// Billed minutes in a window never exceed twelve hours.
	dailyCapMinutes = 720
)

// OccupiedMinutes is the membership booking length: out, stay, back, rounded
// up to the booking increment.
func OccupiedMinutes(trip TripInput) float64 {
	total := trip.DrivingMinutes*2 + trip.StayingMinutes
	return math.Ceil(total/bookingIncrementMinutes) * bookingIncrementMinutes
}

// Windows partitions the booking into consecutive day-long windows starting at
// the trip start. Each window starts at the same local wall-clock time on the
// following calendar day. The first window carries the outbound distance and
// the last the return distance.
func Windows(trip TripInput) []Window {
	occupied := OccupiedMinutes(trip)
	n := int(math.Ceil(occupied / minutesPerDay))
	if n == 0 {
		n = 1
	}
	windows := make([]Window, n)
	for i := range windows {
		w := Window{
			Start:   trip.Start.AddDate(0, 0, i),
			Minutes: minutesPerDay,
		}
		if i == 0 {
			w.DistanceKm += trip.DistanceKm
		}
		if i == n-1 {
			w.DistanceKm += trip.DistanceKm
			w.Minutes = occupied - float64(i*minutesPerDay)
		}
		windows[i] = w
	}
	return windows
}

// PriceWindow prices one billing window, substituting the Day Tripper flat
// rate when the window is a full day and the flat rate is strictly cheaper.
func PriceWindow(w Window, class VehicleClass, plan PlanRates, rates RateSchedule) (DailyCostSlice, error) {
	if err := checkQuantity("window distance", w.DistanceKm); err != nil {
		return DailyCostSlice{}, err
	}
	hourly, ok := plan.Hourly[class]
	if !ok {
		return DailyCostSlice{}, configError("plan %q has no hourly rate for %q", plan.Plan, class)
	}
	night, day, err := NightMinutes(w.Start, w.Minutes)
	if err != nil {
		return DailyCostSlice{}, err
	}

	billedNight := math.Min(night, overnightCapMinutes)
	billedDay := day
	if billedDay+billedNight > dailyCapMinutes {
		billedDay = dailyCapMinutes - billedNight
	}

	perKm := rates.Membership.PerKm
	slice := DailyCostSlice{
		Window:             w,
		NightMinutes:       night,
		BilledDayMinutes:   billedDay,
		BilledNightMinutes: billedNight,
		TimeCost:           (billedDay/60 + billedNight/60) * hourly,
		DistanceCost:       w.DistanceKm * perKm,
	}

	if flat, eligible := plan.DayTripper[class]; eligible && w.Minutes == minutesPerDay {
		overage := math.Max(0, w.DistanceKm-plan.DayTripperIncludedKm) * perKm
		if flat+overage < slice.TimeCost+slice.DistanceCost {
			slice.FlatRateApplied = true
			slice.FlatRateCost = flat
			slice.FlatRateOverage = overage
			slice.TimeCost = 0
			slice.DistanceCost = 0
		}
	}

	if slice.FlatRateApplied {
		line := fmt.Sprintf("Day Tripper rate applied: %s", types.CAD(slice.FlatRateCost))
		if slice.FlatRateOverage > 0 {
			line += fmt.Sprintf(" + %s over %s km", types.CAD(slice.FlatRateOverage), trimFloat(plan.DayTripperIncludedKm))
		}
		slice.Details = append(slice.Details, line+fmt.Sprintf(" = %s", types.CAD(slice.Total())))
		return slice, nil
	}

	regular := billedDay / 60 * hourly
	if billedNight > 0 {
		slice.Details = append(slice.Details, fmt.Sprintf("Regular rate applied: %s overnight hours × %s + %s hours × %s = %s",
			trimFloat(billedNight/60), types.CAD(hourly), trimFloat(billedDay/60), types.CAD(hourly), types.CAD(slice.TimeCost)))
	} else {
		slice.Details = append(slice.Details, fmt.Sprintf("Regular rate applied: %s hours × %s = %s",
			trimFloat(billedDay/60), types.CAD(hourly), types.CAD(regular)))
	}
	slice.Details = append(slice.Details, fmt.Sprintf("Distance cost: %s km × %s = %s",
		trimFloat(w.DistanceKm), types.CAD(perKm), types.CAD(slice.DistanceCost)))
	return slice, nil
}

// Decompose splits the trip into billing windows and prices each one.
func Decompose(trip TripInput, rates RateSchedule, plan Plan) ([]DailyCostSlice, error) {
	if err := trip.Validate(); err != nil {
		return nil, err
	}
	pr, err := rates.PlanRates(plan)
	if err != nil {
		return nil, err
	}
	class := trip.VehicleClassOrDefault()
	windows := Windows(trip)
	slices := make([]DailyCostSlice, 0, len(windows))
	for _, w := range windows {
		s, err := PriceWindow(w, class, pr, rates)
		if err != nil {
			return nil, err
		}
		slices = append(slices, s)
	}
	return slices, nil
}

// EstimateMembership prices a trip on one membership plan.
func EstimateMembership(trip TripInput, rates RateSchedule, plan Plan) (CostBreakdown, error) {
	slices, err := Decompose(trip, rates, plan)
	if err != nil {
		return CostBreakdown{}, err
	}
	tax := rates.Taxes

	var out CostBreakdown
	var subtotal float64
	for _, s := range slices {
		out.TimeCost += s.TimeCost + s.FlatRateCost
		out.DistanceCost += s.DistanceCost + s.FlatRateOverage
		subtotal += s.Total()
		out.Details = append(out.Details, s.Details...)
	}

	fee, label := rates.Membership.InnovationFee, "non-EV"
	if trip.EV {
		fee, label = rates.Membership.InnovationFeeEV, "EV"
	}
	out.Fees = fee
	subtotal += fee
	out.Details = append(out.Details, fmt.Sprintf("Co-op innovation fee: %s (%s)", types.CAD(fee), label))

	gst := subtotal * tax.GST
	pst := subtotal * tax.PST
	out.Taxes = gst + pst
	out.Details = append(out.Details,
		fmt.Sprintf("GST (%s%%): %s", percent(tax.GST), types.CAD(gst)),
		fmt.Sprintf("PST (%s%%): %s", percent(tax.PST), types.CAD(pst)),
	)

	occupied := OccupiedMinutes(trip)
	if perDayTaxApplies(occupied, int(occupied)/minutesPerDay, tax) {
		flat, flatGST, lines := perDayTax(len(slices), tax)
		out.Taxes += flat + flatGST
		out.Details = append(out.Details, lines...)
	}

	out.Total = subtotal + out.Taxes
	return out, nil
}

func trimFloat(v float64) string {
	return strconv.FormatFloat(math.Round(v*100)/100, 'f', -1, 64)
}

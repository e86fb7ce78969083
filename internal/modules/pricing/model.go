// README: Trip input and cost breakdown value types shared by both car-share services.
package pricing

import "time"

type VehicleClass string

const (
	VehicleCompact   VehicleClass = "compact"
	VehicleLarge     VehicleClass = "large"
	VehicleOversized VehicleClass = "oversized"
)

// Plan identifies a membership tier in the rate table.
type Plan string

const (
	PlanPlus     Plan = "plus"
	PlanMonthly  Plan = "monthly"
	PlanBusiness Plan = "business"
)

// TripInput describes one trip. Distances and durations are one-way.
type TripInput struct {
	Start                 time.Time    `json:"start"`
	DrivingMinutes        float64      `json:"driving_minutes"`
	StayingMinutes        float64      `json:"staying_minutes"`
	DistanceKm            float64      `json:"distance_km"`
	BCAAMember            bool         `json:"bcaa_member"`
	Vehicle               VehicleClass `json:"vehicle,omitempty"`
	EV                    bool         `json:"ev"`
	DestinationInHomeZone bool         `json:"destination_in_home_zone"`
	RoundTripRequired     bool         `json:"round_trip_required"`
}

// VehicleClassOrDefault returns the requested class, compact when unset.
func (t TripInput) VehicleClassOrDefault() VehicleClass {
	if t.Vehicle == "" {
		return VehicleCompact
	}
	return t.Vehicle
}

// CostBreakdown is the itemised price of a trip for one service or plan.
type CostBreakdown struct {
	TimeCost     float64  `json:"time_cost"`
	DistanceCost float64  `json:"distance_cost"`
	Fees         float64  `json:"fees"`
	Taxes        float64  `json:"taxes"`
	Discounts    float64  `json:"discounts"`
	Total        float64  `json:"total"`
	Details      []string `json:"details"`
}

// Window is one billing window of a membership booking.
type Window struct {
	Start      time.Time
	Minutes    float64
	DistanceKm float64
}

// DailyCostSlice is the priced result of a single billing window.
type DailyCostSlice struct {
	Window             Window   `json:"-"`
	NightMinutes       float64  `json:"night_minutes"`
	BilledDayMinutes   float64  `json:"billed_day_minutes"`
	BilledNightMinutes float64  `json:"billed_night_minutes"`
	TimeCost           float64  `json:"time_cost"`
	DistanceCost       float64  `json:"distance_cost"`
	FlatRateApplied    bool     `json:"flat_rate_applied"`
	FlatRateCost       float64  `json:"flat_rate_cost"`
	FlatRateOverage    float64  `json:"flat_rate_overage"`
	Details            []string `json:"details"`
}

// Total is what the window contributes to the plan subtotal.
func (d DailyCostSlice) Total() float64 {
	if d.FlatRateApplied {
		return d.FlatRateCost + d.FlatRateOverage
	}
	return d.TimeCost + d.DistanceCost
}

// ServiceCost pairs an option name with its breakdown.
type ServiceCost struct {
	Name      string        `json:"name"`
	Plan      Plan          `json:"plan,omitempty"`
	Breakdown CostBreakdown `json:"breakdown"`
}

type ComparisonResult struct {
	// Options are in rate table order: metered first, then each plan.
	Options             []ServiceCost `json:"options"`
	CheapestOption      string        `json:"cheapest_option"`
	Savings             float64       `json:"savings"`
	DistanceKm          float64       `json:"distance_km"`
	TravelMinutesOneWay float64       `json:"travel_minutes_one_way"`
}

// Option returns the breakdown for the named option.
func (r ComparisonResult) Option(name string) (CostBreakdown, bool) {
	for _, o := range r.Options {
		if o.Name == name {
			return o.Breakdown, true
		}
	}
	return CostBreakdown{}, false
}

// Strategy is one service used for every trip of a batch.
type Strategy struct {
	Name  string  `json:"name"`
	Total float64 `json:"total"`
}

type AggregateResult struct {
	PerTrip             []ComparisonResult `json:"per_trip"`
	Strategies          []Strategy         `json:"strategies"`
	BestOverallStrategy Strategy           `json:"best_overall_strategy"`
}

// Quote is a persisted comparison.
type Quote struct {
	ID        string           `json:"id"`
	CreatedAt time.Time        `json:"created_at"`
	Trip      TripInput        `json:"trip"`
	Result    ComparisonResult `json:"result"`
}

// README: Cross-service comparison and multi-trip aggregation.
package pricing

import (
	"runtime"
	"sort"

	"golang.org/x/sync/errgroup"
)

// Compare prices the trip on every service in rate table order and ranks them.
// Ties keep table order.
func Compare(trip TripInput, rates RateSchedule) (ComparisonResult, error) {
	metered, err := EstimateMetered(trip, rates)
	if err != nil {
		return ComparisonResult{}, err
	}
	options := make([]ServiceCost, 0, 1+len(rates.Membership.Plans))
	options = append(options, ServiceCost{Name: rates.Metered.Name, Breakdown: metered})
	for _, p := range rates.Membership.Plans {
		b, err := EstimateMembership(trip, rates, p.Plan)
		if err != nil {
			return ComparisonResult{}, err
		}
		options = append(options, ServiceCost{Name: p.Name, Plan: p.Plan, Breakdown: b})
	}

	cheapest, savings := rank(options, func(o ServiceCost) float64 { return o.Breakdown.Total })
	return ComparisonResult{
		Options:             options,
		CheapestOption:      cheapest.Name,
		Savings:             savings,
		DistanceKm:          trip.DistanceKm,
		TravelMinutesOneWay: trip.DrivingMinutes,
	}, nil
}

// rank returns the lowest-cost item and its margin over the runner-up.
func rank[T any](items []T, cost func(T) float64) (T, float64) {
	sorted := make([]T, len(items))
	copy(sorted, items)
	sort.SliceStable(sorted, func(i, j int) bool { return cost(sorted[i]) < cost(sorted[j]) })
	if len(sorted) < 2 {
		return sorted[0], 0
	}
	return sorted[0], cost(sorted[1]) - cost(sorted[0])
}

// Aggregate compares every trip independently and finds the single service
// that is cheapest when used for all of them.
func Aggregate(trips []TripInput, rates RateSchedule) (AggregateResult, error) {
	if len(trips) == 0 {
		return AggregateResult{}, invalidInput("at least one trip is required")
	}

	results := make([]ComparisonResult, len(trips))
	var g errgroup.Group
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, trip := range trips {
		g.Go(func() error {
			r, err := Compare(trip, rates)
			if err != nil {
				return err
			}
			results[i] = r
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return AggregateResult{}, err
	}

	strategies := make([]Strategy, len(results[0].Options))
	for i, o := range results[0].Options {
		strategies[i].Name = o.Name
	}
	for _, r := range results {
		for i, o := range r.Options {
			strategies[i].Total += o.Breakdown.Total
		}
	}

	best, _ := rank(strategies, func(s Strategy) float64 { return s.Total })
	return AggregateResult{
		PerTrip:             results,
		Strategies:          strategies,
		BestOverallStrategy: best,
	}, nil
}

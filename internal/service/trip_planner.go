// README: Trip planner; routes origin to destination, checks the home zone and prices the trip.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"carshare/internal/maps"
	"carshare/internal/modules/pricing"
	"carshare/internal/types"
)

// ErrRouting wraps any failure of the routing provider.
var ErrRouting = errors.New("routing failed")

type ZoneChecker interface {
	Contains(p types.Point) bool
}

type QuoteService interface {
	Compare(ctx context.Context, trip pricing.TripInput) (pricing.Quote, error)
}

// PlanRequest is a trip described by coordinates instead of measured
// driving time and distance.
type PlanRequest struct {
	Origin            types.Point
	Destination       types.Point
	Start             time.Time
	StayingMinutes    float64
	BCAAMember        bool
	Vehicle           pricing.VehicleClass
	EV                bool
	RoundTripRequired bool
}

type PlanResult struct {
	Route    maps.RouteEstimate `json:"route"`
	HomeZone bool               `json:"destination_in_home_zone"`
	Quote    pricing.Quote      `json:"quote"`
}

// TripPlanner orchestrates routing, the home-zone lookup and pricing.
type TripPlanner struct {
	router maps.Router
	zones  ZoneChecker
	quotes QuoteService
	loc    *time.Location
	log    *slog.Logger
	now    func() time.Time
}

// NewTripPlanner creates a TripPlanner. zones may be nil, in which case no
// destination is treated as inside a home zone.
func NewTripPlanner(router maps.Router, zones ZoneChecker, quotes QuoteService, loc *time.Location, log *slog.Logger) *TripPlanner {
	return &TripPlanner{
		router: router,
		zones:  zones,
		quotes: quotes,
		loc:    loc,
		log:    log,
		now:    time.Now,
	}
}

// Plan prices the trip. A zero Start means now. Start is converted to the
// service time zone before pricing.
func (p *TripPlanner) Plan(ctx context.Context, req PlanRequest) (PlanResult, error) {
	if !req.Origin.Valid() || !req.Destination.Valid() {
		return PlanResult{}, fmt.Errorf("%w: coordinates out of range", pricing.ErrInvalidInput)
	}
	start := req.Start
	if start.IsZero() {
		start = p.now()
	}
	start = start.In(p.loc)

	route, err := p.router.Estimate(ctx, req.Origin, req.Destination, start)
	if err != nil {
		return PlanResult{}, fmt.Errorf("%w: %w", ErrRouting, err)
	}

	inZone := p.zones != nil && p.zones.Contains(req.Destination)
	p.log.Debug("trip routed",
		"origin", req.Origin.String(),
		"destination", req.Destination.String(),
		"minutes", route.DurationMinutes,
		"km", route.DistanceKm,
		"home_zone", inZone,
	)

	q, err := p.quotes.Compare(ctx, pricing.TripInput{
		Start:                 start,
		DrivingMinutes:        route.DurationMinutes,
		StayingMinutes:        req.StayingMinutes,
		DistanceKm:            route.DistanceKm,
		BCAAMember:            req.BCAAMember,
		Vehicle:               req.Vehicle,
		EV:                    req.EV,
		DestinationInHomeZone: inZone,
		RoundTripRequired:     req.RoundTripRequired,
	})
	if err != nil {
		return PlanResult{}, err
	}
	return PlanResult{Route: route, HomeZone: inZone, Quote: q}, nil
}

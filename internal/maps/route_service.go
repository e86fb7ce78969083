package maps

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"golang.org/x/time/rate"
	"googlemaps.github.io/maps"

	"carshare/internal/types"
)

// ErrNoRoute means the provider answered but found no drivable route.
var ErrNoRoute = errors.New("no route found")

// RouteEstimate is the one-way automobile route between two points.
type RouteEstimate struct {
	DurationMinutes float64 `json:"duration_minutes"`
	DistanceKm      float64 `json:"distance_km"`
}

// Router estimates the driving route for a departure instant.
type Router interface {
	Estimate(ctx context.Context, origin, destination types.Point, departure time.Time) (RouteEstimate, error)
}

// RouteService handles interactions with the Google Maps Directions API.
type RouteService struct {
	client  *maps.Client
	limiter *rate.Limiter
}

// NewRouteService creates a RouteService issuing at most rps requests per second.
func NewRouteService(apiKey string, rps float64, opts ...maps.ClientOption) (*RouteService, error) {
	opts = append([]maps.ClientOption{maps.WithAPIKey(apiKey)}, opts...)
	client, err := maps.NewClient(opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create maps client: %w", err)
	}
	return &RouteService{
		client:  client,
		limiter: rate.NewLimiter(rate.Limit(rps), 1),
	}, nil
}

// Estimate asks for the driving route leaving at departure. Traffic-aware
// duration is used when the provider returns one.
func (s *RouteService) Estimate(ctx context.Context, origin, destination types.Point, departure time.Time) (RouteEstimate, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return RouteEstimate{}, err
	}
	r := &maps.DirectionsRequest{
		Origin:      origin.String(),
		Destination: destination.String(),
		Mode:        maps.TravelModeDriving,
		Region:      "ca",
	}
	if departure.After(time.Now()) {
		r.DepartureTime = strconv.FormatInt(departure.Unix(), 10)
	}

	routes, _, err := s.client.Directions(ctx, r)
	if err != nil {
		return RouteEstimate{}, fmt.Errorf("maps api error: %w", err)
	}
	return estimateFromRoutes(routes)
}

func estimateFromRoutes(routes []maps.Route) (RouteEstimate, error) {
	if len(routes) == 0 || len(routes[0].Legs) == 0 {
		return RouteEstimate{}, ErrNoRoute
	}
	var out RouteEstimate
	for _, leg := range routes[0].Legs {
		d := leg.Duration
		if leg.DurationInTraffic > 0 {
			d = leg.DurationInTraffic
		}
		out.DurationMinutes += d.Minutes()
		out.DistanceKm += float64(leg.Distance.Meters) / 1000
	}
	return out, nil
}

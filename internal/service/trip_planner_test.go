package service

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"
	_ "time/tzdata"

	"carshare/internal/maps"
	"carshare/internal/modules/pricing"
	"carshare/internal/types"
)

type stubRouter struct {
	est       maps.RouteEstimate
	err       error
	departure time.Time
}

func (r *stubRouter) Estimate(_ context.Context, _, _ types.Point, departure time.Time) (maps.RouteEstimate, error) {
	r.departure = departure
	return r.est, r.err
}

type stubZones map[types.Point]bool

func (z stubZones) Contains(p types.Point) bool { return z[p] }

func newPlanner(t *testing.T, router maps.Router, zones ZoneChecker) *TripPlanner {
	t.Helper()
	loc, err := time.LoadLocation("America/Vancouver")
	if err != nil {
		t.Fatal(err)
	}
	svc := pricing.NewService(nil, pricing.DefaultSchedule(), nil)
	return NewTripPlanner(router, zones, svc, loc, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

var (
	downtown = types.Point{Lat: 49.2827, Lng: -123.1207}
	kits     = types.Point{Lat: 49.2684, Lng: -123.1683}
)

func TestTripPlanner_Plan(t *testing.T) {
	router := &stubRouter{est: maps.RouteEstimate{DurationMinutes: 12, DistanceKm: 4.5}}
	p := newPlanner(t, router, stubZones{kits: true})

	start := time.Date(2026, 2, 10, 18, 0, 0, 0, time.UTC) // 10:00 in Vancouver
	got, err := p.Plan(context.Background(), PlanRequest{
		Origin:         downtown,
		Destination:    kits,
		Start:          start,
		StayingMinutes: 90,
	})
	if err != nil {
		t.Fatalf("Plan() error = %v", err)
	}
	if !got.HomeZone {
		t.Error("destination should be in a home zone")
	}
	trip := got.Quote.Trip
	if trip.DrivingMinutes != 12 || trip.DistanceKm != 4.5 || trip.StayingMinutes != 90 || !trip.DestinationInHomeZone {
		t.Errorf("trip = %+v", trip)
	}
	if trip.Start.Location().String() != "America/Vancouver" || trip.Start.Hour() != 10 {
		t.Errorf("start = %v, want 10:00 local", trip.Start)
	}
	if !router.departure.Equal(start) {
		t.Errorf("routed departure = %v, want %v", router.departure, start)
	}
	if len(got.Quote.Result.Options) != 4 {
		t.Errorf("quote has %d options", len(got.Quote.Result.Options))
	}
}

func TestTripPlanner_DefaultsStartToNow(t *testing.T) {
	p := newPlanner(t, &stubRouter{est: maps.RouteEstimate{DurationMinutes: 5, DistanceKm: 2}}, nil)
	fixed := time.Date(2026, 3, 1, 20, 0, 0, 0, time.UTC)
	p.now = func() time.Time { return fixed }

	got, err := p.Plan(context.Background(), PlanRequest{Origin: downtown, Destination: kits})
	if err != nil {
		t.Fatal(err)
	}
	if !got.Quote.Trip.Start.Equal(fixed) {
		t.Errorf("start = %v, want %v", got.Quote.Trip.Start, fixed)
	}
	if got.HomeZone {
		t.Error("nil zone set reported a home zone")
	}
}

func TestTripPlanner_Errors(t *testing.T) {
	p := newPlanner(t, &stubRouter{err: maps.ErrNoRoute}, nil)
	_, err := p.Plan(context.Background(), PlanRequest{Origin: downtown, Destination: kits})
	if !errors.Is(err, ErrRouting) || !errors.Is(err, maps.ErrNoRoute) {
		t.Errorf("error = %v, want ErrRouting wrapping ErrNoRoute", err)
	}

	_, err = p.Plan(context.Background(), PlanRequest{Origin: types.Point{Lat: 91}, Destination: kits})
	if !errors.Is(err, pricing.ErrInvalidInput) {
		t.Errorf("error = %v, want ErrInvalidInput", err)
	}

	p = newPlanner(t, &stubRouter{}, nil)
	_, err = p.Plan(context.Background(), PlanRequest{Origin: downtown, Destination: kits, StayingMinutes: -5})
	if !errors.Is(err, pricing.ErrInvalidInput) {
		t.Errorf("negative stay: error = %v, want ErrInvalidInput", err)
	}
}

package pricing

import (
	"context"
	"errors"
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/google/uuid"
)

func TestService_Compare(t *testing.T) {
	svc := NewService(nil, DefaultSchedule(), nil)
	fixed := time.Date(2026, 2, 10, 9, 30, 0, 0, time.FixedZone("PST", -8*3600))
	svc.now = func() time.Time { return fixed }

	trip := TripInput{
		Start:          time.Date(2026, 2, 10, 10, 0, 0, 0, time.UTC),
		DrivingMinutes: 30,
		StayingMinutes: 60,
		DistanceKm:     10,
	}
	q, err := svc.Compare(context.Background(), trip)
	if err != nil {
		t.Fatalf("Compare() error = %v", err)
	}
	if _, err := uuid.Parse(q.ID); err != nil {
		t.Errorf("quote id %q is not a uuid: %v", q.ID, err)
	}
	if !q.CreatedAt.Equal(fixed) || q.CreatedAt.Location() != time.UTC {
		t.Errorf("CreatedAt = %v, want %v in UTC", q.CreatedAt, fixed)
	}
	if q.Result.CheapestOption != "Modo Plus" {
		t.Errorf("CheapestOption = %q", q.Result.CheapestOption)
	}

	other, _ := svc.Compare(context.Background(), trip)
	if other.ID == q.ID {
		t.Error("two quotes share an id")
	}
}

func TestService_CompareInvalid(t *testing.T) {
	svc := NewService(nil, DefaultSchedule(), nil)
	_, err := svc.Compare(context.Background(), TripInput{DrivingMinutes: 10})
	if !errors.Is(err, ErrInvalidInput) {
		t.Errorf("error = %v, want ErrInvalidInput", err)
	}
}

func TestService_GetQuoteWithoutStore(t *testing.T) {
	svc := NewService(nil, DefaultSchedule(), nil)
	for _, id := range []string{uuid.NewString(), "not-a-uuid"} {
		if _, err := svc.GetQuote(context.Background(), id); !errors.Is(err, ErrNotFound) {
			t.Errorf("GetQuote(%q) error = %v, want ErrNotFound", id, err)
		}
	}
}

func TestService_Aggregate(t *testing.T) {
	svc := NewService(nil, DefaultSchedule(), nil)
	trips := []TripInput{
		{Start: time.Date(2026, 2, 10, 10, 0, 0, 0, time.UTC), DrivingMinutes: 30, StayingMinutes: 60, DistanceKm: 10},
		{Start: time.Date(2026, 2, 10, 10, 0, 0, 0, time.UTC), DrivingMinutes: 30, StayingMinutes: 60, DistanceKm: 10},
	}
	got, err := svc.Aggregate(context.Background(), trips)
	if err != nil {
		t.Fatalf("Aggregate() error = %v", err)
	}
	if got.BestOverallStrategy.Name != "Modo Plus" || !near(got.BestOverallStrategy.Total, 44.8) {
		t.Errorf("best strategy = %+v, want Modo Plus at 44.80", got.BestOverallStrategy)
	}
}

func TestService_MovesStartIntoZone(t *testing.T) {
	loc, err := time.LoadLocation("America/Vancouver")
	if err != nil {
		t.Fatal(err)
	}
	svc := NewService(nil, DefaultSchedule(), loc)
	trip := TripInput{
		Start:          time.Date(2026, 2, 11, 1, 0, 0, 0, time.UTC),
		DrivingMinutes: 30,
		StayingMinutes: 300,
		DistanceKm:     20,
	}

	q, err := svc.Compare(context.Background(), trip)
	if err != nil {
		t.Fatalf("Compare() error = %v", err)
	}
	if q.Trip.Start.Location() != loc || !q.Trip.Start.Equal(trip.Start) {
		t.Errorf("quote start = %v, want %v in %s", q.Trip.Start, trip.Start, loc)
	}
	local, _ := Compare(TripInput{
		Start:          trip.Start.In(loc),
		DrivingMinutes: 30,
		StayingMinutes: 300,
		DistanceKm:     20,
	}, DefaultSchedule())
	raw, _ := Compare(trip, DefaultSchedule())
	plus, _ := q.Result.Option("Modo Plus")
	want, _ := local.Option("Modo Plus")
	utcPlus, _ := raw.Option("Modo Plus")
	if !near(plus.Total, want.Total) || !near(plus.Total, 41.44) {
		t.Errorf("Modo Plus = %v, want %v", plus.Total, want.Total)
	}
	if near(plus.Total, utcPlus.Total) {
		t.Errorf("zone had no effect: %v", plus.Total)
	}

	trips := []TripInput{trip}
	agg, err := svc.Aggregate(context.Background(), trips)
	if err != nil {
		t.Fatal(err)
	}
	if got, _ := agg.PerTrip[0].Option("Modo Plus"); !near(got.Total, 41.44) {
		t.Errorf("Aggregate Modo Plus = %v, want 41.44", got.Total)
	}
	if trips[0].Start.Location() != time.UTC {
		t.Error("Aggregate rewrote the caller's slice")
	}
}

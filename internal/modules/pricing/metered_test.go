package pricing

import (
	"errors"
	"math"
	"strings"
	"testing"
	"time"
)

func near(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func hasDetail(details []string, prefix string) bool {
	for _, d := range details {
		if strings.HasPrefix(d, prefix) {
			return true
		}
	}
	return false
}

func TestEstimateMetered(t *testing.T) {
	// Base time: 2026-02-10 12:00:00
	baseTime := time.Date(2026, 2, 10, 12, 0, 0, 0, time.UTC)
	rates := DefaultSchedule()

	tests := []struct {
		name      string
		trip      TripInput
		wantTime  float64
		wantFees  float64
		wantTotal float64
		wantPVRT  bool
	}{
		{
			name: "outside home zone bills the whole stay (2h)",
			trip: TripInput{Start: baseTime, DrivingMinutes: 30, StayingMinutes: 60},
			// Time: 2 × 17.99 = 35.98. Base: 37.83. Taxes: 37.83 × 12% = 4.5396.
			wantTime:  35.98,
			wantFees:  1.85,
			wantTotal: 42.3696,
		},
		{
			name: "home zone round trip, long stay splits into two rentals",
			trip: TripInput{Start: baseTime, DrivingMinutes: 30, StayingMinutes: 10, DestinationInHomeZone: true, RoundTripRequired: true},
			// Time: 60 min = 17.99. Fees: 2 × 1.85. Base: 21.69.
			wantTime:  17.99,
			wantFees:  3.70,
			wantTotal: 24.2928,
		},
		{
			name: "home zone round trip, short stay keeps the car",
			trip: TripInput{Start: baseTime, DrivingMinutes: 30, StayingMinutes: 2, DestinationInHomeZone: true, RoundTripRequired: true},
			// Time: 1h + 2 min = 17.99 + 0.98. Base: 20.82.
			wantTime:  18.97,
			wantFees:  1.85,
			wantTotal: 23.3184,
		},
		{
			name: "home zone one way bills the drive only",
			trip: TripInput{Start: baseTime, DrivingMinutes: 25, StayingMinutes: 100, DestinationInHomeZone: true},
			wantTime:  12.25,
			wantFees:  1.85,
			wantTotal: 15.792,
		},
		{
			name: "fractional minutes round up",
			trip: TripInput{Start: baseTime, DrivingMinutes: 10.2},
			// 20.4 → 21 min × 0.49
			wantTime:  10.29,
			wantFees:  1.85,
			wantTotal: (10.29 + 1.85) * 1.12,
		},
		{
			name: "more than a day adds PVRT for two billing days",
			trip: TripInput{Start: baseTime, DrivingMinutes: 60, StayingMinutes: 1400},
			// 1520 min = 1 day + 1h + 20 min = 104.99 + 17.99 + 9.80.
			// Base: 134.63. Taxes: 16.1556 + 3.00 + 0.15.
			wantTime:  132.78,
			wantFees:  1.85,
			wantTotal: 153.9356,
			wantPVRT:  true,
		},
		{
			name: "exactly eight hours owes one day of PVRT",
			trip: TripInput{Start: baseTime, StayingMinutes: 480},
			// 8 × 17.99 = 143.92. Base: 145.77. Taxes: 17.4924 + 1.5 + 0.075.
			wantTime:  143.92,
			wantFees:  1.85,
			wantTotal: 164.8374,
			wantPVRT:  true,
		},
		{
			name:      "just under eight hours owes no PVRT",
			trip:      TripInput{Start: baseTime, StayingMinutes: 479},
			wantTime:  7*17.99 + 59*0.49,
			wantFees:  1.85,
			wantTotal: (7*17.99 + 59*0.49 + 1.85) * 1.12,
		},
		{
			name:      "28 day rental is exempt from PVRT",
			trip:      TripInput{Start: baseTime, StayingMinutes: 28 * 1440},
			wantTime:  28 * 104.99,
			wantFees:  1.85,
			wantTotal: (28*104.99 + 1.85) * 1.12,
		},
		{
			name:      "27 day rental still owes PVRT",
			trip:      TripInput{Start: baseTime, StayingMinutes: 27 * 1440},
			wantTime:  27 * 104.99,
			wantFees:  1.85,
			wantTotal: (27*104.99+1.85)*1.12 + 27*1.5*1.05,
			wantPVRT:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := EstimateMetered(tt.trip, rates)
			if err != nil {
				t.Fatalf("EstimateMetered() error = %v", err)
			}
			if !near(got.TimeCost, tt.wantTime) {
				t.Errorf("TimeCost = %v, want %v", got.TimeCost, tt.wantTime)
			}
			if !near(got.Fees, tt.wantFees) {
				t.Errorf("Fees = %v, want %v", got.Fees, tt.wantFees)
			}
			if !near(got.Total, tt.wantTotal) {
				t.Errorf("Total = %v, want %v", got.Total, tt.wantTotal)
			}
			if got.DistanceCost != 0 {
				t.Errorf("DistanceCost = %v, want 0", got.DistanceCost)
			}
			if hasDetail(got.Details, "PVRT") != tt.wantPVRT {
				t.Errorf("PVRT line present = %v, want %v: %q", !tt.wantPVRT, tt.wantPVRT, got.Details)
			}
			if hasDetail(got.Details, "GST on PVRT") != tt.wantPVRT {
				t.Errorf("GST on PVRT line present = %v, want %v", !tt.wantPVRT, tt.wantPVRT)
			}
		})
	}
}

func TestEstimateMetered_MemberDiscountTrail(t *testing.T) {
	trip := TripInput{
		Start:          time.Date(2026, 2, 10, 12, 0, 0, 0, time.UTC),
		DrivingMinutes: 30,
		StayingMinutes: 60,
		BCAAMember:     true,
	}
	got, err := EstimateMetered(trip, DefaultSchedule())
	if err != nil {
		t.Fatalf("EstimateMetered() error = %v", err)
	}
	// Discount: 35.98 × 10% = 3.598. Base: 34.232.
	if !near(got.Discounts, 3.598) {
		t.Errorf("Discounts = %v, want 3.598", got.Discounts)
	}
	if !near(got.Total, 34.232*1.12) {
		t.Errorf("Total = %v, want %v", got.Total, 34.232*1.12)
	}
	want := []string{
		"  - 2 hours × $17.99 = $35.98",
		"  - Total time cost: $35.98",
		"Unlock fee: $1.85",
		"BCAA member discount (10%): -$3.60",
		"GST (5%): $1.71",
		"PST (7%): $2.40",
	}
	if strings.Join(got.Details, "\n") != strings.Join(want, "\n") {
		t.Errorf("Details =\n%s\nwant\n%s", strings.Join(got.Details, "\n"), strings.Join(want, "\n"))
	}
}

func TestEstimateMetered_ScenarioTwoDayContinuousRental(t *testing.T) {
	trip := TripInput{
		Start:                 time.Date(2026, 2, 10, 6, 0, 0, 0, time.UTC),
		DrivingMinutes:        900,
		StayingMinutes:        3,
		DestinationInHomeZone: true,
		RoundTripRequired:     true,
	}
	rates := DefaultSchedule()

	minutes, twoRentals := BillableMinutes(trip, rates.Metered)
	if twoRentals {
		t.Fatal("stay below unlock break-even should keep one rental")
	}
	if minutes < 1440 || minutes >= 2880 {
		t.Fatalf("billable minutes = %v, want a two-day span", minutes)
	}

	got, err := EstimateMetered(trip, rates)
	if err != nil {
		t.Fatalf("EstimateMetered() error = %v", err)
	}
	if !near(got.Fees, rates.Metered.UnlockFee) {
		t.Errorf("Fees = %v, want one unlock fee", got.Fees)
	}
	// 1803 min: 1 day + 6h + 3 min.
	if !near(got.TimeCost, 104.99+6*17.99+3*0.49) {
		t.Errorf("TimeCost = %v, want continuous billing", got.TimeCost)
	}
}

func TestEstimateMetered_Tiering(t *testing.T) {
	rates := DefaultSchedule()
	m := rates.Metered
	for _, d := range []int{0, 1, 59, 60, 61, 1439, 1440, 1441, 2879, 5000} {
		trip := TripInput{Start: time.Date(2026, 2, 10, 12, 0, 0, 0, time.UTC), StayingMinutes: float64(d)}
		got, err := EstimateMetered(trip, rates)
		if err != nil {
			t.Fatalf("EstimateMetered(%d) error = %v", d, err)
		}
		want := float64(d/1440)*m.PerDay + float64(d%1440/60)*m.PerHour + float64(d%60)*m.PerMinute
		if !near(got.TimeCost, want) {
			t.Errorf("D=%d: TimeCost = %v, want %v", d, got.TimeCost, want)
		}
		if got.TimeCost > float64(d)*m.PerMinute+1e-9 {
			t.Errorf("D=%d: tiered %v costs more than per-minute %v", d, got.TimeCost, float64(d)*m.PerMinute)
		}
	}
}

func TestEstimateMetered_InvalidInput(t *testing.T) {
	start := time.Date(2026, 2, 10, 12, 0, 0, 0, time.UTC)
	bad := []TripInput{
		{Start: start, DrivingMinutes: -1},
		{Start: start, StayingMinutes: math.NaN()},
		{Start: start, DistanceKm: math.Inf(1)},
		{DrivingMinutes: 10},
	}
	for _, trip := range bad {
		if _, err := EstimateMetered(trip, DefaultSchedule()); !errors.Is(err, ErrInvalidInput) {
			t.Errorf("EstimateMetered(%+v) error = %v, want ErrInvalidInput", trip, err)
		}
	}
}

package main

import (
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"gopkg.in/yaml.v3"

	"carshare/internal/modules/pricing"
	"carshare/internal/types"
)

type tripFile struct {
	Trips []tripEntry `yaml:"trips"`
}

type tripEntry struct {
	Start          string  `yaml:"start"`
	DrivingMinutes float64 `yaml:"driving_minutes"`
	StayingMinutes float64 `yaml:"staying_minutes"`
	DistanceKm     float64 `yaml:"distance_km"`
	BCAAMember     bool    `yaml:"bcaa_member"`
	Vehicle        string  `yaml:"vehicle"`
	EV             bool    `yaml:"ev"`
	HomeZone       bool    `yaml:"destination_in_home_zone"`
	RoundTrip      bool    `yaml:"round_trip_required"`
}

const localLayout = "2006-01-02T15:04"

// parseStart accepts RFC 3339 or a local "2006-01-02T15:04" in loc. Empty
// means now. The result is always in loc.
func parseStart(s string, loc *time.Location, now time.Time) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return now.In(loc), nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.In(loc), nil
	}
	t, err := time.ParseInLocation(localLayout, s, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("start %q: want RFC 3339 or %s", s, localLayout)
	}
	return t, nil
}

func loadTrips(path string, loc *time.Location) ([]pricing.TripInput, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var f tripFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	trips := make([]pricing.TripInput, 0, len(f.Trips))
	for i, e := range f.Trips {
		if e.Start == "" {
			return nil, fmt.Errorf("trip %d: start is required", i+1)
		}
		start, err := parseStart(e.Start, loc, time.Time{})
		if err != nil {
			return nil, fmt.Errorf("trip %d: %w", i+1, err)
		}
		trips = append(trips, pricing.TripInput{
			Start:                 start,
			DrivingMinutes:        e.DrivingMinutes,
			StayingMinutes:        e.StayingMinutes,
			DistanceKm:            e.DistanceKm,
			BCAAMember:            e.BCAAMember,
			Vehicle:               pricing.VehicleClass(e.Vehicle),
			EV:                    e.EV,
			DestinationInHomeZone: e.HomeZone,
			RoundTripRequired:     e.RoundTrip,
		})
	}
	return trips, nil
}

func printComparison(w io.Writer, res pricing.ComparisonResult, details bool) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "Option\tTime\tDistance\tFees\tTaxes\tDiscounts\tTotal\t")
	for _, o := range res.Options {
		b := o.Breakdown
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\t\n", o.Name,
			types.CAD(b.TimeCost), types.CAD(b.DistanceCost), types.CAD(b.Fees),
			types.CAD(b.Taxes), types.CAD(-b.Discounts), types.CAD(b.Total))
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	fmt.Fprintf(w, "\nCheapest: %s (saves %s)\n", res.CheapestOption, types.CAD(res.Savings))

	if details {
		for _, o := range res.Options {
			fmt.Fprintf(w, "\n%s\n", o.Name)
			for _, d := range o.Breakdown.Details {
				fmt.Fprintf(w, "  %s\n", d)
			}
		}
	}
	return nil
}

func printAggregate(w io.Writer, res pricing.AggregateResult) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "Trip\tCheapest\tSavings\t")
	for i, r := range res.PerTrip {
		fmt.Fprintf(tw, "%d\t%s\t%s\t\n", i+1, r.CheapestOption, types.CAD(r.Savings))
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	fmt.Fprintln(w)
	tw = tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "Strategy\tTotal\t")
	for _, s := range res.Strategies {
		fmt.Fprintf(tw, "%s\t%s\t\n", s.Name, types.CAD(s.Total))
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	fmt.Fprintf(w, "\nBest overall: %s at %s\n", res.BestOverallStrategy.Name, types.CAD(res.BestOverallStrategy.Total))
	return nil
}

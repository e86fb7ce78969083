// README: Command line estimator; compares one trip, aggregates a trip file, or smoke-tests a running API.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/urfave/cli/v2"

	"carshare/internal/modules/pricing"
)

var version = "dev"

func main() {
	app := &cli.App{
		Name:    "carshare",
		Usage:   "Compare metered and membership car-share costs",
		Version: version,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "rates",
				Usage:   "Path to a YAML rate table (defaults to the built-in rates)",
				EnvVars: []string{"CARSHARE_RATES_FILE"},
			},
			&cli.StringFlag{
				Name:    "timezone",
				Value:   "America/Vancouver",
				Usage:   "Time zone for start times without an offset",
				EnvVars: []string{"CARSHARE_TIMEZONE"},
			},
		},
		Commands: []*cli.Command{
			compareCommand(),
			aggregateCommand(),
			smokeCommand(),
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func loadRates(c *cli.Context) (pricing.RateSchedule, error) {
	if path := c.String("rates"); path != "" {
		return pricing.LoadSchedule(path)
	}
	return pricing.DefaultSchedule(), nil
}

func loadLocation(c *cli.Context) (*time.Location, error) {
	return time.LoadLocation(c.String("timezone"))
}

func compareCommand() *cli.Command {
	return &cli.Command{
		Name:  "compare",
		Usage: "Price one trip on every service",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "start", Usage: "Start time, RFC 3339 or 2006-01-02T15:04 local (default now)"},
			&cli.Float64Flag{Name: "drive", Aliases: []string{"d"}, Usage: "One-way driving minutes", Required: true},
			&cli.Float64Flag{Name: "stay", Aliases: []string{"s"}, Usage: "Minutes at the destination"},
			&cli.Float64Flag{Name: "km", Aliases: []string{"k"}, Usage: "One-way distance in km"},
			&cli.BoolFlag{Name: "bcaa", Usage: "BCAA member discount"},
			&cli.StringFlag{Name: "vehicle", Value: string(pricing.VehicleCompact), Usage: "compact, large or oversized"},
			&cli.BoolFlag{Name: "ev", Usage: "Electric vehicle"},
			&cli.BoolFlag{Name: "home-zone", Usage: "Destination is inside a metered home zone"},
			&cli.BoolFlag{Name: "round-trip", Usage: "Car must come back to the origin"},
			&cli.BoolFlag{Name: "details", Usage: "Print every line item"},
		},
		Action: func(c *cli.Context) error {
			rates, err := loadRates(c)
			if err != nil {
				return err
			}
			loc, err := loadLocation(c)
			if err != nil {
				return err
			}
			start, err := parseStart(c.String("start"), loc, time.Now())
			if err != nil {
				return err
			}
			trip := pricing.TripInput{
				Start:                 start,
				DrivingMinutes:        c.Float64("drive"),
				StayingMinutes:        c.Float64("stay"),
				DistanceKm:            c.Float64("km"),
				BCAAMember:            c.Bool("bcaa"),
				Vehicle:               pricing.VehicleClass(c.String("vehicle")),
				EV:                    c.Bool("ev"),
				DestinationInHomeZone: c.Bool("home-zone"),
				RoundTripRequired:     c.Bool("round-trip"),
			}
			res, err := pricing.Compare(trip, rates)
			if err != nil {
				return err
			}
			return printComparison(c.App.Writer, res, c.Bool("details"))
		},
	}
}

func aggregateCommand() *cli.Command {
	return &cli.Command{
		Name:  "aggregate",
		Usage: "Find the cheapest single service for a set of trips",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "file", Aliases: []string{"f"}, Usage: "YAML file with a trips list", Required: true},
		},
		Action: func(c *cli.Context) error {
			rates, err := loadRates(c)
			if err != nil {
				return err
			}
			loc, err := loadLocation(c)
			if err != nil {
				return err
			}
			trips, err := loadTrips(c.String("file"), loc)
			if err != nil {
				return err
			}
			res, err := pricing.Aggregate(trips, rates)
			if err != nil {
				return err
			}
			return printAggregate(c.App.Writer, res)
		},
	}
}

// README: Rate tables for the metered and membership services, loaded once at start.
package pricing

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// RateSchedule is the complete, read-only rate configuration.
type RateSchedule struct {
	Metered    MeteredRates    `yaml:"metered" json:"metered"`
	Membership MembershipRates `yaml:"membership" json:"membership"`
	Taxes      TaxRates        `yaml:"taxes" json:"taxes"`
}

type MeteredRates struct {
	Name      string  `yaml:"name" json:"name"`
	PerMinute float64 `yaml:"per_minute" json:"per_minute"`
	PerHour   float64 `yaml:"per_hour" json:"per_hour"`
	PerDay    float64 `yaml:"per_day" json:"per_day"`
	UnlockFee float64 `yaml:"unlock_fee" json:"unlock_fee"`
	// MemberDiscount is the fraction taken off the time cost for BCAA members.
	MemberDiscount float64 `yaml:"member_discount" json:"member_discount"`
}

// UnlockBreakEvenMinutes is the idle time worth one extra unlock fee.
func (m MeteredRates) UnlockBreakEvenMinutes() float64 {
	return m.UnlockFee / m.PerMinute
}

type MembershipRates struct {
	PerKm           float64     `yaml:"per_km" json:"per_km"`
	InnovationFee   float64     `yaml:"innovation_fee" json:"innovation_fee"`
	InnovationFeeEV float64     `yaml:"innovation_fee_ev" json:"innovation_fee_ev"`
	Plans           []PlanRates `yaml:"plans" json:"plans"`
}

// PlanRates is one membership tier. Classes missing from DayTripper are not
// eligible for the flat full-day rate.
type PlanRates struct {
	Plan                 Plan                     `yaml:"plan" json:"plan"`
	Name                 string                   `yaml:"name" json:"name"`
	Hourly               map[VehicleClass]float64 `yaml:"hourly" json:"hourly"`
	DayTripper           map[VehicleClass]float64 `yaml:"day_tripper" json:"day_tripper"`
	DayTripperIncludedKm float64                  `yaml:"day_tripper_included_km" json:"day_tripper_included_km"`
}

type TaxRates struct {
	GST float64 `yaml:"gst" json:"gst"`
	PST float64 `yaml:"pst" json:"pst"`
	// PerDay is the flat passenger vehicle rental tax charged per billing day.
	PerDay           float64 `yaml:"per_day" json:"per_day"`
	PerDayMinMinutes float64 `yaml:"per_day_min_minutes" json:"per_day_min_minutes"`
	PerDayExemptDays int     `yaml:"per_day_exempt_days" json:"per_day_exempt_days"`
}

// Proportional is the combined GST and PST rate.
func (t TaxRates) Proportional() float64 {
	return t.GST + t.PST
}

// DefaultSchedule returns the Metro Vancouver rates the service ships with.
func DefaultSchedule() RateSchedule {
	dayTripper := func() map[VehicleClass]float64 {
		return map[VehicleClass]float64{VehicleCompact: 100, VehicleLarge: 135}
	}
	return RateSchedule{
		Metered: MeteredRates{
			Name:           "Evo",
			PerMinute:      0.49,
			PerHour:        17.99,
			PerDay:         104.99,
			UnlockFee:      1.85,
			MemberDiscount: 0.10,
		},
		Membership: MembershipRates{
			PerKm:           0.35,
			InnovationFee:   3,
			InnovationFeeEV: 1,
			Plans: []PlanRates{
				{
					Plan:                 PlanPlus,
					Name:                 "Modo Plus",
					Hourly:               map[VehicleClass]float64{VehicleCompact: 5, VehicleLarge: 7, VehicleOversized: 10},
					DayTripper:           dayTripper(),
					DayTripperIncludedKm: 500,
				},
				{
					Plan:                 PlanMonthly,
					Name:                 "Modo Monthly",
					Hourly:               map[VehicleClass]float64{VehicleCompact: 6, VehicleLarge: 8, VehicleOversized: 11},
					DayTripper:           dayTripper(),
					DayTripperIncludedKm: 250,
				},
				{
					Plan:                 PlanBusiness,
					Name:                 "Modo Business",
					Hourly:               map[VehicleClass]float64{VehicleCompact: 6, VehicleLarge: 8, VehicleOversized: 11},
					DayTripper:           dayTripper(),
					DayTripperIncludedKm: 250,
				},
			},
		},
		Taxes: TaxRates{
			GST:              0.05,
			PST:              0.07,
			PerDay:           1.5,
			PerDayMinMinutes: 480,
			PerDayExemptDays: 28,
		},
	}
}

// LoadSchedule reads a YAML rate table and validates it.
func LoadSchedule(path string) (RateSchedule, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return RateSchedule{}, fmt.Errorf("reading rates %s: %w", path, err)
	}
	var rs RateSchedule
	if err := yaml.Unmarshal(data, &rs); err != nil {
		return RateSchedule{}, configError("parsing %s: %v", path, err)
	}
	if err := rs.Validate(); err != nil {
		return RateSchedule{}, err
	}
	return rs, nil
}

// PlanRates looks up a membership tier.
func (rs RateSchedule) PlanRates(plan Plan) (PlanRates, error) {
	for _, p := range rs.Membership.Plans {
		if p.Plan == plan {
			return p, nil
		}
	}
	return PlanRates{}, configError("no rates for plan %q", plan)
}

func (rs RateSchedule) Validate() error {
	m := rs.Metered
	if m.Name == "" {
		return configError("metered service needs a name")
	}
	if m.PerMinute <= 0 || m.PerHour <= 0 || m.PerDay <= 0 {
		return configError("metered unit prices must be positive")
	}
	if m.UnlockFee < 0 || m.MemberDiscount < 0 || m.MemberDiscount > 1 {
		return configError("metered fee or discount out of range")
	}
	if rs.Membership.PerKm < 0 || rs.Membership.InnovationFee < 0 || rs.Membership.InnovationFeeEV < 0 {
		return configError("membership per-km price and fees must not be negative")
	}
	if len(rs.Membership.Plans) == 0 {
		return configError("at least one membership plan is required")
	}
	seen := map[string]bool{m.Name: true}
	for _, p := range rs.Membership.Plans {
		if p.Plan == "" || p.Name == "" {
			return configError("membership plan needs an id and a name")
		}
		if seen[p.Name] || seen[string(p.Plan)] {
			return configError("duplicate option %q", p.Name)
		}
		seen[p.Name], seen[string(p.Plan)] = true, true
		if len(p.Hourly) == 0 {
			return configError("plan %q has no hourly rates", p.Plan)
		}
		for class, r := range p.Hourly {
			if r < 0 {
				return configError("plan %q class %q has a negative hourly rate", p.Plan, class)
			}
		}
		for class, r := range p.DayTripper {
			if _, ok := p.Hourly[class]; !ok || r < 0 {
				return configError("plan %q day tripper class %q is invalid", p.Plan, class)
			}
		}
	}
	t := rs.Taxes
	if t.GST < 0 || t.PST < 0 || t.PerDay < 0 || t.PerDayMinMinutes < 0 || t.PerDayExemptDays < 0 {
		return configError("tax rates must not be negative")
	}
	return nil
}

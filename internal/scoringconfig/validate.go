package scoringconfig

import (
	"fmt"
	"math"
)

// ValidationError is a fatal config problem; the process should refuse
// to start on one.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Validate checks every present section. Absent sections are fine; they
// fall back to defaults.
func Validate(cfg *Config) error {
	if cfg.Meta.ConfigID == "" {
		return ValidationError{"meta.config_id", "required"}
	}

	if be := cfg.BillEstimation; be != nil {
		if be.DefaultRate < 0 {
			return ValidationError{"bill_estimation.default_rate", "must be >= 0"}
		}
		if bc := be.BaseConsumption; bc != nil {
			if bc.Small <= 0 || bc.Medium <= 0 || bc.Large <= 0 || bc.VeryLarge <= 0 {
				return ValidationError{"bill_estimation.base_consumption", "all tiers must be > 0"}
			}
		}
		seen := make(map[int]bool, len(be.MonthlyFactors))
		for _, mf := range be.MonthlyFactors {
			if mf.Month < 1 || mf.Month > 12 {
				return ValidationError{"bill_estimation.monthly_factors", fmt.Sprintf("month %d out of range", mf.Month)}
			}
			if seen[mf.Month] {
				return ValidationError{"bill_estimation.monthly_factors", fmt.Sprintf("month %d duplicated", mf.Month)}
			}
			seen[mf.Month] = true
			if mf.Factor <= 0 {
				return ValidationError{"bill_estimation.monthly_factors", fmt.Sprintf("month %d factor must be > 0", mf.Month)}
			}
		}
		for i, zone := range be.ClimateZones {
			if zone.Name == "" {
				return ValidationError{fmt.Sprintf("bill_estimation.climate_zones[%d].name", i), "required"}
			}
			if zone.BaseFactor <= 0 {
				return ValidationError{fmt.Sprintf("bill_estimation.climate_zones[%d].base_factor", i), "must be > 0"}
			}
			if len(zone.ZipPrefixes) == 0 {
				return ValidationError{fmt.Sprintf("bill_estimation.climate_zones[%d].zip_prefixes", i), "required"}
			}
		}
		for i, rr := range be.RegionRates {
			if rr.Region == "" {
				return ValidationError{fmt.Sprintf("bill_estimation.region_rates[%d].region", i), "required"}
			}
			if rr.Rate <= 0 {
				return ValidationError{fmt.Sprintf("bill_estimation.region_rates[%d].rate", i), "must be > 0"}
			}
		}
	}

	if ra := cfg.RoofAnalysis; ra != nil {
		if w := ra.Weights; w != nil {
			sum := w.Orientation + w.Area + w.Shading + w.Pitch + w.Condition
			if err := validateWeightSum("roof_analysis.weights", sum); err != nil {
				return err
			}
		}
		if mr := ra.MinRequirements; mr != nil {
			if mr.UsableArea <= 0 {
				return ValidationError{"roof_analysis.min_requirements.usable_area", "must be > 0"}
			}
			if mr.MaxShading <= 0 || mr.MaxShading > 100 {
				return ValidationError{"roof_analysis.min_requirements.max_shading", "must be in (0, 100]"}
			}
		}
		if ov := ra.OptimalValues; ov != nil {
			if ov.Azimuth < 0 || ov.Azimuth >= 360 {
				return ValidationError{"roof_analysis.optimal_values.azimuth", "must be in [0, 360)"}
			}
			if ov.Pitch < 0 || ov.Pitch > 90 {
				return ValidationError{"roof_analysis.optimal_values.pitch", "must be in [0, 90]"}
			}
		}
		if err := validateThresholds("roof_analysis.thresholds", ra.Thresholds); err != nil {
			return err
		}
	}

	if ls := cfg.LeadScoring; ls != nil {
		if w := ls.Weights; w != nil {
			sum := w.BillSize + w.RoofSuitability + w.PropertyValue + w.NetMetering + w.Homeowner
			if err := validateWeightSum("lead_scoring.weights", sum); err != nil {
				return err
			}
		}
		if err := validateThresholds("lead_scoring.thresholds", ls.Thresholds); err != nil {
			return err
		}
		if mr := ls.MinRequirements; mr != nil {
			if mr.MonthlyBill <= 0 {
				return ValidationError{"lead_scoring.min_requirements.monthly_bill", "must be > 0"}
			}
			if mr.RoofScore < 0 || mr.RoofScore > 100 {
				return ValidationError{"lead_scoring.min_requirements.roof_score", "must be in [0, 100]"}
			}
		}
	}

	return nil
}

func validateWeightSum(field string, sum float64) error {
	if math.Abs(sum-1.0) > 0.01 {
		return ValidationError{field, fmt.Sprintf("must sum to 1.0, got %.4f", sum)}
	}
	return nil
}

func validateThresholds(field string, t *Thresholds) error {
	if t == nil {
		return nil
	}
	if !(t.Excellent > t.Good && t.Good > t.Average && t.Average > t.Poor) {
		return ValidationError{field, "must be strictly decreasing: excellent > good > average > poor"}
	}
	if t.Excellent > 100 || t.Poor < 0 {
		return ValidationError{field, "must be within [0, 100]"}
	}
	return nil
}

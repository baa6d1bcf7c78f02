package scoringconfig

import (
	"github.com/tverano/solarscout/internal/billing"
	"github.com/tverano/solarscout/internal/roof"
	"github.com/tverano/solarscout/internal/scoring"
)

// Config is the YAML-tunable scoring configuration. Every section is
// optional; an absent section keeps the built-in defaults for that
// engine. The struct round-trips through canonical JSON for hashing, so
// maps are avoided in favor of slices and structs.
type Config struct {
	Meta           Meta            `yaml:"meta" json:"meta"`
	BillEstimation *BillEstimation `yaml:"bill_estimation,omitempty" json:"bill_estimation,omitempty"`
	RoofAnalysis   *RoofAnalysis   `yaml:"roof_analysis,omitempty" json:"roof_analysis,omitempty"`
	LeadScoring    *LeadScoring    `yaml:"lead_scoring,omitempty" json:"lead_scoring,omitempty"`
}

// Meta identifies the configuration for audit records.
type Meta struct {
	ConfigID string `yaml:"config_id" json:"config_id"`
	Version  string `yaml:"version" json:"version"`
	Market   string `yaml:"market,omitempty" json:"market,omitempty"`
}

// BillEstimation overrides for the bill estimator.
type BillEstimation struct {
	DefaultRate     float64         `yaml:"default_rate" json:"default_rate"`
	DefaultRegion   string          `yaml:"default_region,omitempty" json:"default_region,omitempty"`
	BaseConsumption *BaseConsumption `yaml:"base_consumption,omitempty" json:"base_consumption,omitempty"`
	MonthlyFactors  []MonthFactor   `yaml:"monthly_factors,omitempty" json:"monthly_factors,omitempty"`
	ClimateZones    []ClimateZone   `yaml:"climate_zones,omitempty" json:"climate_zones,omitempty"`
	RegionRates     []RegionRate    `yaml:"region_rates,omitempty" json:"region_rates,omitempty"`
}

// BaseConsumption is the per-size-tier base kWh.
type BaseConsumption struct {
	Small     float64 `yaml:"small" json:"small"`
	Medium    float64 `yaml:"medium" json:"medium"`
	Large     float64 `yaml:"large" json:"large"`
	VeryLarge float64 `yaml:"very_large" json:"very_large"`
}

// MonthFactor is one month's seasonal usage multiplier.
type MonthFactor struct {
	Month  int     `yaml:"month" json:"month"`
	Factor float64 `yaml:"factor" json:"factor"`
}

// ClimateZone maps ZIP prefixes to a usage multiplier.
type ClimateZone struct {
	Name        string   `yaml:"name" json:"name"`
	BaseFactor  float64  `yaml:"base_factor" json:"base_factor"`
	ZipPrefixes []string `yaml:"zip_prefixes" json:"zip_prefixes"`
}

// RegionRate is the synthesized utility rate for a region.
type RegionRate struct {
	Region string  `yaml:"region" json:"region"`
	Rate   float64 `yaml:"rate" json:"rate"`
}

// RoofAnalysis overrides for the roof analyzer.
type RoofAnalysis struct {
	Weights         *RoofWeights     `yaml:"weights,omitempty" json:"weights,omitempty"`
	MinRequirements *RoofMinimums    `yaml:"min_requirements,omitempty" json:"min_requirements,omitempty"`
	OptimalValues   *OptimalValues   `yaml:"optimal_values,omitempty" json:"optimal_values,omitempty"`
	Thresholds      *Thresholds      `yaml:"thresholds,omitempty" json:"thresholds,omitempty"`
}

// RoofWeights must sum to 1.0.
type RoofWeights struct {
	Orientation float64 `yaml:"orientation" json:"orientation"`
	Area        float64 `yaml:"area" json:"area"`
	Shading     float64 `yaml:"shading" json:"shading"`
	Pitch       float64 `yaml:"pitch" json:"pitch"`
	Condition   float64 `yaml:"condition" json:"condition"`
}

// RoofMinimums are the hard disqualification floors.
type RoofMinimums struct {
	UsableArea float64 `yaml:"usable_area" json:"usable_area"`
	MaxShading float64 `yaml:"max_shading" json:"max_shading"`
}

// OptimalValues for the installation site.
type OptimalValues struct {
	Azimuth float64 `yaml:"azimuth" json:"azimuth"`
	Pitch   float64 `yaml:"pitch" json:"pitch"`
}

// Thresholds map a weighted score to a band. Shared by the roof and
// lead sections.
type Thresholds struct {
	Excellent float64 `yaml:"excellent" json:"excellent"`
	Good      float64 `yaml:"good" json:"good"`
	Average   float64 `yaml:"average" json:"average"`
	Poor      float64 `yaml:"poor" json:"poor"`
}

// LeadScoring overrides for the lead scoring engine.
type LeadScoring struct {
	Weights         *LeadWeights  `yaml:"weights,omitempty" json:"weights,omitempty"`
	Thresholds      *Thresholds   `yaml:"thresholds,omitempty" json:"thresholds,omitempty"`
	MinRequirements *LeadMinimums `yaml:"min_requirements,omitempty" json:"min_requirements,omitempty"`
}

// LeadWeights must sum to 1.0.
type LeadWeights struct {
	BillSize        float64 `yaml:"bill_size" json:"bill_size"`
	RoofSuitability float64 `yaml:"roof_suitability" json:"roof_suitability"`
	PropertyValue   float64 `yaml:"property_value" json:"property_value"`
	NetMetering     float64 `yaml:"net_metering" json:"net_metering"`
	Homeowner       float64 `yaml:"homeowner" json:"homeowner"`
}

// LeadMinimums are the hard disqualification floors.
type LeadMinimums struct {
	MonthlyBill float64 `yaml:"monthly_bill" json:"monthly_bill"`
	RoofScore   float64 `yaml:"roof_score" json:"roof_score"`
}

// BillingConfig merges the overrides onto the billing defaults.
func (c *Config) BillingConfig() billing.Config {
	cfg := billing.DefaultConfig()
	if c == nil || c.BillEstimation == nil {
		return cfg
	}

	be := c.BillEstimation
	if be.DefaultRate > 0 {
		cfg.DefaultRate = be.DefaultRate
	}
	if be.DefaultRegion != "" {
		cfg.DefaultRegion = be.DefaultRegion
	}
	if be.BaseConsumption != nil {
		cfg.BaseConsumption = billing.BaseConsumption{
			Small:     be.BaseConsumption.Small,
			Medium:    be.BaseConsumption.Medium,
			Large:     be.BaseConsumption.Large,
			VeryLarge: be.BaseConsumption.VeryLarge,
		}
	}
	if len(be.MonthlyFactors) > 0 {
		factors := make(map[int]float64, len(be.MonthlyFactors))
		for _, mf := range be.MonthlyFactors {
			factors[mf.Month] = mf.Factor
		}
		cfg.MonthlyFactors = factors
	}
	if len(be.ClimateZones) > 0 {
		zones := make([]billing.ClimateZone, 0, len(be.ClimateZones))
		for _, z := range be.ClimateZones {
			zones = append(zones, billing.ClimateZone{
				Name:        z.Name,
				BaseFactor:  z.BaseFactor,
				ZipPrefixes: z.ZipPrefixes,
			})
		}
		cfg.ClimateZones = zones
	}
	if len(be.RegionRates) > 0 {
		rates := make(map[string]float64, len(be.RegionRates))
		for _, rr := range be.RegionRates {
			rates[rr.Region] = rr.Rate
		}
		cfg.RegionRates = rates
	}
	return cfg
}

// RoofConfig merges the overrides onto the roof analyzer defaults.
func (c *Config) RoofConfig() roof.Config {
	cfg := roof.DefaultConfig()
	if c == nil || c.RoofAnalysis == nil {
		return cfg
	}

	ra := c.RoofAnalysis
	if ra.Weights != nil {
		cfg.Weights = roof.Weights{
			Orientation: ra.Weights.Orientation,
			Area:        ra.Weights.Area,
			Shading:     ra.Weights.Shading,
			Pitch:       ra.Weights.Pitch,
			Condition:   ra.Weights.Condition,
		}
	}
	if ra.MinRequirements != nil {
		cfg.MinRequirements = roof.MinRequirements{
			UsableArea: ra.MinRequirements.UsableArea,
			MaxShading: ra.MinRequirements.MaxShading,
		}
	}
	if ra.OptimalValues != nil {
		cfg.OptimalValues = roof.OptimalValues{
			Azimuth: ra.OptimalValues.Azimuth,
			Pitch:   ra.OptimalValues.Pitch,
		}
	}
	if ra.Thresholds != nil {
		cfg.Thresholds = roof.Thresholds{
			Excellent: ra.Thresholds.Excellent,
			Good:      ra.Thresholds.Good,
			Average:   ra.Thresholds.Average,
			Poor:      ra.Thresholds.Poor,
		}
	}
	return cfg
}

// ScoringConfig merges the overrides onto the lead scoring defaults.
func (c *Config) ScoringConfig() scoring.Config {
	cfg := scoring.DefaultConfig()
	if c == nil || c.LeadScoring == nil {
		return cfg
	}

	ls := c.LeadScoring
	if ls.Weights != nil {
		cfg.Weights = scoring.Weights{
			BillSize:        ls.Weights.BillSize,
			RoofSuitability: ls.Weights.RoofSuitability,
			PropertyValue:   ls.Weights.PropertyValue,
			NetMetering:     ls.Weights.NetMetering,
			Homeowner:       ls.Weights.Homeowner,
		}
	}
	if ls.Thresholds != nil {
		cfg.Thresholds = scoring.Thresholds{
			Excellent: ls.Thresholds.Excellent,
			Good:      ls.Thresholds.Good,
			Average:   ls.Thresholds.Average,
			Poor:      ls.Thresholds.Poor,
		}
	}
	if ls.MinRequirements != nil {
		cfg.MinRequirements = scoring.MinRequirements{
			MonthlyBill: ls.MinRequirements.MonthlyBill,
			RoofScore:   ls.MinRequirements.RoofScore,
		}
	}
	return cfg
}

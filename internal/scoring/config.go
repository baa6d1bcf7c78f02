package scoring

import "math"

// Config holds the lead scoring tunables. Loaded once at construction
// and read-only afterwards.
type Config struct {
	Weights         Weights
	Thresholds      Thresholds
	MinRequirements MinRequirements
}

// Weights for the five lead scoring components. Must sum to 1.0.
type Weights struct {
	BillSize        float64 `json:"bill_size"`
	RoofSuitability float64 `json:"roof_suitability"`
	PropertyValue   float64 `json:"property_value"`
	NetMetering     float64 `json:"net_metering"`
	Homeowner       float64 `json:"homeowner"`
}

// Sum returns the total of all weights.
func (w Weights) Sum() float64 {
	return w.BillSize + w.RoofSuitability + w.PropertyValue + w.NetMetering + w.Homeowner
}

// Valid reports whether the weights sum to 1.0 within floating point
// tolerance.
func (w Weights) Valid() bool {
	return math.Abs(w.Sum()-1.0) < 0.01
}

// Thresholds map the weighted score to a qualification band.
type Thresholds struct {
	Excellent float64
	Good      float64
	Average   float64
	Poor      float64
}

// MinRequirements are hard disqualification floors evaluated before the
// weighted sum.
type MinRequirements struct {
	MonthlyBill float64 // minimum monthly bill ($)
	RoofScore   float64 // minimum roof suitability score
}

// DefaultConfig returns the default scoring configuration.
func DefaultConfig() Config {
	return Config{
		Weights: Weights{
			BillSize:        0.30,
			RoofSuitability: 0.25,
			PropertyValue:   0.15,
			NetMetering:     0.20,
			Homeowner:       0.10,
		},
		Thresholds: Thresholds{
			Excellent: 80,
			Good:      65,
			Average:   50,
			Poor:      35,
		},
		MinRequirements: MinRequirements{
			MonthlyBill: 120,
			RoofScore:   30,
		},
	}
}

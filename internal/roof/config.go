package roof

import "math"

// Config holds the analyzer tunables. Loaded once at construction and
// read-only afterwards.
type Config struct {
	Weights         Weights
	MinRequirements MinRequirements
	OptimalValues   OptimalValues
	Thresholds      Thresholds
}

// Weights for the five roof suitability components. Must sum to 1.0.
type Weights struct {
	Orientation float64 `json:"orientation"`
	Area        float64 `json:"area"`
	Shading     float64 `json:"shading"`
	Pitch       float64 `json:"pitch"`
	Condition   float64 `json:"condition"`
}

// Sum returns the total of all weights.
func (w Weights) Sum() float64 {
	return w.Orientation + w.Area + w.Shading + w.Pitch + w.Condition
}

// Valid reports whether the weights sum to 1.0 within floating point
// tolerance.
func (w Weights) Valid() bool {
	return math.Abs(w.Sum()-1.0) < 0.01
}

// MinRequirements are hard disqualification floors.
type MinRequirements struct {
	UsableArea float64 // minimum usable roof area (sq ft)
	MaxShading float64 // maximum acceptable shading percentage
}

// OptimalValues for the installation site.
type OptimalValues struct {
	Azimuth float64 // 180 = due south
	Pitch   float64 // degrees
}

// Thresholds map the weighted score to a suitability band.
type Thresholds struct {
	Excellent float64
	Good      float64
	Average   float64
	Poor      float64
}

// DefaultConfig returns the Texas defaults.
func DefaultConfig() Config {
	return Config{
		Weights: Weights{
			Orientation: 0.35,
			Area:        0.25,
			Shading:     0.20,
			Pitch:       0.10,
			Condition:   0.10,
		},
		MinRequirements: MinRequirements{
			UsableArea: 400,
			MaxShading: 40,
		},
		OptimalValues: OptimalValues{
			Azimuth: 180,
			Pitch:   25,
		},
		Thresholds: Thresholds{
			Excellent: 80,
			Good:      65,
			Average:   50,
			Poor:      35,
		},
	}
}

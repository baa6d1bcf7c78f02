package roof

import (
	"github.com/tverano/solarscout/internal/contracts"
)

// Panel and production constants for system sizing.
const (
	PanelArea  = 17.5 // sq ft per panel
	PanelPower = 0.3  // kW per panel

	solarIrradiance = 5.0  // kWh/m²/day, typical for Texas
	systemLosses    = 0.75 // inverter, wiring, soiling, temperature
	costPerKW       = 3000 // $ per installed kW
)

// Orientation-dependent production factors.
var orientationFactors = map[string]float64{
	contracts.OrientationS:  1.0,
	contracts.OrientationSE: 0.95,
	contracts.OrientationSW: 0.95,
	contracts.OrientationE:  0.85,
	contracts.OrientationW:  0.85,
	contracts.OrientationNE: 0.75,
	contracts.OrientationNW: 0.75,
	contracts.OrientationN:  0.65,
}

// SystemEstimate sizes a solar installation for a roof and, when a
// utility rate is available, derives the simple financial metrics.
type SystemEstimate struct {
	NumPanels        int     `json:"num_panels"`
	SystemSizeKW     float64 `json:"system_size_kw"`
	AnnualProduction float64 `json:"annual_production_kwh"`

	// Present only when a utility rate was supplied.
	AnnualSavings float64 `json:"annual_savings,omitempty"`
	SystemCost    float64 `json:"system_cost,omitempty"`
	PaybackYears  float64 `json:"payback_period_years,omitempty"`
}

// EstimateSystemSize estimates how large a system fits on the roof and
// what it would produce. Panel count comes from usable area at a fixed
// panel footprint; production applies irradiance, orientation, pitch,
// and loss factors.
func (a *Analyzer) EstimateSystemSize(roof *contracts.Roof, utility *contracts.Utility) *SystemEstimate {
	if roof == nil {
		return &SystemEstimate{}
	}

	usableArea := 0.0
	if roof.UsableRoofArea != nil {
		usableArea = *roof.UsableRoofArea
	}

	orientationFactor := 0.9 // unknown orientation
	if roof.PrimaryOrientation != nil {
		if f, ok := orientationFactors[*roof.PrimaryOrientation]; ok {
			orientationFactor = f
		}
	} else {
		orientationFactor = 1.0 // assume south when unreported
	}

	pitchFactor := 1.0
	if roof.Pitch != nil {
		switch {
		case *roof.Pitch < 10:
			pitchFactor = 0.9
		case *roof.Pitch > 40:
			pitchFactor = 0.95
		}
	}

	numPanels := int(usableArea / PanelArea)
	systemSize := float64(numPanels) * PanelPower
	annualProduction := systemSize * solarIrradiance * 365 * orientationFactor * pitchFactor * systemLosses

	estimate := &SystemEstimate{
		NumPanels:        numPanels,
		SystemSizeKW:     systemSize,
		AnnualProduction: annualProduction,
	}

	if utility != nil {
		rate := 0.12
		if utility.ResidentialRate != nil {
			rate = *utility.ResidentialRate
		}

		estimate.AnnualSavings = annualProduction * rate
		estimate.SystemCost = systemSize * costPerKW
		if estimate.AnnualSavings > 0 {
			estimate.PaybackYears = estimate.SystemCost / estimate.AnnualSavings
		}
	}

	return estimate
}

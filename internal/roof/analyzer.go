package roof

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/tverano/solarscout/internal/contracts"
	"github.com/tverano/solarscout/pkg/logger"
)

// Suitability bands for a roof analysis.
const (
	SuitabilityExcellent  = "excellent"
	SuitabilityGood       = "good"
	SuitabilityAverage    = "average"
	SuitabilityPoor       = "poor"
	SuitabilityUnsuitable = "unsuitable"
)

// Analyzer scores roof suitability for solar installation. Stateless
// apart from configuration.
type Analyzer struct {
	config Config
	logger *logger.Logger
}

// NewAnalyzer creates an analyzer with the given config.
func NewAnalyzer(config Config, log *logger.Logger) *Analyzer {
	return &Analyzer{
		config: config,
		logger: log,
	}
}

// ComponentScores holds the rounded per-component scores.
type ComponentScores struct {
	Orientation int `json:"orientation"`
	Area        int `json:"area"`
	Shading     int `json:"shading"`
	Pitch       int `json:"pitch"`
	Condition   int `json:"condition"`
}

// Analysis is the full result of a roof suitability analysis.
type Analysis struct {
	OverallScore    int             `json:"overall_score"`
	Suitability     string          `json:"suitability,omitempty"`
	Message         string          `json:"message,omitempty"`
	ComponentScores ComponentScores `json:"component_scores"`
	Weights         Weights         `json:"weights"`
	Recommendations []string        `json:"recommendations,omitempty"`
	SystemEstimate  *SystemEstimate `json:"system_size_estimate,omitempty"`
	Timestamp       time.Time       `json:"timestamp"`
}

// AnalyzeSuitability scores a roof across orientation, area, shading,
// pitch, and condition. A usable area below the minimum or shading above
// the maximum zeroes the overall score regardless of the other
// components.
func (a *Analyzer) AnalyzeSuitability(roof *contracts.Roof) *Analysis {
	if roof == nil {
		return &Analysis{
			OverallScore: 0,
			Message:      "No roof data available",
			Timestamp:    time.Now(),
		}
	}

	orientationScore := clamp(a.orientationScore(roof))
	areaScore := clamp(a.areaScore(roof))
	shadingScore := clamp(a.shadingScore(roof))
	pitchScore := clamp(a.pitchScore(roof))
	conditionScore := clamp(a.conditionScore(roof))

	var overallScore float64
	var suitability, message string

	if areaScore == 0 || shadingScore == 0 {
		overallScore = 0
		suitability = SuitabilityUnsuitable
		message = "Roof does not meet minimum requirements for solar installation"
	} else {
		overallScore = orientationScore*a.config.Weights.Orientation +
			areaScore*a.config.Weights.Area +
			shadingScore*a.config.Weights.Shading +
			pitchScore*a.config.Weights.Pitch +
			conditionScore*a.config.Weights.Condition
		suitability, message = a.classify(overallScore)
	}

	a.logger.WithFields(map[string]interface{}{
		"overall_score": overallScore,
		"suitability":   suitability,
	}).Debug("Roof suitability analyzed")

	return &Analysis{
		OverallScore: int(math.Round(overallScore)),
		Suitability:  suitability,
		Message:      message,
		ComponentScores: ComponentScores{
			Orientation: int(math.Round(orientationScore)),
			Area:        int(math.Round(areaScore)),
			Shading:     int(math.Round(shadingScore)),
			Pitch:       int(math.Round(pitchScore)),
			Condition:   int(math.Round(conditionScore)),
		},
		Weights:         a.config.Weights,
		Recommendations: a.recommendations(roof, overallScore),
		Timestamp:       time.Now(),
	}
}

func (a *Analyzer) classify(score float64) (string, string) {
	t := a.config.Thresholds
	switch {
	case score >= t.Excellent:
		return SuitabilityExcellent, "Roof is excellent for solar installation"
	case score >= t.Good:
		return SuitabilityGood, "Roof is well-suited for solar installation"
	case score >= t.Average:
		return SuitabilityAverage, "Roof is acceptable for solar installation"
	case score >= t.Poor:
		return SuitabilityPoor, "Roof has significant limitations for solar installation"
	default:
		return SuitabilityUnsuitable, "Roof is not recommended for solar installation"
	}
}

// orientationScore prefers azimuth when available: 180° (due south)
// scores 100, falling off linearly to 0 at 180° of deviation. Without an
// azimuth the cardinal direction lookup is used, and without either the
// score is neutral.
func (a *Analyzer) orientationScore(roof *contracts.Roof) float64 {
	if roof.Azimuth != nil {
		deviation := math.Abs(*roof.Azimuth - a.config.OptimalValues.Azimuth)
		if deviation > 180 {
			deviation = 360 - deviation
		}
		return 100 - (deviation/180)*100
	}

	if roof.PrimaryOrientation != nil {
		if score, ok := orientationScores[*roof.PrimaryOrientation]; ok {
			return score
		}
		return 50
	}

	return 50
}

var orientationScores = map[string]float64{
	contracts.OrientationS:  100,
	contracts.OrientationSE: 90,
	contracts.OrientationSW: 90,
	contracts.OrientationE:  70,
	contracts.OrientationW:  70,
	contracts.OrientationNE: 40,
	contracts.OrientationNW: 40,
	contracts.OrientationN:  20,
}

// areaScore ramps from 50 at the minimum qualifying area to 80 at 800
// sq ft and 100 at 1200+ sq ft. Below the minimum the roof is
// disqualified. When only the total area is known, usable area is
// estimated as 60% of it. No area data at all cannot qualify.
func (a *Analyzer) areaScore(roof *contracts.Roof) float64 {
	var usable float64
	switch {
	case roof.UsableRoofArea != nil:
		usable = *roof.UsableRoofArea
	case roof.TotalRoofArea != nil:
		usable = *roof.TotalRoofArea * 0.6
	default:
		return 0
	}

	minArea := a.config.MinRequirements.UsableArea
	switch {
	case usable < minArea:
		return 0
	case usable >= 1200:
		return 100
	case usable >= 800:
		return 80 + (usable-800)*20/400
	default:
		return 50 + (usable-minArea)*30/(800-minArea)
	}
}

// shadingScore decays linearly from 100 at 0% shading to 0 at the
// maximum. Above the maximum the roof is disqualified.
func (a *Analyzer) shadingScore(roof *contracts.Roof) float64 {
	if roof.ShadingPercentage == nil {
		return 50
	}

	shading := *roof.ShadingPercentage
	maxShading := a.config.MinRequirements.MaxShading
	if shading > maxShading {
		return 0
	}
	return 100 - (shading/maxShading)*100
}

// pitchScore maps deviation from the optimal pitch linearly to 0 at 30°
// of deviation.
func (a *Analyzer) pitchScore(roof *contracts.Roof) float64 {
	if roof.Pitch == nil {
		return 50
	}

	deviation := math.Abs(*roof.Pitch - a.config.OptimalValues.Pitch)
	if deviation >= 30 {
		return 0
	}
	return 100 - (deviation/30)*100
}

var conditionScores = map[string]float64{
	"excellent": 100,
	"good":      80,
	"fair":      60,
	"poor":      30,
	"very poor": 10,
}

// conditionScore uses the categorical condition when known, otherwise
// derives a score from roof age.
func (a *Analyzer) conditionScore(roof *contracts.Roof) float64 {
	if roof.RoofCondition != nil {
		if score, ok := conditionScores[strings.ToLower(*roof.RoofCondition)]; ok {
			return score
		}
		return 50
	}

	if roof.RoofAge != nil {
		age := *roof.RoofAge
		switch {
		case age <= 2:
			return 100
		case age <= 5:
			return 90
		case age <= 10:
			return 75
		case age <= 15:
			return 60
		case age <= 20:
			return 40
		default:
			return 20
		}
	}

	return 50
}

// recommendations generates installer-facing hints from component values
// crossing specific thresholds.
func (a *Analyzer) recommendations(roof *contracts.Roof, overallScore float64) []string {
	recs := make([]string, 0, 4)

	if overallScore < a.config.Thresholds.Poor {
		return append(recs, "This roof is not well-suited for solar installation. Consider alternative options.")
	}

	if roof.Azimuth != nil || roof.PrimaryOrientation != nil {
		if a.orientationScore(roof) < 50 {
			recs = append(recs, "Roof orientation is not ideal. Consider panel tilt optimization to improve energy production.")
		}
		if roof.PrimaryOrientation != nil {
			switch *roof.PrimaryOrientation {
			case contracts.OrientationE, contracts.OrientationW:
				recs = append(recs, "East/West orientation will produce less energy than south-facing installations. Consider high-efficiency panels.")
			case contracts.OrientationNE, contracts.OrientationNW, contracts.OrientationN:
				recs = append(recs, "Northern orientation significantly reduces solar production. Consider ground-mounted system if land is available.")
			}
		}
	}

	if roof.UsableRoofArea != nil {
		systemSize := float64(int(*roof.UsableRoofArea/PanelArea)) * PanelPower
		switch {
		case systemSize < 5:
			recs = append(recs, fmt.Sprintf("Limited roof area allows for approximately %.1f kW system. Consider high-efficiency panels to maximize production.", systemSize))
		case systemSize >= 10:
			recs = append(recs, fmt.Sprintf("Large roof area can support a %.1f kW system, which may exceed typical residential needs. Consider battery storage for excess production.", systemSize))
		default:
			recs = append(recs, fmt.Sprintf("Roof area can support approximately %.1f kW system, which is well-suited for typical residential needs.", systemSize))
		}
	}

	if roof.ShadingPercentage != nil {
		shading := *roof.ShadingPercentage
		if shading > 20 {
			recs = append(recs, fmt.Sprintf("Significant shading (%.0f%%) will reduce system performance. Consider tree trimming or microinverters/optimizers to mitigate shading impacts.", shading))
		} else if shading > 10 {
			recs = append(recs, fmt.Sprintf("Moderate shading (%.0f%%) may affect system performance. Microinverters or power optimizers are recommended.", shading))
		}
	}

	if roof.Pitch != nil {
		pitch := *roof.Pitch
		if pitch < 10 {
			recs = append(recs, fmt.Sprintf("Low roof pitch (%.0f°) may lead to debris accumulation and reduced self-cleaning. Consider more frequent maintenance.", pitch))
		} else if pitch > 40 {
			recs = append(recs, fmt.Sprintf("Steep roof pitch (%.0f°) increases installation complexity and cost. Specialized mounting equipment may be required.", pitch))
		}
	}

	if roof.RoofCondition != nil {
		condition := strings.ToLower(*roof.RoofCondition)
		if condition == "poor" || condition == "very poor" {
			recs = append(recs, "Roof condition is poor. Roof repair or replacement is recommended before solar installation.")
		}
	}

	return recs
}

func clamp(score float64) float64 {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

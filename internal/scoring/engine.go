package scoring

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/tverano/solarscout/internal/contracts"
	"github.com/tverano/solarscout/internal/roof"
	"github.com/tverano/solarscout/pkg/logger"
)

// Qualification bands for a scored lead.
const (
	QualificationExcellent  = "excellent"
	QualificationGood       = "good"
	QualificationAverage    = "average"
	QualificationPoor       = "poor"
	QualificationUnsuitable = "unsuitable"
	QualificationError      = "error"
)

// Engine computes the overall lead score from bill size, roof
// suitability, property attributes, net metering availability, and
// homeowner contactability. Stateless apart from configuration.
type Engine struct {
	config Config
	logger *logger.Logger
}

// NewEngine creates a scoring engine with the given config.
func NewEngine(config Config, log *logger.Logger) *Engine {
	return &Engine{
		config: config,
		logger: log,
	}
}

// Input bundles the per-lead data for a scoring pass. RoofAnalysis is
// optional; when present its overall score is reused instead of the
// engine's own simplified roof scoring.
type Input struct {
	Property     *contracts.Property
	Utility      *contracts.Utility
	Roof         *contracts.Roof
	Owner        *contracts.Owner
	RoofAnalysis *roof.Analysis
}

// ComponentScores holds the rounded per-component scores.
type ComponentScores struct {
	BillSize        int `json:"bill_size"`
	RoofSuitability int `json:"roof_suitability"`
	PropertyValue   int `json:"property_value"`
	NetMetering     int `json:"net_metering"`
	Homeowner       int `json:"homeowner"`
}

// Result is the full outcome of scoring a lead.
type Result struct {
	PropertyID             string          `json:"property_id,omitempty"`
	OverallScore           int             `json:"overall_score"`
	Qualification          string          `json:"qualification"`
	Disqualified           bool            `json:"disqualified"`
	DisqualificationReason string          `json:"disqualification_reason,omitempty"`
	ComponentScores        ComponentScores `json:"component_scores"`
	Weights                Weights         `json:"weights"`
	Error                  string          `json:"error,omitempty"`
	Timestamp              time.Time       `json:"timestamp"`
}

// Score computes the overall lead score. A lead whose monthly bill falls
// below the minimum, or whose roof score falls below the minimum, is
// disqualified with a zero overall score before any weighting. Scoring
// failures are logged and reported as an error-qualified result.
func (e *Engine) Score(input Input) *Result {
	result, err := e.score(input)
	if err != nil {
		e.logger.WithError(err).Error("Lead scoring failed")
		return &Result{
			Qualification: QualificationError,
			Error:         err.Error(),
			Timestamp:     time.Now(),
		}
	}
	return result
}

func (e *Engine) score(input Input) (*Result, error) {
	if input.Property == nil {
		return nil, fmt.Errorf("no property data")
	}

	billScore := clamp(e.billScore(input.Property, input.Utility))
	roofScore := clamp(e.roofScore(input.Roof, input.RoofAnalysis))
	propertyScore := clamp(e.propertyScore(input.Property))
	meteringScore := clamp(e.netMeteringScore(input.Utility))
	homeownerScore := clamp(e.homeownerScore(input.Owner))

	components := ComponentScores{
		BillSize:        int(math.Round(billScore)),
		RoofSuitability: int(math.Round(roofScore)),
		PropertyValue:   int(math.Round(propertyScore)),
		NetMetering:     int(math.Round(meteringScore)),
		Homeowner:       int(math.Round(homeownerScore)),
	}

	result := &Result{
		PropertyID:      input.Property.PropertyID,
		ComponentScores: components,
		Weights:         e.config.Weights,
		Timestamp:       time.Now(),
	}

	if reason := e.disqualify(billScore, roofScore); reason != "" {
		result.OverallScore = 0
		result.Qualification = QualificationUnsuitable
		result.Disqualified = true
		result.DisqualificationReason = reason

		e.logger.WithFields(map[string]interface{}{
			"property_id": input.Property.PropertyID,
			"reason":      reason,
		}).Debug("Lead disqualified")

		return result, nil
	}

	w := e.config.Weights
	overall := billScore*w.BillSize +
		roofScore*w.RoofSuitability +
		propertyScore*w.PropertyValue +
		meteringScore*w.NetMetering +
		homeownerScore*w.Homeowner

	result.OverallScore = int(math.Round(overall))
	result.Qualification = e.qualify(overall)

	e.logger.WithFields(map[string]interface{}{
		"property_id":   input.Property.PropertyID,
		"overall_score": result.OverallScore,
		"qualification": result.Qualification,
	}).Debug("Lead scored")

	return result, nil
}

// disqualify checks the hard floors. A zero bill score means the monthly
// bill is below the minimum (or no bill could be estimated at all).
func (e *Engine) disqualify(billScore, roofScore float64) string {
	if billScore == 0 {
		return fmt.Sprintf("Monthly bill below minimum threshold of $%.0f", e.config.MinRequirements.MonthlyBill)
	}
	if roofScore < e.config.MinRequirements.RoofScore {
		return "Roof unsuitable for solar installation"
	}
	return ""
}

func (e *Engine) qualify(score float64) string {
	t := e.config.Thresholds
	switch {
	case score >= t.Excellent:
		return QualificationExcellent
	case score >= t.Good:
		return QualificationGood
	case score >= t.Average:
		return QualificationAverage
	case score >= t.Poor:
		return QualificationPoor
	default:
		return QualificationUnsuitable
	}
}

// billScore ramps from 50 at the minimum qualifying bill to 80 at $200
// and 100 at $300+. Below the minimum the score is 0, which disqualifies
// the lead. When no estimate is attached, square footage at $0.10/sq ft
// serves as a rough proxy.
func (e *Engine) billScore(property *contracts.Property, utility *contracts.Utility) float64 {
	var monthlyBill float64
	switch {
	case utility != nil && utility.EstimatedMonthlyBill != nil:
		monthlyBill = *utility.EstimatedMonthlyBill
	case property.SquareFootage != nil:
		monthlyBill = *property.SquareFootage * 0.10
	default:
		return 0
	}

	minBill := e.config.MinRequirements.MonthlyBill
	switch {
	case monthlyBill < minBill:
		return 0
	case monthlyBill >= 300:
		return 100
	case monthlyBill >= 200:
		return 80 + (monthlyBill-200)*20/100
	default:
		return 50 + (monthlyBill-minBill)*30/(200-minBill)
	}
}

// Simplified roof component weights used only when no full analysis is
// attached to the lead.
const (
	roofOrientationWeight = 0.4
	roofAreaWeight        = 0.3
	roofShadingWeight     = 0.2
	roofConditionWeight   = 0.1
)

var roofOrientationScores = map[string]float64{
	contracts.OrientationS:  100,
	contracts.OrientationSE: 90,
	contracts.OrientationSW: 90,
	contracts.OrientationE:  70,
	contracts.OrientationW:  70,
	contracts.OrientationNE: 40,
	contracts.OrientationNW: 40,
	contracts.OrientationN:  20,
}

var roofConditionScores = map[string]float64{
	"excellent": 100,
	"good":      80,
	"fair":      60,
	"poor":      30,
	"very poor": 10,
}

// roofScore reuses the full analyzer result when available. Otherwise a
// simplified weighted score is built from whichever roof fields are
// present; a lead with no roof data at all gets a neutral 50.
func (e *Engine) roofScore(roofData *contracts.Roof, analysis *roof.Analysis) float64 {
	if analysis != nil {
		return float64(analysis.OverallScore)
	}
	if roofData == nil {
		return 50
	}

	score := 0.0

	if roofData.PrimaryOrientation != nil {
		orientation := 50.0
		if s, ok := roofOrientationScores[*roofData.PrimaryOrientation]; ok {
			orientation = s
		}
		score += orientation * roofOrientationWeight
	}

	if roofData.UsableRoofArea != nil {
		area := *roofData.UsableRoofArea
		var areaScore float64
		switch {
		case area < 400:
			areaScore = 0
		case area >= 1200:
			areaScore = 100
		default:
			areaScore = 50 + (area-400)*50/800
		}
		score += areaScore * roofAreaWeight
	}

	if roofData.ShadingPercentage != nil {
		shading := *roofData.ShadingPercentage
		var shadingScore float64
		if shading > 40 {
			shadingScore = 0
		} else {
			shadingScore = 100 - (shading/40)*100
		}
		score += shadingScore * roofShadingWeight
	}

	if roofData.RoofCondition != nil {
		condition := 50.0
		if s, ok := roofConditionScores[strings.ToLower(*roofData.RoofCondition)]; ok {
			condition = s
		}
		score += condition * roofConditionWeight
	}

	return score
}

// propertyScore rewards owner-occupied single-family homes without an
// existing installation. Non-owner-occupied properties and properties
// with a solar permit on file score 0 outright.
func (e *Engine) propertyScore(property *contracts.Property) float64 {
	score := 0.0

	if property.IsOwnerOccupied != nil {
		if !*property.IsOwnerOccupied {
			return 0
		}
		score += 100 * 0.4
	}

	if property.PropertyType != nil {
		switch *property.PropertyType {
		case contracts.PropertyTypeSingleFamily:
			score += 100 * 0.3
		case contracts.PropertyTypeMultiFamily:
			score += 50 * 0.3
		}
	}

	if property.AssessedValue != nil {
		value := *property.AssessedValue
		var valueScore float64
		switch {
		case value >= 500000:
			valueScore = 100
		case value >= 300000:
			valueScore = 80
		case value >= 200000:
			valueScore = 60
		case value >= 100000:
			valueScore = 40
		default:
			valueScore = 20
		}
		score += valueScore * 0.2
	}

	if property.HasSolarPermit != nil {
		if *property.HasSolarPermit {
			return 0
		}
		score += 100 * 0.1
	}

	return score
}

// netMeteringScore rewards net metering availability and higher retail
// rates, both of which improve solar economics. A lead with no utility
// data gets a neutral 50.
func (e *Engine) netMeteringScore(utility *contracts.Utility) float64 {
	if utility == nil {
		return 50
	}

	score := 0.0

	if utility.HasNetMetering != nil {
		if *utility.HasNetMetering {
			score += 100 * 0.6
		} else {
			score += 30 * 0.6
		}
	}

	if utility.ResidentialRate != nil {
		rate := *utility.ResidentialRate
		var rateScore float64
		switch {
		case rate >= 0.14:
			rateScore = 100
		case rate >= 0.12:
			rateScore = 80
		case rate >= 0.10:
			rateScore = 60
		case rate >= 0.08:
			rateScore = 40
		default:
			rateScore = 20
		}
		score += rateScore * 0.4
	}

	return score
}

// homeownerScore rewards contactability and length of ownership. Leads
// on the do-not-call registry lose the contact-permission portion. A
// lead with no owner data gets a neutral 50.
func (e *Engine) homeownerScore(owner *contracts.Owner) float64 {
	if owner == nil {
		return 50
	}

	hasPhone := owner.Phone != nil && *owner.Phone != ""
	hasEmail := owner.Email != nil && *owner.Email != ""

	var contactScore float64
	switch {
	case hasPhone && hasEmail:
		contactScore = 100
	case hasPhone:
		contactScore = 70
	case hasEmail:
		contactScore = 60
	}

	score := contactScore * 0.4

	if owner.DoNotCall != nil && !*owner.DoNotCall {
		score += 100 * 0.3
	}

	if owner.OwnershipYears != nil {
		years := *owner.OwnershipYears
		var tenureScore float64
		switch {
		case years >= 5:
			tenureScore = 100
		case years >= 3:
			tenureScore = 80
		case years >= 1:
			tenureScore = 60
		default:
			tenureScore = 40
		}
		score += tenureScore * 0.3
	}

	return score
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

package billing

import (
	"time"

	"github.com/tverano/solarscout/internal/contracts"
)

// FactorAnalysis reports how sensitive the estimated bill is to each
// input: home size (±20%), home age (±20 years), utility rate (±10%),
// and the July/January seasonal swing. Sections whose input is missing
// from the record are nil.
type FactorAnalysis struct {
	BaseBill float64         `json:"base_bill"`
	Size     *SizeImpact     `json:"size,omitempty"`
	Age      *AgeImpact      `json:"age,omitempty"`
	Rate     *RateImpact     `json:"rate,omitempty"`
	Seasonal *SeasonalImpact `json:"seasonal"`
}

// SizeImpact compares bills at 80% and 120% of the current square footage.
type SizeImpact struct {
	Current       float64 `json:"current"`
	Smaller       float64 `json:"smaller"`
	SmallerBill   float64 `json:"smaller_bill"`
	SmallerSaving float64 `json:"smaller_savings"`
	Larger        float64 `json:"larger"`
	LargerBill    float64 `json:"larger_bill"`
	LargerCost    float64 `json:"larger_cost"`
}

// AgeImpact compares bills for the home built 20 years later and 20 years
// earlier, bounded to [1900, currentYear-5].
type AgeImpact struct {
	Current     int     `json:"current"`
	Newer       int     `json:"newer"`
	NewerBill   float64 `json:"newer_bill"`
	NewerSaving float64 `json:"newer_savings"`
	Older       int     `json:"older"`
	OlderBill   float64 `json:"older_bill"`
	OlderCost   float64 `json:"older_cost"`
}

// RateImpact compares bills at 90% and 110% of the current rate.
type RateImpact struct {
	Current     float64 `json:"current"`
	Lower       float64 `json:"lower"`
	LowerBill   float64 `json:"lower_bill"`
	LowerSaving float64 `json:"lower_savings"`
	Higher      float64 `json:"higher"`
	HigherBill  float64 `json:"higher_bill"`
	HigherCost  float64 `json:"higher_cost"`
}

// SeasonalImpact compares the July peak and January bills to the annual
// average.
type SeasonalImpact struct {
	CurrentMonth     time.Month `json:"current_month"`
	SummerBill       float64    `json:"summer_bill"`
	SummerDifference float64    `json:"summer_difference"`
	WinterBill       float64    `json:"winter_bill"`
	WinterDifference float64    `json:"winter_difference"`
}

// AnalyzeBillFactors perturbs each input and reports the bill deltas
// against the unperturbed baseline. Failures are logged and reported as
// an empty analysis.
func (e *Estimator) AnalyzeBillFactors(property *contracts.Property, utility *contracts.Utility) *FactorAnalysis {
	analysis, err := e.billFactors(property, utility)
	if err != nil {
		e.logger.WithError(err).Error("Bill factor analysis failed")
		return &FactorAnalysis{}
	}
	return analysis
}

func (e *Estimator) billFactors(property *contracts.Property, utility *contracts.Utility) (*FactorAnalysis, error) {
	baseBill, err := e.MonthlyBill(property, utility, MonthAnnual)
	if err != nil {
		return nil, err
	}

	analysis := &FactorAnalysis{BaseBill: baseBill}

	if property.SquareFootage != nil {
		sqft := *property.SquareFootage

		smaller := *property
		smaller.SquareFootage = contracts.Float64(sqft * 0.8)
		smallerBill, err := e.MonthlyBill(&smaller, utility, MonthAnnual)
		if err != nil {
			return nil, err
		}

		larger := *property
		larger.SquareFootage = contracts.Float64(sqft * 1.2)
		largerBill, err := e.MonthlyBill(&larger, utility, MonthAnnual)
		if err != nil {
			return nil, err
		}

		analysis.Size = &SizeImpact{
			Current:       sqft,
			Smaller:       sqft * 0.8,
			SmallerBill:   smallerBill,
			SmallerSaving: baseBill - smallerBill,
			Larger:        sqft * 1.2,
			LargerBill:    largerBill,
			LargerCost:    largerBill - baseBill,
		}
	}

	if property.YearBuilt != nil {
		year := *property.YearBuilt
		currentYear := e.now().Year()

		newerYear := year + 20
		if newerYear > currentYear-5 {
			newerYear = currentYear - 5
		}
		newer := *property
		newer.YearBuilt = contracts.Int(newerYear)
		newerBill, err := e.MonthlyBill(&newer, utility, MonthAnnual)
		if err != nil {
			return nil, err
		}

		olderYear := year - 20
		if olderYear < 1900 {
			olderYear = 1900
		}
		older := *property
		older.YearBuilt = contracts.Int(olderYear)
		olderBill, err := e.MonthlyBill(&older, utility, MonthAnnual)
		if err != nil {
			return nil, err
		}

		analysis.Age = &AgeImpact{
			Current:     year,
			Newer:       newerYear,
			NewerBill:   newerBill,
			NewerSaving: baseBill - newerBill,
			Older:       olderYear,
			OlderBill:   olderBill,
			OlderCost:   olderBill - baseBill,
		}
	}

	if utility != nil && utility.ResidentialRate != nil {
		currentRate := *utility.ResidentialRate

		lower := *utility
		lower.ResidentialRate = contracts.Float64(currentRate * 0.9)
		lowerBill, err := e.MonthlyBill(property, &lower, MonthAnnual)
		if err != nil {
			return nil, err
		}

		higher := *utility
		higher.ResidentialRate = contracts.Float64(currentRate * 1.1)
		higherBill, err := e.MonthlyBill(property, &higher, MonthAnnual)
		if err != nil {
			return nil, err
		}

		analysis.Rate = &RateImpact{
			Current:     currentRate,
			Lower:       currentRate * 0.9,
			LowerBill:   lowerBill,
			LowerSaving: baseBill - lowerBill,
			Higher:      currentRate * 1.1,
			HigherBill:  higherBill,
			HigherCost:  higherBill - baseBill,
		}
	}

	summerBill, err := e.MonthlyBill(property, utility, 7)
	if err != nil {
		return nil, err
	}
	winterBill, err := e.MonthlyBill(property, utility, 1)
	if err != nil {
		return nil, err
	}

	analysis.Seasonal = &SeasonalImpact{
		CurrentMonth:     e.now().Month(),
		SummerBill:       summerBill,
		SummerDifference: summerBill - baseBill,
		WinterBill:       winterBill,
		WinterDifference: winterBill - baseBill,
	}

	return analysis, nil
}

package billing

import (
	"fmt"
	"math"
	"time"

	"github.com/tverano/solarscout/internal/contracts"
	"github.com/tverano/solarscout/pkg/logger"
)

// MonthAnnual requests the annual-average estimate instead of a specific
// calendar month.
const MonthAnnual = 0

// Estimator estimates residential electric bills from property
// characteristics, location, and utility rates. All methods are pure with
// respect to the estimator; the only ambient input is the clock, which is
// injectable for tests.
type Estimator struct {
	config Config
	logger *logger.Logger
	now    func() time.Time
}

// NewEstimator creates an estimator with the given config.
func NewEstimator(config Config, log *logger.Logger) *Estimator {
	return &Estimator{
		config: config,
		logger: log,
		now:    time.Now,
	}
}

// WithClock overrides the clock. Tests use this to pin the current year.
func (e *Estimator) WithClock(now func() time.Time) *Estimator {
	e.now = now
	return e
}

// EstimateMonthlyBill estimates the monthly electric bill in dollars.
// month is 1-12 for a specific month or MonthAnnual for the annual
// average. Estimation failures are logged and reported as 0; callers that
// need to distinguish a failure from a true zero use MonthlyBill.
func (e *Estimator) EstimateMonthlyBill(property *contracts.Property, utility *contracts.Utility, month int) float64 {
	bill, err := e.MonthlyBill(property, utility, month)
	if err != nil {
		e.logger.WithError(err).Error("Bill estimation failed")
		return 0
	}
	return bill
}

// MonthlyBill is the error-returning form of EstimateMonthlyBill.
func (e *Estimator) MonthlyBill(property *contracts.Property, utility *contracts.Utility, month int) (float64, error) {
	if property == nil {
		return 0, fmt.Errorf("no property data")
	}

	sqft := 0.0
	if property.SquareFootage != nil {
		sqft = *property.SquareFootage
	}
	if sqft < 0 {
		return 0, fmt.Errorf("square footage must be non-negative, got %.1f", sqft)
	}

	rate := e.config.DefaultRate
	if utility != nil && utility.ResidentialRate != nil {
		rate = *utility.ResidentialRate
	}

	baseUsage := e.baseUsage(sqft)

	ageFactor, err := e.ageFactor(property.YearBuilt)
	if err != nil {
		return 0, err
	}

	bedroomFactor := bedroomFactor(property.Bedrooms)
	climateFactor := e.climateFactor(property.ZipCode)

	monthFactor := 1.0
	if month >= 1 && month <= 12 {
		if f, ok := e.config.MonthlyFactors[month]; ok {
			monthFactor = f
		}
	}

	usage := baseUsage * ageFactor * bedroomFactor * climateFactor * monthFactor
	bill := usage * rate

	e.logger.WithFields(map[string]interface{}{
		"usage_kwh": usage,
		"rate":      rate,
		"bill":      bill,
	}).Debug("Estimated monthly bill")

	return bill, nil
}

// baseUsage picks the size tier's base consumption and refines it by
// linear interpolation within the tier so estimates do not jump at tier
// boundaries. Zero square footage falls back to the small-tier base.
func (e *Estimator) baseUsage(sqft float64) float64 {
	bc := e.config.BaseConsumption

	var base float64
	switch {
	case sqft < 1200:
		base = bc.Small
	case sqft < 2500:
		base = bc.Medium
	case sqft < 3500:
		base = bc.Large
	default:
		base = bc.VeryLarge
	}

	if sqft <= 0 {
		return base
	}

	var minSqft, maxSqft, minUsage, maxUsage float64
	switch {
	case sqft < 1200:
		minSqft, maxSqft = 800, 1200
		minUsage, maxUsage = bc.Small*0.8, bc.Small
	case sqft < 2500:
		minSqft, maxSqft = 1200, 2500
		minUsage, maxUsage = bc.Medium*0.8, bc.Medium*1.2
	case sqft < 3500:
		minSqft, maxSqft = 2500, 3500
		minUsage, maxUsage = bc.Large*0.8, bc.Large*1.2
	default:
		minSqft, maxSqft = 3500, 5000
		minUsage, maxUsage = bc.VeryLarge*0.8, bc.VeryLarge*1.3
	}

	factor := (sqft - minSqft) / (maxSqft - minSqft)
	return minUsage + factor*(maxUsage-minUsage)
}

// ageFactor reflects that newer homes are typically more efficient.
// Undated homes get the neutral factor.
func (e *Estimator) ageFactor(yearBuilt *int) (float64, error) {
	if yearBuilt == nil || *yearBuilt <= 0 {
		return 1.0, nil
	}

	currentYear := e.now().Year()
	if *yearBuilt < 1800 || *yearBuilt > currentYear+1 {
		return 0, fmt.Errorf("year built %d outside plausible range", *yearBuilt)
	}

	age := currentYear - *yearBuilt
	switch {
	case age <= 5:
		return 0.85, nil
	case age <= 15:
		return 0.9, nil
	case age <= 30:
		return 1.0, nil
	case age <= 50:
		return 1.1, nil
	default:
		return 1.2, nil
	}
}

// bedroomFactor is an occupancy proxy. Missing bedroom counts assume a
// three-bedroom home.
func bedroomFactor(bedrooms *int) float64 {
	n := 3
	if bedrooms != nil {
		n = *bedrooms
	}

	switch {
	case n <= 1:
		return 0.7
	case n == 2:
		return 0.85
	case n == 3:
		return 1.0
	case n == 4:
		return 1.15
	default:
		return 1.25
	}
}

// climateFactor matches the ZIP's 3-digit prefix against the configured
// climate zones. Zones are checked in declared order and the first match
// wins; the default zone list is non-overlapping so order never matters
// in practice.
func (e *Estimator) climateFactor(zipCode string) float64 {
	if zone := e.matchZone(zipCode); zone != nil {
		return zone.BaseFactor
	}
	return 1.0
}

func (e *Estimator) matchZone(zipCode string) *ClimateZone {
	if zipCode == "" {
		return nil
	}
	for i := range e.config.ClimateZones {
		zone := &e.config.ClimateZones[i]
		for _, prefix := range zone.ZipPrefixes {
			if len(zipCode) >= len(prefix) && zipCode[:len(prefix)] == prefix {
				return zone
			}
		}
	}
	return nil
}

// MonthlyBillEntry is one month of an annual profile.
type MonthlyBillEntry struct {
	Month time.Month `json:"month"`
	Bill  float64    `json:"bill"`
}

// AnnualProfile holds per-month bills plus totals.
type AnnualProfile struct {
	Monthly        []MonthlyBillEntry `json:"monthly"`
	AnnualTotal    float64            `json:"annual_total"`
	MonthlyAverage float64            `json:"monthly_average"`
}

// EstimateAnnualBillProfile estimates the bill for each month of the
// year. Failures are logged and reported as an empty profile.
func (e *Estimator) EstimateAnnualBillProfile(property *contracts.Property, utility *contracts.Utility) *AnnualProfile {
	profile, err := e.annualProfile(property, utility)
	if err != nil {
		e.logger.WithError(err).Error("Annual bill profile estimation failed")
		return &AnnualProfile{}
	}
	return profile
}

func (e *Estimator) annualProfile(property *contracts.Property, utility *contracts.Utility) (*AnnualProfile, error) {
	profile := &AnnualProfile{
		Monthly: make([]MonthlyBillEntry, 0, 12),
	}

	annualTotal := 0.0
	for month := 1; month <= 12; month++ {
		bill, err := e.MonthlyBill(property, utility, month)
		if err != nil {
			return nil, err
		}
		profile.Monthly = append(profile.Monthly, MonthlyBillEntry{
			Month: time.Month(month),
			Bill:  roundCents(bill),
		})
		annualTotal += bill
	}

	profile.AnnualTotal = roundCents(annualTotal)
	profile.MonthlyAverage = roundCents(annualTotal / 12)
	return profile, nil
}

// ZipEstimate is the result of a ZIP-only estimate with a synthesized
// regional utility rate.
type ZipEstimate struct {
	Bill     float64 `json:"bill"`
	Region   string  `json:"region"`
	Rate     float64 `json:"rate"`
	Provider string  `json:"utility_provider"`
}

// EstimateBillByZipCode estimates a bill from the ZIP code and basic
// property characteristics, synthesizing the utility rate from a
// per-region table. yearBuilt and bedrooms fall back to 2000 and 3.
func (e *Estimator) EstimateBillByZipCode(zipCode string, squareFootage float64, yearBuilt, bedrooms int) *ZipEstimate {
	if yearBuilt == 0 {
		yearBuilt = 2000
	}
	if bedrooms == 0 {
		bedrooms = 3
	}

	region := e.config.DefaultRegion
	if zone := e.matchZone(zipCode); zone != nil {
		region = zone.Name
	}

	rate, ok := e.config.RegionRates[region]
	if !ok {
		rate = e.config.DefaultRate
	}

	property := &contracts.Property{
		ZipCode:       zipCode,
		SquareFootage: contracts.Float64(squareFootage),
		YearBuilt:     contracts.Int(yearBuilt),
		Bedrooms:      contracts.Int(bedrooms),
	}
	utility := &contracts.Utility{
		ResidentialRate: contracts.Float64(rate),
	}

	return &ZipEstimate{
		Bill:     e.EstimateMonthlyBill(property, utility, MonthAnnual),
		Region:   region,
		Rate:     rate,
		Provider: titleCase(region) + " Texas Utility",
	}
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	b := []byte(s)
	if b[0] >= 'a' && b[0] <= 'z' {
		b[0] -= 'a' - 'A'
	}
	return string(b)
}

func roundCents(x float64) float64 {
	return math.Round(x*100) / 100
}

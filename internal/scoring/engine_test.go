package scoring

import (
	"math"
	"strings"
	"testing"

	"github.com/tverano/solarscout/internal/contracts"
	"github.com/tverano/solarscout/internal/roof"
	"github.com/tverano/solarscout/pkg/logger"
)

func newTestEngine() *Engine {
	return NewEngine(DefaultConfig(), logger.NewNop())
}

func fullInput() Input {
	return Input{
		Property: &contracts.Property{
			PropertyID:      "PROP-000001",
			PropertyType:    contracts.String(contracts.PropertyTypeSingleFamily),
			AssessedValue:   contracts.Float64(350000),
			IsOwnerOccupied: contracts.Bool(true),
			HasSolarPermit:  contracts.Bool(false),
		},
		Utility: &contracts.Utility{
			EstimatedMonthlyBill: contracts.Float64(250),
			HasNetMetering:       contracts.Bool(true),
			ResidentialRate:      contracts.Float64(0.13),
		},
		Owner: &contracts.Owner{
			Phone:          contracts.String("512-555-0101"),
			Email:          contracts.String("owner@example.com"),
			DoNotCall:      contracts.Bool(false),
			OwnershipYears: contracts.Float64(6),
		},
		RoofAnalysis: &roof.Analysis{OverallScore: 91},
	}
}

func TestScore_FullLead(t *testing.T) {
	e := newTestEngine()

	result := e.Score(fullInput())

	if result.Disqualified {
		t.Fatalf("unexpected disqualification: %s", result.DisqualificationReason)
	}

	// bill 90, roof 91, property 96, metering 92, homeowner 100
	cs := result.ComponentScores
	if cs.BillSize != 90 || cs.RoofSuitability != 91 || cs.PropertyValue != 96 ||
		cs.NetMetering != 92 || cs.Homeowner != 100 {
		t.Errorf("unexpected component scores: %+v", cs)
	}

	// 90*.30 + 91*.25 + 96*.15 + 92*.20 + 100*.10 = 92.55
	if result.OverallScore != 93 {
		t.Errorf("expected overall 93, got %d", result.OverallScore)
	}
	if result.Qualification != QualificationExcellent {
		t.Errorf("expected excellent, got %s", result.Qualification)
	}
	if result.PropertyID != "PROP-000001" {
		t.Errorf("property id not carried through: %s", result.PropertyID)
	}
}

func TestScore_NilProperty(t *testing.T) {
	e := newTestEngine()

	result := e.Score(Input{})
	if result.Qualification != QualificationError {
		t.Errorf("expected error qualification, got %s", result.Qualification)
	}
	if result.Error == "" {
		t.Error("expected error message")
	}
}

func TestScore_DisqualifiedLowBill(t *testing.T) {
	e := newTestEngine()

	input := fullInput()
	input.Utility.EstimatedMonthlyBill = contracts.Float64(119)

	result := e.Score(input)
	if !result.Disqualified {
		t.Fatal("expected disqualification for $119 bill")
	}
	if result.OverallScore != 0 {
		t.Errorf("expected overall 0, got %d", result.OverallScore)
	}
	if result.Qualification != QualificationUnsuitable {
		t.Errorf("expected unsuitable qualification, got %s", result.Qualification)
	}
	if !strings.Contains(result.DisqualificationReason, "$120") {
		t.Errorf("reason should name the threshold: %s", result.DisqualificationReason)
	}

	// Exactly at the minimum qualifies.
	input.Utility.EstimatedMonthlyBill = contracts.Float64(120)
	result = e.Score(input)
	if result.Disqualified {
		t.Errorf("$120 bill should not disqualify: %s", result.DisqualificationReason)
	}
	if result.ComponentScores.BillSize != 50 {
		t.Errorf("expected bill score 50 at the minimum, got %d", result.ComponentScores.BillSize)
	}
}

func TestScore_DisqualifiedBadRoof(t *testing.T) {
	e := newTestEngine()

	input := fullInput()
	input.RoofAnalysis = &roof.Analysis{OverallScore: 20}

	result := e.Score(input)
	if !result.Disqualified {
		t.Fatal("expected disqualification for roof score 20")
	}
	if result.DisqualificationReason != "Roof unsuitable for solar installation" {
		t.Errorf("unexpected reason: %s", result.DisqualificationReason)
	}
	if result.Qualification != QualificationUnsuitable {
		t.Errorf("expected unsuitable qualification, got %s", result.Qualification)
	}

	// At the floor the lead survives.
	input.RoofAnalysis = &roof.Analysis{OverallScore: 30}
	result = e.Score(input)
	if result.Disqualified {
		t.Errorf("roof score 30 should not disqualify: %s", result.DisqualificationReason)
	}
}

func TestBillScore(t *testing.T) {
	e := newTestEngine()

	tests := []struct {
		bill float64
		want float64
	}{
		{119, 0},
		{120, 50},
		{160, 65},
		{200, 80},
		{250, 90},
		{300, 100},
		{500, 100},
	}
	for _, tt := range tests {
		utility := &contracts.Utility{EstimatedMonthlyBill: contracts.Float64(tt.bill)}
		got := e.billScore(&contracts.Property{}, utility)
		if math.Abs(got-tt.want) > 0.001 {
			t.Errorf("bill %.0f: got %.2f, want %.2f", tt.bill, got, tt.want)
		}
	}

	// Without an estimate, square footage is the proxy at $0.10/sq ft.
	property := &contracts.Property{SquareFootage: contracts.Float64(2000)}
	if got := e.billScore(property, nil); math.Abs(got-80) > 0.001 {
		t.Errorf("sqft proxy: got %.2f, want 80", got)
	}

	// No bill and no square footage cannot qualify.
	if got := e.billScore(&contracts.Property{}, nil); got != 0 {
		t.Errorf("no data: got %.2f, want 0", got)
	}
}

func TestRoofScore_Fallback(t *testing.T) {
	e := newTestEngine()

	// The full analysis wins when attached.
	if got := e.roofScore(nil, &roof.Analysis{OverallScore: 77}); got != 77 {
		t.Errorf("analysis passthrough: got %.1f, want 77", got)
	}

	// No roof data at all is neutral.
	if got := e.roofScore(nil, nil); got != 50 {
		t.Errorf("nil roof: got %.1f, want 50", got)
	}

	// Simplified scoring over present fields only.
	full := &contracts.Roof{
		PrimaryOrientation: contracts.String(contracts.OrientationS),
		UsableRoofArea:     contracts.Float64(800),
		ShadingPercentage:  contracts.Float64(10),
		RoofCondition:      contracts.String("good"),
	}
	// 100*.4 + 75*.3 + 75*.2 + 80*.1 = 85.5
	if got := e.roofScore(full, nil); math.Abs(got-85.5) > 0.001 {
		t.Errorf("full simplified: got %.2f, want 85.5", got)
	}

	// A partially known roof scores only its known components.
	partial := &contracts.Roof{
		PrimaryOrientation: contracts.String(contracts.OrientationS),
	}
	if got := e.roofScore(partial, nil); math.Abs(got-40) > 0.001 {
		t.Errorf("orientation only: got %.2f, want 40", got)
	}
}

func TestPropertyScore(t *testing.T) {
	e := newTestEngine()

	// Renters score zero outright.
	rented := &contracts.Property{IsOwnerOccupied: contracts.Bool(false)}
	if got := e.propertyScore(rented); got != 0 {
		t.Errorf("rented: got %.1f, want 0", got)
	}

	// An existing permit means the lead is already converting.
	permitted := &contracts.Property{
		IsOwnerOccupied: contracts.Bool(true),
		HasSolarPermit:  contracts.Bool(true),
	}
	if got := e.propertyScore(permitted); got != 0 {
		t.Errorf("permitted: got %.1f, want 0", got)
	}

	full := &contracts.Property{
		IsOwnerOccupied: contracts.Bool(true),
		PropertyType:    contracts.String(contracts.PropertyTypeSingleFamily),
		AssessedValue:   contracts.Float64(600000),
		HasSolarPermit:  contracts.Bool(false),
	}
	// 40 + 30 + 20 + 10 = 100
	if got := e.propertyScore(full); math.Abs(got-100) > 0.001 {
		t.Errorf("full: got %.2f, want 100", got)
	}

	multi := &contracts.Property{
		IsOwnerOccupied: contracts.Bool(true),
		PropertyType:    contracts.String(contracts.PropertyTypeMultiFamily),
		AssessedValue:   contracts.Float64(150000),
	}
	// 40 + 15 + 8 = 63
	if got := e.propertyScore(multi); math.Abs(got-63) > 0.001 {
		t.Errorf("multi: got %.2f, want 63", got)
	}
}

func TestNetMeteringScore(t *testing.T) {
	e := newTestEngine()

	if got := e.netMeteringScore(nil); got != 50 {
		t.Errorf("nil utility: got %.1f, want 50", got)
	}

	metered := &contracts.Utility{
		HasNetMetering:  contracts.Bool(true),
		ResidentialRate: contracts.Float64(0.15),
	}
	// 60 + 40 = 100
	if got := e.netMeteringScore(metered); math.Abs(got-100) > 0.001 {
		t.Errorf("metered high rate: got %.2f, want 100", got)
	}

	unmetered := &contracts.Utility{
		HasNetMetering:  contracts.Bool(false),
		ResidentialRate: contracts.Float64(0.09),
	}
	// 18 + 16 = 34
	if got := e.netMeteringScore(unmetered); math.Abs(got-34) > 0.001 {
		t.Errorf("unmetered low rate: got %.2f, want 34", got)
	}
}

func TestHomeownerScore(t *testing.T) {
	e := newTestEngine()

	if got := e.homeownerScore(nil); got != 50 {
		t.Errorf("nil owner: got %.1f, want 50", got)
	}

	phoneOnly := &contracts.Owner{
		Phone:          contracts.String("512-555-0101"),
		DoNotCall:      contracts.Bool(false),
		OwnershipYears: contracts.Float64(4),
	}
	// 28 + 30 + 24 = 82
	if got := e.homeownerScore(phoneOnly); math.Abs(got-82) > 0.001 {
		t.Errorf("phone only: got %.2f, want 82", got)
	}

	dnc := &contracts.Owner{
		Phone:          contracts.String("512-555-0101"),
		Email:          contracts.String("owner@example.com"),
		DoNotCall:      contracts.Bool(true),
		OwnershipYears: contracts.Float64(10),
	}
	// 40 + 0 + 30 = 70
	if got := e.homeownerScore(dnc); math.Abs(got-70) > 0.001 {
		t.Errorf("do-not-call: got %.2f, want 70", got)
	}
}

func TestQualifyBands(t *testing.T) {
	e := newTestEngine()

	tests := []struct {
		score float64
		want  string
	}{
		{95, QualificationExcellent},
		{80, QualificationExcellent},
		{79.9, QualificationGood},
		{65, QualificationGood},
		{50, QualificationAverage},
		{35, QualificationPoor},
		{34.9, QualificationUnsuitable},
	}
	for _, tt := range tests {
		if got := e.qualify(tt.score); got != tt.want {
			t.Errorf("score %.1f: got %s, want %s", tt.score, got, tt.want)
		}
	}
}

func TestScore_Deterministic(t *testing.T) {
	e := newTestEngine()

	first := e.Score(fullInput())
	second := e.Score(fullInput())

	if first.OverallScore != second.OverallScore || first.Qualification != second.Qualification {
		t.Errorf("scoring not deterministic: %d/%s vs %d/%s",
			first.OverallScore, first.Qualification, second.OverallScore, second.Qualification)
	}
}

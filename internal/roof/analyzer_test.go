package roof

import (
	"strings"
	"testing"

	"github.com/tverano/solarscout/internal/contracts"
	"github.com/tverano/solarscout/pkg/logger"
)

func newTestAnalyzer() *Analyzer {
	return NewAnalyzer(DefaultConfig(), logger.NewNop())
}

func goodRoof() *contracts.Roof {
	return &contracts.Roof{
		UsableRoofArea:    contracts.Float64(1000),
		Azimuth:           contracts.Float64(180),
		ShadingPercentage: contracts.Float64(10),
		Pitch:             contracts.Float64(25),
		RoofCondition:     contracts.String("good"),
	}
}

func TestAnalyzeSuitability_Excellent(t *testing.T) {
	a := newTestAnalyzer()

	analysis := a.AnalyzeSuitability(goodRoof())

	// orientation 100, area 90, shading 75, pitch 100, condition 80
	// weighted: 35 + 22.5 + 15 + 10 + 8 = 90.5
	if analysis.OverallScore != 91 {
		t.Errorf("expected overall score 91, got %d", analysis.OverallScore)
	}
	if analysis.Suitability != SuitabilityExcellent {
		t.Errorf("expected excellent, got %s", analysis.Suitability)
	}

	cs := analysis.ComponentScores
	if cs.Orientation != 100 || cs.Area != 90 || cs.Shading != 75 || cs.Pitch != 100 || cs.Condition != 80 {
		t.Errorf("unexpected component scores: %+v", cs)
	}
}

func TestAnalyzeSuitability_NilRoof(t *testing.T) {
	a := newTestAnalyzer()

	analysis := a.AnalyzeSuitability(nil)
	if analysis.OverallScore != 0 {
		t.Errorf("expected score 0, got %d", analysis.OverallScore)
	}
	if analysis.Message != "No roof data available" {
		t.Errorf("unexpected message: %s", analysis.Message)
	}
}

func TestAnalyzeSuitability_Disqualifiers(t *testing.T) {
	a := newTestAnalyzer()

	tests := []struct {
		name string
		roof *contracts.Roof
	}{
		{
			"area below minimum",
			&contracts.Roof{
				UsableRoofArea:    contracts.Float64(399),
				Azimuth:           contracts.Float64(180),
				ShadingPercentage: contracts.Float64(0),
			},
		},
		{
			"no area data",
			&contracts.Roof{
				Azimuth:           contracts.Float64(180),
				ShadingPercentage: contracts.Float64(0),
			},
		},
		{
			"shading above maximum",
			&contracts.Roof{
				UsableRoofArea:    contracts.Float64(1200),
				Azimuth:           contracts.Float64(180),
				ShadingPercentage: contracts.Float64(41),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			analysis := a.AnalyzeSuitability(tt.roof)
			if analysis.OverallScore != 0 {
				t.Errorf("expected score 0, got %d", analysis.OverallScore)
			}
			if analysis.Suitability != SuitabilityUnsuitable {
				t.Errorf("expected unsuitable, got %s", analysis.Suitability)
			}
		})
	}
}

func TestOrientationScore(t *testing.T) {
	a := newTestAnalyzer()

	azimuthTests := []struct {
		azimuth float64
		want    float64
	}{
		{180, 100},
		{135, 75},
		{90, 50},
		{0, 0},
		{360, 0}, // wraps to the same deviation as 0
		{270, 50},
	}
	for _, tt := range azimuthTests {
		roof := &contracts.Roof{Azimuth: contracts.Float64(tt.azimuth)}
		if got := a.orientationScore(roof); got != tt.want {
			t.Errorf("azimuth %.0f: got %.1f, want %.1f", tt.azimuth, got, tt.want)
		}
	}

	cardinalTests := []struct {
		orientation string
		want        float64
	}{
		{contracts.OrientationS, 100},
		{contracts.OrientationSE, 90},
		{contracts.OrientationE, 70},
		{contracts.OrientationNE, 40},
		{contracts.OrientationN, 20},
		{"X", 50}, // unknown direction is neutral
	}
	for _, tt := range cardinalTests {
		roof := &contracts.Roof{PrimaryOrientation: contracts.String(tt.orientation)}
		if got := a.orientationScore(roof); got != tt.want {
			t.Errorf("orientation %s: got %.1f, want %.1f", tt.orientation, got, tt.want)
		}
	}

	// No orientation data at all is neutral.
	if got := a.orientationScore(&contracts.Roof{}); got != 50 {
		t.Errorf("missing orientation: got %.1f, want 50", got)
	}
}

func TestAreaScore(t *testing.T) {
	a := newTestAnalyzer()

	tests := []struct {
		usable float64
		want   float64
	}{
		{399, 0},
		{400, 50},
		{600, 65},
		{800, 80},
		{1000, 90},
		{1200, 100},
		{2000, 100},
	}
	for _, tt := range tests {
		roof := &contracts.Roof{UsableRoofArea: contracts.Float64(tt.usable)}
		if got := a.areaScore(roof); got != tt.want {
			t.Errorf("usable %.0f: got %.1f, want %.1f", tt.usable, got, tt.want)
		}
	}

	// Total-only records assume 60% usable.
	totalOnly := &contracts.Roof{TotalRoofArea: contracts.Float64(1000)}
	if got := a.areaScore(totalOnly); got != 65 {
		t.Errorf("total-only 1000: got %.1f, want 65", got)
	}
}

func TestShadingScore(t *testing.T) {
	a := newTestAnalyzer()

	tests := []struct {
		shading float64
		want    float64
	}{
		{0, 100},
		{10, 75},
		{20, 50},
		{40, 0},
		{41, 0},
	}
	for _, tt := range tests {
		roof := &contracts.Roof{ShadingPercentage: contracts.Float64(tt.shading)}
		if got := a.shadingScore(roof); got != tt.want {
			t.Errorf("shading %.0f: got %.1f, want %.1f", tt.shading, got, tt.want)
		}
	}

	if got := a.shadingScore(&contracts.Roof{}); got != 50 {
		t.Errorf("missing shading: got %.1f, want 50", got)
	}
}

func TestPitchScore(t *testing.T) {
	a := newTestAnalyzer()

	tests := []struct {
		pitch float64
		want  float64
	}{
		{25, 100},
		{10, 50},
		{40, 50},
		{55, 0},
		{0, 100.0 - 25.0/30*100},
	}
	for _, tt := range tests {
		roof := &contracts.Roof{Pitch: contracts.Float64(tt.pitch)}
		got := a.pitchScore(roof)
		if diff := got - tt.want; diff > 0.001 || diff < -0.001 {
			t.Errorf("pitch %.0f: got %.3f, want %.3f", tt.pitch, got, tt.want)
		}
	}

	if got := a.pitchScore(&contracts.Roof{}); got != 50 {
		t.Errorf("missing pitch: got %.1f, want 50", got)
	}
}

func TestConditionScore(t *testing.T) {
	a := newTestAnalyzer()

	conditionTests := []struct {
		condition string
		want      float64
	}{
		{"excellent", 100},
		{"Good", 80}, // case-insensitive
		{"fair", 60},
		{"poor", 30},
		{"very poor", 10},
		{"unknown", 50},
	}
	for _, tt := range conditionTests {
		roof := &contracts.Roof{RoofCondition: contracts.String(tt.condition)}
		if got := a.conditionScore(roof); got != tt.want {
			t.Errorf("condition %q: got %.1f, want %.1f", tt.condition, got, tt.want)
		}
	}

	ageTests := []struct {
		age  int
		want float64
	}{
		{1, 100},
		{4, 90},
		{8, 75},
		{12, 60},
		{18, 40},
		{25, 20},
	}
	for _, tt := range ageTests {
		roof := &contracts.Roof{RoofAge: contracts.Int(tt.age)}
		if got := a.conditionScore(roof); got != tt.want {
			t.Errorf("age %d: got %.1f, want %.1f", tt.age, got, tt.want)
		}
	}

	if got := a.conditionScore(&contracts.Roof{}); got != 50 {
		t.Errorf("missing condition: got %.1f, want 50", got)
	}
}

func TestRecommendations(t *testing.T) {
	a := newTestAnalyzer()

	// A qualifying roof with known issues gets targeted hints.
	roof := &contracts.Roof{
		UsableRoofArea:     contracts.Float64(500),
		PrimaryOrientation: contracts.String(contracts.OrientationW),
		ShadingPercentage:  contracts.Float64(25),
		Pitch:              contracts.Float64(45),
		RoofCondition:      contracts.String("poor"),
	}
	analysis := a.AnalyzeSuitability(roof)

	joined := strings.Join(analysis.Recommendations, "\n")
	for _, want := range []string{"East/West", "shading", "pitch", "Roof condition is poor"} {
		if !strings.Contains(joined, want) {
			t.Errorf("recommendations missing %q:\n%s", want, joined)
		}
	}

	// Excellent roofs still get the sizing hint.
	good := a.AnalyzeSuitability(goodRoof())
	if len(good.Recommendations) == 0 {
		t.Error("expected at least the system size recommendation")
	}
}

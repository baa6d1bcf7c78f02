package scoring

import (
	"fmt"
	"math"
	"sort"
)

// Distribution summarizes the overall scores of a scored batch.
type Distribution struct {
	Count       int                `json:"count"`
	Mean        float64            `json:"mean"`
	Median      float64            `json:"median"`
	StdDev      float64            `json:"std_dev"`
	Min         float64            `json:"min"`
	Max         float64            `json:"max"`
	Percentiles map[string]float64 `json:"percentiles,omitempty"`
}

var percentileLevels = []float64{10, 25, 50, 75, 90}

// AnalyzeDistribution computes summary statistics over a batch of scores.
// The standard deviation is the population form and percentiles use
// linear interpolation between closest ranks. An empty batch yields a
// zero-count distribution.
func AnalyzeDistribution(scores []float64) *Distribution {
	if len(scores) == 0 {
		return &Distribution{}
	}

	sorted := make([]float64, len(scores))
	copy(sorted, scores)
	sort.Float64s(sorted)

	sum := 0.0
	for _, s := range sorted {
		sum += s
	}
	mean := sum / float64(len(sorted))

	variance := 0.0
	for _, s := range sorted {
		d := s - mean
		variance += d * d
	}
	variance /= float64(len(sorted))

	percentiles := make(map[string]float64, len(percentileLevels))
	for _, p := range percentileLevels {
		percentiles[fmt.Sprintf("%dth", int(p))] = percentile(sorted, p)
	}

	return &Distribution{
		Count:       len(sorted),
		Mean:        mean,
		Median:      percentile(sorted, 50),
		StdDev:      math.Sqrt(variance),
		Min:         sorted[0],
		Max:         sorted[len(sorted)-1],
		Percentiles: percentiles,
	}
}

// percentile interpolates linearly between the closest ranks of a sorted
// slice. p is in [0, 100].
func percentile(sorted []float64, p float64) float64 {
	if len(sorted) == 1 {
		return sorted[0]
	}

	rank := p / 100 * float64(len(sorted)-1)
	lower := int(math.Floor(rank))
	if lower >= len(sorted)-1 {
		return sorted[len(sorted)-1]
	}

	frac := rank - float64(lower)
	return sorted[lower] + frac*(sorted[lower+1]-sorted[lower])
}

// Package profiling summarizes the shape of a fold-change distribution. The
// profile rides along with analysis responses; nothing in the pipeline
// depends on it.
package profiling

import (
	"math"

	"github.com/montanaflynn/stats"
	gonumstat "gonum.org/v1/gonum/stat"
)

// Distribution describes the fold-change distribution of one dataset.
type Distribution struct {
	Count    int     `json:"count"`
	Mean     float64 `json:"mean"`
	StdDev   float64 `json:"std_dev"`
	Min      float64 `json:"min"`
	Max      float64 `json:"max"`
	Median   float64 `json:"median"`
	Q25      float64 `json:"q25"`
	Q75      float64 `json:"q75"`
	Skewness float64 `json:"skewness"`
}

// Analyze profiles the defined (non-NaN) values of a fold-change series.
// It returns a zero-count profile rather than an error when nothing is
// defined, since an all-undefined dataset is a data-quality outcome, not a
// failure.
func Analyze(values []float64) Distribution {
	defined := make([]float64, 0, len(values))
	for _, v := range values {
		if !math.IsNaN(v) {
			defined = append(defined, v)
		}
	}
	if len(defined) == 0 {
		return Distribution{}
	}

	mean, _ := stats.Mean(defined)
	stdDev, _ := stats.StandardDeviation(defined)
	min, _ := stats.Min(defined)
	max, _ := stats.Max(defined)
	median, _ := stats.Median(defined)
	q25, _ := stats.Percentile(defined, 25)
	q75, _ := stats.Percentile(defined, 75)

	// stat.Skew is NaN for one sample and ±Inf for two; JSON cannot encode
	// either, so the profile reports zero skewness below three samples.
	var skew float64
	if len(defined) >= 3 {
		skew = gonumstat.Skew(defined, nil)
	}

	return Distribution{
		Count:    len(defined),
		Mean:     mean,
		StdDev:   stdDev,
		Min:      min,
		Max:      max,
		Median:   median,
		Q25:      q25,
		Q75:      q75,
		Skewness: skew,
	}
}

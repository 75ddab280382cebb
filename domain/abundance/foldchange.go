package abundance

import (
	"math"
	"strconv"

	"github.com/montanaflynn/stats"

	"lipidflow/domain/table"
)

// ComputeOptions controls the fold-change computation for one dataset.
type ComputeOptions struct {
	IDColumn   string
	GroupACols []string
	GroupBCols []string

	// WithClass derives Record.Class from the identifier (lipid datasets).
	WithClass bool
}

// Compute coerces the group columns of a cleaned table to numbers and builds
// one Record per row. Unparseable or missing cells become NaN and are ignored
// by the group means; a group with zero present values yields an undefined
// mean and an undefined fold change.
func Compute(t *table.Table, opts ComputeOptions) []Record {
	records := make([]Record, 0, len(t.Rows))
	for _, row := range t.Rows {
		rec := Record{
			ID:     row[opts.IDColumn],
			GroupA: coerceGroup(row, opts.GroupACols),
			GroupB: coerceGroup(row, opts.GroupBCols),
		}
		rec.MeanA = presentMean(rec.GroupA)
		rec.MeanB = presentMean(rec.GroupB)
		rec.Log2FC = log2FoldChange(rec.MeanA, rec.MeanB)
		rec.Direction = classifyDirection(rec.Log2FC)
		if opts.WithClass {
			rec.Class = ClassOf(rec.ID)
		}
		records = append(records, rec)
	}
	return records
}

// coerceGroup parses the named cells of a row, marking failures as NaN.
func coerceGroup(row table.Row, cols []string) []float64 {
	values := make([]float64, len(cols))
	for i, col := range cols {
		v, err := strconv.ParseFloat(row[col], 64)
		if err != nil {
			values[i] = math.NaN()
			continue
		}
		values[i] = v
	}
	return values
}

// presentMean averages the non-NaN values; NaN when none are present.
func presentMean(values []float64) float64 {
	present := make([]float64, 0, len(values))
	for _, v := range values {
		if !math.IsNaN(v) {
			present = append(present, v)
		}
	}
	mean, err := stats.Mean(present)
	if err != nil {
		return math.NaN()
	}
	return mean
}

// log2FoldChange computes log2((meanB+1)/(meanA+1)). The +1 pseudocount keeps
// the log argument positive for zero means and is part of the numeric
// contract; changing it changes every downstream result.
func log2FoldChange(meanA, meanB float64) float64 {
	if math.IsNaN(meanA) || math.IsNaN(meanB) {
		return math.NaN()
	}
	return math.Log2((meanB + 1) / (meanA + 1))
}

// classifyDirection is a strict-positive split: zero and negative fold
// changes are both "down".
func classifyDirection(log2fc float64) Direction {
	if log2fc > 0 {
		return DirectionUp
	}
	return DirectionDown
}

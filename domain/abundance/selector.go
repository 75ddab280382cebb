package abundance

import (
	"math"
	"sort"
)

// FilterSignificant keeps records whose |log2fc| strictly exceeds threshold.
// Records with an undefined fold change never pass. Output preserves input
// order.
func FilterSignificant(records []Record, threshold float64) []Record {
	var kept []Record
	for _, r := range records {
		if !r.HasFoldChange() {
			continue
		}
		if math.Abs(r.Log2FC) > threshold {
			kept = append(kept, r)
		}
	}
	return kept
}

// SelectTopSplit picks the n/2 records with the largest log2fc among the
// up-regulated and the n/2 with the most negative log2fc among the
// down-regulated, in that order. Odd n loses the remainder (n/2 per half).
// Ranking is stable, so boundary ties resolve to the first-seen record. A
// direction with fewer than n/2 qualifying records contributes all of them.
func SelectTopSplit(records []Record, n int) []Record {
	half := n / 2

	var up, down []Record
	for _, r := range records {
		if r.Direction == DirectionUp {
			up = append(up, r)
		} else {
			down = append(down, r)
		}
	}

	sort.SliceStable(up, func(i, j int) bool { return up[i].Log2FC > up[j].Log2FC })
	sort.SliceStable(down, func(i, j int) bool { return down[i].Log2FC < down[j].Log2FC })

	if len(up) > half {
		up = up[:half]
	}
	if len(down) > half {
		down = down[:half]
	}
	return append(up, down...)
}

// Package abundance computes per-entity fold changes between two biological
// conditions and selects the significant and top-ranked entities.
package abundance

import (
	"math"
	"strings"
)

// Direction classifies an entity's change between conditions.
type Direction string

const (
	DirectionUp   Direction = "up"
	DirectionDown Direction = "down"
)

// Flow labels for the direction tier. Positive fold change means the
// white condition (group B, the numerator) is higher.
const (
	LabelUpregulatedWhite   = "Upregulated_White"
	LabelDownregulatedWhite = "Downregulated_White"
)

// FlowLabel returns the fixed string tag used for direction nodes.
func (d Direction) FlowLabel() string {
	if d == DirectionUp {
		return LabelUpregulatedWhite
	}
	return LabelDownregulatedWhite
}

// Record is one measured entity (gene or lipid species) with its computed
// fold-change fields. Absent observations are carried as NaN, never zero.
type Record struct {
	ID     string    `json:"id"`
	GroupA []float64 `json:"-"`
	GroupB []float64 `json:"-"`

	// MeanA and MeanB are NaN when a group has no present values.
	MeanA float64 `json:"mean_a"`
	MeanB float64 `json:"mean_b"`

	// Log2FC is log2((MeanB+1)/(MeanA+1)); NaN when either mean is undefined.
	Log2FC    float64   `json:"log2fc"`
	Direction Direction `json:"direction"`

	// Class is the leading whitespace-delimited token of ID; set for lipids.
	Class string `json:"class,omitempty"`
}

// HasFoldChange reports whether the record carries a defined fold change.
// Records without one never participate in selection.
func (r Record) HasFoldChange() bool {
	return !math.IsNaN(r.Log2FC)
}

// ClassOf extracts the lipid class token from a species identifier,
// e.g. "PC" from "PC 16:0 18:1".
func ClassOf(id string) string {
	fields := strings.Fields(id)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}

// Package table holds the cleaned tabular model the analysis pipeline consumes.
// Readers in adapters/tabular produce a Table; everything downstream treats it
// as immutable.
package table

import (
	"strings"

	"lipidflow/domain/core"
)

// Row maps column name to the raw cell text for one table row. Cells keep
// their string form here; numeric coercion happens in the fold-change stage.
type Row map[string]string

// Table is an in-memory table with named columns.
type Table struct {
	Name    string   `json:"name"`
	Headers []string `json:"headers"`
	Rows    []Row    `json:"rows"`
}

// HasColumn reports whether the table declares the given column.
func (t *Table) HasColumn(name string) bool {
	for _, h := range t.Headers {
		if h == name {
			return true
		}
	}
	return false
}

// ColumnsWithPrefix returns the headers starting with prefix, in declaration
// order. Matching is exact and case-sensitive. An empty result is not an
// error: a prefix that matches nothing degrades to undefined means downstream.
func (t *Table) ColumnsWithPrefix(prefix string) []string {
	var cols []string
	for _, h := range t.Headers {
		if strings.HasPrefix(h, prefix) {
			cols = append(cols, h)
		}
	}
	return cols
}

// Clean returns a copy of the table with known header-artifact rows and rows
// with a blank identifier removed. Artifact matching is a case-sensitive
// exact comparison against the identifier cell. Clean fails when idColumn is
// not declared by the table; it never fails on row content.
func (t *Table) Clean(idColumn string, artifacts []string) (*Table, error) {
	if !t.HasColumn(idColumn) {
		return nil, core.NewMissingColumnError(idColumn)
	}

	artifactSet := make(map[string]struct{}, len(artifacts))
	for _, a := range artifacts {
		artifactSet[a] = struct{}{}
	}

	cleaned := &Table{
		Name:    t.Name,
		Headers: t.Headers,
		Rows:    make([]Row, 0, len(t.Rows)),
	}
	for _, row := range t.Rows {
		id := row[idColumn]
		if id == "" {
			continue
		}
		if _, dropped := artifactSet[id]; dropped {
			continue
		}
		cleaned.Rows = append(cleaned.Rows, row)
	}
	return cleaned, nil
}

// Overview summarizes a cleaned table and its matched condition columns.
// These are the counts the UI shows before a run is triggered.
type Overview struct {
	Name         string   `json:"name"`
	RowCount     int      `json:"row_count"`
	ColumnCount  int      `json:"column_count"`
	GroupACols   []string `json:"group_a_columns"`
	GroupBCols   []string `json:"group_b_columns"`
	GroupACount  int      `json:"group_a_count"`
	GroupBCount  int      `json:"group_b_count"`
	GroupAPrefix string   `json:"group_a_prefix"`
	GroupBPrefix string   `json:"group_b_prefix"`
}

// Summarize builds an Overview for a cleaned table given the two condition
// column prefixes.
func (t *Table) Summarize(groupAPrefix, groupBPrefix string) Overview {
	a := t.ColumnsWithPrefix(groupAPrefix)
	b := t.ColumnsWithPrefix(groupBPrefix)
	return Overview{
		Name:         t.Name,
		RowCount:     len(t.Rows),
		ColumnCount:  len(t.Headers),
		GroupACols:   a,
		GroupBCols:   b,
		GroupACount:  len(a),
		GroupBCount:  len(b),
		GroupAPrefix: groupAPrefix,
		GroupBPrefix: groupBPrefix,
	}
}

// Package report produces the downloadable artifacts of an analysis run:
// flow and summary CSVs, a markdown/HTML report, and a standalone Sankey
// HTML page.
package report

import (
	"encoding/csv"
	"io"
	"strconv"

	"lipidflow/domain/abundance"
	"lipidflow/domain/flow"
)

// WriteFlowsCSV writes the aggregated edge list with the fixed column order
// source, target, value.
func WriteFlowsCSV(w io.Writer, edges []flow.Edge) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"source", "target", "value"}); err != nil {
		return err
	}
	for _, e := range edges {
		record := []string{e.Source, e.Target, strconv.FormatFloat(e.Value, 'g', -1, 64)}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteSummaryCSV writes the summary counts as (metric, count) rows in the
// fixed key order.
func WriteSummaryCSV(w io.Writer, s abundance.Summary) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"Metric", "Count"}); err != nil {
		return err
	}
	for _, row := range s.Rows() {
		if err := cw.Write([]string{row.Metric, strconv.Itoa(row.Count)}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

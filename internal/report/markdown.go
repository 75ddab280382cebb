package report

import (
	"fmt"
	"strings"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"

	"lipidflow/domain/run"
)

// Markdown builds the analysis summary report for one run.
func Markdown(rec *run.Record) string {
	var b strings.Builder

	b.WriteString("# Lipid-Gene Flow Analysis\n\n")
	b.WriteString("**White vs Beige Adipocyte Comparison**\n\n")
	fmt.Fprintf(&b, "Run `%s`, generated %s.\n\n", rec.ID, rec.CreatedAt)

	b.WriteString("## Inputs\n\n")
	fmt.Fprintf(&b, "- Transcriptome: %d genes, %d beige + %d white sample columns\n",
		rec.Genes.RowCount, rec.Genes.GroupACount, rec.Genes.GroupBCount)
	fmt.Fprintf(&b, "- Lipidome: %d lipid species, %d beige + %d white sample columns\n\n",
		rec.Lipids.RowCount, rec.Lipids.GroupACount, rec.Lipids.GroupBCount)

	b.WriteString("## Parameters\n\n")
	fmt.Fprintf(&b, "- Gene log2FC threshold: %g\n", rec.Params.GeneFCThreshold)
	fmt.Fprintf(&b, "- Lipid log2FC threshold: %g\n", rec.Params.LipidFCThreshold)
	fmt.Fprintf(&b, "- Top genes displayed: %d\n\n", rec.Params.TopGenesCount)

	b.WriteString("## Summary\n\n")
	b.WriteString("| Metric | Count |\n|---|---|\n")
	for _, row := range rec.Summary.Rows() {
		fmt.Fprintf(&b, "| %s | %d |\n", row.Metric, row.Count)
	}

	fmt.Fprintf(&b, "\n## Flow Graph\n\n%d nodes, %d aggregated flows.\n",
		len(rec.Graph.Nodes), len(rec.Graph.Edges))

	return b.String()
}

// RenderHTML converts the markdown report to an HTML document body.
func RenderHTML(md string) []byte {
	p := parser.NewWithExtensions(parser.CommonExtensions)
	doc := p.Parse([]byte(md))
	renderer := html.NewRenderer(html.RendererOptions{Flags: html.CommonFlags})
	return markdown.Render(doc, renderer)
}

// ReportHTML renders the full report page for one run.
func ReportHTML(rec *run.Record) []byte {
	body := RenderHTML(Markdown(rec))
	page := fmt.Sprintf(`<!DOCTYPE html>
<html>
<head><meta charset="utf-8"><title>Lipid-Gene Flow Analysis %s</title></head>
<body>
%s
</body>
</html>
`, rec.ID, body)
	return []byte(page)
}

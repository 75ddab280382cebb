package report

import (
	"bytes"
	"encoding/json"
	"html/template"

	"lipidflow/domain/run"
)

// sankeyPage renders a self-contained Sankey diagram with Plotly, mirroring
// the chart the interactive UI shows.
var sankeyPage = template.Must(template.New("sankey").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>Lipid-Gene Sankey: White vs Beige Adipocytes</title>
<script src="https://cdn.plot.ly/plotly-2.35.2.min.js"></script>
</head>
<body>
<div id="sankey" style="width:1400px;height:900px;"></div>
<script>
var data = [{
  type: "sankey",
  node: {
    pad: 15,
    thickness: 20,
    line: {color: "black", width: 0.5},
    label: {{.Labels}},
    color: {{.Colors}}
  },
  link: {
    source: {{.Sources}},
    target: {{.Targets}},
    value: {{.Values}}
  }
}];
var layout = {
  title: "Lipid-Gene Sankey: White vs Beige Adipocytes",
  font: {size: 12}
};
Plotly.newPlot("sankey", data, layout);
</script>
</body>
</html>
`))

type sankeyData struct {
	Labels  template.JS
	Colors  template.JS
	Sources template.JS
	Targets template.JS
	Values  template.JS
}

// SankeyHTML renders the run's flow graph as a standalone HTML page.
func SankeyHTML(rec *run.Record) ([]byte, error) {
	g := rec.Graph

	labels := g.Labels()
	colors := make([]string, len(g.Nodes))
	for i, n := range g.Nodes {
		colors[i] = n.RGBA
	}
	sources := make([]int, len(g.Links))
	targets := make([]int, len(g.Links))
	values := make([]float64, len(g.Links))
	for i, l := range g.Links {
		sources[i] = l.Source
		targets[i] = l.Target
		values[i] = l.Value
	}

	data := sankeyData{
		Labels:  mustJS(labels),
		Colors:  mustJS(colors),
		Sources: mustJS(sources),
		Targets: mustJS(targets),
		Values:  mustJS(values),
	}

	var buf bytes.Buffer
	if err := sankeyPage.Execute(&buf, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func mustJS(v interface{}) template.JS {
	b, err := json.Marshal(v)
	if err != nil {
		return template.JS("[]")
	}
	return template.JS(b)
}

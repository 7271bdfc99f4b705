package report

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"html/template"

	"github.com/KaramelBytes/autoviz/internal/viz"
)

var htmlTmpl = template.Must(template.New("report").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>AutoViz Report</title>
<style>
body { font-family: sans-serif; margin: 2em; background: #f0f2f6; }
h1 { color: #1a1a2e; }
h2 { font-size: 16px; margin-bottom: 5px; }
img { max-width: 100%; border: 1px solid #ddd; background: #fff; }
</style>
</head>
<body>
<h1>AutoViz Report</h1>
{{range .}}<h2>{{.Label}} ({{.Kind}})</h2>
<img src="data:image/png;base64,{{.Image}}"><br>
{{end}}</body>
</html>
`))

type htmlPlot struct {
	Label string
	Kind  string
	Image string
}

// HTML builds a single self-contained document: per artifact, in
// collection order, a heading with label and kind followed by the
// base64-inlined PNG. No external references.
func HTML(artifacts []viz.Artifact) ([]byte, error) {
	plots := make([]htmlPlot, len(artifacts))
	for i, a := range artifacts {
		plots[i] = htmlPlot{
			Label: a.Label,
			Kind:  string(a.Kind),
			Image: base64.StdEncoding.EncodeToString(a.PNG),
		}
	}
	var buf bytes.Buffer
	if err := htmlTmpl.Execute(&buf, plots); err != nil {
		return nil, fmt.Errorf("render html report: %w", err)
	}
	return buf.Bytes(), nil
}

package web

import (
	"embed"
	"html/template"
	"net/http"

	"github.com/KaramelBytes/autoviz/internal/viz"
)

//go:embed templates/*.html
var templateFS embed.FS

var (
	indexTmpl   = template.Must(template.ParseFS(templateFS, "templates/index.html"))
	resultsTmpl = template.Must(template.ParseFS(templateFS, "templates/results.html"))
)

type indexView struct {
	Error string
}

// plotView pairs an artifact with its index in the run so templates can
// build /run/{id}/plot/{index} links.
type plotView struct {
	Index int
	Kind  viz.Kind
	Label string
}

type resultsView struct {
	Run           *Run
	Distributions []plotView
	Relationships []plotView
	TimeSeries    []plotView
}

func newResultsView(run *Run) resultsView {
	v := resultsView{Run: run}
	for i, a := range run.Artifacts {
		pv := plotView{Index: i, Kind: a.Kind, Label: a.Label}
		switch a.Kind {
		case viz.KindHistogram, viz.KindBoxplot, viz.KindBarplot:
			v.Distributions = append(v.Distributions, pv)
		case viz.KindHeatmap, viz.KindPairplot:
			v.Relationships = append(v.Relationships, pv)
		case viz.KindTimeseries:
			v.TimeSeries = append(v.TimeSeries, pv)
		}
	}
	return v
}

func renderTemplate(w http.ResponseWriter, tmpl *template.Template, status int, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_ = tmpl.Execute(w, data)
}

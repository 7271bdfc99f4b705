// Package viz turns a classified dataset into the fixed battery of
// exploratory chart artifacts.
package viz

import (
	"fmt"
	"log/slog"
	"math/rand"

	"github.com/KaramelBytes/autoviz/internal/classify"
	"github.com/KaramelBytes/autoviz/internal/dataset"
	"github.com/KaramelBytes/autoviz/internal/render"
)

// Kind tags a generated chart artifact.
type Kind string

const (
	KindHistogram  Kind = "histogram"
	KindBoxplot    Kind = "boxplot"
	KindBarplot    Kind = "barplot"
	KindHeatmap    Kind = "heatmap"
	KindPairplot   Kind = "pairplot"
	KindTimeseries Kind = "timeseries"
)

// Artifact is one rendered chart: kind tag, PNG image and display
// label. Immutable after creation.
type Artifact struct {
	Kind  Kind
	PNG   []byte
	Label string
}

// SkippedPlot records a chart that failed to render and was skipped so
// the rest of the run could proceed.
type SkippedPlot struct {
	Kind  Kind
	Label string
	Err   error
}

// Result is the output of one generation run. Artifacts are in
// generation order: numeric histograms, numeric boxplots, categorical
// bar charts, heatmap, pairplot, one time series per datetime column.
type Result struct {
	Artifacts []Artifact
	Skipped   []SkippedPlot
	Total     int
}

// ProgressSink receives fractional completion updates after every
// artifact.
type ProgressSink interface {
	Progress(done, total int)
}

// ProgressFunc adapts a func to ProgressSink.
type ProgressFunc func(done, total int)

func (f ProgressFunc) Progress(done, total int) { f(done, total) }

// SampleCap bounds the rows fed into the pairwise-scatter grid.
const SampleCap = 500

// Options tunes generation.
type Options struct {
	// SampleSeed seeds the pairplot row sampler. The default (zero
	// value is replaced by 1) makes repeated runs on identical input
	// reproducible.
	SampleSeed int64
}

// PlanTotal computes the expected artifact count before generation:
// two charts per numeric column, one per categorical column, one per
// datetime column when a numeric column exists, plus heatmap and
// pairplot when there are at least two numeric columns.
func PlanTotal(c classify.Classification) int {
	total := 2*len(c.Numeric) + len(c.Categorical)
	if len(c.Numeric) > 0 {
		total += len(c.Datetime)
	}
	if len(c.Numeric) > 1 {
		total += 2
	}
	return total
}

// Generate produces the chart battery in fixed order, reporting
// progress after each artifact. A failing chart is skipped with a
// warning instead of aborting the run; len(Artifacts)+len(Skipped)
// always equals Total. sink may be nil.
func Generate(ds *dataset.Dataset, c classify.Classification, opts Options, sink ProgressSink) Result {
	res := Result{Total: PlanTotal(c)}
	done := 0
	emit := func(kind Kind, label string, png []byte, err error) {
		if err != nil {
			slog.Warn("skipping plot", "kind", string(kind), "label", label, "error", err)
			res.Skipped = append(res.Skipped, SkippedPlot{Kind: kind, Label: label, Err: err})
		} else {
			res.Artifacts = append(res.Artifacts, Artifact{Kind: kind, PNG: png, Label: label})
		}
		done++
		if sink != nil {
			sink.Progress(done, res.Total)
		}
	}

	for _, col := range c.Numeric {
		png, err := render.Histogram(col, classify.NumericValues(ds, col))
		emit(KindHistogram, col, png, err)
	}
	for _, col := range c.Numeric {
		png, err := render.Boxplot(col, classify.NumericValues(ds, col))
		emit(KindBoxplot, col, png, err)
	}
	for _, col := range c.Categorical {
		counts := classify.CategoryCounts(ds, col)
		bars := make([]render.BarCount, len(counts))
		for i, cc := range counts {
			bars[i] = render.BarCount{Label: cc.Value, Count: cc.Count}
		}
		png, err := render.BarH(col, bars)
		emit(KindBarplot, col, png, err)
	}

	if len(c.Numeric) > 1 {
		matrix := Correlations(ds, c.Numeric)
		png, err := render.Heatmap(c.Numeric, matrix)
		emit(KindHeatmap, "Correlation", png, err)

		sampled := sampleNumericRows(ds, c.Numeric, opts.seed())
		png, err = render.ScatterMatrix(c.Numeric, sampled)
		emit(KindPairplot, "Pairwise Relationships", png, err)
	}

	if len(c.Numeric) > 0 {
		first := c.Numeric[0]
		for _, dtCol := range c.Datetime {
			label := fmt.Sprintf("%s & %s", dtCol, first)
			ts, vs := classify.TimePairs(ds, dtCol, first)
			png, err := render.TimeSeries(first, dtCol, ts, vs)
			emit(KindTimeseries, label, png, err)
		}
	}
	return res
}

func (o Options) seed() int64 {
	if o.SampleSeed == 0 {
		return 1
	}
	return o.SampleSeed
}

// sampleNumericRows extracts the numeric columns row-aligned, keeping
// only rows where every numeric column parses, then samples down to
// SampleCap rows without replacement.
func sampleNumericRows(ds *dataset.Dataset, numeric []string, seed int64) [][]float64 {
	idx := make([]int, 0, len(numeric))
	for _, name := range numeric {
		for i, col := range ds.Columns {
			if col == name {
				idx = append(idx, i)
				break
			}
		}
	}
	var rows [][]float64
	for _, row := range ds.Rows {
		vals := make([]float64, len(idx))
		ok := true
		for k, i := range idx {
			v, parsed := classify.ParseNumber(row[i])
			if !parsed {
				ok = false
				break
			}
			vals[k] = v
		}
		if ok {
			rows = append(rows, vals)
		}
	}
	if len(rows) > SampleCap {
		rng := rand.New(rand.NewSource(seed))
		rng.Shuffle(len(rows), func(i, j int) { rows[i], rows[j] = rows[j], rows[i] })
		rows = rows[:SampleCap]
	}
	// transpose to per-column slices
	cols := make([][]float64, len(numeric))
	for i := range cols {
		cols[i] = make([]float64, len(rows))
		for j, row := range rows {
			cols[i][j] = row[i]
		}
	}
	return cols
}

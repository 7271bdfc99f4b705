package render

import (
	"bytes"
	"fmt"
	"sort"
	"time"

	chart "github.com/wcharczuk/go-chart/v2"
)

// Histogram renders a count histogram of a numeric column with a
// Gaussian density overlay, titled "Distribution of {column}".
func Histogram(column string, values []float64) ([]byte, error) {
	if len(values) == 0 {
		return nil, fmt.Errorf("histogram %q: no numeric values", column)
	}
	edges, counts := histogramBins(values)

	// Step outline through the bin tops; filled to the zero baseline it
	// reads as bars.
	xs := make([]float64, 0, 2*len(counts))
	ys := make([]float64, 0, 2*len(counts))
	maxCount := 0.0
	for i, c := range counts {
		xs = append(xs, edges[i], edges[i+1])
		ys = append(ys, float64(c), float64(c))
		if float64(c) > maxCount {
			maxCount = float64(c)
		}
	}
	series := []chart.Series{
		chart.ContinuousSeries{
			Name:    column,
			XValues: xs,
			YValues: ys,
			Style: chart.Style{
				StrokeColor: colorBar,
				StrokeWidth: 1.5,
				FillColor:   colorBarFill,
			},
		},
	}

	binWidth := edges[1] - edges[0]
	if dxs := sampleRange(edges[0], edges[len(edges)-1], 120); len(dxs) > 0 {
		if dens := kde(values, dxs, binWidth); dens != nil {
			for _, d := range dens {
				if d > maxCount {
					maxCount = d
				}
			}
			series = append(series, chart.ContinuousSeries{
				Name:    "density",
				XValues: dxs,
				YValues: dens,
				Style: chart.Style{
					StrokeColor: colorDensity,
					StrokeWidth: 2,
				},
			})
		}
	}

	ch := chart.Chart{
		Title:      fmt.Sprintf("Distribution of %s", column),
		Width:      histWidth,
		Height:     histHeight,
		Background: chart.Style{Padding: chart.Box{Top: 40, Left: 20, Right: 20, Bottom: 20}},
		XAxis:      chart.XAxis{Name: column},
		YAxis: chart.YAxis{
			Name:  "Count",
			Range: &chart.ContinuousRange{Min: 0, Max: maxCount * 1.1},
		},
		Series: series,
	}
	var buf bytes.Buffer
	if err := ch.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("render histogram %q: %w", column, err)
	}
	return buf.Bytes(), nil
}

// TimeSeries renders a line chart of a numeric column indexed by a
// datetime column, titled "{numeric} over Time".
func TimeSeries(numColumn, dtColumn string, times []time.Time, values []float64) ([]byte, error) {
	if len(times) == 0 || len(times) != len(values) {
		return nil, fmt.Errorf("time series %q over %q: no aligned points", numColumn, dtColumn)
	}
	type pt struct {
		t time.Time
		v float64
	}
	pts := make([]pt, len(times))
	for i := range times {
		pts[i] = pt{times[i], values[i]}
	}
	sort.Slice(pts, func(i, j int) bool { return pts[i].t.Before(pts[j].t) })

	ts := make([]time.Time, len(pts))
	vs := make([]float64, len(pts))
	for i, p := range pts {
		ts[i] = p.t
		vs[i] = p.v
	}
	if len(ts) == 1 {
		// go-chart cannot plot a zero-width x range.
		ts = append(ts, ts[0].Add(time.Minute))
		vs = append(vs, vs[0])
	}

	ch := chart.Chart{
		Title:      fmt.Sprintf("%s over Time", numColumn),
		Width:      tsWidth,
		Height:     tsHeight,
		Background: chart.Style{Padding: chart.Box{Top: 40, Left: 20, Right: 20, Bottom: 20}},
		XAxis: chart.XAxis{
			Name:           dtColumn,
			ValueFormatter: chart.TimeValueFormatterWithFormat("2006-01-02"),
		},
		YAxis: chart.YAxis{Name: numColumn, Range: rangeFor(vs)},
		Series: []chart.Series{
			chart.TimeSeries{
				Name:    numColumn,
				XValues: ts,
				YValues: vs,
				Style: chart.Style{
					StrokeColor: colorBar,
					StrokeWidth: 1.5,
				},
			},
		},
	}
	var buf bytes.Buffer
	if err := ch.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("render time series %q: %w", numColumn, err)
	}
	return buf.Bytes(), nil
}

// sampleRange returns n evenly spaced points across [lo, hi].
func sampleRange(lo, hi float64, n int) []float64 {
	if hi <= lo || n < 2 {
		return nil
	}
	out := make([]float64, n)
	step := (hi - lo) / float64(n-1)
	for i := range out {
		out[i] = lo + float64(i)*step
	}
	return out
}

package render

import (
	"bytes"
	"fmt"
	"image"
	"image/draw"
	"image/png"

	chart "github.com/wcharczuk/go-chart/v2"
)

// ScatterMatrix renders the pairwise-scatter grid over the given
// numeric columns, titled "Pairwise Relationships". cols holds
// row-aligned (already sampled) values per column. Diagonal cells show
// the column's histogram. Each cell is rendered as its own chart and
// the cells are composited into a single PNG.
func ScatterMatrix(columns []string, cols [][]float64) ([]byte, error) {
	n := len(columns)
	if n < 2 || len(cols) != n {
		return nil, fmt.Errorf("scatter matrix: need at least 2 columns, got %d", n)
	}
	for i := 1; i < n; i++ {
		if len(cols[i]) != len(cols[0]) {
			return nil, fmt.Errorf("scatter matrix: column %q not row-aligned", columns[i])
		}
	}
	if len(cols[0]) == 0 {
		return nil, fmt.Errorf("scatter matrix: no rows")
	}

	cell := scatterCell
	if n*cell > scatterMaxPx {
		cell = scatterMaxPx / n
	}

	const titleH = 50
	out := image.NewRGBA(image.Rect(0, 0, n*cell, titleH+n*cell))
	draw.Draw(out, out.Bounds(), image.White, image.Point{}, draw.Src)

	strip, err := titleStrip("Pairwise Relationships", n*cell, titleH)
	if err != nil {
		return nil, err
	}
	draw.Draw(out, image.Rect(0, 0, n*cell, titleH), strip, image.Point{}, draw.Over)

	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			cellPNG, err := renderCell(columns, cols, i, j, cell, i == n-1, j == 0)
			if err != nil {
				return nil, err
			}
			img, err := png.Decode(bytes.NewReader(cellPNG))
			if err != nil {
				return nil, fmt.Errorf("decode scatter cell: %w", err)
			}
			dst := image.Rect(j*cell, titleH+i*cell, (j+1)*cell, titleH+(i+1)*cell)
			draw.Draw(out, dst, img, image.Point{}, draw.Over)
		}
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, out); err != nil {
		return nil, fmt.Errorf("encode scatter matrix: %w", err)
	}
	return buf.Bytes(), nil
}

// renderCell draws one grid cell: row i is the y variable, column j the
// x variable; diagonal cells show a histogram of the variable.
func renderCell(columns []string, cols [][]float64, i, j, size int, bottomRow, leftCol bool) ([]byte, error) {
	xAxis := chart.XAxis{Style: chart.Style{Hidden: true}}
	yAxis := chart.YAxis{Style: chart.Style{Hidden: true}}
	if bottomRow {
		xAxis = chart.XAxis{Name: truncateLabel(columns[j], 14), Style: chart.Style{FontSize: 8}}
	}
	if leftCol {
		yAxis = chart.YAxis{Name: truncateLabel(columns[i], 14), Style: chart.Style{FontSize: 8}}
	}

	var series chart.Series
	if i == j {
		edges, counts := histogramBins(cols[i])
		xs := make([]float64, 0, 2*len(counts))
		ys := make([]float64, 0, 2*len(counts))
		for k, c := range counts {
			xs = append(xs, edges[k], edges[k+1])
			ys = append(ys, float64(c), float64(c))
		}
		series = chart.ContinuousSeries{
			XValues: xs,
			YValues: ys,
			Style:   chart.Style{StrokeColor: colorBar, StrokeWidth: 1, FillColor: colorBarFill},
		}
	} else {
		xs := padDegenerate(cols[j])
		ys := padDegenerate(cols[i])
		// Constant columns give a zero-width range go-chart rejects.
		xAxis.Range = rangeFor(xs)
		yAxis.Range = rangeFor(ys)
		series = chart.ContinuousSeries{
			XValues: xs,
			YValues: ys,
			Style: chart.Style{
				StrokeWidth: chart.Disabled,
				DotWidth:    2,
				DotColor:    colorBar,
			},
		}
	}

	ch := chart.Chart{
		Width:      size,
		Height:     size,
		Background: chart.Style{Padding: chart.Box{Top: 6, Left: 6, Right: 6, Bottom: 6}},
		XAxis:      xAxis,
		YAxis:      yAxis,
		Series:     []chart.Series{series},
	}
	var buf bytes.Buffer
	if err := ch.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("render scatter cell (%s, %s): %w", columns[j], columns[i], err)
	}
	return buf.Bytes(), nil
}

// rangeFor pads a degenerate value range so go-chart accepts it.
func rangeFor(vs []float64) *chart.ContinuousRange {
	lo, hi := minMax(vs)
	if lo == hi {
		lo -= 0.5
		hi += 0.5
	}
	return &chart.ContinuousRange{Min: lo, Max: hi}
}

// padDegenerate keeps go-chart from rejecting a single-point series.
func padDegenerate(vs []float64) []float64 {
	if len(vs) != 1 {
		return vs
	}
	return []float64{vs[0], vs[0]}
}

// titleStrip renders centered title text into a w x h image.
func titleStrip(text string, w, h int) (image.Image, error) {
	c, err := newCanvas(w, h)
	if err != nil {
		return nil, err
	}
	c.r.SetFontSize(16)
	box := c.r.MeasureText(text)
	c.r.Text(text, (w-box.Width())/2, h/2+6)
	b, err := c.bytes()
	if err != nil {
		return nil, err
	}
	img, err := png.Decode(bytes.NewReader(b))
	if err != nil {
		return nil, fmt.Errorf("decode title strip: %w", err)
	}
	return img, nil
}

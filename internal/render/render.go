// Package render draws the chart battery as PNG images using go-chart.
//
// Axis-driven charts (histograms, time series, scatter cells) go through
// chart.Chart; shapes go-chart has no series type for (boxplots,
// horizontal bars, the heatmap grid) are drawn directly on its raster
// Renderer.
package render

import (
	"bytes"
	"fmt"

	"github.com/golang/freetype/truetype"
	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// Canvas sizes in pixels, mirroring the usual 100 DPI figure sizes.
const (
	histWidth    = 800
	histHeight   = 500
	boxWidth     = 800
	boxHeight    = 500
	barWidth     = 1000
	barHeight    = 600
	heatWidth    = 1000
	heatHeight   = 800
	tsWidth      = 1200
	tsHeight     = 600
	scatterCell  = 260
	scatterMaxPx = 2080
)

var (
	colorBar     = drawing.Color{R: 78, G: 115, B: 223, A: 255}
	colorBarFill = drawing.Color{R: 78, G: 115, B: 223, A: 110}
	colorDensity = drawing.Color{R: 220, G: 90, B: 60, A: 255}
	colorBox     = drawing.Color{R: 78, G: 115, B: 223, A: 190}
	colorGrid    = drawing.Color{R: 220, G: 222, B: 226, A: 255}
	colorText    = drawing.Color{R: 51, G: 51, B: 51, A: 255}
)

func defaultFont() (*truetype.Font, error) {
	f, err := chart.GetDefaultFont()
	if err != nil {
		return nil, fmt.Errorf("load chart font: %w", err)
	}
	return f, nil
}

// canvas wraps a raster go-chart Renderer with the plot-area geometry
// shared by the hand-drawn chart kinds.
type canvas struct {
	r    chart.Renderer
	w, h int
	// plot area bounds
	left, right, top, bottom int
}

func newCanvas(w, h int) (*canvas, error) {
	r, err := chart.PNG(w, h)
	if err != nil {
		return nil, fmt.Errorf("create renderer: %w", err)
	}
	f, err := defaultFont()
	if err != nil {
		return nil, err
	}
	r.SetFont(f)
	r.SetFontColor(colorText)
	// white background
	r.SetFillColor(drawing.ColorWhite)
	r.MoveTo(0, 0)
	r.LineTo(w, 0)
	r.LineTo(w, h)
	r.LineTo(0, h)
	r.Close()
	r.Fill()
	return &canvas{r: r, w: w, h: h, left: 70, right: w - 30, top: 60, bottom: h - 55}, nil
}

func (c *canvas) bytes() ([]byte, error) {
	var buf bytes.Buffer
	if err := c.r.Save(&buf); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}

// title draws a centered plot title.
func (c *canvas) title(text string) {
	c.r.SetFontSize(14)
	c.r.SetFontColor(colorText)
	box := c.r.MeasureText(text)
	c.r.Text(text, (c.w-box.Width())/2, 30)
}

// textCentered draws text centered on (x, y baseline).
func (c *canvas) textCentered(text string, x, y int) {
	box := c.r.MeasureText(text)
	c.r.Text(text, x-box.Width()/2, y)
}

// rect fills then strokes the rectangle (x0,y0)-(x1,y1).
func (c *canvas) rect(x0, y0, x1, y1 int, fill, stroke drawing.Color) {
	c.r.SetFillColor(fill)
	c.r.SetStrokeColor(stroke)
	c.r.SetStrokeWidth(1)
	c.r.MoveTo(x0, y0)
	c.r.LineTo(x1, y0)
	c.r.LineTo(x1, y1)
	c.r.LineTo(x0, y1)
	c.r.Close()
	c.r.FillStroke()
}

func (c *canvas) line(x0, y0, x1, y1 int, col drawing.Color, width float64) {
	c.r.SetStrokeColor(col)
	c.r.SetStrokeWidth(width)
	c.r.MoveTo(x0, y0)
	c.r.LineTo(x1, y1)
	c.r.Stroke()
}

func formatTick(v float64) string {
	return fmt.Sprintf("%.4g", v)
}

// divergingColor maps r in [-1, 1] onto a blue-white-red scale.
func divergingColor(r float64) drawing.Color {
	if r < -1 {
		r = -1
	}
	if r > 1 {
		r = 1
	}
	cold := drawing.Color{R: 59, G: 76, B: 192, A: 255}
	warm := drawing.Color{R: 180, G: 4, B: 38, A: 255}
	white := drawing.ColorWhite
	blend := func(a, b drawing.Color, t float64) drawing.Color {
		return drawing.Color{
			R: uint8(float64(a.R) + (float64(b.R)-float64(a.R))*t),
			G: uint8(float64(a.G) + (float64(b.G)-float64(a.G))*t),
			B: uint8(float64(a.B) + (float64(b.B)-float64(a.B))*t),
			A: 255,
		}
	}
	if r < 0 {
		return blend(white, cold, -r)
	}
	return blend(white, warm, r)
}

// textColorFor picks black or white annotation text for a cell color.
func textColorFor(bg drawing.Color) drawing.Color {
	luma := 0.299*float64(bg.R) + 0.587*float64(bg.G) + 0.114*float64(bg.B)
	if luma < 140 {
		return drawing.ColorWhite
	}
	return colorText
}

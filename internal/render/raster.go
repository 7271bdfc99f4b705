package render

import (
	"fmt"
	"math"

	"github.com/wcharczuk/go-chart/v2/drawing"
)

// Boxplot renders a horizontal boxplot of a numeric column, titled
// "Boxplot of {column}": quartile box, median line, 1.5*IQR whiskers
// and outlier dots.
func Boxplot(column string, values []float64) ([]byte, error) {
	if len(values) == 0 {
		return nil, fmt.Errorf("boxplot %q: no numeric values", column)
	}
	c, err := newCanvas(boxWidth, boxHeight)
	if err != nil {
		return nil, err
	}
	s := computeBoxStats(values)

	lo, hi := s.Min, s.Max
	if hi == lo {
		lo -= 0.5
		hi += 0.5
	}
	margin := (hi - lo) * 0.05
	lo -= margin
	hi += margin
	toX := func(v float64) int {
		return c.left + int(float64(c.right-c.left)*(v-lo)/(hi-lo))
	}

	c.title(fmt.Sprintf("Boxplot of %s", column))

	// value axis with ticks
	c.line(c.left, c.bottom, c.right, c.bottom, colorText, 1)
	c.r.SetFontSize(10)
	for _, t := range niceTicks(lo, hi, 6) {
		x := toX(t)
		c.line(x, c.bottom, x, c.bottom+5, colorText, 1)
		c.textCentered(formatTick(t), x, c.bottom+20)
	}
	c.r.SetFontSize(12)
	c.textCentered(column, (c.left+c.right)/2, c.h-12)

	yMid := (c.top + c.bottom) / 2
	half := (c.bottom - c.top) / 4

	// whiskers and caps
	c.line(toX(s.WhiskerLo), yMid, toX(s.Q1), yMid, colorText, 1)
	c.line(toX(s.Q3), yMid, toX(s.WhiskerHi), yMid, colorText, 1)
	c.line(toX(s.WhiskerLo), yMid-half/2, toX(s.WhiskerLo), yMid+half/2, colorText, 1)
	c.line(toX(s.WhiskerHi), yMid-half/2, toX(s.WhiskerHi), yMid+half/2, colorText, 1)

	// quartile box and median
	c.rect(toX(s.Q1), yMid-half, toX(s.Q3), yMid+half, colorBox, colorText)
	c.line(toX(s.Median), yMid-half, toX(s.Median), yMid+half, colorText, 2)

	// outliers
	c.r.SetStrokeColor(colorText)
	c.r.SetFillColor(drawing.Color{A: 0})
	c.r.SetStrokeWidth(1)
	for _, v := range s.Outliers {
		c.r.Circle(4, toX(v), yMid)
		c.r.FillStroke()
	}

	return c.bytes()
}

// BarCount is one bar of a categorical count chart.
type BarCount struct {
	Label string
	Count int
}

// BarH renders a horizontal count bar chart of a categorical column,
// bars ordered as given (callers pass descending frequency), titled
// "Distribution of {column}".
func BarH(column string, bars []BarCount) ([]byte, error) {
	if len(bars) == 0 {
		return nil, fmt.Errorf("bar chart %q: no categories", column)
	}
	c, err := newCanvas(barWidth, barHeight)
	if err != nil {
		return nil, err
	}
	c.title(fmt.Sprintf("Distribution of %s", column))

	labelWidth := 170
	left := c.left + labelWidth
	maxCount := 0
	for _, b := range bars {
		if b.Count > maxCount {
			maxCount = b.Count
		}
	}

	rowH := (c.bottom - c.top) / len(bars)
	barH := rowH * 7 / 10
	if barH > 46 {
		barH = 46
	}
	c.r.SetFontSize(11)
	for i, b := range bars {
		yTop := c.top + i*rowH + (rowH-barH)/2
		w := int(float64(c.right-left-60) * float64(b.Count) / float64(maxCount))
		c.rect(left, yTop, left+w, yTop+barH, colorBarFill, colorBar)

		label := truncateLabel(b.Label, 22)
		box := c.r.MeasureText(label)
		c.r.SetFontColor(colorText)
		c.r.Text(label, left-10-box.Width(), yTop+barH/2+5)
		c.r.Text(fmt.Sprintf("%d", b.Count), left+w+6, yTop+barH/2+5)
	}

	// count axis
	c.line(left, c.bottom, c.right, c.bottom, colorText, 1)
	c.r.SetFontSize(12)
	c.textCentered("Count", (left+c.right)/2, c.h-12)

	return c.bytes()
}

// Heatmap renders an annotated correlation matrix over the given
// columns with a diverging blue-white-red scale, titled "Feature
// Correlation Matrix".
func Heatmap(columns []string, matrix [][]float64) ([]byte, error) {
	n := len(columns)
	if n < 2 || len(matrix) != n {
		return nil, fmt.Errorf("heatmap: need at least 2 columns, got %d", n)
	}
	c, err := newCanvas(heatWidth, heatHeight)
	if err != nil {
		return nil, err
	}
	c.title("Feature Correlation Matrix")

	left := 160
	top := c.top
	bottom := c.h - 110
	right := c.w - 40
	cellW := (right - left) / n
	cellH := (bottom - top) / n

	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			r := matrix[i][j]
			bg := divergingColor(r)
			x0 := left + j*cellW
			y0 := top + i*cellH
			c.rect(x0, y0, x0+cellW, y0+cellH, bg, colorGrid)
			c.r.SetFontSize(11)
			c.r.SetFontColor(textColorFor(bg))
			c.textCentered(fmt.Sprintf("%.2f", r), x0+cellW/2, y0+cellH/2+4)
		}
	}

	// row labels left, column labels angled along the bottom
	c.r.SetFontColor(colorText)
	c.r.SetFontSize(10)
	for i, name := range columns {
		label := truncateLabel(name, 18)
		box := c.r.MeasureText(label)
		c.r.Text(label, left-8-box.Width(), top+i*cellH+cellH/2+4)
	}
	c.r.SetTextRotation(-math.Pi / 4)
	for j, name := range columns {
		label := truncateLabel(name, 18)
		c.r.Text(label, left+j*cellW+cellW/2-8, bottom+18)
	}
	c.r.ClearTextRotation()

	return c.bytes()
}

func truncateLabel(s string, max int) string {
	if len(s) <= max {
		return s
	}
	if max <= 3 {
		return s[:max]
	}
	return s[:max-3] + "..."
}

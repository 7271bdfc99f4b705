package render

import (
	"bytes"
	"image/png"
	"math"
	"testing"
	"time"
)

func decodePNG(t *testing.T, b []byte) (w, h int) {
	t.Helper()
	img, err := png.Decode(bytes.NewReader(b))
	if err != nil {
		t.Fatalf("output is not a PNG: %v", err)
	}
	bounds := img.Bounds()
	return bounds.Dx(), bounds.Dy()
}

func TestHistogram(t *testing.T) {
	vals := []float64{1, 2, 2, 3, 3, 3, 4, 4, 5, 8, 9, 10}
	b, err := Histogram("score", vals)
	if err != nil {
		t.Fatalf("histogram: %v", err)
	}
	w, h := decodePNG(t, b)
	if w != histWidth || h != histHeight {
		t.Fatalf("size = %dx%d, want %dx%d", w, h, histWidth, histHeight)
	}
}

func TestHistogramConstantColumn(t *testing.T) {
	if _, err := Histogram("flat", []float64{7, 7, 7, 7}); err != nil {
		t.Fatalf("constant column should still render: %v", err)
	}
}

func TestHistogramEmpty(t *testing.T) {
	if _, err := Histogram("empty", nil); err == nil {
		t.Fatal("expected error for empty values")
	}
}

func TestBoxplot(t *testing.T) {
	vals := []float64{1, 2, 3, 4, 5, 6, 7, 8, 100} // 100 is an outlier
	b, err := Boxplot("latency", vals)
	if err != nil {
		t.Fatalf("boxplot: %v", err)
	}
	decodePNG(t, b)
}

func TestBarH(t *testing.T) {
	bars := []BarCount{{"Portland", 12}, {"Austin", 7}, {"Denver", 3}}
	b, err := BarH("city", bars)
	if err != nil {
		t.Fatalf("barh: %v", err)
	}
	w, h := decodePNG(t, b)
	if w != barWidth || h != barHeight {
		t.Fatalf("size = %dx%d", w, h)
	}
}

func TestHeatmap(t *testing.T) {
	cols := []string{"a", "b", "c"}
	m := [][]float64{
		{1, 0.5, -0.2},
		{0.5, 1, 0.9},
		{-0.2, 0.9, 1},
	}
	b, err := Heatmap(cols, m)
	if err != nil {
		t.Fatalf("heatmap: %v", err)
	}
	decodePNG(t, b)
}

func TestHeatmapRejectsSingleColumn(t *testing.T) {
	if _, err := Heatmap([]string{"a"}, [][]float64{{1}}); err == nil {
		t.Fatal("expected error for single column")
	}
}

func TestScatterMatrix(t *testing.T) {
	cols := [][]float64{
		{1, 2, 3, 4, 5},
		{2, 4, 6, 8, 10},
		{5, 3, 8, 1, 9},
	}
	b, err := ScatterMatrix([]string{"x", "y", "z"}, cols)
	if err != nil {
		t.Fatalf("scatter matrix: %v", err)
	}
	w, h := decodePNG(t, b)
	if w != 3*scatterCell || h != 50+3*scatterCell {
		t.Fatalf("size = %dx%d", w, h)
	}
}

func TestScatterMatrixConstantColumn(t *testing.T) {
	cols := [][]float64{
		{1, 2, 3},
		{5, 5, 5},
	}
	if _, err := ScatterMatrix([]string{"x", "flat"}, cols); err != nil {
		t.Fatalf("constant column should still render: %v", err)
	}
}

func TestTimeSeries(t *testing.T) {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	ts := []time.Time{base.AddDate(0, 0, 2), base, base.AddDate(0, 0, 1)}
	vs := []float64{3, 1, 2}
	b, err := TimeSeries("revenue", "day", ts, vs)
	if err != nil {
		t.Fatalf("time series: %v", err)
	}
	decodePNG(t, b)
}

func TestTimeSeriesSinglePoint(t *testing.T) {
	ts := []time.Time{time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	if _, err := TimeSeries("v", "day", ts, []float64{1}); err != nil {
		t.Fatalf("single point should render: %v", err)
	}
}

func TestHistogramBins(t *testing.T) {
	edges, counts := histogramBins([]float64{0, 1, 2, 3, 4, 5, 6, 7})
	if len(edges) != len(counts)+1 {
		t.Fatalf("edges/counts mismatch: %d/%d", len(edges), len(counts))
	}
	total := 0
	for _, c := range counts {
		total += c
	}
	if total != 8 {
		t.Fatalf("binned %d values, want 8", total)
	}
}

func TestQuantile(t *testing.T) {
	sorted := []float64{1, 2, 3, 4, 5}
	if q := quantile(sorted, 0.5); q != 3 {
		t.Fatalf("median = %v", q)
	}
	if q := quantile(sorted, 0.25); q != 2 {
		t.Fatalf("q1 = %v", q)
	}
}

func TestComputeBoxStatsOutliers(t *testing.T) {
	s := computeBoxStats([]float64{1, 2, 3, 4, 5, 6, 7, 8, 100})
	if len(s.Outliers) != 1 || s.Outliers[0] != 100 {
		t.Fatalf("outliers = %v", s.Outliers)
	}
	if s.WhiskerHi != 8 {
		t.Fatalf("upper whisker = %v, want 8", s.WhiskerHi)
	}
}

func TestDivergingColorEndpoints(t *testing.T) {
	if c := divergingColor(0); c.R != 255 || c.G != 255 || c.B != 255 {
		t.Fatalf("r=0 should be white, got %+v", c)
	}
	neg := divergingColor(-1)
	pos := divergingColor(1)
	if neg.B <= neg.R || pos.R <= pos.B {
		t.Fatalf("scale not diverging: %+v / %+v", neg, pos)
	}
}

func TestKDEIntegratesToCountScale(t *testing.T) {
	vals := make([]float64, 200)
	for i := range vals {
		vals[i] = math.Sin(float64(i)) * 10
	}
	edges, _ := histogramBins(vals)
	xs := sampleRange(edges[0], edges[len(edges)-1], 50)
	dens := kde(vals, xs, edges[1]-edges[0])
	if dens == nil {
		t.Fatal("expected density estimate")
	}
	for _, d := range dens {
		if d < 0 || math.IsNaN(d) {
			t.Fatalf("bad density value %v", d)
		}
	}
}

package render

import (
	"math"
	"sort"
)

// histogramBins computes equal-width bins over values using Sturges'
// rule. Returns bin edges (len bins+1) and per-bin counts.
func histogramBins(values []float64) (edges []float64, counts []int) {
	n := len(values)
	if n == 0 {
		return nil, nil
	}
	min, max := minMax(values)
	if min == max {
		// Degenerate column: one bin of unit width around the value.
		min -= 0.5
		max += 0.5
	}
	bins := int(math.Ceil(math.Log2(float64(n)))) + 1
	if bins < 1 {
		bins = 1
	}
	width := (max - min) / float64(bins)
	edges = make([]float64, bins+1)
	for i := range edges {
		edges[i] = min + float64(i)*width
	}
	counts = make([]int, bins)
	for _, v := range values {
		idx := int((v - min) / width)
		if idx >= bins {
			idx = bins - 1
		}
		if idx < 0 {
			idx = 0
		}
		counts[idx]++
	}
	return edges, counts
}

// kde evaluates a Gaussian kernel density estimate at xs using
// Silverman's bandwidth, scaled to histogram-count units (n * bin
// width) so the curve overlays the bars. Returns nil when the data has
// no spread.
func kde(values []float64, xs []float64, binWidth float64) []float64 {
	n := len(values)
	if n < 2 {
		return nil
	}
	sd := stddev(values)
	if sd == 0 {
		return nil
	}
	h := 1.06 * sd * math.Pow(float64(n), -0.2)
	if h <= 0 {
		return nil
	}
	scale := float64(n) * binWidth
	out := make([]float64, len(xs))
	for i, x := range xs {
		sum := 0.0
		for _, v := range values {
			z := (x - v) / h
			sum += math.Exp(-0.5 * z * z)
		}
		out[i] = scale * sum / (float64(n) * h * math.Sqrt(2*math.Pi))
	}
	return out
}

// quantile interpolates the q-th quantile of a sorted slice.
func quantile(sorted []float64, q float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	if q <= 0 {
		return sorted[0]
	}
	if q >= 1 {
		return sorted[len(sorted)-1]
	}
	pos := q * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo]
	}
	w := pos - float64(lo)
	return sorted[lo]*(1-w) + sorted[hi]*w
}

// boxStats summarizes values for a boxplot: quartiles, 1.5*IQR whisker
// fences and the points beyond them.
type boxStats struct {
	Min, Q1, Median, Q3, Max float64
	WhiskerLo, WhiskerHi     float64
	Outliers                 []float64
}

func computeBoxStats(values []float64) boxStats {
	cp := make([]float64, len(values))
	copy(cp, values)
	sort.Float64s(cp)
	var s boxStats
	s.Min, s.Max = cp[0], cp[len(cp)-1]
	s.Q1 = quantile(cp, 0.25)
	s.Median = quantile(cp, 0.5)
	s.Q3 = quantile(cp, 0.75)
	iqr := s.Q3 - s.Q1
	loFence := s.Q1 - 1.5*iqr
	hiFence := s.Q3 + 1.5*iqr
	s.WhiskerLo, s.WhiskerHi = s.Max, s.Min
	for _, v := range cp {
		if v < loFence || v > hiFence {
			s.Outliers = append(s.Outliers, v)
			continue
		}
		if v < s.WhiskerLo {
			s.WhiskerLo = v
		}
		if v > s.WhiskerHi {
			s.WhiskerHi = v
		}
	}
	if len(s.Outliers) == len(cp) {
		s.WhiskerLo, s.WhiskerHi = s.Min, s.Max
	}
	return s
}

func minMax(values []float64) (min, max float64) {
	min, max = math.Inf(1), math.Inf(-1)
	for _, v := range values {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	return min, max
}

func stddev(values []float64) float64 {
	n := len(values)
	if n < 2 {
		return 0
	}
	var mean, m2 float64
	for i, v := range values {
		delta := v - mean
		mean += delta / float64(i+1)
		m2 += delta * (v - mean)
	}
	return math.Sqrt(m2 / float64(n-1))
}

// niceNum formats axis/annotation numbers compactly.
func niceTicks(min, max float64, n int) []float64 {
	if n < 2 || max <= min {
		return []float64{min, max}
	}
	span := max - min
	step := math.Pow(10, math.Floor(math.Log10(span/float64(n))))
	for span/step > float64(n)*2 {
		step *= 2
	}
	start := math.Ceil(min/step) * step
	var out []float64
	for v := start; v <= max+step/1e6; v += step {
		out = append(out, v)
	}
	return out
}

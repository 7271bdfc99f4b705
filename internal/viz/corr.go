package viz

import (
	"math"

	"github.com/KaramelBytes/autoviz/internal/classify"
	"github.com/KaramelBytes/autoviz/internal/dataset"
)

// pairAcc accumulates the running sums for one Pearson pair.
type pairAcc struct {
	n     float64
	sumX  float64
	sumY  float64
	sumXX float64
	sumYY float64
	sumXY float64
}

func (p *pairAcc) add(x, y float64) {
	p.n++
	p.sumX += x
	p.sumY += y
	p.sumXX += x * x
	p.sumYY += y * y
	p.sumXY += x * y
}

func (p *pairAcc) r() float64 {
	if p.n < 2 {
		return 0
	}
	denom := math.Sqrt((p.n*p.sumXX - p.sumX*p.sumX) * (p.n*p.sumYY - p.sumY*p.sumY))
	if denom == 0 {
		return 0
	}
	r := (p.n*p.sumXY - p.sumX*p.sumY) / denom
	if r > 1 {
		r = 1
	} else if r < -1 {
		r = -1
	}
	if math.IsNaN(r) || math.IsInf(r, 0) {
		return 0
	}
	return r
}

// Correlations computes the symmetric Pearson correlation matrix over
// the given numeric columns. Pairs use pairwise-complete rows (both
// cells parse); the diagonal is 1.
func Correlations(ds *dataset.Dataset, numeric []string) [][]float64 {
	n := len(numeric)
	idx := make([]int, n)
	for k, name := range numeric {
		idx[k] = -1
		for i, col := range ds.Columns {
			if col == name {
				idx[k] = i
				break
			}
		}
	}

	accs := make([][]*pairAcc, n)
	for i := range accs {
		accs[i] = make([]*pairAcc, n)
		for j := range accs[i] {
			accs[i][j] = &pairAcc{}
		}
	}
	vals := make([]float64, n)
	okCol := make([]bool, n)
	for _, row := range ds.Rows {
		for k, i := range idx {
			okCol[k] = false
			if i < 0 {
				continue
			}
			if v, ok := classify.ParseNumber(row[i]); ok {
				vals[k] = v
				okCol[k] = true
			}
		}
		for a := 0; a < n; a++ {
			if !okCol[a] {
				continue
			}
			for b := a + 1; b < n; b++ {
				if okCol[b] {
					accs[a][b].add(vals[a], vals[b])
				}
			}
		}
	}

	out := make([][]float64, n)
	for i := range out {
		out[i] = make([]float64, n)
		out[i][i] = 1
	}
	for a := 0; a < n; a++ {
		for b := a + 1; b < n; b++ {
			r := accs[a][b].r()
			out[a][b] = r
			out[b][a] = r
		}
	}
	return out
}

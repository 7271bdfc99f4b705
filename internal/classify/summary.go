package classify

import (
	"fmt"
	"math"
	"strings"

	"github.com/KaramelBytes/autoviz/internal/dataset"
)

// ColumnSummary captures the inferred kind and basic statistics of one
// column.
type ColumnSummary struct {
	Name    string
	Kind    Kind
	NonNull int
	Missing int
	Unique  int
	// Numeric stats (Welford)
	Min  float64
	Max  float64
	Mean float64
	Std  float64
	// Categorical top values
	TopValues []CategoryCount
}

// Summarize computes per-column summaries for the inspect command and
// the web metrics panel.
func Summarize(ds *dataset.Dataset, c Classification) []ColumnSummary {
	out := make([]ColumnSummary, 0, len(ds.Columns))
	for i, name := range ds.Columns {
		s := ColumnSummary{Name: name, Kind: c.KindOf(name)}
		distinct := map[string]int{}
		var n int
		var mean, m2 float64
		min, max := math.Inf(1), math.Inf(-1)
		for _, row := range ds.Rows {
			v := strings.TrimSpace(row[i])
			if isMissing(v) {
				s.Missing++
				continue
			}
			s.NonNull++
			distinct[v]++
			if x, ok := ParseNumber(v); ok && s.Kind == Numeric {
				n++
				if x < min {
					min = x
				}
				if x > max {
					max = x
				}
				delta := x - mean
				mean += delta / float64(n)
				m2 += delta * (x - mean)
			}
		}
		s.Unique = len(distinct)
		if s.Kind == Numeric && n > 0 {
			s.Min, s.Max, s.Mean = min, max, mean
			if n > 1 {
				s.Std = math.Sqrt(m2 / float64(n-1))
			}
		}
		if s.Kind == Categorical {
			tops := make([]CategoryCount, 0, len(distinct))
			for v, cnt := range distinct {
				tops = append(tops, CategoryCount{Value: v, Count: cnt})
			}
			sortCategories(tops)
			if len(tops) > 8 {
				tops = tops[:8]
			}
			s.TopValues = tops
		}
		out = append(out, s)
	}
	return out
}

// Markdown renders the classification and summaries as a compact
// dataset report.
func Markdown(ds *dataset.Dataset, c Classification) string {
	var b strings.Builder
	b.WriteString("[DATASET]\n")
	if ds.Name != "" {
		fmt.Fprintf(&b, "File: %s\n", ds.Name)
	}
	fmt.Fprintf(&b, "Rows: %d\nColumns: %d\n\n", ds.NumRows(), ds.NumColumns())
	fmt.Fprintf(&b, "[CLASSIFICATION]\nNumeric: %d, Categorical: %d, Datetime: %d\n\n",
		len(c.Numeric), len(c.Categorical), len(c.Datetime))

	b.WriteString("[SCHEMA]\n")
	for _, s := range Summarize(ds, c) {
		total := s.NonNull + s.Missing
		missPct := 0.0
		if total > 0 {
			missPct = float64(s.Missing) * 100.0 / float64(total)
		}
		fmt.Fprintf(&b, "- %s: %s (non-null %d, missing %.1f%%)", s.Name, s.Kind, s.NonNull, missPct)
		switch s.Kind {
		case Numeric:
			fmt.Fprintf(&b, " — min %.4g, max %.4g, mean %.4g, std %.4g", s.Min, s.Max, s.Mean, s.Std)
		case Categorical:
			if len(s.TopValues) > 0 {
				b.WriteString(" — top: ")
				for i, kv := range s.TopValues {
					if i > 0 {
						b.WriteString(", ")
					}
					fmt.Fprintf(&b, "%s(%d)", kv.Value, kv.Count)
				}
				if s.Unique > len(s.TopValues) {
					fmt.Fprintf(&b, "; unique=%d", s.Unique)
				}
			}
		case Excluded:
			fmt.Fprintf(&b, " — excluded (%d distinct values)", s.Unique)
		}
		b.WriteString("\n")
	}
	return b.String()
}

// Package classify partitions dataset columns into numeric, categorical
// and datetime buckets by inspecting cell values.
package classify

import (
	"math"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/KaramelBytes/autoviz/internal/dataset"
)

// Kind is the inferred semantic type of a column.
type Kind int

const (
	// Excluded marks columns that fit no bucket (high-cardinality text,
	// free-form notes, IDs). They produce no charts.
	Excluded Kind = iota
	Numeric
	Datetime
	Categorical
)

func (k Kind) String() string {
	switch k {
	case Numeric:
		return "numeric"
	case Datetime:
		return "datetime"
	case Categorical:
		return "categorical"
	default:
		return "excluded"
	}
}

// MaxCategories is the distinct-value ceiling for a non-numeric,
// non-datetime column to count as categorical. Fixed policy, not
// configurable.
const MaxCategories = 20

// Classification holds the three ordered column-name buckets. Every
// dataset column appears in at most one bucket; columns failing all
// three criteria appear in none.
type Classification struct {
	Numeric     []string
	Categorical []string
	Datetime    []string

	kinds map[string]Kind
}

// KindOf returns the bucket of the named column (Excluded if it was
// dropped or unknown).
func (c Classification) KindOf(column string) Kind {
	return c.kinds[column]
}

// Classify inspects every column of ds, in column order, and assigns it
// a bucket. Pure and deterministic: the same dataset always yields the
// same result.
func Classify(ds *dataset.Dataset) Classification {
	out := Classification{kinds: make(map[string]Kind, len(ds.Columns))}
	for i, name := range ds.Columns {
		kind := classifyColumn(ds, i)
		out.kinds[name] = kind
		switch kind {
		case Numeric:
			out.Numeric = append(out.Numeric, name)
		case Datetime:
			out.Datetime = append(out.Datetime, name)
		case Categorical:
			out.Categorical = append(out.Categorical, name)
		}
	}
	return out
}

func classifyColumn(ds *dataset.Dataset, col int) Kind {
	nonNull := 0
	numeric := 0
	datetime := 0
	distinct := map[string]struct{}{}
	for _, row := range ds.Rows {
		v := strings.TrimSpace(row[col])
		if isMissing(v) {
			continue
		}
		nonNull++
		if _, ok := ParseNumber(v); ok {
			numeric++
		} else if _, ok := ParseTime(v); ok {
			datetime++
		}
		if len(distinct) <= MaxCategories {
			distinct[v] = struct{}{}
		}
	}
	switch {
	case nonNull == 0:
		return Excluded
	case numeric == nonNull:
		return Numeric
	case datetime == nonNull:
		return Datetime
	case len(distinct) <= MaxCategories:
		return Categorical
	default:
		return Excluded
	}
}

// ParseNumber reports whether v reads as a finite number. Thousands
// commas in patterns like 1,234,567.8 are tolerated; "NaN" and "Inf"
// tokens are null markers, not data.
func ParseNumber(v string) (float64, bool) {
	s := strings.TrimSpace(v)
	if s == "" {
		return 0, false
	}
	if strings.Contains(s, ",") && looksGrouped(s) {
		s = strings.ReplaceAll(s, ",", "")
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// isMissing reports whether v is a null marker ("", "NaN", "Inf"...)
// rather than a data value.
func isMissing(v string) bool {
	if v == "" {
		return true
	}
	f, err := strconv.ParseFloat(v, 64)
	return err == nil && (math.IsNaN(f) || math.IsInf(f, 0))
}

// looksGrouped reports whether commas in s sit at thousands positions.
func looksGrouped(s string) bool {
	body := strings.TrimLeft(s, "+-")
	if i := strings.IndexByte(body, '.'); i >= 0 {
		body = body[:i]
	}
	parts := strings.Split(body, ",")
	if len(parts) < 2 || len(parts[0]) == 0 || len(parts[0]) > 3 {
		return false
	}
	for _, p := range parts[1:] {
		if len(p) != 3 {
			return false
		}
	}
	return true
}

var timeLayouts = []string{
	time.RFC3339, "2006-01-02", "2006/01/02", "02/01/2006", "01/02/2006",
	"2006-01-02 15:04", "2006-01-02 15:04:05", "1/2/2006 15:04", "1/2/2006 15:04:05",
}

// ParseTime reports whether v reads as a calendar timestamp.
func ParseTime(v string) (time.Time, bool) {
	s := strings.TrimSpace(v)
	for _, l := range timeLayouts {
		if t, err := time.Parse(l, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// NumericValues returns the parsed values of a numeric column, skipping
// null cells.
func NumericValues(ds *dataset.Dataset, column string) []float64 {
	cells, err := ds.Column(column)
	if err != nil {
		return nil
	}
	out := make([]float64, 0, len(cells))
	for _, v := range cells {
		if f, ok := ParseNumber(v); ok {
			out = append(out, f)
		}
	}
	return out
}

// TimeValues returns the parsed values of a datetime column, skipping
// null cells.
func TimeValues(ds *dataset.Dataset, column string) []time.Time {
	cells, err := ds.Column(column)
	if err != nil {
		return nil
	}
	out := make([]time.Time, 0, len(cells))
	for _, v := range cells {
		if t, ok := ParseTime(v); ok {
			out = append(out, t)
		}
	}
	return out
}

// CategoryCounts returns distinct value frequencies of a column,
// descending by count, ties broken by value.
func CategoryCounts(ds *dataset.Dataset, column string) []CategoryCount {
	cells, err := ds.Column(column)
	if err != nil {
		return nil
	}
	counts := map[string]int{}
	for _, v := range cells {
		v = strings.TrimSpace(v)
		if isMissing(v) {
			continue
		}
		counts[v]++
	}
	out := make([]CategoryCount, 0, len(counts))
	for v, n := range counts {
		out = append(out, CategoryCount{Value: v, Count: n})
	}
	sortCategories(out)
	return out
}

// CategoryCount pairs a categorical value with its frequency.
type CategoryCount struct {
	Value string
	Count int
}

func sortCategories(cc []CategoryCount) {
	sort.Slice(cc, func(i, j int) bool {
		if cc[i].Count == cc[j].Count {
			return cc[i].Value < cc[j].Value
		}
		return cc[i].Count > cc[j].Count
	})
}

// TimePairs returns row-aligned (timestamp, value) pairs for a datetime
// and a numeric column, keeping only rows where both cells parse.
func TimePairs(ds *dataset.Dataset, dtColumn, numColumn string) ([]time.Time, []float64) {
	dtIdx, numIdx := -1, -1
	for i, c := range ds.Columns {
		if c == dtColumn {
			dtIdx = i
		}
		if c == numColumn {
			numIdx = i
		}
	}
	if dtIdx < 0 || numIdx < 0 {
		return nil, nil
	}
	var ts []time.Time
	var vs []float64
	for _, row := range ds.Rows {
		t, okT := ParseTime(row[dtIdx])
		v, okV := ParseNumber(row[numIdx])
		if okT && okV {
			ts = append(ts, t)
			vs = append(vs, v)
		}
	}
	return ts, vs
}

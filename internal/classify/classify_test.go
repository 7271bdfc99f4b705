package classify_test

import (
	"fmt"
	"strings"
	"testing"

	"github.com/KaramelBytes/autoviz/internal/classify"
	"github.com/KaramelBytes/autoviz/internal/dataset"
)

func loadCSV(t *testing.T, content string) *dataset.Dataset {
	t.Helper()
	ds, err := dataset.Load("fixture.csv", []byte(content))
	if err != nil {
		t.Fatalf("load fixture: %v", err)
	}
	return ds
}

func TestClassifyBuckets(t *testing.T) {
	ds := loadCSV(t, "age,city,signup_date,score\n"+
		"34,Portland,2024-01-05,8.5\n"+
		"29,Austin,2024-02-11,7.2\n"+
		",Portland,2024-03-20,9.1\n")
	c := classify.Classify(ds)

	if got := fmt.Sprint(c.Numeric); got != "[age score]" {
		t.Fatalf("numeric = %s", got)
	}
	if got := fmt.Sprint(c.Categorical); got != "[city]" {
		t.Fatalf("categorical = %s", got)
	}
	if got := fmt.Sprint(c.Datetime); got != "[signup_date]" {
		t.Fatalf("datetime = %s", got)
	}
	if c.KindOf("city") != classify.Categorical {
		t.Fatalf("KindOf(city) = %v", c.KindOf("city"))
	}
}

func TestClassifyBucketsAreExclusive(t *testing.T) {
	ds := loadCSV(t, "a,b,c\n1,x,2024-01-01\n2,y,2024-01-02\n")
	c := classify.Classify(ds)
	seen := map[string]int{}
	for _, name := range c.Numeric {
		seen[name]++
	}
	for _, name := range c.Categorical {
		seen[name]++
	}
	for _, name := range c.Datetime {
		seen[name]++
	}
	for name, n := range seen {
		if n > 1 {
			t.Fatalf("column %q appears in %d buckets", name, n)
		}
	}
}

func TestClassifyHighCardinalityTextExcluded(t *testing.T) {
	var b strings.Builder
	b.WriteString("id\n")
	for i := 0; i < 25; i++ {
		fmt.Fprintf(&b, "user-%04d\n", i)
	}
	ds := loadCSV(t, b.String())
	c := classify.Classify(ds)
	if len(c.Numeric)+len(c.Categorical)+len(c.Datetime) != 0 {
		t.Fatalf("25-distinct text column must be excluded, got %+v", c)
	}
	if c.KindOf("id") != classify.Excluded {
		t.Fatalf("KindOf(id) = %v", c.KindOf("id"))
	}
}

func TestClassifyCategoricalAtThreshold(t *testing.T) {
	var b strings.Builder
	b.WriteString("bucket\n")
	for i := 0; i < 20; i++ {
		fmt.Fprintf(&b, "b%02d\n", i)
	}
	ds := loadCSV(t, b.String())
	c := classify.Classify(ds)
	if len(c.Categorical) != 1 {
		t.Fatalf("exactly 20 distinct values should stay categorical, got %+v", c)
	}
}

func TestClassifyMixedColumnNotNumeric(t *testing.T) {
	// One non-numeric cell disqualifies the whole column.
	ds := loadCSV(t, "v\n1\n2\nn/a\n")
	c := classify.Classify(ds)
	if len(c.Numeric) != 0 {
		t.Fatalf("mixed column classified numeric: %+v", c)
	}
	if c.KindOf("v") != classify.Categorical {
		t.Fatalf("3-distinct mixed column should fall back to categorical, got %v", c.KindOf("v"))
	}
}

func TestParseNumberGrouping(t *testing.T) {
	cases := map[string]bool{
		"1,234":       true,
		"1,234,567.8": true,
		"12,34":       false,
		"3.14":        true,
		"-2e3":        true,
		"abc":         false,
		"":            false,
	}
	for in, want := range cases {
		if _, ok := classify.ParseNumber(in); ok != want {
			t.Errorf("ParseNumber(%q) ok = %v, want %v", in, ok, want)
		}
	}
}

func TestParseNumberRejectsNonFinite(t *testing.T) {
	// strconv accepts these tokens but they are null markers, not data.
	for _, in := range []string{"NaN", "nan", "Inf", "inf", "-Inf", "+Inf", "Infinity"} {
		if _, ok := classify.ParseNumber(in); ok {
			t.Errorf("ParseNumber(%q) = true, want false", in)
		}
	}
}

func TestClassifyNaNCellsTreatedAsMissing(t *testing.T) {
	// A numeric column with NaN/Inf markers stays numeric; the markers
	// read as null cells, same as empty strings.
	ds := loadCSV(t, "v\n1\nNaN\n3\nInf\n5\n")
	c := classify.Classify(ds)
	if c.KindOf("v") != classify.Numeric {
		t.Fatalf("KindOf(v) = %v, want numeric", c.KindOf("v"))
	}
	vals := classify.NumericValues(ds, "v")
	if fmt.Sprint(vals) != "[1 3 5]" {
		t.Fatalf("NumericValues = %v, want [1 3 5]", vals)
	}
}

func TestTimePairsRowAligned(t *testing.T) {
	ds := loadCSV(t, "date,v\n2024-01-01,1\n2024-01-02,\nbogus,3\n2024-01-04,4\n")
	ts, vs := classify.TimePairs(ds, "date", "v")
	if len(ts) != 2 || len(vs) != 2 {
		t.Fatalf("pairs = %d/%d, want 2/2", len(ts), len(vs))
	}
	if vs[0] != 1 || vs[1] != 4 {
		t.Fatalf("values = %v", vs)
	}
}

func TestMarkdownSummary(t *testing.T) {
	ds := loadCSV(t, "age,city\n34,Portland\n29,Austin\n41,Portland\n")
	md := classify.Markdown(ds, classify.Classify(ds))
	if !strings.Contains(md, "age: numeric") {
		t.Fatalf("expected numeric age in summary, got:\n%s", md)
	}
	if !strings.Contains(md, "Portland(2)") {
		t.Fatalf("expected top category count, got:\n%s", md)
	}
}

package web

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/KaramelBytes/autoviz/internal/config"
	"github.com/KaramelBytes/autoviz/internal/viz"
)

func testServer() *Server {
	return NewServer(&config.Global{
		ListenAddr:      ":0",
		MaxUploadMB:     32,
		RunRetentionMin: 60,
		LogLevel:        "info",
		LogFormat:       "text",
		SampleSeed:      1,
	})
}

func uploadRequest(t *testing.T, filename, contents string) *http.Request {
	t.Helper()

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	fw, err := mw.CreateFormFile("dataset", filename)
	if err != nil {
		t.Fatalf("CreateFormFile: %v", err)
	}
	if _, err := fw.Write([]byte(contents)); err != nil {
		t.Fatalf("write form file: %v", err)
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("close multipart writer: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/upload", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

const sampleCSV = `age,city,signup_date
34,Austin,2023-01-15
29,Boston,2023-02-20
41,Austin,2023-03-05
35,Denver,2023-04-11
`

func TestIndexPage(t *testing.T) {
	srv := testServer()
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	if !strings.Contains(rec.Body.String(), "Generate Visualizations") {
		t.Error("index page missing upload form")
	}
}

func TestUploadAndResults(t *testing.T) {
	srv := testServer()

	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, uploadRequest(t, "people.csv", sampleCSV))

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("upload status = %d, want %d (body: %s)", rec.Code, http.StatusSeeOther, rec.Body.String())
	}
	loc := rec.Header().Get("Location")
	if !strings.HasPrefix(loc, "/run/") {
		t.Fatalf("redirect location = %q, want /run/{id}", loc)
	}

	rec = httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, loc, nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("results status = %d, want %d", rec.Code, http.StatusOK)
	}
	page := rec.Body.String()
	if !strings.Contains(page, "Successfully loaded dataset with 4 rows and 3 columns") {
		t.Error("results page missing load summary")
	}
	for _, want := range []string{"Distributions", "Time Series", "people.csv"} {
		if !strings.Contains(page, want) {
			t.Errorf("results page missing %q", want)
		}
	}
}

func TestPlotServesPNG(t *testing.T) {
	srv := testServer()

	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, uploadRequest(t, "people.csv", sampleCSV))
	loc := rec.Header().Get("Location")

	rec = httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, loc+"/plot/0", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("plot status = %d, want %d", rec.Code, http.StatusOK)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "image/png" {
		t.Errorf("Content-Type = %q, want image/png", ct)
	}
	sig := []byte{0x89, 'P', 'N', 'G'}
	if !bytes.HasPrefix(rec.Body.Bytes(), sig) {
		t.Error("plot response is not a PNG")
	}

	rec = httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, loc+"/plot/99", nil))
	if rec.Code != http.StatusNotFound {
		t.Errorf("out-of-range plot status = %d, want %d", rec.Code, http.StatusNotFound)
	}
}

func TestDownloads(t *testing.T) {
	srv := testServer()

	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, uploadRequest(t, "people.csv", sampleCSV))
	loc := rec.Header().Get("Location")

	rec = httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, loc+"/report.zip", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("zip status = %d, want %d", rec.Code, http.StatusOK)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/zip" {
		t.Errorf("zip Content-Type = %q", ct)
	}
	if cd := rec.Header().Get("Content-Disposition"); !strings.Contains(cd, "autoviz_report.zip") {
		t.Errorf("zip Content-Disposition = %q", cd)
	}

	rec = httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, loc+"/report.html", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("html status = %d, want %d", rec.Code, http.StatusOK)
	}
	if !strings.Contains(rec.Body.String(), "AutoViz Report") {
		t.Error("html report missing title")
	}
}

func TestUploadUnsupportedFormat(t *testing.T) {
	srv := testServer()

	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, uploadRequest(t, "data.txt", "hello world"))

	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusUnprocessableEntity)
	}
	if !strings.Contains(rec.Body.String(), "unsupported file format: please upload a CSV or Excel file") {
		t.Error("response missing unsupported-format message")
	}
}

func TestUploadTooLarge(t *testing.T) {
	srv := NewServer(&config.Global{
		MaxUploadMB:     1,
		RunRetentionMin: 60,
		SampleSeed:      1,
	})

	big := "v\n" + strings.Repeat("1234567890\n", 200_000) // > 1 MB
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, uploadRequest(t, "big.csv", big))

	if rec.Code != http.StatusRequestEntityTooLarge {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusRequestEntityTooLarge)
	}
	if !strings.Contains(rec.Body.String(), "upload limit is 1 MB") {
		t.Errorf("response missing size-limit message: %s", rec.Body.String())
	}
}

func TestUploadMissingFile(t *testing.T) {
	srv := testServer()

	req := httptest.NewRequest(http.MethodPost, "/upload", strings.NewReader(""))
	req.Header.Set("Content-Type", "multipart/form-data; boundary=x")

	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
	if !strings.Contains(rec.Body.String(), "Please choose a file to upload.") {
		t.Error("response missing file-required message")
	}
}

func TestRunNotFound(t *testing.T) {
	srv := testServer()

	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/run/nope", nil))
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusNotFound)
	}
}

func TestRunStoreExpiry(t *testing.T) {
	store := newRunStore(time.Minute)
	clock := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return clock }

	id := store.Put(&Run{Dataset: "a.csv"})
	if _, ok := store.Get(id); !ok {
		t.Fatal("fresh run not found")
	}

	clock = clock.Add(2 * time.Minute)
	if _, ok := store.Get(id); ok {
		t.Error("expired run still retrievable")
	}

	// inserting a new run evicts the stale one
	id2 := store.Put(&Run{Dataset: "b.csv"})
	store.mu.Lock()
	_, stale := store.runs[id]
	store.mu.Unlock()
	if stale {
		t.Error("stale run not evicted on Put")
	}
	if _, ok := store.Get(id2); !ok {
		t.Error("new run not retrievable")
	}
}

func TestPlotViewGrouping(t *testing.T) {
	run := &Run{Artifacts: []viz.Artifact{
		{Kind: viz.KindHistogram, Label: "age"},
		{Kind: viz.KindBoxplot, Label: "age"},
		{Kind: viz.KindHeatmap, Label: "Correlation"},
		{Kind: viz.KindTimeseries, Label: "signup_date & age"},
	}}
	v := newResultsView(run)
	if len(v.Distributions) != 2 || len(v.Relationships) != 1 || len(v.TimeSeries) != 1 {
		t.Fatalf("grouping = %d/%d/%d, want 2/1/1",
			len(v.Distributions), len(v.Relationships), len(v.TimeSeries))
	}
	if v.TimeSeries[0].Index != 3 {
		t.Errorf("timeseries index = %d, want 3", v.TimeSeries[0].Index)
	}
}

package web

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/KaramelBytes/autoviz/internal/classify"
	"github.com/KaramelBytes/autoviz/internal/dataset"
	"github.com/KaramelBytes/autoviz/internal/logging"
	"github.com/KaramelBytes/autoviz/internal/report"
	"github.com/KaramelBytes/autoviz/internal/viz"
)

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	renderTemplate(w, indexTmpl, http.StatusOK, indexView{})
}

func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	maxBytes := int64(s.cfg.MaxUploadMB) << 20
	r.Body = http.MaxBytesReader(w, r.Body, maxBytes)

	file, header, err := r.FormFile("dataset")
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			msg := fmt.Sprintf("File is too large: the upload limit is %d MB.", s.cfg.MaxUploadMB)
			renderTemplate(w, indexTmpl, http.StatusRequestEntityTooLarge, indexView{Error: msg})
			return
		}
		renderTemplate(w, indexTmpl, http.StatusBadRequest, indexView{Error: "Please choose a file to upload."})
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		renderTemplate(w, indexTmpl, http.StatusBadRequest, indexView{Error: fmt.Sprintf("error reading upload: %v", err)})
		return
	}

	ds, err := dataset.Load(header.Filename, data)
	if err != nil {
		renderTemplate(w, indexTmpl, http.StatusUnprocessableEntity, indexView{Error: err.Error()})
		return
	}

	c := classify.Classify(ds)
	res := viz.Generate(ds, c, viz.Options{SampleSeed: s.cfg.SampleSeed}, nil)

	run := &Run{
		Dataset:         filepath.Base(header.Filename),
		Rows:            ds.NumRows(),
		Cols:            ds.NumColumns(),
		Header:          ds.Columns,
		Preview:         ds.Head(5),
		NumericCols:     c.Numeric,
		CategoricalCols: c.Categorical,
		DatetimeCols:    c.Datetime,
		Summary:         classify.Markdown(ds, c),
		Artifacts:       res.Artifacts,
		Skipped:         res.Skipped,
		Total:           res.Total,
	}
	id := s.store.Put(run)

	logging.FromContext(r.Context()).Info("run complete",
		"run", id,
		"dataset", run.Dataset,
		"plots", len(run.Artifacts),
		"skipped", len(run.Skipped),
	)

	http.Redirect(w, r, "/run/"+id, http.StatusSeeOther)
}

func (s *Server) handleResults(w http.ResponseWriter, r *http.Request) {
	run, ok := s.store.Get(chi.URLParam(r, "runID"))
	if !ok {
		http.NotFound(w, r)
		return
	}
	renderTemplate(w, resultsTmpl, http.StatusOK, newResultsView(run))
}

func (s *Server) handlePlot(w http.ResponseWriter, r *http.Request) {
	run, ok := s.store.Get(chi.URLParam(r, "runID"))
	if !ok {
		http.NotFound(w, r)
		return
	}
	idx, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil || idx < 0 || idx >= len(run.Artifacts) {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	_, _ = w.Write(run.Artifacts[idx].PNG)
}

func (s *Server) handleDownloadZip(w http.ResponseWriter, r *http.Request) {
	run, ok := s.store.Get(chi.URLParam(r, "runID"))
	if !ok {
		http.NotFound(w, r)
		return
	}
	data, err := report.Zip(run.Artifacts)
	if err != nil {
		http.Error(w, "error building zip archive", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", report.ZipMIME)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", report.ZipFileName))
	_, _ = w.Write(data)
}

func (s *Server) handleDownloadHTML(w http.ResponseWriter, r *http.Request) {
	run, ok := s.store.Get(chi.URLParam(r, "runID"))
	if !ok {
		http.NotFound(w, r)
		return
	}
	data, err := report.HTML(run.Artifacts)
	if err != nil {
		http.Error(w, "error building html report", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", report.HTMLMIME)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", report.HTMLFileName))
	_, _ = w.Write(data)
}

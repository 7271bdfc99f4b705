// Package report serializes a plot collection into downloadable
// bundles: a ZIP of PNGs and a self-contained HTML document.
package report

import (
	"archive/zip"
	"bytes"
	"fmt"
	"strings"

	"github.com/KaramelBytes/autoviz/internal/viz"
)

// Download names and MIME types for the two bundle formats.
const (
	ZipFileName  = "autoviz_report.zip"
	ZipMIME      = "application/zip"
	HTMLFileName = "autoviz_report.html"
	HTMLMIME     = "text/html"
)

// Zip packs every artifact into a ZIP archive, one PNG per plot, named
// plot_{index}_{kind}_{label}.png with a 1-based index in collection
// order. Read-only over the artifacts.
func Zip(artifacts []viz.Artifact) ([]byte, error) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for i, a := range artifacts {
		name := EntryName(i+1, a)
		w, err := zw.Create(name)
		if err != nil {
			return nil, fmt.Errorf("create zip entry %s: %w", name, err)
		}
		if _, err := w.Write(a.PNG); err != nil {
			return nil, fmt.Errorf("write zip entry %s: %w", name, err)
		}
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("close zip: %w", err)
	}
	return buf.Bytes(), nil
}

// EntryName builds the archive file name for the index-th artifact
// (1-based). The index prefix keeps names unique even when labels
// collide.
func EntryName(index int, a viz.Artifact) string {
	label := strings.ReplaceAll(a.Label, " ", "_")
	return fmt.Sprintf("plot_%d_%s_%s.png", index, a.Kind, label)
}

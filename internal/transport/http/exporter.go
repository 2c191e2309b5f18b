package httptransport

import (
	"archive/zip"
	"bytes"
	"log/slog"
	"net/http"

	"steward/internal/export"
	"steward/pkg/platform/httputil"
)

// Exporter bundles every family's listing into one archive. Sources run
// concurrently; one failing source fails the whole download.
type Exporter struct {
	sources map[string]export.Source
	logger  *slog.Logger
}

func NewExporter(sources map[string]export.Source, logger *slog.Logger) *Exporter {
	return &Exporter{sources: sources, logger: logger}
}

func (e *Exporter) handleExportAll(w http.ResponseWriter, r *http.Request) {
	format := export.Format(r.URL.Query().Get("format"))
	if format == "" {
		format = export.FormatCSV
	}
	conv, err := export.NewConverter(format)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	files, err := export.ConvertAll(r.Context(), conv, e.sources)
	if err != nil {
		if e.logger != nil {
			e.logger.ErrorContext(r.Context(), "export failed", "error", err)
		}
		httputil.WriteError(w, err)
		return
	}

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for name, data := range files {
		f, err := zw.Create(name + "." + conv.FileExtension())
		if err == nil {
			_, err = f.Write(data)
		}
		if err != nil {
			httputil.WriteError(w, err)
			return
		}
	}
	if err := zw.Close(); err != nil {
		httputil.WriteError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/zip")
	w.Header().Set("Content-Disposition", `attachment; filename="export.zip"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}

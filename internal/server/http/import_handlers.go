package httpserver

import (
	"net/http"
	"os"
	"path/filepath"

	"github.com/helixir/music-catalog-service/internal/csvimport"
	"github.com/helixir/music-catalog-service/internal/importer"
)

// runImportRequest is the JSON request body for starting a CSV import.
// Without a layout, every layout file present in the CSV directory is
// imported.
type runImportRequest struct {
	Layout string `json:"layout,omitempty"`
}

type runImportResponse struct {
	Results []*importer.Result `json:"results"`
}

// runImport handles POST /imports. Imports run under a database advisory lock
// so only one runs at a time; a concurrent request gets a 409.
func (s *Server) runImport(w http.ResponseWriter, r *http.Request) {
	var req runImportRequest
	if r.ContentLength != 0 {
		if !decodeBody(w, r, &req) {
			return
		}
	}

	var layouts []csvimport.Layout
	if req.Layout != "" {
		layout, err := csvimport.ParseLayout(req.Layout)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		layouts = []csvimport.Layout{layout}
	}

	ctx := r.Context()

	acquired, err := s.db.TryAcquireImportLock(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to acquire import lock")
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	if !acquired {
		writeError(w, http.StatusConflict, "an import is already running")
		return
	}
	defer func() {
		if err := s.db.ReleaseImportLock(ctx); err != nil {
			s.logger.Error().Err(err).Msg("failed to release import lock")
		}
	}()

	var results []*importer.Result
	if len(layouts) == 0 {
		results, err = s.importer.ImportDir(ctx, s.csvDir)
	} else {
		var result *importer.Result
		path := filepath.Join(s.csvDir, layouts[0].FileName())
		result, err = s.importer.ImportFile(ctx, layouts[0], path)
		if result != nil {
			results = append(results, result)
		}
	}
	if err != nil {
		if os.IsNotExist(err) {
			writeError(w, http.StatusNotFound, "CSV file for layout not found")
			return
		}
		s.logger.Error().Err(err).Msg("import run failed")
		writeError(w, http.StatusInternalServerError, "import failed")
		return
	}

	writeJSON(w, http.StatusOK, runImportResponse{Results: results})
}

// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/notafinal/notafinal/internal/adapters/csvfile"
	"github.com/notafinal/notafinal/internal/domain/model"
)

// uploadFieldName is the multipart form field carrying the CSV file.
const uploadFieldName = "csvFile"

// UploadDependencies defines the interface for batch processing.
type UploadDependencies interface {
	ProcessBatch(ctx context.Context, header []string, rows []model.RawRow) (model.BatchResult, model.ScoreSummary)
}

// UploadHandler handles CSV upload requests.
type UploadHandler struct {
	deps     UploadDependencies
	maxBytes int64
}

// NewUploadHandler creates a new upload handler.
func NewUploadHandler(deps UploadDependencies, maxBytes int64) *UploadHandler {
	return &UploadHandler{deps: deps, maxBytes: maxBytes}
}

// batchInfo mirrors the ingestion statistics of one processed file.
type batchInfo struct {
	TotalRows   int `json:"total_rows"`
	ValidRows   int `json:"valid_rows"`
	InvalidRows int `json:"invalid_rows"`
}

// uploadResponse is the success shape for POST /api/upload.
type uploadResponse struct {
	BatchID string               `json:"batch_id"`
	Results []model.ScoredRecord `json:"results"`
	Info    batchInfo            `json:"info"`
	Summary model.ScoreSummary   `json:"summary"`
}

// HandleUpload handles POST /api/upload requests: one multipart CSV file in,
// scored records plus ingestion statistics out. A batch with zero valid
// records is reported as a client error.
func (h *UploadHandler) HandleUpload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxBytes)

	file, header, err := r.FormFile(uploadFieldName)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, "file_too_large",
				fmt.Errorf("%w (%d bytes)", ErrFileTooLarge, tooLarge.Limit))
			return
		}
		writeError(w, http.StatusBadRequest, "missing_file", ErrMissingFile)
		return
	}
	defer func() {
		_ = file.Close()
	}()

	if ext := strings.ToLower(filepath.Ext(header.Filename)); ext != ".csv" {
		writeError(w, http.StatusBadRequest, "not_csv", ErrNotCSV)
		return
	}

	table, err := csvfile.Decode(file)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_csv", fmt.Errorf("%w: %w", ErrBadRequest, err))
		return
	}

	result, summary := h.deps.ProcessBatch(r.Context(), table.Header, table.Rows)
	if result.ValidRows == 0 {
		writeError(w, http.StatusBadRequest, "no_valid_records", ErrNoValidRecords)
		return
	}

	writeJSON(w, http.StatusOK, uploadResponse{
		BatchID: uuid.New().String(),
		Results: result.Records,
		Info: batchInfo{
			TotalRows:   result.TotalRows,
			ValidRows:   result.ValidRows,
			InvalidRows: result.InvalidRows,
		},
		Summary: summary,
	})
}

package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/Priyuuuuu/smartdata-standardization/adapters/report"
	"github.com/Priyuuuuu/smartdata-standardization/domain/clean"
	"github.com/Priyuuuuu/smartdata-standardization/domain/core"
	"github.com/Priyuuuuu/smartdata-standardization/domain/dataset"
	apperrors "github.com/Priyuuuuu/smartdata-standardization/internal/errors"
)

// DatasetSummary is the list/status view of a stored dataset
type DatasetSummary struct {
	ID               string         `json:"id"`
	DisplayName      string         `json:"display_name"`
	OriginalFilename string         `json:"original_filename"`
	FileSize         int64          `json:"file_size"`
	RowCount         int            `json:"row_count"`
	ColumnCount      int            `json:"column_count"`
	Status           dataset.Status `json:"status"`
	ErrorMessage     string         `json:"error_message,omitempty"`
	CreatedAt        core.Timestamp `json:"created_at"`
	UpdatedAt        core.Timestamp `json:"updated_at"`
}

func summarize(rec *dataset.Record) DatasetSummary {
	return DatasetSummary{
		ID:               rec.ID.String(),
		DisplayName:      rec.DisplayName,
		OriginalFilename: rec.OriginalFilename,
		FileSize:         rec.FileSize,
		RowCount:         rec.RowCount,
		ColumnCount:      rec.ColumnCount,
		Status:           rec.Status,
		ErrorMessage:     rec.ErrorMessage,
		CreatedAt:        rec.CreatedAt,
		UpdatedAt:        rec.UpdatedAt,
	}
}

// handleUpload accepts a multipart dataset upload and starts profiling
func (a *App) handleUpload(w http.ResponseWriter, r *http.Request) {
	if a.maxUploadBytes > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, a.maxUploadBytes)
	}

	file, header, err := r.FormFile("dataset")
	if err != nil {
		a.respondError(w, apperrors.InvalidInput("no file uploaded; expected multipart field 'dataset'"))
		return
	}
	defer file.Close()

	if a.maxUploadBytes > 0 && header.Size > a.maxUploadBytes {
		a.respondError(w, apperrors.InvalidInput(fmt.Sprintf(
			"file size %d bytes exceeds the %d byte limit", header.Size, a.maxUploadBytes)))
		return
	}

	rec, err := a.service.Upload(r.Context(), file, header.Filename)
	if err != nil {
		a.respondError(w, err)
		return
	}

	a.respondJSON(w, http.StatusAccepted, summarize(rec))
}

// handleList returns stored datasets, newest first
func (a *App) handleList(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))

	records, err := a.service.List(r.Context(), limit, offset)
	if err != nil {
		a.respondError(w, err)
		return
	}

	summaries := make([]DatasetSummary, 0, len(records))
	for _, rec := range records {
		summaries = append(summaries, summarize(rec))
	}
	a.respondJSON(w, http.StatusOK, summaries)
}

// handleGet returns one dataset record
func (a *App) handleGet(w http.ResponseWriter, r *http.Request) {
	id, err := datasetID(r)
	if err != nil {
		a.respondError(w, err)
		return
	}

	rec, err := a.service.Get(r.Context(), id)
	if err != nil {
		a.respondError(w, err)
		return
	}
	a.respondJSON(w, http.StatusOK, summarize(rec))
}

// handleDelete removes a dataset record and its stored file
func (a *App) handleDelete(w http.ResponseWriter, r *http.Request) {
	id, err := datasetID(r)
	if err != nil {
		a.respondError(w, err)
		return
	}

	if err := a.service.Delete(r.Context(), id); err != nil {
		a.respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleProfile returns the computed profile, 404 until ready
func (a *App) handleProfile(w http.ResponseWriter, r *http.Request) {
	id, err := datasetID(r)
	if err != nil {
		a.respondError(w, err)
		return
	}

	prof, err := a.service.Profile(r.Context(), id)
	if err != nil {
		a.respondError(w, err)
		return
	}
	a.respondJSON(w, http.StatusOK, prof)
}

// handleSuggestions returns cleaning suggestions for a profiled dataset
func (a *App) handleSuggestions(w http.ResponseWriter, r *http.Request) {
	id, err := datasetID(r)
	if err != nil {
		a.respondError(w, err)
		return
	}

	suggestions, err := a.service.Suggestions(r.Context(), id)
	if err != nil {
		a.respondError(w, err)
		return
	}
	if suggestions == nil {
		suggestions = []clean.Suggestion{}
	}
	a.respondJSON(w, http.StatusOK, suggestions)
}

// CleanRequest carries the suggestions the caller chose to apply
type CleanRequest struct {
	Suggestions []clean.Suggestion `json:"suggestions"`
}

// handleClean applies selected suggestions and returns the cleaned result
func (a *App) handleClean(w http.ResponseWriter, r *http.Request) {
	id, err := datasetID(r)
	if err != nil {
		a.respondError(w, err)
		return
	}

	var req CleanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.respondError(w, apperrors.InvalidInput("invalid clean request body"))
		return
	}

	result, err := a.service.Clean(r.Context(), id, req.Suggestions)
	if err != nil {
		a.respondError(w, err)
		return
	}
	a.respondJSON(w, http.StatusOK, result)
}

// AskRequest carries a natural-language question about the dataset
type AskRequest struct {
	Question string `json:"question"`
}

// AskResponse carries the generated answer
type AskResponse struct {
	Answer string `json:"answer"`
}

// handleAsk answers a question about the dataset
func (a *App) handleAsk(w http.ResponseWriter, r *http.Request) {
	id, err := datasetID(r)
	if err != nil {
		a.respondError(w, err)
		return
	}

	var req AskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Question == "" {
		a.respondError(w, apperrors.InvalidInput("request body must carry a question"))
		return
	}

	answer, err := a.service.Ask(r.Context(), id, req.Question)
	if err != nil {
		a.respondError(w, err)
		return
	}
	a.respondJSON(w, http.StatusOK, AskResponse{Answer: answer})
}

// handleExport streams the stored dataset as a CSV attachment
func (a *App) handleExport(w http.ResponseWriter, r *http.Request) {
	id, err := datasetID(r)
	if err != nil {
		a.respondError(w, err)
		return
	}

	var buf bytes.Buffer
	filename, err := a.service.Export(r.Context(), id, &buf)
	if err != nil {
		a.respondError(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	buf.WriteTo(w)
}

// handleReport renders the profile report, HTML by default and raw
// Markdown with ?format=markdown
func (a *App) handleReport(w http.ResponseWriter, r *http.Request) {
	id, err := datasetID(r)
	if err != nil {
		a.respondError(w, err)
		return
	}

	md, err := a.service.Report(r.Context(), id)
	if err != nil {
		a.respondError(w, err)
		return
	}

	switch r.URL.Query().Get("format") {
	case "markdown", "md":
		w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
		w.Write([]byte(md))
	default:
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write(report.ToHTML(md))
	}
}

// handleCharts returns the dimension/measure partition and histograms
func (a *App) handleCharts(w http.ResponseWriter, r *http.Request) {
	id, err := datasetID(r)
	if err != nil {
		a.respondError(w, err)
		return
	}

	data, err := a.service.Charts(r.Context(), id)
	if err != nil {
		a.respondError(w, err)
		return
	}
	a.respondJSON(w, http.StatusOK, data)
}

func datasetID(r *http.Request) (core.DatasetID, error) {
	id, err := core.ParseDatasetID(chi.URLParam(r, "id"))
	if err != nil {
		return "", apperrors.InvalidInput("invalid dataset id")
	}
	return id, nil
}

func (a *App) respondJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		a.logger.Error("failed to encode response: %v", err)
	}
}

// respondError maps domain errors to HTTP status codes and renders the
// JSON error payload
func (a *App) respondError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case core.IsNotFoundError(err) || errors.Is(err, core.ErrProfileNotReady):
		status = http.StatusNotFound
	case errors.Is(err, core.ErrUnsupportedInput) || errors.Is(err, core.ErrEmptyDataset):
		status = http.StatusBadRequest
	case errors.Is(err, core.ErrDatasetFailed):
		status = http.StatusConflict
	default:
		switch apperrors.GetCode(err) {
		case apperrors.CodeInvalidInput, apperrors.CodeValidationError, apperrors.CodeParseError:
			status = http.StatusBadRequest
		}
	}

	if status == http.StatusInternalServerError {
		a.logger.Error("request failed: %v", err)
	}
	a.respondJSON(w, status, map[string]string{"error": err.Error()})
}

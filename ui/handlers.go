package ui

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"lipidflow/adapters/tabular"
	"lipidflow/app"
	"lipidflow/domain/core"
	"lipidflow/domain/run"
	"lipidflow/internal/errors"
	"lipidflow/internal/report"
)

const maxUploadBytes = 64 << 20 // 64MB across both tables

func (a *App) handleHealthz(w http.ResponseWriter, r *http.Request) {
	a.respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleAnalyze runs the whole pipeline for one pair of uploaded tables and
// returns the run record with fold-change profiles.
func (a *App) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		a.respondError(w, http.StatusBadRequest, errors.InvalidInput("invalid multipart form"))
		return
	}

	transcriptomeFile, transcriptomeHeader, err := r.FormFile("transcriptome")
	if err != nil {
		a.respondError(w, http.StatusBadRequest, errors.InvalidInput("transcriptome file is required"))
		return
	}
	defer transcriptomeFile.Close()

	lipidFile, lipidHeader, err := r.FormFile("lipids")
	if err != nil {
		a.respondError(w, http.StatusBadRequest, errors.InvalidInput("lipids file is required"))
		return
	}
	defer lipidFile.Close()

	params, err := a.paramsFromForm(r)
	if err != nil {
		a.respondError(w, http.StatusBadRequest, errors.InvalidInput(err.Error()))
		return
	}

	result, err := a.service.Analyze(r.Context(), app.AnalysisRequest{
		Transcriptome: tabular.NewStreamReader("transcriptome", transcriptomeHeader.Filename, transcriptomeFile),
		Lipids:        tabular.NewStreamReader("lipids", lipidHeader.Filename, lipidFile),
		Params:        params,
	})
	if err != nil {
		a.respondError(w, statusForError(err), err)
		return
	}

	a.respondJSON(w, http.StatusOK, result)
}

// paramsFromForm applies per-request overrides on top of the configured
// defaults: six column/prefix strings, two thresholds, one count.
func (a *App) paramsFromForm(r *http.Request) (run.Params, error) {
	p := a.defaults

	stringFields := map[string]*string{
		"gene_id_column":     &p.GeneIDColumn,
		"lipid_id_column":    &p.LipidIDColumn,
		"beige_gene_prefix":  &p.BeigeGenePrefix,
		"white_gene_prefix":  &p.WhiteGenePrefix,
		"beige_lipid_prefix": &p.BeigeLipidPrefix,
		"white_lipid_prefix": &p.WhiteLipidPrefix,
	}
	for field, dst := range stringFields {
		if v := r.FormValue(field); v != "" {
			*dst = v
		}
	}

	if v := r.FormValue("gene_fc_threshold"); v != "" {
		parsed, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return p, fmt.Errorf("gene_fc_threshold must be numeric, got %q", v)
		}
		p.GeneFCThreshold = parsed
	}
	if v := r.FormValue("lipid_fc_threshold"); v != "" {
		parsed, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return p, fmt.Errorf("lipid_fc_threshold must be numeric, got %q", v)
		}
		p.LipidFCThreshold = parsed
	}
	if v := r.FormValue("top_genes_count"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil {
			return p, fmt.Errorf("top_genes_count must be an integer, got %q", v)
		}
		p.TopGenesCount = parsed
	}
	return p, nil
}

func (a *App) handleListRuns(w http.ResponseWriter, r *http.Request) {
	limit := 20
	if v := r.URL.Query().Get("limit"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			limit = parsed
		}
	}
	offset := 0
	if v := r.URL.Query().Get("offset"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed >= 0 {
			offset = parsed
		}
	}

	records, err := a.runs.List(r.Context(), limit, offset)
	if err != nil {
		a.respondError(w, http.StatusInternalServerError, errors.DatabaseError("failed to list runs"))
		return
	}
	if records == nil {
		records = []*run.Record{}
	}
	a.respondJSON(w, http.StatusOK, records)
}

func (a *App) handleGetRun(w http.ResponseWriter, r *http.Request) {
	rec, ok := a.fetchRun(w, r)
	if !ok {
		return
	}
	a.respondJSON(w, http.StatusOK, rec)
}

func (a *App) handleFlowsCSV(w http.ResponseWriter, r *http.Request) {
	rec, ok := a.fetchRun(w, r)
	if !ok {
		return
	}
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="sankey_flows.csv"`)
	if err := report.WriteFlowsCSV(w, rec.Graph.Edges); err != nil {
		http.Error(w, "failed to write flows CSV", http.StatusInternalServerError)
	}
}

func (a *App) handleSummaryCSV(w http.ResponseWriter, r *http.Request) {
	rec, ok := a.fetchRun(w, r)
	if !ok {
		return
	}
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="sankey_summary.csv"`)
	if err := report.WriteSummaryCSV(w, rec.Summary); err != nil {
		http.Error(w, "failed to write summary CSV", http.StatusInternalServerError)
	}
}

func (a *App) handleSankeyHTML(w http.ResponseWriter, r *http.Request) {
	rec, ok := a.fetchRun(w, r)
	if !ok {
		return
	}
	page, err := report.SankeyHTML(rec)
	if err != nil {
		a.respondError(w, http.StatusInternalServerError, errors.InternalError("failed to render sankey"))
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(page)
}

func (a *App) handleReportHTML(w http.ResponseWriter, r *http.Request) {
	rec, ok := a.fetchRun(w, r)
	if !ok {
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(report.ReportHTML(rec))
}

// fetchRun loads the run addressed by the URL, writing the error response
// itself when the run cannot be served.
func (a *App) fetchRun(w http.ResponseWriter, r *http.Request) (*run.Record, bool) {
	id, err := core.ParseRunID(chi.URLParam(r, "id"))
	if err != nil {
		a.respondError(w, http.StatusBadRequest, errors.InvalidInput(err.Error()))
		return nil, false
	}
	rec, err := a.runs.GetByID(r.Context(), id)
	if err != nil {
		if core.IsNotFoundError(err) {
			a.respondError(w, http.StatusNotFound, errors.NotFound("run"))
			return nil, false
		}
		a.respondError(w, http.StatusInternalServerError, errors.DatabaseError("failed to load run"))
		return nil, false
	}
	return rec, true
}

// statusForError maps pipeline error codes onto HTTP statuses.
func statusForError(err error) int {
	switch errors.GetCode(err) {
	case errors.CodeMissingColumn, errors.CodeEmptyTable, errors.CodeInvalidInput:
		return http.StatusBadRequest
	case errors.CodeNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

type errorResponse struct {
	Error errorBody `json:"error"`
}

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// respondJSON encodes to a buffer first so an encode failure can still
// produce a 500 instead of trailing garbage after a committed status.
func (a *App) respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(payload); err != nil {
		http.Error(w, "failed to encode response", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(buf.Bytes())
}

func (a *App) respondError(w http.ResponseWriter, status int, err error) {
	a.respondJSON(w, status, errorResponse{Error: errorBody{
		Code:    errors.GetCode(err),
		Message: err.Error(),
	}})
}

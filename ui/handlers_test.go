package ui

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lipidflow/adapters/memory"
	"lipidflow/app"
	"lipidflow/domain/run"
	"lipidflow/ports"
)

const geneCSV = `SampleID,Hannah_Beige_1,Hannah_White_1
Class,x,y
G1,2,6
`

const lipidCSV = `Metabolite,Beige_1,White_1
Label,a,b
PC 16:0,10,1
`

func newTestApp() (*App, ports.RunRepository) {
	repo := memory.NewRunRepository()
	service := app.NewAnalysisService(repo)
	return NewApp(service, repo, run.DefaultParams()), repo
}

func multipartBody(t *testing.T, files map[string]string, fields map[string]string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for field, content := range files {
		part, err := w.CreateFormFile(field, field+".csv")
		require.NoError(t, err)
		_, err = io.Copy(part, strings.NewReader(content))
		require.NoError(t, err)
	}
	for field, value := range fields {
		require.NoError(t, w.WriteField(field, value))
	}
	require.NoError(t, w.Close())
	return &buf, w.FormDataContentType()
}

func TestHandleHealthz(t *testing.T) {
	a, _ := newTestApp()

	rec := httptest.NewRecorder()
	a.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"ok"`)
}

func TestHandleAnalyze(t *testing.T) {
	a, _ := newTestApp()

	body, contentType := multipartBody(t,
		map[string]string{"transcriptome": geneCSV, "lipids": lipidCSV},
		map[string]string{"gene_fc_threshold": "1.0", "lipid_fc_threshold": "0.8"},
	)
	req := httptest.NewRequest(http.MethodPost, "/api/analyze", body)
	req.Header.Set("Content-Type", contentType)

	rec := httptest.NewRecorder()
	a.Router().ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var result app.AnalysisResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.Equal(t, 1, result.Run.Summary.SignificantGenes)
	assert.Equal(t, 1, result.Run.Summary.SignificantLipids)
	assert.Len(t, result.Run.Graph.Edges, 2)
	assert.Equal(t, 1.0, result.Run.Params.GeneFCThreshold)
}

func TestHandleAnalyze_MissingFile(t *testing.T) {
	a, _ := newTestApp()

	body, contentType := multipartBody(t, map[string]string{"transcriptome": geneCSV}, nil)
	req := httptest.NewRequest(http.MethodPost, "/api/analyze", body)
	req.Header.Set("Content-Type", contentType)

	rec := httptest.NewRecorder()
	a.Router().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "lipids file is required")
}

func TestHandleAnalyze_MissingColumnIsBadRequest(t *testing.T) {
	a, _ := newTestApp()

	body, contentType := multipartBody(t,
		map[string]string{"transcriptome": geneCSV, "lipids": lipidCSV},
		map[string]string{"gene_id_column": "GeneSymbol"},
	)
	req := httptest.NewRequest(http.MethodPost, "/api/analyze", body)
	req.Header.Set("Content-Type", contentType)

	rec := httptest.NewRecorder()
	a.Router().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "MISSING_COLUMN")
	assert.Contains(t, rec.Body.String(), "GeneSymbol")
}

func TestHandleAnalyze_EmptyTableIsBadRequest(t *testing.T) {
	a, _ := newTestApp()

	body, contentType := multipartBody(t,
		map[string]string{"transcriptome": geneCSV, "lipids": ""},
		nil,
	)
	req := httptest.NewRequest(http.MethodPost, "/api/analyze", body)
	req.Header.Set("Content-Type", contentType)

	rec := httptest.NewRecorder()
	a.Router().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "EMPTY_TABLE")
}

func TestHandleAnalyze_InvalidThreshold(t *testing.T) {
	a, _ := newTestApp()

	body, contentType := multipartBody(t,
		map[string]string{"transcriptome": geneCSV, "lipids": lipidCSV},
		map[string]string{"gene_fc_threshold": "high"},
	)
	req := httptest.NewRequest(http.MethodPost, "/api/analyze", body)
	req.Header.Set("Content-Type", contentType)

	rec := httptest.NewRecorder()
	a.Router().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "gene_fc_threshold")
}

func analyzeOnce(t *testing.T, a *App) string {
	t.Helper()
	body, contentType := multipartBody(t,
		map[string]string{"transcriptome": geneCSV, "lipids": lipidCSV},
		map[string]string{"gene_fc_threshold": "1.0"},
	)
	req := httptest.NewRequest(http.MethodPost, "/api/analyze", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	a.Router().ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var result app.AnalysisResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	return result.Run.ID.String()
}

func TestHandleListRuns(t *testing.T) {
	a, _ := newTestApp()
	id := analyzeOnce(t, a)

	rec := httptest.NewRecorder()
	a.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/runs", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var records []*run.Record
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &records))
	require.Len(t, records, 1)
	assert.Equal(t, id, records[0].ID.String())
}

func TestHandleGetRun_NotFound(t *testing.T) {
	a, _ := newTestApp()

	rec := httptest.NewRecorder()
	a.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/runs/nope", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "NOT_FOUND")
}

func TestRunExports(t *testing.T) {
	a, _ := newTestApp()
	id := analyzeOnce(t, a)

	t.Run("flows csv", func(t *testing.T) {
		rec := httptest.NewRecorder()
		a.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, fmt.Sprintf("/api/runs/%s/flows.csv", id), nil))
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "text/csv", rec.Header().Get("Content-Type"))
		assert.True(t, strings.HasPrefix(rec.Body.String(), "source,target,value\n"))
		assert.Contains(t, rec.Body.String(), "PC,Downregulated_White,1")
	})

	t.Run("summary csv", func(t *testing.T) {
		rec := httptest.NewRecorder()
		a.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, fmt.Sprintf("/api/runs/%s/summary.csv", id), nil))
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "Significant_Genes,1")
	})

	t.Run("sankey html", func(t *testing.T) {
		rec := httptest.NewRecorder()
		a.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, fmt.Sprintf("/api/runs/%s/sankey.html", id), nil))
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "sankey")
		assert.Contains(t, rec.Body.String(), `"G1"`)
	})

	t.Run("report html", func(t *testing.T) {
		rec := httptest.NewRecorder()
		a.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, fmt.Sprintf("/api/runs/%s/report.html", id), nil))
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "Lipid-Gene Flow Analysis")
	})
}

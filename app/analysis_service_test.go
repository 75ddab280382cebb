package app

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lipidflow/adapters/memory"
	"lipidflow/adapters/tabular"
	"lipidflow/domain/flow"
	"lipidflow/domain/run"
	"lipidflow/internal/errors"
)

const geneCSV = `SampleID,Hannah_Beige_1,Hannah_Beige_2,Hannah_White_1,Hannah_White_2
Class,protein_coding,protein_coding,protein_coding,protein_coding
G1,2,2,6,6
G2,10,10,10,10
`

const lipidCSV = `Metabolite,Beige_1,Beige_2,White_1,White_2
Label,area,area,area,area
PC 16:0,10,10,1,1
TG 54:2,5,5,5,5
`

func testParams() run.Params {
	p := run.DefaultParams()
	p.GeneFCThreshold = 1.0
	p.LipidFCThreshold = 0.8
	p.TopGenesCount = 40
	return p
}

func analyze(t *testing.T, genes, lipids string, params run.Params) *AnalysisResult {
	t.Helper()
	service := NewAnalysisService(memory.NewRunRepository())
	result, err := service.Analyze(context.Background(), AnalysisRequest{
		Transcriptome: tabular.NewStreamReader("transcriptome", "genes.csv", strings.NewReader(genes)),
		Lipids:        tabular.NewStreamReader("lipids", "lipids.csv", strings.NewReader(lipids)),
		Params:        params,
	})
	require.NoError(t, err)
	return result
}

func TestAnalyze_EndToEnd(t *testing.T) {
	result := analyze(t, geneCSV, lipidCSV, testParams())
	rec := result.Run

	// Cleaning drops the header-artifact rows.
	assert.Equal(t, 2, rec.Genes.RowCount)
	assert.Equal(t, 2, rec.Lipids.RowCount)
	assert.Equal(t, 2, rec.Genes.GroupACount)
	assert.Equal(t, 2, rec.Genes.GroupBCount)

	// G1: log2(7/3) ≈ 1.222 passes the 1.0 threshold; G2 does not.
	// PC 16:0: log2(2/11) ≈ -2.46 passes the 0.8 threshold; TG 54:2 does not.
	assert.Equal(t, 1, rec.Summary.SignificantGenes)
	assert.Equal(t, 1, rec.Summary.GenesUpWhite)
	assert.Equal(t, 0, rec.Summary.GenesDownWhite)
	assert.Equal(t, 1, rec.Summary.SignificantLipids)
	assert.Equal(t, 1, rec.Summary.LipidsDownWhite)

	require.Len(t, rec.Graph.Edges, 2)
	assert.Equal(t, flow.Edge{Source: "PC", Target: "Downregulated_White", Value: 1}, rec.Graph.Edges[0])
	assert.Equal(t, "Upregulated_White", rec.Graph.Edges[1].Source)
	assert.Equal(t, "G1", rec.Graph.Edges[1].Target)
	assert.InDelta(t, 1.222, rec.Graph.Edges[1].Value, 0.001)

	colors := map[string]flow.ColorCategory{}
	for _, n := range rec.Graph.Nodes {
		colors[n.Label] = n.Color
	}
	assert.Equal(t, flow.ColorOrange, colors["PC"])
	assert.Equal(t, flow.ColorCoolBlue, colors["Downregulated_White"])
	assert.Equal(t, flow.ColorWarmRed, colors["Upregulated_White"])
	assert.Equal(t, flow.ColorNeutralGray, colors["G1"])

	// Profiles cover every defined fold change, not just the significant ones.
	assert.Equal(t, 2, result.GeneProfile.Count)
	assert.Equal(t, 2, result.LipidProfile.Count)
}

func TestAnalyze_ArchivesRun(t *testing.T) {
	repo := memory.NewRunRepository()
	service := NewAnalysisService(repo)

	result, err := service.Analyze(context.Background(), AnalysisRequest{
		Transcriptome: tabular.NewStreamReader("transcriptome", "genes.csv", strings.NewReader(geneCSV)),
		Lipids:        tabular.NewStreamReader("lipids", "lipids.csv", strings.NewReader(lipidCSV)),
		Params:        testParams(),
	})
	require.NoError(t, err)

	stored, err := repo.GetByID(context.Background(), result.Run.ID)
	require.NoError(t, err)
	assert.Equal(t, result.Run.Summary, stored.Summary)
}

func TestAnalyze_MissingIdentifierColumn(t *testing.T) {
	service := NewAnalysisService(memory.NewRunRepository())
	params := testParams()
	params.GeneIDColumn = "GeneSymbol"

	_, err := service.Analyze(context.Background(), AnalysisRequest{
		Transcriptome: tabular.NewStreamReader("transcriptome", "genes.csv", strings.NewReader(geneCSV)),
		Lipids:        tabular.NewStreamReader("lipids", "lipids.csv", strings.NewReader(lipidCSV)),
		Params:        params,
	})
	require.Error(t, err)
	assert.Equal(t, errors.CodeMissingColumn, errors.GetCode(err))
	assert.Contains(t, err.Error(), "GeneSymbol")
}

func TestAnalyze_EmptyTable(t *testing.T) {
	service := NewAnalysisService(memory.NewRunRepository())

	_, err := service.Analyze(context.Background(), AnalysisRequest{
		Transcriptome: tabular.NewStreamReader("transcriptome", "genes.csv", strings.NewReader("")),
		Lipids:        tabular.NewStreamReader("lipids", "lipids.csv", strings.NewReader(lipidCSV)),
		Params:        testParams(),
	})
	require.Error(t, err)
	assert.Equal(t, errors.CodeEmptyTable, errors.GetCode(err))
}

func TestAnalyze_InvalidParams(t *testing.T) {
	service := NewAnalysisService(memory.NewRunRepository())
	params := testParams()
	params.TopGenesCount = -1

	_, err := service.Analyze(context.Background(), AnalysisRequest{Params: params})
	require.Error(t, err)
	assert.Equal(t, errors.CodeInvalidInput, errors.GetCode(err))
}

func TestAnalyze_PrefixMatchingNothingIsNotFatal(t *testing.T) {
	params := testParams()
	params.BeigeGenePrefix = "NoSuchPrefix_"

	result := analyze(t, geneCSV, lipidCSV, params)

	// Every gene mean for group A is undefined, so no gene is significant,
	// but the run still completes with reduced counts.
	assert.Equal(t, 0, result.Run.Genes.GroupACount)
	assert.Equal(t, 0, result.Run.Summary.SignificantGenes)
	assert.Equal(t, 1, result.Run.Summary.SignificantLipids)
}

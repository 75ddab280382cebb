// Package app wires the four pipeline stages into one synchronous analysis
// run: load and clean both tables, compute fold changes, select significant
// and top-ranked entities, and build the flow graph.
package app

import (
	"context"
	"log"

	"golang.org/x/sync/errgroup"

	"lipidflow/domain/abundance"
	"lipidflow/domain/core"
	"lipidflow/domain/flow"
	"lipidflow/domain/run"
	"lipidflow/domain/table"
	"lipidflow/internal/errors"
	"lipidflow/internal/profiling"
	"lipidflow/ports"
)

// Header-artifact identifier values dropped by the loader. These appear when
// an exported sheet repeats annotation rows under the data header.
var (
	geneHeaderArtifacts  = []string{"Class"}
	lipidHeaderArtifacts = []string{"Label", "Metabolite"}
)

// AnalysisService runs the lipid-gene flow pipeline and archives the result.
type AnalysisService struct {
	runs ports.RunRepository
}

// NewAnalysisService creates an analysis service backed by the given archive.
func NewAnalysisService(runs ports.RunRepository) *AnalysisService {
	return &AnalysisService{runs: runs}
}

// AnalysisRequest carries the two raw tables and the run parameters.
type AnalysisRequest struct {
	Transcriptome ports.TableReader
	Lipids        ports.TableReader
	Params        run.Params
}

// AnalysisResult is the complete outcome of one run.
type AnalysisResult struct {
	Run          *run.Record            `json:"run"`
	GeneProfile  profiling.Distribution `json:"gene_fc_profile"`
	LipidProfile profiling.Distribution `json:"lipid_fc_profile"`
}

// Analyze executes the whole pipeline for one pair of tables. Reading the two
// inputs happens concurrently; everything after the tables are in memory is a
// single synchronous pass.
func (s *AnalysisService) Analyze(ctx context.Context, req AnalysisRequest) (*AnalysisResult, error) {
	if err := req.Params.Validate(); err != nil {
		return nil, errors.WithCode(errors.CodeInvalidInput, err)
	}

	var transcriptome, lipids *table.Table
	var g errgroup.Group
	g.Go(func() error {
		var err error
		transcriptome, err = req.Transcriptome.Read()
		return errors.Wrap(err, "failed to read transcriptome table")
	})
	g.Go(func() error {
		var err error
		lipids, err = req.Lipids.Read()
		return errors.Wrap(err, "failed to read lipid table")
	})
	if err := g.Wait(); err != nil {
		if core.IsEmptyTableError(err) {
			return nil, errors.WithCode(errors.CodeEmptyTable, err)
		}
		return nil, errors.WithCode(errors.CodeInvalidInput, err)
	}

	return s.analyzeTables(ctx, transcriptome, lipids, req.Params)
}

// AnalyzeTables runs the pipeline on already-parsed tables.
func (s *AnalysisService) AnalyzeTables(ctx context.Context, transcriptome, lipids *table.Table, params run.Params) (*AnalysisResult, error) {
	if err := params.Validate(); err != nil {
		return nil, errors.WithCode(errors.CodeInvalidInput, err)
	}
	return s.analyzeTables(ctx, transcriptome, lipids, params)
}

func (s *AnalysisService) analyzeTables(ctx context.Context, transcriptome, lipids *table.Table, params run.Params) (*AnalysisResult, error) {
	// Stage 1: clean and identify condition columns.
	cleanGenes, err := transcriptome.Clean(params.GeneIDColumn, geneHeaderArtifacts)
	if err != nil {
		return nil, errors.WithCode(errors.CodeMissingColumn, err)
	}
	cleanLipids, err := lipids.Clean(params.LipidIDColumn, lipidHeaderArtifacts)
	if err != nil {
		return nil, errors.WithCode(errors.CodeMissingColumn, err)
	}

	geneOverview := cleanGenes.Summarize(params.BeigeGenePrefix, params.WhiteGenePrefix)
	lipidOverview := cleanLipids.Summarize(params.BeigeLipidPrefix, params.WhiteLipidPrefix)
	log.Printf("[AnalysisService] Cleaned tables - genes: %d rows (%d+%d sample cols), lipids: %d rows (%d+%d sample cols)",
		geneOverview.RowCount, geneOverview.GroupACount, geneOverview.GroupBCount,
		lipidOverview.RowCount, lipidOverview.GroupACount, lipidOverview.GroupBCount)

	// Stage 2: fold changes. Beige is group A (denominator), white group B.
	geneRecords := abundance.Compute(cleanGenes, abundance.ComputeOptions{
		IDColumn:   params.GeneIDColumn,
		GroupACols: geneOverview.GroupACols,
		GroupBCols: geneOverview.GroupBCols,
	})
	lipidRecords := abundance.Compute(cleanLipids, abundance.ComputeOptions{
		IDColumn:   params.LipidIDColumn,
		GroupACols: lipidOverview.GroupACols,
		GroupBCols: lipidOverview.GroupBCols,
		WithClass:  true,
	})

	// Stage 3: significance and ranking.
	sigGenes := abundance.FilterSignificant(geneRecords, params.GeneFCThreshold)
	sigLipids := abundance.FilterSignificant(lipidRecords, params.LipidFCThreshold)
	topGenes := abundance.SelectTopSplit(sigGenes, params.TopGenesCount)

	// Stage 4: flow graph over all significant lipids and the top gene split.
	graph := flow.Build(sigLipids, topGenes)
	summary := abundance.Summarize(geneRecords, sigGenes, lipidRecords, sigLipids)

	rec := run.NewRecord(params, geneOverview, lipidOverview, summary, graph)
	if err := s.runs.Save(ctx, rec); err != nil {
		return nil, errors.WithCode(errors.CodeDatabaseError, errors.Wrap(err, "failed to archive run"))
	}
	log.Printf("[AnalysisService] Run %s archived - %d nodes, %d flows, %d/%d significant genes/lipids",
		rec.ID, len(graph.Nodes), len(graph.Edges), summary.SignificantGenes, summary.SignificantLipids)

	return &AnalysisResult{
		Run:          rec,
		GeneProfile:  profiling.Analyze(foldChanges(geneRecords)),
		LipidProfile: profiling.Analyze(foldChanges(lipidRecords)),
	}, nil
}

func foldChanges(records []abundance.Record) []float64 {
	values := make([]float64, len(records))
	for i, r := range records {
		values[i] = r.Log2FC
	}
	return values
}

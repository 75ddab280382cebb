// Package run defines the persisted record of one analysis run and the
// immutable parameter set a run executes under.
package run

import (
	"fmt"

	"lipidflow/domain/abundance"
	"lipidflow/domain/core"
	"lipidflow/domain/flow"
	"lipidflow/domain/table"
)

// Params is the complete configuration for one pipeline run. It is passed by
// value into the service entry point; nothing reads configuration ambiently.
type Params struct {
	GeneIDColumn  string `json:"gene_id_column"`
	LipidIDColumn string `json:"lipid_id_column"`

	BeigeGenePrefix  string `json:"beige_gene_prefix"`
	WhiteGenePrefix  string `json:"white_gene_prefix"`
	BeigeLipidPrefix string `json:"beige_lipid_prefix"`
	WhiteLipidPrefix string `json:"white_lipid_prefix"`

	GeneFCThreshold  float64 `json:"gene_fc_threshold"`
	LipidFCThreshold float64 `json:"lipid_fc_threshold"`
	TopGenesCount    int     `json:"top_genes_count"`
}

// DefaultParams mirrors the conventional defaults for the white-vs-beige
// adipocyte comparison.
func DefaultParams() Params {
	return Params{
		GeneIDColumn:     "SampleID",
		LipidIDColumn:    "Metabolite",
		BeigeGenePrefix:  "Hannah_Beige_",
		WhiteGenePrefix:  "Hannah_White_",
		BeigeLipidPrefix: "Beige_",
		WhiteLipidPrefix: "White_",
		GeneFCThreshold:  1.5,
		LipidFCThreshold: 0.8,
		TopGenesCount:    40,
	}
}

// Validate rejects parameter sets the pipeline cannot run under.
func (p Params) Validate() error {
	if p.GeneIDColumn == "" {
		return core.NewValidationError("gene_id_column", "cannot be empty")
	}
	if p.LipidIDColumn == "" {
		return core.NewValidationError("lipid_id_column", "cannot be empty")
	}
	if p.GeneFCThreshold < 0 {
		return core.NewValidationError("gene_fc_threshold", "must be non-negative")
	}
	if p.LipidFCThreshold < 0 {
		return core.NewValidationError("lipid_fc_threshold", "must be non-negative")
	}
	if p.TopGenesCount < 0 {
		return core.NewValidationError("top_genes_count", fmt.Sprintf("must be non-negative, got %d", p.TopGenesCount))
	}
	return nil
}

// Record is the archived outcome of one analysis run.
type Record struct {
	ID        core.RunID        `json:"id"`
	CreatedAt core.Timestamp    `json:"created_at"`
	Params    Params            `json:"params"`
	Genes     table.Overview    `json:"gene_overview"`
	Lipids    table.Overview    `json:"lipid_overview"`
	Summary   abundance.Summary `json:"summary"`
	Graph     *flow.Graph       `json:"graph"`
}

// NewRecord assembles a run record with a fresh time-ordered ID.
func NewRecord(params Params, genes, lipids table.Overview, summary abundance.Summary, graph *flow.Graph) *Record {
	return &Record{
		ID:        core.RunID(core.NewID()),
		CreatedAt: core.Now(),
		Params:    params,
		Genes:     genes,
		Lipids:    lipids,
		Summary:   summary,
		Graph:     graph,
	}
}

package abundance

// Summary counts the outcome of both datasets' fold-change and significance
// stages. It is a pure side-computation: the flow graph never reads it.
type Summary struct {
	TotalGenes        int `json:"Total_Genes"`
	SignificantGenes  int `json:"Significant_Genes"`
	GenesUpWhite      int `json:"Genes_Up_White"`
	GenesDownWhite    int `json:"Genes_Down_White"`
	TotalLipids       int `json:"Total_Lipids"`
	SignificantLipids int `json:"Significant_Lipids"`
	LipidsUpWhite     int `json:"Lipids_Up_White"`
	LipidsDownWhite   int `json:"Lipids_Down_White"`
}

// Summarize counts totals and significant up/down splits. Up and down use
// strict comparisons against zero among the significant records.
func Summarize(genes, sigGenes, lipids, sigLipids []Record) Summary {
	s := Summary{
		TotalGenes:        len(genes),
		SignificantGenes:  len(sigGenes),
		TotalLipids:       len(lipids),
		SignificantLipids: len(sigLipids),
	}
	for _, r := range sigGenes {
		if r.Log2FC > 0 {
			s.GenesUpWhite++
		} else if r.Log2FC < 0 {
			s.GenesDownWhite++
		}
	}
	for _, r := range sigLipids {
		if r.Log2FC > 0 {
			s.LipidsUpWhite++
		} else if r.Log2FC < 0 {
			s.LipidsDownWhite++
		}
	}
	return s
}

// SummaryRow is one (metric, count) pair of the summary export.
type SummaryRow struct {
	Metric string
	Count  int
}

// Rows returns the summary as ordered (metric, count) pairs, in the fixed
// export order.
func (s Summary) Rows() []SummaryRow {
	return []SummaryRow{
		{"Total_Genes", s.TotalGenes},
		{"Significant_Genes", s.SignificantGenes},
		{"Genes_Up_White", s.GenesUpWhite},
		{"Genes_Down_White", s.GenesDownWhite},
		{"Total_Lipids", s.TotalLipids},
		{"Significant_Lipids", s.SignificantLipids},
		{"Lipids_Up_White", s.LipidsUpWhite},
		{"Lipids_Down_White", s.LipidsDownWhite},
	}
}

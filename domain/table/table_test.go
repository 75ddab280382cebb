package table

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lipidflow/domain/core"
)

func sampleTable() *Table {
	return &Table{
		Name:    "transcriptome",
		Headers: []string{"SampleID", "Hannah_Beige_1", "Hannah_Beige_2", "Hannah_White_1", "Notes"},
		Rows: []Row{
			{"SampleID": "Class", "Hannah_Beige_1": "x", "Hannah_Beige_2": "y", "Hannah_White_1": "z", "Notes": ""},
			{"SampleID": "G1", "Hannah_Beige_1": "2", "Hannah_Beige_2": "2", "Hannah_White_1": "6", "Notes": "ok"},
			{"SampleID": "", "Hannah_Beige_1": "1", "Hannah_Beige_2": "1", "Hannah_White_1": "1", "Notes": ""},
			{"SampleID": "G2", "Hannah_Beige_1": "5", "Hannah_Beige_2": "5", "Hannah_White_1": "5", "Notes": ""},
		},
	}
}

func TestClean_DropsArtifactAndBlankRows(t *testing.T) {
	cleaned, err := sampleTable().Clean("SampleID", []string{"Class"})
	require.NoError(t, err)

	require.Len(t, cleaned.Rows, 2)
	assert.Equal(t, "G1", cleaned.Rows[0]["SampleID"])
	assert.Equal(t, "G2", cleaned.Rows[1]["SampleID"])
	for _, row := range cleaned.Rows {
		assert.NotEmpty(t, row["SampleID"])
		assert.NotEqual(t, "Class", row["SampleID"])
	}
}

func TestClean_ArtifactMatchIsCaseSensitive(t *testing.T) {
	tbl := &Table{
		Headers: []string{"Metabolite"},
		Rows: []Row{
			{"Metabolite": "label"},
			{"Metabolite": "Label"},
		},
	}
	cleaned, err := tbl.Clean("Metabolite", []string{"Label"})
	require.NoError(t, err)
	require.Len(t, cleaned.Rows, 1)
	assert.Equal(t, "label", cleaned.Rows[0]["Metabolite"])
}

func TestClean_MissingIdentifierColumn(t *testing.T) {
	_, err := sampleTable().Clean("Metabolite", nil)
	require.Error(t, err)
	assert.True(t, core.IsMissingColumnError(err))
	assert.Contains(t, err.Error(), "Metabolite")
}

func TestColumnsWithPrefix(t *testing.T) {
	tbl := sampleTable()

	assert.Equal(t, []string{"Hannah_Beige_1", "Hannah_Beige_2"}, tbl.ColumnsWithPrefix("Hannah_Beige_"))
	assert.Equal(t, []string{"Hannah_White_1"}, tbl.ColumnsWithPrefix("Hannah_White_"))

	// Exact, case-sensitive prefix match; no match is not an error.
	assert.Empty(t, tbl.ColumnsWithPrefix("hannah_beige_"))
	assert.Empty(t, tbl.ColumnsWithPrefix("Beige_"))
}

func TestSummarize(t *testing.T) {
	cleaned, err := sampleTable().Clean("SampleID", []string{"Class"})
	require.NoError(t, err)

	overview := cleaned.Summarize("Hannah_Beige_", "Hannah_White_")
	assert.Equal(t, 2, overview.RowCount)
	assert.Equal(t, 2, overview.GroupACount)
	assert.Equal(t, 1, overview.GroupBCount)
	assert.Equal(t, "Hannah_Beige_", overview.GroupAPrefix)
}

package scheduler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/energen/genquote/internal/model"
)

func TestBracketForClampsAtEnds(t *testing.T) {
	table := DefaultLaborHourTable()

	idx, b := table.BracketFor(0.5)
	assert.Equal(t, 0, idx)
	assert.Equal(t, "2-14", b.Label)

	idx, b = table.BracketFor(9000)
	assert.Equal(t, 9, idx)
	assert.Equal(t, "1501+", b.Label)
}

func TestBracketForBoundaries(t *testing.T) {
	table := DefaultLaborHourTable()

	cases := map[float64]string{
		14:   "2-14",
		15:   "15-30",
		150:  "35-150",
		151:  "151-250",
		500:  "401-500",
		501:  "501-670",
		1500: "1051-1500",
		1501: "1501+",
	}
	for kw, want := range cases {
		_, b := table.BracketFor(kw)
		assert.Equal(t, want, b.Label, "kw=%v", kw)
	}
}

func TestFluidAnalysisHasNoFieldHours(t *testing.T) {
	table := DefaultLaborHourTable()
	for _, kw := range []float64{5, 100, 450, 2000} {
		assert.Zero(t, table.Hours(model.ServiceFluidAnalysis, kw))
	}
}

func TestUnknownServiceUsesDefaultHours(t *testing.T) {
	table := DefaultLaborHourTable()
	assert.Equal(t, 2.0, table.Hours(model.ServiceCustom, 300))
	assert.Equal(t, 2.0, table.Hours(model.ServiceCode("Z"), 300))
}

func TestNewLaborHourTableRejectsShortRows(t *testing.T) {
	_, err := NewLaborHourTable(map[model.ServiceCode][]float64{
		model.ServiceInspection: {1, 2, 3},
	}, 2)
	require.Error(t, err)
}

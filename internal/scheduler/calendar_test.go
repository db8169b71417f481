package scheduler

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildQuartersOctoberStart(t *testing.T) {
	start := time.Date(2025, time.October, 4, 0, 0, 0, 0, time.UTC)
	quarters := buildQuarters(start)
	require.Len(t, quarters, 4)

	assert.Equal(t, "NOV Qtr 1", quarters[0].Label)
	assert.Equal(t, "FEB Qtr 2", quarters[1].Label)
	assert.Equal(t, "MAY Qtr 3", quarters[2].Label)
	assert.Equal(t, "AUG Qtr 4", quarters[3].Label)
}

func TestBuildQuartersYearWrap(t *testing.T) {
	start := time.Date(2025, time.December, 20, 0, 0, 0, 0, time.UTC)
	quarters := buildQuarters(start)
	require.Len(t, quarters, 4)

	assert.Equal(t, "JAN Qtr 1", quarters[0].Label)
	assert.Equal(t, "APR Qtr 2", quarters[1].Label)
	assert.Equal(t, "JUL Qtr 3", quarters[2].Label)
	assert.Equal(t, "OCT Qtr 4", quarters[3].Label)
}

func TestBuildQuartersAllStartMonths(t *testing.T) {
	for m := 1; m <= 12; m++ {
		start := time.Date(2025, time.Month(m), 15, 0, 0, 0, 0, time.UTC)
		quarters := buildQuarters(start)
		require.Len(t, quarters, 4)

		first := (m % 12) + 1
		for i, q := range quarters {
			want := ((first+3*i-1)%12 + 1)
			assert.Equal(t, time.Month(want), q.Month, "start month %d quarter %d", m, i+1)
			assert.Equal(t, i+1, q.Index)
		}
	}
}

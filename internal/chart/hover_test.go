package chart

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gdchart/internal/dataprocessing"
	apperrors "gdchart/internal/errors"
	"gdchart/pkg/contracts/domain"
)

func TestHoverBands(t *testing.T) {
	records := []domain.MatchRecord{
		{Date: date(2013, 8, 1), GoalDifference: 2, CumulativeGoalDifference: 2},
		{Date: date(2013, 8, 10), GoalDifference: -1, CumulativeGoalDifference: 1},
		{Date: date(2013, 8, 20), GoalDifference: 1, CumulativeGoalDifference: 2},
	}
	loc := dataprocessing.NewLocator(records)
	x := NewTimeScale(date(2013, 8, 1), date(2013, 8, 20), 0, 190)

	bands, err := HoverBands(loc, x, 190)
	require.NoError(t, err)
	require.Len(t, bands, 3)

	assert.Equal(t, 0.0, bands[0].X0)
	assert.Equal(t, 190.0, bands[len(bands)-1].X1)
	for i := 1; i < len(bands); i++ {
		assert.Equal(t, bands[i-1].X1, bands[i].X0, "bands are contiguous")
		assert.Greater(t, bands[i].Index, bands[i-1].Index)
	}

	assert.InDelta(t, 45, bands[0].X1, 1)
	assert.InDelta(t, 145, bands[1].X1, 1)
	assert.Equal(t, date(2013, 8, 10), bands[1].Record.Date)

	for px := 0; px < 190; px++ {
		want, err := loc.NearestIndex(x.Invert(float64(px)))
		require.NoError(t, err)
		for _, b := range bands {
			if float64(px) >= b.X0 && float64(px) < b.X1 {
				assert.Equal(t, want, b.Index, "pixel %d", px)
			}
		}
	}
}

func TestHoverBands_Empty(t *testing.T) {
	_, err := HoverBands(dataprocessing.NewLocator(nil), NewTimeScale(date(2013, 8, 1), date(2013, 8, 2), 0, 10), 10)
	assert.ErrorIs(t, err, apperrors.ErrNoRecords)
}

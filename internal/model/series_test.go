package model

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func flat(v float64) []float64 {
	out := make([]float64, HoursPerDay)
	for i := range out {
		out[i] = v
	}
	return out
}

func TestSeriesFromSlices(t *testing.T) {
	s, err := SeriesFromSlices(flat(1), flat(0.5), flat(2), flat(3))
	require.NoError(t, err)
	assert.Equal(t, 0.5, s.NetLoadKW(7))

	t.Run("wrong length", func(t *testing.T) {
		_, err := SeriesFromSlices(flat(1)[:23], flat(0), flat(2), flat(3))
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrInvalidSeries))
		assert.Contains(t, err.Error(), "load_kw has 23 values")
	})

	t.Run("negative value", func(t *testing.T) {
		pv := flat(0)
		pv[3] = -1
		_, err := SeriesFromSlices(flat(1), pv, flat(2), flat(3))
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrInvalidSeries))
		assert.Contains(t, err.Error(), "pv_kw[3]")
	})

	t.Run("nan value", func(t *testing.T) {
		sell := flat(1)
		sell[0] = math.NaN()
		_, err := SeriesFromSlices(flat(1), flat(0), flat(2), sell)
		assert.True(t, errors.Is(err, ErrInvalidSeries))
	})
}

func TestDaySeriesValidateNil(t *testing.T) {
	var s *DaySeries
	assert.True(t, errors.Is(s.Validate(), ErrInvalidSeries))
}

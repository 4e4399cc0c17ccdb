package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePreset(t *testing.T) {
	tests := []struct {
		in   string
		want Preset
	}{
		{"", PresetNone},
		{"none", PresetNone},
		{"None", PresetNone},
		{"1d", Preset1D},
		{" 5D ", Preset5D},
		{"1m", Preset1M},
		{"6M", Preset6M},
		{"1y", Preset1Y},
		{"5Y", Preset5Y},
		{"max", PresetMax},
	}
	for _, tt := range tests {
		got, err := ParsePreset(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}

	_, err := ParsePreset("2W")
	assert.ErrorIs(t, err, ErrUnknownPreset)
}

func TestParseDate(t *testing.T) {
	got, err := ParseDate("2024-03-10")
	require.NoError(t, err)
	assert.Equal(t, Date(2024, time.March, 10), got)

	_, err = ParseDate("10/03/2024")
	assert.Error(t, err)
}

func TestPriceSeriesCloses(t *testing.T) {
	var empty *PriceSeries
	assert.Equal(t, 0, empty.Len())
	assert.Nil(t, empty.Closes())

	s := &PriceSeries{Bars: []OHLCV{{Close: 1}, {Close: 2.5}}}
	assert.Equal(t, 2, s.Len())
	assert.Equal(t, []float64{1, 2.5}, s.Closes())
}

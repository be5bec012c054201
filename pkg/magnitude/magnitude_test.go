package magnitude

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatSize(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "0 b"},
		{1, "1 b"},
		{999, "999 b"},
		{1000, "1 KB"},
		{1500, "1.5 KB"},
		{1520, "1.5 KB"},
		{1560, "1.6 KB"},
		{300_000, "300 KB"},
		{1_000_000, "1 MB"},
		{2_000_000, "2 MB"},
		{2_500_000, "2.5 MB"},
		{5_000_000, "5 MB"},
		{2_500_000_000_000, "2.5 TB"},
		{3_000_000_000_000_000, "3000 TB"},
		{999.96, "1 KB"},
		{999_960, "1 MB"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatSize(tt.in), "FormatSize(%v)", tt.in)
	}
}

func TestFormatSizeTiered(t *testing.T) {
	f := Formatter{Precision: PrecisionTiered}
	tests := []struct {
		in   float64
		want string
	}{
		{0, "0 b"},
		{999, "999 b"},
		{1400, "1 KB"},
		{1500, "2 KB"},
		{12_000_000, "12 MB"},
		{7_490_000_000, "7 GB"},
		{2_500_000_000_000, "2.5 TB"},
		{4_000_000_000_000, "4 TB"},
		{999_600, "1 MB"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, f.Size(tt.in), "Size(%v)", tt.in)
	}
}

func TestFormatCount(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "0"},
		{240, "240"},
		{999, "999"},
		{12.34, "12.3"},
		{1000, "1.0K"},
		{1500, "1.5K"},
		{2000, "2.0K"},
		{2_000_000, "2.0M"},
		{2_300_000, "2.3M"},
		{999_960, "1.0M"},
		{7_000_000_000, "7.0B"},
		{12_340_000_000_000, "12340.0B"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatCount(tt.in), "FormatCount(%v)", tt.in)
	}
}

func TestCountIgnoresPrecisionPolicy(t *testing.T) {
	f := Formatter{Precision: PrecisionTiered}
	assert.Equal(t, "1.5K", f.Count(1500))
}

func TestZeroValueFormatter(t *testing.T) {
	var f Formatter
	assert.Equal(t, FormatSize(2_500_000), f.Size(2_500_000))
}

func TestFormatIdempotent(t *testing.T) {
	for _, q := range []float64{0, 42, 1234, 987_654_321} {
		assert.Equal(t, FormatSize(q), FormatSize(q))
		assert.Equal(t, FormatCount(q), FormatCount(q))
	}
}

func TestFormatInvalidPanics(t *testing.T) {
	assert.Panics(t, func() { FormatSize(-1) })
	assert.Panics(t, func() { FormatCount(math.NaN()) })
	assert.Panics(t, func() { FormatSize(math.Inf(1)) })
}

func TestPrecisionValid(t *testing.T) {
	assert.True(t, PrecisionTenths.Valid())
	assert.True(t, PrecisionTiered.Valid())
	assert.False(t, Precision("half").Valid())
}

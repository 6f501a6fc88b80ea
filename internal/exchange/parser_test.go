package exchange

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xtrntr/stockbroker/internal/models"
)

func TestParseLine(t *testing.T) {
	tr, err := ParseLine("  buy AAPL 1000.00 100\n")
	require.NoError(t, err)
	assert.Equal(t, models.Buy, tr.Action)
	assert.Equal(t, "AAPL", tr.Stock)
	assert.Equal(t, "1000.00", tr.Price.StringFixed(2))
	assert.Equal(t, int64(100), tr.Volume)
}

func TestParseLine_Errors(t *testing.T) {
	tests := []struct {
		name   string
		line   string
		expect error
	}{
		{name: "Empty", line: "", expect: ErrFormat},
		{name: "TooFew", line: "buy AAPL 1000.00", expect: ErrFormat},
		{name: "TooMany", line: "buy AAPL 1000.00 100 now", expect: ErrFormat},
		{name: "BadPrice", line: "buy AAPL abc 100", expect: ErrParse},
		{name: "BadVolume", line: "buy AAPL 1000.00 1.5", expect: ErrParse},
		{name: "WordVolume", line: "buy AAPL 1000.00 ten", expect: ErrParse},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseLine(tt.line)
			assert.ErrorIs(t, err, tt.expect)
		})
	}
}

func TestParseLine_DoesNotValidate(t *testing.T) {
	tr, err := ParseLine("hold googl 0.001 -5")
	require.NoError(t, err)
	assert.Equal(t, models.Action("hold"), tr.Action)
	assert.Equal(t, "googl", tr.Stock)
	assert.Equal(t, int64(-5), tr.Volume)
}

func TestParseLine_VolumeOutOfRange(t *testing.T) {
	tr, err := ParseLine("buy AAPL 10.00 99999999999999999999")
	require.NoError(t, err)
	assert.Equal(t, int64(math.MaxInt64), tr.Volume)

	tr, err = ParseLine("buy AAPL 10.00 -99999999999999999999")
	require.NoError(t, err)
	assert.Equal(t, int64(math.MinInt64), tr.Volume)
}

func TestParseLine_TooLong(t *testing.T) {
	_, err := ParseLine("buy AAPL 10.00 " + strings.Repeat("1", MaxLineLength))
	assert.ErrorIs(t, err, ErrFormat)
}

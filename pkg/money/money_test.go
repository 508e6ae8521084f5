package money

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	d, err := Parse("100000.50")
	require.NoError(t, err)
	assert.True(t, d.Equal(decimal.RequireFromString("100000.50")))

	d, err = Parse("  250  ")
	require.NoError(t, err)
	assert.True(t, d.Equal(decimal.NewFromInt(250)))
}

func TestParseRejectsNonNumeric(t *testing.T) {
	for _, raw := range []string{"", "  ", "abc", "12,5", "1.2.3"} {
		_, err := Parse(raw)
		require.Error(t, err, "input %q", raw)
		assert.True(t, errors.Is(err, ErrInvalidAmount), "input %q", raw)
	}
}

func TestParseOrZero(t *testing.T) {
	assert.True(t, ParseOrZero("junk").IsZero())
	assert.True(t, ParseOrZero("15").Equal(decimal.NewFromInt(15)))
}

func TestPercent(t *testing.T) {
	got := Percent(decimal.NewFromInt(200000), decimal.NewFromInt(10))
	assert.True(t, got.Equal(decimal.NewFromInt(20000)), "got %s", got)
}

func TestDisplayIsRenderOnly(t *testing.T) {
	d := decimal.RequireFromString("189000")
	assert.Equal(t, float64(189000), Display(d))
}

func TestFormatterLocales(t *testing.T) {
	f, err := NewFormatter("VND")
	require.NoError(t, err)

	amount := decimal.NewFromInt(189000)
	vi := f.Format(amount, "vi-VN")
	en := f.Format(amount, "en-US")
	assert.NotEmpty(t, vi)
	assert.NotEmpty(t, en)
	assert.Contains(t, en, "189,000")

	// unknown locale falls back instead of failing
	assert.NotEmpty(t, f.Format(amount, "??"))
}

func TestVNDHouseCurrency(t *testing.T) {
	out := VND(decimal.NewFromInt(189000))
	assert.NotEmpty(t, out)
	assert.Contains(t, out, "VND")
}

func TestNewFormatterRejectsUnknownCurrency(t *testing.T) {
	_, err := NewFormatter("NOPE")
	require.Error(t, err)
}

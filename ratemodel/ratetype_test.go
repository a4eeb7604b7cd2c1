package ratemodel

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRateTypeOrdinals(t *testing.T) {
	assert.Equal(t, uint8(0), uint8(NoCash))
	assert.Equal(t, uint8(1), uint8(Cash))
	assert.Equal(t, uint8(2), uint8(Card))
	assert.Equal(t, uint8(3), uint8(Online))
	assert.Equal(t, uint8(4), uint8(CbRate))
}

func TestParseRateType(t *testing.T) {
	tests := []struct {
		in   string
		want RateType
	}{
		{"no cash", NoCash},
		{"non cash", NoCash},
		{"non_cash", NoCash},
		{"nocash", NoCash},
		{"NoCash", NoCash},
		{"CASH", Cash},
		{" card ", Card},
		{"Online", Online},
		{"cb", CbRate},
	}
	for _, tt := range tests {
		got, err := ParseRateType(tt.in)
		require.NoError(t, err, "input %q", tt.in)
		assert.Equal(t, tt.want, got, "input %q", tt.in)
	}
}

func TestParseRateTypeUnknown(t *testing.T) {
	_, err := ParseRateType("wire")
	assert.Error(t, err)
}

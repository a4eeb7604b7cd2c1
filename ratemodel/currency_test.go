package ratemodel

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewCurrencyCanonicalises(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"usd", "USD"},
		{" USD ", "USD"},
		{"\tamd\n", "AMD"},
		{"Eur", "EUR"},
		{"RUR", "RUB"},
		{"rur", "RUB"},
		{" rur ", "RUB"},
		{"", ""},
		{"   ", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, NewCurrency(tt.in).String(), "input %q", tt.in)
	}
}

func TestNewCurrencyIdempotent(t *testing.T) {
	for _, s := range []string{"usd", " RUR ", "amd", "GEL", ""} {
		once := NewCurrency(s)
		canonical := NewCurrency(strings.ReplaceAll(strings.ToUpper(strings.TrimSpace(s)), "RUR", "RUB"))
		assert.True(t, once.Equal(canonical), "input %q", s)
		assert.True(t, once.Equal(NewCurrency(once.String())), "input %q", s)
	}
}

func TestCurrencyEmpty(t *testing.T) {
	assert.True(t, Currency{}.IsEmpty())
	assert.True(t, NewCurrency("  ").IsEmpty())
	assert.False(t, Default().IsEmpty())
}

func TestDefaultIsAMD(t *testing.T) {
	assert.Equal(t, "AMD", Default().String())
}

func TestRurNeverSurfaces(t *testing.T) {
	assert.Equal(t, "RUB", RUB().String())
	assert.NotContains(t, NewCurrency("RUR").String(), "RUR")
}

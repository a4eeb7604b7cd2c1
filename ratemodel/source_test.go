package ratemodel

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSourceBankClassification(t *testing.T) {
	for _, src := range []Source{Cb, IdPay, Mir, MOEX, SAS, Avosend, Kwikpay, UnionPay, Unistream} {
		assert.False(t, src.IsBank(), "%s must not classify as a bank", src)
	}
	for _, src := range []Source{Acba, Ameria, Ardshin, Unibank, IdBank, Evoca, Vtb} {
		assert.True(t, src.IsBank(), "%s must classify as a bank", src)
	}
}

func TestSourcePrefix(t *testing.T) {
	assert.Equal(t, "@", Cb.Prefix())
	assert.Equal(t, "*", Acba.Prefix())
	assert.Equal(t, "#", MOEX.Prefix())
	assert.Equal(t, "#", Unistream.Prefix())
}

func TestAllSourcesCovered(t *testing.T) {
	assert.Len(t, AllSources, 27)
	seen := map[Source]bool{}
	for _, src := range AllSources {
		assert.NotEqual(t, "Unknown", src.String())
		assert.False(t, seen[src], "%s appears twice", src)
		seen[src] = true
	}
}

func TestParseSource(t *testing.T) {
	src, ok := ParseSource("acba")
	require.True(t, ok)
	assert.Equal(t, Acba, src)

	src, ok = ParseSource(" MOEX ")
	require.True(t, ok)
	assert.Equal(t, MOEX, src)

	_, ok = ParseSource("nosuchbank")
	assert.False(t, ok)
}

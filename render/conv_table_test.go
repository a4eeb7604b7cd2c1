package render

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amrates/rateengine/ratemodel"
)

func TestConversionTableDefaultVsUSDSingleBank(t *testing.T) {
	got := ConversionTable(ratemodel.Default(), ratemodel.USD(), acbaRates(), ratemodel.NoCash, false)
	assert.Equal(t, "* Acba | 0.0026 | 0 | AMD/USD\n", got)
}

func TestConversionTableInverted(t *testing.T) {
	got := ConversionTable(ratemodel.USD(), ratemodel.Default(), acbaRates(), ratemodel.NoCash, true)
	assert.Equal(t, "* Acba | 390 | 0 | AMD/USD\n", got)
}

func TestConversionTableEmptyCurrencyIsDunno(t *testing.T) {
	assert.Equal(t, Dunno, ConversionTable(ratemodel.Currency{}, ratemodel.USD(), acbaRates(), ratemodel.NoCash, false))
	assert.Equal(t, Dunno, ConversionTable(ratemodel.Default(), ratemodel.Currency{}, acbaRates(), ratemodel.NoCash, false))
}

func TestConversionTableNoPathIsDunno(t *testing.T) {
	assert.Equal(t, Dunno, ConversionTable(ratemodel.Default(), ratemodel.GEL(), acbaRates(), ratemodel.NoCash, false))
}

func twoSourceRates() ratemodel.SourceRates {
	return ratemodel.SourceRates{
		ratemodel.Acba:      {rate("USD", "AMD", ratemodel.NoCash, "384", "390")},
		ratemodel.Unistream: {rate("USD", "AMD", ratemodel.NoCash, "385", "388")},
	}
}

func TestConversionTableDiffSignAndOrdering(t *testing.T) {
	got := ConversionTable(ratemodel.Default(), ratemodel.USD(), twoSourceRates(), ratemodel.NoCash, false)
	lines := strings.Split(strings.TrimRight(got, "\n"), "\n")
	require.Len(t, lines, 2)

	// Unistream's sell is cheaper, so it converts more USD per AMD and
	// sorts first; the best bank row anchors diff at zero and the
	// better-for-user non-bank row reads positive.
	assert.Equal(t, "# Unistream | 0.0026 | 0.51 | AMD/USD", lines[0])
	assert.Equal(t, "* Acba      | 0.0026 |    0 | AMD/USD", lines[1])
}

func sourceOrder(table string) []string {
	var out []string
	for _, line := range strings.Split(strings.TrimRight(table, "\n"), "\n") {
		fields := strings.Fields(line)
		if len(fields) > 1 {
			out = append(out, fields[1])
		}
	}
	return out
}

func TestConversionTableInversionDuality(t *testing.T) {
	rates := twoSourceRates()
	straight := ConversionTable(ratemodel.Default(), ratemodel.USD(), rates, ratemodel.NoCash, false)
	flipped := ConversionTable(ratemodel.USD(), ratemodel.Default(), rates, ratemodel.NoCash, true)

	assert.Equal(t, sourceOrder(straight), sourceOrder(flipped))

	// The reciprocated rates come straight from the same sell sides.
	assert.Contains(t, flipped, "| 388 |")
	assert.Contains(t, flipped, "| 390 |")
}

func TestConversionTableBankPruning(t *testing.T) {
	bankRates := []ratemodel.Rate{
		rate("USD", "AMD", ratemodel.NoCash, "384", "390"),
		rate("EUR", "AMD", ratemodel.NoCash, "425", "437"),
		rate("USD", "EUR", ratemodel.NoCash, "0.9", "0.92"),
	}

	// As a bank, only the direct AMD/USD path survives.
	got := ConversionTable(ratemodel.Default(), ratemodel.USD(),
		ratemodel.SourceRates{ratemodel.Acba: bankRates}, ratemodel.NoCash, false)
	assert.Len(t, sourceOrder(got), 1)
	assert.NotContains(t, got, "AMD/EUR/USD")

	// The same quotes under a non-bank source keep the two-hop path.
	got = ConversionTable(ratemodel.Default(), ratemodel.USD(),
		ratemodel.SourceRates{ratemodel.MOEX: bankRates}, ratemodel.NoCash, false)
	assert.Len(t, sourceOrder(got), 2)
	assert.Contains(t, got, "AMD/EUR/USD")
}

func TestConversionTableUsesCbFallbackEdges(t *testing.T) {
	rates := ratemodel.SourceRates{
		ratemodel.Cb: {rate("USD", "AMD", ratemodel.CbRate, "387.5", "387.5")},
	}
	got := ConversionTable(ratemodel.Default(), ratemodel.USD(), rates, ratemodel.NoCash, false)
	assert.Contains(t, got, "@ Cb")
	assert.Contains(t, got, "AMD/USD")
}

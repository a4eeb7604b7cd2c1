package query

import (
	"strings"

	"github.com/amrates/rateengine/ratemodel"
)

// FixedPair resolves one of the named chat-command shortcuts (usd, rub,
// usdeur, ...) to the (from, to, inverted) triple ConvQuery expects.
// The "cash" suffix only selects the rate type, handled by the caller;
// this table is the same for both.
func FixedPair(name string) (from, to ratemodel.Currency, inverted bool, ok bool) {
	switch strings.ToLower(strings.TrimSuffix(name, "cash")) {
	case "usd":
		return ratemodel.Default(), ratemodel.USD(), false, true
	case "eur":
		return ratemodel.Default(), ratemodel.EUR(), false, true
	case "rub":
		return ratemodel.RUB(), ratemodel.Default(), true, true
	case "gel":
		return ratemodel.Default(), ratemodel.GEL(), false, true
	case "rubusd":
		return ratemodel.RUB(), ratemodel.USD(), false, true
	case "rubeur":
		return ratemodel.RUB(), ratemodel.EUR(), false, true
	case "usdeur":
		return ratemodel.USD(), ratemodel.EUR(), false, true
	default:
		return ratemodel.Currency{}, ratemodel.Currency{}, false, false
	}
}

// ParsePair implements the pair-argument grammar for "conv"/"start":
// "FROM/TO", whitespace-separated "FROM TO", or a single token meaning
// (default, token) with omitted reporting true so the caller can invert.
func ParsePair(s string) (from, to ratemodel.Currency, omitted bool) {
	if f, t, found := strings.Cut(s, "/"); found {
		return ratemodel.NewCurrency(f), ratemodel.NewCurrency(t), false
	}
	fields := strings.Fields(s)
	if len(fields) >= 2 {
		return ratemodel.NewCurrency(fields[0]), ratemodel.NewCurrency(fields[1]), false
	}
	return ratemodel.Default(), ratemodel.NewCurrency(s), true
}

// ParseStartArg implements the "start [ARG]" grammar: ARG is either
// "SRC[:rateType]" or a pair per ParsePair. isSrc reports whether src is a
// known Source; when it is, from/to are zero values and the caller should
// use SrcQuery instead of ConvQuery.
func ParseStartArg(arg string) (src ratemodel.Source, rateType ratemodel.RateType, from, to ratemodel.Currency, omitted, isSrc bool) {
	value := arg
	rateType = ratemodel.NoCash
	if main, param, found := strings.Cut(arg, ":"); found {
		if rt, err := ratemodel.ParseRateType(param); err == nil {
			rateType = rt
		}
		value = main
	}
	if s, found := ratemodel.ParseSource(strings.TrimSpace(value)); found {
		return s, rateType, ratemodel.Currency{}, ratemodel.Currency{}, false, true
	}
	from, to, omitted = ParsePair(value)
	return 0, rateType, from, to, omitted, false
}

package source

import (
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/time/rate"

	"github.com/amrates/rateengine/ratemodel"
)

// AdapterKind names one of the eight wire shapes the 27 providers reduce
// to. Every Source in the registry below resolves to exactly one.
type AdapterKind int

const (
	// KindJSONFeed is a plain JSON document with one object or array of
	// rate rows, each carrying a currency tag, buy and sell.
	KindJSONFeed AdapterKind = iota
	// KindJSONFeedWithCross is KindJSONFeed where the provider quotes
	// every currency against a cross currency (commonly USD) rather
	// than directly against the target, requiring a chained conversion.
	KindJSONFeedWithCross
	// KindCentralBankSOAP is the central bank's XML envelope, fetched
	// over plain HTTP rather than JSON.
	KindCentralBankSOAP
	// KindFormPostScriptWrapped posts form-encoded fields and receives a
	// response body wrapped in a script-call prefix/suffix that must be
	// stripped before the JSON payload inside can be parsed.
	KindFormPostScriptWrapped
	// KindCommissionWrapped derives its rates from another source's raw
	// rates plus a fixed commission percentage; it fetches that source's
	// feed itself rather than having an endpoint of its own.
	KindCommissionWrapped
	// KindDateTemplatedJSON substitutes today's date into the request
	// URL and has no rates published on weekends.
	KindDateTemplatedJSON
	// KindBearerOrderBook authenticates with a bearer token sourced from
	// an environment variable and returns an order-book style payload
	// (best bid/ask) rather than a flat rate list.
	KindBearerOrderBook
	// KindHTMLTable scrapes an HTML exchange-rate table.
	KindHTMLTable
)

func (k AdapterKind) String() string {
	switch k {
	case KindJSONFeed:
		return "json_feed"
	case KindJSONFeedWithCross:
		return "json_feed_with_cross"
	case KindCentralBankSOAP:
		return "central_bank_soap"
	case KindFormPostScriptWrapped:
		return "form_post_script_wrapped"
	case KindCommissionWrapped:
		return "commission_wrapped"
	case KindDateTemplatedJSON:
		return "date_templated_json"
	case KindBearerOrderBook:
		return "bearer_order_book"
	case KindHTMLTable:
		return "html_table"
	default:
		return "unknown"
	}
}

// Config is the one configuration shape every AdapterKind reads from.
// Fields not used by a Source's Kind stay zero.
type Config struct {
	AdapterKind AdapterKind

	// Disabled overrides the registry default of "every source
	// collects"; config loading flips this per-source from the
	// `enabled` TOML key. The zero value keeps a source enabled, so
	// the registry below doesn't repeat `Disabled: false` everywhere.
	Disabled bool

	RatesURL string
	Limit    rate.Limit
	Burst    int

	// KindJSONFeedWithCross
	CrossCurrency ratemodel.Currency

	// KindFormPostScriptWrapped - posts FormFields and strips a wrapper
	// around the JSON payload in the response body. With ScriptMarker
	// set, everything up to and including the marker is dropped
	// (Avosend's trailing "</script>" tag); otherwise ScriptPrefix and
	// ScriptSuffix are trimmed literally (Converse's "callback(...)").
	// SingleConvertRate decodes a single {"convertRate": ...} field
	// instead of the generic jsonFeedResponse shape and emits one
	// one-sided Rate for DeriveFrom->Default.
	FormFields        map[string]string
	ScriptPrefix      string
	ScriptSuffix      string
	ScriptMarker      string
	SingleConvertRate bool
	DeriveFrom        ratemodel.Currency

	// KindCommissionWrapped - derives from BaseSource's rates, fetched
	// through BaseSource's own registry entry. FilterFrom/FilterRateType
	// narrow which of the base rows to derive from (zero value: no
	// filter); OutputRateType retags the derived row (nil: keep the
	// base row's RateType). BuyOnly drops the sell side entirely, for
	// providers that only publish one direction. ExtraSellCommissionPct
	// layers an additional sell-side percentage on top of CommissionPct
	// (the to-RU-card surcharge). BuyCommissionVariantsPct, when set,
	// replaces CommissionPct on the buy side and emits one derived rate
	// per listed percentage (the sell side still uses CommissionPct and
	// is dropped only by BuyOnly); transfer operators quote a different
	// commission per funding channel (from a bank account, from any card).
	BaseSource               ratemodel.Source
	CommissionPct            decimal.Decimal
	ExtraSellCommissionPct   decimal.Decimal
	BuyCommissionVariantsPct []decimal.Decimal
	FilterFrom               ratemodel.Currency
	FilterRateType           *ratemodel.RateType
	OutputRateType           *ratemodel.RateType
	BuyOnly                  bool

	// KindDateTemplatedJSON - RatesURL is a fmt layout consuming a
	// "2006-01-02"-formatted date as its single %s verb. BusinessDayOnly
	// walks the date back over a weekend (Sat -1, Sun -2) instead of
	// substituting today's date directly. When CrossFrom/CrossTo are
	// set, the response is decoded as a flat list of cross-pair rows
	// (trans/base currency + rate) and filtered down to that one pair,
	// rather than the generic jsonFeedResponse shape.
	BusinessDayOnly bool
	CrossFrom       ratemodel.Currency
	CrossTo         ratemodel.Currency

	// KindBearerOrderBook
	BearerEnvVar string
	InstrumentID string
	Nominal      decimal.Decimal

	// KindHTMLTable
	TableSelector string
	RowSelector   string
	CellSelector  string
	CashRowIndex  int // table index (0-based) holding cash rates; -1 if the provider has only one table
}

// Registry maps every Source to the Config its adapter is built from.
// URLs are the default endpoints; the config package overrides them
// per-source from the TOML document.
var Registry = map[ratemodel.Source]Config{
	ratemodel.Cb: {
		AdapterKind: KindCentralBankSOAP,
		RatesURL:    "https://www.cba.am/stat/xml_exchange_rates.asmx/ExRatesRestBank",
		Limit:       rate.Every(defaultInterval),
		Burst:       1,
	},
	ratemodel.Acba: {
		AdapterKind: KindJSONFeed,
		RatesURL:    "https://www.acba.am/api/exchange-rates",
		Limit:       rate.Every(defaultInterval),
		Burst:       1,
	},
	ratemodel.Ameria: {
		AdapterKind: KindJSONFeed,
		RatesURL:    "https://www.ameriabank.am/api/exchange-rates",
		Limit:       rate.Every(defaultInterval),
		Burst:       1,
	},
	ratemodel.Ardshin: {
		AdapterKind: KindJSONFeed,
		RatesURL:    "https://ardshinbank.am/api/exchange-rates",
		Limit:       rate.Every(defaultInterval),
		Burst:       1,
	},
	ratemodel.ArdshInvest: {
		AdapterKind:   KindCommissionWrapped,
		BaseSource:    ratemodel.Ardshin,
		CommissionPct: decimal.NewFromFloat(0.5),
	},
	ratemodel.ArmSwiss: {
		AdapterKind:   KindJSONFeedWithCross,
		RatesURL:      "https://www.armswissbank.am/api/exchange-rates",
		CrossCurrency: ratemodel.USD(),
		Limit:         rate.Every(defaultInterval),
		Burst:         1,
	},
	ratemodel.Evoca: {
		AdapterKind:   KindHTMLTable,
		RatesURL:      "https://evocabank.am/en/exchange-rates",
		TableSelector: ".exchange-table",
		RowSelector:   ".exchange-table__row",
		CellSelector:  ".exchange-table__cell-content",
		CashRowIndex:  0,
		Limit:         rate.Every(defaultInterval),
		Burst:         1,
	},
	ratemodel.Fast: {
		AdapterKind: KindJSONFeed,
		RatesURL:    "https://fastbank.am/api/exchange-rates",
		Limit:       rate.Every(defaultInterval),
		Burst:       1,
	},
	ratemodel.Ineco: {
		AdapterKind: KindJSONFeed,
		RatesURL:    "https://www.inecobank.am/api/exchange-rates",
		Limit:       rate.Every(defaultInterval),
		Burst:       1,
	},
	ratemodel.Kwikpay: {
		AdapterKind:    KindCommissionWrapped,
		BaseSource:     ratemodel.Unibank,
		CommissionPct:  decimal.NewFromFloat(1.5),
		FilterFrom:     ratemodel.RUB(),
		FilterRateType: ratemodel.RateTypePtr(ratemodel.Cash),
		OutputRateType: ratemodel.RateTypePtr(ratemodel.NoCash),
		BuyOnly:        true,
	},
	ratemodel.Mellat: {
		AdapterKind: KindJSONFeed,
		RatesURL:    "https://www.bankmellat.am/api/exchange-rates",
		Limit:       rate.Every(defaultInterval),
		Burst:       1,
	},
	ratemodel.Converse: {
		AdapterKind:  KindFormPostScriptWrapped,
		RatesURL:     "https://conversebank.am/ajax/exchange-rates",
		FormFields:   map[string]string{"lang": "en"},
		ScriptPrefix: "callback(",
		ScriptSuffix: ")",
		Limit:        rate.Every(defaultInterval),
		Burst:        1,
	},
	ratemodel.AEB: {
		AdapterKind: KindJSONFeed,
		RatesURL:    "https://www.aeb.am/api/exchange-rates",
		Limit:       rate.Every(defaultInterval),
		Burst:       1,
	},
	ratemodel.Vtb: {
		AdapterKind: KindJSONFeed,
		RatesURL:    "https://www.vtb.am/api/exchange-rates",
		Limit:       rate.Every(defaultInterval),
		Burst:       1,
	},
	ratemodel.Artsakh: {
		AdapterKind:   KindHTMLTable,
		RatesURL:      "https://www.artsakhbank.am/en/rates",
		TableSelector: ".exchange-rate-table table",
		RowSelector:   "tbody tr",
		CellSelector:  "td",
		CashRowIndex:  0,
		Limit:         rate.Every(defaultInterval),
		Burst:         1,
	},
	ratemodel.Unibank: {
		AdapterKind: KindJSONFeed,
		RatesURL:    "https://unibank.am/api/exchange-rates",
		Limit:       rate.Every(defaultInterval),
		Burst:       1,
	},
	ratemodel.UnionPay: {
		AdapterKind:     KindDateTemplatedJSON,
		RatesURL:        "https://www.unionpayintl.com/api/exchangeratequery?date=%s",
		BusinessDayOnly: true,
		CrossFrom:       ratemodel.USD(),
		CrossTo:         ratemodel.RUB(),
		Limit:           rate.Every(defaultInterval),
		Burst:           1,
	},
	ratemodel.Unistream: {
		AdapterKind: KindCommissionWrapped,
		BaseSource:  ratemodel.Unibank,
		BuyCommissionVariantsPct: []decimal.Decimal{
			decimal.NewFromFloat(1.0), // funded from a bank account
			decimal.NewFromFloat(1.8), // funded from any card
		},
		FilterFrom:     ratemodel.RUB(),
		FilterRateType: ratemodel.RateTypePtr(ratemodel.Cash),
		OutputRateType: ratemodel.RateTypePtr(ratemodel.NoCash),
		BuyOnly:        true,
	},
	ratemodel.Amio: {
		AdapterKind: KindJSONFeed,
		RatesURL:    "https://amiobank.am/api/exchange-rates",
		Limit:       rate.Every(defaultInterval),
		Burst:       1,
	},
	ratemodel.Byblos: {
		AdapterKind: KindJSONFeed,
		RatesURL:    "https://www.byblosbankarmenia.am/api/exchange-rates",
		Limit:       rate.Every(defaultInterval),
		Burst:       1,
	},
	ratemodel.IdBank: {
		AdapterKind: KindJSONFeed,
		RatesURL:    "https://idbank.am/api/exchange-rates",
		Limit:       rate.Every(defaultInterval),
		Burst:       1,
	},
	ratemodel.Ararat: {
		AdapterKind: KindJSONFeed,
		RatesURL:    "https://araratbank.am/api/exchange-rates",
		Limit:       rate.Every(defaultInterval),
		Burst:       1,
	},
	ratemodel.IdPay: {
		AdapterKind:            KindCommissionWrapped,
		BaseSource:             ratemodel.IdBank,
		CommissionPct:          decimal.NewFromFloat(1.0),
		ExtraSellCommissionPct: decimal.NewFromFloat(0.5),
		FilterFrom:             ratemodel.RUB(),
	},
	ratemodel.Mir: {
		AdapterKind:   KindJSONFeedWithCross,
		RatesURL:      "https://www.mironline.ru/api/exchange-rates",
		CrossCurrency: ratemodel.RUB(),
		Limit:         rate.Every(defaultInterval),
		Burst:         1,
	},
	ratemodel.MOEX: {
		AdapterKind:  KindBearerOrderBook,
		RatesURL:     "https://invest-public-api.tinkoff.ru/rest/tinkoff.invest/marketdata/MarketDataService/GetOrderBook",
		BearerEnvVar: "TINKOFF_TOKEN",
		InstrumentID: "RUB000UTSTOM",
		Nominal:      decimal.NewFromInt(1),
		Limit:        rate.Every(defaultInterval),
		Burst:        1,
	},
	ratemodel.SAS: {
		AdapterKind:   KindHTMLTable,
		RatesURL:      "https://www.sasglobal.am/en/exchange-rates",
		TableSelector: ".exchange-table",
		RowSelector:   ".exchange-table__row",
		CellSelector:  ".exchange-table__cell-content",
		CashRowIndex:  0,
		Limit:         rate.Every(defaultInterval),
		Burst:         1,
	},
	ratemodel.Avosend: {
		AdapterKind:       KindFormPostScriptWrapped,
		RatesURL:          "https://avosend.am/api/convert",
		FormFields:        map[string]string{"countryCodeFrom": "RU", "countryCodeTo": "AM", "direction": "send"},
		ScriptMarker:      "</script>",
		SingleConvertRate: true,
		DeriveFrom:        ratemodel.RUB(),
		Limit:             rate.Every(defaultInterval),
		Burst:             1,
	},
}

const defaultInterval = 5 * time.Second

// Enabled reports whether this source should be collected.
func (c Config) Enabled() bool { return !c.Disabled }

// EnabledSources returns every Source whose registry entry is enabled,
// in AllSources order. The collector fans out over exactly this list.
func EnabledSources(registry map[ratemodel.Source]Config) []ratemodel.Source {
	out := make([]ratemodel.Source, 0, len(registry))
	for _, src := range ratemodel.AllSources {
		if cfg, ok := registry[src]; ok && cfg.Enabled() {
			out = append(out, src)
		}
	}
	return out
}

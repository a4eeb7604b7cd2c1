package source

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/amrates/rateengine/ratemodel"
)

// formScriptAdapter posts cfg.FormFields and receives a body wrapped
// around the JSON payload it needs to decode. Two wrapper shapes exist:
// a literal prefix/suffix call wrapper ("callback(" ... ")", trimmed via
// ScriptPrefix/ScriptSuffix), and a trailing script tag marker
// (everything up to and including "</script>" dropped), selected by
// setting cfg.ScriptMarker instead.
//
// cfg.SingleConvertRate switches the payload shape from the generic
// jsonFeedResponse to a single {"convertRate": ...} field, emitting one
// one-sided Rate from cfg.DeriveFrom to the default currency - a
// money-transfer corridor rather than a rate sheet.
type formScriptAdapter struct {
	src ratemodel.Source
	cfg Config
}

func (a *formScriptAdapter) Fetch(ctx context.Context, client *http.Client) ([]ratemodel.Rate, error) {
	form := url.Values{}
	for k, v := range a.cfg.FormFields {
		form.Set(k, v)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.cfg.RatesURL, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, wrapErr(ErrTransport, err, "build request")
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := client.Do(req)
	if err != nil {
		return nil, wrapErr(ErrTransport, err, "POST %s", a.cfg.RatesURL)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, newErr(ErrTransport, "POST %s: status %d", a.cfg.RatesURL, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, wrapErr(ErrTransport, err, "read body from %s", a.cfg.RatesURL)
	}

	payload := a.unwrap(string(body))

	if a.cfg.SingleConvertRate {
		return a.decodeSingleConvertRate(payload)
	}

	var feed jsonFeedResponse
	if err := json.Unmarshal([]byte(payload), &feed); err != nil {
		return nil, wrapErr(ErrDecode, err, "decode script-wrapped JSON from %s", a.cfg.RatesURL)
	}
	return decodeJSONFeedRows(feed, ratemodel.Default())
}

func (a *formScriptAdapter) unwrap(body string) string {
	payload := strings.TrimSpace(body)
	if a.cfg.ScriptMarker != "" {
		if idx := strings.Index(payload, a.cfg.ScriptMarker); idx >= 0 {
			payload = payload[idx+len(a.cfg.ScriptMarker):]
		}
		return strings.TrimSpace(payload)
	}
	payload = strings.TrimPrefix(payload, a.cfg.ScriptPrefix)
	payload = strings.TrimSuffix(payload, a.cfg.ScriptSuffix)
	return payload
}

type convertRateResponse struct {
	ConvertRate decimal.Decimal `json:"convertRate"`
}

func (a *formScriptAdapter) decodeSingleConvertRate(payload string) ([]ratemodel.Rate, error) {
	var resp convertRateResponse
	if err := json.Unmarshal([]byte(payload), &resp); err != nil {
		return nil, wrapErr(ErrDecode, err, "decode convertRate JSON from %s", a.cfg.RatesURL)
	}
	if !resp.ConvertRate.IsPositive() {
		return nil, newErr(ErrNoRates, "%s: convertRate was not positive", a.src)
	}
	return []ratemodel.Rate{{
		From:     a.cfg.DeriveFrom,
		To:       ratemodel.Default(),
		RateType: ratemodel.NoCash,
		Buy:      &resp.ConvertRate,
	}}, nil
}

package source

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/amrates/rateengine/ratemodel"
)

// bearerOrderBookAdapter authenticates with a bearer token read once
// from cfg.BearerEnvVar and immediately scrubbed from the process
// environment, so the token doesn't sit in os.Environ for the life of
// the process. The order book reports price as a units/nano pair rather
// than a plain decimal string; best bid becomes the sell side, best ask
// the buy side, each scaled by the instrument's nominal.
type bearerOrderBookAdapter struct {
	src ratemodel.Source
	cfg Config
}

var (
	tokenCache = map[string]string{}
	tokenMu    sync.Mutex
)

func bearerToken(envVar string) string {
	tokenMu.Lock()
	defer tokenMu.Unlock()
	if tok, ok := tokenCache[envVar]; ok {
		return tok
	}
	tok := os.Getenv(envVar)
	os.Unsetenv(envVar)
	tokenCache[envVar] = tok
	return tok
}

type quotation struct {
	Units string `json:"units"`
	Nano  int64  `json:"nano"`
}

func (q quotation) decimal() (decimal.Decimal, error) {
	// Nano is a fixed 1e-9 fraction; it must be zero-padded to nine
	// digits or 50000000 nano (0.05) would read as 0.5.
	return decimal.NewFromString(fmt.Sprintf("%s.%09d", q.Units, q.Nano))
}

type orderBookResponse struct {
	Bids []struct {
		Price quotation `json:"price"`
	} `json:"bids"`
	Asks []struct {
		Price quotation `json:"price"`
	} `json:"asks"`
}

func (a *bearerOrderBookAdapter) Fetch(ctx context.Context, client *http.Client) ([]ratemodel.Rate, error) {
	token := bearerToken(a.cfg.BearerEnvVar)
	if token == "" {
		return nil, newErr(ErrConfig, "%s: %s is not set", a.src, a.cfg.BearerEnvVar)
	}

	reqBody, _ := json.Marshal(map[string]interface{}{
		"instrumentId": a.cfg.InstrumentID,
		"depth":        1,
	})
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.cfg.RatesURL, bytes.NewReader(reqBody))
	if err != nil {
		return nil, wrapErr(ErrTransport, err, "build request")
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := client.Do(req)
	if err != nil {
		return nil, wrapErr(ErrTransport, err, "POST %s", a.cfg.RatesURL)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, newErr(ErrTransport, "POST %s: status %d", a.cfg.RatesURL, resp.StatusCode)
	}

	var book orderBookResponse
	if err := json.NewDecoder(resp.Body).Decode(&book); err != nil {
		return nil, wrapErr(ErrDecode, err, "decode order book from %s", a.cfg.RatesURL)
	}

	var buy, sell *decimal.Decimal
	if len(book.Asks) > 0 {
		if ask, err := book.Asks[0].Price.decimal(); err == nil && ask.IsPositive() {
			v := a.cfg.Nominal.Div(ask)
			buy = &v
		}
	}
	if len(book.Bids) > 0 {
		if bid, err := book.Bids[0].Price.decimal(); err == nil && bid.IsPositive() {
			v := a.cfg.Nominal.Div(bid)
			sell = &v
		}
	}
	if buy == nil && sell == nil {
		return nil, newErr(ErrNoRates, "%s: top-of-book carried no usable price", a.src)
	}

	return []ratemodel.Rate{{
		From:     ratemodel.RUB(),
		To:       ratemodel.Default(),
		RateType: ratemodel.NoCash,
		Buy:      buy,
		Sell:     sell,
	}}, nil
}

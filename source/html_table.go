package source

import (
	"context"
	"net/http"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/shopspring/decimal"

	"github.com/amrates/rateengine/ratemodel"
)

// htmlTableAdapter scrapes an exchange-rate table keyed off
// cfg.TableSelector/RowSelector/CellSelector class names. The table at
// cfg.CashRowIndex holds cash rates, every other table non-cash; the
// providers scraped this way publish both on one page.
type htmlTableAdapter struct {
	src ratemodel.Source
	cfg Config
}

func (a *htmlTableAdapter) Fetch(ctx context.Context, client *http.Client) ([]ratemodel.Rate, error) {
	html, err := getText(ctx, client, a.cfg.RatesURL)
	if err != nil {
		return nil, err
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, wrapErr(ErrDecode, err, "parse HTML from %s", a.cfg.RatesURL)
	}

	tables := doc.Find(a.cfg.TableSelector)
	if tables.Length() == 0 {
		return nil, newErr(ErrDecode, "%s: no \"%s\" table found", a.src, a.cfg.TableSelector)
	}

	var out []ratemodel.Rate
	tables.Each(func(tableIdx int, table *goquery.Selection) {
		rateType := ratemodel.NoCash
		if tableIdx == a.cfg.CashRowIndex {
			rateType = ratemodel.Cash
		}

		rows := table.Find(a.cfg.RowSelector)
		rows.Each(func(rowIdx int, row *goquery.Selection) {
			if rowIdx == 0 {
				return // header row
			}
			cells := row.Find(a.cfg.CellSelector)
			if cells.Length() < 3 {
				return
			}
			currency := strings.TrimSpace(cells.Eq(0).Text())
			buyText := strings.TrimSpace(cells.Eq(1).Text())
			sellText := strings.TrimSpace(cells.Eq(2).Text())

			rate := ratemodel.Rate{
				From:     ratemodel.NewCurrency(currency),
				To:       ratemodel.Default(),
				RateType: rateType,
			}
			if d, err := decimal.NewFromString(buyText); err == nil {
				rate.Buy = &d
			}
			if d, err := decimal.NewFromString(sellText); err == nil {
				rate.Sell = &d
			}
			if rate.HasUsableSide() {
				out = append(out, rate)
			}
		})
	})

	if len(out) == 0 {
		return nil, newErr(ErrNoRates, "%s: HTML table yielded zero usable rows", a.src)
	}
	return out, nil
}

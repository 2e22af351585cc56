// Package portfolio оценивает портфель акций по справочнику цен и дивидендов.
package portfolio

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrUnknownTicker тикер отсутствует в справочнике.
var ErrUnknownTicker = errors.New("unknown ticker")

// ErrInvalidQuantity количество бумаг не положительно.
var ErrInvalidQuantity = errors.New("quantity must be greater than zero")

// Quote цена бумаги и годовой дивиденд на одну бумагу.
type Quote struct {
	Price          float64 `json:"price"`
	AnnualDividend float64 `json:"annual_dividend"`
}

var reference = map[string]Quote{
	"PETR4":  {Price: 38.45, AnnualDividend: 3.20},
	"VALE3":  {Price: 62.80, AnnualDividend: 4.50},
	"ITUB4":  {Price: 28.90, AnnualDividend: 2.10},
	"WEGE3":  {Price: 42.15, AnnualDividend: 1.80},
	"TAEE11": {Price: 34.20, AnnualDividend: 2.89},
	"BBSE3":  {Price: 28.50, AnnualDividend: 2.23},
	"ITSA4":  {Price: 9.80, AnnualDividend: 0.68},
	"CPLE6":  {Price: 8.45, AnnualDividend: 0.55},
	"VIVT3":  {Price: 48.90, AnnualDividend: 2.99},
	"MGLU3":  {Price: 3.45, AnnualDividend: 0.15},
	"BBDC4":  {Price: 15.80, AnnualDividend: 1.20},
}

// Holding позиция в портфеле.
type Holding struct {
	Ticker   string  `json:"ticker" validate:"required"`
	Quantity float64 `json:"quantity" validate:"gt=0"`
}

// Position оценённая позиция.
type Position struct {
	Ticker         string  `json:"ticker"`
	Quantity       float64 `json:"quantity"`
	Price          float64 `json:"price"`
	Value          float64 `json:"value"`
	AnnualDividend float64 `json:"annual_dividend"`
}

// Summary итог по портфелю.
type Summary struct {
	Positions        []Position `json:"positions"`
	TotalValue       float64    `json:"total_value"`
	AnnualDividends  float64    `json:"annual_dividends"`
	MonthlyDividends float64    `json:"monthly_dividends"`
	DividendYield    float64    `json:"dividend_yield"`
}

// Tickers возвращает отсортированный список известных тикеров.
func Tickers() []string {
	out := make([]string, 0, len(reference))
	for t := range reference {
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}

// Lookup возвращает котировку тикера без учёта регистра.
func Lookup(ticker string) (Quote, bool) {
	q, ok := reference[strings.ToUpper(strings.TrimSpace(ticker))]
	return q, ok
}

// Summarize оценивает портфель. Повторяющиеся тикеры объединяются,
// позиции упорядочены по тикеру.
func Summarize(holdings []Holding) (Summary, error) {
	const op = "portfolio.Summarize"
	merged := make(map[string]float64, len(holdings))
	for _, h := range holdings {
		ticker := strings.ToUpper(strings.TrimSpace(h.Ticker))
		if _, ok := reference[ticker]; !ok {
			return Summary{}, fmt.Errorf("%s: %w: %q", op, ErrUnknownTicker, h.Ticker)
		}
		if !(h.Quantity > 0) {
			return Summary{}, fmt.Errorf("%s: %w: %s", op, ErrInvalidQuantity, ticker)
		}
		merged[ticker] += h.Quantity
	}

	sum := Summary{Positions: make([]Position, 0, len(merged))}
	for ticker, qty := range merged {
		q := reference[ticker]
		pos := Position{
			Ticker:         ticker,
			Quantity:       qty,
			Price:          q.Price,
			Value:          q.Price * qty,
			AnnualDividend: q.AnnualDividend * qty,
		}
		sum.Positions = append(sum.Positions, pos)
		sum.TotalValue += pos.Value
		sum.AnnualDividends += pos.AnnualDividend
	}
	sort.Slice(sum.Positions, func(i, j int) bool { return sum.Positions[i].Ticker < sum.Positions[j].Ticker })

	sum.MonthlyDividends = sum.AnnualDividends / 12
	if sum.TotalValue > 0 {
		sum.DividendYield = sum.AnnualDividends / sum.TotalValue * 100
	}
	return sum, nil
}

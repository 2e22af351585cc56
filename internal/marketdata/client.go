// Package marketdata проксирует запросы к RapidAPI: график индекса S&P 500
// с начала года и историю котировок отдельной акции.
package marketdata

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/magabrotheeeer/investment-dashboard/internal/config"
	"github.com/magabrotheeeer/investment-dashboard/internal/lib/sl"
)

// DefaultPeriod период истории котировок по умолчанию.
const DefaultPeriod = "1mo"

const (
	marketChartPath = "/v1/index/chart"
	stockHistory    = "/history"
	marketCacheKey  = "market:chart:sp500:ytd"
	maxBodySize     = 4 << 20
)

var (
	// ErrEmptySymbol не указан тикер акции.
	ErrEmptySymbol = errors.New("stock symbol is required")
	// ErrUpstream внешний API ответил ошибкой.
	ErrUpstream = errors.New("market data upstream error")
)

// Cache хранилище ответов внешнего API.
type Cache interface {
	Get(ctx context.Context, key string, result any) (bool, error)
	Set(ctx context.Context, key string, value any, expiration time.Duration) error
}

// Client клиент RapidAPI с ограничением частоты и кешем графика индекса.
type Client struct {
	apiKey     string
	marketURL  string
	stockURL   string
	cacheTTL   time.Duration
	httpClient *http.Client
	limiter    *rate.Limiter
	cache      Cache
	log        *slog.Logger
}

// NewClient создаёт клиента. cache может быть nil, тогда ответы не кешируются.
func NewClient(cfg config.MarketData, limits config.RateLimit, cache Cache, log *slog.Logger) *Client {
	return &Client{
		apiKey:     cfg.APIKey,
		marketURL:  strings.TrimRight(cfg.MarketURL, "/"),
		stockURL:   strings.TrimRight(cfg.StockURL, "/"),
		cacheTTL:   cfg.CacheTTL,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		limiter:    rate.NewLimiter(rate.Limit(limits.RPS), limits.Burst),
		cache:      cache,
		log:        log,
	}
}

// MarketChart возвращает дневной график S&P 500 с начала года.
// Успешный ответ кешируется на cacheTTL, ошибки кеша не прерывают запрос.
func (c *Client) MarketChart(ctx context.Context) (json.RawMessage, error) {
	const op = "marketdata.MarketChart"

	if c.cache != nil {
		var cached json.RawMessage
		if ok, err := c.cache.Get(ctx, marketCacheKey, &cached); err == nil && ok {
			return cached, nil
		}
	}

	query := url.Values{}
	query.Set("symbol", "^GSPC")
	query.Set("interval", "1d")
	query.Set("range", "ytd")
	req, err := c.newRequest(ctx, http.MethodGet, c.marketURL+marketChartPath+"?"+query.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	data, err := c.do(req)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if c.cache != nil && c.cacheTTL > 0 {
		if err := c.cache.Set(ctx, marketCacheKey, data, c.cacheTTL); err != nil {
			c.log.Warn("failed to cache market chart", slog.String("op", op), sl.Err(err))
		}
	}
	return data, nil
}

// StockHistory возвращает историю котировок тикера stock за period.
func (c *Client) StockHistory(ctx context.Context, stock, period string) (json.RawMessage, error) {
	const op = "marketdata.StockHistory"
	stock = strings.ToUpper(strings.TrimSpace(stock))
	if stock == "" {
		return nil, fmt.Errorf("%s: %w", op, ErrEmptySymbol)
	}
	if period == "" {
		period = DefaultPeriod
	}

	body := struct {
		Stock  string `json:"stock"`
		Period string `json:"period"`
	}{Stock: stock, Period: period}
	req, err := c.newRequest(ctx, http.MethodPost, c.stockURL+stockHistory, body)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	data, err := c.do(req)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return data, nil
}

func (c *Client) newRequest(ctx context.Context, method, rawURL string, body any) (*http.Request, error) {
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			return nil, err
		}
	}
	req, err := http.NewRequestWithContext(ctx, method, rawURL, &buf)
	if err != nil {
		return nil, err
	}
	req.Header.Set("x-rapidapi-host", req.URL.Host)
	req.Header.Set("x-rapidapi-key", c.apiKey)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return req, nil
}

func (c *Client) do(req *http.Request) (json.RawMessage, error) {
	if err := c.limiter.Wait(req.Context()); err != nil {
		return nil, err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: %s", ErrUpstream, resp.Status)
	}
	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, err
	}
	if !json.Valid(raw) {
		return nil, fmt.Errorf("%w: invalid json body", ErrUpstream)
	}
	return json.RawMessage(raw), nil
}

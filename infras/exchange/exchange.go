package exchange

//go:generate go run go.uber.org/mock/mockgen -source=./exchange.go -destination=./mocks/exchange_mock.go -package=mocks

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"musafir/config"
	"musafir/infras/otel"
	"musafir/shared/constant"
)

var (
	ErrRateUnavailable = errors.New("exchange: rates unavailable")
)

const (
	defaultRPS     = 5
	requestTimeout = 20 * time.Second
	maxAttempts    = 4
)

// Rates is the upstream exchange-rate payload for a single base currency.
type Rates struct {
	Base  string             `json:"base"`
	Date  string             `json:"date"`
	Rates map[string]float64 `json:"rates"`
}

// Client fetches currency conversion rates from the external provider.
type Client interface {
	Latest(ctx context.Context, base string) (Rates, error)
}

type clientImpl struct {
	baseURL string
	hc      *http.Client
	rl      *rate.Limiter
	otel    otel.Otel
}

func New(cfg *config.Config, otl otel.Otel) Client {
	rps := cfg.External.ExchangeRate.MaxRPS
	if rps <= 0 {
		rps = defaultRPS
	}

	return &clientImpl{
		baseURL: cfg.External.ExchangeRate.BaseURL,
		hc:      &http.Client{Timeout: requestTimeout},
		rl:      rate.NewLimiter(rate.Limit(rps), rps),
		otel:    otl,
	}
}

// Latest fetches the newest rate table for the given base currency, retrying
// transient upstream failures with backoff.
func (c *clientImpl) Latest(ctx context.Context, base string) (res Rates, err error) {
	ctx, scope := c.otel.NewScope(ctx, constant.OtelExternalScopeName, constant.OtelExternalScopeName+".exchange.Latest")
	defer scope.End()
	defer scope.TraceIfError(err)

	if err = c.rl.Wait(ctx); err != nil {
		return res, fmt.Errorf("exchange: rate limiter: %w", err)
	}

	url := fmt.Sprintf("%s/v4/latest/%s", c.baseURL, base)
	scope.SetAttribute("exchange.url", url)

	var lastErr error

	for attempt := range maxAttempts {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return res, fmt.Errorf("exchange: build request: %w", err)
		}

		req.Header.Set("Accept", constant.ContentTypeJSON)

		resp, err := c.hc.Do(req)
		if err != nil {
			if ctx.Err() != nil {
				return res, ctx.Err()
			}

			lastErr = err

			if attempt < maxAttempts-1 && sleepCtx(ctx, backoff(attempt)) {
				continue
			}

			return res, fmt.Errorf("exchange: request failed: %w", lastErr)
		}

		switch {
		case resp.StatusCode == http.StatusOK:
			err = json.NewDecoder(resp.Body).Decode(&res)
			resp.Body.Close()

			if err != nil {
				return res, fmt.Errorf("exchange: decode response: %w", err)
			}

			return res, nil
		case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= http.StatusInternalServerError:
			resp.Body.Close()

			lastErr = fmt.Errorf("%w: status %d", ErrRateUnavailable, resp.StatusCode)

			if attempt < maxAttempts-1 && sleepCtx(ctx, backoff(attempt)) {
				continue
			}

			return res, lastErr
		default:
			resp.Body.Close()

			return res, fmt.Errorf("%w: status %d", ErrRateUnavailable, resp.StatusCode)
		}
	}

	return res, lastErr
}

func backoff(attempt int) time.Duration {
	return time.Duration(1<<attempt) * 250 * time.Millisecond
}

func sleepCtx(ctx context.Context, d time.Duration) bool {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}

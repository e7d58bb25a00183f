package exchange_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"

	"musafir/config"
	"musafir/infras/exchange"
	"musafir/infras/otel/mocks"
)

func newClient(baseURL string) exchange.Client {
	cfg := &config.Config{}
	cfg.External.ExchangeRate.BaseURL = baseURL
	cfg.External.ExchangeRate.MaxRPS = 100

	return exchange.New(cfg, mocks.NewOtel())
}

func TestExchangeClient_Latest(t *testing.T) {
	t.Run("decodes the rate table", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/v4/latest/USD", r.URL.Path)

			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"base":"USD","date":"2026-08-31","rates":{"SAR":3.75,"EUR":0.92}}`))
		}))
		defer server.Close()

		res, err := newClient(server.URL).Latest(context.Background(), "USD")

		assert.NoError(t, err)
		assert.Equal(t, "USD", res.Base)
		assert.Equal(t, 3.75, res.Rates["SAR"])
	})

	t.Run("retries transient upstream failures", func(t *testing.T) {
		var calls atomic.Int32

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			if calls.Add(1) == 1 {
				w.WriteHeader(http.StatusInternalServerError)
				return
			}

			_, _ = w.Write([]byte(`{"base":"USD","rates":{"SAR":3.75}}`))
		}))
		defer server.Close()

		res, err := newClient(server.URL).Latest(context.Background(), "USD")

		assert.NoError(t, err)
		assert.Equal(t, int32(2), calls.Load())
		assert.Equal(t, 3.75, res.Rates["SAR"])
	})

	t.Run("does not retry client errors", func(t *testing.T) {
		var calls atomic.Int32

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			calls.Add(1)
			w.WriteHeader(http.StatusNotFound)
		}))
		defer server.Close()

		_, err := newClient(server.URL).Latest(context.Background(), "XXX")

		assert.ErrorIs(t, err, exchange.ErrRateUnavailable)
		assert.Equal(t, int32(1), calls.Load())
	})

	t.Run("gives up after exhausting retries", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusTooManyRequests)
		}))
		defer server.Close()

		_, err := newClient(server.URL).Latest(context.Background(), "USD")

		assert.ErrorIs(t, err, exchange.ErrRateUnavailable)
	})
}

package service

import (
	"context"
	"strings"

	"github.com/rs/zerolog/log"

	"musafir/config"
	"musafir/infras/exchange"
	"musafir/infras/otel"
	"musafir/shared"
	"musafir/shared/cache"
	"musafir/shared/constant"
	"musafir/shared/failure"
)

const cacheExchangeRates = "currency:rates"

type ConversionResponse struct {
	From   string  `json:"from"`
	To     string  `json:"to"`
	Amount float64 `json:"amount"`
	Rate   float64 `json:"rate"`
	Result float64 `json:"result"`
}

type Currency interface {
	Rates(ctx context.Context, base string) (exchange.Rates, error)
	Convert(ctx context.Context, amount float64, from, to string) (ConversionResponse, error)
}

type serviceImpl struct {
	client exchange.Client
	cfg    *config.Config
	cache  cache.RedisCache
	otel   otel.Otel
}

func New(client exchange.Client, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) Currency {
	return &serviceImpl{
		client: client,
		cfg:    cfg,
		cache:  cache,
		otel:   otel,
	}
}

// Rates returns the latest rate table for a base currency, served from
// redis between provider refreshes.
func (s *serviceImpl) Rates(ctx context.Context, base string) (res exchange.Rates, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Rates")
	defer scope.End()
	defer scope.TraceIfError(err)

	base = strings.ToUpper(base)
	if base == constant.Empty {
		base = s.cfg.External.ExchangeRate.BaseCurrency
	}
	if base == constant.Empty {
		base = constant.DefaultCurrency
	}

	cacheKey := shared.BuildCacheKey(cacheExchangeRates, base)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for exchange rates")

		return res, nil
	}

	res, err = s.client.Latest(ctx, base)
	if err != nil {
		log.Error().Err(err).Str("base", base).Msg("failed to fetch exchange rates")

		return res, failure.BadGateway("exchange rate provider unavailable") // nolint:wrapcheck
	}

	ttl := s.cfg.External.ExchangeRate.CacheTTLSeconds
	if ttl <= 0 {
		ttl = s.cfg.Cache.TTL
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, ttl); err != nil {
			log.Error().Err(err).Msg("failed to save exchange rates to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Convert(ctx context.Context, amount float64, from, to string) (res ConversionResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Convert")
	defer scope.End()
	defer scope.TraceIfError(err)

	from = strings.ToUpper(from)
	to = strings.ToUpper(to)

	rates, err := s.Rates(ctx, from)
	if err != nil {
		return res, err
	}

	rate, ok := rates.Rates[to]
	if !ok {
		return res, failure.BadRequestFromString("unknown target currency") // nolint:wrapcheck
	}

	res = ConversionResponse{
		From:   from,
		To:     to,
		Amount: amount,
		Rate:   rate,
		Result: amount * rate,
	}

	return res, nil
}

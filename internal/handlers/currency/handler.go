package currency

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"musafir/infras/otel"
	"musafir/internal/domains/currency/service"
	"musafir/shared"
	"musafir/shared/constant"
	"musafir/shared/failure"
	"musafir/transport/http/response"
)

type Handler struct {
	service service.Currency
	otel    otel.Otel
}

func New(service service.Currency, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/currency", func(routerGroup chi.Router) {
		routerGroup.Get("/rates", handler.GetRates)
		routerGroup.Get("/convert", handler.Convert)
	})
}

// GetRates returns the cached exchange-rate table for a base currency.
// @Summary Get exchange rates
// @Description Retrieve the latest exchange rates for a base currency.
// @Tags Currency
// @Accept json
// @Produce json
// @Param base query string false "Base currency code (defaults to USD)"
// @Success 200 {object} response.Data[exchange.Rates] "Exchange rates"
// @Failure 502 {object} response.Error
// @Router /v1/currency/rates [get]
func (handler *Handler) GetRates(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetRates")
	defer scope.End()

	rates, err := handler.service.Rates(ctx, r.URL.Query().Get("base"))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get exchange rates")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Exchange rates retrieved successfully")

	response.WithJSON(w, http.StatusOK, rates)
}

// Convert converts an amount between two currencies.
// @Summary Convert an amount
// @Description Convert an amount from one currency to another using the latest rates.
// @Tags Currency
// @Accept json
// @Produce json
// @Param amount query number true "Amount to convert"
// @Param from query string true "Source currency code"
// @Param to query string true "Target currency code"
// @Success 200 {object} response.Data[service.ConversionResponse] "Conversion result"
// @Failure 400 {object} response.Error
// @Failure 502 {object} response.Error
// @Router /v1/currency/convert [get]
func (handler *Handler) Convert(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Convert")
	defer scope.End()

	amount, err := shared.ConvertStringToFloat(r.URL.Query().Get("amount"))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("invalid amount")

		response.WithError(w, failure.BadRequestFromString("amount must be a number"))

		return
	}

	from := r.URL.Query().Get("from")
	to := r.URL.Query().Get("to")

	if from == "" || to == "" {
		response.WithError(w, failure.BadRequestFromString("from and to currencies are required"))

		return
	}

	result, err := handler.service.Convert(ctx, amount, from, to)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to convert amount")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Amount converted successfully")

	response.WithJSON(w, http.StatusOK, result)
}

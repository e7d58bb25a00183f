package payment

//go:generate go run go.uber.org/mock/mockgen -source=./stripe.go -destination=./mocks/stripe_mock.go -package=mocks

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"musafir/config"
	"musafir/infras/otel"
	"musafir/shared/constant"
)

var (
	ErrCheckoutRejected = errors.New("payment: checkout session rejected")
)

const (
	defaultRPS     = 5
	requestTimeout = 20 * time.Second
)

// CheckoutRequest carries everything needed to open a hosted checkout page
// for a booking.
type CheckoutRequest struct {
	Amount        float64
	Currency      string
	SuccessURL    string
	CancelURL     string
	CustomerEmail string
	BookingID     string
	Description   string
}

// CheckoutSession is the provider-hosted payment session the caller
// redirects the customer to.
type CheckoutSession struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}

// Stripe creates hosted checkout sessions.
type Stripe interface {
	CreateCheckoutSession(ctx context.Context, req CheckoutRequest) (CheckoutSession, error)
}

type stripeImpl struct {
	baseURL   string
	secretKey string
	hc        *http.Client
	rl        *rate.Limiter
	otel      otel.Otel
}

func New(cfg *config.Config, otl otel.Otel) Stripe {
	rps := cfg.External.Stripe.MaxRPS
	if rps <= 0 {
		rps = defaultRPS
	}

	return &stripeImpl{
		baseURL:   cfg.External.Stripe.BaseURL,
		secretKey: cfg.External.Stripe.SecretKey,
		hc:        &http.Client{Timeout: requestTimeout},
		rl:        rate.NewLimiter(rate.Limit(rps), rps),
		otel:      otl,
	}
}

// CreateCheckoutSession opens a single-item payment session. Amounts are
// converted to the provider's minor currency unit.
func (s *stripeImpl) CreateCheckoutSession(ctx context.Context, req CheckoutRequest) (res CheckoutSession, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelExternalScopeName, constant.OtelExternalScopeName+".stripe.CreateCheckoutSession")
	defer scope.End()
	defer scope.TraceIfError(err)

	if err = s.rl.Wait(ctx); err != nil {
		return res, fmt.Errorf("payment: rate limiter: %w", err)
	}

	form := url.Values{}
	form.Set("mode", "payment")
	form.Set("success_url", req.SuccessURL)
	form.Set("cancel_url", req.CancelURL)
	form.Set("customer_email", req.CustomerEmail)
	form.Set("metadata[booking_id]", req.BookingID)
	form.Set("line_items[0][quantity]", "1")
	form.Set("line_items[0][price_data][currency]", strings.ToLower(req.Currency))
	form.Set("line_items[0][price_data][unit_amount]", strconv.FormatInt(int64(req.Amount*100), 10))
	form.Set("line_items[0][price_data][product_data][name]", req.Description)

	endpoint := s.baseURL + "/v1/checkout/sessions"
	scope.SetAttribute("payment.booking_id", req.BookingID)

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return res, fmt.Errorf("payment: build request: %w", err)
	}

	httpReq.Header.Set(constant.RequestHeaderAuthorization, "Bearer "+s.secretKey)
	httpReq.Header.Set(constant.RequestHeaderContentType, constant.ContentTypeFormURLEncoded)

	resp, err := s.hc.Do(httpReq)
	if err != nil {
		if ctx.Err() != nil {
			return res, ctx.Err()
		}

		return res, fmt.Errorf("payment: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return res, fmt.Errorf("%w: status %d", ErrCheckoutRejected, resp.StatusCode)
	}

	if err = json.NewDecoder(resp.Body).Decode(&res); err != nil {
		return res, fmt.Errorf("payment: decode response: %w", err)
	}

	return res, nil
}

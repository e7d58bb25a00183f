package payment_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"musafir/config"
	"musafir/infras/otel/mocks"
	"musafir/infras/payment"
)

func newStripe(baseURL string) payment.Stripe {
	cfg := &config.Config{}
	cfg.External.Stripe.BaseURL = baseURL
	cfg.External.Stripe.SecretKey = "sk_test_musafir"
	cfg.External.Stripe.MaxRPS = 100

	return payment.New(cfg, mocks.NewOtel())
}

func TestStripe_CreateCheckoutSession(t *testing.T) {
	t.Run("posts the session form and decodes the response", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "/v1/checkout/sessions", r.URL.Path)
			assert.Equal(t, "Bearer sk_test_musafir", r.Header.Get("Authorization"))

			assert.NoError(t, r.ParseForm())
			assert.Equal(t, "payment", r.PostForm.Get("mode"))
			assert.Equal(t, "booking-1", r.PostForm.Get("metadata[booking_id]"))
			assert.Equal(t, "usd", r.PostForm.Get("line_items[0][price_data][currency]"))
			assert.Equal(t, "180050", r.PostForm.Get("line_items[0][price_data][unit_amount]"))

			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"id":"cs_test_1","url":"https://checkout.stripe.com/cs_test_1"}`))
		}))
		defer server.Close()

		res, err := newStripe(server.URL).CreateCheckoutSession(context.Background(), payment.CheckoutRequest{
			Amount:        1800.50,
			Currency:      "USD",
			SuccessURL:    "https://musafir.dev/checkout/success",
			CancelURL:     "https://musafir.dev/checkout/cancel",
			CustomerEmail: "pilgrim@example.com",
			BookingID:     "booking-1",
			Description:   "umrah booking: Ramadan Umrah",
		})

		assert.NoError(t, err)
		assert.Equal(t, "cs_test_1", res.ID)
		assert.Equal(t, "https://checkout.stripe.com/cs_test_1", res.URL)
	})

	t.Run("provider rejection surfaces as an error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusPaymentRequired)
		}))
		defer server.Close()

		_, err := newStripe(server.URL).CreateCheckoutSession(context.Background(), payment.CheckoutRequest{
			Amount:   100,
			Currency: "USD",
		})

		assert.ErrorIs(t, err, payment.ErrCheckoutRejected)
	})
}

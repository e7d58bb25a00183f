package service_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"musafir/config"
	kafkaInfra "musafir/infras/kafka"
	kafkaMocks "musafir/infras/kafka/mocks"
	"musafir/infras/otel/mocks"
	"musafir/infras/payment"
	paymentMocks "musafir/infras/payment/mocks"
	bookingMocks "musafir/internal/domains/booking/mocks"
	"musafir/internal/domains/booking/model"
	"musafir/internal/domains/booking/model/dto"
	"musafir/internal/domains/booking/service"
	carMocks "musafir/internal/domains/car/mocks"
	flightMocks "musafir/internal/domains/flight/mocks"
	flightModel "musafir/internal/domains/flight/model"
	hotelMocks "musafir/internal/domains/hotel/mocks"
	hotelModel "musafir/internal/domains/hotel/model"
	umrahMocks "musafir/internal/domains/umrah/mocks"
	umrahModel "musafir/internal/domains/umrah/model"
	cacheMocks "musafir/shared/cache/mocks"
	"musafir/shared/constant"
)

type bookingMockSet struct {
	repo   *bookingMocks.MockBooking
	hotel  *hotelMocks.MockHotel
	car    *carMocks.MockCar
	flight *flightMocks.MockFlight
	umrah  *umrahMocks.MockUmrah
	cache  *cacheMocks.MockRedisCache
	stripe *paymentMocks.MockStripe
	kafka  *kafkaMocks.MockClient
}

func newBookingService(t *testing.T) (service.Booking, bookingMockSet) {
	t.Helper()

	ctrl := gomock.NewController(t)

	set := bookingMockSet{
		repo:   bookingMocks.NewMockBooking(ctrl),
		hotel:  hotelMocks.NewMockHotel(ctrl),
		car:    carMocks.NewMockCar(ctrl),
		flight: flightMocks.NewMockFlight(ctrl),
		umrah:  umrahMocks.NewMockUmrah(ctrl),
		cache:  cacheMocks.NewMockRedisCache(ctrl),
		stripe: paymentMocks.NewMockStripe(ctrl),
		kafka:  kafkaMocks.NewMockClient(ctrl),
	}

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600
	cfg.External.Stripe.SuccessURL = "https://musafir.dev/checkout/success"
	cfg.External.Stripe.CancelURL = "https://musafir.dev/checkout/cancel"

	svc := service.New(
		set.repo,
		set.hotel,
		set.car,
		set.flight,
		set.umrah,
		cfg,
		set.cache,
		mocks.NewOtel(),
		set.stripe,
		set.kafka,
	)

	return svc, set
}

// expectAsyncFanout wires the post-write goroutines so the test can wait for
// the kafka publish and cache invalidation instead of racing them.
func expectAsyncFanout(set bookingMockSet) *sync.WaitGroup {
	wg := &sync.WaitGroup{}
	wg.Add(4)

	set.kafka.EXPECT().
		SendMessages(gomock.Any(), constant.KafkaTopicBookingEvents, gomock.Any()).
		DoAndReturn(func(context.Context, string, ...kafkaInfra.Message) error {
			wg.Done()
			return nil
		})
	set.cache.EXPECT().
		Delete(gomock.Any(), gomock.Any()).
		DoAndReturn(func(context.Context, string) error {
			wg.Done()
			return nil
		})
	set.cache.EXPECT().
		Clear(gomock.Any(), gomock.Any()).
		DoAndReturn(func(context.Context, string) error {
			wg.Done()
			return nil
		}).
		Times(2)

	return wg
}

func TestBookingService_Checkout(t *testing.T) {
	t.Run("hotel checkout prices from the listing and opens a session", func(t *testing.T) {
		svc, set := newBookingService(t)

		hotel := hotelModel.Hotel{
			ID:           "hotel-1",
			Name:         "Dar Al Hijra",
			AveragePrice: 200,
			Status:       constant.StatusComplete,
		}
		hotel.CreatedBy = "vendor-1"

		set.hotel.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(hotel, nil)
		set.stripe.EXPECT().
			CreateCheckoutSession(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, req payment.CheckoutRequest) (payment.CheckoutSession, error) {
				assert.Equal(t, 400.0, req.Amount)
				assert.Equal(t, "USD", req.Currency)
				return payment.CheckoutSession{ID: "cs_test_1", URL: "https://checkout.stripe.com/cs_test_1"}, nil
			})
		set.repo.EXPECT().
			Insert(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, booking model.Booking) error {
				assert.Equal(t, "vendor-1", booking.VendorID)
				assert.Equal(t, constant.BookingStatusPending, booking.Status)
				assert.Equal(t, "cs_test_1", booking.PaymentSessionID)
				return nil
			})
		wg := expectAsyncFanout(set)

		ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, "user-1")
		res, err := svc.Checkout(ctx, dto.CreateBookingRequest{
			Vertical:  model.VerticalHotel,
			ItemID:    "hotel-1",
			Travelers: 2,
		})
		wg.Wait()

		assert.NoError(t, err)
		assert.Equal(t, 400.0, res.Total)
		assert.Equal(t, "USD", res.Currency)
		assert.Equal(t, "https://checkout.stripe.com/cs_test_1", res.PaymentURL)
	})

	t.Run("draft hotels cannot be booked", func(t *testing.T) {
		svc, set := newBookingService(t)

		set.hotel.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(hotelModel.Hotel{ID: "hotel-1", Status: constant.StatusDraft}, nil)

		_, err := svc.Checkout(context.Background(), dto.CreateBookingRequest{
			Vertical:  model.VerticalHotel,
			ItemID:    "hotel-1",
			Travelers: 1,
		})

		assert.EqualError(t, err, "hotel is not available for booking")
	})

	t.Run("umrah checkout requires a sharing tier", func(t *testing.T) {
		svc, _ := newBookingService(t)

		_, err := svc.Checkout(context.Background(), dto.CreateBookingRequest{
			Vertical:  model.VerticalUmrah,
			ItemID:    "pkg-1",
			Travelers: 2,
		})

		assert.EqualError(t, err, "Sharing Tier is Required")
	})

	t.Run("umrah checkout requires accepted terms", func(t *testing.T) {
		svc, _ := newBookingService(t)

		_, err := svc.Checkout(context.Background(), dto.CreateBookingRequest{
			Vertical:    model.VerticalUmrah,
			ItemID:      "pkg-1",
			Travelers:   2,
			SharingTier: "double",
		})

		assert.EqualError(t, err, "Terms Acceptance is Required")
	})

	t.Run("umrah checkout prices by sharing tier with discount", func(t *testing.T) {
		svc, set := newBookingService(t)

		pkg := umrahModel.Package{
			ID:              "pkg-1",
			Name:            "Ramadan Umrah",
			PriceDouble:     1000,
			DiscountPercent: 10,
			Active:          true,
		}
		pkg.CreatedBy = "vendor-2"

		set.umrah.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(pkg, nil)
		set.stripe.EXPECT().
			CreateCheckoutSession(gomock.Any(), gomock.Any()).
			Return(payment.CheckoutSession{ID: "cs_test_2", URL: "https://checkout.stripe.com/cs_test_2"}, nil)
		set.repo.EXPECT().
			Insert(gomock.Any(), gomock.Any()).
			Return(nil)
		wg := expectAsyncFanout(set)

		res, err := svc.Checkout(context.Background(), dto.CreateBookingRequest{
			Vertical:      model.VerticalUmrah,
			ItemID:        "pkg-1",
			Travelers:     2,
			SharingTier:   "double",
			TermsAccepted: true,
		})
		wg.Wait()

		assert.NoError(t, err)
		assert.Equal(t, 1800.0, res.Total)
	})

	t.Run("flight checkout rejects overbooking", func(t *testing.T) {
		svc, set := newBookingService(t)

		set.flight.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(flightModel.Ticket{ID: "ticket-1", Active: true, SeatsAvailable: 2}, nil)

		_, err := svc.Checkout(context.Background(), dto.CreateBookingRequest{
			Vertical:  model.VerticalFlight,
			ItemID:    "ticket-1",
			Travelers: 5,
		})

		assert.EqualError(t, err, "not enough seats available")
	})

	t.Run("nothing is written when the payment session fails", func(t *testing.T) {
		svc, set := newBookingService(t)

		hotel := hotelModel.Hotel{ID: "hotel-1", Name: "Dar Al Hijra", AveragePrice: 200, Status: constant.StatusComplete}

		set.hotel.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(hotel, nil)
		set.stripe.EXPECT().
			CreateCheckoutSession(gomock.Any(), gomock.Any()).
			Return(payment.CheckoutSession{}, errors.New("stripe unavailable"))

		_, err := svc.Checkout(context.Background(), dto.CreateBookingRequest{
			Vertical:  model.VerticalHotel,
			ItemID:    "hotel-1",
			Travelers: 1,
		})

		assert.Error(t, err)
	})

	t.Run("unknown vertical", func(t *testing.T) {
		svc, _ := newBookingService(t)

		_, err := svc.Checkout(context.Background(), dto.CreateBookingRequest{
			Vertical:  "cruise",
			ItemID:    "item-1",
			Travelers: 1,
		})

		assert.EqualError(t, err, "unknown booking vertical")
	})
}

func TestBookingService_Confirm(t *testing.T) {
	t.Run("pending bookings confirm", func(t *testing.T) {
		svc, set := newBookingService(t)

		set.repo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(model.Booking{ID: "booking-1", Vertical: model.VerticalHotel, Status: constant.BookingStatusPending}, nil)
		set.repo.EXPECT().
			Update(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, req map[string]any, _ any) error {
				assert.Equal(t, constant.BookingStatusConfirmed, req[model.FieldStatus])
				return nil
			})
		wg := expectAsyncFanout(set)

		err := svc.Confirm(context.Background(), "booking-1")
		wg.Wait()

		assert.NoError(t, err)
	})

	t.Run("confirming a flight booking assigns a record locator", func(t *testing.T) {
		svc, set := newBookingService(t)

		set.repo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(model.Booking{ID: "booking-1", Vertical: model.VerticalFlight, Status: constant.BookingStatusPending}, nil)
		set.repo.EXPECT().
			Update(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, req map[string]any, _ any) error {
				pnr, ok := req[model.FieldPNR].(string)
				assert.True(t, ok)
				assert.Len(t, pnr, 6)
				return nil
			})
		wg := expectAsyncFanout(set)

		err := svc.Confirm(context.Background(), "booking-1")
		wg.Wait()

		assert.NoError(t, err)
	})

	t.Run("cancelled bookings cannot confirm", func(t *testing.T) {
		svc, set := newBookingService(t)

		set.repo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(model.Booking{ID: "booking-1", Status: constant.BookingStatusCancelled}, nil)

		err := svc.Confirm(context.Background(), "booking-1")

		assert.EqualError(t, err, "booking is cancelled, expected pending")
	})
}

func TestBookingService_Cancel(t *testing.T) {
	t.Run("pending bookings cancel", func(t *testing.T) {
		svc, set := newBookingService(t)

		set.repo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(model.Booking{ID: "booking-1", Vertical: model.VerticalCar, Status: constant.BookingStatusPending}, nil)
		set.repo.EXPECT().
			Update(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, req map[string]any, _ any) error {
				assert.Equal(t, constant.BookingStatusCancelled, req[model.FieldStatus])
				return nil
			})
		wg := expectAsyncFanout(set)

		err := svc.Cancel(context.Background(), "booking-1")
		wg.Wait()

		assert.NoError(t, err)
	})
}

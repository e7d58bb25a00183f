package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"musafir/config"
	"musafir/infras/kafka"
	"musafir/infras/otel"
	"musafir/infras/payment"
	"musafir/internal/domains/booking/model"
	"musafir/internal/domains/booking/model/dto"
	"musafir/internal/domains/booking/repository"
	carModel "musafir/internal/domains/car/model"
	carRepository "musafir/internal/domains/car/repository"
	flightModel "musafir/internal/domains/flight/model"
	flightRepository "musafir/internal/domains/flight/repository"
	hotelModel "musafir/internal/domains/hotel/model"
	hotelRepository "musafir/internal/domains/hotel/repository"
	umrahModel "musafir/internal/domains/umrah/model"
	umrahRepository "musafir/internal/domains/umrah/repository"
	"musafir/shared"
	"musafir/shared/cache"
	"musafir/shared/constant"
	gDto "musafir/shared/dto"
	"musafir/shared/failure"
	gModel "musafir/shared/model"
	"musafir/shared/timezone"
)

const (
	cacheGetBooking    = "booking:get"
	cacheGetAllBooking = "booking:gets"
	cacheCountBooking  = "booking:count"
)

type Booking interface {
	Checkout(ctx context.Context, req dto.CreateBookingRequest) (dto.CheckoutResponse, error)
	Confirm(ctx context.Context, id string) error
	Cancel(ctx context.Context, id string) error
	Get(ctx context.Context, id string) (dto.BookingResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetBookingsResponse, error)
	GetMine(ctx context.Context, req gDto.QueryParams) (dto.GetBookingsResponse, error)
	GetForVendor(ctx context.Context, req gDto.QueryParams) (dto.GetBookingsResponse, error)
	Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (int, error)
}

type serviceImpl struct {
	repo       repository.Booking
	hotelRepo  hotelRepository.Hotel
	carRepo    carRepository.Car
	flightRepo flightRepository.Flight
	umrahRepo  umrahRepository.Umrah
	cfg        *config.Config
	cache      cache.RedisCache
	otel       otel.Otel
	stripe     payment.Stripe
	kafka      kafka.Client
}

func New(
	repo repository.Booking,
	hotelRepo hotelRepository.Hotel,
	carRepo carRepository.Car,
	flightRepo flightRepository.Flight,
	umrahRepo umrahRepository.Umrah,
	cfg *config.Config,
	cache cache.RedisCache,
	otel otel.Otel,
	stripe payment.Stripe,
	kafkaClient kafka.Client,
) Booking {
	return &serviceImpl{
		repo:       repo,
		hotelRepo:  hotelRepo,
		carRepo:    carRepo,
		flightRepo: flightRepo,
		umrahRepo:  umrahRepo,
		cfg:        cfg,
		cache:      cache,
		otel:       otel,
		stripe:     stripe,
		kafka:      kafkaClient,
	}
}

// pricing is what the vertical lookup resolves for a checkout request.
type pricing struct {
	itemName        string
	vendorID        string
	unitPrice       float64
	discountPercent float64
}

// Checkout creates a pending booking and opens a hosted payment session for
// it. The total is computed server side from the vertical's own price.
func (s *serviceImpl) Checkout(ctx context.Context, req dto.CreateBookingRequest) (res dto.CheckoutResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Checkout")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	email, _ := ctx.Value(constant.ContextKeyUserEmail).(string)

	price, err := s.resolvePricing(ctx, req)
	if err != nil {
		return res, err
	}

	currency := req.Currency
	if currency == constant.Empty {
		currency = constant.DefaultCurrency
	}

	booking := model.Booking{
		ID:              uuid.NewString(),
		UserID:          user,
		VendorID:        price.vendorID,
		Vertical:        req.Vertical,
		ItemID:          req.ItemID,
		ItemName:        price.itemName,
		SharingTier:     req.SharingTier,
		CheckIn:         parseDate(req.CheckIn),
		CheckOut:        parseDate(req.CheckOut),
		TravelDate:      parseDate(req.TravelDate),
		Travelers:       req.Travelers,
		UnitPrice:       price.unitPrice,
		DiscountPercent: price.discountPercent,
		Total:           model.CalculateTotal(price.unitPrice, req.Travelers, price.discountPercent),
		Currency:        currency,
		Status:          constant.BookingStatusPending,
		TermsAccepted:   req.TermsAccepted,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}

	session, err := s.stripe.CreateCheckoutSession(ctx, payment.CheckoutRequest{
		Amount:        booking.Total,
		Currency:      booking.Currency,
		SuccessURL:    s.cfg.External.Stripe.SuccessURL,
		CancelURL:     s.cfg.External.Stripe.CancelURL,
		CustomerEmail: email,
		BookingID:     booking.ID,
		Description:   fmt.Sprintf("%s booking: %s", booking.Vertical, booking.ItemName),
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to create checkout session")

		return res, fmt.Errorf("failed to create checkout session: %w", err)
	}

	booking.PaymentSessionID = session.ID
	booking.PaymentURL = session.URL

	if err = s.repo.Insert(ctx, booking); err != nil {
		return res, err
	}

	s.publishEvent(ctx, booking)
	s.invalidateBooking(ctx, booking.ID)

	res = dto.CheckoutResponse{
		BookingID:  booking.ID,
		SessionID:  session.ID,
		PaymentURL: session.URL,
		Total:      booking.Total,
		Currency:   booking.Currency,
	}

	return res, nil
}

func (s *serviceImpl) Confirm(ctx context.Context, id string) (err error) {
	return s.transition(ctx, id, constant.BookingStatusPending, constant.BookingStatusConfirmed)
}

func (s *serviceImpl) Cancel(ctx context.Context, id string) (err error) {
	return s.transition(ctx, id, constant.BookingStatusPending, constant.BookingStatusCancelled)
}

func (s *serviceImpl) transition(ctx context.Context, id, from, to string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Transition")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	booking, err := s.getBooking(ctx, id)
	if err != nil {
		return err
	}

	if booking.Status != from {
		return failure.BadRequestFromString(fmt.Sprintf("booking is %s, expected %s", booking.Status, from)) // nolint:wrapcheck
	}

	updated := shared.TransformFields(struct {
		Status string `db:"status"`
	}{Status: to}, user)

	// Flight bookings get their record locator on confirmation.
	if to == constant.BookingStatusConfirmed && booking.Vertical == model.VerticalFlight {
		pnr, err := flightModel.NewPNR()
		if err != nil {
			return err
		}
		updated[model.FieldPNR] = pnr
	}

	if err = s.repo.Update(ctx, updated, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		return err
	}

	booking.Status = to
	s.publishEvent(ctx, booking)
	s.invalidateBooking(ctx, id)

	return nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(cacheGetBooking, id)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for booking")

		return res, nil
	}

	booking, err := s.getBooking(ctx, id)
	if err != nil {
		return res, err
	}

	res.FromModel(booking)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save booking to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetBookingsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllBooking, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for bookings")

		return res, nil
	}

	total, err := s.Count(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count bookings")

		return res, fmt.Errorf("failed to count bookings: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get bookings")

		return res, fmt.Errorf("failed to get bookings: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save bookings to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) GetMine(ctx context.Context, req gDto.QueryParams) (dto.GetBookingsResponse, error) {
	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	return s.GetAll(ctx, req, filterByField(model.FieldUserID, user))
}

func (s *serviceImpl) GetForVendor(ctx context.Context, req gDto.QueryParams) (dto.GetBookingsResponse, error) {
	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	return s.GetAll(ctx, req, filterByField(model.FieldVendorID, user))
}

func (s *serviceImpl) Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Count")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheCountBooking, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for booking count")

		return res, nil
	}

	res, err = s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count bookings")

		return res, fmt.Errorf("failed to count bookings: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save booking count to cache")
		}
	}()

	return res, nil
}

// resolvePricing loads the booked item and derives the vendor, price and
// discount for it. Umrah bookings additionally require a sharing tier and
// accepted terms.
func (s *serviceImpl) resolvePricing(ctx context.Context, req dto.CreateBookingRequest) (pricing, error) {
	switch req.Vertical {
	case model.VerticalHotel:
		hotel, err := s.hotelRepo.Get(ctx, shared.FilterByID(req.ItemID, hotelModel.FieldID, hotelModel.TableName))
		if err != nil {
			return pricing{}, fmt.Errorf("failed to get hotel: %w", err)
		}
		if hotel.ID == constant.Empty || hotel.Status != constant.StatusComplete {
			return pricing{}, failure.BadRequestFromString("hotel is not available for booking") // nolint:wrapcheck
		}

		return pricing{itemName: hotel.Name, vendorID: hotel.CreatedBy, unitPrice: hotel.AveragePrice}, nil

	case model.VerticalCar:
		car, err := s.carRepo.Get(ctx, shared.FilterByID(req.ItemID, carModel.FieldID, carModel.TableName))
		if err != nil {
			return pricing{}, fmt.Errorf("failed to get car: %w", err)
		}
		if car.ID == constant.Empty || car.Status != carModel.StatusApproved {
			return pricing{}, failure.BadRequestFromString("car is not available for booking") // nolint:wrapcheck
		}

		name := fmt.Sprintf("%s %s", car.Make, car.CarModel)

		return pricing{itemName: name, vendorID: car.CreatedBy, unitPrice: car.PricePerDay}, nil

	case model.VerticalFlight:
		ticket, err := s.flightRepo.Get(ctx, shared.FilterByID(req.ItemID, flightModel.FieldID, flightModel.TableName))
		if err != nil {
			return pricing{}, fmt.Errorf("failed to get flight ticket: %w", err)
		}
		if ticket.ID == constant.Empty || !ticket.Active {
			return pricing{}, failure.BadRequestFromString("flight is not available for booking") // nolint:wrapcheck
		}
		if ticket.SeatsAvailable < req.Travelers {
			return pricing{}, failure.BadRequestFromString("not enough seats available") // nolint:wrapcheck
		}

		name := fmt.Sprintf("%s %s %s-%s", ticket.Airline, ticket.FlightNumber, ticket.Origin, ticket.Destination)

		return pricing{
			itemName:        name,
			vendorID:        ticket.CreatedBy,
			unitPrice:       ticket.Price,
			discountPercent: ticket.DiscountPercent,
		}, nil

	case model.VerticalUmrah:
		if req.SharingTier == constant.Empty {
			return pricing{}, failure.BadRequestFromString("Sharing Tier is Required") // nolint:wrapcheck
		}
		if !req.TermsAccepted {
			return pricing{}, failure.BadRequestFromString("Terms Acceptance is Required") // nolint:wrapcheck
		}

		pkg, err := s.umrahRepo.Get(ctx, shared.FilterByID(req.ItemID, umrahModel.FieldID, umrahModel.TableName))
		if err != nil {
			return pricing{}, fmt.Errorf("failed to get umrah package: %w", err)
		}
		if pkg.ID == constant.Empty || !pkg.Active {
			return pricing{}, failure.BadRequestFromString("umrah package is not available for booking") // nolint:wrapcheck
		}

		tierPrice, ok := pkg.TierPrice(req.SharingTier)
		if !ok {
			return pricing{}, failure.BadRequestFromString("unknown sharing tier") // nolint:wrapcheck
		}

		return pricing{
			itemName:        pkg.Name,
			vendorID:        pkg.CreatedBy,
			unitPrice:       tierPrice,
			discountPercent: pkg.DiscountPercent,
		}, nil

	default:
		return pricing{}, failure.BadRequestFromString("unknown booking vertical") // nolint:wrapcheck
	}
}

func (s *serviceImpl) getBooking(ctx context.Context, id string) (model.Booking, error) {
	booking, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking")

		return booking, fmt.Errorf("failed to get booking: %w", err)
	}

	if booking.ID == constant.Empty {
		return booking, failure.NotFound("booking not found") // nolint:wrapcheck
	}

	return booking, nil
}

func (s *serviceImpl) publishEvent(ctx context.Context, booking model.Booking) {
	event := dto.BookingEvent{
		ID:         booking.ID,
		Vertical:   booking.Vertical,
		Status:     booking.Status,
		UserID:     booking.UserID,
		VendorID:   booking.VendorID,
		Total:      booking.Total,
		Currency:   booking.Currency,
		OccurredAt: timezone.Now(),
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.kafka.SendMessages(c, constant.KafkaTopicBookingEvents, kafka.Message{
			Key:   booking.ID,
			Value: event,
		}); err != nil {
			log.Error().Err(err).Str("booking", booking.ID).Msg("failed to publish booking event")
		}
	}()
}

func (s *serviceImpl) invalidateBooking(ctx context.Context, id string) {
	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetBooking, id)); err != nil {
			log.Error().Err(err).Msg("failed to delete booking cache")
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllBooking)
		shared.InvalidateCaches(c, s.cache, cacheCountBooking)
	}()
}

func filterByField(field, value string) gDto.FilterGroup {
	return gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Table:    model.TableName,
				Field:    field,
				Operator: gDto.FilterOperatorEq,
				Value:    value,
			},
		},
	}
}

func parseDate(s string) *time.Time {
	if s == constant.Empty {
		return nil
	}

	t, err := time.Parse(constant.DateOnlyFormat, s)
	if err != nil {
		return nil
	}

	return &t
}

package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"musafir/config"
	"musafir/infras/otel"
	bookingModel "musafir/internal/domains/booking/model"
	bookingDto "musafir/internal/domains/booking/model/dto"
	bookingRepository "musafir/internal/domains/booking/repository"
	"musafir/internal/domains/flight/model"
	"musafir/internal/domains/flight/model/dto"
	"musafir/internal/domains/flight/repository"
	"musafir/shared"
	"musafir/shared/cache"
	"musafir/shared/constant"
	gDto "musafir/shared/dto"
	"musafir/shared/failure"
	"musafir/shared/timezone"
)

const (
	cacheGetTicket    = "flight:get"
	cacheGetAllTicket = "flight:gets"
	cacheCountTicket  = "flight:count"

	maxFlightBookings = 500
)

type Flight interface {
	Create(ctx context.Context, req dto.CreateTicketRequest) error
	Search(ctx context.Context, params gDto.QueryParams, req dto.SearchTicketsRequest) (dto.GetTicketsResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetTicketsResponse, error)
	Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (int, error)
	Get(ctx context.Context, id string) (dto.TicketResponse, error)
	Update(ctx context.Context, req dto.UpdateTicketRequest, id string) error
	Delete(ctx context.Context, id string) error
	MyFlights(ctx context.Context) (dto.MyFlightsResponse, error)
}

type serviceImpl struct {
	repo        repository.Flight
	bookingRepo bookingRepository.Booking
	cfg         *config.Config
	cache       cache.RedisCache
	otel        otel.Otel
}

func New(repo repository.Flight, bookingRepo bookingRepository.Booking, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) Flight {
	return &serviceImpl{
		repo:        repo,
		bookingRepo: bookingRepo,
		cfg:         cfg,
		cache:       cache,
		otel:        otel,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateTicketRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	ticket, err := req.ToModel(user)
	if err != nil {
		return failure.BadRequestFromString(fmt.Sprintf("invalid date/time format: %v", err)) // nolint:wrapcheck
	}

	if !ticket.ArrivalAt.After(ticket.DepartureAt) {
		return failure.BadRequestFromString("arrival must be after departure") // nolint:wrapcheck
	}

	if err = s.repo.Insert(ctx, ticket); err != nil {
		return err
	}

	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, cacheGetAllTicket)
		shared.InvalidateCaches(c, s.cache, cacheCountTicket)
	}()

	return nil
}

// Search filters active tickets by route, travel day and cabin.
func (s *serviceImpl) Search(ctx context.Context, params gDto.QueryParams, req dto.SearchTicketsRequest) (res dto.GetTicketsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Search")
	defer scope.End()
	defer scope.TraceIfError(err)

	filter := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{Table: model.TableName, Field: model.FieldActive, Operator: gDto.FilterOperatorEq, Value: true},
		},
	}

	if req.Origin != constant.Empty {
		filter.Filters = append(filter.Filters, gDto.Filter{
			Table: model.TableName, Field: model.FieldOrigin, Operator: gDto.FilterOperatorEq, Value: strings.ToUpper(req.Origin),
		})
	}

	if req.Destination != constant.Empty {
		filter.Filters = append(filter.Filters, gDto.Filter{
			Table: model.TableName, Field: model.FieldDestination, Operator: gDto.FilterOperatorEq, Value: strings.ToUpper(req.Destination),
		})
	}

	if req.Cabin != constant.Empty {
		filter.Filters = append(filter.Filters, gDto.Filter{
			Table: model.TableName, Field: model.FieldCabin, Operator: gDto.FilterOperatorEq, Value: req.Cabin,
		})
	}

	if req.Date != constant.Empty {
		day, err := time.Parse(constant.DateOnlyFormat, req.Date)
		if err != nil {
			return res, failure.BadRequestFromString("invalid date format") // nolint:wrapcheck
		}

		filter.Filters = append(filter.Filters,
			gDto.Filter{
				ArgName: "departure_from", Table: model.TableName, Field: model.FieldDepartureAt,
				Operator: gDto.FilterOperatorGreaterEq, Value: day,
			},
			gDto.Filter{
				ArgName: "departure_to", Table: model.TableName, Field: model.FieldDepartureAt,
				Operator: gDto.FilterOperatorLessEq, Value: day.AddDate(0, 0, 1),
			},
		)
	}

	return s.GetAll(ctx, params, filter)
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetTicketsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllTicket, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for flight tickets")

		return res, nil
	}

	total, err := s.Count(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count flight tickets")

		return res, fmt.Errorf("failed to count flight tickets: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get flight tickets")

		return res, fmt.Errorf("failed to get flight tickets: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save flight tickets to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Count")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheCountTicket, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for flight ticket count")

		return res, nil
	}

	res, err = s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count flight tickets")

		return res, fmt.Errorf("failed to count flight tickets: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save flight ticket count to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.TicketResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(cacheGetTicket, id)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for flight ticket")

		return res, nil
	}

	ticket, err := s.getTicket(ctx, id)
	if err != nil {
		return res, err
	}

	res.FromModel(ticket)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save flight ticket to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateTicketRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	exists, err := s.repo.Exist(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check flight ticket existence")

		return fmt.Errorf("failed to check flight ticket existence: %w", err)
	}

	if !exists {
		return failure.NotFound("flight ticket not found") // nolint:wrapcheck
	}

	updated := shared.TransformFields(req, user)

	if err = s.repo.Update(ctx, updated, filter); err != nil {
		return err
	}

	s.invalidateTicket(ctx, id)

	return nil
}

func (s *serviceImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Delete")
	defer scope.End()
	defer scope.TraceIfError(err)

	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	exists, err := s.repo.Exist(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check flight ticket existence")

		return fmt.Errorf("failed to check flight ticket existence: %w", err)
	}

	if !exists {
		return failure.NotFound("flight ticket not found") // nolint:wrapcheck
	}

	if err = s.repo.Delete(ctx, filter); err != nil {
		return err
	}

	s.invalidateTicket(ctx, id)

	return nil
}

// MyFlights splits the caller's flight bookings into upcoming and past by
// travel date. Bookings with no travel date land in past.
func (s *serviceImpl) MyFlights(ctx context.Context) (res dto.MyFlightsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".MyFlights")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	filter := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{Table: bookingModel.TableName, Field: bookingModel.FieldUserID, Operator: gDto.FilterOperatorEq, Value: user},
			gDto.Filter{Table: bookingModel.TableName, Field: bookingModel.FieldVertical, Operator: gDto.FilterOperatorEq, Value: bookingModel.VerticalFlight},
		},
	}

	params := gDto.QueryParams{
		Page:    constant.DefaultValuePage,
		Limit:   maxFlightBookings,
		SortBy:  bookingModel.FieldTravelDate,
		SortDir: gDto.SortDirDesc,
	}

	bookings, err := s.bookingRepo.GetAll(ctx, params, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get flight bookings")

		return res, fmt.Errorf("failed to get flight bookings: %w", err)
	}

	now := timezone.Now()
	res.Upcoming = make([]bookingDto.BookingResponse, 0, len(bookings))
	res.Past = make([]bookingDto.BookingResponse, 0, len(bookings))

	for _, booking := range bookings {
		var item bookingDto.BookingResponse
		item.FromModel(booking)

		if booking.TravelDate != nil && booking.TravelDate.After(now) {
			res.Upcoming = append(res.Upcoming, item)
		} else {
			res.Past = append(res.Past, item)
		}
	}

	return res, nil
}

func (s *serviceImpl) getTicket(ctx context.Context, id string) (model.Ticket, error) {
	ticket, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get flight ticket")

		return ticket, fmt.Errorf("failed to get flight ticket: %w", err)
	}

	if ticket.ID == constant.Empty {
		return ticket, failure.NotFound("flight ticket not found") // nolint:wrapcheck
	}

	return ticket, nil
}

func (s *serviceImpl) invalidateTicket(ctx context.Context, id string) {
	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetTicket, id)); err != nil {
			log.Error().Err(err).Msg("failed to delete flight ticket cache")
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllTicket)
		shared.InvalidateCaches(c, s.cache, cacheCountTicket)
	}()
}

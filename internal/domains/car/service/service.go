package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"musafir/config"
	"musafir/infras/otel"
	bookingModel "musafir/internal/domains/booking/model"
	bookingRepository "musafir/internal/domains/booking/repository"
	"musafir/internal/domains/car/model"
	"musafir/internal/domains/car/model/dto"
	"musafir/internal/domains/car/repository"
	"musafir/shared"
	"musafir/shared/cache"
	"musafir/shared/constant"
	gDto "musafir/shared/dto"
	"musafir/shared/failure"
)

const (
	cacheGetCar    = "car:get"
	cacheGetAllCar = "car:gets"
	cacheCountCar  = "car:count"
	cacheStatsCar  = "car:stats"
)

type Car interface {
	Create(ctx context.Context, req dto.CreateCarRequest) error
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetCarsResponse, error)
	Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (int, error)
	Get(ctx context.Context, id string) (dto.CarResponse, error)
	Update(ctx context.Context, req dto.UpdateCarRequest, id string) error
	Delete(ctx context.Context, id string) error
	Approve(ctx context.Context, id string) error
	Block(ctx context.Context, id string) error
	Stats(ctx context.Context) (dto.CarStatsResponse, error)
}

type serviceImpl struct {
	repo        repository.Car
	bookingRepo bookingRepository.Booking
	cfg         *config.Config
	cache       cache.RedisCache
	otel        otel.Otel
}

func New(repo repository.Car, bookingRepo bookingRepository.Booking, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) Car {
	return &serviceImpl{
		repo:        repo,
		bookingRepo: bookingRepo,
		cfg:         cfg,
		cache:       cache,
		otel:        otel,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateCarRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	if err = s.repo.Insert(ctx, req.ToModel(user)); err != nil {
		return err
	}

	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, cacheGetAllCar)
		shared.InvalidateCaches(c, s.cache, cacheCountCar)
		shared.InvalidateCaches(c, s.cache, cacheStatsCar)
	}()

	return nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetCarsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllCar, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for cars")

		return res, nil
	}

	total, err := s.Count(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count cars")

		return res, fmt.Errorf("failed to count cars: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get cars")

		return res, fmt.Errorf("failed to get cars: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save cars to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Count")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheCountCar, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for car count")

		return res, nil
	}

	res, err = s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count cars")

		return res, fmt.Errorf("failed to count cars: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save car count to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.CarResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(cacheGetCar, id)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for car")

		return res, nil
	}

	car, err := s.getCar(ctx, id)
	if err != nil {
		return res, err
	}

	res.FromModel(car)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save car to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateCarRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	car, err := s.getCar(ctx, id)
	if err != nil {
		return err
	}

	// Vendors only edit their own listings.
	role, _ := ctx.Value(constant.ContextKeyUserRole).(string)
	if role == constant.RoleVendor && car.CreatedBy != user {
		return failure.Forbidden("car does not belong to you") // nolint:wrapcheck
	}

	updated := shared.TransformFields(req, user)

	if err = s.repo.Update(ctx, updated, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		return err
	}

	s.invalidateCar(ctx, id)

	return nil
}

func (s *serviceImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Delete")
	defer scope.End()
	defer scope.TraceIfError(err)

	car, err := s.getCar(ctx, id)
	if err != nil {
		return err
	}

	if err = s.repo.Delete(ctx, shared.FilterByID(car.ID, model.FieldID, model.TableName)); err != nil {
		return err
	}

	s.invalidateCar(ctx, id)

	return nil
}

func (s *serviceImpl) Approve(ctx context.Context, id string) error {
	return s.setStatus(ctx, id, model.StatusApproved)
}

func (s *serviceImpl) Block(ctx context.Context, id string) error {
	return s.setStatus(ctx, id, model.StatusBlocked)
}

func (s *serviceImpl) setStatus(ctx context.Context, id, status string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".SetStatus")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	car, err := s.getCar(ctx, id)
	if err != nil {
		return err
	}

	if car.Status == status {
		return nil
	}

	updated := shared.TransformFields(struct {
		Status string `db:"status"`
	}{Status: status}, user)

	if err = s.repo.Update(ctx, updated, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		return err
	}

	s.invalidateCar(ctx, id)

	return nil
}

// Stats counts listings per moderation status plus car bookings, scoped to
// the vendor when the caller is one.
func (s *serviceImpl) Stats(ctx context.Context) (res dto.CarStatsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Stats")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	role, _ := ctx.Value(constant.ContextKeyUserRole).(string)

	cacheKey := shared.BuildCacheKey(cacheStatsCar, role, user)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for car stats")

		return res, nil
	}

	group, groupCtx := errgroup.WithContext(ctx)

	countByStatus := func(status string, out *int) func() error {
		return func() error {
			filter := gDto.FilterGroup{
				Operator: gDto.FilterGroupOperatorAnd,
				Filters: []any{
					gDto.Filter{Table: model.TableName, Field: model.FieldStatus, Operator: gDto.FilterOperatorEq, Value: status},
				},
			}
			if role == constant.RoleVendor {
				filter.Filters = append(filter.Filters, gDto.Filter{
					Table: model.TableName, Field: model.FieldCreatedBy, Operator: gDto.FilterOperatorEq, Value: user,
				})
			}

			count, err := s.repo.Count(groupCtx, filter)
			if err != nil {
				return fmt.Errorf("failed to count cars (%s): %w", status, err)
			}
			*out = count

			return nil
		}
	}

	group.Go(countByStatus(model.StatusPending, &res.Pending))
	group.Go(countByStatus(model.StatusApproved, &res.Approved))
	group.Go(countByStatus(model.StatusBlocked, &res.Blocked))

	group.Go(func() error {
		filter := gDto.FilterGroup{
			Operator: gDto.FilterGroupOperatorAnd,
			Filters: []any{
				gDto.Filter{Table: bookingModel.TableName, Field: bookingModel.FieldVertical, Operator: gDto.FilterOperatorEq, Value: bookingModel.VerticalCar},
			},
		}
		if role == constant.RoleVendor {
			filter.Filters = append(filter.Filters, gDto.Filter{
				Table: bookingModel.TableName, Field: bookingModel.FieldVendorID, Operator: gDto.FilterOperatorEq, Value: user,
			})
		}

		count, err := s.bookingRepo.Count(groupCtx, filter)
		if err != nil {
			return fmt.Errorf("failed to count car bookings: %w", err)
		}
		res.Bookings = count

		return nil
	})

	if err = group.Wait(); err != nil {
		log.Error().Err(err).Msg("failed to build car stats")

		return res, err
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save car stats to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) getCar(ctx context.Context, id string) (model.Car, error) {
	car, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get car")

		return car, fmt.Errorf("failed to get car: %w", err)
	}

	if car.ID == constant.Empty {
		return car, failure.NotFound("car not found") // nolint:wrapcheck
	}

	return car, nil
}

func (s *serviceImpl) invalidateCar(ctx context.Context, id string) {
	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetCar, id)); err != nil {
			log.Error().Err(err).Msg("failed to delete car cache")
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllCar)
		shared.InvalidateCaches(c, s.cache, cacheCountCar)
		shared.InvalidateCaches(c, s.cache, cacheStatsCar)
	}()
}

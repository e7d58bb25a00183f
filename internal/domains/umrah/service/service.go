package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"musafir/config"
	"musafir/infras/otel"
	bookingModel "musafir/internal/domains/booking/model"
	"musafir/internal/domains/umrah/model"
	"musafir/internal/domains/umrah/model/dto"
	"musafir/internal/domains/umrah/repository"
	"musafir/shared"
	"musafir/shared/cache"
	"musafir/shared/constant"
	gDto "musafir/shared/dto"
	"musafir/shared/failure"
)

const (
	cacheGetPackage    = "umrah:get"
	cacheGetAllPackage = "umrah:gets"
	cacheCountPackage  = "umrah:count"
)

type Umrah interface {
	Create(ctx context.Context, req dto.CreatePackageRequest) error
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetPackagesResponse, error)
	Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (int, error)
	Get(ctx context.Context, id string) (dto.PackageResponse, error)
	Update(ctx context.Context, req dto.UpdatePackageRequest, id string) error
	Delete(ctx context.Context, id string) error
	Quote(ctx context.Context, req dto.QuoteRequest, id string) (dto.QuoteResponse, error)
}

type serviceImpl struct {
	repo  repository.Umrah
	cfg   *config.Config
	cache cache.RedisCache
	otel  otel.Otel
}

func New(repo repository.Umrah, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) Umrah {
	return &serviceImpl{
		repo:  repo,
		cfg:   cfg,
		cache: cache,
		otel:  otel,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreatePackageRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	pkg, err := req.ToModel(user)
	if err != nil {
		return failure.BadRequestFromString(fmt.Sprintf("invalid date format: %v", err)) // nolint:wrapcheck
	}

	if !pkg.ReturnDate.After(pkg.DepartureDate) {
		return failure.BadRequestFromString("return date must be after departure date") // nolint:wrapcheck
	}

	if err = s.repo.Insert(ctx, pkg); err != nil {
		return err
	}

	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, cacheGetAllPackage)
		shared.InvalidateCaches(c, s.cache, cacheCountPackage)
	}()

	return nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetPackagesResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllPackage, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for umrah packages")

		return res, nil
	}

	total, err := s.Count(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count umrah packages")

		return res, fmt.Errorf("failed to count umrah packages: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get umrah packages")

		return res, fmt.Errorf("failed to get umrah packages: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save umrah packages to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Count")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheCountPackage, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for umrah package count")

		return res, nil
	}

	res, err = s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count umrah packages")

		return res, fmt.Errorf("failed to count umrah packages: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save umrah package count to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.PackageResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(cacheGetPackage, id)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for umrah package")

		return res, nil
	}

	pkg, err := s.getPackage(ctx, id)
	if err != nil {
		return res, err
	}

	res.FromModel(pkg)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save umrah package to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, req dto.UpdatePackageRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	pkg, err := s.getPackage(ctx, id)
	if err != nil {
		return err
	}

	role, _ := ctx.Value(constant.ContextKeyUserRole).(string)
	if role == constant.RoleVendor && pkg.CreatedBy != user {
		return failure.Forbidden("umrah package does not belong to you") // nolint:wrapcheck
	}

	updated := shared.TransformFields(req, user)

	if err = s.repo.Update(ctx, updated, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		return err
	}

	s.invalidatePackage(ctx, id)

	return nil
}

func (s *serviceImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Delete")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	pkg, err := s.getPackage(ctx, id)
	if err != nil {
		return err
	}

	role, _ := ctx.Value(constant.ContextKeyUserRole).(string)
	if role == constant.RoleVendor && pkg.CreatedBy != user {
		return failure.Forbidden("umrah package does not belong to you") // nolint:wrapcheck
	}

	if err = s.repo.Delete(ctx, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		return err
	}

	s.invalidatePackage(ctx, id)

	return nil
}

// Quote prices a package for a tier and group size the same way checkout
// will, so the caller can preview the total.
func (s *serviceImpl) Quote(ctx context.Context, req dto.QuoteRequest, id string) (res dto.QuoteResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Quote")
	defer scope.End()
	defer scope.TraceIfError(err)

	pkg, err := s.getPackage(ctx, id)
	if err != nil {
		return res, err
	}

	if !pkg.Active {
		return res, failure.BadRequestFromString("umrah package is not available for booking") // nolint:wrapcheck
	}

	unitPrice, ok := pkg.TierPrice(req.SharingTier)
	if !ok {
		return res, failure.BadRequestFromString("unknown sharing tier") // nolint:wrapcheck
	}

	res = dto.QuoteResponse{
		PackageID:       pkg.ID,
		SharingTier:     req.SharingTier,
		Travelers:       req.Travelers,
		UnitPrice:       unitPrice,
		DiscountPercent: pkg.DiscountPercent,
		Total:           bookingModel.CalculateTotal(unitPrice, req.Travelers, pkg.DiscountPercent),
	}

	return res, nil
}

func (s *serviceImpl) getPackage(ctx context.Context, id string) (model.Package, error) {
	pkg, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get umrah package")

		return pkg, fmt.Errorf("failed to get umrah package: %w", err)
	}

	if pkg.ID == constant.Empty {
		return pkg, failure.NotFound("umrah package not found") // nolint:wrapcheck
	}

	return pkg, nil
}

func (s *serviceImpl) invalidatePackage(ctx context.Context, id string) {
	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetPackage, id)); err != nil {
			log.Error().Err(err).Msg("failed to delete umrah package cache")
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllPackage)
		shared.InvalidateCaches(c, s.cache, cacheCountPackage)
	}()
}

package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"musafir/config"
	"musafir/infras/otel"
	"musafir/infras/s3"
	"musafir/internal/domains/property/model"
	"musafir/internal/domains/property/model/dto"
	"musafir/internal/domains/property/repository"
	"musafir/shared"
	"musafir/shared/cache"
	"musafir/shared/constant"
	gDto "musafir/shared/dto"
	"musafir/shared/failure"
)

const (
	cacheGetProperty    = "property:get"
	cacheGetAllProperty = "property:gets"
	cacheCountProperty  = "property:count"
)

type Property interface {
	Create(ctx context.Context, req dto.CreatePropertyRequest) error
	Search(ctx context.Context, params gDto.QueryParams, req dto.SearchPropertiesRequest) (dto.GetPropertiesResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetPropertiesResponse, error)
	Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (int, error)
	Get(ctx context.Context, id string) (dto.PropertyResponse, error)
	Update(ctx context.Context, req dto.UpdatePropertyRequest, id string) error
	Delete(ctx context.Context, id string) error
	UploadImages(ctx context.Context, req dto.UploadImagesRequest, id string) (dto.PropertyResponse, error)
}

type serviceImpl struct {
	repo  repository.Property
	cfg   *config.Config
	cache cache.RedisCache
	otel  otel.Otel
	s3    s3.S3
}

func New(repo repository.Property, cfg *config.Config, cache cache.RedisCache, otel otel.Otel, s3 s3.S3) Property {
	return &serviceImpl{
		repo:  repo,
		cfg:   cfg,
		cache: cache,
		otel:  otel,
		s3:    s3,
	}
}

// BuildSearchFilter turns the search panel fields into a WHERE group. The
// mapping is deterministic: the same request always yields the same group,
// so repeated searches hit the same cache key.
func BuildSearchFilter(req dto.SearchPropertiesRequest) gDto.FilterGroup {
	filter := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{Table: model.TableName, Field: model.FieldActive, Operator: gDto.FilterOperatorEq, Value: true},
		},
	}

	if req.City != constant.Empty {
		filter.Filters = append(filter.Filters, gDto.Filter{
			Table: model.TableName, Field: model.FieldCity, Operator: gDto.FilterOperatorEq, Value: req.City,
		})
	}

	if req.PropertyType != constant.Empty {
		filter.Filters = append(filter.Filters, gDto.Filter{
			Table: model.TableName, Field: model.FieldPropertyType, Operator: gDto.FilterOperatorEq, Value: req.PropertyType,
		})
	}

	if req.Purpose != constant.Empty {
		filter.Filters = append(filter.Filters, gDto.Filter{
			Table: model.TableName, Field: model.FieldPurpose, Operator: gDto.FilterOperatorEq, Value: req.Purpose,
		})
	}

	if req.MinPrice != nil {
		filter.Filters = append(filter.Filters, gDto.Filter{
			ArgName: "min_price", Table: model.TableName, Field: model.FieldPrice,
			Operator: gDto.FilterOperatorGreaterEq, Value: *req.MinPrice,
		})
	}

	if req.MaxPrice != nil {
		filter.Filters = append(filter.Filters, gDto.Filter{
			ArgName: "max_price", Table: model.TableName, Field: model.FieldPrice,
			Operator: gDto.FilterOperatorLessEq, Value: *req.MaxPrice,
		})
	}

	if req.Bedrooms != nil {
		filter.Filters = append(filter.Filters, gDto.Filter{
			Table: model.TableName, Field: model.FieldBedrooms, Operator: gDto.FilterOperatorGreaterEq, Value: *req.Bedrooms,
		})
	}

	return filter
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreatePropertyRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	if err = s.repo.Insert(ctx, req.ToModel(user)); err != nil {
		return err
	}

	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, cacheGetAllProperty)
		shared.InvalidateCaches(c, s.cache, cacheCountProperty)
	}()

	return nil
}

func (s *serviceImpl) Search(ctx context.Context, params gDto.QueryParams, req dto.SearchPropertiesRequest) (res dto.GetPropertiesResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Search")
	defer scope.End()
	defer scope.TraceIfError(err)

	params.ResolveSortKey(req.Sort, dto.PropertySortKeys)

	return s.GetAll(ctx, params, BuildSearchFilter(req))
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetPropertiesResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllProperty, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for properties")

		return res, nil
	}

	total, err := s.Count(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count properties")

		return res, fmt.Errorf("failed to count properties: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get properties")

		return res, fmt.Errorf("failed to get properties: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save properties to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Count")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheCountProperty, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for property count")

		return res, nil
	}

	res, err = s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count properties")

		return res, fmt.Errorf("failed to count properties: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save property count to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.PropertyResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(cacheGetProperty, id)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for property")

		return res, nil
	}

	property, err := s.getProperty(ctx, id)
	if err != nil {
		return res, err
	}

	res.FromModel(property)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save property to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, req dto.UpdatePropertyRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	property, err := s.getProperty(ctx, id)
	if err != nil {
		return err
	}

	role, _ := ctx.Value(constant.ContextKeyUserRole).(string)
	if role == constant.RoleAgent && property.CreatedBy != user {
		return failure.Forbidden("property does not belong to you") // nolint:wrapcheck
	}

	updated := shared.TransformFields(req, user)

	if err = s.repo.Update(ctx, updated, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		return err
	}

	s.invalidateProperty(ctx, id)

	return nil
}

func (s *serviceImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Delete")
	defer scope.End()
	defer scope.TraceIfError(err)

	property, err := s.getProperty(ctx, id)
	if err != nil {
		return err
	}

	if err = s.repo.Delete(ctx, shared.FilterByID(property.ID, model.FieldID, model.TableName)); err != nil {
		return err
	}

	go func() {
		c := context.WithoutCancel(ctx)

		bucketName := s.cfg.External.S3.BucketName
		for _, image := range property.Images {
			objectName := s.s3.GetObjectNameFromURL(bucketName, image)
			if objectName == constant.Empty {
				continue
			}

			if err := s.s3.DeleteFile(c, bucketName, model.EntityName, objectName); err != nil {
				log.Error().Err(err).Str("object", objectName).Msg("failed to delete property image")
			}
		}
	}()

	s.invalidateProperty(ctx, id)

	return nil
}

func (s *serviceImpl) UploadImages(ctx context.Context, req dto.UploadImagesRequest, id string) (res dto.PropertyResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".UploadImages")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	property, err := s.getProperty(ctx, id)
	if err != nil {
		return res, err
	}

	bucketName := s.cfg.External.S3.BucketName
	uploaded := make([]string, 0, len(req.Images))
	objectNames := make([]string, 0, len(req.Images))

	for i, header := range req.Images {
		filename := uuid.NewString()

		parts := strings.Split(header.Filename, ".")
		if len(parts) > 1 {
			filename = fmt.Sprintf("%s.%s", filename, parts[len(parts)-1])
		}

		url, err := s.s3.UploadFile(ctx, bucketName, model.EntityName, req.ImageFiles[i], header, filename)
		if err != nil {
			for _, objectName := range objectNames {
				_ = s.s3.DeleteFile(ctx, bucketName, model.EntityName, objectName)
			}

			return res, fmt.Errorf("failed to upload image: %w", err)
		}

		uploaded = append(uploaded, url)
		objectNames = append(objectNames, filename)
	}

	property.Images = append(property.Images, uploaded...)

	updated := map[string]any{
		model.FieldImages:        property.Images,
		constant.FieldModifiedBy: user,
	}

	if err = s.repo.Update(ctx, updated, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		for _, objectName := range objectNames {
			_ = s.s3.DeleteFile(ctx, bucketName, model.EntityName, objectName)
		}

		return res, err
	}

	res.FromModel(property)

	s.invalidateProperty(ctx, id)

	return res, nil
}

func (s *serviceImpl) getProperty(ctx context.Context, id string) (model.Property, error) {
	property, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get property")

		return property, fmt.Errorf("failed to get property: %w", err)
	}

	if property.ID == constant.Empty {
		return property, failure.NotFound("property not found") // nolint:wrapcheck
	}

	return property, nil
}

func (s *serviceImpl) invalidateProperty(ctx context.Context, id string) {
	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetProperty, id)); err != nil {
			log.Error().Err(err).Msg("failed to delete property cache")
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllProperty)
		shared.InvalidateCaches(c, s.cache, cacheCountProperty)
	}()
}

package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"musafir/config"
	"musafir/infras/otel"
	"musafir/internal/domains/review/model"
	"musafir/internal/domains/review/model/dto"
	"musafir/internal/domains/review/repository"
	"musafir/shared"
	"musafir/shared/cache"
	"musafir/shared/constant"
	gDto "musafir/shared/dto"
	"musafir/shared/failure"
)

const (
	cacheReviewsByEntity = "review:entity"
	cacheReviewSummary   = "review:summary"

	// One entity's reviews are loaded in one shot and paged in memory.
	maxReviewsPerEntity = 1000
)

type Review interface {
	Create(ctx context.Context, req dto.CreateReviewRequest) error
	ListByEntity(ctx context.Context, params gDto.QueryParams, entityType, entityID string) (dto.GetReviewsResponse, error)
	Summary(ctx context.Context, entityType, entityID string) (dto.ReviewSummaryResponse, error)
	Delete(ctx context.Context, id string) error
}

type serviceImpl struct {
	repo  repository.Review
	cfg   *config.Config
	cache cache.RedisCache
	otel  otel.Otel
}

func New(repo repository.Review, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) Review {
	return &serviceImpl{
		repo:  repo,
		cfg:   cfg,
		cache: cache,
		otel:  otel,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateReviewRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	// One review per user per entity.
	exists, err := s.repo.Exist(ctx, entityFilterWithUser(req.EntityType, req.EntityID, user))
	if err != nil {
		log.Error().Err(err).Msg("failed to check review existence")

		return fmt.Errorf("failed to check review existence: %w", err)
	}

	if exists {
		return failure.Conflict("you have already reviewed this item") // nolint:wrapcheck
	}

	if err = s.repo.Insert(ctx, req.ToModel(user)); err != nil {
		return err
	}

	s.invalidateEntity(ctx, req.EntityType, req.EntityID)

	return nil
}

// ListByEntity loads the entity's reviews once and pages them in memory, so
// page flips served from cache never hit the database.
func (s *serviceImpl) ListByEntity(ctx context.Context, params gDto.QueryParams, entityType, entityID string) (res dto.GetReviewsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ListByEntity")
	defer scope.End()
	defer scope.TraceIfError(err)

	reviews, err := s.loadReviews(ctx, entityType, entityID)
	if err != nil {
		return res, err
	}

	page := shared.Paginate(reviews, params.Page, params.Limit)

	res.TotalData = len(reviews)
	res.TotalPage = shared.CalculateTotalPage(len(reviews), params.Limit)
	res.Reviews = make([]dto.ReviewResponse, len(page))
	for i, review := range page {
		res.Reviews[i].FromModel(review)
	}

	return res, nil
}

func (s *serviceImpl) Summary(ctx context.Context, entityType, entityID string) (res dto.ReviewSummaryResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Summary")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(cacheReviewSummary, entityType, entityID)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for review summary")

		return res, nil
	}

	reviews, err := s.loadReviews(ctx, entityType, entityID)
	if err != nil {
		return res, err
	}

	res = dto.Summarize(entityType, entityID, reviews)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save review summary to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Delete")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	review, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get review")

		return fmt.Errorf("failed to get review: %w", err)
	}

	if review.ID == constant.Empty {
		return failure.NotFound("review not found") // nolint:wrapcheck
	}

	role, _ := ctx.Value(constant.ContextKeyUserRole).(string)
	if role != constant.RoleAdmin && review.UserID != user {
		return failure.Forbidden("review does not belong to you") // nolint:wrapcheck
	}

	if err = s.repo.Delete(ctx, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		return err
	}

	s.invalidateEntity(ctx, review.EntityType, review.EntityID)

	return nil
}

func (s *serviceImpl) loadReviews(ctx context.Context, entityType, entityID string) ([]model.Review, error) {
	cacheKey := shared.BuildCacheKey(cacheReviewsByEntity, entityType, entityID)

	var reviews []model.Review

	err := s.cache.Get(ctx, cacheKey, &reviews)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for entity reviews")

		return reviews, nil
	}

	params := gDto.QueryParams{
		Page:    constant.DefaultValuePage,
		Limit:   maxReviewsPerEntity,
		SortBy:  constant.FieldCreatedAt,
		SortDir: gDto.SortDirDesc,
	}

	reviews, err = s.repo.GetAll(ctx, params, entityFilter(entityType, entityID))
	if err != nil {
		log.Error().Err(err).Msg("failed to get reviews")

		return nil, fmt.Errorf("failed to get reviews: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, reviews, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save entity reviews to cache")
		}
	}()

	return reviews, nil
}

func (s *serviceImpl) invalidateEntity(ctx context.Context, entityType, entityID string) {
	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheReviewsByEntity, entityType, entityID)); err != nil {
			log.Error().Err(err).Msg("failed to delete entity reviews cache")
		}

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheReviewSummary, entityType, entityID)); err != nil {
			log.Error().Err(err).Msg("failed to delete review summary cache")
		}
	}()
}

func entityFilter(entityType, entityID string) gDto.FilterGroup {
	return gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{Table: model.TableName, Field: model.FieldEntityType, Operator: gDto.FilterOperatorEq, Value: entityType},
			gDto.Filter{Table: model.TableName, Field: model.FieldEntityID, Operator: gDto.FilterOperatorEq, Value: entityID},
		},
	}
}

func entityFilterWithUser(entityType, entityID, user string) gDto.FilterGroup {
	filter := entityFilter(entityType, entityID)
	filter.Filters = append(filter.Filters, gDto.Filter{
		Table: model.TableName, Field: model.FieldUserID, Operator: gDto.FilterOperatorEq, Value: user,
	})

	return filter
}

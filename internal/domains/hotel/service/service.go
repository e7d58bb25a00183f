package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"musafir/config"
	"musafir/infras/otel"
	"musafir/infras/s3"
	bookingModel "musafir/internal/domains/booking/model"
	bookingRepository "musafir/internal/domains/booking/repository"
	"musafir/internal/domains/hotel/model"
	"musafir/internal/domains/hotel/model/dto"
	"musafir/internal/domains/hotel/repository"
	roomModel "musafir/internal/domains/room/model"
	roomRepository "musafir/internal/domains/room/repository"
	"musafir/shared"
	"musafir/shared/cache"
	"musafir/shared/constant"
	gDto "musafir/shared/dto"
	"musafir/shared/failure"
	"musafir/shared/wizard"
)

const (
	cacheGetHotel    = "hotel:get"
	cacheGetAllHotel = "hotel:gets"
	cacheCountHotel  = "hotel:count"
	cacheStatsHotel  = "hotel:stats"
)

type Hotel interface {
	Create(ctx context.Context, req dto.CreateHotelRequest) (dto.HotelResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetHotelsResponse, error)
	Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (int, error)
	Get(ctx context.Context, id string) (dto.HotelResponse, error)
	Update(ctx context.Context, req dto.UpdateHotelRequest, id string) error
	Delete(ctx context.Context, id string) error
	Step(ctx context.Context, req dto.StepRequest, id string) (dto.StepResponse, error)
	Complete(ctx context.Context, id string) error
	Registration(ctx context.Context, id string) (dto.RegistrationStatusResponse, error)
	UploadImages(ctx context.Context, req dto.UploadImagesRequest, id string) (dto.HotelResponse, error)
	Stats(ctx context.Context) (dto.StatsResponse, error)
}

type serviceImpl struct {
	repo        repository.Hotel
	roomRepo    roomRepository.Room
	bookingRepo bookingRepository.Booking
	cfg         *config.Config
	cache       cache.RedisCache
	otel        otel.Otel
	s3          s3.S3
}

func New(
	repo repository.Hotel,
	roomRepo roomRepository.Room,
	bookingRepo bookingRepository.Booking,
	cfg *config.Config,
	cache cache.RedisCache,
	otel otel.Otel,
	s3 s3.S3,
) Hotel {
	return &serviceImpl{
		repo:        repo,
		roomRepo:    roomRepo,
		bookingRepo: bookingRepo,
		cfg:         cfg,
		cache:       cache,
		otel:        otel,
		s3:          s3,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateHotelRequest) (res dto.HotelResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	// Drafts persist partial data as-is. Completeness is only enforced in
	// Complete.
	hotel := req.ToModel(user)

	if err = s.repo.Insert(ctx, hotel); err != nil {
		return res, err
	}

	res.FromModel(hotel)

	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, cacheGetAllHotel)
		shared.InvalidateCaches(c, s.cache, cacheCountHotel)
		shared.InvalidateCaches(c, s.cache, cacheStatsHotel)
	}()

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetHotelsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllHotel, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for hotels")

		return res, nil
	}

	total, err := s.Count(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count hotels")

		return res, fmt.Errorf("failed to count hotels: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get hotels")

		return res, fmt.Errorf("failed to get hotels: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save hotels to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Count")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheCountHotel, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for hotel count")

		return res, nil
	}

	res, err = s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count hotels")

		return res, fmt.Errorf("failed to count hotels: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save hotel count to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.HotelResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(cacheGetHotel, id)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for hotel")

		return res, nil
	}

	hotel, err := s.getHotel(ctx, id)
	if err != nil {
		return res, err
	}

	res.FromModel(hotel)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save hotel to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateHotelRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	hotel, err := s.getHotel(ctx, id)
	if err != nil {
		return err
	}

	req.Apply(&hotel, user)

	updated := map[string]any{
		model.FieldName:          hotel.Name,
		model.FieldDescription:   hotel.Description,
		model.FieldAddress:       hotel.Address,
		model.FieldCity:          hotel.City,
		model.FieldState:         hotel.State,
		model.FieldZip:           hotel.Zip,
		model.FieldCountry:       hotel.Country,
		model.FieldStarRating:    hotel.StarRating,
		model.FieldAveragePrice:  hotel.AveragePrice,
		model.FieldCheckInTime:   hotel.CheckInTime,
		model.FieldCheckOutTime:  hotel.CheckOutTime,
		model.FieldAvailableFrom: hotel.AvailableFrom,
		model.FieldAvailableTo:   hotel.AvailableTo,
		model.FieldAmenities:     hotel.Amenities,
		model.FieldTags:          hotel.Tags,
		constant.FieldModifiedAt: hotel.ModifiedAt,
		constant.FieldModifiedBy: hotel.ModifiedBy,
	}

	if err = s.repo.Update(ctx, updated, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		return err
	}

	s.invalidateHotel(ctx, id)

	return nil
}

func (s *serviceImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Delete")
	defer scope.End()
	defer scope.TraceIfError(err)

	hotel, err := s.getHotel(ctx, id)
	if err != nil {
		return err
	}

	if err = s.repo.Delete(ctx, shared.FilterByID(hotel.ID, model.FieldID, model.TableName)); err != nil {
		return err
	}

	go func() {
		c := context.WithoutCancel(ctx)

		bucketName := s.cfg.External.S3.BucketName
		for _, image := range hotel.Images {
			objectName := s.s3.GetObjectNameFromURL(bucketName, image)
			if objectName == constant.Empty {
				continue
			}

			if err := s.s3.DeleteFile(c, bucketName, model.EntityName, objectName); err != nil {
				log.Error().Err(err).Str("object", objectName).Msg("failed to delete hotel image")
			}
		}
	}()

	s.invalidateHotel(ctx, id)

	return nil
}

// Step moves the registration wizard for a draft hotel. Moving past either
// end of the sequence keeps the cursor in place, and goto only lands on
// steps that were already visited.
func (s *serviceImpl) Step(ctx context.Context, req dto.StepRequest, id string) (res dto.StepResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Step")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	hotel, err := s.getHotel(ctx, id)
	if err != nil {
		return res, err
	}

	if hotel.Status == constant.StatusComplete {
		return res, failure.BadRequestFromString("hotel registration is already complete") // nolint:wrapcheck
	}

	flow, err := wizard.Resume(model.RegistrationSteps(), hotel.RegistrationStep)
	if err != nil {
		return res, failure.BadRequestFromString("invalid registration step") // nolint:wrapcheck
	}

	switch req.Action {
	case "next":
		flow.Next()
	case "previous":
		flow.Previous()
	case "goto":
		if err = flow.GoTo(req.Target); err != nil {
			return res, failure.BadRequestFromString(err.Error()) // nolint:wrapcheck
		}
	}

	if flow.Current() != hotel.RegistrationStep {
		updated := shared.TransformFields(struct {
			Step string `db:"registration_step"`
		}{Step: flow.Current()}, user)

		if err = s.repo.Update(ctx, updated, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
			return res, err
		}

		s.invalidateHotel(ctx, id)
	}

	position, total := flow.Position()

	res = dto.StepResponse{
		Step:     flow.Current(),
		Position: position,
		Total:    total,
		IsFirst:  flow.IsFirst(),
		IsLast:   flow.IsLast(),
	}

	return res, nil
}

// Complete promotes a draft to complete. Validation is ordered and stops at
// the first missing field; nothing is written when validation fails.
func (s *serviceImpl) Complete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Complete")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	hotel, err := s.getHotel(ctx, id)
	if err != nil {
		return err
	}

	if hotel.Status == constant.StatusComplete {
		return nil
	}

	if label, unmet := hotel.FirstUnmetRequirement(); unmet {
		return failure.BadRequestFromString(fmt.Sprintf("%s is Required", label)) // nolint:wrapcheck
	}

	updated := shared.TransformFields(struct {
		Status string `db:"status"`
	}{Status: constant.StatusComplete}, user)

	if err = s.repo.Update(ctx, updated, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		return err
	}

	s.invalidateHotel(ctx, id)

	return nil
}

func (s *serviceImpl) Registration(ctx context.Context, id string) (res dto.RegistrationStatusResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Registration")
	defer scope.End()
	defer scope.TraceIfError(err)

	hotel, err := s.getHotel(ctx, id)
	if err != nil {
		return res, err
	}

	res.FromModel(hotel)

	return res, nil
}

func (s *serviceImpl) UploadImages(ctx context.Context, req dto.UploadImagesRequest, id string) (res dto.HotelResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".UploadImages")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	hotel, err := s.getHotel(ctx, id)
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

	hotel.Images = append(hotel.Images, uploaded...)

	updated := map[string]any{
		model.FieldImages: hotel.Images,
	}
	updated[constant.FieldModifiedBy] = user

	if err = s.repo.Update(ctx, updated, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		for _, objectName := range objectNames {
			_ = s.s3.DeleteFile(ctx, bucketName, model.EntityName, objectName)
		}

		return res, err
	}

	res.FromModel(hotel)

	s.invalidateHotel(ctx, id)

	return res, nil
}

// Stats aggregates hotel, room and booking counts plus confirmed revenue.
// Vendors only see their own numbers.
func (s *serviceImpl) Stats(ctx context.Context) (res dto.StatsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Stats")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	role, _ := ctx.Value(constant.ContextKeyUserRole).(string)

	cacheKey := shared.BuildCacheKey(cacheStatsHotel, role, user)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for hotel stats")

		return res, nil
	}

	hotelFilter := gDto.FilterGroup{Operator: gDto.FilterGroupOperatorAnd}
	roomFilter := gDto.FilterGroup{Operator: gDto.FilterGroupOperatorAnd}
	bookingFilter := gDto.FilterGroup{Operator: gDto.FilterGroupOperatorAnd}

	if role == constant.RoleVendor {
		hotelFilter.Filters = append(hotelFilter.Filters, gDto.Filter{
			Table: model.TableName, Field: model.FieldCreatedBy, Operator: gDto.FilterOperatorEq, Value: user,
		})
		roomFilter.Filters = append(roomFilter.Filters, gDto.Filter{
			Table: roomModel.TableName, Field: constant.FieldCreatedBy, Operator: gDto.FilterOperatorEq, Value: user,
		})
		bookingFilter.Filters = append(bookingFilter.Filters, gDto.Filter{
			Table: bookingModel.TableName, Field: bookingModel.FieldVendorID, Operator: gDto.FilterOperatorEq, Value: user,
		})
	}

	group, groupCtx := errgroup.WithContext(ctx)

	group.Go(func() error {
		count, err := s.repo.Count(groupCtx, hotelFilter)
		if err != nil {
			return fmt.Errorf("failed to count hotels: %w", err)
		}
		res.Hotels = count

		return nil
	})

	group.Go(func() error {
		count, err := s.roomRepo.Count(groupCtx, roomFilter)
		if err != nil {
			return fmt.Errorf("failed to count rooms: %w", err)
		}
		res.Rooms = count

		return nil
	})

	group.Go(func() error {
		count, err := s.bookingRepo.Count(groupCtx, bookingFilter)
		if err != nil {
			return fmt.Errorf("failed to count bookings: %w", err)
		}
		res.Bookings = count

		return nil
	})

	revenueFilter := bookingFilter
	revenueFilter.Filters = append(revenueFilter.Filters, gDto.Filter{
		Table: bookingModel.TableName, Field: bookingModel.FieldStatus, Operator: gDto.FilterOperatorEq, Value: constant.BookingStatusConfirmed,
	})

	group.Go(func() error {
		revenue, err := s.bookingRepo.SumTotal(groupCtx, revenueFilter)
		if err != nil {
			return fmt.Errorf("failed to sum booking revenue: %w", err)
		}
		res.Revenue = revenue

		return nil
	})

	if err = group.Wait(); err != nil {
		log.Error().Err(err).Msg("failed to build hotel stats")

		return res, err
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save hotel stats to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) getHotel(ctx context.Context, id string) (model.Hotel, error) {
	hotel, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get hotel")

		return hotel, fmt.Errorf("failed to get hotel: %w", err)
	}

	if hotel.ID == constant.Empty {
		return hotel, failure.NotFound("hotel not found") // nolint:wrapcheck
	}

	return hotel, nil
}

func (s *serviceImpl) invalidateHotel(ctx context.Context, id string) {
	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetHotel, id)); err != nil {
			log.Error().Err(err).Msg("failed to delete hotel cache")
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllHotel)
		shared.InvalidateCaches(c, s.cache, cacheCountHotel)
		shared.InvalidateCaches(c, s.cache, cacheStatsHotel)
	}()
}

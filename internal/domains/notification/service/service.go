package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	kafkaGo "github.com/segmentio/kafka-go"

	"musafir/config"
	"musafir/infras/kafka"
	"musafir/infras/otel"
	bookingDto "musafir/internal/domains/booking/model/dto"
	"musafir/internal/domains/notification/model"
	"musafir/internal/domains/notification/model/dto"
	"musafir/internal/domains/notification/repository"
	"musafir/shared"
	"musafir/shared/cache"
	"musafir/shared/constant"
	gDto "musafir/shared/dto"
	"musafir/shared/failure"
	gModel "musafir/shared/model"
	"musafir/shared/timezone"
)

const cacheNotifications = "notification:gets"

type Notification interface {
	List(ctx context.Context, params gDto.QueryParams) (dto.GetNotificationsResponse, error)
	MarkRead(ctx context.Context, id string) error
	MarkAllRead(ctx context.Context) error
	StartBookingConsumer(ctx context.Context)
}

type serviceImpl struct {
	repo  repository.Notification
	cfg   *config.Config
	cache cache.RedisCache
	otel  otel.Otel
	kafka kafka.Client
}

func New(repo repository.Notification, cfg *config.Config, cache cache.RedisCache, otel otel.Otel, kafkaClient kafka.Client) Notification {
	return &serviceImpl{
		repo:  repo,
		cfg:   cfg,
		cache: cache,
		otel:  otel,
		kafka: kafkaClient,
	}
}

func (s *serviceImpl) List(ctx context.Context, params gDto.QueryParams) (res dto.GetNotificationsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".List")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	cacheKey := shared.BuildCacheKeyWithQuery(shared.BuildCacheKey(cacheNotifications, user), params, userFilter(user))

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for notifications")

		return res, nil
	}

	total, err := s.repo.Count(ctx, userFilter(user))
	if err != nil {
		log.Error().Err(err).Msg("failed to count notifications")

		return res, fmt.Errorf("failed to count notifications: %w", err)
	}

	models, err := s.repo.GetAll(ctx, params, userFilter(user))
	if err != nil {
		log.Error().Err(err).Msg("failed to get notifications")

		return res, fmt.Errorf("failed to get notifications: %w", err)
	}

	unread, err := s.repo.Count(ctx, unreadFilter(user))
	if err != nil {
		log.Error().Err(err).Msg("failed to count unread notifications")

		return res, fmt.Errorf("failed to count unread notifications: %w", err)
	}

	res.FromModels(models, total, params.Limit)
	res.Unread = unread

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save notifications to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) MarkRead(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".MarkRead")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	notification, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get notification")

		return fmt.Errorf("failed to get notification: %w", err)
	}

	if notification.ID == constant.Empty || notification.UserID != user {
		return failure.NotFound("notification not found") // nolint:wrapcheck
	}

	updated := shared.TransformFields(struct {
		Read bool `db:"read"`
	}{Read: true}, user)

	if err = s.repo.Update(ctx, updated, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		return err
	}

	s.invalidate(ctx, user)

	return nil
}

func (s *serviceImpl) MarkAllRead(ctx context.Context) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".MarkAllRead")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	updated := shared.TransformFields(struct {
		Read bool `db:"read"`
	}{Read: true}, user)

	if err = s.repo.Update(ctx, updated, unreadFilter(user)); err != nil {
		return err
	}

	s.invalidate(ctx, user)

	return nil
}

// StartBookingConsumer subscribes to booking events and writes one
// notification per status change to both sides of the booking. It blocks
// until the context is cancelled, so run it on its own goroutine.
func (s *serviceImpl) StartBookingConsumer(ctx context.Context) {
	s.kafka.Consume(ctx, s.cfg.Kafka.ConsumerGroup, constant.KafkaTopicBookingEvents, s.handleBookingEvent)
}

func (s *serviceImpl) handleBookingEvent(msg kafkaGo.Message) {
	ctx, scope := s.otel.NewScope(context.Background(), constant.OtelEventScopeName, constant.OtelEventScopeName+".BookingEvent")
	defer scope.End()

	decoded, err := kafka.DecodeKafkaMessage[bookingDto.BookingEvent](msg)
	if err != nil {
		log.Error().Err(err).Msg("failed to decode booking event")
		scope.TraceError(err)

		return
	}

	event, ok := decoded.Value.(bookingDto.BookingEvent)
	if !ok {
		log.Error().Msg("unexpected booking event payload")

		return
	}

	title := fmt.Sprintf("Booking %s", event.Status)
	body := fmt.Sprintf("Your %s booking is now %s (total %.2f %s)", event.Vertical, event.Status, event.Total, event.Currency)

	recipients := []string{event.UserID}
	if event.VendorID != constant.Empty && event.VendorID != event.UserID {
		recipients = append(recipients, event.VendorID)
	}

	for _, recipient := range recipients {
		notification := model.Notification{
			ID:     uuid.NewString(),
			UserID: recipient,
			Kind:   model.KindBooking,
			Title:  title,
			Body:   body,
			Metadata: gModel.Metadata{
				CreatedAt:  timezone.Now(),
				ModifiedAt: timezone.Now(),
				CreatedBy:  event.UserID,
				ModifiedBy: event.UserID,
			},
		}

		if err := s.repo.Insert(ctx, notification); err != nil {
			log.Error().Err(err).Str("booking", event.ID).Msg("failed to store booking notification")
			scope.TraceError(err)

			continue
		}

		s.invalidate(ctx, recipient)
	}
}

func (s *serviceImpl) invalidate(ctx context.Context, user string) {
	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, shared.BuildCacheKey(cacheNotifications, user))
	}()
}

func userFilter(user string) gDto.FilterGroup {
	return gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{Table: model.TableName, Field: model.FieldUserID, Operator: gDto.FilterOperatorEq, Value: user},
		},
	}
}

func unreadFilter(user string) gDto.FilterGroup {
	filter := userFilter(user)
	filter.Filters = append(filter.Filters, gDto.Filter{
		Table: model.TableName, Field: model.FieldRead, Operator: gDto.FilterOperatorEq, Value: false,
	})

	return filter
}

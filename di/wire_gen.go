// Code generated by Wire. DO NOT EDIT.

//go:generate go run -mod=mod github.com/google/wire/cmd/wire
//go:build !wireinject
// +build !wireinject

package di

import (
	"github.com/google/wire"
	"musafir/config"
	"musafir/infras/exchange"
	"musafir/infras/jwt"
	"musafir/infras/kafka"
	"musafir/infras/otel"
	"musafir/infras/payment"
	"musafir/infras/postgres"
	"musafir/infras/redis"
	"musafir/infras/s3"
	"musafir/internal/domains/auth/service"
	repository4 "musafir/internal/domains/booking/repository"
	service5 "musafir/internal/domains/booking/service"
	repository5 "musafir/internal/domains/car/repository"
	service6 "musafir/internal/domains/car/service"
	service12 "musafir/internal/domains/currency/service"
	repository6 "musafir/internal/domains/flight/repository"
	service7 "musafir/internal/domains/flight/service"
	repository2 "musafir/internal/domains/hotel/repository"
	service3 "musafir/internal/domains/hotel/service"
	repository10 "musafir/internal/domains/notification/repository"
	service11 "musafir/internal/domains/notification/service"
	repository8 "musafir/internal/domains/property/repository"
	service9 "musafir/internal/domains/property/service"
	repository9 "musafir/internal/domains/review/repository"
	service10 "musafir/internal/domains/review/service"
	repository3 "musafir/internal/domains/room/repository"
	service4 "musafir/internal/domains/room/service"
	repository7 "musafir/internal/domains/umrah/repository"
	service8 "musafir/internal/domains/umrah/service"
	"musafir/internal/domains/user/repository"
	service2 "musafir/internal/domains/user/service"
	"musafir/internal/handlers/auth"
	"musafir/internal/handlers/booking"
	"musafir/internal/handlers/car"
	"musafir/internal/handlers/currency"
	"musafir/internal/handlers/flight"
	"musafir/internal/handlers/hotel"
	"musafir/internal/handlers/notification"
	"musafir/internal/handlers/property"
	"musafir/internal/handlers/review"
	"musafir/internal/handlers/room"
	"musafir/internal/handlers/umrah"
	"musafir/internal/handlers/user"
	"musafir/permissions"
	"musafir/shared/cache"
	"musafir/transport/http"
	"musafir/transport/http/middleware"
	"musafir/transport/http/router"
)

// Injectors from wire.go:

func InitializeApp() *App {
	configConfig := config.Get()
	connection := postgres.New(configConfig)
	otelOtel := otel.New(configConfig)
	repositoryUser := repository.New(connection, otelOtel)
	jwtJWT := jwt.New(configConfig)
	serviceAuth := service.New(repositoryUser, jwtJWT, otelOtel)
	handler := auth.New(serviceAuth, otelOtel)
	client := redis.New(configConfig)
	redisCache := cache.NewRedisCache(client, otelOtel)
	serviceUser := service2.New(repositoryUser, configConfig, redisCache, otelOtel)
	userHandler := user.New(serviceUser, otelOtel)
	repositoryHotel := repository2.New(connection, otelOtel)
	repositoryRoom := repository3.New(connection, otelOtel)
	repositoryBooking := repository4.New(connection, otelOtel)
	s3S3 := s3.New(configConfig, otelOtel)
	serviceHotel := service3.New(repositoryHotel, repositoryRoom, repositoryBooking, configConfig, redisCache, otelOtel, s3S3)
	hotelHandler := hotel.New(serviceHotel, otelOtel)
	serviceRoom := service4.New(repositoryRoom, repositoryHotel, configConfig, redisCache, otelOtel)
	roomHandler := room.New(serviceRoom, otelOtel)
	repositoryCar := repository5.New(connection, otelOtel)
	repositoryFlight := repository6.New(connection, otelOtel)
	repositoryUmrah := repository7.New(connection, otelOtel)
	stripe := payment.New(configConfig, otelOtel)
	kafkaClient := kafka.New(configConfig)
	serviceBooking := service5.New(repositoryBooking, repositoryHotel, repositoryCar, repositoryFlight, repositoryUmrah, configConfig, redisCache, otelOtel, stripe, kafkaClient)
	bookingHandler := booking.New(serviceBooking, otelOtel)
	serviceCar := service6.New(repositoryCar, repositoryBooking, configConfig, redisCache, otelOtel)
	carHandler := car.New(serviceCar, otelOtel)
	serviceFlight := service7.New(repositoryFlight, repositoryBooking, configConfig, redisCache, otelOtel)
	flightHandler := flight.New(serviceFlight, otelOtel)
	serviceUmrah := service8.New(repositoryUmrah, configConfig, redisCache, otelOtel)
	umrahHandler := umrah.New(serviceUmrah, otelOtel)
	repositoryProperty := repository8.New(connection, otelOtel)
	serviceProperty := service9.New(repositoryProperty, configConfig, redisCache, otelOtel, s3S3)
	propertyHandler := property.New(serviceProperty, otelOtel)
	repositoryReview := repository9.New(connection, otelOtel)
	serviceReview := service10.New(repositoryReview, configConfig, redisCache, otelOtel)
	reviewHandler := review.New(serviceReview, otelOtel)
	repositoryNotification := repository10.New(connection, otelOtel)
	serviceNotification := service11.New(repositoryNotification, configConfig, redisCache, otelOtel, kafkaClient)
	notificationHandler := notification.New(serviceNotification, otelOtel)
	exchangeClient := exchange.New(configConfig, otelOtel)
	serviceCurrency := service12.New(exchangeClient, configConfig, redisCache, otelOtel)
	currencyHandler := currency.New(serviceCurrency, otelOtel)
	domainHandlers := router.DomainHandlers{
		Auth:         handler,
		User:         userHandler,
		Hotel:        hotelHandler,
		Room:         roomHandler,
		Booking:      bookingHandler,
		Car:          carHandler,
		Flight:       flightHandler,
		Umrah:        umrahHandler,
		Property:     propertyHandler,
		Review:       reviewHandler,
		Notification: notificationHandler,
		Currency:     currencyHandler,
	}
	routerRouter := router.New(domainHandlers)
	appMiddleware := middleware.NewAppMiddleware(otelOtel, configConfig, redisCache)
	permissionData := permissions.Get()
	authRole := middleware.NewAuthRoleMiddleware(jwtJWT, otelOtel, permissionData, configConfig)
	httpHTTP := http.New(configConfig, routerRouter, appMiddleware, authRole)
	app := &App{
		HTTP:         httpHTTP,
		Notification: serviceNotification,
	}
	return app
}

// wire.go:

// App bundles the HTTP server with the background consumers main has to start.
type App struct {
	HTTP         *http.HTTP
	Notification service11.Notification
}

var configurations = wire.NewSet(config.Get)

var infrastructures = wire.NewSet(postgres.New, otel.New, redis.New, jwt.New, s3.New, kafka.New, exchange.New, payment.New)

var middlewares = wire.NewSet(permissions.Get, middleware.NewAppMiddleware, middleware.NewAuthRoleMiddleware)

var sharedHelpers = wire.NewSet(cache.NewRedisCache)

var authDomain = wire.NewSet(repository.New, service.New, service2.New)

var hotelDomain = wire.NewSet(repository2.New, service3.New, repository3.New, service4.New)

var bookingDomain = wire.NewSet(repository4.New, service5.New)

var carDomain = wire.NewSet(repository5.New, service6.New)

var flightDomain = wire.NewSet(repository6.New, service7.New)

var umrahDomain = wire.NewSet(repository7.New, service8.New)

var propertyDomain = wire.NewSet(repository8.New, service9.New)

var reviewDomain = wire.NewSet(repository9.New, service10.New)

var notificationDomain = wire.NewSet(repository10.New, service11.New)

var currencyDomain = wire.NewSet(service12.New)

var domains = wire.NewSet(
	authDomain,
	hotelDomain,
	bookingDomain,
	carDomain,
	flightDomain,
	umrahDomain,
	propertyDomain,
	reviewDomain,
	notificationDomain,
	currencyDomain,
)

var routing = wire.NewSet(wire.Struct(new(router.DomainHandlers), "*"), auth.New, user.New, hotel.New, room.New, booking.New, car.New, flight.New, umrah.New, property.New, review.New, notification.New, currency.New, router.New)

//go:build wireinject
// +build wireinject

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
	"musafir/shared/cache"
	"musafir/transport/http"
	"musafir/transport/http/middleware"
	"musafir/transport/http/router"

	"musafir/permissions"

	authService "musafir/internal/domains/auth/service"
	bookingRepository "musafir/internal/domains/booking/repository"
	bookingService "musafir/internal/domains/booking/service"
	carRepository "musafir/internal/domains/car/repository"
	carService "musafir/internal/domains/car/service"
	currencyService "musafir/internal/domains/currency/service"
	flightRepository "musafir/internal/domains/flight/repository"
	flightService "musafir/internal/domains/flight/service"
	hotelRepository "musafir/internal/domains/hotel/repository"
	hotelService "musafir/internal/domains/hotel/service"
	notificationRepository "musafir/internal/domains/notification/repository"
	notificationService "musafir/internal/domains/notification/service"
	propertyRepository "musafir/internal/domains/property/repository"
	propertyService "musafir/internal/domains/property/service"
	reviewRepository "musafir/internal/domains/review/repository"
	reviewService "musafir/internal/domains/review/service"
	roomRepository "musafir/internal/domains/room/repository"
	roomService "musafir/internal/domains/room/service"
	umrahRepository "musafir/internal/domains/umrah/repository"
	umrahService "musafir/internal/domains/umrah/service"
	userRepository "musafir/internal/domains/user/repository"
	userService "musafir/internal/domains/user/service"

	authHandler "musafir/internal/handlers/auth"
	bookingHandler "musafir/internal/handlers/booking"
	carHandler "musafir/internal/handlers/car"
	currencyHandler "musafir/internal/handlers/currency"
	flightHandler "musafir/internal/handlers/flight"
	hotelHandler "musafir/internal/handlers/hotel"
	notificationHandler "musafir/internal/handlers/notification"
	propertyHandler "musafir/internal/handlers/property"
	reviewHandler "musafir/internal/handlers/review"
	roomHandler "musafir/internal/handlers/room"
	umrahHandler "musafir/internal/handlers/umrah"
	userHandler "musafir/internal/handlers/user"
)

// App bundles the HTTP server with the background consumers main has to start.
type App struct {
	HTTP         *http.HTTP
	Notification notificationService.Notification
}

var configurations = wire.NewSet(
	config.Get,
)

var infrastructures = wire.NewSet(
	postgres.New,
	otel.New,
	redis.New,
	jwt.New,
	s3.New,
	kafka.New,
	exchange.New,
	payment.New,
)

var middlewares = wire.NewSet(
	permissions.Get,
	middleware.NewAppMiddleware,
	middleware.NewAuthRoleMiddleware,
)

var sharedHelpers = wire.NewSet(
	cache.NewRedisCache,
)

var authDomain = wire.NewSet(
	userRepository.New,
	authService.New,
	userService.New,
)

var hotelDomain = wire.NewSet(
	hotelRepository.New,
	hotelService.New,
	roomRepository.New,
	roomService.New,
)

var bookingDomain = wire.NewSet(
	bookingRepository.New,
	bookingService.New,
)

var carDomain = wire.NewSet(
	carRepository.New,
	carService.New,
)

var flightDomain = wire.NewSet(
	flightRepository.New,
	flightService.New,
)

var umrahDomain = wire.NewSet(
	umrahRepository.New,
	umrahService.New,
)

var propertyDomain = wire.NewSet(
	propertyRepository.New,
	propertyService.New,
)

var reviewDomain = wire.NewSet(
	reviewRepository.New,
	reviewService.New,
)

var notificationDomain = wire.NewSet(
	notificationRepository.New,
	notificationService.New,
)

var currencyDomain = wire.NewSet(
	currencyService.New,
)

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

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	authHandler.New,
	userHandler.New,
	hotelHandler.New,
	roomHandler.New,
	bookingHandler.New,
	carHandler.New,
	flightHandler.New,
	umrahHandler.New,
	propertyHandler.New,
	reviewHandler.New,
	notificationHandler.New,
	currencyHandler.New,
	router.New,
)

func InitializeApp() *App {
	wire.Build(
		configurations,
		infrastructures,
		middlewares,
		sharedHelpers,
		domains,
		routing,
		http.New,
		wire.Struct(new(App), "*"),
	)

	return &App{}
}

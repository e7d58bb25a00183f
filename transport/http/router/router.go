package router

import (
	"github.com/go-chi/chi/v5"

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
)

type DomainHandlers struct {
	Auth         auth.Handler
	User         user.Handler
	Hotel        hotel.Handler
	Room         room.Handler
	Booking      booking.Handler
	Car          car.Handler
	Flight       flight.Handler
	Umrah        umrah.Handler
	Property     property.Handler
	Review       review.Handler
	Notification notification.Handler
	Currency     currency.Handler
}

type Router struct {
	DomainHandlers DomainHandlers
}

func (r *Router) SetupRoutes(router chi.Router) {
	router.Route("/v1", func(routerGroup chi.Router) {
		r.DomainHandlers.Auth.Router(routerGroup)
		r.DomainHandlers.User.Router(routerGroup)
		r.DomainHandlers.Hotel.Router(routerGroup)
		r.DomainHandlers.Room.Router(routerGroup)
		r.DomainHandlers.Booking.Router(routerGroup)
		r.DomainHandlers.Car.Router(routerGroup)
		r.DomainHandlers.Flight.Router(routerGroup)
		r.DomainHandlers.Umrah.Router(routerGroup)
		r.DomainHandlers.Property.Router(routerGroup)
		r.DomainHandlers.Review.Router(routerGroup)
		r.DomainHandlers.Notification.Router(routerGroup)
		r.DomainHandlers.Currency.Router(routerGroup)
	})
}

func New(domainHandlers DomainHandlers) Router {
	return Router{
		DomainHandlers: domainHandlers,
	}
}

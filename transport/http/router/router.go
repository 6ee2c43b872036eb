package router

import (
	"hostal/internal/handlers/auth"
	"hostal/internal/handlers/payment"
	"hostal/internal/handlers/paypal"
	"hostal/internal/handlers/promotion"
	"hostal/internal/handlers/reservation"
	"hostal/internal/handlers/review"
	"hostal/internal/handlers/room"
	"hostal/internal/handlers/user"

	"github.com/go-chi/chi/v5"
)

type DomainHandlers struct {
	Auth        auth.Handler
	Room        room.Handler
	Reservation reservation.Handler
	Payment     payment.Handler
	Paypal      paypal.Handler
	Promotion   promotion.Handler
	Review      review.Handler
	User        user.Handler
}

type Router struct {
	DomainHandlers DomainHandlers
}

func (r *Router) SetupRoutes(router chi.Router) {
	router.Route("/v1", func(routerGroup chi.Router) {
		r.DomainHandlers.Auth.Router(routerGroup)
		r.DomainHandlers.Room.Router(routerGroup)
		r.DomainHandlers.Reservation.Router(routerGroup)
		r.DomainHandlers.Payment.Router(routerGroup)
		r.DomainHandlers.Paypal.Router(routerGroup)
		r.DomainHandlers.Promotion.Router(routerGroup)
		r.DomainHandlers.Review.Router(routerGroup)
		r.DomainHandlers.User.Router(routerGroup)
	})
}

func New(domainHandlers DomainHandlers) Router {
	return Router{
		DomainHandlers: domainHandlers,
	}
}

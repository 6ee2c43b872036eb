//go:build wireinject
// +build wireinject

package di

import (
	"hostal/config"
	"hostal/infras/jwt"
	"hostal/infras/otel"
	"hostal/infras/paypal"
	"hostal/infras/postgres"
	"hostal/infras/redis"
	"hostal/infras/s3"
	"hostal/infras/stripe"
	"hostal/permissions"
	"hostal/shared/cache"
	"hostal/transport/http"
	"hostal/transport/http/middleware"
	"hostal/transport/http/router"

	"github.com/google/wire"

	authService "hostal/internal/domains/auth/service"
	paymentRepository "hostal/internal/domains/payment/repository"
	paymentService "hostal/internal/domains/payment/service"
	paypalRepository "hostal/internal/domains/paypal/repository"
	paypalService "hostal/internal/domains/paypal/service"
	promotionRepository "hostal/internal/domains/promotion/repository"
	promotionService "hostal/internal/domains/promotion/service"
	reservationRepository "hostal/internal/domains/reservation/repository"
	reservationService "hostal/internal/domains/reservation/service"
	reviewRepository "hostal/internal/domains/review/repository"
	reviewService "hostal/internal/domains/review/service"
	roomRepository "hostal/internal/domains/room/repository"
	roomService "hostal/internal/domains/room/service"
	userRepository "hostal/internal/domains/user/repository"
	userService "hostal/internal/domains/user/service"

	authHandler "hostal/internal/handlers/auth"
	paymentHandler "hostal/internal/handlers/payment"
	paypalHandler "hostal/internal/handlers/paypal"
	promotionHandler "hostal/internal/handlers/promotion"
	reservationHandler "hostal/internal/handlers/reservation"
	reviewHandler "hostal/internal/handlers/review"
	roomHandler "hostal/internal/handlers/room"
	userHandler "hostal/internal/handlers/user"
)

var configurations = wire.NewSet(
	config.Get,
)

var infrastructures = wire.NewSet(
	postgres.New,
	otel.New,
	redis.New,
	jwt.New,
	s3.New,
	stripe.New,
	paypal.New,
)

var middlewares = wire.NewSet(
	permissions.Get,
	middleware.NewAppMiddleware,
	middleware.NewAuthRoleMiddleware,
)

var sharedHelpers = wire.NewSet(
	cache.NewRedisCache,
)

var roomDomain = wire.NewSet(
	roomRepository.New,
	roomService.New,
)

var reservationDomain = wire.NewSet(
	reservationRepository.New,
	reservationService.New,
)

var paymentDomain = wire.NewSet(
	paymentRepository.New,
	paymentService.New,
)

var paypalDomain = wire.NewSet(
	paypalRepository.New,
	paypalService.New,
)

var promotionDomain = wire.NewSet(
	promotionRepository.New,
	promotionService.New,
)

var reviewDomain = wire.NewSet(
	reviewRepository.New,
	reviewService.New,
)

var userDomain = wire.NewSet(
	userRepository.New,
	userService.New,
)

var authDomain = wire.NewSet(
	authService.New,
)

var domains = wire.NewSet(
	roomDomain,
	reservationDomain,
	paymentDomain,
	paypalDomain,
	promotionDomain,
	reviewDomain,
	userDomain,
	authDomain,
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	authHandler.New,
	roomHandler.New,
	reservationHandler.New,
	paymentHandler.New,
	paypalHandler.New,
	promotionHandler.New,
	reviewHandler.New,
	userHandler.New,
	router.New,
)

func InitializeService() *http.HTTP {
	wire.Build(
		configurations,
		infrastructures,
		middlewares,
		sharedHelpers,
		domains,
		routing,
		http.New,
	)

	return &http.HTTP{}
}

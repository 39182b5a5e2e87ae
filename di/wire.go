//go:build wireinject
// +build wireinject

package di

import (
	"parkspot/config"
	"parkspot/infras/jwt"
	"parkspot/infras/kafka"
	"parkspot/infras/otel"
	"parkspot/infras/postgres"
	"parkspot/infras/redis"
	"parkspot/infras/s3"
	"parkspot/internal/domains/dashboard/aggregator"
	"parkspot/internal/events"
	"parkspot/internal/integrations/geocoding"
	"parkspot/permissions"
	"parkspot/shared/cache"
	"parkspot/transport/http"
	"parkspot/transport/http/middleware"
	"parkspot/transport/http/router"

	authService "parkspot/internal/domains/auth/service"
	bookingRepository "parkspot/internal/domains/booking/repository"
	bookingService "parkspot/internal/domains/booking/service"
	dashboardService "parkspot/internal/domains/dashboard/service"
	facilityRepository "parkspot/internal/domains/facility/repository"
	facilityService "parkspot/internal/domains/facility/service"
	statsRepository "parkspot/internal/domains/stats/repository"
	statsService "parkspot/internal/domains/stats/service"
	userRepository "parkspot/internal/domains/user/repository"
	userService "parkspot/internal/domains/user/service"
	vehicleRepository "parkspot/internal/domains/vehicle/repository"
	vehicleService "parkspot/internal/domains/vehicle/service"

	authHandler "parkspot/internal/handlers/auth"
	bookingHandler "parkspot/internal/handlers/booking"
	dashboardHandler "parkspot/internal/handlers/dashboard"
	facilityHandler "parkspot/internal/handlers/facility"
	statsHandler "parkspot/internal/handlers/stats"
	userHandler "parkspot/internal/handlers/user"
	vehicleHandler "parkspot/internal/handlers/vehicle"

	"github.com/google/wire"
)

var configurations = wire.NewSet(
	config.Get,
)

var infrastructures = wire.NewSet(
	postgres.New,
	otel.New,
	redis.New,
	jwt.New,
	kafka.New,
	s3.New,
	permissions.Get,
)

var middlewares = wire.NewSet(
	middleware.NewAppMiddleware,
	middleware.NewAuthRoleMiddleware,
)

var sharedHelpers = wire.NewSet(
	cache.NewRedisCache,
)

var integrations = wire.NewSet(
	geocoding.New,
)

var userDomain = wire.NewSet(
	userRepository.New,
	userService.New,
)

var authDomain = wire.NewSet(
	authService.New,
)

var vehicleDomain = wire.NewSet(
	vehicleRepository.New,
	vehicleService.New,
)

var facilityDomain = wire.NewSet(
	facilityRepository.New,
	facilityService.New,
)

var bookingDomain = wire.NewSet(
	bookingRepository.New,
	bookingService.New,
)

var statsDomain = wire.NewSet(
	statsRepository.New,
	statsService.New,
)

var dashboardDomain = wire.NewSet(
	dashboardService.New,
	aggregator.New,
)

var eventConsumers = wire.NewSet(
	events.NewConsumer,
)

var domains = wire.NewSet(
	userDomain,
	authDomain,
	vehicleDomain,
	facilityDomain,
	bookingDomain,
	statsDomain,
	dashboardDomain,
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	authHandler.New,
	userHandler.New,
	vehicleHandler.New,
	facilityHandler.New,
	bookingHandler.New,
	statsHandler.New,
	dashboardHandler.New,
	router.New,
)

func InitializeService() *http.HTTP {
	wire.Build(
		configurations,
		infrastructures,
		middlewares,
		sharedHelpers,
		integrations,
		domains,
		eventConsumers,
		routing,
		http.New,
	)

	return &http.HTTP{}
}

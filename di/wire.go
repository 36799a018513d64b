//go:build wireinject
// +build wireinject

package di

import (
	"lodge/config"
	"lodge/infras/jwt"
	"lodge/infras/kafka"
	"lodge/infras/otel"
	"lodge/infras/postgres"
	"lodge/infras/redis"
	"lodge/infras/s3"
	"lodge/permissions"
	"lodge/shared/cache"
	"lodge/transport/http"
	"lodge/transport/http/middleware"
	"lodge/transport/http/router"

	"github.com/google/wire"

	authService "lodge/internal/domains/auth/service"
	billRepository "lodge/internal/domains/bill/repository"
	billService "lodge/internal/domains/bill/service"
	bookingRepository "lodge/internal/domains/booking/repository"
	bookingService "lodge/internal/domains/booking/service"
	bottleRepository "lodge/internal/domains/bottle/repository"
	bottleService "lodge/internal/domains/bottle/service"
	guestRepository "lodge/internal/domains/guest/repository"
	guestService "lodge/internal/domains/guest/service"
	inventoryRepository "lodge/internal/domains/inventory/repository"
	inventoryService "lodge/internal/domains/inventory/service"
	menuRepository "lodge/internal/domains/menu/repository"
	menuService "lodge/internal/domains/menu/service"
	orderRepository "lodge/internal/domains/order/repository"
	orderService "lodge/internal/domains/order/service"
	reportRepository "lodge/internal/domains/report/repository"
	reportService "lodge/internal/domains/report/service"
	roomRepository "lodge/internal/domains/room/repository"
	roomService "lodge/internal/domains/room/service"
	userRepository "lodge/internal/domains/user/repository"
	userService "lodge/internal/domains/user/service"
	vendorRepository "lodge/internal/domains/vendors/repository"
	vendorService "lodge/internal/domains/vendors/service"

	authHandler "lodge/internal/handlers/auth"
	billHandler "lodge/internal/handlers/bill"
	bookingHandler "lodge/internal/handlers/booking"
	bottleHandler "lodge/internal/handlers/bottle"
	guestHandler "lodge/internal/handlers/guest"
	inventoryHandler "lodge/internal/handlers/inventory"
	menuHandler "lodge/internal/handlers/menu"
	orderHandler "lodge/internal/handlers/order"
	reportHandler "lodge/internal/handlers/report"
	roomHandler "lodge/internal/handlers/room"
	userHandler "lodge/internal/handlers/user"
	vendorHandler "lodge/internal/handlers/vendors"
)

var configurations = wire.NewSet(
	config.Get,
	permissions.Get,
)

var infrastructures = wire.NewSet(
	postgres.New,
	otel.New,
	redis.New,
	jwt.New,
	kafka.New,
	s3.New,
)

var middlewares = wire.NewSet(
	middleware.NewAppMiddleware,
	middleware.NewAuthRoleMiddleware,
)

var sharedHelpers = wire.NewSet(
	cache.NewRedisCache,
)

var authDomain = wire.NewSet(
	authService.New,
)

var userDomain = wire.NewSet(
	userRepository.New,
	userService.New,
)

var roomDomain = wire.NewSet(
	roomRepository.New,
	roomService.New,
)

var guestDomain = wire.NewSet(
	guestRepository.New,
	guestService.New,
)

var bookingDomain = wire.NewSet(
	bookingRepository.New,
	bookingService.New,
)

var billDomain = wire.NewSet(
	billRepository.New,
	billService.New,
)

var menuDomain = wire.NewSet(
	menuRepository.New,
	menuService.New,
)

var bottleDomain = wire.NewSet(
	bottleRepository.New,
	bottleService.New,
)

var orderDomain = wire.NewSet(
	orderRepository.New,
	orderService.New,
)

var inventoryDomain = wire.NewSet(
	inventoryRepository.NewStockItem,
	inventoryRepository.NewStockTransaction,
	inventoryService.New,
)

var vendorDomain = wire.NewSet(
	vendorRepository.New,
	vendorRepository.NewPurchaseOrder,
	vendorService.New,
)

var reportDomain = wire.NewSet(
	reportRepository.New,
	reportService.New,
)

var domains = wire.NewSet(
	authDomain,
	userDomain,
	roomDomain,
	guestDomain,
	bookingDomain,
	billDomain,
	menuDomain,
	bottleDomain,
	orderDomain,
	inventoryDomain,
	vendorDomain,
	reportDomain,
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	authHandler.New,
	userHandler.New,
	roomHandler.New,
	guestHandler.New,
	bookingHandler.New,
	billHandler.New,
	menuHandler.New,
	bottleHandler.New,
	orderHandler.New,
	inventoryHandler.New,
	vendorHandler.New,
	reportHandler.New,
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

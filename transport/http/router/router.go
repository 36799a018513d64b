package router

import (
	"lodge/internal/handlers/auth"
	"lodge/internal/handlers/bill"
	"lodge/internal/handlers/booking"
	"lodge/internal/handlers/bottle"
	"lodge/internal/handlers/guest"
	"lodge/internal/handlers/inventory"
	"lodge/internal/handlers/menu"
	"lodge/internal/handlers/order"
	"lodge/internal/handlers/report"
	"lodge/internal/handlers/room"
	"lodge/internal/handlers/user"
	"lodge/internal/handlers/vendors"
	"lodge/transport/http/middleware"

	"github.com/go-chi/chi/v5"
)

type DomainHandlers struct {
	Auth      auth.Handler
	User      user.Handler
	Room      room.Handler
	Guest     guest.Handler
	Booking   booking.Handler
	Bill      bill.Handler
	Menu      menu.Handler
	Bottle    bottle.Handler
	Order     order.Handler
	Inventory inventory.Handler
	Vendor    vendor.Handler
	Report    report.Handler
}

type Router struct {
	DomainHandlers DomainHandlers
	AuthRole       middleware.AuthRole
}

func (r *Router) SetupRoutes(router chi.Router) {
	router.Route("/v1", func(routerGroup chi.Router) {
		routerGroup.Use(r.AuthRole.Auth)
		routerGroup.Use(r.AuthRole.RBAC)

		r.DomainHandlers.Auth.Router(routerGroup)
		r.DomainHandlers.User.Router(routerGroup)
		r.DomainHandlers.Room.Router(routerGroup)
		r.DomainHandlers.Guest.Router(routerGroup)
		r.DomainHandlers.Booking.Router(routerGroup)
		r.DomainHandlers.Bill.Router(routerGroup)
		r.DomainHandlers.Menu.Router(routerGroup)
		r.DomainHandlers.Bottle.Router(routerGroup)
		r.DomainHandlers.Order.Router(routerGroup)
		r.DomainHandlers.Inventory.Router(routerGroup)
		r.DomainHandlers.Vendor.Router(routerGroup)
		r.DomainHandlers.Report.Router(routerGroup)
	})
}

func New(domainHandlers DomainHandlers, authRole middleware.AuthRole) Router {
	return Router{
		DomainHandlers: domainHandlers,
		AuthRole:       authRole,
	}
}

package api

import (
	"orderdesk_server/api/health"
	"orderdesk_server/api/orders"
	"orderdesk_server/database"
	"orderdesk_server/services"
	"orderdesk_server/structs"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
)

type routerManager struct {
	healthRoutes *health.HealthRoutesManager
	orderRoutes  *orders.OrderRoutesManager
}

func NewRouterManager(logger *gecho.Logger, db *database.DB, cfg *structs.Config) *routerManager {
	sm := services.NewServiceManager(logger, cfg, db)

	return &routerManager{
		healthRoutes: health.NewHealthRoutesManager(sm.HealthService),
		orderRoutes:  orders.NewOrderRoutesManager(logger, cfg, sm.OrderService, sm.PaymentService),
	}
}

func (rm *routerManager) RegisterRoutes(r chi.Router) {
	rm.healthRoutes.RegisterRoutes(r)
	rm.orderRoutes.RegisterRoutes(r)
}

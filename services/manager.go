package services

import (
	"orderdesk_server/database"
	"orderdesk_server/structs"

	"github.com/MonkyMars/gecho"
)

type ServiceManager struct {
	EmailService   *EmailService
	CacheService   *CacheService
	HealthService  *HealthService
	OrderService   *OrderService
	PaymentService *PaymentService
}

func NewServiceManager(logger *gecho.Logger, cfg *structs.Config, db *database.DB) *ServiceManager {
	store := NewOrderRepository(logger, db)
	cacheService := NewCacheService(logger, cfg)
	emailService := NewEmailService(logger, cfg)
	healthService := NewHealthService(logger, db)
	orderService := NewOrderService(logger, cfg, store, cacheService)
	paymentService := NewPaymentService(logger, cfg, store, emailService, cacheService)

	return &ServiceManager{
		EmailService:   emailService,
		CacheService:   cacheService,
		HealthService:  healthService,
		OrderService:   orderService,
		PaymentService: paymentService,
	}
}

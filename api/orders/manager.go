package orders

import (
	"orderdesk_server/services"
	"orderdesk_server/structs"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
)

type OrderRoutesManager struct {
	orderService   *services.OrderService
	paymentService *services.PaymentService
	logger         *gecho.Logger
	cfg            *structs.Config
}

func NewOrderRoutesManager(logger *gecho.Logger, cfg *structs.Config, orderService *services.OrderService, paymentService *services.PaymentService) *OrderRoutesManager {
	return &OrderRoutesManager{
		orderService:   orderService,
		paymentService: paymentService,
		logger:         logger,
		cfg:            cfg,
	}
}

func (orm *OrderRoutesManager) RegisterRoutes(r chi.Router) {
	r.Route("/order", func(r chi.Router) {
		r.Post("/", orm.CreateOrder)
		r.Get("/{orderId}", orm.GetOrder)
		r.Put("/{orderId}", orm.UpdateOrder)
		r.Post("/{orderId}/payment", orm.UploadPaymentProof)
	})
}

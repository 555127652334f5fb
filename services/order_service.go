package services

import (
	"context"
	"fmt"
	"orderdesk_server/lib"
	"orderdesk_server/structs"
	"orderdesk_server/structs/tables"
	"time"

	"github.com/MonkyMars/gecho"
	"github.com/google/uuid"
)

// OrderService enforces the order lifecycle: orders are created pending,
// stay editable while pending, and are sealed once a payment proof lands.
type OrderService struct {
	logger *gecho.Logger
	cfg    *structs.Config
	store  OrderStore
	cache  *CacheService
}

func NewOrderService(logger *gecho.Logger, cfg *structs.Config, store OrderStore, cache *CacheService) *OrderService {
	return &OrderService{
		logger: logger,
		cfg:    cfg,
		store:  store,
		cache:  cache,
	}
}

func (s *OrderService) CreateOrder(ctx context.Context, req *structs.CreateOrderRequest) (*structs.OrderResponse, error) {
	referenceCode, err := lib.GenerateReferenceCode(ctx, s.store.ReferenceCodeExists)
	if err != nil {
		return nil, fmt.Errorf("failed to generate reference code: %w", err)
	}

	paymentCode, err := lib.GeneratePaymentCode(ctx, s.store.PaymentCodeExists)
	if err != nil {
		return nil, fmt.Errorf("failed to generate payment code: %w", err)
	}

	now := time.Now()
	order := &tables.Order{
		Id:            uuid.New(),
		Name:          req.Name,
		Email:         req.Email,
		PhoneNumber:   req.PhoneNumber,
		Street:        req.Street,
		City:          req.City,
		State:         req.State,
		Country:       req.Country,
		ReferenceCode: referenceCode,
		PaymentCode:   paymentCode,
		Status:        tables.OrderStatusPending,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	created, err := s.store.Create(ctx, order, buildItems(order.Id, req.Items))
	if err != nil {
		s.logger.Error("Failed to persist order",
			gecho.Field("error", err),
			gecho.Field("reference_code", referenceCode))
		return nil, err
	}

	s.logger.Info("Order created",
		gecho.Field("order_id", created.Id),
		gecho.Field("reference_code", created.ReferenceCode))

	return structs.NewOrderResponse(created), nil
}

func (s *OrderService) GetOrder(ctx context.Context, id uuid.UUID) (*structs.OrderResponse, error) {
	if cached := s.cache.GetOrder(ctx, id); cached != nil {
		return cached, nil
	}

	order, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	resp := structs.NewOrderResponse(order)
	s.cache.SetOrder(ctx, resp)
	return resp, nil
}

func (s *OrderService) UpdateOrder(ctx context.Context, id uuid.UUID, req *structs.UpdateOrderRequest) (*structs.OrderResponse, error) {
	current, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if current.Status != tables.OrderStatusPending {
		return nil, fmt.Errorf("%w: order cannot be updated after proof of payment has been submitted", lib.ErrForbidden)
	}

	fields := map[string]any{}
	if req.Name != nil {
		fields["name"] = *req.Name
	}
	if req.Email != nil {
		fields["email"] = *req.Email
	}
	if req.PhoneNumber != nil {
		fields["phone_number"] = *req.PhoneNumber
	}
	if req.Street != nil {
		fields["street"] = *req.Street
	}
	if req.City != nil {
		fields["city"] = *req.City
	}
	if req.State != nil {
		fields["state"] = *req.State
	}
	if req.Country != nil {
		fields["country"] = *req.Country
	}

	var items []*tables.OrderItem
	if req.Items != nil {
		items = buildItems(id, *req.Items)
	}

	updated, err := s.store.Update(ctx, id, fields, items)
	if err != nil {
		return nil, err
	}

	s.cache.InvalidateOrder(ctx, id)

	s.logger.Info("Order updated",
		gecho.Field("order_id", updated.Id),
		gecho.Field("items_replaced", items != nil))

	return structs.NewOrderResponse(updated), nil
}

func buildItems(orderId uuid.UUID, reqs []structs.OrderItemRequest) []*tables.OrderItem {
	items := make([]*tables.OrderItem, 0, len(reqs))
	for _, item := range reqs {
		items = append(items, &tables.OrderItem{
			Id:       uuid.New(),
			OrderId:  orderId,
			Name:     item.Name,
			Amount:   item.Amount,
			Quantity: item.Quantity,
		})
	}
	return items
}

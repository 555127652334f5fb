package services_test

import (
	"context"
	"errors"
	"sync"

	"orderdesk_server/lib"
	"orderdesk_server/services"
	"orderdesk_server/structs"
	"orderdesk_server/structs/tables"

	"github.com/MonkyMars/gecho"
	"github.com/google/uuid"
)

// fakeStore is an in-memory OrderStore with the same lifecycle semantics as
// the Postgres-backed repository: mutations only land while the order is
// still pending.
type fakeStore struct {
	mu     sync.Mutex
	orders map[uuid.UUID]*tables.Order
}

func newFakeStore() *fakeStore {
	return &fakeStore{orders: map[uuid.UUID]*tables.Order{}}
}

func (fs *fakeStore) Create(ctx context.Context, order *tables.Order, items []*tables.OrderItem) (*tables.Order, error) {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	for _, item := range items {
		item.OrderId = order.Id
	}
	order.Items = items
	fs.orders[order.Id] = order
	return order, nil
}

func (fs *fakeStore) Get(ctx context.Context, id uuid.UUID) (*tables.Order, error) {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	order, ok := fs.orders[id]
	if !ok {
		return nil, lib.ErrNotFound
	}
	return order, nil
}

func (fs *fakeStore) Update(ctx context.Context, id uuid.UUID, fields map[string]any, items []*tables.OrderItem) (*tables.Order, error) {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	order, ok := fs.orders[id]
	if !ok {
		return nil, lib.ErrNotFound
	}
	if order.Status != tables.OrderStatusPending {
		return nil, lib.ErrForbidden
	}

	for column, value := range fields {
		s, _ := value.(string)
		switch column {
		case "name":
			order.Name = s
		case "email":
			order.Email = s
		case "phone_number":
			order.PhoneNumber = s
		case "street":
			order.Street = s
		case "city":
			order.City = s
		case "state":
			order.State = s
		case "country":
			order.Country = s
		}
	}

	if items != nil {
		for _, item := range items {
			item.OrderId = id
		}
		order.Items = items
	}

	return order, nil
}

func (fs *fakeStore) SetPaymentProof(ctx context.Context, id uuid.UUID, filename string) (*tables.Order, error) {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	order, ok := fs.orders[id]
	if !ok {
		return nil, lib.ErrNotFound
	}
	if order.Status != tables.OrderStatusPending {
		return nil, lib.ErrForbidden
	}

	order.ProofOfPayment = &filename
	order.Status = tables.OrderStatusSuccessful
	return order, nil
}

func (fs *fakeStore) ReferenceCodeExists(ctx context.Context, code string) (bool, error) {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	for _, order := range fs.orders {
		if order.ReferenceCode == code {
			return true, nil
		}
	}
	return false, nil
}

func (fs *fakeStore) PaymentCodeExists(ctx context.Context, code string) (bool, error) {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	for _, order := range fs.orders {
		if order.PaymentCode == code {
			return true, nil
		}
	}
	return false, nil
}

// captureMailer records every message instead of delivering it.
type captureMailer struct {
	mu   sync.Mutex
	sent []*services.MailMessage
}

func (cm *captureMailer) Send(msg *services.MailMessage) error {
	cm.mu.Lock()
	defer cm.mu.Unlock()
	cm.sent = append(cm.sent, msg)
	return nil
}

func (cm *captureMailer) messages() []*services.MailMessage {
	cm.mu.Lock()
	defer cm.mu.Unlock()
	return append([]*services.MailMessage(nil), cm.sent...)
}

// failMailer rejects every message.
type failMailer struct{}

func (failMailer) Send(msg *services.MailMessage) error {
	return errors.New("smtp: connection refused")
}

func testLogger() *gecho.Logger {
	return gecho.NewDefaultLogger()
}

func testConfig(uploadDir string) *structs.Config {
	return &structs.Config{
		Upload: &structs.UploadConfig{
			Dir:     uploadDir,
			MaxSize: 16 * 1024 * 1024,
		},
		Mail: &structs.MailConfig{
			Host:       "localhost",
			Port:       587,
			From:       "shop@example.com",
			AdminEmail: "admin@example.com",
		},
		Cache: &structs.CacheConfig{},
	}
}

func validCreateRequest() *structs.CreateOrderRequest {
	return &structs.CreateOrderRequest{
		Name:        "Jane Doe",
		Email:       "jane@example.com",
		PhoneNumber: "08012345678",
		Street:      "12 Marina Road",
		City:        "Lagos",
		State:       "Lagos",
		Country:     "Nigeria",
		Items: []structs.OrderItemRequest{
			{Name: "Rose Bouquet", Amount: 5.99, Quantity: 2},
			{Name: "Gift Card", Amount: 9.99, Quantity: 1},
		},
	}
}

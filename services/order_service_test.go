package services_test

import (
	"context"
	"errors"
	"math"
	"regexp"
	"testing"

	"orderdesk_server/lib"
	"orderdesk_server/services"
	"orderdesk_server/structs"
	"orderdesk_server/structs/tables"

	"github.com/google/uuid"
)

const floatTolerance = 1e-9

func closeEnough(a, b float64) bool {
	return math.Abs(a-b) < floatTolerance
}

func newOrderService(t *testing.T) (*services.OrderService, *fakeStore) {
	t.Helper()
	store := newFakeStore()
	svc := services.NewOrderService(testLogger(), testConfig(t.TempDir()), store, &services.CacheService{})
	return svc, store
}

func TestCreateOrder(t *testing.T) {
	svc, store := newOrderService(t)

	order, err := svc.CreateOrder(context.Background(), validCreateRequest())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !regexp.MustCompile(`^ORD-\d{8}-[A-Z0-9]{4}$`).MatchString(order.ReferenceCode) {
		t.Errorf("reference code %q has unexpected format", order.ReferenceCode)
	}
	if !regexp.MustCompile(`^[A-Z0-9]{6}$`).MatchString(order.PaymentCode) {
		t.Errorf("payment code %q has unexpected format", order.PaymentCode)
	}
	if order.OrderStatus != tables.OrderStatusPending {
		t.Errorf("new order status = %q, want pending", order.OrderStatus)
	}
	if order.ProofOfPayment != nil {
		t.Errorf("new order should have no proof of payment, got %q", *order.ProofOfPayment)
	}
	if len(order.Items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(order.Items))
	}
	if !closeEnough(order.Total, 21.97) {
		t.Errorf("total = %v, want 21.97", order.Total)
	}
	if !closeEnough(order.Items[0].LineTotal, 11.98) {
		t.Errorf("first line total = %v, want 11.98", order.Items[0].LineTotal)
	}

	stored, err := store.Get(context.Background(), order.Id)
	if err != nil {
		t.Fatalf("order not persisted: %v", err)
	}
	if stored.ReferenceCode != order.ReferenceCode {
		t.Errorf("persisted reference code %q != response %q", stored.ReferenceCode, order.ReferenceCode)
	}
}

func TestCreateOrderCodesAreUniquePerOrder(t *testing.T) {
	svc, _ := newOrderService(t)

	refs := map[string]bool{}
	payments := map[string]bool{}
	for i := 0; i < 50; i++ {
		order, err := svc.CreateOrder(context.Background(), validCreateRequest())
		if err != nil {
			t.Fatalf("create %d failed: %v", i, err)
		}
		if refs[order.ReferenceCode] {
			t.Fatalf("duplicate reference code %q", order.ReferenceCode)
		}
		if payments[order.PaymentCode] {
			t.Fatalf("duplicate payment code %q", order.PaymentCode)
		}
		refs[order.ReferenceCode] = true
		payments[order.PaymentCode] = true
	}
}

func TestGetOrder(t *testing.T) {
	svc, _ := newOrderService(t)

	created, err := svc.CreateOrder(context.Background(), validCreateRequest())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	fetched, err := svc.GetOrder(context.Background(), created.Id)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if fetched.Id != created.Id || fetched.ReferenceCode != created.ReferenceCode {
		t.Errorf("fetched order does not match created order")
	}
}

func TestGetOrderNotFound(t *testing.T) {
	svc, _ := newOrderService(t)

	_, err := svc.GetOrder(context.Background(), uuid.New())
	if !errors.Is(err, lib.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestUpdateOrderFields(t *testing.T) {
	svc, _ := newOrderService(t)

	created, err := svc.CreateOrder(context.Background(), validCreateRequest())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	city := "Abuja"
	street := "5 Unity Close"
	updated, err := svc.UpdateOrder(context.Background(), created.Id, &structs.UpdateOrderRequest{
		City:   &city,
		Street: &street,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if updated.City != "Abuja" || updated.Street != "5 Unity Close" {
		t.Errorf("fields not updated: city=%q street=%q", updated.City, updated.Street)
	}
	if updated.Name != created.Name {
		t.Errorf("untouched field changed: name=%q", updated.Name)
	}
	if updated.ReferenceCode != created.ReferenceCode || updated.PaymentCode != created.PaymentCode {
		t.Error("codes must never change on update")
	}
	if len(updated.Items) != 2 {
		t.Errorf("items should be untouched when not provided, got %d", len(updated.Items))
	}
}

func TestUpdateOrderReplacesItems(t *testing.T) {
	svc, _ := newOrderService(t)

	created, err := svc.CreateOrder(context.Background(), validCreateRequest())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	items := []structs.OrderItemRequest{
		{Name: "Tulip Bundle", Amount: 9.99, Quantity: 3},
	}
	updated, err := svc.UpdateOrder(context.Background(), created.Id, &structs.UpdateOrderRequest{
		Items: &items,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(updated.Items) != 1 {
		t.Fatalf("expected full item replacement, got %d items", len(updated.Items))
	}
	if updated.Items[0].Name != "Tulip Bundle" {
		t.Errorf("item name = %q", updated.Items[0].Name)
	}
	if !closeEnough(updated.Total, 29.97) {
		t.Errorf("total = %v, want 29.97", updated.Total)
	}
}

func TestUpdateOrderForbiddenAfterPayment(t *testing.T) {
	svc, store := newOrderService(t)

	created, err := svc.CreateOrder(context.Background(), validCreateRequest())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := store.SetPaymentProof(context.Background(), created.Id, "proof.png"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	name := "Someone Else"
	_, err = svc.UpdateOrder(context.Background(), created.Id, &structs.UpdateOrderRequest{Name: &name})
	if !errors.Is(err, lib.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}

	current, _ := store.Get(context.Background(), created.Id)
	if current.Name != "Jane Doe" {
		t.Errorf("sealed order was modified: name=%q", current.Name)
	}
}

func TestUpdateOrderNotFound(t *testing.T) {
	svc, _ := newOrderService(t)

	name := "Jane Doe"
	_, err := svc.UpdateOrder(context.Background(), uuid.New(), &structs.UpdateOrderRequest{Name: &name})
	if !errors.Is(err, lib.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

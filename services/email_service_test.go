package services_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"orderdesk_server/services"
	"orderdesk_server/structs/tables"

	"github.com/google/uuid"
)

func sampleOrder() *tables.Order {
	orderId := uuid.New()
	return &tables.Order{
		Id:            orderId,
		Name:          "Jane Doe",
		Email:         "jane@example.com",
		PhoneNumber:   "08012345678",
		Street:        "12 Marina Road",
		City:          "Lagos",
		State:         "Lagos",
		Country:       "Nigeria",
		ReferenceCode: "ORD-20250314-AB12",
		PaymentCode:   "X7K2P9",
		Status:        tables.OrderStatusSuccessful,
		CreatedAt:     time.Date(2025, 3, 14, 9, 0, 0, 0, time.UTC),
		UpdatedAt:     time.Date(2025, 3, 14, 9, 0, 0, 0, time.UTC),
		Items: []*tables.OrderItem{
			{Id: uuid.New(), OrderId: orderId, Name: "Rose Bouquet", Amount: 5.99, Quantity: 2},
			{Id: uuid.New(), OrderId: orderId, Name: "Gift Card", Amount: 9.99, Quantity: 1},
		},
	}
}

func TestCustomerEmailContent(t *testing.T) {
	mailer := &captureMailer{}
	svc := services.NewEmailServiceWithMailer(testLogger(), testConfig(t.TempDir()), mailer)

	if ok := svc.SendCustomerEmail(sampleOrder()); !ok {
		t.Fatal("expected send to succeed")
	}

	msgs := mailer.messages()
	if len(msgs) != 1 {
		t.Fatalf("expected 1 message, got %d", len(msgs))
	}
	msg := msgs[0]

	if len(msg.To) != 1 || msg.To[0] != "jane@example.com" {
		t.Errorf("recipient = %v, want customer address", msg.To)
	}
	if msg.Subject != "Thank You for Your Order!" {
		t.Errorf("subject = %q", msg.Subject)
	}

	for _, want := range []string{
		"ORD-20250314-AB12",
		"X7K2P9",
		"Rose Bouquet",
		"₦5.99 x 2",
		"₦21.97",
		"12 Marina Road, Lagos, Lagos, Nigeria",
	} {
		if !strings.Contains(msg.Text, want) {
			t.Errorf("customer text body missing %q", want)
		}
	}
	if !strings.Contains(msg.HTML, "X7K2P9") {
		t.Error("customer HTML body missing payment code")
	}
}

func TestAdminEmailContent(t *testing.T) {
	mailer := &captureMailer{}
	svc := services.NewEmailServiceWithMailer(testLogger(), testConfig(t.TempDir()), mailer)

	if ok := svc.SendAdminEmail(sampleOrder()); !ok {
		t.Fatal("expected send to succeed")
	}

	msgs := mailer.messages()
	if len(msgs) != 1 {
		t.Fatalf("expected 1 message, got %d", len(msgs))
	}
	msg := msgs[0]

	if len(msg.To) != 1 || msg.To[0] != "admin@example.com" {
		t.Errorf("recipient = %v, want admin address", msg.To)
	}
	if msg.Subject != "New Order Created - ORD-20250314-AB12" {
		t.Errorf("subject = %q", msg.Subject)
	}

	for _, want := range []string{
		"Jane Doe",
		"08012345678",
		"X7K2P9",
		"₦21.97",
	} {
		if !strings.Contains(msg.Text, want) {
			t.Errorf("admin text body missing %q", want)
		}
	}
}

func TestAdminEmailSkippedWhenUnconfigured(t *testing.T) {
	mailer := &captureMailer{}
	cfg := testConfig(t.TempDir())
	cfg.Mail.AdminEmail = ""

	svc := services.NewEmailServiceWithMailer(testLogger(), cfg, mailer)

	if ok := svc.SendAdminEmail(sampleOrder()); ok {
		t.Error("expected send to report false without an admin address")
	}
	if len(mailer.messages()) != 0 {
		t.Error("no message should be dispatched without an admin address")
	}
}

func TestEmailsAttachStoredProof(t *testing.T) {
	mailer := &captureMailer{}
	cfg := testConfig(t.TempDir())
	svc := services.NewEmailServiceWithMailer(testLogger(), cfg, mailer)

	proofName := "20250314_092653_receipt.png"
	if err := os.WriteFile(filepath.Join(cfg.Upload.Dir, proofName), []byte("img"), 0o644); err != nil {
		t.Fatalf("failed to write proof fixture: %v", err)
	}

	order := sampleOrder()
	order.ProofOfPayment = &proofName

	svc.SendCustomerEmail(order)
	svc.SendAdminEmail(order)

	for _, msg := range mailer.messages() {
		if msg.AttachmentPath != filepath.Join(cfg.Upload.Dir, proofName) {
			t.Errorf("attachment path = %q", msg.AttachmentPath)
		}
	}
}

func TestEmailsSkipMissingProofFile(t *testing.T) {
	mailer := &captureMailer{}
	svc := services.NewEmailServiceWithMailer(testLogger(), testConfig(t.TempDir()), mailer)

	proofName := "never_written.png"
	order := sampleOrder()
	order.ProofOfPayment = &proofName

	svc.SendCustomerEmail(order)

	msgs := mailer.messages()
	if len(msgs) != 1 {
		t.Fatalf("expected 1 message, got %d", len(msgs))
	}
	if msgs[0].AttachmentPath != "" {
		t.Errorf("expected no attachment for a missing file, got %q", msgs[0].AttachmentPath)
	}
}

func TestSendErrorReportsFalse(t *testing.T) {
	svc := services.NewEmailServiceWithMailer(testLogger(), testConfig(t.TempDir()), failMailer{})

	if ok := svc.SendCustomerEmail(sampleOrder()); ok {
		t.Error("expected customer send to report false on transport error")
	}
	if ok := svc.SendAdminEmail(sampleOrder()); ok {
		t.Error("expected admin send to report false on transport error")
	}
}

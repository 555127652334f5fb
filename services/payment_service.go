package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"orderdesk_server/lib"
	"orderdesk_server/structs"
	"orderdesk_server/structs/tables"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/MonkyMars/gecho"
	"github.com/google/uuid"
)

// PaymentService accepts payment-proof uploads: it validates the file, stores
// the blob, seals the order and fans out the notification emails.
type PaymentService struct {
	logger *gecho.Logger
	cfg    *structs.Config
	store  OrderStore
	emails *EmailService
	cache  *CacheService
}

// ProofUploadResult is the payload of a successful upload: the sealed order
// and the per-recipient outcome of the email dispatch.
type ProofUploadResult struct {
	Order      *structs.OrderResponse `json:"order"`
	EmailsSent structs.EmailDispatch  `json:"emails_sent"`
}

func NewPaymentService(logger *gecho.Logger, cfg *structs.Config, store OrderStore, emails *EmailService, cache *CacheService) *PaymentService {
	return &PaymentService{
		logger: logger,
		cfg:    cfg,
		store:  store,
		emails: emails,
		cache:  cache,
	}
}

func (s *PaymentService) UploadProof(ctx context.Context, id uuid.UUID, filename string, size int64, file io.Reader) (*ProofUploadResult, error) {
	order, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if order.Status != tables.OrderStatusPending {
		return nil, fmt.Errorf("%w: proof of payment has already been submitted for this order", lib.ErrForbidden)
	}

	if filename == "" {
		return nil, lib.NewValidationError("proof_of_payment", "no file selected")
	}
	if !lib.AllowedProofFile(filename) {
		return nil, lib.NewValidationError("proof_of_payment",
			"invalid file type, allowed types: "+strings.Join(lib.AllowedProofExtensions(), ", "))
	}
	if size > s.cfg.Upload.MaxSize {
		return nil, lib.NewValidationError("proof_of_payment", "file exceeds the maximum upload size")
	}

	storedName := lib.TimestampedFilename(filename, time.Now())
	if err := s.saveFile(storedName, file); err != nil {
		s.logger.Error("Failed to store payment proof",
			gecho.Field("error", err),
			gecho.Field("order_id", id),
			gecho.Field("filename", storedName))
		return nil, err
	}

	updated, err := s.store.SetPaymentProof(ctx, id, storedName)
	if err != nil {
		// A concurrent upload may have won the conditional update; the file
		// written above stays behind as an orphan.
		if errors.Is(err, lib.ErrForbidden) {
			return nil, fmt.Errorf("%w: proof of payment has already been submitted for this order", lib.ErrForbidden)
		}
		return nil, err
	}

	s.cache.InvalidateOrder(ctx, id)

	// Email failure is non-fatal: the state transition stands, the outcome is
	// reported per recipient.
	sent := structs.EmailDispatch{
		Customer: s.emails.SendCustomerEmail(updated),
		Admin:    s.emails.SendAdminEmail(updated),
	}

	s.logger.Info("Proof of payment accepted",
		gecho.Field("order_id", updated.Id),
		gecho.Field("filename", storedName),
		gecho.Field("customer_email_sent", sent.Customer),
		gecho.Field("admin_email_sent", sent.Admin))

	return &ProofUploadResult{
		Order:      structs.NewOrderResponse(updated),
		EmailsSent: sent,
	}, nil
}

func (s *PaymentService) saveFile(name string, src io.Reader) error {
	if err := os.MkdirAll(s.cfg.Upload.Dir, 0o755); err != nil {
		return fmt.Errorf("failed to create upload directory: %w", err)
	}

	dst, err := os.Create(filepath.Join(s.cfg.Upload.Dir, name))
	if err != nil {
		return fmt.Errorf("failed to create upload file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return fmt.Errorf("failed to write upload file: %w", err)
	}

	return nil
}

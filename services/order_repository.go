package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"orderdesk_server/database"
	"orderdesk_server/lib"
	"orderdesk_server/structs/tables"
	"time"

	"github.com/MonkyMars/gecho"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// OrderStore is the persistence contract for orders and their items. Every
// write is all-or-nothing with respect to the item set, and SetPaymentProof
// performs its status check and write as a single conditional update.
type OrderStore interface {
	Create(ctx context.Context, order *tables.Order, items []*tables.OrderItem) (*tables.Order, error)
	Get(ctx context.Context, id uuid.UUID) (*tables.Order, error)
	Update(ctx context.Context, id uuid.UUID, fields map[string]any, items []*tables.OrderItem) (*tables.Order, error)
	SetPaymentProof(ctx context.Context, id uuid.UUID, filename string) (*tables.Order, error)
	ReferenceCodeExists(ctx context.Context, code string) (bool, error)
	PaymentCodeExists(ctx context.Context, code string) (bool, error)
}

// OrderRepository implements OrderStore on top of bun/Postgres.
type OrderRepository struct {
	logger *gecho.Logger
	db     *database.DB
}

func NewOrderRepository(logger *gecho.Logger, db *database.DB) *OrderRepository {
	return &OrderRepository{
		logger: logger,
		db:     db,
	}
}

func (r *OrderRepository) Create(ctx context.Context, order *tables.Order, items []*tables.OrderItem) (*tables.Order, error) {
	err := r.db.Transaction(ctx, func(ctx context.Context, tx bun.Tx) error {
		if _, err := tx.NewInsert().Model(order).Exec(ctx); err != nil {
			return lib.MapPgError(err)
		}

		for _, item := range items {
			item.OrderId = order.Id
		}

		if _, err := tx.NewInsert().Model(&items).Exec(ctx); err != nil {
			return lib.MapPgError(err)
		}

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	order.Items = items
	return order, nil
}

func (r *OrderRepository) Get(ctx context.Context, id uuid.UUID) (*tables.Order, error) {
	var order tables.Order

	err := database.WithRetry(ctx, func() error {
		order = tables.Order{}
		return r.db.NewSelect().
			Model(&order).
			Relation("Items").
			Where("o.id = ?", id).
			Scan(ctx)
	})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, lib.ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch order: %w", err)
	}

	return &order, nil
}

// Update applies the provided column values and, when items is non-nil,
// replaces the whole item set, all inside one transaction. The update is
// guarded by order_status = 'pending' so a concurrent payment upload cannot
// interleave with it.
func (r *OrderRepository) Update(ctx context.Context, id uuid.UUID, fields map[string]any, items []*tables.OrderItem) (*tables.Order, error) {
	err := r.db.Transaction(ctx, func(ctx context.Context, tx bun.Tx) error {
		query := tx.NewUpdate().
			Model((*tables.Order)(nil)).
			Set("updated_at = ?", time.Now()).
			Where("id = ?", id).
			Where("order_status = ?", tables.OrderStatusPending)

		for column, value := range fields {
			query = query.Set("? = ?", bun.Ident(column), value)
		}

		res, err := query.Exec(ctx)
		if err != nil {
			return lib.MapPgError(err)
		}

		rows, err := res.RowsAffected()
		if err != nil {
			return err
		}
		if rows == 0 {
			return r.missingOrLocked(ctx, tx, id)
		}

		if items != nil {
			if _, err := tx.NewDelete().
				Model((*tables.OrderItem)(nil)).
				Where("order_id = ?", id).
				Exec(ctx); err != nil {
				return lib.MapPgError(err)
			}

			if _, err := tx.NewInsert().Model(&items).Exec(ctx); err != nil {
				return lib.MapPgError(err)
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return r.Get(ctx, id)
}

// SetPaymentProof transitions the order to successful and records the stored
// filename. The status check and the write are one conditional UPDATE, so of
// two concurrent uploads exactly one wins; the other observes ErrForbidden.
func (r *OrderRepository) SetPaymentProof(ctx context.Context, id uuid.UUID, filename string) (*tables.Order, error) {
	res, err := r.db.NewUpdate().
		Model((*tables.Order)(nil)).
		Set("proof_of_payment = ?", filename).
		Set("order_status = ?", tables.OrderStatusSuccessful).
		Set("updated_at = ?", time.Now()).
		Where("id = ?", id).
		Where("order_status = ?", tables.OrderStatusPending).
		Exec(ctx)
	if err != nil {
		return nil, lib.MapPgError(err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return nil, err
	}
	if rows == 0 {
		if err := r.missingOrLocked(ctx, r.db, id); err != nil {
			return nil, err
		}
	}

	return r.Get(ctx, id)
}

func (r *OrderRepository) ReferenceCodeExists(ctx context.Context, code string) (bool, error) {
	return database.Exists[tables.Order](r.db, ctx, "reference_code", code)
}

func (r *OrderRepository) PaymentCodeExists(ctx context.Context, code string) (bool, error) {
	return database.Exists[tables.Order](r.db, ctx, "payment_code", code)
}

// missingOrLocked disambiguates a zero-row conditional update: the order is
// either absent or no longer pending.
func (r *OrderRepository) missingOrLocked(ctx context.Context, idb bun.IDB, id uuid.UUID) error {
	exists, err := idb.NewSelect().
		Model((*tables.Order)(nil)).
		Where("id = ?", id).
		Exists(ctx)
	if err != nil {
		return err
	}
	if exists {
		return lib.ErrForbidden
	}
	return lib.ErrNotFound
}

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/mrbl-app/mrbl/internal/order"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

const selectOrderColumns = `
	o.id, o.state, o.customer_id, o.pickup_address, o.delivery_address,
	o.pickup_date, o.pickup_window, o.driver_id, o.origin_shop_id, o.processing_shop_id,
	o.subtotal_cents, o.vat_cents, o.total_cents, o.currency, o.payment_method, o.notes,
	o.confirmed_at, o.assigned_at, o.picked_up_at, o.delivered_at, o.closed_at,
	o.created_at, o.updated_at
`

// scanOrder reads an order row from the scanner in selectOrderColumns order.
func scanOrder(s scanner) (*order.Order, error) {
	var o order.Order

	var stateStr string

	var notes sql.NullString

	if err := s.Scan(
		&o.ID, &stateStr, &o.CustomerID, &o.PickupAddress, &o.DeliveryAddress,
		&o.PickupDate, &o.PickupWindow, &o.DriverID, &o.OriginShopID, &o.ProcessingShopID,
		&o.SubtotalCents, &o.VATCents, &o.TotalCents, &o.Currency, &o.PaymentMethod, &notes,
		&o.ConfirmedAt, &o.AssignedAt, &o.PickedUpAt, &o.DeliveredAt, &o.ClosedAt,
		&o.CreatedAt, &o.UpdatedAt,
	); err != nil {
		return nil, err
	}

	o.State = order.State(stateStr)
	o.Notes = notes.String

	return &o, nil
}

func (s *Store) CreateOrder(ctx context.Context, o *order.Order) error {
	query := `
		INSERT INTO orders (
			state, customer_id, pickup_address, delivery_address, pickup_date, pickup_window,
			origin_shop_id, subtotal_cents, vat_cents, total_cents, currency, payment_method, notes,
			created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`

	err := s.db.QueryRowContext(ctx, query,
		o.State,
		o.CustomerID,
		o.PickupAddress,
		o.DeliveryAddress,
		o.PickupDate,
		o.PickupWindow,
		o.OriginShopID,
		o.SubtotalCents,
		o.VATCents,
		o.TotalCents,
		o.Currency,
		o.PaymentMethod,
		o.Notes,
	).Scan(&o.ID, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		return fmt.Errorf("creating order: %w", err)
	}

	return nil
}

func (s *Store) GetOrder(ctx context.Context, id uuid.UUID) (*order.Order, error) {
	query := `SELECT ` + selectOrderColumns + ` FROM orders o WHERE o.id = $1`

	o, err := scanOrder(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, order.ErrNotFound
		}

		return nil, fmt.Errorf("getting order: %w", err)
	}

	return o, nil
}

func (s *Store) ListOrders(ctx context.Context, filter order.ListFilter) ([]*order.Order, error) {
	query := `SELECT ` + selectOrderColumns + ` FROM orders o WHERE 1=1`

	var args []any

	argIdx := 1

	if filter.State != nil {
		query += fmt.Sprintf(" AND o.state = $%d", argIdx)

		args = append(args, *filter.State)
		argIdx++
	}

	if filter.DriverID != nil {
		query += fmt.Sprintf(" AND o.driver_id = $%d", argIdx)

		args = append(args, *filter.DriverID)
		argIdx++
	}

	if filter.Unassigned {
		query += " AND o.driver_id IS NULL"
	}

	query += " ORDER BY o.created_at DESC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing orders: %w", err)
	}
	defer rows.Close()

	var orders []*order.Order

	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning order: %w", err)
		}

		orders = append(orders, o)
	}

	return orders, rows.Err()
}

// stateTimestampColumns maps states to the SLA timestamp column stamped on
// entry. States without an entry only touch updated_at.
var stateTimestampColumns = map[order.State]string{
	order.StateConfirmed: "confirmed_at",
	order.StatePickedUp:  "picked_up_at",
	order.StateDelivered: "delivered_at",
	order.StateClosed:    "closed_at",
}

// UpdateState advances the order state with a compare-and-swap on the
// previous state, so a concurrent transition cannot be silently overwritten.
func (s *Store) UpdateState(ctx context.Context, id uuid.UUID, from, to order.State) error {
	set := "state = $1, updated_at = NOW()"
	if col, ok := stateTimestampColumns[to]; ok {
		set += ", " + col + " = NOW()"
	}

	query := `UPDATE orders SET ` + set + ` WHERE id = $2 AND state = $3`

	res, err := s.db.ExecContext(ctx, query, to, id, from)
	if err != nil {
		return fmt.Errorf("updating order state: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("updating order state: %w", err)
	}

	if affected == 0 {
		// Either the order is gone or another writer moved it first.
		return s.classifyMiss(ctx, id)
	}

	return nil
}

func (s *Store) classifyMiss(ctx context.Context, id uuid.UUID) error {
	var state string

	err := s.db.QueryRowContext(ctx, `SELECT state FROM orders WHERE id = $1`, id).Scan(&state)
	if errors.Is(err, sql.ErrNoRows) {
		return order.ErrNotFound
	}

	if err != nil {
		return fmt.Errorf("checking order state: %w", err)
	}

	return fmt.Errorf("%w: order is now %s", order.ErrInvalidTransition, state)
}

// ClaimDriver assigns the driver in a single conditional update. Zero rows
// affected means the order is gone, already claimed, or not claimable yet.
func (s *Store) ClaimDriver(ctx context.Context, orderID, driverID uuid.UUID) (*order.Order, error) {
	query := `
		UPDATE orders o
		SET driver_id = $1, assigned_at = NOW(), updated_at = NOW()
		WHERE o.id = $2 AND o.driver_id IS NULL AND o.state = $3
		RETURNING ` + selectOrderColumns

	o, err := scanOrder(s.db.QueryRowContext(ctx, query, driverID, orderID, order.StateConfirmed))
	if err == nil {
		return o, nil
	}

	if !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("claiming order: %w", err)
	}

	var existingDriver *uuid.UUID

	var state string

	checkErr := s.db.QueryRowContext(ctx, `SELECT driver_id, state FROM orders WHERE id = $1`, orderID).
		Scan(&existingDriver, &state)
	if errors.Is(checkErr, sql.ErrNoRows) {
		return nil, order.ErrNotFound
	}

	if checkErr != nil {
		return nil, fmt.Errorf("checking order claim: %w", checkErr)
	}

	if existingDriver != nil {
		return nil, order.ErrAlreadyAssigned
	}

	return nil, fmt.Errorf("%w: order is %s, not %s", order.ErrInvalidTransition, state, order.StateConfirmed)
}

// CreateSubcontract records the routing decision and flips the order to
// subcontracted in one transaction.
func (s *Store) CreateSubcontract(ctx context.Context, orderID, originShopID, processingShopID uuid.UUID) error {
	dbTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer dbTx.Rollback()

	res, err := dbTx.ExecContext(ctx, `
		UPDATE orders
		SET state = $1, processing_shop_id = $2, updated_at = NOW()
		WHERE id = $3 AND state = $4`,
		order.StateSubcontracted, processingShopID, orderID, order.StateAtOriginShop,
	)
	if err != nil {
		return fmt.Errorf("subcontracting order: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("subcontracting order: %w", err)
	}

	if affected == 0 {
		return s.classifyMiss(ctx, orderID)
	}

	if _, err := dbTx.ExecContext(ctx, `
		INSERT INTO subcontracts (order_id, origin_shop_id, processing_shop_id, created_at)
		VALUES ($1, $2, $3, NOW())`,
		orderID, originShopID, processingShopID,
	); err != nil {
		return fmt.Errorf("recording subcontract: %w", err)
	}

	if err := dbTx.Commit(); err != nil {
		return fmt.Errorf("committing subcontract: %w", err)
	}

	return nil
}

// UpdateTotals rewrites the monetary fields unless the order has closed.
func (s *Store) UpdateTotals(ctx context.Context, id uuid.UUID, subtotalCents, vatCents, totalCents int64) error {
	query := `
		UPDATE orders
		SET subtotal_cents = $1, vat_cents = $2, total_cents = $3, updated_at = NOW()
		WHERE id = $4 AND state <> $5
	`

	res, err := s.db.ExecContext(ctx, query, subtotalCents, vatCents, totalCents, id, order.StateClosed)
	if err != nil {
		return fmt.Errorf("updating order totals: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("updating order totals: %w", err)
	}

	if affected == 0 {
		var state string

		checkErr := s.db.QueryRowContext(ctx, `SELECT state FROM orders WHERE id = $1`, id).Scan(&state)
		if errors.Is(checkErr, sql.ErrNoRows) {
			return order.ErrNotFound
		}

		if checkErr != nil {
			return fmt.Errorf("checking order: %w", checkErr)
		}

		return order.ErrClosed
	}

	return nil
}

func (s *Store) AddBag(ctx context.Context, bag *order.Bag) error {
	query := `
		INSERT INTO bags (order_id, weight_grams, created_at)
		VALUES ($1, $2, NOW())
		RETURNING id, created_at
	`

	err := s.db.QueryRowContext(ctx, query, bag.OrderID, bag.WeightGrams).
		Scan(&bag.ID, &bag.CreatedAt)
	if err != nil {
		return fmt.Errorf("creating bag: %w", err)
	}

	return nil
}

func (s *Store) AddItem(ctx context.Context, item *order.Item) error {
	query := `
		INSERT INTO items (order_id, bag_id, description, created_at)
		VALUES ($1, $2, $3, NOW())
		RETURNING id, created_at
	`

	err := s.db.QueryRowContext(ctx, query, item.OrderID, item.BagID, item.Description).
		Scan(&item.ID, &item.CreatedAt)
	if err != nil {
		return fmt.Errorf("creating item: %w", err)
	}

	return nil
}

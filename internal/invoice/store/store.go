package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/mrbl-app/mrbl/internal/invoice"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

type scanner interface {
	Scan(dest ...any) error
}

const selectInvoiceColumns = `
	i.id, i.order_id, i.number, i.subtotal_cents, i.vat_cents, i.total_cents,
	i.status, i.paid_at, i.created_at
`

func scanInvoice(s scanner) (*invoice.Invoice, error) {
	var inv invoice.Invoice

	var statusStr string

	if err := s.Scan(
		&inv.ID, &inv.OrderID, &inv.Number, &inv.SubtotalCents, &inv.VATCents, &inv.TotalCents,
		&statusStr, &inv.PaidAt, &inv.CreatedAt,
	); err != nil {
		return nil, err
	}

	inv.Status = invoice.Status(statusStr)

	return &inv, nil
}

// InsertInvoice creates the invoice with a sequential human-readable
// number. The unique index on order_id makes the create idempotent: a
// conflicting insert returns ErrExists and the caller re-reads.
func (s *Store) InsertInvoice(ctx context.Context, inv *invoice.Invoice) error {
	query := `
		INSERT INTO invoices (order_id, number, subtotal_cents, vat_cents, total_cents, status, created_at)
		VALUES ($1, 'INV-' || lpad(nextval('invoice_number_seq')::text, 6, '0'), $2, $3, $4, $5, NOW())
		ON CONFLICT (order_id) DO NOTHING
		RETURNING id, number, created_at
	`

	err := s.db.QueryRowContext(ctx, query,
		inv.OrderID,
		inv.SubtotalCents,
		inv.VATCents,
		inv.TotalCents,
		inv.Status,
	).Scan(&inv.ID, &inv.Number, &inv.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return invoice.ErrExists
	}

	if err != nil {
		return fmt.Errorf("creating invoice: %w", err)
	}

	return nil
}

func (s *Store) GetInvoice(ctx context.Context, id uuid.UUID) (*invoice.Invoice, error) {
	query := `SELECT ` + selectInvoiceColumns + ` FROM invoices i WHERE i.id = $1`

	inv, err := scanInvoice(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, invoice.ErrNotFound
		}

		return nil, fmt.Errorf("getting invoice: %w", err)
	}

	return inv, nil
}

func (s *Store) GetInvoiceByOrder(ctx context.Context, orderID uuid.UUID) (*invoice.Invoice, error) {
	query := `SELECT ` + selectInvoiceColumns + ` FROM invoices i WHERE i.order_id = $1`

	inv, err := scanInvoice(s.db.QueryRowContext(ctx, query, orderID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, invoice.ErrNotFound
		}

		return nil, fmt.Errorf("getting invoice by order: %w", err)
	}

	return inv, nil
}

func (s *Store) OrderSubtotal(ctx context.Context, orderID uuid.UUID) (int64, error) {
	var subtotal int64

	err := s.db.QueryRowContext(ctx, `SELECT subtotal_cents FROM orders WHERE id = $1`, orderID).Scan(&subtotal)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, fmt.Errorf("order %s: %w", orderID, invoice.ErrNotFound)
	}

	if err != nil {
		return 0, fmt.Errorf("getting order subtotal: %w", err)
	}

	return subtotal, nil
}

// MarkPaid only succeeds from pending; anything else is either a missing
// invoice or an illegal status change.
func (s *Store) MarkPaid(ctx context.Context, id uuid.UUID) error {
	return s.transition(ctx, id, invoice.StatusPaid, true)
}

func (s *Store) MarkCancelled(ctx context.Context, id uuid.UUID) error {
	return s.transition(ctx, id, invoice.StatusCancelled, false)
}

func (s *Store) transition(ctx context.Context, id uuid.UUID, to invoice.Status, stampPaidAt bool) error {
	query := `UPDATE invoices SET status = $1 WHERE id = $2 AND status = $3`
	if stampPaidAt {
		query = `UPDATE invoices SET status = $1, paid_at = NOW() WHERE id = $2 AND status = $3`
	}

	res, err := s.db.ExecContext(ctx, query, to, id, invoice.StatusPending)
	if err != nil {
		return fmt.Errorf("updating invoice status: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("updating invoice status: %w", err)
	}

	if affected == 0 {
		var status string

		checkErr := s.db.QueryRowContext(ctx, `SELECT status FROM invoices WHERE id = $1`, id).Scan(&status)
		if errors.Is(checkErr, sql.ErrNoRows) {
			return invoice.ErrNotFound
		}

		if checkErr != nil {
			return fmt.Errorf("checking invoice: %w", checkErr)
		}

		return fmt.Errorf("%w: status is %s", invoice.ErrNotPending, status)
	}

	return nil
}

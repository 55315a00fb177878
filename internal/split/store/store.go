package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/mrbl-app/mrbl/internal/split"
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

const selectPolicyColumns = `
	p.id, p.name, p.version, p.origin_shop_pct, p.processing_shop_pct, p.driver_pct, p.platform_pct,
	p.platform_min_cents, p.rounding, p.floor_rebalance, p.active, p.created_at
`

func scanPolicy(s scanner) (*split.Policy, error) {
	var p split.Policy

	var rounding string

	if err := s.Scan(
		&p.ID, &p.Name, &p.Version, &p.OriginShopPct, &p.ProcessingShopPct, &p.DriverPct, &p.PlatformPct,
		&p.PlatformMinCents, &rounding, &p.FloorRebalance, &p.Active, &p.CreatedAt,
	); err != nil {
		return nil, err
	}

	p.Rounding = split.RoundingMode(rounding)

	return &p, nil
}

func (s *Store) CreatePolicy(ctx context.Context, p *split.Policy) error {
	// Version increments per policy name so corrections are traceable.
	query := `
		INSERT INTO split_policies (
			name, version, origin_shop_pct, processing_shop_pct, driver_pct, platform_pct,
			platform_min_cents, rounding, floor_rebalance, active, created_at
		)
		VALUES (
			$1,
			COALESCE((SELECT MAX(version) FROM split_policies WHERE name = $1), 0) + 1,
			$2, $3, $4, $5, $6, $7, $8, FALSE, NOW()
		)
		RETURNING id, version, created_at
	`

	err := s.db.QueryRowContext(ctx, query,
		p.Name,
		p.OriginShopPct,
		p.ProcessingShopPct,
		p.DriverPct,
		p.PlatformPct,
		p.PlatformMinCents,
		p.Rounding,
		p.FloorRebalance,
	).Scan(&p.ID, &p.Version, &p.CreatedAt)
	if err != nil {
		return fmt.Errorf("creating split policy: %w", err)
	}

	return nil
}

func (s *Store) GetPolicy(ctx context.Context, id uuid.UUID) (*split.Policy, error) {
	query := `SELECT ` + selectPolicyColumns + ` FROM split_policies p WHERE p.id = $1`

	p, err := scanPolicy(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("policy %s: %w", id, split.ErrNotFound)
		}

		return nil, fmt.Errorf("getting split policy: %w", err)
	}

	return p, nil
}

func (s *Store) ListPolicies(ctx context.Context) ([]*split.Policy, error) {
	query := `SELECT ` + selectPolicyColumns + ` FROM split_policies p ORDER BY p.name, p.version DESC`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing split policies: %w", err)
	}
	defer rows.Close()

	var policies []*split.Policy

	for rows.Next() {
		p, err := scanPolicy(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning split policy: %w", err)
		}

		policies = append(policies, p)
	}

	return policies, rows.Err()
}

// ActivatePolicy flips the active flag in a two-step update inside one
// transaction: deactivate all, activate one. No in-memory singleton.
func (s *Store) ActivatePolicy(ctx context.Context, id uuid.UUID) error {
	dbTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer dbTx.Rollback()

	if _, err := dbTx.ExecContext(ctx, `UPDATE split_policies SET active = FALSE WHERE active`); err != nil {
		return fmt.Errorf("deactivating policies: %w", err)
	}

	res, err := dbTx.ExecContext(ctx, `UPDATE split_policies SET active = TRUE WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("activating policy: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("activating policy: %w", err)
	}

	if affected == 0 {
		return fmt.Errorf("policy %s: %w", id, split.ErrNotFound)
	}

	if err := dbTx.Commit(); err != nil {
		return fmt.Errorf("committing policy activation: %w", err)
	}

	return nil
}

func (s *Store) GetActivePolicy(ctx context.Context) (*split.Policy, error) {
	query := `SELECT ` + selectPolicyColumns + ` FROM split_policies p WHERE p.active`

	p, err := scanPolicy(s.db.QueryRowContext(ctx, query))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("active policy: %w", split.ErrNotFound)
		}

		return nil, fmt.Errorf("getting active policy: %w", err)
	}

	return p, nil
}

func (s *Store) OrderTotal(ctx context.Context, orderID uuid.UUID) (int64, error) {
	var total int64

	err := s.db.QueryRowContext(ctx, `SELECT total_cents FROM orders WHERE id = $1`, orderID).Scan(&total)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, fmt.Errorf("order %s: %w", orderID, split.ErrNotFound)
	}

	if err != nil {
		return 0, fmt.Errorf("getting order total: %w", err)
	}

	return total, nil
}

// ActiveCalcInputs reads the order total and the active policy inside one
// repeatable-read transaction, so the calculation never pairs a fresh total
// with a policy that was swapped mid-flight.
func (s *Store) ActiveCalcInputs(ctx context.Context, orderID uuid.UUID) (int64, *split.Policy, error) {
	dbTx, err := s.db.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelRepeatableRead, ReadOnly: true})
	if err != nil {
		return 0, nil, fmt.Errorf("beginning transaction: %w", err)
	}
	defer dbTx.Rollback()

	var total int64

	err = dbTx.QueryRowContext(ctx, `SELECT total_cents FROM orders WHERE id = $1`, orderID).Scan(&total)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil, fmt.Errorf("order %s: %w", orderID, split.ErrNotFound)
	}

	if err != nil {
		return 0, nil, fmt.Errorf("getting order total: %w", err)
	}

	query := `SELECT ` + selectPolicyColumns + ` FROM split_policies p WHERE p.active`

	p, err := scanPolicy(dbTx.QueryRowContext(ctx, query))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, nil, fmt.Errorf("active policy: %w", split.ErrNotFound)
		}

		return 0, nil, fmt.Errorf("getting active policy: %w", err)
	}

	if err := dbTx.Commit(); err != nil {
		return 0, nil, fmt.Errorf("committing read: %w", err)
	}

	return total, p, nil
}

func (s *Store) CreateSplit(ctx context.Context, sp *split.Split) error {
	query := `
		INSERT INTO splits (
			order_id, policy_id, origin_shop_cents, processing_shop_cents, driver_cents, platform_cents,
			origin_shop_pct, processing_shop_pct, driver_pct, platform_pct, created_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, NOW())
		RETURNING id, created_at
	`

	err := s.db.QueryRowContext(ctx, query,
		sp.OrderID,
		sp.PolicyID,
		sp.OriginShopCents,
		sp.ProcessingShopCents,
		sp.DriverCents,
		sp.PlatformCents,
		sp.OriginShopPct,
		sp.ProcessingShopPct,
		sp.DriverPct,
		sp.PlatformPct,
	).Scan(&sp.ID, &sp.CreatedAt)
	if err != nil {
		return fmt.Errorf("creating split: %w", err)
	}

	return nil
}

func (s *Store) ListSplitsByOrder(ctx context.Context, orderID uuid.UUID) ([]*split.Split, error) {
	query := `
		SELECT id, order_id, policy_id, origin_shop_cents, processing_shop_cents, driver_cents, platform_cents,
		       origin_shop_pct, processing_shop_pct, driver_pct, platform_pct, created_at
		FROM splits
		WHERE order_id = $1
		ORDER BY created_at DESC
	`

	rows, err := s.db.QueryContext(ctx, query, orderID)
	if err != nil {
		return nil, fmt.Errorf("listing splits: %w", err)
	}
	defer rows.Close()

	var splits []*split.Split

	for rows.Next() {
		var sp split.Split
		if err := rows.Scan(
			&sp.ID, &sp.OrderID, &sp.PolicyID,
			&sp.OriginShopCents, &sp.ProcessingShopCents, &sp.DriverCents, &sp.PlatformCents,
			&sp.OriginShopPct, &sp.ProcessingShopPct, &sp.DriverPct, &sp.PlatformPct,
			&sp.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scanning split: %w", err)
		}

		splits = append(splits, &sp)
	}

	return splits, rows.Err()
}

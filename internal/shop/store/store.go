package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/mrbl-app/mrbl/internal/shop"
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

const selectShopColumns = `
	s.id, s.name, s.address, s.phone, s.email,
	s.subscription_tier, s.subscription_fee_cents, s.processing,
	s.created_at, s.updated_at
`

func scanShop(sc scanner) (*shop.Shop, error) {
	var sh shop.Shop

	if err := sc.Scan(
		&sh.ID, &sh.Name, &sh.Address, &sh.Phone, &sh.Email,
		&sh.SubscriptionTier, &sh.SubscriptionFeeCents, &sh.Processing,
		&sh.CreatedAt, &sh.UpdatedAt,
	); err != nil {
		return nil, err
	}

	return &sh, nil
}

func (s *Store) CreateShop(ctx context.Context, sh *shop.Shop) error {
	query := `
		INSERT INTO shops (name, address, phone, email, subscription_tier, subscription_fee_cents, processing, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`

	err := s.db.QueryRowContext(ctx, query,
		sh.Name,
		sh.Address,
		sh.Phone,
		sh.Email,
		sh.SubscriptionTier,
		sh.SubscriptionFeeCents,
		sh.Processing,
	).Scan(&sh.ID, &sh.CreatedAt, &sh.UpdatedAt)
	if err != nil {
		return fmt.Errorf("creating shop: %w", err)
	}

	return nil
}

func (s *Store) GetShop(ctx context.Context, id uuid.UUID) (*shop.Shop, error) {
	query := `SELECT ` + selectShopColumns + ` FROM shops s WHERE s.id = $1`

	sh, err := scanShop(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, shop.ErrNotFound
		}

		return nil, fmt.Errorf("getting shop: %w", err)
	}

	return sh, nil
}

func (s *Store) ListShops(ctx context.Context, filter shop.ListFilter) ([]*shop.Shop, error) {
	query := `SELECT ` + selectShopColumns + ` FROM shops s WHERE 1=1`

	var args []any

	if filter.Processing != nil {
		query += " AND s.processing = $1"

		args = append(args, *filter.Processing)
	}

	query += " ORDER BY s.name ASC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing shops: %w", err)
	}
	defer rows.Close()

	var shops []*shop.Shop

	for rows.Next() {
		sh, err := scanShop(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning shop: %w", err)
		}

		shops = append(shops, sh)
	}

	return shops, rows.Err()
}

func (s *Store) UpdateShop(ctx context.Context, sh *shop.Shop) error {
	query := `
		UPDATE shops
		SET name = $1, address = $2, phone = $3, email = $4,
		    subscription_tier = $5, subscription_fee_cents = $6, processing = $7, updated_at = NOW()
		WHERE id = $8
	`

	res, err := s.db.ExecContext(ctx, query,
		sh.Name,
		sh.Address,
		sh.Phone,
		sh.Email,
		sh.SubscriptionTier,
		sh.SubscriptionFeeCents,
		sh.Processing,
		sh.ID,
	)
	if err != nil {
		return fmt.Errorf("updating shop: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("updating shop: %w", err)
	}

	if affected == 0 {
		return shop.ErrNotFound
	}

	return nil
}

func (s *Store) ListSubcontractsByShop(ctx context.Context, shopID uuid.UUID) ([]*shop.Subcontract, error) {
	query := `
		SELECT id, order_id, origin_shop_id, processing_shop_id, created_at
		FROM subcontracts
		WHERE origin_shop_id = $1 OR processing_shop_id = $1
		ORDER BY created_at DESC
	`

	rows, err := s.db.QueryContext(ctx, query, shopID)
	if err != nil {
		return nil, fmt.Errorf("listing subcontracts: %w", err)
	}
	defer rows.Close()

	var subs []*shop.Subcontract

	for rows.Next() {
		var sub shop.Subcontract
		if err := rows.Scan(&sub.ID, &sub.OrderID, &sub.OriginShopID, &sub.ProcessingShopID, &sub.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning subcontract: %w", err)
		}

		subs = append(subs, &sub)
	}

	return subs, rows.Err()
}

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/mrbl-app/mrbl/internal/scan"
)

// foreignKeyViolation is the Postgres error code for a broken reference.
const foreignKeyViolation = "23503"

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

type scanner interface {
	Scan(dest ...any) error
}

const selectScanColumns = `
	s.id, s.type, s.order_id, s.bag_id, s.item_id, s.lat, s.lng,
	s.photo_url, s.signature, s.notes, s.created_at
`

func scanRow(sc scanner) (*scan.Scan, error) {
	var s scan.Scan

	var typeStr string

	var lat, lng sql.NullFloat64

	var photoURL, signature, notes sql.NullString

	if err := sc.Scan(
		&s.ID, &typeStr, &s.OrderID, &s.BagID, &s.ItemID, &lat, &lng,
		&photoURL, &signature, &notes, &s.CreatedAt,
	); err != nil {
		return nil, err
	}

	s.Type = scan.Type(typeStr)
	s.PhotoURL = photoURL.String
	s.Signature = signature.String
	s.Notes = notes.String

	if lat.Valid && lng.Valid {
		s.Geo = &scan.Geo{Lat: lat.Float64, Lng: lng.Float64}
	}

	return &s, nil
}

// CreateScan inserts a new evidence row. Rows are never updated or deleted;
// the audit trail is ordered by created_at.
func (s *Store) CreateScan(ctx context.Context, sc *scan.Scan) error {
	query := `
		INSERT INTO scans (type, order_id, bag_id, item_id, lat, lng, photo_url, signature, notes, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW())
		RETURNING id, created_at
	`

	var lat, lng *float64
	if sc.Geo != nil {
		lat, lng = &sc.Geo.Lat, &sc.Geo.Lng
	}

	err := s.db.QueryRowContext(ctx, query,
		sc.Type,
		sc.OrderID,
		sc.BagID,
		sc.ItemID,
		lat,
		lng,
		sc.PhotoURL,
		sc.Signature,
		sc.Notes,
	).Scan(&sc.ID, &sc.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == foreignKeyViolation {
			return fmt.Errorf("%w: %s", scan.ErrNotFound, pgErr.ConstraintName)
		}

		return fmt.Errorf("creating scan: %w", err)
	}

	return nil
}

func (s *Store) ListScansByOrder(ctx context.Context, orderID uuid.UUID) ([]*scan.Scan, error) {
	query := `SELECT ` + selectScanColumns + `
		FROM scans s
		WHERE s.order_id = $1
		ORDER BY s.created_at DESC`

	rows, err := s.db.QueryContext(ctx, query, orderID)
	if err != nil {
		return nil, fmt.Errorf("listing scans: %w", err)
	}
	defer rows.Close()

	var scans []*scan.Scan

	for rows.Next() {
		sc, err := scanRow(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning scan row: %w", err)
		}

		scans = append(scans, sc)
	}

	return scans, rows.Err()
}

func (s *Store) LatestScan(ctx context.Context, orderID uuid.UUID) (*scan.Scan, error) {
	query := `SELECT ` + selectScanColumns + `
		FROM scans s
		WHERE s.order_id = $1
		ORDER BY s.created_at DESC
		LIMIT 1`

	sc, err := scanRow(s.db.QueryRowContext(ctx, query, orderID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, scan.ErrNotFound
		}

		return nil, fmt.Errorf("getting latest scan: %w", err)
	}

	return sc, nil
}

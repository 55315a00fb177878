package scan

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrNotFound     = errors.New("referenced entity not found")
	ErrInvalidInput = errors.New("invalid input")
)

// Type identifies the custody event a scan evidences.
type Type string

const (
	TypePickup              Type = "pickup"
	TypeHandoffToShop       Type = "handoff.to_shop"
	TypeHandoffToProcessing Type = "handoff.to_processing"
	TypeIntake              Type = "intake"
	TypeQC                  Type = "qc"
	TypePack                Type = "pack"
	TypeHandoffToDriver     Type = "handoff.to_driver"
	TypeDelivery            Type = "delivery"
)

var validTypes = map[Type]struct{}{
	TypePickup:              {},
	TypeHandoffToShop:       {},
	TypeHandoffToProcessing: {},
	TypeIntake:              {},
	TypeQC:                  {},
	TypePack:                {},
	TypeHandoffToDriver:     {},
	TypeDelivery:            {},
}

func (t Type) Valid() bool {
	_, ok := validTypes[t]
	return ok
}

// Geo is a WGS84 coordinate attached to a scan.
type Geo struct {
	Lat float64
	Lng float64
}

func (g Geo) Valid() bool {
	return g.Lat >= -90 && g.Lat <= 90 && g.Lng >= -180 && g.Lng <= 180
}

// Scan is one custody/verification event. Scans are append-only evidence:
// they are never edited or deleted, and duplicates are allowed.
type Scan struct {
	ID        uuid.UUID
	Type      Type
	OrderID   uuid.UUID
	BagID     *uuid.UUID
	ItemID    *uuid.UUID
	Geo       *Geo
	PhotoURL  string
	Signature string
	Notes     string
	CreatedAt time.Time
}

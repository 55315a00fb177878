// Package qr encodes and decodes the mrbl:// payloads printed on order,
// bag and item labels.
package qr

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

var ErrInvalidRef = errors.New("invalid qr ref")

const scheme = "mrbl://"

// RefKind is the single-letter entity tag inside a payload.
type RefKind string

const (
	RefOrder RefKind = "o"
	RefBag   RefKind = "b"
	RefItem  RefKind = "i"
)

func (k RefKind) Valid() bool {
	switch k {
	case RefOrder, RefBag, RefItem:
		return true
	}

	return false
}

// Ref is a decoded payload: which entity a physical label points at.
type Ref struct {
	Kind RefKind
	ID   uuid.UUID
}

func (r Ref) String() string {
	return scheme + string(r.Kind) + "/" + r.ID.String()
}

// ParseRef decodes a payload of the form mrbl://{o|b|i}/{uuid}.
func ParseRef(raw string) (Ref, error) {
	rest, ok := strings.CutPrefix(raw, scheme)
	if !ok {
		return Ref{}, fmt.Errorf("%w: missing %s prefix", ErrInvalidRef, scheme)
	}

	kind, idPart, ok := strings.Cut(rest, "/")
	if !ok {
		return Ref{}, fmt.Errorf("%w: missing entity tag", ErrInvalidRef)
	}

	k := RefKind(kind)
	if !k.Valid() {
		return Ref{}, fmt.Errorf("%w: unknown entity tag %q", ErrInvalidRef, kind)
	}

	id, err := uuid.Parse(idPart)
	if err != nil {
		return Ref{}, fmt.Errorf("%w: %s", ErrInvalidRef, err)
	}

	return Ref{Kind: k, ID: id}, nil
}

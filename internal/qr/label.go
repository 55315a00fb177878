package qr

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
)

var ErrBadSignature = errors.New("label signature mismatch")

// Label is the payload embedded in a printed order label. Signature covers
// every other field so a reprinted or edited label is detectable offline.
type Label struct {
	OrderID      uuid.UUID `json:"order_id"`
	CustomerID   uuid.UUID `json:"customer_id"`
	Property     string    `json:"property,omitempty"`
	BalanceCents int64     `json:"balance_cents"`
	Date         string    `json:"date"`
	Signature    string    `json:"sig,omitempty"`
}

// Sign computes the hex HMAC-SHA256 of the label body and stores it in
// Signature. The body is marshalled with Signature empty so signing is
// stable against re-signing.
func Sign(label *Label, secret []byte) error {
	sig, err := signature(label, secret)
	if err != nil {
		return err
	}

	label.Signature = sig

	return nil
}

// Verify recomputes the signature and compares in constant time.
func Verify(label *Label, secret []byte) error {
	want, err := signature(label, secret)
	if err != nil {
		return err
	}

	if !hmac.Equal([]byte(want), []byte(label.Signature)) {
		return ErrBadSignature
	}

	return nil
}

func signature(label *Label, secret []byte) (string, error) {
	body := *label
	body.Signature = ""

	payload, err := json.Marshal(body)
	if err != nil {
		return "", fmt.Errorf("marshalling label: %w", err)
	}

	mac := hmac.New(sha256.New, secret)
	mac.Write(payload)

	return hex.EncodeToString(mac.Sum(nil)), nil
}

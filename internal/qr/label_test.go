package qr_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrbl-app/mrbl/internal/qr"
)

var labelSecret = []byte("test-label-secret")

func testLabel() *qr.Label {
	return &qr.Label{
		OrderID:      uuid.New(),
		CustomerID:   uuid.New(),
		Property:     "The Marker Hotel",
		BalanceCents: 4550,
		Date:         "2025-11-03",
	}
}

func TestSignVerify(t *testing.T) {
	label := testLabel()

	require.NoError(t, qr.Sign(label, labelSecret))
	assert.NotEmpty(t, label.Signature)
	assert.NoError(t, qr.Verify(label, labelSecret))
}

func TestVerify_TamperedField(t *testing.T) {
	label := testLabel()
	require.NoError(t, qr.Sign(label, labelSecret))

	label.BalanceCents = 0

	assert.ErrorIs(t, qr.Verify(label, labelSecret), qr.ErrBadSignature)
}

func TestVerify_WrongSecret(t *testing.T) {
	label := testLabel()
	require.NoError(t, qr.Sign(label, labelSecret))

	assert.ErrorIs(t, qr.Verify(label, []byte("other-secret")), qr.ErrBadSignature)
}

func TestVerify_MissingSignature(t *testing.T) {
	label := testLabel()

	assert.ErrorIs(t, qr.Verify(label, labelSecret), qr.ErrBadSignature)
}

// Signing twice yields the same signature: the stored signature is excluded
// from the signed body.
func TestSign_Stable(t *testing.T) {
	label := testLabel()
	require.NoError(t, qr.Sign(label, labelSecret))
	first := label.Signature

	require.NoError(t, qr.Sign(label, labelSecret))
	assert.Equal(t, first, label.Signature)
}

package qr_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrbl-app/mrbl/internal/qr"
)

func TestParseRef(t *testing.T) {
	id := uuid.New()

	tests := []struct {
		name     string
		raw      string
		wantKind qr.RefKind
		wantErr  bool
	}{
		{name: "Order", raw: "mrbl://o/" + id.String(), wantKind: qr.RefOrder},
		{name: "Bag", raw: "mrbl://b/" + id.String(), wantKind: qr.RefBag},
		{name: "Item", raw: "mrbl://i/" + id.String(), wantKind: qr.RefItem},
		{name: "WrongScheme", raw: "https://o/" + id.String(), wantErr: true},
		{name: "UnknownTag", raw: "mrbl://x/" + id.String(), wantErr: true},
		{name: "MissingTag", raw: "mrbl://" + id.String(), wantErr: true},
		{name: "BadUUID", raw: "mrbl://o/not-a-uuid", wantErr: true},
		{name: "Empty", raw: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ref, err := qr.ParseRef(tt.raw)
			if tt.wantErr {
				assert.ErrorIs(t, err, qr.ErrInvalidRef)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantKind, ref.Kind)
			assert.Equal(t, id, ref.ID)
		})
	}
}

func TestRef_StringRoundTrip(t *testing.T) {
	ref := qr.Ref{Kind: qr.RefBag, ID: uuid.New()}

	parsed, err := qr.ParseRef(ref.String())
	require.NoError(t, err)
	assert.Equal(t, ref, parsed)
}

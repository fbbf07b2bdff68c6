package whatsapp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	watypes "go.mau.fi/whatsmeow/types"
)

func TestNormalizeNumber(t *testing.T) {
	tests := []struct {
		name  string
		phone string
		want  string
	}{
		{"mobile without country code", "11987654321", "551187654321"},
		{"mobile with country code", "5511987654321", "551187654321"},
		{"landline without country code", "1133334444", "551133334444"},
		{"landline with country code", "551133334444", "551133334444"},
		{"formatted input", "(11) 9 8765-4321", "551187654321"},
		{"plus prefix", "+55 11 98765-4321", "551187654321"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := NormalizeNumber(tc.phone)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestNormalizeNumberRejectsNoDigits(t *testing.T) {
	_, err := NormalizeNumber("sem número")
	assert.Error(t, err)
}

func TestToJID(t *testing.T) {
	jid, err := ToJID("11987654321")
	require.NoError(t, err)
	assert.Equal(t, "551187654321", jid.User)
	assert.Equal(t, watypes.DefaultUserServer, jid.Server)
}

func TestToJIDInvalid(t *testing.T) {
	jid, err := ToJID("---")
	assert.Error(t, err)
	assert.Equal(t, watypes.EmptyJID, jid)
}

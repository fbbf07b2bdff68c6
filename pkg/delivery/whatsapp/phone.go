package whatsapp

import (
	"fmt"
	"strings"

	watypes "go.mau.fi/whatsmeow/types"
)

// NormalizeNumber converts a free-form Brazilian phone number into the
// digits WhatsApp expects: non-digits stripped, country code 55 ensured,
// and the extra mobile "9" removed (the network addresses mobiles without
// it).
func NormalizeNumber(phone string) (string, error) {
	var b strings.Builder
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	digits := b.String()
	if digits == "" {
		return "", fmt.Errorf("número de telefone inválido para WhatsApp: %q", phone)
	}

	if !strings.HasPrefix(digits, "55") {
		digits = "55" + digits
	}
	if len(digits) == 13 && digits[4] == '9' {
		digits = digits[:4] + digits[5:]
	}
	return digits, nil
}

// ToJID resolves a phone number to its WhatsApp address.
func ToJID(phone string) (watypes.JID, error) {
	number, err := NormalizeNumber(phone)
	if err != nil {
		return watypes.EmptyJID, err
	}
	return watypes.NewJID(number, watypes.DefaultUserServer), nil
}

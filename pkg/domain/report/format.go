package report

import (
	"fmt"
	"strings"

	"github.com/gosimple/slug"
)

// SafeName normalizes a customer name into a filename-safe slug
// (lowercase, accents stripped, words joined with underscores).
func SafeName(name string) string {
	return strings.ReplaceAll(slug.Make(name), "-", "_")
}

func digitsOnly(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// DisplayPhone formats a Brazilian phone number for the printed report:
// (xx) xxxx-xxxx for landlines, (xx) 9 xxxx-xxxx for mobiles. Numbers that
// match neither shape are passed through untouched.
func DisplayPhone(phone string) string {
	raw := digitsOnly(phone)

	if len(raw) == 11 && strings.HasPrefix(raw, "55") {
		raw = raw[2:]
	}

	switch len(raw) {
	case 10:
		return fmt.Sprintf("(%s) %s-%s", raw[0:2], raw[2:6], raw[6:])
	case 11:
		return fmt.Sprintf("(%s) 9 %s-%s", raw[0:2], raw[3:7], raw[7:])
	}
	return phone
}

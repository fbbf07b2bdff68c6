package report

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSafeName(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"simple", "Ana", "ana"},
		{"spaces to underscores", "Ana Maria Silva", "ana_maria_silva"},
		{"accents stripped", "João Conceição", "joao_conceicao"},
		{"uppercase", "MARIA DAS DORES", "maria_das_dores"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, SafeName(tc.in))
		})
	}
}

func TestDisplayPhone(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"landline", "1133334444", "(11) 3333-4444"},
		{"mobile", "11987654321", "(11) 9 8765-4321"},
		{"formatted mobile", "(11) 98765-4321", "(11) 9 8765-4321"},
		{"unrecognized shape passes through", "12345", "12345"},
		{"empty passes through", "", ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, DisplayPhone(tc.in))
		})
	}
}

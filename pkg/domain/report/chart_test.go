package report

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVoltageChart(t *testing.T) {
	tests := []struct {
		name     string
		readings []string
	}{
		{"full set", []string{"8.1", "7.9", "8.0", "8.2", "7.8", "8.1", "8.0", "7.9"}},
		{"partial set pads to eight", []string{"12.4", "12.1"}},
		{"non-numeric charts as zero", []string{"alta", "", "12"}},
		{"all empty still renders", nil},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			png, err := voltageChart(tc.readings)
			require.NoError(t, err)
			assert.Equal(t, "\x89PNG", string(png[:4]))
		})
	}
}

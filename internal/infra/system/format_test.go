package system

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatUptime(t *testing.T) {
	tests := []struct {
		seconds uint64
		want    string
	}{
		{90000, "1d 1h 0m"},
		{3600, "1h 0m"},
		{0, "0h 0m"},
		{59, "0h 0m"},
		{3*86400 + 4*3600 + 5*60 + 6, "3d 4h 5m"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatUptime(tt.seconds), "seconds=%d", tt.seconds)
	}
}

func TestRoundTo(t *testing.T) {
	assert.Equal(t, 15.6, roundTo(15.56, 1))
	assert.Equal(t, 16.0, roundTo(15.5, 0))
	assert.Equal(t, 233.0, roundTo(232.83, 0))
}

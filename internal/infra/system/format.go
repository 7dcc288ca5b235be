package system

import (
	"fmt"
	"math"
)

const (
	bytesPerGB = 1 << 30
	kibPerGB   = 1 << 20
)

// FormatUptime renders seconds as "Xd Yh Zm", dropping the day segment when
// it is zero.
func FormatUptime(seconds uint64) string {
	days := seconds / 86400
	hours := (seconds % 86400) / 3600
	minutes := (seconds % 3600) / 60
	if days == 0 {
		return fmt.Sprintf("%dh %dm", hours, minutes)
	}
	return fmt.Sprintf("%dd %dh %dm", days, hours, minutes)
}

func bytesToGB(b float64) float64 {
	return b / bytesPerGB
}

func roundTo(v float64, decimals int) float64 {
	p := math.Pow(10, float64(decimals))
	return math.Round(v*p) / p
}

package stats

import (
	"errors"
	"fmt"
	"math"
	"strconv"
)

var ErrInvalidUptime = errors.New("invalid uptime string")

// FormatUptime renders whole seconds as "Hh Mm Ss". Hours are not folded into days.
func FormatUptime(seconds int64) string {
	if seconds < 0 {
		seconds = 0
	}
	hours := seconds / 3600
	minutes := (seconds % 3600) / 60
	secs := seconds % 60
	return fmt.Sprintf("%dh %dm %ds", hours, minutes, secs)
}

// ParseUptime is the inverse of FormatUptime.
func ParseUptime(s string) (int64, error) {
	var hours, minutes, secs int64
	var rest string
	n, _ := fmt.Sscanf(s, "%dh %dm %ds%s", &hours, &minutes, &secs, &rest)
	if n != 3 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidUptime, s)
	}
	if hours < 0 || minutes < 0 || minutes > 59 || secs < 0 || secs > 59 {
		return 0, fmt.Errorf("%w: %q out of range", ErrInvalidUptime, s)
	}
	return hours*3600 + minutes*60 + secs, nil
}

// bytesToMB converts bytes to megabytes rounded to two decimals.
func bytesToMB(b uint64) float64 {
	return math.Round(float64(b)/1024/1024*100) / 100
}

// formatMB renders a megabyte value without trailing zeros, e.g. "12.5 MB".
func formatMB(mb float64) string {
	return strconv.FormatFloat(mb, 'f', -1, 64) + " MB"
}

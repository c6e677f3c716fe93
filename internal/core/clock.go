package core

import "fmt"

// FormatClock renders elapsed milliseconds as mm:ss.
// Minutes keep growing past 99 rather than wrapping.
func FormatClock(ms float64) string {
	if ms < 0 {
		ms = 0
	}
	total := int(ms / 1000)
	return fmt.Sprintf("%02d:%02d", total/60, total%60)
}

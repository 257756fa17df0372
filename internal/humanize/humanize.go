// Package humanize renders byte counts the way gitnuke reports reclaimable
// space to a human at a terminal: binary (1024-based) units, one decimal
// place once the value leaves the byte range.
package humanize

import "fmt"

var units = []string{"B", "KiB", "MiB", "GiB", "TiB", "PiB"}

// Bytes formats n as a human-scaled size, e.g. Bytes(1536) == "1.5 KiB".
func Bytes(n int64) string {
	if n < 1024 {
		return fmt.Sprintf("%d B", n)
	}
	f := float64(n)
	unit := 0
	for f >= 1024 && unit < len(units)-1 {
		f /= 1024
		unit++
	}
	return fmt.Sprintf("%.1f %s", f, units[unit])
}

package format

import (
	"fmt"

	"github.com/dustin/go-humanize"
)

// Duration renders a duration in seconds the way players show it:
// M:SS below one hour, H:MM:SS from one hour up. Zero, negative or
// missing durations come back as "00:00".
func Duration(seconds int) string {
	if seconds <= 0 {
		return "00:00"
	}
	m, s := seconds/60, seconds%60
	h, m := m/60, m%60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%02d:%02d", m, s)
}

// TruncateTitle cuts a title down to max runes for display.
func TruncateTitle(title string, max int) string {
	if max <= 0 {
		return ""
	}
	runes := []rune(title)
	if len(runes) <= max {
		return title
	}
	return string(runes[:max])
}

// Size renders a byte count as a human readable size, e.g. "52 MB".
func Size(bytes int64) string {
	return humanize.Bytes(uint64(bytes))
}

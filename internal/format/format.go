// Package format renders progress quantities (rates, counts, byte sizes,
// durations) as short human-readable strings, plus the bar and spinner
// glyph strings themselves.
package format

import (
	"fmt"
	"strings"
	"time"
)

// Rate formats a bytes-per-second rate as a human-readable string.
func Rate(bytesPerSec float64) string {
	if bytesPerSec <= 0 {
		return "--"
	}
	units := []string{"B/s", "KB/s", "MB/s", "GB/s", "TB/s"}
	val := bytesPerSec
	for _, u := range units {
		if val < 1024 {
			if val < 10 {
				return fmt.Sprintf("%.2f %s", val, u)
			}
			if val < 100 {
				return fmt.Sprintf("%.1f %s", val, u)
			}
			return fmt.Sprintf("%.0f %s", val, u)
		}
		val /= 1024
	}
	return fmt.Sprintf("%.1f PB/s", val)
}

// ItemRate formats an items-per-second rate, scaling to K/M/G/T prefixes
// at powers of 1000.
func ItemRate(perSec float64) string {
	if perSec <= 0 {
		return "--"
	}
	prefixes := []string{"", "K", "M", "G", "T"}
	val := perSec
	for _, p := range prefixes {
		if val < 1000 {
			if p == "" {
				return fmt.Sprintf("%.0f it/s", val)
			}
			return fmt.Sprintf("%.1f%s it/s", val, p)
		}
		val /= 1000
	}
	return fmt.Sprintf("%.1fP it/s", val)
}

// ETA formats a duration as a human-readable ETA string.
func ETA(d time.Duration) string {
	if d <= 0 {
		return "--"
	}
	d = d.Round(time.Second)

	h := int(d.Hours())
	m := int(d.Minutes()) % 60
	s := int(d.Seconds()) % 60

	if h > 0 {
		return fmt.Sprintf("%dh %02dm %02ds", h, m, s)
	}
	if m > 0 {
		return fmt.Sprintf("%dm %02ds", m, s)
	}
	return fmt.Sprintf("%ds", s)
}

// Count formats an integer with comma separators.
func Count(n int64) string {
	if n < 0 {
		return "-" + Count(-n)
	}
	s := fmt.Sprintf("%d", n)
	if len(s) <= 3 {
		return s
	}
	var b strings.Builder
	remainder := len(s) % 3
	if remainder > 0 {
		b.WriteString(s[:remainder])
	}
	for i := remainder; i < len(s); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(s[i : i+3])
	}
	return b.String()
}

// Bytes returns a human-readable byte count.
func Bytes(b int64) string {
	const unit = 1024
	if b < unit {
		return fmt.Sprintf("%d B", b)
	}
	div, exp := int64(unit), 0
	for n := b / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(b)/float64(div), "KMGTPE"[exp])
}

// Duration formats elapsed time concisely.
func Duration(d time.Duration) string {
	d = d.Round(time.Second)
	h := int(d.Hours())
	m := int(d.Minutes()) % 60
	s := int(d.Seconds()) % 60

	if h > 0 {
		return fmt.Sprintf("%dh %02dm %02ds", h, m, s)
	}
	if m > 0 {
		return fmt.Sprintf("%dm %02ds", m, s)
	}
	return fmt.Sprintf("%ds", s)
}

// Bar renders a progress bar of the given width using ▪/□ characters.
// frac is clamped to [0, 1].
func Bar(frac float64, width int) string {
	if width <= 0 {
		return ""
	}
	if frac < 0 {
		frac = 0
	}
	if frac > 1 {
		frac = 1
	}

	filled := int(frac * float64(width))
	if filled > width {
		filled = width
	}

	var b strings.Builder
	for range filled {
		b.WriteRune('▪') // ▪ (filled)
	}
	for range width - filled {
		b.WriteRune('□') // □ (empty)
	}
	return b.String()
}

var spinnerFrames = []rune{'|', '/', '-', '\\'}

// Spinner returns the spinner frame for the i-th render. Used in place of
// the bar when the total is unknown.
func Spinner(i int) rune {
	if i < 0 {
		i = -i
	}
	return spinnerFrames[i%len(spinnerFrames)]
}

package common

import (
	"fmt"
	"time"
)

// FormatRelativeTime renders a timestamp the way the dashboard activity
// feed shows it.
func FormatRelativeTime(ts time.Time, now time.Time) string {
	if ts.IsZero() {
		return "-"
	}
	diff := now.Sub(ts)
	switch {
	case diff < time.Minute:
		return "just now"
	case diff < time.Hour:
		return fmt.Sprintf("%dm ago", int(diff.Minutes()))
	case diff < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(diff.Hours()))
	default:
		return ts.Format("Jan 2, 2006")
	}
}

// FormatPoints renders a signed point delta for display.
func FormatPoints(points int) string {
	if points >= 0 {
		return fmt.Sprintf("+%d", points)
	}
	return fmt.Sprintf("%d", points)
}

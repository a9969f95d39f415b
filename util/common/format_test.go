package common

import (
	"testing"
	"time"
)

func TestFormatRelativeTime(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		ts       time.Time
		expected string
	}{
		{"zero time", time.Time{}, "-"},
		{"seconds ago", now.Add(-30 * time.Second), "just now"},
		{"minutes ago", now.Add(-5 * time.Minute), "5m ago"},
		{"hours ago", now.Add(-3 * time.Hour), "3h ago"},
		{"days ago", now.Add(-48 * time.Hour), "Jun 13, 2025"},
	}

	for _, tt := range tests {
		if got := FormatRelativeTime(tt.ts, now); got != tt.expected {
			t.Errorf("%s: FormatRelativeTime = %q, want %q", tt.name, got, tt.expected)
		}
	}
}

func TestFormatPoints(t *testing.T) {
	if got := FormatPoints(20); got != "+20" {
		t.Errorf("FormatPoints(20) = %q", got)
	}
	if got := FormatPoints(0); got != "+0" {
		t.Errorf("FormatPoints(0) = %q", got)
	}
	if got := FormatPoints(-5); got != "-5" {
		t.Errorf("FormatPoints(-5) = %q", got)
	}
}

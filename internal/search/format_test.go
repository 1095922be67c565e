package search

import "testing"

func TestFormatTimestamp(t *testing.T) {
	tests := []struct {
		seconds float64
		want    string
	}{
		{0.0, "00:00.00"},
		{3661.25, "01:01:01.25"},
		{59.999, "00:59.99"}, // truncated, not rounded
		{125.5, "02:05.50"},
		{3600.0, "01:00:00.00"},
		{9.25, "00:09.25"},
	}
	for _, tc := range tests {
		if got := FormatTimestamp(tc.seconds); got != tc.want {
			t.Errorf("FormatTimestamp(%v) = %q, want %q", tc.seconds, got, tc.want)
		}
	}
}

package search

import "fmt"

// FormatTimestamp renders a second count as MM:SS.cc, or HH:MM:SS.cc once
// the value reaches an hour. The centisecond fraction is truncated, not
// rounded, so a value never displays as a later time than it is. Negative
// input is out of contract; the resolver's clamping keeps it from occurring.
func FormatTimestamp(seconds float64) string {
	total := int(seconds)
	hours := total / 3600
	minutes := (total % 3600) / 60
	secs := total % 60
	centis := int((seconds - float64(total)) * 100)

	if hours > 0 {
		return fmt.Sprintf("%02d:%02d:%02d.%02d", hours, minutes, secs, centis)
	}
	return fmt.Sprintf("%02d:%02d.%02d", minutes, secs, centis)
}

package search

import "errors"

// DefaultPadding is the symmetric margin, in seconds, applied around a match
// by the padded policy.
const DefaultPadding = 2.0

// ErrInvalidRange is returned when a resolved range would not satisfy
// end > start. Such a range must never reach the media trimmer.
var ErrInvalidRange = errors.New("clip range end must be greater than start")

// ClipRange is a playable time interval derived from a match.
type ClipRange struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
}

// Policy controls how a match is widened into a clip range. The zero value
// is the exact policy: the clip bounds the matched tokens precisely.
type Policy struct {
	Pad float64
}

// Exact returns the policy that clips exactly at the matched token bounds.
func Exact() Policy {
	return Policy{}
}

// Padded returns the policy that widens the range by pad seconds on both
// sides, clamping the start at zero.
func Padded(pad float64) Policy {
	return Policy{Pad: pad}
}

// Resolve converts a match into a clip range under the given policy. The
// start is clamped to zero and the result is rejected with ErrInvalidRange
// if the interval would be empty or inverted.
func Resolve(m Match, p Policy) (ClipRange, error) {
	start := m.Start - p.Pad
	if start < 0 {
		start = 0
	}
	end := m.End + p.Pad
	if end <= start {
		return ClipRange{}, ErrInvalidRange
	}
	return ClipRange{Start: start, End: end}, nil
}

package models

import "time"

// WordTimestamp is the smallest timestamped unit of a transcript. It belongs
// to exactly one segment and is never mutated after the producer emits it.
type WordTimestamp struct {
	Word        string  `json:"word"`
	Start       float64 `json:"start"`
	End         float64 `json:"end"`
	Probability float64 `json:"probability"`
}

// TranscriptSegment is a contiguous chunk of transcript with its own time
// range and an ordered list of word-level timestamps. Text is a human-readable
// rendering and need not equal the concatenation of the word tokens; for
// languages without inter-word spacing the two routinely differ.
type TranscriptSegment struct {
	Start float64         `json:"start"`
	End   float64         `json:"end"`
	Text  string          `json:"text"`
	Words []WordTimestamp `json:"words"`
}

// WordCount returns the number of word-level tokens in the segment.
func (s *TranscriptSegment) WordCount() int {
	return len(s.Words)
}

// Transcript is the complete word-level transcript of a single video. It is
// keyed by VideoID with at most one live instance per ID; a re-transcription
// produces a full replacement, never an in-place edit. Loaded read-only by
// the search path, so sharing one instance across goroutines is safe.
type Transcript struct {
	VideoID   string              `json:"video_id"`
	Segments  []TranscriptSegment `json:"segments"`
	Language  string              `json:"language"`
	CreatedAt time.Time           `json:"created_at"`
}

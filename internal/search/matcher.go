// Package search implements the phrase-matching and time-range resolution
// core: it locates every occurrence of a query phrase inside a word-level
// transcript and converts each occurrence into a clippable time range.
//
// Matching works on the token stream of each segment, not on the segment's
// free text, because only tokens carry timestamps. For languages without
// inter-word spacing (the primary target is Japanese) a phrase can span any
// number of adjacent tokens, so candidates are reconstructed by concatenating
// consecutive token texts with no separator.
package search

import (
	"strings"

	"golang.org/x/text/cases"

	"github.com/kittchy/kotoba-cutouter/models"
)

// Match is a located occurrence of a query, bound to the exact time range of
// the tokens that produced it. Matches are derived per query and never
// persisted.
type Match struct {
	MatchedText  string  `json:"matched_text"`
	Start        float64 `json:"start"`
	End          float64 `json:"end"`
	Context      string  `json:"context"`
	SegmentIndex int     `json:"segment_index"`
}

// fold normalizes text for comparison using full Unicode case folding.
// ASCII-only lowering is not enough here: transcripts mix scripts, and case
// folding also handles pairs that ToLower misses (e.g. Kelvin sign).
func fold(s string) string {
	return cases.Fold().String(s)
}

// FindMatches scans the transcript for every occurrence of query and returns
// them in chronological order (segment index ascending, then token position
// ascending). A blank query yields no matches; that is not an error. The
// transcript is read-only, so concurrent calls on the same instance are safe.
func FindMatches(t *models.Transcript, query string) []Match {
	matches := []Match{}

	q := fold(strings.TrimSpace(query))
	if q == "" {
		return matches
	}

	for segIdx := range t.Segments {
		seg := &t.Segments[segIdx]
		if len(seg.Words) == 0 {
			// Producer may emit segments without word alignment; they
			// carry no timestamps to match against.
			continue
		}

		// Whisper tokens can carry leading/trailing spaces; strip them the
		// same way for the original-case text and the folded form.
		tokens := make([]string, len(seg.Words))
		folded := make([]string, len(seg.Words))
		for i := range seg.Words {
			tokens[i] = strings.TrimSpace(seg.Words[i].Word)
			folded[i] = fold(tokens[i])
		}

		// Cheap pre-filter over the folded token concatenation. This is
		// lossless by construction (it is built from the same tokens the
		// scan below walks), unlike seg.Text which may contain separators
		// the tokens do not.
		if !strings.Contains(strings.Join(folded, ""), q) {
			continue
		}

		for i := 0; i < len(seg.Words); i++ {
			var cand strings.Builder
			for j := i; j < len(seg.Words); j++ {
				cand.WriteString(folded[j])
				if cand.Len() > len(q) {
					// Concatenation only grows; no longer span
					// starting at i can match.
					break
				}
				if cand.String() != q {
					continue
				}
				matches = append(matches, Match{
					MatchedText:  strings.Join(tokens[i:j+1], ""),
					Start:        seg.Words[i].Start,
					End:          seg.Words[j].End,
					Context:      seg.Text,
					SegmentIndex: segIdx,
				})
				// Shortest-match policy: once a span starting at i
				// matches, longer supersets of it are not reported.
				break
			}
		}
	}

	return matches
}

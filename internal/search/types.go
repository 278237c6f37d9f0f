package search

import "talentmatch/internal/storage"

// Result is one matched candidate with its similarity score.
type Result struct {
	Profile *storage.ProfileRecord
	Score   float32
}

// Outcome is the result of a candidate search. Matches counts raw vector
// hits, so callers can tell "nothing matched" apart from "matches exist
// but none resolved to a profile".
type Outcome struct {
	Results []Result
	Matches int
}

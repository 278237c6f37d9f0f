package shortlist

import (
	_ "embed"
	"fmt"
	"strconv"
	"strings"

	"talentmatch/internal/search"
)

//go:embed prompt.md
var promptTemplate string

// systemPrompt renders the instruction prompt for a candidate list of
// size n. The selection cap is the smaller of the configured shortlist
// size and n, so the model is never asked for more picks than it was
// given candidates.
func (o *Orchestrator) systemPrompt(n int) string {
	maxPicks := o.shortlistSize
	if n < maxPicks {
		maxPicks = n
	}
	return strings.ReplaceAll(promptTemplate, "{{MAX}}", strconv.Itoa(maxPicks))
}

// userPrompt renders the recruiter's literal query followed by the
// candidates the search returned, one numbered line per candidate with
// name and profile link. The model sees exactly this list and nothing
// else about the candidate pool.
func (o *Orchestrator) userPrompt(query string, results []search.Result) string {
	var sb strings.Builder
	sb.WriteString("Recruiter query: ")
	sb.WriteString(query)
	sb.WriteString("\n\nCandidates found by the resume search:\n")
	for i, result := range results {
		fmt.Fprintf(&sb, "%d. %s (%s)\n", i+1, result.Profile.FullName, o.profileLink(result.Profile.ID))
	}
	return sb.String()
}

func (o *Orchestrator) profileLink(profileID string) string {
	return o.baseURL + "/profiles/" + profileID
}

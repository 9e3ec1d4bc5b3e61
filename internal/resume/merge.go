package resume

import (
	"sort"
	"strings"
)

// Merge combines facts produced by an AI-assisted extractor with facts produced by
// Extract. The AI name wins when present; skills are the sorted, case-insensitive
// union of both lists; experience and education are taken from the AI result as is.
// Neither input is modified.
func Merge(ai, scanned *Facts) *Facts {
	if ai == nil {
		return scanned.Clone()
	}
	if scanned == nil {
		scanned = &Facts{}
	}

	name := strings.TrimSpace(ai.CandidateName)
	if name == "" {
		name = scanned.CandidateName
	}
	if name == "" {
		name = UnknownCandidate
	}

	skills := newSkillSet()
	skills.add(ai.Skills...)
	skills.add(scanned.Skills...)
	merged := skills.list()
	sort.Strings(merged)

	source := scanned.SourceText
	if source == "" {
		source = ai.SourceText
	}

	return &Facts{
		CandidateName: name,
		Skills:        merged,
		Experience:    cloneStrings(ai.Experience),
		Education:     cloneStrings(ai.Education),
		SourceText:    source,
	}
}

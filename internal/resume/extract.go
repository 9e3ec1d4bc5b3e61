package resume

import (
	"regexp"
	"strings"
)

var (
	skillsHeadingRe = regexp.MustCompile(`(?i)(?:skills|technical skills|key skills)[:\n]`)
	// A section ends before a blank line or before a line starting with an uppercase letter.
	sectionEndRe = regexp.MustCompile(`\n(?:\n|\p{Lu})`)

	experienceRe = regexp.MustCompile(`(?i)(?:engineer|developer|manager|analyst|consultant|intern|associate|lead|senior|junior|specialist|support|administrator)\s*[\w\s]*(?:\d{4}\s*-\s*\d{4}|\d{4}\s*-\s*present|\d{4})`)
	educationRe  = regexp.MustCompile(`(?i)(?:bachelor|bs|ms|phd|master|mba|diploma|certificate|degree)\s*(?:in|of)?\s*[\w\s]*(?:university|college|institute|school|academy)?`)
)

// Extract reads resume facts out of plain text using the given vocabulary.
//
// Skills are collected by a whole-document scan followed by a scan restricted to the
// first skills section; results are merged in discovery order. Experience and education
// entries are the trimmed regex matches, kept as opaque strings. The candidate name
// comes from the first lines of the document.
func Extract(text string, vocabulary Vocabulary) (*Facts, error) {
	if strings.TrimSpace(text) == "" {
		return nil, &EmptyDocumentError{}
	}

	skills := newSkillSet()
	lower := strings.ToLower(text)

	skills.add(vocabulary.matches(lower)...)

	if section, ok := skillsSection(text); ok {
		skills.add(vocabulary.matches(strings.ToLower(section))...)
	}

	return &Facts{
		CandidateName: candidateName(text),
		Skills:        skills.list(),
		Experience:    matchAllTrimmed(experienceRe, text),
		Education:     matchAllTrimmed(educationRe, text),
		SourceText:    text,
	}, nil
}

// skillsSection returns the body of the first skills section. The body runs from the
// character after the heading up to the first section end; without an end there is no section.
func skillsSection(text string) (string, bool) {
	heading := skillsHeadingRe.FindStringIndex(text)
	if heading == nil {
		return "", false
	}

	start := heading[1]
	end := sectionEndRe.FindStringIndex(text[start:])
	if end == nil {
		return "", false
	}

	return text[start : start+end[0]], true
}

func matchAllTrimmed(re *regexp.Regexp, text string) []string {
	matches := re.FindAllString(text, -1)
	result := make([]string, 0, len(matches))
	for _, match := range matches {
		result = append(result, strings.TrimSpace(match))
	}
	return result
}

// skillSet keeps lowercase skills in insertion order without duplicates.
type skillSet struct {
	order []string
	seen  map[string]struct{}
}

func newSkillSet() *skillSet {
	return &skillSet{seen: make(map[string]struct{})}
}

func (s *skillSet) add(skills ...string) {
	for _, skill := range skills {
		key := strings.ToLower(strings.TrimSpace(skill))
		if key == "" {
			continue
		}
		if _, ok := s.seen[key]; ok {
			continue
		}
		s.seen[key] = struct{}{}
		s.order = append(s.order, key)
	}
}

func (s *skillSet) list() []string {
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}

// Package resume extracts structured candidate facts from plain resume text.
package resume

// UnknownCandidate is used when no line of the document looks like a person name.
const UnknownCandidate = "Unknown Candidate"

// Facts is the structured result of reading one resume.
// A Facts value is never modified after it is returned; derive new values instead.
type Facts struct {
	CandidateName string   `json:"candidate_name"`
	Skills        []string `json:"skills"`
	Experience    []string `json:"experience"`
	Education     []string `json:"education"`
	SourceText    string   `json:"source_text"`
}

// Clone returns a deep copy of f.
func (f *Facts) Clone() *Facts {
	if f == nil {
		return nil
	}

	return &Facts{
		CandidateName: f.CandidateName,
		Skills:        cloneStrings(f.Skills),
		Experience:    cloneStrings(f.Experience),
		Education:     cloneStrings(f.Education),
		SourceText:    f.SourceText,
	}
}

// HasSkills reports whether at least one skill was found.
func (f *Facts) HasSkills() bool {
	return f != nil && len(f.Skills) > 0
}

func cloneStrings(in []string) []string {
	out := make([]string, len(in))
	copy(out, in)
	return out
}

package resume

import "strings"

// Vocabulary is the controlled list of skill terms matched against resume text.
// Terms are lowercase and unique; order decides discovery order.
type Vocabulary []string

var defaultTerms = []string{
	"python", "javascript", "sql", "java", "react", "node.js", "html", "css",
	"typescript", "angular", "vue", "mongodb", "mysql", "postgresql", "aws",
	"docker", "kubernetes", "git", "linux", "c++", "c#", "php", "ruby",
	"excel", "tableau", "power bi", "r", "matlab", "tensorflow", "pytorch",
	"agile", "scrum", "jira", "jenkins", "azure", "gcp", "graphql", "rest",
	"communication", "teamwork", "problem solving", "leadership", "management",
	"customer service", "technical support", "data analysis", "project management",
}

// DefaultVocabulary returns the built-in skill list.
func DefaultVocabulary() Vocabulary {
	return NewVocabulary(defaultTerms...)
}

// NewVocabulary trims and lowercases terms, dropping empty and repeated ones.
func NewVocabulary(terms ...string) Vocabulary {
	vocabulary := make(Vocabulary, 0, len(terms))
	seen := make(map[string]struct{}, len(terms))

	for _, term := range terms {
		normalized := strings.ToLower(strings.TrimSpace(term))
		if normalized == "" {
			continue
		}
		if _, ok := seen[normalized]; ok {
			continue
		}
		seen[normalized] = struct{}{}
		vocabulary = append(vocabulary, normalized)
	}

	return vocabulary
}

// Len returns the number of terms.
func (v Vocabulary) Len() int {
	return len(v)
}

// matches returns the terms found in text, in vocabulary order.
// text must already be lowercase.
func (v Vocabulary) matches(lowerText string) []string {
	var found []string
	for _, term := range v {
		if strings.Contains(lowerText, strings.ToLower(term)) {
			found = append(found, strings.ToLower(term))
		}
	}
	return found
}

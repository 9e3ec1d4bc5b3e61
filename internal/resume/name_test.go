package resume

import (
	"strings"
	"testing"
)

func TestCandidateName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		text   string
		expect string
	}{
		{name: "first line", text: "Jane Doe\nSoftware Engineer", expect: "Jane Doe"},
		{name: "all caps rejected", text: "JOHN SMITH\nJohn Smith\n", expect: "John Smith"},
		{name: "apostrophe", text: "Curriculum Vitae\nMary O'Brien\n", expect: "Mary O'Brien"},
		{name: "hyphen", text: "\n\nAnna Smith-Jones\n", expect: "Anna Smith-Jones"},
		{name: "initial kept", text: "Jane Q Doe\nEngineer", expect: "Jane Q Doe"},
		{name: "initial not counted", text: "Mary J Anne Lee", expect: "Mary J Anne Lee"},
		{name: "initials beyond word limit ignored", text: "A Jane B Mary C Ann D Lee", expect: "A Jane B Mary C Ann D Lee"},
		{name: "stopword line skipped", text: "Contact Jane Doe\nJohn Smith", expect: "John Smith"},
		{name: "single word", text: "Jane\nengineer", expect: UnknownCandidate},
		{name: "too many words", text: "Jane Mary Ann Lee Doe", expect: UnknownCandidate},
		{name: "lowercase word", text: "jane doe", expect: UnknownCandidate},
		{name: "long line", text: strings.Repeat("Ab ", 20), expect: UnknownCandidate},
		{name: "inner spacing kept", text: "  Jane    Doe  ", expect: "Jane    Doe"},
		{
			name:   "beyond scan window",
			text:   strings.Repeat("x\n", nameScanLines) + "Jane Doe",
			expect: UnknownCandidate,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := candidateName(tt.text); got != tt.expect {
				t.Fatalf("expected %q, got %q", tt.expect, got)
			}
		})
	}
}

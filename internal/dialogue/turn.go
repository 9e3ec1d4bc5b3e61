package dialogue

import (
	"strings"
	"time"

	"github.com/spigell/resume-screener/internal/resume"
)

// Sender identifies who produced a turn.
type Sender string

const (
	SenderUser  Sender = "user"
	SenderAgent Sender = "agent"
)

// Turn is one message in a conversation log.
type Turn struct {
	Sender    Sender    `json:"sender"`
	Text      string    `json:"text"`
	Timestamp time.Time `json:"timestamp"`
}

// IsAgent reports whether the turn was produced by the agent.
// Unknown senders are never treated as agent turns.
func (t Turn) IsAgent() bool {
	return t.Sender == SenderAgent
}

// DiscussedSkills returns the skills of facts, in facts order, that the agent has
// already mentioned in any prior turn. User turns do not count.
func DiscussedSkills(facts *resume.Facts, turns []Turn) []string {
	if !facts.HasSkills() {
		return []string{}
	}

	var agentTexts []string
	for _, turn := range turns {
		if turn.IsAgent() {
			agentTexts = append(agentTexts, strings.ToLower(turn.Text))
		}
	}

	discussed := make([]string, 0, len(facts.Skills))
	for _, skill := range facts.Skills {
		needle := strings.ToLower(skill)
		for _, text := range agentTexts {
			if strings.Contains(text, needle) {
				discussed = append(discussed, skill)
				break
			}
		}
	}

	return discussed
}

func undiscussedSkills(facts *resume.Facts, turns []Turn) []string {
	discussed := make(map[string]struct{})
	for _, skill := range DiscussedSkills(facts, turns) {
		discussed[skill] = struct{}{}
	}

	var left []string
	for _, skill := range facts.Skills {
		if _, ok := discussed[skill]; !ok {
			left = append(left, skill)
		}
	}
	return left
}

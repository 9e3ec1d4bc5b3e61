// Package dialogue picks the next interviewer reply from a fixed priority cascade of rules.
package dialogue

import (
	"strings"

	"github.com/spigell/resume-screener/internal/resume"
)

// Rule is a single step of the reply cascade.
type Rule interface {
	Name() string
	// Match returns the reply and true when the rule applies to the input.
	Match(in *Input) (string, bool)
}

// Input is what every rule sees: the candidate facts, the prior turns and the incoming message.
type Input struct {
	Facts    *resume.Facts
	Turns    []Turn
	Incoming string

	message string
}

// NewInput prepares the incoming message for matching.
func NewInput(facts *resume.Facts, turns []Turn, incoming string) *Input {
	return &Input{
		Facts:    facts,
		Turns:    turns,
		Incoming: incoming,
		message:  strings.ToLower(incoming),
	}
}

// Decision is the outcome of running the cascade.
type Decision struct {
	Rule  string `json:"rule"`
	Reply string `json:"reply"`
}

// Status describes a rule for listing.
type Status struct {
	Name        string
	Description string
	Details     map[string]string
}

type statusProvider interface {
	Status() Status
}

// Cascade is an ordered list of rules; the first matching rule wins.
type Cascade []Rule

// DefaultCascade returns the rules in priority order.
func DefaultCascade() Cascade {
	return Cascade{
		NewGratitude(),
		NewCompensation(),
		NewTimeline(),
		NewSkillFollowUp(),
		NewRole(),
		NewTerseness(),
		NewSkillRotation(),
		NewFallback(),
	}
}

// Select runs the rules in order and returns the first match.
// A cascade without a catch-all rule may return an empty Decision.
func (c Cascade) Select(facts *resume.Facts, turns []Turn, incoming string) Decision {
	in := NewInput(facts, turns, incoming)
	for _, rule := range c {
		if reply, ok := rule.Match(in); ok {
			return Decision{Rule: rule.Name(), Reply: reply}
		}
	}
	return Decision{}
}

// Describe returns status entries for the rules in priority order.
func (c Cascade) Describe() []Status {
	statuses := make([]Status, 0, len(c))
	for _, rule := range c {
		if reporter, ok := rule.(statusProvider); ok {
			statuses = append(statuses, reporter.Status())
			continue
		}
		statuses = append(statuses, Status{Name: rule.Name()})
	}
	return statuses
}

var defaultCascade = DefaultCascade()

// Select runs the default cascade.
func Select(facts *resume.Facts, turns []Turn, incoming string) Decision {
	return defaultCascade.Select(facts, turns, incoming)
}

// NextReply returns the reply of the default cascade.
func NextReply(facts *resume.Facts, turns []Turn, incoming string) string {
	return Select(facts, turns, incoming).Reply
}

// Describe lists the default cascade.
func Describe() []Status {
	return defaultCascade.Describe()
}

package dialogue

import (
	"fmt"
	"strings"
)

const (
	RuleGratitude     = "gratitude"
	RuleCompensation  = "compensation"
	RuleTimeline      = "timeline"
	RuleSkillFollowUp = "skill_followup"
	RuleRole          = "role"
	RuleTerseness     = "terseness"
	RuleSkillRotation = "skill_rotation"
	RuleFallback      = "fallback"
)

// Messages shorter than this many words are considered terse.
const terseWordLimit = 10

const (
	gratitudeReply    = "You're welcome! Is there anything else you'd like to know about the role or our process?"
	compensationReply = "Compensation depends on experience and is discussed in detail with the hiring team. What are your salary expectations?"
	timelineReply     = "You can expect to hear back from us within 5–7 business days."
	followUpReply     = "Can you describe a project where you used %s?"
	roleReply         = "What interests you most about this position?"
	tersenessReply    = "Could you elaborate a bit more? I'd love to hear more details."
	rotationReply     = "Tell me about your experience with %s."
	closingReply      = "Thanks for sharing all of that. Is there anything else you'd like to know about the company or the role?"
	fallbackReply     = "What are you looking for in your next role?"
)

// keywordRule fires when the message contains any of its keywords.
type keywordRule struct {
	name        string
	description string
	keywords    []string
	all         bool
	reply       string
}

func (r *keywordRule) Name() string { return r.name }

func (r *keywordRule) Match(in *Input) (string, bool) {
	matched := r.all
	for _, keyword := range r.keywords {
		found := strings.Contains(in.message, keyword)
		if r.all && !found {
			return "", false
		}
		if !r.all && found {
			matched = true
			break
		}
	}
	if !matched {
		return "", false
	}
	return r.reply, true
}

func (r *keywordRule) Status() Status {
	join := "any"
	if r.all {
		join = "all"
	}
	return Status{
		Name:        r.name,
		Description: r.description,
		Details: map[string]string{
			"keywords": strings.Join(r.keywords, ","),
			"match":    join,
		},
	}
}

// NewGratitude acknowledges thanks.
func NewGratitude() Rule {
	return &keywordRule{
		name:        RuleGratitude,
		description: "acknowledges thanks and invites further questions",
		keywords:    []string{"thank you", "thanks"},
		reply:       gratitudeReply,
	}
}

// NewCompensation defers salary questions.
func NewCompensation() Rule {
	return &keywordRule{
		name:        RuleCompensation,
		description: "defers compensation questions and asks for expectations",
		keywords:    []string{"salary", "compensation"},
		reply:       compensationReply,
	}
}

// NewTimeline answers questions about when the candidate will hear back.
func NewTimeline() Rule {
	return &keywordRule{
		name:        RuleTimeline,
		description: "states the response time",
		keywords:    []string{"when", "hear"},
		all:         true,
		reply:       timelineReply,
	}
}

// NewRole asks what draws the candidate to the position.
func NewRole() Rule {
	return &keywordRule{
		name:        RuleRole,
		description: "asks about interest in the position",
		keywords:    []string{"position", "job", "role"},
		reply:       roleReply,
	}
}

type skillFollowUpRule struct{}

// NewSkillFollowUp asks for a project example when the message names a known skill.
func NewSkillFollowUp() Rule {
	return &skillFollowUpRule{}
}

func (r *skillFollowUpRule) Name() string { return RuleSkillFollowUp }

func (r *skillFollowUpRule) Match(in *Input) (string, bool) {
	if !in.Facts.HasSkills() {
		return "", false
	}
	for _, skill := range in.Facts.Skills {
		if strings.Contains(in.message, strings.ToLower(skill)) {
			return fmt.Sprintf(followUpReply, skill), true
		}
	}
	return "", false
}

func (r *skillFollowUpRule) Status() Status {
	return Status{Name: r.Name(), Description: "asks for a project that used the first skill named in the message"}
}

type tersenessRule struct {
	limit int
}

// NewTerseness asks for more detail on short messages.
func NewTerseness() Rule {
	return &tersenessRule{limit: terseWordLimit}
}

func (r *tersenessRule) Name() string { return RuleTerseness }

func (r *tersenessRule) Match(in *Input) (string, bool) {
	if len(strings.Fields(in.message)) >= r.limit {
		return "", false
	}
	return tersenessReply, true
}

func (r *tersenessRule) Status() Status {
	return Status{
		Name:        r.Name(),
		Description: "asks for more detail on short messages",
		Details:     map[string]string{"min_words": fmt.Sprint(r.limit)},
	}
}

type skillRotationRule struct{}

// NewSkillRotation asks about the first skill the agent has not mentioned yet.
func NewSkillRotation() Rule {
	return &skillRotationRule{}
}

func (r *skillRotationRule) Name() string { return RuleSkillRotation }

func (r *skillRotationRule) Match(in *Input) (string, bool) {
	if !in.Facts.HasSkills() {
		return "", false
	}
	left := undiscussedSkills(in.Facts, in.Turns)
	if len(left) == 0 {
		return closingReply, true
	}
	return fmt.Sprintf(rotationReply, left[0]), true
}

func (r *skillRotationRule) Status() Status {
	return Status{Name: r.Name(), Description: "asks about the next skill not yet discussed, then closes"}
}

type fallbackRule struct{}

// NewFallback always replies with a generic prompt.
func NewFallback() Rule {
	return &fallbackRule{}
}

func (r *fallbackRule) Name() string { return RuleFallback }

func (r *fallbackRule) Match(*Input) (string, bool) { return fallbackReply, true }

func (r *fallbackRule) Status() Status {
	return Status{Name: r.Name(), Description: "generic prompt when nothing else applies"}
}

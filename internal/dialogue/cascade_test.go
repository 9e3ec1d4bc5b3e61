package dialogue

import (
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/spigell/resume-screener/internal/resume"
)

func factsWith(skills ...string) *resume.Facts {
	return &resume.Facts{CandidateName: "Jane Doe", Skills: skills}
}

func TestSelectPriority(t *testing.T) {
	t.Parallel()

	long := " and I have a lot more to say about many different things today"

	tests := []struct {
		name     string
		facts    *resume.Facts
		turns    []Turn
		incoming string
		rule     string
		reply    string
	}{
		{
			name:     "gratitude beats compensation",
			facts:    factsWith("python"),
			incoming: "Thanks, what about the salary?",
			rule:     RuleGratitude,
			reply:    gratitudeReply,
		},
		{
			name:     "compensation beats timeline",
			facts:    factsWith("python"),
			incoming: "When will I hear about compensation?",
			rule:     RuleCompensation,
			reply:    compensationReply,
		},
		{
			name:     "timeline needs both words",
			facts:    factsWith("python"),
			incoming: "When do I hear back from python people?",
			rule:     RuleTimeline,
			reply:    timelineReply,
		},
		{
			name:     "timeline not triggered by one word",
			facts:    factsWith(),
			incoming: "When" + long,
			rule:     RuleFallback,
			reply:    fallbackReply,
		},
		{
			name:     "skill followup beats role",
			facts:    factsWith("python", "sql"),
			incoming: "I used SQL and Python in my last job",
			rule:     RuleSkillFollowUp,
			reply:    "Can you describe a project where you used python?",
		},
		{
			name:     "role beats terseness",
			facts:    factsWith("python"),
			incoming: "Tell me about the role",
			rule:     RuleRole,
			reply:    roleReply,
		},
		{
			name:     "terseness",
			facts:    factsWith("python", "sql"),
			incoming: "I love coding",
			rule:     RuleTerseness,
			reply:    tersenessReply,
		},
		{
			name:     "terseness without skills",
			facts:    factsWith(),
			incoming: "hello",
			rule:     RuleTerseness,
			reply:    tersenessReply,
		},
		{
			name:     "rotation asks about first skill",
			facts:    factsWith("python", "sql"),
			incoming: "I" + long,
			rule:     RuleSkillRotation,
			reply:    "Tell me about your experience with python.",
		},
		{
			name:  "rotation skips discussed skill",
			facts: factsWith("python", "sql"),
			turns: []Turn{
				{Sender: SenderUser, Text: "hi"},
				{Sender: SenderAgent, Text: "Tell me about your experience with Python."},
			},
			incoming: "I" + long,
			rule:     RuleSkillRotation,
			reply:    "Tell me about your experience with sql.",
		},
		{
			name:     "fallback without skills",
			facts:    factsWith(),
			incoming: "I" + long,
			rule:     RuleFallback,
			reply:    fallbackReply,
		},
		{
			name:     "nil facts",
			facts:    nil,
			incoming: "I" + long,
			rule:     RuleFallback,
			reply:    fallbackReply,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := Select(tt.facts, tt.turns, tt.incoming)
			expected := Decision{Rule: tt.rule, Reply: tt.reply}
			if got != expected {
				t.Fatalf("expected %+v, got %+v", expected, got)
			}
		})
	}
}

func TestRotationExhaustion(t *testing.T) {
	t.Parallel()

	facts := factsWith("python", "sql")
	message := "I have worked on many different projects over the last several years"

	var turns []Turn
	var replies []string
	for i := 0; i < 3; i++ {
		reply := NextReply(facts, turns, message)
		replies = append(replies, reply)

		now := time.Unix(int64(i), 0)
		turns = append(turns,
			Turn{Sender: SenderUser, Text: message, Timestamp: now},
			Turn{Sender: SenderAgent, Text: reply, Timestamp: now},
		)
	}

	expected := []string{
		"Tell me about your experience with python.",
		"Tell me about your experience with sql.",
		closingReply,
	}
	if !reflect.DeepEqual(replies, expected) {
		t.Fatalf("unexpected replies:\n got: %q\nwant: %q", replies, expected)
	}
}

func TestDiscussedSkills(t *testing.T) {
	t.Parallel()

	facts := factsWith("go", "docker", "sql")
	turns := []Turn{
		{Sender: SenderUser, Text: "I know SQL"},
		{Sender: SenderAgent, Text: "What about DOCKER?"},
		{Sender: "bot", Text: "go go go"},
	}

	got := DiscussedSkills(facts, turns)
	if !reflect.DeepEqual(got, []string{"docker"}) {
		t.Fatalf("expected only agent mentions, got %v", got)
	}

	if got := DiscussedSkills(nil, turns); len(got) != 0 {
		t.Fatalf("expected no skills for nil facts, got %v", got)
	}
}

func TestSelectIsPure(t *testing.T) {
	t.Parallel()

	facts := factsWith("python")
	turns := []Turn{{Sender: SenderAgent, Text: "Tell me about python"}}

	first := Select(facts, turns, "Something about my background that is long enough here")
	second := Select(facts, turns, "Something about my background that is long enough here")
	if first != second {
		t.Fatalf("expected identical decisions, got %+v and %+v", first, second)
	}
	if len(turns) != 1 || facts.Skills[0] != "python" {
		t.Fatalf("inputs were modified")
	}
}

func TestCustomCascadeWithoutFallback(t *testing.T) {
	t.Parallel()

	cascade := Cascade{NewGratitude()}
	if got := cascade.Select(nil, nil, "hello"); got != (Decision{}) {
		t.Fatalf("expected empty decision, got %+v", got)
	}
}

func TestDescribe(t *testing.T) {
	t.Parallel()

	statuses := Describe()
	names := make([]string, 0, len(statuses))
	for _, status := range statuses {
		names = append(names, status.Name)
		if strings.TrimSpace(status.Description) == "" {
			t.Fatalf("rule %s has no description", status.Name)
		}
	}

	expected := []string{
		RuleGratitude, RuleCompensation, RuleTimeline, RuleSkillFollowUp,
		RuleRole, RuleTerseness, RuleSkillRotation, RuleFallback,
	}
	if !reflect.DeepEqual(names, expected) {
		t.Fatalf("unexpected order: %v", names)
	}

	if statuses[2].Details["match"] != "all" {
		t.Fatalf("expected timeline to require all keywords, got %v", statuses[2].Details)
	}
}

package gemini

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/spigell/resume-screener/internal/ai"
	"github.com/spigell/resume-screener/internal/resume"
	"github.com/spigell/resume-screener/internal/utils"
)

type contentGenerator interface {
	GenerateContent(ctx context.Context, system, message string) (string, error)
	Model() string
}

//go:embed extract_prompt.md
var promptTemplate string

const (
	defaultMaxLogLength     = 200
	maxUserInstructionRunes = 500
	noneValue               = "none"
)

// PromptOverrides tunes the system prompt.
type PromptOverrides struct {
	Vocabulary       resume.Vocabulary
	UserInstructions string
}

// Extractor asks Gemini for resume facts.
type Extractor struct {
	generator contentGenerator
	logger    *zap.Logger
	maxLogLen int
	overrides PromptOverrides
}

var _ ai.Extractor = (*Extractor)(nil)

func NewExtractor(generator contentGenerator, maxLogLength int, logger *zap.Logger) *Extractor {
	if maxLogLength <= 0 {
		maxLogLength = defaultMaxLogLength
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Extractor{
		generator: generator,
		logger:    logger,
		maxLogLen: maxLogLength,
	}
}

func (e *Extractor) SetPromptOverrides(overrides PromptOverrides) {
	e.overrides = overrides
}

// ExtractFacts sends text to the model and parses its JSON answer into facts.
func (e *Extractor) ExtractFacts(ctx context.Context, text string) (*resume.Facts, error) {
	if strings.TrimSpace(text) == "" {
		return nil, &resume.EmptyDocumentError{}
	}

	system := buildPrompt(e.overrides)

	e.logger.Debug("gemini extract request",
		zap.Int("prompt_length", utf8.RuneCountInString(system)),
		zap.Int("resume_length", utf8.RuneCountInString(text)),
		zap.String("resume_preview", utils.TruncateForLog(text, e.maxLogLen)),
	)

	raw, err := e.generator.GenerateContent(ctx, system, text)
	if err != nil {
		return nil, &ai.ExtractionError{Stage: ai.StageGenerate, Cause: err}
	}

	e.logger.Debug("gemini extract response",
		zap.Int("response_length", utf8.RuneCountInString(raw)),
		zap.String("response_preview", utils.TruncateForLog(raw, e.maxLogLen)),
	)

	facts, err := parseResponse(raw)
	if err != nil {
		return nil, &ai.ExtractionError{Stage: ai.StageParse, Cause: err}
	}

	facts.SourceText = text
	return facts, nil
}

func buildPrompt(overrides PromptOverrides) string {
	template := promptTemplate
	if strings.TrimSpace(template) == "" {
		template = "Return resume facts as JSON.\nKnown skills: {{VOCABULARY}}\n{{USER_INSTRUCTIONS}}"
	}

	vocabulary := noneValue
	if overrides.Vocabulary.Len() > 0 {
		vocabulary = sanitizeSingleLine(strings.Join(overrides.Vocabulary, ", "))
	}

	prompt := strings.ReplaceAll(template, "{{VOCABULARY}}", vocabulary)
	prompt = strings.ReplaceAll(prompt, "{{USER_INSTRUCTIONS}}", userInstructionsBlock(overrides.UserInstructions))
	return prompt
}

// userInstructionsBlock renders free-form instructions as an indented list, one item per line.
func userInstructionsBlock(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "  - " + noneValue
	}

	runes := []rune(raw)
	if len(runes) > maxUserInstructionRunes {
		raw = string(runes[:maxUserInstructionRunes])
	}

	var lines []string
	for _, line := range strings.Split(strings.ReplaceAll(raw, "\r\n", "\n"), "\n") {
		line = sanitizeSingleLine(line)
		if line == "" {
			continue
		}
		lines = append(lines, "  - "+line)
	}
	if len(lines) == 0 {
		return "  - " + noneValue
	}
	return strings.Join(lines, "\n")
}

// sanitizeSingleLine collapses whitespace and neutralizes section markers.
func sanitizeSingleLine(value string) string {
	value = strings.NewReplacer("[", "(", "]", ")").Replace(value)
	return strings.Join(strings.Fields(value), " ")
}

func parseResponse(raw string) (*resume.Facts, error) {
	cleaned := extractJSON(raw)

	var data map[string]any
	if err := json.Unmarshal([]byte(cleaned), &data); err != nil {
		return nil, fmt.Errorf("parse gemini response: %w", err)
	}

	name := coerceString(data["candidate_name"])
	if name == "" {
		name = coerceString(data["name"])
	}

	skills := coerceStrings(data["skills"])
	for i, skill := range skills {
		skills[i] = strings.ToLower(skill)
	}

	return &resume.Facts{
		CandidateName: name,
		Skills:        skills,
		Experience:    coerceStrings(data["experience"]),
		Education:     coerceStrings(data["education"]),
	}, nil
}

func extractJSON(raw string) string {
	raw = strings.TrimSpace(raw)
	if strings.HasPrefix(raw, "```") {
		raw = strings.TrimPrefix(raw, "```json")
		raw = strings.TrimPrefix(raw, "```")
		raw = strings.TrimSpace(raw)
		if idx := strings.LastIndex(raw, "```"); idx != -1 {
			raw = raw[:idx]
		}
	}
	raw = strings.Trim(raw, "`")
	return strings.TrimSpace(raw)
}

// coerceStrings accepts an array of values or a comma separated string.
func coerceStrings(v any) []string {
	out := []string{}

	switch val := v.(type) {
	case []any:
		for _, item := range val {
			if s := coerceString(item); s != "" {
				out = append(out, s)
			}
		}
	case string:
		for _, item := range strings.Split(val, ",") {
			if s := strings.TrimSpace(item); s != "" {
				out = append(out, s)
			}
		}
	}

	return out
}

func coerceString(v any) string {
	switch val := v.(type) {
	case string:
		return strings.TrimSpace(val)
	case fmt.Stringer:
		return strings.TrimSpace(val.String())
	default:
		if v == nil {
			return ""
		}
		bytes, err := json.Marshal(v)
		if err != nil {
			return fmt.Sprintf("%v", v)
		}
		return string(bytes)
	}
}

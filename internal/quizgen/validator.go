package quizgen

import (
	"encoding/json"
	"fmt"
	"strings"

	"studyquiz/internal/domain"
	"studyquiz/internal/logger"

	"go.uber.org/zap"
)

// ValidationCode identifies which rule of the question contract a raw
// LLM response violated.
type ValidationCode string

const (
	CodeMalformedJSON    ValidationCode = "MALFORMED_JSON"
	CodeNotAnArray       ValidationCode = "NOT_AN_ARRAY"
	CodeMissingField     ValidationCode = "MISSING_FIELD"
	CodeBadOptions       ValidationCode = "BAD_OPTIONS"
	CodeBadCorrectAnswer ValidationCode = "BAD_CORRECT_ANSWER"
	CodeUnknownType      ValidationCode = "UNKNOWN_TYPE"
)

const rawExcerptLimit = 500

// ValidationError is a classified quiz-contract failure. Index is the
// zero-based question index of the offending entry, or -1 for failures
// of the response as a whole.
type ValidationError struct {
	Code   ValidationCode
	Index  int
	Detail string
	Raw    string // excerpt of the raw response, for diagnostics
}

func (e *ValidationError) Error() string {
	if e.Index >= 0 {
		return fmt.Sprintf("question %d: %s", e.Index+1, e.Detail)
	}
	return e.Detail
}

func newResponseError(code ValidationCode, detail, raw string) *ValidationError {
	if runes := []rune(raw); len(runes) > rawExcerptLimit {
		raw = string(runes[:rawExcerptLimit])
	}
	return &ValidationError{Code: code, Index: -1, Detail: detail, Raw: raw}
}

func newEntryError(code ValidationCode, index int, detail string) *ValidationError {
	return &ValidationError{Code: code, Index: index, Detail: detail}
}

// Validate parses the raw LLM completion, repairs common formatting
// noise (enclosing code fences) and enforces the question contract.
//
// If the model over-produced, the result is truncated to the first
// expectedCount entries. Under-production is not repaired: the returned
// quiz is simply shorter than expectedCount and the caller observes the
// shortfall. Validation stops at the first structural error.
func Validate(raw string, expectedCount int) (domain.Quiz, error) {
	cleaned := stripCodeFences(raw)

	var entries []json.RawMessage
	if err := json.Unmarshal([]byte(cleaned), &entries); err != nil {
		var probe any
		if json.Unmarshal([]byte(cleaned), &probe) != nil {
			return nil, newResponseError(CodeMalformedJSON, fmt.Sprintf("response is not valid JSON: %v", err), raw)
		}
		return nil, newResponseError(CodeNotAnArray, "response is not a JSON array", raw)
	}

	if len(entries) > expectedCount {
		logger.Get().Warn("Model over-produced questions, truncating",
			zap.Int("requested", expectedCount),
			zap.Int("produced", len(entries)),
		)
		entries = entries[:expectedCount]
	}

	quiz := make(domain.Quiz, 0, len(entries))
	for i, entry := range entries {
		question, err := validateEntry(i, entry)
		if err != nil {
			return nil, err
		}
		quiz = append(quiz, question)
	}
	return quiz, nil
}

func validateEntry(index int, entry json.RawMessage) (domain.Question, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(entry, &fields); err != nil {
		return nil, newEntryError(CodeMissingField, index, "entry is not a JSON object")
	}

	prompt, ok := stringField(fields, "question")
	if !ok {
		return nil, newEntryError(CodeMissingField, index, "missing required field \"question\"")
	}
	qType, ok := stringField(fields, "type")
	if !ok {
		return nil, newEntryError(CodeMissingField, index, "missing required field \"type\"")
	}
	explanation, ok := stringField(fields, "explanation")
	if !ok {
		return nil, newEntryError(CodeMissingField, index, "missing required field \"explanation\"")
	}

	switch domain.QuestionType(qType) {
	case domain.QuestionTypeMultipleChoice:
		options, err := validateOptions(index, fields["options"])
		if err != nil {
			return nil, err
		}
		correctIndex, err := validateCorrectIndex(index, fields["correctAnswer"])
		if err != nil {
			return nil, err
		}
		return domain.NewMultipleChoice(prompt, options, correctIndex, explanation), nil

	case domain.QuestionTypeShortAnswer:
		var modelAnswer string
		if raw, present := fields["correctAnswer"]; !present || json.Unmarshal(raw, &modelAnswer) != nil || modelAnswer == "" {
			return nil, newEntryError(CodeBadCorrectAnswer, index, "short-answer \"correctAnswer\" must be a non-empty string")
		}
		return domain.NewShortAnswer(prompt, modelAnswer, explanation), nil

	default:
		return nil, newEntryError(CodeUnknownType, index, fmt.Sprintf("unknown question type %q", qType))
	}
}

func validateOptions(index int, raw json.RawMessage) ([]string, error) {
	var options []string
	if raw == nil || json.Unmarshal(raw, &options) != nil {
		return nil, newEntryError(CodeBadOptions, index, "\"options\" must be an array of strings")
	}
	if len(options) != domain.OptionCount {
		return nil, newEntryError(CodeBadOptions, index, fmt.Sprintf("multiple-choice questions must have exactly %d options, got %d", domain.OptionCount, len(options)))
	}
	for _, option := range options {
		if option == "" {
			return nil, newEntryError(CodeBadOptions, index, "options must be non-empty strings")
		}
	}
	return options, nil
}

func validateCorrectIndex(index int, raw json.RawMessage) (int, error) {
	var value float64
	if raw == nil || json.Unmarshal(raw, &value) != nil {
		return 0, newEntryError(CodeBadCorrectAnswer, index, fmt.Sprintf("multiple-choice \"correctAnswer\" must be a number between 0 and %d", domain.OptionCount-1))
	}
	correctIndex := int(value)
	if float64(correctIndex) != value || correctIndex < 0 || correctIndex >= domain.OptionCount {
		return 0, newEntryError(CodeBadCorrectAnswer, index, fmt.Sprintf("multiple-choice \"correctAnswer\" must be an integer between 0 and %d, got %v", domain.OptionCount-1, value))
	}
	return correctIndex, nil
}

// stringField extracts a required non-empty string field.
func stringField(fields map[string]json.RawMessage, name string) (string, bool) {
	raw, present := fields[name]
	if !present {
		return "", false
	}
	var value string
	if err := json.Unmarshal(raw, &value); err != nil || value == "" {
		return "", false
	}
	return value, true
}

// stripCodeFences removes an enclosing markdown code fence (with an
// optional language tag) from the response. Models routinely wrap JSON
// this way despite instructions not to.
func stripCodeFences(raw string) string {
	s := strings.TrimSpace(raw)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	if nl := strings.IndexByte(s, '\n'); nl >= 0 {
		s = s[nl+1:]
	} else {
		s = strings.TrimPrefix(s, "```")
	}
	s = strings.TrimSpace(s)
	if strings.HasSuffix(s, "```") {
		s = strings.TrimSpace(strings.TrimSuffix(s, "```"))
	}
	return s
}

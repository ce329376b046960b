package domain

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Difficulty is the requested difficulty level for generated questions.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// QuestionType selects which kinds of questions a quiz should contain.
type QuestionType string

const (
	QuestionTypeMultipleChoice QuestionType = "multiple-choice"
	QuestionTypeShortAnswer    QuestionType = "short-answer"
	QuestionTypeMixed          QuestionType = "mixed"
)

// Bounds on a generation request.
const (
	MinQuestionCount = 1
	MaxQuestionCount = 20
)

// OptionCount is the fixed number of options a multiple-choice question carries.
const OptionCount = 4

// QuizRequest describes one quiz-generation round trip. It is immutable
// once built and validated before any external call is made.
type QuizRequest struct {
	SourceText    string
	QuestionCount int
	Difficulty    Difficulty
	QuestionType  QuestionType
}

// Validate rejects requests that must never reach the LLM backend.
func (r QuizRequest) Validate() error {
	if strings.TrimSpace(r.SourceText) == "" {
		return NewInvalidInputError("source text is required")
	}
	if r.QuestionCount < MinQuestionCount || r.QuestionCount > MaxQuestionCount {
		return NewInvalidInputError(fmt.Sprintf("number of questions must be between %d and %d", MinQuestionCount, MaxQuestionCount))
	}
	switch r.Difficulty {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
	default:
		return NewInvalidInputError(fmt.Sprintf("invalid difficulty: %q", r.Difficulty))
	}
	switch r.QuestionType {
	case QuestionTypeMultipleChoice, QuestionTypeShortAnswer, QuestionTypeMixed:
	default:
		return NewInvalidInputError(fmt.Sprintf("invalid question type: %q", r.QuestionType))
	}
	return nil
}

// Question is the tagged union over generated question kinds. Concrete
// types are MultipleChoice and ShortAnswer; consumers switch exhaustively
// on them instead of probing optional fields.
type Question interface {
	Prompt() string
	Explanation() string
	isQuestion()
}

// MultipleChoice is a question with exactly OptionCount options and one
// correct option index. Immutable once constructed.
type MultipleChoice struct {
	prompt       string
	options      []string
	correctIndex int
	explanation  string
}

func NewMultipleChoice(prompt string, options []string, correctIndex int, explanation string) MultipleChoice {
	return MultipleChoice{prompt: prompt, options: options, correctIndex: correctIndex, explanation: explanation}
}

func (q MultipleChoice) Prompt() string      { return q.prompt }
func (q MultipleChoice) Options() []string   { return q.options }
func (q MultipleChoice) CorrectIndex() int   { return q.correctIndex }
func (q MultipleChoice) Explanation() string { return q.explanation }
func (MultipleChoice) isQuestion()           {}

// ShortAnswer is a free-text question graded by exact, case-sensitive
// comparison against its model answer. Immutable once constructed.
type ShortAnswer struct {
	prompt      string
	modelAnswer string
	explanation string
}

func NewShortAnswer(prompt, modelAnswer, explanation string) ShortAnswer {
	return ShortAnswer{prompt: prompt, modelAnswer: modelAnswer, explanation: explanation}
}

func (q ShortAnswer) Prompt() string      { return q.prompt }
func (q ShortAnswer) ModelAnswer() string { return q.modelAnswer }
func (q ShortAnswer) Explanation() string { return q.explanation }
func (ShortAnswer) isQuestion()           {}

// Quiz is a validated, ordered sequence of questions.
type Quiz []Question

// Answer is the tagged union over recorded user answers: ChoiceAnswer for
// multiple-choice questions, TextAnswer for short-answer questions.
type Answer interface{ isAnswer() }

// ChoiceAnswer is a selected option index.
type ChoiceAnswer int

func (ChoiceAnswer) isAnswer() {}

// TextAnswer is a submitted short-answer text.
type TextAnswer string

func (TextAnswer) isAnswer() {}

// IsCorrect reports whether ans matches the canonical answer of q.
// Choice answers compare by integer equality, text answers by exact,
// case-sensitive string equality.
func IsCorrect(q Question, ans Answer) bool {
	switch q := q.(type) {
	case MultipleChoice:
		choice, ok := ans.(ChoiceAnswer)
		return ok && int(choice) == q.correctIndex
	case ShortAnswer:
		text, ok := ans.(TextAnswer)
		return ok && string(text) == q.modelAnswer
	}
	return false
}

// QuestionResult is one entry of a ScoreReport.
type QuestionResult struct {
	Question   Question
	UserAnswer Answer
	IsCorrect  bool
}

// ScoreReport summarizes correctness across a completed session. It is
// derived on demand, never stored.
type ScoreReport struct {
	CorrectCount int
	Total        int
	PerQuestion  []QuestionResult
}

// questionJSON is the serialized form of a question. It matches the wire
// schema the LLM is instructed to produce, so cached quizzes round-trip
// through the same shape the validator accepts.
type questionJSON struct {
	Question      string          `json:"question"`
	Type          QuestionType    `json:"type"`
	Options       []string        `json:"options,omitempty"`
	CorrectAnswer json.RawMessage `json:"correctAnswer"`
	Explanation   string          `json:"explanation"`
}

// MarshalJSON encodes the quiz as the flat JSON array documented in the
// question contract.
func (q Quiz) MarshalJSON() ([]byte, error) {
	entries := make([]questionJSON, 0, len(q))
	for _, question := range q {
		switch question := question.(type) {
		case MultipleChoice:
			answer, err := json.Marshal(question.correctIndex)
			if err != nil {
				return nil, err
			}
			entries = append(entries, questionJSON{
				Question:      question.prompt,
				Type:          QuestionTypeMultipleChoice,
				Options:       question.options,
				CorrectAnswer: answer,
				Explanation:   question.explanation,
			})
		case ShortAnswer:
			answer, err := json.Marshal(question.modelAnswer)
			if err != nil {
				return nil, err
			}
			entries = append(entries, questionJSON{
				Question:      question.prompt,
				Type:          QuestionTypeShortAnswer,
				CorrectAnswer: answer,
				Explanation:   question.explanation,
			})
		default:
			return nil, fmt.Errorf("unknown question kind %T", question)
		}
	}
	return json.Marshal(entries)
}

// UnmarshalJSON decodes a quiz previously encoded by MarshalJSON. It is
// used for cache round trips and trusts its input; untrusted LLM output
// goes through the contract validator instead.
func (q *Quiz) UnmarshalJSON(data []byte) error {
	var entries []questionJSON
	if err := json.Unmarshal(data, &entries); err != nil {
		return err
	}
	quiz := make(Quiz, 0, len(entries))
	for i, entry := range entries {
		switch entry.Type {
		case QuestionTypeMultipleChoice:
			var index int
			if err := json.Unmarshal(entry.CorrectAnswer, &index); err != nil {
				return fmt.Errorf("question %d: %w", i+1, err)
			}
			quiz = append(quiz, NewMultipleChoice(entry.Question, entry.Options, index, entry.Explanation))
		case QuestionTypeShortAnswer:
			var answer string
			if err := json.Unmarshal(entry.CorrectAnswer, &answer); err != nil {
				return fmt.Errorf("question %d: %w", i+1, err)
			}
			quiz = append(quiz, NewShortAnswer(entry.Question, answer, entry.Explanation))
		default:
			return fmt.Errorf("question %d: unknown type %q", i+1, entry.Type)
		}
	}
	*q = quiz
	return nil
}

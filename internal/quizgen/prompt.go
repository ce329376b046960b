// Package quizgen turns a quiz request into an LLM prompt and an
// untrusted LLM completion into a validated quiz.
package quizgen

import (
	"fmt"
	"strings"

	"studyquiz/internal/domain"
)

// MaxSourceTextChars caps the study material embedded in a prompt so the
// request stays inside the generation backend's input limits.
const MaxSourceTextChars = 100000

const truncationMarker = "\n\n[Text truncated due to length...]"

const promptTemplate = `You are an expert quiz generator. Generate %d quiz questions based on the following study guide material.

Study Guide Content:
%s

Requirements:
- Generate exactly %d questions
- Difficulty level: %s
- Question type: %s
- For multiple-choice questions: Provide exactly %d options, with one correct answer
- For short-answer questions: Provide a model answer
- Each question must have a clear explanation
- Questions should test understanding of key concepts from the study guide
- Make questions relevant to the actual content provided

Please format your response as a JSON array with the following structure:
[
  {
    "question": "Question text here",
    "type": "multiple-choice" or "short-answer",
    "options": ["option1", "option2", "option3", "option4"] (only for multiple-choice),
    "correctAnswer": 0 (index for multiple-choice) or "answer text" (for short-answer),
    "explanation": "Explanation of the answer"
  },
  ...
]

Return ONLY the JSON array, no additional text or markdown formatting.`

// BuildPrompt renders a generation request into a single instruction
// payload for the LLM. It is pure and never fails for a request that
// satisfies the QuizRequest invariants.
func BuildPrompt(req domain.QuizRequest) string {
	text := req.SourceText
	if runes := []rune(text); len(runes) > MaxSourceTextChars {
		text = string(runes[:MaxSourceTextChars]) + truncationMarker
	}
	return fmt.Sprintf(promptTemplate,
		req.QuestionCount,
		text,
		req.QuestionCount,
		req.Difficulty,
		typeInstruction(req.QuestionType, req.QuestionCount),
		domain.OptionCount,
	)
}

// typeInstruction renders the questionType-dependent constraint. The
// mixed split (ceil/floor, multiple-choice first) is a prompt-level
// policy only; the actual selection is made by the model and is not
// enforced client-side.
func typeInstruction(qt domain.QuestionType, count int) string {
	switch qt {
	case domain.QuestionTypeMultipleChoice:
		return "All multiple-choice questions"
	case domain.QuestionTypeShortAnswer:
		return "All short-answer questions"
	default:
		mc := (count + 1) / 2
		sa := count / 2
		var b strings.Builder
		fmt.Fprintf(&b, "Mix of multiple-choice and short-answer questions (%d multiple-choice, %d short-answer", mc, sa)
		b.WriteString(", alternating starting with a multiple-choice question)")
		return b.String()
	}
}

package quizgen

import (
	"fmt"
	"strings"
	"testing"

	"studyquiz/internal/domain"

	"github.com/stretchr/testify/assert"
)

func TestBuildPromptEmbedsRequestConstraints(t *testing.T) {
	req := domain.QuizRequest{
		SourceText:    "The mitochondria is the powerhouse of the cell.",
		QuestionCount: 5,
		Difficulty:    domain.DifficultyMedium,
		QuestionType:  domain.QuestionTypeMultipleChoice,
	}
	prompt := BuildPrompt(req)

	assert.Contains(t, prompt, "Generate exactly 5 questions")
	assert.Contains(t, prompt, "Difficulty level: medium")
	assert.Contains(t, prompt, "All multiple-choice questions")
	assert.Contains(t, prompt, req.SourceText)
	assert.Contains(t, prompt, "Return ONLY the JSON array")
}

func TestBuildPromptTruncatesLongSourceText(t *testing.T) {
	req := domain.QuizRequest{
		SourceText:    strings.Repeat("a", MaxSourceTextChars+1000),
		QuestionCount: 3,
		Difficulty:    domain.DifficultyEasy,
		QuestionType:  domain.QuestionTypeShortAnswer,
	}
	prompt := BuildPrompt(req)

	assert.Contains(t, prompt, "[Text truncated due to length...]")
	assert.NotContains(t, prompt, strings.Repeat("a", MaxSourceTextChars+1))
}

func TestBuildPromptDoesNotTruncateShortSourceText(t *testing.T) {
	req := domain.QuizRequest{
		SourceText:    strings.Repeat("b", MaxSourceTextChars),
		QuestionCount: 3,
		Difficulty:    domain.DifficultyEasy,
		QuestionType:  domain.QuestionTypeShortAnswer,
	}
	prompt := BuildPrompt(req)

	assert.NotContains(t, prompt, "[Text truncated due to length...]")
}

func TestTypeInstructionMixedSplit(t *testing.T) {
	cases := []struct {
		count int
		mc    int
		sa    int
	}{
		{1, 1, 0},
		{2, 1, 1},
		{5, 3, 2},
		{10, 5, 5},
	}
	for _, tc := range cases {
		t.Run(fmt.Sprintf("count_%d", tc.count), func(t *testing.T) {
			instruction := typeInstruction(domain.QuestionTypeMixed, tc.count)
			assert.Contains(t, instruction, fmt.Sprintf("%d multiple-choice, %d short-answer", tc.mc, tc.sa))
			assert.Contains(t, instruction, "alternating starting with a multiple-choice question")
		})
	}
}

package cache

import (
	"strings"
	"testing"

	"studyquiz/internal/domain"

	"github.com/stretchr/testify/assert"
)

func TestGenerateCacheKey(t *testing.T) {
	tests := []struct {
		name        string
		serviceName string
		objectType  string
		identifier  string
		paramsKey   []string
		expectedKey string
	}{
		{
			name:        "without paramsKey",
			serviceName: "quiz",
			objectType:  "generated",
			identifier:  "abc",
			expectedKey: "studyquiz:quiz:generated:abc",
		},
		{
			name:        "with one paramsKey",
			serviceName: "quiz",
			objectType:  "generated",
			identifier:  "abc",
			paramsKey:   []string{"v2"},
			expectedKey: "studyquiz:quiz:generated:abc:v2",
		},
		{
			name:        "with multiple paramsKey",
			serviceName: "quiz",
			objectType:  "generated",
			identifier:  "abc",
			paramsKey:   []string{"p1", "p2"},
			expectedKey: "studyquiz:quiz:generated:abc:p1_p2",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			actual := GenerateCacheKey(tt.serviceName, tt.objectType, tt.identifier, tt.paramsKey...)
			assert.Equal(t, tt.expectedKey, actual)
		})
	}
}

func TestQuizRequestKeyIsDeterministic(t *testing.T) {
	req := domain.QuizRequest{
		SourceText:    "some study material",
		QuestionCount: 5,
		Difficulty:    domain.DifficultyMedium,
		QuestionType:  domain.QuestionTypeMixed,
	}
	assert.Equal(t, QuizRequestKey(req), QuizRequestKey(req))
	assert.True(t, strings.HasPrefix(QuizRequestKey(req), "studyquiz:quiz:generated:"))
}

func TestQuizRequestKeyVariesWithEveryField(t *testing.T) {
	base := domain.QuizRequest{
		SourceText:    "some study material",
		QuestionCount: 5,
		Difficulty:    domain.DifficultyMedium,
		QuestionType:  domain.QuestionTypeMixed,
	}

	text := base
	text.SourceText = "other material"
	count := base
	count.QuestionCount = 6
	difficulty := base
	difficulty.Difficulty = domain.DifficultyHard
	qType := base
	qType.QuestionType = domain.QuestionTypeShortAnswer

	baseKey := QuizRequestKey(base)
	assert.NotEqual(t, baseKey, QuizRequestKey(text))
	assert.NotEqual(t, baseKey, QuizRequestKey(count))
	assert.NotEqual(t, baseKey, QuizRequestKey(difficulty))
	assert.NotEqual(t, baseKey, QuizRequestKey(qType))
}

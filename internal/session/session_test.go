package session

import (
	"testing"

	"studyquiz/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func twoQuestionQuiz() domain.Quiz {
	return domain.Quiz{
		domain.NewMultipleChoice(
			"What is the capital of France?",
			[]string{"London", "Paris", "Berlin", "Madrid"},
			1,
			"Paris is the capital of France.",
		),
		domain.NewShortAnswer(
			"Name the capital of France.",
			"Paris",
			"Paris has been the capital since 987.",
		),
	}
}

func TestNewSessionStartsAtFirstQuestion(t *testing.T) {
	s := New(twoQuestionQuiz())
	view := s.View()

	assert.NotEmpty(t, s.ID())
	assert.Equal(t, 0, view.CurrentIndex)
	assert.Equal(t, 2, view.Total)
	assert.False(t, view.FeedbackVisible)
	assert.False(t, view.Completed)
	assert.Equal(t, []bool{false, false}, view.Answered)
	assert.False(t, view.CreatedAt.IsZero())
}

func TestSelectAnswerRevealsFeedback(t *testing.T) {
	s := New(twoQuestionQuiz())

	feedback, err := s.SelectAnswer(domain.ChoiceAnswer(1))
	require.NoError(t, err)
	require.NotNil(t, feedback)
	assert.True(t, feedback.Correct)
	assert.Equal(t, 1, feedback.CorrectIndex)
	assert.Equal(t, "Paris is the capital of France.", feedback.Explanation)
	assert.True(t, s.View().FeedbackVisible)
}

func TestSelectAnswerWrongChoice(t *testing.T) {
	s := New(twoQuestionQuiz())

	feedback, err := s.SelectAnswer(domain.ChoiceAnswer(0))
	require.NoError(t, err)
	require.NotNil(t, feedback)
	assert.False(t, feedback.Correct)
	assert.Equal(t, 1, feedback.CorrectIndex, "feedback reveals the canonical answer")
}

func TestShortAnswerGradingIsCaseSensitive(t *testing.T) {
	s := New(twoQuestionQuiz())
	require.NoError(t, advanceTo(s, 1))

	feedback, err := s.SelectAnswer(domain.TextAnswer("paris"))
	require.NoError(t, err)
	require.NotNil(t, feedback)
	assert.False(t, feedback.Correct)
	assert.Equal(t, "Paris", feedback.ModelAnswer)
}

func TestShortAnswerTrimsWhitespace(t *testing.T) {
	s := New(twoQuestionQuiz())
	require.NoError(t, advanceTo(s, 1))

	feedback, err := s.SelectAnswer(domain.TextAnswer("  Paris  "))
	require.NoError(t, err)
	require.NotNil(t, feedback)
	assert.True(t, feedback.Correct)
}

func TestEmptyShortAnswerIsNoOp(t *testing.T) {
	s := New(twoQuestionQuiz())
	require.NoError(t, advanceTo(s, 1))

	feedback, err := s.SelectAnswer(domain.TextAnswer("   "))
	assert.NoError(t, err)
	assert.Nil(t, feedback)
	view := s.View()
	assert.False(t, view.FeedbackVisible)
	assert.False(t, view.Answered[1])
}

func TestSelectAnswerTwiceIsRejected(t *testing.T) {
	s := New(twoQuestionQuiz())

	_, err := s.SelectAnswer(domain.ChoiceAnswer(1))
	require.NoError(t, err)

	_, err = s.SelectAnswer(domain.ChoiceAnswer(2))
	assertPrecondition(t, err)
}

func TestSelectAnswerKindMismatch(t *testing.T) {
	s := New(twoQuestionQuiz())

	_, err := s.SelectAnswer(domain.TextAnswer("Paris"))
	assertPrecondition(t, err)
}

func TestSelectAnswerIndexOutOfRange(t *testing.T) {
	s := New(twoQuestionQuiz())

	_, err := s.SelectAnswer(domain.ChoiceAnswer(4))
	assertPrecondition(t, err)
	_, err = s.SelectAnswer(domain.ChoiceAnswer(-1))
	assertPrecondition(t, err)
}

func TestNextRequiresRecordedAnswer(t *testing.T) {
	s := New(twoQuestionQuiz())
	assertPrecondition(t, s.Next())
}

func TestNextOnLastQuestionCompletes(t *testing.T) {
	s := New(twoQuestionQuiz())
	_, err := s.SelectAnswer(domain.ChoiceAnswer(1))
	require.NoError(t, err)
	require.NoError(t, s.Next())
	_, err = s.SelectAnswer(domain.TextAnswer("Paris"))
	require.NoError(t, err)

	require.NoError(t, s.Next())
	assert.True(t, s.View().Completed)
}

func TestPreviousAtFirstQuestionIsNoOp(t *testing.T) {
	s := New(twoQuestionQuiz())
	require.NoError(t, s.Previous())
	assert.Equal(t, 0, s.View().CurrentIndex)
}

func TestRevisitedQuestionKeepsFeedbackVisible(t *testing.T) {
	s := New(twoQuestionQuiz())
	_, err := s.SelectAnswer(domain.ChoiceAnswer(1))
	require.NoError(t, err)
	require.NoError(t, s.Next())

	assert.False(t, s.View().FeedbackVisible, "second question is unanswered")

	require.NoError(t, s.Previous())
	view := s.View()
	assert.Equal(t, 0, view.CurrentIndex)
	assert.True(t, view.FeedbackVisible, "answered questions show their feedback again")
}

func TestJumpToRecomputesFeedback(t *testing.T) {
	s := New(twoQuestionQuiz())
	_, err := s.SelectAnswer(domain.ChoiceAnswer(0))
	require.NoError(t, err)

	require.NoError(t, s.JumpTo(1))
	assert.False(t, s.View().FeedbackVisible)

	require.NoError(t, s.JumpTo(0))
	assert.True(t, s.View().FeedbackVisible)
}

func TestJumpToOutOfRange(t *testing.T) {
	s := New(twoQuestionQuiz())
	assertPrecondition(t, s.JumpTo(2))
	assertPrecondition(t, s.JumpTo(-1))
}

func TestSubmitRequiresAllAnswers(t *testing.T) {
	s := New(twoQuestionQuiz())
	_, err := s.SelectAnswer(domain.ChoiceAnswer(1))
	require.NoError(t, err)

	assertPrecondition(t, s.Submit())
}

func TestSubmitWithAllAnswersCompletes(t *testing.T) {
	s := New(twoQuestionQuiz())
	_, err := s.SelectAnswer(domain.ChoiceAnswer(1))
	require.NoError(t, err)
	require.NoError(t, s.JumpTo(1))
	_, err = s.SelectAnswer(domain.TextAnswer("Paris"))
	require.NoError(t, err)

	require.NoError(t, s.Submit())
	assert.True(t, s.View().Completed)
}

func TestCompletedSessionRejectsMutation(t *testing.T) {
	s := completedSession(t)

	_, err := s.SelectAnswer(domain.ChoiceAnswer(0))
	assertPrecondition(t, err)
	assertPrecondition(t, s.Next())
	assertPrecondition(t, s.Previous())
	assertPrecondition(t, s.JumpTo(0))
	assertPrecondition(t, s.Submit())
}

func TestScoreOnIncompleteSession(t *testing.T) {
	s := New(twoQuestionQuiz())
	_, err := s.Score()
	assertPrecondition(t, err)
}

func TestScoreAllCorrect(t *testing.T) {
	s := completedSession(t)

	report, err := s.Score()
	require.NoError(t, err)
	assert.Equal(t, 2, report.CorrectCount)
	assert.Equal(t, 2, report.Total)
	require.Len(t, report.PerQuestion, 2)
	assert.True(t, report.PerQuestion[0].IsCorrect)
	assert.Equal(t, domain.ChoiceAnswer(1), report.PerQuestion[0].UserAnswer)
	assert.Equal(t, domain.TextAnswer("Paris"), report.PerQuestion[1].UserAnswer)
}

func TestScorePartiallyCorrect(t *testing.T) {
	s := New(twoQuestionQuiz())
	_, err := s.SelectAnswer(domain.ChoiceAnswer(0))
	require.NoError(t, err)
	require.NoError(t, s.Next())
	_, err = s.SelectAnswer(domain.TextAnswer("paris"))
	require.NoError(t, err)
	require.NoError(t, s.Next())

	report, err := s.Score()
	require.NoError(t, err)
	assert.Equal(t, 0, report.CorrectCount)
	assert.False(t, report.PerQuestion[0].IsCorrect)
	assert.False(t, report.PerQuestion[1].IsCorrect)
}

func advanceTo(s *QuizSession, index int) error {
	return s.JumpTo(index)
}

func completedSession(t *testing.T) *QuizSession {
	t.Helper()
	s := New(twoQuestionQuiz())
	_, err := s.SelectAnswer(domain.ChoiceAnswer(1))
	require.NoError(t, err)
	require.NoError(t, s.Next())
	_, err = s.SelectAnswer(domain.TextAnswer("Paris"))
	require.NoError(t, err)
	require.NoError(t, s.Next())
	return s
}

func assertPrecondition(t *testing.T, err error) {
	t.Helper()
	var domainErr *domain.Error
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, domain.CodePreconditionViolated, domainErr.Code)
}

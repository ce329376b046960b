// Package session implements the interactive quiz-taking state machine.
package session

import (
	"strings"
	"sync"
	"time"

	"studyquiz/internal/domain"
	"studyquiz/internal/util"
)

// QuizSession tracks a single user's progress through a quiz: current
// position, recorded answers, feedback visibility and completion. The
// quiz itself is borrowed read-only; the session exclusively owns the
// answer slice.
//
// All operations are serialized by an internal mutex so that concurrent
// UI events cannot observe answers and position changing independently.
// After completion the only legal operation is Score.
type QuizSession struct {
	mu        sync.Mutex
	id        string
	quiz      domain.Quiz
	current   int
	answers   []domain.Answer // nil entries are unanswered
	feedback  bool
	completed bool
	createdAt time.Time
}

// New creates a session positioned at the first question with all
// answers unset and feedback hidden.
func New(quiz domain.Quiz) *QuizSession {
	return &QuizSession{
		id:        util.NewULID(),
		quiz:      quiz,
		answers:   make([]domain.Answer, len(quiz)),
		createdAt: time.Now(),
	}
}

func (s *QuizSession) ID() string { return s.id }

// Feedback is what SelectAnswer reveals about the recorded answer.
type Feedback struct {
	Correct      bool
	Explanation  string
	CorrectIndex int    // multiple-choice only
	ModelAnswer  string // short-answer only
}

// SelectAnswer records ans for the current question and makes feedback
// visible. It is legal only while the session is in progress and
// feedback is not already shown for the current question.
//
// Submitting empty short-answer text is a documented no-op: it returns
// (nil, nil) and changes no state.
func (s *QuizSession) SelectAnswer(ans domain.Answer) (*Feedback, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.completed {
		return nil, domain.NewPreconditionError("session is already completed")
	}
	if s.feedback {
		return nil, domain.NewPreconditionError("an answer is already recorded for the current question")
	}

	switch question := s.quiz[s.current].(type) {
	case domain.MultipleChoice:
		choice, ok := ans.(domain.ChoiceAnswer)
		if !ok {
			return nil, domain.NewPreconditionError("multiple-choice questions take an option index")
		}
		if int(choice) < 0 || int(choice) >= len(question.Options()) {
			return nil, domain.NewPreconditionError("option index out of range")
		}
		s.answers[s.current] = choice
		s.feedback = true
		return &Feedback{
			Correct:      domain.IsCorrect(question, choice),
			Explanation:  question.Explanation(),
			CorrectIndex: question.CorrectIndex(),
		}, nil

	case domain.ShortAnswer:
		text, ok := ans.(domain.TextAnswer)
		if !ok {
			return nil, domain.NewPreconditionError("short-answer questions take submitted text")
		}
		trimmed := domain.TextAnswer(strings.TrimSpace(string(text)))
		if trimmed == "" {
			return nil, nil // empty submissions are silently ignored
		}
		s.answers[s.current] = trimmed
		s.feedback = true
		return &Feedback{
			Correct:     domain.IsCorrect(question, trimmed),
			Explanation: question.Explanation(),
			ModelAnswer: question.ModelAnswer(),
		}, nil
	}
	return nil, domain.NewPreconditionError("unknown question kind")
}

// Next advances to the following question, or completes the session when
// the current question is the last one. It is legal only once the
// current question has a recorded answer. Feedback visibility for the
// new question reflects whether it was already answered, so revisited
// questions do not force a second answer.
func (s *QuizSession) Next() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.completed {
		return domain.NewPreconditionError("session is already completed")
	}
	if s.answers[s.current] == nil {
		return domain.NewPreconditionError("current question has no recorded answer")
	}
	if s.current == len(s.quiz)-1 {
		s.completed = true
		return nil
	}
	s.current++
	s.feedback = s.answers[s.current] != nil
	return nil
}

// Previous moves back one question. At the first question it is a
// documented no-op.
func (s *QuizSession) Previous() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.completed {
		return domain.NewPreconditionError("session is already completed")
	}
	if s.current == 0 {
		return nil
	}
	s.current--
	s.feedback = s.answers[s.current] != nil
	return nil
}

// JumpTo moves to any question in range regardless of answer state,
// supporting free navigation via a progress indicator.
func (s *QuizSession) JumpTo(index int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.completed {
		return domain.NewPreconditionError("session is already completed")
	}
	if index < 0 || index >= len(s.quiz) {
		return domain.NewPreconditionError("question index out of range")
	}
	s.current = index
	s.feedback = s.answers[index] != nil
	return nil
}

// Submit completes the session. It is legal only when every question has
// a recorded answer.
func (s *QuizSession) Submit() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.completed {
		return domain.NewPreconditionError("session is already completed")
	}
	for _, ans := range s.answers {
		if ans == nil {
			return domain.NewPreconditionError("cannot submit: not all questions are answered")
		}
	}
	s.completed = true
	return nil
}

// Score computes the final score report. It is legal only on a completed
// session.
func (s *QuizSession) Score() (*domain.ScoreReport, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.completed {
		return nil, domain.NewPreconditionError("session is not completed")
	}
	report := &domain.ScoreReport{Total: len(s.quiz)}
	for i, question := range s.quiz {
		correct := domain.IsCorrect(question, s.answers[i])
		if correct {
			report.CorrectCount++
		}
		report.PerQuestion = append(report.PerQuestion, domain.QuestionResult{
			Question:   question,
			UserAnswer: s.answers[i],
			IsCorrect:  correct,
		})
	}
	return report, nil
}

// View is a read-only snapshot for the transport layer.
type View struct {
	ID              string
	CurrentIndex    int
	Total           int
	Question        domain.Question
	Answer          domain.Answer // recorded answer at CurrentIndex, nil if unset
	FeedbackVisible bool
	Completed       bool
	Answered        []bool
	CreatedAt       time.Time
}

// View returns a consistent snapshot of the session state.
func (s *QuizSession) View() View {
	s.mu.Lock()
	defer s.mu.Unlock()

	answered := make([]bool, len(s.answers))
	for i, ans := range s.answers {
		answered[i] = ans != nil
	}
	return View{
		ID:              s.id,
		CurrentIndex:    s.current,
		Total:           len(s.quiz),
		Question:        s.quiz[s.current],
		Answer:          s.answers[s.current],
		FeedbackVisible: s.feedback,
		Completed:       s.completed,
		Answered:        answered,
		CreatedAt:       s.createdAt,
	}
}

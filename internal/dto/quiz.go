package dto

import "time"

// GenerateQuizRequest is the JSON request body for quiz generation.
type GenerateQuizRequest struct {
	SourceText   string `json:"source_text"`
	NumQuestions int    `json:"num_questions"`
	Difficulty   string `json:"difficulty"`
	QuestionType string `json:"question_type"`
}

// QuestionView is a question as exposed to the quiz taker. Canonical
// answers are withheld until feedback time.
type QuestionView struct {
	Index    int      `json:"index"`
	Type     string   `json:"type"`
	Question string   `json:"question"`
	Options  []string `json:"options,omitempty"`
}

// GenerateQuizResponse carries the generated quiz and the session
// created for taking it. Questions may be fewer than requested when the
// model under-produces.
type GenerateQuizResponse struct {
	SessionID          string         `json:"session_id"`
	RequestedQuestions int            `json:"requested_questions"`
	Questions          []QuestionView `json:"questions"`
}

// AnswerRequest records an answer for the current question: an option
// index for multiple-choice, submitted text for short-answer.
type AnswerRequest struct {
	SelectedIndex *int   `json:"selected_index,omitempty"`
	AnswerText    string `json:"answer_text,omitempty"`
}

// FeedbackResponse reveals whether the recorded answer was correct.
type FeedbackResponse struct {
	Correct      bool   `json:"correct"`
	Explanation  string `json:"explanation"`
	CorrectIndex *int   `json:"correct_index,omitempty"`
	ModelAnswer  string `json:"model_answer,omitempty"`
}

// JumpRequest targets a question index for free navigation.
type JumpRequest struct {
	Index int `json:"index"`
}

// SessionStateResponse is the taker's view of a session.
type SessionStateResponse struct {
	SessionID       string        `json:"session_id"`
	CurrentIndex    int           `json:"current_index"`
	TotalQuestions  int           `json:"total_questions"`
	Completed       bool          `json:"completed"`
	FeedbackVisible bool          `json:"feedback_visible"`
	Question        *QuestionView `json:"question,omitempty"`
	Answered        []bool        `json:"answered"`
	CreatedAt       time.Time     `json:"created_at"`
}

// QuestionResultView is one row of the final score breakdown.
type QuestionResultView struct {
	Index         int      `json:"index"`
	Type          string   `json:"type"`
	Question      string   `json:"question"`
	Options       []string `json:"options,omitempty"`
	SelectedIndex *int     `json:"selected_index,omitempty"`
	AnswerText    string   `json:"answer_text,omitempty"`
	CorrectIndex  *int     `json:"correct_index,omitempty"`
	ModelAnswer   string   `json:"model_answer,omitempty"`
	IsCorrect     bool     `json:"is_correct"`
	Explanation   string   `json:"explanation"`
}

// ScoreResponse is the final score report of a completed session.
type ScoreResponse struct {
	SessionID    string               `json:"session_id"`
	CorrectCount int                  `json:"correct_count"`
	Total        int                  `json:"total"`
	Percentage   int                  `json:"percentage"`
	PerQuestion  []QuestionResultView `json:"per_question"`
}

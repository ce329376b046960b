package handler

import (
	"studyquiz/internal/domain"
	"studyquiz/internal/dto"
	"studyquiz/internal/session"

	"github.com/gofiber/fiber/v2"
)

// GetSession handles GET /api/sessions/:id.
func (h *QuizHandler) GetSession(c *fiber.Ctx) error {
	sess, err := h.sessions.Get(c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(stateResponse(sess.View()))
}

// Answer handles POST /api/sessions/:id/answer. A body with
// selected_index answers a multiple-choice question, one with
// answer_text answers a short-answer question. Submitting empty
// short-answer text changes nothing and yields 204 No Content.
func (h *QuizHandler) Answer(c *fiber.Ctx) error {
	sess, err := h.sessions.Get(c.Params("id"))
	if err != nil {
		return err
	}
	var body dto.AnswerRequest
	if err := c.BodyParser(&body); err != nil {
		return domain.NewInvalidInputError("invalid request body")
	}

	var ans domain.Answer
	if body.SelectedIndex != nil {
		ans = domain.ChoiceAnswer(*body.SelectedIndex)
	} else {
		ans = domain.TextAnswer(body.AnswerText)
	}

	feedback, err := sess.SelectAnswer(ans)
	if err != nil {
		return err
	}
	if feedback == nil {
		return c.SendStatus(fiber.StatusNoContent)
	}

	resp := dto.FeedbackResponse{
		Correct:     feedback.Correct,
		Explanation: feedback.Explanation,
		ModelAnswer: feedback.ModelAnswer,
	}
	if feedback.ModelAnswer == "" {
		index := feedback.CorrectIndex
		resp.CorrectIndex = &index
	}
	return c.JSON(resp)
}

// Next handles POST /api/sessions/:id/next. Advancing past the last
// question completes the session.
func (h *QuizHandler) Next(c *fiber.Ctx) error {
	sess, err := h.sessions.Get(c.Params("id"))
	if err != nil {
		return err
	}
	if err := sess.Next(); err != nil {
		return err
	}
	return c.JSON(stateResponse(sess.View()))
}

// Previous handles POST /api/sessions/:id/previous.
func (h *QuizHandler) Previous(c *fiber.Ctx) error {
	sess, err := h.sessions.Get(c.Params("id"))
	if err != nil {
		return err
	}
	if err := sess.Previous(); err != nil {
		return err
	}
	return c.JSON(stateResponse(sess.View()))
}

// Jump handles POST /api/sessions/:id/jump for free navigation to any
// question.
func (h *QuizHandler) Jump(c *fiber.Ctx) error {
	sess, err := h.sessions.Get(c.Params("id"))
	if err != nil {
		return err
	}
	var body dto.JumpRequest
	if err := c.BodyParser(&body); err != nil {
		return domain.NewInvalidInputError("invalid request body")
	}
	if err := sess.JumpTo(body.Index); err != nil {
		return err
	}
	return c.JSON(stateResponse(sess.View()))
}

// Submit handles POST /api/sessions/:id/submit, completing the session
// once every question has a recorded answer.
func (h *QuizHandler) Submit(c *fiber.Ctx) error {
	sess, err := h.sessions.Get(c.Params("id"))
	if err != nil {
		return err
	}
	if err := sess.Submit(); err != nil {
		return err
	}
	return c.JSON(stateResponse(sess.View()))
}

// Score handles GET /api/sessions/:id/score on a completed session.
func (h *QuizHandler) Score(c *fiber.Ctx) error {
	sess, err := h.sessions.Get(c.Params("id"))
	if err != nil {
		return err
	}
	report, err := sess.Score()
	if err != nil {
		return err
	}
	resp := dto.ScoreResponse{
		SessionID:    sess.ID(),
		CorrectCount: report.CorrectCount,
		Total:        report.Total,
		Percentage:   percentage(report.CorrectCount, report.Total),
	}
	for i, result := range report.PerQuestion {
		resp.PerQuestion = append(resp.PerQuestion, resultView(i, result))
	}
	return c.JSON(resp)
}

// DeleteSession handles DELETE /api/sessions/:id.
func (h *QuizHandler) DeleteSession(c *fiber.Ctx) error {
	h.sessions.Delete(c.Params("id"))
	return c.SendStatus(fiber.StatusNoContent)
}

func stateResponse(v session.View) dto.SessionStateResponse {
	resp := dto.SessionStateResponse{
		SessionID:       v.ID,
		CurrentIndex:    v.CurrentIndex,
		TotalQuestions:  v.Total,
		Completed:       v.Completed,
		FeedbackVisible: v.FeedbackVisible,
		Answered:        v.Answered,
		CreatedAt:       v.CreatedAt,
	}
	if !v.Completed {
		view := questionView(v.CurrentIndex, v.Question)
		resp.Question = &view
	}
	return resp
}

func resultView(index int, result domain.QuestionResult) dto.QuestionResultView {
	view := dto.QuestionResultView{
		Index:       index,
		Question:    result.Question.Prompt(),
		IsCorrect:   result.IsCorrect,
		Explanation: result.Question.Explanation(),
	}
	switch q := result.Question.(type) {
	case domain.MultipleChoice:
		view.Type = string(domain.QuestionTypeMultipleChoice)
		view.Options = q.Options()
		correct := q.CorrectIndex()
		view.CorrectIndex = &correct
		if choice, ok := result.UserAnswer.(domain.ChoiceAnswer); ok {
			selected := int(choice)
			view.SelectedIndex = &selected
		}
	case domain.ShortAnswer:
		view.Type = string(domain.QuestionTypeShortAnswer)
		view.ModelAnswer = q.ModelAnswer()
		if text, ok := result.UserAnswer.(domain.TextAnswer); ok {
			view.AnswerText = string(text)
		}
	}
	return view
}

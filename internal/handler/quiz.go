package handler

import (
	"io"
	"math"
	"strconv"
	"strings"

	"studyquiz/internal/document"
	"studyquiz/internal/domain"
	"studyquiz/internal/dto"
	"studyquiz/internal/logger"
	"studyquiz/internal/service"
	"studyquiz/internal/session"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// QuizHandler handles quiz generation and quiz-taking HTTP requests.
type QuizHandler struct {
	service    service.QuizService
	sessions   *session.Store
	extractors []document.Extractor
}

// NewQuizHandler creates a new QuizHandler instance
func NewQuizHandler(svc service.QuizService, sessions *session.Store, extractors []document.Extractor) *QuizHandler {
	return &QuizHandler{
		service:    svc,
		sessions:   sessions,
		extractors: extractors,
	}
}

// GenerateQuiz handles POST /api/quiz/generate. It accepts either a JSON
// body or a multipart form with uploaded study-material files; the quiz
// is generated, a session is created for it, and the questions are
// returned without their canonical answers.
func (h *QuizHandler) GenerateQuiz(c *fiber.Ctx) error {
	var req domain.QuizRequest
	if strings.HasPrefix(c.Get(fiber.HeaderContentType), fiber.MIMEMultipartForm) {
		parsed, err := h.requestFromMultipart(c)
		if err != nil {
			return err
		}
		req = parsed
	} else {
		var body dto.GenerateQuizRequest
		if err := c.BodyParser(&body); err != nil {
			return domain.NewInvalidInputError("invalid request body")
		}
		req = domain.QuizRequest{
			SourceText:    body.SourceText,
			QuestionCount: body.NumQuestions,
			Difficulty:    domain.Difficulty(body.Difficulty),
			QuestionType:  domain.QuestionType(body.QuestionType),
		}
	}

	quiz, err := h.service.GenerateQuiz(c.Context(), req)
	if err != nil {
		return err
	}

	sess := h.sessions.Create(quiz)
	logger.Get().Info("Quiz session created",
		zap.String("session_id", sess.ID()),
		zap.Int("questions", len(quiz)),
	)

	views := make([]dto.QuestionView, len(quiz))
	for i, q := range quiz {
		views[i] = questionView(i, q)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.GenerateQuizResponse{
		SessionID:          sess.ID(),
		RequestedQuestions: req.QuestionCount,
		Questions:          views,
	})
}

// requestFromMultipart builds a QuizRequest from an uploaded-files form.
// Form fields mirror the JSON body: num_questions, difficulty,
// question_type, plus one or more "files" parts.
func (h *QuizHandler) requestFromMultipart(c *fiber.Ctx) (domain.QuizRequest, error) {
	form, err := c.MultipartForm()
	if err != nil {
		return domain.QuizRequest{}, domain.NewInvalidInputError("invalid multipart form")
	}

	headers := form.File["files"]
	if len(headers) == 0 {
		return domain.QuizRequest{}, domain.NewInvalidInputError("at least one file is required")
	}
	files := make([]document.File, 0, len(headers))
	for _, header := range headers {
		f, err := header.Open()
		if err != nil {
			return domain.QuizRequest{}, domain.NewInvalidInputError("failed to read uploaded file: " + header.Filename)
		}
		data, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			return domain.QuizRequest{}, domain.NewInvalidInputError("failed to read uploaded file: " + header.Filename)
		}
		files = append(files, document.File{Name: header.Filename, Data: data})
	}

	sourceText, err := document.ExtractAll(h.extractors, files)
	if err != nil {
		return domain.QuizRequest{}, err
	}

	numQuestions, err := strconv.Atoi(c.FormValue("num_questions"))
	if err != nil {
		return domain.QuizRequest{}, domain.NewInvalidInputError("num_questions must be an integer")
	}
	return domain.QuizRequest{
		SourceText:    sourceText,
		QuestionCount: numQuestions,
		Difficulty:    domain.Difficulty(c.FormValue("difficulty")),
		QuestionType:  domain.QuestionType(c.FormValue("question_type")),
	}, nil
}

// questionView maps a domain question to its taker-facing view, which
// never carries the canonical answer.
func questionView(index int, q domain.Question) dto.QuestionView {
	switch q := q.(type) {
	case domain.MultipleChoice:
		return dto.QuestionView{
			Index:    index,
			Type:     string(domain.QuestionTypeMultipleChoice),
			Question: q.Prompt(),
			Options:  q.Options(),
		}
	case domain.ShortAnswer:
		return dto.QuestionView{
			Index:    index,
			Type:     string(domain.QuestionTypeShortAnswer),
			Question: q.Prompt(),
		}
	}
	return dto.QuestionView{Index: index}
}

func percentage(correct, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(correct) / float64(total) * 100))
}

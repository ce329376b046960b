package service

import (
	"context"
	"encoding/json"

	"studyquiz/internal/cache"
	"studyquiz/internal/config"
	"studyquiz/internal/domain"
	"studyquiz/internal/logger"
	"studyquiz/internal/quizgen"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// QuizService orchestrates prompt building, the external LLM call,
// contract validation and failure classification.
type QuizService interface {
	GenerateQuiz(ctx context.Context, req domain.QuizRequest) (domain.Quiz, error)
}

// quizService implements QuizService. The generator is the only external
// collaborator; the cache is optional and purely an optimization.
type quizService struct {
	generator domain.TextGenerator
	cache     domain.Cache // nil when caching is disabled
	cfg       *config.Config
	group     singleflight.Group
}

// NewQuizService creates a new instance of quizService. cacheClient may
// be nil to disable quiz caching.
func NewQuizService(generator domain.TextGenerator, cacheClient domain.Cache, cfg *config.Config) QuizService {
	return &quizService{
		generator: generator,
		cache:     cacheClient,
		cfg:       cfg,
	}
}

// GenerateQuiz implements QuizService. Input validation failures are
// reported before any external call; transport, provider and contract
// failures come back classified. Identical requests issued while a
// generation is in flight share a single LLM call.
func (s *quizService) GenerateQuiz(ctx context.Context, req domain.QuizRequest) (domain.Quiz, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	key := cache.QuizRequestKey(req)
	if quiz, ok := s.cachedQuiz(ctx, key); ok {
		return quiz, nil
	}

	result, err, _ := s.group.Do(key, func() (interface{}, error) {
		quiz, err := s.generate(ctx, req)
		if err != nil {
			return nil, err
		}
		s.storeQuiz(ctx, key, quiz)
		return quiz, nil
	})
	if err != nil {
		return nil, quizgen.Classify(err)
	}
	return result.(domain.Quiz), nil
}

func (s *quizService) generate(ctx context.Context, req domain.QuizRequest) (domain.Quiz, error) {
	prompt := quizgen.BuildPrompt(req)
	logger.Get().Info("Requesting quiz generation",
		zap.Int("num_questions", req.QuestionCount),
		zap.String("difficulty", string(req.Difficulty)),
		zap.String("question_type", string(req.QuestionType)),
		zap.Int("source_text_length", len(req.SourceText)),
	)

	raw, err := s.generator.Generate(ctx, prompt)
	if err != nil {
		return nil, err
	}
	logger.Get().Debug("Received raw completion", zap.Int("length", len(raw)))

	quiz, err := quizgen.Validate(raw, req.QuestionCount)
	if err != nil {
		return nil, err
	}
	// An empty quiz cannot be taken: there is no current question to
	// position a session on.
	if len(quiz) == 0 {
		return nil, domain.NewError(domain.CodeValidationFailed, "model produced no questions", nil)
	}

	// A shortfall is not an error: the quiz degrades gracefully to the
	// length the model actually produced, but the caller should see it.
	if len(quiz) < req.QuestionCount {
		logger.Get().Warn("Model produced fewer questions than requested",
			zap.Int("requested", req.QuestionCount),
			zap.Int("produced", len(quiz)),
		)
	}
	return quiz, nil
}

func (s *quizService) cachedQuiz(ctx context.Context, key string) (domain.Quiz, bool) {
	if s.cache == nil {
		return nil, false
	}
	cached, err := s.cache.Get(ctx, key)
	if err != nil {
		if err != domain.ErrCacheMiss {
			logger.Get().Warn("Quiz cache read failed", zap.Error(err), zap.String("key", key))
		}
		return nil, false
	}
	var quiz domain.Quiz
	if err := json.Unmarshal([]byte(cached), &quiz); err != nil {
		logger.Get().Warn("Discarding undecodable cached quiz", zap.Error(err), zap.String("key", key))
		_ = s.cache.Delete(ctx, key)
		return nil, false
	}
	logger.Get().Info("Quiz cache hit", zap.String("key", key))
	return quiz, true
}

func (s *quizService) storeQuiz(ctx context.Context, key string, quiz domain.Quiz) {
	if s.cache == nil {
		return
	}
	encoded, err := json.Marshal(quiz)
	if err != nil {
		logger.Get().Warn("Failed to encode quiz for caching", zap.Error(err))
		return
	}
	if err := s.cache.Set(ctx, key, string(encoded), s.cfg.Cache.QuizTTL); err != nil {
		logger.Get().Warn("Quiz cache write failed", zap.Error(err), zap.String("key", key))
	}
}

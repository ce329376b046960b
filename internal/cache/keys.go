package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"strings"

	"studyquiz/internal/domain"
)

const (
	GlobalKeyPrefix = "studyquiz"
)

// GenerateCacheKey generates a cache key for a given service, object type, and identifier.
// If paramsKey are provided, they are joined by "_" and appended to the cache key.
func GenerateCacheKey(serviceName, objectType, identifier string, paramsKey ...string) string {
	baseKey := strings.Join([]string{GlobalKeyPrefix, serviceName, objectType, identifier}, ":")
	if len(paramsKey) > 0 {
		return strings.Join([]string{baseKey, strings.Join(paramsKey, "_")}, ":")
	}
	return baseKey
}

// QuizRequestKey derives the cache key for a generation request from a
// digest over all request fields, so identical material and options hit
// the same cached quiz.
func QuizRequestKey(req domain.QuizRequest) string {
	h := sha256.New()
	io.WriteString(h, req.SourceText)
	fmt.Fprintf(h, "|%d|%s|%s", req.QuestionCount, req.Difficulty, req.QuestionType)
	return GenerateCacheKey("quiz", "generated", hex.EncodeToString(h.Sum(nil)))
}

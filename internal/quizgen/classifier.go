package quizgen

import (
	"errors"
	"strings"

	"studyquiz/internal/domain"
)

// classificationRule maps known provider error signatures onto one entry
// of the error taxonomy. Matching is case-insensitive substring search.
type classificationRule struct {
	code     domain.ErrorCode
	message  string
	patterns []string
}

// Rules are checked in order; the first match wins, so the more specific
// signatures come first.
var classificationRules = []classificationRule{
	{
		code:     domain.CodeInvalidCredential,
		message:  "Invalid API credential",
		patterns: []string{"api_key_invalid", "api key not valid", "invalid api key", "unauthenticated", "permission_denied", "permission denied"},
	},
	{
		code:     domain.CodeQuotaExceeded,
		message:  "API quota exceeded",
		patterns: []string{"quota", "resource_exhausted", "rate limit", "too many requests", "429"},
	},
	{
		code:     domain.CodeSafetyFilter,
		message:  "Content safety filter triggered",
		patterns: []string{"safety", "blocked"},
	},
	{
		code:     domain.CodeUnsupportedModel,
		message:  "Unsupported model",
		patterns: []string{"model not found", "model_not_found", "unsupported model", "is not found for api version", "unknown model"},
	},
	{
		code:     domain.CodeTransportUnreachable,
		message:  "LLM backend unreachable",
		patterns: []string{"connection refused", "no such host", "network is unreachable", "deadline exceeded", "timeout", "connection reset"},
	},
}

// Classify maps a transport, provider or contract failure onto the
// closed error taxonomy. Classification is best-effort pattern matching
// over the failure message; unmatched failures map to CodeUnknown.
func Classify(err error) *domain.Error {
	var validationErr *ValidationError
	if errors.As(err, &validationErr) {
		return domain.NewError(domain.CodeValidationFailed, validationErr.Error(), err)
	}

	// Already classified upstream (input validation etc.)
	var domainErr *domain.Error
	if errors.As(err, &domainErr) {
		return domainErr
	}

	message := strings.ToLower(err.Error())
	for _, rule := range classificationRules {
		for _, pattern := range rule.patterns {
			if strings.Contains(message, pattern) {
				return domain.NewError(rule.code, rule.message, err)
			}
		}
	}
	return domain.NewError(domain.CodeUnknown, "Failed to generate quiz", err)
}

package domain

import "context"

// TextGenerator is the port to the LLM backend: a single blocking call
// that returns the provider's raw text completion. Implementations live
// in internal/adapter/textgen; retry and timeout policy belong there,
// not to callers of this interface.
type TextGenerator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

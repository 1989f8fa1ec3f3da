package llm

import (
	"context"
)

// LLMClient is the injectable text-reasoning capability. Both call sites
// (synergy analysis, hypothesis drafting) go through it, so the pipeline is
// testable with a deterministic stub and portable across backends.
type LLMClient interface {
	Generate(ctx context.Context, prompt string, temperature float32) (string, error)
}

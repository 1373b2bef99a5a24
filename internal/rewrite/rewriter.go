package rewrite

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Yates-Labs/recast/internal/llm"
)

var (
	ErrRewriteFailed = errors.New("rewrite generation failed")
)

// Rewriter produces a grounded replacement for one chunk. Unlike
// classification there is no safe default for generated content, so a
// failure here propagates to the caller.
type Rewriter struct {
	llm     llm.LLM
	subject string
}

// NewRewriter creates a rewriter for the given subject.
func NewRewriter(client llm.LLM, subject string) (*Rewriter, error) {
	if client == nil {
		return nil, fmt.Errorf("llm cannot be nil")
	}
	if strings.TrimSpace(subject) == "" {
		return nil, fmt.Errorf("subject cannot be empty")
	}

	return &Rewriter{llm: client, subject: subject}, nil
}

// Rewrite generates the replacement line for a chunk. The original chunk
// supplies structure and intent only; factual claims come from contextText.
// extraInstructions, if any, are appended verbatim to the constraints.
func (r *Rewriter) Rewrite(ctx context.Context, chunk, role, contextText, extraInstructions string) (string, error) {
	if strings.TrimSpace(chunk) == "" {
		return "", fmt.Errorf("%w: chunk cannot be empty", ErrRewriteFailed)
	}

	prompt := buildRewritePrompt(r.subject, chunk, role, contextText, extraInstructions)

	line, err := r.llm.Generate(ctx, prompt)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrRewriteFailed, err)
	}

	line = strings.TrimSpace(line)
	if line == "" {
		return "", fmt.Errorf("%w: model returned an empty line", ErrRewriteFailed)
	}

	return line, nil
}

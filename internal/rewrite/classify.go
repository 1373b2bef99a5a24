// Package rewrite implements the per-chunk personalization stages: rhetorical
// classification of a script chunk and the grounded rewrite constrained by
// retrieved corpus context.
package rewrite

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"github.com/Yates-Labs/recast/internal/llm"
)

// Rhetorical roles a chunk can be classified as. Unrecognized roles coming
// back from the model are passed through lowercased rather than rejected;
// the rewriter only uses the role as a framing hint.
const (
	RoleHook             = "hook"
	RoleFounderBackstory = "founder_backstory"
	RoleCredibility      = "credibility"
	RoleProof            = "proof"
	RoleLesson           = "lesson"
	RoleCTA              = "cta"
	RoleFiller           = "filler"
)

// Classification is the outcome of analyzing one chunk: its rhetorical role
// and a targeted retrieval query describing what should ground the rewrite.
// An empty RetrievalQuery means "no retrieval"; the "none"/"n/a" string
// sentinels exist only at the JSON boundary with the model.
type Classification struct {
	Role           string `json:"rhetorical_role"`
	RetrievalQuery string `json:"retrieval_query"`
}

// HasRetrievalQuery reports whether this chunk wants corpus grounding.
func (c Classification) HasRetrievalQuery() bool {
	return c.RetrievalQuery != ""
}

// DefaultClassification is the safe fallback when classification fails:
// filler chunks skip retrieval and are rewritten in style-only mode.
func DefaultClassification() Classification {
	return Classification{Role: RoleFiller}
}

// ParseClassification owns the JSON boundary with the classification step.
// It normalizes the role (lowercase, trimmed) and canonicalizes absent,
// whitespace, "none", and "n/a" queries to the empty string. Any decode
// failure yields the filler default.
func ParseClassification(raw string) Classification {
	var payload struct {
		RhetoricalRole string `json:"rhetorical_role"`
		RetrievalQuery string `json:"retrieval_query"`
	}

	if err := json.Unmarshal([]byte(llm.StripCodeFence(raw)), &payload); err != nil {
		return DefaultClassification()
	}

	role := strings.ToLower(strings.TrimSpace(payload.RhetoricalRole))
	if role == "" {
		role = RoleFiller
	}

	query := strings.TrimSpace(payload.RetrievalQuery)
	switch strings.ToLower(query) {
	case "", "none", "n/a":
		query = ""
	}

	// Filler never retrieves.
	if role == RoleFiller {
		query = ""
	}

	return Classification{
		Role:           role,
		RetrievalQuery: query,
	}
}

// Classifier assigns each chunk a rhetorical role and a retrieval query.
type Classifier struct {
	llm     llm.LLM
	subject string
}

// NewClassifier creates a classifier for the given subject (the person the
// script is being personalized to).
func NewClassifier(client llm.LLM, subject string) (*Classifier, error) {
	if client == nil {
		return nil, fmt.Errorf("llm cannot be nil")
	}
	if strings.TrimSpace(subject) == "" {
		return nil, fmt.Errorf("subject cannot be empty")
	}

	return &Classifier{llm: client, subject: subject}, nil
}

// Classify analyzes one chunk. Classification failures (transport errors or
// malformed responses) are never fatal; they yield the filler default so
// the chunk still flows through the pipeline without retrieval.
func (c *Classifier) Classify(ctx context.Context, chunk string) Classification {
	raw, err := c.llm.Generate(ctx, buildClassifyPrompt(c.subject, chunk))
	if err != nil {
		log.Printf("[Classifier] classification failed, defaulting to filler: %v", err)
		return DefaultClassification()
	}

	return ParseClassification(raw)
}

package rewrite

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/Yates-Labs/recast/internal/llm"
)

func TestRewrite_TrimsResult(t *testing.T) {
	rewriter, err := NewRewriter(llm.NewMock("  I spent two years building community apps.  \n"), "the founder")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, err := rewriter.Rewrite(context.Background(), "Original line.", RoleHook, "two years on community apps", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "I spent two years building community apps." {
		t.Errorf("Expected trimmed rewrite, got %q", got)
	}
}

func TestRewrite_ErrorPropagates(t *testing.T) {
	cause := errors.New("inference down")
	rewriter, _ := NewRewriter(llm.NewMockWithError(cause), "the founder")

	_, err := rewriter.Rewrite(context.Background(), "Original line.", RoleHook, "", "")
	if !errors.Is(err, ErrRewriteFailed) {
		t.Errorf("Expected ErrRewriteFailed, got %v", err)
	}
	if !errors.Is(err, cause) {
		t.Errorf("Expected wrapped cause, got %v", err)
	}
}

func TestRewrite_EmptyResponse(t *testing.T) {
	rewriter, _ := NewRewriter(llm.NewMock("   "), "the founder")

	if _, err := rewriter.Rewrite(context.Background(), "Original line.", RoleHook, "", ""); !errors.Is(err, ErrRewriteFailed) {
		t.Errorf("Expected ErrRewriteFailed for blank response, got %v", err)
	}
}

func TestRewrite_BlankChunk(t *testing.T) {
	rewriter, _ := NewRewriter(llm.NewMock("x"), "the founder")

	if _, err := rewriter.Rewrite(context.Background(), "   ", RoleHook, "", ""); !errors.Is(err, ErrRewriteFailed) {
		t.Errorf("Expected ErrRewriteFailed for blank chunk, got %v", err)
	}
}

func TestRewrite_PromptGrounding(t *testing.T) {
	mock := llm.NewMock("rewritten")
	rewriter, _ := NewRewriter(mock, "Jordan")

	_, err := rewriter.Rewrite(context.Background(), "I lost 30 pounds.", RoleProof,
		"shipped three community apps | 10k beta signups", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	prompt := mock.LastPrompt()
	if !strings.Contains(prompt, "shipped three community apps | 10k beta signups") {
		t.Error("Rewrite prompt must contain the retrieved context")
	}
	if !strings.Contains(prompt, "I lost 30 pounds.") {
		t.Error("Rewrite prompt must contain the original chunk")
	}
	if !strings.Contains(prompt, RoleProof) {
		t.Error("Rewrite prompt must name the rhetorical role")
	}
	if !strings.Contains(prompt, "You are Jordan.") {
		t.Error("Rewrite prompt must adopt the subject's voice")
	}
	if !strings.Contains(prompt, "Never invent achievements") {
		t.Error("Rewrite prompt must forbid invented claims")
	}
}

func TestRewrite_NoContextPlaceholder(t *testing.T) {
	mock := llm.NewMock("rewritten")
	rewriter, _ := NewRewriter(mock, "the founder")

	if _, err := rewriter.Rewrite(context.Background(), "Original.", RoleFiller, "  ", ""); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(mock.LastPrompt(), NoContextPlaceholder) {
		t.Error("Blank context must be replaced with the placeholder")
	}
}

func TestRewrite_ExtraInstructionsVerbatim(t *testing.T) {
	mock := llm.NewMock("rewritten")
	rewriter, _ := NewRewriter(mock, "the founder")

	extra := "Mention the waitlist. Keep it under 15 words."
	if _, err := rewriter.Rewrite(context.Background(), "Original.", RoleCTA, "ctx", extra); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	prompt := mock.LastPrompt()
	if !strings.Contains(prompt, "Additional Instructions:") {
		t.Error("Extra instructions section missing")
	}
	if !strings.Contains(prompt, extra) {
		t.Error("Extra instructions must appear verbatim")
	}

	// Absent instructions add no section.
	if _, err := rewriter.Rewrite(context.Background(), "Original.", RoleCTA, "ctx", "  "); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.Contains(mock.LastPrompt(), "Additional Instructions:") {
		t.Error("Blank instructions must not add a section")
	}
}

func TestNewRewriter_Invalid(t *testing.T) {
	if _, err := NewRewriter(nil, "subject"); err == nil {
		t.Error("Expected error for nil LLM")
	}
	if _, err := NewRewriter(llm.NewMock("x"), ""); err == nil {
		t.Error("Expected error for blank subject")
	}
}

package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/Yates-Labs/recast/internal/orchestrator"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

var ingestCmd = &cobra.Command{
	Use:   "ingest [corpus]",
	Short: "Build the knowledge corpus index",
	Long: `Split a personal corpus file into overlapping passages, embed them, and
replace the persisted index. Rebuilding always drops the prior index first.

Without an argument the canonical corpus source is used (RECAST_CORPUS,
default personality.txt).

Examples:
  recast ingest
  recast ingest backstory.txt`,
	Args: cobra.MaximumNArgs(1),
	RunE: runIngest,
}

func init() {
	rootCmd.AddCommand(ingestCmd)
}

func runIngest(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	corpusPath := ""
	if len(args) > 0 {
		corpusPath = args[0]
	}

	if os.Getenv("OPENAI_API_KEY") == "" {
		return fmt.Errorf("OPENAI_API_KEY environment variable is required")
	}

	statusStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#6272A4")).Italic(true)
	successStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#50FA7B"))

	pipeline, err := orchestrator.NewPipeline(ctx, orchestrator.DefaultConfig())
	if err != nil {
		return fmt.Errorf("failed to create pipeline: %w", err)
	}
	defer pipeline.Close()

	fmt.Println(statusStyle.Render("→ Building corpus index..."))
	if err := pipeline.BuildCorpus(ctx, corpusPath); err != nil {
		return fmt.Errorf("corpus build failed: %w", err)
	}

	count, err := pipeline.PassageCount(ctx)
	if err != nil {
		return fmt.Errorf("failed to read index stats: %w", err)
	}

	fmt.Println(successStyle.Render(fmt.Sprintf("✓ Indexed %d passages", count)))
	return nil
}

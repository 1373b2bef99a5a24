package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/Yates-Labs/recast/internal/orchestrator"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

var (
	outputFile   string
	instructions string
	topK         int
	rebuild      bool
	verbose      bool
)

var personalizeCmd = &cobra.Command{
	Use:   "personalize [script]",
	Short: "Personalize a script against your knowledge corpus",
	Long: `Personalize a reference script using retrieval-augmented rewriting.

This command:
1. Loads (or builds) the embedded knowledge corpus
2. Segments the script into rhetorical sections
3. Classifies each chunk and retrieves grounding facts
4. Rewrites every chunk truthfully about you, preserving its rhetorical role

Required environment variables:
  OPENAI_API_KEY     - OpenAI API key for embeddings and generation
  MILVUS_ADDRESS     - Milvus server address (default: localhost:19530)

Optional environment variables:
  RECAST_CORPUS      - canonical corpus file (default: personality.txt)
  RECAST_SUBJECT     - who the script is personalized to

Examples:
  recast personalize script.txt
  recast personalize script.txt --output final.txt --topk 6
  recast personalize script.txt --instructions "keep it under 30 seconds" --verbose`,
	Args: cobra.ExactArgs(1),
	RunE: runPersonalize,
}

func init() {
	rootCmd.AddCommand(personalizeCmd)
	personalizeCmd.Flags().StringVarP(&outputFile, "output", "o", "output.txt", "Where to save the personalized script")
	personalizeCmd.Flags().StringVar(&instructions, "instructions", "", "Extra style instructions appended to every rewrite")
	personalizeCmd.Flags().IntVar(&topK, "topk", 4, "Number of corpus passages to retrieve per chunk")
	personalizeCmd.Flags().BoolVar(&rebuild, "rebuild", false, "Force rebuilding the corpus index before the run")
	personalizeCmd.Flags().BoolVar(&verbose, "verbose", false, "Show detailed progress")
}

func runPersonalize(cmd *cobra.Command, args []string) error {
	inputPath := args[0]
	ctx := context.Background()

	if os.Getenv("OPENAI_API_KEY") == "" {
		return fmt.Errorf("OPENAI_API_KEY environment variable is required")
	}

	// Styling
	var (
		headerColor  = lipgloss.Color("#F780FF") // Bright pink
		scriptColor  = lipgloss.Color("#E9E9F4") // Light purple/white
		statusColor  = lipgloss.Color("#6272A4") // Muted purple
		errorColor   = lipgloss.Color("#FF5555") // Red
		successColor = lipgloss.Color("#50FA7B") // Green
	)

	headerStyle := lipgloss.NewStyle().
		Foreground(headerColor).
		Bold(true)

	scriptStyle := lipgloss.NewStyle().
		Foreground(scriptColor)

	statusStyle := lipgloss.NewStyle().
		Foreground(statusColor).
		Italic(true)

	errorStyle := lipgloss.NewStyle().
		Foreground(errorColor).
		Bold(true)

	successStyle := lipgloss.NewStyle().
		Foreground(successColor)

	config := orchestrator.DefaultConfig()
	config.TopK = topK

	if verbose {
		fmt.Println(statusStyle.Render("→ Initializing pipeline..."))
	}

	pipeline, err := orchestrator.NewPipeline(ctx, config)
	if err != nil {
		return fmt.Errorf("%s Failed to create pipeline: %w", errorStyle.Render("Error:"), err)
	}
	defer pipeline.Close()

	if rebuild {
		fmt.Println(statusStyle.Render("→ Rebuilding corpus index..."))
		if err := pipeline.BuildCorpus(ctx, ""); err != nil {
			return fmt.Errorf("%s Corpus rebuild failed: %w", errorStyle.Render("Error:"), err)
		}
		count, err := pipeline.PassageCount(ctx)
		if err == nil {
			fmt.Println(successStyle.Render(fmt.Sprintf("✓ Indexed %d passages", count)))
		}
	}

	if verbose {
		fmt.Println(statusStyle.Render(fmt.Sprintf("→ Personalizing %s...", inputPath)))
	}

	finalScript, err := pipeline.Run(ctx, inputPath, outputFile, instructions)
	if err != nil {
		return fmt.Errorf("%s %w", errorStyle.Render("Error:"), err)
	}

	if finalScript == "" {
		fmt.Println(statusStyle.Render(fmt.Sprintf("%s is empty, nothing to personalize", inputPath)))
		return nil
	}

	fmt.Println()
	fmt.Println(headerStyle.Render("Personalized script:"))
	fmt.Println()
	fmt.Println(scriptStyle.Render(finalScript))
	fmt.Println()
	fmt.Println(successStyle.Render(fmt.Sprintf("✓ Saved to %s", outputFile)))

	return nil
}

package cmd

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/Yates-Labs/recast/internal/llm"
	"github.com/Yates-Labs/recast/internal/orchestrator"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

var (
	analysisDir string
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze [script]",
	Short: "Analyze a script's structure without rewriting it",
	Long: `Segment a script into rhetorical sections and display the breakdown.

The section breakdown is also persisted as two timestamp-qualified artifacts
(a JSON record and a human-readable rendering) so segmentation quality can be
inspected independent of rewriting quality. No rewriting happens in this mode.

Examples:
  recast analyze script.txt
  recast analyze script.txt --dir analyses/`,
	Args: cobra.ExactArgs(1),
	RunE: runAnalyze,
}

func init() {
	rootCmd.AddCommand(analyzeCmd)
	analyzeCmd.Flags().StringVar(&analysisDir, "dir", "analysis", "Directory for analysis artifacts")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	inputPath := args[0]
	ctx := context.Background()

	client, err := llm.NewOpenAI(llm.DefaultConfig())
	if err != nil {
		return fmt.Errorf("failed to create LLM: %w", err)
	}

	analyzer, err := orchestrator.NewAnalyzer(client, orchestrator.DefaultConfig().CallTimeoutSeconds)
	if err != nil {
		return fmt.Errorf("failed to create analyzer: %w", err)
	}

	analysis, err := analyzer.Analyze(ctx, inputPath, analysisDir)
	if err != nil {
		return fmt.Errorf("analysis failed: %w", err)
	}

	if analysis == nil {
		fmt.Printf("%s is empty, nothing to analyze\n", inputPath)
		return nil
	}

	outputSectionTable(analysis)
	return nil
}

func outputSectionTable(analysis *orchestrator.Analysis) {
	var (
		headerColor  = lipgloss.Color("#F780FF") // Bright pink/magenta
		typeColor    = lipgloss.Color("#BD93F9") // Purple
		numberColor  = lipgloss.Color("#FF79C6") // Pink
		descColor    = lipgloss.Color("#E9E9F4") // Light purple/white
		borderColor  = lipgloss.Color("#6272A4") // Muted purple
		summaryColor = lipgloss.Color("#8BE9FD") // Cyan accent
	)

	const (
		typeWidth = 16
		descWidth = 44
		lenWidth  = 8
	)

	headerStyle := lipgloss.NewStyle().
		Foreground(headerColor).
		Bold(true).
		Padding(0, 1)

	borderStyle := lipgloss.NewStyle().Foreground(borderColor)

	headers := []string{
		headerStyle.Width(typeWidth).Render("TYPE"),
		headerStyle.Width(descWidth).Render("DESCRIPTION"),
		headerStyle.Width(lenWidth).Render("LENGTH"),
	}
	fmt.Println(strings.Join(headers, borderStyle.Render("│")))

	separatorParts := []string{
		strings.Repeat("─", typeWidth),
		strings.Repeat("─", descWidth),
		strings.Repeat("─", lenWidth),
	}
	fmt.Println(borderStyle.Render(strings.Join(separatorParts, "┼")))

	typeStyle := lipgloss.NewStyle().
		Foreground(typeColor).
		Padding(0, 1).
		Width(typeWidth)

	descStyle := lipgloss.NewStyle().
		Foreground(descColor).
		Padding(0, 1).
		Width(descWidth)

	lenStyle := lipgloss.NewStyle().
		Foreground(numberColor).
		Padding(0, 1).
		Width(lenWidth).
		Align(lipgloss.Right)

	totalRunes := 0
	for _, section := range analysis.Sections {
		length := utf8.RuneCountInString(section.Content)
		totalRunes += length

		desc := section.Description
		if utf8.RuneCountInString(desc) > descWidth-2 {
			desc = string([]rune(desc)[:descWidth-3]) + "…"
		}

		cells := []string{
			typeStyle.Render(string(section.Type)),
			descStyle.Render(desc),
			lenStyle.Render(fmt.Sprintf("%d", length)),
		}
		fmt.Println(strings.Join(cells, borderStyle.Render("│")))
	}

	summaryStyle := lipgloss.NewStyle().
		Foreground(summaryColor).
		Italic(true)

	fmt.Println()
	fmt.Println(summaryStyle.Render(fmt.Sprintf("Total: %d sections, %d characters. Artifacts: %s, %s",
		analysis.TotalSections, totalRunes, analysis.JSONPath, analysis.TextPath)))
}

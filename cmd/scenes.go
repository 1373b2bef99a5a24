package cmd

import (
	"fmt"

	"github.com/Yates-Labs/recast/internal/script"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

var scenesOutput string

var scenesCmd = &cobra.Command{
	Use:   "scenes [video_analysis.json]",
	Short: "Convert a scene analysis into a plain-text script",
	Long: `Serialize the scene records produced by the video pipeline into the
plain-text script format the personalizer consumes: one block per scene with
a header line, optional Visual/Dialogue lines, and a blank separator.

Examples:
  recast scenes video_analysis.json
  recast scenes video_analysis.json --output script.txt`,
	Args: cobra.ExactArgs(1),
	RunE: runScenes,
}

func init() {
	rootCmd.AddCommand(scenesCmd)
	scenesCmd.Flags().StringVarP(&scenesOutput, "output", "o", "script.txt", "Where to save the script")
}

func runScenes(cmd *cobra.Command, args []string) error {
	analysis, err := script.LoadScenes(args[0])
	if err != nil {
		return err
	}

	if err := script.WriteScript(analysis.Scenes, scenesOutput); err != nil {
		return err
	}

	successStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#50FA7B"))
	fmt.Println(successStyle.Render(fmt.Sprintf("✓ Wrote %d scene(s) to %s", len(analysis.Scenes), scenesOutput)))
	return nil
}

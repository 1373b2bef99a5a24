package cmd

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "recast",
	Short: "Recast - Short-form script personalization tool",
	Long: `Recast personalizes short-form video scripts against a personal knowledge corpus.

It segments a reference script into rhetorical sections, classifies each chunk,
retrieves grounding facts from an embedded corpus, and rewrites every line so
the result is truthfully about you instead of the original creator.`,
}

// Execute runs the root command
func Execute() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var screenCmd = &cobra.Command{
	Use:   "screen [job description]",
	Short: "Screen indexed resumés against a job description",
	Long: `Retrieves the resumé chunks most similar to the job description,
assembles the full text of the matching resumés and submits them to the
reasoning service for a structured suitability analysis.`,
	Args: cobra.ExactArgs(1),
	RunE: runScreen,
}

func init() {
	rootCmd.AddCommand(screenCmd)
}

func runScreen(cmd *cobra.Command, args []string) error {
	screener, err := buildScreener()
	if err != nil {
		return err
	}

	analysis, err := screener.Screen(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("screening failed: %w", err)
	}

	cmd.Printf("Result: %s\n", analysis.Result)
	cmd.Printf("Requirements Score: %g\n", analysis.Score)
	for _, r := range analysis.Requirements {
		cmd.Printf("  - %s: %g\n", r.Name, r.Score)
	}
	return nil
}

// Package cli provides the cobra command tree for the screena binary.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/custodia-labs/screena-cli/internal/logger"
)

var (
	cfgPath     string
	verboseFlag bool
)

var rootCmd = &cobra.Command{
	Use:   "screena",
	Short: "Screen candidate resumés against a job description",
	Long: `Screena indexes a directory of PDF resumés into an external vector
index and screens them against a job description, forwarding the most
relevant candidates to a reasoning service for a structured suitability
analysis with a requirements-compliance score.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logger.SetVerbose(verboseFlag)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "", "config file (default ~/.screena/config.toml)")
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "verbose pipeline logging to stderr")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

package cli

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/custodia-labs/screena-cli/internal/adapters/driving/tui"
)

var uiCmd = &cobra.Command{
	Use:   "ui",
	Short: "Launch the interactive screening form",
	Long: `Opens a terminal form with a multi-line job description input.
Submitting runs the screening pipeline and renders the analysis result
and requirements score.`,
	Args: cobra.NoArgs,
	RunE: runUI,
}

func init() {
	rootCmd.AddCommand(uiCmd)
}

func runUI(cmd *cobra.Command, _ []string) error {
	screener, err := buildScreener()
	if err != nil {
		return err
	}

	program := tea.NewProgram(tui.NewModel(screener), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("ui failed: %w", err)
	}
	return nil
}

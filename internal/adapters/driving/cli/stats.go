package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show vector index statistics",
	Args:  cobra.NoArgs,
	RunE:  runStats,
}

func init() {
	rootCmd.AddCommand(statsCmd)
}

func runStats(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	index, err := buildVectorIndex(cfg)
	if err != nil {
		return err
	}
	defer index.Close()

	stats, err := index.Stats(cmd.Context())
	if err != nil {
		return fmt.Errorf("stats failed: %w", err)
	}

	cmd.Printf("Index: %s\n", cfg.Index.Name)
	cmd.Printf("Vectors: %d\n", stats.VectorCount)
	cmd.Printf("Dimension: %d\n", stats.Dimension)
	return nil
}

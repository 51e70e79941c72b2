package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/screena-cli/internal/core/ports/driving"
)

var indexRecreate bool

var indexCmd = &cobra.Command{
	Use:   "index",
	Short: "Build the resumé vector index",
	Long: `Extracts text from the configured resumé PDFs, splits it into
overlapping chunks, embeds each chunk and upserts the vectors into the
external index. Missing or empty resumé files are skipped.

By default an existing index is kept and chunk vectors are overwritten
in place. With --recreate the index is deleted and created fresh before
upserting.`,
	Args: cobra.NoArgs,
	RunE: runIndex,
}

func init() {
	indexCmd.Flags().BoolVar(&indexRecreate, "recreate", false, "delete and recreate the index before upserting")
	rootCmd.AddCommand(indexCmd)
}

func runIndex(cmd *cobra.Command, _ []string) error {
	indexer, err := buildIndexer()
	if err != nil {
		return err
	}

	report, err := indexer.BuildIndex(cmd.Context(), driving.IndexOptions{
		Recreate: indexRecreate,
	})
	if err != nil {
		return fmt.Errorf("indexing failed: %w", err)
	}

	cmd.Printf("Indexed %d resumes (%d chunks), skipped %d.\n", report.Indexed, report.Chunks, report.Skipped)
	return nil
}

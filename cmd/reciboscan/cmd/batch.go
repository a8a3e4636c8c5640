package cmd

import (
	"fmt"

	"github.com/finapp-br/reciboscan/internal/batch"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// batchCmd represents the batch command.
var batchCmd = &cobra.Command{
	Use:   "batch <dir|files...>",
	Short: "Process many receipts concurrently",
	Long: `Process a directory or a list of files concurrently. Each file is run
through the full extraction pipeline; failures are reported per file and do
not stop the remaining work.

Examples:
  reciboscan batch ./uploads
  reciboscan batch ./uploads --recursive --include "*.pdf"
  reciboscan batch a.pdf b.jpg c.png --workers 8 --format json`,
	Args:         cobra.MinimumNArgs(1),
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := GetConfig()

		// The process command owns the output.format viper binding; read the
		// local flag here so both commands can carry it.
		format := cfg.Output.Format
		if cmd.Flags().Changed("format") {
			format, _ = cmd.Flags().GetString("format")
		}

		recursive, _ := cmd.Flags().GetBool("recursive")
		include, _ := cmd.Flags().GetStringSlice("include")
		exclude, _ := cmd.Flags().GetStringSlice("exclude")
		showStats, _ := cmd.Flags().GetBool("stats")

		result, err := batch.Run(cmd.Context(), args, batch.Config{
			Pipeline:        cfg.PipelineConfig(),
			Workers:         cfg.Batch.Workers,
			Recursive:       recursive,
			IncludePatterns: include,
			ExcludePatterns: exclude,
		})
		if err != nil {
			return err
		}

		if err := result.SaveResults(cmd.OutOrStdout(), format, cfg.Output.File); err != nil {
			return err
		}
		if showStats {
			result.PrintStats(cmd.OutOrStdout())
		}

		if failed := result.Failed(); failed > 0 {
			return fmt.Errorf("%d of %d file(s) failed", failed, len(result.Results))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(batchCmd)

	batchCmd.Flags().IntP("workers", "w", 2, "number of files processed concurrently")
	batchCmd.Flags().StringP("format", "f", "text", "output format (text, json)")
	batchCmd.Flags().BoolP("recursive", "r", false, "recurse into subdirectories")
	batchCmd.Flags().StringSlice("include", nil, "glob patterns of file names to include")
	batchCmd.Flags().StringSlice("exclude", nil, "glob patterns of file names to exclude")
	batchCmd.Flags().Bool("stats", false, "print processing statistics")

	if err := viper.BindPFlag("batch.workers", batchCmd.Flags().Lookup("workers")); err != nil {
		panic(fmt.Sprintf("failed to bind flag workers: %v", err))
	}
}

// GetBatchCommand returns the batch command for testing purposes.
func GetBatchCommand() *cobra.Command {
	return batchCmd
}

package cmd

import (
	"os"

	"github.com/finapp-br/reciboscan/internal/ocr"
	"github.com/spf13/cobra"
)

// workerCmd is the OCR worker subprocess entry point. The pipeline re-execs
// the binary with this subcommand so a tesseract crash or hang never takes
// down the parent; hidden because it is not meant for interactive use.
var workerCmd = &cobra.Command{
	Use:    "ocr-worker <image> <tessdata-dir>",
	Short:  "Run tesseract on one image and emit a JSON payload",
	Hidden: true,
	Args:   cobra.ExactArgs(2),
	// Stdout must carry nothing but the payload, so skip the config and
	// logging setup the other commands do.
	PersistentPreRun: func(cmd *cobra.Command, args []string) {},
	Run: func(cmd *cobra.Command, args []string) {
		language, _ := cmd.Flags().GetString("language")
		code := ocr.RunWorker(args[0], args[1], language, cmd.OutOrStdout())
		if code != ocr.ExitOK {
			os.Exit(code)
		}
	},
}

func init() {
	rootCmd.AddCommand(workerCmd)

	workerCmd.Flags().StringP("language", "l", "por", "tesseract language code")
}

// GetWorkerCommand returns the ocr-worker command for testing purposes.
func GetWorkerCommand() *cobra.Command {
	return workerCmd
}

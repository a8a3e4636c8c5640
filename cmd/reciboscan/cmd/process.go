package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/finapp-br/reciboscan/internal/document"
	"github.com/finapp-br/reciboscan/internal/pipeline"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// processCmd represents the process command.
var processCmd = &cobra.Command{
	Use:   "process <file>",
	Short: "Extract amount, date, and title from one receipt or invoice",
	Long: `Process a single receipt or invoice file and print the extracted fields.

Supported inputs: PDF, JPEG, PNG, GIF, WebP, HEIC.

Examples:
  reciboscan process comprovante.pdf
  reciboscan process foto.jpg --format json --output result.json
  reciboscan process scan.bin --media-type image/png`,
	Args:         cobra.ExactArgs(1),
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := GetConfig()

		path := args[0]
		data, err := os.ReadFile(path) //nolint:gosec // G304: user-supplied input path
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", path, err)
		}

		mediaType, _ := cmd.Flags().GetString("media-type")
		if mediaType == "" {
			mediaType = document.MediaTypeFor(path)
		}

		pl, err := pipeline.New(cfg.PipelineConfig())
		if err != nil {
			return err
		}

		result, err := pl.Process(cmd.Context(), document.RawDocument{
			Data:      data,
			MediaType: mediaType,
			Filename:  path,
		})
		if errors.Is(err, document.ErrNoTextExtracted) {
			return fmt.Errorf("%s: no text could be extracted (tried native text and OCR): %w", path, err)
		}
		if err != nil {
			return fmt.Errorf("processing %s: %w", path, err)
		}

		out, err := formatResult(path, result, cfg.Output.Format)
		if err != nil {
			return err
		}

		if cfg.Output.File != "" {
			if err := os.WriteFile(cfg.Output.File, []byte(out+"\n"), 0o600); err != nil {
				return fmt.Errorf("failed to write output file: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Results written to %s\n", cfg.Output.File)
			return nil
		}
		fmt.Fprintln(cmd.OutOrStdout(), out)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(processCmd)

	processCmd.Flags().StringP("format", "f", "text", "output format (text, json)")
	processCmd.Flags().StringP("output", "o", "", "output file (default: stdout)")
	processCmd.Flags().String("media-type", "", "declared media type (default: inferred from extension)")
	processCmd.Flags().StringP("language", "l", "por", "tesseract language code")
	processCmd.Flags().String("tessdata-dir", "", "directory containing tesseract trained data")
	processCmd.Flags().String("pdftoppm", "", "path to the pdftoppm binary")

	bindProcessFlags(processCmd)
}

// bindProcessFlags binds the process flags to viper configuration keys.
func bindProcessFlags(cmd *cobra.Command) {
	flagBindings := []struct {
		key  string
		flag string
	}{
		{"output.format", "format"},
		{"output.file", "output"},
		{"pipeline.ocr.language", "language"},
		{"pipeline.ocr.tessdata_dir", "tessdata-dir"},
		{"pipeline.raster.pdftoppm_path", "pdftoppm"},
	}
	for _, binding := range flagBindings {
		if err := viper.BindPFlag(binding.key, cmd.Flags().Lookup(binding.flag)); err != nil {
			panic(fmt.Sprintf("failed to bind flag %s: %v", binding.flag, err))
		}
	}
}

// GetProcessCommand returns the process command for testing purposes.
func GetProcessCommand() *cobra.Command {
	return processCmd
}

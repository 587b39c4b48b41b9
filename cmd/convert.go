package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/spf13/cobra"

	"photoconv/internal/convert"
	"photoconv/internal/encoder"
	"photoconv/internal/settings"
)

var (
	convertFormat string
	convertOutDir string
)

var convertCmd = &cobra.Command{
	Use:   "convert <image>",
	Short: "Convert a single image to WebP or AVIF",
	Long: `Converts one PNG/JPEG/BMP/GIF image using the stored encode policy for
the target format. The output keeps the source's base name with the new
extension, in the configured output folder.`,
	Args: cobra.ExactArgs(1),
	RunE: runConvert,
}

func init() {
	convertCmd.Flags().StringVarP(&convertFormat, "format", "f", "webp", "target format (webp|avif)")
	convertCmd.Flags().StringVarP(&convertOutDir, "out", "o", "", "output folder (default: stored, else the source's folder)")
	rootCmd.AddCommand(convertCmd)
}

func runConvert(cmd *cobra.Command, args []string) error {
	source, err := absPath(args[0])
	if err != nil {
		return err
	}

	doc := settings.Load(settingsFile)
	enc, err := doc.ForFormat(convertFormat)
	if err != nil {
		return err
	}

	outDir, adopted := resolveOutputDir(convertOutDir, &doc, filepath.Dir(source))
	if adopted {
		saveSettings(doc)
	}

	registry := encoder.NewRegistry()
	logVerbose("%s", registry.String())
	logVerbose("settings: %+v", enc)

	svc := convert.New(registry, slog.Default(), progressLine)
	out, err := svc.ConvertOne(context.Background(), source, outDir, convertFormat, enc)
	if err != nil {
		return err
	}

	// Fail-safe second write at exit, mirroring the mutation-time save.
	saveSettings(doc)

	fmt.Printf("%s conversion complete: %s\n", convertFormat, out)
	return nil
}

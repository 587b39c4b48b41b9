package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"runtime"

	"github.com/spf13/cobra"

	"photoconv/internal/settings"
)

var (
	version      = "0.1.0"
	verbose      bool
	settingsFile string
)

var rootCmd = &cobra.Command{
	Use:   "photoconv",
	Short: "Convert raster images to WebP or AVIF",
	Long: `photoconv — converts PNG/JPEG/BMP/GIF images to WebP or AVIF, one file
at a time or as a batch over a folder, with a persisted per-format encode
policy (lossless/quality/resize).

Encoding delegates to the cwebp and avifenc command line codecs.`,
	Version: version,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := slog.LevelWarn
		if verbose {
			level = slog.LevelDebug
		}
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
		if settingsFile == "" {
			settingsFile = settings.DefaultPath()
		}
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().StringVar(&settingsFile, "settings", "", "settings file (default: next to the executable)")
	rootCmd.SetVersionTemplate(fmt.Sprintf(
		"photoconv %s (%s/%s, %s)\n",
		version, runtime.GOOS, runtime.GOARCH, runtime.Version(),
	))
}

// logVerbose prints a message only when --verbose is set.
func logVerbose(format string, args ...any) {
	if verbose {
		fmt.Fprintf(os.Stderr, "[photoconv] "+format+"\n", args...)
	}
}

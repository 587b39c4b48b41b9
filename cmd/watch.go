package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"photoconv/internal/convert"
	"photoconv/internal/encoder"
	"photoconv/internal/settings"
	"photoconv/internal/watcher"
)

var (
	watchFormat string
	watchOutDir string
	watchDelay  time.Duration
)

var watchCmd = &cobra.Command{
	Use:   "watch <folder>",
	Short: "Convert images as they are dropped into a folder",
	Long: `Watches a folder and converts each newly added PNG/JPEG/BMP/GIF file
after a short stability delay. Runs until interrupted.`,
	Args: cobra.ExactArgs(1),
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().StringVarP(&watchFormat, "format", "f", "webp", "target format (webp|avif)")
	watchCmd.Flags().StringVarP(&watchOutDir, "out", "o", "", "output folder (default: stored, else the watched folder)")
	watchCmd.Flags().DurationVar(&watchDelay, "delay", 2*time.Second, "stability delay before converting a new file")
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	folder, err := absPath(args[0])
	if err != nil {
		return err
	}

	doc := settings.Load(settingsFile)
	enc, err := doc.ForFormat(watchFormat)
	if err != nil {
		return err
	}

	outDir, adopted := resolveOutputDir(watchOutDir, &doc, folder)
	if adopted {
		saveSettings(doc)
	}

	registry := encoder.NewRegistry()
	e := registry.Get(watchFormat)
	if e == nil {
		return fmt.Errorf("unknown format %q", watchFormat)
	}
	if !e.Available() {
		return fmt.Errorf("%w: %s", convert.ErrCodecUnavailable, watchFormat)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	svc := convert.New(registry, slog.Default(), nil)
	handler := func(path string) {
		out, err := svc.ConvertOne(ctx, path, outDir, watchFormat, enc)
		if err != nil {
			fmt.Fprintf(os.Stderr, "[photoconv] %s: %v\n", path, err)
			return
		}
		fmt.Printf("converted %s\n", out)
	}

	w, err := watcher.New(folder, watchDelay, handler, slog.Default())
	if err != nil {
		return err
	}
	defer w.Close()

	fmt.Printf("watching %s, writing %s to %s (Ctrl-C to stop)\n", folder, watchFormat, outDir)
	return w.Start(ctx)
}

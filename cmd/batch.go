package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/spf13/cobra"

	"photoconv/internal/convert"
	"photoconv/internal/encoder"
	"photoconv/internal/pipeline"
	"photoconv/internal/report"
	"photoconv/internal/settings"
)

var (
	batchFormat     string
	batchOutDir     string
	batchReportPath string
)

var batchCmd = &cobra.Command{
	Use:   "batch [folder]",
	Short: "Convert every eligible image in a folder",
	Long: `Converts all PNG/JPEG/BMP/GIF files in a folder, in name order. One bad
file never aborts the batch; failures are tallied and listed at the end.

Without an argument, the last-used batch folder is reused.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runBatch,
}

func init() {
	batchCmd.Flags().StringVarP(&batchFormat, "format", "f", "webp", "target format (webp|avif)")
	batchCmd.Flags().StringVarP(&batchOutDir, "out", "o", "", "output folder (default: stored, else the batch folder)")
	batchCmd.Flags().StringVar(&batchReportPath, "report", "", "write a JSON run report to this path")
	rootCmd.AddCommand(batchCmd)
}

func runBatch(cmd *cobra.Command, args []string) error {
	doc := settings.Load(settingsFile)

	var folder string
	switch {
	case len(args) == 1:
		abs, err := absPath(args[0])
		if err != nil {
			return err
		}
		folder = abs
	case doc.BatchFolderPath != nil:
		folder = *doc.BatchFolderPath
		logVerbose("using stored batch folder: %s", folder)
	default:
		return convert.ErrNoBatchFolder
	}

	enc, err := doc.ForFormat(batchFormat)
	if err != nil {
		return err
	}

	outDir, adopted := resolveOutputDir(batchOutDir, &doc, folder)
	if doc.BatchFolderPath == nil || *doc.BatchFolderPath != folder {
		doc.BatchFolderPath = &folder
		adopted = true
	}
	if adopted {
		saveSettings(doc)
	}

	registry := encoder.NewRegistry()
	logVerbose("%s", registry.String())

	svc := convert.New(registry, slog.Default(), progressLine)
	res, err := svc.ConvertBatch(context.Background(), folder, outDir, batchFormat, enc)
	if err != nil {
		return err
	}

	printBatchResult(res)

	// Fail-safe second write at exit, mirroring the mutation-time save.
	saveSettings(doc)

	if batchReportPath != "" {
		r := report.FromResult(batchFormat, outDir, res)
		if err := report.WriteJSON(r, batchReportPath); err != nil {
			return err
		}
		logVerbose("report written: %s", batchReportPath)
	}

	if res.Failures > 0 {
		fmt.Printf("%s batch complete: %d succeeded / %d failed\n", batchFormat, res.Successes, res.Failures)
	} else {
		fmt.Printf("%s batch complete: %d converted\n", batchFormat, res.Successes)
	}
	return nil
}

func printBatchResult(res pipeline.Result) {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.AppendHeader(table.Row{"File", "Status", "Size", "Output"})
	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 3, Align: text.AlignRight, AlignHeader: text.AlignLeft},
	})

	for _, f := range res.Files {
		if f.Err != nil {
			tw.AppendRow(table.Row{filepath.Base(f.Source), "failed", "", f.Err.Error()})
			continue
		}
		tw.AppendRow(table.Row{filepath.Base(f.Source), "ok", formatBytes(f.Size), filepath.Base(f.Output)})
	}
	fmt.Println(tw.Render())
}

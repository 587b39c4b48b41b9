package cmd

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"photoconv/internal/settings"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Inspect or edit the persisted encode policies",
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the current settings document",
	RunE: func(cmd *cobra.Command, args []string) error {
		doc := settings.Load(settingsFile)
		data, err := json.MarshalIndent(doc, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(data))
		return nil
	},
}

var settingsPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the settings file location",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(settingsFile)
	},
}

var settingsSetCmd = &cobra.Command{
	Use:   "set <webp|avif> <field> <value>",
	Short: "Change one encode policy field and persist it",
	Long: `Fields: lossless (true|false), quality (0-100), resize_mode
(original|specify), width, height. The change is written to the settings
file immediately.`,
	Args: cobra.ExactArgs(3),
	RunE: runSettingsSet,
}

func init() {
	settingsCmd.AddCommand(settingsShowCmd, settingsPathCmd, settingsSetCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsSet(cmd *cobra.Command, args []string) error {
	format, field, value := args[0], args[1], args[2]

	doc := settings.Load(settingsFile)
	enc, err := doc.ForFormat(format)
	if err != nil {
		return err
	}

	switch field {
	case "lossless":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("lossless: %w", err)
		}
		enc.Lossless = b
	case "quality":
		q, err := strconv.Atoi(value)
		if err != nil || q < 0 || q > 100 {
			return fmt.Errorf("quality must be an integer 0-100, got %q", value)
		}
		enc.Quality = q
	case "resize_mode":
		switch settings.ResizeMode(value) {
		case settings.ResizeOriginal, settings.ResizeSpecify:
			enc.ResizeMode = settings.ResizeMode(value)
		default:
			return fmt.Errorf("resize_mode must be %q or %q", settings.ResizeOriginal, settings.ResizeSpecify)
		}
	case "width", "height":
		n, err := strconv.Atoi(value)
		if err != nil || n < 1 {
			return fmt.Errorf("%s must be a positive integer, got %q", field, value)
		}
		if field == "width" {
			enc.Width = n
		} else {
			enc.Height = n
		}
	default:
		return fmt.Errorf("unknown field %q", field)
	}

	if err := doc.SetForFormat(format, enc); err != nil {
		return err
	}
	if err := settings.Save(settingsFile, doc); err != nil {
		return err
	}
	fmt.Printf("%s.%s = %s\n", format, field, value)
	return nil
}

package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/rileyhilliard/pbar/internal/config"
	"github.com/rileyhilliard/pbar/internal/errors"
	"github.com/rileyhilliard/pbar/internal/ui"
)

// configCmd groups config subcommands
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or change configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration",
	Long: `Print the configuration pbar would use, with defaults and flags applied.

Examples:
  pbar config show
  pbar config show --speed 1s`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return configShow(os.Stdout)
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a value in the config file",
	Long: `Set one value in the config file that pbar would load, keeping its
comments and layout. The result is validated before it is saved.

Keys:
  indicator.speed, indicator.frame_interval,
  display.width, display.gradient, display.fade, display.transition,
  display.color, metrics.enabled

Examples:
  pbar config set indicator.speed 1s
  pbar config set display.color never`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return configSet(os.Stdout, args[0], args[1])
	},
}

func configShow(w io.Writer) error {
	cfg, path, err := resolveConfig()
	if err != nil {
		return err
	}

	if path == "" {
		path = "(none, using defaults)"
	}
	fmt.Fprintf(w, "%s\n", ui.MutedStyle().Render("# loaded from "+path))

	data, err := config.Marshal(cfg)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

func configSet(w io.Writer, key, value string) error {
	path, err := config.Find(cfgFile)
	if err != nil {
		return err
	}
	if path == "" {
		return errors.New(errors.ErrConfig,
			"No config file found",
			"Run 'pbar init' to create one first")
	}

	if err := config.SetValue(path, key, value); err != nil {
		if errors.IsCode(err, errors.ErrConfig) {
			return err
		}
		return errors.WrapWithCode(err, errors.ErrConfig,
			fmt.Sprintf("Couldn't set %s", key),
			"Check the key name with 'pbar config set --help'")
	}

	fmt.Fprintf(w, "%s %s = %s (%s)\n", ui.SuccessStyle().Render(ui.SymbolSuccess), key, value, path)
	return nil
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
	rootCmd.AddCommand(configCmd)
}

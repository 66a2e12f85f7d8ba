package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/rileyhilliard/pbar/internal/config"
	"github.com/rileyhilliard/pbar/internal/errors"
	"github.com/rileyhilliard/pbar/internal/ui"
)

// InitOptions holds options for the init command.
type InitOptions struct {
	Dir            string // Directory to write .pbar.yaml into
	Global         bool   // Write ~/.config/pbar/config.yaml instead
	Overwrite      bool   // Overwrite existing config without asking
	NonInteractive bool   // Never prompt
	Out            io.Writer
}

var (
	initForce  bool
	initGlobal bool
)

// initCmd creates a new .pbar.yaml configuration
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create .pbar.yaml configuration",
	Long: `Write a config file with the default settings.

Creates .pbar.yaml in the current directory, or the global config with
--global. Flags like --speed still override whatever the file says.

Examples:
  pbar init
  pbar init --global
  pbar init --force`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := Init(InitOptions{
			Dir:            ".",
			Global:         initGlobal,
			Overwrite:      initForce,
			NonInteractive: !term.IsTerminal(int(os.Stdin.Fd())),
			Out:            os.Stdout,
		})
		return err
	},
}

// Init writes a default config file and returns its path. It returns an
// empty path if the user declined to overwrite an existing file.
func Init(opts InitOptions) (string, error) {
	path := filepath.Join(opts.Dir, config.ConfigFileName)
	if opts.Global {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", errors.WrapWithCode(err, errors.ErrConfig,
				"Can't find your home directory",
				"Set $HOME or drop --global")
		}
		path = filepath.Join(home, config.GlobalConfigDir, config.GlobalConfigFile)
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return "", errors.WrapWithCode(err, errors.ErrConfig,
				"Couldn't create "+filepath.Dir(path),
				"Check directory permissions")
		}
	}

	overwrite := opts.Overwrite
	if _, err := os.Stat(path); err == nil && !overwrite {
		if opts.NonInteractive {
			return "", errors.New(errors.ErrConfig,
				fmt.Sprintf("Config file already exists: %s", path),
				"Use --force to overwrite")
		}

		form := huh.NewForm(
			huh.NewGroup(
				huh.NewConfirm().
					Title(fmt.Sprintf("Config file '%s' already exists. Overwrite?", path)).
					Value(&overwrite),
			),
		)
		if err := form.Run(); err != nil {
			return "", errors.WrapWithCode(err, errors.ErrConfig,
				"Failed to get user input",
				"Try running with --force to overwrite")
		}
		if !overwrite {
			fmt.Fprintln(opts.Out, "Cancelled.")
			return "", nil
		}
	}

	if err := config.Write(path, config.DefaultConfig(), overwrite); err != nil {
		return "", errors.WrapWithCode(err, errors.ErrConfig,
			"Couldn't write "+path,
			"Check directory permissions")
	}

	fmt.Fprintf(opts.Out, "%s Created %s\n", ui.SuccessStyle().Render(ui.SymbolSuccess), path)
	return path, nil
}

func init() {
	initCmd.Flags().BoolVarP(&initForce, "force", "f", false, "overwrite existing config")
	initCmd.Flags().BoolVar(&initGlobal, "global", false, "write the global config in ~/.config/pbar")
	rootCmd.AddCommand(initCmd)
}

package commands

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/simonhull/userprompt/internal/config"
	"github.com/simonhull/userprompt/internal/output"
)

// InitCmd creates and returns the 'init' command, which asks for every
// setting and writes .userprompt.yml.
func InitCmd(app *App) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write " + config.FileName + " interactively",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := filepath.Join(app.Dir, config.FileName)
			exists, err := afero.Exists(app.Fs, path)
			if err != nil {
				return err
			}
			if exists && !force {
				return fmt.Errorf("%s already exists (use --force to overwrite)", path)
			}

			cfg := app.Config
			if err := config.Prompt(app.session(), &cfg); err != nil {
				return err
			}
			if err := config.Save(app.Fs, path, cfg); err != nil {
				return err
			}
			output.Success("Wrote " + path)
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing config file")

	return cmd
}

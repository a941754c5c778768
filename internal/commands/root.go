// Package commands implements the userprompt command line.
package commands

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/simonhull/userprompt"
	"github.com/simonhull/userprompt/internal/config"
	"github.com/simonhull/userprompt/internal/logger"
	"github.com/simonhull/userprompt/internal/output"
	"github.com/simonhull/userprompt/prompt"
)

// App is the environment commands run in. Tests swap in an in-memory
// filesystem and buffers.
type App struct {
	Fs     afero.Fs
	In     io.Reader
	Out    io.Writer
	ErrOut io.Writer
	Dir    string

	// Set by the root command before any subcommand runs.
	Config config.Config
	Log    *charmlog.Logger
}

// NewApp returns an App bound to the process's working directory and
// standard streams.
func NewApp() *App {
	dir, err := os.Getwd()
	if err != nil {
		dir = "."
	}
	return &App{
		Fs:     afero.NewOsFs(),
		In:     os.Stdin,
		Out:    os.Stdout,
		ErrOut: os.Stderr,
		Dir:    dir,
		Config: config.Default(),
		Log:    logger.New(nil),
	}
}

// RootCmd creates and returns the root command for the userprompt CLI
func RootCmd(app *App) *cobra.Command {
	var verbose bool
	var configPath, logLevel string

	cmd := &cobra.Command{
		Use:   "userprompt",
		Short: "Prompts and forms derived from Go types",
		Long: `userprompt fills Go values from the user, either as a line-by-line
conversation on a terminal or as an immediate-mode form.

Mark a struct with //prompt:derive or an interface with //prompt:enum and
run "userprompt generate" to write reflection-free Prompt and BuildForm
implementations next to it. Types can also be described in YAML schema
files, in which case the generated file declares them too.

Settings are read from .userprompt.yml and USERPROMPT_* variables.`,
		Version:       userprompt.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			output.SetVerbose(verbose)
			output.SetWriter(app.Out)

			cfg, err := config.Load(app.Fs, app.Dir, configPath)
			if err != nil {
				return err
			}
			if logLevel != "" {
				cfg.LogLevel = logLevel
			}
			level, err := logger.ParseLevel(cfg.LogLevel)
			if err != nil {
				return err
			}
			app.Config = cfg
			app.Log = logger.New(&logger.Config{Level: level, Output: app.ErrOut, TimeFormat: "15:04:05"})
			app.Log.Debug("configuration loaded", "suffix", cfg.Suffix, "gui", cfg.GUI, "frontend", cfg.Frontend)
			return nil
		},
	}

	cmd.SetIn(app.In)
	cmd.SetOut(app.Out)
	cmd.SetErr(app.ErrOut)

	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output for debugging")
	cmd.PersistentFlags().StringVar(&configPath, "config", "", fmt.Sprintf("Config file (default ./%s)", config.FileName))
	cmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn or error")

	return cmd
}

// settings are the prompt settings every session and form of a command
// shares.
func (a *App) settings() []prompt.Setting {
	return []prompt.Setting{
		prompt.WithFs(a.Fs),
		prompt.WithLogger(a.Log),
		prompt.WithMaxAttempts(a.Config.MaxAttempts),
	}
}

func (a *App) session() *prompt.Session {
	return prompt.NewSession(prompt.NewLineTerminal(a.In, a.Out), a.settings()...)
}

func (a *App) abs(path string) string {
	if filepath.IsAbs(path) {
		return filepath.Clean(path)
	}
	return filepath.Join(a.Dir, path)
}

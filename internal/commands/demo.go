package commands

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/simonhull/userprompt/internal/demo"
	"github.com/simonhull/userprompt/internal/output"
	"github.com/simonhull/userprompt/prompt"
	"github.com/simonhull/userprompt/prompt/huhterm"
	"github.com/simonhull/userprompt/tui"
)

// DemoCmd creates and returns the 'demo' command
func DemoCmd(app *App) *cobra.Command {
	var frontend, save string

	cmd := &cobra.Command{
		Use:   "demo [profile|shape]",
		Short: "Fill an example value interactively",
		Long: `Fill one of the built-in example types and print the result as YAML.

Frontends:
  line  - plain line-by-line prompts
  huh   - the same conversation with huh input fields
  tui   - an immediate-mode form in the terminal (tab to move,
          enter to activate, ctrl+s to submit, esc to cancel)`,
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: []string{"profile", "shape"},
		RunE: func(cmd *cobra.Command, args []string) error {
			name := "profile"
			if len(args) > 0 {
				name = args[0]
			}
			if !cmd.Flags().Changed("frontend") {
				frontend = app.Config.Frontend
			}
			return app.demo(cmd.Context(), name, frontend, save)
		},
	}

	cmd.Flags().StringVar(&frontend, "frontend", "line", "Frontend: line, huh or tui")
	cmd.Flags().StringVar(&save, "save", "", "Also write the result to this YAML file")

	return cmd
}

func (a *App) demo(ctx context.Context, name, frontend, save string) error {
	if ctx == nil {
		ctx = context.Background()
	}

	var target any
	switch name {
	case "profile":
		target = &demo.Profile{}
	case "shape":
		var s demo.Shape
		target = &s
	default:
		return fmt.Errorf("unknown demo %q: use profile or shape", name)
	}

	a.Log.Debug("starting demo", "type", name, "frontend", frontend)
	switch frontend {
	case "line":
		if err := a.session().Value(target, name, ""); err != nil {
			return err
		}
	case "huh":
		s := prompt.NewSession(huhterm.New(huhterm.WithIO(a.In, a.Out)), a.settings()...)
		if err := s.Value(target, name, ""); err != nil {
			return err
		}
	case "tui":
		ok, err := tui.Run(ctx, "userprompt demo", prompt.Build(target, name, a.settings()...),
			tea.WithInput(a.In), tea.WithOutput(a.Out))
		if err != nil {
			return err
		}
		if !ok {
			output.Warn("Canceled")
			return nil
		}
	default:
		return fmt.Errorf("unknown frontend %q: use line, huh or tui", frontend)
	}

	data, err := yaml.Marshal(target)
	if err != nil {
		return fmt.Errorf("encoding result: %w", err)
	}
	fmt.Fprint(a.Out, string(data))

	if save != "" {
		path := a.abs(save)
		if err := afero.WriteFile(a.Fs, path, data, 0o644); err != nil {
			return fmt.Errorf("writing %s: %w", path, err)
		}
		output.Success("Saved " + path)
	}
	return nil
}

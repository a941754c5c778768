package commands

import (
	"context"
	"fmt"
	"go/token"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/simonhull/userprompt/internal/codegen"
	"github.com/simonhull/userprompt/internal/generator"
	"github.com/simonhull/userprompt/internal/output"
	"github.com/simonhull/userprompt/internal/project"
	"github.com/simonhull/userprompt/internal/scan"
	"github.com/simonhull/userprompt/internal/schema"
	"github.com/simonhull/userprompt/internal/shape"
)

type generateOptions struct {
	GUI    bool
	Suffix string
	DryRun bool
	Force  bool
}

// GenerateCmd creates and returns the 'generate' command for code generation
func GenerateCmd(app *App) *cobra.Command {
	var gui, dryRun, force bool
	var suffix string

	cmd := &cobra.Command{
		Use:   "generate [path...]",
		Short: "Generate Prompt and BuildForm implementations",
		Long: `Generate reflection-free prompt code for derived types.

Each path is either a package directory or a YAML schema file:

  directory  - every type marked //prompt:derive (structs) or
               //prompt:enum (interfaces) is derived; output goes to
               <file>_prompt.go next to the declaring file
  schema     - every definition in the .yml/.yaml file is declared and
               derived in <schema>_prompt.go next to the schema

Existing files are only overwritten when they carry the generated code
header, unless --force is given. Unchanged files are left alone.

Examples:
  userprompt generate
  userprompt generate ./internal/settings --gui
  userprompt generate schemas/server.yml --dry-run`,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := generateOptions{
				GUI:    app.Config.GUI,
				Suffix: app.Config.Suffix,
				DryRun: dryRun,
				Force:  force,
			}
			if cmd.Flags().Changed("gui") {
				opts.GUI = gui
			}
			if cmd.Flags().Changed("suffix") {
				opts.Suffix = suffix
			}
			if !strings.HasSuffix(opts.Suffix, ".go") {
				return fmt.Errorf("suffix %q must end in .go", opts.Suffix)
			}
			if len(args) == 0 {
				args = []string{"."}
			}
			return app.generate(cmd.Context(), args, opts)
		},
	}

	cmd.Flags().BoolVar(&gui, "gui", false, "Also generate BuildForm implementations")
	cmd.Flags().StringVar(&suffix, "suffix", "", "Generated file suffix (default from config, _prompt.go)")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Preview changes without writing files")
	cmd.Flags().BoolVar(&force, "force", false, "Overwrite files that were not generated")

	return cmd
}

func (a *App) generate(ctx context.Context, paths []string, opts generateOptions) error {
	if ctx == nil {
		ctx = context.Background()
	}
	emitter := codegen.New(codegen.Options{GUI: opts.GUI})

	var ops []generator.Operation
	var emitted []string
	for _, p := range paths {
		path := a.abs(p)
		files, dir, err := a.shapes(path, opts.Suffix)
		if err != nil {
			return err
		}
		for _, f := range files {
			out := filepath.Join(dir, codegen.OutputName(f.Source, opts.Suffix))
			f.Source = a.sourceName(dir, f.Source)

			output.Verbose(fmt.Sprintf("Emitting %d type(s) from %s", len(f.Types), f.Source))
			src, err := emitter.Emit(f)
			if err != nil {
				return err
			}
			ops = append(ops, &generator.WriteFileOp{Fs: a.Fs, Path: out, Content: src, Mode: 0o644})
			emitted = append(emitted, fmt.Sprintf("%s: %s", filepath.Base(out), typeNames(f)))
		}
	}

	if len(ops) == 0 {
		output.Warn("No //prompt:derive or //prompt:enum types found")
		return nil
	}

	err := generator.Execute(ctx, ops, generator.ExecuteOptions{
		DryRun: opts.DryRun,
		Force:  opts.Force,
		Writer: output.Writer(),
	})
	if err != nil {
		return err
	}
	if opts.DryRun {
		output.Info("Dry run: no files were written")
		return nil
	}
	output.Success(fmt.Sprintf("Generated %d file(s)", len(ops)))
	for _, line := range emitted {
		output.Step(line)
	}
	return nil
}

func typeNames(f shape.File) string {
	names := make([]string, len(f.Types))
	for i, t := range f.Types {
		names[i] = t.Name
	}
	return strings.Join(names, ", ")
}

// shapes reads the derived types at path and returns them along with the
// directory their output belongs in.
func (a *App) shapes(path, suffix string) ([]shape.File, string, error) {
	switch filepath.Ext(path) {
	case ".yml", ".yaml":
		dir := filepath.Dir(path)
		defs, err := schema.ParseFile(a.Fs, path)
		if err != nil {
			return nil, "", err
		}
		if err := schema.Validate(defs); err != nil {
			return nil, "", fmt.Errorf("%s: %w", path, err)
		}
		if len(defs) == 0 {
			return nil, dir, nil
		}
		pkg, err := a.packageName(dir)
		if err != nil {
			return nil, "", err
		}
		return []shape.File{schema.Shapes(defs, pkg, filepath.Base(path))}, dir, nil
	}

	isDir, err := afero.IsDir(a.Fs, path)
	if err != nil {
		return nil, "", fmt.Errorf("reading %s: %w", path, err)
	}
	if !isDir {
		return nil, "", fmt.Errorf("%s is neither a directory nor a schema file", path)
	}
	exclude := append([]string{"*" + suffix}, a.Config.Exclude...)
	files, err := scan.Dir(a.Fs, path, scan.Options{Exclude: exclude})
	return files, path, err
}

// packageName is the package of the Go files already in dir, or the
// directory name.
func (a *App) packageName(dir string) (string, error) {
	if pkg, err := scan.Package(a.Fs, dir); err == nil && pkg != "" {
		return pkg, nil
	}
	name := strings.ReplaceAll(filepath.Base(dir), "-", "_")
	if !token.IsIdentifier(name) {
		return "", fmt.Errorf("cannot name a package after %s: set package in the schema", dir)
	}
	return name, nil
}

// sourceName is the import path qualified name of file in dir, or the bare
// name outside a module.
func (a *App) sourceName(dir, file string) string {
	pkg, err := project.ImportPath(a.Fs, dir)
	if err != nil {
		a.Log.Debug("no import path", "dir", dir, "err", err)
		return file
	}
	return pkg + "/" + file
}

package generator

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io/fs"
	"path/filepath"
	"regexp"

	"github.com/spf13/afero"
)

// Operation is a file system change that can be checked before it runs.
//
// Validate reports whether Execute would succeed. force=true skips
// conflict checks such as overwriting a hand-written file.
//
// Description returns a human-readable summary for output, e.g.
// "Create config_prompt.go (1234 bytes)".
type Operation interface {
	Validate(ctx context.Context, force bool) error
	Execute(ctx context.Context) error
	Description() string
}

// Reverter is implemented by operations that can undo a completed Execute.
type Reverter interface {
	Revert() error
}

// generatedPattern matches the standard generated-code header.
var generatedPattern = regexp.MustCompile(`^// Code generated .* DO NOT EDIT\.$`)

// IsGenerated reports whether content carries a generated-code header
// before the package clause.
func IsGenerated(content []byte) bool {
	sc := bufio.NewScanner(bytes.NewReader(content))
	for sc.Scan() {
		line := bytes.TrimSpace(sc.Bytes())
		if generatedPattern.Match(line) {
			return true
		}
		if bytes.HasPrefix(line, []byte("package ")) {
			return false
		}
	}
	return false
}

// WriteFileOp writes Content to Path on Fs.
//
// An existing file is only replaced when it was itself generated, unless
// force is set. Rewriting identical content is a no-op.
type WriteFileOp struct {
	Fs      afero.Fs
	Path    string
	Content []byte
	Mode    fs.FileMode

	existed   bool
	unchanged bool
	previous  []byte
	prevMode  fs.FileMode
	written   bool
}

func (op *WriteFileOp) Validate(_ context.Context, force bool) error {
	if op.Content == nil {
		return fmt.Errorf("content is nil for file: %s", op.Path)
	}

	info, err := op.Fs.Stat(op.Path)
	if err != nil {
		op.existed = false
		return nil
	}
	if info.IsDir() {
		return fmt.Errorf("path is a directory: %s", op.Path)
	}

	previous, err := afero.ReadFile(op.Fs, op.Path)
	if err != nil {
		return fmt.Errorf("cannot read %s: %w", op.Path, err)
	}
	op.existed, op.previous, op.prevMode = true, previous, info.Mode()
	op.unchanged = bytes.Equal(previous, op.Content)

	if !force && !IsGenerated(previous) {
		return fmt.Errorf("file already exists and was not generated: %s (use --force to overwrite)", op.Path)
	}
	return nil
}

func (op *WriteFileOp) Execute(_ context.Context) error {
	if op.unchanged {
		return nil
	}
	dir := filepath.Dir(op.Path)
	if err := op.Fs.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("cannot create directory %s: %w", dir, err)
	}
	if err := afero.WriteFile(op.Fs, op.Path, op.Content, op.Mode); err != nil {
		return fmt.Errorf("failed to write file %s: %w", op.Path, err)
	}
	op.written = true
	return nil
}

// Revert restores the file as it was before Execute.
func (op *WriteFileOp) Revert() error {
	if !op.written {
		return nil
	}
	op.written = false
	if op.existed {
		return afero.WriteFile(op.Fs, op.Path, op.previous, op.prevMode)
	}
	return op.Fs.Remove(op.Path)
}

func (op *WriteFileOp) Description() string {
	switch {
	case op.unchanged:
		return fmt.Sprintf("Unchanged %s", op.Path)
	case op.existed:
		return fmt.Sprintf("Update %s (%d bytes)", op.Path, len(op.Content))
	default:
		return fmt.Sprintf("Create %s (%d bytes)", op.Path, len(op.Content))
	}
}

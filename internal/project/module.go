// Package project locates the Go module that owns a directory.
package project

import (
	"errors"
	"fmt"
	"io/fs"
	"path"
	"path/filepath"

	"github.com/spf13/afero"
	"golang.org/x/mod/modfile"
)

// ErrNoModule is returned when no go.mod is found above a directory.
var ErrNoModule = errors.New("go.mod not found")

// ModuleInfo contains information from go.mod
type ModuleInfo struct {
	Root      string // Directory holding go.mod
	Path      string // Module path (e.g., "github.com/user/repo")
	GoVersion string // Go version requirement (e.g., "1.25")
}

// DetectModule reads root/go.mod.
func DetectModule(fsys afero.Fs, root string) (*ModuleInfo, error) {
	modPath := filepath.Join(root, "go.mod")
	data, err := afero.ReadFile(fsys, modPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w in %s", ErrNoModule, root)
		}
		return nil, fmt.Errorf("failed to read go.mod: %w", err)
	}

	modFile, err := modfile.Parse(modPath, data, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to parse go.mod: %w", err)
	}
	if modFile.Module == nil {
		return nil, fmt.Errorf("%s has no module directive", modPath)
	}

	info := &ModuleInfo{Root: root, Path: modFile.Module.Mod.Path}
	if modFile.Go != nil {
		info.GoVersion = modFile.Go.Version
	}
	return info, nil
}

// FindModule walks up from dir to the nearest go.mod.
func FindModule(fsys afero.Fs, dir string) (*ModuleInfo, error) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return nil, err
	}
	for {
		info, err := DetectModule(fsys, dir)
		if err == nil || !errors.Is(err, ErrNoModule) {
			return info, err
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return nil, fmt.Errorf("%w above %s", ErrNoModule, dir)
		}
		dir = parent
	}
}

// ImportPath returns the import path of the package in dir.
func ImportPath(fsys afero.Fs, dir string) (string, error) {
	info, err := FindModule(fsys, dir)
	if err != nil {
		return "", err
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", err
	}
	rel, err := filepath.Rel(info.Root, abs)
	if err != nil {
		return "", err
	}
	if rel == "." {
		return info.Path, nil
	}
	return path.Join(info.Path, filepath.ToSlash(rel)), nil
}

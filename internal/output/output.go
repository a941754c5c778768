// Package output prints styled status lines for the userprompt command.
//
// Callers never touch lipgloss directly; every line goes through one of the
// helpers below so the command's output stays consistent.
package output

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

var (
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("green")).Bold(true)
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("red")).Bold(true)
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("yellow"))
	infoStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("cyan"))
	stepStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))

	mu          sync.Mutex
	out         io.Writer = os.Stdout
	verboseMode bool
)

// SetVerbose enables or disables Verbose lines.
// The root command calls this when --verbose is set.
func SetVerbose(v bool) {
	mu.Lock()
	defer mu.Unlock()
	verboseMode = v
}

// SetWriter redirects output and returns the previous writer.
func SetWriter(w io.Writer) io.Writer {
	mu.Lock()
	defer mu.Unlock()
	prev := out
	out = w
	return prev
}

// Writer returns the current destination.
func Writer() io.Writer {
	mu.Lock()
	defer mu.Unlock()
	return out
}

// Success prints a completed operation.
//
//	output.Success("Generated 3 files")
func Success(msg string) {
	emit(successStyle.Render("✔ " + msg))
}

// Error prints a failure that needs the user's attention.
func Error(msg string) {
	emit(errorStyle.Render("✘ " + msg))
}

// Warn prints a problem that did not stop the command.
func Warn(msg string) {
	emit(warnStyle.Render("! " + msg))
}

// Info prints a status update.
func Info(msg string) {
	emit(infoStyle.Render("ℹ️  " + msg))
}

// Step prints an indented sub-item in gray.
//
//	output.Info("Next steps:")
//	output.Step("go generate ./...")
func Step(msg string) {
	emit(stepStyle.Render("   " + msg))
}

// Verbose prints a debug line only in verbose mode.
func Verbose(msg string) {
	mu.Lock()
	v := verboseMode
	mu.Unlock()
	if v {
		emit(stepStyle.Render("🔍 " + msg))
	}
}

func emit(s string) {
	mu.Lock()
	defer mu.Unlock()
	fmt.Fprintln(out, s)
}

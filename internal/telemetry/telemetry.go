// Package telemetry is gitnuke's structured logging facility. It wraps
// github.com/charmbracelet/log the way the teacher's internal/output
// package wraps lipgloss for match highlighting: one small adapter that
// owns the palette, so every call site gets consistent styling without
// repeating lipgloss.Style literals.
//
// Every process run gets a short correlation id (a v4 uuid, truncated to
// eight characters for terminal width) attached to the logger so that
// diagnostics from concurrent walker workers can be traced back to one
// invocation, the way a request id threads through a server's log lines.
package telemetry

import (
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/google/uuid"
)

// Logger is gitnuke's leveled diagnostic sink. PrintErrors raises the
// level that startup/walk diagnostics are emitted at; removal errors
// are always printed regardless of PrintErrors, per the error handling
// design: removal failures must never be silent.
type Logger struct {
	base  *log.Logger
	runID string
}

// New builds a Logger writing to w (typically os.Stderr). color disables
// ANSI styling when false, mirroring the teacher's output.NoStyles/NewStyles
// split for --no-color and non-terminal output.
func New(w io.Writer, color bool, printErrors bool) *Logger {
	runID := uuid.New().String()[:8]

	opts := log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05",
		Prefix:          "gitnuke",
	}
	base := log.NewWithOptions(w, opts)

	level := log.WarnLevel
	if printErrors {
		level = log.DebugLevel
	}
	base.SetLevel(level)

	var styles *log.Styles
	if color {
		styles = log.DefaultStyles()
		styles.Keys["run"] = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
		styles.Values["run"] = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	} else {
		styles = plainStyles()
	}
	base.SetStyles(styles)

	return &Logger{base: base, runID: runID}
}

// RunID returns the per-invocation correlation id attached to every
// log line this Logger emits.
func (l *Logger) RunID() string { return l.runID }

func (l *Logger) with() *log.Logger {
	return l.base.With("run", l.runID)
}

// StartupError logs a fatal setup failure (bad --directory, unreadable
// --root, and the like). cmd/gitnuke exits non-zero after calling this.
func (l *Logger) StartupError(err error) {
	l.with().Error("startup failed", "err", err)
}

// CompileError logs a malformed or unreadable .gitignore/.gitnuke file.
// Per spec.md §7 this is never fatal: the file is treated as absent and
// the walk continues.
func (l *Logger) CompileError(err error) {
	l.with().Warn("ignore file not applied", "err", err)
}

// EntryError logs a per-entry I/O failure encountered mid-walk (a
// directory that vanished, a permission-denied stat, and so on). These
// only surface at all when --print-errors raised the level to Debug.
func (l *Logger) EntryError(err error) {
	l.with().Debug("entry skipped", "err", err)
}

// RemovalError logs a failed deletion. Unlike the other diagnostics this
// is always printed: a removal that silently failed would leave the
// user believing space was reclaimed that never was.
func (l *Logger) RemovalError(path string, err error) {
	l.with().Error("removal failed", "path", path, "err", err)
}

// GlobMatch logs a --print-glob-matches diagnostic line: which rule, from
// which file, classified path the way it did. The line carries no level
// and is printed whatever level --print-errors selected.
func (l *Logger) GlobMatch(path string, kind string, file string, pattern string) {
	l.with().Print("glob match", "path", path, "kind", kind, "file", file, "pattern", pattern)
}

// plainStyles returns a log.Styles with every lipgloss.Style left at its
// zero value, the same "no coloring" approach the teacher's
// output.NoStyles uses for --no-color / non-terminal output.
func plainStyles() *log.Styles {
	s := log.DefaultStyles()
	for lvl := range s.Levels {
		s.Levels[lvl] = lipgloss.NewStyle().SetString(s.Levels[lvl].Value())
	}
	s.Key = lipgloss.NewStyle()
	s.Value = lipgloss.NewStyle()
	s.Separator = lipgloss.NewStyle()
	s.Timestamp = lipgloss.NewStyle()
	s.Prefix = lipgloss.NewStyle()
	s.Message = lipgloss.NewStyle()
	s.Keys = map[string]lipgloss.Style{}
	s.Values = map[string]lipgloss.Style{}
	return s
}

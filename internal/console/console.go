// Package console writes the status lines of management commands.
package console

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
)

const (
	ansiSuccess = "\x1b[32;1m"
	ansiWarning = "\x1b[33;1m"
	ansiReset   = "\x1b[0m"
)

// Writer prints one message per line, styling SUCCESS and WARNING lines
// with ANSI colours when the destination is a terminal.
type Writer struct {
	out   io.Writer
	color bool
}

// New returns a Writer on out. Colours are enabled only when out is a
// terminal and NO_COLOR is unset.
func New(out io.Writer) *Writer {
	return &Writer{out: out, color: isTerminal(out) && os.Getenv("NO_COLOR") == ""}
}

// NewPlain returns a Writer that never emits escape sequences.
func NewPlain(out io.Writer) *Writer {
	return &Writer{out: out}
}

func isTerminal(out io.Writer) bool {
	f, ok := out.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// Write prints msg unstyled.
func (w *Writer) Write(msg string) {
	w.line(msg, "")
}

func (w *Writer) Writef(format string, args ...any) {
	w.line(fmt.Sprintf(format, args...), "")
}

func (w *Writer) Success(msg string) {
	w.line(msg, ansiSuccess)
}

func (w *Writer) Successf(format string, args ...any) {
	w.line(fmt.Sprintf(format, args...), ansiSuccess)
}

func (w *Writer) Warningf(format string, args ...any) {
	w.line(fmt.Sprintf(format, args...), ansiWarning)
}

func (w *Writer) line(msg, style string) {
	if w.color && style != "" {
		msg = style + msg + ansiReset
	}
	if !strings.HasSuffix(msg, "\n") {
		msg += "\n"
	}
	_, _ = io.WriteString(w.out, msg)
}

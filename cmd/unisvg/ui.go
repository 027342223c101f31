package main

import (
	"fmt"
	"io"
	"os"

	"github.com/muesli/termenv"
	"golang.org/x/term"
)

// ui writes human readable status to stderr. Colors and download
// progress are shown only on a terminal.
type ui struct {
	out *termenv.Output
	tty bool
}

func newUI(w io.Writer) *ui {
	tty := isTerminal(w)
	var opts []termenv.OutputOption
	if !tty {
		opts = append(opts, termenv.WithProfile(termenv.Ascii))
	}
	return &ui{out: termenv.NewOutput(w, opts...), tty: tty}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func (u *ui) printf(format string, args ...any) {
	fmt.Fprintf(u.out, format, args...)
}

func (u *ui) errorf(format string, args ...any) {
	fmt.Fprintln(u.out, u.paint(fmt.Sprintf(format, args...), "1"))
}

// ok and bad return the status marks.
func (u *ui) ok() string  { return u.paint("✓", "2") }
func (u *ui) bad() string { return u.paint("✗", "1") }

func (u *ui) paint(s, color string) string {
	return u.out.String(s).Foreground(u.out.Color(color)).String()
}

// progress returns the writer for download progress, or nil when stderr
// is not a terminal.
func (u *ui) progress() io.Writer {
	if !u.tty {
		return nil
	}
	return u.out
}

//go:build linux || darwin || dragonfly || freebsd || netbsd || openbsd

package terminal

import (
	"errors"
	"fmt"
	"os"

	"golang.org/x/term"
)

// ErrNotTerminal is returned when standard input or output is not a TTY.
var ErrNotTerminal = errors.New("terminal: not a terminal")

// Size returns the cell geometry of the terminal on fd.
func Size(fd int) (cols, rows int, err error) {
	cols, rows, err = term.GetSize(fd)
	if err != nil {
		return 0, 0, fmt.Errorf("terminal: get size: %w", err)
	}
	return cols, rows, nil
}

// Stdio measures the controlling terminal and puts standard input into
// raw mode. The caller passes the result to Run, which restores the mode.
func Stdio() (Terminal, error) {
	in, out := int(os.Stdin.Fd()), int(os.Stdout.Fd())
	if !term.IsTerminal(in) || !term.IsTerminal(out) {
		return Terminal{}, ErrNotTerminal
	}
	cols, rows, err := Size(out)
	if err != nil {
		return Terminal{}, err
	}
	mode, err := EnableRaw(in)
	if err != nil {
		return Terminal{}, err
	}
	return Terminal{
		Out:  os.Stdout,
		In:   NewFDSource(in),
		Cols: cols,
		Rows: rows,
		Mode: mode,
	}, nil
}

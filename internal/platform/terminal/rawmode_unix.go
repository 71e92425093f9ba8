//go:build linux || darwin || dragonfly || freebsd || netbsd || openbsd

package terminal

import (
	"fmt"
	"sync"

	"golang.org/x/sys/unix"
)

// RawMode is an acquired raw terminal mode. Restore puts the original
// settings back and is safe to call more than once.
type RawMode struct {
	fd   int
	orig unix.Termios
	once sync.Once
	err  error
}

// EnableRaw switches fd to raw input: no echo, no line buffering, no
// signal keys, no flow control, and reads that return immediately.
func EnableRaw(fd int) (*RawMode, error) {
	orig, err := unix.IoctlGetTermios(fd, ioctlReadTermios)
	if err != nil {
		return nil, fmt.Errorf("terminal: get termios: %w", err)
	}
	raw := *orig
	raw.Iflag &^= unix.IXON
	raw.Lflag &^= unix.ECHO | unix.ICANON | unix.ISIG
	raw.Cc[unix.VMIN] = 0
	raw.Cc[unix.VTIME] = 0
	if err := unix.IoctlSetTermios(fd, ioctlWriteTermios, &raw); err != nil {
		return nil, fmt.Errorf("terminal: set raw mode: %w", err)
	}
	return &RawMode{fd: fd, orig: *orig}, nil
}

// Restore reinstates the settings captured by EnableRaw.
func (m *RawMode) Restore() error {
	m.once.Do(func() {
		if err := unix.IoctlSetTermios(m.fd, ioctlWriteTermios, &m.orig); err != nil {
			m.err = fmt.Errorf("terminal: restore termios: %w", err)
		}
	})
	return m.err
}

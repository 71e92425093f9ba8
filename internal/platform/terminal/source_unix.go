//go:build linux || darwin || dragonfly || freebsd || netbsd || openbsd

package terminal

import (
	"io"

	"golang.org/x/sys/unix"
)

// FDSource reads single bytes from a file descriptor without blocking.
type FDSource struct {
	fd  int
	buf [1]byte
}

// NewFDSource wraps fd, normally standard input in raw mode.
func NewFDSource(fd int) *FDSource {
	return &FDSource{fd: fd}
}

// ReadByte returns ErrNoInput when no byte is ready and io.EOF when the
// descriptor hangs up.
func (s *FDSource) ReadByte() (byte, error) {
	fds := []unix.PollFd{{Fd: int32(s.fd), Events: unix.POLLIN}}
	n, err := unix.Poll(fds, 0)
	if err == unix.EINTR || (err == nil && n == 0) {
		return 0, ErrNoInput
	}
	if err != nil {
		return 0, err
	}
	if fds[0].Revents&unix.POLLIN == 0 {
		if fds[0].Revents&(unix.POLLHUP|unix.POLLERR) != 0 {
			return 0, io.EOF
		}
		return 0, ErrNoInput
	}
	n, err = unix.Read(s.fd, s.buf[:])
	switch {
	case err == unix.EAGAIN || err == unix.EINTR:
		return 0, ErrNoInput
	case err != nil:
		return 0, err
	case n == 0:
		return 0, io.EOF
	}
	return s.buf[0], nil
}

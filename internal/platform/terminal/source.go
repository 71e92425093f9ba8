package terminal

import (
	"bufio"
	"io"
)

// ChanSource is a non-blocking byte source fed from a blocking reader by
// a pump goroutine. It serves inputs such as SSH channels that cannot be
// switched to non-blocking mode.
type ChanSource struct {
	ch  chan byte
	err error
}

// NewChanSource starts pumping r. The pump ends when r returns an error.
func NewChanSource(r io.Reader) *ChanSource {
	s := &ChanSource{ch: make(chan byte, 256)}
	go s.pump(bufio.NewReader(r))
	return s
}

func (s *ChanSource) pump(r *bufio.Reader) {
	defer close(s.ch)
	for {
		b, err := r.ReadByte()
		if err != nil {
			return
		}
		s.ch <- b
	}
}

// ReadByte returns a pending byte, ErrNoInput when none is buffered, or
// io.EOF once the reader is exhausted.
func (s *ChanSource) ReadByte() (byte, error) {
	select {
	case b, ok := <-s.ch:
		if !ok {
			return 0, io.EOF
		}
		return b, nil
	default:
		return 0, ErrNoInput
	}
}

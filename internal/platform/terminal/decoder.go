package terminal

import (
	"errors"
	"io"

	"github.com/vovakirdan/lys/internal/core"
	"github.com/vovakirdan/lys/internal/engine"
)

// ErrNoInput is returned by a non-blocking source with nothing pending.
var ErrNoInput = errors.New("terminal: no input pending")

const (
	byteCtrlC  = 0x03
	byteEscape = 0x1b
)

// Decoder turns raw VT100 bytes into key events. Terminals report no key
// releases, so a decoded key is held for exactly one iteration and
// released at the start of the next poll. Only one key is held at a time.
type Decoder struct {
	src     io.ByteReader
	held    core.Key
	holding bool
}

// NewDecoder creates a decoder reading from a non-blocking source that
// returns ErrNoInput when empty.
func NewDecoder(src io.ByteReader) *Decoder {
	return &Decoder{src: src}
}

// Poll releases the held key, then decodes at most one key. Ctrl-C, a
// double escape or the end of input stop the loop.
func (d *Decoder) Poll(in engine.Input) error {
	if d.holding {
		d.holding = false
		if err := in.Dispatch(core.KeyUpEvent(d.held)); err != nil {
			return err
		}
	}

	key, stop, err := d.decode()
	if errors.Is(err, io.EOF) {
		in.Stop()
		return nil
	}
	if err != nil {
		return err
	}
	if stop {
		in.Stop()
		return nil
	}
	if key == 0 {
		return nil
	}
	d.held, d.holding = key, true
	return in.Dispatch(core.KeyDownEvent(key))
}

// read returns the next byte, with ok false when nothing is pending.
func (d *Decoder) read() (b byte, ok bool, err error) {
	b, err = d.src.ReadByte()
	if errors.Is(err, ErrNoInput) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	return b, true, nil
}

func (d *Decoder) decode() (key core.Key, stop bool, err error) {
	b, ok, err := d.read()
	if err != nil || !ok {
		return 0, false, err
	}
	switch {
	case b == byteCtrlC:
		return 0, true, nil
	case b == byteEscape:
		return d.decodeEscape()
	case b >= 'a' && b <= 'z':
		return core.Letter(b), false, nil
	}
	return 0, false, nil
}

func (d *Decoder) decodeEscape() (core.Key, bool, error) {
	b, ok, err := d.read()
	if err != nil || !ok {
		return 0, false, err
	}
	switch b {
	case byteEscape:
		return 0, true, nil
	case 'O':
		b, ok, err = d.read()
		if err != nil || !ok {
			return 0, false, err
		}
		if b >= 'P' && b <= 'S' {
			return core.FunctionKey(int(b-'P') + 1), false, nil
		}
		return arrow(b), false, nil
	case '[':
		b, ok, err = d.read()
		if err != nil || !ok {
			return 0, false, err
		}
		return arrow(b), false, nil
	}
	return arrow(b), false, nil
}

func arrow(b byte) core.Key {
	switch b {
	case 'A':
		return core.KeyUp
	case 'B':
		return core.KeyDown
	case 'C':
		return core.KeyRight
	case 'D':
		return core.KeyLeft
	}
	return 0
}

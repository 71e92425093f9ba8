package terminal

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/vovakirdan/lys/internal/core"
	"github.com/vovakirdan/lys/internal/engine"
	"github.com/vovakirdan/lys/internal/sim/simtest"
)

// queue is a non-blocking source over a fixed byte sequence.
type queue struct {
	data []byte
}

func (q *queue) ReadByte() (byte, error) {
	if len(q.data) == 0 {
		return 0, ErrNoInput
	}
	b := q.data[0]
	q.data = q.data[1:]
	return b, nil
}

type sink struct {
	events  []core.Event
	stopped bool
}

func (s *sink) Dispatch(ev core.Event) error {
	s.events = append(s.events, ev)
	return nil
}

func (s *sink) Resize(int, int) error { return nil }

func (s *sink) Stop() { s.stopped = true }

func frameOf(t *testing.T, width, height int, pix ...uint32) core.Frame {
	t.Helper()
	f, err := core.NewFrame(width, height)
	if err != nil {
		t.Fatalf("NewFrame() error = %v", err)
	}
	copy(f.Pix, pix)
	return f
}

func draw(t *testing.T, f core.Frame, overlays ...engine.Overlay) (*Backend, string) {
	t.Helper()
	var buf bytes.Buffer
	b := New(&buf, &queue{}, f.Width, core.CeilDiv(f.Height, 2))
	if err := b.Resize(f.Width, f.Height); err != nil {
		t.Fatalf("Resize() error = %v", err)
	}
	if err := b.Draw(f, engine.FrameInfo{Overlays: overlays}); err != nil {
		t.Fatalf("Draw() error = %v", err)
	}
	return b, buf.String()
}

func TestSizeDoublesRows(t *testing.T) {
	b := New(&bytes.Buffer{}, &queue{}, 80, 24)
	w, h := b.Size()
	if w != 80 || h != 48 {
		t.Errorf("Size() = %dx%d, expected 80x48", w, h)
	}
}

func TestFoldPairsRows(t *testing.T) {
	f := frameOf(t, 2, 4,
		0x000001, 0x000002,
		0x000003, 0x000004,
		0x000005, 0x000006,
		0xFF000007, 0x000008,
	)
	c := NewCells(2, 2)
	c.Fold(f)

	expectedFg := []uint32{1, 2, 5, 6}
	expectedBg := []uint32{3, 4, 7, 8}
	for i := range expectedFg {
		if c.Fg[i] != expectedFg[i] {
			t.Errorf("Fg[%d] = %#x, expected %#x", i, c.Fg[i], expectedFg[i])
		}
		if c.Bg[i] != expectedBg[i] {
			t.Errorf("Bg[%d] = %#x, expected %#x", i, c.Bg[i], expectedBg[i])
		}
		if c.Glyph[i] != glyphFolded {
			t.Errorf("Glyph[%d] = %q, expected folded", i, c.Glyph[i])
		}
	}
}

func TestFoldOddHeight(t *testing.T) {
	f := frameOf(t, 1, 3, 0x111111, 0x222222, 0x333333)
	c := NewCells(1, 2)
	c.Fold(f)
	if c.Fg[1] != 0x333333 || c.Bg[1] != core.ColorBlack {
		t.Errorf("last row = (%#x, %#x), expected (0x333333, black)", c.Fg[1], c.Bg[1])
	}
}

func TestDrawSingleCell(t *testing.T) {
	f := frameOf(t, 1, 2, 0x102030, 0x405060)
	_, out := draw(t, f)
	expected := "\x1b[38;2;16;32;48m\x1b[48;2;64;80;96m▀\x1b[m\x1b[H"
	if out != expected {
		t.Errorf("Draw() wrote %q, expected %q", out, expected)
	}
}

func TestDrawEmitsEscapesOnPairChange(t *testing.T) {
	tests := []struct {
		name     string
		width    int
		height   int
		pix      func(f core.Frame)
		expected int
	}{
		{
			name: "uniform", width: 3, height: 4,
			pix:      func(f core.Frame) { f.Fill(0xFF0000) },
			expected: 1,
		},
		{
			name: "last cell differs", width: 3, height: 4,
			pix: func(f core.Frame) {
				f.Fill(0xFF0000)
				f.Set(2, 3, 0x00FF00)
			},
			expected: 2,
		},
		{
			name: "same fg different bg", width: 2, height: 2,
			pix: func(f core.Frame) {
				f.Fill(0x0000FF)
				f.Set(1, 1, 0x000001)
			},
			expected: 2,
		},
		{
			name: "alternating columns", width: 4, height: 2,
			pix: func(f core.Frame) {
				for x := 0; x < 4; x++ {
					c := uint32(0xFFFFFF)
					if x%2 == 1 {
						c = 0
					}
					f.Set(x, 0, c)
					f.Set(x, 1, c)
				}
			},
			expected: 4,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := frameOf(t, tt.width, tt.height)
			tt.pix(f)
			_, out := draw(t, f)
			if got := strings.Count(out, "\x1b[38;2;"); got != tt.expected {
				t.Errorf("foreground escapes = %d, expected %d", got, tt.expected)
			}
			if got := strings.Count(out, "\x1b[48;2;"); got != tt.expected {
				t.Errorf("background escapes = %d, expected %d", got, tt.expected)
			}
			cells := tt.width * core.CeilDiv(tt.height, 2)
			if got := strings.Count(out, "▀"); got != cells {
				t.Errorf("glyphs = %d, expected %d", got, cells)
			}
			if !strings.HasSuffix(out, seqFrameEnd) {
				t.Errorf("output does not end with reset and home: %q", out)
			}
		})
	}
}

func TestDrawOverlayText(t *testing.T) {
	f := frameOf(t, 3, 4)
	f.Fill(0x808080)
	b, out := draw(t, f, engine.Overlay{X: 1, Y: 0, Text: "hi\nyo", Color: core.ColorRed})

	c := b.cells
	checks := []struct {
		idx   int
		glyph rune
	}{
		{1, 'h'}, {2, 'i'}, {4, 'y'}, {5, 'o'}, {0, glyphFolded}, {3, glyphFolded},
	}
	for _, ch := range checks {
		if c.Glyph[ch.idx] != ch.glyph {
			t.Errorf("Glyph[%d] = %q, expected %q", ch.idx, c.Glyph[ch.idx], ch.glyph)
		}
	}
	if c.Fg[1] != core.ColorRed || c.Bg[1] != core.ColorBlack {
		t.Errorf("overlay cell = (%#x, %#x), expected (red, black)", c.Fg[1], c.Bg[1])
	}
	if !strings.Contains(out, "hi") {
		t.Errorf("output %q does not contain overlay text", out)
	}
}

func TestDecoder(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []core.Event
		stop     bool
		rest     int
	}{
		{"empty", "", nil, false, 0},
		{"ctrl-c", "\x03", nil, true, 0},
		{"double escape", "\x1b\x1b", nil, true, 0},
		{"lone escape", "\x1b", nil, false, 0},
		{"letter", "q", []core.Event{core.KeyDownEvent(core.Letter('q'))}, false, 0},
		{"one key per poll", "ab", []core.Event{core.KeyDownEvent(core.KeyA)}, false, 1},
		{"uppercase ignored", "Q", nil, false, 0},
		{"digit ignored", "7", nil, false, 0},
		{"f1", "\x1bOP", []core.Event{core.KeyDownEvent(core.KeyF1)}, false, 0},
		{"f4", "\x1bOS", []core.Event{core.KeyDownEvent(core.KeyF4)}, false, 0},
		{"arrow up bare", "\x1bA", []core.Event{core.KeyDownEvent(core.KeyUp)}, false, 0},
		{"arrow down csi", "\x1b[B", []core.Event{core.KeyDownEvent(core.KeyDown)}, false, 0},
		{"arrow right ss3", "\x1bOC", []core.Event{core.KeyDownEvent(core.KeyRight)}, false, 0},
		{"arrow left csi", "\x1b[D", []core.Event{core.KeyDownEvent(core.KeyLeft)}, false, 0},
		{"unknown escape", "\x1b[Z", nil, false, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := &queue{data: []byte(tt.input)}
			s := &sink{}
			if err := NewDecoder(q).Poll(s); err != nil {
				t.Fatalf("Poll() error = %v", err)
			}
			if len(s.events) != len(tt.expected) {
				t.Fatalf("events = %v, expected %v", s.events, tt.expected)
			}
			for i := range tt.expected {
				if s.events[i] != tt.expected[i] {
					t.Errorf("event[%d] = %+v, expected %+v", i, s.events[i], tt.expected[i])
				}
			}
			if s.stopped != tt.stop {
				t.Errorf("stopped = %v, expected %v", s.stopped, tt.stop)
			}
			if len(q.data) != tt.rest {
				t.Errorf("unread bytes = %d, expected %d", len(q.data), tt.rest)
			}
		})
	}
}

func TestDecoderReleasesHeldKeyNextPoll(t *testing.T) {
	d := NewDecoder(&queue{data: []byte("\x1bA")})

	first := &sink{}
	if err := d.Poll(first); err != nil {
		t.Fatalf("Poll() error = %v", err)
	}
	if len(first.events) != 1 || first.events[0] != core.KeyDownEvent(core.KeyUp) {
		t.Fatalf("first poll = %v, expected one key-down for up", first.events)
	}

	second := &sink{}
	if err := d.Poll(second); err != nil {
		t.Fatalf("Poll() error = %v", err)
	}
	if len(second.events) != 1 || second.events[0] != core.KeyUpEvent(core.KeyUp) {
		t.Fatalf("second poll = %v, expected one key-up for up", second.events)
	}

	third := &sink{}
	if err := d.Poll(third); err != nil {
		t.Fatalf("Poll() error = %v", err)
	}
	if len(third.events) != 0 {
		t.Errorf("third poll = %v, expected no events", third.events)
	}
}

func TestDecoderStopsAtEndOfInput(t *testing.T) {
	s := &sink{}
	if err := NewDecoder(bytes.NewReader(nil)).Poll(s); err != nil {
		t.Fatalf("Poll() error = %v", err)
	}
	if !s.stopped {
		t.Error("Poll() at end of input did not stop")
	}
}

func TestChanSource(t *testing.T) {
	s := NewChanSource(strings.NewReader("x"))
	deadline := time.Now().Add(time.Second)
	for {
		b, err := s.ReadByte()
		if err == nil {
			if b != 'x' {
				t.Fatalf("ReadByte() = %q, expected 'x'", b)
			}
			break
		}
		if !errors.Is(err, ErrNoInput) {
			t.Fatalf("ReadByte() error = %v, expected byte or ErrNoInput", err)
		}
		if time.Now().After(deadline) {
			t.Fatal("ReadByte() never returned the pumped byte")
		}
		time.Sleep(time.Millisecond)
	}
	for {
		_, err := s.ReadByte()
		if errors.Is(err, ErrNoInput) && time.Now().Before(deadline) {
			time.Sleep(time.Millisecond)
			continue
		}
		if !errors.Is(err, io.EOF) {
			t.Fatalf("ReadByte() after pump end = %v, expected EOF", err)
		}
		break
	}
}

// fakeMode records restores and what had been written at that point.
type fakeMode struct {
	out      *bytes.Buffer
	restores int
	closed   bool
}

func (m *fakeMode) Restore() error {
	m.restores++
	m.closed = strings.HasSuffix(m.out.String(), seqClose)
	return nil
}

func runConfig() engine.Config {
	return engine.Config{MaxFPS: 60, Clock: engine.NewManualClock(time.Unix(0, 0))}
}

func TestRunStopsOnCtrlC(t *testing.T) {
	var out bytes.Buffer
	mode := &fakeMode{out: &out}
	rt := simtest.New()
	term := Terminal{Out: &out, In: &queue{data: []byte{'a', 0x03, 'b'}}, Cols: 4, Rows: 3, Mode: mode}

	iterations := 0
	h := engine.HandlerFunc(func(_ *engine.Context, ev core.Lifecycle) {
		if ev == core.LifecycleLoopIteration {
			iterations++
		}
	})
	if err := Run(context.Background(), rt, term, h, runConfig()); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if iterations != 2 {
		t.Errorf("iterations = %d, expected 2", iterations)
	}
	expected := []core.Event{core.KeyDownEvent(core.KeyA), core.KeyUpEvent(core.KeyA)}
	if len(rt.Inputs) != len(expected) {
		t.Fatalf("inputs = %v, expected %v", rt.Inputs, expected)
	}
	for i := range expected {
		if rt.Inputs[i] != expected[i] {
			t.Errorf("input[%d] = %+v, expected %+v", i, rt.Inputs[i], expected[i])
		}
	}
	if mode.restores != 1 {
		t.Errorf("restores = %d, expected 1", mode.restores)
	}
	if !mode.closed {
		t.Error("mode restored before the close sequence was written")
	}
	if !strings.HasPrefix(out.String(), seqOpen) {
		t.Errorf("output does not start with the open sequence")
	}
	if rt.Live() != 0 {
		t.Errorf("rt.Live() = %d, expected 0", rt.Live())
	}
	if rt.Count("init") != 1 || rt.Count("resize") != 1 {
		t.Errorf("init/resize = %d/%d, expected 1/1", rt.Count("init"), rt.Count("resize"))
	}
}

func TestRunRestoresModeOnPanic(t *testing.T) {
	var out bytes.Buffer
	mode := &fakeMode{out: &out}
	rt := simtest.New()
	term := Terminal{Out: &out, In: &queue{}, Cols: 2, Rows: 2, Mode: mode}
	h := engine.HandlerFunc(func(_ *engine.Context, ev core.Lifecycle) {
		if ev == core.LifecycleLoopIteration {
			panic("boom")
		}
	})

	func() {
		defer func() {
			if r := recover(); r == nil {
				t.Error("Run() did not propagate the panic")
			}
		}()
		_ = Run(context.Background(), rt, term, h, runConfig())
	}()

	if mode.restores != 1 {
		t.Errorf("restores = %d, expected 1", mode.restores)
	}
	if rt.Live() != 0 {
		t.Errorf("rt.Live() = %d, expected 0", rt.Live())
	}
}

func TestRunRejectsEmptyTerminal(t *testing.T) {
	var out bytes.Buffer
	mode := &fakeMode{out: &out}
	term := Terminal{Out: &out, In: &queue{}, Cols: 0, Rows: 24, Mode: mode}
	err := Run(context.Background(), simtest.New(), term, nil, runConfig())
	if !errors.Is(err, engine.ErrInvalidGeometry) {
		t.Errorf("Run() error = %v, expected %v", err, engine.ErrInvalidGeometry)
	}
	if mode.restores != 1 {
		t.Errorf("restores = %d, expected 1", mode.restores)
	}
}

func TestRunPropagatesTransitionFault(t *testing.T) {
	var out bytes.Buffer
	mode := &fakeMode{out: &out}
	rt := simtest.New()
	rt.FailOn = "render"
	term := Terminal{Out: &out, In: &queue{}, Cols: 2, Rows: 2, Mode: mode}
	err := Run(context.Background(), rt, term, nil, runConfig())
	if !errors.Is(err, simtest.ErrInjected) {
		t.Errorf("Run() error = %v, expected %v", err, simtest.ErrInjected)
	}
	if mode.restores != 1 || !mode.closed {
		t.Errorf("restores = %d closed = %v, expected 1 true", mode.restores, mode.closed)
	}
	if rt.Live() != 0 {
		t.Errorf("rt.Live() = %d, expected 0", rt.Live())
	}
}

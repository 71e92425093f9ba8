package pixel

import (
	"context"
	"errors"
	"image/color"
	"testing"
	"time"

	"github.com/vovakirdan/lys/internal/core"
	"github.com/vovakirdan/lys/internal/engine"
	"github.com/vovakirdan/lys/internal/sim/simtest"
)

type label struct {
	x, y int
	text string
	c    color.RGBA
}

type fakeSurface struct {
	width, height int
	resizes       [][2]int
	blits         [][]color.RGBA
	labels        []label
	presents      int
	closed        int
	queue         [][]NativeEvent
}

func (s *fakeSurface) Size() (int, int) { return s.width, s.height }

func (s *fakeSurface) Resize(width, height int) error {
	s.width, s.height = width, height
	s.resizes = append(s.resizes, [2]int{width, height})
	return nil
}

func (s *fakeSurface) Blit(pix []color.RGBA) error {
	s.blits = append(s.blits, append([]color.RGBA(nil), pix...))
	return nil
}

func (s *fakeSurface) Text(x, y int, text string, c color.RGBA) {
	s.labels = append(s.labels, label{x, y, text, c})
}

func (s *fakeSurface) Present() error {
	s.presents++
	return nil
}

func (s *fakeSurface) Events(buf []NativeEvent) []NativeEvent {
	if len(s.queue) == 0 {
		return buf
	}
	buf = append(buf, s.queue[0]...)
	s.queue = s.queue[1:]
	return buf
}

func (s *fakeSurface) Close() error {
	s.closed++
	return nil
}

type sink struct {
	events  []core.Event
	resizes [][2]int
	stopped bool
}

func (s *sink) Dispatch(ev core.Event) error {
	s.events = append(s.events, ev)
	return nil
}

func (s *sink) Resize(width, height int) error {
	s.resizes = append(s.resizes, [2]int{width, height})
	return nil
}

func (s *sink) Stop() { s.stopped = true }

func TestRGBA(t *testing.T) {
	got := RGBA(0xAB102030)
	expected := color.RGBA{R: 0x10, G: 0x20, B: 0x30, A: 0xFF}
	if got != expected {
		t.Errorf("RGBA() = %v, expected %v", got, expected)
	}
}

func TestDrawBlitsAndLabels(t *testing.T) {
	s := &fakeSurface{width: 2, height: 1}
	b := New(s)
	if err := b.Resize(2, 1); err != nil {
		t.Fatalf("Resize() error = %v", err)
	}
	f, _ := core.NewFrame(2, 1)
	f.Pix[0], f.Pix[1] = 0xFF0000, 0x0000FF

	info := engine.FrameInfo{
		RenderLatency: 1500 * time.Microsecond,
		Overlays:      []engine.Overlay{{X: 3, Y: 40, Text: "fps", Color: core.ColorWhite}},
	}
	if err := b.Draw(f, info); err != nil {
		t.Fatalf("Draw() error = %v", err)
	}

	if len(s.blits) != 1 {
		t.Fatalf("blits = %d, expected 1", len(s.blits))
	}
	if s.blits[0][0] != (color.RGBA{R: 0xFF, A: 0xFF}) || s.blits[0][1] != (color.RGBA{B: 0xFF, A: 0xFF}) {
		t.Errorf("blit = %v, expected red then blue", s.blits[0])
	}
	expected := []label{
		{LabelX, LabelY, "render: 1.50 ms", color.RGBA{A: 0xFF}},
		{3, 40, "fps", color.RGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF}},
	}
	if len(s.labels) != len(expected) {
		t.Fatalf("labels = %v, expected %v", s.labels, expected)
	}
	for i := range expected {
		if s.labels[i] != expected[i] {
			t.Errorf("label[%d] = %+v, expected %+v", i, s.labels[i], expected[i])
		}
	}
	if s.presents != 1 {
		t.Errorf("presents = %d, expected 1", s.presents)
	}
}

func TestDrawRejectsMismatchedFrame(t *testing.T) {
	s := &fakeSurface{width: 4, height: 4}
	b := New(s)
	if err := b.Resize(4, 4); err != nil {
		t.Fatalf("Resize() error = %v", err)
	}
	f, _ := core.NewFrame(2, 2)
	if err := b.Draw(f, engine.FrameInfo{}); err == nil {
		t.Error("Draw() with a 2x2 frame on a 4x4 surface returned nil error")
	}
}

func TestTranslateKey(t *testing.T) {
	tests := []struct {
		code     int32
		expected core.Key
		ok       bool
	}{
		{NativeKeyA, core.KeyA, true},
		{NativeKeyZ, core.KeyZ, true},
		{NativeKeyF1, core.KeyF1, true},
		{NativeKeyF12, core.KeyF12, true},
		{NativeKeyUp, core.KeyUp, true},
		{NativeKeyDown, core.KeyDown, true},
		{NativeKeyLeft, core.KeyLeft, true},
		{NativeKeyRight, core.KeyRight, true},
		{NativeKeyEnter, core.KeyReturn, true},
		{NativeKeySpace, core.KeySpace, true},
		{NativeKeyDelete, core.KeyDelete, true},
		{'5', core.Key('5'), true},
		{'[', core.Key('['), true},
		{NativeKeyLShift, core.KeyLShift, true},
		{320, 0, false},
		{0, 0, false},
	}
	for _, tt := range tests {
		got, ok := TranslateKey(tt.code)
		if got != tt.expected || ok != tt.ok {
			t.Errorf("TranslateKey(%d) = (%v, %v), expected (%v, %v)", tt.code, got, ok, tt.expected, tt.ok)
		}
	}
}

func TestPollTranslatesEvents(t *testing.T) {
	s := &fakeSurface{width: 8, height: 8}
	s.queue = [][]NativeEvent{{
		{Kind: NativeKeyDown, Code: NativeKeyA},
		{Kind: NativeKeyUp, Code: NativeKeyA},
		{Kind: NativeKeyDown, Code: 320},
		{Kind: NativeMotion, Buttons: core.ButtonBit(core.ButtonRight), X: 4, Y: 5},
		{Kind: NativeButtonDown, Button: core.ButtonMiddle, X: 1, Y: 2},
		{Kind: NativeButtonUp, Button: core.ButtonMiddle, X: 1, Y: 2},
		{Kind: NativeWheel, DX: 1, DY: -2},
		{Kind: NativeResize, Width: 640, Height: 480},
	}}
	in := &sink{}
	if err := New(s).Poll(in); err != nil {
		t.Fatalf("Poll() error = %v", err)
	}

	expected := []core.Event{
		core.KeyDownEvent(core.KeyA),
		core.KeyUpEvent(core.KeyA),
		{Kind: core.EventPointerMove, Buttons: 4, X: 4, Y: 5},
		{Kind: core.EventPointerButton, Buttons: 2, X: 1, Y: 2},
		{Kind: core.EventPointerButton, Buttons: 2, X: 1, Y: 2},
		{Kind: core.EventWheel, DX: 1, DY: -2},
	}
	if len(in.events) != len(expected) {
		t.Fatalf("events = %v, expected %v", in.events, expected)
	}
	for i := range expected {
		if in.events[i] != expected[i] {
			t.Errorf("event[%d] = %+v, expected %+v", i, in.events[i], expected[i])
		}
	}
	if len(in.resizes) != 1 || in.resizes[0] != [2]int{640, 480} {
		t.Errorf("resizes = %v, expected [[640 480]]", in.resizes)
	}
	if in.stopped {
		t.Error("Poll() stopped without a quit request")
	}
}

func TestPollStops(t *testing.T) {
	tests := []struct {
		name string
		ev   NativeEvent
	}{
		{"quit", NativeEvent{Kind: NativeQuit}},
		{"escape down", NativeEvent{Kind: NativeKeyDown, Code: NativeKeyEscape}},
		{"escape up", NativeEvent{Kind: NativeKeyUp, Code: NativeKeyEscape}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := &fakeSurface{queue: [][]NativeEvent{{tt.ev}}}
			in := &sink{}
			if err := New(s).Poll(in); err != nil {
				t.Fatalf("Poll() error = %v", err)
			}
			if !in.stopped {
				t.Error("Poll() did not stop")
			}
			if len(in.events) != 0 {
				t.Errorf("events = %v, expected none", in.events)
			}
		})
	}
}

func runConfig() engine.Config {
	return engine.Config{MaxFPS: 60, Clock: engine.NewManualClock(time.Unix(0, 0))}
}

func TestRunQuitOnFirstIteration(t *testing.T) {
	rt := simtest.New()
	s := &fakeSurface{width: 32, height: 24, queue: [][]NativeEvent{{{Kind: NativeQuit}}}}
	ends := 0
	h := engine.HandlerFunc(func(_ *engine.Context, ev core.Lifecycle) {
		if ev == core.LifecycleLoopEnd {
			ends++
		}
	})
	if err := engine.New(rt, New(s), h, runConfig()).Run(context.Background()); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if ends != 1 {
		t.Errorf("LoopEnd delivered %d times, expected 1", ends)
	}
	if rt.Live() != 0 {
		t.Errorf("rt.Live() = %d, expected 0", rt.Live())
	}
	if s.closed != 1 || s.presents != 1 {
		t.Errorf("closed/presents = %d/%d, expected 1/1", s.closed, s.presents)
	}
}

func TestRunFollowsWindowResize(t *testing.T) {
	rt := simtest.New()
	s := &fakeSurface{width: 4, height: 3}
	s.queue = [][]NativeEvent{
		{{Kind: NativeResize, Width: 6, Height: 5}},
		{{Kind: NativeQuit}},
	}
	if err := engine.New(rt, New(s), nil, runConfig()).Run(context.Background()); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	expected := [][2]int{{4, 3}, {6, 5}}
	if len(s.resizes) != len(expected) {
		t.Fatalf("surface resizes = %v, expected %v", s.resizes, expected)
	}
	for i := range expected {
		if s.resizes[i] != expected[i] {
			t.Errorf("surface resize[%d] = %v, expected %v", i, s.resizes[i], expected[i])
		}
	}
	if n := len(s.blits[1]); n != 30 {
		t.Errorf("second blit = %d pixels, expected 30", n)
	}
}

func TestRunPropagatesSurfaceFailure(t *testing.T) {
	rt := simtest.New()
	s := &failingSurface{fakeSurface: fakeSurface{width: 2, height: 2}}
	err := engine.New(rt, New(s), nil, runConfig()).Run(context.Background())
	if !errors.Is(err, errPresent) {
		t.Errorf("Run() error = %v, expected %v", err, errPresent)
	}
	if rt.Live() != 0 || s.closed != 1 {
		t.Errorf("live/closed = %d/%d, expected 0/1", rt.Live(), s.closed)
	}
}

var errPresent = errors.New("present failed")

type failingSurface struct {
	fakeSurface
}

func (s *failingSurface) Present() error { return errPresent }

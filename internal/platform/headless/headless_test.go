package headless_test

import (
	"context"
	"testing"
	"time"

	"github.com/vovakirdan/lys/internal/core"
	"github.com/vovakirdan/lys/internal/engine"
	"github.com/vovakirdan/lys/internal/hud"
	"github.com/vovakirdan/lys/internal/platform/headless"
	"github.com/vovakirdan/lys/internal/sim/simtest"
)

func TestRunRecordsEveryFrame(t *testing.T) {
	rt := simtest.New()
	b := headless.New(12, 6)
	h := &hud.HUD{Limit: 5}
	cfg := engine.Config{MaxFPS: -1, Clock: engine.NewManualClock(time.Unix(0, 0))}

	if err := engine.New(rt, b, h, cfg).Run(context.Background()); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	samples := b.Samples()
	if len(samples) != 5 {
		t.Fatalf("len(Samples()) = %d, expected 5", len(samples))
	}
	for i, s := range samples {
		if s.Iteration != uint64(i) {
			t.Errorf("Samples()[%d].Iteration = %d, expected %d", i, s.Iteration, i)
		}
	}
	if !b.Closed() {
		t.Error("Closed() = false, expected true")
	}
	if rt.Live() != 0 {
		t.Errorf("rt.Live() = %d, expected 0", rt.Live())
	}
}

func TestDrawRejectsMismatchedFrame(t *testing.T) {
	b := headless.New(4, 4)
	f, err := core.NewFrame(4, 3)
	if err != nil {
		t.Fatalf("NewFrame() error = %v", err)
	}
	if err := b.Draw(f, engine.FrameInfo{}); err == nil {
		t.Fatal("Draw() error = nil, expected shape error")
	}
	if len(b.Samples()) != 0 {
		t.Errorf("len(Samples()) = %d, expected 0", len(b.Samples()))
	}
}

func TestChecksumTracksPixels(t *testing.T) {
	b := headless.New(2, 1)
	a, err := core.NewFrame(2, 1)
	if err != nil {
		t.Fatalf("NewFrame() error = %v", err)
	}
	a.Pix[0] = 0x010203

	if err := b.Draw(a, engine.FrameInfo{}); err != nil {
		t.Fatalf("Draw() error = %v", err)
	}
	first := b.Checksum()

	a.Pix[0] = 0xFF010203
	if err := b.Draw(a, engine.FrameInfo{}); err != nil {
		t.Fatalf("Draw() error = %v", err)
	}
	if b.Checksum() != first {
		t.Errorf("Checksum() = %#x, expected %#x with alpha ignored", b.Checksum(), first)
	}

	a.Pix[1] = 0x000001
	if err := b.Draw(a, engine.FrameInfo{}); err != nil {
		t.Fatalf("Draw() error = %v", err)
	}
	if b.Checksum() == first {
		t.Error("Checksum() unchanged after pixel change")
	}
}

func TestMilliseconds(t *testing.T) {
	got := headless.Milliseconds([]headless.Sample{
		{Render: 1500 * time.Microsecond},
		{Render: 2 * time.Millisecond},
	})
	expected := []float64{1.5, 2}
	for i := range expected {
		if got[i] != expected[i] {
			t.Errorf("Milliseconds()[%d] = %v, expected %v", i, got[i], expected[i])
		}
	}
}

package main

import (
	"errors"
	"testing"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/lys/internal/config"
)

func TestSummarize(t *testing.T) {
	ms := make([]float64, 100)
	for i := range ms {
		ms[i] = float64(100 - i)
	}
	s := summarize(ms)
	expected := stats{min: 1, mean: 50.5, p95: 96, max: 100}
	if s != expected {
		t.Errorf("summarize() = %+v, expected %+v", s, expected)
	}
}

func TestSimArg(t *testing.T) {
	cfg = config.Default()

	if got := simArg(nil); got != cfg.DefaultSim {
		t.Errorf("simArg(nil) = %q, expected %q", got, cfg.DefaultSim)
	}
	if got := simArg([]string{"life"}); got != "life" {
		t.Errorf("simArg([life]) = %q, expected %q", got, "life")
	}
}

func newSizeCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "test"}
	cmd.Flags().IntVarP(&flagWidth, "width", "w", 0, "")
	cmd.Flags().IntVarP(&flagHeight, "height", "h", 0, "")
	return cmd
}

func TestWindowSize(t *testing.T) {
	cfg = config.Default()

	tests := []struct {
		name    string
		args    []string
		width   int
		height  int
		wantErr bool
	}{
		{"defaults", nil, cfg.Pixel.Width, cfg.Pixel.Height, false},
		{"both", []string{"-w", "640", "-h", "480"}, 640, 480, false},
		{"width only", []string{"--width", "320"}, 320, cfg.Pixel.Height, false},
		{"zero width", []string{"-w", "0"}, 0, 0, true},
		{"negative height", []string{"--height=-5"}, 0, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := newSizeCmd()
			if err := cmd.ParseFlags(tt.args); err != nil {
				t.Fatalf("ParseFlags(%v) error = %v", tt.args, err)
			}
			w, h, err := windowSize(cmd)
			if tt.wantErr {
				if !errors.Is(err, config.ErrInvalid) {
					t.Errorf("windowSize() error = %v, expected %v", err, config.ErrInvalid)
				}
				return
			}
			if err != nil {
				t.Fatalf("windowSize() error = %v", err)
			}
			if w != tt.width || h != tt.height {
				t.Errorf("windowSize() = %dx%d, expected %dx%d", w, h, tt.width, tt.height)
			}
		})
	}
}

func TestRunRejectsExcessArgs(t *testing.T) {
	if err := runCmd.Args(runCmd, []string{"plasma", "extra"}); err == nil {
		t.Error("runCmd.Args() error = nil, expected excess argument error")
	}
	if err := termCmd.Args(termCmd, []string{"plasma", "extra"}); err == nil {
		t.Error("termCmd.Args() error = nil, expected excess argument error")
	}
	if err := runCmd.Args(runCmd, []string{"plasma"}); err != nil {
		t.Errorf("runCmd.Args() error = %v, expected nil", err)
	}
}

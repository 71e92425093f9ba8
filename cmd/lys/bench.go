package main

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/lys/internal/engine"
	"github.com/vovakirdan/lys/internal/hud"
	"github.com/vovakirdan/lys/internal/platform/headless"
	"github.com/vovakirdan/lys/internal/registry"
)

var flagFrames int

var benchCmd = &cobra.Command{
	Use:   "bench [sim]",
	Short: "Measure render latency without presenting",
	Long: `Run the simulation headlessly with no frame rate cap and report the
render latency of every frame as a plot and summary statistics.

Examples:
  lys bench
  lys bench life --frames 1000 -w 512 -h 512`,
	Args: cobra.MaximumNArgs(1),
	Run:  runBench,
}

func init() {
	benchCmd.Flags().IntVar(&flagFrames, "frames", 300, "Number of frames to render")
	benchCmd.Flags().IntVarP(&flagWidth, "width", "w", 0, "Frame width in pixels (default from config)")
	benchCmd.Flags().IntVarP(&flagHeight, "height", "h", 0, "Frame height in pixels (default from config)")
}

func runBench(cmd *cobra.Command, args []string) {
	if flagFrames <= 0 {
		exitOnError(fmt.Errorf("--frames must be positive, got %d", flagFrames))
	}
	width, height, err := windowSize(cmd)
	exitOnError(err)

	id := simArg(args)
	rt, err := registry.Create(id)
	exitOnError(err)

	b := headless.New(width, height)
	h := &hud.HUD{Limit: uint64(flagFrames)}
	loop := engine.New(rt, b, h, engine.Config{
		MaxFPS: -1,
		Logger: logger.With("sim", id),
	})

	start := time.Now()
	exitOnError(loop.Run(context.Background()))
	wall := time.Since(start)

	ms := headless.Milliseconds(b.Samples())
	if len(ms) == 0 {
		fmt.Println("No frames rendered.")
		return
	}

	fmt.Println(asciigraph.Plot(ms,
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.Caption(fmt.Sprintf("%s render latency (ms), %dx%d", id, width, height)),
	))
	fmt.Println()

	s := summarize(ms)
	fmt.Printf("  frames   %d in %v (%.1f fps)\n", len(ms), wall.Round(time.Millisecond), float64(len(ms))/wall.Seconds())
	fmt.Printf("  render   min %.3f  mean %.3f  p95 %.3f  max %.3f ms\n", s.min, s.mean, s.p95, s.max)
	fmt.Printf("  checksum %08x\n", b.Checksum())
}

type stats struct {
	min, mean, p95, max float64
}

func summarize(ms []float64) stats {
	sorted := slices.Clone(ms)
	slices.Sort(sorted)

	var sum float64
	for _, v := range sorted {
		sum += v
	}
	return stats{
		min:  sorted[0],
		mean: sum / float64(len(sorted)),
		p95:  sorted[(len(sorted)*95)/100],
		max:  sorted[len(sorted)-1],
	}
}

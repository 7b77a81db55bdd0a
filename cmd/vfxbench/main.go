// Command vfxbench runs the effect engine headless at a fixed step against
// a trigger script and writes per-frame telemetry.
//
// Usage:
//
//	go run ./cmd/vfxbench --script bench.yaml --output out/
//	go run ./cmd/vfxbench --effects hit,fire --frames 600 --every 30
//
// Without --script or --effects every registered effect is triggered in
// turn at the surface center.
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/gonewx/combatfx/pkg/config"
	"github.com/gonewx/combatfx/pkg/game"
	"github.com/gonewx/combatfx/pkg/surface"
	"github.com/gonewx/combatfx/pkg/telemetry"
)

// flushEvery 每隔多少帧把遥测行写入 frames.csv
const flushEvery = 120

// options 命令行参数
type options struct {
	configPath string
	scriptPath string
	effectList string
	frames     int
	every      int
	seed       uint64
	outputDir  string
}

func main() {
	var opts options
	flag.StringVar(&opts.configPath, "config", "", "Engine config YAML file (empty = defaults)")
	flag.StringVar(&opts.scriptPath, "script", "", "Trigger script YAML file")
	flag.StringVar(&opts.effectList, "effects", "", "Comma separated effects to trigger round-robin")
	flag.IntVar(&opts.frames, "frames", 600, "Number of frames to run (ignored with --script)")
	flag.IntVar(&opts.every, "every", 30, "Ticks between round-robin triggers")
	flag.Uint64Var(&opts.seed, "seed", 0, "RNG seed override (0 = keep config)")
	flag.StringVar(&opts.outputDir, "output", "", "Output directory for frames.csv and summary.csv")
	verbose := flag.Bool("verbose", false, "Enable verbose logging (default off)")
	flag.Parse()

	if !*verbose {
		log.SetOutput(io.Discard)
	}

	// 不依赖 log（非 verbose 时 log 输出被丢弃）
	if err := run(opts, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "vfxbench: %v\n", err)
		os.Exit(1)
	}
}

// run executes one benchmark. The output directory is closed on every
// return path.
func run(opts options, w io.Writer) (err error) {
	cfg := config.DefaultEngineConfig()
	if opts.configPath != "" {
		loaded, err := config.LoadEngineConfig(opts.configPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}
	if opts.seed != 0 {
		cfg.Seed = opts.seed
	}

	collector := telemetry.NewCollector()
	manager, err := game.NewEffectManagerFromConfig(cfg,
		game.WithSurfaceFactory(surface.Factory()),
		game.WithObserver(collector),
	)
	if err != nil {
		return fmt.Errorf("failed to create effect manager: %w", err)
	}
	defer manager.Teardown()

	script, err := buildScript(manager, opts.scriptPath, opts.effectList, opts.frames, opts.every, cfg)
	if err != nil {
		return err
	}
	for _, name := range script.Effects() {
		if _, ok := manager.Registry().Lookup(name); !ok {
			fmt.Fprintf(os.Stderr, "warning: effect %q is not registered\n", name)
		}
	}

	output, err := telemetry.NewOutputManager(opts.outputDir)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := output.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("closing output: %w", cerr)
		}
	}()
	if err := output.WriteConfig(cfg); err != nil {
		return err
	}

	driver := &game.ManualDriver{}
	if !manager.Initialize(game.FixedContainer{Width: cfg.Width, Height: cfg.Height}) {
		return fmt.Errorf("failed to initialize effect manager at %dx%d", cfg.Width, cfg.Height)
	}
	manager.Attach(driver)

	start := time.Now()
	for tick := 0; tick < script.Frames; tick++ {
		for _, t := range script.Due(tick) {
			manager.TriggerEffect(t.Effect, t.X, t.Y)
		}
		driver.Step()

		if (tick+1)%flushEvery == 0 {
			if err := output.WriteFrames(collector.Flush()); err != nil {
				return err
			}
		}
	}
	elapsed := time.Since(start)

	if err := output.WriteFrames(collector.FlushAll()); err != nil {
		return err
	}
	summary := telemetry.Summarize(collector.Frames())
	if err := output.WriteSummary(summary); err != nil {
		return err
	}

	printSummary(w, summary, collector, elapsed)
	if dir := output.Dir(); dir != "" {
		fmt.Fprintf(w, "\nResults written to %s\n", dir)
	}
	return nil
}

// buildScript picks the run script: a file, an explicit effect list, or
// every registered effect.
func buildScript(m *game.EffectManager, path, list string, frames, every int, cfg *config.EngineConfig) (*Script, error) {
	if path != "" {
		return LoadScript(path)
	}

	var names []string
	for _, n := range strings.Split(list, ",") {
		if n = strings.TrimSpace(n); n != "" {
			names = append(names, n)
		}
	}
	if len(names) == 0 {
		names = m.Registry().Names()
	}

	s := RoundRobin(names, frames, every, float64(cfg.Width)/2, float64(cfg.Height)/2)
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

func printSummary(w io.Writer, s telemetry.Summary, c *telemetry.Collector, elapsed time.Duration) {
	fmt.Fprintf(w, "Frames:         %d (%s, %.1f µs/frame)\n", s.Frames, elapsed.Round(time.Millisecond),
		float64(elapsed.Microseconds())/float64(max(1, s.Frames)))
	fmt.Fprintf(w, "Live particles: mean %.1f  stddev %.1f  p95 %.0f  max %.0f\n",
		s.LiveMean, s.LiveStdDev, s.LiveP95, s.LiveMax)
	fmt.Fprintf(w, "Spawned:        %d  culled %d  peak pending bursts %d\n",
		s.TotalSpawned, s.TotalCulled, s.PeakPending)
	fmt.Fprintf(w, "Triggers:       %d  unknown %d  missing glyph draws %d\n",
		s.TotalTriggers, s.TotalUnknown, s.TotalMissing)

	counts := c.TriggerCounts()
	names := make([]string, 0, len(counts))
	for n := range counts {
		names = append(names, n)
	}
	sort.Strings(names)
	for _, n := range names {
		fmt.Fprintf(w, "  %-14s %d\n", n, counts[n])
	}

	if missing := c.MissingGlyphs(); len(missing) > 0 {
		keys := make([]string, 0, len(missing))
		for k := range missing {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		fmt.Fprintf(w, "Missing glyphs: %s\n", strings.Join(keys, ", "))
	}
}

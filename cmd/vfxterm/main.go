// Command vfxterm plays combat effects in a terminal.
//
// Usage:
//
//	go run ./cmd/vfxterm [--config data/engine.yaml] [--effect hit]
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/gonewx/combatfx/pkg/config"
)

func main() {
	configPath := flag.String("config", "", "Engine config YAML file (empty = defaults)")
	effect := flag.String("effect", "", "Start with specific effect name")
	logPath := flag.String("log", "", "Write logs to this file (terminal output is taken by the screen)")
	flag.Parse()

	log.SetOutput(io.Discard)
	if *logPath != "" {
		f, err := os.Create(*logPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to open log file: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		log.SetOutput(f)
	}

	cfg := config.DefaultEngineConfig()
	if *configPath != "" {
		loaded, err := config.LoadEngineConfig(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
			os.Exit(1)
		}
		cfg = loaded
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize: %v\n", err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize: %v\n", err)
		os.Exit(1)
	}
	screen.EnableMouse()

	term, err := NewTerm(screen, cfg)
	if err != nil {
		screen.Fini()
		fmt.Fprintf(os.Stderr, "Failed to initialize: %v\n", err)
		os.Exit(1)
	}
	if *effect != "" && !term.SelectName(*effect) {
		log.Printf("[Term] Warning: effect %q not found", *effect)
	}
	term.SpawnCenter()

	run(screen, term, cfg.FrameInterval())

	term.Close()
	screen.Fini()
}

func run(screen tcell.Screen, term *Term, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	eventChan := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return
			}
			eventChan <- ev
		}
	}()

	for {
		select {
		case ev := <-eventChan:
			if !term.HandleEvent(ev) {
				return
			}
		case <-ticker.C:
			term.Step()
		}
	}
}

package main

import (
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

// Trigger fires Effect at (X, Y) on tick Tick, then every Every ticks until
// Until (inclusive, 0 = end of run).
type Trigger struct {
	Tick   int     `yaml:"tick"`
	Effect string  `yaml:"effect"`
	X      float64 `yaml:"x"`
	Y      float64 `yaml:"y"`
	Every  int     `yaml:"every,omitempty"`
	Until  int     `yaml:"until,omitempty"`
}

// Script is a benchmark run description.
//
// Example:
//
//	frames: 600
//	triggers:
//	  - {tick: 0, effect: hit, x: 400, y: 300}
//	  - {tick: 10, effect: shadow, x: 200, y: 200, every: 60}
type Script struct {
	Frames   int       `yaml:"frames"`
	Triggers []Trigger `yaml:"triggers"`
}

// Validate checks the script for values the runner cannot use.
func (s *Script) Validate() error {
	if s.Frames <= 0 {
		return fmt.Errorf("frames must be positive, got %d", s.Frames)
	}
	for i, t := range s.Triggers {
		if t.Effect == "" {
			return fmt.Errorf("triggers[%d]: effect is empty", i)
		}
		if t.Tick < 0 || t.Every < 0 || t.Until < 0 {
			return fmt.Errorf("triggers[%d]: tick, every and until must not be negative", i)
		}
		if t.Until > 0 && t.Until < t.Tick {
			return fmt.Errorf("triggers[%d]: until %d is before tick %d", i, t.Until, t.Tick)
		}
	}
	return nil
}

// ParseScript parses a YAML script.
func ParseScript(data []byte) (*Script, error) {
	var s Script
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("failed to parse script YAML: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// LoadScript reads a script file from disk.
func LoadScript(path string) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read script %s: %w", path, err)
	}
	s, err := ParseScript(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// RoundRobin builds a script that triggers names one after another at
// (x, y), one every `every` ticks.
func RoundRobin(names []string, frames, every int, x, y float64) *Script {
	if every <= 0 {
		every = 1
	}
	s := &Script{Frames: frames}
	if len(names) == 0 {
		return s
	}
	for tick, i := 0, 0; tick < frames; tick, i = tick+every, i+1 {
		s.Triggers = append(s.Triggers, Trigger{
			Tick:   tick,
			Effect: names[i%len(names)],
			X:      x,
			Y:      y,
		})
	}
	return s
}

// Due returns the triggers that fire on tick, in script order.
func (s *Script) Due(tick int) []Trigger {
	var due []Trigger
	for _, t := range s.Triggers {
		if t.fires(tick) {
			due = append(due, t)
		}
	}
	return due
}

func (t Trigger) fires(tick int) bool {
	if tick < t.Tick {
		return false
	}
	if t.Until > 0 && tick > t.Until {
		return false
	}
	if tick == t.Tick {
		return true
	}
	return t.Every > 0 && (tick-t.Tick)%t.Every == 0
}

// Effects returns the distinct effect names the script uses, sorted.
func (s *Script) Effects() []string {
	seen := make(map[string]bool)
	var names []string
	for _, t := range s.Triggers {
		if !seen[t.Effect] {
			seen[t.Effect] = true
			names = append(names, t.Effect)
		}
	}
	sort.Strings(names)
	return names
}

package telemetry

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"
	"gopkg.in/yaml.v3"

	"github.com/gonewx/combatfx/pkg/config"
)

// OutputManager writes a run's telemetry into a directory: frames.csv
// streamed row by row, and summary.csv plus engine.yaml at the end.
type OutputManager struct {
	dir        string
	framesFile *os.File

	framesHeaderWritten bool
}

// NewOutputManager creates the output directory and opens frames.csv.
// Returns nil if dir is empty (output disabled); every method is a no-op
// on a nil manager.
func NewOutputManager(dir string) (*OutputManager, error) {
	if dir == "" {
		return nil, nil
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	f, err := os.Create(filepath.Join(dir, "frames.csv"))
	if err != nil {
		return nil, fmt.Errorf("creating frames.csv: %w", err)
	}
	return &OutputManager{dir: dir, framesFile: f}, nil
}

// WriteFrames appends rows to frames.csv. The header is written once.
func (om *OutputManager) WriteFrames(rows []FrameStats) error {
	if om == nil || len(rows) == 0 {
		return nil
	}

	if !om.framesHeaderWritten {
		if err := gocsv.Marshal(rows, om.framesFile); err != nil {
			return fmt.Errorf("writing frames: %w", err)
		}
		om.framesHeaderWritten = true
		return nil
	}
	if err := gocsv.MarshalWithoutHeaders(rows, om.framesFile); err != nil {
		return fmt.Errorf("writing frames: %w", err)
	}
	return nil
}

// WriteSummary writes summary.csv with a single row.
func (om *OutputManager) WriteSummary(s Summary) error {
	if om == nil {
		return nil
	}

	f, err := os.Create(filepath.Join(om.dir, "summary.csv"))
	if err != nil {
		return fmt.Errorf("creating summary.csv: %w", err)
	}
	defer f.Close()

	if err := gocsv.Marshal([]Summary{s}, f); err != nil {
		return fmt.Errorf("writing summary: %w", err)
	}
	return nil
}

// WriteConfig saves the engine configuration the run used.
func (om *OutputManager) WriteConfig(cfg *config.EngineConfig) error {
	if om == nil || cfg == nil {
		return nil
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling engine config: %w", err)
	}
	if err := os.WriteFile(filepath.Join(om.dir, "engine.yaml"), data, 0644); err != nil {
		return fmt.Errorf("writing engine.yaml: %w", err)
	}
	return nil
}

// Dir returns the output directory path.
func (om *OutputManager) Dir() string {
	if om == nil {
		return ""
	}
	return om.dir
}

// Close closes frames.csv.
func (om *OutputManager) Close() error {
	if om == nil || om.framesFile == nil {
		return nil
	}
	return om.framesFile.Close()
}

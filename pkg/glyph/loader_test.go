package glyph

import (
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/gonewx/combatfx/pkg/embedded"
)

const testGlyphYAML = `
glyphs:
  diamond: "M 0 -1 L 0.7 0 L 0 1 L -0.7 0 Z"
`

func TestLoadFile_MergesOverDefault(t *testing.T) {
	path := filepath.Join(t.TempDir(), "glyphs.yaml")
	if err := os.WriteFile(path, []byte(testGlyphYAML), 0644); err != nil {
		t.Fatal(err)
	}

	a, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if _, ok := a.Lookup("diamond"); !ok {
		t.Error("loaded glyph missing")
	}
	if _, ok := a.Lookup("star"); !ok {
		t.Error("builtin glyphs should survive the merge")
	}
	if a.Len() != Default().Len()+1 {
		t.Errorf("Len = %d, want %d", a.Len(), Default().Len()+1)
	}
}

func TestLoadFile_Embedded(t *testing.T) {
	embedded.Init(fstest.MapFS{
		"data/glyphs.yaml": &fstest.MapFile{Data: []byte(testGlyphYAML)},
	})
	t.Cleanup(embedded.Reset)

	a, err := LoadFile("data/glyphs.yaml")
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if _, ok := a.Lookup("diamond"); !ok {
		t.Error("embedded glyph missing")
	}
}

func TestLoadFile_Errors(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		name    string
		content string
	}{
		{"empty", "glyphs: {}"},
		{"bad path", `glyphs: {x: "M 0"}`},
		{"bad yaml", "glyphs: ["},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(dir, tt.name+".yaml")
			if err := os.WriteFile(path, []byte(tt.content), 0644); err != nil {
				t.Fatal(err)
			}
			if _, err := LoadFile(path); err == nil {
				t.Error("expected error")
			}
		})
	}

	if _, err := LoadFile(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("missing file should fail")
	}
}

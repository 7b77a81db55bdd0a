package glyph

// DefaultDefinitions 内置图标集（单位坐标系 -1..1）
var DefaultDefinitions = map[string]string{
	"star":      "M 0 -1 L 0.24 -0.31 L 0.95 -0.31 L 0.38 0.12 L 0.59 0.81 L 0 0.4 L -0.59 0.81 L -0.38 0.12 L -0.95 -0.31 L -0.24 -0.31 Z",
	"cross":     "M -0.25 -1 L 0.25 -1 L 0.25 -0.25 L 1 -0.25 L 1 0.25 L 0.25 0.25 L 0.25 1 L -0.25 1 L -0.25 0.25 L -1 0.25 L -1 -0.25 L -0.25 -0.25 Z",
	"heart":     "M 0 1 C -1.2 0.2 -1 -0.9 -0.45 -0.9 Q 0 -0.9 0 -0.4 Q 0 -0.9 0.45 -0.9 C 1 -0.9 1.2 0.2 0 1 Z",
	"sword":     "M 0 -1 L 0.12 -0.8 L 0.12 0.3 L 0.45 0.3 L 0.45 0.42 L 0.1 0.42 L 0.1 0.9 L -0.1 0.9 L -0.1 0.42 L -0.45 0.42 L -0.45 0.3 L -0.12 0.3 L -0.12 -0.8 Z",
	"shield":    "M 0 -1 L 0.85 -0.7 L 0.8 0.1 Q 0.6 0.7 0 1 Q -0.6 0.7 -0.8 0.1 L -0.85 -0.7 Z",
	"flame":     "M 0 -1 Q 0.35 -0.5 0.6 -0.1 Q 0.9 0.5 0.4 0.9 Q 0 1.05 -0.4 0.9 Q -0.9 0.5 -0.6 -0.1 Q -0.35 0.3 -0.2 0.2 Q -0.3 -0.4 0 -1 Z",
	"snowflake": "M -0.1 -1 L 0.1 -1 L 0.1 -0.1 L 0.87 -0.55 L 0.97 -0.38 L 0.2 0.05 L 0.97 0.38 L 0.87 0.55 L 0.1 0.1 L 0.1 1 L -0.1 1 L -0.1 0.1 L -0.87 0.55 L -0.97 0.38 L -0.2 0.05 L -0.97 -0.38 L -0.87 -0.55 L -0.1 -0.1 Z",
	"bolt":      "M 0.2 -1 L -0.6 0.1 L -0.05 0.1 L -0.3 1 L 0.6 -0.2 L 0.05 -0.2 L 0.35 -1 Z",
	"drop":      "M 0 -1 Q 0.8 0 0.6 0.5 Q 0.4 1 0 1 Q -0.4 1 -0.6 0.5 Q -0.8 0 0 -1 Z",
	"skull":     "M -0.7 -0.2 Q -0.7 -1 0 -1 Q 0.7 -1 0.7 -0.2 L 0.45 0.2 L 0.45 0.7 L -0.45 0.7 L -0.45 0.2 Z M -0.4 -0.35 L -0.4 -0.05 L -0.1 -0.05 L -0.1 -0.35 Z M 0.1 -0.35 L 0.1 -0.05 L 0.4 -0.05 L 0.4 -0.35 Z",
	"arrow_up":  "M 0 -1 L 0.7 -0.2 L 0.25 -0.2 L 0.25 1 L -0.25 1 L -0.25 -0.2 L -0.7 -0.2 Z",
	"arrow_dn":  "M 0 1 L 0.7 0.2 L 0.25 0.2 L 0.25 -1 L -0.25 -1 L -0.25 0.2 L -0.7 0.2 Z",
	"swirl":     "M 0 0 Q 0.5 -0.1 0.4 0.35 Q 0.2 0.8 -0.35 0.6 Q -0.9 0.3 -0.7 -0.35 Q -0.4 -1 0.3 -0.9 Q 1 -0.7 0.95 0",
	"note":      "M 0.2 -1 L 0.7 -0.8 L 0.7 -0.55 L 0.35 -0.7 L 0.35 0.55 Q 0.35 1 -0.15 1 Q -0.6 1 -0.6 0.65 Q -0.6 0.3 -0.1 0.3 Q 0.1 0.3 0.2 0.38 Z",
}

// Default returns the builtin atlas.
func Default() *Atlas {
	a, err := NewAtlas(DefaultDefinitions)
	if err != nil {
		panic("glyph: invalid builtin atlas: " + err.Error())
	}
	return a
}

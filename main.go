// Command combatfx is the interactive effect viewer.
//
// Usage:
//
//	go run . [flags]
//
// Flags:
//
//	--config <path>       Engine config (default data/engine.yaml, embedded)
//	--effects <paths>     Extra recipe files, comma separated or repeated
//	--effect <name>       Start with a specific effect
//	--filter <keyword>    Initial filter by name
//	--auto-play           Cycle through effects automatically
//	--verbose             Enable verbose logging (default off)
//
// Controls:
//
//	Mouse Click / Space  - Spawn the selected effect
//	Left/Right Arrow     - Previous/next effect
//	Page Up/Down         - Jump 10 effects
//	Home/End             - First/last effect
//	0-9                  - Quick jump (0 = 10th)
//	F or /               - Search mode
//	P                    - Pause
//	R                    - Clear all particles
//	A                    - Toggle auto-play
//	H                    - Toggle HUD
//	F5                   - Reload recipe files
//	Q/Escape             - Quit
package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/gonewx/combatfx/pkg/app"
	"github.com/gonewx/combatfx/pkg/embedded"
)

// recipeList 支持逗号分隔或重复传入的 --effects 参数
type recipeList []string

func (l *recipeList) String() string {
	return strings.Join(*l, ",")
}

func (l *recipeList) Set(v string) error {
	for _, p := range strings.Split(v, ",") {
		if p = strings.TrimSpace(p); p != "" {
			*l = append(*l, p)
		}
	}
	return nil
}

var (
	configFlag   = flag.String("config", "data/engine.yaml", "Engine config file")
	effectFlag   = flag.String("effect", "", "Start with specific effect name")
	filterFlag   = flag.String("filter", "", "Initial filter by name keyword")
	autoPlayFlag = flag.Bool("auto-play", false, "Auto cycle through effects")
	verboseFlag  = flag.Bool("verbose", false, "Enable verbose logging (default off)")
	recipeFlag   recipeList
)

func main() {
	flag.Var(&recipeFlag, "effects", "Extra recipe files (comma separated, repeatable)")
	flag.Parse()

	embedded.Init(dataFS)

	viewer, err := app.NewApp(app.Config{
		Verbose:      *verboseFlag,
		EngineConfig: *configFlag,
		RecipeFiles:  recipeFlag,
		Effect:       *effectFlag,
		Filter:       *filterFlag,
		AutoPlay:     *autoPlayFlag,
	})
	if err != nil {
		// 非 verbose 模式下日志已被丢弃，错误直接写到 stderr
		fmt.Fprintf(os.Stderr, "Failed to initialize viewer: %v\n", err)
		os.Exit(1)
	}

	w, h, _ := viewer.Bounds()
	ebiten.SetWindowSize(w, h)
	ebiten.SetWindowTitle("CombatFX Effect Viewer")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	err = ebiten.RunGame(viewer)
	viewer.Close()
	if err != nil && !errors.Is(err, app.ErrQuit) {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	log.Println("Effect viewer closed")
}

// Package app 提供特效查看器的 ebiten 应用
//
// 查看器列出所有已注册的效果，支持搜索、点击生成、暂停、清屏和自动播放，
// 并通过 gdata 记住上次的选择。App 同时是 game.Driver 和 game.Container：
// ebiten 的 Update 驱动效果管理器的每一帧，窗口尺寸决定画布大小。
package app

import (
	"errors"
	"fmt"
	"image/color"
	"io"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/basicfont"

	"github.com/gonewx/combatfx/internal/particle"
	"github.com/gonewx/combatfx/pkg/config"
	"github.com/gonewx/combatfx/pkg/game"
	"github.com/gonewx/combatfx/pkg/surface/ebitensurface"
)

// ErrQuit is returned from Update when the user quits.
var ErrQuit = errors.New("quit requested")

// settingsAppName gdata 存储使用的应用名
const settingsAppName = "combatfx_viewer"

// Config 定义查看器启动配置
type Config struct {
	// Verbose 启用详细日志输出
	Verbose bool
	// EngineConfig 引擎配置文件路径
	EngineConfig string
	// RecipeFiles 额外的配方文件，F5 时重新加载
	RecipeFiles []string
	// Effect 启动时选中的效果，为空则使用上次的选择
	Effect string
	// Filter 初始搜索过滤
	Filter string
	// AutoPlay 强制开启自动播放
	AutoPlay bool
}

// App 是特效查看器，实现 ebiten.Game、game.Driver 和 game.Container
type App struct {
	manager  *game.EffectManager
	settings *game.SettingsManager
	browser  *EffectBrowser

	recipeFiles []string
	tickFns     []func()

	width, height int
	background    color.NRGBA

	searchMode    bool
	paused        bool
	autoPlay      bool
	autoCountdown int

	statusMessage string
	face          *text.GoXFace
	textOpts      text.DrawOptions
}

// NewApp 创建并初始化查看器
//
// 调用此函数前，如需使用嵌入数据，必须先调用 embedded.Init()。
func NewApp(cfg Config) (*App, error) {
	if !cfg.Verbose {
		log.SetOutput(io.Discard)
		log.SetFlags(0)
	}

	engine := config.DefaultEngineConfig()
	if cfg.EngineConfig != "" {
		loaded, err := config.LoadEngineConfig(cfg.EngineConfig)
		if err != nil {
			return nil, fmt.Errorf("引擎配置加载失败: %w", err)
		}
		engine = loaded
	}
	engine.RecipeFiles = append(engine.RecipeFiles, cfg.RecipeFiles...)

	settings := game.OpenSettingsManager(settingsAppName)
	s := settings.GetSettings()

	background := engine.BackgroundColor()
	if s.Background != "" {
		if c, err := particle.ParseColor(s.Background); err == nil {
			background = c
		}
	}

	manager, err := game.NewEffectManagerFromConfig(engine,
		game.WithSurfaceFactory(ebitensurface.Factory(background)),
	)
	if err != nil {
		return nil, err
	}

	a := &App{
		manager:     manager,
		settings:    settings,
		recipeFiles: engine.RecipeFiles,
		width:       engine.Width,
		height:      engine.Height,
		background:  background,
		autoPlay:    cfg.AutoPlay || s.AutoPlay,
		face:        text.NewGoXFace(basicfont.Face7x13),
	}
	a.autoCountdown = s.AutoPlayInterval

	a.browser = NewEffectBrowser(manager.Registry().Names())
	if cfg.Filter != "" {
		a.browser.SetQuery(cfg.Filter)
		if _, ok := a.browser.Current(); !ok {
			log.Printf("[App] Warning: no effects match filter %q, showing all", cfg.Filter)
			a.browser.SetQuery("")
		}
	}
	start := cfg.Effect
	if start == "" {
		start = s.LastEffect
	}
	a.browser.Select(start)

	if !manager.Initialize(a) {
		return nil, fmt.Errorf("failed to initialize effect manager at %dx%d", a.width, a.height)
	}
	manager.Attach(a)

	a.updateStatusMessage()
	log.Printf("[App] viewer initialized: %d effects", a.browser.Total())

	// 启动时在屏幕中心生成当前效果，避免空白屏幕
	a.spawnCurrent(float64(a.width)/2, float64(a.height)/2)
	return a, nil
}

// OnTick implements game.Driver.
func (a *App) OnTick(fn func()) {
	if fn != nil {
		a.tickFns = append(a.tickFns, fn)
	}
}

// Bounds implements game.Container.
func (a *App) Bounds() (int, int, bool) {
	return a.width, a.height, a.width > 0 && a.height > 0
}

// Manager returns the effect manager.
func (a *App) Manager() *game.EffectManager {
	return a.manager
}

// Update 处理输入并推进一帧
func (a *App) Update() error {
	if a.searchMode {
		a.updateSearchMode()
	} else if err := a.updateNormalMode(); err != nil {
		return err
	}

	if a.paused {
		return nil
	}

	if a.autoPlay {
		a.autoCountdown--
		if a.autoCountdown <= 0 {
			a.browser.Next(1)
			a.updateStatusMessage()
			a.spawnCurrent(float64(a.width)/2, float64(a.height)/2)
			a.autoCountdown = a.settings.GetSettings().AutoPlayInterval
		}
	}

	for _, fn := range a.tickFns {
		fn()
	}
	return nil
}

// updateSearchMode handles input when in search mode
func (a *App) updateSearchMode() {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyEnter) {
		a.searchMode = false
		_, n := a.browser.Position()
		a.statusMessage = fmt.Sprintf("Search: %q (%d results)", a.browser.Query(), n)
		return
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyBackspace) {
		a.browser.Backspace()
		return
	}

	if runes := ebiten.AppendInputChars(nil); len(runes) > 0 {
		a.browser.AppendQuery(runes)
	}
}

// updateNormalMode handles input when in normal mode
func (a *App) updateNormalMode() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		a.saveSettings()
		return ErrQuit
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyF) || inpututil.IsKeyJustPressed(ebiten.KeySlash) {
		a.searchMode = true
		a.statusMessage = "Search mode: type to filter effects..."
		return nil
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyP) {
		a.paused = !a.paused
		if a.paused {
			a.statusMessage = "PAUSED - press P to resume"
		} else {
			a.statusMessage = "Resumed"
		}
		return nil
	}

	cx, cy := float64(a.width)/2, float64(a.height)/2

	// 数字键快速跳转：1-9 对应第 1-9 个，0 对应第 10 个
	for i := 0; i <= 9; i++ {
		if inpututil.IsKeyJustPressed(ebiten.Key(int(ebiten.Key0) + i)) {
			target := i - 1
			if i == 0 {
				target = 9
			}
			if a.browser.JumpTo(target) {
				a.selectionChanged(cx, cy)
			}
			return nil
		}
	}

	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyArrowLeft):
		a.browser.Next(-1)
		a.selectionChanged(cx, cy)
	case inpututil.IsKeyJustPressed(ebiten.KeyArrowRight):
		a.browser.Next(1)
		a.selectionChanged(cx, cy)
	case inpututil.IsKeyJustPressed(ebiten.KeyPageUp):
		a.browser.Next(-10)
		a.selectionChanged(cx, cy)
	case inpututil.IsKeyJustPressed(ebiten.KeyPageDown):
		a.browser.Next(10)
		a.selectionChanged(cx, cy)
	case inpututil.IsKeyJustPressed(ebiten.KeyHome):
		a.browser.First()
		a.selectionChanged(cx, cy)
	case inpututil.IsKeyJustPressed(ebiten.KeyEnd):
		a.browser.Last()
		a.selectionChanged(cx, cy)
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		a.manager.Clear()
		a.statusMessage = "Cleared all particles"
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyH) {
		a.settings.SetShowHUD(!a.settings.GetSettings().ShowHUD)
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyA) {
		a.autoPlay = !a.autoPlay
		a.autoCountdown = a.settings.GetSettings().AutoPlayInterval
		a.settings.SetAutoPlay(a.autoPlay, a.autoCountdown)
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyF5) {
		a.reloadRecipes()
	}

	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		a.spawnCurrent(cx, cy)
	}

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		x, y := ebiten.CursorPosition()
		a.spawnCurrent(float64(x), float64(y))
	}
	return nil
}

func (a *App) selectionChanged(x, y float64) {
	a.updateStatusMessage()
	a.spawnCurrent(x, y)
}

// reloadRecipes re-reads the recipe files and refreshes the effect list.
func (a *App) reloadRecipes() {
	if len(a.recipeFiles) == 0 {
		a.statusMessage = "No recipe files to reload"
		return
	}
	n, err := a.manager.ReloadRecipes(a.recipeFiles...)
	if err != nil {
		a.statusMessage = fmt.Sprintf("Reload failed: %v", err)
		return
	}
	a.browser.SetNames(a.manager.Registry().Names())
	a.statusMessage = fmt.Sprintf("Reloaded %d effects", n)
}

// spawnCurrent triggers the selected effect at (x, y).
func (a *App) spawnCurrent(x, y float64) {
	name, ok := a.browser.Current()
	if !ok {
		a.statusMessage = "No effects to spawn"
		return
	}
	a.manager.TriggerEffect(name, x, y)
	a.settings.SetLastEffect(name)
	log.Printf("[App] spawned %s at (%.0f, %.0f)", name, x, y)
}

func (a *App) updateStatusMessage() {
	name, ok := a.browser.Current()
	if !ok {
		a.statusMessage = "No effects available"
		return
	}
	a.statusMessage = fmt.Sprintf("Selected: %s", name)
}

func (a *App) saveSettings() {
	a.settings.SetBackground(fmt.Sprintf("#%02x%02x%02x", a.background.R, a.background.G, a.background.B))
	if err := a.settings.Save(); err != nil {
		log.Printf("[App] Warning: failed to save settings: %v", err)
	}
}

// Close 保存设置并拆除效果管理器
func (a *App) Close() {
	a.saveSettings()
	a.manager.Teardown()
}

// Draw 绘制上一次 Frame 渲染好的画布和信息面板
func (a *App) Draw(screen *ebiten.Image) {
	if s, ok := a.manager.Surface().(*ebitensurface.Surface); ok {
		screen.DrawImage(s.Image(), nil)
	}

	if a.settings.GetSettings().ShowHUD {
		a.drawHUD(screen)
	}
}

func (a *App) drawHUD(screen *ebiten.Image) {
	lines := []string{}
	if name, ok := a.browser.Current(); ok {
		pos, n := a.browser.Position()
		lines = append(lines, fmt.Sprintf("Effect %d/%d: %s", pos, n, name))
	} else {
		lines = append(lines, "No effects match current filter")
	}
	if q := a.browser.Query(); q != "" {
		_, n := a.browser.Position()
		lines = append(lines, fmt.Sprintf("Filter: %q (%d/%d effects)", q, n, a.browser.Total()))
	}
	lines = append(lines,
		fmt.Sprintf("Particles: %d  Pending bursts: %d", a.manager.ParticleCount(), a.manager.PendingBursts()),
	)
	if a.searchMode {
		lines = append(lines, fmt.Sprintf("SEARCH: %s_", a.browser.Query()))
	} else if a.statusMessage != "" {
		lines = append(lines, a.statusMessage)
	}

	for i, line := range lines {
		a.textOpts.GeoM.Reset()
		a.textOpts.GeoM.Translate(10, float64(10+i*18))
		a.textOpts.ColorScale.Reset()
		a.textOpts.ColorScale.ScaleWithColor(color.White)
		text.Draw(screen, line, a.face, &a.textOpts)
	}

	// 操作说明（左下角）
	controls := []string{
		"<-/-> Prev/Next  PgUp/PgDn Jump 10  Home/End  1-9 Quick jump",
		"Click/Space Spawn  R Clear  P Pause  A Auto-play  F or / Search  F5 Reload  H HUD  Q Quit",
	}
	y := a.height - len(controls)*16 - 8
	for i, line := range controls {
		ebitenutil.DebugPrintAt(screen, line, 10, y+i*16)
	}

	if a.paused {
		ebitenutil.DebugPrintAt(screen, "PAUSED (P to resume)", a.width-160, 10)
	} else if a.autoPlay {
		ebitenutil.DebugPrintAt(screen, "AUTO-PLAY", a.width-100, 10)
	}
}

// Layout 跟随窗口尺寸，尺寸变化时调整画布
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth > 0 && outsideHeight > 0 && (outsideWidth != a.width || outsideHeight != a.height) {
		a.width, a.height = outsideWidth, outsideHeight
		a.manager.HandleContainerResize()
	}
	return a.width, a.height
}

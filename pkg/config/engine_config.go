package config

import (
	"fmt"
	"image/color"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/gonewx/combatfx/internal/particle"
	"github.com/gonewx/combatfx/pkg/embedded"
)

// EngineConfig 特效引擎配置
//
// 配置文件位置: data/engine.yaml
type EngineConfig struct {
	// FrameRate 每秒帧数，决定一次 Tick 推进调度器的时长
	FrameRate int `yaml:"frameRate"`

	// Seed 随机种子，0 表示每次运行随机
	Seed uint64 `yaml:"seed"`

	// Width/Height 画布像素尺寸
	Width  int `yaml:"width"`
	Height int `yaml:"height"`

	// Background 背景色（#rgb / #rrggbb / #rrggbbaa）
	Background string `yaml:"background"`

	// RecipeFiles 额外的效果配方文件，按顺序覆盖内置效果
	RecipeFiles []string `yaml:"recipeFiles"`

	// GlyphFile 图标定义文件，合并到内置图标之上
	GlyphFile string `yaml:"glyphFile"`
}

// 帧率范围
const (
	MinFrameRate = 1
	MaxFrameRate = 240
)

// DefaultEngineConfig 返回默认配置
func DefaultEngineConfig() *EngineConfig {
	return &EngineConfig{
		FrameRate:  60,
		Width:      800,
		Height:     600,
		Background: "#101018",
	}
}

// ParseEngineConfig 解析 YAML 配置，缺失字段使用默认值
func ParseEngineConfig(data []byte) (*EngineConfig, error) {
	cfg := DefaultEngineConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse engine config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid engine config: %w", err)
	}
	return cfg, nil
}

// LoadEngineConfig 加载引擎配置
//
// 参数:
//   - path: 配置文件路径（如 "data/engine.yaml"），嵌入文件优先
//
// 返回:
//   - *EngineConfig: 加载成功后的配置结构
//   - error: 读取、解析或验证失败时返回错误
func LoadEngineConfig(path string) (*EngineConfig, error) {
	data, err := embedded.ReadFileOrDisk(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read engine config: %w", err)
	}
	cfg, err := ParseEngineConfig(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Validate 验证配置有效性
func (c *EngineConfig) Validate() error {
	if c.FrameRate < MinFrameRate || c.FrameRate > MaxFrameRate {
		return fmt.Errorf("frameRate must be in [%d, %d], got %d", MinFrameRate, MaxFrameRate, c.FrameRate)
	}
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("surface size must be positive, got %dx%d", c.Width, c.Height)
	}
	if _, err := particle.ParseColor(c.Background); err != nil {
		return fmt.Errorf("background: %w", err)
	}
	for i, f := range c.RecipeFiles {
		if f == "" {
			return fmt.Errorf("recipeFiles[%d] is empty", i)
		}
	}
	return nil
}

// FrameInterval 返回一帧对应的模拟时长
func (c *EngineConfig) FrameInterval() time.Duration {
	if c.FrameRate <= 0 {
		return time.Second / 60
	}
	return time.Second / time.Duration(c.FrameRate)
}

// BackgroundColor 返回解析后的背景色，非法值退回黑色
func (c *EngineConfig) BackgroundColor() color.NRGBA {
	col, err := particle.ParseColor(c.Background)
	if err != nil {
		return color.NRGBA{A: 0xff}
	}
	return col
}

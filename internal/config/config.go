package config

import (
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

type Config struct {
	Window  WindowConfig  `toml:"window"`
	Pool    PoolConfig    `toml:"pool"`
	Text    TextConfig    `toml:"text"`
	Camera  CameraConfig  `toml:"camera"`
	Logging LoggingConfig `toml:"logging"`
}

type WindowConfig struct {
	Width     float32 `toml:"width"`
	Height    float32 `toml:"height"`
	FrameRate int     `toml:"frame_rate"` // frames per second cap, 0 = uncapped
}

type PoolConfig struct {
	Capacity    int `toml:"capacity"`
	MaxChildren int `toml:"max_children"` // per UI parent
	MaxLights   int `toml:"max_lights"`
}

type TextConfig struct {
	MaxLength     int           `toml:"max_length"`
	BlinkInterval time.Duration `toml:"blink_interval"`
	CaretWidth    float32       `toml:"caret_width"`
	FontMetrics   string        `toml:"font_metrics"` // yaml path; empty = monospace face
}

type CameraConfig struct {
	FovDegrees   float32 `toml:"fov_degrees"`
	Near         float32 `toml:"near"`
	Far          float32 `toml:"far"`
	Orthographic bool    `toml:"orthographic"`
}

type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"` // "json" or "console"
	Output string `toml:"output"` // file path, "stderr" or "stdout"
}

// FrameInterval returns the frame cap as a duration, or 0 when uncapped.
func (w WindowConfig) FrameInterval() time.Duration {
	if w.FrameRate <= 0 {
		return 0
	}
	return time.Second / time.Duration(w.FrameRate)
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	cfg := Defaults()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("window size must be positive, got %vx%v", c.Window.Width, c.Window.Height)
	}
	if c.Pool.Capacity <= 0 {
		return fmt.Errorf("pool capacity must be positive, got %d", c.Pool.Capacity)
	}
	if c.Text.MaxLength < 0 {
		return fmt.Errorf("text max_length must not be negative, got %d", c.Text.MaxLength)
	}
	if c.Text.BlinkInterval <= 0 {
		return fmt.Errorf("text blink_interval must be positive, got %s", c.Text.BlinkInterval)
	}
	return nil
}

func Defaults() *Config {
	return &Config{
		Window: WindowConfig{
			Width:     800,
			Height:    600,
			FrameRate: 60,
		},
		Pool: PoolConfig{
			Capacity:    1000,
			MaxChildren: 16,
			MaxLights:   8,
		},
		Text: TextConfig{
			MaxLength:     99,
			BlinkInterval: 600 * time.Millisecond,
			CaretWidth:    2,
		},
		Camera: CameraConfig{
			FovDegrees: 45,
			Near:       0.1,
			Far:        100,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
			Output: "stderr",
		},
	}
}

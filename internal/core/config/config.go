package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/zeusync/skyloop/internal/core/observability/log"
)

var ErrInvalidConfig = errors.New("invalid config")

type Config struct {
	Engine      Engine     `yaml:"engine"`
	Log         log.Config `yaml:"log"`
	Spectator   Spectator  `yaml:"spectator"`
	Terminal    Terminal   `yaml:"terminal"`
	ContentPath string     `yaml:"content_path"`
}

type Engine struct {
	// StepRate is simulation steps per second.
	StepRate int `yaml:"step_rate"`
	// ForgetSteps is how long a ship that left view stays clickable.
	ForgetSteps int `yaml:"forget_steps"`
	// GrudgeSteps is how long a request for help stands; 0 never expires.
	GrudgeSteps  int      `yaml:"grudge_steps"`
	LoadWindow   int      `yaml:"load_window"`
	SensorRange  float64  `yaml:"sensor_range"`
	Viewport     Viewport `yaml:"viewport"`
	Parallelism  int      `yaml:"parallelism"`
	MessageLimit int      `yaml:"message_limit"`
	Seed         uint64   `yaml:"seed"`
}

type Viewport struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// Spectator configures the websocket frame feed.
type Spectator struct {
	Enabled    bool   `yaml:"enabled"`
	ListenAddr string `yaml:"listen_addr"`
	// FrameInterval sends every Nth drawn frame.
	FrameInterval int `yaml:"frame_interval"`
	ClientBuffer  int `yaml:"client_buffer"`
}

type Terminal struct {
	Enabled bool `yaml:"enabled"`
}

func Default() Config {
	return Config{
		Engine: Engine{
			StepRate:     60,
			ForgetSteps:  600,
			GrudgeSteps:  3600,
			LoadWindow:   60,
			SensorRange:  4000,
			Viewport:     Viewport{Width: 1600, Height: 900},
			Parallelism:  4,
			MessageLimit: 8,
			Seed:         1,
		},
		Log: log.DefaultConfig(),
		Spectator: Spectator{
			ListenAddr:    ":8080",
			FrameInterval: 2,
			ClientBuffer:  16,
		},
		ContentPath: "configs/content.yaml",
	}
}

// StepDuration is the fixed timestep as wall-clock time.
func (e Engine) StepDuration() time.Duration {
	return time.Second / time.Duration(e.StepRate)
}

// Load reads a YAML file over the defaults.
func Load(path string) (Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer f.Close()
	return Parse(f)
}

// Parse decodes YAML over the defaults and validates the result. Empty input
// yields the defaults.
func Parse(r io.Reader) (Config, error) {
	cfg := Default()
	if err := yaml.NewDecoder(r).Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	e := c.Engine
	switch {
	case e.StepRate <= 0:
		return fmt.Errorf("%w: engine.step_rate must be positive", ErrInvalidConfig)
	case e.ForgetSteps <= 0:
		return fmt.Errorf("%w: engine.forget_steps must be positive", ErrInvalidConfig)
	case e.GrudgeSteps < 0:
		return fmt.Errorf("%w: engine.grudge_steps must not be negative", ErrInvalidConfig)
	case e.LoadWindow <= 0:
		return fmt.Errorf("%w: engine.load_window must be positive", ErrInvalidConfig)
	case e.SensorRange <= 0:
		return fmt.Errorf("%w: engine.sensor_range must be positive", ErrInvalidConfig)
	case e.Viewport.Width <= 0 || e.Viewport.Height <= 0:
		return fmt.Errorf("%w: engine.viewport must have a positive size", ErrInvalidConfig)
	case e.Parallelism < 0:
		return fmt.Errorf("%w: engine.parallelism must not be negative", ErrInvalidConfig)
	case e.MessageLimit <= 0:
		return fmt.Errorf("%w: engine.message_limit must be positive", ErrInvalidConfig)
	}
	if c.Spectator.Enabled {
		if c.Spectator.ListenAddr == "" {
			return fmt.Errorf("%w: spectator.listen_addr is required", ErrInvalidConfig)
		}
		if c.Spectator.FrameInterval <= 0 || c.Spectator.ClientBuffer <= 0 {
			return fmt.Errorf("%w: spectator.frame_interval and client_buffer must be positive", ErrInvalidConfig)
		}
	}
	if c.ContentPath == "" {
		return fmt.Errorf("%w: content_path is required", ErrInvalidConfig)
	}
	return nil
}

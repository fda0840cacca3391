package render

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the render configuration threaded through both pipelines.
type Config struct {
	Width           int     `yaml:"width"`
	Height          int     `yaml:"height"`
	FocalLength     float64 `yaml:"focal_length"`
	PixelScale      float64 `yaml:"pixel_scale"`
	MaxDepth        int     `yaml:"max_depth"`
	ShadowBias      float64 `yaml:"shadow_bias"`
	RefractiveIndex float64 `yaml:"refractive_index"`
	AreaSamplesU    int     `yaml:"area_samples_u"`
	AreaSamplesV    int     `yaml:"area_samples_v"`
	Seed            uint64  `yaml:"seed"`
}

// DefaultConfig returns the settings of the reference scenes.
func DefaultConfig() Config {
	return Config{
		Width:           640,
		Height:          480,
		FocalLength:     4,
		PixelScale:      100,
		MaxDepth:        10,
		ShadowBias:      1e-3,
		RefractiveIndex: 1.5,
		AreaSamplesU:    4,
		AreaSamplesV:    4,
		Seed:            1,
	}
}

// Validate reports the first unusable setting.
func (c Config) Validate() error {
	switch {
	case c.Width <= 0 || c.Height <= 0:
		return fmt.Errorf("invalid canvas size %dx%d", c.Width, c.Height)
	case c.FocalLength <= 0:
		return fmt.Errorf("focal length must be positive, got %v", c.FocalLength)
	case c.PixelScale <= 0:
		return fmt.Errorf("pixel scale must be positive, got %v", c.PixelScale)
	case c.MaxDepth < 0:
		return fmt.Errorf("max depth must not be negative, got %d", c.MaxDepth)
	case c.ShadowBias < 0:
		return fmt.Errorf("shadow bias must not be negative, got %v", c.ShadowBias)
	case c.RefractiveIndex <= 0:
		return errors.New("refractive index must be positive")
	case c.AreaSamplesU <= 0 || c.AreaSamplesV <= 0:
		return fmt.Errorf("invalid area sample grid %dx%d", c.AreaSamplesU, c.AreaSamplesV)
	}
	return nil
}

// LoadConfig reads a YAML config file. Fields missing from the file keep
// their default values; unknown fields are an error.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	f, err := os.Open(path)
	if err != nil {
		return cfg, fmt.Errorf("open config: %w", err)
	}
	defer f.Close()

	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil {
		return cfg, fmt.Errorf("decode config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Package config loads watermark defaults from a YAML file, a .env file and
// the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	watermark "github.com/gcslaoli/text-watermark-go"
)

// DefaultPath is read when no explicit config path is given and the file
// exists in the working directory.
const DefaultPath = "twatermark.yaml"

// Config holds all twatermark configuration.
type Config struct {
	Watermark WatermarkConfig `yaml:"watermark"`
	Output    OutputConfig    `yaml:"output"`
}

// WatermarkConfig holds the default watermark parameters.
type WatermarkConfig struct {
	Text     string           `yaml:"text"`
	FontSize int              `yaml:"font_size"`
	Corner   watermark.Corner `yaml:"corner"`
}

// OutputConfig controls how results are written.
type OutputConfig struct {
	JPEGQuality int `yaml:"jpeg_quality"`
	// Suffix is appended to the input name when no output path is given.
	Suffix string `yaml:"suffix"`
}

// Default returns the built-in configuration.
func Default() *Config {
	p := watermark.DefaultParams()
	return &Config{
		Watermark: WatermarkConfig{
			Text:     p.Text,
			FontSize: p.FontSize,
			Corner:   p.Corner,
		},
		Output: OutputConfig{
			JPEGQuality: watermark.DefaultJPEGQuality,
			Suffix:      "_watermarked",
		},
	}
}

// Load reads path on top of the defaults, then applies .env and environment
// overrides. An empty path reads DefaultPath if present; an explicit path must
// exist.
func Load(path string) (*Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = DefaultPath
	}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	case explicit || !errors.Is(err, os.ErrNotExist):
		return nil, fmt.Errorf("read config: %w", err)
	}

	// .env is optional.
	_ = godotenv.Load()

	if err := cfg.applyEnvOverrides(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnvOverrides() error {
	if v, ok := os.LookupEnv("WATERMARK_TEXT"); ok {
		c.Watermark.Text = v
	}
	if v := os.Getenv("WATERMARK_FONT_SIZE"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("WATERMARK_FONT_SIZE: %w", err)
		}
		c.Watermark.FontSize = n
	}
	if v := os.Getenv("WATERMARK_CORNER"); v != "" {
		corner, err := watermark.ParseCorner(v)
		if err != nil {
			return fmt.Errorf("WATERMARK_CORNER: %w", err)
		}
		c.Watermark.Corner = corner
	}
	if v := os.Getenv("WATERMARK_JPEG_QUALITY"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("WATERMARK_JPEG_QUALITY: %w", err)
		}
		c.Output.JPEGQuality = n
	}
	return nil
}

// Params converts the watermark section to engine parameters.
func (c *Config) Params() watermark.Params {
	return watermark.Params{
		Text:     c.Watermark.Text,
		FontSize: c.Watermark.FontSize,
		Corner:   c.Watermark.Corner,
	}
}

// Validate checks value ranges.
func (c *Config) Validate() error {
	if err := c.Params().Validate(); err != nil {
		return fmt.Errorf("watermark: %w", err)
	}
	if c.Output.JPEGQuality < 1 || c.Output.JPEGQuality > 100 {
		return fmt.Errorf("output.jpeg_quality %d outside [1, 100]", c.Output.JPEGQuality)
	}
	return nil
}

// OutputPath derives the default output path for input: the input name plus
// Output.Suffix with a .png extension, next to the input.
func (c *Config) OutputPath(input string) string {
	if input == "" {
		return "watermarked.png"
	}
	base := strings.TrimSuffix(filepath.Base(input), filepath.Ext(input))
	return filepath.Join(filepath.Dir(input), base+c.Output.Suffix+".png")
}

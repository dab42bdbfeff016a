package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"gopkg.in/yaml.v3"

	"slrm-camera/internal/camera"
	"slrm-camera/internal/tensor"
)

// Config holds camera, render and output settings of a projection run.
type Config struct {
	// Camera
	Camera string  `yaml:"camera"`
	FovY   float64 `yaml:"fovy"`
	Device string  `yaml:"device"`

	// Paths
	SceneList string `yaml:"scene_list"`
	OutputDir string `yaml:"output_dir"`

	// Render settings
	RenderSize      int     `yaml:"render_size"`
	Supersample     int     `yaml:"supersample"`
	PointRadius     int     `yaml:"point_radius"`
	MinClusterRatio float64 `yaml:"min_cluster_ratio"`
	Format          string  `yaml:"format"`
	Workers         int     `yaml:"workers"`
}

// Load reads a YAML (or JSON) config file and returns Config.
// Fields not set in the file keep their zero values. Relative paths are
// resolved against the directory of the file.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}

	dir := filepath.Dir(path)
	if cfg.SceneList != "" && !filepath.IsAbs(cfg.SceneList) {
		cfg.SceneList = filepath.Join(dir, cfg.SceneList)
	}
	if cfg.OutputDir != "" && !filepath.IsAbs(cfg.OutputDir) {
		cfg.OutputDir = filepath.Join(dir, cfg.OutputDir)
	}

	return cfg, nil
}

// Resolve fills in any empty fields with defaults.
// CLI flags take priority when non-zero/non-empty.
func (c *Config) Resolve(flags Flags) {
	// CLI flags override config file
	if flags.Camera != "" {
		c.Camera = flags.Camera
	}
	if flags.FovY > 0 {
		c.FovY = flags.FovY
	}
	if flags.Device != "" {
		c.Device = flags.Device
	}
	if flags.SceneList != "" {
		c.SceneList = flags.SceneList
	}
	if flags.OutputDir != "" {
		c.OutputDir = flags.OutputDir
	}
	if flags.Format != "" {
		c.Format = flags.Format
	}
	if flags.Workers > 0 {
		c.Workers = flags.Workers
	}

	if c.Camera == "" {
		c.Camera = camera.KindPerspective.String()
	}
	if c.FovY <= 0 {
		c.FovY = camera.DefaultFovY
	}
	if c.Device == "" {
		c.Device = string(tensor.DefaultDevice)
	}
	if c.OutputDir == "" && c.SceneList != "" {
		c.OutputDir = filepath.Join(filepath.Dir(c.SceneList), "projected")
	}

	// Defaults for render settings
	if c.RenderSize <= 0 {
		c.RenderSize = 256
	}
	if c.Supersample <= 0 {
		c.Supersample = 2
	}
	if c.PointRadius <= 0 {
		c.PointRadius = 1
	}
	c.Format = strings.ToLower(c.Format)
	if c.Format == "" {
		c.Format = "webp"
	}
	if c.Workers <= 0 {
		c.Workers = runtime.NumCPU()
	}
}

// CameraConfig converts the camera settings.
func (c Config) CameraConfig() (camera.Config, error) {
	kind, err := camera.ParseKind(c.Camera)
	if err != nil {
		return camera.Config{}, fmt.Errorf("config: %w", err)
	}
	dev, err := tensor.ParseDevice(c.Device)
	if err != nil {
		return camera.Config{}, fmt.Errorf("config: %w", err)
	}
	return camera.Config{Kind: kind, FovY: c.FovY, Device: dev}, nil
}

// Flags holds CLI flag values that override config file settings.
type Flags struct {
	Camera    string
	FovY      float64
	Device    string
	SceneList string
	OutputDir string
	Format    string
	Workers   int
}

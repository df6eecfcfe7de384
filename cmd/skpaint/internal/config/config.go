package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/mod/modfile"
	"golang.org/x/mod/module"
	"golang.org/x/mod/semver"
	"gopkg.in/yaml.v3"

	"github.com/go-drift/skpaint/pkg/graphics"
)

// FileName is the optional per-project configuration file.
const FileName = "skpaint.yaml"

// Config represents the optional skpaint.yaml configuration.
type Config struct {
	Engine  EngineConfig  `yaml:"engine"`
	Shaders ShaderConfig  `yaml:"shaders"`
	Logging LoggingConfig `yaml:"logging"`
}

// EngineConfig contains native engine requirements.
type EngineConfig struct {
	MinVersion string `yaml:"min_version,omitempty"`
}

// ShaderConfig contains shader asset settings.
type ShaderConfig struct {
	// StrictUniformBounds defaults to true when omitted.
	StrictUniformBounds *bool  `yaml:"strict_uniform_bounds,omitempty"`
	AssetDir            string `yaml:"asset_dir,omitempty"`
}

// LoggingConfig contains log output settings.
type LoggingConfig struct {
	Level   string `yaml:"level,omitempty"`
	Verbose bool   `yaml:"verbose,omitempty"`
}

// Resolved contains resolved configuration values.
type Resolved struct {
	Root                string
	ModulePath          string
	ProjectName         string
	MinEngineVersion    string // canonical semver, empty when unconstrained
	StrictUniformBounds bool
	AssetDir            string // absolute
	LogLevel            slog.Level
	Verbose             bool
}

// LoadOptional reads skpaint.yaml if present.
func LoadOptional(dir string) (*Config, error) {
	path := filepath.Join(dir, FileName)
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &Config{}, nil
		}
		return nil, fmt.Errorf("failed to read %s: %w", FileName, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", FileName, err)
	}

	return &cfg, nil
}

// Resolve loads skpaint.yaml (if present) and resolves defaults for the
// module rooted at dir.
func Resolve(dir string) (*Resolved, error) {
	modulePath, err := modulePath(dir)
	if err != nil {
		return nil, err
	}

	cfg, err := LoadOptional(dir)
	if err != nil {
		return nil, err
	}

	minVersion, err := canonicalVersion(cfg.Engine.MinVersion)
	if err != nil {
		return nil, err
	}

	level, err := parseLevel(cfg.Logging.Level)
	if err != nil {
		return nil, err
	}

	strict := true
	if cfg.Shaders.StrictUniformBounds != nil {
		strict = *cfg.Shaders.StrictUniformBounds
	}

	assetDir := strings.TrimSpace(cfg.Shaders.AssetDir)
	if assetDir == "" {
		assetDir = "shaders"
	}
	if !filepath.IsAbs(assetDir) {
		assetDir = filepath.Join(dir, assetDir)
	}

	return &Resolved{
		Root:                dir,
		ModulePath:          modulePath,
		ProjectName:         defaultProjectName(modulePath, dir),
		MinEngineVersion:    minVersion,
		StrictUniformBounds: strict,
		AssetDir:            assetDir,
		LogLevel:            level,
		Verbose:             cfg.Logging.Verbose,
	}, nil
}

// Default returns the configuration used outside a Go module.
func Default(dir string) *Resolved {
	return &Resolved{
		Root:                dir,
		ProjectName:         filepath.Base(dir),
		StrictUniformBounds: true,
		AssetDir:            dir,
		LogLevel:            slog.LevelInfo,
	}
}

// Options returns the graphics options selected by the configuration.
func (r *Resolved) Options() graphics.Options {
	opts := graphics.DefaultOptions()
	opts.StrictUniformBounds = r.StrictUniformBounds
	return opts
}

// AssetPath resolves a shader asset name against AssetDir. Absolute paths
// are returned unchanged.
func (r *Resolved) AssetPath(name string) string {
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(r.AssetDir, name)
}

// CheckEngine reports an error if version does not satisfy
// engine.min_version.
func (r *Resolved) CheckEngine(version string) error {
	if r.MinEngineVersion == "" {
		return nil
	}
	v, err := canonicalVersion(version)
	if err != nil {
		return fmt.Errorf("engine reports %w", err)
	}
	if v == "" {
		return fmt.Errorf("engine reports no version, engine.min_version is %s", r.MinEngineVersion)
	}
	if semver.Compare(v, r.MinEngineVersion) < 0 {
		return fmt.Errorf("engine version %s is older than engine.min_version %s", v, r.MinEngineVersion)
	}
	return nil
}

// FindProjectRoot walks up from the current directory to find go.mod.
func FindProjectRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("not in a Go module (no go.mod found)")
		}
		dir = parent
	}
}

func modulePath(dir string) (string, error) {
	data, err := os.ReadFile(filepath.Join(dir, "go.mod"))
	if err != nil {
		return "", fmt.Errorf("failed to read go.mod: %w", err)
	}
	path := modfile.ModulePath(data)
	if path == "" {
		return "", fmt.Errorf("could not determine module path from go.mod")
	}
	return path, nil
}

func defaultProjectName(modulePath, dir string) string {
	base := filepath.Base(dir)
	modName, _, ok := module.SplitPathVersion(modulePath)
	if ok {
		parts := strings.Split(modName, "/")
		if len(parts) > 0 {
			base = parts[len(parts)-1]
		}
	}
	if base == "" {
		return "skpaint_project"
	}
	return base
}

// canonicalVersion accepts versions with or without the leading "v" and
// returns the canonical semver form.
func canonicalVersion(v string) (string, error) {
	v = strings.TrimSpace(v)
	if v == "" {
		return "", nil
	}
	if !strings.HasPrefix(v, "v") {
		v = "v" + v
	}
	if !semver.IsValid(v) {
		return "", fmt.Errorf("invalid engine version %q", strings.TrimPrefix(v, "v"))
	}
	return semver.Canonical(v), nil
}

func parseLevel(s string) (slog.Level, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return slog.LevelInfo, nil
	}
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return 0, fmt.Errorf("logging.level: %w", err)
	}
	return level, nil
}

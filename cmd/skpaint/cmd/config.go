package cmd

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/go-drift/skpaint/cmd/skpaint/internal/config"
)

func init() {
	RegisterCommand(&Command{
		Name:  "config",
		Short: "Show resolved configuration",
		Long: `Print the configuration resolved from go.mod and skpaint.yaml.

Outside a Go module the defaults are shown.`,
		Usage: "skpaint config",
		Run:   runConfig,
	})
}

// resolvedView is the YAML form of config.Resolved, laid out like
// skpaint.yaml.
type resolvedView struct {
	Project struct {
		Root   string `yaml:"root"`
		Module string `yaml:"module,omitempty"`
		Name   string `yaml:"name"`
	} `yaml:"project"`
	Engine struct {
		MinVersion string `yaml:"min_version,omitempty"`
	} `yaml:"engine"`
	Shaders struct {
		StrictUniformBounds bool   `yaml:"strict_uniform_bounds"`
		AssetDir            string `yaml:"asset_dir"`
	} `yaml:"shaders"`
	Logging struct {
		Level   string `yaml:"level"`
		Verbose bool   `yaml:"verbose"`
	} `yaml:"logging"`
}

func runConfig(args []string) error {
	if len(args) > 0 {
		return fmt.Errorf("config takes no arguments")
	}
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	out, err := yaml.Marshal(newResolvedView(cfg))
	if err != nil {
		return err
	}
	_, err = stdout.Write(out)
	return err
}

func newResolvedView(cfg *config.Resolved) *resolvedView {
	var v resolvedView
	v.Project.Root = cfg.Root
	v.Project.Module = cfg.ModulePath
	v.Project.Name = cfg.ProjectName
	v.Engine.MinVersion = cfg.MinEngineVersion
	v.Shaders.StrictUniformBounds = cfg.StrictUniformBounds
	v.Shaders.AssetDir = cfg.AssetDir
	v.Logging.Level = cfg.LogLevel.String()
	v.Logging.Verbose = cfg.Verbose
	return &v
}

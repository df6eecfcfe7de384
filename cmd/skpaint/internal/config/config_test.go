package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeProject(t *testing.T, gomod, yaml string) string {
	t.Helper()
	dir := t.TempDir()
	if gomod != "" {
		if err := os.WriteFile(filepath.Join(dir, "go.mod"), []byte(gomod), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	if yaml != "" {
		if err := os.WriteFile(filepath.Join(dir, FileName), []byte(yaml), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

func TestResolveDefaults(t *testing.T) {
	dir := writeProject(t, "module example.com/acme/painter/v2\n\ngo 1.24\n", "")
	cfg, err := Resolve(dir)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if cfg.ModulePath != "example.com/acme/painter/v2" {
		t.Errorf("ModulePath = %q", cfg.ModulePath)
	}
	if cfg.ProjectName != "painter" {
		t.Errorf("ProjectName = %q, want %q", cfg.ProjectName, "painter")
	}
	if !cfg.StrictUniformBounds || !cfg.Options().StrictUniformBounds {
		t.Error("strict uniform bounds should default to true")
	}
	if cfg.AssetDir != filepath.Join(dir, "shaders") {
		t.Errorf("AssetDir = %q", cfg.AssetDir)
	}
	if cfg.LogLevel != slog.LevelInfo || cfg.Verbose {
		t.Errorf("logging = %v/%v", cfg.LogLevel, cfg.Verbose)
	}
	if cfg.MinEngineVersion != "" {
		t.Errorf("MinEngineVersion = %q, want empty", cfg.MinEngineVersion)
	}
}

func TestResolveFromFile(t *testing.T) {
	dir := writeProject(t, "module example.com/paint\n", `
engine:
  min_version: "1.2"
shaders:
  strict_uniform_bounds: false
  asset_dir: assets/sksl
logging:
  level: debug
  verbose: true
`)
	cfg, err := Resolve(dir)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if cfg.MinEngineVersion != "v1.2.0" {
		t.Errorf("MinEngineVersion = %q, want v1.2.0", cfg.MinEngineVersion)
	}
	if cfg.StrictUniformBounds || cfg.Options().StrictUniformBounds {
		t.Error("strict_uniform_bounds: false was ignored")
	}
	if cfg.AssetDir != filepath.Join(dir, "assets", "sksl") {
		t.Errorf("AssetDir = %q", cfg.AssetDir)
	}
	if got := cfg.AssetPath("ripple.json"); got != filepath.Join(dir, "assets", "sksl", "ripple.json") {
		t.Errorf("AssetPath = %q", got)
	}
	if cfg.LogLevel != slog.LevelDebug || !cfg.Verbose {
		t.Errorf("logging = %v/%v", cfg.LogLevel, cfg.Verbose)
	}
}

func TestResolveErrors(t *testing.T) {
	tests := []struct {
		name  string
		gomod string
		yaml  string
		want  string
	}{
		{"no go.mod", "", "", "go.mod"},
		{"no module line", "go 1.24\n", "", "module path"},
		{"bad yaml", "module x.io/a\n", "engine: [", "parse"},
		{"bad version", "module x.io/a\n", "engine:\n  min_version: banana\n", "invalid engine version"},
		{"bad level", "module x.io/a\n", "logging:\n  level: loud\n", "logging.level"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := writeProject(t, tt.gomod, tt.yaml)
			_, err := Resolve(dir)
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("Resolve error = %v, want it to mention %q", err, tt.want)
			}
		})
	}
}

func TestCheckEngine(t *testing.T) {
	cfg := &Resolved{MinEngineVersion: "v1.4.0"}
	tests := []struct {
		version string
		wantErr bool
	}{
		{"v1.4.0", false},
		{"1.5.2", false},
		{"v2.0.0-rc.1", false},
		{"v1.3.9", true},
		{"v1.4.0-beta", true},
		{"", true},
		{"not-a-version", true},
	}
	for _, tt := range tests {
		t.Run(tt.version, func(t *testing.T) {
			err := cfg.CheckEngine(tt.version)
			if (err != nil) != tt.wantErr {
				t.Errorf("CheckEngine(%q) error = %v, wantErr %v", tt.version, err, tt.wantErr)
			}
		})
	}

	if err := (&Resolved{}).CheckEngine("whatever"); err != nil {
		t.Errorf("unconstrained CheckEngine = %v", err)
	}
}

func TestDefault(t *testing.T) {
	dir := t.TempDir()
	cfg := Default(dir)
	if !cfg.Options().StrictUniformBounds || cfg.AssetDir != dir {
		t.Errorf("Default = %+v", cfg)
	}
	if got := cfg.AssetPath("/abs/shader.json"); got != "/abs/shader.json" {
		t.Errorf("AssetPath(abs) = %q", got)
	}
}

func TestFindProjectRoot(t *testing.T) {
	dir := writeProject(t, "module example.com/root\n", "")
	nested := filepath.Join(dir, "a", "b")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatal(err)
	}
	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(nested); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Chdir(wd) })

	root, err := FindProjectRoot()
	if err != nil {
		t.Fatalf("FindProjectRoot: %v", err)
	}
	want, _ := filepath.EvalSymlinks(dir)
	got, _ := filepath.EvalSymlinks(root)
	if got != want {
		t.Errorf("FindProjectRoot = %q, want %q", got, want)
	}
}

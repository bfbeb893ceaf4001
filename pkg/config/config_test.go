package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/envgraph/envgraph/pkg/errors"
)

func TestLoadMissingFileYieldsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), FileName))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if !reflect.DeepEqual(cfg, Default()) {
		t.Errorf("Load() = %+v, want defaults %+v", cfg, Default())
	}
}

func TestLoadPartialOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	content := `
[scan]
placeholder_patterns = ["TODO"]

[output]
dir = "docs/diagrams"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if !reflect.DeepEqual(cfg.Scan.PlaceholderPatterns, []string{"TODO"}) {
		t.Errorf("PlaceholderPatterns = %v, want [TODO]", cfg.Scan.PlaceholderPatterns)
	}
	if cfg.Output.Dir != "docs/diagrams" {
		t.Errorf("Output.Dir = %q, want docs/diagrams", cfg.Output.Dir)
	}

	// Settings the file omits keep their defaults.
	def := Default()
	if !reflect.DeepEqual(cfg.Scan.IgnoreDirs, def.Scan.IgnoreDirs) {
		t.Errorf("IgnoreDirs = %v, want default %v", cfg.Scan.IgnoreDirs, def.Scan.IgnoreDirs)
	}
	if cfg.Output.Graph != def.Output.Graph {
		t.Errorf("Output.Graph = %q, want default %q", cfg.Output.Graph, def.Output.Graph)
	}
	if cfg.Output.MarkerStart != def.Output.MarkerStart {
		t.Errorf("Output.MarkerStart = %q, want default %q", cfg.Output.MarkerStart, def.Output.MarkerStart)
	}
}

func TestLoadDisableInjection(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	if err := os.WriteFile(path, []byte("[output]\nreadme = \"\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Output.Readme != "" {
		t.Errorf("Output.Readme = %q, want empty", cfg.Output.Readme)
	}
}

func TestLoadMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	if err := os.WriteFile(path, []byte("[scan\nnot toml"), 0o644); err != nil {
		t.Fatal(err)
	}

	_, err := Load(path)
	if err == nil {
		t.Fatal("Load() should fail on malformed TOML")
	}
	if !errors.Is(err, errors.ErrCodeInvalidConfig) {
		t.Errorf("Load() error code = %v, want INVALID_CONFIG", errors.GetCode(err))
	}
}

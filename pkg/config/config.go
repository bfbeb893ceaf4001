// Package config loads the optional envgraph.toml configuration file.
//
// Every setting has a default matching the conventional repository layout, so
// a missing configuration file is not an error. The file exists mainly to
// override the placeholder-path patterns and the scaffolding exclusion sets,
// which are heuristics that vary between repositories.
//
// # Example
//
//	[scan]
//	ignore_dirs = ["template", ".git", ".github", "docs"]
//	placeholder_patterns = ["<", ">", "path"]
//
//	[output]
//	dir = "diagrams"
//	readme = "README.md"
package config

import (
	"os"

	"github.com/BurntSushi/toml"

	"github.com/envgraph/envgraph/pkg/errors"
)

// FileName is the configuration file looked up at the repository root.
const FileName = "envgraph.toml"

// Config holds all tool settings.
type Config struct {
	Scan   Scan   `toml:"scan"`
	Output Output `toml:"output"`
}

// Scan configures environment discovery.
type Scan struct {
	// IgnoreDirs are top-level directory names skipped during discovery.
	IgnoreDirs []string `toml:"ignore_dirs"`

	// ExcludeNames are environment names treated as scaffolding templates.
	ExcludeNames []string `toml:"exclude_names"`

	// PlaceholderPatterns mark unresolved requirement paths. A missing
	// referenced file whose path contains one of these substrings is skipped
	// without a warning.
	PlaceholderPatterns []string `toml:"placeholder_patterns"`
}

// Output configures the generated artifacts.
type Output struct {
	// Dir is the directory for generated files, relative to the root.
	Dir string `toml:"dir"`

	// Graph is the Mermaid graph file name.
	Graph string `toml:"graph"`

	// Report is the cluster report file name.
	Report string `toml:"report"`

	// Readme is the document receiving the injected graph, relative to the
	// root. Empty disables injection.
	Readme string `toml:"readme"`

	// MarkerStart and MarkerEnd delimit the injected block in the readme.
	MarkerStart string `toml:"marker_start"`
	MarkerEnd   string `toml:"marker_end"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		Scan: Scan{
			IgnoreDirs:          []string{"template", ".git", ".github"},
			ExcludeNames:        []string{"envname", "template"},
			PlaceholderPatterns: []string{"<", ">", "path"},
		},
		Output: Output{
			Dir:         "diagrams",
			Graph:       "dependency-graph.mmd",
			Report:      "dependency-clusters.txt",
			Readme:      "README.md",
			MarkerStart: "<!-- DEP_GRAPH_START -->",
			MarkerEnd:   "<!-- DEP_GRAPH_END -->",
		},
	}
}

// Load reads the configuration file at path, applying defaults for any
// setting the file omits. A missing file yields the defaults; a present but
// malformed file is an INVALID_CONFIG error.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, errors.Wrap(errors.ErrCodeInvalidConfig, err, "cannot read %s", path)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, errors.Wrap(errors.ErrCodeInvalidConfig, err, "cannot parse %s", path)
	}
	return cfg, nil
}

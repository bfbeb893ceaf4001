package envscan

import (
	"os"
	"path/filepath"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/envgraph/envgraph/pkg/errors"
)

// EnvFileName is the environment definition file looked up in each
// top-level directory.
const EnvFileName = "environment.yml"

// requirementsMarker prefixes pip entries that reference an external
// requirement-list file.
const requirementsMarker = "-r"

// Scan walks the top-level directories under root and resolves every
// qualifying environment definition into its package map.
//
// The returned map is keyed by environment name (the YAML name field, falling
// back to the directory name). Environments whose name matches a known
// placeholder identifier are excluded. A present but malformed environment.yml
// aborts the scan with an INVALID_MANIFEST error; missing referenced
// requirement files merely contribute no packages.
func Scan(root string, opts Options) (map[string]Packages, error) {
	opts = opts.WithDefaults()

	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "cannot read repository root %s", root)
	}

	envs := make(map[string]Packages)
	for _, entry := range entries {
		if !entry.IsDir() || slices.Contains(opts.IgnoreDirs, entry.Name()) {
			continue
		}

		envDir := filepath.Join(root, entry.Name())
		envPath := filepath.Join(envDir, EnvFileName)
		if _, err := os.Stat(envPath); err != nil {
			continue
		}

		name, pkgs, err := loadEnv(envDir, envPath, opts)
		if err != nil {
			return nil, err
		}
		if name == "" {
			name = entry.Name()
		}
		if opts.excludesName(name) {
			continue
		}
		envs[name] = pkgs
	}

	return envs, nil
}

// envFile mirrors the recognized subset of the environment.yml schema.
// Dependency entries are either plain scalars (ignored) or mappings with a
// pip key listing requirement strings.
type envFile struct {
	Name         string `yaml:"name"`
	Dependencies []any  `yaml:"dependencies"`
}

// loadEnv parses one environment definition and resolves its pip references.
func loadEnv(envDir, envPath string, opts Options) (string, Packages, error) {
	data, err := os.ReadFile(envPath)
	if err != nil {
		return "", nil, errors.Wrap(errors.ErrCodeInvalidManifest, err, "cannot read %s", envPath)
	}

	var def envFile
	if err := yaml.Unmarshal(data, &def); err != nil {
		return "", nil, errors.Wrap(errors.ErrCodeInvalidManifest, err, "cannot parse %s", envPath)
	}

	pkgs := make(Packages)
	for _, relPath := range pipRequirementRefs(def.Dependencies) {
		resolved, err := resolveRequirements(envDir, relPath, opts)
		if err != nil {
			return "", nil, err
		}
		for name, version := range resolved {
			pkgs[name] = version
		}
	}

	return def.Name, pkgs, nil
}

// pipRequirementRefs extracts the relative paths of referenced requirement
// files from a dependency list. Only "-r <path>" pip entries are recognized;
// everything else contributes nothing.
func pipRequirementRefs(deps []any) []string {
	var refs []string
	for _, dep := range deps {
		mapping, ok := dep.(map[string]any)
		if !ok {
			continue
		}
		pip, ok := mapping["pip"].([]any)
		if !ok {
			continue
		}
		for _, entry := range pip {
			s, ok := entry.(string)
			if !ok || !strings.HasPrefix(s, requirementsMarker) {
				continue
			}
			fields := strings.Fields(s)
			if len(fields) < 2 || fields[0] != requirementsMarker {
				continue
			}
			refs = append(refs, strings.TrimSpace(strings.TrimPrefix(s, requirementsMarker)))
		}
	}
	return refs
}

package envscan

import (
	"bufio"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/envgraph/envgraph/pkg/errors"
)

// reqLineRE matches one requirement specifier: a package name with an
// optional pinned version (name or name==version). Name characters are
// limited to alphanumerics, underscore, dot and hyphen.
var reqLineRE = regexp.MustCompile(`^([A-Za-z0-9_.-]+)(?:==(\S+))?`)

// resolveRequirements parses the requirement file referenced as relPath from
// envDir. A missing file is never an error: placeholder paths are ignored
// silently, anything else produces a warning and an empty contribution.
func resolveRequirements(envDir, relPath string, opts Options) (Packages, error) {
	path := filepath.Join(envDir, relPath)

	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			if !opts.isPlaceholder(relPath) {
				opts.Warn("requirements file not found: %s", path)
			}
			return Packages{}, nil
		}
		// Present but unreadable files are a fatal input problem.
		return nil, errors.Wrap(errors.ErrCodeInvalidManifest, err, "cannot read %s", path)
	}
	defer f.Close()

	return parseRequirements(f), nil
}

// parseRequirements reads specifiers line by line. Blank lines and comments
// are skipped; lines that do not match the specifier pattern are silently
// dropped. Names are normalized before being stored, so later declarations of
// a textual variant overwrite earlier ones.
func parseRequirements(f *os.File) Packages {
	pkgs := make(Packages)

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		// Skip blanks, comments and pip option lines (-r, --index-url, ...).
		if line == "" || line[0] == '#' || line[0] == '-' {
			continue
		}

		m := reqLineRE.FindStringSubmatch(line)
		if m == nil {
			continue
		}

		name := Normalize(m[1])
		if m[2] != "" {
			pkgs[name] = Pin(m[2])
		} else {
			pkgs[name] = Unpinned
		}
	}

	return pkgs
}

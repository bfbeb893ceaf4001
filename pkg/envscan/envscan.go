// Package envscan discovers environment definitions in a repository tree and
// resolves each one to a flat package → version mapping.
//
// An environment is a top-level directory containing an environment.yml file.
// The YAML declares a name and a dependency list; pip entries of the form
// "-r <relative-path>" pull in a line-oriented requirements file whose
// specifiers contribute the environment's packages.
//
// Scanning degrades gracefully: missing referenced files contribute nothing
// (with a warning unless the path is a recognized placeholder), and malformed
// requirement lines are skipped. A present but unparseable environment.yml is
// fatal and aborts the scan.
package envscan

import "strings"

// Version is a declared package version. The zero value means the
// environment accepts any version.
type Version struct {
	Pinned bool   // whether a version was pinned with ==
	Value  string // the pinned version, empty when not pinned
}

// Unpinned is the Version for a bare package specifier.
var Unpinned = Version{}

// Pin returns a pinned Version for v.
func Pin(v string) Version {
	return Version{Pinned: true, Value: v}
}

// Packages maps canonical package names to their declared version.
type Packages map[string]Version

// Options configures repository scanning.
type Options struct {
	// IgnoreDirs are top-level directory names skipped during discovery.
	IgnoreDirs []string

	// ExcludeNames are environment names (case-insensitive) treated as
	// scaffolding templates and dropped from the result.
	ExcludeNames []string

	// PlaceholderPatterns mark referenced requirement paths as unresolved
	// placeholders. A missing file whose declared path contains one of these
	// substrings (case-insensitive) is ignored without a warning.
	PlaceholderPatterns []string

	// Warn receives diagnostics for recoverable input gaps. Optional.
	Warn func(format string, args ...any)
}

// Default scan settings.
var (
	DefaultIgnoreDirs          = []string{"template", ".git", ".github"}
	DefaultExcludeNames        = []string{"envname", "template"}
	DefaultPlaceholderPatterns = []string{"<", ">", "path"}
)

// WithDefaults returns a copy of Options with zero values replaced by defaults.
func (o Options) WithDefaults() Options {
	opts := o
	if opts.IgnoreDirs == nil {
		opts.IgnoreDirs = DefaultIgnoreDirs
	}
	if opts.ExcludeNames == nil {
		opts.ExcludeNames = DefaultExcludeNames
	}
	if opts.PlaceholderPatterns == nil {
		opts.PlaceholderPatterns = DefaultPlaceholderPatterns
	}
	if opts.Warn == nil {
		opts.Warn = func(string, ...any) {}
	}
	return opts
}

// Normalize returns the canonical form of a package name: case-folded with
// hyphens collapsed to underscores, so My-Package and my_package compare equal.
func Normalize(name string) string {
	return strings.ToLower(strings.ReplaceAll(name, "-", "_"))
}

// isPlaceholder reports whether a declared requirement path looks like an
// unresolved template placeholder (e.g. "<path-to-requirements>").
func (o Options) isPlaceholder(relPath string) bool {
	lower := strings.ToLower(relPath)
	for _, pat := range o.PlaceholderPatterns {
		if strings.Contains(lower, strings.ToLower(pat)) {
			return true
		}
	}
	return false
}

// excludesName reports whether an environment name is a known scaffolding
// placeholder identifier.
func (o Options) excludesName(name string) bool {
	for _, ex := range o.ExcludeNames {
		if strings.EqualFold(name, ex) {
			return true
		}
	}
	return false
}

// Package cluster groups packages by the exact set of environments that
// declare them and indexes declared versions to detect drift.
//
// The partition is the central invariant of envgraph: every declared package
// belongs to exactly one cluster, and clusters are disjoint. Both Partition
// and Index are pure functions of their input; the slices they return carry an
// explicit lexicographic ordering so that downstream renderers produce
// identical output regardless of discovery order.
package cluster

import (
	"maps"
	"slices"
	"strings"

	"github.com/envgraph/envgraph/pkg/envscan"
)

// Sentinel recorded in the version index for packages declared without a
// pinned version.
const Sentinel = "*"

// Cluster is the maximal set of packages declared by exactly the same set of
// environments. Both slices are sorted lexicographically.
type Cluster struct {
	Envs     []string
	Packages []string
}

// Label returns the cluster's environment names joined with sep, in sorted
// order.
func (c Cluster) Label(sep string) string {
	return strings.Join(c.Envs, sep)
}

// VersionIndex maps each canonical package name to the set of distinct
// version strings declared for it across all environments, with Sentinel
// standing in for "any version".
type VersionIndex map[string]map[string]struct{}

// Index builds the version index for all environments.
func Index(envs map[string]envscan.Packages) VersionIndex {
	ix := make(VersionIndex)
	for _, pkgs := range envs {
		for pkg, version := range pkgs {
			set, ok := ix[pkg]
			if !ok {
				set = make(map[string]struct{})
				ix[pkg] = set
			}
			if version.Pinned {
				set[version.Value] = struct{}{}
			} else {
				set[Sentinel] = struct{}{}
			}
		}
	}
	return ix
}

// Drift reports whether pkg was declared with more than one distinct version
// across environments. The sentinel counts as a distinct entry, so a package
// pinned in one environment and left open in another drifts.
func (ix VersionIndex) Drift(pkg string) bool {
	return len(ix[pkg]) > 1
}

// Versions returns the sorted version set for pkg, including the sentinel.
func (ix VersionIndex) Versions(pkg string) []string {
	return slices.Sorted(maps.Keys(ix[pkg]))
}

// Pinned returns the sorted non-sentinel versions declared for pkg.
func (ix VersionIndex) Pinned(pkg string) []string {
	var out []string
	for v := range ix[pkg] {
		if v != Sentinel {
			out = append(out, v)
		}
	}
	slices.Sort(out)
	return out
}

// Partition inverts the environment → packages relation and groups packages
// whose declaring environment set is identical. The grouping key is the set
// of environment names, independent of discovery order: the canonical sorted
// name sequence stands in for the unordered set.
//
// Clusters are returned sorted by (environment-set size, lexicographic order
// of the sorted names), so smaller clusters come first.
func Partition(envs map[string]envscan.Packages) []Cluster {
	pkgEnvs := make(map[string][]string)
	for env, pkgs := range envs {
		for pkg := range pkgs {
			pkgEnvs[pkg] = append(pkgEnvs[pkg], env)
		}
	}

	groups := make(map[string]*Cluster)
	for pkg, owners := range pkgEnvs {
		slices.Sort(owners)
		key := strings.Join(owners, "\x00")
		g, ok := groups[key]
		if !ok {
			g = &Cluster{Envs: owners}
			groups[key] = g
		}
		g.Packages = append(g.Packages, pkg)
	}

	clusters := make([]Cluster, 0, len(groups))
	for _, g := range groups {
		slices.Sort(g.Packages)
		clusters = append(clusters, *g)
	}
	slices.SortFunc(clusters, compareClusters)
	return clusters
}

// compareClusters orders by environment-set size, then lexicographically on
// the sorted environment names.
func compareClusters(a, b Cluster) int {
	if d := len(a.Envs) - len(b.Envs); d != 0 {
		return d
	}
	return slices.Compare(a.Envs, b.Envs)
}

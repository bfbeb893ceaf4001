package cluster

import (
	"reflect"
	"testing"

	"github.com/envgraph/envgraph/pkg/envscan"
)

// fixture returns the canonical two-environment scenario: numpy drifts
// between a and b, requests is shared unpinned.
func fixture() map[string]envscan.Packages {
	return map[string]envscan.Packages{
		"a": {
			"numpy":    envscan.Pin("1.0"),
			"requests": envscan.Unpinned,
		},
		"b": {
			"numpy":    envscan.Pin("2.0"),
			"requests": envscan.Unpinned,
		},
	}
}

func TestPartitionGroupsByEnvironmentSet(t *testing.T) {
	envs := fixture()
	envs["a"]["flask"] = envscan.Pin("3.0")

	clusters := Partition(envs)

	want := []Cluster{
		{Envs: []string{"a"}, Packages: []string{"flask"}},
		{Envs: []string{"a", "b"}, Packages: []string{"numpy", "requests"}},
	}
	if !reflect.DeepEqual(clusters, want) {
		t.Errorf("Partition() = %+v, want %+v", clusters, want)
	}
}

func TestPartitionIsTruePartition(t *testing.T) {
	envs := map[string]envscan.Packages{
		"etl":     {"numpy": envscan.Pin("1.0"), "pandas": envscan.Unpinned, "airflow": envscan.Pin("2.8")},
		"ml":      {"numpy": envscan.Pin("1.0"), "pandas": envscan.Unpinned, "torch": envscan.Pin("2.1")},
		"serving": {"numpy": envscan.Pin("2.0"), "fastapi": envscan.Unpinned},
	}

	clusters := Partition(envs)

	declared := make(map[string]bool)
	for _, pkgs := range envs {
		for pkg := range pkgs {
			declared[pkg] = true
		}
	}

	seen := make(map[string]int)
	for _, c := range clusters {
		for _, pkg := range c.Packages {
			seen[pkg]++
		}
	}

	if len(seen) != len(declared) {
		t.Errorf("partition covers %d packages, want %d", len(seen), len(declared))
	}
	for pkg, count := range seen {
		if !declared[pkg] {
			t.Errorf("package %q in partition but never declared", pkg)
		}
		if count != 1 {
			t.Errorf("package %q appears in %d clusters, want exactly 1", pkg, count)
		}
	}
}

func TestPartitionIsOrderIndependent(t *testing.T) {
	// Build the same logical input twice with different insertion orders.
	// Go maps are unordered, but the explicit rebuild guards against any
	// dependence on construction sequence.
	first := Partition(fixture())

	permuted := map[string]envscan.Packages{}
	permuted["b"] = envscan.Packages{"requests": envscan.Unpinned, "numpy": envscan.Pin("2.0")}
	permuted["a"] = envscan.Packages{"requests": envscan.Unpinned, "numpy": envscan.Pin("1.0")}
	second := Partition(permuted)

	if !reflect.DeepEqual(first, second) {
		t.Errorf("partition depends on discovery order:\n first = %+v\nsecond = %+v", first, second)
	}
}

func TestPartitionOrdering(t *testing.T) {
	envs := map[string]envscan.Packages{
		"a": {"shared3": envscan.Unpinned, "pair_ab": envscan.Unpinned, "only_a": envscan.Unpinned},
		"b": {"shared3": envscan.Unpinned, "pair_ab": envscan.Unpinned},
		"c": {"shared3": envscan.Unpinned, "only_c": envscan.Unpinned},
	}

	clusters := Partition(envs)

	var keys [][]string
	for _, c := range clusters {
		keys = append(keys, c.Envs)
	}
	want := [][]string{
		{"a"},
		{"c"},
		{"a", "b"},
		{"a", "b", "c"},
	}
	if !reflect.DeepEqual(keys, want) {
		t.Errorf("cluster order = %v, want %v", keys, want)
	}
}

func TestIndexVersionSets(t *testing.T) {
	ix := Index(fixture())

	if got := ix.Versions("numpy"); !reflect.DeepEqual(got, []string{"1.0", "2.0"}) {
		t.Errorf("Versions(numpy) = %v, want [1.0 2.0]", got)
	}
	if got := ix.Versions("requests"); !reflect.DeepEqual(got, []string{Sentinel}) {
		t.Errorf("Versions(requests) = %v, want [*]", got)
	}
}

func TestDrift(t *testing.T) {
	tests := []struct {
		name string
		envs map[string]envscan.Packages
		pkg  string
		want bool
	}{
		{
			name: "different pins drift",
			envs: fixture(),
			pkg:  "numpy",
			want: true,
		},
		{
			name: "identical pins do not drift",
			envs: map[string]envscan.Packages{
				"a": {"flask": envscan.Pin("3.0")},
				"b": {"flask": envscan.Pin("3.0")},
			},
			pkg:  "flask",
			want: false,
		},
		{
			name: "unpinned everywhere does not drift",
			envs: fixture(),
			pkg:  "requests",
			want: false,
		},
		{
			name: "pinned and unpinned drift",
			envs: map[string]envscan.Packages{
				"a": {"flask": envscan.Pin("3.0")},
				"b": {"flask": envscan.Unpinned},
			},
			pkg:  "flask",
			want: true,
		},
		{
			name: "declared in one environment only",
			envs: map[string]envscan.Packages{
				"a": {"flask": envscan.Pin("3.0")},
			},
			pkg:  "flask",
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Index(tt.envs).Drift(tt.pkg); got != tt.want {
				t.Errorf("Drift(%q) = %v, want %v", tt.pkg, got, tt.want)
			}
		})
	}
}

func TestPinnedExcludesSentinel(t *testing.T) {
	ix := Index(map[string]envscan.Packages{
		"a": {"flask": envscan.Pin("3.0")},
		"b": {"flask": envscan.Unpinned},
		"c": {"flask": envscan.Pin("2.3")},
	})

	if got := ix.Pinned("flask"); !reflect.DeepEqual(got, []string{"2.3", "3.0"}) {
		t.Errorf("Pinned(flask) = %v, want [2.3 3.0]", got)
	}
}

func TestLabel(t *testing.T) {
	c := Cluster{Envs: []string{"a", "b", "c"}}
	if got := c.Label(" + "); got != "a + b + c" {
		t.Errorf("Label() = %q, want %q", got, "a + b + c")
	}
	if got := c.Label(", "); got != "a, b, c" {
		t.Errorf("Label() = %q, want %q", got, "a, b, c")
	}
}

package report

import (
	"testing"

	"github.com/envgraph/envgraph/pkg/cluster"
	"github.com/envgraph/envgraph/pkg/envscan"
)

func TestRenderGolden(t *testing.T) {
	envs := map[string]envscan.Packages{
		"a": {"numpy": envscan.Pin("1.0"), "requests": envscan.Unpinned},
		"b": {"numpy": envscan.Pin("2.0"), "requests": envscan.Unpinned},
	}

	want := "📦 Dependency Clusters\n\n[a, b]\n  - numpy\n  - requests\n"
	if got := Render(cluster.Partition(envs)); got != want {
		t.Errorf("Render() = %q, want %q", got, want)
	}
}

func TestRenderMultipleSections(t *testing.T) {
	envs := map[string]envscan.Packages{
		"a": {"shared": envscan.Unpinned, "only_a": envscan.Unpinned},
		"b": {"shared": envscan.Unpinned},
	}

	want := "📦 Dependency Clusters\n\n[a]\n  - only_a\n\n[a, b]\n  - shared\n"
	if got := Render(cluster.Partition(envs)); got != want {
		t.Errorf("Render() = %q, want %q", got, want)
	}
}

func TestRenderEmptyPartition(t *testing.T) {
	if got := Render(nil); got != Banner+"\n" {
		t.Errorf("Render(nil) = %q, want banner only", got)
	}
}

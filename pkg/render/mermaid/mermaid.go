// Package mermaid renders the cluster partition as a Mermaid graph.
//
// Each cluster becomes one subgraph whose identifier is derived
// deterministically from the sorted environment names, so the same cluster
// always renders with the same identifier across runs. Drift-flagged packages
// get a visible marker in their label plus a style directive emitted after
// all subgraphs.
package mermaid

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/envgraph/envgraph/pkg/cluster"
)

// DriftMarker is appended to node labels of packages whose declared version
// differs across environments.
const DriftMarker = " ⚠️"

// driftStyle is the Mermaid style directive attached to every drift node.
const driftStyle = "fill:#ffe6e6,stroke:#ff0000,stroke-width:2px"

var unsafeIDRE = regexp.MustCompile(`[^A-Za-z0-9_]`)

// nodeID sanitizes a label into the safe Mermaid identifier alphabet.
func nodeID(label string) string {
	return unsafeIDRE.ReplaceAllString(label, "_")
}

// clusterID derives the deterministic subgraph identifier for a cluster.
func clusterID(c cluster.Cluster) string {
	return nodeID("cluster_" + c.Label("_"))
}

// NodeLabel formats the display label for a package. If any pinned version
// exists the lexicographically smallest one is shown; drift appends the
// marker.
func NodeLabel(pkg string, index cluster.VersionIndex) string {
	label := pkg
	if pinned := index.Pinned(pkg); len(pinned) > 0 {
		label = fmt.Sprintf("%s==%s", pkg, pinned[0])
	}
	if index.Drift(pkg) {
		label += DriftMarker
	}
	return label
}

// Render produces the Mermaid graph description for a partition. The output
// is a pure function of its inputs: clusters arrive pre-sorted from
// [cluster.Partition] and packages within each subgraph are already in
// lexicographic order.
func Render(clusters []cluster.Cluster, index cluster.VersionIndex) string {
	lines := []string{"graph TD"}
	var driftNodes []string

	for _, c := range clusters {
		lines = append(lines, "", fmt.Sprintf("  subgraph %s[%q]", clusterID(c), c.Label(" + ")))
		for _, pkg := range c.Packages {
			label := NodeLabel(pkg, index)
			id := nodeID(label)
			lines = append(lines, fmt.Sprintf("    %s[%s]", id, label))
			if index.Drift(pkg) {
				driftNodes = append(driftNodes, id)
			}
		}
		lines = append(lines, "  end")
	}

	if len(driftNodes) > 0 {
		lines = append(lines, "")
		for _, id := range driftNodes {
			lines = append(lines, fmt.Sprintf("  style %s %s", id, driftStyle))
		}
	}

	return strings.Join(lines, "\n") + "\n"
}

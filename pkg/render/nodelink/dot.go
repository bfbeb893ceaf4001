// Package nodelink converts the cluster partition to Graphviz DOT and
// optionally renders it to SVG.
//
// This is an alternative projection of the same partition the Mermaid
// renderer emits: one DOT cluster subgraph per environment set, one node per
// package, drift nodes filled red. The DOT text can be rendered without any
// external binaries via the embedded Graphviz engine.
package nodelink

import (
	"bytes"
	"context"
	"fmt"

	"github.com/goccy/go-graphviz"

	"github.com/envgraph/envgraph/pkg/cluster"
	"github.com/envgraph/envgraph/pkg/render/mermaid"
)

// ToDOT converts a partition to Graphviz DOT format. Subgraph names carry the
// cluster_ prefix so Graphviz draws them as visual groupings. The resulting
// string can be rendered with [RenderSVG].
func ToDOT(clusters []cluster.Cluster, index cluster.VersionIndex) string {
	var buf bytes.Buffer
	buf.WriteString("digraph dependencies {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white];\n")

	for i, c := range clusters {
		fmt.Fprintf(&buf, "\n  subgraph cluster_%d {\n", i)
		fmt.Fprintf(&buf, "    label=%q;\n", c.Label(" + "))
		for _, pkg := range c.Packages {
			label := mermaid.NodeLabel(pkg, index)
			if index.Drift(pkg) {
				fmt.Fprintf(&buf, "    %q [label=%q, fillcolor=\"#ffe6e6\", color=\"#ff0000\"];\n", pkg, label)
			} else {
				fmt.Fprintf(&buf, "    %q [label=%q];\n", pkg, label)
			}
		}
		buf.WriteString("  }\n")
	}

	buf.WriteString("}\n")
	return buf.String()
}

// RenderSVG renders a DOT graph to SVG using the embedded Graphviz engine.
func RenderSVG(dot string) ([]byte, error) {
	ctx := context.Background()
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}

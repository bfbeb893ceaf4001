// Package report renders the cluster partition as a plain-text listing.
//
// The report is a textual projection of the same partition the graph renderer
// consumes: same clusters, same ordering, same package sets.
package report

import (
	"strings"

	"github.com/envgraph/envgraph/pkg/cluster"
)

// Banner is the fixed first line of every cluster report.
const Banner = "📦 Dependency Clusters"

// Render produces the cluster report. Each section is headed by the
// comma-joined sorted environment names in brackets, followed by one indented
// line per package. Sections are separated by a blank line and the report
// ends with a single trailing newline.
func Render(clusters []cluster.Cluster) string {
	lines := []string{Banner}

	for _, c := range clusters {
		lines = append(lines, "", "["+c.Label(", ")+"]")
		for _, pkg := range c.Packages {
			lines = append(lines, "  - "+pkg)
		}
	}

	return strings.Join(lines, "\n") + "\n"
}

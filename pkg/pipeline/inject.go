package pipeline

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/envgraph/envgraph/pkg/errors"
)

// injectGraph replaces the content between the marker lines in the document
// at path with a fenced Mermaid block containing src. A missing document or
// missing markers produce a warning and skip the injection; only a failed
// read or write of a present document is an error.
func injectGraph(path, markerStart, markerEnd, src string, logger *log.Logger) (bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			logger.Warnf("%s not found - skipping injection", path)
			return false, nil
		}
		return false, errors.Wrap(errors.ErrCodeWriteFailed, err, "cannot read %s", path)
	}

	text := string(data)
	if !strings.Contains(text, markerStart) || !strings.Contains(text, markerEnd) {
		logger.Warnf("markers not found in %s - skipping injection", path)
		return false, nil
	}

	before, rest, _ := strings.Cut(text, markerStart)
	_, after, _ := strings.Cut(rest, markerEnd)

	injected := fmt.Sprintf("%s%s\n\n```mermaid\n%s```\n\n%s%s",
		before, markerStart, src, markerEnd, after)

	if err := os.WriteFile(path, []byte(injected), 0o644); err != nil {
		return false, errors.Wrap(errors.ErrCodeWriteFailed, err, "cannot write %s", path)
	}
	return true, nil
}

// Package labels is the boundary to the AI label producer. In the normal
// flow photos arrive from the backend already labeled; the analyzer exists
// for photos that reach the workbench before the pipeline has run.
package labels

import (
	"context"
	"io"
	"strings"
)

// Prompt is the shared prompt used by all label analyzers.
const Prompt = `List the notable objects and damage visible in this photo of a
flood-damaged home. Respond in plain text, one short label per line, most
prominent first. Labels only, no commentary.`

// Analyzer produces labels for a photo image.
type Analyzer interface {
	Labels(ctx context.Context, r io.Reader, mimeType string) ([]string, error)
}

// ParseLabels parses a line-oriented model response into a deduplicated
// label list, preserving response order.
func ParseLabels(raw string) []string {
	lines := strings.Split(raw, "\n")
	labels := make([]string, 0, len(lines))
	seen := make(map[string]bool)

	for _, line := range lines {
		line = strings.TrimSpace(line)
		line = strings.TrimPrefix(line, "- ")
		line = strings.TrimPrefix(line, "* ")
		if line == "" {
			continue
		}
		// Skip conversational preamble the model sometimes adds.
		if strings.HasPrefix(line, "Here") || strings.HasPrefix(line, "I see") || strings.HasPrefix(line, "Based on") {
			continue
		}
		key := strings.ToLower(line)
		if seen[key] {
			continue
		}
		seen[key] = true
		labels = append(labels, line)
	}

	return labels
}

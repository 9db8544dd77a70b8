package pipeline

import (
	"strings"

	"github.com/google/uuid"
)

// Path is an immutable hierarchical segment name, displayed with "/"
// between labels.
type Path struct {
	labels []string
}

// NewPath creates a path from the given labels. Empty labels are dropped.
func NewPath(labels ...string) Path {
	kept := make([]string, 0, len(labels))
	for _, l := range labels {
		if l != "" {
			kept = append(kept, l)
		}
	}
	return Path{labels: kept}
}

// ParsePath parses a "/"-joined location string into a Path.
func ParsePath(location string) Path {
	return NewPath(strings.Split(location, "/")...)
}

// Child returns a new path with label appended.
func (p Path) Child(label string) Path {
	labels := make([]string, len(p.labels), len(p.labels)+1)
	copy(labels, p.labels)
	return Path{labels: append(labels, label)}
}

// Split returns the path's labels in order.
func (p Path) Split() []string {
	out := make([]string, len(p.labels))
	copy(out, p.labels)
	return out
}

// Name returns the last label, or "" for an empty path.
func (p Path) Name() string {
	if len(p.labels) == 0 {
		return ""
	}
	return p.labels[len(p.labels)-1]
}

// Len returns the number of labels in the path.
func (p Path) Len() int { return len(p.labels) }

// String returns the labels joined by "/".
func (p Path) String() string { return strings.Join(p.labels, "/") }

// generateLabel produces a unique identifier for a segment declared without
// a label.
func generateLabel(kind Kind) string {
	id := uuid.NewString()
	return kind.String() + "-" + id[:8]
}

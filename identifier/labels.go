package identifier

import (
	"log/slog"
	"os"
	"sync"

	"gopkg.in/yaml.v3"
)

// Resolved pairs a canonical identifier with a human-readable label.
type Resolved struct {
	ID    string
	Label string
}

// LabelResolver resolves display labels for canonical identifiers from a
// local reference dataset. A missing or unreadable dataset is not an
// error: resolution degrades to the supplied fallback label, then to the
// canonical identifier itself.
type LabelResolver struct {
	path string

	once   sync.Once
	labels map[string]string
}

// NewLabelResolver creates a resolver backed by the YAML dataset at path.
// An empty path means no dataset; every lookup falls back.
func NewLabelResolver(path string) *LabelResolver {
	return &LabelResolver{path: path}
}

// ResolveWithFallback canonicalizes the raw identifier and attaches the
// best label available: the dataset entry, else the fallback label, else
// the canonical identifier. It returns nil only when the identifier
// itself does not canonicalize.
func (r *LabelResolver) ResolveWithFallback(raw, fallbackLabel string) *Resolved {
	canonical, _ := Canonicalize(raw)
	if canonical == "" {
		return nil
	}

	if label, ok := r.lookup(canonical); ok {
		return &Resolved{ID: canonical, Label: label}
	}
	if fallbackLabel != "" {
		return &Resolved{ID: canonical, Label: fallbackLabel}
	}
	return &Resolved{ID: canonical, Label: canonical}
}

func (r *LabelResolver) lookup(canonical string) (string, bool) {
	r.once.Do(r.load)
	label, ok := r.labels[canonical]
	return label, ok
}

// load reads the dataset once. Failures are logged at debug level and
// otherwise silent, per the degrade-to-fallback contract.
func (r *LabelResolver) load() {
	r.labels = map[string]string{}
	if r.path == "" {
		return
	}

	data, err := os.ReadFile(r.path)
	if err != nil {
		slog.Debug("label dataset unavailable", "path", r.path, "err", err)
		return
	}

	var entries map[string]string
	if err := yaml.Unmarshal(data, &entries); err != nil {
		slog.Debug("label dataset unreadable", "path", r.path, "err", err)
		return
	}

	for id, label := range entries {
		canonical, _ := Canonicalize(id)
		if canonical != "" {
			r.labels[canonical] = label
		}
	}
}

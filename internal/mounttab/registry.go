// Package mounttab reads the persisted mount registry and the live
// kernel mount table, resolves partition labels to device nodes, and
// manages temporary scoped mounts.
package mounttab

import (
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/skyforge/swiget/core"
)

// DefaultRegistryPath is the well-known location of the system mount
// registry.
const DefaultRegistryPath = "/etc/swiget/mounts.yml"

// registryFile mirrors the on-disk registry layout:
//
//	mounts:
//	  <label>:
//	    dir: <path>
type registryFile struct {
	Mounts map[string]struct {
		Dir string `yaml:"dir"`
	} `yaml:"mounts"`
}

// Registry provides read-only access to the label -> directory mount
// registry. The file is reread on every call: other system activity
// updates it outside this process, so nothing is cached.
type Registry struct {
	path string
}

// NewRegistry opens the registry at path, or the default location when
// path is empty.
func NewRegistry(path string) *Registry {
	if path == "" {
		path = DefaultRegistryPath
	}
	return &Registry{path: path}
}

// Lookup returns the directory registered for label. A missing label is
// not an error.
func (r *Registry) Lookup(label string) (string, bool, error) {
	recs, err := r.Records()
	if err != nil {
		return "", false, err
	}
	for _, rec := range recs {
		if rec.Label == label {
			return rec.Dir, true, nil
		}
	}
	return "", false, nil
}

// Records returns every registry record, sorted by label for stable
// iteration. Used for reverse lookup from a directory to its label.
func (r *Registry) Records() ([]core.MountRecord, error) {
	data, err := os.ReadFile(r.path)
	if err != nil {
		return nil, fmt.Errorf("read mount registry: %w", err)
	}
	var f registryFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse mount registry %s: %w", r.path, err)
	}
	recs := make([]core.MountRecord, 0, len(f.Mounts))
	for label, m := range f.Mounts {
		recs = append(recs, core.MountRecord{Label: label, Dir: m.Dir})
	}
	sort.Slice(recs, func(i, j int) bool { return recs[i].Label < recs[j].Label })
	return recs, nil
}

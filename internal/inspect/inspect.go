// Package inspect reads build metadata embedded in SWI archives.
//
// A SWI is a zip-structured bundle. Build time is taken from the most
// trusted source available: manifest.json timestamp fields, then the
// legacy plain-text version entry, then a timestamp embedded in the
// archive's own filename. When every source is absent the caller falls
// back to filesystem modification time.
package inspect

import (
	"archive/zip"
	"encoding/json"
	"io"
	"log/slog"

	"github.com/skyforge/swiget/core"
	"github.com/skyforge/swiget/internal/versionkey"
)

// Metadata entry names inside a SWI.
const (
	manifestEntry = "manifest.json"
	versionEntry  = "version"
)

// manifest mirrors the subset of manifest.json swiget cares about.
type manifest struct {
	Version struct {
		BuildTimestamp      string `json:"BUILD_TIMESTAMP"`
		FnameBuildTimestamp string `json:"FNAME_BUILD_TIMESTAMP"`
	} `json:"version"`
}

// Inspector ranks SWI archives by embedded build time.
type Inspector struct {
	logger *slog.Logger
}

// New creates an Inspector. A nil logger disables logging.
func New(logger *slog.Logger) *Inspector {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Inspector{logger: logger}
}

// BuildKey returns the most trusted build timestamp for the archive at
// path. The cascade is fixed: manifest.json, then the legacy version
// entry, then the path itself. Each tier is consulted only when the one
// above it comes up absent. The absent key tells the caller to fall back
// to file modification time.
func (i *Inspector) BuildKey(path string) core.VersionKey {
	zr, err := zip.OpenReader(path)
	if err != nil {
		i.logger.Debug("not a readable archive", "path", path, "err", err)
		return versionkey.Extract(path)
	}
	defer zr.Close()

	if key := i.manifestKey(&zr.Reader, path); key.Known() {
		return key
	}
	if key := i.versionEntryKey(&zr.Reader); key.Known() {
		return key
	}
	return versionkey.Extract(path)
}

// manifestKey reads manifest.json and parses its precomputed timestamp
// fields. BUILD_TIMESTAMP carries the colon form, FNAME_BUILD_TIMESTAMP
// the compact form; both are bare timestamps, not searched as substrings.
func (i *Inspector) manifestKey(zr *zip.Reader, path string) core.VersionKey {
	data, ok := readEntry(zr, manifestEntry)
	if !ok {
		return core.VersionKey{}
	}
	var m manifest
	if err := json.Unmarshal(data, &m); err != nil {
		i.logger.Debug("unparsable manifest", "path", path, "err", err)
		return core.VersionKey{}
	}
	if key := versionkey.Parse(versionkey.LayoutColon, m.Version.BuildTimestamp); key.Known() {
		return key
	}
	return versionkey.Parse(versionkey.LayoutCompact, m.Version.FnameBuildTimestamp)
}

// versionEntryKey scans the legacy plain-text version entry.
func (i *Inspector) versionEntryKey(zr *zip.Reader) core.VersionKey {
	data, ok := readEntry(zr, versionEntry)
	if !ok {
		return core.VersionKey{}
	}
	return versionkey.Extract(string(data))
}

// readEntry returns the contents of the named archive entry.
func readEntry(zr *zip.Reader, name string) ([]byte, bool) {
	for _, f := range zr.File {
		if f.Name != name {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return nil, false
		}
		defer rc.Close()
		data, err := io.ReadAll(rc)
		if err != nil {
			return nil, false
		}
		return data, true
	}
	return nil, false
}

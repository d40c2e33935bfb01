package swiget

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/skyforge/swiget/core"
)

// DefaultArchiveSuffix matches SWI archives during latest-selection.
const DefaultArchiveSuffix = ".swi"

// latestArchive picks the most recently built archive in dir. Candidates
// are ranked by embedded metadata and filename timestamps; filesystem
// modification time is consulted only when no candidate has a known key.
// The sort is ascending and stable, so equal keys keep directory listing
// order and the last examined candidate wins.
func (r *Resolver) latestArchive(dir string) (string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", fmt.Errorf("%w: list %s: %v", core.ErrTransport, dir, err)
	}

	var cands []core.ArchiveCandidate
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), r.archiveSuffix) {
			continue
		}
		p := filepath.Join(dir, e.Name())
		cands = append(cands, core.ArchiveCandidate{Path: p, Key: r.inspector.BuildKey(p)})
	}
	if len(cands) == 0 {
		return "", fmt.Errorf("%w: no %s archives in %s", core.ErrMissingArchive, r.archiveSuffix, dir)
	}

	known := false
	for _, c := range cands {
		if c.Key.Known() {
			known = true
			break
		}
	}
	if !known {
		for i := range cands {
			cands[i].Key = modTimeKey(cands[i].Path)
		}
	}

	sort.SliceStable(cands, func(i, j int) bool { return cands[i].Key.Before(cands[j].Key) })
	best := cands[len(cands)-1]
	r.logger.Debug("selected latest archive", "dir", dir, "path", best.Path)
	return best.Path, nil
}

// modTimeKey ranks an archive by filesystem modification time.
func modTimeKey(path string) core.VersionKey {
	fi, err := os.Stat(path)
	if err != nil {
		return core.VersionKey{}
	}
	return core.KeyAt(fi.ModTime())
}

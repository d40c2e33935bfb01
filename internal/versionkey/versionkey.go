// Package versionkey extracts build timestamps from version strings.
package versionkey

import (
	"regexp"
	"time"

	"github.com/skyforge/swiget/core"
)

// Timestamp layouts embedded in SWI metadata. The colon form appears in
// manifests and version markers, the compact form in filenames.
const (
	LayoutColon   = "2006-01-02.15:04"
	LayoutCompact = "2006-01-02.1504"
)

var (
	colonPattern   = regexp.MustCompile(`\d{4}-\d{2}-\d{2}\.\d{2}:\d{2}`)
	compactPattern = regexp.MustCompile(`\d{4}-\d{2}-\d{2}\.\d{4}`)
)

// Extract locates a build timestamp substring in s and parses it into a
// key. The colon form is tried before the compact form. Digits that match
// a pattern but do not form a valid time degrade to the absent key.
func Extract(s string) core.VersionKey {
	if m := colonPattern.FindString(s); m != "" {
		if t, err := time.Parse(LayoutColon, m); err == nil {
			return core.KeyAt(t)
		}
	}
	if m := compactPattern.FindString(s); m != "" {
		if t, err := time.Parse(LayoutCompact, m); err == nil {
			return core.KeyAt(t)
		}
	}
	return core.VersionKey{}
}

// Parse interprets s strictly as the given layout, with no substring
// search. Used for manifest fields that carry a bare timestamp.
func Parse(layout, s string) core.VersionKey {
	t, err := time.Parse(layout, s)
	if err != nil {
		return core.VersionKey{}
	}
	return core.KeyAt(t)
}

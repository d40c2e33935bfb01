// Package core provides the shared types and sentinel errors for swiget.
//
// This package exists to break import cycles between the root swiget package
// and internal implementation packages. The swiget package re-exports all
// public types from this package, so external users should import swiget
// directly, not swiget/core.
package core

import (
	"context"
	"errors"
	"io"
	"net"
	"strconv"
	"time"
)

// Sentinel errors for common failure conditions.
var (
	// ErrInvalidSpecifier indicates the location specifier is malformed or
	// uses an unknown addressing scheme.
	ErrInvalidSpecifier = errors.New("swiget: invalid specifier")

	// ErrNotFound indicates a label, device, or registry entry did not resolve.
	ErrNotFound = errors.New("swiget: not found")

	// ErrTransport indicates an external transport step failed
	// (download, mount, unmount, remote copy).
	ErrTransport = errors.New("swiget: transport failure")

	// ErrMissingArchive indicates the location resolved but the requested
	// archive is absent.
	ErrMissingArchive = errors.New("swiget: missing SWI")
)

// HostInfo is a parsed remote endpoint. Derived once per remote specifier
// and read-only thereafter.
type HostInfo struct {
	Host     string
	Port     int // 0 when the specifier carries no port
	User     string
	Password string
}

// Addr returns host:port, or the bare host when no port is set.
func (h HostInfo) Addr() string {
	if h.Port == 0 {
		return h.Host
	}
	return net.JoinHostPort(h.Host, strconv.Itoa(h.Port))
}

// MountRecord maps a logical mount label to its registered directory.
type MountRecord struct {
	Label string
	Dir   string
}

// LiveMount is one (device, directory) pair from the kernel mount table.
type LiveMount struct {
	Device string
	Dir    string
}

// Partition ties a filesystem label to its resolved device node.
type Partition struct {
	Label  string
	Device string
}

// VersionKey orders archives by build time. The zero value is the absent
// key, which sorts before every known key.
type VersionKey struct {
	t     time.Time
	known bool
}

// KeyAt returns a known key for the given build time.
func KeyAt(t time.Time) VersionKey {
	return VersionKey{t: t, known: true}
}

// Known reports whether the key carries a build time.
func (k VersionKey) Known() bool { return k.known }

// Time returns the build time; meaningful only when Known.
func (k VersionKey) Time() time.Time { return k.t }

// Before orders keys for sorting. Absent keys sort before known ones;
// two absent keys are equal.
func (k VersionKey) Before(o VersionKey) bool {
	switch {
	case !k.known && !o.known:
		return false
	case !k.known:
		return true
	case !o.known:
		return false
	default:
		return k.t.Before(o.t)
	}
}

// ArchiveCandidate pairs an archive path with its ranking key during
// latest-selection. Candidates are discarded once a path is chosen.
type ArchiveCandidate struct {
	Path string
	Key  VersionKey
}

// ProgressFunc reports transfer progress. total is -1 when unknown.
type ProgressFunc func(transferred, total int64)

// Runner executes external commands, blocking until completion.
// Resolution drives mount, umount, blkid, and the remote shell client
// through this interface so tests can substitute fakes.
type Runner interface {
	// Run executes the command and waits for it to exit.
	Run(ctx context.Context, name string, args ...string) error

	// Output executes the command and returns its standard output.
	Output(ctx context.Context, name string, args ...string) ([]byte, error)

	// Stream executes the command with extra environment entries and
	// writes its standard output to w.
	Stream(ctx context.Context, w io.Writer, env []string, name string, args ...string) error
}

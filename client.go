package swiget

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/skyforge/swiget/core"
	"github.com/skyforge/swiget/internal/inspect"
	"github.com/skyforge/swiget/internal/mounttab"
	"github.com/skyforge/swiget/internal/run"
)

// Resolver resolves SWI location specifiers to local filesystem paths.
//
// A Resolver handles one resolution at a time; it is not safe for
// concurrent use. The mount registry, block-id index, and kernel mount
// table are read fresh on every resolution.
type Resolver struct {
	registry  mountRegistry
	live      liveMounts
	locator   partitionLocator
	mounter   mounter
	inspector archiveInspector
	runner    core.Runner
	logger    *slog.Logger
	progress  core.ProgressFunc

	registryPath  string
	destDir       string
	archiveSuffix string
	tempDir       string
}

// New creates a Resolver.
//
// By default the resolver reads the system mount registry, queries blkid
// for partition labels, and invokes mount/umount for temporary mounts.
// Logging is disabled; use WithLogger to enable it.
func New(opts ...Option) (*Resolver, error) {
	r := &Resolver{
		logger:        slog.New(slog.NewTextHandler(io.Discard, nil)),
		archiveSuffix: DefaultArchiveSuffix,
	}

	for _, opt := range opts {
		if err := opt(r); err != nil {
			return nil, err
		}
	}

	// Wire up default implementations
	if r.runner == nil {
		r.runner = run.System{}
	}
	if r.registry == nil {
		r.registry = mounttab.NewRegistry(r.registryPath)
	}
	if r.live == nil {
		r.live = mounttab.NewLiveMounts()
	}
	if r.locator == nil {
		r.locator = mounttab.NewLocator(r.runner)
	}
	if r.mounter == nil {
		r.mounter = mounterAdapter{m: mounttab.NewMounter(r.runner, r.logger)}
	}
	if r.inspector == nil {
		r.inspector = inspect.New(r.logger)
	}

	return r, nil
}

// tempFile creates the destination file for a downloaded archive and
// returns its path.
func (r *Resolver) tempFile() (string, error) {
	f, err := os.CreateTemp(r.tempDir, "swiget-*.swi")
	if err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}
	f.Close()
	return f.Name(), nil
}

package swiget

import (
	"errors"
	"log/slog"

	"github.com/skyforge/swiget/core"
)

// Option configures a Resolver.
type Option func(*Resolver) error

// ProgressFunc reports transfer progress.
// Re-exported from core package.
type ProgressFunc = core.ProgressFunc

// Runner executes external commands on behalf of the resolver.
// Re-exported from core package.
type Runner = core.Runner

// WithLogger sets a logger for the resolver. By default, logging is
// disabled.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Resolver) error {
		if logger != nil {
			r.logger = logger
		}
		return nil
	}
}

// WithProgress sets a callback reporting download progress.
func WithProgress(fn ProgressFunc) Option {
	return func(r *Resolver) error {
		r.progress = fn
		return nil
	}
}

// WithRegistryPath overrides the mount registry location.
func WithRegistryPath(path string) Option {
	return func(r *Resolver) error {
		r.registryPath = path
		return nil
	}
}

// WithDestDir sets the permanent mountpoint a freshly created device
// mount is moved to, instead of staying at its temporary directory.
func WithDestDir(dir string) Option {
	return func(r *Resolver) error {
		r.destDir = dir
		return nil
	}
}

// WithArchiveSuffix overrides the archive suffix matched by the latest
// selector. The default is DefaultArchiveSuffix.
func WithArchiveSuffix(suffix string) Option {
	return func(r *Resolver) error {
		if suffix == "" {
			return errors.New("archive suffix cannot be empty")
		}
		r.archiveSuffix = suffix
		return nil
	}
}

// WithTempDir sets where downloaded archives land. Defaults to the
// system temp directory.
func WithTempDir(dir string) Option {
	return func(r *Resolver) error {
		r.tempDir = dir
		return nil
	}
}

// WithRunner sets the command runner used for mount, unmount, blkid, and
// the remote shell client.
func WithRunner(runner Runner) Option {
	return func(r *Resolver) error {
		r.runner = runner
		return nil
	}
}

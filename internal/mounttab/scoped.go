package mounttab

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"

	"github.com/skyforge/swiget/core"
)

// Mounter acquires temporary scoped mounts of block devices and NFS
// exports.
type Mounter struct {
	runner core.Runner
	logger *slog.Logger
}

// NewMounter creates a Mounter. A nil logger disables logging.
func NewMounter(runner core.Runner, logger *slog.Logger) *Mounter {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Mounter{runner: runner, logger: logger}
}

// Acquire mounts device at a fresh temporary directory and returns the
// scoped mount owning it.
func (m *Mounter) Acquire(ctx context.Context, device string) (*ScopedMount, error) {
	return m.acquire(ctx, device, device)
}

// AcquireNFS mounts the NFS export (host:/path) read-only with nolock at
// a fresh temporary directory. A non-zero port is passed through as a
// mount option.
func (m *Mounter) AcquireNFS(ctx context.Context, export string, port int) (*ScopedMount, error) {
	opts := "ro,nolock"
	if port != 0 {
		opts += ",port=" + strconv.Itoa(port)
	}
	return m.acquire(ctx, export, export, "-t", "nfs", "-o", opts)
}

func (m *Mounter) acquire(ctx context.Context, device, source string, extra ...string) (*ScopedMount, error) {
	dir, err := os.MkdirTemp("", "swiget-mnt-")
	if err != nil {
		return nil, fmt.Errorf("create mountpoint: %w", err)
	}
	args := append(extra, source, dir)
	if err := m.runner.Run(ctx, "mount", args...); err != nil {
		os.Remove(dir)
		return nil, fmt.Errorf("mount %s: %w", source, err)
	}
	m.logger.Debug("mounted", "source", source, "dir", dir)
	return &ScopedMount{
		device: device,
		dir:    dir,
		runner: m.runner,
		logger: m.logger,
		owned:  true,
	}, nil
}

// ScopedMount is a temporary mount with guaranteed teardown. Release
// unmounts and removes the temporary directory exactly once, unless
// ownership has been transferred away with Disown or MoveTo.
type ScopedMount struct {
	device string
	dir    string
	runner core.Runner
	logger *slog.Logger
	owned  bool
}

// Device returns the mounted device or export.
func (s *ScopedMount) Device() string { return s.device }

// Dir returns the mount directory.
func (s *ScopedMount) Dir() string { return s.dir }

// Disown transfers cleanup responsibility away from the scoped mount.
// Release becomes a no-op and the mount stays live.
func (s *ScopedMount) Disown() { s.owned = false }

// MoveTo relocates the mount to dest with a move mount and disowns the
// scope. The vacated temporary directory is removed.
func (s *ScopedMount) MoveTo(ctx context.Context, dest string) error {
	if err := s.runner.Run(ctx, "mount", "--move", s.dir, dest); err != nil {
		return fmt.Errorf("move mount %s to %s: %w", s.dir, dest, err)
	}
	s.owned = false
	if err := os.Remove(s.dir); err != nil {
		s.logger.Debug("remove vacated mountpoint", "dir", s.dir, "err", err)
	}
	return nil
}

// Release unmounts the directory and removes it, in that order: removing
// first would delete a populated mount point. Only the first call on an
// owned mount does work. Failures are logged, never returned, so cleanup
// during error unwinding cannot mask the original error.
func (s *ScopedMount) Release(ctx context.Context) {
	if !s.owned {
		return
	}
	s.owned = false
	if err := s.runner.Run(ctx, "umount", s.dir); err != nil {
		s.logger.Error("unmount failed during cleanup", "dir", s.dir, "err", err)
		return
	}
	if err := os.Remove(s.dir); err != nil {
		s.logger.Debug("remove mountpoint", "dir", s.dir, "err", err)
	}
}

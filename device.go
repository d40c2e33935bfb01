package swiget

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/skyforge/swiget/core"
)

// resolveDevice locates the device node behind the specifier and finds
// the requested archive on it. A bare label goes through the block-id
// index; /dev paths are used as-is.
func (r *Resolver) resolveDevice(ctx context.Context, spec parsedSpecifier) (string, error) {
	device := spec.device
	if !strings.HasPrefix(device, "/dev/") {
		resolved, err := r.locator.DeviceOf(ctx, device)
		if err != nil {
			return "", err
		}
		device = resolved
	}
	return r.blockdevCopy(ctx, device, spec.path, r.destDir)
}

// blockdevCopy finds the archive named by rel on device. An existing
// kernel mount of the device is reused directly. Otherwise the device is
// mounted at a temporary directory; when destDir names a permanent
// mountpoint differing from the temporary one, the mount is moved there
// and the path recomputed, else the fresh mount is left live for the
// caller and merely disowned.
func (r *Resolver) blockdevCopy(ctx context.Context, device, rel, destDir string) (string, error) {
	if dir, ok := r.live.DirOf(device); ok {
		r.logger.Debug("device already mounted", "device", device, "dir", dir)
		return r.findArchive(dir, rel)
	}

	mnt, err := r.mounter.Acquire(ctx, device)
	if err != nil {
		return "", fmt.Errorf("%w: %v", core.ErrTransport, err)
	}
	defer mnt.Release(ctx)

	found, err := r.findArchive(mnt.Dir(), rel)
	if err != nil {
		return "", err
	}

	if destDir != "" && destDir != mnt.Dir() {
		relPath, err := filepath.Rel(mnt.Dir(), found)
		if err != nil {
			return "", fmt.Errorf("%w: %v", core.ErrTransport, err)
		}
		if err := mnt.MoveTo(ctx, destDir); err != nil {
			return "", fmt.Errorf("%w: %v", core.ErrTransport, err)
		}
		return filepath.Join(destDir, relPath), nil
	}

	mnt.Disown()
	return found, nil
}

// findArchive returns the archive under dir named by rel, or the
// highest-ranked archive when rel is the latest selector.
func (r *Resolver) findArchive(dir, rel string) (string, error) {
	if rel == "latest" || rel == ":latest" {
		return r.latestArchive(dir)
	}
	p := filepath.Join(dir, rel)
	if _, err := os.Stat(p); err != nil {
		return "", fmt.Errorf("%w: %s", core.ErrMissingArchive, p)
	}
	return p, nil
}

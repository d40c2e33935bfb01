package swiget

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"

	"github.com/skyforge/swiget/core"
)

// resolveNFS mounts the export read-only with nolock at a temporary
// mountpoint, copies the requested file to a temp file, and unmounts.
// The unmount happens unconditionally; a failed copy surfaces its own
// error after cleanup.
func (r *Resolver) resolveNFS(ctx context.Context, spec parsedSpecifier) (string, error) {
	remote := "/" + spec.path
	exportDir := path.Dir(remote)
	file := path.Base(remote)
	if file == "/" || file == "." {
		return "", fmt.Errorf("%w: no file named in %q", core.ErrInvalidSpecifier, spec.raw)
	}

	export := spec.host.Host + ":" + exportDir
	mnt, err := r.mounter.AcquireNFS(ctx, export, spec.host.Port)
	if err != nil {
		return "", fmt.Errorf("%w: %v", core.ErrTransport, err)
	}
	defer mnt.Release(ctx)

	dst, err := r.tempFile()
	if err != nil {
		return "", err
	}
	if err := copyFile(filepath.Join(mnt.Dir(), file), dst); err != nil {
		os.Remove(dst)
		return "", err
	}
	return dst, nil
}

// copyFile copies src to dst, surfacing close errors.
func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: %s", core.ErrMissingArchive, src)
		}
		return fmt.Errorf("%w: %v", core.ErrTransport, err)
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("%w: %v", core.ErrTransport, err)
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return fmt.Errorf("%w: copy %s: %v", core.ErrTransport, src, err)
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("%w: close %s: %v", core.ErrTransport, dst, err)
	}
	return nil
}

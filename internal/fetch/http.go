// Package fetch downloads SWI archives over the remote transports:
// HTTP, FTP, TFTP, and the secure-shell stream copy.
package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/skyforge/swiget/core"
	"github.com/skyforge/swiget/internal/progress"
)

// HTTP streams the resource at rawURL into dst.
func HTTP(ctx context.Context, rawURL, dst string, fn core.ProgressFunc) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return fmt.Errorf("%w: %v", core.ErrInvalidSpecifier, err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", core.ErrTransport, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: GET %s: %s", core.ErrTransport, rawURL, resp.Status)
	}
	return writeAll(dst, progress.NewReader(resp.Body, resp.ContentLength, fn))
}

// writeAll copies r into a freshly created dst, surfacing close errors.
func writeAll(dst string, r io.Reader) error {
	f, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("%w: %v", core.ErrTransport, err)
	}
	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		return fmt.Errorf("%w: write %s: %v", core.ErrTransport, dst, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("%w: close %s: %v", core.ErrTransport, dst, err)
	}
	return nil
}

package swiget

import (
	"context"
	"os"

	"github.com/skyforge/swiget/internal/fetch"
)

// resolveRemote downloads the archive to a fresh temp file and returns
// its path. The partial file is removed when the transfer fails.
func (r *Resolver) resolveRemote(ctx context.Context, spec parsedSpecifier) (string, error) {
	dst, err := r.tempFile()
	if err != nil {
		return "", err
	}

	switch spec.scheme {
	case schemeHTTP:
		err = fetch.HTTP(ctx, spec.url, dst, r.progress)
	case schemeFTP:
		err = fetch.FTP(ctx, spec.host, spec.path, dst, r.progress)
	case schemeSSH:
		err = fetch.SCP(ctx, r.runner, spec.host, spec.path, dst)
	case schemeTFTP:
		err = fetch.TFTP(spec.host, spec.path, dst)
	}
	if err != nil {
		os.Remove(dst)
		return "", err
	}
	return dst, nil
}

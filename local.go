package swiget

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/skyforge/swiget/core"
)

// resolveLocal handles bare paths. An existing path is returned
// unchanged, with no external invocations at all. A path that does not
// exist but sits under a registered mount directory names a file inside
// that logical device, which may not be mounted yet: the remainder is
// delegated to device resolution with the registered directory as the
// permanent mountpoint.
func (r *Resolver) resolveLocal(ctx context.Context, spec parsedSpecifier) (string, error) {
	p := spec.path
	if _, err := os.Stat(p); err == nil {
		return p, nil
	}

	recs, err := r.registry.Records()
	if err != nil {
		r.logger.Debug("mount registry unavailable", "err", err)
	}
	for _, rec := range recs {
		base := strings.TrimSuffix(rec.Dir, "/")
		if base == "" || !strings.HasPrefix(p, base+"/") {
			continue
		}
		rel := strings.TrimPrefix(p, base+"/")
		device, err := r.locator.DeviceOf(ctx, rec.Label)
		if err != nil {
			return "", err
		}
		return r.blockdevCopy(ctx, device, rel, rec.Dir)
	}

	return "", fmt.Errorf("%w: %q", core.ErrInvalidSpecifier, spec.raw)
}

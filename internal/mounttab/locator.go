package mounttab

import (
	"context"
	"fmt"
	"strings"

	"github.com/skyforge/swiget/core"
)

// Locator resolves filesystem labels to device nodes through the
// system block-id index.
type Locator struct {
	runner core.Runner
}

// NewLocator creates a Locator backed by blkid.
func NewLocator(runner core.Runner) *Locator {
	return &Locator{runner: runner}
}

// DeviceOf returns the device node carrying label. Labels unknown to the
// block-id index report core.ErrNotFound rather than failing: free-form
// registry labels often have no matching partition.
func (l *Locator) DeviceOf(ctx context.Context, label string) (string, error) {
	out, err := l.runner.Output(ctx, "blkid", "-L", label)
	if err != nil {
		return "", fmt.Errorf("%w: no device for label %q", core.ErrNotFound, label)
	}
	device := strings.TrimSpace(string(out))
	if device == "" {
		return "", fmt.Errorf("%w: no device for label %q", core.ErrNotFound, label)
	}
	return device, nil
}

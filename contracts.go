package swiget

import (
	"context"

	"github.com/skyforge/swiget/core"
	"github.com/skyforge/swiget/internal/mounttab"
)

// Narrow views of the injected collaborators. Production wiring uses the
// mounttab implementations; tests substitute fakes.

type mountRegistry interface {
	Lookup(label string) (string, bool, error)
	Records() ([]core.MountRecord, error)
}

type liveMounts interface {
	DirOf(device string) (string, bool)
}

type partitionLocator interface {
	DeviceOf(ctx context.Context, label string) (string, error)
}

type scopedMount interface {
	Dir() string
	Disown()
	MoveTo(ctx context.Context, dest string) error
	Release(ctx context.Context)
}

type mounter interface {
	Acquire(ctx context.Context, device string) (scopedMount, error)
	AcquireNFS(ctx context.Context, export string, port int) (scopedMount, error)
}

type archiveInspector interface {
	BuildKey(path string) core.VersionKey
}

// mounterAdapter lifts the concrete mounttab.Mounter to the mounter view.
type mounterAdapter struct {
	m *mounttab.Mounter
}

func (a mounterAdapter) Acquire(ctx context.Context, device string) (scopedMount, error) {
	sm, err := a.m.Acquire(ctx, device)
	if err != nil {
		return nil, err
	}
	return sm, nil
}

func (a mounterAdapter) AcquireNFS(ctx context.Context, export string, port int) (scopedMount, error) {
	sm, err := a.m.AcquireNFS(ctx, export, port)
	if err != nil {
		return nil, err
	}
	return sm, nil
}

// Compile-time interface implementation checks.
var (
	_ mountRegistry    = (*mounttab.Registry)(nil)
	_ liveMounts       = (*mounttab.LiveMounts)(nil)
	_ partitionLocator = (*mounttab.Locator)(nil)
	_ scopedMount      = (*mounttab.ScopedMount)(nil)
	_ mounter          = mounterAdapter{}
)

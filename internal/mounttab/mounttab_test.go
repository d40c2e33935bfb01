package mounttab_test

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skyforge/swiget/core"
	"github.com/skyforge/swiget/internal/mounttab"
)

// fakeRunner records every command and fails those listed in fail.
type fakeRunner struct {
	calls [][]string
	fail  map[string]error
	out   map[string]string
}

func (r *fakeRunner) record(name string, args []string) error {
	r.calls = append(r.calls, append([]string{name}, args...))
	if err, ok := r.fail[name]; ok {
		return err
	}
	return nil
}

func (r *fakeRunner) Run(_ context.Context, name string, args ...string) error {
	return r.record(name, args)
}

func (r *fakeRunner) Output(_ context.Context, name string, args ...string) ([]byte, error) {
	if err := r.record(name, args); err != nil {
		return nil, err
	}
	return []byte(r.out[name]), nil
}

func (r *fakeRunner) Stream(_ context.Context, _ io.Writer, _ []string, name string, args ...string) error {
	return r.record(name, args)
}

func (r *fakeRunner) commands() []string {
	var names []string
	for _, c := range r.calls {
		names = append(names, c[0])
	}
	return names
}

func writeRegistry(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "mounts.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestRegistryLookup(t *testing.T) {
	t.Parallel()

	path := writeRegistry(t, `
mounts:
  images:
    dir: /mnt/onl/images
  config:
    dir: /mnt/onl/config
`)
	reg := mounttab.NewRegistry(path)

	dir, ok, err := reg.Lookup("images")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "/mnt/onl/images", dir)

	_, ok, err = reg.Lookup("nonexistent")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRegistryRecordsSorted(t *testing.T) {
	t.Parallel()

	path := writeRegistry(t, `
mounts:
  zebra:
    dir: /mnt/z
  alpha:
    dir: /mnt/a
`)
	recs, err := mounttab.NewRegistry(path).Records()
	require.NoError(t, err)
	require.Len(t, recs, 2)
	assert.Equal(t, "alpha", recs[0].Label)
	assert.Equal(t, "zebra", recs[1].Label)
}

func TestRegistryMissingFile(t *testing.T) {
	t.Parallel()

	_, _, err := mounttab.NewRegistry(filepath.Join(t.TempDir(), "absent.yml")).Lookup("x")
	assert.Error(t, err)
}

func TestLiveMountsParse(t *testing.T) {
	t.Parallel()

	table := filepath.Join(t.TempDir(), "mounts")
	require.NoError(t, os.WriteFile(table, []byte(
		"/dev/sda1 /mnt/onl/images ext4 rw,relatime 0 0\n"+
			"/dev/sdb1 /mnt/with\\040space vfat rw 0 0\n"+
			"tmpfs /tmp tmpfs rw 0 0\n"), 0o644))

	live := mounttab.NewLiveMountsFile(table)

	dir, ok := live.DirOf("/dev/sda1")
	require.True(t, ok)
	assert.Equal(t, "/mnt/onl/images", dir)

	dir, ok = live.DirOf("/dev/sdb1")
	require.True(t, ok)
	assert.Equal(t, "/mnt/with space", dir)

	_, ok = live.DirOf("/dev/absent")
	assert.False(t, ok)

	assert.True(t, live.IsMounted("/tmp"))
	assert.False(t, live.IsMounted("/nope"))
}

func TestLocatorDeviceOf(t *testing.T) {
	t.Parallel()

	runner := &fakeRunner{out: map[string]string{"blkid": "/dev/sda3\n"}}
	device, err := mounttab.NewLocator(runner).DeviceOf(context.Background(), "ONL-IMAGES")
	require.NoError(t, err)
	assert.Equal(t, "/dev/sda3", device)
	require.Len(t, runner.calls, 1)
	assert.Equal(t, []string{"blkid", "-L", "ONL-IMAGES"}, runner.calls[0])
}

func TestLocatorUnknownLabel(t *testing.T) {
	t.Parallel()

	runner := &fakeRunner{fail: map[string]error{"blkid": errors.New("exit status 2")}}
	_, err := mounttab.NewLocator(runner).DeviceOf(context.Background(), "free-form-label")
	assert.ErrorIs(t, err, core.ErrNotFound)
}

func TestScopedMountReleaseExactlyOnce(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	runner := &fakeRunner{}
	m := mounttab.NewMounter(runner, nil)

	mnt, err := m.Acquire(ctx, "/dev/sda1")
	require.NoError(t, err)
	assert.DirExists(t, mnt.Dir())
	assert.Equal(t, []string{"mount", "/dev/sda1", mnt.Dir()}, runner.calls[0])

	dir := mnt.Dir()
	mnt.Release(ctx)
	mnt.Release(ctx)

	assert.Equal(t, []string{"mount", "umount"}, runner.commands())
	assert.NoDirExists(t, dir)
}

func TestScopedMountUnmountBeforeRemove(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	runner := &fakeRunner{fail: map[string]error{"umount": errors.New("target busy")}}
	m := mounttab.NewMounter(runner, nil)

	mnt, err := m.Acquire(ctx, "/dev/sda1")
	require.NoError(t, err)

	// A failed unmount must leave the directory in place: removing a
	// still-mounted directory would delete its contents.
	mnt.Release(ctx)
	assert.DirExists(t, mnt.Dir())
}

func TestScopedMountDisown(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	runner := &fakeRunner{}
	m := mounttab.NewMounter(runner, nil)

	mnt, err := m.Acquire(ctx, "/dev/sda1")
	require.NoError(t, err)

	mnt.Disown()
	mnt.Release(ctx)

	assert.Equal(t, []string{"mount"}, runner.commands())
	assert.DirExists(t, mnt.Dir())
	os.Remove(mnt.Dir())
}

func TestScopedMountMoveTo(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	runner := &fakeRunner{}
	m := mounttab.NewMounter(runner, nil)

	mnt, err := m.Acquire(ctx, "/dev/sda1")
	require.NoError(t, err)
	tmpDir := mnt.Dir()

	dest := t.TempDir()
	require.NoError(t, mnt.MoveTo(ctx, dest))
	assert.Equal(t, []string{"mount", "--move", tmpDir, dest}, runner.calls[1])
	assert.NoDirExists(t, tmpDir)

	// Ownership moved with the mount; Release does nothing.
	mnt.Release(ctx)
	assert.Equal(t, []string{"mount", "mount"}, runner.commands())
}

func TestMounterAcquireNFS(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	runner := &fakeRunner{}
	m := mounttab.NewMounter(runner, nil)

	mnt, err := m.AcquireNFS(ctx, "host:/export", 0)
	require.NoError(t, err)
	assert.Equal(t, []string{"mount", "-t", "nfs", "-o", "ro,nolock", "host:/export", mnt.Dir()}, runner.calls[0])
	mnt.Release(ctx)

	mnt, err = m.AcquireNFS(ctx, "host:/export", 2049)
	require.NoError(t, err)
	assert.Equal(t, "ro,nolock,port=2049", runner.calls[2][4])
	mnt.Release(ctx)
}

func TestMounterMountFailure(t *testing.T) {
	t.Parallel()

	runner := &fakeRunner{fail: map[string]error{"mount": errors.New("no such device")}}
	_, err := mounttab.NewMounter(runner, nil).Acquire(context.Background(), "/dev/nope")
	assert.Error(t, err)
}

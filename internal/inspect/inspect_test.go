package inspect_test

import (
	"archive/zip"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skyforge/swiget/internal/inspect"
)

// writeSWI creates a zip archive with the given entries under dir.
func writeSWI(t *testing.T, dir, name string, entries map[string]string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()

	zw := zip.NewWriter(f)
	for entry, content := range entries {
		w, err := zw.Create(entry)
		require.NoError(t, err)
		_, err = w.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	return path
}

func TestBuildKeyFromManifest(t *testing.T) {
	t.Parallel()

	path := writeSWI(t, t.TempDir(), "image.swi", map[string]string{
		"manifest.json": `{"version": {"BUILD_TIMESTAMP": "2019-07-04.11:30"}}`,
	})

	key := inspect.New(nil).BuildKey(path)
	require.True(t, key.Known())
	assert.Equal(t, time.Date(2019, 7, 4, 11, 30, 0, 0, time.UTC), key.Time())
}

func TestBuildKeyManifestCompactFallback(t *testing.T) {
	t.Parallel()

	path := writeSWI(t, t.TempDir(), "image.swi", map[string]string{
		"manifest.json": `{"version": {"FNAME_BUILD_TIMESTAMP": "2019-07-04.1130"}}`,
	})

	key := inspect.New(nil).BuildKey(path)
	require.True(t, key.Known())
	assert.Equal(t, time.Date(2019, 7, 4, 11, 30, 0, 0, time.UTC), key.Time())
}

func TestBuildKeyManifestOutranksVersionEntry(t *testing.T) {
	t.Parallel()

	path := writeSWI(t, t.TempDir(), "image.swi", map[string]string{
		"manifest.json": `{"version": {"BUILD_TIMESTAMP": "2020-01-01.00:00"}}`,
		"version":       "ONL 2.0.0, 2017-03-06.05:27-d2533cf",
	})

	key := inspect.New(nil).BuildKey(path)
	require.True(t, key.Known())
	assert.Equal(t, 2020, key.Time().Year())
}

func TestBuildKeyVersionEntryOutranksFilename(t *testing.T) {
	t.Parallel()

	// Filename carries 2016, version entry carries 2017.
	path := writeSWI(t, t.TempDir(), "onl-2016-01-01.0101.swi", map[string]string{
		"version": "ONL 2.0.0, 2017-03-06.05:27-d2533cf",
	})

	key := inspect.New(nil).BuildKey(path)
	require.True(t, key.Known())
	assert.Equal(t, 2017, key.Time().Year())
}

func TestBuildKeyUnparsableManifestFallsThrough(t *testing.T) {
	t.Parallel()

	path := writeSWI(t, t.TempDir(), "image.swi", map[string]string{
		"manifest.json": `{not json`,
		"version":       "built 2018-05-05.10:00",
	})

	key := inspect.New(nil).BuildKey(path)
	require.True(t, key.Known())
	assert.Equal(t, 2018, key.Time().Year())
}

func TestBuildKeyFilenameOnly(t *testing.T) {
	t.Parallel()

	path := writeSWI(t, t.TempDir(), "onl-2015-12-31.2359.swi", map[string]string{
		"boot": "payload",
	})

	key := inspect.New(nil).BuildKey(path)
	require.True(t, key.Known())
	assert.Equal(t, time.Date(2015, 12, 31, 23, 59, 0, 0, time.UTC), key.Time())
}

func TestBuildKeyNotAnArchive(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "plain.swi")
	require.NoError(t, os.WriteFile(path, []byte("not a zip"), 0o644))

	// Not a zip and no filename timestamp: absent, caller uses mtime.
	assert.False(t, inspect.New(nil).BuildKey(path).Known())

	// Not a zip but the filename still ranks above mtime.
	path = filepath.Join(dir, "onl-2014-02-02.0202.swi")
	require.NoError(t, os.WriteFile(path, []byte("not a zip"), 0o644))
	key := inspect.New(nil).BuildKey(path)
	require.True(t, key.Known())
	assert.Equal(t, 2014, key.Time().Year())
}

func TestBuildKeyNoMetadataAnywhere(t *testing.T) {
	t.Parallel()

	path := writeSWI(t, t.TempDir(), "image.swi", map[string]string{
		"boot": "payload",
	})
	assert.False(t, inspect.New(nil).BuildKey(path).Known())
}

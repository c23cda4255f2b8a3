package probe

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, fs afero.Fs, path string) {
	t.Helper()
	require.NoError(t, fs.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, afero.WriteFile(fs, path, []byte("x"), 0o644))
}

func TestExists(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeFile(t, fs, "/data/cmip5/v1/tas.nc")

	p, err := New(fs, 0)
	require.NoError(t, err)

	assert.True(t, p.Exists("/data/cmip5/v1/tas.nc"))
	assert.False(t, p.Exists("/data/cmip5/v1/pr.nc"))
	assert.False(t, p.Exists("/data/cmip5/v1"), "directories are not files")
	assert.Equal(t, 3, p.Stats().ExistsChecks)
}

func TestModTime(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeFile(t, fs, "/d/a.nc")
	mt := time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, fs.Chtimes("/d/a.nc", mt, mt))

	p, err := New(fs, 0)
	require.NoError(t, err)
	got, err := p.ModTime("/d/a.nc")
	require.NoError(t, err)
	assert.Equal(t, "2021-01-01T00:00:00.000000", got)

	_, err = p.ModTime("/d/missing.nc")
	assert.Error(t, err)
}

func TestModTime_SortsAsString(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeFile(t, fs, "/d/old.nc")
	writeFile(t, fs, "/d/new.nc")
	older := time.Date(2020, 12, 31, 23, 59, 59, 999000000, time.Local)
	newer := time.Date(2021, 1, 1, 0, 0, 0, 1000, time.Local)
	require.NoError(t, fs.Chtimes("/d/old.nc", older, older))
	require.NoError(t, fs.Chtimes("/d/new.nc", newer, newer))

	p, err := New(fs, 0)
	require.NoError(t, err)
	a, err := p.ModTime("/d/old.nc")
	require.NoError(t, err)
	b, err := p.ModTime("/d/new.nc")
	require.NoError(t, err)
	assert.Less(t, a, b)
}

func TestModTime_OrderAcrossDSTFallBack(t *testing.T) {
	chicago, err := time.LoadLocation("America/Chicago")
	if err != nil {
		t.Skipf("no tzdata: %v", err)
	}
	orig := time.Local
	time.Local = chicago
	t.Cleanup(func() { time.Local = orig })

	// 01:30 CDT and then 01:10 CST on the night clocks fall back.
	earlier := time.Date(2021, 11, 7, 6, 30, 0, 0, time.UTC)
	later := time.Date(2021, 11, 7, 7, 10, 0, 0, time.UTC)
	require.Greater(t, earlier.In(chicago).Format(TimeLayout), later.In(chicago).Format(TimeLayout))

	fs := afero.NewMemMapFs()
	writeFile(t, fs, "/d/earlier.nc")
	writeFile(t, fs, "/d/later.nc")
	require.NoError(t, fs.Chtimes("/d/earlier.nc", earlier, earlier))
	require.NoError(t, fs.Chtimes("/d/later.nc", later, later))

	p, err := New(fs, 0)
	require.NoError(t, err)
	a, err := p.ModTime("/d/earlier.nc")
	require.NoError(t, err)
	b, err := p.ModTime("/d/later.nc")
	require.NoError(t, err)
	assert.Equal(t, "2021-11-07T06:30:00.000000", a)
	assert.Equal(t, "2021-11-07T07:10:00.000000", b)
	assert.Greater(t, b, a)
}

func TestSiblingCount(t *testing.T) {
	fs := afero.NewMemMapFs()
	for _, name := range []string{"a.nc", "b.nc", "c.nc"} {
		writeFile(t, fs, "/d/"+name)
	}
	require.NoError(t, fs.MkdirAll("/d/sub", 0o755))

	p, err := New(fs, 0)
	require.NoError(t, err)
	n, err := p.SiblingCount("/d/a.nc")
	require.NoError(t, err)
	assert.Equal(t, 4, n, "subdirectories count as entries")

	_, err = p.SiblingCount("/missing/a.nc")
	assert.Error(t, err)
}

func TestSiblingCount_Memoized(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeFile(t, fs, "/d/a.nc")
	writeFile(t, fs, "/d/b.nc")

	p, err := New(fs, 8)
	require.NoError(t, err)
	for _, path := range []string{"/d/a.nc", "/d/b.nc", "/d/a.nc"} {
		n, err := p.SiblingCount(path)
		require.NoError(t, err)
		assert.Equal(t, 2, n)
	}
	assert.Equal(t, 1, p.Stats().DirListings)
	assert.Equal(t, 2, p.Stats().DirCacheHits)
}

func TestSiblingCount_NoCacheRepeatsListing(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeFile(t, fs, "/d/a.nc")

	p, err := New(fs, 0)
	require.NoError(t, err)
	for i := 0; i < 3; i++ {
		_, err := p.SiblingCount("/d/a.nc")
		require.NoError(t, err)
	}
	assert.Equal(t, 3, p.Stats().DirListings)
	assert.Zero(t, p.Stats().DirCacheHits)
}

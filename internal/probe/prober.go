package probe

import (
	"fmt"
	"path/filepath"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/spf13/afero"
)

// TimeLayout is the ISO-8601 layout of ModTime results, always rendered in
// UTC. It is fixed width and never crosses a DST shift, so later times
// always sort after earlier ones as strings.
const TimeLayout = "2006-01-02T15:04:05.000000"

// Prober runs filesystem queries against fs.
type Prober struct {
	fs        afero.Fs
	dirCounts *lru.Cache[string, int] // nil when memoization is disabled
	stats     Stats
}

// Stats counts the filesystem calls a Prober has made.
type Stats struct {
	ExistsChecks   int
	ModTimeQueries int
	DirListings    int
	DirCacheHits   int
}

// New returns a Prober over fs. cacheSize bounds the number of memoized
// directory counts; 0 disables memoization.
func New(fs afero.Fs, cacheSize int) (*Prober, error) {
	p := &Prober{fs: fs}
	if cacheSize > 0 {
		c, err := lru.New[string, int](cacheSize)
		if err != nil {
			return nil, fmt.Errorf("dir cache: %w", err)
		}
		p.dirCounts = c
	}
	return p, nil
}

// NewOS returns a Prober over the operating system filesystem.
func NewOS(cacheSize int) (*Prober, error) {
	return New(afero.NewOsFs(), cacheSize)
}

// Exists reports whether path is an existing regular file. Symlinks are
// followed.
func (p *Prober) Exists(path string) bool {
	p.stats.ExistsChecks++
	fi, err := p.fs.Stat(path)
	if err != nil {
		return false
	}
	return fi.Mode().IsRegular()
}

// ModTime returns the UTC modification time of path formatted with
// [TimeLayout].
func (p *Prober) ModTime(path string) (string, error) {
	p.stats.ModTimeQueries++
	fi, err := p.fs.Stat(path)
	if err != nil {
		return "", fmt.Errorf("mtime %s: %w", path, err)
	}
	return fi.ModTime().UTC().Format(TimeLayout), nil
}

// SiblingCount returns the number of entries in the directory containing
// path, path itself included.
func (p *Prober) SiblingCount(path string) (int, error) {
	dir := filepath.Dir(path)
	if p.dirCounts != nil {
		if n, ok := p.dirCounts.Get(dir); ok {
			p.stats.DirCacheHits++
			return n, nil
		}
	}
	p.stats.DirListings++
	entries, err := afero.ReadDir(p.fs, dir)
	if err != nil {
		return 0, fmt.Errorf("list %s: %w", dir, err)
	}
	n := len(entries)
	if p.dirCounts != nil {
		p.dirCounts.Add(dir, n)
	}
	return n, nil
}

// Stats returns the call counters accumulated so far.
func (p *Prober) Stats() Stats { return p.stats }

package zfs

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// DefaultCacheDir is where the cache writer keeps one file per imported pool.
const DefaultCacheDir = "/etc/zfs/zfs-list.cache"

// Pool is the cached property listing of one pool.
type Pool struct {
	Name string
	Path string
}

// CachedPools lists the pool cache files in dir, sorted by name. Hidden
// files and subdirectories are ignored. A missing dir is returned as an
// error satisfying os.IsNotExist.
func CachedPools(dir string) ([]*Pool, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var pools []*Pool
	for _, e := range entries {
		if e.IsDir() || strings.HasPrefix(e.Name(), ".") {
			continue
		}
		pools = append(pools, &Pool{
			Name: e.Name(),
			Path: filepath.Join(dir, e.Name()),
		})
	}

	sort.Slice(pools, func(i, j int) bool {
		return pools[i].Name < pools[j].Name
	})
	return pools, nil
}

// maxLine bounds a single cache line; mountpoints are limited by PATH_MAX
// but the whole line carries twelve columns.
const maxLine = 1 << 20

// EachLine calls fn for every non-empty line of the pool's cache file, in
// order, and stops at the first error fn returns.
func (p *Pool) EachLine(fn func(lineNo int, line string) error) error {
	f, err := os.Open(p.Path)
	if err != nil {
		return err
	}
	defer f.Close()

	s := bufio.NewScanner(f)
	s.Buffer(make([]byte, 0, 4096), maxLine)
	for n := 1; s.Scan(); n++ {
		line := s.Text()
		if len(line) == 0 {
			continue
		}
		if err := fn(n, line); err != nil {
			return err
		}
	}
	if err := s.Err(); err != nil {
		return fmt.Errorf("reading %s: %w", p.Path, err)
	}
	return nil
}

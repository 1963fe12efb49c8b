package zfs

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCachedPools(t *testing.T) {
	assert := require.New(t)

	dir := t.TempDir()
	for name, body := range map[string]string{
		"tank":    "tank\t/tank\ton\n",
		"backup":  "backup\tnone\toff\n",
		".tank.t": "partial",
	} {
		assert.NoError(os.WriteFile(filepath.Join(dir, name), []byte(body), 0644))
	}
	assert.NoError(os.Mkdir(filepath.Join(dir, "old"), 0755))

	pools, err := CachedPools(dir)
	assert.NoError(err)
	assert.Len(pools, 2)
	assert.Equal("backup", pools[0].Name)
	assert.Equal(filepath.Join(dir, "backup"), pools[0].Path)
	assert.Equal("tank", pools[1].Name)
}

func TestCachedPoolsMissingDir(t *testing.T) {
	assert := require.New(t)

	_, err := CachedPools(filepath.Join(t.TempDir(), "nope"))
	assert.True(os.IsNotExist(err))
}

func TestEachLine(t *testing.T) {
	assert := require.New(t)

	path := filepath.Join(t.TempDir(), "tank")
	assert.NoError(os.WriteFile(path, []byte("first\n\nthird\nfourth"), 0644))

	p := &Pool{Name: "tank", Path: path}

	var got []string
	var lines []int
	assert.NoError(p.EachLine(func(n int, line string) error {
		lines = append(lines, n)
		got = append(got, line)
		return nil
	}))
	assert.Equal([]string{"first", "third", "fourth"}, got)
	assert.Equal([]int{1, 3, 4}, lines)

	stop := errors.New("stop")
	got = nil
	err := p.EachLine(func(n int, line string) error {
		got = append(got, line)
		if line == "third" {
			return stop
		}
		return nil
	})
	assert.ErrorIs(err, stop)
	assert.Equal([]string{"first", "third"}, got)
}

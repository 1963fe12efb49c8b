package zfs

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func record(atime, relatime, devices, exec, readonly, setuid, nbmand string) *DatasetRecord {
	r, err := ParseRecord(cacheLine("tank/data", "/data", "on", atime, relatime, devices, exec, readonly, setuid, nbmand, "-", "none"))
	if err != nil {
		panic(err)
	}
	return r
}

func TestMountOptions(t *testing.T) {
	assert := require.New(t)

	cases := []struct {
		in  *DatasetRecord
		out string
	}{
		{record("on", "on", "on", "on", "off", "on", "on"), "defaults,atime,relatime,dev,exec,rw,suid,mand,zfsutil"},
		{record("on", "off", "on", "on", "off", "on", "on"), "defaults,atime,strictatime,dev,exec,rw,suid,mand,zfsutil"},
		{record("off", "on", "on", "on", "off", "on", "on"), "defaults,noatime,dev,exec,rw,suid,mand,zfsutil"},
		{record("off", "garbage", "on", "on", "off", "on", "on"), "defaults,noatime,dev,exec,rw,suid,mand,zfsutil"},
		{record("off", "off", "off", "off", "on", "off", "off"), "defaults,noatime,nodev,noexec,ro,nosuid,nomand,zfsutil"},
	}

	for _, c := range cases {
		opts, invalid := MountOptions(c.in)
		assert.Empty(invalid)
		assert.Equal(c.out, strings.Join(opts, ","))
	}
}

func TestMountOptionsInvalid(t *testing.T) {
	assert := require.New(t)

	opts, invalid := MountOptions(record("on", "-", "on", "maybe", "off", "", "on"))
	assert.Equal("defaults,dev,rw,mand,zfsutil", strings.Join(opts, ","))

	var msgs []string
	for _, err := range invalid {
		assert.ErrorIs(err, ErrInvalidProperty)
		assert.False(IsFatal(err))
		msgs = append(msgs, err.Error())
	}
	assert.Equal([]string{
		`(tank/data) invalid relatime "-"`,
		`(tank/data) invalid exec "maybe"`,
		`(tank/data) invalid setuid ""`,
	}, msgs)

	opts, invalid = MountOptions(record("sometimes", "on", "on", "on", "on", "on", "on"))
	assert.Equal("defaults,dev,exec,ro,suid,mand,zfsutil", strings.Join(opts, ","))
	assert.Len(invalid, 1)
	assert.EqualError(invalid[0], `(tank/data) invalid atime "sometimes"`)
}

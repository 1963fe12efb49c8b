package zfs

// Fixed tokens bracketing every option list. zfsutil hands the mount to
// mount.zfs instead of failing on mountpoint ownership checks.
const (
	OptionDefaults = "defaults"
	OptionZfsutil  = "zfsutil"
)

type toggleOption struct {
	property string
	value    func(*DatasetRecord) Toggle
	on, off  string
}

// Same order the properties are read in, so output is reproducible.
var toggleOptions = []toggleOption{
	{"devices", func(r *DatasetRecord) Toggle { return r.Devices }, "dev", "nodev"},
	{"exec", func(r *DatasetRecord) Toggle { return r.Exec }, "exec", "noexec"},
	{"readonly", func(r *DatasetRecord) Toggle { return r.Readonly }, "ro", "rw"},
	{"setuid", func(r *DatasetRecord) Toggle { return r.Setuid }, "suid", "nosuid"},
	{"nbmand", func(r *DatasetRecord) Toggle { return r.Nbmand }, "mand", "nomand"},
}

// MountOptions translates the boolean properties of r into mount options.
// A property with an unusable value contributes no token and is reported
// as a Degraded error; the rest of the list is still returned.
func MountOptions(r *DatasetRecord) (opts []string, invalid []error) {
	opts = []string{OptionDefaults}

	switch r.Atime {
	case ToggleOn:
		switch r.Relatime {
		case ToggleOn:
			opts = append(opts, "atime", "relatime")
		case ToggleOff:
			opts = append(opts, "atime", "strictatime")
		default:
			invalid = append(invalid, InvalidProperty(r, "relatime"))
		}
	case ToggleOff:
		opts = append(opts, "noatime")
	default:
		invalid = append(invalid, InvalidProperty(r, "atime"))
	}

	for _, o := range toggleOptions {
		switch o.value(r) {
		case ToggleOn:
			opts = append(opts, o.on)
		case ToggleOff:
			opts = append(opts, o.off)
		default:
			invalid = append(invalid, InvalidProperty(r, o.property))
		}
	}

	return append(opts, OptionZfsutil), invalid
}

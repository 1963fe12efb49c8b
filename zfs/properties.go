package zfs

import "strings"

// Columns written to the property cache, one line per dataset, in this order.
var CachedProperties = []string{
	"name",
	"mountpoint",
	"canmount",
	"atime",
	"relatime",
	"devices",
	"exec",
	"readonly",
	"setuid",
	"nbmand",
	"encryptionroot",
	"keylocation",
}

const (
	colName = iota
	colMountpoint
	colCanMount
	colAtime
	colRelatime
	colDevices
	colExec
	colReadonly
	colSetuid
	colNbmand
	colEncryptionRoot
	colKeyLocation
)

// CanMount is the value of the canmount property.
type CanMount int

const (
	CanMountOn CanMount = iota
	CanMountOff
	CanMountNoAuto
)

func (c CanMount) String() string {
	switch c {
	case CanMountOn:
		return "on"
	case CanMountOff:
		return "off"
	case CanMountNoAuto:
		return "noauto"
	}
	return "invalid"
}

func parseCanMount(raw string) (CanMount, bool) {
	switch raw {
	case "on":
		return CanMountOn, true
	case "off":
		return CanMountOff, true
	case "noauto":
		return CanMountNoAuto, true
	}
	return 0, false
}

// Toggle is an on/off property. Anything else read from the cache is
// ToggleInvalid; the raw text stays available through DatasetRecord.Raw.
type Toggle int

const (
	ToggleInvalid Toggle = iota
	ToggleOn
	ToggleOff
)

func parseToggle(raw string) Toggle {
	switch raw {
	case "on":
		return ToggleOn
	case "off":
		return ToggleOff
	}
	return ToggleInvalid
}

// Mountpoint sentinels that never produce a mount unit.
const (
	MountpointLegacy = "legacy"
	MountpointNone   = "none"
)

// KeySource says where the key for an encryption root comes from.
type KeySource int

const (
	// KeyUnset covers an empty or "-" keylocation.
	KeyUnset KeySource = iota
	KeyFile
	KeyPrompt
	// KeyOther is any keylocation this generator cannot load at boot.
	KeyOther
)

// KeyLocation is the parsed keylocation property.
type KeyLocation struct {
	Source KeySource
	// Path is set for KeyFile.
	Path string
}

const fileScheme = "file://"

func parseKeyLocation(raw string) KeyLocation {
	switch {
	case raw == "" || raw == "-":
		return KeyLocation{Source: KeyUnset}
	case raw == "prompt":
		return KeyLocation{Source: KeyPrompt}
	case strings.HasPrefix(raw, fileScheme) && len(raw) > len(fileScheme):
		return KeyLocation{Source: KeyFile, Path: strings.TrimPrefix(raw, fileScheme)}
	}
	return KeyLocation{Source: KeyOther}
}

package sysd

import (
	"testing"
)

func TestUnit(t *testing.T) {
	tcs := []struct {
		name string
		inp  Unit
		out  string
	}{
		{
			name: "empty",
			out:  Header,
		},
		{
			name: "mount",
			inp: Unit{
				SourcePath:    "/etc/zfs/zfs-list.cache/tank",
				Documentation: []string{"man:zfs-mount-generator(8)"},
				Before:        []string{"local-fs.target", "zfs-mount.service"},
				After:         []string{"zfs-import.target"},
				Wants:         []string{"zfs-import.target"},
				Mount: &Mount{
					Where:   "/data",
					What:    "tank/data",
					Type:    "zfs",
					Options: []string{"defaults", "noatime", "zfsutil"},
				},
			},
			out: Header + "[Unit]\n" +
				"SourcePath=/etc/zfs/zfs-list.cache/tank\n" +
				"Documentation=man:zfs-mount-generator(8)\n" +
				"Before=local-fs.target zfs-mount.service\n" +
				"After=zfs-import.target\n" +
				"Wants=zfs-import.target\n" +
				"\n" +
				"[Mount]\n" +
				"Where=/data\n" +
				"What=tank/data\n" +
				"Type=zfs\n" +
				"Options=defaults,noatime,zfsutil\n",
		},
		{
			name: "service",
			inp: Unit{
				Description:           "Load ZFS key for tank",
				NoDefaultDependencies: true,
				RequiresMountsFor:     []string{"/etc/keys/my key"},
				Service: &Service{
					Type:            OneshotService,
					RemainAfterExit: true,
					ExecStart:       Exec{"/sbin/zfs", "load-key", "tank"},
					ExecStop:        Exec{"/sbin/zfs", "unload-key", "tank"},
				},
			},
			out: Header + "[Unit]\n" +
				"Description=Load ZFS key for tank\n" +
				"DefaultDependencies=no\n" +
				"RequiresMountsFor='/etc/keys/my key'\n" +
				"\n" +
				"[Service]\n" +
				"Type=oneshot\n" +
				"RemainAfterExit=yes\n" +
				"ExecStart=/sbin/zfs load-key tank\n" +
				"ExecStop=/sbin/zfs unload-key tank\n",
		},
		{
			name: "path specifiers",
			inp: Unit{
				RequiresMountsFor: []string{"/etc/keys/$k%i", "/etc/keys/plain"},
			},
			out: Header + "[Unit]\n" +
				"RequiresMountsFor='/etc/keys/$k%%i' /etc/keys/plain\n",
		},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			if tc.out != tc.inp.String() {
				t.Errorf("out = %q, want %q", tc.inp.String(), tc.out)
			}
		})
	}
}

func TestExec(t *testing.T) {
	tcs := []struct {
		name string
		inp  Exec
		out  string
	}{
		{
			name: "plain",
			inp:  Exec{"/sbin/zfs", "load-key", "tank/data"},
			out:  "/sbin/zfs load-key tank/data",
		},
		{
			name: "space",
			inp:  Exec{"/sbin/zfs", "load-key", "tank/my data"},
			out:  "/sbin/zfs load-key 'tank/my data'",
		},
		{
			name: "specifiers",
			inp:  Exec{"echo", "100%", "$HOME"},
			out:  "echo 100%% '$$HOME'",
		},
		{
			name: "backslash",
			inp:  Exec{"echo", `a\b`},
			out:  `echo 'a\\b'`,
		},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.inp.CommandLine(); tc.out != got {
				t.Errorf("out = %q, want %q", got, tc.out)
			}
		})
	}
}

func TestPromptLoop(t *testing.T) {
	p := &PromptLoop{
		Shell:       "/bin/sh",
		Status:      Exec{"/sbin/zfs", "get", "-H", "-o", "value", "keystatus", "tank/data"},
		Unavailable: "unavailable",
		Prompt:      Exec{"systemd-ask-password", "--id=zfs:tank/data", "Enter passphrase for tank/data:"},
		Load:        Exec{"/sbin/zfs", "load-key", "tank/data"},
		Attempts:    3,
	}

	script := `set -eu;` +
		`keystatus="$(/sbin/zfs get -H -o value keystatus tank/data)";` +
		`[ "$keystatus" = unavailable ] || exit 0;` +
		`count=0;` +
		`while [ "$count" -lt 3 ];do ` +
		`systemd-ask-password --id=zfs:tank/data 'Enter passphrase for tank/data:'|/sbin/zfs load-key tank/data && exit 0;` +
		`count=$((count + 1));done;exit 1`
	if got := p.Script(); got != script {
		t.Errorf("Script() = %q, want %q", got, script)
	}

	line := `/bin/sh -c "set -eu;` +
		`keystatus=\"$$(/sbin/zfs get -H -o value keystatus tank/data)\";` +
		`[ \"$$keystatus\" = unavailable ] || exit 0;` +
		`count=0;` +
		`while [ \"$$count\" -lt 3 ];do ` +
		`systemd-ask-password --id=zfs:tank/data 'Enter passphrase for tank/data:'|/sbin/zfs load-key tank/data && exit 0;` +
		`count=$$((count + 1));done;exit 1"`
	if got := p.CommandLine(); got != line {
		t.Errorf("CommandLine() = %q, want %q", got, line)
	}
}

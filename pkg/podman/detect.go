package podman

import (
	"os"
	"path/filepath"
	"strings"
)

// Platform describes the host properties that change how containers must
// be run.
type Platform struct {
	// CgroupsV2 is true when the host uses the unified cgroup hierarchy.
	CgroupsV2 bool
	// SELinuxEnforcing is true when SELinux is present and enforcing.
	SELinuxEnforcing bool
	// Rootless is true when podman runs without root privileges.
	Rootless bool
}

// DetectPlatform inspects the running host.
func DetectPlatform() Platform {
	return detectPlatform("/", os.Geteuid())
}

func detectPlatform(root string, euid int) Platform {
	return Platform{
		CgroupsV2:        cgroupsV2(root),
		SELinuxEnforcing: selinuxEnforcing(root),
		Rootless:         euid != 0,
	}
}

// cgroupsV2 reports whether the unified hierarchy is mounted. The
// cgroup.controllers file only exists at the cgroupfs root on v2.
func cgroupsV2(root string) bool {
	_, err := os.Stat(filepath.Join(root, "sys/fs/cgroup/cgroup.controllers"))
	return err == nil
}

// selinuxEnforcing reads the selinuxfs enforce flag; "1" means enforcing.
// Hosts without SELinux have no selinuxfs at all.
func selinuxEnforcing(root string) bool {
	data, err := os.ReadFile(filepath.Join(root, "sys/fs/selinux/enforce"))
	if err != nil {
		return false
	}
	return strings.TrimSpace(string(data)) == "1"
}

// RunFlags returns the extra podman-run flags the platform requires.
//
// Rootless podman on a cgroups v1 host cannot delegate a cgroup, so
// per-container cgroups are disabled there; keep-id keeps volume
// ownership sane for rootless deployments.
func (p Platform) RunFlags() []string {
	var flags []string
	if p.Rootless {
		if !p.CgroupsV2 {
			flags = append(flags, "--cgroups=disabled")
		}
		flags = append(flags, "--userns=keep-id")
	}
	return flags
}

// VolumeSuffix returns the mount option suffix volumes need on this host.
// Under enforcing SELinux, content must be relabeled for the container.
func (p Platform) VolumeSuffix() string {
	if p.SELinuxEnforcing {
		return ":Z"
	}
	return ""
}

// Describe returns a one-line human-readable platform summary.
func (p Platform) Describe() string {
	parts := []string{"cgroups v1", "rootful"}
	if p.CgroupsV2 {
		parts[0] = "cgroups v2"
	}
	if p.Rootless {
		parts[1] = "rootless"
	}
	if p.SELinuxEnforcing {
		parts = append(parts, "selinux enforcing")
	}
	return strings.Join(parts, ", ")
}

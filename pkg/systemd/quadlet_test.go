package systemd

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rhel-stig-rag/stig-rag-deploy/pkg/podman"
)

func testUnit(platform podman.Platform) Unit {
	return NewUnit(
		"stig-rag",
		"localhost/stig-rag:latest",
		"/etc/stig-rag/config.env",
		8000, 8000,
		"stig-rag-data", "/opt/stig-rag",
		platform,
	)
}

func TestRenderContainerUnit(t *testing.T) {
	t.Run("rootful without selinux", func(t *testing.T) {
		out, err := testUnit(podman.Platform{CgroupsV2: true}).RenderContainerUnit()
		require.NoError(t, err)

		assert.Contains(t, out, "ContainerName=stig-rag")
		assert.Contains(t, out, "Image=localhost/stig-rag:latest")
		assert.Contains(t, out, "EnvironmentFile=/etc/stig-rag/config.env")
		assert.Contains(t, out, "PublishPort=8000:8000")
		assert.Contains(t, out, "Volume=stig-rag-data.volume:/opt/stig-rag\n")
		assert.NotContains(t, out, "UserNS")
		assert.NotContains(t, out, ":Z")
	})

	t.Run("rootless with selinux enforcing", func(t *testing.T) {
		platform := podman.Platform{CgroupsV2: true, Rootless: true, SELinuxEnforcing: true}
		out, err := testUnit(platform).RenderContainerUnit()
		require.NoError(t, err)

		assert.Contains(t, out, "Volume=stig-rag-data.volume:/opt/stig-rag:Z")
		assert.Contains(t, out, "UserNS=keep-id")
	})

	t.Run("no env file line when unset", func(t *testing.T) {
		unit := testUnit(podman.Platform{})
		unit.EnvFile = ""
		out, err := unit.RenderContainerUnit()
		require.NoError(t, err)
		assert.NotContains(t, out, "EnvironmentFile")
	})
}

func TestRenderVolumeUnit(t *testing.T) {
	out, err := testUnit(podman.Platform{}).RenderVolumeUnit()
	require.NoError(t, err)
	assert.Contains(t, out, "VolumeName=stig-rag-data")
}

func TestUnitNames(t *testing.T) {
	unit := testUnit(podman.Platform{})
	assert.Equal(t, "stig-rag.service", unit.ServiceName())
	assert.Equal(t, "stig-rag.container", unit.ContainerUnitFile())
	assert.Equal(t, "stig-rag-data.volume", unit.VolumeUnitFile())
}

func TestInstallAndUninstall(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "containers", "systemd")
	unit := testUnit(podman.Platform{Rootless: true})

	require.NoError(t, unit.Install(dir))

	container, err := os.ReadFile(filepath.Join(dir, "stig-rag.container"))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(container), "[Unit]"))

	_, err = os.Stat(filepath.Join(dir, "stig-rag-data.volume"))
	require.NoError(t, err)

	require.NoError(t, unit.Uninstall(dir))
	_, err = os.Stat(filepath.Join(dir, "stig-rag.container"))
	assert.True(t, os.IsNotExist(err))

	// Uninstalling again is not an error.
	assert.NoError(t, unit.Uninstall(dir))
}

func TestUnitDir(t *testing.T) {
	t.Run("rootful", func(t *testing.T) {
		dir, err := UnitDir(false)
		require.NoError(t, err)
		assert.Equal(t, "/etc/containers/systemd", dir)
	})

	t.Run("rootless honors XDG_CONFIG_HOME", func(t *testing.T) {
		t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")
		dir, err := UnitDir(true)
		require.NoError(t, err)
		assert.Equal(t, "/tmp/xdg/containers/systemd", dir)
	})
}

type fakeRunner struct {
	calls   []string
	outputs map[string]string
}

func (f *fakeRunner) Output(_ context.Context, name string, args ...string) (string, error) {
	call := name + " " + strings.Join(args, " ")
	f.calls = append(f.calls, call)
	return f.outputs[call], nil
}

func (f *fakeRunner) Run(_ context.Context, name string, args ...string) error {
	f.calls = append(f.calls, name+" "+strings.Join(args, " "))
	return nil
}

func TestSystemctlScopes(t *testing.T) {
	t.Run("user scope", func(t *testing.T) {
		runner := &fakeRunner{outputs: map[string]string{}}
		ctl := NewSystemctlWithRunner(runner, true)

		require.NoError(t, ctl.DaemonReload(context.Background()))
		require.NoError(t, ctl.Start(context.Background(), "stig-rag.service"))

		assert.Equal(t, []string{
			"systemctl --user daemon-reload",
			"systemctl --user start stig-rag.service",
		}, runner.calls)
	})

	t.Run("system scope", func(t *testing.T) {
		runner := &fakeRunner{outputs: map[string]string{}}
		ctl := NewSystemctlWithRunner(runner, false)

		require.NoError(t, ctl.Stop(context.Background(), "stig-rag.service"))
		assert.Equal(t, []string{"systemctl stop stig-rag.service"}, runner.calls)
	})
}

func TestIsActive(t *testing.T) {
	runner := &fakeRunner{outputs: map[string]string{
		"systemctl is-active stig-rag.service": "active",
	}}
	ctl := NewSystemctlWithRunner(runner, false)

	assert.True(t, ctl.IsActive(context.Background(), "stig-rag.service"))
	assert.False(t, ctl.IsActive(context.Background(), "other.service"))
}

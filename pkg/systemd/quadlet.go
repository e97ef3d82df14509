package systemd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/template"

	"github.com/rhel-stig-rag/stig-rag-deploy/pkg/podman"
)

const containerUnitTemplate = `[Unit]
Description=RHEL STIG RAG assistant
Wants=network-online.target
After=network-online.target

[Container]
ContainerName={{ .ContainerName }}
Image={{ .Image }}
{{- if .EnvFile }}
EnvironmentFile={{ .EnvFile }}
{{- end }}
PublishPort={{ .HostPort }}:{{ .ServicePort }}
Volume={{ .DataVolume }}.volume:{{ .DataMount }}{{ .VolumeSuffix }}
{{- if .Rootless }}
UserNS=keep-id
{{- end }}

[Service]
Restart=on-failure
TimeoutStartSec=300

[Install]
WantedBy=multi-user.target default.target
`

const volumeUnitTemplate = `[Unit]
Description=STIG data volume for the RHEL STIG RAG assistant

[Volume]
VolumeName={{ .DataVolume }}
`

// Unit is the input for Quadlet unit rendering.
type Unit struct {
	ContainerName string
	Image         string
	EnvFile       string
	HostPort      int
	ServicePort   int
	DataVolume    string
	DataMount     string
	VolumeSuffix  string
	Rootless      bool
}

// NewUnit builds a Unit for the given platform, applying the platform's
// SELinux volume suffix and user namespace handling.
func NewUnit(containerName, image, envFile string, hostPort, servicePort int, dataVolume, dataMount string, platform podman.Platform) Unit {
	return Unit{
		ContainerName: containerName,
		Image:         image,
		EnvFile:       envFile,
		HostPort:      hostPort,
		ServicePort:   servicePort,
		DataVolume:    dataVolume,
		DataMount:     dataMount,
		VolumeSuffix:  platform.VolumeSuffix(),
		Rootless:      platform.Rootless,
	}
}

// RenderContainerUnit produces the .container Quadlet file contents.
func (u Unit) RenderContainerUnit() (string, error) {
	return render("container", containerUnitTemplate, u)
}

// RenderVolumeUnit produces the .volume Quadlet file contents.
func (u Unit) RenderVolumeUnit() (string, error) {
	return render("volume", volumeUnitTemplate, u)
}

// ServiceName returns the systemd service name Quadlet generates for the
// container unit.
func (u Unit) ServiceName() string {
	return u.ContainerName + ".service"
}

// ContainerUnitFile returns the filename of the .container unit.
func (u Unit) ContainerUnitFile() string {
	return u.ContainerName + ".container"
}

// VolumeUnitFile returns the filename of the .volume unit.
func (u Unit) VolumeUnitFile() string {
	return u.DataVolume + ".volume"
}

// Install writes both unit files into dir.
func (u Unit) Install(dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create unit directory: %w", err)
	}

	container, err := u.RenderContainerUnit()
	if err != nil {
		return err
	}
	volume, err := u.RenderVolumeUnit()
	if err != nil {
		return err
	}

	if err := os.WriteFile(filepath.Join(dir, u.VolumeUnitFile()), []byte(volume), 0644); err != nil {
		return fmt.Errorf("failed to write volume unit: %w", err)
	}
	if err := os.WriteFile(filepath.Join(dir, u.ContainerUnitFile()), []byte(container), 0644); err != nil {
		return fmt.Errorf("failed to write container unit: %w", err)
	}
	return nil
}

// Uninstall removes the unit files from dir. Missing files are not an
// error.
func (u Unit) Uninstall(dir string) error {
	for _, name := range []string{u.ContainerUnitFile(), u.VolumeUnitFile()} {
		if err := os.Remove(filepath.Join(dir, name)); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("failed to remove unit %s: %w", name, err)
		}
	}
	return nil
}

// UnitDir returns the Quadlet drop-in directory for the deployment scope.
func UnitDir(rootless bool) (string, error) {
	if !rootless {
		return "/etc/containers/systemd", nil
	}

	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("cannot determine home directory: %w", err)
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "containers", "systemd"), nil
}

func render(name, text string, data Unit) (string, error) {
	tmpl, err := template.New(name).Parse(text)
	if err != nil {
		return "", fmt.Errorf("failed to parse %s unit template: %w", name, err)
	}

	var sb strings.Builder
	if err := tmpl.Execute(&sb, data); err != nil {
		return "", fmt.Errorf("failed to render %s unit: %w", name, err)
	}
	return sb.String(), nil
}

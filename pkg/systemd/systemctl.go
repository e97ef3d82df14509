package systemd

import (
	"context"

	"github.com/rhel-stig-rag/stig-rag-deploy/pkg/podman"
)

// Systemctl drives the systemctl binary, in user scope for rootless
// deployments.
type Systemctl struct {
	runner podman.Runner
	user   bool
}

// NewSystemctl returns a Systemctl for the given scope.
func NewSystemctl(user bool) *Systemctl {
	return &Systemctl{runner: podman.NewExecRunner(), user: user}
}

// NewSystemctlWithRunner is the test constructor.
func NewSystemctlWithRunner(runner podman.Runner, user bool) *Systemctl {
	return &Systemctl{runner: runner, user: user}
}

func (s *Systemctl) args(rest ...string) []string {
	if s.user {
		return append([]string{"--user"}, rest...)
	}
	return rest
}

// DaemonReload makes systemd regenerate units, picking up Quadlet files.
func (s *Systemctl) DaemonReload(ctx context.Context) error {
	return s.runner.Run(ctx, "systemctl", s.args("daemon-reload")...)
}

// Start starts a unit.
func (s *Systemctl) Start(ctx context.Context, unit string) error {
	return s.runner.Run(ctx, "systemctl", s.args("start", unit)...)
}

// Stop stops a unit.
func (s *Systemctl) Stop(ctx context.Context, unit string) error {
	return s.runner.Run(ctx, "systemctl", s.args("stop", unit)...)
}

// Restart restarts a unit.
func (s *Systemctl) Restart(ctx context.Context, unit string) error {
	return s.runner.Run(ctx, "systemctl", s.args("restart", unit)...)
}

// IsActive reports whether a unit is currently active.
func (s *Systemctl) IsActive(ctx context.Context, unit string) bool {
	out, err := s.runner.Output(ctx, "systemctl", s.args("is-active", unit)...)
	return err == nil && out == "active"
}

package podman

import (
	"context"
	"fmt"
	"sort"
	"strconv"
)

// Client drives the podman binary.
type Client struct {
	runner Runner
	binary string
}

// NewClient returns a Client backed by the podman binary on PATH.
func NewClient() *Client {
	return &Client{runner: NewExecRunner(), binary: "podman"}
}

// NewClientWithRunner returns a Client using the given Runner. Tests pass
// a fake; callers can also point at a different binary (e.g. docker).
func NewClientWithRunner(runner Runner, binary string) *Client {
	if binary == "" {
		binary = "podman"
	}
	return &Client{runner: runner, binary: binary}
}

// RunOptions describes a service container to start.
type RunOptions struct {
	Name        string
	Image       string
	HostPort    int
	ServicePort int
	EnvFile     string
	// Volumes maps volume name to container mount path.
	Volumes map[string]string
	// Platform supplies the host compatibility flags and mount suffix.
	Platform Platform
	// ExtraArgs are appended verbatim before the image reference.
	ExtraArgs []string
}

// Build builds the service image from a Containerfile.
func (c *Client) Build(ctx context.Context, image, containerfile, contextDir string) error {
	if contextDir == "" {
		contextDir = "."
	}
	args := []string{"build", "-t", image}
	if containerfile != "" {
		args = append(args, "-f", containerfile)
	}
	args = append(args, contextDir)
	return c.runner.Run(ctx, c.binary, args...)
}

// RunContainer starts a detached service container.
func (c *Client) RunContainer(ctx context.Context, opts RunOptions) error {
	args := []string{"run", "-d", "--name", opts.Name}

	args = append(args, opts.Platform.RunFlags()...)

	if opts.HostPort != 0 {
		args = append(args, "-p", strconv.Itoa(opts.HostPort)+":"+strconv.Itoa(opts.ServicePort))
	}
	if opts.EnvFile != "" {
		args = append(args, "--env-file", opts.EnvFile)
	}

	suffix := opts.Platform.VolumeSuffix()
	for _, volume := range sortedKeys(opts.Volumes) {
		args = append(args, "-v", volume+":"+opts.Volumes[volume]+suffix)
	}

	args = append(args, opts.ExtraArgs...)
	args = append(args, opts.Image)

	return c.runner.Run(ctx, c.binary, args...)
}

// Pull pulls the service image from its registry.
func (c *Client) Pull(ctx context.Context, image string) error {
	return c.runner.Run(ctx, c.binary, "pull", image)
}

// Start starts a stopped container.
func (c *Client) Start(ctx context.Context, name string) error {
	return c.runner.Run(ctx, c.binary, "start", name)
}

// Stop stops a running container.
func (c *Client) Stop(ctx context.Context, name string) error {
	return c.runner.Run(ctx, c.binary, "stop", name)
}

// Restart restarts a container.
func (c *Client) Restart(ctx context.Context, name string) error {
	return c.runner.Run(ctx, c.binary, "restart", name)
}

// Remove removes a container.
func (c *Client) Remove(ctx context.Context, name string, force bool) error {
	args := []string{"rm"}
	if force {
		args = append(args, "-f")
	}
	args = append(args, name)
	return c.runner.Run(ctx, c.binary, args...)
}

// ContainerExists reports whether a container with the given name exists,
// running or not.
func (c *Client) ContainerExists(ctx context.Context, name string) (bool, error) {
	// `podman container exists` exits 1 for missing containers; use ps so a
	// non-zero exit distinguishes real failures.
	out, err := c.runner.Output(ctx, c.binary, "ps", "-a", "--filter", "name=^"+name+"$", "--format", "{{.Names}}")
	if err != nil {
		return false, err
	}
	return out != "", nil
}

// State returns the container status (running, exited, ...) or "absent"
// when the container does not exist.
func (c *Client) State(ctx context.Context, name string) (string, error) {
	exists, err := c.ContainerExists(ctx, name)
	if err != nil {
		return "", err
	}
	if !exists {
		return "absent", nil
	}
	return c.runner.Output(ctx, c.binary, "inspect", "--format", "{{.State.Status}}", name)
}

// Logs streams container logs.
func (c *Client) Logs(ctx context.Context, name string, follow bool, tail string) error {
	args := []string{"logs"}
	if follow {
		args = append(args, "-f")
	}
	if tail != "" {
		args = append(args, "--tail", tail)
	}
	args = append(args, name)
	return c.runner.Run(ctx, c.binary, args...)
}

// Copy copies a file or directory into a container (podman cp).
func (c *Client) Copy(ctx context.Context, src, containerDest string) error {
	return c.runner.Run(ctx, c.binary, "cp", src, containerDest)
}

// VolumeCreate creates a named volume if it does not already exist.
func (c *Client) VolumeCreate(ctx context.Context, name string) error {
	exists, err := c.VolumeExists(ctx, name)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}
	return c.runner.Run(ctx, c.binary, "volume", "create", name)
}

// VolumeExists reports whether a named volume exists.
func (c *Client) VolumeExists(ctx context.Context, name string) (bool, error) {
	out, err := c.runner.Output(ctx, c.binary, "volume", "ls", "--filter", "name=^"+name+"$", "--format", "{{.Name}}")
	if err != nil {
		return false, err
	}
	return out != "", nil
}

// VolumeRemove removes a named volume.
func (c *Client) VolumeRemove(ctx context.Context, name string) error {
	return c.runner.Run(ctx, c.binary, "volume", "rm", name)
}

// ImageRemove removes an image.
func (c *Client) ImageRemove(ctx context.Context, image string) error {
	return c.runner.Run(ctx, c.binary, "rmi", image)
}

// Version returns the podman client version, as a cheap availability check.
func (c *Client) Version(ctx context.Context) (string, error) {
	out, err := c.runner.Output(ctx, c.binary, "version", "--format", "{{.Client.Version}}")
	if err != nil {
		return "", fmt.Errorf("podman is not available: %w", err)
	}
	return out, nil
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

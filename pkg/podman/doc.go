// Package podman wraps the podman command line for the deployment tooling.
//
// All state queries and mutations go through the podman binary; nothing
// talks to the libpod socket directly. Commands are assembled from the
// deployment configuration plus host platform detection (cgroups version,
// SELinux mode, rootless vs rootful), which decides the compatibility
// flags a container needs on a given host.
package podman

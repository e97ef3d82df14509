// Package systemd renders Quadlet units for the service container and
// drives systemctl.
//
// Quadlet is the systemd-native way to declare podman containers as
// services: a .container file dropped into the systemd containers
// directory becomes a generated service unit on daemon-reload. Rootless
// deployments install under the user's config directory and are managed
// with systemctl --user; rootful deployments install system-wide.
package systemd

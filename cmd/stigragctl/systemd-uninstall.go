package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/rhel-stig-rag/stig-rag-deploy/pkg/config"
	"github.com/rhel-stig-rag/stig-rag-deploy/pkg/podman"
	"github.com/rhel-stig-rag/stig-rag-deploy/pkg/systemd"
)

// systemdUninstallCmd represents the systemd uninstall command
var systemdUninstallCmd = &cobra.Command{
	Use:   "uninstall",
	Short: "Stop the service and remove its Quadlet units",
	Long: `Stop the systemd-managed service and remove its Quadlet units, then
reload systemd.

Example:
  stigragctl systemd uninstall`,
	Run: func(cmd *cobra.Command, args []string) {
		unitDir, _ := cmd.Flags().GetString("unit-dir")

		if err := uninstallUnits(unitDir); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to uninstall units: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	systemdCmd.AddCommand(systemdUninstallCmd)
	systemdUninstallCmd.Flags().String("unit-dir", "", "Quadlet unit directory (default: chosen by host scope)")
}

func uninstallUnits(unitDir string) error {
	cfg := config.Get()
	platform := podman.DetectPlatform()

	if unitDir == "" {
		var err error
		unitDir, err = systemd.UnitDir(platform.Rootless)
		if err != nil {
			return err
		}
	}

	unit := systemd.NewUnit(
		cfg.ContainerName,
		cfg.Image,
		"",
		cfg.Port,
		cfg.Port,
		cfg.DataVolume,
		filepath.Dir(cfg.DataDir),
		platform,
	)

	ctx := context.Background()
	sc := systemd.NewSystemctl(platform.Rootless)

	if sc.IsActive(ctx, unit.ServiceName()) {
		fmt.Printf("Stopping %s\n", unit.ServiceName())
		if err := sc.Stop(ctx, unit.ServiceName()); err != nil {
			return err
		}
	}

	fmt.Printf("Removing units from %s\n", unitDir)
	if err := unit.Uninstall(unitDir); err != nil {
		return err
	}

	if err := sc.DaemonReload(ctx); err != nil {
		return err
	}

	fmt.Println("Units removed")
	return nil
}

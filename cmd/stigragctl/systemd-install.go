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

// systemdInstallCmd represents the systemd install command
var systemdInstallCmd = &cobra.Command{
	Use:   "install",
	Short: "Install Quadlet units for the service",
	Long: `Render and install systemd Quadlet units for the service container
and its data volume, then reload systemd.

For rootless hosts the units go to ~/.config/containers/systemd and are
managed with systemctl --user; rootful hosts use /etc/containers/systemd.

Example:
  stigragctl systemd install
  stigragctl systemd install --start
  stigragctl systemd install --unit-dir /etc/containers/systemd`,
	Run: func(cmd *cobra.Command, args []string) {
		unitDir, _ := cmd.Flags().GetString("unit-dir")
		envFile, _ := cmd.Flags().GetString("env-file")
		start, _ := cmd.Flags().GetBool("start")

		if err := installUnits(unitDir, envFile, start); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to install units: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	systemdCmd.AddCommand(systemdInstallCmd)
	systemdInstallCmd.Flags().String("unit-dir", "", "Quadlet unit directory (default: chosen by host scope)")
	systemdInstallCmd.Flags().String("env-file", "", "Env file path referenced by the unit (rendered if missing)")
	systemdInstallCmd.Flags().Bool("start", false, "Start the service after installing")
}

func installUnits(unitDir, envFile string, start bool) error {
	cfg := config.Get()
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
	}

	platform := podman.DetectPlatform()

	if unitDir == "" {
		var err error
		unitDir, err = systemd.UnitDir(platform.Rootless)
		if err != nil {
			return err
		}
	}

	if envFile != "" {
		absEnvFile, err := filepath.Abs(envFile)
		if err != nil {
			return err
		}
		envFile = absEnvFile
		if _, err := os.Stat(envFile); os.IsNotExist(err) {
			fmt.Printf("Rendering %s\n", envFile)
			if err := cfg.WriteEnvFile(envFile); err != nil {
				return err
			}
		}
	}

	unit := systemd.NewUnit(
		cfg.ContainerName,
		cfg.Image,
		envFile,
		cfg.Port,
		cfg.Port,
		cfg.DataVolume,
		filepath.Dir(cfg.DataDir),
		platform,
	)

	fmt.Printf("Installing %s and %s to %s\n", unit.ContainerUnitFile(), unit.VolumeUnitFile(), unitDir)
	if err := unit.Install(unitDir); err != nil {
		return err
	}

	ctx := context.Background()
	sc := systemd.NewSystemctl(platform.Rootless)
	if err := sc.DaemonReload(ctx); err != nil {
		return err
	}

	if start {
		fmt.Printf("Starting %s\n", unit.ServiceName())
		if err := sc.Start(ctx, unit.ServiceName()); err != nil {
			return err
		}
	}

	fmt.Println("Units installed")
	return nil
}

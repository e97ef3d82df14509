package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/rhel-stig-rag/stig-rag-deploy/pkg/client"
	"github.com/rhel-stig-rag/stig-rag-deploy/pkg/config"
	"github.com/rhel-stig-rag/stig-rag-deploy/pkg/podman"
	"github.com/rhel-stig-rag/stig-rag-deploy/pkg/stigdata"
)

// deployCmd represents the deploy command
var deployCmd = &cobra.Command{
	Use:   "deploy",
	Short: "Deploy the service container",
	Long: `Deploy the service container.

This renders the service configuration to an env file, creates the data
volume, starts the container with flags matching the host (cgroups version,
SELinux, rootless), and waits for the service to report healthy. Sample
STIG data is loaded once the service is up; a load failure is reported but
does not fail the deployment.

Example:
  stigragctl deploy
  stigragctl deploy --retries 60 --interval 5s --skip-samples`,
	Run: func(cmd *cobra.Command, args []string) {
		envFile, _ := cmd.Flags().GetString("env-file")
		retries, _ := cmd.Flags().GetInt("retries")
		interval, _ := cmd.Flags().GetDuration("interval")
		skipSamples, _ := cmd.Flags().GetBool("skip-samples")
		build, _ := cmd.Flags().GetBool("build")

		if build {
			image := config.Get().Image
			fmt.Printf("Building image %s...\n", image)
			if err := podman.NewClient().Build(context.Background(), image, "Containerfile", "."); err != nil {
				fmt.Fprintf(os.Stderr, "Build failed: %v\n", err)
				os.Exit(1)
			}
		}

		if err := runDeploy(envFile, retries, interval, skipSamples); err != nil {
			fmt.Fprintf(os.Stderr, "Deploy failed: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(deployCmd)
	deployCmd.Flags().String("env-file", "config.env", "Path to render the service env file to")
	deployCmd.Flags().IntP("retries", "r", 30, "Health check attempts before giving up")
	deployCmd.Flags().Duration("interval", 2*time.Second, "Delay between health checks")
	deployCmd.Flags().Bool("skip-samples", false, "Skip loading sample STIG data after deploy")
	deployCmd.Flags().Bool("build", false, "Build the image before deploying")
}

func runDeploy(envFile string, retries int, interval time.Duration, skipSamples bool) error {
	ctx := context.Background()
	cfg := config.Get()
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
	}

	platform := podman.DetectPlatform()
	fmt.Printf("Host: %s\n", platform.Describe())

	fmt.Printf("Rendering service configuration to %s\n", envFile)
	if err := cfg.WriteEnvFile(envFile); err != nil {
		return err
	}

	pd := podman.NewClient()

	exists, err := pd.ContainerExists(ctx, cfg.ContainerName)
	if err != nil {
		return err
	}
	if exists {
		fmt.Printf("Removing existing container %s\n", cfg.ContainerName)
		if err := pd.Remove(ctx, cfg.ContainerName, true); err != nil {
			return err
		}
	}

	fmt.Printf("Ensuring data volume %s\n", cfg.DataVolume)
	if err := pd.VolumeCreate(ctx, cfg.DataVolume); err != nil {
		return err
	}

	fmt.Printf("Starting container %s from %s\n", cfg.ContainerName, cfg.Image)
	err = pd.RunContainer(ctx, podman.RunOptions{
		Name:        cfg.ContainerName,
		Image:       cfg.Image,
		HostPort:    cfg.Port,
		ServicePort: cfg.Port,
		EnvFile:     envFile,
		Volumes:     map[string]string{cfg.DataVolume: filepath.Dir(cfg.DataDir)},
		Platform:    platform,
	})
	if err != nil {
		return err
	}

	svc := client.New(cfg.BaseURL())
	fmt.Println("Waiting for the service to be ready...")
	err = svc.WaitReady(ctx, retries, interval, func() { fmt.Print(".") })
	fmt.Println()
	if err != nil {
		return err
	}
	fmt.Println("Service is ready!")

	if !skipSamples {
		if err := loadSamples(ctx, pd, svc, cfg); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: sample data load failed: %v\n", err)
		}
	}

	fmt.Printf("Deployed. Service available at %s\n", cfg.BaseURL())
	return nil
}

// loadSamples copies the bundled sample documents into the container's data
// directory and asks the service to ingest them.
func loadSamples(ctx context.Context, pd *podman.Client, svc *client.Client, cfg *config.Config) error {
	tmpDir, err := os.MkdirTemp("", "stig-rag-samples")
	if err != nil {
		return err
	}
	defer func() { _ = os.RemoveAll(tmpDir) }()

	paths, err := stigdata.WriteSamples(tmpDir)
	if err != nil {
		return err
	}

	for _, path := range paths {
		containerPath := filepath.Join(cfg.DataDir, filepath.Base(path))
		if err := pd.Copy(ctx, path, cfg.ContainerName+":"+containerPath); err != nil {
			return err
		}

		resp, err := svc.LoadSTIG(ctx, containerPath)
		if err != nil {
			return err
		}
		fmt.Printf("Loaded %s (%d chunks)\n", filepath.Base(path), resp.ChunksCreated)
	}
	return nil
}

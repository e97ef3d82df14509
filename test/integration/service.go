package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http/httptest"
	"os"
	"path/filepath"
	"time"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/rhel-stig-rag/stig-rag-deploy/pkg/client"
	"github.com/rhel-stig-rag/stig-rag-deploy/pkg/config"
	"github.com/rhel-stig-rag/stig-rag-deploy/pkg/stigdata"
	"github.com/rhel-stig-rag/stig-rag-deploy/pkg/stubserver"
)

const servicePort = "8000/tcp"

// TestContext holds the service under test and a client for it.
type TestContext struct {
	ServiceURL string
	Client     *client.Client
	Container  testcontainers.Container
	stub       *httptest.Server
	sampleDir  string
}

// NewTestContext starts the service under test.
// Modes:
//   - Stub mode (default): run the stub server in-process, no container needed
//   - Container mode: set STIG_RAG_IMAGE to a service image to test the real thing
func NewTestContext(ctx context.Context) (*TestContext, error) {
	image := os.Getenv("STIG_RAG_IMAGE")
	if image == "" {
		log.Println("Using in-process stub service (set STIG_RAG_IMAGE to test a container image)")
		return newStubContext()
	}

	log.Printf("Using service image: %s", image)
	return newContainerContext(ctx, image)
}

func newStubContext() (*TestContext, error) {
	srv := stubserver.NewServer(stubserver.NewStore(), "127.0.0.1", "0")
	stub := httptest.NewServer(srv.Router)

	sampleDir, err := os.MkdirTemp("", "stig-rag-integration")
	if err != nil {
		stub.Close()
		return nil, err
	}

	return &TestContext{
		ServiceURL: stub.URL,
		Client:     client.New(stub.URL),
		stub:       stub,
		sampleDir:  sampleDir,
	}, nil
}

func newContainerContext(ctx context.Context, image string) (*TestContext, error) {
	env := map[string]string{}
	for key, value := range config.Get().EnvMap() {
		env[key] = value
	}

	req := testcontainers.ContainerRequest{
		Image:        image,
		ExposedPorts: []string{servicePort},
		Env:          env,
		WaitingFor: wait.ForHTTP("/health").
			WithPort(servicePort).
			WithStartupTimeout(120 * time.Second),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to start service container: %w", err)
	}

	host, err := container.Host(ctx)
	if err != nil {
		_ = container.Terminate(ctx)
		return nil, fmt.Errorf("failed to get container host: %w", err)
	}
	port, err := container.MappedPort(ctx, servicePort)
	if err != nil {
		_ = container.Terminate(ctx)
		return nil, fmt.Errorf("failed to get container port: %w", err)
	}

	serviceURL := fmt.Sprintf("http://%s:%s", host, port.Port())
	return &TestContext{
		ServiceURL: serviceURL,
		Client:     client.New(serviceURL),
		Container:  container,
	}, nil
}

// LoadSamples places the bundled sample documents where the service can
// read them and asks the service to ingest each one.
func (tc *TestContext) LoadSamples(ctx context.Context) error {
	if tc.Container == nil {
		paths, err := stigdata.WriteSamples(tc.sampleDir)
		if err != nil {
			return err
		}
		for _, path := range paths {
			if _, err := tc.Client.LoadSTIG(ctx, path); err != nil {
				return err
			}
		}
		return nil
	}

	dataDir := config.Get().DataDir
	for _, doc := range stigdata.SampleDocuments() {
		containerPath := filepath.Join(dataDir, stigdata.SampleFileName(doc))

		var buf bytes.Buffer
		encoder := json.NewEncoder(&buf)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(doc); err != nil {
			return err
		}
		if err := tc.Container.CopyToContainer(ctx, buf.Bytes(), containerPath, 0o644); err != nil {
			return fmt.Errorf("failed to copy sample into container: %w", err)
		}

		if _, err := tc.Client.LoadSTIG(ctx, containerPath); err != nil {
			return err
		}
	}
	return nil
}

// Close cleans up all test resources
func (tc *TestContext) Close(ctx context.Context) {
	if tc.stub != nil {
		tc.stub.Close()
	}
	if tc.sampleDir != "" {
		_ = os.RemoveAll(tc.sampleDir)
	}
	if tc.Container != nil {
		_ = tc.Container.Terminate(ctx)
	}
}

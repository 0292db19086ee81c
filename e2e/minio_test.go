package e2e_test

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

const (
	minioUser     = "minioadmin"
	minioPassword = "minioadmin"
)

var (
	minioOnce     sync.Once
	minioCleanup  func()
	minioEndpoint string
	minioErr      error
)

// getSharedMinIO returns the endpoint of a MinIO container shared by every
// test in the run.
func getSharedMinIO(t *testing.T) *S3Config {
	t.Helper()

	if testing.Short() {
		t.Skip("skipping container test in short mode")
	}

	minioOnce.Do(func() {
		ctx := context.Background()

		container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
			ContainerRequest: testcontainers.ContainerRequest{
				Image:        "minio/minio:latest",
				ExposedPorts: []string{"9000/tcp"},
				Env: map[string]string{
					"MINIO_ROOT_USER":     minioUser,
					"MINIO_ROOT_PASSWORD": minioPassword,
				},
				Cmd:        []string{"server", "/data"},
				WaitingFor: wait.ForHTTP("/minio/health/live").WithPort("9000/tcp"),
			},
			Started: true,
		})
		if err != nil {
			minioErr = err
			return
		}

		minioCleanup = func() {
			_ = testcontainers.TerminateContainer(container)
		}

		host, err := container.Host(ctx)
		if err != nil {
			minioErr = err
			return
		}
		port, err := container.MappedPort(ctx, "9000/tcp")
		if err != nil {
			minioErr = err
			return
		}

		minioEndpoint = fmt.Sprintf("http://%s:%s", host, port.Port())
	})

	if minioErr != nil {
		t.Fatalf("failed to start minio container: %v", minioErr)
	}

	return &S3Config{
		Endpoint:        minioEndpoint,
		AccessKeyID:     minioUser,
		SecretAccessKey: minioPassword,
	}
}

// Package pgcontainer starts a disposable postgres for integration tests
package pgcontainer

import (
	"context"
	"fmt"
	"testing"
	"time"

	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// Image is the server the integration suites target
const Image = "postgres:16-alpine"

// Start runs Image and returns a superuser DSN; the container is removed on cleanup.
// The first run may pull the image, hence the generous deadlines.
func Start(t testing.TB) string {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Minute)
	defer cancel()

	c, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{
		ContainerRequest: tc.ContainerRequest{
			Image:        Image,
			ExposedPorts: []string{"5432/tcp"},
			Env: map[string]string{
				"POSTGRES_USER":     "bulkdate",
				"POSTGRES_PASSWORD": "bulkdate",
				"POSTGRES_DB":       "bulkdate",
			},
			WaitingFor: wait.ForAll(
				wait.ForListeningPort("5432/tcp"),
				wait.ForLog("database system is ready to accept connections").WithOccurrence(2),
			).WithDeadline(2 * time.Minute),
		},
		Started: true,
	})
	if err != nil {
		t.Fatalf("pgcontainer: start: %v", err)
	}
	t.Cleanup(func() { _ = c.Terminate(context.Background()) })

	host, err := c.Host(ctx)
	if err != nil {
		t.Fatalf("pgcontainer: host: %v", err)
	}
	port, err := c.MappedPort(ctx, "5432/tcp")
	if err != nil {
		t.Fatalf("pgcontainer: port: %v", err)
	}
	return fmt.Sprintf("postgres://bulkdate:bulkdate@%s:%s/bulkdate?sslmode=disable", host, port.Port())
}

//go:build integration

package mysql

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/docker/go-connections/nat"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go/modules/mysql"
)

// setupMySQLContainer starts MySQL with db/schema.sql applied at init time and
// returns a DSN for it.
func setupMySQLContainer(t *testing.T, ctx context.Context) (string, func()) {
	t.Helper()

	const (
		dbName = "course_api_test"
		user   = "courses"
		pass   = "courses"
	)

	container, err := mysql.RunContainer(
		ctx,
		mysql.WithDatabase(dbName),
		mysql.WithUsername(user),
		mysql.WithPassword(pass),
		mysql.WithScripts(schemaPath(t)),
	)
	require.NoError(t, err)

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, nat.Port("3306/tcp"))
	require.NoError(t, err)

	dsn := user + ":" + pass + "@tcp(" + host + ":" + port.Port() + ")/" + dbName + "?parseTime=true&loc=UTC"

	return dsn, func() {
		_ = container.Terminate(ctx)
	}
}

func schemaPath(t *testing.T) string {
	t.Helper()

	wd, err := os.Getwd()
	require.NoError(t, err)
	path := filepath.Join(wd, "..", "..", "..", "db", "schema.sql")
	_, err = os.Stat(path)
	require.NoError(t, err)
	return path
}

package cmd_test

import (
	"context"
	"testing"
	"time"

	"tracking/cmd"

	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func TestCompositionRoot_FailedMigrationReleasesConnections(t *testing.T) {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	require.NoError(t, err)
	defer func() { require.NoError(t, container.Terminate(ctx)) }()

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)
	observer, err := gorm.Open(postgresdriver.Open(connStr), &gorm.Config{})
	require.NoError(t, err)
	observerDB, err := observer.DB()
	require.NoError(t, err)
	observerDB.SetMaxOpenConns(1)
	defer observerDB.Close()

	// A view squatting on the table name makes the schema migration fail.
	require.NoError(t, observer.Exec("CREATE VIEW shipments AS SELECT 1 AS id").Error)

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "5432/tcp")
	require.NoError(t, err)

	_, err = cmd.NewCompositionRoot(ctx, cmd.Config{
		StorageDriver: cmd.StorageDriverPostgres,
		DBHost:        host,
		DBPort:        port.Port(),
		DBUser:        "testuser",
		DBPassword:    "testpass",
		DBName:        "testdb",
		DBSslMode:     "disable",
	}, nil)
	require.ErrorContains(t, err, "migrate schema")

	require.Eventually(t, func() bool {
		var others int64
		err := observer.Raw(
			"SELECT count(*) FROM pg_stat_activity WHERE datname = 'testdb' AND pid <> pg_backend_pid()",
		).Scan(&others).Error
		return err == nil && others == 0
	}, 5*time.Second, 50*time.Millisecond)
}

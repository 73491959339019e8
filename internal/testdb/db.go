package testdb

import (
	"context"
	"fmt"
	"os"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/nutrilog/backend/internal/models"
)

// TestDB wraps a containerized Postgres instance with the full schema.
type TestDB struct {
	DB        *gorm.DB
	Container testcontainers.Container
}

// Close cleans up the test database
func (td *TestDB) Close() error {
	if td.Container != nil {
		return td.Container.Terminate(context.Background())
	}
	return nil
}

// SetupTestDB starts a pgvector-enabled Postgres container and migrates
// every application model into it.
func SetupTestDB(t *testing.T) *TestDB {
	_ = os.Setenv("ENV", "test")

	ctx := context.Background()
	req := testcontainers.ContainerRequest{
		Image:        "pgvector/pgvector:pg16",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_USER":     "test",
			"POSTGRES_PASSWORD": "test",
			"POSTGRES_DB":       "test",
		},
		WaitingFor: wait.ForAll(
			wait.ForLog("database system is ready to accept connections"),
			wait.ForListeningPort("5432/tcp"),
		),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "5432")
	require.NoError(t, err)

	dsn := fmt.Sprintf("host=%s port=%s user=test password=test dbname=test sslmode=disable",
		host, port.Port())
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	// pgvector and gen_random_uuid need their extensions before migration.
	require.NoError(t, db.Exec("CREATE EXTENSION IF NOT EXISTS vector;").Error)
	require.NoError(t, db.Exec("CREATE EXTENSION IF NOT EXISTS pgcrypto;").Error)

	err = db.AutoMigrate(
		&models.User{},
		&models.UserProfile{},
		&models.EmailVerificationToken{},
		&models.Entry{},
		&models.FoodItem{},
		&models.DailyActivity{},
		&models.Feedback{},
		&models.ProfileHistory{},
	)
	require.NoError(t, err)

	testDB := &TestDB{
		DB:        db,
		Container: container,
	}

	t.Cleanup(func() {
		if err := testDB.Close(); err != nil {
			t.Logf("Error cleaning up test database: %v", err)
		}
	})

	return testDB
}

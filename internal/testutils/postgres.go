package testutils

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"time"

	_ "github.com/lib/pq"

	"github.com/linskybing/simtrack/internal/migrations"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// SetupPostgresForIntegration returns a migrated database. TEST_DB_DSN points
// it at an existing server; otherwise a postgres:15 container is started.
func SetupPostgresForIntegration() (*gorm.DB, func()) {
	if dsn := os.Getenv("TEST_DB_DSN"); dsn != "" {
		sqlDB, err := connect(dsn)
		if err != nil {
			log.Fatal(err)
		}
		gdb := migrate(sqlDB)
		return gdb, func() {
			_ = sqlDB.Close()
		}
	}

	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image: "postgres:15",
		Env: map[string]string{
			"POSTGRES_PASSWORD": "test",
			"POSTGRES_USER":     "test",
			"POSTGRES_DB":       "simtrack",
		},
		ExposedPorts: []string{"5432/tcp"},
		WaitingFor: wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2).
			WithStartupTimeout(60 * time.Second),
	}

	pg, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		log.Fatal(err)
	}

	host, err := pg.Host(ctx)
	if err != nil {
		log.Fatal(err)
	}
	port, err := pg.MappedPort(ctx, "5432")
	if err != nil {
		log.Fatal(err)
	}

	dsn := fmt.Sprintf("postgres://test:test@%s:%s/simtrack?sslmode=disable", host, port.Port())
	sqlDB, err := connect(dsn)
	if err != nil {
		log.Fatal(err)
	}
	gdb := migrate(sqlDB)

	cleanup := func() {
		_ = sqlDB.Close()
		_ = pg.Terminate(ctx)
	}
	return gdb, cleanup
}

// retry db connect
func connect(dsn string) (*sql.DB, error) {
	var (
		db  *sql.DB
		err error
	)
	for i := 0; i < 10; i++ {
		db, err = sql.Open("postgres", dsn)
		if err == nil {
			err = db.Ping()
			if err == nil {
				return db, nil
			}
		}
		time.Sleep(1 * time.Second)
	}
	return nil, err
}

func migrate(sqlDB *sql.DB) *gorm.DB {
	gdb, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		log.Fatal(err)
	}
	if err := migrations.Run(gdb); err != nil {
		log.Fatal(err)
	}
	return gdb
}

// ResetTables empties every table between tests.
func ResetTables(gdb *gorm.DB) error {
	return gdb.Exec(`TRUNCATE attachments, notifications, audit_logs, discussion_requests,
		time_entries, project_hour_transactions, requests, project_code_counters, projects, users
		RESTART IDENTITY CASCADE`).Error
}

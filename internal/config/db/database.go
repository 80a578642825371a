package db

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/linskybing/simtrack/internal/config"
	"github.com/linskybing/simtrack/internal/migrations"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

func Init() {
	var err error
	DB, err = Open(config.DSN())
	if err != nil {
		log.Fatal("Failed to connect to DB:", err)
	}

	if err := migrations.Run(DB); err != nil {
		log.Fatal("Failed to auto migrate:", err)
	}

	log.Println("Database connected and migrated")
}

// Open connects to Postgres and applies the session statement timeout.
func Open(dsn string) (*gorm.DB, error) {
	level := logger.Warn
	if config.LogSQL {
		level = logger.Info
	}
	gormLogger := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold:             500 * time.Millisecond,
			LogLevel:                  level,
			IgnoreRecordNotFoundError: true,
		},
	)

	// Unknown DSN keys are sent to the server as runtime parameters, so the
	// timeout applies to every pooled connection.
	if config.DbStatementTimeout > 0 {
		dsn = fmt.Sprintf("%s statement_timeout=%d", dsn, config.DbStatementTimeout.Milliseconds())
	}

	gdb, err := gorm.Open(postgres.Open(dsn), &gorm.Config{Logger: gormLogger})
	if err != nil {
		return nil, err
	}

	sqlDB, err := gdb.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)

	return gdb, nil
}

func InitWithGormDB(gormDB *gorm.DB) {
	DB = gormDB
}

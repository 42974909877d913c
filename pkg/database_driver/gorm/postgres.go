package gorm

import (
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// DB struct
type DB struct {
	Postgres *gorm.DB
}

// ConnectionParams struct - Postgres connection settings
type ConnectionParams struct {
	Host     string
	Port     string
	Username string
	Password string
	DbName   string
	SSLMode  bool
}

// DSN builds the libpq keyword/value connection string
func (p ConnectionParams) DSN() string {
	sslmode := "disable"
	if p.SSLMode {
		sslmode = "require"
	}
	return fmt.Sprintf("host=%v user=%v password=%v dbname=%v port=%v sslmode=%v connect_timeout=10",
		p.Host, p.Username, p.Password, p.DbName, p.Port, sslmode)
}

// ConnectToPostgreSQL func
func ConnectToPostgreSQL(params ConnectionParams) (*DB, error) {
	if params.Host == "" || params.DbName == "" {
		return nil, errors.New("cannot estabished the connection: host and database are required")
	}

	pg, err := gorm.Open(postgres.Open(params.DSN()), &gorm.Config{
		DryRun: false,
		Logger: logger.Default.LogMode(logger.Error),
	})
	if err != nil {
		logrus.Error(err)
		return nil, err
	}

	sqlDB, err := pg.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetMaxOpenConns(20)
	sqlDB.SetConnMaxLifetime(time.Hour)

	logrus.Infof("Connected to postgres %s:%s/%s as %s", params.Host, params.Port, params.DbName, params.Username)
	return &DB{Postgres: pg}, nil
}

// DisconnectPostgres func
func DisconnectPostgres(db *gorm.DB) {
	if db == nil {
		return
	}
	sqlDb, err := db.DB()
	if err != nil {
		logrus.Error(err)
		return
	}
	err = sqlDb.Close()
	if err != nil {
		logrus.Error(err)
	}
	logrus.Println("Connected with postgres has closed")
}

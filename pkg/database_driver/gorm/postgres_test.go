package gorm

import (
	"strings"
	"testing"
)

// TestDSN tests connection string building
func TestDSN(t *testing.T) {
	params := ConnectionParams{
		Host:     "db",
		Port:     "5432",
		Username: "album",
		Password: "secret",
		DbName:   "uploads",
	}

	dsn := params.DSN()
	if !strings.Contains(dsn, "host=db") || !strings.Contains(dsn, "dbname=uploads") {
		t.Errorf("unexpected dsn: %s", dsn)
	}
	if !strings.Contains(dsn, "sslmode=disable") {
		t.Errorf("expected sslmode=disable, got: %s", dsn)
	}

	params.SSLMode = true
	if !strings.Contains(params.DSN(), "sslmode=require") {
		t.Errorf("expected sslmode=require, got: %s", params.DSN())
	}
}

// TestConnectToPostgreSQLRequiresHost tests the parameter check
func TestConnectToPostgreSQLRequiresHost(t *testing.T) {
	_, err := ConnectToPostgreSQL(ConnectionParams{Port: "5432"})
	if err == nil {
		t.Error("expected error for missing host")
	}
}

// TestDisconnectPostgresNil tests that a nil handle is ignored
func TestDisconnectPostgresNil(t *testing.T) {
	DisconnectPostgres(nil)
}

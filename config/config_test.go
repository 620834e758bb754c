package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(contents), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadConfig(t *testing.T) {
	path := writeConfig(t, `
database:
  type: postgres
  connection_string: postgres://localhost:5432/app
log_level: debug
`)

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() = %v", err)
	}
	if cfg.Database.DBType != "postgres" {
		t.Errorf("DBType = %q, want postgres", cfg.Database.DBType)
	}
	if cfg.Database.ConnectionString != "postgres://localhost:5432/app" {
		t.Errorf("ConnectionString = %q", cfg.Database.ConnectionString)
	}
	if cfg.SlogLevel() != slog.LevelDebug {
		t.Errorf("SlogLevel() = %v, want debug", cfg.SlogLevel())
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("LoadConfig() = nil, want error")
	}
}

func TestGetConnectionString(t *testing.T) {
	tests := []struct {
		name    string
		cfg     DatabaseConfig
		want    string
		wantErr bool
	}{
		{"mysql with dsn", DatabaseConfig{DBType: "mysql", ConnectionString: "user:pass@/db"}, "user:pass@/db", false},
		{"mysql without dsn", DatabaseConfig{DBType: "mysql"}, "", true},
		{"postgres without dsn", DatabaseConfig{DBType: "postgres"}, "", true},
		{"sqlite with file", DatabaseConfig{DBType: "sqlite", File: "app.db"}, "app.db", false},
		{"sqlite default file", DatabaseConfig{DBType: "sqlite"}, "database.db", false},
		{"unsupported", DatabaseConfig{DBType: "oracle"}, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.cfg.GetConnectionString()
			if (err != nil) != tt.wantErr {
				t.Fatalf("GetConnectionString() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("GetConnectionString() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSlogLevelDefault(t *testing.T) {
	cfg := &Config{}
	if cfg.SlogLevel() != slog.LevelInfo {
		t.Errorf("SlogLevel() = %v, want info", cfg.SlogLevel())
	}
}

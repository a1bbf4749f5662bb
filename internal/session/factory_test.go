package session

import (
	"context"
	"path/filepath"
	"testing"
)

func TestNewStoreDrivers(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{
			name: "memory",
			cfg:  Config{Driver: DriverMemory},
		},
		{
			name: "file",
			cfg: Config{
				Driver: DriverFile,
				File:   &FileConfig{Path: filepath.Join(t.TempDir(), "s.json")},
			},
		},
		{
			name: "sqlite",
			cfg: Config{
				Driver: DriverSQLite,
				SQLite: &SQLiteConfig{DSN: filepath.Join(t.TempDir(), "s.db")},
			},
		},
		{
			name:    "sqlite without dsn",
			cfg:     Config{Driver: DriverSQLite},
			wantErr: true,
		},
		{
			name:    "redis without config",
			cfg:     Config{Driver: DriverRedis},
			wantErr: true,
		},
		{
			name:    "unknown driver",
			cfg:     Config{Driver: "vault"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store, err := NewStore(tt.cfg)
			if (err != nil) != tt.wantErr {
				t.Fatalf("NewStore() error = %v, wantErr %v", err, tt.wantErr)
			}
			if store != nil {
				_ = store.Close(context.Background())
			}
		})
	}
}

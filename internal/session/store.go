package session

import (
	"context"
	"time"
)

// Storage keys. Exactly these two values are persisted: the credential and
// its absolute expiry in milliseconds since epoch.
const (
	TokenKey  = "auth_token"
	ExpiryKey = "token_expires_at"
)

// Store persists the session credential. Load returns empty values, not an
// error, when no credential is stored.
type Store interface {
	Save(ctx context.Context, token string, expiresAt int64) error
	Load(ctx context.Context) (token string, expiresAt int64, err error)
	Clear(ctx context.Context) error
	Close(ctx context.Context) error
}

// Config describes the store selection parameters.
type Config struct {
	Driver string
	TTL    time.Duration
	File   *FileConfig
	Redis  *RedisConfig
	SQLite *SQLiteConfig
}

// FileConfig locates the JSON session file.
type FileConfig struct {
	Path string
}

// RedisConfig captures connection options.
type RedisConfig struct {
	Addr     string
	Username string
	Password string
	DB       int
	Prefix   string
}

// SQLiteConfig provides the database location.
type SQLiteConfig struct {
	DSN string
}

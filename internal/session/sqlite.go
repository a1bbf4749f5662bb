package session

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// SessionEntry is the key-value row model; exactly two rows exist when a
// session is active.
type SessionEntry struct {
	Key   string `gorm:"primaryKey;column:key"`
	Value string `gorm:"column:value"`
}

// TableName keeps the table name explicit.
func (SessionEntry) TableName() string {
	return "session_entries"
}

type sqliteStore struct {
	db *gorm.DB
}

// NewSQLite builds a SQLite-backed session store.
func NewSQLite(cfg *SQLiteConfig) (Store, error) {
	if cfg == nil || cfg.DSN == "" {
		return nil, fmt.Errorf("sqlite store requires a dsn")
	}
	db, err := gorm.Open(sqlite.Open(cfg.DSN), &gorm.Config{
		Logger: logger.Discard,
	})
	if err != nil {
		return nil, fmt.Errorf("open sqlite session db: %w", err)
	}
	if err := db.AutoMigrate(&SessionEntry{}); err != nil {
		return nil, fmt.Errorf("migrate session table: %w", err)
	}
	return &sqliteStore{db: db}, nil
}

func (s *sqliteStore) Save(ctx context.Context, token string, expiresAt int64) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&SessionEntry{}).Error; err != nil {
			return err
		}
		entries := []SessionEntry{
			{Key: TokenKey, Value: token},
			{Key: ExpiryKey, Value: strconv.FormatInt(expiresAt, 10)},
		}
		return tx.Create(&entries).Error
	})
}

func (s *sqliteStore) Load(ctx context.Context) (string, int64, error) {
	token, err := s.fetch(ctx, TokenKey)
	if err != nil {
		return "", 0, err
	}
	rawExpiry, err := s.fetch(ctx, ExpiryKey)
	if err != nil {
		return "", 0, err
	}
	if token == "" || rawExpiry == "" {
		return "", 0, nil
	}
	expiresAt, err := strconv.ParseInt(rawExpiry, 10, 64)
	if err != nil {
		return "", 0, nil
	}
	return token, expiresAt, nil
}

func (s *sqliteStore) Clear(ctx context.Context) error {
	return s.db.WithContext(ctx).Where("1 = 1").Delete(&SessionEntry{}).Error
}

func (s *sqliteStore) Close(context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func (s *sqliteStore) fetch(ctx context.Context, key string) (string, error) {
	var entry SessionEntry
	err := s.db.WithContext(ctx).Where("key = ?", key).First(&entry).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return entry.Value, nil
}

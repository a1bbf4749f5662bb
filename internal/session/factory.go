package session

import "fmt"

// Driver identifiers supported by the session package.
const (
	DriverMemory = "memory"
	DriverFile   = "file"
	DriverRedis  = "redis"
	DriverSQLite = "sqlite"
)

// NewStore creates a session store based on the provided configuration.
func NewStore(cfg Config) (Store, error) {
	driver := cfg.Driver
	if driver == "" {
		driver = DriverFile
	}

	switch driver {
	case DriverMemory:
		return NewMemory(), nil
	case DriverFile:
		return NewFile(cfg.File)
	case DriverRedis:
		return NewRedis(cfg.Redis)
	case DriverSQLite:
		return NewSQLite(cfg.SQLite)
	default:
		return nil, fmt.Errorf("unsupported session store driver: %s", driver)
	}
}

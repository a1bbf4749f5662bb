package session

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/bytedance/sonic"
)

type fileStore struct {
	mutex sync.RWMutex
	path  string
}

type fileState struct {
	Token     string `json:"auth_token"`
	ExpiresAt int64  `json:"token_expires_at"`
}

// NewFile builds a store backed by a JSON file, the CLI analog of the
// dashboard's origin-scoped browser storage. An empty path resolves to the
// user config directory.
func NewFile(cfg *FileConfig) (Store, error) {
	path := ""
	if cfg != nil {
		path = cfg.Path
	}
	if path == "" {
		base, err := os.UserConfigDir()
		if err != nil {
			return nil, fmt.Errorf("resolve config dir: %w", err)
		}
		path = filepath.Join(base, "robotic-card-dashboard", "session.json")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("create session dir: %w", err)
	}
	return &fileStore{path: path}, nil
}

func (s *fileStore) Save(_ context.Context, token string, expiresAt int64) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	data, err := sonic.Marshal(fileState{Token: token, ExpiresAt: expiresAt})
	if err != nil {
		return err
	}
	// Write-then-rename keeps a concurrent reader from seeing a torn file.
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return err
	}
	return os.Rename(tmp, s.path)
}

func (s *fileStore) Load(_ context.Context) (string, int64, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return "", 0, nil
	}
	if err != nil {
		return "", 0, err
	}
	var state fileState
	if err := sonic.Unmarshal(data, &state); err != nil {
		// A corrupt session file reads as "not logged in".
		return "", 0, nil
	}
	return state.Token, state.ExpiresAt, nil
}

func (s *fileStore) Clear(_ context.Context) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	err := os.Remove(s.path)
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

func (s *fileStore) Close(context.Context) error {
	return nil
}

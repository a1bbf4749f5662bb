package session

import (
	"context"
	"log/slog"
	"time"
)

// DefaultTTL matches the backend's session lifetime.
const DefaultTTL = 24 * time.Hour

// Manager is the single source of truth for the current session credential.
// All persistence failures degrade to an unauthenticated session rather than
// surfacing as errors: a lost token means a re-login, never a crash.
type Manager struct {
	store  Store
	logger *slog.Logger
	now    func() time.Time
}

// NewManager wires a Manager over the given store.
func NewManager(store Store, logger *slog.Logger) *Manager {
	if logger == nil {
		logger = slog.Default()
	}
	return &Manager{
		store:  store,
		logger: logger,
		now:    time.Now,
	}
}

// SetToken stores the credential with an absolute expiry of now + ttl
// (DefaultTTL when ttl <= 0). When the value is a JWT whose exp claim falls
// before the requested expiry, the claim wins: the stored lifetime never
// outlives the token itself.
func (m *Manager) SetToken(ctx context.Context, value string, ttl time.Duration) {
	if value == "" {
		return
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	now := m.now()
	expiresAt := now.Add(ttl)
	if claimExp, ok := jwtExpiry(value); ok && claimExp.After(now) && claimExp.Before(expiresAt) {
		expiresAt = claimExp
	}
	if err := m.store.Save(ctx, value, expiresAt.UnixMilli()); err != nil {
		m.logger.Warn("session store save failed, continuing unauthenticated", "error", err)
	}
}

// GetToken returns the credential only while it is present and unexpired,
// checking expiry against the wall clock at call time. A detected expiry
// clears the stored value as a side effect; there is no background timer.
func (m *Manager) GetToken(ctx context.Context) string {
	token, expiresAt, err := m.store.Load(ctx)
	if err != nil {
		m.logger.Warn("session store load failed", "error", err)
		return ""
	}
	if token == "" || expiresAt == 0 {
		return ""
	}
	if m.now().UnixMilli() >= expiresAt {
		m.ClearToken(ctx)
		return ""
	}
	return token
}

// ClearToken removes the credential and its expiry; idempotent.
func (m *Manager) ClearToken(ctx context.Context) {
	if err := m.store.Clear(ctx); err != nil {
		m.logger.Warn("session store clear failed", "error", err)
	}
}

// IsTokenValid reports whether an unexpired credential is stored.
func (m *Manager) IsTokenValid(ctx context.Context) bool {
	return m.GetToken(ctx) != ""
}

// TokenExpiry returns the stored absolute expiry, false when no credential
// is stored.
func (m *Manager) TokenExpiry(ctx context.Context) (time.Time, bool) {
	_, expiresAt, err := m.store.Load(ctx)
	if err != nil || expiresAt == 0 {
		return time.Time{}, false
	}
	return time.UnixMilli(expiresAt), true
}

// Close releases the underlying store.
func (m *Manager) Close(ctx context.Context) error {
	return m.store.Close(ctx)
}

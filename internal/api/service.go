// Package api exposes typed services over the dashboard backend. Each
// service wraps the shared HTTP client and absorbs the backend's payload
// quirks so callers see plain Go types.
package api

import (
	"github.com/bytedance/sonic"

	"github.com/Wass76/robotic-card-dashboard/internal/client"
	perrors "github.com/Wass76/robotic-card-dashboard/internal/platform/errors"
)

// Service bundles all endpoint groups over one client.
type Service struct {
	Auth       *AuthService
	Users      *UserService
	Cards      *CardService
	Attendance *AttendanceService
	Scans      *ScanService
	Stats      *StatsService
}

// New builds the full service set over c.
func New(c *client.Client) *Service {
	users := &UserService{client: c}
	cards := &CardService{client: c}
	attendance := &AttendanceService{client: c}
	return &Service{
		Auth:       &AuthService{client: c},
		Users:      users,
		Cards:      cards,
		Attendance: attendance,
		Scans:      &ScanService{client: c},
		Stats:      &StatsService{users: users, cards: cards, attendance: attendance},
	}
}

// rebind converts a decoded payload (maps and slices) into a typed value
// by a marshal round trip.
func rebind(op string, payload any, out any) error {
	raw, err := sonic.Marshal(payload)
	if err != nil {
		return perrors.Wrap(perrors.KindUnknown, op, "unexpected payload shape", err)
	}
	if err := sonic.Unmarshal(raw, out); err != nil {
		return perrors.Wrap(perrors.KindUnknown, op, "unexpected payload shape", err)
	}
	return nil
}

// asRecord returns the payload as an object, nil when it is anything else.
func asRecord(payload any) map[string]any {
	record, _ := payload.(map[string]any)
	return record
}

// asSlice returns the payload as a list, nil when it is anything else.
func asSlice(payload any) []any {
	list, _ := payload.([]any)
	return list
}

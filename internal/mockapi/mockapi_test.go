package mockapi_test

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Wass76/robotic-card-dashboard/internal/api"
	"github.com/Wass76/robotic-card-dashboard/internal/client"
	"github.com/Wass76/robotic-card-dashboard/internal/events"
	"github.com/Wass76/robotic-card-dashboard/internal/mockapi"
	perrors "github.com/Wass76/robotic-card-dashboard/internal/platform/errors"
	"github.com/Wass76/robotic-card-dashboard/internal/session"
)

// The mock backend is verified through the real client stack, the same
// way the CLI talks to it.
func newStack(t *testing.T) *api.Service {
	t.Helper()
	srv := httptest.NewServer(mockapi.New(nil).Engine())
	t.Cleanup(srv.Close)
	c := client.New(srv.URL, session.NewManager(session.NewMemory(), nil),
		client.WithBus(events.New()),
		client.WithRetryPolicy(client.RetryPolicy{MaxRetries: 0, BaseDelay: time.Millisecond}),
	)
	return api.New(c)
}

func login(t *testing.T, svc *api.Service) {
	t.Helper()
	result, err := svc.Auth.Login(context.Background(), api.Credentials{
		Email:    "admin@robotics.club",
		Password: "anything",
	})
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if result.Token == "" {
		t.Fatalf("login returned no token")
	}
}

func TestRequestsWithoutTokenRejected(t *testing.T) {
	svc := newStack(t)
	_, err := svc.Users.List(context.Background())
	if !perrors.IsKind(err, perrors.KindUnauthorized) {
		t.Fatalf("expected unauthorized, got %v", err)
	}
}

func TestLoginThenListUsers(t *testing.T) {
	svc := newStack(t)
	login(t, svc)

	users, err := svc.Users.List(context.Background())
	if err != nil {
		t.Fatalf("list users: %v", err)
	}
	if len(users) != 5 {
		t.Fatalf("expected 5 seeded users, got %d", len(users))
	}
	if users[0].Phone != "0987654321" {
		t.Fatalf("Phone key lost in transit: %+v", users[0])
	}
}

func TestCreateAndDeleteUser(t *testing.T) {
	svc := newStack(t)
	login(t, svc)

	created, err := svc.Users.Create(context.Background(), api.User{
		FirstName: "Lina",
		LastName:  "Haddad",
		Email:     "lina@robotics.club",
		Phone:     "0987654326",
		Role:      "User",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.ID == 0 || created.Status != "active" {
		t.Fatalf("unexpected created user: %+v", created)
	}

	if err := svc.Users.Delete(context.Background(), created.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := svc.Users.Get(context.Background(), created.ID); err == nil {
		t.Fatalf("deleted user still present")
	}
}

func TestAttendanceByUser(t *testing.T) {
	svc := newStack(t)
	login(t, svc)

	records, err := svc.Attendance.ByUser(context.Background(), 1)
	if err != nil {
		t.Fatalf("byUser: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 seeded records for user 1, got %d", len(records))
	}
	for _, r := range records {
		if r.UserID != 1 {
			t.Fatalf("record for wrong user: %+v", r)
		}
	}
}

func TestScanKnownCardCreatesRecord(t *testing.T) {
	svc := newStack(t)
	login(t, svc)

	before, err := svc.Attendance.List(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}

	record, err := svc.Scans.RecordScan(context.Background(), "2222")
	if err != nil {
		t.Fatalf("scan: %v", err)
	}
	if record.UserID != 2 || record.Type != "entry" {
		t.Fatalf("unexpected record: %+v", record)
	}

	after, err := svc.Attendance.List(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(after) != len(before)+1 {
		t.Fatalf("scan did not append a record: %d -> %d", len(before), len(after))
	}
}

func TestScanUnknownCardTracked(t *testing.T) {
	svc := newStack(t)
	login(t, svc)

	if _, err := svc.Scans.RecordScan(context.Background(), "DEADBEEF"); err == nil {
		t.Fatalf("unknown card scan should fail")
	}

	codes, err := svc.Scans.UnknownCards(context.Background())
	if err != nil {
		t.Fatalf("unknownCards: %v", err)
	}
	if len(codes) != 1 || codes[0] != "DEADBEEF" {
		t.Fatalf("unexpected unknown cards: %v", codes)
	}
}

func TestLogoutRevokesToken(t *testing.T) {
	svc := newStack(t)
	login(t, svc)

	if err := svc.Auth.Logout(context.Background()); err != nil {
		t.Fatalf("logout: %v", err)
	}
	_, err := svc.Users.List(context.Background())
	if !perrors.IsKind(err, perrors.KindUnauthorized) {
		t.Fatalf("expected unauthorized after logout, got %v", err)
	}
}

func TestStatsOverMockBackend(t *testing.T) {
	svc := newStack(t)
	login(t, svc)

	stats, err := svc.Stats.Collect(context.Background())
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if stats.TotalUsers != 5 || stats.ActiveUsers != 4 || stats.TotalCards != 5 {
		t.Fatalf("unexpected stats: %+v", stats)
	}
	if stats.MonthlyAttendance != 6 {
		t.Fatalf("expected monthly total 6, got %d", stats.MonthlyAttendance)
	}
}

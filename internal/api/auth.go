package api

import (
	"context"

	"github.com/Wass76/robotic-card-dashboard/internal/client"
	perrors "github.com/Wass76/robotic-card-dashboard/internal/platform/errors"
)

// AuthService handles the session lifecycle against the backend.
type AuthService struct {
	client *client.Client
}

// Login authenticates with email and password. The response body is kept
// whole because the token's location varies between deployments; whichever
// field carries it, the credential is stored before returning.
func (s *AuthService) Login(ctx context.Context, creds Credentials) (*LoginResult, error) {
	payload, err := s.client.Post(ctx, EndpointLogin, creds, &client.RequestOptions{
		SkipAuth:    true,
		RawEnvelope: true,
	})
	if err != nil {
		return nil, err
	}

	envelope := asRecord(payload)
	if envelope == nil {
		return nil, perrors.New(perrors.KindUnknown, "api.auth.login", "login response is not an object")
	}

	token := extractToken(envelope)
	if token == "" {
		return nil, perrors.New(perrors.KindUnknown, "api.auth.login", "login response carried no token")
	}
	s.client.Session().SetToken(ctx, token, 0)

	result := &LoginResult{Token: token, Envelope: envelope}
	if user := extractUser(envelope); user != nil {
		profile := &Profile{}
		if err := rebind("api.auth.login", user, profile); err == nil {
			result.User = profile
		}
	}
	return result, nil
}

// extractToken walks the token locations seen in the wild, most common
// first: data.token, token, authorisation.token, access_token.
func extractToken(envelope map[string]any) string {
	if data := asRecord(envelope["data"]); data != nil {
		if token, ok := data["token"].(string); ok && token != "" {
			return token
		}
	}
	if token, ok := envelope["token"].(string); ok && token != "" {
		return token
	}
	if auth := asRecord(envelope["authorisation"]); auth != nil {
		if token, ok := auth["token"].(string); ok && token != "" {
			return token
		}
	}
	if token, ok := envelope["access_token"].(string); ok && token != "" {
		return token
	}
	return ""
}

func extractUser(envelope map[string]any) map[string]any {
	if user := asRecord(envelope["user"]); user != nil {
		return user
	}
	if data := asRecord(envelope["data"]); data != nil {
		if user := asRecord(data["user"]); user != nil {
			return user
		}
	}
	return nil
}

// Logout tells the backend to drop the session, then clears the local
// credential no matter what the backend said. The returned error reports
// the backend call only; the local session is gone either way.
func (s *AuthService) Logout(ctx context.Context) error {
	_, err := s.client.Post(ctx, EndpointLogout, nil, nil)
	s.client.Session().ClearToken(ctx)
	return err
}

// LogoutFromClub ends the on-site kiosk session. Same local-clear
// guarantee as Logout.
func (s *AuthService) LogoutFromClub(ctx context.Context) error {
	_, err := s.client.Post(ctx, EndpointLogoutFromClub, nil, nil)
	s.client.Session().ClearToken(ctx)
	return err
}

// Profile fetches the authenticated account's record.
func (s *AuthService) Profile(ctx context.Context) (*Profile, error) {
	payload, err := s.client.Get(ctx, EndpointProfile, nil)
	if err != nil {
		return nil, err
	}
	profile := &Profile{}
	if err := rebind("api.auth.profile", payload, profile); err != nil {
		return nil, err
	}
	return profile, nil
}

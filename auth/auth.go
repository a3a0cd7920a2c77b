// Package auth signs the admin in against the hosted identity provider
// with email and password. Session lifecycle (refresh, expiry) stays with
// the provider; this package only performs the sign-in exchange and maps
// rejections to a small set of user-facing errors.
package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/guonaihong/gout"
	"github.com/spf13/cast"
)

// DefaultEndpoint is the production sign-in endpoint.
const DefaultEndpoint = "https://identitytoolkit.googleapis.com/v1/accounts:signInWithPassword"

// Session is the provider-issued credential bundle for a signed-in admin.
type Session struct {
	Email        string
	UserID       string
	IDToken      string
	RefreshToken string
	ExpiresAt    time.Time
}

// Authenticator verifies admin credentials.
type Authenticator interface {
	SignIn(ctx context.Context, email, password string) (*Session, error)
}

// PasswordAuthenticator is an Authenticator over the Identity Toolkit
// REST API.
type PasswordAuthenticator struct {
	APIKey string

	// Endpoint overrides the API URL, for tests. Empty means production.
	Endpoint string

	Logger *slog.Logger
}

// NewPasswordAuthenticator returns an authenticator for the project's web
// API key.
func NewPasswordAuthenticator(apiKey string) (*PasswordAuthenticator, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("auth: API key must be provided")
	}
	return &PasswordAuthenticator{APIKey: apiKey}, nil
}

type signInResponse struct {
	Email        string `json:"email"`
	LocalID      string `json:"localId"`
	IDToken      string `json:"idToken"`
	RefreshToken string `json:"refreshToken"`
	ExpiresIn    string `json:"expiresIn"`
	Error        struct {
		Message string `json:"message"`
	} `json:"error"`
}

// SignIn exchanges credentials for a session. Rejections map to the
// sentinel errors in this package; callers show Message(err) to the user.
func (a *PasswordAuthenticator) SignIn(ctx context.Context, email, password string) (*Session, error) {
	endpoint := a.Endpoint
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}

	var (
		code int
		body []byte
	)
	err := gout.POST(endpoint).
		WithContext(ctx).
		SetQuery(gout.H{"key": a.APIKey}).
		SetJSON(gout.H{
			"email":             email,
			"password":          password,
			"returnSecureToken": true,
		}).
		Code(&code).
		BindBody(&body).
		Do()
	if err != nil {
		return nil, fmt.Errorf("sign in: %w", err)
	}

	var resp signInResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("sign in: decode response (status %d): %w", code, err)
	}
	if code < 200 || code > 299 {
		err := mapProviderError(resp.Error.Message)
		a.logger().Warn("Admin sign-in rejected.", "email", email, "reason", resp.Error.Message)
		return nil, err
	}

	sess := &Session{
		Email:        resp.Email,
		UserID:       resp.LocalID,
		IDToken:      resp.IDToken,
		RefreshToken: resp.RefreshToken,
	}
	if secs := cast.ToInt(resp.ExpiresIn); secs > 0 {
		sess.ExpiresAt = time.Now().Add(time.Duration(secs) * time.Second)
	}
	a.logger().Info("Admin signed in.", "email", resp.Email)
	return sess, nil
}

// mapProviderError translates provider rejection codes into the fixed
// user-facing taxonomy. Unknown codes fall back to ErrSignInFailed.
func mapProviderError(providerMsg string) error {
	// Provider messages can carry suffixes like "TOO_MANY_ATTEMPTS_...",
	// so match on the leading code.
	code := providerMsg
	if i := strings.IndexAny(code, " :"); i >= 0 {
		code = code[:i]
	}
	switch code {
	case "EMAIL_NOT_FOUND":
		return ErrAccountNotFound
	case "INVALID_PASSWORD", "INVALID_LOGIN_CREDENTIALS":
		return ErrWrongCredential
	case "INVALID_EMAIL":
		return ErrMalformedEmail
	default:
		return fmt.Errorf("%w: %s", ErrSignInFailed, providerMsg)
	}
}

func (a *PasswordAuthenticator) logger() *slog.Logger {
	if a.Logger != nil {
		return a.Logger
	}
	return slog.Default()
}

// Package session wraps the hosted auth service. It exchanges credentials for
// a JWT and exposes the decoded session the sync engine tags outgoing records
// with.
package session

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io/ioutil"
	"net/http"
	"sync"
	"time"

	jwt "github.com/dgrijalva/jwt-go"
)

// Session is the authenticated identity. Role distinguishes health workers
// from patients on the shell side; the core only needs UserID.
type Session struct {
	UserID      string `json:"user_id"`
	Role        string `json:"role"`
	AccessToken string `json:"-"`
}

// Provider supplies the current session, or nil when nobody is signed in. A
// nil session must make the sync engine refuse to submit records.
type Provider interface {
	Login(ctx context.Context, email, password string) (*Session, error)
	CurrentSession() (*Session, error)
	Restore(accessToken string)
	Logout()
}

type client struct {
	endpoint   string
	apiKey     string
	httpClient *http.Client

	mu    sync.RWMutex
	token string
}

func NewClient(endpoint, apiKey string, httpClient *http.Client) Provider {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	return &client{
		endpoint:   endpoint,
		apiKey:     apiKey,
		httpClient: httpClient,
	}
}

// sessionClaims is the claim set issued by the auth service. The subject is
// the user id; role rides along as a custom claim.
type sessionClaims struct {
	Role string `json:"role"`
	jwt.StandardClaims
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
}

type authErrorResponse struct {
	Message string `json:"error_description"`
}

// Login exchanges credentials for a token at the auth service and keeps the
// token for later CurrentSession calls.
func (c *client) Login(ctx context.Context, email, password string) (*Session, error) {
	body, err := json.Marshal(map[string]string{
		"email":    email,
		"password": password,
	})
	if err != nil {
		return nil, err
	}

	query := fmt.Sprintf("%s/auth/v1/token?grant_type=password", c.endpoint)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, query, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("apikey", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	d, err := ioutil.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode != http.StatusOK {
		var r authErrorResponse
		if err := json.Unmarshal(d, &r); err == nil && r.Message != "" {
			return nil, fmt.Errorf("login rejected: %s", r.Message)
		}
		return nil, fmt.Errorf("login rejected with status %d", resp.StatusCode)
	}

	var r tokenResponse
	if err := json.Unmarshal(d, &r); err != nil {
		return nil, err
	}

	session, err := decodeSession(r.AccessToken)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, fmt.Errorf("auth service returned an expired token")
	}

	c.mu.Lock()
	c.token = r.AccessToken
	c.mu.Unlock()

	return session, nil
}

// CurrentSession returns the session decoded from the held token, or nil when
// there is no token or it has expired. Expiry is treated as signed out, not
// as an error.
func (c *client) CurrentSession() (*Session, error) {
	c.mu.RLock()
	token := c.token
	c.mu.RUnlock()

	if token == "" {
		return nil, nil
	}
	return decodeSession(token)
}

// Restore installs a token persisted by the shell across restarts.
func (c *client) Restore(accessToken string) {
	c.mu.Lock()
	c.token = accessToken
	c.mu.Unlock()
}

func (c *client) Logout() {
	c.mu.Lock()
	c.token = ""
	c.mu.Unlock()
}

// decodeSession extracts the identity claims. The token arrived over TLS from
// the auth service and is verified server-side on every remote call, so the
// device only decodes it; signature verification happens where the key lives.
func decodeSession(token string) (*Session, error) {
	claims := &sessionClaims{}
	if _, _, err := new(jwt.Parser).ParseUnverified(token, claims); err != nil {
		return nil, err
	}

	if claims.ExpiresAt != 0 && claims.ExpiresAt <= time.Now().Unix() {
		return nil, nil
	}
	if claims.Subject == "" {
		return nil, fmt.Errorf("token carries no subject")
	}

	return &Session{
		UserID:      claims.Subject,
		Role:        claims.Role,
		AccessToken: token,
	}, nil
}

package session_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	jwt "github.com/dgrijalva/jwt-go"
	"github.com/stretchr/testify/assert"

	"github.com/Muhammad-Raisul-Maharub/maasathi-health/external/session"
)

type testClaims struct {
	Role string `json:"role"`
	jwt.StandardClaims
}

func signToken(t *testing.T, userID, role string, expiresAt int64) string {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, testClaims{
		Role: role,
		StandardClaims: jwt.StandardClaims{
			Subject:   userID,
			ExpiresAt: expiresAt,
			IssuedAt:  time.Now().Unix(),
		},
	})

	signed, err := token.SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("sign token with error: %s", err)
	}
	return signed
}

func newAuthServer(t *testing.T, token string) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/auth/v1/token", r.URL.Path)
		assert.Equal(t, "password", r.URL.Query().Get("grant_type"))
		assert.Equal(t, "anon-key", r.Header.Get("apikey"))

		var creds map[string]string
		_ = json.NewDecoder(r.Body).Decode(&creds)
		if creds["password"] != "correct" {
			w.WriteHeader(http.StatusBadRequest)
			_ = json.NewEncoder(w).Encode(map[string]string{"error_description": "Invalid login credentials"})
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]string{"access_token": token})
	}))
}

func TestLoginAndCurrentSession(t *testing.T) {
	token := signToken(t, "user-42", "health_worker", time.Now().Add(time.Hour).Unix())
	ts := newAuthServer(t, token)
	defer ts.Close()

	c := session.NewClient(ts.URL, "anon-key", ts.Client())

	got, err := c.Login(context.Background(), "asha@example.org", "correct")
	assert.Nil(t, err, "wrong Login")
	assert.Equal(t, "user-42", got.UserID)
	assert.Equal(t, "health_worker", got.Role)

	current, err := c.CurrentSession()
	assert.Nil(t, err)
	assert.Equal(t, "user-42", current.UserID)
	assert.Equal(t, token, current.AccessToken)
}

func TestLoginRejected(t *testing.T) {
	ts := newAuthServer(t, "")
	defer ts.Close()

	c := session.NewClient(ts.URL, "anon-key", ts.Client())
	_, err := c.Login(context.Background(), "asha@example.org", "wrong")
	assert.EqualError(t, err, "login rejected: Invalid login credentials")

	current, err := c.CurrentSession()
	assert.Nil(t, err)
	assert.Nil(t, current, "failed login must not leave a session behind")
}

func TestCurrentSessionSignedOut(t *testing.T) {
	c := session.NewClient("http://localhost:0", "anon-key", nil)
	current, err := c.CurrentSession()
	assert.Nil(t, err)
	assert.Nil(t, current, "no token means no session")
}

func TestCurrentSessionExpired(t *testing.T) {
	expired := signToken(t, "user-42", "patient", time.Now().Add(-time.Minute).Unix())

	c := session.NewClient("http://localhost:0", "anon-key", nil)
	c.Restore(expired)

	current, err := c.CurrentSession()
	assert.Nil(t, err)
	assert.Nil(t, current, "expired token is signed out, not an error")
}

func TestRestoreAndLogout(t *testing.T) {
	token := signToken(t, "user-7", "patient", time.Now().Add(time.Hour).Unix())

	c := session.NewClient("http://localhost:0", "anon-key", nil)
	c.Restore(token)

	current, err := c.CurrentSession()
	assert.Nil(t, err)
	assert.Equal(t, "user-7", current.UserID)
	assert.Equal(t, "patient", current.Role)

	c.Logout()
	current, err = c.CurrentSession()
	assert.Nil(t, err)
	assert.Nil(t, current)
}

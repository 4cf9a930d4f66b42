package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubServer answers every operation from a canned response table keyed by
// the operation name in the query string.
func stubServer(t *testing.T, responses map[string]string) *httptest.Server {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Query string `json:"query"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))

		for op, body := range responses {
			if strings.Contains(req.Query, op) {
				w.Header().Set("Content-Type", "application/json")
				_, _ = w.Write([]byte(body))
				return
			}
		}
		t.Fatalf("no canned response for query %q", req.Query)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestNew_RejectsNilSubject(t *testing.T) {
	t.Parallel()

	_, err := New("http://localhost", nil)
	require.Error(t, err)
}

func TestInitialState_Resolving(t *testing.T) {
	t.Parallel()

	s := NewAuthSubject()
	state := s.Value()
	assert.True(t, state.Resolving)
	assert.False(t, state.LoggedIn)
}

func TestLogin_BroadcastsLoggedIn(t *testing.T) {
	t.Parallel()

	srv := stubServer(t, map[string]string{
		"loginMutation": `{"data":{"login":{"id":"u1","email":"a@b.com"}}}`,
	})

	s := NewAuthSubject()
	c, err := New(srv.URL, s)
	require.NoError(t, err)

	var states []AuthState
	sub := s.Subscribe(func(st AuthState) { states = append(states, st) })
	defer sub.Unsubscribe()

	u, err := c.Login(context.Background(), "a@b.com", "pw")
	require.NoError(t, err)
	assert.Equal(t, "u1", u.ID)

	require.Len(t, states, 1)
	assert.True(t, states[0].LoggedIn)
	assert.False(t, states[0].Resolving)
	assert.Equal(t, "a@b.com", states[0].Email)
}

func TestLogin_Failure_NoBroadcast(t *testing.T) {
	t.Parallel()

	srv := stubServer(t, map[string]string{
		"loginMutation": `{"errors":[{"message":"Auth failed","extensions":{"code":"UNAUTHENTICATED"}}]}`,
	})

	s := NewAuthSubject()
	c, err := New(srv.URL, s)
	require.NoError(t, err)

	var notified bool
	sub := s.Subscribe(func(AuthState) { notified = true })
	defer sub.Unsubscribe()

	_, err = c.Login(context.Background(), "a@b.com", "pw")
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "UNAUTHENTICATED", apiErr.Code)
	assert.Equal(t, "Auth failed", apiErr.Message)

	// A failed login leaves the auth state untouched.
	assert.False(t, notified)
	assert.True(t, s.Value().Resolving)
}

func TestResolve_NoSession_SettlesLoggedOut(t *testing.T) {
	t.Parallel()

	srv := stubServer(t, map[string]string{
		"meQuery": `{"errors":[{"message":"Auth failed","extensions":{"code":"UNAUTHENTICATED"}}]}`,
	})

	s := NewAuthSubject()
	c, err := New(srv.URL, s)
	require.NoError(t, err)

	_, err = c.Resolve(context.Background())
	require.Error(t, err)

	state := s.Value()
	assert.False(t, state.Resolving)
	assert.False(t, state.LoggedIn)
}

func TestResolve_ActiveSession_BroadcastsUser(t *testing.T) {
	t.Parallel()

	srv := stubServer(t, map[string]string{
		"meQuery": `{"data":{"me":{"id":"u1","email":"a@b.com"}}}`,
	})

	s := NewAuthSubject()
	c, err := New(srv.URL, s)
	require.NoError(t, err)

	u, err := c.Resolve(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "a@b.com", u.Email)

	state := s.Value()
	assert.True(t, state.LoggedIn)
	assert.Equal(t, "u1", state.ID)
}

func TestLogout_BroadcastsLoggedOut(t *testing.T) {
	t.Parallel()

	srv := stubServer(t, map[string]string{
		"logoutMutation": `{"data":{"logout":true}}`,
	})

	s := NewAuthSubject()
	c, err := New(srv.URL, s)
	require.NoError(t, err)

	s.Next(AuthState{ID: "u1", Email: "a@b.com", LoggedIn: true})

	require.NoError(t, c.Logout(context.Background()))

	state := s.Value()
	assert.False(t, state.LoggedIn)
	assert.Empty(t, state.Email)
}

func TestAPIError_MissingExtensions(t *testing.T) {
	t.Parallel()

	srv := stubServer(t, map[string]string{
		"usersQuery": `{"errors":[{"message":"boom"}]}`,
	})

	c, err := New(srv.URL, NewAuthSubject())
	require.NoError(t, err)

	_, err = c.Users(context.Background())
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "boom", apiErr.Message)
	assert.Empty(t, apiErr.Code)
}

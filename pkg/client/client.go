// Package client is a Go client for the GraphQL auth API. It keeps the
// session cookie in a jar and broadcasts every identity-bearing response
// into an injected auth-state subject, so any number of views can render
// logged-in/out/loading states without threading the session around.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/cookiejar"

	"github.com/graphauth/graphauth/pkg/subject"
)

// User is the API's user view.
type User struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// APIError is a categorized operation failure surfaced by the server.
type APIError struct {
	Code    string
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

type Client struct {
	endpoint string
	http     *http.Client
	auth     *subject.Subject[AuthState]
}

// New builds a client for the given /graphql endpoint. The auth subject is
// required; callers construct it with NewAuthSubject and share it with
// whatever renders auth state.
func New(endpoint string, auth *subject.Subject[AuthState]) (*Client, error) {
	if auth == nil {
		return nil, fmt.Errorf("nil auth subject")
	}

	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, err
	}

	return &Client{
		endpoint: endpoint,
		http:     &http.Client{Jar: jar},
		auth:     auth,
	}, nil
}

// AuthState returns the injected subject for subscribing.
func (c *Client) AuthState() *subject.Subject[AuthState] {
	return c.auth
}

const (
	meQuery = `query meQuery { me { id email } }`

	usersQuery = `query usersQuery { users { id email } }`

	loginMutation = `mutation loginMutation($loginInput: LoginInput) {
  login(loginInput: $loginInput) { id email }
}`

	registerMutation = `mutation registerMutation($registerInput: RegisterInput) {
  register(registerInput: $registerInput) { id email }
}`

	logoutMutation = `mutation logoutMutation { logout }`

	changePasswordMutation = `mutation changePasswordMutation($changePasswordInput: ChangePasswordInput) {
  changePassword(changePasswordInput: $changePasswordInput)
}`
)

type gqlRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables,omitempty"`
}

type gqlError struct {
	Message    string `json:"message"`
	Extensions struct {
		Code string `json:"code"`
	} `json:"extensions"`
}

type gqlResponse struct {
	Data   json.RawMessage `json:"data"`
	Errors []gqlError      `json:"errors"`
}

func (c *Client) do(ctx context.Context, query string, vars map[string]any, out any) error {
	body, err := json.Marshal(gqlRequest{Query: query, Variables: vars})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	var decoded gqlResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return err
	}

	if len(decoded.Errors) > 0 {
		first := decoded.Errors[0]
		return &APIError{Code: first.Extensions.Code, Message: first.Message}
	}

	if out != nil {
		return json.Unmarshal(decoded.Data, out)
	}
	return nil
}

func (c *Client) broadcastUser(u User) {
	c.auth.Next(AuthState{ID: u.ID, Email: u.Email, LoggedIn: true})
}

func (c *Client) broadcastLoggedOut() {
	c.auth.Next(AuthState{})
}

// Resolve queries the current identity and settles the auth state out of
// "resolving". Call it once on startup; a failure just means logged out.
func (c *Client) Resolve(ctx context.Context) (User, error) {
	u, err := c.Me(ctx)
	if err != nil {
		c.broadcastLoggedOut()
		return User{}, err
	}
	c.broadcastUser(u)
	return u, nil
}

func (c *Client) Register(ctx context.Context, email, password string) (User, error) {
	var data struct {
		Register User `json:"register"`
	}
	err := c.do(ctx, registerMutation, map[string]any{
		"registerInput": map[string]any{"email": email, "password": password},
	}, &data)
	if err != nil {
		return User{}, err
	}

	c.broadcastUser(data.Register)
	return data.Register, nil
}

func (c *Client) Login(ctx context.Context, email, password string) (User, error) {
	var data struct {
		Login User `json:"login"`
	}
	err := c.do(ctx, loginMutation, map[string]any{
		"loginInput": map[string]any{"email": email, "password": password},
	}, &data)
	if err != nil {
		c.broadcastLoggedOut()
		return User{}, err
	}

	c.broadcastUser(data.Login)
	return data.Login, nil
}

func (c *Client) Logout(ctx context.Context) error {
	var data struct {
		Logout bool `json:"logout"`
	}
	if err := c.do(ctx, logoutMutation, nil, &data); err != nil {
		return err
	}

	c.broadcastLoggedOut()
	return nil
}

// ChangePassword replaces the current user's password. The session and its
// broadcast state are unaffected.
func (c *Client) ChangePassword(ctx context.Context, oldPassword, newPassword string) error {
	var data struct {
		ChangePassword bool `json:"changePassword"`
	}
	return c.do(ctx, changePasswordMutation, map[string]any{
		"changePasswordInput": map[string]any{
			"oldPassword": oldPassword,
			"newPassword": newPassword,
		},
	}, &data)
}

func (c *Client) Me(ctx context.Context) (User, error) {
	var data struct {
		Me User `json:"me"`
	}
	if err := c.do(ctx, meQuery, nil, &data); err != nil {
		return User{}, err
	}
	return data.Me, nil
}

func (c *Client) Users(ctx context.Context) ([]User, error) {
	var data struct {
		Users []User `json:"users"`
	}
	if err := c.do(ctx, usersQuery, nil, &data); err != nil {
		return nil, err
	}
	return data.Users, nil
}

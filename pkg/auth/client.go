// Package auth issues login and registration requests to the backend.
package auth

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/samvad-hq/mock-interview-client/pkg/httpclient"
)

const basePath = "/api/auth"

// Client translates auth actions into HTTP requests.
type Client struct {
	http httpclient.Client
}

// NewClient returns an auth client that sends requests through hc.
func NewClient(hc httpclient.Client) *Client {
	return &Client{http: hc}
}

type credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login posts the credentials to the login endpoint and returns the response body unchanged.
func (c *Client) Login(ctx context.Context, email, password string) (json.RawMessage, error) {
	return c.post(ctx, "login", "/login", email, password)
}

// Register posts the credentials to the registration endpoint and returns the response body unchanged.
func (c *Client) Register(ctx context.Context, email, password string) (json.RawMessage, error) {
	return c.post(ctx, "register", "/register", email, password)
}

func (c *Client) post(ctx context.Context, op, path, email, password string) (json.RawMessage, error) {
	resp, err := c.http.Do(ctx, httpclient.Request{
		Op:     op,
		Method: http.MethodPost,
		Path:   basePath + path,
		Body:   credentials{Email: email, Password: password},
	})
	if err != nil {
		return nil, err
	}
	return json.RawMessage(resp.Body()), nil
}

// LoginResponse is the body returned by a successful login.
type LoginResponse struct {
	Message string `json:"message"`
	Token   string `json:"token"`
}

// RegisterResponse is the body returned by a successful registration.
type RegisterResponse struct {
	Message string `json:"message"`
	Email   string `json:"email"`
}

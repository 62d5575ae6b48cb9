package auth

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/samvad-hq/mock-interview-client/pkg/httpclient"
)

// stubHTTP records requests and replays a canned response or error.
type stubHTTP struct {
	requests []httpclient.Request
	body     []byte
	err      error
}

type stubResponse []byte

func (s stubResponse) Body() []byte    { return s }
func (s stubResponse) StatusCode() int { return http.StatusOK }

func (s *stubHTTP) Do(_ context.Context, req httpclient.Request) (httpclient.Response, error) {
	s.requests = append(s.requests, req)
	if s.err != nil {
		return nil, s.err
	}
	return stubResponse(s.body), nil
}

func TestLoginAndRegisterBuildRequests(t *testing.T) {
	cases := []struct {
		name string
		call func(*Client) (json.RawMessage, error)
		op   string
		path string
	}{
		{
			name: "login",
			call: func(c *Client) (json.RawMessage, error) { return c.Login(context.Background(), "a@b.c", "pw") },
			op:   "login",
			path: "/api/auth/login",
		},
		{
			name: "register",
			call: func(c *Client) (json.RawMessage, error) { return c.Register(context.Background(), "a@b.c", "pw") },
			op:   "register",
			path: "/api/auth/register",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			stub := &stubHTTP{body: []byte(`{"message":"ok","token":"t"}`)}
			got, err := tc.call(NewClient(stub))
			require.NoError(t, err)
			assert.Equal(t, `{"message":"ok","token":"t"}`, string(got))

			require.Len(t, stub.requests, 1)
			req := stub.requests[0]
			assert.Equal(t, tc.op, req.Op)
			assert.Equal(t, http.MethodPost, req.Method)
			assert.Equal(t, tc.path, req.Path)
			assert.Equal(t, credentials{Email: "a@b.c", Password: "pw"}, req.Body)
		})
	}
}

func TestLoginPropagatesErrorUnchanged(t *testing.T) {
	want := errors.New("connection refused")
	stub := &stubHTTP{err: want}

	got, err := NewClient(stub).Login(context.Background(), "a@b.c", "pw")
	assert.Nil(t, got)
	assert.Same(t, want, err)
}

func TestRegisterAgainstBackend(t *testing.T) {
	var body map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/auth/register" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		_ = json.NewDecoder(r.Body).Decode(&body)
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"message":"created","email":"a@b.c"}`))
	}))
	defer srv.Close()

	c := NewClient(httpclient.NewRestyClient(httpclient.Options{BaseURL: srv.URL}))
	raw, err := c.Register(context.Background(), "a@b.c", "secret")
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"email": "a@b.c", "password": "secret"}, body)

	var out RegisterResponse
	require.NoError(t, json.Unmarshal(raw, &out))
	assert.Equal(t, "a@b.c", out.Email)
}

func TestLoginFailureIsLoggedAndReturned(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	var loggedOp string
	var loggedErr error
	c := NewClient(httpclient.NewRestyClient(httpclient.Options{
		BaseURL: srv.URL,
		ErrorHooks: []httpclient.ErrorHook{func(op string, err error) {
			loggedOp, loggedErr = op, err
		}},
	}))

	_, err := c.Login(context.Background(), "a@b.c", "pw")
	require.Error(t, err)
	assert.Equal(t, http.StatusInternalServerError, httpclient.StatusCode(err))
	assert.Equal(t, "login", loggedOp)
	assert.Equal(t, err, loggedErr)
}

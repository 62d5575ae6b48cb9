package main

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/samvad-hq/mock-interview-client/pkg/interview"
)

func newBackend(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/auth/login", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"message":"ok","token":"fake-jwt-token"}`))
	})
	mux.HandleFunc("POST /api/interview/question", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"question":"What is a goroutine?"}`))
	})
	mux.HandleFunc("POST /api/interview/feedback", func(w http.ResponseWriter, r *http.Request) {
		raw, _ := io.ReadAll(r.Body)
		if !bytes.Contains(raw, []byte("chatHistory")) {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		_, _ = w.Write([]byte(`{"feedback":"solid","score":80,"status":"pass"}`))
	})
	mux.HandleFunc("GET /api/interviews", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"interviews":[],"total_count":0,"query":"` + r.URL.RawQuery + `"}`))
	})
	mux.HandleFunc("DELETE /api/interviews/delete/{id}", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"message":"not found"}`))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	err := execute(context.Background(), args, &stdout, &stderr)
	return stdout.String(), err
}

func setupEnv(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("LOG_LEVEL", "error")
	t.Setenv("SESSION_DB_PATH", filepath.Join(dir, "sessions.db"))
	return dir
}

func TestLoginPrintsBodyVerbatim(t *testing.T) {
	setupEnv(t)
	srv := newBackend(t)

	out, err := runCLI(t, "--base-url", srv.URL, "login", "--email", "a@b.c", "--password", "pw")
	require.NoError(t, err)
	assert.Equal(t, `{"message":"ok","token":"fake-jwt-token"}`+"\n", out)
}

func TestBackendCommandsSkipSessionStore(t *testing.T) {
	dir := setupEnv(t)
	srv := newBackend(t)

	blocker := filepath.Join(dir, "not-a-dir")
	require.NoError(t, os.WriteFile(blocker, nil, 0o644))
	t.Setenv("SESSION_DB_PATH", filepath.Join(blocker, "sessions.db"))

	out, err := runCLI(t, "--base-url", srv.URL, "login", "--email", "a@b.c", "--password", "pw")
	require.NoError(t, err)
	assert.Contains(t, out, "fake-jwt-token")

	_, err = runCLI(t, "--base-url", srv.URL, "interviews", "list")
	require.NoError(t, err)

	_, err = runCLI(t, "--base-url", srv.URL, "session", "list")
	require.Error(t, err)
}

func TestFeedbackRejectsTranscriptWithUnknownKeys(t *testing.T) {
	dir := setupEnv(t)
	srv := newBackend(t)

	path := filepath.Join(dir, "t.yaml")
	require.NoError(t, os.WriteFile(path, []byte("chat_history:\n  - role: user\n    content: hi\n"), 0o644))

	_, err := runCLI(t, "--base-url", srv.URL, "feedback", "--history", path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "chat_history")
}

func TestFeedbackReadsTranscript(t *testing.T) {
	dir := setupEnv(t)
	srv := newBackend(t)

	path := filepath.Join(dir, "t.yaml")
	require.NoError(t, os.WriteFile(path, []byte("chatHistory:\n  - role: user\n    content: hi\n"), 0o644))

	out, err := runCLI(t, "--base-url", srv.URL, "feedback", "--history", path)
	require.NoError(t, err)
	assert.JSONEq(t, `{"feedback":"solid","score":80,"status":"pass"}`, out)
}

func TestInterviewsListPassesPaging(t *testing.T) {
	setupEnv(t)
	srv := newBackend(t)

	out, err := runCLI(t, "--base-url", srv.URL, "interviews", "list", "--page", "3", "--size", "7")
	require.NoError(t, err)
	assert.Contains(t, out, `"query":"page=3&size=7"`)
}

func TestInterviewsDeleteSurfacesBackendError(t *testing.T) {
	setupEnv(t)
	srv := newBackend(t)

	_, err := runCLI(t, "--base-url", srv.URL, "interviews", "delete", "nope")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "404")
}

func TestSessionPersistsAcrossInvocations(t *testing.T) {
	dir := setupEnv(t)
	srv := newBackend(t)

	out, err := runCLI(t, "--base-url", srv.URL, "session", "start", "--job-title", "Go Developer")
	require.NoError(t, err)
	var started map[string]string
	require.NoError(t, json.Unmarshal([]byte(out), &started))
	assert.Equal(t, "What is a goroutine?", started["question"])
	id := started["id"]
	require.NotEmpty(t, id)

	out, err = runCLI(t, "--base-url", srv.URL, "session", "answer", id, "A", "lightweight", "thread.")
	require.NoError(t, err)
	assert.Contains(t, out, `"question": "What is a goroutine?"`)

	exportPath := filepath.Join(dir, "export", "session.json")
	_, err = runCLI(t, "--base-url", srv.URL, "session", "export", id, exportPath)
	require.NoError(t, err)

	tr, err := interview.LoadTranscript(exportPath)
	require.NoError(t, err)
	assert.Equal(t, "Go Developer", tr.JobTitle)
	require.Len(t, tr.ChatHistory, 3)
	assert.Equal(t, "A lightweight thread.", tr.ChatHistory[1].Content)

	out, err = runCLI(t, "--base-url", srv.URL, "session", "list")
	require.NoError(t, err)
	assert.True(t, strings.Contains(out, id))

	_, err = runCLI(t, "--base-url", srv.URL, "session", "discard", id)
	require.NoError(t, err)
	_, err = runCLI(t, "--base-url", srv.URL, "session", "show", id)
	require.Error(t, err)
}

func TestChatRequiresInput(t *testing.T) {
	setupEnv(t)
	srv := newBackend(t)

	_, err := runCLI(t, "--base-url", srv.URL, "chat")
	require.Error(t, err)
}

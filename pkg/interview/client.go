// Package interview wraps the backend's interview question, feedback, chat and
// record endpoints. Response bodies are returned exactly as received; the
// typed responses in this package are decode targets for callers that want them.
package interview

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/samvad-hq/mock-interview-client/pkg/httpclient"
)

const basePath = "/api"

// Client translates interview actions into HTTP requests.
type Client struct {
	http httpclient.Client
}

// NewClient returns an interview client that sends requests through hc.
func NewClient(hc httpclient.Client) *Client {
	return &Client{http: hc}
}

type questionRequest struct {
	ChatHistory ChatHistory `json:"chatHistory"`
	JobTitle    *string     `json:"jobTitle"`
}

type historyRequest struct {
	ChatHistory ChatHistory `json:"chatHistory"`
}

// GetInterviewQuestion asks for the next question. An empty jobTitle is sent as null.
func (c *Client) GetInterviewQuestion(ctx context.Context, history ChatHistory, jobTitle string) (json.RawMessage, error) {
	body := questionRequest{ChatHistory: history}
	if jobTitle != "" {
		body.JobTitle = &jobTitle
	}
	return c.do(ctx, "get interview question", http.MethodPost, "/interview/question", nil, body)
}

// GetFeedback asks for feedback on the last answer in history.
func (c *Client) GetFeedback(ctx context.Context, history ChatHistory) (json.RawMessage, error) {
	return c.do(ctx, "get feedback", http.MethodPost, "/interview/feedback", nil, historyRequest{ChatHistory: history})
}

// Chat sends history to the general assistant endpoint.
func (c *Client) Chat(ctx context.Context, history ChatHistory) (json.RawMessage, error) {
	return c.do(ctx, "chat", http.MethodPost, "/interview/chat", nil, historyRequest{ChatHistory: history})
}

func (c *Client) do(ctx context.Context, op, method, path string, query map[string]string, body any) (json.RawMessage, error) {
	resp, err := c.http.Do(ctx, httpclient.Request{
		Op:     op,
		Method: method,
		Path:   basePath + path,
		Query:  query,
		Body:   body,
	})
	if err != nil {
		return nil, err
	}
	return json.RawMessage(resp.Body()), nil
}

package interview

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

// ErrEmptyID is returned for record lookups without an id. The request is not sent.
var ErrEmptyID = errors.New("interview id is empty")

type saveRequest struct {
	JobTitle    string      `json:"jobTitle"`
	ChatHistory ChatHistory `json:"chatHistory"`
}

// SaveInterview stores a finished interview on the backend.
func (c *Client) SaveInterview(ctx context.Context, jobTitle string, history ChatHistory) (json.RawMessage, error) {
	return c.do(ctx, "save interview", http.MethodPost, "/interviews/save", nil, saveRequest{
		JobTitle:    jobTitle,
		ChatHistory: history,
	})
}

// ListInterviews fetches one page of stored interviews. A non-positive page or
// size is left out so the backend default applies.
func (c *Client) ListInterviews(ctx context.Context, page, size int) (json.RawMessage, error) {
	query := map[string]string{}
	if page > 0 {
		query["page"] = strconv.Itoa(page)
	}
	if size > 0 {
		query["size"] = strconv.Itoa(size)
	}
	return c.do(ctx, "list interviews", http.MethodGet, "/interviews", query, nil)
}

// GetInterview fetches a stored interview by id.
func (c *Client) GetInterview(ctx context.Context, id string) (json.RawMessage, error) {
	if strings.TrimSpace(id) == "" {
		return nil, ErrEmptyID
	}
	return c.do(ctx, "get interview", http.MethodGet, "/interviews/"+url.PathEscape(id), nil, nil)
}

// DeleteInterview removes a stored interview by id.
func (c *Client) DeleteInterview(ctx context.Context, id string) (json.RawMessage, error) {
	if strings.TrimSpace(id) == "" {
		return nil, ErrEmptyID
	}
	return c.do(ctx, "delete interview", http.MethodDelete, "/interviews/delete/"+url.PathEscape(id), nil, nil)
}

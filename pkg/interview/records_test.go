package interview

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveInterviewPostsJobTitleAndHistory(t *testing.T) {
	backend := &fakeBackend{reply: `{"message":"saved"}`}
	c := newTestClient(t, backend)

	raw, err := c.SaveInterview(context.Background(), "Data Engineer", sampleHistory)
	require.NoError(t, err)

	var msg MessageResponse
	require.NoError(t, json.Unmarshal(raw, &msg))
	assert.Equal(t, "saved", msg.Message)

	require.Len(t, backend.requests, 1)
	req := backend.requests[0]
	assert.Equal(t, http.MethodPost, req.Method)
	assert.Equal(t, "/api/interviews/save", req.Path)

	var body saveRequest
	require.NoError(t, json.Unmarshal([]byte(req.Body), &body))
	assert.Equal(t, "Data Engineer", body.JobTitle)
	assert.Equal(t, sampleHistory, body.ChatHistory)
}

func TestListInterviewsQuery(t *testing.T) {
	cases := []struct {
		name       string
		page, size int
		wantQuery  string
	}{
		{name: "both", page: 2, size: 5, wantQuery: "page=2&size=5"},
		{name: "defaults", page: 0, size: 0, wantQuery: ""},
		{name: "size only", page: -1, size: 20, wantQuery: "size=20"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			backend := &fakeBackend{reply: `{"interviews":[],"total_count":0}`}
			c := newTestClient(t, backend)

			raw, err := c.ListInterviews(context.Background(), tc.page, tc.size)
			require.NoError(t, err)
			assert.Equal(t, backend.reply, string(raw))

			require.Len(t, backend.requests, 1)
			req := backend.requests[0]
			assert.Equal(t, http.MethodGet, req.Method)
			assert.Equal(t, "/api/interviews", req.Path)
			assert.Equal(t, tc.wantQuery, req.Query)
			assert.Empty(t, req.Body)
		})
	}
}

func TestGetInterviewDecodesRecord(t *testing.T) {
	backend := &fakeBackend{reply: `{"interview":{"id":"abc","jobTitle":"PM","chatHistory":[{"role":"user","content":"hi"}]}}`}
	c := newTestClient(t, backend)

	raw, err := c.GetInterview(context.Background(), "abc")
	require.NoError(t, err)
	assert.Equal(t, "/api/interviews/abc", backend.requests[0].Path)

	var detail RecordDetail
	require.NoError(t, json.Unmarshal(raw, &detail))
	assert.Equal(t, "PM", detail.Interview.JobTitle)
	assert.Len(t, detail.Interview.ChatHistory, 1)
}

func TestDeleteInterviewEscapesID(t *testing.T) {
	backend := &fakeBackend{reply: `{"message":"deleted"}`}
	c := newTestClient(t, backend)

	_, err := c.DeleteInterview(context.Background(), "a/b c")
	require.NoError(t, err)

	require.Len(t, backend.requests, 1)
	assert.Equal(t, http.MethodDelete, backend.requests[0].Method)
	assert.Equal(t, "/api/interviews/delete/a%2Fb%20c", backend.requests[0].Path)
}

func TestGetInterviewNotFound(t *testing.T) {
	backend := &fakeBackend{status: http.StatusNotFound, reply: `{"message":"not found"}`}
	var ops []string
	c := newTestClient(t, backend, func(op string, _ error) { ops = append(ops, op) })

	raw, err := c.GetInterview(context.Background(), "missing")
	require.Error(t, err)
	assert.Nil(t, raw)
	assert.Equal(t, []string{"get interview"}, ops)
}

func TestRecordLookupsRejectEmptyID(t *testing.T) {
	backend := &fakeBackend{reply: `{"interviews":[],"total_count":0}`}
	var ops []string
	c := newTestClient(t, backend, func(op string, _ error) { ops = append(ops, op) })

	for _, id := range []string{"", "  "} {
		raw, err := c.GetInterview(context.Background(), id)
		require.ErrorIs(t, err, ErrEmptyID)
		assert.Nil(t, raw)

		raw, err = c.DeleteInterview(context.Background(), id)
		require.ErrorIs(t, err, ErrEmptyID)
		assert.Nil(t, raw)
	}
	assert.Empty(t, backend.requests)
	assert.Empty(t, ops)
}

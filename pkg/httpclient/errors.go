package httpclient

import (
	"errors"
	"fmt"
	"strings"
)

// StatusError reports a response outside the 2xx range.
type StatusError struct {
	Method     string
	URL        string
	StatusCode int
	Body       []byte
}

func (e *StatusError) Error() string {
	snippet := readBodySnippet(e.Body)
	if snippet == "" {
		return fmt.Sprintf("%s %s: http response status %d", e.Method, e.URL, e.StatusCode)
	}
	return fmt.Sprintf("%s %s: http response status %d: %s", e.Method, e.URL, e.StatusCode, snippet)
}

// StatusCode returns the HTTP status carried by err, or 0 when err is not a *StatusError.
func StatusCode(err error) int {
	var se *StatusError
	if errors.As(err, &se) {
		return se.StatusCode
	}
	return 0
}

// LogErrors returns a hook that writes one diagnostic entry per failed request.
func LogErrors(log Logger) ErrorHook {
	log = ensureLogger(log)
	return func(op string, err error) {
		fields := map[string]any{
			"op":    op,
			"error": err.Error(),
		}
		if code := StatusCode(err); code != 0 {
			fields["status"] = code
		}
		log.ErrorObj("request failed", "http_error", fields)
	}
}

func readBodySnippet(body []byte) string {
	if len(body) == 0 {
		return ""
	}
	if len(body) > 512 {
		body = body[:512]
	}
	return strings.TrimSpace(string(body))
}

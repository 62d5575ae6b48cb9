package httpclient

import "context"

// Response is a minimal HTTP response contract.
type Response interface {
	Body() []byte
	StatusCode() int
}

// Request describes one call relative to the client's base URL.
type Request struct {
	// Op names the calling operation in diagnostics, e.g. "login".
	Op     string
	Method string
	Path   string
	Query  map[string]string
	Body   any
}

// Client abstracts HTTP calls so callers can inject mocks or different transports.
type Client interface {
	Do(ctx context.Context, req Request) (Response, error)
}

// ErrorHook observes a failed request. The error it receives is the one
// returned to the caller, so hooks must treat it as read-only.
type ErrorHook func(op string, err error)

// Logger defines the logging surface the client relies on.
type Logger interface {
	DebugObj(msg, key string, obj interface{})
	ErrorObj(msg, key string, obj interface{})
}

type noopLogger struct{}

func (noopLogger) DebugObj(string, string, interface{}) {}
func (noopLogger) ErrorObj(string, string, interface{}) {}

func ensureLogger(log Logger) Logger {
	if log == nil {
		return noopLogger{}
	}
	return log
}

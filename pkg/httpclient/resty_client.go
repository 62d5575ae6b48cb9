package httpclient

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

const defaultTimeout = 30 * time.Second

// Options configures a RestyClient.
type Options struct {
	// BaseURL prefixes every request path, e.g. "http://localhost:8000".
	BaseURL string
	Timeout time.Duration
	Headers map[string]string
	// Transport replaces the underlying round tripper; tests use it to fake the network.
	Transport http.RoundTripper
	Debug     bool
	// Logger receives debug exchanges when Debug is set. When non-nil, every
	// failed request is also logged through LogErrors ahead of ErrorHooks.
	Logger     Logger
	ErrorHooks []ErrorHook
}

// RestyClient adapts resty.Client to the httpclient.Client interface.
type RestyClient struct {
	client *resty.Client
	hooks  []ErrorHook
}

// NewRestyClient creates a RestyClient bound to opts.BaseURL.
func NewRestyClient(opts Options) *RestyClient {
	hooks := make([]ErrorHook, 0, len(opts.ErrorHooks)+1)
	if opts.Logger != nil {
		hooks = append(hooks, LogErrors(opts.Logger))
	}
	for _, h := range opts.ErrorHooks {
		if h != nil {
			hooks = append(hooks, h)
		}
	}
	return &RestyClient{
		client: newRestyBaseClient(opts),
		hooks:  hooks,
	}
}

// newRestyBaseClient creates a new resty.Client from the given options.
func newRestyBaseClient(opts Options) *resty.Client {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	c := resty.New()
	c.SetTimeout(timeout)
	c.SetBaseURL(strings.TrimSpace(opts.BaseURL))
	if len(opts.Headers) > 0 {
		c.SetHeaders(opts.Headers)
	}
	if opts.Transport != nil {
		c.SetTransport(opts.Transport)
	}
	if opts.Debug {
		log := ensureLogger(opts.Logger)
		c.OnAfterResponse(func(_ *resty.Client, resp *resty.Response) error {
			log.DebugObj("http response", "http_exchange", map[string]any{
				"method":     resp.Request.Method,
				"url":        resp.Request.URL,
				"status":     resp.StatusCode(),
				"elapsed_ms": resp.Time().Milliseconds(),
			})
			return nil
		})
	}
	return c
}

// Do performs a single request. Non-2xx responses are reported as *StatusError.
// Any failure is handed to the error hooks and then returned as is.
func (r *RestyClient) Do(ctx context.Context, in Request) (Response, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	req := r.client.R().SetContext(ctx)
	if in.Body != nil {
		req.SetHeader("Content-Type", "application/json").SetBody(in.Body)
	}
	if len(in.Query) > 0 {
		req.SetQueryParams(in.Query)
	}

	method := in.Method
	if method == "" {
		method = http.MethodGet
	}

	resp, err := req.Execute(method, in.Path)
	if err == nil && !resp.IsSuccess() {
		err = &StatusError{
			Method:     method,
			URL:        resp.Request.URL,
			StatusCode: resp.StatusCode(),
			Body:       resp.Body(),
		}
	}
	if err != nil {
		r.fail(in.Op, err)
		return nil, err
	}
	return &restyResponseAdapter{resp: resp}, nil
}

func (r *RestyClient) fail(op string, err error) {
	for _, h := range r.hooks {
		h(op, err)
	}
}

// restyResponseAdapter adapts resty.Response to the httpclient.Response interface.
type restyResponseAdapter struct {
	resp *resty.Response
}

func (r *restyResponseAdapter) Body() []byte    { return r.resp.Body() }
func (r *restyResponseAdapter) StatusCode() int { return r.resp.StatusCode() }

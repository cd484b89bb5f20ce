package httpclient

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/mingpan/mingpan/internal/domain"
)

// maxBody caps how much of a response is read.
const maxBody = 4 << 20

// ResponseData captures the response details and duration.
type ResponseData struct {
	Status    int
	Headers   http.Header
	BodyBytes []byte
	Duration  time.Duration
}

// Executor executes HTTP requests with timing.
type Executor struct {
	client  *http.Client
	timeout time.Duration
}

type ExecutorOption func(*Executor)

// WithTimeout sets the default timeout applied to requests.
func WithTimeout(timeout time.Duration) ExecutorOption {
	return func(e *Executor) { e.timeout = timeout }
}

// WithClient sets a custom HTTP client.
func WithClient(client *http.Client) ExecutorOption {
	return func(e *Executor) { e.client = client }
}

func NewExecutor(opts ...ExecutorOption) *Executor {
	cfg := DefaultConfig()
	e := &Executor{
		client:  New(cfg),
		timeout: cfg.Timeout,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Do executes the request and returns response data plus duration.
func (e *Executor) Do(ctx context.Context, req *http.Request) (ResponseData, error) {
	start := time.Now()
	if e.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.timeout)
		defer cancel()
	}

	resp, err := e.client.Do(req.WithContext(ctx))
	duration := time.Since(start)
	if err != nil {
		return ResponseData{Duration: duration}, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	if err != nil {
		return ResponseData{Duration: duration}, err
	}

	return ResponseData{
		Status:    resp.StatusCode,
		Headers:   resp.Header.Clone(),
		BodyBytes: body,
		Duration:  duration,
	}, nil
}

// FetchJSON runs req and returns the body of a 2xx response. Transport failures and
// other statuses are resource_unavailable.
func (e *Executor) FetchJSON(ctx context.Context, req *http.Request) ([]byte, error) {
	const op = "httpclient.fetch"
	resp, err := e.Do(ctx, req)
	if err != nil {
		return nil, &domain.OpError{Op: op, Kind: domain.KindResourceUnavailable, Path: req.URL.Path, Err: err}
	}
	if resp.Status < 200 || resp.Status > 299 {
		return nil, &domain.OpError{
			Op:   op,
			Kind: domain.KindResourceUnavailable,
			Path: req.URL.Path,
			Err:  fmt.Errorf("status %d: %w", resp.Status, domain.ErrResourceUnavailable),
		}
	}
	return resp.BodyBytes, nil
}

package request

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/sony/gobreaker/v2"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

const (
	fallbackServerMessage    = "Request failed!"
	fallbackTransportMessage = "Something went wrong!"
)

// Message is the minimal payload of message-only endpoints.
type Message struct {
	Message string `json:"message"`
}

// Config describes the fixed endpoint configuration of a Resource. An empty
// or GET method makes the resource fetch itself once at construction time.
type Config struct {
	Method string
	Header http.Header
}

// StatusError is a non-2xx response. Message is the server's reported
// message when one was decodable, the fallback otherwise.
type StatusError struct {
	Code    int
	Message string
}

func (e *StatusError) Error() string {
	return e.Message
}

// Resource tracks a single outstanding request against one endpoint:
// the last successful payload (or the initial default), the last failure
// message and a loading flag. Overlapping Sends are not coordinated; the
// last response to resolve wins.
type Resource[T any] struct {
	url     string
	cfg     Config
	client  *http.Client
	breaker *gobreaker.CircuitBreaker[T]

	// lifetime context; Close cancels any in-flight auto-fetch
	ctx    context.Context
	cancel context.CancelFunc
	ready  chan struct{}

	mu      sync.Mutex
	initial T
	data    T
	errMsg  string
	loading bool
}

// New builds a resource for one endpoint+configuration pair. When the
// configured method is GET or empty, a fetch is issued automatically once,
// tied to the resource's lifetime context.
func New[T any](url string, cfg Config, initial T) *Resource[T] {
	ctx, cancel := context.WithCancel(context.Background())

	r := &Resource[T]{
		url:     url,
		cfg:     cfg,
		initial: initial,
		data:    initial,
		ctx:     ctx,
		cancel:  cancel,
		ready:   make(chan struct{}),
		client: &http.Client{
			Transport: otelhttp.NewTransport(http.DefaultTransport),
			Timeout:   30 * time.Second,
		},
		breaker: gobreaker.NewCircuitBreaker[T](gobreaker.Settings{
			Name: url,
			// 4xx rejections are the server answering, not the endpoint
			// failing; only 5xx and transport errors may trip the breaker.
			IsSuccessful: func(err error) bool {
				if err == nil {
					return true
				}
				var statusErr *StatusError
				return errors.As(err, &statusErr) && statusErr.Code < 500
			},
		}),
	}

	if cfg.Method == "" || cfg.Method == http.MethodGet {
		go func() {
			defer close(r.ready)
			_ = r.Send(r.ctx, nil)
		}()
	} else {
		close(r.ready)
	}

	return r
}

// Ready is closed once the construction-time fetch (if any) has resolved.
func (r *Resource[T]) Ready() <-chan struct{} {
	return r.ready
}

// Send performs the request: sets loading, issues the call, stores either
// the decoded payload or a human-readable failure message, and always clears
// loading at the end.
func (r *Resource[T]) Send(ctx context.Context, body []byte) error {
	r.mu.Lock()
	r.loading = true
	r.mu.Unlock()

	data, err := r.breaker.Execute(func() (T, error) {
		return r.do(ctx, body)
	})

	r.mu.Lock()
	defer r.mu.Unlock()
	r.loading = false

	if err != nil {
		r.errMsg = messageFrom(err)
		return err
	}

	r.data = data
	r.errMsg = ""
	return nil
}

func (r *Resource[T]) do(ctx context.Context, body []byte) (T, error) {
	var zero T

	method := r.cfg.Method
	if method == "" {
		method = http.MethodGet
	}

	req, err := http.NewRequestWithContext(ctx, method, r.url, bytes.NewReader(body))
	if err != nil {
		return zero, fmt.Errorf("build request: %w", err)
	}
	for key, values := range r.cfg.Header {
		for _, v := range values {
			req.Header.Add(key, v)
		}
	}

	resp, err := r.client.Do(req)
	if err != nil {
		return zero, fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var serverMsg struct {
			Message string `json:"message"`
		}
		msg := fallbackServerMessage
		if decodeErr := json.NewDecoder(resp.Body).Decode(&serverMsg); decodeErr == nil && serverMsg.Message != "" {
			msg = serverMsg.Message
		}
		return zero, &StatusError{Code: resp.StatusCode, Message: msg}
	}

	var decoded T
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return zero, fmt.Errorf("decode response: %w", err)
	}
	return decoded, nil
}

// Data returns the last successful payload, or the initial default.
func (r *Resource[T]) Data() T {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.data
}

// Err returns the last failure message, empty when the last call succeeded.
func (r *Resource[T]) Err() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.errMsg
}

func (r *Resource[T]) IsLoading() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.loading
}

// ClearData resets data to the initial value and clears the error.
func (r *Resource[T]) ClearData() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.data = r.initial
	r.errMsg = ""
}

// Close cancels the lifetime context, aborting any in-flight auto-fetch.
func (r *Resource[T]) Close() {
	r.cancel()
}

func messageFrom(err error) string {
	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		return statusErr.Message
	}
	return fallbackTransportMessage
}

// Package client connects a controller to a server: HTTP requests for local
// actions, a websocket subscription for everybody's broadcasts.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"carcassonne/internal/errors"
	"carcassonne/internal/shared"
)

type RequesterConfig struct {
	ServerURL   string
	Room        string
	RetryDelay  time.Duration
	MaxAttempts int
	HTTPClient  *http.Client
}

func (c *RequesterConfig) Validate() error {
	if c == nil {
		return errors.InvalidArgument("config is required")
	}
	if c.Room == "" {
		return errors.InvalidArgument("room is required")
	}
	if _, err := url.ParseRequestURI(c.ServerURL); err != nil {
		return errors.InvalidArgumentf("server url %q: %v", c.ServerURL, err)
	}
	if c.MaxAttempts < 1 {
		return errors.InvalidArgumentf("max attempts %d must be positive", c.MaxAttempts)
	}
	return nil
}

// Requester sends requests over the request/response channel. Transient
// failures are retried with a fixed delay.
type Requester struct {
	base        string
	room        string
	retryDelay  time.Duration
	maxAttempts int
	http        *http.Client

	mu         sync.RWMutex
	subscriber string
}

func NewRequester(cfg *RequesterConfig) (*Requester, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid requester config")
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	return &Requester{
		base:        strings.TrimRight(cfg.ServerURL, "/"),
		room:        cfg.Room,
		retryDelay:  cfg.RetryDelay,
		maxAttempts: cfg.MaxAttempts,
		http:        httpClient,
	}, nil
}

// SetSubscriberID names the subscription requests are sent on behalf of.
func (r *Requester) SetSubscriberID(id string) {
	r.mu.Lock()
	r.subscriber = id
	r.mu.Unlock()
}

// Connect opens the request channel and returns the server's answer.
func (r *Requester) Connect(ctx context.Context) (shared.Response, error) {
	return r.Post(ctx, "connections", shared.NewConnection{Role: shared.RoleRequest})
}

// Post sends body to the room endpoint named by path.
func (r *Requester) Post(ctx context.Context, path string, body any) (shared.Response, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return shared.Response{}, errors.Wrap(err, "failed to encode request")
	}
	endpoint := fmt.Sprintf("%s/api/rooms/%s/%s", r.base, url.PathEscape(r.room), path)

	var lastErr error
	for attempt := 1; attempt <= r.maxAttempts; attempt++ {
		resp, err := r.do(ctx, endpoint, payload)
		if err == nil {
			return resp, nil
		}
		lastErr = err
		if !retryable(err) || attempt == r.maxAttempts {
			break
		}
		slog.Warn("Request failed, retrying",
			"endpoint", endpoint,
			"attempt", attempt,
			"error", err)
		select {
		case <-ctx.Done():
			return shared.Response{}, errors.WrapWithCode(ctx.Err(), errors.CodeCanceled, "request canceled")
		case <-time.After(r.retryDelay):
		}
	}
	return shared.Response{}, lastErr
}

func (r *Requester) do(ctx context.Context, endpoint string, payload []byte) (shared.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return shared.Response{}, errors.Wrap(err, "failed to build request")
	}
	req.Header.Set("Content-Type", "application/json")
	r.mu.RLock()
	if r.subscriber != "" {
		req.Header.Set(shared.HeaderSubscriberID, r.subscriber)
	}
	r.mu.RUnlock()

	res, err := r.http.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return shared.Response{}, errors.WrapWithCode(err, errors.CodeCanceled, "request canceled")
		}
		return shared.Response{}, errors.WrapWithCode(err, errors.CodeUnavailable, "server unreachable")
	}
	defer res.Body.Close()

	var resp shared.Response
	if err := json.NewDecoder(res.Body).Decode(&resp); err != nil {
		return shared.Response{}, errors.WrapWithCode(err, codeFromStatus(res.StatusCode), "undecodable response")
	}
	if res.StatusCode != http.StatusOK || resp.Code != shared.CodeOK {
		return resp, errors.New(codeFromStatus(res.StatusCode), resp.Message)
	}
	return resp, nil
}

func retryable(err error) bool {
	switch errors.GetCode(err) {
	case errors.CodeUnavailable, errors.CodeResourceExhausted:
		return true
	}
	return false
}

func codeFromStatus(status int) errors.Code {
	switch status {
	case http.StatusOK:
		return errors.CodeInternal
	case http.StatusBadRequest:
		return errors.CodeInvalidArgument
	case http.StatusNotFound:
		return errors.CodeNotFound
	case http.StatusRequestTimeout:
		return errors.CodeCanceled
	case http.StatusConflict:
		return errors.CodeAborted
	case http.StatusPreconditionFailed:
		return errors.CodeFailedPrecondition
	case http.StatusTooManyRequests:
		return errors.CodeResourceExhausted
	case http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
		return errors.CodeUnavailable
	}
	return errors.CodeInternal
}

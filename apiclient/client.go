// File: apiclient/client.go
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"cashplayzz-web/logger"
)

// Observer receives one callback per backend call. route is the path
// template, never the concrete path, so labels stay bounded.
type Observer interface {
	ObserveUpstream(route string, status int, elapsed time.Duration)
}

// Client is a typed client for the CashPlayzz backend. It is safe for
// concurrent use.
type Client struct {
	baseURL  string
	http     *http.Client
	observer Observer
}

// Option customises a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithObserver attaches a call observer.
func WithObserver(o Observer) Option {
	return func(c *Client) { c.observer = o }
}

// New creates a client for baseURL.
func New(baseURL string, timeout time.Duration, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type requestIDKey struct{}

// WithRequestID tags ctx so outgoing calls carry the inbound request id.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

// call describes one backend request.
type call struct {
	method  string
	route   string // path template for metrics
	path    string // concrete path
	query   url.Values
	token   string
	body    interface{}
	headers map[string]string
}

// reply is a received response with its body fully read.
type reply struct {
	status  int
	body    []byte
	cookies []*http.Cookie
}

// errorBody covers the failure shapes the backend uses.
type errorBody struct {
	Success *bool  `json:"success"`
	Message string `json:"message"`
	Error   string `json:"error"`
}

func (e errorBody) text() string {
	if e.Message != "" {
		return e.Message
	}
	return e.Error
}

// send performs the call. Non-2xx replies become *ServerError; transport
// failures become *NetworkError. A cancelled ctx is returned as is so
// callers can tell a dropped request from a failed one.
func (c *Client) send(ctx context.Context, cl call) (*reply, error) {
	u := c.baseURL + cl.path
	if len(cl.query) > 0 {
		u += "?" + cl.query.Encode()
	}

	var body io.Reader
	if cl.body != nil {
		buf, err := json.Marshal(cl.body)
		if err != nil {
			return nil, fmt.Errorf("encode %s body: %w", cl.route, err)
		}
		body = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, cl.method, u, body)
	if err != nil {
		return nil, fmt.Errorf("build %s request: %w", cl.route, err)
	}
	req.Header.Set("Accept", "application/json")
	if cl.body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if cl.token != "" {
		req.Header.Set("Authorization", "Bearer "+cl.token)
	}
	if id, ok := ctx.Value(requestIDKey{}).(string); ok && id != "" {
		req.Header.Set("X-Request-ID", id)
	}
	for k, v := range cl.headers {
		req.Header.Set(k, v)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.observe(cl.route, 0, start)
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		logger.Warn.Printf("apiclient: %s %s failed: %v", cl.method, cl.route, err)
		return nil, &NetworkError{Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	c.observe(cl.route, resp.StatusCode, start)
	if err != nil {
		return nil, &NetworkError{Err: err}
	}

	if resp.StatusCode >= http.StatusBadRequest {
		var eb errorBody
		_ = json.Unmarshal(raw, &eb)
		logger.Debug.Printf("apiclient: %s %s -> %d %s", cl.method, cl.route, resp.StatusCode, eb.text())
		return nil, &ServerError{Status: resp.StatusCode, Message: eb.text()}
	}

	return &reply{status: resp.StatusCode, body: raw, cookies: resp.Cookies()}, nil
}

// do sends the call and decodes the reply into out, if given.
func (c *Client) do(ctx context.Context, cl call, out interface{}) error {
	rep, err := c.send(ctx, cl)
	if err != nil {
		return err
	}
	if out == nil || len(bytes.TrimSpace(rep.body)) == 0 {
		return nil
	}
	if err := json.Unmarshal(rep.body, out); err != nil {
		return fmt.Errorf("decode %s reply: %w", cl.route, err)
	}
	return nil
}

// envelope is the {success, message} wrapper the admin API uses.
type envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// ok converts a false success flag into a *ServerError.
func (e envelope) ok(status int) error {
	if e.Success {
		return nil
	}
	msg := e.Message
	if msg == "" {
		msg = "request was not successful"
	}
	return &ServerError{Status: status, Message: msg}
}

// doEnvelope decodes a reply that must carry success:true. out must embed
// envelope via the enveloped interface.
func (c *Client) doEnvelope(ctx context.Context, cl call, out enveloped) error {
	rep, err := c.send(ctx, cl)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(rep.body, out); err != nil {
		return fmt.Errorf("decode %s reply: %w", cl.route, err)
	}
	return out.env().ok(rep.status)
}

type enveloped interface {
	env() envelope
}

func (e envelope) env() envelope { return e }

func (c *Client) observe(route string, status int, start time.Time) {
	if c.observer != nil {
		c.observer.ObserveUpstream(route, status, time.Since(start))
	}
}

// IsCancelled reports whether err only reflects a cancelled or expired
// context, in which case the result must be discarded, not shown.
func IsCancelled(err error) bool {
	var ne *NetworkError
	if errors.As(err, &ne) {
		return false
	}
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}

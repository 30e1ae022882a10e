// Package client talks to a relay server over HTTP. It implements
// dispatch.Relay, so callers can swap it for the in-process hub.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/hashicorp/go-cleanhttp"

	"github.com/DoyleJ11/battle-relay/internal/dispatch"
	"github.com/DoyleJ11/battle-relay/pkg/protocol"
)

var ErrUnavailable = errors.New("relay unavailable")

var _ dispatch.Relay = (*Client)(nil)

type StatusError struct {
	Op   string
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s: unexpected status %d", e.Op, e.Code)
}

type Client struct {
	base string
	http *http.Client
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option { return func(c *Client) { c.http = hc } }

func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		base: strings.TrimRight(baseURL, "/"),
		http: cleanhttp.DefaultPooledClient(),
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

func (c *Client) Join(ctx context.Context, req protocol.JoinRequest) (protocol.JoinResponse, error) {
	return call[protocol.JoinResponse](ctx, c, dispatch.OpJoin, req)
}

func (c *Client) Poll(ctx context.Context, req protocol.PollRequest) (protocol.PollResponse, error) {
	return call[protocol.PollResponse](ctx, c, dispatch.OpPoll, req)
}

func (c *Client) SubmitAction(ctx context.Context, req protocol.ActionRequest) (protocol.ActionResponse, error) {
	return call[protocol.ActionResponse](ctx, c, dispatch.OpAction, req)
}

func (c *Client) PostChat(ctx context.Context, req protocol.ChatRequest) (protocol.StatusResponse, error) {
	return call[protocol.StatusResponse](ctx, c, dispatch.OpChat, req)
}

func (c *Client) ConfirmTurn(ctx context.Context, req protocol.ConfirmRequest) (protocol.StatusResponse, error) {
	return call[protocol.StatusResponse](ctx, c, dispatch.OpConfirmTurn, req)
}

func (c *Client) Leave(ctx context.Context, req protocol.LeaveRequest) (protocol.StatusResponse, error) {
	return call[protocol.StatusResponse](ctx, c, dispatch.OpLeave, req)
}

func call[T any](ctx context.Context, c *Client, op string, body any) (T, error) {
	var out T

	payload, err := json.Marshal(body)
	if err != nil {
		return out, fmt.Errorf("%s: encode: %w", op, err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.base+"/"+op, bytes.NewReader(payload))
	if err != nil {
		return out, fmt.Errorf("%s: %w", op, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return out, fmt.Errorf("%s: %w", op, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusServiceUnavailable:
		_, _ = io.Copy(io.Discard, resp.Body)
		return out, fmt.Errorf("%s: %w", op, ErrUnavailable)
	default:
		_, _ = io.Copy(io.Discard, resp.Body)
		return out, &StatusError{Op: op, Code: resp.StatusCode}
	}

	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return out, fmt.Errorf("%s: decode: %w", op, err)
	}
	return out, nil
}

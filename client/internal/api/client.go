package api

import (
	"context"
	"net/http"
	"strings"
	"time"

	"airspace/shared/protocol"
)

// Client talks to the simulation server's REST API. It never retries;
// callers decide how to degrade.
type Client struct {
	base string
	hc   *http.Client
}

// New returns a Client for the given API base (e.g. http://host:8080/api).
// A zero timeout leaves requests unbounded.
func New(base string, timeout time.Duration) *Client {
	hc := http.DefaultClient
	if timeout > 0 {
		hc = &http.Client{Timeout: timeout}
	}
	return NewWithHTTPClient(base, hc)
}

func NewWithHTTPClient(base string, hc *http.Client) *Client {
	if hc == nil {
		hc = http.DefaultClient
	}
	return &Client{base: strings.TrimRight(base, "/"), hc: hc}
}

func (c *Client) Base() string { return c.base }

func (c *Client) ListAircraft(ctx context.Context) ([]protocol.Aircraft, error) {
	return doJSON[[]protocol.Aircraft](ctx, c, http.MethodGet, protocol.PathAircraft, nil)
}

func (c *Client) ListConflicts(ctx context.Context) ([]protocol.Conflict, error) {
	return doJSON[[]protocol.Conflict](ctx, c, http.MethodGet, protocol.PathConflicts, nil)
}

func (c *Client) FetchGameState(ctx context.Context) (protocol.GameState, error) {
	return doJSON[protocol.GameState](ctx, c, http.MethodGet, protocol.PathGameState, nil)
}

// CreateAircraft asks the server to spawn an aircraft at (x, y). The server
// assigns the id; the created aircraft shows up on the next poll.
func (c *Client) CreateAircraft(ctx context.Context, x, y float64) error {
	return send(ctx, c, http.MethodPost, protocol.PathAircraft, protocol.NewAircraft{X: x, Y: y})
}

func (c *Client) TapAircraft(ctx context.Context, id string) (protocol.TapResult, error) {
	return doJSON[protocol.TapResult](ctx, c, http.MethodPost, protocol.TapPath(id), nil)
}

func (c *Client) Reset(ctx context.Context) error {
	return send(ctx, c, http.MethodPost, protocol.PathReset, nil)
}

func (c *Client) ClearAircraft(ctx context.Context) error {
	return send(ctx, c, http.MethodDelete, protocol.PathAircraft, nil)
}

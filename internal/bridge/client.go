package bridge

import (
	"context"
	"errors"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"
)

// DefaultURL is where TikFinity serves its event socket.
const DefaultURL = "ws://localhost:21213"

// ClientConfig holds connection settings.
type ClientConfig struct {
	URL               string
	ReconnectInterval time.Duration
	HandshakeTimeout  time.Duration
}

// DefaultClientConfig returns the standard local TikFinity settings.
func DefaultClientConfig() ClientConfig {
	return ClientConfig{
		URL:               DefaultURL,
		ReconnectInterval: 3 * time.Second,
		HandshakeTimeout:  5 * time.Second,
	}
}

// ConnState is the client connection state.
type ConnState int

const (
	StateDisconnected ConnState = iota
	StateConnecting
	StateConnected
)

func (s ConnState) String() string {
	switch s {
	case StateConnecting:
		return "connecting"
	case StateConnected:
		return "connected"
	default:
		return "disconnected"
	}
}

// Client reads events from the stream tool and feeds them to a Bridge,
// reconnecting until its context is cancelled.
type Client struct {
	config ClientConfig
	bridge *Bridge
	logger *log.Logger
	dialer *websocket.Dialer

	// OnState, if set, is called on every state change.
	OnState func(ConnState)
}

// NewClient creates a client feeding b.
func NewClient(cfg ClientConfig, b *Bridge, logger *log.Logger) *Client {
	if cfg.URL == "" {
		cfg.URL = DefaultURL
	}
	if cfg.ReconnectInterval <= 0 {
		cfg.ReconnectInterval = 3 * time.Second
	}
	if logger == nil {
		logger = b.logger
	}
	return &Client{
		config: cfg,
		bridge: b,
		logger: logger,
		dialer: &websocket.Dialer{HandshakeTimeout: cfg.HandshakeTimeout},
	}
}

// Run connects and serves events until ctx is done. It always returns a
// non-nil error: ctx.Err() on cancellation.
func (c *Client) Run(ctx context.Context) error {
	for {
		c.setState(StateConnecting)
		err := c.serve(ctx)
		c.setState(StateDisconnected)

		if ctx.Err() != nil {
			return ctx.Err()
		}
		c.logger.Warn("connection lost, retrying", "url", c.config.URL, "error", err, "in", c.config.ReconnectInterval)

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(c.config.ReconnectInterval):
		}
	}
}

// serve runs one connection until it fails.
func (c *Client) serve(ctx context.Context) error {
	conn, _, err := c.dialer.DialContext(ctx, c.config.URL, nil)
	if err != nil {
		return err
	}
	defer conn.Close()

	c.setState(StateConnected)
	c.logger.Info("connected", "url", c.config.URL)

	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			// Unblock ReadMessage.
			conn.Close()
		case <-done:
		}
	}()

	for {
		msgType, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				return errors.New("server closed the connection")
			}
			return err
		}
		if msgType != websocket.TextMessage {
			continue
		}
		if err := c.bridge.HandleMessage(data); err != nil {
			c.logger.Warn("bad event", "error", err)
		}
	}
}

func (c *Client) setState(s ConnState) {
	if c.OnState != nil {
		c.OnState(s)
	}
}

// Package lavalink implements the client side of the Lavalink v4 control
// protocol: a WebSocket feed of track-lifecycle events plus a small REST
// surface for searching and driving per-guild players. The node performs
// all audio decoding and voice transport; this client only issues
// high-level commands and relays the node's notifications.
package lavalink

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

type Client struct {
	addr     string
	password string
	secure   bool

	httpc *http.Client

	mu        sync.Mutex
	conn      *websocket.Conn
	sessionID string
	userID    string

	events    chan Event
	done      chan struct{}
	closeOnce sync.Once
}

func New(addr, password string, secure bool) *Client {
	return &Client{
		addr:     addr,
		password: password,
		secure:   secure,
		httpc:    &http.Client{Timeout: 15 * time.Second},
		events:   make(chan Event, 64),
		done:     make(chan struct{}),
	}
}

func (c *Client) wsURL() string {
	scheme := "ws"
	if c.secure {
		scheme = "wss"
	}
	return fmt.Sprintf("%s://%s/v4/websocket", scheme, c.addr)
}

func (c *Client) restURL(path string) string {
	scheme := "http"
	if c.secure {
		scheme = "https"
	}
	return fmt.Sprintf("%s://%s/v4%s", scheme, c.addr, path)
}

// Connect dials the node and starts the read loop. userID is the bot's
// Discord user ID, required by the node's handshake.
func (c *Client) Connect(ctx context.Context, userID string) error {
	c.mu.Lock()
	c.userID = userID
	c.mu.Unlock()

	conn, err := c.dial(ctx)
	if err != nil {
		return fmt.Errorf("failed to connect to lavalink node %s: %w", c.addr, err)
	}

	c.mu.Lock()
	c.conn = conn
	c.mu.Unlock()

	go c.readLoop(ctx)
	return nil
}

func (c *Client) dial(ctx context.Context) (*websocket.Conn, error) {
	header := http.Header{}
	header.Set("Authorization", c.password)
	header.Set("User-Id", c.userID)
	header.Set("Client-Name", "dradio/1.0")

	conn, _, err := websocket.DefaultDialer.DialContext(ctx, c.wsURL(), header)
	if err != nil {
		return nil, err
	}
	conn.SetReadLimit(1 << 20)
	return conn, nil
}

// Events is the feed of track-lifecycle notifications. Closed when the
// client shuts down.
func (c *Client) Events() <-chan Event {
	return c.events
}

// readLoop consumes node messages and reconnects with backoff on errors
// until ctx is cancelled or Close is called.
func (c *Client) readLoop(ctx context.Context) {
	defer close(c.events) // single writer; consumers see a closed feed on shutdown
	defer c.closeConn()

	go func() {
		select {
		case <-ctx.Done():
			c.closeConn()
		case <-c.done:
		}
	}()

	backoff := time.Second
	for {
		c.mu.Lock()
		conn := c.conn
		c.mu.Unlock()

		var msg message
		var err error
		if conn == nil {
			err = fmt.Errorf("connection is nil")
		} else {
			err = conn.ReadJSON(&msg)
		}

		if err == nil {
			c.handleMessage(msg)
			backoff = time.Second
			continue
		}

		select {
		case <-ctx.Done():
			return
		case <-c.done:
			return
		default:
		}

		log.Printf("[WARN] Lavalink socket error: %v, reconnecting in %s", err, backoff)
		select {
		case <-time.After(backoff):
		case <-ctx.Done():
			return
		case <-c.done:
			return
		}
		if backoff < 30*time.Second {
			backoff *= 2
		}

		conn, derr := c.dial(ctx)
		if derr != nil {
			log.Printf("[WARN] Lavalink reconnect failed: %v", derr)
			continue
		}
		c.mu.Lock()
		c.conn = conn
		c.mu.Unlock()
		log.Printf("[INFO] Reconnected to Lavalink node %s", c.addr)
	}
}

func (c *Client) handleMessage(msg message) {
	switch msg.Op {
	case "ready":
		c.mu.Lock()
		c.sessionID = msg.SessionID
		c.mu.Unlock()
		log.Printf("[INFO] Lavalink node ready, session %s", msg.SessionID)

	case "event":
		ev := Event{
			Type:    EventType(msg.Type),
			GuildID: msg.GuildID,
			Track:   msg.Track,
			Reason:  msg.Reason,
			Code:    msg.Code,
		}
		select {
		case c.events <- ev:
		case <-c.done:
		}

	case "playerUpdate", "stats":
		// Position/health telemetry; nothing to do with it here.

	default:
		log.Printf("[WARN] Unknown lavalink op: %s", msg.Op)
	}
}

// SessionID returns the node session established by the ready handshake.
func (c *Client) SessionID() (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.sessionID == "" {
		return "", fmt.Errorf("lavalink node is not ready")
	}
	return c.sessionID, nil
}

func (c *Client) closeConn() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.conn != nil {
		_ = c.conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, "closing"),
			time.Now().Add(500*time.Millisecond))
		_ = c.conn.Close()
		c.conn = nil
	}
}

// Close shuts the client down. The event feed is closed by the read loop
// on its way out.
func (c *Client) Close() {
	c.closeOnce.Do(func() {
		close(c.done)
		c.closeConn()
	})
}

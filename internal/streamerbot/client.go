package streamerbot

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/osse101/ContestBot_Go/internal/logger"
)

var (
	// ErrNotConnected is returned by DoAction while the socket is down
	ErrNotConnected = errors.New("not connected to Streamer.bot")
	// ErrDormant is returned by DoAction after the client gave up dialing; the call wakes it up
	ErrDormant = errors.New("Streamer.bot is dormant, reconnection triggered")
)

// Client keeps a WebSocket connection to Streamer.bot open with auto-reconnect.
// After MaxConsecutiveFailures dials it goes dormant until the next DoAction.
type Client struct {
	url      string
	password string

	mu        sync.RWMutex
	conn      *websocket.Conn
	connected bool
	dormant   bool

	// gorilla/websocket allows one concurrent writer
	writeMu sync.Mutex

	wakeup   chan struct{}
	shutdown chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
}

// Request is a Streamer.bot WebSocket request
type Request struct {
	Request        string            `json:"request"`
	ID             string            `json:"id"`
	Action         *Action           `json:"action,omitempty"`
	Args           map[string]string `json:"args,omitempty"`
	Authentication string            `json:"authentication,omitempty"`
}

// Action identifies a Streamer.bot action by name
type Action struct {
	Name string `json:"name"`
}

// Response is a Streamer.bot WebSocket response
type Response struct {
	Status string `json:"status"`
	ID     string `json:"id"`
	Error  string `json:"error,omitempty"`
}

type authChallenge struct {
	Info struct {
		Authentication struct {
			Challenge string `json:"challenge"`
			Salt      string `json:"salt"`
		} `json:"authentication"`
	} `json:"info"`
}

// NewClient creates a client. An empty url uses DefaultURL.
func NewClient(url, password string) *Client {
	if url == "" {
		url = DefaultURL
	}
	return &Client{
		url:      url,
		password: password,
		wakeup:   make(chan struct{}, 1),
		shutdown: make(chan struct{}),
	}
}

// Start runs the connect loop until ctx is done or Stop is called
func (c *Client) Start(ctx context.Context) {
	c.wg.Add(1)
	go c.connectLoop(ctx)
}

// Stop closes the connection and waits for the connect loop to exit. Safe to call twice.
func (c *Client) Stop() {
	c.stopOnce.Do(func() {
		close(c.shutdown)
		c.mu.Lock()
		if c.conn != nil {
			_ = c.conn.Close()
		}
		c.mu.Unlock()
	})
	c.wg.Wait()
}

// IsConnected reports whether the socket is up
func (c *Client) IsConnected() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.connected
}

// DoAction triggers a named Streamer.bot action. It does not wait for the action's response.
func (c *Client) DoAction(ctx context.Context, actionName string, args map[string]string) error {
	c.mu.RLock()
	dormant, conn := c.dormant, c.conn
	connected := c.connected
	c.mu.RUnlock()

	if dormant {
		logger.FromContext(ctx).Debug(LogMsgDormantRetry)
		select {
		case c.wakeup <- struct{}{}:
		default:
		}
		return ErrDormant
	}
	if !connected || conn == nil {
		return ErrNotConnected
	}

	logger.FromContext(ctx).Debug(LogMsgSendingAction, "action", actionName)
	return c.write(conn, Request{
		Request: RequestDoAction,
		ID:      uuid.NewString(),
		Action:  &Action{Name: actionName},
		Args:    args,
	})
}

func (c *Client) write(conn *websocket.Conn, v interface{}) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	_ = conn.SetWriteDeadline(time.Now().Add(WriteTimeout))
	return conn.WriteJSON(v)
}

func (c *Client) connectLoop(ctx context.Context) {
	defer c.wg.Done()

	backoff := DefaultReconnectDelay
	failures := 0

	for {
		select {
		case <-c.shutdown:
			logger.Info(LogMsgClientStopped)
			return
		case <-ctx.Done():
			logger.Info(LogMsgClientStopped)
			return
		default:
		}

		connectedOnce, err := c.connect(ctx)
		c.setConnected(false)
		if connectedOnce {
			if failures > 0 {
				logger.Info(LogMsgRestored, "after_failures", failures)
			}
			backoff = DefaultReconnectDelay
			failures = 0
			continue
		}

		failures++
		if failures >= MaxConsecutiveFailures {
			if !c.sleepUntilWakeup(ctx, failures) {
				return
			}
			backoff = DefaultReconnectDelay
			failures = 0
			continue
		}

		if failures <= 3 {
			logger.Warn(LogMsgReconnecting, "error", err, "backoff", backoff, "consecutive_failures", failures)
		}

		select {
		case <-time.After(backoff):
			backoff = time.Duration(float64(backoff) * ReconnectMultiplier)
			if backoff > MaxReconnectDelay {
				backoff = MaxReconnectDelay
			}
		case <-c.shutdown:
			return
		case <-ctx.Done():
			return
		}
	}
}

// sleepUntilWakeup parks the client in dormant mode. It returns false on shutdown.
func (c *Client) sleepUntilWakeup(ctx context.Context, failures int) bool {
	c.mu.Lock()
	c.dormant = true
	c.mu.Unlock()
	logger.Warn(LogMsgGivingUp, "consecutive_failures", failures)

	select {
	case <-c.wakeup:
		logger.Info(LogMsgWakingUp)
		c.mu.Lock()
		c.dormant = false
		c.mu.Unlock()
		return true
	case <-c.shutdown:
		return false
	case <-ctx.Done():
		return false
	}
}

// connect dials, authenticates if challenged and then blocks in the read loop.
// connectedOnce reports whether the session got past the handshake.
func (c *Client) connect(ctx context.Context) (connectedOnce bool, err error) {
	logger.Info(LogMsgConnecting, "url", c.url)

	dialer := websocket.Dialer{
		ReadBufferSize:  ReadBufferSize,
		WriteBufferSize: WriteBufferSize,
	}
	conn, resp, err := dialer.DialContext(ctx, c.url, nil)
	if err != nil {
		if resp != nil {
			return false, fmt.Errorf("failed to connect: %w (status: %s)", err, resp.Status)
		}
		return false, fmt.Errorf("failed to connect: %w", err)
	}
	defer conn.Close()

	c.mu.Lock()
	c.conn = conn
	c.mu.Unlock()

	// With auth disabled Streamer.bot may stay silent after the upgrade
	_ = conn.SetReadDeadline(time.Now().Add(HandshakeReadTimeout))
	_, msg, readErr := conn.ReadMessage()
	_ = conn.SetReadDeadline(time.Time{})

	if readErr == nil {
		var challenge authChallenge
		if json.Unmarshal(msg, &challenge) == nil && challenge.Info.Authentication.Challenge != "" {
			logger.Info(LogMsgAuthRequired)
			if err := c.authenticate(conn, challenge); err != nil {
				return false, fmt.Errorf("authentication failed: %w", err)
			}
			logger.Info(LogMsgAuthSuccess)
		}
	} else {
		logger.Debug(LogMsgNoHandshake, "error", readErr)
	}

	c.setConnected(true)
	logger.Info(LogMsgConnected, "url", c.url)
	return true, c.readLoop(conn)
}

func (c *Client) authenticate(conn *websocket.Conn, challenge authChallenge) error {
	if c.password == "" {
		return errors.New("password required but not configured")
	}

	req := Request{
		Request: RequestAuthenticate,
		ID:      uuid.NewString(),
		Authentication: authHash(
			c.password,
			challenge.Info.Authentication.Salt,
			challenge.Info.Authentication.Challenge,
		),
	}
	if err := c.write(conn, req); err != nil {
		return fmt.Errorf("failed to send auth request: %w", err)
	}

	var resp Response
	if err := conn.ReadJSON(&resp); err != nil {
		return fmt.Errorf("failed to read auth response: %w", err)
	}
	if resp.Status != StatusOK {
		return fmt.Errorf("auth rejected: %s", resp.Error)
	}
	return nil
}

// readLoop drains responses until the socket closes. Action responses are not correlated.
func (c *Client) readLoop(conn *websocket.Conn) error {
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			select {
			case <-c.shutdown:
				return nil
			default:
			}
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				return nil
			}
			logger.Warn(LogMsgReadError, "error", err)
			return err
		}
	}
}

func (c *Client) setConnected(connected bool) {
	c.mu.Lock()
	c.connected = connected
	if !connected {
		c.conn = nil
	}
	c.mu.Unlock()
}

package streamdeck

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"strconv"
	"sync"
	"time"

	"github.com/coder/websocket"
	"github.com/google/uuid"

	"github.com/deck-timer/deck-timer/pkg/connection"
	"github.com/deck-timer/deck-timer/pkg/log"
)

// Connection errors.
var (
	ErrConnectionClosed = errors.New("connection closed")
	ErrInvalidPort      = errors.New("invalid port")
)

// DefaultMaxMessageSize bounds inbound frames. Host frames are small; the
// largest are didReceiveGlobalSettings blobs.
const DefaultMaxMessageSize = 1 << 20

// ConnConfig configures the host connection.
type ConnConfig struct {
	// Host is the address the Stream Deck application listens on
	// (default: 127.0.0.1).
	Host string

	// Port is the -port launch argument.
	Port int

	// Attempts bounds dial retries (default: connection.DefaultAttempts).
	Attempts int

	// Backoff overrides the retry delays.
	Backoff *connection.Backoff

	// MaxMessageSize is the inbound read limit (default: 1 MiB).
	MaxMessageSize int64

	// ProtocolLogger receives a FrameEvent for every frame.
	ProtocolLogger log.Logger

	// Logger is the optional operational logger.
	Logger *slog.Logger
}

// Conn is a WebSocket connection to the Stream Deck host.
type Conn struct {
	ws        *websocket.Conn
	sessionID string
	url       string
	plog      log.Logger
	logger    *slog.Logger

	closeOnce sync.Once
	closeCh   chan struct{}
}

// Dial connects to the host, retrying while the listener comes up.
func Dial(ctx context.Context, cfg ConnConfig) (*Conn, error) {
	if cfg.Port <= 0 || cfg.Port > 65535 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidPort, cfg.Port)
	}
	if cfg.Host == "" {
		cfg.Host = "127.0.0.1"
	}
	if cfg.MaxMessageSize <= 0 {
		cfg.MaxMessageSize = DefaultMaxMessageSize
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	c := &Conn{
		sessionID: uuid.New().String(),
		url:       "ws://" + net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port)),
		plog:      log.OrNoop(cfg.ProtocolLogger),
		logger:    logger,
		closeCh:   make(chan struct{}),
	}

	retrier := connection.NewRetrier(cfg.Backoff, cfg.Attempts)
	retrier.OnRetry = func(attempt int, err error, delay time.Duration) {
		logger.Debug("dial failed, retrying", "url", c.url, "attempt", attempt, "delay", delay, "error", err)
	}

	err := retrier.Do(ctx, func(ctx context.Context) error {
		ws, _, err := websocket.Dial(ctx, c.url, nil)
		if err != nil {
			return err
		}
		c.ws = ws
		return nil
	})
	if err != nil {
		c.logState("", "DISCONNECTED", err.Error())
		return nil, fmt.Errorf("dial %s failed: %w", c.url, err)
	}
	c.ws.SetReadLimit(cfg.MaxMessageSize)

	c.logState("DISCONNECTED", "CONNECTED", "")
	logger.Info("connected to host", "url", c.url, "session", c.sessionID)
	return c, nil
}

// SessionID identifies this connection in protocol logs.
func (c *Conn) SessionID() string {
	return c.sessionID
}

// Send writes one text frame.
func (c *Conn) Send(ctx context.Context, data []byte) error {
	select {
	case <-c.closeCh:
		return ErrConnectionClosed
	default:
	}

	if err := c.ws.Write(ctx, websocket.MessageText, data); err != nil {
		c.logError("write", err)
		return fmt.Errorf("write failed: %w", err)
	}
	c.logFrame(log.DirectionOut, data)
	return nil
}

// Receive blocks until the next frame arrives.
func (c *Conn) Receive(ctx context.Context) ([]byte, error) {
	select {
	case <-c.closeCh:
		return nil, ErrConnectionClosed
	default:
	}

	_, data, err := c.ws.Read(ctx)
	if err != nil {
		if websocket.CloseStatus(err) != -1 {
			c.logState("CONNECTED", "CLOSED", err.Error())
			return nil, fmt.Errorf("%w: %w", ErrConnectionClosed, err)
		}
		c.logError("read", err)
		return nil, fmt.Errorf("read failed: %w", err)
	}
	c.logFrame(log.DirectionIn, data)
	return data, nil
}

// Close closes the connection with a normal closure status.
func (c *Conn) Close() error {
	var err error
	c.closeOnce.Do(func() {
		close(c.closeCh)
		err = c.ws.Close(websocket.StatusNormalClosure, "plugin shutting down")
		c.logState("CONNECTED", "CLOSED", "local close")
	})
	return err
}

func (c *Conn) logFrame(dir log.Direction, data []byte) {
	c.plog.Log(log.Event{
		Timestamp: time.Now(),
		SessionID: c.sessionID,
		Direction: dir,
		Layer:     log.LayerTransport,
		Category:  log.CategoryMessage,
		Frame:     log.NewFrameEvent(data),
	})
}

func (c *Conn) logState(oldState, newState, reason string) {
	c.plog.Log(log.Event{
		Timestamp: time.Now(),
		SessionID: c.sessionID,
		Layer:     log.LayerTransport,
		Category:  log.CategoryState,
		StateChange: &log.StateChangeEvent{
			Entity:   log.StateEntityConnection,
			OldState: oldState,
			NewState: newState,
			Reason:   reason,
		},
	})
}

func (c *Conn) logError(op string, err error) {
	c.plog.Log(log.Event{
		Timestamp: time.Now(),
		SessionID: c.sessionID,
		Layer:     log.LayerTransport,
		Category:  log.CategoryError,
		Error: &log.ErrorEventData{
			Layer:   log.LayerTransport,
			Message: err.Error(),
			Context: op,
		},
	})
}

// Package simhost plays the Stream Deck application for one plugin: it
// accepts the plugin's WebSocket, checks its registration, sends key
// events and keeps the settings the plugin persists.
package simhost

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/coder/websocket"

	"github.com/deck-timer/deck-timer/pkg/streamdeck"
)

// Errors returned by Host.
var (
	ErrNotConnected    = errors.New("no plugin connected")
	ErrBadRegistration = errors.New("bad registration frame")
)

// Defaults for Config.
const (
	DefaultRegisterEvent = "registerPlugin"
	DefaultContext       = "sim-key-1"
	DefaultDevice        = "sim-device"
)

// commandBuffer bounds the queue read by Next. Older commands are dropped
// when nobody reads.
const commandBuffer = 64

// Config configures a Host.
type Config struct {
	// Action is the action UUID of the simulated key.
	Action string

	// Context identifies the simulated key (default: DefaultContext).
	Context string

	// Device identifies the simulated device (default: DefaultDevice).
	Device string

	// RegisterEvent is the expected registration event name.
	RegisterEvent string

	// PluginUUID, if set, must match the registration frame.
	PluginUUID string

	// Settings seeds the key's stored settings.
	Settings map[string]any

	// Logger is the optional operational logger.
	Logger *slog.Logger
}

// Command is a decoded plugin command.
type Command struct {
	Event   string          `json:"event"`
	Context string          `json:"context,omitempty"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// Title returns the title of a setTitle command.
func (c Command) Title() (string, bool) {
	if c.Event != streamdeck.CommandSetTitle {
		return "", false
	}
	var p struct {
		Title string `json:"title"`
	}
	if err := json.Unmarshal(c.Payload, &p); err != nil {
		return "", false
	}
	return p.Title, true
}

// Message returns the text of a logMessage command.
func (c Command) Message() (string, bool) {
	if c.Event != streamdeck.CommandLogMessage {
		return "", false
	}
	var p struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(c.Payload, &p); err != nil {
		return "", false
	}
	return p.Message, true
}

// Host is a single-key Stream Deck host. It serves one plugin connection
// at a time.
type Host struct {
	config Config
	logger *slog.Logger

	mu       sync.Mutex
	conn     *websocket.Conn
	settings map[string]any
	title    string

	registered chan struct{}
	done       chan struct{}
	commands   chan Command
}

// New creates a Host.
func New(config Config) *Host {
	if config.Context == "" {
		config.Context = DefaultContext
	}
	if config.Device == "" {
		config.Device = DefaultDevice
	}
	if config.RegisterEvent == "" {
		config.RegisterEvent = DefaultRegisterEvent
	}
	logger := config.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	settings := make(map[string]any, len(config.Settings))
	for k, v := range config.Settings {
		settings[k] = v
	}
	return &Host{
		config:     config,
		logger:     logger,
		settings:   settings,
		registered: make(chan struct{}),
		done:       make(chan struct{}),
		commands:   make(chan Command, commandBuffer),
	}
}

// ServeHTTP accepts the plugin connection and reads its commands until
// the connection ends.
func (h *Host) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	busy := h.conn != nil
	h.mu.Unlock()
	if busy {
		http.Error(w, "plugin already connected", http.StatusConflict)
		return
	}

	ws, err := websocket.Accept(w, r, nil)
	if err != nil {
		h.logger.Warn("accept failed", "error", err)
		return
	}
	defer ws.CloseNow()

	ctx := r.Context()
	if err := h.register(ctx, ws); err != nil {
		h.logger.Warn("registration rejected", "error", err)
		ws.Close(websocket.StatusPolicyViolation, err.Error())
		return
	}
	defer close(h.done)

	for {
		_, data, err := ws.Read(ctx)
		if err != nil {
			h.logger.Info("plugin disconnected", "error", err)
			return
		}
		h.handle(data)
	}
}

func (h *Host) register(ctx context.Context, ws *websocket.Conn) error {
	_, data, err := ws.Read(ctx)
	if err != nil {
		return err
	}
	var reg struct {
		Event string `json:"event"`
		UUID  string `json:"uuid"`
	}
	if err := json.Unmarshal(data, &reg); err != nil {
		return fmt.Errorf("%w: %w", ErrBadRegistration, err)
	}
	if reg.Event != h.config.RegisterEvent {
		return fmt.Errorf("%w: event %q", ErrBadRegistration, reg.Event)
	}
	if h.config.PluginUUID != "" && reg.UUID != h.config.PluginUUID {
		return fmt.Errorf("%w: uuid %q", ErrBadRegistration, reg.UUID)
	}

	h.mu.Lock()
	h.conn = ws
	h.mu.Unlock()
	close(h.registered)
	h.logger.Info("plugin registered", "uuid", reg.UUID)
	return nil
}

func (h *Host) handle(data []byte) {
	var cmd Command
	if err := json.Unmarshal(data, &cmd); err != nil {
		h.logger.Warn("bad command", "error", err)
		return
	}

	switch cmd.Event {
	case streamdeck.CommandSetSettings:
		var settings map[string]any
		if err := json.Unmarshal(cmd.Payload, &settings); err != nil {
			h.logger.Warn("bad settings", "error", err)
			return
		}
		h.mu.Lock()
		h.settings = settings
		h.mu.Unlock()
	case streamdeck.CommandSetTitle:
		if title, ok := cmd.Title(); ok {
			h.mu.Lock()
			h.title = title
			h.mu.Unlock()
		}
	}

	select {
	case h.commands <- cmd:
	default:
		// Drop the oldest so the latest title is always visible.
		select {
		case <-h.commands:
		default:
		}
		select {
		case h.commands <- cmd:
		default:
		}
	}
}

// WaitRegistered blocks until a plugin has registered.
func (h *Host) WaitRegistered(ctx context.Context) error {
	select {
	case <-h.registered:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Done is closed when the registered plugin disconnects.
func (h *Host) Done() <-chan struct{} {
	return h.done
}

// Next returns the next command the plugin sent.
func (h *Host) Next(ctx context.Context) (Command, error) {
	select {
	case cmd := <-h.commands:
		return cmd, nil
	case <-ctx.Done():
		return Command{}, ctx.Err()
	}
}

// Commands exposes the command queue for callers that select on it.
func (h *Host) Commands() <-chan Command {
	return h.commands
}

// Settings returns a copy of the stored settings.
func (h *Host) Settings() map[string]any {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make(map[string]any, len(h.settings))
	for k, v := range h.settings {
		out[k] = v
	}
	return out
}

// Title returns the last title the plugin set.
func (h *Host) Title() string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.title
}

// Appear sends willAppear.
func (h *Host) Appear(ctx context.Context) error {
	return h.sendAction(ctx, streamdeck.EventWillAppear)
}

// Disappear sends willDisappear.
func (h *Host) Disappear(ctx context.Context) error {
	return h.sendAction(ctx, streamdeck.EventWillDisappear)
}

// KeyDown sends keyDown.
func (h *Host) KeyDown(ctx context.Context) error {
	return h.sendAction(ctx, streamdeck.EventKeyDown)
}

// KeyUp sends keyUp.
func (h *Host) KeyUp(ctx context.Context) error {
	return h.sendAction(ctx, streamdeck.EventKeyUp)
}

// Press sends keyDown, waits hold, then sends keyUp.
func (h *Host) Press(ctx context.Context, hold time.Duration) error {
	if err := h.KeyDown(ctx); err != nil {
		return err
	}
	select {
	case <-time.After(hold):
	case <-ctx.Done():
		return ctx.Err()
	}
	return h.KeyUp(ctx)
}

// Wake sends systemDidWakeUp.
func (h *Host) Wake(ctx context.Context) error {
	return h.send(ctx, map[string]any{"event": streamdeck.EventSystemDidWakeUp})
}

// SetSetting changes one stored setting, as the property inspector does,
// and sends didReceiveSettings. A nil value removes the key.
func (h *Host) SetSetting(ctx context.Context, key string, value any) error {
	h.mu.Lock()
	if value == nil {
		delete(h.settings, key)
	} else {
		h.settings[key] = value
	}
	h.mu.Unlock()
	return h.sendAction(ctx, streamdeck.EventDidReceiveSettings)
}

func (h *Host) sendAction(ctx context.Context, event string) error {
	frame := map[string]any{
		"event":   event,
		"action":  h.config.Action,
		"context": h.config.Context,
		"device":  h.config.Device,
		"payload": map[string]any{
			"settings":        h.Settings(),
			"coordinates":     streamdeck.Coordinates{},
			"isInMultiAction": false,
		},
	}
	return h.send(ctx, frame)
}

func (h *Host) send(ctx context.Context, frame map[string]any) error {
	h.mu.Lock()
	ws := h.conn
	h.mu.Unlock()
	if ws == nil {
		return ErrNotConnected
	}

	data, err := json.Marshal(frame)
	if err != nil {
		return err
	}
	if err := ws.Write(ctx, websocket.MessageText, data); err != nil {
		return fmt.Errorf("write %s: %w", frame["event"], err)
	}
	return nil
}

// Close ends the plugin connection with a normal closure, as the Stream
// Deck application does when it quits.
func (h *Host) Close() error {
	h.mu.Lock()
	ws := h.conn
	h.mu.Unlock()
	if ws == nil {
		return ErrNotConnected
	}
	return ws.Close(websocket.StatusNormalClosure, "host quitting")
}

package streamdeck

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/deck-timer/deck-timer/pkg/log"
)

// Plugin errors.
var (
	ErrAlreadyRegistered = errors.New("action already registered")
	ErrNoActions         = errors.New("no actions registered")
)

// Transport carries host frames. Implemented by Conn.
type Transport interface {
	Send(ctx context.Context, data []byte) error
	Receive(ctx context.Context) ([]byte, error)
}

var _ Transport = (*Conn)(nil)

// PluginConfig configures a Plugin.
type PluginConfig struct {
	// PluginUUID is the -pluginUUID launch argument.
	PluginUUID string

	// RegisterEvent is the -registerEvent launch argument.
	RegisterEvent string

	// SessionID correlates protocol log events; generated if empty.
	SessionID string

	// ProtocolLogger receives host-layer events.
	ProtocolLogger log.Logger

	// Logger is the optional operational logger.
	Logger *slog.Logger
}

// Plugin dispatches host events to per-context Handlers.
type Plugin struct {
	config    PluginConfig
	transport Transport
	plog      log.Logger
	logger    *slog.Logger

	factories map[string]Factory

	// instances is only touched by the dispatch goroutine.
	instances map[string]Handler

	writeMu sync.Mutex
}

// NewPlugin creates a Plugin that talks over t.
func NewPlugin(t Transport, config PluginConfig) *Plugin {
	if config.SessionID == "" {
		config.SessionID = uuid.New().String()
	}
	logger := config.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Plugin{
		config:    config,
		transport: t,
		plog:      log.WithSession(config.ProtocolLogger, config.SessionID),
		logger:    logger,
		factories: make(map[string]Factory),
		instances: make(map[string]Handler),
	}
}

// Register binds an action UUID (as declared in the manifest) to a
// Factory. It must be called before Run.
func (p *Plugin) Register(actionUUID string, factory Factory) error {
	if _, exists := p.factories[actionUUID]; exists {
		return fmt.Errorf("%w: %s", ErrAlreadyRegistered, actionUUID)
	}
	p.factories[actionUUID] = factory
	return nil
}

// InstanceCount returns the number of live handlers.
// Only meaningful between events or after Run returned.
func (p *Plugin) InstanceCount() int {
	return len(p.instances)
}

// Run registers with the host and dispatches events until ctx is cancelled
// or the transport fails. Live handlers receive WillDisappear on return so
// their background work stops.
func (p *Plugin) Run(ctx context.Context) error {
	if len(p.factories) == 0 {
		return ErrNoActions
	}
	defer p.shutdown()

	reg, err := EncodeRegistration(p.config.RegisterEvent, p.config.PluginUUID)
	if err != nil {
		return err
	}
	if err := p.send(ctx, p.config.RegisterEvent, "", reg); err != nil {
		return fmt.Errorf("registration failed: %w", err)
	}
	p.logger.Info("registered with host", "plugin", p.config.PluginUUID)

	for {
		data, err := p.transport.Receive(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return fmt.Errorf("receive failed: %w", err)
		}
		p.dispatch(ctx, data)
	}
}

// dispatch handles one frame. Bad frames and handler errors are logged,
// never fatal.
func (p *Plugin) dispatch(ctx context.Context, data []byte) {
	frame, err := DecodeFrame(data)
	if err != nil {
		p.logger.Warn("dropping malformed frame", "error", err)
		p.logError("decode", "", err)
		return
	}

	start := time.Now()
	err = p.route(ctx, frame)
	took := time.Since(start)

	p.plog.Log(log.Event{
		Timestamp: start,
		Direction: log.DirectionIn,
		Layer:     log.LayerHost,
		Category:  log.CategoryMessage,
		Context:   frame.Context,
		Action:    frame.Action,
		Device:    frame.Device,
		Message: &log.MessageEvent{
			Name:         frame.Event,
			Payload:      frame.Payload,
			HandlingTime: &took,
		},
	})

	if err != nil {
		p.logger.Error("handler failed", "event", frame.Event, "context", frame.Context, "error", err)
		p.logError(frame.Event, frame.Context, err)
		_ = p.LogMessage(ctx, fmt.Sprintf("%s %s: %v", frame.Event, frame.Context, err))
	}
}

func (p *Plugin) route(ctx context.Context, frame *Frame) error {
	if frame.Event == EventSystemDidWakeUp {
		var errs []error
		for _, h := range p.instances {
			errs = append(errs, h.SystemDidWakeUp(ctx))
		}
		return errors.Join(errs...)
	}

	switch frame.Event {
	case EventWillAppear, EventWillDisappear, EventKeyDown, EventKeyUp, EventDidReceiveSettings:
	default:
		p.logger.Debug("ignoring event", "event", frame.Event)
		return nil
	}

	ev, err := frame.ActionEvent()
	if err != nil {
		return err
	}

	if frame.Event == EventWillDisappear {
		h, ok := p.instances[ev.Context]
		if !ok {
			return nil
		}
		delete(p.instances, ev.Context)
		p.logInstance(ev, "VISIBLE", "HIDDEN")
		return h.WillDisappear(ctx, ev)
	}

	h := p.instance(ev)
	if h == nil {
		p.logger.Warn("event for unregistered action", "action", ev.Action, "event", ev.Name)
		return nil
	}

	switch frame.Event {
	case EventWillAppear:
		return h.WillAppear(ctx, ev)
	case EventKeyDown:
		return h.KeyDown(ctx, ev)
	case EventKeyUp:
		return h.KeyUp(ctx, ev)
	default:
		return h.DidReceiveSettings(ctx, ev)
	}
}

// instance returns the handler for ev's context, creating it if the action
// is registered.
func (p *Plugin) instance(ev ActionEvent) Handler {
	if h, ok := p.instances[ev.Context]; ok {
		return h
	}
	factory, ok := p.factories[ev.Action]
	if !ok {
		return nil
	}
	h := factory(&instanceHost{plugin: p, context: ev.Context})
	p.instances[ev.Context] = h
	p.logInstance(ev, "HIDDEN", "VISIBLE")
	return h
}

func (p *Plugin) shutdown() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	for id, h := range p.instances {
		if err := h.WillDisappear(ctx, ActionEvent{Name: EventWillDisappear, Context: id}); err != nil {
			p.logger.Debug("shutdown handler error", "context", id, "error", err)
		}
		delete(p.instances, id)
	}
}

// SetTitle sends a setTitle command for contextID.
func (p *Plugin) SetTitle(ctx context.Context, contextID, title string) error {
	data, err := EncodeSetTitle(contextID, title, TargetBoth)
	if err != nil {
		return err
	}
	return p.send(ctx, CommandSetTitle, contextID, data)
}

// SetSettings sends a setSettings command for contextID.
func (p *Plugin) SetSettings(ctx context.Context, contextID string, settings any) error {
	data, err := EncodeSetSettings(contextID, settings)
	if err != nil {
		return err
	}
	return p.send(ctx, CommandSetSettings, contextID, data)
}

// LogMessage writes message to the Stream Deck application log.
func (p *Plugin) LogMessage(ctx context.Context, message string) error {
	data, err := EncodeLogMessage(message)
	if err != nil {
		return err
	}
	return p.send(ctx, CommandLogMessage, "", data)
}

func (p *Plugin) send(ctx context.Context, name, contextID string, data []byte) error {
	p.writeMu.Lock()
	defer p.writeMu.Unlock()

	if err := p.transport.Send(ctx, data); err != nil {
		return err
	}
	p.plog.Log(log.Event{
		Timestamp: time.Now(),
		Direction: log.DirectionOut,
		Layer:     log.LayerHost,
		Category:  log.CategoryMessage,
		Context:   contextID,
		Message:   &log.MessageEvent{Name: name, Payload: data},
	})
	return nil
}

func (p *Plugin) logInstance(ev ActionEvent, oldState, newState string) {
	p.plog.Log(log.Event{
		Timestamp: time.Now(),
		Layer:     log.LayerHost,
		Category:  log.CategoryState,
		Context:   ev.Context,
		Action:    ev.Action,
		Device:    ev.Device,
		StateChange: &log.StateChangeEvent{
			Entity:   log.StateEntityInstance,
			OldState: oldState,
			NewState: newState,
			Reason:   ev.Name,
		},
	})
}

func (p *Plugin) logError(op, contextID string, err error) {
	p.plog.Log(log.Event{
		Timestamp: time.Now(),
		Layer:     log.LayerHost,
		Category:  log.CategoryError,
		Context:   contextID,
		Error: &log.ErrorEventData{
			Layer:   log.LayerHost,
			Message: err.Error(),
			Context: op,
		},
	})
}

// instanceHost binds a Plugin to one context.
type instanceHost struct {
	plugin  *Plugin
	context string
}

func (h *instanceHost) Context() string {
	return h.context
}

func (h *instanceHost) SetTitle(ctx context.Context, title string) error {
	return h.plugin.SetTitle(ctx, h.context, title)
}

func (h *instanceHost) SetSettings(ctx context.Context, settings any) error {
	return h.plugin.SetSettings(ctx, h.context, settings)
}

func (h *instanceHost) LogMessage(ctx context.Context, message string) error {
	return h.plugin.LogMessage(ctx, message)
}

var _ Host = (*instanceHost)(nil)

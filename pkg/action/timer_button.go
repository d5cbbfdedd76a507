package action

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/deck-timer/deck-timer/pkg/datafile"
	"github.com/deck-timer/deck-timer/pkg/log"
	"github.com/deck-timer/deck-timer/pkg/refresh"
	"github.com/deck-timer/deck-timer/pkg/streamdeck"
)

// UUID is the action identifier declared in the plugin manifest.
const UUID = "com.decktimer.timer.button"

// Timing defaults.
const (
	// DefaultLongPress is the press duration above which a release stops
	// the session.
	DefaultLongPress = 1000 * time.Millisecond

	// DefaultRefreshInterval is the title refresh period while running.
	DefaultRefreshInterval = time.Second
)

// Config configures timer buttons. Zero fields take defaults.
type Config struct {
	LongPress       time.Duration
	RefreshInterval time.Duration

	Scheduler refresh.Scheduler
	Clock     refresh.Clock
	Files     *datafile.Writer

	// ProtocolLogger receives session state changes.
	ProtocolLogger log.Logger

	// Logger is the optional operational logger.
	Logger *slog.Logger
}

func (c Config) withDefaults() Config {
	if c.LongPress <= 0 {
		c.LongPress = DefaultLongPress
	}
	if c.RefreshInterval <= 0 {
		c.RefreshInterval = DefaultRefreshInterval
	}
	if c.Scheduler == nil {
		c.Scheduler = refresh.NewTicker()
	}
	if c.Clock == nil {
		c.Clock = refresh.SystemClock
	}
	if c.Files == nil {
		c.Files = datafile.NewWriter(nil)
	}
	c.ProtocolLogger = log.OrNoop(c.ProtocolLogger)
	if c.Logger == nil {
		c.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return c
}

// NewFactory returns the streamdeck.Factory that creates one TimerButton
// per key.
func NewFactory(cfg Config) streamdeck.Factory {
	cfg = cfg.withDefaults()
	return func(host streamdeck.Host) streamdeck.Handler {
		return newTimerButton(host, cfg)
	}
}

// TimerButton is the handler of one key.
type TimerButton struct {
	cfg    Config
	host   streamdeck.Host
	logger *slog.Logger

	mu        sync.Mutex
	settings  Settings
	keyDownAt *time.Time
	refresh   refresh.Task
}

// NewTimerButton creates the handler for the key behind host.
func NewTimerButton(host streamdeck.Host, cfg Config) *TimerButton {
	return newTimerButton(host, cfg.withDefaults())
}

func newTimerButton(host streamdeck.Host, cfg Config) *TimerButton {
	return &TimerButton{
		cfg:    cfg,
		host:   host,
		logger: cfg.Logger.With("context", host.Context()),
	}
}

// Settings returns the last settings seen or written by the button.
func (b *TimerButton) Settings() Settings {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.settings
}

// Refreshing reports whether a refresh task is active.
func (b *TimerButton) Refreshing() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.refresh != nil
}

// WillAppear resumes the refresh of a running session and paints the
// current elapsed time.
func (b *TimerButton) WillAppear(ctx context.Context, ev streamdeck.ActionEvent) error {
	s, err := decodeSettings(ev)
	if err != nil {
		return err
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	b.settings = s
	return errors.Join(b.startRefresh(s), b.render(ctx))
}

// WillDisappear stops the refresh. Settings are left alone.
func (b *TimerButton) WillDisappear(ctx context.Context, ev streamdeck.ActionEvent) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.stopRefresh()
	b.keyDownAt = nil
	return nil
}

// KeyDown records the press time.
func (b *TimerButton) KeyDown(ctx context.Context, ev streamdeck.ActionEvent) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	now := b.cfg.Clock.Now()
	b.keyDownAt = &now
	return nil
}

// KeyUp applies the press: a long press stops the session, a short press
// starts it or logs a line to the data file. The resulting settings are
// always persisted and the title repainted, even when the file operation
// failed; the file error is returned afterwards.
func (b *TimerButton) KeyUp(ctx context.Context, ev streamdeck.ActionEvent) error {
	s, err := decodeSettings(ev)
	if err != nil {
		return err
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	now := b.cfg.Clock.Now()
	var press time.Duration
	if b.keyDownAt != nil {
		press = now.Sub(*b.keyDownAt)
	}
	b.keyDownAt = nil

	oldState := s.state()
	var errs []error

	switch {
	case press > b.cfg.LongPress:
		s.StartTimeStamp = nil
		b.stopRefresh()
		b.logSession(oldState, s.state(), "long press")

	case !s.Running():
		start := now.UnixMilli()
		s.StartTimeStamp = &start
		if path, ok := s.dataFile(); ok {
			truncated, err := b.cfg.Files.Truncate(path)
			if err != nil {
				errs = append(errs, err)
			} else if truncated {
				b.logger.Debug("data file truncated", "path", path)
			}
		}
		errs = append(errs, b.startRefresh(s))
		b.logSession(oldState, s.state(), "short press")

	default:
		errs = append(errs, b.appendEntry(ctx, s, now))
	}

	b.settings = s
	if err := b.host.SetSettings(ctx, s); err != nil {
		errs = append(errs, fmt.Errorf("persist settings: %w", err))
	}
	errs = append(errs, b.render(ctx))
	return errors.Join(errs...)
}

// DidReceiveSettings adopts settings edited in the property inspector.
func (b *TimerButton) DidReceiveSettings(ctx context.Context, ev streamdeck.ActionEvent) error {
	s, err := decodeSettings(ev)
	if err != nil {
		return err
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if oldState := b.settings.state(); oldState != s.state() {
		b.logSession(oldState, s.state(), "settings changed")
	}
	b.settings = s
	return errors.Join(b.startRefresh(s), b.render(ctx))
}

// SystemDidWakeUp repaints the title.
func (b *TimerButton) SystemDidWakeUp(ctx context.Context) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.render(ctx)
}

// appendEntry writes the elapsed-time line for a running session.
func (b *TimerButton) appendEntry(ctx context.Context, s Settings, now time.Time) error {
	path, ok := s.dataFile()
	if !ok {
		b.logger.Warn("no data file configured, entry not written")
		_ = b.host.LogMessage(ctx, fmt.Sprintf("timer %s: no data file configured", b.host.Context()))
		return nil
	}

	written, err := b.cfg.Files.AppendEntry(path, FormatElapsed(s.StartTimeStamp, now), s.information())
	if err != nil {
		return err
	}
	if written {
		b.logger.Debug("entry written", "path", path)
	}
	return nil
}

// startRefresh replaces any refresh task with one for s. Nothing is
// started when s is not running.
func (b *TimerButton) startRefresh(s Settings) error {
	b.stopRefresh()
	if !s.Running() {
		return nil
	}

	start := *s.StartTimeStamp
	host, clock, logger := b.host, b.cfg.Clock, b.logger
	task, err := b.cfg.Scheduler.Every(b.cfg.RefreshInterval, func() {
		if err := host.SetTitle(context.Background(), FormatElapsed(&start, clock.Now())); err != nil {
			logger.Debug("refresh failed", "error", err)
		}
	})
	if err != nil {
		return fmt.Errorf("start refresh: %w", err)
	}
	b.refresh = task
	return nil
}

func (b *TimerButton) stopRefresh() {
	if b.refresh != nil {
		b.refresh.Stop()
		b.refresh = nil
	}
}

func (b *TimerButton) render(ctx context.Context) error {
	title := FormatElapsed(b.settings.StartTimeStamp, b.cfg.Clock.Now())
	if err := b.host.SetTitle(ctx, title); err != nil {
		return fmt.Errorf("set title: %w", err)
	}
	return nil
}

func (b *TimerButton) logSession(oldState, newState, reason string) {
	if oldState == newState {
		return
	}
	b.logger.Info("session "+newState, "reason", reason)
	b.cfg.ProtocolLogger.Log(log.Event{
		Timestamp: time.Now(),
		Layer:     log.LayerAction,
		Category:  log.CategoryState,
		Context:   b.host.Context(),
		Action:    UUID,
		StateChange: &log.StateChangeEvent{
			Entity:   log.StateEntitySession,
			OldState: oldState,
			NewState: newState,
			Reason:   reason,
		},
	})
}

func decodeSettings(ev streamdeck.ActionEvent) (Settings, error) {
	var s Settings
	if err := ev.DecodeSettings(&s); err != nil {
		return Settings{}, fmt.Errorf("decode settings: %w", err)
	}
	return s, nil
}

var _ streamdeck.Handler = (*TimerButton)(nil)

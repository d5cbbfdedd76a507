package decktimer_test

import (
	"context"
	"errors"
	"net"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strconv"
	"testing"
	"time"

	"github.com/deck-timer/deck-timer/internal/simhost"
	"github.com/deck-timer/deck-timer/pkg/action"
	"github.com/deck-timer/deck-timer/pkg/connection"
	"github.com/deck-timer/deck-timer/pkg/log"
	"github.com/deck-timer/deck-timer/pkg/refresh"
	"github.com/deck-timer/deck-timer/pkg/streamdeck"
)

// e2e wires a plugin with the timer action to a simulated host over a real
// WebSocket.
type e2e struct {
	host   *simhost.Host
	ticker *refresh.Ticker
	runErr chan error
	cancel context.CancelFunc
}

func startE2E(t *testing.T, settings map[string]any, cfg action.Config) *e2e {
	t.Helper()

	host := simhost.New(simhost.Config{Action: action.UUID, Settings: settings})
	srv := httptest.NewServer(host)
	t.Cleanup(srv.Close)

	_, portStr, err := net.SplitHostPort(srv.Listener.Addr().String())
	if err != nil {
		t.Fatalf("SplitHostPort: %v", err)
	}
	port, _ := strconv.Atoi(portStr)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
	t.Cleanup(cancel)

	conn, err := streamdeck.Dial(ctx, streamdeck.ConnConfig{
		Port:    port,
		Backoff: connection.NewBackoffWithConfig(connection.BackoffConfig{Initial: 10 * time.Millisecond}),
	})
	if err != nil {
		t.Fatalf("Dial: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	ticker := refresh.NewTicker()
	if cfg.Scheduler == nil {
		cfg.Scheduler = ticker
	}
	plugin := streamdeck.NewPlugin(conn, streamdeck.PluginConfig{
		PluginUUID:    "e2e",
		RegisterEvent: simhost.DefaultRegisterEvent,
		SessionID:     conn.SessionID(),
	})
	if err := plugin.Register(action.UUID, action.NewFactory(cfg)); err != nil {
		t.Fatalf("Register: %v", err)
	}

	e := &e2e{host: host, ticker: ticker, runErr: make(chan error, 1), cancel: cancel}
	go func() { e.runErr <- plugin.Run(ctx) }()

	if err := host.WaitRegistered(ctx); err != nil {
		t.Fatalf("plugin did not register: %v", err)
	}
	return e
}

func (e *e2e) ctx(t *testing.T) context.Context {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	t.Cleanup(cancel)
	return ctx
}

// waitFor returns the next command with the given event name.
func (e *e2e) waitFor(t *testing.T, event string) simhost.Command {
	t.Helper()
	ctx := e.ctx(t)
	for {
		cmd, err := e.host.Next(ctx)
		if err != nil {
			t.Fatalf("waiting for %s: %v", event, err)
		}
		if cmd.Event == event {
			return cmd
		}
	}
}

func (e *e2e) waitTitle(t *testing.T) string {
	t.Helper()
	title, _ := e.waitFor(t, streamdeck.CommandSetTitle).Title()
	return title
}

// stop closes the host side and waits for the plugin to exit.
func (e *e2e) stop(t *testing.T) {
	t.Helper()
	if err := e.host.Close(); err != nil {
		t.Fatalf("host close: %v", err)
	}
	select {
	case err := <-e.runErr:
		if !errors.Is(err, streamdeck.ErrConnectionClosed) {
			t.Errorf("Run returned %v, want connection closed", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("plugin did not stop")
	}
	if n := e.ticker.Active(); n != 0 {
		t.Errorf("%d refresh tasks still active after shutdown", n)
	}
}

// TestE2E_TimerSession runs a full session: start, two laps, stop.
func TestE2E_TimerSession(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	dataFile := filepath.Join(t.TempDir(), "laps.txt")
	if err := os.WriteFile(dataFile, []byte("previous session\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	e := startE2E(t, map[string]any{"datafile": dataFile, "information": "lap"}, action.Config{
		LongPress: 200 * time.Millisecond,
	})
	ctx := e.ctx(t)

	if err := e.host.Appear(ctx); err != nil {
		t.Fatalf("Appear: %v", err)
	}
	if title := e.waitTitle(t); title != "00:00:00" {
		t.Errorf("idle title = %q", title)
	}

	// Short press starts.
	if err := e.host.Press(ctx, 10*time.Millisecond); err != nil {
		t.Fatalf("Press: %v", err)
	}
	e.waitFor(t, streamdeck.CommandSetSettings)
	if _, ok := e.host.Settings()["startTimeStamp"]; !ok {
		t.Fatalf("session not started: %v", e.host.Settings())
	}
	if data, _ := os.ReadFile(dataFile); len(data) != 0 {
		t.Errorf("data file not truncated: %q", data)
	}
	if n := e.ticker.Active(); n != 1 {
		t.Errorf("active refresh tasks = %d, want 1", n)
	}

	// Two short presses while running log two lines.
	for i := 0; i < 2; i++ {
		if err := e.host.Press(ctx, 10*time.Millisecond); err != nil {
			t.Fatalf("Press: %v", err)
		}
		e.waitFor(t, streamdeck.CommandSetSettings)
	}
	data, err := os.ReadFile(dataFile)
	if err != nil {
		t.Fatal(err)
	}
	if got := string(data); got != "00:00:00 - lap\n00:00:00 - lap\n" {
		t.Errorf("data file = %q", got)
	}

	// Long press stops.
	if err := e.host.Press(ctx, 300*time.Millisecond); err != nil {
		t.Fatalf("Press: %v", err)
	}
	e.waitFor(t, streamdeck.CommandSetSettings)
	if _, ok := e.host.Settings()["startTimeStamp"]; ok {
		t.Errorf("session still running: %v", e.host.Settings())
	}
	if n := e.ticker.Active(); n != 0 {
		t.Errorf("active refresh tasks = %d, want 0", n)
	}

	e.stop(t)
}

// TestE2E_ResumeAfterRestart checks that a session persisted by the host
// keeps counting when the plugin starts again.
func TestE2E_ResumeAfterRestart(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	start := time.Now().Add(-(time.Hour + 2*time.Minute + 3*time.Second)).UnixMilli()
	e := startE2E(t, map[string]any{"startTimeStamp": start}, action.Config{
		RefreshInterval: 20 * time.Millisecond,
	})
	ctx := e.ctx(t)

	if err := e.host.Appear(ctx); err != nil {
		t.Fatalf("Appear: %v", err)
	}
	first := e.waitTitle(t)
	if first != "01:02:03" && first != "01:02:04" {
		t.Errorf("resumed title = %q", first)
	}

	// The refresh task keeps updating the title.
	e.waitTitle(t)
	e.waitTitle(t)

	// Repeated appear does not stack refresh tasks.
	for i := 0; i < 3; i++ {
		if err := e.host.Appear(ctx); err != nil {
			t.Fatalf("Appear: %v", err)
		}
	}
	deadline := time.Now().Add(5 * time.Second)
	for e.ticker.Started() < 4 && time.Now().Before(deadline) {
		if n := e.ticker.Active(); n > 1 {
			t.Fatalf("active refresh tasks = %d", n)
		}
		time.Sleep(5 * time.Millisecond)
	}
	if n := e.ticker.Active(); n != 1 {
		t.Errorf("active refresh tasks = %d, want 1", n)
	}

	if err := e.host.Wake(ctx); err != nil {
		t.Fatalf("Wake: %v", err)
	}
	e.waitTitle(t)

	if err := e.host.Disappear(ctx); err != nil {
		t.Fatalf("Disappear: %v", err)
	}
	e.stop(t)
}

// TestE2E_MissingDataFile checks the warning path: running, no datafile
// setting, a short press only logs to the host.
func TestE2E_MissingDataFile(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	start := time.Now().UnixMilli()
	e := startE2E(t, map[string]any{"startTimeStamp": start}, action.Config{})
	ctx := e.ctx(t)

	if err := e.host.Press(ctx, 10*time.Millisecond); err != nil {
		t.Fatalf("Press: %v", err)
	}
	msg, _ := e.waitFor(t, streamdeck.CommandLogMessage).Message()
	if msg == "" {
		t.Error("expected a warning in the host log")
	}
	e.waitFor(t, streamdeck.CommandSetSettings)
	if got := e.host.Settings()["startTimeStamp"]; got != float64(start) {
		t.Errorf("startTimeStamp = %v, want %d", got, start)
	}

	e.stop(t)
}

// TestE2E_ProtocolCapture records a session and reads it back.
func TestE2E_ProtocolCapture(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	path := filepath.Join(t.TempDir(), "capture.mlog")
	fileLogger, err := log.NewFileLogger(path)
	if err != nil {
		t.Fatal(err)
	}

	e := startE2E(t, nil, action.Config{ProtocolLogger: fileLogger})
	ctx := e.ctx(t)

	if err := e.host.Press(ctx, 10*time.Millisecond); err != nil {
		t.Fatalf("Press: %v", err)
	}
	e.waitFor(t, streamdeck.CommandSetSettings)
	e.stop(t)
	fileLogger.Close()

	layer := log.LayerAction
	r, err := log.NewFilteredReader(path, log.Filter{Layer: &layer})
	if err != nil {
		t.Fatal(err)
	}
	defer r.Close()

	ev, err := r.Next()
	if err != nil {
		t.Fatalf("no action event captured: %v", err)
	}
	if ev.StateChange == nil || ev.StateChange.NewState != action.StateRunning {
		t.Errorf("unexpected event %+v", ev)
	}
	if ev.Context != simhost.DefaultContext {
		t.Errorf("context = %q", ev.Context)
	}
}

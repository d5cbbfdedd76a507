package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/coder/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deck-timer/deck-timer/pkg/action"
	"github.com/deck-timer/deck-timer/pkg/log"
)

func TestParseFlags(t *testing.T) {
	opts, err := parseFlags([]string{
		"-port", "28196",
		"-pluginUUID", "abc",
		"-registerEvent", "registerPlugin",
		"-info", `{"application":{"platform":"mac"}}`,
	}, &bytes.Buffer{})
	require.NoError(t, err)
	assert.Equal(t, 28196, opts.port)
	assert.Equal(t, "abc", opts.pluginUUID)
	assert.Equal(t, "registerPlugin", opts.registerEvent)
}

func TestParseFlagsRequired(t *testing.T) {
	_, err := parseFlags([]string{"-pluginUUID", "abc"}, &bytes.Buffer{})
	assert.Error(t, err)

	_, err = parseFlags([]string{"-bogus"}, &bytes.Buffer{})
	assert.Error(t, err)
}

// TestRunSession drives the binary against a fake host: register, appear,
// a short press, then the host closes the socket.
func TestRunSession(t *testing.T) {
	press := func(event string) string {
		return `{"event":"` + event + `","action":"` + action.UUID + `","context":"ctx-1","device":"dev-1","payload":{"settings":{}}}`
	}

	received := make(chan map[string]any, 16)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ws, err := websocket.Accept(w, r, nil)
		if err != nil {
			return
		}
		defer ws.CloseNow()
		ctx := r.Context()

		read := func() bool {
			_, data, err := ws.Read(ctx)
			if err != nil {
				return false
			}
			var m map[string]any
			if json.Unmarshal(data, &m) == nil {
				received <- m
			}
			return true
		}

		// registration
		if !read() {
			return
		}
		for _, f := range []string{press("willAppear"), press("keyDown"), press("keyUp")} {
			if err := ws.Write(ctx, websocket.MessageText, []byte(f)); err != nil {
				return
			}
		}
		// setTitle (appear), setSettings and setTitle (key up)
		for i := 0; i < 3; i++ {
			if !read() {
				return
			}
		}
		ws.Close(websocket.StatusNormalClosure, "")
	}))
	defer srv.Close()

	_, port, err := net.SplitHostPort(srv.Listener.Addr().String())
	require.NoError(t, err)

	logPath := filepath.Join(t.TempDir(), "session.mlog")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var stderr bytes.Buffer
	err = run(ctx, []string{
		"-port", port,
		"-pluginUUID", "plugin-1",
		"-registerEvent", "registerPlugin",
		"-config", writeConfig(t),
		"-protocol-log", logPath,
	}, &stderr)
	require.NoError(t, err, stderr.String())

	close(received)
	var events []string
	for m := range received {
		events = append(events, m["event"].(string))
	}
	assert.Equal(t, []string{"registerPlugin", "setTitle", "setSettings", "setTitle"}, events)

	r, err := log.NewReader(logPath)
	require.NoError(t, err)
	defer r.Close()
	first, err := r.Next()
	require.NoError(t, err)
	assert.NotEmpty(t, first.SessionID)
}

func writeConfig(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "deck-timer.yaml")
	require.NoError(t, os.WriteFile(path, []byte("log_level: debug\nconnect_retries: 2\n"), 0o644))
	return path
}

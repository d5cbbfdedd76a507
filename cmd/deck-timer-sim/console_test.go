package main

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deck-timer/deck-timer/internal/simhost"
)

func TestParseValue(t *testing.T) {
	assert.Nil(t, parseValue(""))
	assert.Equal(t, int64(1700000000000), parseValue("1700000000000"))
	assert.Equal(t, "/tmp/laps.txt", parseValue("/tmp/laps.txt"))
	assert.Equal(t, "two words", parseValue("two words"))
}

func TestParseHold(t *testing.T) {
	hold, err := parseHold(nil)
	require.NoError(t, err)
	assert.Equal(t, 100*time.Millisecond, hold)

	hold, err = parseHold([]string{"1500"})
	require.NoError(t, err)
	assert.Equal(t, 1500*time.Millisecond, hold)

	_, err = parseHold([]string{"long"})
	assert.Error(t, err)
	_, err = parseHold([]string{"-5"})
	assert.Error(t, err)
}

func TestDescribe(t *testing.T) {
	title := simhost.Command{Event: "setTitle", Payload: json.RawMessage(`{"title":"00:01:02","target":0}`)}
	assert.Equal(t, "[title] 00:01:02", describe(title))

	msg := simhost.Command{Event: "logMessage", Payload: json.RawMessage(`{"message":"hello"}`)}
	assert.Equal(t, "[log] hello", describe(msg))

	set := simhost.Command{Event: "setSettings", Payload: json.RawMessage(`{"startTimeStamp":1}`)}
	assert.Equal(t, `[settings] {"startTimeStamp":1}`, describe(set))

	other := simhost.Command{Event: "openUrl", Payload: json.RawMessage(`{"url":"x"}`)}
	assert.Equal(t, `[openUrl] {"url":"x"}`, describe(other))
}

func TestExecuteWithoutPlugin(t *testing.T) {
	host := simhost.New(simhost.Config{})
	var out bytes.Buffer

	err := execute(context.Background(), host, &out, "press 0")
	assert.ErrorIs(t, err, simhost.ErrNotConnected)

	err = execute(context.Background(), host, &out, "bogus")
	assert.ErrorContains(t, err, "unknown command")

	err = execute(context.Background(), host, &out, "set")
	assert.Error(t, err)
}

func TestExecuteLocalCommands(t *testing.T) {
	host := simhost.New(simhost.Config{Settings: map[string]any{"information": "lap"}})
	var out bytes.Buffer

	require.NoError(t, execute(context.Background(), host, &out, "settings"))
	assert.Contains(t, out.String(), "information = lap")

	out.Reset()
	require.NoError(t, execute(context.Background(), host, &out, "help"))
	assert.Contains(t, out.String(), "press [ms]")
}

// Command deck-timer-sim stands in for the Stream Deck application while
// developing the plugin.
//
// It listens on a local port, accepts one plugin connection and drives a
// single simulated key from an interactive prompt. Commands the plugin
// sends are printed as they arrive; settings it persists are kept and
// replayed with every event, as the real host does.
//
// Usage:
//
//	deck-timer-sim [flags]
//
// Flags:
//
//	-port int            Listen port (default 28196)
//	-action string       Action UUID of the simulated key
//	-context string      Context of the simulated key (default "sim-key-1")
//	-datafile string     Initial datafile setting
//	-information string  Initial information setting
//	-log-level string    Log level: debug, info, warn, error (default "warn")
//
// Examples:
//
//	# Start the simulator, then the plugin against it
//	deck-timer-sim -datafile /tmp/laps.txt -information lap
//	deck-timer -port 28196 -pluginUUID sim -registerEvent registerPlugin
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/deck-timer/deck-timer/internal/simhost"
	"github.com/deck-timer/deck-timer/pkg/action"
)

var (
	port        = flag.Int("port", 28196, "Listen port")
	actionUUID  = flag.String("action", action.UUID, "Action UUID of the simulated key")
	keyContext  = flag.String("context", simhost.DefaultContext, "Context of the simulated key")
	dataFile    = flag.String("datafile", "", "Initial datafile setting")
	information = flag.String("information", "", "Initial information setting")
	logLevel    = flag.String("log-level", "warn", "Log level: debug, info, warn, error")
)

func main() {
	flag.Parse()

	var level slog.Level
	if err := level.UnmarshalText([]byte(*logLevel)); err != nil {
		fmt.Fprintf(os.Stderr, "Error: invalid log level %q\n", *logLevel)
		os.Exit(1)
	}

	settings := map[string]any{}
	if *dataFile != "" {
		settings["datafile"] = *dataFile
	}
	if *information != "" {
		settings["information"] = *information
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	console, err := newConsole()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewTextHandler(console.Stderr(), &slog.HandlerOptions{Level: level}))
	host := simhost.New(simhost.Config{
		Action:   *actionUUID,
		Context:  *keyContext,
		Settings: settings,
		Logger:   logger,
	})

	addr := net.JoinHostPort("127.0.0.1", strconv.Itoa(*port))
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to listen on %s: %v\n", addr, err)
		os.Exit(1)
	}
	srv := &http.Server{Handler: host}
	go func() {
		if err := srv.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server stopped", "error", err)
		}
	}()
	defer srv.Close()

	fmt.Fprintf(console.Stdout(), "Listening on ws://%s, start the plugin with:\n", addr)
	fmt.Fprintf(console.Stdout(), "  deck-timer -port %d -pluginUUID sim -registerEvent %s\n\n",
		*port, simhost.DefaultRegisterEvent)

	console.Run(ctx, cancel, host)
}

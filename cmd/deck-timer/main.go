// Command deck-timer is the Stream Deck plugin binary of the timer button.
//
// The Stream Deck application starts it with the connection parameters of
// its local WebSocket. The plugin registers, then serves key events until
// the application closes the socket or the process is signalled.
//
// Usage:
//
//	deck-timer -port <n> -pluginUUID <uuid> -registerEvent <name> -info <json> [flags]
//
// Flags:
//
//	-port int               Host WebSocket port (set by the host)
//	-pluginUUID string      Plugin instance identifier (set by the host)
//	-registerEvent string   Registration event name (set by the host)
//	-info string            Host and device description as JSON (set by the host)
//	-config string          Configuration file path (default: deck-timer.yaml next to the binary)
//	-log-level string       Log level: debug, info, warn, error (overrides the config file)
//	-protocol-log string    File path for protocol event logging (CBOR format)
//
// Examples:
//
//	# Record a protocol capture while debugging in the Stream Deck application
//	deck-timer ... -log-level debug -protocol-log /tmp/deck-timer.mlog
//
//	# Run against the simulator
//	deck-timer-sim -port 28196 &
//	deck-timer -port 28196 -pluginUUID sim -registerEvent registerPlugin
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/deck-timer/deck-timer/internal/config"
	"github.com/deck-timer/deck-timer/pkg/action"
	"github.com/deck-timer/deck-timer/pkg/datafile"
	"github.com/deck-timer/deck-timer/pkg/log"
	"github.com/deck-timer/deck-timer/pkg/refresh"
	"github.com/deck-timer/deck-timer/pkg/streamdeck"
	"github.com/deck-timer/deck-timer/pkg/version"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "deck-timer: %v\n", err)
		os.Exit(1)
	}
}

// options holds the parsed command line.
type options struct {
	port          int
	pluginUUID    string
	registerEvent string
	info          string
	configFile    string
	logLevel      string
	protocolLog   string
}

func parseFlags(args []string, output io.Writer) (*options, error) {
	var opts options
	fs := flag.NewFlagSet("deck-timer", flag.ContinueOnError)
	fs.SetOutput(output)
	fs.IntVar(&opts.port, "port", 0, "Host WebSocket port (set by the host)")
	fs.StringVar(&opts.pluginUUID, "pluginUUID", "", "Plugin instance identifier (set by the host)")
	fs.StringVar(&opts.registerEvent, "registerEvent", "", "Registration event name (set by the host)")
	fs.StringVar(&opts.info, "info", "", "Host and device description as JSON (set by the host)")
	fs.StringVar(&opts.configFile, "config", "", "Configuration file path")
	fs.StringVar(&opts.logLevel, "log-level", "", "Log level: debug, info, warn, error")
	fs.StringVar(&opts.protocolLog, "protocol-log", "", "File path for protocol event logging (CBOR format)")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if opts.port == 0 || opts.registerEvent == "" {
		return nil, errors.New("-port and -registerEvent are required")
	}
	return &opts, nil
}

func run(ctx context.Context, args []string, stderr io.Writer) error {
	opts, err := parseFlags(args, stderr)
	if err != nil {
		return err
	}

	cfg, err := config.Load(opts.configFile)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if opts.logLevel != "" {
		cfg.LogLevel = opts.logLevel
	}
	if opts.protocolLog != "" {
		cfg.ProtocolLog = opts.protocolLog
	}
	level, err := cfg.SlogLevel()
	if err != nil {
		return err
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	info, err := streamdeck.ParseInfo(opts.info)
	if err != nil {
		return err
	}
	logger.Info("starting",
		"plugin", opts.pluginUUID,
		"platform", info.Application.Platform,
		"host_version", info.Application.Version,
		"devices", len(info.Devices))
	if err := version.CheckHost(info.Application.Version); err != nil {
		logger.Warn("unsupported host version", "error", err, "minimum", version.MinimumHost)
	}

	// Set up protocol logging if requested
	var loggers []log.Logger
	if cfg.ProtocolLog != "" {
		fileLogger, err := log.NewFileLogger(cfg.ProtocolLog)
		if err != nil {
			return fmt.Errorf("create protocol logger: %w", err)
		}
		defer func() {
			if dropped := fileLogger.Dropped(); dropped > 0 {
				logger.Warn("protocol events dropped", "count", dropped)
			}
			fileLogger.Close()
		}()
		loggers = append(loggers, fileLogger)
		logger.Info("protocol logging", "path", cfg.ProtocolLog)
	}
	if level <= slog.LevelDebug {
		loggers = append(loggers, log.NewSlogAdapter(logger))
	}
	var protocolLogger log.Logger
	if len(loggers) > 0 {
		protocolLogger = log.NewMultiLogger(loggers...)
	}

	conn, err := streamdeck.Dial(ctx, streamdeck.ConnConfig{
		Port:           opts.port,
		Attempts:       cfg.ConnectRetries,
		ProtocolLogger: protocolLogger,
		Logger:         logger,
	})
	if err != nil {
		return err
	}
	defer conn.Close()

	plugin := streamdeck.NewPlugin(conn, streamdeck.PluginConfig{
		PluginUUID:     opts.pluginUUID,
		RegisterEvent:  opts.registerEvent,
		SessionID:      conn.SessionID(),
		ProtocolLogger: protocolLogger,
		Logger:         logger,
	})

	factory := action.NewFactory(action.Config{
		LongPress:       cfg.LongPress.Duration,
		RefreshInterval: cfg.RefreshInterval.Duration,
		Scheduler:       refresh.NewTicker(),
		Clock:           refresh.SystemClock,
		Files:           datafile.NewWriter(nil),
		ProtocolLogger:  log.WithSession(protocolLogger, conn.SessionID()),
		Logger:          logger,
	})
	if err := plugin.Register(action.UUID, factory); err != nil {
		return err
	}

	err = plugin.Run(ctx)
	switch {
	case errors.Is(err, streamdeck.ErrConnectionClosed):
		logger.Info("host closed the connection")
		return nil
	case errors.Is(err, context.Canceled):
		logger.Info("shutting down")
		return nil
	}
	return err
}

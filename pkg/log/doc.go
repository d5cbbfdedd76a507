// Package log provides structured protocol capture for the deck-timer plugin.
//
// This package defines the Logger interface and Event types for recording
// everything that crosses the plugin boundary: raw WebSocket frames, decoded
// host events and commands, and timer session state changes. It is separate
// from operational logging (slog); protocol capture gives a complete,
// machine-readable trace for debugging a plugin that runs inside the
// Stream Deck application where no console is attached.
//
// # Basic Usage
//
//	// For development: log to console via slog
//	cfg.ProtocolLogger = log.NewSlogAdapter(slog.Default())
//
//	// For the installed plugin: write to a binary file
//	cfg.ProtocolLogger, _ = log.NewFileLogger("deck-timer.mlog")
//
//	// Both
//	cfg.ProtocolLogger = log.NewMultiLogger(console, file)
//
// # Event Types
//
// Events are captured at three layers:
//   - Transport: raw frame bytes (FrameEvent)
//   - Host: decoded host events and plugin commands (MessageEvent)
//   - Action: timer session changes (StateChangeEvent)
//
// Errors at any layer use ErrorEventData.
//
// # File Format
//
// Log files are a stream of CBOR-encoded events with the .mlog extension.
// The deck-timer-log tool views, exports and summarizes them.
package log

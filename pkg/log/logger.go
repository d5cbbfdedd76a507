package log

// Logger receives protocol log events.
// Pass nil or NoopLogger to disable capture.
type Logger interface {
	// Log records a protocol event. Implementations must be safe for
	// concurrent use and must not block for long.
	Log(event Event)
}

// NoopLogger discards all events. It is usable as a zero value.
type NoopLogger struct{}

// Log discards the event.
func (NoopLogger) Log(Event) {}

// OrNoop returns l, or NoopLogger when l is nil.
func OrNoop(l Logger) Logger {
	if l == nil {
		return NoopLogger{}
	}
	return l
}

var _ Logger = NoopLogger{}

// sessionLogger stamps a session ID on events that lack one.
type sessionLogger struct {
	next      Logger
	sessionID string
}

// WithSession returns a Logger that fills in SessionID before forwarding
// to l. Components below the connection use it so their events correlate
// with the frames of the same host session.
func WithSession(l Logger, sessionID string) Logger {
	return &sessionLogger{next: OrNoop(l), sessionID: sessionID}
}

func (s *sessionLogger) Log(event Event) {
	if event.SessionID == "" {
		event.SessionID = s.sessionID
	}
	s.next.Log(event)
}

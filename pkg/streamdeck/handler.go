package streamdeck

import "context"

// Handler receives the events of one button instance (one host context).
// The Plugin never calls two Handler methods concurrently.
type Handler interface {
	// WillAppear is sent when the key becomes visible.
	WillAppear(ctx context.Context, ev ActionEvent) error

	// WillDisappear is sent when the key is hidden (page switch, profile
	// change, action removed). The Plugin drops the handler afterwards.
	WillDisappear(ctx context.Context, ev ActionEvent) error

	// KeyDown is sent when the key is pressed.
	KeyDown(ctx context.Context, ev ActionEvent) error

	// KeyUp is sent when the key is released.
	KeyUp(ctx context.Context, ev ActionEvent) error

	// DidReceiveSettings is sent after the property inspector changed
	// the instance's settings.
	DidReceiveSettings(ctx context.Context, ev ActionEvent) error

	// SystemDidWakeUp is sent to every live handler when the computer
	// resumes from sleep.
	SystemDidWakeUp(ctx context.Context) error
}

// Host is the per-instance handle a Handler uses to talk back to the
// Stream Deck application.
type Host interface {
	// Context returns the instance's host context.
	Context() string

	// SetTitle renders title on the key.
	SetTitle(ctx context.Context, title string) error

	// SetSettings persists settings for this instance.
	SetSettings(ctx context.Context, settings any) error

	// LogMessage writes a line to the Stream Deck application log.
	LogMessage(ctx context.Context, message string) error
}

// Factory creates the Handler for a newly seen context.
type Factory func(host Host) Handler

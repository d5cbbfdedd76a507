package streamdeck

import (
	"encoding/json"
	"errors"
)

// Host event names (host to plugin).
const (
	EventWillAppear         = "willAppear"
	EventWillDisappear      = "willDisappear"
	EventKeyDown            = "keyDown"
	EventKeyUp              = "keyUp"
	EventDidReceiveSettings = "didReceiveSettings"
	EventSystemDidWakeUp    = "systemDidWakeUp"
)

// Plugin command names (plugin to host).
const (
	CommandSetTitle    = "setTitle"
	CommandSetSettings = "setSettings"
	CommandLogMessage  = "logMessage"
)

// Decoding errors.
var (
	ErrEmptyFrame   = errors.New("empty frame")
	ErrMissingEvent = errors.New("frame has no event name")
)

// Target selects which surface a title is rendered on.
type Target int

const (
	// TargetBoth renders on hardware and software.
	TargetBoth Target = 0
	// TargetHardware renders on the device only.
	TargetHardware Target = 1
	// TargetSoftware renders in the Stream Deck application only.
	TargetSoftware Target = 2
)

// Coordinates locate a key on the device.
type Coordinates struct {
	Column int `json:"column"`
	Row    int `json:"row"`
}

// ActionPayload is the payload of per-action events.
type ActionPayload struct {
	Settings        json.RawMessage `json:"settings,omitempty"`
	Coordinates     *Coordinates    `json:"coordinates,omitempty"`
	State           int             `json:"state,omitempty"`
	IsInMultiAction bool            `json:"isInMultiAction,omitempty"`
}

// Frame is the envelope of every host frame.
type Frame struct {
	Event   string          `json:"event"`
	Action  string          `json:"action,omitempty"`
	Context string          `json:"context,omitempty"`
	Device  string          `json:"device,omitempty"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// ActionEvent is a decoded per-action event handed to a Handler.
type ActionEvent struct {
	Name    string
	Action  string
	Context string
	Device  string
	Payload ActionPayload
}

// DecodeSettings unmarshals the event's settings into v. Missing settings
// leave v untouched.
func (e ActionEvent) DecodeSettings(v any) error {
	if len(e.Payload.Settings) == 0 || string(e.Payload.Settings) == "null" {
		return nil
	}
	return json.Unmarshal(e.Payload.Settings, v)
}

// registration is the first frame the plugin sends.
type registration struct {
	Event string `json:"event"`
	UUID  string `json:"uuid"`
}

// command is the envelope of every plugin command.
type command struct {
	Event   string `json:"event"`
	Context string `json:"context,omitempty"`
	Payload any    `json:"payload,omitempty"`
}

type titlePayload struct {
	Title  string `json:"title"`
	Target Target `json:"target"`
}

type logPayload struct {
	Message string `json:"message"`
}

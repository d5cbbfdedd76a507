package streamdeck

import (
	"encoding/json"
	"fmt"
)

// DecodeFrame parses one host frame.
func DecodeFrame(data []byte) (*Frame, error) {
	if len(data) == 0 {
		return nil, ErrEmptyFrame
	}
	var f Frame
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to decode frame: %w", err)
	}
	if f.Event == "" {
		return nil, ErrMissingEvent
	}
	return &f, nil
}

// ActionEvent decodes the frame's payload as a per-action event.
func (f *Frame) ActionEvent() (ActionEvent, error) {
	ev := ActionEvent{
		Name:    f.Event,
		Action:  f.Action,
		Context: f.Context,
		Device:  f.Device,
	}
	if len(f.Payload) > 0 {
		if err := json.Unmarshal(f.Payload, &ev.Payload); err != nil {
			return ev, fmt.Errorf("failed to decode %s payload: %w", f.Event, err)
		}
	}
	return ev, nil
}

// EncodeRegistration encodes the registration frame.
func EncodeRegistration(registerEvent, pluginUUID string) ([]byte, error) {
	return json.Marshal(registration{Event: registerEvent, UUID: pluginUUID})
}

// EncodeSetTitle encodes a setTitle command.
func EncodeSetTitle(contextID, title string, target Target) ([]byte, error) {
	return json.Marshal(command{
		Event:   CommandSetTitle,
		Context: contextID,
		Payload: titlePayload{Title: title, Target: target},
	})
}

// EncodeSetSettings encodes a setSettings command. settings is marshalled
// as-is; the host stores it verbatim.
func EncodeSetSettings(contextID string, settings any) ([]byte, error) {
	return json.Marshal(command{
		Event:   CommandSetSettings,
		Context: contextID,
		Payload: settings,
	})
}

// EncodeLogMessage encodes a logMessage command.
func EncodeLogMessage(message string) ([]byte, error) {
	return json.Marshal(command{
		Event:   CommandLogMessage,
		Payload: logPayload{Message: message},
	})
}

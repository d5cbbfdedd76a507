package commands

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/deck-timer/deck-timer/pkg/log"
)

// RunExport exports the log file to the specified format.
func RunExport(path, format, output string) error {
	reader, err := log.NewReader(path)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer reader.Close()

	var w io.Writer = os.Stdout
	if output != "" {
		f, err := os.Create(output)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer f.Close()
		w = f
	}

	switch format {
	case "jsonl":
		return exportJSONL(reader, w)
	case "csv":
		return exportCSV(reader, w)
	default:
		return fmt.Errorf("unknown format: %s (supported: jsonl, csv)", format)
	}
}

// jsonEvent is the JSONL form of an event. Host payloads are embedded as
// JSON instead of base64.
type jsonEvent struct {
	Timestamp   string                `json:"timestamp"`
	SessionID   string                `json:"session_id,omitempty"`
	Direction   string                `json:"direction"`
	Layer       string                `json:"layer"`
	Category    string                `json:"category"`
	Context     string                `json:"context,omitempty"`
	Action      string                `json:"action,omitempty"`
	Device      string                `json:"device,omitempty"`
	Event       string                `json:"event,omitempty"`
	Payload     json.RawMessage       `json:"payload,omitempty"`
	HandlingNS  *int64                `json:"handling_ns,omitempty"`
	FrameSize   *int                  `json:"frame_size,omitempty"`
	StateChange *log.StateChangeEvent `json:"state_change,omitempty"`
	Error       *log.ErrorEventData   `json:"error,omitempty"`
}

func toJSONEvent(event log.Event) jsonEvent {
	je := jsonEvent{
		Timestamp:   event.Timestamp.UTC().Format(timestampLayout),
		SessionID:   event.SessionID,
		Direction:   event.Direction.String(),
		Layer:       event.Layer.String(),
		Category:    event.Category.String(),
		Context:     event.Context,
		Action:      event.Action,
		Device:      event.Device,
		StateChange: event.StateChange,
		Error:       event.Error,
	}
	if f := event.Frame; f != nil {
		je.FrameSize = &f.Size
		if json.Valid(f.Data) {
			je.Payload = f.Data
		}
	}
	if m := event.Message; m != nil {
		je.Event = m.Name
		if json.Valid(m.Payload) {
			je.Payload = m.Payload
		}
		if m.HandlingTime != nil {
			ns := m.HandlingTime.Nanoseconds()
			je.HandlingNS = &ns
		}
	}
	return je
}

func exportJSONL(reader *log.Reader, w io.Writer) error {
	encoder := json.NewEncoder(w)
	for {
		event, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("failed to read event: %w", err)
		}
		if err := encoder.Encode(toJSONEvent(event)); err != nil {
			return fmt.Errorf("failed to encode event: %w", err)
		}
	}
	return nil
}

func exportCSV(reader *log.Reader, w io.Writer) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	header := []string{"timestamp", "session_id", "direction", "layer", "category", "context", "action", "type", "event"}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for {
		event, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("failed to read event: %w", err)
		}

		eventType := "unknown"
		name := ""
		switch {
		case event.Frame != nil:
			eventType = "frame"
		case event.Message != nil:
			eventType = "message"
			name = event.Message.Name
		case event.StateChange != nil:
			eventType = "state"
			name = event.StateChange.NewState
		case event.Error != nil:
			eventType = "error"
			name = event.Error.Context
		}

		row := []string{
			event.Timestamp.UTC().Format(timestampLayout),
			event.SessionID,
			event.Direction.String(),
			event.Layer.String(),
			event.Category.String(),
			event.Context,
			event.Action,
			eventType,
			name,
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write row: %w", err)
		}
	}
	return nil
}

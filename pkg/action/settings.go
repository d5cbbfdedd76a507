package action

import "time"

// Settings is the record the host persists for each key.
type Settings struct {
	// StartTimeStamp is the session start in Unix milliseconds.
	// Nil means no session is running.
	StartTimeStamp *int64 `json:"startTimeStamp,omitempty"`

	// Information is written after the elapsed time on each log line.
	Information *string `json:"information,omitempty"`

	// DataFile is the path log lines are appended to.
	DataFile *string `json:"datafile,omitempty"`
}

// Running reports whether a session is in progress.
func (s Settings) Running() bool {
	return s.StartTimeStamp != nil
}

// Start returns the session start time.
func (s Settings) Start() (time.Time, bool) {
	if s.StartTimeStamp == nil {
		return time.Time{}, false
	}
	return time.UnixMilli(*s.StartTimeStamp), true
}

// dataFile returns the configured path, treating an empty string as unset.
func (s Settings) dataFile() (string, bool) {
	if s.DataFile == nil || *s.DataFile == "" {
		return "", false
	}
	return *s.DataFile, true
}

func (s Settings) information() string {
	if s.Information == nil {
		return ""
	}
	return *s.Information
}

func (s Settings) state() string {
	if s.Running() {
		return StateRunning
	}
	return StateIdle
}

// Session state names used in protocol logs.
const (
	StateIdle    = "IDLE"
	StateRunning = "RUNNING"
)

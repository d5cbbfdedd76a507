package streamdeck

import (
	"encoding/json"
	"fmt"
)

// Info is the -info argument the host passes at launch.
type Info struct {
	Application struct {
		Font            string `json:"font,omitempty"`
		Language        string `json:"language"`
		Platform        string `json:"platform"`
		PlatformVersion string `json:"platformVersion,omitempty"`
		Version         string `json:"version"`
	} `json:"application"`
	Plugin struct {
		UUID    string `json:"uuid"`
		Version string `json:"version"`
	} `json:"plugin"`
	DevicePixelRatio int      `json:"devicePixelRatio"`
	Devices          []Device `json:"devices"`
}

// Device describes a connected Stream Deck.
type Device struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Type int    `json:"type"`
	Size struct {
		Columns int `json:"columns"`
		Rows    int `json:"rows"`
	} `json:"size"`
}

// ParseInfo decodes the -info argument. An empty string yields a zero Info.
func ParseInfo(s string) (*Info, error) {
	info := &Info{}
	if s == "" {
		return info, nil
	}
	if err := json.Unmarshal([]byte(s), info); err != nil {
		return nil, fmt.Errorf("invalid -info: %w", err)
	}
	return info, nil
}

package log

import "testing"

func TestNewFrameEventTruncates(t *testing.T) {
	small := NewFrameEvent([]byte("abc"))
	if small.Size != 3 || small.Truncated || string(small.Data) != "abc" {
		t.Errorf("small frame = %+v", small)
	}

	big := NewFrameEvent(make([]byte, MaxFrameCapture+10))
	if big.Size != MaxFrameCapture+10 {
		t.Errorf("Size = %d, want %d", big.Size, MaxFrameCapture+10)
	}
	if !big.Truncated {
		t.Error("expected Truncated")
	}
	if len(big.Data) != MaxFrameCapture {
		t.Errorf("len(Data) = %d, want %d", len(big.Data), MaxFrameCapture)
	}
}

func TestEnumStrings(t *testing.T) {
	tests := []struct {
		got, want string
	}{
		{DirectionIn.String(), "IN"},
		{DirectionOut.String(), "OUT"},
		{Direction(9).String(), "UNKNOWN"},
		{LayerTransport.String(), "TRANSPORT"},
		{LayerHost.String(), "HOST"},
		{LayerAction.String(), "ACTION"},
		{CategoryMessage.String(), "MESSAGE"},
		{CategoryState.String(), "STATE"},
		{CategoryError.String(), "ERROR"},
		{StateEntityConnection.String(), "CONNECTION"},
		{StateEntitySession.String(), "SESSION"},
		{StateEntityInstance.String(), "INSTANCE"},
	}
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("got %q, want %q", tt.got, tt.want)
		}
	}
}

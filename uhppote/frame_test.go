package uhppote

import "testing"

func TestNewRequest(t *testing.T) {
	frame := newRequest(funcGetStatus, 405419896)

	if len(frame) != frameSize {
		t.Fatalf("newRequest: length = %d, want %d", len(frame), frameSize)
	}
	if frame[0] != somNormal {
		t.Errorf("newRequest: SOM = 0x%02x, want 0x%02x", frame[0], somNormal)
	}
	if frame[1] != funcGetStatus {
		t.Errorf("newRequest: function = 0x%02x, want 0x%02x", frame[1], funcGetStatus)
	}
	if got := unpackUint32(frame, 4); got != 405419896 {
		t.Errorf("newRequest: serial = %d, want %d", got, 405419896)
	}
	for i := 2; i < 4; i++ {
		if frame[i] != 0 {
			t.Errorf("newRequest: reserved byte %d = 0x%02x, want 0x00", i, frame[i])
		}
	}
}

func TestValidateReply(t *testing.T) {
	tests := []struct {
		name     string
		frame    []byte
		expected byte
		wantErr  bool
	}{
		{"well formed", newRequest(funcGetController, 1), funcGetController, false},
		{"wrong length", make([]byte, 32), funcGetController, true},
		{"wrong function code", newRequest(funcGetController, 1), funcGetTime, true},
		{"event SOM with GetStatus function", eventFrame(funcGetStatus), funcGetStatus, false},
		{"event SOM with other function", eventFrame(funcGetTime), funcGetTime, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateReply(tt.frame, tt.expected)
			if tt.wantErr && err == nil {
				t.Error("validateReply: expected error, got nil")
			}
			if !tt.wantErr && err != nil {
				t.Errorf("validateReply: unexpected error: %v", err)
			}
		})
	}
}

func TestIsEventFrame(t *testing.T) {
	if isEventFrame(newRequest(funcGetStatus, 1)) {
		t.Error("isEventFrame(normal SOM) = true, want false")
	}
	if !isEventFrame(eventFrame(funcGetStatus)) {
		t.Error("isEventFrame(event SOM) = false, want true")
	}
}

func eventFrame(function byte) []byte {
	frame := make([]byte, frameSize)
	frame[0] = somEvent
	frame[1] = function
	return frame
}

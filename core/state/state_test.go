package state

import "testing"

func TestViewerState_String(t *testing.T) {
	tests := []struct {
		state    ViewerState
		expected string
	}{
		{StateIdle, "Idle"},
		{StateScanning, "Scanning"},
		{StateBrowsing, "Browsing"},
		{StateSlideshow, "Slideshow"},
		{StateClosing, "Closing"},
		{StateClosed, "Closed"},
		{ViewerState(99), "Unknown(99)"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			if got := tt.state.String(); got != tt.expected {
				t.Errorf("ViewerState.String() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestViewerState_CanTransitionTo(t *testing.T) {
	tests := []struct {
		name     string
		from     ViewerState
		to       ViewerState
		expected bool
	}{
		// Valid transitions from Idle
		{"Idle -> Scanning", StateIdle, StateScanning, true},
		{"Idle -> Closing", StateIdle, StateClosing, true},
		{"Idle -> Browsing (invalid)", StateIdle, StateBrowsing, false},

		// Valid transitions from Scanning
		{"Scanning -> Browsing", StateScanning, StateBrowsing, true},
		{"Scanning -> Closing", StateScanning, StateClosing, true},
		{"Scanning -> Closed", StateScanning, StateClosed, true},
		{"Scanning -> Slideshow (invalid)", StateScanning, StateSlideshow, false},

		// Valid transitions from Browsing
		{"Browsing -> Scanning", StateBrowsing, StateScanning, true},
		{"Browsing -> Slideshow", StateBrowsing, StateSlideshow, true},
		{"Browsing -> Closing", StateBrowsing, StateClosing, true},
		{"Browsing -> Idle (invalid)", StateBrowsing, StateIdle, false},

		// Valid transitions from Slideshow
		{"Slideshow -> Browsing", StateSlideshow, StateBrowsing, true},
		{"Slideshow -> Closing", StateSlideshow, StateClosing, true},
		{"Slideshow -> Scanning (invalid)", StateSlideshow, StateScanning, false},

		// Valid transitions from Closing
		{"Closing -> Closed", StateClosing, StateClosed, true},
		{"Closing -> Browsing (invalid)", StateClosing, StateBrowsing, false},

		// Closed is terminal
		{"Closed -> Idle (invalid)", StateClosed, StateIdle, false},
		{"Closed -> Scanning (invalid)", StateClosed, StateScanning, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.from.CanTransitionTo(tt.to); got != tt.expected {
				t.Errorf("CanTransitionTo() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestViewerState_IsTerminal(t *testing.T) {
	if StateClosed.IsTerminal() != true {
		t.Error("StateClosed should be terminal")
	}
	for _, s := range []ViewerState{StateIdle, StateScanning, StateBrowsing, StateSlideshow, StateClosing} {
		if s.IsTerminal() {
			t.Errorf("%s should not be terminal", s)
		}
	}
}

func TestViewerState_IsActive(t *testing.T) {
	tests := []struct {
		state    ViewerState
		expected bool
	}{
		{StateIdle, false},
		{StateScanning, true},
		{StateBrowsing, true},
		{StateSlideshow, true},
		{StateClosing, true},
		{StateClosed, false},
	}

	for _, tt := range tests {
		t.Run(tt.state.String(), func(t *testing.T) {
			if got := tt.state.IsActive(); got != tt.expected {
				t.Errorf("IsActive() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestViewerState_CanNavigate(t *testing.T) {
	tests := []struct {
		state    ViewerState
		expected bool
	}{
		{StateIdle, false},
		{StateScanning, false},
		{StateBrowsing, true},
		{StateSlideshow, true},
		{StateClosing, false},
		{StateClosed, false},
	}

	for _, tt := range tests {
		t.Run(tt.state.String(), func(t *testing.T) {
			if got := tt.state.CanNavigate(); got != tt.expected {
				t.Errorf("CanNavigate() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestViewerState_Slideshow(t *testing.T) {
	if !StateBrowsing.CanStartSlideshow() {
		t.Error("CanStartSlideshow() should be true in Browsing")
	}
	if StateSlideshow.CanStartSlideshow() {
		t.Error("CanStartSlideshow() should be false in Slideshow")
	}
	if !StateSlideshow.CanStopSlideshow() {
		t.Error("CanStopSlideshow() should be true in Slideshow")
	}
	if StateBrowsing.CanStopSlideshow() {
		t.Error("CanStopSlideshow() should be false in Browsing")
	}
}

func TestTransitionError(t *testing.T) {
	err := NewTransitionError(StateIdle, StateBrowsing, "")
	want := "invalid state transition from Idle to Browsing"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}

	err = NewTransitionError(StateClosed, StateScanning, "viewer already closed")
	want = "invalid state transition from Closed to Scanning: viewer already closed"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

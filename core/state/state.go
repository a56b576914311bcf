// Package state defines the viewer state machine.
package state

import "fmt"

// ViewerState represents the state of a viewer.
type ViewerState int

const (
	// StateIdle is the initial state before anything is opened.
	StateIdle ViewerState = iota
	// StateScanning indicates the directory is being scanned for images.
	StateScanning
	// StateBrowsing indicates the viewer is showing images and accepts navigation.
	StateBrowsing
	// StateSlideshow indicates the viewer advances automatically.
	StateSlideshow
	// StateClosing indicates the viewer is shutting down.
	StateClosing
	// StateClosed indicates the viewer has been terminated.
	StateClosed
)

// String returns the string representation of the state.
func (s ViewerState) String() string {
	switch s {
	case StateIdle:
		return "Idle"
	case StateScanning:
		return "Scanning"
	case StateBrowsing:
		return "Browsing"
	case StateSlideshow:
		return "Slideshow"
	case StateClosing:
		return "Closing"
	case StateClosed:
		return "Closed"
	default:
		return fmt.Sprintf("Unknown(%d)", s)
	}
}

// validTransitions defines the allowed state transitions.
// Key is the current state, value is a list of valid target states.
var validTransitions = map[ViewerState][]ViewerState{
	StateIdle:      {StateScanning, StateClosing},
	StateScanning:  {StateBrowsing, StateClosing, StateClosed},
	StateBrowsing:  {StateScanning, StateSlideshow, StateClosing},
	StateSlideshow: {StateBrowsing, StateClosing},
	StateClosing:   {StateClosed},
	StateClosed:    {}, // Terminal state, no transitions allowed
}

// CanTransitionTo checks if transitioning from the current state to the target state is valid.
func (s ViewerState) CanTransitionTo(target ViewerState) bool {
	allowed, ok := validTransitions[s]
	if !ok {
		return false
	}
	for _, t := range allowed {
		if t == target {
			return true
		}
	}
	return false
}

// ValidTransitions returns the list of valid target states from the current state.
func (s ViewerState) ValidTransitions() []ViewerState {
	return validTransitions[s]
}

// IsTerminal returns true if the state is a terminal state (no further transitions).
func (s ViewerState) IsTerminal() bool {
	return s == StateClosed
}

// IsActive returns true if the viewer is in an active state (not idle or closed).
func (s ViewerState) IsActive() bool {
	return s != StateIdle && s != StateClosed
}

// CanNavigate returns true if the viewer accepts navigation commands.
// Navigation is allowed during a slideshow so manual advance works alongside the timer.
func (s ViewerState) CanNavigate() bool {
	return s == StateBrowsing || s == StateSlideshow
}

// CanStartSlideshow returns true if a slideshow can be started in this state.
func (s ViewerState) CanStartSlideshow() bool {
	return s == StateBrowsing
}

// CanStopSlideshow returns true if a slideshow can be stopped in this state.
func (s ViewerState) CanStopSlideshow() bool {
	return s == StateSlideshow
}

// TransitionError represents an invalid state transition attempt.
type TransitionError struct {
	From   ViewerState
	To     ViewerState
	Reason string
}

func (e *TransitionError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("invalid state transition from %s to %s: %s", e.From, e.To, e.Reason)
	}
	return fmt.Sprintf("invalid state transition from %s to %s", e.From, e.To)
}

// NewTransitionError creates a new TransitionError.
func NewTransitionError(from, to ViewerState, reason string) *TransitionError {
	return &TransitionError{From: from, To: to, Reason: reason}
}

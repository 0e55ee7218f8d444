package engine

import "time"

// State is the engine's position in the turn lifecycle.
type State int

const (
	StateStart State = iota
	StateClassifying
	StateRouting
	StateDispatching
	StateReviewing
	StateLoopBack
	StateTerminalSuccess
	StateTerminalError
)

// String returns the state name, used in checkpoints and logs.
func (s State) String() string {
	switch s {
	case StateStart:
		return "start"
	case StateClassifying:
		return "classifying"
	case StateRouting:
		return "routing"
	case StateDispatching:
		return "dispatching"
	case StateReviewing:
		return "reviewing"
	case StateLoopBack:
		return "loop_back"
	case StateTerminalSuccess:
		return "terminal_success"
	case StateTerminalError:
		return "terminal_error"
	default:
		return "unknown"
	}
}

// Terminal reports whether the state ends the turn.
func (s State) Terminal() bool {
	return s == StateTerminalSuccess || s == StateTerminalError
}

// Event is what just happened; (State, Event) decides where to go next.
type Event int

const (
	EventEnriched Event = iota
	EventClassified
	EventRouted
	EventDispatched
	EventApproved
	EventRevise
	EventFail
)

// Config holds the engine's limits and enrichment timeouts.
type Config struct {
	// TurnTimeout is the wall-clock budget for the whole turn. Exceeding it
	// is fatal for the turn, never retried.
	TurnTimeout time.Duration

	// MaxSteps is the global step budget, independent of the reflection
	// counter. It is the backstop against any undiscovered cycle.
	MaxSteps int

	HistoryTimeout  time.Duration
	LocationTimeout time.Duration
	DeviceTimeout   time.Duration
}

func (c *Config) applyDefaults() {
	if c.TurnTimeout <= 0 {
		c.TurnTimeout = DefaultTurnTimeout
	}
	if c.MaxSteps <= 0 {
		c.MaxSteps = DefaultMaxSteps
	}
	if c.HistoryTimeout <= 0 {
		c.HistoryTimeout = DefaultHistoryTimeout
	}
	if c.LocationTimeout <= 0 {
		c.LocationTimeout = DefaultLocationTimeout
	}
	if c.DeviceTimeout <= 0 {
		c.DeviceTimeout = DefaultDeviceTimeout
	}
}

package engine

import "time"

// Log prefixes
const (
	LogPrefixRun    = "internal.engine.Run"
	LogPrefixEnrich = "internal.engine.enrich"
)

// Limits
const (
	// DefaultTurnTimeout is the wall-clock budget for one turn.
	DefaultTurnTimeout = 40 * time.Second

	// DefaultMaxSteps bounds the state machine regardless of which cycles
	// fire. A well-behaved turn uses at most:
	// enrich + classify + route + 3x(dispatch+review) + 2 loop-backs = 11.
	DefaultMaxSteps = 12

	// Enrichment fetch budgets. A timed-out fetch degrades to its default.
	DefaultHistoryTimeout  = 5 * time.Second
	DefaultLocationTimeout = 3 * time.Second
	DefaultDeviceTimeout   = 4 * time.Second
)

// Task type recorded on recovered-error states.
const TaskTypeError = "error"

// User-facing texts for recovered and fatal failures.
const (
	ErrorResponseText   = "I'm sorry, something went wrong while handling your request. If you are in immediate danger, contact local emergency services directly."
	TimeoutResponseText = "I'm sorry, that took too long to process. Please try again."
)

// Degradation markers recorded in debug info when an enrichment fetch fails.
const (
	DegradedHistory  = "history"
	DegradedLocation = "location"
	DegradedDevice   = "device_status"
)
